package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Statuts du cycle de vie d'un bon d'attribution.
// en_attente -> valide ou annule ; valide et annule sont terminaux.
const (
	BonEnAttente = "en_attente"
	BonValide    = "valide"
	BonAnnule    = "annule"
)

// BonAttribution représente un bon de sortie de stock vers un destinataire
type BonAttribution struct {
	ID              string    `json:"id" gorm:"primaryKey;size:36"`
	NumeroBon       string    `json:"numerobon" gorm:"uniqueIndex;not null"`
	Destinataire    string    `json:"destinataire" gorm:"not null"`
	DateAttribution time.Time `json:"dateAttribution"`
	Utilisateur     string    `json:"utilisateur" gorm:"not null"`
	Statut          string    `json:"statut" gorm:"not null;default:'en_attente'"`

	// Lignes du bon, ordonnées comme à la création
	Articles []LigneBon `json:"articles" gorm:"foreignKey:BonID;constraint:OnDelete:CASCADE"`
}

// LigneBon représente une ligne d'un bon d'attribution.
// La désignation est une photographie de l'article au moment de la création :
// elle reste lisible même si l'article est renommé ou supprimé plus tard.
type LigneBon struct {
	ID             uint   `json:"-" gorm:"primaryKey"`
	BonID          string `json:"-" gorm:"size:36;not null;index"`
	Position       int    `json:"-" gorm:"not null"`
	ArticleID      string `json:"articleId" gorm:"size:36;not null;index"`
	Designation    string `json:"designation" gorm:"not null"`
	QuantiteSortie int    `json:"quantiteSortie" gorm:"not null"`
}

// TableName fixe le nom de la table
func (BonAttribution) TableName() string {
	return "bons_attribution"
}

// TableName fixe le nom de la table
func (LigneBon) TableName() string {
	return "lignes_bon"
}

// BeforeCreate hook pour générer l'identifiant et la date d'attribution
func (b *BonAttribution) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if b.DateAttribution.IsZero() {
		b.DateAttribution = time.Now()
	}
	if b.Statut == "" {
		b.Statut = BonEnAttente
	}
	return nil
}
