package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Types de mouvement de stock
const (
	MouvementEntree = "entree"
	MouvementSortie = "sortie"
)

// Mouvement représente une écriture du journal de stock.
// Une fois créé, un mouvement n'est jamais modifié : seule la suppression
// en cascade de son article peut le faire disparaître.
type Mouvement struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	ArticleID   string    `json:"articleId" gorm:"size:36;not null;index"`
	Type        string    `json:"type" gorm:"not null"` // entree ou sortie
	Quantite    int       `json:"quantite" gorm:"not null"`
	Date        time.Time `json:"date"`
	Reference   string    `json:"reference" gorm:"not null"` // Document source (bon, facture...)
	Utilisateur string    `json:"utilisateur" gorm:"not null"`
	Commentaire string    `json:"commentaire" gorm:"type:text;default:''"`

	// Relations
	Article *Article `json:"article,omitempty" gorm:"foreignKey:ArticleID"`
}

// TableName fixe le nom de la table
func (Mouvement) TableName() string {
	return "mouvements"
}

// BeforeCreate hook pour générer l'identifiant et la date
func (m *Mouvement) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.Date.IsZero() {
		m.Date = time.Now()
	}
	return nil
}
