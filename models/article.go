package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Article représente un article stocké (SKU) avec sa quantité suivie
type Article struct {
	ID                   string    `json:"id" gorm:"primaryKey;size:36"`
	Reference            string    `json:"reference" gorm:"uniqueIndex;not null"`
	Designation          string    `json:"designation" gorm:"not null"`
	Description          string    `json:"description" gorm:"type:text;default:''"`
	QuantiteInitiale     int       `json:"quantiteInitiale" gorm:"not null;default:0"` // Base immuable, jamais modifiée après création
	QuantiteActuelle     int       `json:"quantiteActuelle" gorm:"not null;default:0"`
	SeuilCritique        int       `json:"seuilCritique" gorm:"not null;default:0"`
	DateCreation         time.Time `json:"dateCreation"`
	DerniereModification time.Time `json:"derniereModification"`
}

// TableName fixe le nom de la table
func (Article) TableName() string {
	return "articles"
}

// BeforeCreate hook pour générer l'identifiant et les dates
func (a *Article) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	now := time.Now()
	if a.DateCreation.IsZero() {
		a.DateCreation = now
	}
	if a.DerniereModification.IsZero() {
		a.DerniereModification = now
	}
	return nil
}

// BeforeUpdate hook pour mettre à jour la date de dernière modification
func (a *Article) BeforeUpdate(tx *gorm.DB) error {
	a.DerniereModification = time.Now()
	return nil
}
