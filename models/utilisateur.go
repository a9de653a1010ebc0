package models

import (
	"os"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Rôles disponibles dans le système
const (
	RoleAdmin       = "admin"
	RoleMagasinier  = "magasinier"
	RoleUtilisateur = "utilisateur"
)

// Utilisateur représente un compte utilisateur du système
type Utilisateur struct {
	ID                    string     `json:"id" gorm:"primaryKey;size:36"`
	Nom                   string     `json:"nom" gorm:"not null"`
	Prenom                string     `json:"prenom" gorm:"not null"`
	Email                 string     `json:"email" gorm:"uniqueIndex;not null"`
	MotDePasse            string     `json:"-" gorm:"not null"` // Hash bcrypt, jamais exposé en JSON
	Role                  string     `json:"role" gorm:"not null;default:'utilisateur'"`
	Actif                 bool       `json:"actif" gorm:"default:true"`
	DateCreation          time.Time  `json:"dateCreation"`
	DerniereConnexion     *time.Time `json:"derniereConnexion,omitempty"`
	DoitChangerMotDePasse bool       `json:"doitChangerMotDePasse" gorm:"default:true"`
}

// TableName fixe le nom de la table
func (Utilisateur) TableName() string {
	return "utilisateurs"
}

// BeforeCreate hook pour générer l'identifiant et la date de création
func (u *Utilisateur) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	if u.DateCreation.IsZero() {
		u.DateCreation = time.Now()
	}
	return nil
}

// InitDB initialise la connexion à la base de données
func InitDB() (*gorm.DB, error) {
	// PostgreSQL en production si DATABASE_URL est définie
	databaseURL := os.Getenv("DATABASE_URL")

	if databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			return nil, err
		}
		return db, nil
	}

	// SQLite pour le développement
	db, err := gorm.Open(sqlite.Open("stock.db"), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	return db, nil
}
