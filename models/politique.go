package models

// PolitiqueMotDePasse représente la politique de mot de passe du système.
// Une seule ligne existe (ID = 1), modifiable par un administrateur.
type PolitiqueMotDePasse struct {
	ID                       uint `json:"-" gorm:"primaryKey"`
	LongueurMinimale         int  `json:"longueurMinimale" gorm:"not null;default:8"`
	MajusculesRequises       bool `json:"majusculesRequises" gorm:"default:true"`
	MinusculesRequises       bool `json:"minusculesRequises" gorm:"default:true"`
	ChiffresRequis           bool `json:"chiffresRequis" gorm:"default:true"`
	CaracteresSpeciauxRequis bool `json:"caracteresSpeciauxRequis" gorm:"default:true"`
	InterdireMotsCommuns     bool `json:"interdireMotsCommuns" gorm:"default:true"`
}

// TableName fixe le nom de la table
func (PolitiqueMotDePasse) TableName() string {
	return "politique_mot_de_passe"
}
