package controllers

import (
	"stock-backend/models"
	"stock-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// PolitiqueController contrôleur pour la politique de mot de passe
type PolitiqueController struct {
	DB *gorm.DB
}

// NewPolitiqueController crée une nouvelle instance de PolitiqueController
func NewPolitiqueController(db *gorm.DB) *PolitiqueController {
	return &PolitiqueController{DB: db}
}

// UpdatePolitiqueRequest structure de la requête de modification de la politique
type UpdatePolitiqueRequest struct {
	LongueurMinimale         int  `json:"longueurMinimale" validate:"min=4,max=64"`
	MajusculesRequises       bool `json:"majusculesRequises"`
	MinusculesRequises       bool `json:"minusculesRequises"`
	ChiffresRequis           bool `json:"chiffresRequis"`
	CaracteresSpeciauxRequis bool `json:"caracteresSpeciauxRequis"`
	InterdireMotsCommuns     bool `json:"interdireMotsCommuns"`
}

// PolitiqueResponse structure de la réponse avec la politique
type PolitiqueResponse struct {
	Success   bool                        `json:"success"`
	Message   string                      `json:"message"`
	Politique *models.PolitiqueMotDePasse `json:"politique,omitempty"`
}

// GetPolitique retourne la politique de mot de passe active
func (pc *PolitiqueController) GetPolitique(c *fiber.Ctx) error {
	politique := pc.politiqueActive()
	return c.JSON(PolitiqueResponse{
		Success:   true,
		Message:   "Politique récupérée",
		Politique: &politique,
	})
}

// UpdatePolitique remplace la politique de mot de passe. La politique est
// une configuration unique à l'échelle du système (ligne ID = 1).
func (pc *PolitiqueController) UpdatePolitique(c *fiber.Ctx) error {
	var req UpdatePolitiqueRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(PolitiqueResponse{
			Success: false,
			Message: "Format de données invalide",
		})
	}

	if req.LongueurMinimale < 4 || req.LongueurMinimale > 64 {
		return c.Status(400).JSON(PolitiqueResponse{
			Success: false,
			Message: "La longueur minimale doit être comprise entre 4 et 64",
		})
	}

	politique := models.PolitiqueMotDePasse{
		ID:                       1,
		LongueurMinimale:         req.LongueurMinimale,
		MajusculesRequises:       req.MajusculesRequises,
		MinusculesRequises:       req.MinusculesRequises,
		ChiffresRequis:           req.ChiffresRequis,
		CaracteresSpeciauxRequis: req.CaracteresSpeciauxRequis,
		InterdireMotsCommuns:     req.InterdireMotsCommuns,
	}

	if err := pc.DB.Save(&politique).Error; err != nil {
		return c.Status(500).JSON(PolitiqueResponse{
			Success: false,
			Message: "Erreur lors de la modification de la politique",
		})
	}

	return c.JSON(PolitiqueResponse{
		Success:   true,
		Message:   "Politique modifiée avec succès",
		Politique: &politique,
	})
}

func (pc *PolitiqueController) politiqueActive() models.PolitiqueMotDePasse {
	var politique models.PolitiqueMotDePasse
	if err := pc.DB.First(&politique).Error; err != nil {
		return utils.PolitiqueParDefaut()
	}
	return politique
}
