package controllers

import (
	"stock-backend/models"
	"stock-backend/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// DashboardController contrôleur pour le tableau de bord
type DashboardController struct {
	DB    *gorm.DB
	Stock *services.StockService
}

// NewDashboardController crée une nouvelle instance de DashboardController
func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db, Stock: services.NewStockService(db)}
}

// GetDashboard retourne les compteurs globaux, les alertes courantes et les
// derniers mouvements pour l'écran d'accueil
func (dc *DashboardController) GetDashboard(c *fiber.Ctx) error {
	var stats struct {
		Articles      int64 `json:"articles"`
		Mouvements    int64 `json:"mouvements"`
		Bons          int64 `json:"bons"`
		BonsEnAttente int64 `json:"bonsEnAttente"`
		Utilisateurs  int64 `json:"utilisateurs"`
	}

	dc.DB.Model(&models.Article{}).Count(&stats.Articles)
	dc.DB.Model(&models.Mouvement{}).Count(&stats.Mouvements)
	dc.DB.Model(&models.BonAttribution{}).Count(&stats.Bons)
	dc.DB.Model(&models.BonAttribution{}).Where("statut = ?", models.BonEnAttente).Count(&stats.BonsEnAttente)
	dc.DB.Model(&models.Utilisateur{}).Count(&stats.Utilisateurs)

	alertes, err := dc.Stock.AlertesCourantes()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"message": "Erreur lors du calcul des alertes",
		})
	}

	// Les dix derniers mouvements
	var derniersMouvements []models.Mouvement
	dc.DB.Preload("Article").Order("date DESC").Limit(10).Find(&derniersMouvements)

	return c.JSON(fiber.Map{
		"success":            true,
		"message":            "Tableau de bord récupéré",
		"statistiques":       stats,
		"alertes":            alertes,
		"derniersMouvements": derniersMouvements,
	})
}
