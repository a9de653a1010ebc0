package routes

import (
	"stock-backend/controllers"
	"stock-backend/models"
	"stock-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupBonRoutes configure les routes des bons d'attribution
func SetupBonRoutes(app *fiber.App, bonController *controllers.BonController) {
	bons := app.Group("/bons", utils.AuthMiddleware)

	// GET /bons - liste des bons (filtre : statut)
	bons.Get("/", bonController.GetBons)

	// GET /bons/:id - détail d'un bon
	bons.Get("/:id", bonController.GetBon)

	gestion := bons.Group("", utils.RequireMotDePasseChange,
		utils.RequireRoles(models.RoleAdmin, models.RoleMagasinier))

	// POST /bons - création d'un bon en attente
	gestion.Post("/", bonController.CreateBon)

	// PUT /bons/:id/valider - validation : déduction du stock et mouvements de sortie
	gestion.Put("/:id/valider", bonController.ValiderBon)

	// PUT /bons/:id/annuler - annulation d'un bon en attente
	gestion.Put("/:id/annuler", bonController.AnnulerBon)
}
