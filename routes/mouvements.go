package routes

import (
	"stock-backend/controllers"
	"stock-backend/models"
	"stock-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupMouvementRoutes configure les routes du journal des mouvements
func SetupMouvementRoutes(app *fiber.App, mouvementController *controllers.MouvementController) {
	mouvements := app.Group("/mouvements", utils.AuthMiddleware)

	// GET /mouvements - journal des mouvements (filtres : articleId, type)
	mouvements.Get("/", mouvementController.GetMouvements)

	// POST /mouvements - enregistrement d'une entrée ou d'une sortie
	mouvements.Post("/", utils.RequireMotDePasseChange,
		utils.RequireRoles(models.RoleAdmin, models.RoleMagasinier),
		mouvementController.CreateMouvement)
}
