package routes

import (
	"stock-backend/controllers"
	"stock-backend/models"
	"stock-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupPolitiqueRoutes configure les routes de la politique de mot de passe
func SetupPolitiqueRoutes(app *fiber.App, politiqueController *controllers.PolitiqueController) {
	politique := app.Group("/politique", utils.AuthMiddleware)

	// GET /politique - politique active (lisible par tout utilisateur connecté)
	politique.Get("/", politiqueController.GetPolitique)

	// PUT /politique - modification, réservée au rôle admin
	politique.Put("/", utils.RequireMotDePasseChange,
		utils.RequireRoles(models.RoleAdmin), politiqueController.UpdatePolitique)
}
