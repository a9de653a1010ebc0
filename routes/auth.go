package routes

import (
	"stock-backend/controllers"
	"stock-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes configure les routes d'authentification
func SetupAuthRoutes(app *fiber.App, authController *controllers.AuthController) {
	auth := app.Group("/auth")

	// POST /auth/login - connexion
	auth.Post("/login", authController.Login)

	// POST /auth/change-password - changement du mot de passe de l'utilisateur connecté.
	// Accessible même sous obligation de changement : c'est la porte de sortie.
	auth.Post("/change-password", utils.AuthMiddleware, authController.ChangerMotDePasse)

	// GET /auth/me - utilisateur courant
	auth.Get("/me", utils.AuthMiddleware, authController.Me)
}
