package routes

import (
	"stock-backend/controllers"
	"stock-backend/models"
	"stock-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupUtilisateurRoutes configure les routes de gestion des comptes.
// L'ensemble est réservé au rôle admin.
func SetupUtilisateurRoutes(app *fiber.App, utilisateurController *controllers.UtilisateurController) {
	utilisateurs := app.Group("/utilisateurs", utils.AuthMiddleware,
		utils.RequireMotDePasseChange, utils.RequireRoles(models.RoleAdmin))

	// GET /utilisateurs - liste des utilisateurs
	utilisateurs.Get("/", utilisateurController.GetUtilisateurs)

	// POST /utilisateurs - création d'un utilisateur
	utilisateurs.Post("/", utilisateurController.CreateUtilisateur)

	// PUT /utilisateurs/:id - modification d'un utilisateur
	utilisateurs.Put("/:id", utilisateurController.UpdateUtilisateur)

	// DELETE /utilisateurs/:id - suppression d'un utilisateur
	utilisateurs.Delete("/:id", utilisateurController.DeleteUtilisateur)

	// POST /utilisateurs/:id/reinitialiser-mot-de-passe - nouveau mot de passe généré
	utilisateurs.Post("/:id/reinitialiser-mot-de-passe", utilisateurController.ReinitialiserMotDePasse)
}
