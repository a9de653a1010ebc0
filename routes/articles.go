package routes

import (
	"stock-backend/controllers"
	"stock-backend/models"
	"stock-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupArticleRoutes configure les routes des articles.
// Lecture pour tout utilisateur authentifié ; écriture réservée aux rôles
// admin et magasinier, et bloquée tant que le mot de passe initial n'a pas
// été changé.
func SetupArticleRoutes(app *fiber.App, articleController *controllers.ArticleController) {
	articles := app.Group("/articles", utils.AuthMiddleware)

	// GET /articles - liste des articles
	articles.Get("/", articleController.GetArticles)

	// GET /articles/alertes - alertes de stock dérivées
	articles.Get("/alertes", articleController.GetAlertes)

	// GET /articles/:id - détail d'un article
	articles.Get("/:id", articleController.GetArticle)

	gestion := articles.Group("", utils.RequireMotDePasseChange,
		utils.RequireRoles(models.RoleAdmin, models.RoleMagasinier))

	// POST /articles - création d'un article
	gestion.Post("/", articleController.CreateArticle)

	// PUT /articles/:id - modification d'un article
	gestion.Put("/:id", articleController.UpdateArticle)

	// DELETE /articles/:id - suppression d'un article et de ses mouvements
	gestion.Delete("/:id", articleController.DeleteArticle)
}
