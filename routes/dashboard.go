package routes

import (
	"stock-backend/controllers"
	"stock-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupDashboardRoutes configure les routes du tableau de bord
func SetupDashboardRoutes(app *fiber.App, dashboardController *controllers.DashboardController) {
	dashboard := app.Group("/dashboard", utils.AuthMiddleware)

	// GET /dashboard - compteurs, alertes et derniers mouvements
	dashboard.Get("/", dashboardController.GetDashboard)
}
