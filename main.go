package main

import (
	"log"
	"os"
	"time"

	"stock-backend/controllers"
	"stock-backend/models"
	"stock-backend/routes"
	"stock-backend/services"
	"stock-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/websocket/v2"
	"gorm.io/gorm"
)

func main() {
	// Initialisation de la base de données
	db, err := models.InitDB()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Automigration
	db.AutoMigrate(&models.Utilisateur{}, &models.Article{}, &models.Mouvement{}, &models.BonAttribution{}, &models.LigneBon{}, &models.PolitiqueMotDePasse{})

	// Données par défaut
	initDefaultPolitique(db)
	initDefaultUtilisateurs(db)
	initDefaultArticles(db)

	// Création de l'application Fiber
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
				"code":    code,
			})
		},
	})

	// Middleware
	app.Use(logger.New())

	// Configuration CORS
	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:3000,http://127.0.0.1:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// Hub de diffusion des alertes de stock
	hub := services.NewAlerteHub(db)
	go hub.Run()

	// Initialisation des contrôleurs
	authController := controllers.NewAuthController(db)
	articleController := controllers.NewArticleController(db, hub)
	mouvementController := controllers.NewMouvementController(db, hub)
	bonController := controllers.NewBonController(db, hub)
	utilisateurController := controllers.NewUtilisateurController(db)
	politiqueController := controllers.NewPolitiqueController(db)
	dashboardController := controllers.NewDashboardController(db)

	// Configuration des routes
	routes.SetupAuthRoutes(app, authController)
	routes.SetupArticleRoutes(app, articleController)
	routes.SetupMouvementRoutes(app, mouvementController)
	routes.SetupBonRoutes(app, bonController)
	routes.SetupUtilisateurRoutes(app, utilisateurController)
	routes.SetupPolitiqueRoutes(app, politiqueController)
	routes.SetupDashboardRoutes(app, dashboardController)

	// Flux WebSocket des alertes de stock
	app.Get("/ws/alertes", websocket.New(func(c *websocket.Conn) {
		hub.HandleWebSocket(c)
	}))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"message":   "Stock Backend is running",
			"timestamp": time.Now().Unix(),
		})
	})

	// Démarrage du serveur
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	log.Fatal(app.Listen(":" + port))
}

// initDefaultPolitique insère la politique de mot de passe par défaut
func initDefaultPolitique(db *gorm.DB) {
	var count int64
	db.Model(&models.PolitiqueMotDePasse{}).Count(&count)

	if count == 0 {
		politique := utils.PolitiqueParDefaut()
		politique.ID = 1
		if err := db.Create(&politique).Error; err != nil {
			log.Printf("Erreur lors de la création de la politique par défaut : %v", err)
		} else {
			log.Println("Politique de mot de passe par défaut créée")
		}
	}
}

// initDefaultUtilisateurs insère les comptes par défaut. Les mots de passe
// initiaux sont hashés dès l'insertion et le changement est obligatoire à
// la première connexion.
func initDefaultUtilisateurs(db *gorm.DB) {
	var count int64
	db.Model(&models.Utilisateur{}).Count(&count)

	if count > 0 {
		log.Printf("Utilisateurs déjà présents (%d comptes)", count)
		return
	}

	motDePasseInitial := os.Getenv("DEFAULT_PASSWORD")
	if motDePasseInitial == "" {
		motDePasseInitial = "ChangezMoi123!"
	}

	hash, err := utils.HashPassword(motDePasseInitial)
	if err != nil {
		log.Printf("Erreur lors du hash du mot de passe initial : %v", err)
		return
	}

	defaultUtilisateurs := []models.Utilisateur{
		{Nom: "Administrateur", Prenom: "System", Email: "admin@stock.com", MotDePasse: hash, Role: models.RoleAdmin, Actif: true, DoitChangerMotDePasse: true},
		{Nom: "Dupont", Prenom: "Jean", Email: "jean.dupont@stock.com", MotDePasse: hash, Role: models.RoleMagasinier, Actif: true, DoitChangerMotDePasse: true},
	}

	for _, utilisateur := range defaultUtilisateurs {
		if err := db.Create(&utilisateur).Error; err != nil {
			log.Printf("Erreur lors de la création de l'utilisateur '%s' : %v", utilisateur.Email, err)
		} else {
			log.Printf("Utilisateur créé : %s (%s)", utilisateur.Email, utilisateur.Role)
		}
	}
}

// initDefaultArticles insère les articles de démonstration
func initDefaultArticles(db *gorm.DB) {
	var count int64
	db.Model(&models.Article{}).Count(&count)

	if count > 0 {
		log.Printf("Articles déjà présents (%d articles)", count)
		return
	}

	defaultArticles := []models.Article{
		{Reference: "REF-001", Designation: "Ordinateur portable", Description: "Ordinateur portable Dell Latitude", QuantiteInitiale: 10, QuantiteActuelle: 8, SeuilCritique: 2},
		{Reference: "REF-002", Designation: "Souris optique", Description: "Souris optique USB", QuantiteInitiale: 50, QuantiteActuelle: 45, SeuilCritique: 10},
		{Reference: "REF-003", Designation: "Clavier sans fil", Description: "Clavier sans fil Bluetooth", QuantiteInitiale: 25, QuantiteActuelle: 20, SeuilCritique: 5},
	}

	for _, article := range defaultArticles {
		if err := db.Create(&article).Error; err != nil {
			log.Printf("Erreur lors de la création de l'article '%s' : %v", article.Reference, err)
		} else {
			log.Printf("Article créé : %s - %s", article.Reference, article.Designation)
		}
	}
}
