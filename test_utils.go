package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"stock-backend/controllers"
	"stock-backend/models"
	"stock-backend/routes"
	"stock-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB crée une base de données de test en mémoire
func setupTestDB() *gorm.DB {
	db, _ := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	db.AutoMigrate(&models.Utilisateur{}, &models.Article{}, &models.Mouvement{}, &models.BonAttribution{}, &models.LigneBon{}, &models.PolitiqueMotDePasse{})
	return db
}

// setupTestApp assemble l'application complète sur la base fournie,
// sans hub d'alertes (les contrôleurs tolèrent son absence)
func setupTestApp(db *gorm.DB) *fiber.App {
	app := fiber.New()

	routes.SetupAuthRoutes(app, controllers.NewAuthController(db))
	routes.SetupArticleRoutes(app, controllers.NewArticleController(db, nil))
	routes.SetupMouvementRoutes(app, controllers.NewMouvementController(db, nil))
	routes.SetupBonRoutes(app, controllers.NewBonController(db, nil))
	routes.SetupUtilisateurRoutes(app, controllers.NewUtilisateurController(db))
	routes.SetupPolitiqueRoutes(app, controllers.NewPolitiqueController(db))
	routes.SetupDashboardRoutes(app, controllers.NewDashboardController(db))

	return app
}

// createTestUtilisateur crée un utilisateur de test avec le rôle indiqué et
// retourne l'utilisateur et un token JWT valide (mot de passe déjà changé)
func createTestUtilisateur(db *gorm.DB, role string) (models.Utilisateur, string) {
	hash, _ := utils.HashPassword("Test123!@")
	utilisateur := models.Utilisateur{
		Nom:                   "Test",
		Prenom:                role,
		Email:                 role + "@test.com",
		MotDePasse:            hash,
		Role:                  role,
		Actif:                 true,
		DoitChangerMotDePasse: false,
	}
	db.Create(&utilisateur)

	token, _ := utils.GenerateJWT(utilisateur.ID, utilisateur.Email, utilisateur.Role, false)
	return utilisateur, token
}

// createTestArticle crée un article de test
func createTestArticle(db *gorm.DB, reference string, quantite, seuil int) models.Article {
	article := models.Article{
		Reference:        reference,
		Designation:      "Article " + reference,
		QuantiteInitiale: quantite,
		QuantiteActuelle: quantite,
		SeuilCritique:    seuil,
	}
	db.Create(&article)
	return article
}

// jsonRequest construit une requête HTTP JSON authentifiée
func jsonRequest(method, target, token string, body interface{}) *http.Request {
	var buffer *bytes.Buffer
	if body != nil {
		data, _ := json.Marshal(body)
		buffer = bytes.NewBuffer(data)
	} else {
		buffer = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, target, buffer)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

// decodeBody décode le corps d'une réponse dans la structure fournie
func decodeBody(resp *http.Response, out interface{}) error {
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(out)
}
