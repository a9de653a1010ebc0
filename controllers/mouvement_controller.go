package controllers

import (
	"errors"

	"stock-backend/models"
	"stock-backend/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// MouvementController contrôleur pour le journal des mouvements de stock
type MouvementController struct {
	DB    *gorm.DB
	Stock *services.StockService
	Hub   *services.AlerteHub
}

// NewMouvementController crée une nouvelle instance de MouvementController
func NewMouvementController(db *gorm.DB, hub *services.AlerteHub) *MouvementController {
	return &MouvementController{DB: db, Stock: services.NewStockService(db), Hub: hub}
}

// CreateMouvementRequest structure de la requête de création de mouvement
type CreateMouvementRequest struct {
	ArticleID   string `json:"articleId" validate:"required"`
	Type        string `json:"type" validate:"required,oneof=entree sortie"`
	Quantite    int    `json:"quantite" validate:"required,min=1"`
	Reference   string `json:"reference" validate:"required"`
	Commentaire string `json:"commentaire"`
}

// MouvementResponse structure de la réponse avec un mouvement
type MouvementResponse struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message"`
	Erreurs   []string          `json:"erreurs,omitempty"`
	Mouvement *models.Mouvement `json:"mouvement,omitempty"`
}

// MouvementsResponse structure de la réponse avec la liste des mouvements
type MouvementsResponse struct {
	Success    bool               `json:"success"`
	Message    string             `json:"message"`
	Mouvements []models.Mouvement `json:"mouvements"`
	Total      int64              `json:"total"`
}

// GetMouvements retourne le journal des mouvements, du plus récent au plus
// ancien, filtrable par article et par type
func (mc *MouvementController) GetMouvements(c *fiber.Ctx) error {
	var mouvements []models.Mouvement

	query := mc.DB.Preload("Article").Order("date DESC")

	if articleID := c.Query("articleId"); articleID != "" {
		query = query.Where("article_id = ?", articleID)
	}
	if typeMouvement := c.Query("type"); typeMouvement != "" {
		query = query.Where("type = ?", typeMouvement)
	}

	if err := query.Find(&mouvements).Error; err != nil {
		return c.Status(500).JSON(MouvementsResponse{
			Success: false,
			Message: "Erreur lors de la récupération des mouvements",
		})
	}

	return c.JSON(MouvementsResponse{
		Success:    true,
		Message:    "Mouvements récupérés",
		Mouvements: mouvements,
		Total:      int64(len(mouvements)),
	})
}

// CreateMouvement enregistre un mouvement d'entrée ou de sortie. Le
// mouvement et la mise à jour de la quantité de l'article forment une unité
// atomique ; une sortie dépassant le stock disponible est refusée en bloc.
func (mc *MouvementController) CreateMouvement(c *fiber.Ctx) error {
	var req CreateMouvementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(MouvementResponse{
			Success: false,
			Message: "Format de données invalide",
		})
	}

	if erreurs := mc.validateCreateMouvementRequest(&req); len(erreurs) > 0 {
		return c.Status(400).JSON(MouvementResponse{
			Success: false,
			Message: erreurs[0],
			Erreurs: erreurs,
		})
	}

	utilisateur, _ := c.Locals("user_email").(string)

	mouvement, err := mc.Stock.AjouterMouvement(req.ArticleID, req.Type, req.Quantite, req.Reference, utilisateur, req.Commentaire)
	if err != nil {
		if errors.Is(err, services.ErrArticleIntrouvable) {
			return c.Status(404).JSON(MouvementResponse{
				Success: false,
				Message: "Article introuvable",
			})
		}
		var stockErr *services.ErrStockInsuffisant
		if errors.As(err, &stockErr) {
			return c.Status(400).JSON(MouvementResponse{
				Success: false,
				Message: "Stock insuffisant : " + stockErr.Error(),
			})
		}
		return c.Status(500).JSON(MouvementResponse{
			Success: false,
			Message: "Erreur lors de l'enregistrement du mouvement",
		})
	}

	mc.diffuserAlertes()

	return c.Status(201).JSON(MouvementResponse{
		Success:   true,
		Message:   "Mouvement enregistré avec succès",
		Mouvement: mouvement,
	})
}

// Méthodes de validation

func (mc *MouvementController) validateCreateMouvementRequest(req *CreateMouvementRequest) []string {
	var erreurs []string
	if req.ArticleID == "" {
		erreurs = append(erreurs, "L'article est requis")
	}
	if req.Type != models.MouvementEntree && req.Type != models.MouvementSortie {
		erreurs = append(erreurs, "Le type doit être entree ou sortie")
	}
	if req.Quantite <= 0 {
		erreurs = append(erreurs, "La quantité doit être strictement positive")
	}
	if req.Reference == "" {
		erreurs = append(erreurs, "La référence du document source est requise")
	}
	return erreurs
}

func (mc *MouvementController) diffuserAlertes() {
	if mc.Hub != nil {
		go mc.Hub.DiffuserAlertes()
	}
}
