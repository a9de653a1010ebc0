package controllers

import (
	"errors"
	"strings"

	"stock-backend/models"
	"stock-backend/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ArticleController contrôleur pour la gestion des articles
type ArticleController struct {
	DB    *gorm.DB
	Stock *services.StockService
	Hub   *services.AlerteHub
}

// NewArticleController crée une nouvelle instance de ArticleController
func NewArticleController(db *gorm.DB, hub *services.AlerteHub) *ArticleController {
	return &ArticleController{DB: db, Stock: services.NewStockService(db), Hub: hub}
}

// CreateArticleRequest structure de la requête de création d'article
type CreateArticleRequest struct {
	Reference        string `json:"reference" validate:"required"`
	Designation      string `json:"designation" validate:"required"`
	Description      string `json:"description"`
	QuantiteInitiale int    `json:"quantiteInitiale" validate:"min=0"`
	QuantiteActuelle *int   `json:"quantiteActuelle"` // Par défaut égale à la quantité initiale
	SeuilCritique    int    `json:"seuilCritique" validate:"min=0"`
}

// UpdateArticleRequest structure de la requête de modification d'article.
// Seuls les champs présents sont appliqués.
type UpdateArticleRequest struct {
	Reference        *string `json:"reference"`
	Designation      *string `json:"designation"`
	Description      *string `json:"description"`
	QuantiteActuelle *int    `json:"quantiteActuelle"`
	SeuilCritique    *int    `json:"seuilCritique"`
}

// ArticleResponse structure de la réponse avec un article
type ArticleResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Erreurs []string        `json:"erreurs,omitempty"`
	Article *models.Article `json:"article,omitempty"`
}

// ArticlesResponse structure de la réponse avec la liste des articles
type ArticlesResponse struct {
	Success  bool             `json:"success"`
	Message  string           `json:"message"`
	Articles []models.Article `json:"articles"`
	Total    int64            `json:"total"`
}

// AlertesResponse structure de la réponse avec les alertes de stock
type AlertesResponse struct {
	Success bool                 `json:"success"`
	Message string               `json:"message"`
	Alertes []models.AlerteStock `json:"alertes"`
}

// GetArticles retourne la liste des articles
func (ctrl *ArticleController) GetArticles(c *fiber.Ctx) error {
	var articles []models.Article

	query := ctrl.DB.Order("designation")

	// Filtre de recherche sur la référence ou la désignation
	if recherche := c.Query("recherche"); recherche != "" {
		motif := "%" + strings.ToLower(recherche) + "%"
		query = query.Where("LOWER(reference) LIKE ? OR LOWER(designation) LIKE ?", motif, motif)
	}

	if err := query.Find(&articles).Error; err != nil {
		return c.Status(500).JSON(ArticlesResponse{
			Success: false,
			Message: "Erreur lors de la récupération des articles",
		})
	}

	return c.JSON(ArticlesResponse{
		Success:  true,
		Message:  "Articles récupérés",
		Articles: articles,
		Total:    int64(len(articles)),
	})
}

// GetArticle retourne un article par son identifiant
func (ctrl *ArticleController) GetArticle(c *fiber.Ctx) error {
	var article models.Article
	if err := ctrl.DB.First(&article, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(404).JSON(ArticleResponse{
			Success: false,
			Message: "Article introuvable",
		})
	}

	return c.JSON(ArticleResponse{
		Success: true,
		Message: "Article récupéré",
		Article: &article,
	})
}

// CreateArticle crée un nouvel article
func (ctrl *ArticleController) CreateArticle(c *fiber.Ctx) error {
	var req CreateArticleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(ArticleResponse{
			Success: false,
			Message: "Format de données invalide",
		})
	}

	if erreurs := ctrl.validateCreateArticleRequest(&req); len(erreurs) > 0 {
		return c.Status(400).JSON(ArticleResponse{
			Success: false,
			Message: erreurs[0],
			Erreurs: erreurs,
		})
	}

	// Vérification de l'unicité de la référence
	var count int64
	ctrl.DB.Model(&models.Article{}).Where("reference = ?", req.Reference).Count(&count)
	if count > 0 {
		return c.Status(409).JSON(ArticleResponse{
			Success: false,
			Message: "Un article avec cette référence existe déjà",
		})
	}

	// Sans valeur explicite, le stock courant démarre à la quantité initiale
	quantiteActuelle := req.QuantiteInitiale
	if req.QuantiteActuelle != nil {
		quantiteActuelle = *req.QuantiteActuelle
	}

	article := models.Article{
		Reference:        req.Reference,
		Designation:      req.Designation,
		Description:      req.Description,
		QuantiteInitiale: req.QuantiteInitiale,
		QuantiteActuelle: quantiteActuelle,
		SeuilCritique:    req.SeuilCritique,
	}

	if err := ctrl.DB.Create(&article).Error; err != nil {
		return c.Status(500).JSON(ArticleResponse{
			Success: false,
			Message: "Erreur lors de la création de l'article",
		})
	}

	ctrl.diffuserAlertes()

	return c.Status(201).JSON(ArticleResponse{
		Success: true,
		Message: "Article créé avec succès",
		Article: &article,
	})
}

// UpdateArticle modifie un article existant. La quantité initiale est
// immuable et n'apparaît pas dans la requête de modification.
func (ctrl *ArticleController) UpdateArticle(c *fiber.Ctx) error {
	var article models.Article
	if err := ctrl.DB.First(&article, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(404).JSON(ArticleResponse{
			Success: false,
			Message: "Article introuvable",
		})
	}

	var req UpdateArticleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(ArticleResponse{
			Success: false,
			Message: "Format de données invalide",
		})
	}

	if req.Reference != nil && *req.Reference != article.Reference {
		if *req.Reference == "" {
			return c.Status(400).JSON(ArticleResponse{
				Success: false,
				Message: "La référence est requise",
			})
		}
		var count int64
		ctrl.DB.Model(&models.Article{}).Where("reference = ? AND id <> ?", *req.Reference, article.ID).Count(&count)
		if count > 0 {
			return c.Status(409).JSON(ArticleResponse{
				Success: false,
				Message: "Un article avec cette référence existe déjà",
			})
		}
		article.Reference = *req.Reference
	}
	if req.Designation != nil {
		if *req.Designation == "" {
			return c.Status(400).JSON(ArticleResponse{
				Success: false,
				Message: "La désignation est requise",
			})
		}
		article.Designation = *req.Designation
	}
	if req.Description != nil {
		article.Description = *req.Description
	}
	if req.QuantiteActuelle != nil {
		article.QuantiteActuelle = *req.QuantiteActuelle
	}
	if req.SeuilCritique != nil {
		if *req.SeuilCritique < 0 {
			return c.Status(400).JSON(ArticleResponse{
				Success: false,
				Message: "Le seuil critique doit être positif ou nul",
			})
		}
		article.SeuilCritique = *req.SeuilCritique
	}

	if err := ctrl.DB.Save(&article).Error; err != nil {
		return c.Status(500).JSON(ArticleResponse{
			Success: false,
			Message: "Erreur lors de la modification de l'article",
		})
	}

	ctrl.diffuserAlertes()

	return c.JSON(ArticleResponse{
		Success: true,
		Message: "Article modifié avec succès",
		Article: &article,
	})
}

// DeleteArticle supprime un article et ses mouvements. La suppression est
// refusée si un bon d'attribution en attente référence l'article.
func (ctrl *ArticleController) DeleteArticle(c *fiber.Ctx) error {
	err := ctrl.Stock.SupprimerArticle(c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrArticleIntrouvable) {
			return c.Status(404).JSON(ArticleResponse{
				Success: false,
				Message: "Article introuvable",
			})
		}
		if errors.Is(err, services.ErrArticleReference) {
			return c.Status(409).JSON(ArticleResponse{
				Success: false,
				Message: "Impossible de supprimer : l'article est référencé par un bon d'attribution en attente",
			})
		}
		return c.Status(500).JSON(ArticleResponse{
			Success: false,
			Message: "Erreur lors de la suppression de l'article",
		})
	}

	ctrl.diffuserAlertes()

	return c.JSON(ArticleResponse{
		Success: true,
		Message: "Article supprimé avec succès",
	})
}

// GetAlertes retourne les alertes de stock dérivées de l'état courant
func (ctrl *ArticleController) GetAlertes(c *fiber.Ctx) error {
	alertes, err := ctrl.Stock.AlertesCourantes()
	if err != nil {
		return c.Status(500).JSON(AlertesResponse{
			Success: false,
			Message: "Erreur lors du calcul des alertes",
		})
	}

	return c.JSON(AlertesResponse{
		Success: true,
		Message: "Alertes récupérées",
		Alertes: alertes,
	})
}

// Méthodes de validation

func (ctrl *ArticleController) validateCreateArticleRequest(req *CreateArticleRequest) []string {
	var erreurs []string
	if req.Reference == "" {
		erreurs = append(erreurs, "La référence est requise")
	}
	if req.Designation == "" {
		erreurs = append(erreurs, "La désignation est requise")
	}
	if req.QuantiteInitiale < 0 {
		erreurs = append(erreurs, "La quantité initiale doit être positive ou nulle")
	}
	if req.SeuilCritique < 0 {
		erreurs = append(erreurs, "Le seuil critique doit être positif ou nul")
	}
	return erreurs
}

func (ctrl *ArticleController) diffuserAlertes() {
	if ctrl.Hub != nil {
		go ctrl.Hub.DiffuserAlertes()
	}
}
