package controllers

import (
	"errors"

	"stock-backend/models"
	"stock-backend/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// BonController contrôleur pour les bons d'attribution
type BonController struct {
	DB    *gorm.DB
	Stock *services.StockService
	Hub   *services.AlerteHub
}

// NewBonController crée une nouvelle instance de BonController
func NewBonController(db *gorm.DB, hub *services.AlerteHub) *BonController {
	return &BonController{DB: db, Stock: services.NewStockService(db), Hub: hub}
}

// CreateBonRequest structure de la requête de création de bon
type CreateBonRequest struct {
	NumeroBon    string                   `json:"numerobon"` // Généré côté serveur si absent
	Destinataire string                   `json:"destinataire" validate:"required"`
	Articles     []services.LigneBonInput `json:"articles" validate:"required,min=1"`
}

// BonResponse structure de la réponse avec un bon
type BonResponse struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Erreurs []string               `json:"erreurs,omitempty"`
	Bon     *models.BonAttribution `json:"bon,omitempty"`
}

// BonsResponse structure de la réponse avec la liste des bons
type BonsResponse struct {
	Success bool                    `json:"success"`
	Message string                  `json:"message"`
	Bons    []models.BonAttribution `json:"bons"`
	Total   int64                   `json:"total"`
}

// GetBons retourne la liste des bons d'attribution, filtrable par statut
func (bc *BonController) GetBons(c *fiber.Ctx) error {
	var bons []models.BonAttribution

	query := bc.DB.Preload("Articles", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	}).Order("date_attribution DESC")

	if statut := c.Query("statut"); statut != "" {
		query = query.Where("statut = ?", statut)
	}

	if err := query.Find(&bons).Error; err != nil {
		return c.Status(500).JSON(BonsResponse{
			Success: false,
			Message: "Erreur lors de la récupération des bons d'attribution",
		})
	}

	return c.JSON(BonsResponse{
		Success: true,
		Message: "Bons d'attribution récupérés",
		Bons:    bons,
		Total:   int64(len(bons)),
	})
}

// GetBon retourne un bon d'attribution par son identifiant
func (bc *BonController) GetBon(c *fiber.Ctx) error {
	var bon models.BonAttribution
	if err := bc.DB.Preload("Articles", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	}).First(&bon, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(404).JSON(BonResponse{
			Success: false,
			Message: "Bon d'attribution introuvable",
		})
	}

	return c.JSON(BonResponse{
		Success: true,
		Message: "Bon d'attribution récupéré",
		Bon:     &bon,
	})
}

// CreateBon crée un bon d'attribution en attente. Chaque ligne est
// contrôlée contre le stock du moment ; la déduction réelle n'a lieu qu'à
// la validation.
func (bc *BonController) CreateBon(c *fiber.Ctx) error {
	var req CreateBonRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(BonResponse{
			Success: false,
			Message: "Format de données invalide",
		})
	}

	if erreurs := bc.validateCreateBonRequest(&req); len(erreurs) > 0 {
		return c.Status(400).JSON(BonResponse{
			Success: false,
			Message: erreurs[0],
			Erreurs: erreurs,
		})
	}

	utilisateur, _ := c.Locals("user_email").(string)

	bon, err := bc.Stock.CreerBon(req.NumeroBon, req.Destinataire, utilisateur, req.Articles)
	if err != nil {
		if errors.Is(err, services.ErrNumeroBonExistant) {
			return c.Status(409).JSON(BonResponse{
				Success: false,
				Message: "Un bon avec ce numéro existe déjà",
			})
		}
		if errors.Is(err, services.ErrArticleIntrouvable) {
			return c.Status(404).JSON(BonResponse{
				Success: false,
				Message: "Article introuvable",
			})
		}
		var stockErr *services.ErrStockInsuffisant
		if errors.As(err, &stockErr) {
			return c.Status(400).JSON(BonResponse{
				Success: false,
				Message: "Stock insuffisant : " + stockErr.Error(),
			})
		}
		return c.Status(500).JSON(BonResponse{
			Success: false,
			Message: "Erreur lors de la création du bon d'attribution",
		})
	}

	return c.Status(201).JSON(BonResponse{
		Success: true,
		Message: "Bon d'attribution créé avec succès",
		Bon:     bon,
	})
}

// ValiderBon valide un bon en attente : le stock de chaque ligne est déduit
// et un mouvement de sortie est créé par ligne. Une seconde validation du
// même bon est refusée sans effet.
func (bc *BonController) ValiderBon(c *fiber.Ctx) error {
	bon, err := bc.Stock.ValiderBon(c.Params("id"))
	if err != nil {
		return bc.repondreErreurBon(c, err, "Erreur lors de la validation du bon d'attribution")
	}

	bc.diffuserAlertes()

	return c.JSON(BonResponse{
		Success: true,
		Message: "Bon d'attribution validé avec succès",
		Bon:     bon,
	})
}

// AnnulerBon annule un bon en attente, sans effet sur le stock
func (bc *BonController) AnnulerBon(c *fiber.Ctx) error {
	bon, err := bc.Stock.AnnulerBon(c.Params("id"))
	if err != nil {
		return bc.repondreErreurBon(c, err, "Erreur lors de l'annulation du bon d'attribution")
	}

	return c.JSON(BonResponse{
		Success: true,
		Message: "Bon d'attribution annulé",
		Bon:     bon,
	})
}

// Méthodes de validation

func (bc *BonController) validateCreateBonRequest(req *CreateBonRequest) []string {
	var erreurs []string
	if req.Destinataire == "" {
		erreurs = append(erreurs, "Le destinataire est requis")
	}
	if len(req.Articles) == 0 {
		erreurs = append(erreurs, "Le bon doit contenir au moins une ligne")
	}
	for _, ligne := range req.Articles {
		if ligne.ArticleID == "" {
			erreurs = append(erreurs, "Chaque ligne doit référencer un article")
			break
		}
	}
	for _, ligne := range req.Articles {
		if ligne.QuantiteSortie <= 0 {
			erreurs = append(erreurs, "Chaque quantité de sortie doit être strictement positive")
			break
		}
	}
	return erreurs
}

func (bc *BonController) repondreErreurBon(c *fiber.Ctx, err error, messageDefaut string) error {
	if errors.Is(err, services.ErrBonIntrouvable) {
		return c.Status(404).JSON(BonResponse{
			Success: false,
			Message: "Bon d'attribution introuvable",
		})
	}
	if errors.Is(err, services.ErrBonDejaTraite) {
		return c.Status(409).JSON(BonResponse{
			Success: false,
			Message: "Le bon d'attribution n'est plus en attente",
		})
	}
	if errors.Is(err, services.ErrArticleIntrouvable) {
		return c.Status(409).JSON(BonResponse{
			Success: false,
			Message: "Un article du bon n'existe plus",
		})
	}
	var stockErr *services.ErrStockInsuffisant
	if errors.As(err, &stockErr) {
		return c.Status(409).JSON(BonResponse{
			Success: false,
			Message: "Stock insuffisant : " + stockErr.Error(),
		})
	}
	return c.Status(500).JSON(BonResponse{
		Success: false,
		Message: messageDefaut,
	})
}

func (bc *BonController) diffuserAlertes() {
	if bc.Hub != nil {
		go bc.Hub.DiffuserAlertes()
	}
}
