package controllers

import (
	"regexp"
	"strings"

	"stock-backend/models"
	"stock-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UtilisateurController contrôleur pour la gestion des comptes utilisateurs
type UtilisateurController struct {
	DB *gorm.DB
}

// NewUtilisateurController crée une nouvelle instance de UtilisateurController
func NewUtilisateurController(db *gorm.DB) *UtilisateurController {
	return &UtilisateurController{DB: db}
}

// CreateUtilisateurRequest structure de la requête de création d'utilisateur
type CreateUtilisateurRequest struct {
	Nom        string `json:"nom" validate:"required"`
	Prenom     string `json:"prenom" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	MotDePasse string `json:"motDePasse"` // Généré aléatoirement si absent
	Role       string `json:"role" validate:"required,oneof=admin magasinier utilisateur"`
}

// UpdateUtilisateurRequest structure de la requête de modification
// d'utilisateur. Seuls les champs présents sont appliqués ; un mot de passe
// fourni est hashé avant enregistrement.
type UpdateUtilisateurRequest struct {
	Nom        *string `json:"nom"`
	Prenom     *string `json:"prenom"`
	Email      *string `json:"email"`
	MotDePasse *string `json:"motDePasse"`
	Role       *string `json:"role"`
	Actif      *bool   `json:"actif"`
}

// UtilisateurResponse structure de la réponse avec un utilisateur
type UtilisateurResponse struct {
	Success     bool                `json:"success"`
	Message     string              `json:"message"`
	Erreurs     []string            `json:"erreurs,omitempty"`
	Utilisateur *models.Utilisateur `json:"utilisateur,omitempty"`
	// Mot de passe généré, retourné une seule fois à la création ou à la réinitialisation
	MotDePasseGenere string `json:"motDePasseGenere,omitempty"`
}

// UtilisateursResponse structure de la réponse avec la liste des utilisateurs
type UtilisateursResponse struct {
	Success      bool                 `json:"success"`
	Message      string               `json:"message"`
	Utilisateurs []models.Utilisateur `json:"utilisateurs"`
	Total        int64                `json:"total"`
}

// GetUtilisateurs retourne la liste des utilisateurs
func (uc *UtilisateurController) GetUtilisateurs(c *fiber.Ctx) error {
	var utilisateurs []models.Utilisateur
	if err := uc.DB.Order("nom, prenom").Find(&utilisateurs).Error; err != nil {
		return c.Status(500).JSON(UtilisateursResponse{
			Success: false,
			Message: "Erreur lors de la récupération des utilisateurs",
		})
	}

	return c.JSON(UtilisateursResponse{
		Success:      true,
		Message:      "Utilisateurs récupérés",
		Utilisateurs: utilisateurs,
		Total:        int64(len(utilisateurs)),
	})
}

// CreateUtilisateur crée un nouvel utilisateur. Le compte démarre toujours
// avec l'obligation de changer son mot de passe à la première connexion.
func (uc *UtilisateurController) CreateUtilisateur(c *fiber.Ctx) error {
	var req CreateUtilisateurRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(UtilisateurResponse{
			Success: false,
			Message: "Format de données invalide",
		})
	}

	if erreurs := uc.validateCreateUtilisateurRequest(&req); len(erreurs) > 0 {
		return c.Status(400).JSON(UtilisateurResponse{
			Success: false,
			Message: erreurs[0],
			Erreurs: erreurs,
		})
	}

	email := strings.ToLower(req.Email)

	var existant models.Utilisateur
	if err := uc.DB.Where("email = ?", email).First(&existant).Error; err == nil {
		return c.Status(409).JSON(UtilisateurResponse{
			Success: false,
			Message: "Un utilisateur avec cet email existe déjà",
		})
	}

	// Sans mot de passe fourni, un mot de passe conforme est généré et
	// communiqué une seule fois dans la réponse
	motDePasse := req.MotDePasse
	motDePasseGenere := ""
	if motDePasse == "" {
		motDePasse = utils.GenererMotDePasseAleatoire(12)
		motDePasseGenere = motDePasse
	}

	hash, err := utils.HashPassword(motDePasse)
	if err != nil {
		return c.Status(500).JSON(UtilisateurResponse{
			Success: false,
			Message: "Erreur lors de la création de l'utilisateur",
		})
	}

	utilisateur := models.Utilisateur{
		Nom:                   req.Nom,
		Prenom:                req.Prenom,
		Email:                 email,
		MotDePasse:            hash,
		Role:                  req.Role,
		Actif:                 true,
		DoitChangerMotDePasse: true,
	}

	if err := uc.DB.Create(&utilisateur).Error; err != nil {
		return c.Status(500).JSON(UtilisateurResponse{
			Success: false,
			Message: "Erreur lors de la création de l'utilisateur",
		})
	}

	return c.Status(201).JSON(UtilisateurResponse{
		Success:          true,
		Message:          "Utilisateur créé avec succès",
		Utilisateur:      &utilisateur,
		MotDePasseGenere: motDePasseGenere,
	})
}

// UpdateUtilisateur modifie un utilisateur existant
func (uc *UtilisateurController) UpdateUtilisateur(c *fiber.Ctx) error {
	var utilisateur models.Utilisateur
	if err := uc.DB.First(&utilisateur, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(404).JSON(UtilisateurResponse{
			Success: false,
			Message: "Utilisateur introuvable",
		})
	}

	var req UpdateUtilisateurRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(UtilisateurResponse{
			Success: false,
			Message: "Format de données invalide",
		})
	}

	if req.Nom != nil {
		utilisateur.Nom = *req.Nom
	}
	if req.Prenom != nil {
		utilisateur.Prenom = *req.Prenom
	}
	if req.Email != nil {
		email := strings.ToLower(*req.Email)
		if !uc.isValidEmail(email) {
			return c.Status(400).JSON(UtilisateurResponse{
				Success: false,
				Message: "Format d'email invalide",
			})
		}
		var count int64
		uc.DB.Model(&models.Utilisateur{}).Where("email = ? AND id <> ?", email, utilisateur.ID).Count(&count)
		if count > 0 {
			return c.Status(409).JSON(UtilisateurResponse{
				Success: false,
				Message: "Un utilisateur avec cet email existe déjà",
			})
		}
		utilisateur.Email = email
	}
	if req.Role != nil {
		if !uc.isValidRole(*req.Role) {
			return c.Status(400).JSON(UtilisateurResponse{
				Success: false,
				Message: "Rôle invalide",
			})
		}
		utilisateur.Role = *req.Role
	}
	if req.Actif != nil {
		utilisateur.Actif = *req.Actif
	}
	if req.MotDePasse != nil && *req.MotDePasse != "" {
		hash, err := utils.HashPassword(*req.MotDePasse)
		if err != nil {
			return c.Status(500).JSON(UtilisateurResponse{
				Success: false,
				Message: "Erreur lors de la modification de l'utilisateur",
			})
		}
		utilisateur.MotDePasse = hash
		utilisateur.DoitChangerMotDePasse = true
	}

	if err := uc.DB.Save(&utilisateur).Error; err != nil {
		return c.Status(500).JSON(UtilisateurResponse{
			Success: false,
			Message: "Erreur lors de la modification de l'utilisateur",
		})
	}

	return c.JSON(UtilisateurResponse{
		Success:     true,
		Message:     "Utilisateur modifié avec succès",
		Utilisateur: &utilisateur,
	})
}

// DeleteUtilisateur supprime un utilisateur
func (uc *UtilisateurController) DeleteUtilisateur(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	if userID == c.Params("id") {
		return c.Status(400).JSON(UtilisateurResponse{
			Success: false,
			Message: "Impossible de supprimer son propre compte",
		})
	}

	var utilisateur models.Utilisateur
	if err := uc.DB.First(&utilisateur, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(404).JSON(UtilisateurResponse{
			Success: false,
			Message: "Utilisateur introuvable",
		})
	}

	if err := uc.DB.Delete(&utilisateur).Error; err != nil {
		return c.Status(500).JSON(UtilisateurResponse{
			Success: false,
			Message: "Erreur lors de la suppression de l'utilisateur",
		})
	}

	return c.JSON(UtilisateurResponse{
		Success: true,
		Message: "Utilisateur supprimé avec succès",
	})
}

// ReinitialiserMotDePasse génère un nouveau mot de passe conforme pour
// l'utilisateur et le retourne une seule fois. Le compte repasse en
// obligation de changement.
func (uc *UtilisateurController) ReinitialiserMotDePasse(c *fiber.Ctx) error {
	var utilisateur models.Utilisateur
	if err := uc.DB.First(&utilisateur, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(404).JSON(UtilisateurResponse{
			Success: false,
			Message: "Utilisateur introuvable",
		})
	}

	motDePasse := utils.GenererMotDePasseAleatoire(12)
	hash, err := utils.HashPassword(motDePasse)
	if err != nil {
		return c.Status(500).JSON(UtilisateurResponse{
			Success: false,
			Message: "Erreur lors de la réinitialisation du mot de passe",
		})
	}

	if err := uc.DB.Model(&utilisateur).Updates(map[string]interface{}{
		"mot_de_passe":              hash,
		"doit_changer_mot_de_passe": true,
	}).Error; err != nil {
		return c.Status(500).JSON(UtilisateurResponse{
			Success: false,
			Message: "Erreur lors de la réinitialisation du mot de passe",
		})
	}

	utilisateur.DoitChangerMotDePasse = true

	return c.JSON(UtilisateurResponse{
		Success:          true,
		Message:          "Mot de passe réinitialisé avec succès",
		Utilisateur:      &utilisateur,
		MotDePasseGenere: motDePasse,
	})
}

// Méthodes de validation

func (uc *UtilisateurController) validateCreateUtilisateurRequest(req *CreateUtilisateurRequest) []string {
	var erreurs []string
	if req.Nom == "" {
		erreurs = append(erreurs, "Le nom est requis")
	}
	if req.Prenom == "" {
		erreurs = append(erreurs, "Le prénom est requis")
	}
	if !uc.isValidEmail(req.Email) {
		erreurs = append(erreurs, "Format d'email invalide")
	}
	if !uc.isValidRole(req.Role) {
		erreurs = append(erreurs, "Rôle invalide")
	}
	return erreurs
}

func (uc *UtilisateurController) isValidRole(role string) bool {
	return role == models.RoleAdmin || role == models.RoleMagasinier || role == models.RoleUtilisateur
}

func (uc *UtilisateurController) isValidEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}
