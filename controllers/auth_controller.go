package controllers

import (
	"regexp"
	"strings"
	"time"

	"stock-backend/models"
	"stock-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuthController contrôleur pour l'authentification
type AuthController struct {
	DB *gorm.DB
}

// NewAuthController crée une nouvelle instance de AuthController
func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// LoginRequest structure de la requête de connexion
type LoginRequest struct {
	Email      string `json:"email" validate:"required,email"`
	MotDePasse string `json:"motDePasse" validate:"required"`
}

// ChangerMotDePasseRequest structure de la requête de changement de mot de passe
type ChangerMotDePasseRequest struct {
	MotDePasseActuel  string `json:"motDePasseActuel" validate:"required"`
	NouveauMotDePasse string `json:"nouveauMotDePasse" validate:"required"`
}

// AuthResponse structure de la réponse d'authentification
type AuthResponse struct {
	Success     bool                `json:"success"`
	Message     string              `json:"message"`
	Erreurs     []string            `json:"erreurs,omitempty"`
	Token       string              `json:"token,omitempty"`
	Utilisateur *models.Utilisateur `json:"utilisateur,omitempty"`
}

// Login authentifie un utilisateur et retourne un token JWT.
// L'échec ne précise jamais si c'est l'email ou le mot de passe qui est en
// cause, et un compte désactivé reçoit la même réponse générique.
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req LoginRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(AuthResponse{
			Success: false,
			Message: "Format de données invalide",
		})
	}

	if !ac.isValidEmail(req.Email) || req.MotDePasse == "" {
		return c.Status(400).JSON(AuthResponse{
			Success: false,
			Message: "Email et mot de passe requis",
		})
	}

	var utilisateur models.Utilisateur
	if err := ac.DB.Where("email = ?", strings.ToLower(req.Email)).First(&utilisateur).Error; err != nil {
		return c.Status(401).JSON(AuthResponse{
			Success: false,
			Message: "Email ou mot de passe incorrect",
		})
	}

	if !utils.CheckPasswordHash(req.MotDePasse, utilisateur.MotDePasse) {
		return c.Status(401).JSON(AuthResponse{
			Success: false,
			Message: "Email ou mot de passe incorrect",
		})
	}

	// Un compte désactivé ne peut pas se connecter
	if !utilisateur.Actif {
		return c.Status(401).JSON(AuthResponse{
			Success: false,
			Message: "Email ou mot de passe incorrect",
		})
	}

	now := time.Now()
	ac.DB.Model(&utilisateur).Update("derniere_connexion", now)
	utilisateur.DerniereConnexion = &now

	token, err := utils.GenerateJWT(utilisateur.ID, utilisateur.Email, utilisateur.Role, utilisateur.DoitChangerMotDePasse)
	if err != nil {
		return c.Status(500).JSON(AuthResponse{
			Success: false,
			Message: "Erreur lors de la création du token",
		})
	}

	return c.JSON(AuthResponse{
		Success:     true,
		Message:     "Connexion réussie",
		Token:       token,
		Utilisateur: &utilisateur,
	})
}

// ChangerMotDePasse remplace le mot de passe de l'utilisateur connecté.
// Le mot de passe actuel est vérifié, le nouveau est validé contre la
// politique active, et aucun des deux échecs ne laisse de mutation
// partielle. Un nouveau token est émis avec l'obligation de changement levée.
func (ac *AuthController) ChangerMotDePasse(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	var req ChangerMotDePasseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(AuthResponse{
			Success: false,
			Message: "Format de données invalide",
		})
	}

	var utilisateur models.Utilisateur
	if err := ac.DB.First(&utilisateur, "id = ?", userID).Error; err != nil {
		return c.Status(404).JSON(AuthResponse{
			Success: false,
			Message: "Utilisateur introuvable",
		})
	}

	if !utils.CheckPasswordHash(req.MotDePasseActuel, utilisateur.MotDePasse) {
		return c.Status(401).JSON(AuthResponse{
			Success: false,
			Message: "Mot de passe actuel incorrect",
		})
	}

	politique := ac.politiqueActive()
	if valide, erreurs := utils.ValiderMotDePasse(req.NouveauMotDePasse, politique); !valide {
		return c.Status(400).JSON(AuthResponse{
			Success: false,
			Message: "Le nouveau mot de passe ne respecte pas la politique",
			Erreurs: erreurs,
		})
	}

	hash, err := utils.HashPassword(req.NouveauMotDePasse)
	if err != nil {
		return c.Status(500).JSON(AuthResponse{
			Success: false,
			Message: "Erreur lors du changement de mot de passe",
		})
	}

	if err := ac.DB.Model(&utilisateur).Updates(map[string]interface{}{
		"mot_de_passe":              hash,
		"doit_changer_mot_de_passe": false,
	}).Error; err != nil {
		return c.Status(500).JSON(AuthResponse{
			Success: false,
			Message: "Erreur lors du changement de mot de passe",
		})
	}

	token, err := utils.GenerateJWT(utilisateur.ID, utilisateur.Email, utilisateur.Role, false)
	if err != nil {
		return c.Status(500).JSON(AuthResponse{
			Success: false,
			Message: "Erreur lors de la création du token",
		})
	}

	utilisateur.DoitChangerMotDePasse = false

	return c.JSON(AuthResponse{
		Success:     true,
		Message:     "Mot de passe changé avec succès",
		Token:       token,
		Utilisateur: &utilisateur,
	})
}

// Me retourne l'utilisateur associé au token courant
func (ac *AuthController) Me(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	var utilisateur models.Utilisateur
	if err := ac.DB.First(&utilisateur, "id = ?", userID).Error; err != nil {
		return c.Status(404).JSON(AuthResponse{
			Success: false,
			Message: "Utilisateur introuvable",
		})
	}

	return c.JSON(AuthResponse{
		Success:     true,
		Message:     "Utilisateur connecté",
		Utilisateur: &utilisateur,
	})
}

// politiqueActive charge la politique en base, ou la politique par défaut
// si aucune n'a encore été enregistrée
func (ac *AuthController) politiqueActive() models.PolitiqueMotDePasse {
	var politique models.PolitiqueMotDePasse
	if err := ac.DB.First(&politique).Error; err != nil {
		return utils.PolitiqueParDefaut()
	}
	return politique
}

func (ac *AuthController) isValidEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}
