package utils

import (
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Claims représente la structure du token JWT
type Claims struct {
	UserID                string `json:"user_id"`
	Email                 string `json:"email"`
	Role                  string `json:"role"`
	DoitChangerMotDePasse bool   `json:"doit_changer_mot_de_passe"`
	jwt.RegisteredClaims
}

func secretKey() string {
	// Clé secrète depuis l'environnement ou valeur par défaut
	key := os.Getenv("JWT_SECRET")
	if key == "" {
		key = "stock-secret-key-change-in-production"
	}
	return key
}

// GenerateJWT crée un token JWT pour l'utilisateur
func GenerateJWT(userID, email, role string, doitChangerMotDePasse bool) (string, error) {
	claims := &Claims{
		UserID:                userID,
		Email:                 email,
		Role:                  role,
		DoitChangerMotDePasse: doitChangerMotDePasse,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)), // Token valable 24 heures
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(secretKey()))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ValidateJWT vérifie et parse un token JWT
func ValidateJWT(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Vérification de la méthode de signature
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secretKey()), nil
	}, jwt.WithLeeway(5*time.Minute))

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrTokenMalformed
}

// AuthMiddleware middleware de vérification du token JWT
func AuthMiddleware(c *fiber.Ctx) error {
	// Récupération du token depuis l'en-tête Authorization
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(401).JSON(fiber.Map{
			"error": "Authorization header required",
		})
	}

	// Vérification du format Bearer token
	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return c.Status(401).JSON(fiber.Map{
			"error": "Invalid authorization header format",
		})
	}

	claims, err := ValidateJWT(tokenParts[1])
	if err != nil {
		return c.Status(401).JSON(fiber.Map{
			"error": "Invalid token",
		})
	}

	// Identité conservée dans le contexte de la requête
	c.Locals("user_id", claims.UserID)
	c.Locals("user_email", claims.Email)
	c.Locals("user_role", claims.Role)
	c.Locals("doit_changer_mot_de_passe", claims.DoitChangerMotDePasse)

	return c.Next()
}

// RequireRoles middleware limitant l'accès aux rôles indiqués
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("user_role").(string)
		for _, r := range roles {
			if role == r {
				return c.Next()
			}
		}
		return c.Status(403).JSON(fiber.Map{
			"error":   true,
			"message": "Accès refusé : droits insuffisants",
		})
	}
}

// RequireMotDePasseChange bloque les opérations tant que l'utilisateur
// n'a pas remplacé son mot de passe initial
func RequireMotDePasseChange(c *fiber.Ctx) error {
	if doit, _ := c.Locals("doit_changer_mot_de_passe").(bool); doit {
		return c.Status(403).JSON(fiber.Map{
			"error":   true,
			"message": "Vous devez changer votre mot de passe avant de continuer",
		})
	}
	return c.Next()
}
