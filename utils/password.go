package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"stock-backend/models"
)

// Classes de caractères utilisées pour la génération de mots de passe
const (
	majuscules         = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	minuscules         = "abcdefghijklmnopqrstuvwxyz"
	chiffres           = "0123456789"
	caracteresSpeciaux = "!@#$%^&*()_+-=[]{}|;:,.<>?"
)

// motsDePasseCommuns liste fixe de mots de passe interdits (comparaison insensible à la casse)
var motsDePasseCommuns = []string{
	"password", "123456", "123456789", "qwerty", "abc123", "password123",
	"admin", "letmein", "welcome", "monkey", "1234567890", "azerty",
}

// PolitiqueParDefaut retourne la politique de mot de passe par défaut
func PolitiqueParDefaut() models.PolitiqueMotDePasse {
	return models.PolitiqueMotDePasse{
		LongueurMinimale:         8,
		MajusculesRequises:       true,
		MinusculesRequises:       true,
		ChiffresRequis:           true,
		CaracteresSpeciauxRequis: true,
		InterdireMotsCommuns:     true,
	}
}

// HashPassword hashe un mot de passe avec bcrypt
func HashPassword(motDePasse string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(motDePasse), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash vérifie un mot de passe contre son hash
func CheckPasswordHash(motDePasse, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(motDePasse))
	return err == nil
}

// ValiderMotDePasse valide un mot de passe selon la politique.
// Toutes les règles sont évaluées : la liste retournée contient un message
// par règle violée, dans l'ordre de déclaration de la politique.
func ValiderMotDePasse(motDePasse string, politique models.PolitiqueMotDePasse) (bool, []string) {
	var erreurs []string

	// Longueur minimale
	if len(motDePasse) < politique.LongueurMinimale {
		erreurs = append(erreurs, fmt.Sprintf("Le mot de passe doit contenir au moins %d caractères", politique.LongueurMinimale))
	}

	// Majuscules
	if politique.MajusculesRequises && !strings.ContainsFunc(motDePasse, unicode.IsUpper) {
		erreurs = append(erreurs, "Le mot de passe doit contenir au moins une majuscule")
	}

	// Minuscules
	if politique.MinusculesRequises && !strings.ContainsFunc(motDePasse, unicode.IsLower) {
		erreurs = append(erreurs, "Le mot de passe doit contenir au moins une minuscule")
	}

	// Chiffres
	if politique.ChiffresRequis && !strings.ContainsAny(motDePasse, chiffres) {
		erreurs = append(erreurs, "Le mot de passe doit contenir au moins un chiffre")
	}

	// Caractères spéciaux
	if politique.CaracteresSpeciauxRequis && !strings.ContainsAny(motDePasse, `!@#$%^&*()_+-=[]{};':"\|,.<>/?`) {
		erreurs = append(erreurs, "Le mot de passe doit contenir au moins un caractère spécial")
	}

	// Mots de passe communs
	if politique.InterdireMotsCommuns {
		lower := strings.ToLower(motDePasse)
		for _, commun := range motsDePasseCommuns {
			if lower == commun {
				erreurs = append(erreurs, "Ce mot de passe est trop commun, veuillez en choisir un autre")
				break
			}
		}
	}

	return len(erreurs) == 0, erreurs
}

// GenererMotDePasseAleatoire génère un mot de passe aléatoire conforme à la
// politique par défaut : au moins un caractère de chaque classe, complété
// depuis l'alphabet combiné puis mélangé.
func GenererMotDePasseAleatoire(longueur int) string {
	if longueur < 8 {
		longueur = 12
	}

	tousCaracteres := majuscules + minuscules + chiffres + caracteresSpeciaux

	motDePasse := make([]byte, 0, longueur)

	// Un caractère de chaque classe pour garantir la conformité
	motDePasse = append(motDePasse, majuscules[randInt(len(majuscules))])
	motDePasse = append(motDePasse, minuscules[randInt(len(minuscules))])
	motDePasse = append(motDePasse, chiffres[randInt(len(chiffres))])
	motDePasse = append(motDePasse, caracteresSpeciaux[randInt(len(caracteresSpeciaux))])

	// Complément depuis l'alphabet combiné
	for i := 4; i < longueur; i++ {
		motDePasse = append(motDePasse, tousCaracteres[randInt(len(tousCaracteres))])
	}

	// Mélange pour ne pas rendre la position des classes prévisible
	for i := len(motDePasse) - 1; i > 0; i-- {
		j := randInt(i + 1)
		motDePasse[i], motDePasse[j] = motDePasse[j], motDePasse[i]
	}

	return string(motDePasse)
}

// randInt retourne un entier aléatoire cryptographique dans [0, max)
func randInt(max int) int {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		// crypto/rand n'échoue que si la source d'entropie du système est indisponible
		panic(err)
	}
	return int(n.Int64())
}
