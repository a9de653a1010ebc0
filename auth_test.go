package main

import (
	"testing"

	"stock-backend/controllers"
	"stock-backend/models"
	"stock-backend/utils"

	"github.com/stretchr/testify/assert"
)

func TestLogin(t *testing.T) {
	db := setupTestDB()
	app := setupTestApp(db)

	hash, _ := utils.HashPassword("Secret123!")
	actif := models.Utilisateur{
		Nom: "Durand", Prenom: "Claire", Email: "claire.durand@stock.com",
		MotDePasse: hash, Role: models.RoleMagasinier, Actif: true,
	}
	db.Create(&actif)

	inactif := models.Utilisateur{
		Nom: "Martin", Prenom: "Paul", Email: "paul.martin@stock.com",
		MotDePasse: hash, Role: models.RoleUtilisateur, Actif: false,
	}
	db.Create(&inactif)

	tests := []struct {
		name           string
		request        controllers.LoginRequest
		expectedStatus int
	}{
		{
			name:           "Connexion réussie",
			request:        controllers.LoginRequest{Email: "claire.durand@stock.com", MotDePasse: "Secret123!"},
			expectedStatus: 200,
		},
		{
			name:           "Mot de passe incorrect",
			request:        controllers.LoginRequest{Email: "claire.durand@stock.com", MotDePasse: "mauvais"},
			expectedStatus: 401,
		},
		{
			name:           "Email inconnu",
			request:        controllers.LoginRequest{Email: "inconnu@stock.com", MotDePasse: "Secret123!"},
			expectedStatus: 401,
		},
		{
			name:           "Compte désactivé",
			request:        controllers.LoginRequest{Email: "paul.martin@stock.com", MotDePasse: "Secret123!"},
			expectedStatus: 401,
		},
		{
			name:           "Email invalide",
			request:        controllers.LoginRequest{Email: "pas-un-email", MotDePasse: "Secret123!"},
			expectedStatus: 400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(jsonRequest("POST", "/auth/login", "", tt.request))
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			var response controllers.AuthResponse
			assert.NoError(t, decodeBody(resp, &response))

			if tt.expectedStatus == 200 {
				assert.True(t, response.Success)
				assert.NotEmpty(t, response.Token)
				assert.NotNil(t, response.Utilisateur)
			} else {
				assert.False(t, response.Success)
				assert.Empty(t, response.Token)
			}

			// L'échec ne révèle jamais si l'email ou le mot de passe est en cause
			if tt.expectedStatus == 401 {
				assert.Equal(t, "Email ou mot de passe incorrect", response.Message)
			}
		})
	}
}

func TestLoginMetAJourDerniereConnexion(t *testing.T) {
	db := setupTestDB()
	app := setupTestApp(db)

	hash, _ := utils.HashPassword("Secret123!")
	utilisateur := models.Utilisateur{
		Nom: "Durand", Prenom: "Claire", Email: "claire@stock.com",
		MotDePasse: hash, Role: models.RoleAdmin, Actif: true,
	}
	db.Create(&utilisateur)
	assert.Nil(t, utilisateur.DerniereConnexion)

	resp, err := app.Test(jsonRequest("POST", "/auth/login", "", controllers.LoginRequest{
		Email: "claire@stock.com", MotDePasse: "Secret123!",
	}))
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var rechargee models.Utilisateur
	db.First(&rechargee, "id = ?", utilisateur.ID)
	assert.NotNil(t, rechargee.DerniereConnexion)
}

func TestChangerMotDePasse(t *testing.T) {
	db := setupTestDB()
	app := setupTestApp(db)

	hash, _ := utils.HashPassword("Initial123!")
	utilisateur := models.Utilisateur{
		Nom: "Durand", Prenom: "Claire", Email: "claire@stock.com",
		MotDePasse: hash, Role: models.RoleMagasinier, Actif: true,
		DoitChangerMotDePasse: true,
	}
	db.Create(&utilisateur)
	token, _ := utils.GenerateJWT(utilisateur.ID, utilisateur.Email, utilisateur.Role, true)

	// Mot de passe actuel incorrect
	resp, _ := app.Test(jsonRequest("POST", "/auth/change-password", token, controllers.ChangerMotDePasseRequest{
		MotDePasseActuel: "mauvais", NouveauMotDePasse: "Nouveau123!",
	}))
	assert.Equal(t, 401, resp.StatusCode)

	// Nouveau mot de passe trop faible : violations listées, aucune mutation
	resp, _ = app.Test(jsonRequest("POST", "/auth/change-password", token, controllers.ChangerMotDePasseRequest{
		MotDePasseActuel: "Initial123!", NouveauMotDePasse: "abc",
	}))
	assert.Equal(t, 400, resp.StatusCode)

	var refus controllers.AuthResponse
	assert.NoError(t, decodeBody(resp, &refus))
	assert.False(t, refus.Success)
	assert.GreaterOrEqual(t, len(refus.Erreurs), 3)

	var inchangee models.Utilisateur
	db.First(&inchangee, "id = ?", utilisateur.ID)
	assert.True(t, inchangee.DoitChangerMotDePasse)
	assert.True(t, utils.CheckPasswordHash("Initial123!", inchangee.MotDePasse))

	// Changement réussi : hash remplacé, obligation levée, nouveau token
	resp, _ = app.Test(jsonRequest("POST", "/auth/change-password", token, controllers.ChangerMotDePasseRequest{
		MotDePasseActuel: "Initial123!", NouveauMotDePasse: "Nouveau123!",
	}))
	assert.Equal(t, 200, resp.StatusCode)

	var succes controllers.AuthResponse
	assert.NoError(t, decodeBody(resp, &succes))
	assert.True(t, succes.Success)
	assert.NotEmpty(t, succes.Token)

	var modifiee models.Utilisateur
	db.First(&modifiee, "id = ?", utilisateur.ID)
	assert.False(t, modifiee.DoitChangerMotDePasse)
	assert.True(t, utils.CheckPasswordHash("Nouveau123!", modifiee.MotDePasse))
	assert.False(t, utils.CheckPasswordHash("Initial123!", modifiee.MotDePasse))
}

func TestObligationChangementMotDePasse(t *testing.T) {
	db := setupTestDB()
	app := setupTestApp(db)

	hash, _ := utils.HashPassword("Initial123!")
	utilisateur := models.Utilisateur{
		Nom: "Durand", Prenom: "Claire", Email: "claire@stock.com",
		MotDePasse: hash, Role: models.RoleAdmin, Actif: true,
		DoitChangerMotDePasse: true,
	}
	db.Create(&utilisateur)
	token, _ := utils.GenerateJWT(utilisateur.ID, utilisateur.Email, utilisateur.Role, true)

	// La lecture reste possible
	resp, _ := app.Test(jsonRequest("GET", "/articles", token, nil))
	assert.Equal(t, 200, resp.StatusCode)

	// Les mutations du registre sont bloquées tant que le mot de passe n'a pas changé
	resp, _ = app.Test(jsonRequest("POST", "/articles", token, controllers.CreateArticleRequest{
		Reference: "REF-100", Designation: "Câble HDMI", QuantiteInitiale: 5,
	}))
	assert.Equal(t, 403, resp.StatusCode)
}

func TestAuthMe(t *testing.T) {
	db := setupTestDB()
	app := setupTestApp(db)

	utilisateur, token := createTestUtilisateur(db, models.RoleMagasinier)

	resp, _ := app.Test(jsonRequest("GET", "/auth/me", token, nil))
	assert.Equal(t, 200, resp.StatusCode)

	var response controllers.AuthResponse
	assert.NoError(t, decodeBody(resp, &response))
	assert.True(t, response.Success)
	assert.Equal(t, utilisateur.ID, response.Utilisateur.ID)

	// Sans token
	resp, _ = app.Test(jsonRequest("GET", "/auth/me", "", nil))
	assert.Equal(t, 401, resp.StatusCode)
}
