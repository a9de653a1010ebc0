package main

import (
	"testing"

	"stock-backend/controllers"
	"stock-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestGetPolitiqueParDefaut(t *testing.T) {
	db := setupTestDB()
	app := setupTestApp(db)
	_, token := createTestUtilisateur(db, models.RoleUtilisateur)

	// Sans ligne en base, la politique par défaut est retournée
	resp, _ := app.Test(jsonRequest("GET", "/politique", token, nil))
	assert.Equal(t, 200, resp.StatusCode)

	var response controllers.PolitiqueResponse
	assert.NoError(t, decodeBody(resp, &response))
	assert.True(t, response.Success)
	assert.Equal(t, 8, response.Politique.LongueurMinimale)
	assert.True(t, response.Politique.MajusculesRequises)
	assert.True(t, response.Politique.MinusculesRequises)
	assert.True(t, response.Politique.ChiffresRequis)
	assert.True(t, response.Politique.CaracteresSpeciauxRequis)
	assert.True(t, response.Politique.InterdireMotsCommuns)
}

func TestUpdatePolitique(t *testing.T) {
	db := setupTestDB()
	app := setupTestApp(db)
	_, token := createTestUtilisateur(db, models.RoleAdmin)

	resp, _ := app.Test(jsonRequest("PUT", "/politique", token, controllers.UpdatePolitiqueRequest{
		LongueurMinimale:         12,
		MajusculesRequises:       true,
		MinusculesRequises:       true,
		ChiffresRequis:           false,
		CaracteresSpeciauxRequis: false,
		InterdireMotsCommuns:     true,
	}))
	assert.Equal(t, 200, resp.StatusCode)

	// La modification est persistée et visible en lecture
	resp, _ = app.Test(jsonRequest("GET", "/politique", token, nil))
	var response controllers.PolitiqueResponse
	assert.NoError(t, decodeBody(resp, &response))
	assert.Equal(t, 12, response.Politique.LongueurMinimale)
	assert.False(t, response.Politique.ChiffresRequis)
}

func TestUpdatePolitiqueValidation(t *testing.T) {
	db := setupTestDB()
	app := setupTestApp(db)
	_, token := createTestUtilisateur(db, models.RoleAdmin)

	tests := []struct {
		name     string
		longueur int
	}{
		{name: "Longueur trop faible", longueur: 3},
		{name: "Longueur excessive", longueur: 65},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := app.Test(jsonRequest("PUT", "/politique", token, controllers.UpdatePolitiqueRequest{
				LongueurMinimale: tt.longueur,
			}))
			assert.Equal(t, 400, resp.StatusCode)
		})
	}
}

func TestUpdatePolitiqueReserveAuxAdmins(t *testing.T) {
	db := setupTestDB()
	app := setupTestApp(db)

	for _, role := range []string{models.RoleMagasinier, models.RoleUtilisateur} {
		_, token := createTestUtilisateur(db, role)

		// Lecture autorisée à tous les rôles authentifiés
		resp, _ := app.Test(jsonRequest("GET", "/politique", token, nil))
		assert.Equal(t, 200, resp.StatusCode, "rôle %s", role)

		resp, _ = app.Test(jsonRequest("PUT", "/politique", token, controllers.UpdatePolitiqueRequest{
			LongueurMinimale: 10,
		}))
		assert.Equal(t, 403, resp.StatusCode, "rôle %s", role)
	}
}

func TestPolitiqueAppliqueeAuChangementDeMotDePasse(t *testing.T) {
	db := setupTestDB()
	app := setupTestApp(db)
	_, adminToken := createTestUtilisateur(db, models.RoleAdmin)
	_, token := createTestUtilisateur(db, models.RoleUtilisateur)

	// Durcissement de la politique : 16 caractères minimum
	resp, _ := app.Test(jsonRequest("PUT", "/politique", adminToken, controllers.UpdatePolitiqueRequest{
		LongueurMinimale:         16,
		MajusculesRequises:       true,
		MinusculesRequises:       true,
		ChiffresRequis:           true,
		CaracteresSpeciauxRequis: true,
		InterdireMotsCommuns:     true,
	}))
	assert.Equal(t, 200, resp.StatusCode)

	// Un mot de passe valide sous l'ancienne politique est désormais refusé
	resp, _ = app.Test(jsonRequest("POST", "/auth/change-password", token, controllers.ChangerMotDePasseRequest{
		MotDePasseActuel:  "Test123!@",
		NouveauMotDePasse: "Court123!@",
	}))
	assert.Equal(t, 400, resp.StatusCode)

	resp, _ = app.Test(jsonRequest("POST", "/auth/change-password", token, controllers.ChangerMotDePasseRequest{
		MotDePasseActuel:  "Test123!@",
		NouveauMotDePasse: "TresLongSecret123!@",
	}))
	assert.Equal(t, 200, resp.StatusCode)
}
