package main

import (
	"testing"

	"stock-backend/controllers"
	"stock-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestCreateMouvement(t *testing.T) {
	db := setupTestDB()
	app := setupTestApp(db)
	_, token := createTestUtilisateur(db, models.RoleMagasinier)
	article := createTestArticle(db, "REF-100", 10, 2)

	tests := []struct {
		name             string
		request          controllers.CreateMouvementRequest
		expectedStatus   int
		expectedQuantite int
	}{
		{
			name: "Entrée de stock",
			request: controllers.CreateMouvementRequest{
				ArticleID: article.ID, Type: models.MouvementEntree, Quantite: 5, Reference: "ENT-001",
			},
			expectedStatus:   201,
			expectedQuantite: 15,
		},
		{
			name: "Sortie de stock",
			request: controllers.CreateMouvementRequest{
				ArticleID: article.ID, Type: models.MouvementSortie, Quantite: 6, Reference: "SOR-001",
			},
			expectedStatus:   201,
			expectedQuantite: 9,
		},
		{
			name: "Sortie supérieure au stock disponible",
			request: controllers.CreateMouvementRequest{
				ArticleID: article.ID, Type: models.MouvementSortie, Quantite: 100, Reference: "SOR-002",
			},
			expectedStatus:   400,
			expectedQuantite: 9, // Inchangée : l'opération est refusée en bloc
		},
		{
			name: "Quantité nulle",
			request: controllers.CreateMouvementRequest{
				ArticleID: article.ID, Type: models.MouvementEntree, Quantite: 0, Reference: "ENT-002",
			},
			expectedStatus:   400,
			expectedQuantite: 9,
		},
		{
			name: "Type invalide",
			request: controllers.CreateMouvementRequest{
				ArticleID: article.ID, Type: "transfert", Quantite: 1, Reference: "TRF-001",
			},
			expectedStatus:   400,
			expectedQuantite: 9,
		},
		{
			name: "Article inconnu",
			request: controllers.CreateMouvementRequest{
				ArticleID: "inexistant", Type: models.MouvementEntree, Quantite: 1, Reference: "ENT-003",
			},
			expectedStatus:   404,
			expectedQuantite: 9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(jsonRequest("POST", "/mouvements", token, tt.request))
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			var rechargee models.Article
			db.First(&rechargee, "id = ?", article.ID)
			assert.Equal(t, tt.expectedQuantite, rechargee.QuantiteActuelle)
		})
	}
}

func TestMouvementSortieInsuffisanteSansEcriture(t *testing.T) {
	db := setupTestDB()
	app := setupTestApp(db)
	_, token := createTestUtilisateur(db, models.RoleMagasinier)
	article := createTestArticle(db, "REF-100", 3, 1)

	resp, _ := app.Test(jsonRequest("POST", "/mouvements", token, controllers.CreateMouvementRequest{
		ArticleID: article.ID, Type: models.MouvementSortie, Quantite: 4, Reference: "SOR-001",
	}))
	assert.Equal(t, 400, resp.StatusCode)

	var response controllers.MouvementResponse
	assert.NoError(t, decodeBody(resp, &response))
	assert.Contains(t, response.Message, "3") // La quantité disponible figure dans le message

	// Ni mouvement enregistré, ni quantité modifiée
	var countMouvements int64
	db.Model(&models.Mouvement{}).Count(&countMouvements)
	assert.Equal(t, int64(0), countMouvements)

	var rechargee models.Article
	db.First(&rechargee, "id = ?", article.ID)
	assert.Equal(t, 3, rechargee.QuantiteActuelle)
}

func TestConservationDesQuantites(t *testing.T) {
	db := setupTestDB()
	app := setupTestApp(db)
	_, token := createTestUtilisateur(db, models.RoleMagasinier)
	article := createTestArticle(db, "REF-100", 20, 5)

	// Série de mouvements : la quantité finale doit valoir
	// initiale + somme des entrées - somme des sorties
	sequence := []struct {
		typ      string
		quantite int
	}{
		{models.MouvementEntree, 10},
		{models.MouvementSortie, 7},
		{models.MouvementEntree, 3},
		{models.MouvementSortie, 12},
		{models.MouvementSortie, 4},
	}

	attendu := article.QuantiteInitiale
	for _, m := range sequence {
		resp, _ := app.Test(jsonRequest("POST", "/mouvements", token, controllers.CreateMouvementRequest{
			ArticleID: article.ID, Type: m.typ, Quantite: m.quantite, Reference: "MVT",
		}))
		assert.Equal(t, 201, resp.StatusCode)

		if m.typ == models.MouvementEntree {
			attendu += m.quantite
		} else {
			attendu -= m.quantite
		}
	}

	var rechargee models.Article
	db.First(&rechargee, "id = ?", article.ID)
	assert.Equal(t, attendu, rechargee.QuantiteActuelle)
	assert.Equal(t, 10, rechargee.QuantiteActuelle)
}

func TestGetMouvementsFiltres(t *testing.T) {
	db := setupTestDB()
	app := setupTestApp(db)
	_, token := createTestUtilisateur(db, models.RoleMagasinier)
	article1 := createTestArticle(db, "REF-100", 10, 2)
	article2 := createTestArticle(db, "REF-200", 10, 2)

	for _, req := range []controllers.CreateMouvementRequest{
		{ArticleID: article1.ID, Type: models.MouvementEntree, Quantite: 5, Reference: "ENT-001"},
		{ArticleID: article1.ID, Type: models.MouvementSortie, Quantite: 2, Reference: "SOR-001"},
		{ArticleID: article2.ID, Type: models.MouvementEntree, Quantite: 1, Reference: "ENT-002"},
	} {
		resp, _ := app.Test(jsonRequest("POST", "/mouvements", token, req))
		assert.Equal(t, 201, resp.StatusCode)
	}

	// Filtre par article
	resp, _ := app.Test(jsonRequest("GET", "/mouvements?articleId="+article1.ID, token, nil))
	assert.Equal(t, 200, resp.StatusCode)

	var parArticle controllers.MouvementsResponse
	assert.NoError(t, decodeBody(resp, &parArticle))
	assert.Equal(t, int64(2), parArticle.Total)

	// Filtre par type
	resp, _ = app.Test(jsonRequest("GET", "/mouvements?type=entree", token, nil))
	assert.Equal(t, 200, resp.StatusCode)

	var parType controllers.MouvementsResponse
	assert.NoError(t, decodeBody(resp, &parType))
	assert.Equal(t, int64(2), parType.Total)
}

func TestMouvementRoleUtilisateurRefuse(t *testing.T) {
	db := setupTestDB()
	app := setupTestApp(db)
	_, token := createTestUtilisateur(db, models.RoleUtilisateur)
	article := createTestArticle(db, "REF-100", 10, 2)

	resp, _ := app.Test(jsonRequest("POST", "/mouvements", token, controllers.CreateMouvementRequest{
		ArticleID: article.ID, Type: models.MouvementEntree, Quantite: 1, Reference: "ENT-001",
	}))
	assert.Equal(t, 403, resp.StatusCode)

	// La lecture du journal reste ouverte
	resp, _ = app.Test(jsonRequest("GET", "/mouvements", token, nil))
	assert.Equal(t, 200, resp.StatusCode)
}
