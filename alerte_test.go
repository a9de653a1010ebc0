package main

import (
	"testing"

	"stock-backend/controllers"
	"stock-backend/models"
	"stock-backend/services"

	"github.com/stretchr/testify/assert"
)

func TestCalculerAlertesNiveaux(t *testing.T) {
	stock := services.NewStockService(nil)

	tests := []struct {
		name           string
		quantite       int
		seuil          int
		expectedNiveau string // vide : aucune alerte attendue
	}{
		{
			name:     "Stock confortable",
			quantite: 11, seuil: 10,
			expectedNiveau: "",
		},
		{
			name:     "Quantité nulle : rupture",
			quantite: 0, seuil: 10,
			expectedNiveau: models.AlerteRupture,
		},
		{
			name:     "Quantité négative : rupture",
			quantite: -2, seuil: 10,
			expectedNiveau: models.AlerteRupture,
		},
		{
			name:     "Quantité égale au seuil : faible",
			quantite: 10, seuil: 10,
			expectedNiveau: models.AlerteFaible,
		},
		{
			name:     "Quantité à la moitié du seuil : critique",
			quantite: 5, seuil: 10,
			expectedNiveau: models.AlerteCritique,
		},
		{
			name:     "Moitié arrondie d'un seuil impair : critique",
			quantite: 2, seuil: 5, // 2 <= 2.5
			expectedNiveau: models.AlerteCritique,
		},
		{
			name:     "Juste au-dessus de la moitié : faible",
			quantite: 6, seuil: 10,
			expectedNiveau: models.AlerteFaible,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			articles := []models.Article{{
				ID:               "a1",
				Designation:      "Article de test",
				QuantiteActuelle: tt.quantite,
				SeuilCritique:    tt.seuil,
			}}

			alertes := stock.CalculerAlertes(articles)

			if tt.expectedNiveau == "" {
				assert.Empty(t, alertes)
			} else {
				assert.Len(t, alertes, 1)
				assert.Equal(t, tt.expectedNiveau, alertes[0].Niveau)
				assert.Equal(t, tt.quantite, alertes[0].QuantiteActuelle)
				assert.Equal(t, tt.seuil, alertes[0].SeuilCritique)
			}
		})
	}
}

func TestCalculerAlertesSansEffetDeBord(t *testing.T) {
	stock := services.NewStockService(nil)

	articles := []models.Article{
		{ID: "a1", Designation: "A", QuantiteActuelle: 0, SeuilCritique: 5},
		{ID: "a2", Designation: "B", QuantiteActuelle: 100, SeuilCritique: 5},
	}

	premiere := stock.CalculerAlertes(articles)
	seconde := stock.CalculerAlertes(articles)
	assert.Equal(t, premiere, seconde)
	assert.Equal(t, 0, articles[0].QuantiteActuelle)
}

func TestAlertesApresSortie(t *testing.T) {
	db := setupTestDB()
	app := setupTestApp(db)
	_, token := createTestUtilisateur(db, models.RoleMagasinier)
	article := createTestArticle(db, "REF-100", 10, 10)

	// Sortie de 6 : 4 restants, 4 <= 5 donc niveau critique
	resp, _ := app.Test(jsonRequest("POST", "/mouvements", token, controllers.CreateMouvementRequest{
		ArticleID: article.ID, Type: models.MouvementSortie, Quantite: 6, Reference: "SOR-001",
	}))
	assert.Equal(t, 201, resp.StatusCode)

	resp, _ = app.Test(jsonRequest("GET", "/articles/alertes", token, nil))
	assert.Equal(t, 200, resp.StatusCode)

	var response controllers.AlertesResponse
	assert.NoError(t, decodeBody(resp, &response))
	assert.Len(t, response.Alertes, 1)
	assert.Equal(t, models.AlerteCritique, response.Alertes[0].Niveau)
	assert.Equal(t, 4, response.Alertes[0].QuantiteActuelle)
}

func TestDashboard(t *testing.T) {
	db := setupTestDB()
	app := setupTestApp(db)
	utilisateur, token := createTestUtilisateur(db, models.RoleMagasinier)
	article := createTestArticle(db, "REF-100", 10, 2)
	createTestArticle(db, "REF-200", 0, 5)

	stock := services.NewStockService(db)
	_, err := stock.AjouterMouvement(article.ID, models.MouvementEntree, 5, "ENT-001", utilisateur.Email, "")
	assert.NoError(t, err)
	_, err = stock.CreerBon("", "Atelier", utilisateur.Email, []services.LigneBonInput{
		{ArticleID: article.ID, QuantiteSortie: 2},
	})
	assert.NoError(t, err)

	resp, _ := app.Test(jsonRequest("GET", "/dashboard", token, nil))
	assert.Equal(t, 200, resp.StatusCode)

	var response struct {
		Success      bool `json:"success"`
		Statistiques struct {
			Articles      int64 `json:"articles"`
			Mouvements    int64 `json:"mouvements"`
			Bons          int64 `json:"bons"`
			BonsEnAttente int64 `json:"bonsEnAttente"`
			Utilisateurs  int64 `json:"utilisateurs"`
		} `json:"statistiques"`
		Alertes            []models.AlerteStock `json:"alertes"`
		DerniersMouvements []models.Mouvement   `json:"derniersMouvements"`
	}
	assert.NoError(t, decodeBody(resp, &response))
	assert.True(t, response.Success)
	assert.Equal(t, int64(2), response.Statistiques.Articles)
	assert.Equal(t, int64(1), response.Statistiques.Mouvements)
	assert.Equal(t, int64(1), response.Statistiques.Bons)
	assert.Equal(t, int64(1), response.Statistiques.BonsEnAttente)
	assert.Equal(t, int64(1), response.Statistiques.Utilisateurs)
	assert.Len(t, response.Alertes, 1) // REF-200 en rupture
	assert.Equal(t, models.AlerteRupture, response.Alertes[0].Niveau)
	assert.Len(t, response.DerniersMouvements, 1)
}
