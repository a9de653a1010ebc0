package services

import (
	"errors"
	"fmt"
	"time"

	"stock-backend/models"

	"gorm.io/gorm"
)

// Erreurs métier du registre de stock
var (
	ErrArticleIntrouvable = errors.New("article introuvable")
	ErrBonIntrouvable     = errors.New("bon d'attribution introuvable")
	ErrBonDejaTraite      = errors.New("le bon d'attribution n'est plus en attente")
	ErrReferenceExistante = errors.New("un article avec cette référence existe déjà")
	ErrNumeroBonExistant  = errors.New("un bon avec ce numéro existe déjà")
	ErrArticleReference   = errors.New("l'article est référencé par un bon d'attribution en attente")
)

// ErrStockInsuffisant signale une sortie supérieure au stock disponible.
// Le message porte la quantité disponible pour que l'appelant puisse
// l'afficher telle quelle.
type ErrStockInsuffisant struct {
	Designation string
	Disponible  int
	Demande     int
}

func (e *ErrStockInsuffisant) Error() string {
	return fmt.Sprintf("stock insuffisant pour %s : %d disponible(s), %d demandé(s)",
		e.Designation, e.Disponible, e.Demande)
}

// LigneBonInput représente une ligne de bon telle que soumise à la création
type LigneBonInput struct {
	ArticleID      string `json:"articleId"`
	QuantiteSortie int    `json:"quantiteSortie"`
}

// StockService porte les règles du registre de stock : toute opération qui
// touche une quantité d'article passe par ici et s'exécute dans une
// transaction, de sorte qu'un mouvement n'est jamais enregistré sans la mise
// à jour de quantité correspondante.
type StockService struct {
	db *gorm.DB
}

// NewStockService crée un nouveau service de stock
func NewStockService(db *gorm.DB) *StockService {
	return &StockService{db: db}
}

// AjouterMouvement enregistre un mouvement et ajuste la quantité de
// l'article dans la même transaction. Une sortie supérieure au stock
// disponible est refusée sans aucune écriture.
func (s *StockService) AjouterMouvement(articleID, typeMouvement string, quantite int, reference, utilisateur, commentaire string) (*models.Mouvement, error) {
	var mouvement *models.Mouvement

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var article models.Article
		if err := tx.First(&article, "id = ?", articleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrArticleIntrouvable
			}
			return err
		}

		nouvelleQuantite := article.QuantiteActuelle
		if typeMouvement == models.MouvementEntree {
			nouvelleQuantite += quantite
		} else {
			if quantite > article.QuantiteActuelle {
				return &ErrStockInsuffisant{
					Designation: article.Designation,
					Disponible:  article.QuantiteActuelle,
					Demande:     quantite,
				}
			}
			nouvelleQuantite -= quantite
		}

		if err := tx.Model(&article).Updates(map[string]interface{}{
			"quantite_actuelle":     nouvelleQuantite,
			"derniere_modification": time.Now(),
		}).Error; err != nil {
			return err
		}

		mouvement = &models.Mouvement{
			ArticleID:   articleID,
			Type:        typeMouvement,
			Quantite:    quantite,
			Reference:   reference,
			Utilisateur: utilisateur,
			Commentaire: commentaire,
		}
		return tx.Create(mouvement).Error
	})

	if err != nil {
		return nil, err
	}
	return mouvement, nil
}

// CreerBon crée un bon d'attribution en attente. Les quantités demandées
// sont contrôlées contre le stock du moment, mais la déduction réelle
// n'intervient qu'à la validation.
func (s *StockService) CreerBon(numeroBon, destinataire, utilisateur string, lignes []LigneBonInput) (*models.BonAttribution, error) {
	if numeroBon == "" {
		numeroBon = s.GenererNumeroBon()
	}

	var count int64
	if err := s.db.Model(&models.BonAttribution{}).Where("numero_bon = ?", numeroBon).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrNumeroBonExistant
	}

	bon := &models.BonAttribution{
		NumeroBon:    numeroBon,
		Destinataire: destinataire,
		Utilisateur:  utilisateur,
		Statut:       models.BonEnAttente,
	}

	for i, ligne := range lignes {
		var article models.Article
		if err := s.db.First(&article, "id = ?", ligne.ArticleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrArticleIntrouvable
			}
			return nil, err
		}

		if ligne.QuantiteSortie > article.QuantiteActuelle {
			return nil, &ErrStockInsuffisant{
				Designation: article.Designation,
				Disponible:  article.QuantiteActuelle,
				Demande:     ligne.QuantiteSortie,
			}
		}

		// La désignation est photographiée à la création du bon
		bon.Articles = append(bon.Articles, models.LigneBon{
			Position:       i,
			ArticleID:      article.ID,
			Designation:    article.Designation,
			QuantiteSortie: ligne.QuantiteSortie,
		})
	}

	if err := s.db.Create(bon).Error; err != nil {
		return nil, err
	}
	return bon, nil
}

// ValiderBon passe un bon en attente au statut valide : chaque ligne déduit
// le stock de son article et produit un mouvement de sortie référençant le
// numéro de bon. Tout se joue dans une transaction : si une ligne échoue
// (article disparu, stock devenu insuffisant), rien n'est déduit et le bon
// reste en attente.
func (s *StockService) ValiderBon(id string) (*models.BonAttribution, error) {
	var bon models.BonAttribution

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Articles", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).First(&bon, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBonIntrouvable
			}
			return err
		}

		if bon.Statut != models.BonEnAttente {
			return ErrBonDejaTraite
		}

		for _, ligne := range bon.Articles {
			var article models.Article
			if err := tx.First(&article, "id = ?", ligne.ArticleID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrArticleIntrouvable
				}
				return err
			}

			// Le stock a pu changer depuis la création du bon : revérification
			if ligne.QuantiteSortie > article.QuantiteActuelle {
				return &ErrStockInsuffisant{
					Designation: article.Designation,
					Disponible:  article.QuantiteActuelle,
					Demande:     ligne.QuantiteSortie,
				}
			}

			if err := tx.Model(&article).Updates(map[string]interface{}{
				"quantite_actuelle":     article.QuantiteActuelle - ligne.QuantiteSortie,
				"derniere_modification": time.Now(),
			}).Error; err != nil {
				return err
			}

			mouvement := models.Mouvement{
				ArticleID:   ligne.ArticleID,
				Type:        models.MouvementSortie,
				Quantite:    ligne.QuantiteSortie,
				Reference:   bon.NumeroBon,
				Utilisateur: bon.Utilisateur,
				Commentaire: fmt.Sprintf("Attribution à %s", bon.Destinataire),
			}
			if err := tx.Create(&mouvement).Error; err != nil {
				return err
			}
		}

		bon.Statut = models.BonValide
		return tx.Model(&models.BonAttribution{}).Where("id = ?", bon.ID).
			Update("statut", models.BonValide).Error
	})

	if err != nil {
		return nil, err
	}
	return &bon, nil
}

// AnnulerBon passe un bon en attente au statut annule, sans aucun effet sur
// le stock. Un bon déjà validé ou annulé ne peut plus changer de statut :
// annuler après validation ne rembourse pas le stock, donc c'est refusé.
func (s *StockService) AnnulerBon(id string) (*models.BonAttribution, error) {
	var bon models.BonAttribution
	if err := s.db.Preload("Articles", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	}).First(&bon, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBonIntrouvable
		}
		return nil, err
	}

	if bon.Statut != models.BonEnAttente {
		return nil, ErrBonDejaTraite
	}

	if err := s.db.Model(&models.BonAttribution{}).Where("id = ?", bon.ID).
		Update("statut", models.BonAnnule).Error; err != nil {
		return nil, err
	}
	bon.Statut = models.BonAnnule
	return &bon, nil
}

// SupprimerArticle supprime un article et ses mouvements. La suppression est
// refusée tant qu'un bon en attente référence l'article : le bon validerait
// sinon des lignes fantômes. Les bons validés ou annulés gardent leurs
// lignes, qui portent leur propre photographie de la désignation.
func (s *StockService) SupprimerArticle(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var article models.Article
		if err := tx.First(&article, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrArticleIntrouvable
			}
			return err
		}

		var count int64
		if err := tx.Model(&models.LigneBon{}).
			Joins("JOIN bons_attribution ON bons_attribution.id = lignes_bon.bon_id").
			Where("lignes_bon.article_id = ? AND bons_attribution.statut = ?", id, models.BonEnAttente).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrArticleReference
		}

		if err := tx.Where("article_id = ?", id).Delete(&models.Mouvement{}).Error; err != nil {
			return err
		}
		return tx.Delete(&article).Error
	})
}

// CalculerAlertes dérive les alertes de stock de la liste d'articles.
// Fonction pure, sans effet de bord : elle est rappelée après chaque
// changement du stock.
func (s *StockService) CalculerAlertes(articles []models.Article) []models.AlerteStock {
	alertes := []models.AlerteStock{}

	for _, article := range articles {
		var niveau string
		switch {
		case article.QuantiteActuelle <= 0:
			niveau = models.AlerteRupture
		case article.QuantiteActuelle <= article.SeuilCritique:
			niveau = models.AlerteFaible
			if float64(article.QuantiteActuelle) <= float64(article.SeuilCritique)*0.5 {
				niveau = models.AlerteCritique
			}
		default:
			continue
		}

		alertes = append(alertes, models.AlerteStock{
			ArticleID:        article.ID,
			Designation:      article.Designation,
			QuantiteActuelle: article.QuantiteActuelle,
			SeuilCritique:    article.SeuilCritique,
			Niveau:           niveau,
		})
	}

	return alertes
}

// AlertesCourantes recharge les articles et recalcule les alertes
func (s *StockService) AlertesCourantes() ([]models.AlerteStock, error) {
	var articles []models.Article
	if err := s.db.Order("designation").Find(&articles).Error; err != nil {
		return nil, err
	}
	return s.CalculerAlertes(articles), nil
}

// GenererNumeroBon génère un numéro de bon de la forme BON-AAAAMMJJ-NNNN,
// le compteur repartant de 1 chaque jour
func (s *StockService) GenererNumeroBon() string {
	jour := time.Now().Format("20060102")

	var count int64
	s.db.Model(&models.BonAttribution{}).
		Where("numero_bon LIKE ?", fmt.Sprintf("BON-%s-%%", jour)).
		Count(&count)

	return fmt.Sprintf("BON-%s-%04d", jour, count+1)
}
