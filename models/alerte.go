package models

// Niveaux d'alerte de stock
const (
	AlerteRupture  = "rupture"
	AlerteCritique = "critique"
	AlerteFaible   = "faible"
)

// AlerteStock représente une alerte dérivée de l'état courant d'un article.
// Les alertes ne sont jamais persistées : elles sont recalculées à chaque
// changement du stock.
type AlerteStock struct {
	ArticleID        string `json:"articleId"`
	Designation      string `json:"designation"`
	QuantiteActuelle int    `json:"quantiteActuelle"`
	SeuilCritique    int    `json:"seuilCritique"`
	Niveau           string `json:"niveau"` // rupture, critique ou faible
}
