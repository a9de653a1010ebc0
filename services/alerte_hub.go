package services

import (
	"log"
	"sync"

	"github.com/gofiber/websocket/v2"
	"gorm.io/gorm"
)

// AlerteMessage représente un message WebSocket poussé aux clients
type AlerteMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// ClientAlerte représente un client connecté au flux d'alertes
type ClientAlerte struct {
	Conn *websocket.Conn
	Send chan AlerteMessage
	Hub  *AlerteHub
}

// AlerteHub gère les connexions WebSocket du tableau de bord : chaque fois
// qu'une opération change une quantité de stock, la liste d'alertes
// recalculée est diffusée à tous les clients connectés.
type AlerteHub struct {
	clients    map[*ClientAlerte]bool
	register   chan *ClientAlerte
	unregister chan *ClientAlerte
	broadcast  chan AlerteMessage
	mutex      sync.RWMutex
	stock      *StockService
}

// NewAlerteHub crée un nouveau hub d'alertes
func NewAlerteHub(db *gorm.DB) *AlerteHub {
	return &AlerteHub{
		clients:    make(map[*ClientAlerte]bool),
		register:   make(chan *ClientAlerte),
		unregister: make(chan *ClientAlerte),
		broadcast:  make(chan AlerteMessage),
		stock:      NewStockService(db),
	}
}

// Run démarre la boucle du hub
func (h *AlerteHub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()

			// Le nouveau client reçoit immédiatement l'état courant
			if alertes, err := h.stock.AlertesCourantes(); err == nil {
				client.Send <- AlerteMessage{Type: "alertes_stock", Payload: alertes}
			}

			log.Printf("Client alertes connecté. Total : %d", h.nombreClients())

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mutex.Unlock()

			log.Printf("Client alertes déconnecté. Total : %d", h.nombreClients())

		case message := <-h.broadcast:
			h.mutex.Lock()
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					// Client trop lent : on abandonne sa connexion
					close(client.Send)
					delete(h.clients, client)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// DiffuserAlertes recalcule les alertes et les pousse à tous les clients
func (h *AlerteHub) DiffuserAlertes() {
	alertes, err := h.stock.AlertesCourantes()
	if err != nil {
		log.Printf("Erreur lors du calcul des alertes : %v", err)
		return
	}

	h.broadcast <- AlerteMessage{Type: "alertes_stock", Payload: alertes}
}

// HandleWebSocket gère une connexion WebSocket entrante
func (h *AlerteHub) HandleWebSocket(conn *websocket.Conn) {
	client := &ClientAlerte{
		Conn: conn,
		Send: make(chan AlerteMessage, 16),
		Hub:  h,
	}

	h.register <- client

	// Écrivain : pousse les messages du hub vers la connexion
	go func() {
		for message := range client.Send {
			if err := conn.WriteJSON(message); err != nil {
				return
			}
		}
	}()

	// Lecteur : la connexion vit tant que le client ne la ferme pas
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.unregister <- client
}

func (h *AlerteHub) nombreClients() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}
