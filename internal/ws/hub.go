package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
)

type Hub struct {
	Clients    map[*websocket.Conn]bool
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	Broadcast  chan []byte
	mutex      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*websocket.Conn]bool),
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan []byte),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.Register:
			h.mutex.Lock()
			h.Clients[conn] = true
			h.mutex.Unlock()
			log.Println("New WS Client Connected")

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[conn]; ok {
				delete(h.Clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for conn := range h.Clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(h.Clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// BroadcastJSON marshals the payload and pushes it to all connected clients.
// Callers typically invoke this from a goroutine after a commit so a slow
// client never blocks a workflow operation.
func (h *Hub) BroadcastJSON(payload interface{}) {
	msg, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Warning: failed to marshal ws payload: %v", err)
		return
	}
	h.Broadcast <- msg
}

// StockUpdate is the payload broadcast after any committed stock mutation.
type StockUpdate struct {
	Type      string `json:"type"` // always "stock_update"
	Action    string `json:"action"`
	ProductID string `json:"product_id"`
	SKU       string `json:"sku"`
	Name      string `json:"name"`
	OldStock  int    `json:"old_stock"`
	NewStock  int    `json:"new_stock"`
	User      string `json:"user"`
	Message   string `json:"message"`
}

// LowStockAlert is the payload broadcast by the low-stock monitor.
type LowStockAlert struct {
	Type     string          `json:"type"` // always "low_stock_alert"
	Products []LowStockEntry `json:"products"`
}

type LowStockEntry struct {
	ProductID    string `json:"product_id"`
	SKU          string `json:"sku"`
	Name         string `json:"name"`
	Stock        int    `json:"stock"`
	ReorderLevel int    `json:"reorder_level"`
}
