package websocket

import (
	"encoding/json"
	"sync"

	"github.com/amorpet/amorpet-backend/pkg/logger"
)

// Event is pushed to every connected back-office session.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

const (
	// EventContactReceived is emitted when a visitor submits the contact form.
	EventContactReceived = "contact_received"
)

// Client is one admin back-office session.
type Client struct {
	Hub    *Hub
	Conn   *Conn
	UserID uint
	Send   chan []byte
}

// Hub fans notification events out to connected admin sessions. A user may
// hold several sessions at once (multiple tabs or devices).
type Hub struct {
	clients map[uint][]*Client

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uint][]*Client),
		register:   make(chan *Client, 64),
		unregister: make(chan *Client, 64),
		broadcast:  make(chan []byte, 256),
	}
}

// Run processes register, unregister and broadcast events. Call it once from
// a dedicated goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			logger.Info("Notification client registered", map[string]interface{}{
				"user_id":        client.UserID,
				"total_sessions": len(h.clients[client.UserID]),
			})

		case client := <-h.unregister:
			// A client can be unregistered twice, once by its read pump and
			// once by a full send buffer. Only the first pass may close Send.
			h.mu.Lock()
			departed := false
			if sessions, ok := h.clients[client.UserID]; ok {
				remaining := make([]*Client, 0, len(sessions))
				for _, c := range sessions {
					if c == client {
						departed = true
						continue
					}
					remaining = append(remaining, c)
				}
				if departed {
					if len(remaining) == 0 {
						delete(h.clients, client.UserID)
					} else {
						h.clients[client.UserID] = remaining
					}
					close(client.Send)
				}
			}
			h.mu.Unlock()
			if departed {
				logger.Info("Notification client unregistered", map[string]interface{}{
					"user_id": client.UserID,
				})
			}

		case message := <-h.broadcast:
			h.mu.RLock()
			for userID, sessions := range h.clients {
				for _, client := range sessions {
					select {
					case client.Send <- message:
					default:
						go h.Unregister(client)
						logger.Warn("Client send buffer full, disconnecting", map[string]interface{}{
							"user_id": userID,
						})
					}
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Broadcast pushes an event to every connected session. Events are dropped
// when the broadcast buffer is full; notifications are best effort.
func (h *Hub) Broadcast(event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to marshal notification event", err, nil)
		return err
	}

	select {
	case h.broadcast <- data:
		return nil
	default:
		logger.Warn("Broadcast channel full, event dropped", map[string]interface{}{
			"type": event.Type,
		})
		return nil
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// IsUserOnline reports whether the user has at least one open session.
func (h *Hub) IsUserOnline(userID uint) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[userID]
	return ok
}
