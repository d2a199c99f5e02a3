// internal/socket/hub.go
package socket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	// Time allowed to write one message to a client.
	writeWait = 10 * time.Second
	// Messages queued per client before it is considered stalled.
	sendBuffer = 16
)

// Conn is the write side of a WebSocket connection. *websocket.Conn satisfies it.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// Message is the payload pushed to clients on booking changes.
type Message struct {
	Event     string `json:"event"`
	BookingID string `json:"bookingId"`
}

type client struct {
	conn Conn
	send chan []byte
}

// Hub keeps the connected admin clients and fans booking events out to them.
// Each client has its own writer goroutine, so Broadcast never waits on a socket.
type Hub struct {
	// clients is keyed by connection id; one user may hold several tabs.
	clients map[string]*client
	mu      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*client),
	}
}

func (h *Hub) Register(connID string, conn Conn) {
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}

	h.mu.Lock()
	if old, ok := h.clients[connID]; ok {
		close(old.send)
	}
	h.clients[connID] = c
	n := len(h.clients)
	h.mu.Unlock()

	go h.writePump(connID, c)
	log.Debug().Str("conn_id", connID).Int("clients", n).Msg("websocket client registered")
}

func (h *Hub) Unregister(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.clients[connID]; ok {
		delete(h.clients, connID)
		close(c.send)
		log.Debug().Str("conn_id", connID).Msg("websocket client unregistered")
	}
}

// drop removes c if it is still the client registered under connID and
// closes its connection so the read loop ends.
func (h *Hub) drop(connID string, c *client) {
	h.mu.Lock()
	if cur, ok := h.clients[connID]; ok && cur == c {
		delete(h.clients, connID)
		close(c.send)
	}
	h.mu.Unlock()
	_ = c.conn.Close()
}

func (h *Hub) writePump(connID string, c *client) {
	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			log.Warn().Err(err).Str("conn_id", connID).Msg("websocket write failed, dropping client")
			h.drop(connID, c)
			return
		}
	}
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast queues message for every client. A client whose queue is full is
// stalled and gets dropped.
func (h *Hub) Broadcast(message []byte) {
	var stalled []string

	h.mu.Lock()
	for id, c := range h.clients {
		select {
		case c.send <- message:
		default:
			stalled = append(stalled, id)
			delete(h.clients, id)
			close(c.send)
			go c.conn.Close()
		}
	}
	h.mu.Unlock()

	for _, id := range stalled {
		log.Warn().Str("conn_id", id).Msg("websocket client stalled, dropped")
	}
}

// Notify broadcasts a booking event.
func (h *Hub) Notify(event string, bookingID primitive.ObjectID) {
	payload, err := json.Marshal(Message{Event: event, BookingID: bookingID.Hex()})
	if err != nil {
		log.Error().Err(err).Msg("failed to encode websocket message")
		return
	}
	h.Broadcast(payload)
}
