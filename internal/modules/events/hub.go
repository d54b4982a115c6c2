package events

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Message is the envelope broadcast to connected clients.
type Message struct {
	Event   string `json:"event"`
	Payload any    `json:"payload,omitempty"`
}

// client wraps a connection with a write mutex. Publish runs on request
// goroutines, so concurrent broadcasts must serialize their writes per
// connection (gorilla allows a single concurrent writer).
type client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (c *client) write(msg Message) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	return c.conn.WriteJSON(msg)
}

// Hub fans lead-change and session-change notifications out to every
// connected client, so other tabs and sessions can refresh their view.
type Hub struct {
	mutex   sync.RWMutex
	clients map[int64]*client
	nextID  int64
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[int64]*client),
	}
}

// Register adds a connection and returns its id for Unregister.
func (h *Hub) Register(conn *websocket.Conn) int64 {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.nextID++
	h.clients[h.nextID] = &client{conn: conn}
	return h.nextID
}

func (h *Hub) Unregister(id int64) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if c, exists := h.clients[id]; exists && c != nil {
		_ = c.conn.Close()
		delete(h.clients, id)
	}
}

// Publish sends the event to every connection; connections that fail to
// write are dropped.
func (h *Hub) Publish(event string, payload any) {
	msg := Message{Event: event, Payload: payload}

	h.mutex.RLock()
	clients := make(map[int64]*client, len(h.clients))
	for id, c := range h.clients {
		clients[id] = c
	}
	h.mutex.RUnlock()

	for id, c := range clients {
		if err := c.write(msg); err != nil {
			h.Unregister(id)
		}
	}
}

// ConnectionCount returns the number of live connections.
func (h *Hub) ConnectionCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.clients)
}

// Close drops every connection.
func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for id, c := range h.clients {
		if c != nil {
			_ = c.conn.Close()
		}
		delete(h.clients, id)
	}
}
