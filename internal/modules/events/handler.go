package events

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// origin is enforced by the CORS middleware in front of this route
		return true
	},
}

// Handler upgrades authenticated clients to a notification stream.
type Handler struct {
	hub *Hub
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

// RegisterRoutes registers the notification stream endpoint
func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.GET("/events", h.Stream)
}

// Stream handles GET /api/v1/events
func (h *Handler) Stream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("events_upgrade_failed client_ip=%s error=%q", c.ClientIP(), err)
		return
	}

	id := h.hub.Register(conn)
	defer h.hub.Unregister(id)

	// clients never send application data; the read loop only detects close
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
