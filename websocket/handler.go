package websocket

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Handler upgrades HTTP requests into hub clients. Identity is not taken
// at upgrade time: every event carries its own credential.
type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
}

// NewHandler accepts any origin when allowedOrigin is "*" or empty.
func NewHandler(hub *Hub, allowedOrigin string) *Handler {
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return originAllowed(allowedOrigin, r.Header.Get("Origin"))
			},
		},
	}
}

func originAllowed(allowed, origin string) bool {
	if allowed == "" || allowed == "*" || origin == "" {
		return true
	}
	a, err := url.Parse(allowed)
	if err != nil {
		return false
	}
	o, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return a.Scheme == o.Scheme && a.Host == o.Host
}

// HandleConnection handles websocket connections
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Str("module", "websocket").Err(err).Msg("error upgrading connection")
		return
	}

	client := &Client{
		hub:  h.hub,
		conn: conn,
		id:   uuid.NewString(),
		send: make(chan []byte, sendBuffer),
	}
	if !client.hub.add(client) {
		conn.Close()
		return
	}

	go client.readPump()
	go client.writePump()
}
