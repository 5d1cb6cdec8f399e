package websocket

import (
	"context"
	"time"

	"github.com/CUknot/meetroom/meeting"
	"github.com/rs/zerolog/log"
)

// eventTimeout bounds the store and broker work done for one inbound event.
const eventTimeout = 10 * time.Second

// Hub tracks live clients and hands their events to the meeting service.
// Room membership lives in the service's connection index.
type Hub struct {
	svc *meeting.Service
	ctx context.Context

	// Registered clients
	clients map[*Client]bool

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client
}

// NewHub creates a new hub instance. ctx bounds the hub's lifetime and is
// the parent of every event's context.
func NewHub(ctx context.Context, svc *meeting.Service) *Hub {
	return &Hub{
		svc:        svc,
		ctx:        ctx,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

// Run serves register and unregister requests until the hub's context ends,
// then closes every remaining client.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			log.Debug().Str("module", "websocket").Str("conn", client.id).Int("clients", len(h.clients)).Msg("client registered")
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.closeSend()
				// Leave may wait on the broker; keep it off the register path.
				go h.leave(client)
				log.Debug().Str("module", "websocket").Str("conn", client.id).Int("clients", len(h.clients)).Msg("client unregistered")
			}
		case <-h.ctx.Done():
			for client := range h.clients {
				client.closeSend()
				delete(h.clients, client)
			}
			return
		}
	}
}

func (h *Hub) add(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.ctx.Done():
		return false
	}
}

func (h *Hub) remove(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.ctx.Done():
	}
}

func (h *Hub) leave(c *Client) {
	ctx, cancel := h.eventContext()
	defer cancel()
	h.svc.Membership.Leave(ctx, c)
}

func (h *Hub) eventContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(h.ctx, eventTimeout)
}
