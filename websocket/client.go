package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 10000

	// Outbound events buffered per client before it is considered stuck
	sendBuffer = 256
)

// Client is one websocket connection. It satisfies meeting.Conn.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	id   string

	sendMux sync.Mutex
	send    chan []byte
	closed  bool
}

// Message is the envelope for every frame in both directions.
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

func (c *Client) ID() string { return c.id }

// Send queues an event for the write pump. A client whose buffer is full is
// disconnected rather than allowed to stall the room.
func (c *Client) Send(event string, payload any) {
	msgBytes, err := json.Marshal(Message{Type: event, Payload: payload})
	if err != nil {
		log.Error().Str("module", "websocket").Err(err).Str("event", event).Msg("error marshaling event")
		return
	}

	c.sendMux.Lock()
	defer c.sendMux.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- msgBytes:
	default:
		log.Warn().Str("module", "websocket").Str("conn", c.id).Msg("send buffer full, dropping client")
		c.conn.Close()
	}
}

// closeSend stops the write pump. Safe to call more than once.
func (c *Client) closeSend() {
	c.sendMux.Lock()
	defer c.sendMux.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// readPump pumps messages from the websocket connection to the dispatcher
func (c *Client) readPump() {
	defer func() {
		c.hub.remove(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn().Str("module", "websocket").Str("conn", c.id).Err(err).Msg("unexpected close")
			}
			break
		}
		c.hub.dispatch(c, message)
	}
}

// writePump pumps messages from the send queue to the websocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			// One event per frame; clients parse each frame as a single JSON document.
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
