package realtime

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Clients only send small control frames
	maxMessageSize = 4 * 1024
)

var (
	newline = []byte{'\n'}
	space   = []byte{' '}
)

// Client is a middleman between the websocket connection and the hub
type Client struct {
	hub  *Hub
	conn *websocket.Conn

	// Buffered channel of outbound frames
	send chan []byte

	userID string
	role   string

	logger zerolog.Logger
}

// inbound is a control frame sent by the browser
type inbound struct {
	Type   string `json:"type"`
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

// readPump handles control frames until the connection drops.
// Closing the connection is left to writePump so queued replies still go out.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error { c.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Warn().Err(err).Str("userID", c.userID).Msg("Unexpected WebSocket close")
			} else {
				c.logger.Debug().Err(err).Str("userID", c.userID).Msg("WebSocket closed")
			}
			return
		}

		message = bytes.TrimSpace(bytes.Replace(message, newline, space, -1))

		var msg inbound
		if err := json.Unmarshal(message, &msg); err != nil {
			c.logger.Debug().Err(err).Str("userID", c.userID).Msg("Ignoring malformed client frame")
			continue
		}

		if !c.handle(msg) {
			return
		}
	}
}

// handle answers a control frame; false ends the connection
func (c *Client) handle(msg inbound) bool {
	switch msg.Type {
	case "authenticate":
		// The connection is already bound to the token's identity;
		// a frame claiming someone else is refused.
		if msg.UserID != c.userID || (msg.Role != "" && !strings.EqualFold(msg.Role, c.role)) {
			c.logger.Warn().Str("userID", c.userID).Str("claimed", msg.UserID).Msg("Authenticate frame does not match token")
			c.hub.sendReply(c, Event{Name: eventAuthError, Timestamp: time.Now().UTC()})
			return false
		}
		c.hub.sendReply(c, Event{
			Name:      eventAuthenticated,
			Data:      map[string]string{"userId": c.userID, "role": c.role},
			Timestamp: time.Now().UTC(),
		})
	case "ping":
		c.hub.sendReply(c, Event{Name: eventPong, Timestamp: time.Now().UTC()})
	}
	return true
}

// writePump pumps frames from the hub to the websocket connection
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

			// One event per frame so browsers can JSON.parse each message
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
