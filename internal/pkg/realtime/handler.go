package realtime

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Handler upgrades authenticated requests to websocket connections
type Handler struct {
	hub        *Hub
	upgrader   websocket.Upgrader
	sendBuffer int
	logger     zerolog.Logger
}

// NewHandler creates a new WebSocket handler. An empty allowedOrigins list accepts any origin.
func NewHandler(hub *Hub, allowedOrigins []string, sendBuffer int, logger zerolog.Logger) *Handler {
	if sendBuffer <= 0 {
		sendBuffer = 256
	}
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		sendBuffer: sendBuffer,
		logger:     logger,
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		for _, a := range allowed {
			if a == "*" || strings.EqualFold(a, origin) || strings.EqualFold(a, u.Host) {
				return true
			}
		}
		return false
	}
}

// HandleConnection godoc
// @Summary Open the notification stream
// @Description Upgrades to a WebSocket that pushes named events to the authenticated user
// @Tags realtime
// @Security BearerAuth
// @Param token query string false "JWT when the Authorization header cannot be set"
// @Success 101 {string} string "Switching Protocols to WebSocket"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Router /ws [get]
func (h *Handler) HandleConnection(c *gin.Context) {
	userID := c.GetString("userID")
	role := c.GetString("roleType")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User ID not found in context"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().Err(err).Str("userID", userID).Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := &Client{
		hub:    h.hub,
		conn:   conn,
		send:   make(chan []byte, h.sendBuffer),
		userID: userID,
		role:   role,
		logger: h.logger,
	}

	select {
	case h.hub.register <- client:
	case <-h.hub.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()

	h.logger.Info().
		Str("userID", userID).
		Str("remoteAddr", conn.RemoteAddr().String()).
		Msg("WebSocket connection established")
}
