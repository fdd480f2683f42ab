package websocket

import (
	"context"
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/gpacalc/internal/middleware"
)

// SnapshotFunc builds the first message a new subscriber receives.
type SnapshotFunc func(ctx context.Context, sessionID string) (*Message, error)

// Handler for WebSocket connections
type Handler struct {
	hub      *Hub
	snapshot SnapshotFunc
	logger   zerolog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, snapshot SnapshotFunc, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:      hub,
		snapshot: snapshot,
		logger:   logger,
	}
}

// HandleConnection godoc
// @Summary Subscribe to live GPA results
// @Description Upgrades to a WebSocket that receives the current result and every recomputed result of the session
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param token query string false "Session token, for clients that cannot set headers"
// @Success 101 {string} string "Switching Protocols to WebSocket"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid session token"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /sessions/current/ws [get]
func (h *Handler) HandleConnection(c *gin.Context) {
	sessionID, ok := middleware.SessionIDFromContext(c)
	if !ok {
		middleware.AbortUnauthorized(c, "Session token required")
		return
	}

	// validate the session before upgrading so errors still get a JSON body
	initial, err := h.snapshot(c.Request.Context(), sessionID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("sessionID", sessionID).
			Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := &Client{
		hub:       h.hub,
		conn:      conn,
		send:      make(chan []byte, 64),
		sessionID: sessionID,
		logger:    h.logger,
	}

	if data, err := json.Marshal(initial); err == nil {
		client.send <- data
	}

	if !h.hub.subscribe(client) {
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()

	h.logger.Info().
		Str("sessionID", sessionID).
		Str("remoteAddr", conn.RemoteAddr().String()).
		Msg("WebSocket subscriber connected")
}
