package websocket

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/fitnesshub/internal/app/models/dto"
	"github.com/yigit/fitnesshub/internal/pkg/helpers"
)

// Handler upgrades class feed subscriptions
type Handler struct {
	hub    *Hub
	logger zerolog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:    hub,
		logger: logger,
	}
}

// HandleConnection godoc
// @Summary Subscribe to live class updates
// @Description Upgrades to a WebSocket that streams seat and status changes. Omit classId to receive every class.
// @Tags classes, websocket
// @Param classId query string false "Class ID"
// @Success 101 {string} string "Switching Protocols to WebSocket"
// @Failure 400 {object} dto.ErrorResponse "Invalid class ID"
// @Router /ws/classes [get]
func (h *Handler) HandleConnection(c *gin.Context) {
	topic := c.Query("classId")
	if topic == "" {
		topic = TopicAll
	} else if !helpers.IsObjectID(topic) {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidID, "Invalid class ID").WithField("classId"),
		))
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().Err(err).Str("topic", topic).Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := &Client{
		hub:    h.hub,
		conn:   conn,
		send:   make(chan []byte, 256),
		topic:  topic,
		logger: h.logger,
	}
	select {
	case client.hub.register <- client:
	case <-client.hub.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()

	h.logger.Info().
		Str("topic", topic).
		Str("remoteAddr", conn.RemoteAddr().String()).
		Msg("Class feed subscriber connected")
}
