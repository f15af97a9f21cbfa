package ws

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/KirkDiggler/sketchquest/internal/services/game"
)

// NewRouter wires the HTTP surface: health, room lookup and the websocket
func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(h.logger))

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	router.GET("/rooms/:id", h.GetRoom)
	router.GET("/ws", h.ServeWS)

	return router
}

// GetRoom returns a public snapshot of a room
func (h *Handler) GetRoom(c *gin.Context) {
	out, err := h.gameService.GetRoom(c.Request.Context(), &game.GetRoomInput{
		RoomID: c.Param("id"),
	})
	if err != nil {
		if errors.Is(err, game.ErrGameNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": errorMessage(err)})
			return
		}
		h.logger.Error().Err(err).Str("room_id", c.Param("id")).Msg("failed to get room")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": errorMessage(err)})
		return
	}

	c.JSON(http.StatusOK, newRoomView(out.Room, out.Phase))
}

func requestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Debug().
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
