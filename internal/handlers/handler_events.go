package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/dental_clinic_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// sseKeepAlive is how often an idle stream gets a ping so proxies keep it open.
const sseKeepAlive = 25 * time.Second

// streamEvents godoc
// @Summary Stream cash register events
// @Description Server-sent events for submissions and status changes. Cashiers only receive events about their own shifts.
// @Tags cash-registers
// @Produce text/event-stream
// @Success 200 {string} string "text/event-stream of cash register events"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /cash-registers/events [get]
func (h *cashRegisterHandler) streamEvents(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ctx := c.Request.Context()
	events, cancel := h.cashRegisterService.SubscribeEvents(ctx, actor)
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	ticker := time.NewTicker(sseKeepAlive)
	defer ticker.Stop()

	logger.Info("Event stream opened")
	c.SSEvent("ready", gin.H{"userID": actor.UserID})
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case event, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent(string(event.Type), event)
			return true
		case <-ticker.C:
			c.SSEvent("ping", gin.H{"at": time.Now().UTC()})
			return true
		}
	})
	logger.Info("Event stream closed", slog.String("reason", streamEndReason(ctx.Err())))
}

func streamEndReason(err error) string {
	if err != nil {
		return err.Error()
	}
	return "subscription ended"
}
