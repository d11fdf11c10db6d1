package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/inkwell-reminder-engine/internal/service/engine"
)

// RescheduleHandler triggers a full reconciliation on demand, the same pass
// that runs at boot.
type RescheduleHandler struct {
	engine *engine.Engine
}

func NewRescheduleHandler(eng *engine.Engine) *RescheduleHandler {
	return &RescheduleHandler{engine: eng}
}

func (h *RescheduleHandler) HandleReschedule(c *gin.Context) {
	ctx := c.Request.Context()

	result, err := h.engine.RescheduleAll(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "reschedule failed",
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reschedule_error", "message": "failed to reschedule"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reminders_installed": result.RemindersInstalled,
		"goals_installed":     result.GoalsInstalled,
		"failed":              result.Failed,
	})
}
