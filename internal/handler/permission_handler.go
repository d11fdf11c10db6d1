package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/inkwell-reminder-engine/internal/infra/permission"
)

type permissionRequest struct {
	ExactWakeups  *bool `json:"exact_wakeups"`
	Notifications *bool `json:"notifications"`
}

// PermissionHandler updates the runtime permission grants. A revoked exact
// wakeup grant takes effect on each schedule's next reinstall.
type PermissionHandler struct {
	oracle *permission.RuntimeOracle
}

func NewPermissionHandler(oracle *permission.RuntimeOracle) *PermissionHandler {
	return &PermissionHandler{oracle: oracle}
}

func (h *PermissionHandler) HandleUpdate(c *gin.Context) {
	ctx := c.Request.Context()

	var req permissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": err.Error()})
		return
	}

	if req.ExactWakeups != nil {
		h.oracle.SetExactWakeups(*req.ExactWakeups)
		slog.InfoContext(ctx, "exact wakeup grant updated",
			slog.Bool("granted", *req.ExactWakeups),
		)
	}
	if req.Notifications != nil {
		h.oracle.SetNotifications(*req.Notifications)
		slog.InfoContext(ctx, "notification grant updated",
			slog.Bool("granted", *req.Notifications),
		)
	}

	c.JSON(http.StatusOK, gin.H{
		"exact_wakeups": h.oracle.CanScheduleExactWakeups(),
		"notifications": h.oracle.CanShowNotifications(),
	})
}
