package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/KasumiMercury/inkwell-reminder-engine/internal/domain"
	"github.com/KasumiMercury/inkwell-reminder-engine/internal/service/engine"
)

type reminderRequest struct {
	Hour            int    `json:"hour"`
	Minute          int    `json:"minute"`
	ActiveDays      []int  `json:"active_days"`
	IsActive        *bool  `json:"is_active"`
	FallbackEnabled bool   `json:"fallback_enabled"`
	Label           string `json:"label"`
}

type reminderResponse struct {
	ID              string `json:"id"`
	Hour            int    `json:"hour"`
	Minute          int    `json:"minute"`
	ActiveDays      []int  `json:"active_days"`
	IsActive        bool   `json:"is_active"`
	FallbackEnabled bool   `json:"fallback_enabled"`
	Label           string `json:"label"`
}

type snoozeRequest struct {
	Minutes int `json:"minutes"`
}

type ReminderHandler struct {
	reminders     domain.ReminderStore
	engine        *engine.Engine
	snoozeDefault time.Duration
}

func NewReminderHandler(reminders domain.ReminderStore, eng *engine.Engine, snoozeDefault time.Duration) *ReminderHandler {
	return &ReminderHandler{
		reminders:     reminders,
		engine:        eng,
		snoozeDefault: snoozeDefault,
	}
}

// HandleCreate registers a new writing reminder and installs its schedule.
func (h *ReminderHandler) HandleCreate(c *gin.Context) {
	h.upsert(c, uuid.NewString(), http.StatusCreated)
}

// HandleUpdate replaces an existing reminder's definition and re-derives its
// schedule from the new values.
func (h *ReminderHandler) HandleUpdate(c *gin.Context) {
	h.upsert(c, c.Param("id"), http.StatusOK)
}

func (h *ReminderHandler) upsert(c *gin.Context, id string, successStatus int) {
	ctx := c.Request.Context()

	var req reminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": err.Error()})
		return
	}

	def := &domain.ReminderDefinition{
		ID:              id,
		TimeOfDay:       domain.TimeOfDay{Hour: req.Hour, Minute: req.Minute},
		ActiveDays:      domain.NewDaySet(req.ActiveDays...),
		IsActive:        req.IsActive == nil || *req.IsActive,
		FallbackEnabled: req.FallbackEnabled,
		Label:           req.Label,
	}

	if !def.TimeOfDay.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": "hour must be 0-23 and minute 0-59"})
		return
	}
	if def.ActiveDays.IsEmpty() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": "at least one active day is required"})
		return
	}

	if err := h.reminders.Save(ctx, def); err != nil {
		slog.ErrorContext(ctx, "failed to save reminder",
			slog.String("reminder_id", def.ID),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage_error", "message": "failed to save reminder"})
		return
	}

	if err := h.engine.ScheduleWritingReminder(ctx, def); err != nil {
		slog.ErrorContext(ctx, "failed to schedule reminder",
			slog.String("reminder_id", def.ID),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "scheduling_error", "message": "failed to schedule reminder"})
		return
	}

	c.JSON(successStatus, toReminderResponse(def))
}

func (h *ReminderHandler) HandleGet(c *gin.Context) {
	ctx := c.Request.Context()

	def, err := h.reminders.Get(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrReminderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "reminder not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage_error", "message": "failed to load reminder"})
		return
	}

	c.JSON(http.StatusOK, toReminderResponse(def))
}

// HandleDelete cancels the reminder's live schedules before removing the
// record, so no wakeup can fire for a reminder that no longer exists.
func (h *ReminderHandler) HandleDelete(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	h.engine.CancelReminder(id)

	if err := h.reminders.Delete(ctx, id); err != nil {
		slog.ErrorContext(ctx, "failed to delete reminder",
			slog.String("reminder_id", id),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage_error", "message": "failed to delete reminder"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ReminderHandler) HandleSnooze(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	// The body is optional; an absent or malformed one means the default delay.
	var req snoozeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req.Minutes = 0
	}

	delay := h.snoozeDefault
	if req.Minutes > 0 {
		delay = time.Duration(req.Minutes) * time.Minute
	}

	if err := h.engine.SnoozeReminder(ctx, id, delay); err != nil {
		if errors.Is(err, domain.ErrReminderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "reminder not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to snooze reminder",
			slog.String("reminder_id", id),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "scheduling_error", "message": "failed to snooze reminder"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "snoozed", "minutes": int(delay.Minutes())})
}

func toReminderResponse(def *domain.ReminderDefinition) reminderResponse {
	return reminderResponse{
		ID:              def.ID,
		Hour:            def.TimeOfDay.Hour,
		Minute:          def.TimeOfDay.Minute,
		ActiveDays:      def.ActiveDays.Days(),
		IsActive:        def.IsActive,
		FallbackEnabled: def.FallbackEnabled,
		Label:           def.Label,
	}
}
