package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/KasumiMercury/inkwell-reminder-engine/internal/domain"
	"github.com/KasumiMercury/inkwell-reminder-engine/internal/service/dispatch"
	"github.com/KasumiMercury/inkwell-reminder-engine/internal/service/engine"
)

// timeNow is swapped in tests to pin the current day.
var timeNow = time.Now

type goalRequest struct {
	Hour       int    `json:"hour"`
	Minute     int    `json:"minute"`
	ActiveDays []int  `json:"active_days"`
	IsActive   *bool  `json:"is_active"`
	Title      string `json:"title"`
}

type goalResponse struct {
	ID         string `json:"id"`
	Hour       int    `json:"hour"`
	Minute     int    `json:"minute"`
	ActiveDays []int  `json:"active_days"`
	IsActive   bool   `json:"is_active"`
	Title      string `json:"title"`
}

type GoalHandler struct {
	goals      domain.GoalStore
	engine     *engine.Engine
	dispatcher *dispatch.Dispatcher
}

func NewGoalHandler(goals domain.GoalStore, eng *engine.Engine, dispatcher *dispatch.Dispatcher) *GoalHandler {
	return &GoalHandler{
		goals:      goals,
		engine:     eng,
		dispatcher: dispatcher,
	}
}

func (h *GoalHandler) HandleCreate(c *gin.Context) {
	h.upsert(c, uuid.NewString(), http.StatusCreated)
}

func (h *GoalHandler) HandleUpdate(c *gin.Context) {
	h.upsert(c, c.Param("id"), http.StatusOK)
}

func (h *GoalHandler) upsert(c *gin.Context, id string, successStatus int) {
	ctx := c.Request.Context()

	var req goalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": err.Error()})
		return
	}

	def := &domain.GoalDefinition{
		ID:         id,
		TimeOfDay:  domain.TimeOfDay{Hour: req.Hour, Minute: req.Minute},
		ActiveDays: domain.NewDaySet(req.ActiveDays...),
		IsActive:   req.IsActive == nil || *req.IsActive,
		Title:      req.Title,
	}

	if !def.TimeOfDay.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": "hour must be 0-23 and minute 0-59"})
		return
	}
	if def.ActiveDays.IsEmpty() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": "at least one active day is required"})
		return
	}
	if def.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": "title is required"})
		return
	}

	if err := h.goals.Save(ctx, def); err != nil {
		slog.ErrorContext(ctx, "failed to save goal",
			slog.String("goal_id", def.ID),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage_error", "message": "failed to save goal"})
		return
	}

	if err := h.engine.ScheduleGoalReminder(ctx, def); err != nil {
		slog.ErrorContext(ctx, "failed to schedule goal reminder",
			slog.String("goal_id", def.ID),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "scheduling_error", "message": "failed to schedule goal reminder"})
		return
	}

	c.JSON(successStatus, toGoalResponse(def))
}

func (h *GoalHandler) HandleGet(c *gin.Context) {
	ctx := c.Request.Context()

	def, err := h.goals.Get(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrGoalNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "goal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage_error", "message": "failed to load goal"})
		return
	}

	c.JSON(http.StatusOK, toGoalResponse(def))
}

func (h *GoalHandler) HandleDelete(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	h.engine.CancelGoalReminder(id)

	if err := h.goals.Delete(ctx, id); err != nil {
		slog.ErrorContext(ctx, "failed to delete goal",
			slog.String("goal_id", id),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage_error", "message": "failed to delete goal"})
		return
	}

	c.Status(http.StatusNoContent)
}

// HandleCheckIn is the callback target of the notification's inline done
// button. Repeat taps on the same day are acknowledged without a new record.
func (h *GoalHandler) HandleCheckIn(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	if _, err := h.goals.Get(ctx, id); err != nil {
		if errors.Is(err, domain.ErrGoalNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "goal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage_error", "message": "failed to load goal"})
		return
	}

	created, err := h.dispatcher.RecordGoalCheckIn(ctx, id, domain.DayKey(timeNow()))
	if err != nil {
		slog.ErrorContext(ctx, "failed to record goal check-in",
			slog.String("goal_id", id),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage_error", "message": "failed to record check-in"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "checked_in", "created": created})
}

func toGoalResponse(def *domain.GoalDefinition) goalResponse {
	return goalResponse{
		ID:         def.ID,
		Hour:       def.TimeOfDay.Hour,
		Minute:     def.TimeOfDay.Minute,
		ActiveDays: def.ActiveDays.Days(),
		IsActive:   def.IsActive,
		Title:      def.Title,
	}
}
