package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/bankterm/terminal_backend/internal/core/ports/services"
	"github.com/bankterm/terminal_backend/internal/dto"
	"github.com/bankterm/terminal_backend/internal/middleware"
)

// scheduleHandler handles scheduled payment lifecycle requests.
type scheduleHandler struct {
	scheduleService portssvc.ScheduleSvcFacade
	userService     portssvc.UserSvcFacade
}

func newScheduleHandler(ss portssvc.ScheduleSvcFacade, us portssvc.UserSvcFacade) *scheduleHandler {
	return &scheduleHandler{scheduleService: ss, userService: us}
}

// registerScheduleRoutes registers all schedule-related routes.
func registerScheduleRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newScheduleHandler(services.Schedule, services.User)

	schedules := rg.Group("/schedules")
	{
		schedules.POST("", h.createSchedule)
		schedules.GET("/:id", h.getSchedule)
		schedules.DELETE("/:id", h.cancelSchedule)
	}
}

func (h *scheduleHandler) createSchedule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := currentUser(c, h.userService)
	if !ok {
		return
	}

	schedule, err := h.scheduleService.CreateSchedule(c.Request.Context(), req, *actor)
	if err != nil {
		respondError(c, logger, err, "Failed to create schedule")
		return
	}

	c.JSON(http.StatusCreated, dto.ToScheduleResponse(schedule))
}

func (h *scheduleHandler) getSchedule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	scheduleID := c.Param("id")

	actor, ok := currentUser(c, h.userService)
	if !ok {
		return
	}

	schedule, err := h.scheduleService.GetScheduleByID(c.Request.Context(), scheduleID, *actor)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve schedule")
		return
	}

	c.JSON(http.StatusOK, dto.ToScheduleResponse(schedule))
}

func (h *scheduleHandler) cancelSchedule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	scheduleID := c.Param("id")

	actor, ok := currentUser(c, h.userService)
	if !ok {
		return
	}

	if err := h.scheduleService.CancelSchedule(c.Request.Context(), scheduleID, *actor); err != nil {
		respondError(c, logger, err, "Failed to cancel schedule")
		return
	}

	c.Status(http.StatusNoContent)
}
