package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bankterm/terminal_backend/internal/core/domain"
	portssvc "github.com/bankterm/terminal_backend/internal/core/ports/services"
	"github.com/bankterm/terminal_backend/internal/dto"
	"github.com/bankterm/terminal_backend/internal/middleware"
)

// operationHandler handles operation execution, listing and reversal.
type operationHandler struct {
	operationService portssvc.OperationSvcFacade
	userService      portssvc.UserSvcFacade
}

func newOperationHandler(os portssvc.OperationSvcFacade, us portssvc.UserSvcFacade) *operationHandler {
	return &operationHandler{operationService: os, userService: us}
}

// registerOperationRoutes registers all operation-related routes.
func registerOperationRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newOperationHandler(services.Operation, services.User)

	operations := rg.Group("/operations")
	{
		operations.POST("", h.runOperation)
		operations.GET("", h.listOperations)             // Admin only
		operations.POST("/:id/reverse", h.reverseRecord) // Admin only
	}
}

// runOperation executes one terminal operation of the requested kind.
func (h *operationHandler) runOperation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RunOperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := currentUser(c, h.userService)
	if !ok {
		return
	}

	record, err := h.operationService.Run(c.Request.Context(), domain.OperationKind(req.Kind), *actor, req.NotifyEmail, req.ToParams())
	if err != nil {
		respondError(c, logger, err, "Failed to execute operation")
		return
	}

	c.JSON(http.StatusCreated, dto.ToAuditRecordResponse(record))
}

// listOperations returns a user's reversible operation history. Admin only.
func (h *operationHandler) listOperations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID := c.Query("userID")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'userID' is required"})
		return
	}

	actor, ok := currentUser(c, h.userService)
	if !ok {
		return
	}

	records, err := h.operationService.ListOperations(c.Request.Context(), userID, *actor)
	if err != nil {
		respondError(c, logger, err, "Failed to list operations")
		return
	}

	c.JSON(http.StatusOK, dto.ToAuditRecordResponses(records))
}

// reverseRequest scopes a reversal to the user the record belongs to.
type reverseRequest struct {
	UserID string `json:"userID" binding:"required"`
}

// reverseRecord restores the state snapshotted by the record's memento. Admin only.
func (h *operationHandler) reverseRecord(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	recordID := c.Param("id")

	var req reverseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := currentUser(c, h.userService)
	if !ok {
		return
	}

	reversal, err := h.operationService.Reverse(c.Request.Context(), recordID, req.UserID, *actor)
	if err != nil {
		respondError(c, logger, err, "Failed to reverse operation")
		return
	}

	logger.Info("Operation reversal requested",
		slog.String("record_id", recordID),
		slog.String("reversal_record_id", reversal.RecordID))
	c.JSON(http.StatusCreated, dto.ToAuditRecordResponse(reversal))
}
