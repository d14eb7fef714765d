package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bankterm/terminal_backend/internal/core/domain"
	portssvc "github.com/bankterm/terminal_backend/internal/core/ports/services"
	"github.com/bankterm/terminal_backend/internal/dto"
	"github.com/bankterm/terminal_backend/internal/middleware"
)

// inventoryHandler handles administrator cash pool maintenance.
type inventoryHandler struct {
	inventoryService portssvc.InventorySvcFacade
	userService      portssvc.UserSvcFacade
}

func newInventoryHandler(is portssvc.InventorySvcFacade, us portssvc.UserSvcFacade) *inventoryHandler {
	return &inventoryHandler{inventoryService: is, userService: us}
}

// registerInventoryRoutes registers all inventory-related routes. All admin only.
func registerInventoryRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newInventoryHandler(services.Inventory, services.User)

	inventory := rg.Group("/inventory")
	{
		inventory.GET("", h.listPositions)
		inventory.PUT("/:denomination", h.restock)
	}
}

func (h *inventoryHandler) listPositions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := currentUser(c, h.userService)
	if !ok {
		return
	}

	positions, err := h.inventoryService.ListPositions(c.Request.Context(), *actor)
	if err != nil {
		respondError(c, logger, err, "Failed to list inventory")
		return
	}

	c.JSON(http.StatusOK, dto.ToInventoryPositionResponses(positions))
}

func (h *inventoryHandler) restock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	face, err := strconv.ParseInt(c.Param("denomination"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Path parameter 'denomination' must be an integer"})
		return
	}

	var req dto.RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := currentUser(c, h.userService)
	if !ok {
		return
	}

	position, err := h.inventoryService.Restock(c.Request.Context(), domain.Denomination(face), req.Quantity, *actor)
	if err != nil {
		respondError(c, logger, err, "Failed to restock inventory")
		return
	}

	c.JSON(http.StatusOK, dto.InventoryPositionResponse{
		Denomination: int64(position.Denomination),
		Quantity:     position.Quantity,
	})
}
