package services

import (
	"context"

	"github.com/bankterm/terminal_backend/internal/core/domain"
)

// InventorySvcFacade defines administrator operations on the terminal's cash pool.
type InventorySvcFacade interface {
	// ListPositions retrieves every denomination position, ascending by face value.
	ListPositions(ctx context.Context, actor domain.User) ([]domain.InventoryPosition, error)

	// Restock overwrites the quantity of one denomination.
	Restock(ctx context.Context, denomination domain.Denomination, quantity int64, actor domain.User) (*domain.InventoryPosition, error)
}
