package repositories

import (
	"context"
	"time"

	"github.com/bankterm/terminal_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// InventoryReader defines read operations for the terminal's cash pool.
type InventoryReader interface {
	// FindPositionByDenomination retrieves the position for a single face value.
	FindPositionByDenomination(ctx context.Context, denomination domain.Denomination) (*domain.InventoryPosition, error)

	// FindAllPositions retrieves every denomination position, ascending by face value.
	FindAllPositions(ctx context.Context) ([]domain.InventoryPosition, error)
}

// InventoryWriter defines write operations for the terminal's cash pool.
type InventoryWriter interface {
	// SavePosition upserts the position for one denomination (restocking).
	SavePosition(ctx context.Context, position domain.InventoryPosition) error
}

// InventoryTransactionSupport defines operations that run inside a command's
// storage transaction. Inventory rows are the most contended resource, so all
// mutation goes through row locks taken here.
type InventoryTransactionSupport interface {
	// FindPositionsForUpdate selects the positions for the given face values
	// and locks their rows for update within the transaction. Missing
	// denominations yield ErrNotFound.
	FindPositionsForUpdate(ctx context.Context, tx pgx.Tx, denominations []domain.Denomination) (map[domain.Denomination]domain.InventoryPosition, error)

	// SetQuantitiesInTx overwrites the quantity of each listed denomination
	// within the transaction.
	SetQuantitiesInTx(ctx context.Context, tx pgx.Tx, quantities map[domain.Denomination]int64, userID string, now time.Time) error
}

// InventoryRepositoryFacade combines all inventory-related repository interfaces
type InventoryRepositoryFacade interface {
	InventoryReader
	InventoryWriter
	InventoryTransactionSupport
}

// InventoryRepositoryWithTx extends InventoryRepositoryFacade with transaction capabilities
type InventoryRepositoryWithTx interface {
	InventoryRepositoryFacade
	TransactionManager
}
