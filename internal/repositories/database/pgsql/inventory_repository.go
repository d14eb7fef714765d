package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bankterm/terminal_backend/internal/apperrors"
	"github.com/bankterm/terminal_backend/internal/core/domain"
	portsrepo "github.com/bankterm/terminal_backend/internal/core/ports/repositories"
	"github.com/bankterm/terminal_backend/internal/models"
	"github.com/bankterm/terminal_backend/internal/utils/mapping"
)

type PgxInventoryRepository struct {
	BaseRepository
}

// newPgxInventoryRepository creates a new repository for the terminal's cash pool.
func newPgxInventoryRepository(pool *pgxpool.Pool) portsrepo.InventoryRepositoryWithTx {
	return &PgxInventoryRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.InventoryRepositoryWithTx = (*PgxInventoryRepository)(nil)

// FindPositionByDenomination retrieves the position for a single face value.
func (r *PgxInventoryRepository) FindPositionByDenomination(ctx context.Context, denomination domain.Denomination) (*domain.InventoryPosition, error) {
	query := `
		SELECT denomination, quantity, created_at, created_by, last_updated_at, last_updated_by
		FROM inventory_positions
		WHERE denomination = $1;
	`
	var m models.InventoryPosition
	err := r.Pool.QueryRow(ctx, query, int64(denomination)).Scan(
		&m.Denomination,
		&m.Quantity,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: denomination %d", apperrors.ErrNotFound, denomination)
		}
		return nil, fmt.Errorf("failed to find inventory position for denomination %d: %w", denomination, err)
	}

	position := mapping.ToDomainInventoryPosition(m)
	return &position, nil
}

// FindAllPositions retrieves every denomination position, ascending by face value.
func (r *PgxInventoryRepository) FindAllPositions(ctx context.Context) ([]domain.InventoryPosition, error) {
	query := `
		SELECT denomination, quantity, created_at, created_by, last_updated_at, last_updated_by
		FROM inventory_positions
		ORDER BY denomination ASC;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory positions: %w", err)
	}
	defer rows.Close()

	var positions []domain.InventoryPosition
	for rows.Next() {
		var m models.InventoryPosition
		if err := rows.Scan(
			&m.Denomination,
			&m.Quantity,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan inventory row: %w", err)
		}
		positions = append(positions, mapping.ToDomainInventoryPosition(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading inventory rows: %w", err)
	}
	return positions, nil
}

// SavePosition upserts the position for one denomination (restocking).
func (r *PgxInventoryRepository) SavePosition(ctx context.Context, position domain.InventoryPosition) error {
	m := mapping.ToModelInventoryPosition(position)

	query := `
		INSERT INTO inventory_positions (denomination, quantity, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (denomination)
		DO UPDATE SET quantity = EXCLUDED.quantity, last_updated_at = EXCLUDED.last_updated_at, last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		m.Denomination,
		m.Quantity,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save inventory position for denomination %d: %w", m.Denomination, err)
	}
	return nil
}

// FindPositionsForUpdate selects the positions for the given face values and
// locks their rows for update within the transaction. Rows are locked in
// denomination order to keep concurrent lock acquisition deadlock free.
func (r *PgxInventoryRepository) FindPositionsForUpdate(ctx context.Context, tx pgx.Tx, denominations []domain.Denomination) (map[domain.Denomination]domain.InventoryPosition, error) {
	if len(denominations) == 0 {
		return map[domain.Denomination]domain.InventoryPosition{}, nil
	}

	sorted := make([]int64, 0, len(denominations))
	for _, denom := range denominations {
		sorted = append(sorted, int64(denom))
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	query := `
		SELECT denomination, quantity, created_at, created_by, last_updated_at, last_updated_by
		FROM inventory_positions
		WHERE denomination = ANY($1)
		ORDER BY denomination ASC
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, sorted)
	if err != nil {
		return nil, fmt.Errorf("failed to lock inventory positions: %w", err)
	}
	defer rows.Close()

	found := make(map[domain.Denomination]domain.InventoryPosition, len(sorted))
	for rows.Next() {
		var m models.InventoryPosition
		if err := rows.Scan(
			&m.Denomination,
			&m.Quantity,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan locked inventory row: %w", err)
		}
		found[domain.Denomination(m.Denomination)] = mapping.ToDomainInventoryPosition(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading locked inventory rows: %w", err)
	}

	for _, denom := range sorted {
		if _, ok := found[domain.Denomination(denom)]; !ok {
			return nil, fmt.Errorf("%w: denomination %d", apperrors.ErrNotFound, denom)
		}
	}
	return found, nil
}

// SetQuantitiesInTx overwrites the quantity of each listed denomination within
// the transaction. Callers must have locked the rows first.
func (r *PgxInventoryRepository) SetQuantitiesInTx(ctx context.Context, tx pgx.Tx, quantities map[domain.Denomination]int64, userID string, now time.Time) error {
	query := `
		UPDATE inventory_positions
		SET quantity = $2, last_updated_at = $3, last_updated_by = $4
		WHERE denomination = $1;
	`
	for denom, quantity := range quantities {
		tag, err := tx.Exec(ctx, query, int64(denom), quantity, now, userID)
		if err != nil {
			return fmt.Errorf("failed to set quantity for denomination %d: %w", denom, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: denomination %d", apperrors.ErrNotFound, denom)
		}
	}
	return nil
}
