package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bankterm/terminal_backend/internal/apperrors"
	"github.com/bankterm/terminal_backend/internal/core/domain"
	portsrepo "github.com/bankterm/terminal_backend/internal/core/ports/repositories"
	"github.com/bankterm/terminal_backend/internal/models"
	"github.com/bankterm/terminal_backend/internal/utils/mapping"
)

type PgxScheduleRepository struct {
	BaseRepository
}

// newPgxScheduleRepository creates a new repository for scheduled payments.
func newPgxScheduleRepository(pool *pgxpool.Pool) portsrepo.ScheduleRepositoryWithTx {
	return &PgxScheduleRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.ScheduleRepositoryWithTx = (*PgxScheduleRepository)(nil)

const scheduleColumns = `schedule_id, account_id, total_amount, installment_count, remaining_installments, interval_days, next_due_date, status, created_at, created_by, last_updated_at, last_updated_by`

func scanSchedule(row pgx.Row) (*domain.ScheduledPayment, error) {
	var m models.ScheduledPayment
	err := row.Scan(
		&m.ScheduleID,
		&m.AccountID,
		&m.TotalAmount,
		&m.InstallmentCount,
		&m.RemainingInstallments,
		&m.IntervalDays,
		&m.NextDueDate,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	schedule := mapping.ToDomainScheduledPayment(m)
	return &schedule, nil
}

// FindScheduleByID retrieves a specific scheduled payment.
func (r *PgxScheduleRepository) FindScheduleByID(ctx context.Context, scheduleID string) (*domain.ScheduledPayment, error) {
	query := `SELECT ` + scheduleColumns + ` FROM scheduled_payments WHERE schedule_id = $1;`

	schedule, err := scanSchedule(r.Pool.QueryRow(ctx, query, scheduleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: schedule %s", apperrors.ErrNotFound, scheduleID)
		}
		return nil, fmt.Errorf("failed to find schedule %s: %w", scheduleID, err)
	}
	return schedule, nil
}

// ListDueSchedules retrieves up to limit ACTIVE schedules whose next due date
// is at or before asOf, oldest due first. SKIP LOCKED keeps concurrent trigger
// runs from picking up the same schedule twice.
func (r *PgxScheduleRepository) ListDueSchedules(ctx context.Context, asOf time.Time, limit int) ([]domain.ScheduledPayment, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM scheduled_payments
		WHERE status = $1 AND next_due_date <= $2
		ORDER BY next_due_date ASC
		LIMIT $3
		FOR UPDATE SKIP LOCKED;
	`
	rows, err := r.Pool.Query(ctx, query, string(domain.ScheduleActive), asOf, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list due schedules: %w", err)
	}
	defer rows.Close()

	var schedules []domain.ScheduledPayment
	for rows.Next() {
		schedule, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan schedule row: %w", err)
		}
		schedules = append(schedules, *schedule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading schedule rows: %w", err)
	}
	return schedules, nil
}

// SaveSchedule persists a new scheduled payment.
func (r *PgxScheduleRepository) SaveSchedule(ctx context.Context, schedule domain.ScheduledPayment) error {
	m := mapping.ToModelScheduledPayment(schedule)

	query := `
		INSERT INTO scheduled_payments (` + scheduleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ScheduleID,
		m.AccountID,
		m.TotalAmount,
		m.InstallmentCount,
		m.RemainingInstallments,
		m.IntervalDays,
		m.NextDueDate,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: schedule %s already exists", apperrors.ErrDuplicate, m.ScheduleID)
		}
		return fmt.Errorf("failed to save schedule %s: %w", m.ScheduleID, err)
	}
	return nil
}

// UpdateScheduleStatus transitions the status of a schedule.
func (r *PgxScheduleRepository) UpdateScheduleStatus(ctx context.Context, scheduleID string, status domain.ScheduleStatus, userID string, now time.Time) error {
	query := `
		UPDATE scheduled_payments
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE schedule_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, scheduleID, string(status), now, userID)
	if err != nil {
		return fmt.Errorf("failed to update status of schedule %s: %w", scheduleID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: schedule %s", apperrors.ErrNotFound, scheduleID)
	}
	return nil
}

// FindScheduleByIDForUpdate selects a schedule and locks its row for update
// within the transaction.
func (r *PgxScheduleRepository) FindScheduleByIDForUpdate(ctx context.Context, tx pgx.Tx, scheduleID string) (*domain.ScheduledPayment, error) {
	query := `SELECT ` + scheduleColumns + ` FROM scheduled_payments WHERE schedule_id = $1 FOR UPDATE;`

	schedule, err := scanSchedule(tx.QueryRow(ctx, query, scheduleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: schedule %s", apperrors.ErrNotFound, scheduleID)
		}
		return nil, fmt.Errorf("failed to lock schedule %s: %w", scheduleID, err)
	}
	return schedule, nil
}

// UpdateScheduleInTx persists the advanced schedule state within the transaction.
func (r *PgxScheduleRepository) UpdateScheduleInTx(ctx context.Context, tx pgx.Tx, schedule domain.ScheduledPayment) error {
	m := mapping.ToModelScheduledPayment(schedule)

	query := `
		UPDATE scheduled_payments
		SET remaining_installments = $2, next_due_date = $3, status = $4, last_updated_at = $5, last_updated_by = $6
		WHERE schedule_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		m.ScheduleID,
		m.RemainingInstallments,
		m.NextDueDate,
		m.Status,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update schedule %s: %w", m.ScheduleID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: schedule %s", apperrors.ErrNotFound, m.ScheduleID)
	}
	return nil
}
