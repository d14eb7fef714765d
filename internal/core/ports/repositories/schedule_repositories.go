package repositories

import (
	"context"
	"time"

	"github.com/bankterm/terminal_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// ScheduleReader defines read operations for scheduled payments.
type ScheduleReader interface {
	// FindScheduleByID retrieves a specific scheduled payment.
	FindScheduleByID(ctx context.Context, scheduleID string) (*domain.ScheduledPayment, error)

	// ListDueSchedules retrieves up to limit ACTIVE schedules whose next due
	// date is at or before asOf, oldest due first.
	ListDueSchedules(ctx context.Context, asOf time.Time, limit int) ([]domain.ScheduledPayment, error)
}

// ScheduleWriter defines write operations for scheduled payments.
type ScheduleWriter interface {
	// SaveSchedule persists a new scheduled payment.
	SaveSchedule(ctx context.Context, schedule domain.ScheduledPayment) error

	// UpdateScheduleStatus transitions the status of a schedule (cancellation).
	UpdateScheduleStatus(ctx context.Context, scheduleID string, status domain.ScheduleStatus, userID string, now time.Time) error
}

// ScheduleTransactionSupport defines operations that run inside a command's
// storage transaction.
type ScheduleTransactionSupport interface {
	// FindScheduleByIDForUpdate selects a schedule and locks its row for
	// update within the transaction.
	FindScheduleByIDForUpdate(ctx context.Context, tx pgx.Tx, scheduleID string) (*domain.ScheduledPayment, error)

	// UpdateScheduleInTx persists the advanced schedule state within the transaction.
	UpdateScheduleInTx(ctx context.Context, tx pgx.Tx, schedule domain.ScheduledPayment) error
}

// ScheduleRepositoryFacade combines all schedule-related repository interfaces
type ScheduleRepositoryFacade interface {
	ScheduleReader
	ScheduleWriter
	ScheduleTransactionSupport
}

// ScheduleRepositoryWithTx extends ScheduleRepositoryFacade with transaction capabilities
type ScheduleRepositoryWithTx interface {
	ScheduleRepositoryFacade
	TransactionManager
}
