package services

import (
	"context"
	"time"

	"github.com/bankterm/terminal_backend/internal/core/domain"
	"github.com/bankterm/terminal_backend/internal/dto"
)

// ScheduleSvcFacade defines scheduled-payment lifecycle operations. Settling
// a due installment is not here: that goes through the operation manager as
// an INSTALLMENT_PAYMENT command.
type ScheduleSvcFacade interface {
	// CreateSchedule sets up a new ACTIVE installment payment.
	CreateSchedule(ctx context.Context, req dto.CreateScheduleRequest, actor domain.User) (*domain.ScheduledPayment, error)

	// GetScheduleByID retrieves a schedule. Only the account owner or an
	// admin may read it.
	GetScheduleByID(ctx context.Context, scheduleID string, actor domain.User) (*domain.ScheduledPayment, error)

	// CancelSchedule transitions an ACTIVE schedule to CANCELLED.
	CancelSchedule(ctx context.Context, scheduleID string, actor domain.User) error

	// ListDueSchedules returns ACTIVE schedules due at or before asOf.
	ListDueSchedules(ctx context.Context, asOf time.Time, limit int) ([]domain.ScheduledPayment, error)
}
