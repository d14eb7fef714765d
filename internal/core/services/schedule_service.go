package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bankterm/terminal_backend/internal/apperrors"
	"github.com/bankterm/terminal_backend/internal/core/domain"
	portsrepo "github.com/bankterm/terminal_backend/internal/core/ports/repositories"
	portssvc "github.com/bankterm/terminal_backend/internal/core/ports/services"
	"github.com/bankterm/terminal_backend/internal/dto"
	"github.com/bankterm/terminal_backend/internal/middleware"
)

// scheduleService provides scheduled-payment lifecycle operations.
type scheduleService struct {
	scheduleRepo portsrepo.ScheduleRepositoryFacade
	accountRepo  portsrepo.AccountReader
}

// NewScheduleService creates a new schedule service.
func NewScheduleService(scheduleRepo portsrepo.ScheduleRepositoryFacade, accountRepo portsrepo.AccountReader) portssvc.ScheduleSvcFacade {
	return &scheduleService{scheduleRepo: scheduleRepo, accountRepo: accountRepo}
}

var _ portssvc.ScheduleSvcFacade = (*scheduleService)(nil)

// CreateSchedule sets up a new ACTIVE installment payment against an account
// the actor controls.
func (s *scheduleService) CreateSchedule(ctx context.Context, req dto.CreateScheduleRequest, actor domain.User) (*domain.ScheduledPayment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.TotalAmount.IsPositive() {
		return nil, fmt.Errorf("%w: total amount must be positive", apperrors.ErrValidation)
	}

	account, err := s.accountRepo.FindAccountByID(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	if account.OwnerUserID != actor.UserID && !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, req.AccountID)
	}

	now := time.Now().UTC()
	schedule := domain.ScheduledPayment{
		ScheduleID:            uuid.NewString(),
		AccountID:             req.AccountID,
		TotalAmount:           req.TotalAmount,
		InstallmentCount:      req.InstallmentCount,
		RemainingInstallments: req.InstallmentCount,
		IntervalDays:          req.IntervalDays,
		NextDueDate:           req.FirstDueDate,
		Status:                domain.ScheduleActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.scheduleRepo.SaveSchedule(ctx, schedule); err != nil {
		return nil, fmt.Errorf("failed to save schedule: %w", err)
	}

	logger.Info("Schedule created",
		slog.String("schedule_id", schedule.ScheduleID),
		slog.String("account_id", schedule.AccountID),
		slog.Int("installments", schedule.InstallmentCount))
	return &schedule, nil
}

// GetScheduleByID retrieves a schedule, restricted to the account owner or an admin.
func (s *scheduleService) GetScheduleByID(ctx context.Context, scheduleID string, actor domain.User) (*domain.ScheduledPayment, error) {
	schedule, err := s.scheduleRepo.FindScheduleByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, schedule, actor); err != nil {
		return nil, err
	}
	return schedule, nil
}

// CancelSchedule transitions an ACTIVE schedule to CANCELLED.
func (s *scheduleService) CancelSchedule(ctx context.Context, scheduleID string, actor domain.User) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	schedule, err := s.scheduleRepo.FindScheduleByID(ctx, scheduleID)
	if err != nil {
		return err
	}
	if err := s.authorize(ctx, schedule, actor); err != nil {
		return err
	}
	if schedule.Status != domain.ScheduleActive {
		return fmt.Errorf("%w: schedule %s is %s", ErrScheduleNotActive, scheduleID, schedule.Status)
	}

	now := time.Now().UTC()
	if err := s.scheduleRepo.UpdateScheduleStatus(ctx, scheduleID, domain.ScheduleCancelled, actor.UserID, now); err != nil {
		return fmt.Errorf("failed to cancel schedule: %w", err)
	}

	logger.Info("Schedule cancelled", slog.String("schedule_id", scheduleID), slog.String("by", actor.UserID))
	return nil
}

// ListDueSchedules returns ACTIVE schedules due at or before asOf. Used by the
// settlement trigger, not exposed to customers.
func (s *scheduleService) ListDueSchedules(ctx context.Context, asOf time.Time, limit int) ([]domain.ScheduledPayment, error) {
	return s.scheduleRepo.ListDueSchedules(ctx, asOf, limit)
}

func (s *scheduleService) authorize(ctx context.Context, schedule *domain.ScheduledPayment, actor domain.User) error {
	if actor.IsAdmin() {
		return nil
	}
	account, err := s.accountRepo.FindAccountByID(ctx, schedule.AccountID)
	if err != nil {
		return err
	}
	if account.OwnerUserID != actor.UserID {
		return fmt.Errorf("%w: schedule %s", apperrors.ErrNotFound, schedule.ScheduleID)
	}
	return nil
}
