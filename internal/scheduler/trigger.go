// Package scheduler settles due installment payments in the background.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/bankterm/terminal_backend/internal/core/domain"
	portsrepo "github.com/bankterm/terminal_backend/internal/core/ports/repositories"
	portssvc "github.com/bankterm/terminal_backend/internal/core/ports/services"
	"github.com/bankterm/terminal_backend/internal/dto"
	"github.com/bankterm/terminal_backend/internal/middleware"
)

// Trigger polls for due schedules and settles each through the operation
// manager as an installment payment on behalf of the account owner.
type Trigger struct {
	scheduleSvc  portssvc.ScheduleSvcFacade
	operationSvc portssvc.OperationSvcFacade
	accountRepo  portsrepo.AccountReader
	userRepo     portsrepo.UserReader
	interval     time.Duration
	batchSize    int
	logger       *slog.Logger
}

// NewTrigger creates the settlement trigger.
func NewTrigger(
	scheduleSvc portssvc.ScheduleSvcFacade,
	operationSvc portssvc.OperationSvcFacade,
	accountRepo portsrepo.AccountReader,
	userRepo portsrepo.UserReader,
	interval time.Duration,
	batchSize int,
	logger *slog.Logger,
) *Trigger {
	return &Trigger{
		scheduleSvc:  scheduleSvc,
		operationSvc: operationSvc,
		accountRepo:  accountRepo,
		userRepo:     userRepo,
		interval:     interval,
		batchSize:    batchSize,
		logger:       logger,
	}
}

// Start runs the polling loop until the context is cancelled. A failing
// settlement is logged and skipped; the loop itself never stops on errors.
func (t *Trigger) Start(ctx context.Context) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	t.logger.Info("Schedule settlement trigger started", slog.Duration("interval", t.interval))

	for {
		select {
		case <-ctx.Done():
			t.logger.Info("Schedule settlement trigger stopped")
			return
		case <-ticker.C:
			t.runOnce(ctx)
		}
	}
}

func (t *Trigger) runOnce(ctx context.Context) {
	ctx = middleware.ContextWithLogger(ctx, t.logger)

	due, err := t.scheduleSvc.ListDueSchedules(ctx, time.Now().UTC(), t.batchSize)
	if err != nil {
		t.logger.Error("Failed to list due schedules", slog.String("error", err.Error()))
		return
	}

	for _, schedule := range due {
		if err := t.settle(ctx, schedule); err != nil {
			t.logger.Error("Failed to settle due installment",
				slog.String("schedule_id", schedule.ScheduleID),
				slog.String("account_id", schedule.AccountID),
				slog.String("error", err.Error()))
		}
	}
}

// settle runs one installment payment with the account owner as the acting user.
func (t *Trigger) settle(ctx context.Context, schedule domain.ScheduledPayment) error {
	account, err := t.accountRepo.FindAccountByID(ctx, schedule.AccountID)
	if err != nil {
		return err
	}
	owner, err := t.userRepo.FindUserByID(ctx, account.OwnerUserID)
	if err != nil {
		return err
	}

	record, err := t.operationSvc.Run(ctx, domain.OpInstallmentPayment, *owner, "", dto.OperationParams{
		ScheduleID: schedule.ScheduleID,
	})
	if err != nil {
		return err
	}

	t.logger.Info("Installment settled",
		slog.String("schedule_id", schedule.ScheduleID),
		slog.String("record_id", record.RecordID),
		slog.String("amount", record.Amount.String()))
	return nil
}
