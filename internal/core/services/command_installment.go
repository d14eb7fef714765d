package services

import (
	"context"
	"fmt"
	"time"

	"github.com/bankterm/terminal_backend/internal/apperrors"
	"github.com/bankterm/terminal_backend/internal/core/domain"
	portsrepo "github.com/bankterm/terminal_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// installmentCommand settles one due installment of a scheduled payment:
// debits the account by the installment amount and advances the schedule.
type installmentCommand struct {
	scheduleID string
	actor      domain.User

	accountRepo  portsrepo.AccountTransactionSupport
	scheduleRepo portsrepo.ScheduleTransactionSupport
}

func (c *installmentCommand) Kind() domain.OperationKind {
	return domain.OpInstallmentPayment
}

func (c *installmentCommand) Execute(ctx context.Context, tx pgx.Tx) (*Execution, error) {
	schedule, err := c.scheduleRepo.FindScheduleByIDForUpdate(ctx, tx, c.scheduleID)
	if err != nil {
		return nil, err
	}
	if schedule.Status != domain.ScheduleActive {
		return nil, fmt.Errorf("%w: schedule %s is %s", ErrScheduleNotActive, c.scheduleID, schedule.Status)
	}

	accounts, err := c.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, []string{schedule.AccountID})
	if err != nil {
		return nil, err
	}
	account, ok := accounts[schedule.AccountID]
	if !ok {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, schedule.AccountID)
	}

	if !c.actor.IsAdmin() && account.OwnerUserID != c.actor.UserID {
		return nil, fmt.Errorf("%w: user %s cannot pay installments for account %s", apperrors.ErrForbidden, c.actor.UserID, schedule.AccountID)
	}

	installment := schedule.InstallmentAmount()
	if account.Balance.LessThan(installment) {
		return nil, fmt.Errorf("%w: balance %s is below installment %s", ErrInsufficientFunds, account.Balance, installment)
	}

	memento := domain.NewMemento(
		map[string]decimal.Decimal{schedule.AccountID: account.Balance},
		nil,
	)

	now := time.Now().UTC()
	newBalance := account.Balance.Sub(installment)
	if err := c.accountRepo.SetAccountBalancesInTx(ctx, tx, map[string]decimal.Decimal{schedule.AccountID: newBalance}, c.actor.UserID, now); err != nil {
		return nil, err
	}

	schedule.Advance()
	schedule.LastUpdatedAt = now
	schedule.LastUpdatedBy = c.actor.UserID
	if err := c.scheduleRepo.UpdateScheduleInTx(ctx, tx, *schedule); err != nil {
		return nil, err
	}

	return &Execution{
		Memento:         memento,
		Amount:          installment,
		OriginAccountID: schedule.AccountID,
	}, nil
}
