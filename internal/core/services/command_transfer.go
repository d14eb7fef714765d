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

// transferCommand moves funds between two accounts. Both balance writes
// happen inside the same storage transaction; the repository locks the rows
// in a deterministic order.
type transferCommand struct {
	originAccountID      string
	destinationAccountID string
	amount               decimal.Decimal
	actor                domain.User

	accountRepo portsrepo.AccountTransactionSupport
}

func (c *transferCommand) Kind() domain.OperationKind {
	return domain.OpTransfer
}

func (c *transferCommand) Execute(ctx context.Context, tx pgx.Tx) (*Execution, error) {
	accounts, err := c.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, []string{c.originAccountID, c.destinationAccountID})
	if err != nil {
		return nil, err
	}
	origin, ok := accounts[c.originAccountID]
	if !ok {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, c.originAccountID)
	}
	destination, ok := accounts[c.destinationAccountID]
	if !ok {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, c.destinationAccountID)
	}

	if !c.actor.IsAdmin() && origin.OwnerUserID != c.actor.UserID {
		return nil, fmt.Errorf("%w: user %s cannot transfer from account %s", apperrors.ErrForbidden, c.actor.UserID, c.originAccountID)
	}

	if origin.Balance.LessThan(c.amount) {
		return nil, fmt.Errorf("%w: balance %s is below %s", ErrInsufficientFunds, origin.Balance, c.amount)
	}

	memento := domain.NewMemento(
		map[string]decimal.Decimal{
			c.originAccountID:      origin.Balance,
			c.destinationAccountID: destination.Balance,
		},
		nil,
	)

	balances := map[string]decimal.Decimal{
		c.originAccountID:      origin.Balance.Sub(c.amount),
		c.destinationAccountID: destination.Balance.Add(c.amount),
	}
	if err := c.accountRepo.SetAccountBalancesInTx(ctx, tx, balances, c.actor.UserID, time.Now().UTC()); err != nil {
		return nil, err
	}

	return &Execution{
		Memento:              memento,
		Amount:               c.amount,
		OriginAccountID:      c.originAccountID,
		DestinationAccountID: c.destinationAccountID,
	}, nil
}
