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

// depositCommand credits an account with physical cash fed into the terminal,
// increasing both the balance and the note inventory.
type depositCommand struct {
	accountID string
	amount    decimal.Decimal
	notes     domain.NoteCounts
	actor     domain.User

	accountRepo   portsrepo.AccountTransactionSupport
	inventoryRepo portsrepo.InventoryTransactionSupport
}

func (c *depositCommand) Kind() domain.OperationKind {
	return domain.OpDeposit
}

func (c *depositCommand) Execute(ctx context.Context, tx pgx.Tx) (*Execution, error) {
	accounts, err := c.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, []string{c.accountID})
	if err != nil {
		return nil, err
	}
	account, ok := accounts[c.accountID]
	if !ok {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, c.accountID)
	}

	if !c.actor.IsAdmin() && account.OwnerUserID != c.actor.UserID {
		return nil, fmt.Errorf("%w: user %s cannot deposit into account %s", apperrors.ErrForbidden, c.actor.UserID, c.accountID)
	}

	positions, err := c.inventoryRepo.FindPositionsForUpdate(ctx, tx, c.notes.SortedDenominations())
	if err != nil {
		return nil, err
	}

	// Snapshot the locked view before the first write.
	inventoryBefore := make(map[domain.Denomination]int64, len(positions))
	for denom, pos := range positions {
		inventoryBefore[denom] = pos.Quantity
	}
	memento := domain.NewMemento(
		map[string]decimal.Decimal{c.accountID: account.Balance},
		inventoryBefore,
	)

	now := time.Now().UTC()
	newBalance := account.Balance.Add(c.amount)
	if err := c.accountRepo.SetAccountBalancesInTx(ctx, tx, map[string]decimal.Decimal{c.accountID: newBalance}, c.actor.UserID, now); err != nil {
		return nil, err
	}

	quantities := make(map[domain.Denomination]int64, len(c.notes))
	for denom, count := range c.notes {
		quantities[denom] = positions[denom].Quantity + count
	}
	if err := c.inventoryRepo.SetQuantitiesInTx(ctx, tx, quantities, c.actor.UserID, now); err != nil {
		return nil, err
	}

	return &Execution{
		Memento:              memento,
		Amount:               c.amount,
		DestinationAccountID: c.accountID,
	}, nil
}
