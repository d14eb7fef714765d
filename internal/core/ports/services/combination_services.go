package services

import (
	"context"

	"github.com/bankterm/terminal_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CombinationSvcFacade exposes the cash-denomination dispensing solver behind
// its short-TTL cache.
type CombinationSvcFacade interface {
	// ListOptions returns the feasible note combinations for the amount,
	// memoized per (account, amount) with a fixed TTL.
	ListOptions(ctx context.Context, accountID string, amount decimal.Decimal) ([]domain.CombinationDescriptor, error)

	// ResolveOption finds the combination with the given content-derived id
	// among the options for (account, amount). Availability is re-validated
	// at commit time by the withdrawal command, not here.
	ResolveOption(ctx context.Context, accountID string, amount decimal.Decimal, optionID string) (*domain.CombinationDescriptor, error)
}
