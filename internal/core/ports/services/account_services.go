package services

import (
	"context"

	"github.com/bankterm/terminal_backend/internal/core/domain"
)

// AccountSvcFacade defines account lifecycle and lookup operations.
type AccountSvcFacade interface {
	// CreateAccount opens a new zero-balance account for the owner.
	CreateAccount(ctx context.Context, ownerUserID string, actor domain.User) (*domain.Account, error)

	// GetAccountByID retrieves an account. Only the owner or an admin may
	// read it.
	GetAccountByID(ctx context.Context, accountID string, actor domain.User) (*domain.Account, error)

	// ListAccountsForUser retrieves the accounts owned by the acting user.
	ListAccountsForUser(ctx context.Context, actor domain.User) ([]domain.Account, error)
}
