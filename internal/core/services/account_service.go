package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bankterm/terminal_backend/internal/apperrors"
	"github.com/bankterm/terminal_backend/internal/core/domain"
	portsrepo "github.com/bankterm/terminal_backend/internal/core/ports/repositories"
	portssvc "github.com/bankterm/terminal_backend/internal/core/ports/services"
	"github.com/bankterm/terminal_backend/internal/middleware"
)

// accountService provides account lifecycle operations.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	userRepo    portsrepo.UserReader
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, userRepo portsrepo.UserReader) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo, userRepo: userRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount opens a new zero-balance account. Customers open accounts for
// themselves; admins may open one for any user.
func (s *accountService) CreateAccount(ctx context.Context, ownerUserID string, actor domain.User) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if ownerUserID == "" {
		ownerUserID = actor.UserID
	}
	if ownerUserID != actor.UserID && !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: cannot open an account for another user", apperrors.ErrForbidden)
	}

	if _, err := s.userRepo.FindUserByID(ctx, ownerUserID); err != nil {
		return nil, fmt.Errorf("failed to resolve account owner: %w", err)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		OwnerUserID: ownerUserID,
		Balance:     decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("owner_user_id", ownerUserID))
	return &account, nil
}

// GetAccountByID retrieves an account, restricted to its owner or an admin.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string, actor domain.User) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.OwnerUserID != actor.UserID && !actor.IsAdmin() {
		// Hide the account's existence from non-owners.
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	return account, nil
}

// ListAccountsForUser retrieves the accounts owned by the acting user.
func (s *accountService) ListAccountsForUser(ctx context.Context, actor domain.User) ([]domain.Account, error) {
	return s.accountRepo.ListAccountsByOwner(ctx, actor.UserID)
}
