package services

import (
	"context"

	"github.com/bankterm/terminal_backend/internal/core/domain"
)

// UserSvcFacade defines user lookup and creation operations.
type UserSvcFacade interface {
	// CreateUser persists a new user with a hashed password.
	CreateUser(ctx context.Context, name, username, password string, role domain.UserRole) (*domain.User, error)

	// GetUserByID retrieves a user by id.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetUserByUsername retrieves a user by login name.
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
}

// AuthSvcFacade defines credential verification and token issuance.
type AuthSvcFacade interface {
	// Authenticate verifies the credentials and returns a signed access token.
	Authenticate(ctx context.Context, username, password string) (token string, userID string, err error)
}
