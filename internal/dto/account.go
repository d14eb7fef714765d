package dto

import (
	"time"

	"github.com/bankterm/terminal_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest is the payload for opening a new account.
type CreateAccountRequest struct {
	OwnerUserID string `json:"ownerUserID,omitempty"` // Admins may open accounts for other users
}

// AccountResponse is the API representation of an account.
type AccountResponse struct {
	AccountID   string          `json:"accountID"`
	OwnerUserID string          `json:"ownerUserID"`
	Balance     decimal.Decimal `json:"balance"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ToAccountResponse converts a domain account to its API shape.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:   a.AccountID,
		OwnerUserID: a.OwnerUserID,
		Balance:     a.Balance,
		CreatedAt:   a.CreatedAt,
	}
}
