package domain

import (
	"github.com/shopspring/decimal"
)

// Account represents a customer account held at the terminal.
// Its balance is mutated exclusively through operation commands.
type Account struct {
	AccountID   string          `json:"accountID"`   // Primary Key (e.g., UUID)
	OwnerUserID string          `json:"ownerUserID"` // FK -> users.user_id (NON-NULL)
	Balance     decimal.Decimal `json:"balance"`     // Invariant: never negative after commit
	AuditFields
}
