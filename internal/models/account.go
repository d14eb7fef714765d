package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is the database representation of an account row.
type Account struct {
	AccountID     string          `db:"account_id"`
	OwnerUserID   string          `db:"owner_user_id"`
	Balance       decimal.Decimal `db:"balance"`
	CreatedAt     time.Time       `db:"created_at"`
	CreatedBy     string          `db:"created_by"`
	LastUpdatedAt time.Time       `db:"last_updated_at"`
	LastUpdatedBy string          `db:"last_updated_by"`
	DeletedAt     *time.Time      `db:"deleted_at"`
}
