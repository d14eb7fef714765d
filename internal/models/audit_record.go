package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuditRecord is the database representation of an executed operation.
type AuditRecord struct {
	RecordID             string          `db:"record_id"`
	Kind                 string          `db:"kind"`
	Amount               decimal.Decimal `db:"amount"`
	OriginAccountID      *string         `db:"origin_account_id"`
	DestinationAccountID *string         `db:"destination_account_id"`
	ResponsibleUserID    string          `db:"responsible_user_id"`
	NotifyEmail          *string         `db:"notify_email"`
	Memento              *string         `db:"memento"`
	Reversed             bool            `db:"reversed"`
	ReversedBy           *string         `db:"reversed_by"`
	ReversedAt           *time.Time      `db:"reversed_at"`
	ReferenceRecordID    *string         `db:"reference_record_id"`
	CreatedAt            time.Time       `db:"created_at"`
}
