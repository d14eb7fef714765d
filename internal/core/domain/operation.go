package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OperationKind identifies the type of a mutating terminal operation.
type OperationKind string

const (
	OpDeposit            OperationKind = "DEPOSIT"
	OpWithdrawal         OperationKind = "WITHDRAWAL"
	OpTransfer           OperationKind = "TRANSFER"
	OpInstallmentPayment OperationKind = "INSTALLMENT_PAYMENT"
	// OpReversal marks the audit record appended when an administrator
	// reverses a committed operation.
	OpReversal OperationKind = "REVERSED"
)

// AuditRecord is the persisted log entry of a committed operation. It carries
// the serialized memento that enables a later administrator-triggered reversal.
type AuditRecord struct {
	RecordID             string          `json:"recordID"` // Primary Key (e.g., UUID)
	Kind                 OperationKind   `json:"kind"`
	Amount               decimal.Decimal `json:"amount"`
	OriginAccountID      string          `json:"originAccountID"`      // Empty for operations without an origin
	DestinationAccountID string          `json:"destinationAccountID"` // Empty for operations without a destination
	ResponsibleUserID    string          `json:"responsibleUserID"`
	NotifyEmail          string          `json:"notifyEmail"`
	Memento              string          `json:"-"` // Serialized snapshot; empty means not reversible
	Reversed             bool            `json:"reversed"`
	ReversedBy           string          `json:"reversedBy,omitempty"` // Admin UserID
	ReversedAt           *time.Time      `json:"reversedAt,omitempty"`
	ReferenceRecordID    string          `json:"referenceRecordID,omitempty"` // Original record, set on REVERSED entries
	CreatedAt            time.Time       `json:"createdAt"`
}

// HasMemento reports whether the record carries a snapshot and is therefore
// eligible for reversal.
func (r AuditRecord) HasMemento() bool {
	return r.Memento != ""
}
