package services

import (
	"context"
	"errors"

	"github.com/bankterm/terminal_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

var (
	// ErrUnsupportedOperation flags an operation kind the factory cannot
	// build. Programmer error, not retryable.
	ErrUnsupportedOperation = errors.New("unsupported operation kind")
	// ErrNoteAmountMismatch flags note counts that do not sum to the
	// operation amount.
	ErrNoteAmountMismatch = errors.New("note counts do not sum to the operation amount")
	// ErrInsufficientFunds rejects an operation exceeding the account balance.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrInsufficientInventory rejects a withdrawal the cash pool cannot satisfy.
	ErrInsufficientInventory = errors.New("insufficient notes in inventory")
	// ErrScheduleNotActive rejects an installment payment on a schedule that
	// is completed or cancelled.
	ErrScheduleNotActive = errors.New("scheduled payment is not active")
	// ErrAlreadyReversed rejects a second reversal of the same record.
	ErrAlreadyReversed = errors.New("operation has already been reversed")
	// ErrMementoMissing rejects reversal of a record without a snapshot.
	ErrMementoMissing = errors.New("operation carries no memento")
	// ErrMementoDecode flags a snapshot that cannot be deserialized. Fatal
	// for that reversal attempt, never retried automatically.
	ErrMementoDecode = errors.New("memento cannot be decoded")
)

// Execution is the outcome of a successfully executed command: the
// pre-mutation snapshot plus the data the audit record needs.
type Execution struct {
	Memento              domain.Memento
	Amount               decimal.Decimal
	OriginAccountID      string
	DestinationAccountID string
}

// Command is one mutating terminal operation. Execute runs entirely inside
// the supplied storage transaction: it locks the rows it will touch, checks
// every precondition against the locked view, captures the memento, and only
// then mutates. Any error leaves the transaction to be rolled back with zero
// partial mutation.
type Command interface {
	Kind() domain.OperationKind
	Execute(ctx context.Context, tx pgx.Tx) (*Execution, error)
}
