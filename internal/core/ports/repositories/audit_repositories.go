package repositories

import (
	"context"
	"time"

	"github.com/bankterm/terminal_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AuditReader defines read operations for audit records.
type AuditReader interface {
	// FindAuditRecordByID retrieves a specific audit record by its identifier.
	FindAuditRecordByID(ctx context.Context, recordID string) (*domain.AuditRecord, error)

	// FindAuditRecordsByResponsibleUser retrieves the records of operations a
	// user is responsible for, newest first. When excludeReversed is set,
	// reversed records and records without a memento are omitted.
	FindAuditRecordsByResponsibleUser(ctx context.Context, userID string, excludeReversed bool) ([]domain.AuditRecord, error)
}

// AuditWriter defines write operations for audit records. Records are created
// once inside the operation's transaction; only the reversal fields mutate
// afterwards.
type AuditWriter interface {
	// SaveAuditRecordInTx persists a new audit record within the transaction.
	SaveAuditRecordInTx(ctx context.Context, tx pgx.Tx, record domain.AuditRecord) error

	// MarkReversedInTx flips the reversed flag of a record and stamps the
	// reversing admin and time, within the transaction.
	MarkReversedInTx(ctx context.Context, tx pgx.Tx, recordID string, adminUserID string, reversedAt time.Time) error
}

// AuditRepositoryFacade combines all audit-related repository interfaces
type AuditRepositoryFacade interface {
	AuditReader
	AuditWriter
}

// AuditRepositoryWithTx extends AuditRepositoryFacade with transaction capabilities
type AuditRepositoryWithTx interface {
	AuditRepositoryFacade
	TransactionManager
}
