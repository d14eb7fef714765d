package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bankterm/terminal_backend/internal/apperrors"
	"github.com/bankterm/terminal_backend/internal/core/domain"
	portsrepo "github.com/bankterm/terminal_backend/internal/core/ports/repositories"
	"github.com/bankterm/terminal_backend/internal/models"
	"github.com/bankterm/terminal_backend/internal/utils/mapping"
)

type PgxAuditRepository struct {
	BaseRepository
}

// newPgxAuditRepository creates a new repository for operation audit records.
func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRepositoryWithTx {
	return &PgxAuditRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.AuditRepositoryWithTx = (*PgxAuditRepository)(nil)

const auditColumns = `record_id, kind, amount, origin_account_id, destination_account_id, responsible_user_id, notify_email, memento, reversed, reversed_by, reversed_at, reference_record_id, created_at`

func scanAuditRecord(row pgx.Row) (*domain.AuditRecord, error) {
	var m models.AuditRecord
	err := row.Scan(
		&m.RecordID,
		&m.Kind,
		&m.Amount,
		&m.OriginAccountID,
		&m.DestinationAccountID,
		&m.ResponsibleUserID,
		&m.NotifyEmail,
		&m.Memento,
		&m.Reversed,
		&m.ReversedBy,
		&m.ReversedAt,
		&m.ReferenceRecordID,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	record := mapping.ToDomainAuditRecord(m)
	return &record, nil
}

// FindAuditRecordByID retrieves a specific audit record by its identifier.
func (r *PgxAuditRepository) FindAuditRecordByID(ctx context.Context, recordID string) (*domain.AuditRecord, error) {
	query := `SELECT ` + auditColumns + ` FROM audit_records WHERE record_id = $1;`

	record, err := scanAuditRecord(r.Pool.QueryRow(ctx, query, recordID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: audit record %s", apperrors.ErrNotFound, recordID)
		}
		return nil, fmt.Errorf("failed to find audit record %s: %w", recordID, err)
	}
	return record, nil
}

// FindAuditRecordsByResponsibleUser retrieves the records of operations a user
// is responsible for, newest first. With excludeReversed set, only records
// still eligible for reversal are returned: not yet reversed and carrying a
// memento.
func (r *PgxAuditRepository) FindAuditRecordsByResponsibleUser(ctx context.Context, userID string, excludeReversed bool) ([]domain.AuditRecord, error) {
	query := `SELECT ` + auditColumns + ` FROM audit_records WHERE responsible_user_id = $1`
	if excludeReversed {
		query += ` AND reversed = false AND memento IS NOT NULL`
	}
	query += ` ORDER BY created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit records for user %s: %w", userID, err)
	}
	defer rows.Close()

	var records []domain.AuditRecord
	for rows.Next() {
		record, err := scanAuditRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit record row: %w", err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading audit record rows: %w", err)
	}
	return records, nil
}

// SaveAuditRecordInTx persists a new audit record within the transaction.
func (r *PgxAuditRepository) SaveAuditRecordInTx(ctx context.Context, tx pgx.Tx, record domain.AuditRecord) error {
	m := mapping.ToModelAuditRecord(record)

	query := `
		INSERT INTO audit_records (` + auditColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := tx.Exec(ctx, query,
		m.RecordID,
		m.Kind,
		m.Amount,
		m.OriginAccountID,
		m.DestinationAccountID,
		m.ResponsibleUserID,
		m.NotifyEmail,
		m.Memento,
		m.Reversed,
		m.ReversedBy,
		m.ReversedAt,
		m.ReferenceRecordID,
		m.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: audit record %s already exists", apperrors.ErrDuplicate, m.RecordID)
		}
		return fmt.Errorf("failed to save audit record %s: %w", m.RecordID, err)
	}
	return nil
}

// MarkReversedInTx flips the reversed flag of a record within the transaction.
// The guard on the current flag makes the update first-wins: a second reversal
// attempt matches no row and surfaces as ErrConflict.
func (r *PgxAuditRepository) MarkReversedInTx(ctx context.Context, tx pgx.Tx, recordID string, adminUserID string, reversedAt time.Time) error {
	query := `
		UPDATE audit_records
		SET reversed = true, reversed_by = $2, reversed_at = $3
		WHERE record_id = $1 AND reversed = false;
	`
	tag, err := tx.Exec(ctx, query, recordID, adminUserID, reversedAt)
	if err != nil {
		return fmt.Errorf("failed to mark audit record %s reversed: %w", recordID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: audit record %s already reversed or missing", apperrors.ErrConflict, recordID)
	}
	return nil
}
