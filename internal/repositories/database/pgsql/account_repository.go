package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/bankterm/terminal_backend/internal/apperrors"
	"github.com/bankterm/terminal_backend/internal/core/domain"
	portsrepo "github.com/bankterm/terminal_backend/internal/core/ports/repositories"
	"github.com/bankterm/terminal_backend/internal/models"
	"github.com/bankterm/terminal_backend/internal/utils/mapping"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryWithTx {
	return &PgxAccountRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryWithTx = (*PgxAccountRepository)(nil)

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (account_id, owner_user_id, balance, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.OwnerUserID,
		m.Balance,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: account with ID %s already exists", apperrors.ErrDuplicate, m.AccountID)
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `
		SELECT account_id, owner_user_id, balance, created_at, created_by, last_updated_at, last_updated_by
		FROM accounts
		WHERE account_id = $1 AND deleted_at IS NULL;
	`
	var m models.Account
	err := r.Pool.QueryRow(ctx, query, accountID).Scan(
		&m.AccountID,
		&m.OwnerUserID,
		&m.Balance,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}

	account := mapping.ToDomainAccount(m)
	return &account, nil
}

// ListAccountsByOwner retrieves all accounts owned by the given user, oldest first.
func (r *PgxAccountRepository) ListAccountsByOwner(ctx context.Context, ownerUserID string) ([]domain.Account, error) {
	query := `
		SELECT account_id, owner_user_id, balance, created_at, created_by, last_updated_at, last_updated_by
		FROM accounts
		WHERE owner_user_id = $1 AND deleted_at IS NULL
		ORDER BY created_at ASC;
	`
	rows, err := r.Pool.Query(ctx, query, ownerUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts for user %s: %w", ownerUserID, err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var m models.Account
		if err := rows.Scan(
			&m.AccountID,
			&m.OwnerUserID,
			&m.Balance,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, mapping.ToDomainAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading account rows: %w", err)
	}
	return accounts, nil
}

// FindAccountsByIDsForUpdate selects accounts and locks their rows for update
// within the transaction. Rows are locked in account id order so concurrent
// commands touching the same accounts cannot deadlock each other.
func (r *PgxAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	sorted := make([]string, len(accountIDs))
	copy(sorted, accountIDs)
	sort.Strings(sorted)

	query := `
		SELECT account_id, owner_user_id, balance, created_at, created_by, last_updated_at, last_updated_by
		FROM accounts
		WHERE account_id = ANY($1) AND deleted_at IS NULL
		ORDER BY account_id ASC
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, sorted)
	if err != nil {
		return nil, fmt.Errorf("failed to lock accounts: %w", err)
	}
	defer rows.Close()

	found := make(map[string]domain.Account, len(sorted))
	for rows.Next() {
		var m models.Account
		if err := rows.Scan(
			&m.AccountID,
			&m.OwnerUserID,
			&m.Balance,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan locked account row: %w", err)
		}
		found[m.AccountID] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading locked account rows: %w", err)
	}

	for _, id := range sorted {
		if _, ok := found[id]; !ok {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
	}
	return found, nil
}

// SetAccountBalancesInTx overwrites the balance of each listed account within
// the transaction. Callers must have locked the rows first.
func (r *PgxAccountRepository) SetAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balances map[string]decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET balance = $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1 AND deleted_at IS NULL;
	`
	for accountID, balance := range balances {
		tag, err := tx.Exec(ctx, query, accountID, balance, now, userID)
		if err != nil {
			return fmt.Errorf("failed to set balance for account %s: %w", accountID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
	}
	return nil
}
