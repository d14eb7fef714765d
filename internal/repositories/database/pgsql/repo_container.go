package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/bankterm/terminal_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the pgx-backed repositories into the provider
// handed to the service layer.
func NewRepositoryProvider(dbPool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		AccountRepo:   newPgxAccountRepository(dbPool),
		InventoryRepo: newPgxInventoryRepository(dbPool),
		AuditRepo:     newPgxAuditRepository(dbPool),
		ScheduleRepo:  newPgxScheduleRepository(dbPool),
		UserRepo:      newPgxUserRepository(dbPool),
	}
}
