package services

import (
	"context"

	"github.com/bankterm/terminal_backend/internal/core/domain"
	"github.com/bankterm/terminal_backend/internal/dto"
)

// OperationSvcFacade orchestrates terminal operations: atomic execution with
// snapshot capture and auditing, administrator-triggered reversal by record
// id, and the admin audit listing.
type OperationSvcFacade interface {
	// Run builds the command for the given kind, executes it inside one
	// storage transaction, persists the audit record with the serialized
	// memento, and emits a best-effort completion event.
	Run(ctx context.Context, kind domain.OperationKind, actor domain.User, notifyEmail string, params dto.OperationParams) (*domain.AuditRecord, error)

	// Reverse restores the balances and inventory quantities snapshotted by a
	// committed operation, marks the original record reversed, and appends a
	// REVERSED audit record. Admin only.
	Reverse(ctx context.Context, recordID string, targetUserID string, admin domain.User) (*domain.AuditRecord, error)

	// ListOperations returns the non-reversed, memento-bearing operations a
	// user is responsible for, newest first. Admin only.
	ListOperations(ctx context.Context, userID string, admin domain.User) ([]domain.AuditRecord, error)
}
