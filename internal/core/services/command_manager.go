package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bankterm/terminal_backend/internal/apperrors"
	"github.com/bankterm/terminal_backend/internal/core/domain"
	portsrepo "github.com/bankterm/terminal_backend/internal/core/ports/repositories"
	portssvc "github.com/bankterm/terminal_backend/internal/core/ports/services"
	"github.com/bankterm/terminal_backend/internal/dto"
	"github.com/bankterm/terminal_backend/internal/middleware"
)

const publishTimeout = 5 * time.Second

// commandManager orchestrates capture, execution, auditing and notification
// of terminal operations, and the administrator-triggered reversal by id.
type commandManager struct {
	factory       *CommandFactory
	txm           portsrepo.TransactionManager
	accountRepo   portsrepo.AccountRepositoryFacade
	inventoryRepo portsrepo.InventoryRepositoryFacade
	auditRepo     portsrepo.AuditRepositoryFacade
	codec         MementoCodec
	publisher     portssvc.NotificationPublisher
}

// NewCommandManager creates the operation manager.
func NewCommandManager(
	factory *CommandFactory,
	txm portsrepo.TransactionManager,
	accountRepo portsrepo.AccountRepositoryFacade,
	inventoryRepo portsrepo.InventoryRepositoryFacade,
	auditRepo portsrepo.AuditRepositoryFacade,
	publisher portssvc.NotificationPublisher,
) portssvc.OperationSvcFacade {
	return &commandManager{
		factory:       factory,
		txm:           txm,
		accountRepo:   accountRepo,
		inventoryRepo: inventoryRepo,
		auditRepo:     auditRepo,
		publisher:     publisher,
	}
}

var _ portssvc.OperationSvcFacade = (*commandManager)(nil)

// Run executes one operation atomically. The command captures its memento
// from the locked rows before mutating; the audit record is persisted in the
// same transaction, so a committed operation always carries its snapshot.
func (m *commandManager) Run(ctx context.Context, kind domain.OperationKind, actor domain.User, notifyEmail string, params dto.OperationParams) (*domain.AuditRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	cmd, err := m.factory.Create(kind, actor, params)
	if err != nil {
		return nil, err
	}

	tx, err := m.txm.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer m.txm.Rollback(ctx, tx) // No-op once committed.

	execution, err := cmd.Execute(ctx, tx)
	if err != nil {
		return nil, err
	}

	serialized, err := m.codec.Serialize(execution.Memento)
	if err != nil {
		logger.Error("Failed to serialize memento", slog.String("kind", string(kind)), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}

	record := domain.AuditRecord{
		RecordID:             uuid.NewString(),
		Kind:                 cmd.Kind(),
		Amount:               execution.Amount,
		OriginAccountID:      execution.OriginAccountID,
		DestinationAccountID: execution.DestinationAccountID,
		ResponsibleUserID:    actor.UserID,
		NotifyEmail:          notifyEmail,
		Memento:              serialized,
		CreatedAt:            time.Now().UTC(),
	}
	if err := m.auditRepo.SaveAuditRecordInTx(ctx, tx, record); err != nil {
		logger.Error("Failed to save audit record", slog.String("kind", string(kind)), slog.String("error", err.Error()))
		return nil, err
	}

	if err := m.txm.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Operation executed",
		slog.String("kind", string(kind)),
		slog.String("record_id", record.RecordID),
		slog.String("amount", record.Amount.String()))

	m.publishAsync(logger, portssvc.OperationCompletedEvent{
		Kind:        record.Kind,
		Record:      record,
		NotifyEmail: notifyEmail,
	})

	return &record, nil
}

// Reverse restores every balance and inventory quantity snapshotted by the
// record's memento to its pre-operation value. The reversal is its own
// routine rather than a degenerate command: nothing here needs precondition
// checks against live amounts, only the snapshot.
func (m *commandManager) Reverse(ctx context.Context, recordID string, targetUserID string, admin domain.User) (*domain.AuditRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !admin.IsAdmin() {
		return nil, fmt.Errorf("%w: user %s cannot reverse operations", apperrors.ErrForbidden, admin.UserID)
	}

	record, err := m.auditRepo.FindAuditRecordByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if record.ResponsibleUserID != targetUserID {
		// Obscure existence of other users' records.
		return nil, fmt.Errorf("%w: record %s", apperrors.ErrNotFound, recordID)
	}
	if record.Reversed {
		return nil, fmt.Errorf("%w: record %s", ErrAlreadyReversed, recordID)
	}
	if !record.HasMemento() {
		return nil, fmt.Errorf("%w: record %s", ErrMementoMissing, recordID)
	}

	memento, err := m.codec.Deserialize(record.Memento)
	if err != nil {
		logger.Error("Failed to deserialize memento for reversal", slog.String("record_id", recordID), slog.String("error", err.Error()))
		return nil, err
	}

	tx, err := m.txm.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer m.txm.Rollback(ctx, tx)

	now := time.Now().UTC()

	if len(memento.Balances) > 0 {
		accountIDs := make([]string, 0, len(memento.Balances))
		for accountID := range memento.Balances {
			accountIDs = append(accountIDs, accountID)
		}
		if _, err := m.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
			return nil, err
		}
		if err := m.accountRepo.SetAccountBalancesInTx(ctx, tx, memento.Balances, admin.UserID, now); err != nil {
			return nil, err
		}
	}

	if len(memento.Inventory) > 0 {
		denominations := make([]domain.Denomination, 0, len(memento.Inventory))
		for denom := range memento.Inventory {
			denominations = append(denominations, denom)
		}
		if _, err := m.inventoryRepo.FindPositionsForUpdate(ctx, tx, denominations); err != nil {
			return nil, err
		}
		if err := m.inventoryRepo.SetQuantitiesInTx(ctx, tx, memento.Inventory, admin.UserID, now); err != nil {
			return nil, err
		}
	}

	// The repository refuses to mark an already reversed record, which keeps
	// the memento single-use even under concurrent reversal attempts.
	if err := m.auditRepo.MarkReversedInTx(ctx, tx, record.RecordID, admin.UserID, now); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: record %s", ErrAlreadyReversed, recordID)
		}
		return nil, err
	}

	reversalRecord := domain.AuditRecord{
		RecordID:             uuid.NewString(),
		Kind:                 domain.OpReversal,
		Amount:               record.Amount,
		OriginAccountID:      record.OriginAccountID,
		DestinationAccountID: record.DestinationAccountID,
		ResponsibleUserID:    admin.UserID,
		NotifyEmail:          record.NotifyEmail,
		ReferenceRecordID:    record.RecordID,
		CreatedAt:            now,
	}
	if err := m.auditRepo.SaveAuditRecordInTx(ctx, tx, reversalRecord); err != nil {
		return nil, err
	}

	if err := m.txm.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Operation reversed",
		slog.String("record_id", record.RecordID),
		slog.String("reversal_record_id", reversalRecord.RecordID),
		slog.String("admin_id", admin.UserID))

	m.publishAsync(logger, portssvc.OperationCompletedEvent{
		Kind:        domain.OpReversal,
		Record:      reversalRecord,
		NotifyEmail: record.NotifyEmail,
	})

	return &reversalRecord, nil
}

// ListOperations returns the reversible operation history of a user: only
// non-reversed records still carrying a memento, newest first. Admin only.
func (m *commandManager) ListOperations(ctx context.Context, userID string, admin domain.User) ([]domain.AuditRecord, error) {
	if !admin.IsAdmin() {
		return nil, fmt.Errorf("%w: user %s cannot list operations", apperrors.ErrForbidden, admin.UserID)
	}
	return m.auditRepo.FindAuditRecordsByResponsibleUser(ctx, userID, true)
}

// publishAsync emits the completion event without blocking or failing the
// caller. The commit already happened; a sink failure is logged and dropped.
func (m *commandManager) publishAsync(logger *slog.Logger, event portssvc.OperationCompletedEvent) {
	if m.publisher == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := m.publisher.PublishOperationCompleted(ctx, event); err != nil {
			logger.Warn("Failed to publish operation completed event",
				slog.String("record_id", event.Record.RecordID),
				slog.String("error", err.Error()))
		}
	}()
}
