package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/bankterm/terminal_backend/internal/apperrors"
	"github.com/bankterm/terminal_backend/internal/core/domain"
	portssvc "github.com/bankterm/terminal_backend/internal/core/ports/services"
	"github.com/bankterm/terminal_backend/internal/core/services"
	"github.com/bankterm/terminal_backend/internal/dto"
)

// capturePublisher delivers published events on a channel so tests can wait
// for the asynchronous emit.
type capturePublisher struct {
	events chan portssvc.OperationCompletedEvent
}

func (p *capturePublisher) PublishOperationCompleted(ctx context.Context, event portssvc.OperationCompletedEvent) error {
	p.events <- event
	return nil
}

type CommandManagerTestSuite struct {
	suite.Suite
	txm           *MockTxManager
	accountRepo   *MockAccountRepository
	inventoryRepo *MockInventoryRepository
	auditRepo     *MockAuditRepository
	scheduleRepo  *MockScheduleRepository
	manager       portssvc.OperationSvcFacade

	customer domain.User
	admin    domain.User
}

func (s *CommandManagerTestSuite) SetupTest() {
	s.txm = new(MockTxManager)
	s.accountRepo = new(MockAccountRepository)
	s.inventoryRepo = new(MockInventoryRepository)
	s.auditRepo = new(MockAuditRepository)
	s.scheduleRepo = new(MockScheduleRepository)

	factory := services.NewCommandFactory(s.accountRepo, s.inventoryRepo, s.scheduleRepo)
	s.manager = services.NewCommandManager(factory, s.txm, s.accountRepo, s.inventoryRepo, s.auditRepo, nil)

	s.customer = domain.User{UserID: "user-1", Role: domain.RoleCustomer}
	s.admin = domain.User{UserID: "admin-1", Role: domain.RoleAdmin}
}

func (s *CommandManagerTestSuite) expectTx() {
	s.txm.On("Begin", mock.Anything).Return(nil).Once()
	s.txm.On("Commit", mock.Anything).Return(nil).Once()
	s.txm.On("Rollback", mock.Anything).Return(nil)
}

func (s *CommandManagerTestSuite) expectRolledBackTx() {
	s.txm.On("Begin", mock.Anything).Return(nil).Once()
	s.txm.On("Rollback", mock.Anything).Return(nil)
}

func account(id, owner string, balance int64) domain.Account {
	return domain.Account{AccountID: id, OwnerUserID: owner, Balance: decimal.NewFromInt(balance)}
}

func position(face domain.Denomination, qty int64) domain.InventoryPosition {
	return domain.InventoryPosition{Denomination: face, Quantity: qty}
}

func (s *CommandManagerTestSuite) TestDepositUpdatesBalanceAndInventory() {
	ctx := context.Background()
	s.expectTx()

	s.accountRepo.On("FindAccountsByIDsForUpdate", mock.Anything, []string{"acc-1"}).
		Return(map[string]domain.Account{"acc-1": account("acc-1", "user-1", 500)}, nil).Once()
	s.inventoryRepo.On("FindPositionsForUpdate", mock.Anything, mock.MatchedBy(func(denoms []domain.Denomination) bool {
		return len(denoms) == 2
	})).Return(map[domain.Denomination]domain.InventoryPosition{
		domain.Note100: position(domain.Note100, 10),
		domain.Note50:  position(domain.Note50, 4),
	}, nil).Once()

	s.accountRepo.On("SetAccountBalancesInTx", mock.Anything, mock.MatchedBy(func(balances map[string]decimal.Decimal) bool {
		return balances["acc-1"].Equal(decimal.NewFromInt(650))
	}), "user-1").Return(nil).Once()
	s.inventoryRepo.On("SetQuantitiesInTx", mock.Anything, map[domain.Denomination]int64{
		domain.Note100: 11,
		domain.Note50:  5,
	}, "user-1").Return(nil).Once()

	var saved domain.AuditRecord
	s.auditRepo.On("SaveAuditRecordInTx", mock.Anything, mock.MatchedBy(func(record domain.AuditRecord) bool {
		saved = record
		return true
	})).Return(nil).Once()

	record, err := s.manager.Run(ctx, domain.OpDeposit, s.customer, "", dto.OperationParams{
		AccountID: "acc-1",
		Amount:    decimal.NewFromInt(150),
		NoteCounts: domain.NoteCounts{
			domain.Note100: 1,
			domain.Note50:  1,
		},
	})

	s.Require().NoError(err)
	s.Require().NotNil(record)
	s.Equal(domain.OpDeposit, record.Kind)
	s.Equal("acc-1", record.DestinationAccountID)
	s.Empty(record.OriginAccountID)
	s.True(record.HasMemento())

	// The persisted memento restores the pre-operation state.
	memento, err := services.MementoCodec{}.Deserialize(saved.Memento)
	s.Require().NoError(err)
	s.True(memento.Balances["acc-1"].Equal(decimal.NewFromInt(500)))
	s.Equal(int64(10), memento.Inventory[domain.Note100])
	s.Equal(int64(4), memento.Inventory[domain.Note50])

	s.accountRepo.AssertExpectations(s.T())
	s.inventoryRepo.AssertExpectations(s.T())
	s.auditRepo.AssertExpectations(s.T())
	s.txm.AssertExpectations(s.T())
}

func (s *CommandManagerTestSuite) TestWithdrawalDebitsAndDecrements() {
	ctx := context.Background()
	s.expectTx()

	s.accountRepo.On("FindAccountsByIDsForUpdate", mock.Anything, []string{"acc-1"}).
		Return(map[string]domain.Account{"acc-1": account("acc-1", "user-1", 500)}, nil).Once()
	s.inventoryRepo.On("FindPositionsForUpdate", mock.Anything, mock.Anything).
		Return(map[domain.Denomination]domain.InventoryPosition{
			domain.Note100: position(domain.Note100, 5),
		}, nil).Once()

	s.accountRepo.On("SetAccountBalancesInTx", mock.Anything, mock.MatchedBy(func(balances map[string]decimal.Decimal) bool {
		return balances["acc-1"].Equal(decimal.NewFromInt(300))
	}), "user-1").Return(nil).Once()
	s.inventoryRepo.On("SetQuantitiesInTx", mock.Anything, map[domain.Denomination]int64{
		domain.Note100: 3,
	}, "user-1").Return(nil).Once()
	s.auditRepo.On("SaveAuditRecordInTx", mock.Anything, mock.AnythingOfType("domain.AuditRecord")).Return(nil).Once()

	record, err := s.manager.Run(ctx, domain.OpWithdrawal, s.customer, "", dto.OperationParams{
		AccountID:  "acc-1",
		Amount:     decimal.NewFromInt(200),
		NoteCounts: domain.NoteCounts{domain.Note100: 2},
	})

	s.Require().NoError(err)
	s.Equal(domain.OpWithdrawal, record.Kind)
	s.Equal("acc-1", record.OriginAccountID)
	s.accountRepo.AssertExpectations(s.T())
	s.inventoryRepo.AssertExpectations(s.T())
}

func (s *CommandManagerTestSuite) TestWithdrawalInsufficientInventory() {
	ctx := context.Background()
	s.expectRolledBackTx()

	s.accountRepo.On("FindAccountsByIDsForUpdate", mock.Anything, []string{"acc-1"}).
		Return(map[string]domain.Account{"acc-1": account("acc-1", "user-1", 500)}, nil).Once()
	s.inventoryRepo.On("FindPositionsForUpdate", mock.Anything, mock.Anything).
		Return(map[domain.Denomination]domain.InventoryPosition{
			domain.Note100: position(domain.Note100, 1),
		}, nil).Once()

	_, err := s.manager.Run(ctx, domain.OpWithdrawal, s.customer, "", dto.OperationParams{
		AccountID:  "acc-1",
		Amount:     decimal.NewFromInt(200),
		NoteCounts: domain.NoteCounts{domain.Note100: 2},
	})

	s.Require().ErrorIs(err, services.ErrInsufficientInventory)
	s.accountRepo.AssertNotCalled(s.T(), "SetAccountBalancesInTx", mock.Anything, mock.Anything, mock.Anything)
	s.txm.AssertNotCalled(s.T(), "Commit", mock.Anything)
}

func (s *CommandManagerTestSuite) TestWithdrawalInsufficientFunds() {
	ctx := context.Background()
	s.expectRolledBackTx()

	s.accountRepo.On("FindAccountsByIDsForUpdate", mock.Anything, []string{"acc-1"}).
		Return(map[string]domain.Account{"acc-1": account("acc-1", "user-1", 100)}, nil).Once()

	_, err := s.manager.Run(ctx, domain.OpWithdrawal, s.customer, "", dto.OperationParams{
		AccountID:  "acc-1",
		Amount:     decimal.NewFromInt(200),
		NoteCounts: domain.NoteCounts{domain.Note100: 2},
	})

	s.Require().ErrorIs(err, services.ErrInsufficientFunds)
}

func (s *CommandManagerTestSuite) TestTransferMovesFundsBetweenAccounts() {
	ctx := context.Background()
	s.expectTx()

	s.accountRepo.On("FindAccountsByIDsForUpdate", mock.Anything, mock.MatchedBy(func(ids []string) bool {
		return len(ids) == 2
	})).Return(map[string]domain.Account{
		"acc-1": account("acc-1", "user-1", 500),
		"acc-2": account("acc-2", "user-2", 50),
	}, nil).Once()

	s.accountRepo.On("SetAccountBalancesInTx", mock.Anything, mock.MatchedBy(func(balances map[string]decimal.Decimal) bool {
		return balances["acc-1"].Equal(decimal.NewFromInt(300)) && balances["acc-2"].Equal(decimal.NewFromInt(250))
	}), "user-1").Return(nil).Once()
	s.auditRepo.On("SaveAuditRecordInTx", mock.Anything, mock.AnythingOfType("domain.AuditRecord")).Return(nil).Once()

	record, err := s.manager.Run(ctx, domain.OpTransfer, s.customer, "", dto.OperationParams{
		OriginAccountID:      "acc-1",
		DestinationAccountID: "acc-2",
		Amount:               decimal.NewFromInt(200),
	})

	s.Require().NoError(err)
	s.Equal("acc-1", record.OriginAccountID)
	s.Equal("acc-2", record.DestinationAccountID)
	s.accountRepo.AssertExpectations(s.T())
}

func (s *CommandManagerTestSuite) TestTransferInsufficientFunds() {
	ctx := context.Background()
	s.expectRolledBackTx()

	s.accountRepo.On("FindAccountsByIDsForUpdate", mock.Anything, mock.Anything).
		Return(map[string]domain.Account{
			"acc-1": account("acc-1", "user-1", 100),
			"acc-2": account("acc-2", "user-2", 50),
		}, nil).Once()

	_, err := s.manager.Run(ctx, domain.OpTransfer, s.customer, "", dto.OperationParams{
		OriginAccountID:      "acc-1",
		DestinationAccountID: "acc-2",
		Amount:               decimal.NewFromInt(200),
	})

	s.Require().ErrorIs(err, services.ErrInsufficientFunds)
	s.txm.AssertNotCalled(s.T(), "Commit", mock.Anything)
}

func (s *CommandManagerTestSuite) TestRunRejectsForeignAccount() {
	ctx := context.Background()
	s.expectRolledBackTx()

	s.accountRepo.On("FindAccountsByIDsForUpdate", mock.Anything, []string{"acc-9"}).
		Return(map[string]domain.Account{"acc-9": account("acc-9", "someone-else", 500)}, nil).Once()

	_, err := s.manager.Run(ctx, domain.OpDeposit, s.customer, "", dto.OperationParams{
		AccountID:  "acc-9",
		Amount:     decimal.NewFromInt(100),
		NoteCounts: domain.NoteCounts{domain.Note100: 1},
	})

	s.Require().ErrorIs(err, apperrors.ErrForbidden)
}

func (s *CommandManagerTestSuite) TestRunUnsupportedKind() {
	_, err := s.manager.Run(context.Background(), domain.OperationKind("LOAN"), s.customer, "", dto.OperationParams{})
	s.Require().ErrorIs(err, services.ErrUnsupportedOperation)
	s.txm.AssertNotCalled(s.T(), "Begin", mock.Anything)
}

func (s *CommandManagerTestSuite) TestRunPublishesCompletionEvent() {
	ctx := context.Background()
	publisher := &capturePublisher{events: make(chan portssvc.OperationCompletedEvent, 1)}
	factory := services.NewCommandFactory(s.accountRepo, s.inventoryRepo, s.scheduleRepo)
	manager := services.NewCommandManager(factory, s.txm, s.accountRepo, s.inventoryRepo, s.auditRepo, publisher)

	s.expectTx()
	s.accountRepo.On("FindAccountsByIDsForUpdate", mock.Anything, []string{"acc-1"}).
		Return(map[string]domain.Account{"acc-1": account("acc-1", "user-1", 500)}, nil).Once()
	s.inventoryRepo.On("FindPositionsForUpdate", mock.Anything, mock.Anything).
		Return(map[domain.Denomination]domain.InventoryPosition{domain.Note100: position(domain.Note100, 5)}, nil).Once()
	s.accountRepo.On("SetAccountBalancesInTx", mock.Anything, mock.Anything, "user-1").Return(nil).Once()
	s.inventoryRepo.On("SetQuantitiesInTx", mock.Anything, mock.Anything, "user-1").Return(nil).Once()
	s.auditRepo.On("SaveAuditRecordInTx", mock.Anything, mock.AnythingOfType("domain.AuditRecord")).Return(nil).Once()

	record, err := manager.Run(ctx, domain.OpDeposit, s.customer, "me@example.com", dto.OperationParams{
		AccountID:  "acc-1",
		Amount:     decimal.NewFromInt(100),
		NoteCounts: domain.NoteCounts{domain.Note100: 1},
	})
	s.Require().NoError(err)

	select {
	case event := <-publisher.events:
		s.Equal(domain.OpDeposit, event.Kind)
		s.Equal(record.RecordID, event.Record.RecordID)
		s.Equal("me@example.com", event.NotifyEmail)
	case <-time.After(time.Second):
		s.Fail("expected completion event to be published")
	}
}

func (s *CommandManagerTestSuite) reversibleRecord() *domain.AuditRecord {
	serialized, err := services.MementoCodec{}.Serialize(domain.NewMemento(
		map[string]decimal.Decimal{"acc-1": decimal.NewFromInt(500)},
		map[domain.Denomination]int64{domain.Note100: 5},
	))
	s.Require().NoError(err)

	return &domain.AuditRecord{
		RecordID:          "rec-1",
		Kind:              domain.OpWithdrawal,
		Amount:            decimal.NewFromInt(200),
		OriginAccountID:   "acc-1",
		ResponsibleUserID: "user-1",
		Memento:           serialized,
		CreatedAt:         time.Now().UTC(),
	}
}

func (s *CommandManagerTestSuite) TestReverseRestoresSnapshot() {
	ctx := context.Background()
	s.expectTx()

	s.auditRepo.On("FindAuditRecordByID", mock.Anything, "rec-1").Return(s.reversibleRecord(), nil).Once()

	s.accountRepo.On("FindAccountsByIDsForUpdate", mock.Anything, []string{"acc-1"}).
		Return(map[string]domain.Account{"acc-1": account("acc-1", "user-1", 300)}, nil).Once()
	s.accountRepo.On("SetAccountBalancesInTx", mock.Anything, mock.MatchedBy(func(balances map[string]decimal.Decimal) bool {
		return balances["acc-1"].Equal(decimal.NewFromInt(500))
	}), "admin-1").Return(nil).Once()

	s.inventoryRepo.On("FindPositionsForUpdate", mock.Anything, []domain.Denomination{domain.Note100}).
		Return(map[domain.Denomination]domain.InventoryPosition{domain.Note100: position(domain.Note100, 3)}, nil).Once()
	s.inventoryRepo.On("SetQuantitiesInTx", mock.Anything, map[domain.Denomination]int64{domain.Note100: 5}, "admin-1").
		Return(nil).Once()

	s.auditRepo.On("MarkReversedInTx", mock.Anything, "rec-1", "admin-1").Return(nil).Once()

	var reversalRecord domain.AuditRecord
	s.auditRepo.On("SaveAuditRecordInTx", mock.Anything, mock.MatchedBy(func(record domain.AuditRecord) bool {
		reversalRecord = record
		return record.Kind == domain.OpReversal
	})).Return(nil).Once()

	reversal, err := s.manager.Reverse(ctx, "rec-1", "user-1", s.admin)

	s.Require().NoError(err)
	s.Equal(domain.OpReversal, reversal.Kind)
	s.Equal("rec-1", reversal.ReferenceRecordID)
	s.Equal("admin-1", reversal.ResponsibleUserID)
	s.False(reversalRecord.HasMemento()) // Reversal entries are not themselves reversible.
	s.accountRepo.AssertExpectations(s.T())
	s.inventoryRepo.AssertExpectations(s.T())
	s.auditRepo.AssertExpectations(s.T())
}

func (s *CommandManagerTestSuite) TestReverseRequiresAdmin() {
	_, err := s.manager.Reverse(context.Background(), "rec-1", "user-1", s.customer)
	s.Require().ErrorIs(err, apperrors.ErrForbidden)
	s.auditRepo.AssertNotCalled(s.T(), "FindAuditRecordByID", mock.Anything, mock.Anything)
}

func (s *CommandManagerTestSuite) TestReverseWrongTargetUserHidesRecord() {
	s.auditRepo.On("FindAuditRecordByID", mock.Anything, "rec-1").Return(s.reversibleRecord(), nil).Once()

	_, err := s.manager.Reverse(context.Background(), "rec-1", "someone-else", s.admin)
	s.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func (s *CommandManagerTestSuite) TestReverseAlreadyReversed() {
	record := s.reversibleRecord()
	record.Reversed = true
	s.auditRepo.On("FindAuditRecordByID", mock.Anything, "rec-1").Return(record, nil).Once()

	_, err := s.manager.Reverse(context.Background(), "rec-1", "user-1", s.admin)
	s.Require().ErrorIs(err, services.ErrAlreadyReversed)
	s.txm.AssertNotCalled(s.T(), "Begin", mock.Anything)
}

func (s *CommandManagerTestSuite) TestReverseWithoutMemento() {
	record := s.reversibleRecord()
	record.Memento = ""
	s.auditRepo.On("FindAuditRecordByID", mock.Anything, "rec-1").Return(record, nil).Once()

	_, err := s.manager.Reverse(context.Background(), "rec-1", "user-1", s.admin)
	s.Require().ErrorIs(err, services.ErrMementoMissing)
}

func (s *CommandManagerTestSuite) TestReverseConcurrentAttemptLosesRace() {
	ctx := context.Background()
	s.expectRolledBackTx()

	s.auditRepo.On("FindAuditRecordByID", mock.Anything, "rec-1").Return(s.reversibleRecord(), nil).Once()
	s.accountRepo.On("FindAccountsByIDsForUpdate", mock.Anything, mock.Anything).
		Return(map[string]domain.Account{"acc-1": account("acc-1", "user-1", 300)}, nil).Once()
	s.accountRepo.On("SetAccountBalancesInTx", mock.Anything, mock.Anything, "admin-1").Return(nil).Once()
	s.inventoryRepo.On("FindPositionsForUpdate", mock.Anything, mock.Anything).
		Return(map[domain.Denomination]domain.InventoryPosition{domain.Note100: position(domain.Note100, 3)}, nil).Once()
	s.inventoryRepo.On("SetQuantitiesInTx", mock.Anything, mock.Anything, "admin-1").Return(nil).Once()

	// Another admin got there first; the guarded update matches no row.
	s.auditRepo.On("MarkReversedInTx", mock.Anything, "rec-1", "admin-1").Return(apperrors.ErrConflict).Once()

	_, err := s.manager.Reverse(ctx, "rec-1", "user-1", s.admin)
	s.Require().ErrorIs(err, services.ErrAlreadyReversed)
	s.txm.AssertNotCalled(s.T(), "Commit", mock.Anything)
}

func (s *CommandManagerTestSuite) TestListOperationsAdminOnly() {
	_, err := s.manager.ListOperations(context.Background(), "user-1", s.customer)
	s.Require().ErrorIs(err, apperrors.ErrForbidden)

	expected := []domain.AuditRecord{{RecordID: "rec-1"}}
	s.auditRepo.On("FindAuditRecordsByResponsibleUser", mock.Anything, "user-1", true).Return(expected, nil).Once()

	records, err := s.manager.ListOperations(context.Background(), "user-1", s.admin)
	s.Require().NoError(err)
	s.Equal(expected, records)
}

func TestCommandManager(t *testing.T) {
	suite.Run(t, new(CommandManagerTestSuite))
}
