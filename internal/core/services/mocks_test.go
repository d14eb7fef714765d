package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/bankterm/terminal_backend/internal/core/domain"
	portssvc "github.com/bankterm/terminal_backend/internal/core/ports/services"
)

// --- Mock transaction manager ---
// Commands only hand the pgx.Tx through to mocked repositories, so a nil
// transaction is sufficient for service-level tests.

type MockTxManager struct {
	mock.Mock
}

func (m *MockTxManager) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	return nil, args.Error(0)
}

func (m *MockTxManager) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTxManager) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	var account *domain.Account
	if args.Get(0) != nil {
		account = args.Get(0).(*domain.Account)
	}
	return account, args.Error(1)
}

func (m *MockAccountRepository) ListAccountsByOwner(ctx context.Context, ownerUserID string) ([]domain.Account, error) {
	args := m.Called(ctx, ownerUserID)
	var accounts []domain.Account
	if args.Get(0) != nil {
		accounts = args.Get(0).([]domain.Account)
	}
	return accounts, args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	var accounts map[string]domain.Account
	if args.Get(0) != nil {
		accounts = args.Get(0).(map[string]domain.Account)
	}
	return accounts, args.Error(1)
}

func (m *MockAccountRepository) SetAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balances map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, balances, userID)
	return args.Error(0)
}

func (m *MockAccountRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	return nil, args.Error(0)
}

func (m *MockAccountRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAccountRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- Mock InventoryRepository ---

type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) FindPositionByDenomination(ctx context.Context, denomination domain.Denomination) (*domain.InventoryPosition, error) {
	args := m.Called(ctx, denomination)
	var position *domain.InventoryPosition
	if args.Get(0) != nil {
		position = args.Get(0).(*domain.InventoryPosition)
	}
	return position, args.Error(1)
}

func (m *MockInventoryRepository) FindAllPositions(ctx context.Context) ([]domain.InventoryPosition, error) {
	args := m.Called(ctx)
	var positions []domain.InventoryPosition
	if args.Get(0) != nil {
		positions = args.Get(0).([]domain.InventoryPosition)
	}
	return positions, args.Error(1)
}

func (m *MockInventoryRepository) SavePosition(ctx context.Context, position domain.InventoryPosition) error {
	args := m.Called(ctx, position)
	return args.Error(0)
}

func (m *MockInventoryRepository) FindPositionsForUpdate(ctx context.Context, tx pgx.Tx, denominations []domain.Denomination) (map[domain.Denomination]domain.InventoryPosition, error) {
	args := m.Called(ctx, denominations)
	var positions map[domain.Denomination]domain.InventoryPosition
	if args.Get(0) != nil {
		positions = args.Get(0).(map[domain.Denomination]domain.InventoryPosition)
	}
	return positions, args.Error(1)
}

func (m *MockInventoryRepository) SetQuantitiesInTx(ctx context.Context, tx pgx.Tx, quantities map[domain.Denomination]int64, userID string, now time.Time) error {
	args := m.Called(ctx, quantities, userID)
	return args.Error(0)
}

func (m *MockInventoryRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	return nil, args.Error(0)
}

func (m *MockInventoryRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockInventoryRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- Mock AuditRepository ---

type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) FindAuditRecordByID(ctx context.Context, recordID string) (*domain.AuditRecord, error) {
	args := m.Called(ctx, recordID)
	var record *domain.AuditRecord
	if args.Get(0) != nil {
		record = args.Get(0).(*domain.AuditRecord)
	}
	return record, args.Error(1)
}

func (m *MockAuditRepository) FindAuditRecordsByResponsibleUser(ctx context.Context, userID string, excludeReversed bool) ([]domain.AuditRecord, error) {
	args := m.Called(ctx, userID, excludeReversed)
	var records []domain.AuditRecord
	if args.Get(0) != nil {
		records = args.Get(0).([]domain.AuditRecord)
	}
	return records, args.Error(1)
}

func (m *MockAuditRepository) SaveAuditRecordInTx(ctx context.Context, tx pgx.Tx, record domain.AuditRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockAuditRepository) MarkReversedInTx(ctx context.Context, tx pgx.Tx, recordID string, adminUserID string, reversedAt time.Time) error {
	args := m.Called(ctx, recordID, adminUserID)
	return args.Error(0)
}

func (m *MockAuditRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	return nil, args.Error(0)
}

func (m *MockAuditRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAuditRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- Mock ScheduleRepository ---

type MockScheduleRepository struct {
	mock.Mock
}

func (m *MockScheduleRepository) FindScheduleByID(ctx context.Context, scheduleID string) (*domain.ScheduledPayment, error) {
	args := m.Called(ctx, scheduleID)
	var schedule *domain.ScheduledPayment
	if args.Get(0) != nil {
		schedule = args.Get(0).(*domain.ScheduledPayment)
	}
	return schedule, args.Error(1)
}

func (m *MockScheduleRepository) ListDueSchedules(ctx context.Context, asOf time.Time, limit int) ([]domain.ScheduledPayment, error) {
	args := m.Called(ctx, asOf, limit)
	var schedules []domain.ScheduledPayment
	if args.Get(0) != nil {
		schedules = args.Get(0).([]domain.ScheduledPayment)
	}
	return schedules, args.Error(1)
}

func (m *MockScheduleRepository) SaveSchedule(ctx context.Context, schedule domain.ScheduledPayment) error {
	args := m.Called(ctx, schedule)
	return args.Error(0)
}

func (m *MockScheduleRepository) UpdateScheduleStatus(ctx context.Context, scheduleID string, status domain.ScheduleStatus, userID string, now time.Time) error {
	args := m.Called(ctx, scheduleID, status, userID)
	return args.Error(0)
}

func (m *MockScheduleRepository) FindScheduleByIDForUpdate(ctx context.Context, tx pgx.Tx, scheduleID string) (*domain.ScheduledPayment, error) {
	args := m.Called(ctx, scheduleID)
	var schedule *domain.ScheduledPayment
	if args.Get(0) != nil {
		schedule = args.Get(0).(*domain.ScheduledPayment)
	}
	return schedule, args.Error(1)
}

func (m *MockScheduleRepository) UpdateScheduleInTx(ctx context.Context, tx pgx.Tx, schedule domain.ScheduledPayment) error {
	args := m.Called(ctx, schedule)
	return args.Error(0)
}

func (m *MockScheduleRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	return nil, args.Error(0)
}

func (m *MockScheduleRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockScheduleRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// --- Mock NotificationPublisher ---

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishOperationCompleted(ctx context.Context, event portssvc.OperationCompletedEvent) error {
	args := m.Called(event)
	return args.Error(0)
}
