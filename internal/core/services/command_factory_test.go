package services_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankterm/terminal_backend/internal/apperrors"
	"github.com/bankterm/terminal_backend/internal/core/domain"
	"github.com/bankterm/terminal_backend/internal/core/services"
	"github.com/bankterm/terminal_backend/internal/dto"
)

func newFactory() *services.CommandFactory {
	return services.NewCommandFactory(
		new(MockAccountRepository),
		new(MockInventoryRepository),
		new(MockScheduleRepository),
	)
}

func TestFactoryCreatesCashCommands(t *testing.T) {
	factory := newFactory()
	actor := domain.User{UserID: "user-1", Role: domain.RoleCustomer}
	params := dto.OperationParams{
		AccountID:  "acc-1",
		Amount:     decimal.NewFromInt(300),
		NoteCounts: domain.NoteCounts{domain.Note100: 3},
	}

	for _, kind := range []domain.OperationKind{domain.OpDeposit, domain.OpWithdrawal} {
		cmd, err := factory.Create(kind, actor, params)
		require.NoError(t, err, "kind %s", kind)
		assert.NotNil(t, cmd)
	}
}

func TestFactoryRejectsUnknownKind(t *testing.T) {
	factory := newFactory()

	_, err := factory.Create(domain.OperationKind("WIRE_FRAUD"), domain.User{}, dto.OperationParams{})
	assert.ErrorIs(t, err, services.ErrUnsupportedOperation)
}

func TestFactoryRejectsReversalKind(t *testing.T) {
	// Reversals are not client-creatable commands; they go through the
	// dedicated admin flow.
	factory := newFactory()

	_, err := factory.Create(domain.OpReversal, domain.User{Role: domain.RoleAdmin}, dto.OperationParams{})
	assert.ErrorIs(t, err, services.ErrUnsupportedOperation)
}

func TestFactoryValidatesCashParams(t *testing.T) {
	factory := newFactory()
	actor := domain.User{UserID: "user-1", Role: domain.RoleCustomer}

	tests := []struct {
		name    string
		params  dto.OperationParams
		wantErr error
	}{
		{
			name: "missing account id",
			params: dto.OperationParams{
				Amount:     decimal.NewFromInt(100),
				NoteCounts: domain.NoteCounts{domain.Note100: 1},
			},
			wantErr: apperrors.ErrValidation,
		},
		{
			name: "non-positive amount",
			params: dto.OperationParams{
				AccountID:  "acc-1",
				Amount:     decimal.Zero,
				NoteCounts: domain.NoteCounts{domain.Note100: 1},
			},
			wantErr: apperrors.ErrValidation,
		},
		{
			name: "no note counts",
			params: dto.OperationParams{
				AccountID: "acc-1",
				Amount:    decimal.NewFromInt(100),
			},
			wantErr: apperrors.ErrValidation,
		},
		{
			name: "invalid denomination",
			params: dto.OperationParams{
				AccountID:  "acc-1",
				Amount:     decimal.NewFromInt(3),
				NoteCounts: domain.NoteCounts{domain.Denomination(3): 1},
			},
			wantErr: apperrors.ErrValidation,
		},
		{
			name: "zero note count",
			params: dto.OperationParams{
				AccountID:  "acc-1",
				Amount:     decimal.NewFromInt(100),
				NoteCounts: domain.NoteCounts{domain.Note100: 0},
			},
			wantErr: apperrors.ErrValidation,
		},
		{
			name: "notes do not sum to amount",
			params: dto.OperationParams{
				AccountID:  "acc-1",
				Amount:     decimal.NewFromInt(100),
				NoteCounts: domain.NoteCounts{domain.Note50: 3},
			},
			wantErr: services.ErrNoteAmountMismatch,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := factory.Create(domain.OpDeposit, actor, tc.params)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestFactoryValidatesTransferParams(t *testing.T) {
	factory := newFactory()
	actor := domain.User{UserID: "user-1", Role: domain.RoleCustomer}

	_, err := factory.Create(domain.OpTransfer, actor, dto.OperationParams{
		OriginAccountID: "acc-1",
		Amount:          decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation, "missing destination")

	_, err = factory.Create(domain.OpTransfer, actor, dto.OperationParams{
		OriginAccountID:      "acc-1",
		DestinationAccountID: "acc-1",
		Amount:               decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation, "same origin and destination")

	_, err = factory.Create(domain.OpTransfer, actor, dto.OperationParams{
		OriginAccountID:      "acc-1",
		DestinationAccountID: "acc-2",
		Amount:               decimal.NewFromInt(-5),
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation, "negative amount")

	cmd, err := factory.Create(domain.OpTransfer, actor, dto.OperationParams{
		OriginAccountID:      "acc-1",
		DestinationAccountID: "acc-2",
		Amount:               decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	assert.NotNil(t, cmd)
}

func TestFactoryValidatesInstallmentParams(t *testing.T) {
	factory := newFactory()
	actor := domain.User{UserID: "user-1", Role: domain.RoleCustomer}

	_, err := factory.Create(domain.OpInstallmentPayment, actor, dto.OperationParams{})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	cmd, err := factory.Create(domain.OpInstallmentPayment, actor, dto.OperationParams{ScheduleID: "sched-1"})
	require.NoError(t, err)
	assert.NotNil(t, cmd)
}
