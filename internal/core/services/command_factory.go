package services

import (
	"fmt"

	"github.com/bankterm/terminal_backend/internal/apperrors"
	"github.com/bankterm/terminal_backend/internal/core/domain"
	portsrepo "github.com/bankterm/terminal_backend/internal/core/ports/repositories"
	"github.com/bankterm/terminal_backend/internal/dto"
)

// CommandFactory builds the command variant for an operation kind, validating
// the parameter shape each kind requires and injecting the repositories the
// command touches. Pure construction, no side effects.
type CommandFactory struct {
	accountRepo   portsrepo.AccountRepositoryFacade
	inventoryRepo portsrepo.InventoryRepositoryFacade
	scheduleRepo  portsrepo.ScheduleRepositoryFacade
}

// NewCommandFactory creates a new CommandFactory.
func NewCommandFactory(
	accountRepo portsrepo.AccountRepositoryFacade,
	inventoryRepo portsrepo.InventoryRepositoryFacade,
	scheduleRepo portsrepo.ScheduleRepositoryFacade,
) *CommandFactory {
	return &CommandFactory{
		accountRepo:   accountRepo,
		inventoryRepo: inventoryRepo,
		scheduleRepo:  scheduleRepo,
	}
}

// Create builds the command for the given kind. Unknown kinds are a
// configuration problem and surface as ErrUnsupportedOperation.
func (f *CommandFactory) Create(kind domain.OperationKind, actor domain.User, params dto.OperationParams) (Command, error) {
	switch kind {
	case domain.OpDeposit:
		if err := f.validateCashParams(params); err != nil {
			return nil, err
		}
		return &depositCommand{
			accountID:     params.AccountID,
			amount:        params.Amount,
			notes:         params.NoteCounts,
			actor:         actor,
			accountRepo:   f.accountRepo,
			inventoryRepo: f.inventoryRepo,
		}, nil

	case domain.OpWithdrawal:
		if err := f.validateCashParams(params); err != nil {
			return nil, err
		}
		return &withdrawalCommand{
			accountID:     params.AccountID,
			amount:        params.Amount,
			notes:         params.NoteCounts,
			actor:         actor,
			accountRepo:   f.accountRepo,
			inventoryRepo: f.inventoryRepo,
		}, nil

	case domain.OpTransfer:
		if params.OriginAccountID == "" || params.DestinationAccountID == "" {
			return nil, fmt.Errorf("%w: transfer requires origin and destination accounts", apperrors.ErrValidation)
		}
		if params.OriginAccountID == params.DestinationAccountID {
			return nil, fmt.Errorf("%w: transfer origin and destination must differ", apperrors.ErrValidation)
		}
		if !params.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: transfer amount must be positive", apperrors.ErrValidation)
		}
		return &transferCommand{
			originAccountID:      params.OriginAccountID,
			destinationAccountID: params.DestinationAccountID,
			amount:               params.Amount,
			actor:                actor,
			accountRepo:          f.accountRepo,
		}, nil

	case domain.OpInstallmentPayment:
		if params.ScheduleID == "" {
			return nil, fmt.Errorf("%w: installment payment requires a schedule id", apperrors.ErrValidation)
		}
		return &installmentCommand{
			scheduleID:   params.ScheduleID,
			actor:        actor,
			accountRepo:  f.accountRepo,
			scheduleRepo: f.scheduleRepo,
		}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedOperation, kind)
	}
}

// validateCashParams checks the shared shape of deposit and withdrawal
// parameters: a target account, a positive amount, and note counts that sum
// exactly to it.
func (f *CommandFactory) validateCashParams(params dto.OperationParams) error {
	if params.AccountID == "" {
		return fmt.Errorf("%w: operation requires an account id", apperrors.ErrValidation)
	}
	if !params.Amount.IsPositive() {
		return fmt.Errorf("%w: operation amount must be positive", apperrors.ErrValidation)
	}
	if len(params.NoteCounts) == 0 {
		return fmt.Errorf("%w: operation requires note counts", apperrors.ErrValidation)
	}
	for denom, count := range params.NoteCounts {
		if !denom.IsValid() {
			return fmt.Errorf("%w: unknown denomination %d", apperrors.ErrValidation, denom)
		}
		if count <= 0 {
			return fmt.Errorf("%w: note count for denomination %d must be positive", apperrors.ErrValidation, denom)
		}
	}
	if !params.NoteCounts.Total().Equal(params.Amount) {
		return fmt.Errorf("%w: notes sum to %s, amount is %s", ErrNoteAmountMismatch, params.NoteCounts.Total(), params.Amount)
	}
	return nil
}
