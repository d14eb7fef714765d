package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bankterm/terminal_backend/internal/apperrors"
	"github.com/bankterm/terminal_backend/internal/core/domain"
	portsrepo "github.com/bankterm/terminal_backend/internal/core/ports/repositories"
	portssvc "github.com/bankterm/terminal_backend/internal/core/ports/services"
	"github.com/bankterm/terminal_backend/internal/middleware"
)

// inventoryService provides administrator maintenance of the cash pool.
type inventoryService struct {
	inventoryRepo portsrepo.InventoryRepositoryFacade
}

// NewInventoryService creates a new inventory service.
func NewInventoryService(inventoryRepo portsrepo.InventoryRepositoryFacade) portssvc.InventorySvcFacade {
	return &inventoryService{inventoryRepo: inventoryRepo}
}

var _ portssvc.InventorySvcFacade = (*inventoryService)(nil)

// ListPositions retrieves every denomination position. Admin only.
func (s *inventoryService) ListPositions(ctx context.Context, actor domain.User) ([]domain.InventoryPosition, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: user %s cannot inspect inventory", apperrors.ErrForbidden, actor.UserID)
	}
	return s.inventoryRepo.FindAllPositions(ctx)
}

// Restock overwrites the quantity of one denomination. Admin only.
func (s *inventoryService) Restock(ctx context.Context, denomination domain.Denomination, quantity int64, actor domain.User) (*domain.InventoryPosition, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: user %s cannot restock inventory", apperrors.ErrForbidden, actor.UserID)
	}
	if !denomination.IsValid() {
		return nil, fmt.Errorf("%w: unknown denomination %d", apperrors.ErrValidation, denomination)
	}
	if quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must not be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	position := domain.InventoryPosition{
		Denomination: denomination,
		Quantity:     quantity,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}
	if existing, err := s.inventoryRepo.FindPositionByDenomination(ctx, denomination); err == nil {
		position.CreatedAt = existing.CreatedAt
		position.CreatedBy = existing.CreatedBy
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	if err := s.inventoryRepo.SavePosition(ctx, position); err != nil {
		return nil, err
	}

	logger.Info("Inventory position restocked",
		slog.Int64("denomination", int64(denomination)),
		slog.Int64("quantity", quantity),
		slog.String("by", actor.UserID))
	return &position, nil
}
