package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/bankterm/terminal_backend/internal/apperrors"
	"github.com/bankterm/terminal_backend/internal/core/domain"
	portsrepo "github.com/bankterm/terminal_backend/internal/core/ports/repositories"
	portssvc "github.com/bankterm/terminal_backend/internal/core/ports/services"
	"github.com/bankterm/terminal_backend/internal/middleware"
)

// combinationService serves withdrawal options from the solver behind a
// short-TTL Redis memoization keyed by (account, amount). A withdrawal flow
// lists options and confirms one shortly after, so recomputation is wasteful;
// the cache is never invalidated on inventory mutation because the withdrawal
// command re-validates availability at commit time.
type combinationService struct {
	solver        *CombinationSolver
	inventoryRepo portsrepo.InventoryReader
	rdb           redis.UniversalClient
	ttl           time.Duration
}

// NewCombinationService creates the combination service.
func NewCombinationService(solver *CombinationSolver, inventoryRepo portsrepo.InventoryReader, rdb redis.UniversalClient, ttl time.Duration) portssvc.CombinationSvcFacade {
	return &combinationService{
		solver:        solver,
		inventoryRepo: inventoryRepo,
		rdb:           rdb,
		ttl:           ttl,
	}
}

var _ portssvc.CombinationSvcFacade = (*combinationService)(nil)

func (s *combinationService) cacheKey(accountID string, amount decimal.Decimal) string {
	return fmt.Sprintf("combo:%s:%s", accountID, amount.String())
}

// ListOptions returns the memoized combinations for (account, amount),
// computing and caching them on a miss. Cache failures degrade to a
// recomputation, never to an error.
func (s *combinationService) ListOptions(ctx context.Context, accountID string, amount decimal.Decimal) ([]domain.CombinationDescriptor, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	key := s.cacheKey(accountID, amount)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, key).Result()
		if err == nil {
			var descriptors []domain.CombinationDescriptor
			if err := json.Unmarshal([]byte(cached), &descriptors); err == nil {
				return descriptors, nil
			}
			logger.Warn("Discarding undecodable cached combinations", slog.String("key", key))
		} else if !errors.Is(err, redis.Nil) {
			logger.Warn("Combination cache read failed", slog.String("key", key), slog.String("error", err.Error()))
		}
	}

	positions, err := s.inventoryRepo.FindAllPositions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory for combination solving: %w", err)
	}
	descriptors := s.solver.Solve(amount, positions)

	if s.rdb != nil {
		payload, err := json.Marshal(descriptors)
		if err == nil {
			if err := s.rdb.Set(ctx, key, payload, s.ttl).Err(); err != nil {
				logger.Warn("Combination cache write failed", slog.String("key", key), slog.String("error", err.Error()))
			}
		}
	}

	return descriptors, nil
}

// ResolveOption finds the option with the given content-derived id among the
// combinations for (account, amount).
func (s *combinationService) ResolveOption(ctx context.Context, accountID string, amount decimal.Decimal, optionID string) (*domain.CombinationDescriptor, error) {
	descriptors, err := s.ListOptions(ctx, accountID, amount)
	if err != nil {
		return nil, err
	}
	for i := range descriptors {
		if descriptors[i].CombinationID == optionID {
			return &descriptors[i], nil
		}
	}
	return nil, fmt.Errorf("%w: withdrawal option %s for amount %s", apperrors.ErrNotFound, optionID, amount)
}
