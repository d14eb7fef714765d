package services

import (
	"github.com/redis/go-redis/v9"

	portsrepo "github.com/bankterm/terminal_backend/internal/core/ports/repositories"
	portssvc "github.com/bankterm/terminal_backend/internal/core/ports/services"
	"github.com/bankterm/terminal_backend/internal/platform/config"
)

// NewServiceContainer wires all concrete services into the container handed to
// the HTTP layer and the scheduler.
func NewServiceContainer(
	cfg *config.Config,
	repos *portsrepo.RepositoryProvider,
	redisClient redis.UniversalClient,
	publisher portssvc.NotificationPublisher,
) *portssvc.ServiceContainer {
	factory := NewCommandFactory(repos.AccountRepo, repos.InventoryRepo, repos.ScheduleRepo)
	solver := NewCombinationSolver()

	return &portssvc.ServiceContainer{
		User:        NewUserService(repos.UserRepo),
		Auth:        NewAuthService(repos.UserRepo, cfg),
		Account:     NewAccountService(repos.AccountRepo, repos.UserRepo),
		Operation:   NewCommandManager(factory, repos.AccountRepo, repos.AccountRepo, repos.InventoryRepo, repos.AuditRepo, publisher),
		Combination: NewCombinationService(solver, repos.InventoryRepo, redisClient, cfg.CombinationCacheTTL),
		Schedule:    NewScheduleService(repos.ScheduleRepo, repos.AccountRepo),
		Inventory:   NewInventoryService(repos.InventoryRepo),
	}
}
