package services

// ServiceContainer bundles the service facades handed to the HTTP layer and
// the scheduler.
type ServiceContainer struct {
	User        UserSvcFacade
	Auth        AuthSvcFacade
	Account     AccountSvcFacade
	Operation   OperationSvcFacade
	Combination CombinationSvcFacade
	Schedule    ScheduleSvcFacade
	Inventory   InventorySvcFacade
}
