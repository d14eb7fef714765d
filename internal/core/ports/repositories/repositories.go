package repositories

// RepositoryProvider bundles the concrete repositories handed to the service layer.
type RepositoryProvider struct {
	AccountRepo   AccountRepositoryWithTx
	InventoryRepo InventoryRepositoryWithTx
	AuditRepo     AuditRepositoryWithTx
	ScheduleRepo  ScheduleRepositoryWithTx
	UserRepo      UserRepositoryFacade
}
