package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	ClientRepo    ClientRepositoryFacade
	InvoiceRepo   InvoiceRepositoryFacade
	PaymentRepo   PaymentRepositoryFacade
	TemplateRepo  TemplateRepositoryFacade
	ProjectRepo   ProjectRepositoryFacade
	TaskRepo      TaskRepositoryFacade
	TimeEntryRepo TimeEntryRepositoryFacade
	ActivityRepo  ActivityRepositoryFacade
}
