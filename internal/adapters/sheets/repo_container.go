package sheets

import (
	portsrepo "github.com/devenkhatri/billing-monk-sub000/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every entity repository over one Store. The
// payment repository gets an invalidation hook into the invoice cache
// because the payment cascade rewrites invoice balances.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	clientRepo := newSheetClientRepository(store)
	invoiceRepo := newSheetInvoiceRepository(store)
	paymentRepo := newSheetPaymentRepository(store, invoiceRepo.InvalidateCache)
	templateRepo := newSheetTemplateRepository(store)
	projectRepo := newSheetProjectRepository(store)
	taskRepo := newSheetTaskRepository(store)
	timeEntryRepo := newSheetTimeEntryRepository(store)
	activityRepo := newSheetActivityRepository(store)

	return portsrepo.RepositoryProvider{
		ClientRepo:    clientRepo,
		InvoiceRepo:   invoiceRepo,
		PaymentRepo:   paymentRepo,
		TemplateRepo:  templateRepo,
		ProjectRepo:   projectRepo,
		TaskRepo:      taskRepo,
		TimeEntryRepo: timeEntryRepo,
		ActivityRepo:  activityRepo,
	}
}
