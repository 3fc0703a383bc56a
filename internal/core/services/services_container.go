package services

import (
	portsrepo "github.com/devenkhatri/billing-monk-sub000/internal/core/ports/repositories"
	portssvc "github.com/devenkhatri/billing-monk-sub000/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The activity service comes first: every other service records into it.
	container.Activity = NewActivityService(repos.ActivityRepo)

	container.Client = NewClientService(repos.ClientRepo, container.Activity)
	container.Invoice = NewInvoiceService(repos.InvoiceRepo, repos.PaymentRepo, repos.ClientRepo, container.Activity)
	container.Payment = NewPaymentService(repos.PaymentRepo, repos.InvoiceRepo, container.Activity)
	container.Template = NewTemplateService(repos.TemplateRepo, repos.InvoiceRepo, repos.ClientRepo, container.Activity)
	container.Project = NewProjectService(repos.ProjectRepo, repos.TaskRepo, repos.TimeEntryRepo, repos.ClientRepo, container.Activity)
	container.Task = NewTaskService(repos.TaskRepo, repos.TimeEntryRepo, repos.ProjectRepo, container.Activity)
	container.TimeEntry = NewTimeEntryService(repos.TimeEntryRepo, repos.TaskRepo, container.Activity)
	container.Recurring = NewRecurringService(repos.InvoiceRepo, container.Activity)

	return container
}
