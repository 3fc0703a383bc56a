// Package services defines the service-layer contracts the handlers depend
// on. Handlers speak to these facades; the implementations live in
// internal/core/services.
package services

import (
	"context"
	"time"

	"github.com/devenkhatri/billing-monk-sub000/internal/core/domain"
	"github.com/devenkhatri/billing-monk-sub000/internal/dto"
)

// ClientSvcFacade manages billable customers.
type ClientSvcFacade interface {
	CreateClient(ctx context.Context, req dto.CreateClientRequest, actor domain.Actor) (*domain.Client, error)
	ListClients(ctx context.Context) ([]domain.Client, error)
	GetClientByID(ctx context.Context, clientID string) (*domain.Client, error)
	UpdateClient(ctx context.Context, clientID string, req dto.UpdateClientRequest, actor domain.Actor) (*domain.Client, error)
	DeleteClient(ctx context.Context, clientID string, actor domain.Actor) error
}

// InvoiceSvcFacade manages invoices and their derived amounts.
type InvoiceSvcFacade interface {
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, actor domain.Actor) (*domain.Invoice, error)
	ListInvoices(ctx context.Context, params dto.ListInvoicesParams) ([]domain.Invoice, error)
	GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)
	UpdateInvoice(ctx context.Context, invoiceID string, req dto.UpdateInvoiceRequest, actor domain.Actor) (*domain.Invoice, error)
	DeleteInvoice(ctx context.Context, invoiceID string, actor domain.Actor) error
}

// PaymentSvcFacade records and removes payments, cascading to the parent
// invoice's paid amount, balance and status.
type PaymentSvcFacade interface {
	CreatePayment(ctx context.Context, req dto.CreatePaymentRequest, actor domain.Actor) (*domain.Payment, error)
	ListPayments(ctx context.Context, params dto.ListPaymentsParams) ([]domain.Payment, error)
	GetPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)
	DeletePayment(ctx context.Context, paymentID string, actor domain.Actor) error
}

// TemplateSvcFacade manages reusable invoice templates.
type TemplateSvcFacade interface {
	CreateTemplate(ctx context.Context, req dto.CreateTemplateRequest, actor domain.Actor) (*domain.Template, error)
	ListTemplates(ctx context.Context) ([]domain.Template, error)
	GetTemplateByID(ctx context.Context, templateID string) (*domain.Template, error)
	UpdateTemplate(ctx context.Context, templateID string, req dto.UpdateTemplateRequest, actor domain.Actor) (*domain.Template, error)
	DeleteTemplate(ctx context.Context, templateID string, actor domain.Actor) error
	CreateInvoiceFromTemplate(ctx context.Context, templateID string, req dto.CreateInvoiceFromTemplateRequest, actor domain.Actor) (*domain.Invoice, error)
}

// ProjectSvcFacade manages projects. Deleting a project cascades to its
// tasks and their time entries.
type ProjectSvcFacade interface {
	CreateProject(ctx context.Context, req dto.CreateProjectRequest, actor domain.Actor) (*domain.Project, error)
	ListProjects(ctx context.Context) ([]domain.Project, error)
	GetProjectByID(ctx context.Context, projectID string) (*domain.Project, error)
	UpdateProject(ctx context.Context, projectID string, req dto.UpdateProjectRequest, actor domain.Actor) (*domain.Project, error)
	DeleteProject(ctx context.Context, projectID string, actor domain.Actor) error
}

// TaskSvcFacade manages tasks. Deleting a task cascades to its time entries.
type TaskSvcFacade interface {
	CreateTask(ctx context.Context, req dto.CreateTaskRequest, actor domain.Actor) (*domain.Task, error)
	ListTasks(ctx context.Context, params dto.ListTasksParams) ([]domain.Task, error)
	GetTaskByID(ctx context.Context, taskID string) (*domain.Task, error)
	UpdateTask(ctx context.Context, taskID string, req dto.UpdateTaskRequest, actor domain.Actor) (*domain.Task, error)
	DeleteTask(ctx context.Context, taskID string, actor domain.Actor) error
}

// TimeEntrySvcFacade manages time entries, recomputing the parent task's
// hour totals on every mutation.
type TimeEntrySvcFacade interface {
	CreateTimeEntry(ctx context.Context, req dto.CreateTimeEntryRequest, actor domain.Actor) (*domain.TimeEntry, error)
	ListTimeEntries(ctx context.Context, params dto.ListTimeEntriesParams) ([]domain.TimeEntry, error)
	GetTimeEntryByID(ctx context.Context, entryID string) (*domain.TimeEntry, error)
	UpdateTimeEntry(ctx context.Context, entryID string, req dto.UpdateTimeEntryRequest, actor domain.Actor) (*domain.TimeEntry, error)
	DeleteTimeEntry(ctx context.Context, entryID string, actor domain.Actor) error
}

// RecurringSvcFacade drives generation of follow-on invoices from recurring
// schedules.
type RecurringSvcFacade interface {
	// ListDueInvoices returns the recurring invoices whose schedule has
	// fired at the given instant.
	ListDueInvoices(ctx context.Context, now time.Time) ([]domain.Invoice, error)
	// GenerateDueInvoices creates a new invoice for every due schedule and
	// advances each schedule's next date. Failures on one schedule do not
	// stop the others.
	GenerateDueInvoices(ctx context.Context, now time.Time, actor domain.Actor) ([]domain.Invoice, error)
	// ToggleRecurring activates or pauses an invoice's schedule.
	ToggleRecurring(ctx context.Context, invoiceID string, isActive bool, actor domain.Actor) (*domain.Invoice, error)
}

// ActivitySvcFacade records and queries the append-only activity log.
type ActivitySvcFacade interface {
	// Record appends a log entry. It never returns an error: a failed audit
	// write must not fail the business operation it describes.
	Record(ctx context.Context, entry domain.ActivityLog)
	Query(ctx context.Context, params dto.ListActivityParams) (*dto.ListActivityResponse, error)
}

// ServiceContainer bundles every service facade for handler registration.
type ServiceContainer struct {
	Client    ClientSvcFacade
	Invoice   InvoiceSvcFacade
	Payment   PaymentSvcFacade
	Template  TemplateSvcFacade
	Project   ProjectSvcFacade
	Task      TaskSvcFacade
	TimeEntry TimeEntrySvcFacade
	Recurring RecurringSvcFacade
	Activity  ActivitySvcFacade
}
