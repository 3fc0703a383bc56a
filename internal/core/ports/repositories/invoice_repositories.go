package repositories

import (
	"context"

	"github.com/devenkhatri/billing-monk-sub000/internal/core/domain"
)

// InvoiceReader defines read operations for invoices. Line items live in
// their own table and are stitched onto the returned invoices.
type InvoiceReader interface {
	// FindInvoices retrieves every invoice with its line items attached.
	FindInvoices(ctx context.Context) ([]domain.Invoice, error)

	// FindInvoiceByID retrieves a specific invoice, or apperrors.ErrNotFound.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// FindInvoicesByClient retrieves all invoices for one client.
	FindInvoicesByClient(ctx context.Context, clientID string) ([]domain.Invoice, error)

	// FindInvoicesByStatus retrieves all invoices in the given status.
	FindInvoicesByStatus(ctx context.Context, status domain.InvoiceStatus) ([]domain.Invoice, error)
}

// InvoiceWriter defines write operations for invoices and their line items.
type InvoiceWriter interface {
	// SaveInvoice persists a new invoice and its line items.
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error

	// UpdateInvoice overwrites an invoice row and replaces its line items.
	UpdateInvoice(ctx context.Context, invoice domain.Invoice) error

	// DeleteInvoice removes the invoice row after cascading its line items.
	DeleteInvoice(ctx context.Context, invoiceID string) error
}

// InvoiceRepositoryFacade combines all invoice repository interfaces.
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}
