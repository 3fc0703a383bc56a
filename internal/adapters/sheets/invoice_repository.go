package sheets

import (
	"context"
	"fmt"

	"github.com/devenkhatri/billing-monk-sub000/internal/apperrors"
	"github.com/devenkhatri/billing-monk-sub000/internal/core/domain"
	portsrepo "github.com/devenkhatri/billing-monk-sub000/internal/core/ports/repositories"
)

// SheetInvoiceRepository stores invoices in the Invoices sheet and their line
// items in a separate InvoiceLineItems sheet keyed by the invoice ID.
type SheetInvoiceRepository struct {
	store *Store
	cache *Cache[[]domain.Invoice]
}

func newSheetInvoiceRepository(store *Store) *SheetInvoiceRepository {
	return &SheetInvoiceRepository{
		store: store,
		cache: NewCache[[]domain.Invoice](ttlInvoices, cacheMaxEntries),
	}
}

var _ portsrepo.InvoiceRepositoryFacade = (*SheetInvoiceRepository)(nil)

func (r *SheetInvoiceRepository) FindInvoices(ctx context.Context) ([]domain.Invoice, error) {
	if cached, ok := r.cache.Get(cacheKeyAll); ok {
		return cached, nil
	}

	rows, err := r.store.readRows(ctx, tableInvoices)
	if err != nil {
		return nil, fmt.Errorf("failed to read invoices: %w", err)
	}
	itemRows, err := r.store.readRows(ctx, tableInvoiceItems)
	if err != nil {
		return nil, fmt.Errorf("failed to read invoice line items: %w", err)
	}

	itemsByInvoice := make(map[string][]domain.LineItem)
	for _, row := range itemRows {
		invoiceID, item := rowToLineItem(row)
		itemsByInvoice[invoiceID] = append(itemsByInvoice[invoiceID], item)
	}

	invoices := make([]domain.Invoice, 0, len(rows))
	for _, row := range rows {
		inv := rowToInvoice(row)
		inv.LineItems = itemsByInvoice[inv.ID]
		invoices = append(invoices, inv)
	}
	r.cache.Set(cacheKeyAll, invoices)
	return invoices, nil
}

func (r *SheetInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	invoices, err := r.FindInvoices(ctx)
	if err != nil {
		return nil, err
	}
	for i := range invoices {
		if invoices[i].ID == invoiceID {
			inv := invoices[i]
			return &inv, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *SheetInvoiceRepository) FindInvoicesByClient(ctx context.Context, clientID string) ([]domain.Invoice, error) {
	invoices, err := r.FindInvoices(ctx)
	if err != nil {
		return nil, err
	}
	matched := []domain.Invoice{}
	for _, inv := range invoices {
		if inv.ClientID == clientID {
			matched = append(matched, inv)
		}
	}
	return matched, nil
}

func (r *SheetInvoiceRepository) FindInvoicesByStatus(ctx context.Context, status domain.InvoiceStatus) ([]domain.Invoice, error) {
	invoices, err := r.FindInvoices(ctx)
	if err != nil {
		return nil, err
	}
	matched := []domain.Invoice{}
	for _, inv := range invoices {
		if inv.Status == status {
			matched = append(matched, inv)
		}
	}
	return matched, nil
}

func (r *SheetInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	if err := r.store.appendRow(ctx, tableInvoices, invoiceToRow(invoice)); err != nil {
		return fmt.Errorf("failed to save invoice: %w", err)
	}
	if err := r.appendLineItems(ctx, invoice); err != nil {
		return err
	}
	r.InvalidateCache()
	return nil
}

func (r *SheetInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice) error {
	rows, err := r.store.readRows(ctx, tableInvoices)
	if err != nil {
		return fmt.Errorf("failed to read invoices for update: %w", err)
	}
	idx := findRowIndex(rows, invoice.ID)
	if idx < 0 {
		return fmt.Errorf("invoice %s: %w", invoice.ID, apperrors.ErrNotFound)
	}
	if err := r.store.updateRow(ctx, tableInvoices, idx, invoiceToRow(invoice)); err != nil {
		return fmt.Errorf("failed to update invoice: %w", err)
	}

	// Replace the line item rows wholesale; the invoice row is the source of
	// truth for which items belong to it.
	if _, err := r.deleteLineItems(ctx, invoice.ID); err != nil {
		return err
	}
	if err := r.appendLineItems(ctx, invoice); err != nil {
		return err
	}
	r.InvalidateCache()
	return nil
}

func (r *SheetInvoiceRepository) DeleteInvoice(ctx context.Context, invoiceID string) error {
	if _, err := r.deleteLineItems(ctx, invoiceID); err != nil {
		return err
	}

	rows, err := r.store.readRows(ctx, tableInvoices)
	if err != nil {
		return fmt.Errorf("failed to read invoices for delete: %w", err)
	}
	idx := findRowIndex(rows, invoiceID)
	if idx < 0 {
		return fmt.Errorf("invoice %s: %w", invoiceID, apperrors.ErrNotFound)
	}
	if err := r.store.deleteRow(ctx, tableInvoices, idx); err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	r.InvalidateCache()
	return nil
}

// InvalidateCache drops the cached invoice listing. Payment mutations call
// this through the repository container because the payment cascade rewrites
// invoice balances.
func (r *SheetInvoiceRepository) InvalidateCache() {
	r.cache.Delete(cacheKeyAll)
}

func (r *SheetInvoiceRepository) appendLineItems(ctx context.Context, invoice domain.Invoice) error {
	if len(invoice.LineItems) == 0 {
		return nil
	}
	itemRows := make([][]string, 0, len(invoice.LineItems))
	for _, li := range invoice.LineItems {
		itemRows = append(itemRows, lineItemToRow(invoice.ID, li))
	}
	if err := r.store.appendRows(ctx, tableInvoiceItems, itemRows); err != nil {
		return fmt.Errorf("failed to save invoice line items: %w", err)
	}
	return nil
}

func (r *SheetInvoiceRepository) deleteLineItems(ctx context.Context, invoiceID string) (int, error) {
	n, err := r.store.deleteMatchingRows(ctx, tableInvoiceItems, func(row []string) bool {
		parentID, _ := rowToLineItem(row)
		return parentID == invoiceID
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete invoice line items: %w", err)
	}
	return n, nil
}
