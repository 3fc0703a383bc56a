package sheets

import (
	"context"
	"fmt"

	"github.com/devenkhatri/billing-monk-sub000/internal/apperrors"
	"github.com/devenkhatri/billing-monk-sub000/internal/core/domain"
	portsrepo "github.com/devenkhatri/billing-monk-sub000/internal/core/ports/repositories"
)

// SheetPaymentRepository stores payments one row per payment in the Payments
// sheet. Payment mutations also fire the invoice invalidation hook, because
// the payment cascade rewrites the parent invoice's balance.
type SheetPaymentRepository struct {
	store             *Store
	cache             *Cache[[]domain.Payment]
	invalidateInvoice func()
}

func newSheetPaymentRepository(store *Store, invalidateInvoice func()) *SheetPaymentRepository {
	if invalidateInvoice == nil {
		invalidateInvoice = func() {}
	}
	return &SheetPaymentRepository{
		store:             store,
		cache:             NewCache[[]domain.Payment](ttlPayments, cacheMaxEntries),
		invalidateInvoice: invalidateInvoice,
	}
}

var _ portsrepo.PaymentRepositoryFacade = (*SheetPaymentRepository)(nil)

func (r *SheetPaymentRepository) FindPayments(ctx context.Context) ([]domain.Payment, error) {
	if cached, ok := r.cache.Get(cacheKeyAll); ok {
		return cached, nil
	}
	rows, err := r.store.readRows(ctx, tablePayments)
	if err != nil {
		return nil, fmt.Errorf("failed to read payments: %w", err)
	}
	payments := make([]domain.Payment, 0, len(rows))
	for _, row := range rows {
		payments = append(payments, rowToPayment(row))
	}
	r.cache.Set(cacheKeyAll, payments)
	return payments, nil
}

func (r *SheetPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	payments, err := r.FindPayments(ctx)
	if err != nil {
		return nil, err
	}
	for i := range payments {
		if payments[i].ID == paymentID {
			payment := payments[i]
			return &payment, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *SheetPaymentRepository) FindPaymentsByInvoice(ctx context.Context, invoiceID string) ([]domain.Payment, error) {
	payments, err := r.FindPayments(ctx)
	if err != nil {
		return nil, err
	}
	matched := []domain.Payment{}
	for _, p := range payments {
		if p.InvoiceID == invoiceID {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func (r *SheetPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment) error {
	if err := r.store.appendRow(ctx, tablePayments, paymentToRow(payment)); err != nil {
		return fmt.Errorf("failed to save payment: %w", err)
	}
	r.invalidate()
	return nil
}

func (r *SheetPaymentRepository) DeletePayment(ctx context.Context, paymentID string) error {
	rows, err := r.store.readRows(ctx, tablePayments)
	if err != nil {
		return fmt.Errorf("failed to read payments for delete: %w", err)
	}
	idx := findRowIndex(rows, paymentID)
	if idx < 0 {
		return fmt.Errorf("payment %s: %w", paymentID, apperrors.ErrNotFound)
	}
	if err := r.store.deleteRow(ctx, tablePayments, idx); err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	r.invalidate()
	return nil
}

func (r *SheetPaymentRepository) invalidate() {
	r.cache.Delete(cacheKeyAll)
	r.invalidateInvoice()
}
