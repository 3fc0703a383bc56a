package repositories

import (
	"context"

	"github.com/devenkhatri/billing-monk-sub000/internal/core/domain"
)

// PaymentReader defines read operations for payments.
type PaymentReader interface {
	// FindPayments retrieves every payment.
	FindPayments(ctx context.Context) ([]domain.Payment, error)

	// FindPaymentByID retrieves a specific payment, or apperrors.ErrNotFound.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)

	// FindPaymentsByInvoice retrieves all payments recorded against an invoice.
	FindPaymentsByInvoice(ctx context.Context, invoiceID string) ([]domain.Payment, error)
}

// PaymentWriter defines write operations for payments.
type PaymentWriter interface {
	// SavePayment persists a new payment.
	SavePayment(ctx context.Context, payment domain.Payment) error

	// DeletePayment removes a payment's row.
	DeletePayment(ctx context.Context, paymentID string) error
}

// PaymentRepositoryFacade combines all payment repository interfaces.
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}
