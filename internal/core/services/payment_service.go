package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/devenkhatri/billing-monk-sub000/internal/apperrors"
	"github.com/devenkhatri/billing-monk-sub000/internal/core/domain"
	portsrepo "github.com/devenkhatri/billing-monk-sub000/internal/core/ports/repositories"
	portssvc "github.com/devenkhatri/billing-monk-sub000/internal/core/ports/services"
	"github.com/devenkhatri/billing-monk-sub000/internal/dto"
)

// paymentServiceImpl implements the PaymentSvcFacade interface. Every
// payment mutation rederives the parent invoice's paid amount, balance and
// status from the full set of its payments.
type paymentServiceImpl struct {
	BaseService
	paymentRepo portsrepo.PaymentRepositoryFacade
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	activity    portssvc.ActivitySvcFacade

	now func() time.Time
}

// NewPaymentService creates the payment service.
func NewPaymentService(
	paymentRepo portsrepo.PaymentRepositoryFacade,
	invoiceRepo portsrepo.InvoiceRepositoryFacade,
	activity portssvc.ActivitySvcFacade,
) portssvc.PaymentSvcFacade {
	return &paymentServiceImpl{
		paymentRepo: paymentRepo,
		invoiceRepo: invoiceRepo,
		activity:    activity,
		now:         time.Now,
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentServiceImpl)(nil)

func (s *paymentServiceImpl) CreatePayment(ctx context.Context, req dto.CreatePaymentRequest, actor domain.Actor) (*domain.Payment, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("payment amount must be positive: %w", apperrors.ErrValidation)
	}

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, req.InvoiceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("invoice %s does not exist: %w", req.InvoiceID, apperrors.ErrValidation)
		}
		return nil, err
	}

	method := req.Method
	if method == "" {
		method = domain.PaymentOther
	}

	now := s.now().UTC()
	payment := domain.Payment{
		ID:          uuid.NewString(),
		InvoiceID:   req.InvoiceID,
		Amount:      req.Amount,
		PaymentDate: req.PaymentDate,
		Method:      method,
		Reference:   req.Reference,
		Notes:       req.Notes,
		Timestamps: domain.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.paymentRepo.SavePayment(ctx, payment); err != nil {
		s.LogError(ctx, err, "Failed to save payment", slog.String("invoice_id", req.InvoiceID))
		return nil, err
	}

	if err := s.settleInvoice(ctx, invoice); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, domain.ActivityLog{
		Type:        domain.ActivityPaymentReceived,
		Description: fmt.Sprintf("Payment received for invoice %s", invoice.InvoiceNumber),
		EntityType:  "invoice",
		EntityID:    invoice.ID,
		EntityName:  invoice.InvoiceNumber,
		UserID:      actor.UserID,
		UserEmail:   actor.UserEmail,
		Amount:      &payment.Amount,
		Metadata:    map[string]string{"method": string(payment.Method), "paymentID": payment.ID},
	})
	return &payment, nil
}

func (s *paymentServiceImpl) ListPayments(ctx context.Context, params dto.ListPaymentsParams) ([]domain.Payment, error) {
	var (
		payments []domain.Payment
		err      error
	)
	if params.InvoiceID != "" {
		payments, err = s.paymentRepo.FindPaymentsByInvoice(ctx, params.InvoiceID)
	} else {
		payments, err = s.paymentRepo.FindPayments(ctx)
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to list payments, returning empty list")
		return []domain.Payment{}, nil
	}
	return payments, nil
}

func (s *paymentServiceImpl) GetPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find payment", slog.String("payment_id", paymentID))
		}
		return nil, err
	}
	return payment, nil
}

func (s *paymentServiceImpl) DeletePayment(ctx context.Context, paymentID string, actor domain.Actor) error {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return err
	}

	if err := s.paymentRepo.DeletePayment(ctx, paymentID); err != nil {
		s.LogError(ctx, err, "Failed to delete payment", slog.String("payment_id", paymentID))
		return err
	}

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, payment.InvoiceID)
	if err != nil {
		// The payment is gone; a missing invoice just means nothing to settle.
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return err
	}
	if err := s.settleInvoice(ctx, invoice); err != nil {
		return err
	}

	s.activity.Record(ctx, domain.ActivityLog{
		Type:        domain.ActivityPaymentRemoved,
		Description: fmt.Sprintf("Payment removed from invoice %s", invoice.InvoiceNumber),
		EntityType:  "invoice",
		EntityID:    invoice.ID,
		EntityName:  invoice.InvoiceNumber,
		UserID:      actor.UserID,
		UserEmail:   actor.UserEmail,
		Amount:      &payment.Amount,
	})
	return nil
}

// settleInvoice rederives the invoice's paid amount from the authoritative
// sum of its payments and persists the result.
func (s *paymentServiceImpl) settleInvoice(ctx context.Context, invoice *domain.Invoice) error {
	payments, err := s.paymentRepo.FindPaymentsByInvoice(ctx, invoice.ID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load payments for settlement", slog.String("invoice_id", invoice.ID))
		return err
	}

	paid := decimal.Zero
	for _, p := range payments {
		paid = paid.Add(p.Amount)
	}

	invoice.ApplyPaidAmount(paid, s.now().UTC())
	invoice.UpdatedAt = s.now().UTC()

	if err := s.invoiceRepo.UpdateInvoice(ctx, *invoice); err != nil {
		s.LogError(ctx, err, "Failed to update invoice after payment change", slog.String("invoice_id", invoice.ID))
		return err
	}
	return nil
}
