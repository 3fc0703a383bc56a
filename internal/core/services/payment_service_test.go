package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/devenkhatri/billing-monk-sub000/internal/apperrors"
	"github.com/devenkhatri/billing-monk-sub000/internal/core/domain"
	portssvc "github.com/devenkhatri/billing-monk-sub000/internal/core/ports/services"
	"github.com/devenkhatri/billing-monk-sub000/internal/core/services"
	"github.com/devenkhatri/billing-monk-sub000/internal/dto"
)

type PaymentServiceTestSuite struct {
	suite.Suite
	mockPaymentRepo *MockPaymentRepository
	mockInvoiceRepo *MockInvoiceRepository
	activity        *recordingActivity
	service         portssvc.PaymentSvcFacade
	ctx             context.Context
	actor           domain.Actor
}

func (s *PaymentServiceTestSuite) SetupTest() {
	s.mockPaymentRepo = new(MockPaymentRepository)
	s.mockInvoiceRepo = new(MockInvoiceRepository)
	s.activity = new(recordingActivity)
	s.service = services.NewPaymentService(s.mockPaymentRepo, s.mockInvoiceRepo, s.activity)
	s.ctx = context.Background()
	s.actor = domain.Actor{UserID: "user-1", UserEmail: "user@example.com"}
}

// openInvoice builds an invoice with one 100.00 line and derived totals.
func (s *PaymentServiceTestSuite) openInvoice(status domain.InvoiceStatus) *domain.Invoice {
	inv := &domain.Invoice{
		ID:            "inv-1",
		InvoiceNumber: "INV-001",
		ClientID:      "client-1",
		Status:        status,
		IssueDate:     time.Now().UTC(),
		DueDate:       time.Now().UTC().AddDate(0, 0, 30),
		LineItems: []domain.LineItem{
			{ID: "li-1", Description: "Work", Quantity: decimal.NewFromInt(4), Rate: decimal.NewFromInt(25)},
		},
	}
	inv.Recalculate()
	return inv
}

func (s *PaymentServiceTestSuite) TestCreatePayment_FullAmountMarksInvoicePaid() {
	invoice := s.openInvoice(domain.InvoiceSent)

	s.mockInvoiceRepo.On("FindInvoiceByID", s.ctx, "inv-1").Return(invoice, nil).Once()
	s.mockPaymentRepo.On("SavePayment", s.ctx, mock.MatchedBy(func(p domain.Payment) bool {
		return p.InvoiceID == "inv-1" && p.Amount.Equal(decimal.NewFromInt(100)) && p.ID != ""
	})).Return(nil).Once()
	s.mockPaymentRepo.On("FindPaymentsByInvoice", s.ctx, "inv-1").Return([]domain.Payment{
		{ID: "pay-1", InvoiceID: "inv-1", Amount: decimal.NewFromInt(100)},
	}, nil).Once()

	var updated domain.Invoice
	s.mockInvoiceRepo.On("UpdateInvoice", s.ctx, mock.AnythingOfType("domain.Invoice")).
		Run(func(args mock.Arguments) { updated = args.Get(1).(domain.Invoice) }).
		Return(nil).Once()

	payment, err := s.service.CreatePayment(s.ctx, dto.CreatePaymentRequest{
		InvoiceID:   "inv-1",
		Amount:      decimal.NewFromInt(100),
		PaymentDate: time.Now().UTC(),
		Method:      domain.PaymentBankTransfer,
	}, s.actor)

	s.NoError(err)
	s.NotNil(payment)
	s.Equal(domain.PaymentBankTransfer, payment.Method)
	s.Equal(domain.InvoicePaid, updated.Status)
	s.True(updated.PaidAmount.Equal(decimal.NewFromInt(100)))
	s.True(updated.Balance.IsZero())

	entries := s.activity.recorded()
	s.Require().Len(entries, 1)
	s.Equal(domain.ActivityPaymentReceived, entries[0].Type)
	s.Require().NotNil(entries[0].Amount)
	s.True(entries[0].Amount.Equal(decimal.NewFromInt(100)))

	s.mockPaymentRepo.AssertExpectations(s.T())
	s.mockInvoiceRepo.AssertExpectations(s.T())
}

func (s *PaymentServiceTestSuite) TestCreatePayment_PartialPaymentMovesDraftToSent() {
	invoice := s.openInvoice(domain.InvoiceDraft)

	s.mockInvoiceRepo.On("FindInvoiceByID", s.ctx, "inv-1").Return(invoice, nil).Once()
	s.mockPaymentRepo.On("SavePayment", s.ctx, mock.AnythingOfType("domain.Payment")).Return(nil).Once()
	s.mockPaymentRepo.On("FindPaymentsByInvoice", s.ctx, "inv-1").Return([]domain.Payment{
		{ID: "pay-1", InvoiceID: "inv-1", Amount: decimal.NewFromInt(40)},
	}, nil).Once()

	var updated domain.Invoice
	s.mockInvoiceRepo.On("UpdateInvoice", s.ctx, mock.AnythingOfType("domain.Invoice")).
		Run(func(args mock.Arguments) { updated = args.Get(1).(domain.Invoice) }).
		Return(nil).Once()

	_, err := s.service.CreatePayment(s.ctx, dto.CreatePaymentRequest{
		InvoiceID:   "inv-1",
		Amount:      decimal.NewFromInt(40),
		PaymentDate: time.Now().UTC(),
	}, s.actor)

	s.NoError(err)
	s.Equal(domain.InvoiceSent, updated.Status)
	s.True(updated.Balance.Equal(decimal.NewFromInt(60)))
}

func (s *PaymentServiceTestSuite) TestCreatePayment_DefaultsMethodToOther() {
	invoice := s.openInvoice(domain.InvoiceSent)

	s.mockInvoiceRepo.On("FindInvoiceByID", s.ctx, "inv-1").Return(invoice, nil).Once()
	s.mockPaymentRepo.On("SavePayment", s.ctx, mock.MatchedBy(func(p domain.Payment) bool {
		return p.Method == domain.PaymentOther
	})).Return(nil).Once()
	s.mockPaymentRepo.On("FindPaymentsByInvoice", s.ctx, "inv-1").Return([]domain.Payment{}, nil).Once()
	s.mockInvoiceRepo.On("UpdateInvoice", s.ctx, mock.AnythingOfType("domain.Invoice")).Return(nil).Once()

	payment, err := s.service.CreatePayment(s.ctx, dto.CreatePaymentRequest{
		InvoiceID:   "inv-1",
		Amount:      decimal.NewFromInt(10),
		PaymentDate: time.Now().UTC(),
	}, s.actor)

	s.NoError(err)
	s.Equal(domain.PaymentOther, payment.Method)
}

func (s *PaymentServiceTestSuite) TestCreatePayment_RejectsNonPositiveAmount() {
	_, err := s.service.CreatePayment(s.ctx, dto.CreatePaymentRequest{
		InvoiceID:   "inv-1",
		Amount:      decimal.Zero,
		PaymentDate: time.Now().UTC(),
	}, s.actor)

	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockPaymentRepo.AssertNotCalled(s.T(), "SavePayment", mock.Anything, mock.Anything)
	s.mockInvoiceRepo.AssertNotCalled(s.T(), "FindInvoiceByID", mock.Anything, mock.Anything)
}

func (s *PaymentServiceTestSuite) TestCreatePayment_MissingInvoiceIsValidationError() {
	s.mockInvoiceRepo.On("FindInvoiceByID", s.ctx, "ghost").
		Return(nil, fmt.Errorf("invoice ghost: %w", apperrors.ErrNotFound)).Once()

	_, err := s.service.CreatePayment(s.ctx, dto.CreatePaymentRequest{
		InvoiceID:   "ghost",
		Amount:      decimal.NewFromInt(10),
		PaymentDate: time.Now().UTC(),
	}, s.actor)

	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockPaymentRepo.AssertNotCalled(s.T(), "SavePayment", mock.Anything, mock.Anything)
}

func (s *PaymentServiceTestSuite) TestCreatePayment_SaveFailurePropagates() {
	invoice := s.openInvoice(domain.InvoiceSent)
	saveErr := fmt.Errorf("sheet write failed")

	s.mockInvoiceRepo.On("FindInvoiceByID", s.ctx, "inv-1").Return(invoice, nil).Once()
	s.mockPaymentRepo.On("SavePayment", s.ctx, mock.AnythingOfType("domain.Payment")).Return(saveErr).Once()

	_, err := s.service.CreatePayment(s.ctx, dto.CreatePaymentRequest{
		InvoiceID:   "inv-1",
		Amount:      decimal.NewFromInt(10),
		PaymentDate: time.Now().UTC(),
	}, s.actor)

	s.ErrorIs(err, saveErr)
	s.mockInvoiceRepo.AssertNotCalled(s.T(), "UpdateInvoice", mock.Anything, mock.Anything)
	s.Empty(s.activity.recorded())
}

func (s *PaymentServiceTestSuite) TestDeletePayment_ReopensPaidInvoice() {
	invoice := s.openInvoice(domain.InvoicePaid)
	invoice.PaidAmount = decimal.NewFromInt(100)
	invoice.Balance = decimal.Zero

	payment := &domain.Payment{ID: "pay-1", InvoiceID: "inv-1", Amount: decimal.NewFromInt(100)}

	s.mockPaymentRepo.On("FindPaymentByID", s.ctx, "pay-1").Return(payment, nil).Once()
	s.mockPaymentRepo.On("DeletePayment", s.ctx, "pay-1").Return(nil).Once()
	s.mockInvoiceRepo.On("FindInvoiceByID", s.ctx, "inv-1").Return(invoice, nil).Once()
	s.mockPaymentRepo.On("FindPaymentsByInvoice", s.ctx, "inv-1").Return([]domain.Payment{}, nil).Once()

	var updated domain.Invoice
	s.mockInvoiceRepo.On("UpdateInvoice", s.ctx, mock.AnythingOfType("domain.Invoice")).
		Run(func(args mock.Arguments) { updated = args.Get(1).(domain.Invoice) }).
		Return(nil).Once()

	err := s.service.DeletePayment(s.ctx, "pay-1", s.actor)

	s.NoError(err)
	s.Equal(domain.InvoiceSent, updated.Status)
	s.True(updated.PaidAmount.IsZero())
	s.True(updated.Balance.Equal(decimal.NewFromInt(100)))

	entries := s.activity.recorded()
	s.Require().Len(entries, 1)
	s.Equal(domain.ActivityPaymentRemoved, entries[0].Type)
}

func (s *PaymentServiceTestSuite) TestDeletePayment_MissingInvoiceTolerated() {
	payment := &domain.Payment{ID: "pay-1", InvoiceID: "inv-gone", Amount: decimal.NewFromInt(50)}

	s.mockPaymentRepo.On("FindPaymentByID", s.ctx, "pay-1").Return(payment, nil).Once()
	s.mockPaymentRepo.On("DeletePayment", s.ctx, "pay-1").Return(nil).Once()
	s.mockInvoiceRepo.On("FindInvoiceByID", s.ctx, "inv-gone").
		Return(nil, fmt.Errorf("invoice inv-gone: %w", apperrors.ErrNotFound)).Once()

	err := s.service.DeletePayment(s.ctx, "pay-1", s.actor)

	s.NoError(err)
	s.mockInvoiceRepo.AssertNotCalled(s.T(), "UpdateInvoice", mock.Anything, mock.Anything)
}

func (s *PaymentServiceTestSuite) TestListPayments_RepositoryFailureReturnsEmpty() {
	s.mockPaymentRepo.On("FindPayments", s.ctx).Return(nil, fmt.Errorf("read failed")).Once()

	payments, err := s.service.ListPayments(s.ctx, dto.ListPaymentsParams{})

	s.NoError(err)
	s.Empty(payments)
}

func (s *PaymentServiceTestSuite) TestListPayments_FiltersByInvoice() {
	s.mockPaymentRepo.On("FindPaymentsByInvoice", s.ctx, "inv-1").Return([]domain.Payment{
		{ID: "pay-1", InvoiceID: "inv-1", Amount: decimal.NewFromInt(10)},
	}, nil).Once()

	payments, err := s.service.ListPayments(s.ctx, dto.ListPaymentsParams{InvoiceID: "inv-1"})

	s.NoError(err)
	s.Require().Len(payments, 1)
	s.Equal("pay-1", payments[0].ID)
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
