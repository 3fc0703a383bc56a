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

type InvoiceServiceTestSuite struct {
	suite.Suite
	mockInvoiceRepo *MockInvoiceRepository
	mockPaymentRepo *MockPaymentRepository
	mockClientRepo  *MockClientRepository
	activity        *recordingActivity
	service         portssvc.InvoiceSvcFacade
	ctx             context.Context
	actor           domain.Actor
}

func (s *InvoiceServiceTestSuite) SetupTest() {
	s.mockInvoiceRepo = new(MockInvoiceRepository)
	s.mockPaymentRepo = new(MockPaymentRepository)
	s.mockClientRepo = new(MockClientRepository)
	s.activity = new(recordingActivity)
	s.service = services.NewInvoiceService(s.mockInvoiceRepo, s.mockPaymentRepo, s.mockClientRepo, s.activity)
	s.ctx = context.Background()
	s.actor = domain.Actor{UserID: "user-1", UserEmail: "user@example.com"}
}

func (s *InvoiceServiceTestSuite) client() *domain.Client {
	return &domain.Client{ID: "client-1", Name: "Acme Corp"}
}

func (s *InvoiceServiceTestSuite) createRequest() dto.CreateInvoiceRequest {
	return dto.CreateInvoiceRequest{
		InvoiceNumber: "INV-001",
		ClientID:      "client-1",
		IssueDate:     time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC),
		DueDate:       time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC),
		LineItems: []dto.LineItemRequest{
			{Description: "Design work", Quantity: decimal.NewFromInt(10), Rate: decimal.NewFromInt(50)},
			{Description: "Hosting", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(25)},
		},
		TaxRate: decimal.NewFromInt(10),
	}
}

func (s *InvoiceServiceTestSuite) TestCreateInvoice_DerivesTotalsAndAssignsIDs() {
	s.mockClientRepo.On("FindClientByID", s.ctx, "client-1").Return(s.client(), nil).Once()
	s.mockInvoiceRepo.On("FindInvoices", s.ctx).Return([]domain.Invoice{}, nil).Once()

	var saved domain.Invoice
	s.mockInvoiceRepo.On("SaveInvoice", s.ctx, mock.AnythingOfType("domain.Invoice")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.Invoice) }).
		Return(nil).Once()

	invoice, err := s.service.CreateInvoice(s.ctx, s.createRequest(), s.actor)

	s.NoError(err)
	s.NotEmpty(invoice.ID)
	s.Equal(domain.InvoiceDraft, invoice.Status)
	s.Require().Len(saved.LineItems, 2)
	s.NotEmpty(saved.LineItems[0].ID)
	s.True(saved.LineItems[0].Amount.Equal(decimal.NewFromInt(500)))
	s.True(saved.Subtotal.Equal(decimal.NewFromInt(525)))
	s.True(saved.TaxAmount.Equal(decimal.NewFromFloat(52.5)))
	s.True(saved.Total.Equal(decimal.NewFromFloat(577.5)))
	s.True(saved.Balance.Equal(saved.Total))
	s.False(saved.IsRecurring)

	entries := s.activity.recorded()
	s.Require().Len(entries, 1)
	s.Equal(domain.ActivityCreated, entries[0].Type)
	s.Equal("invoice", entries[0].EntityType)
}

func (s *InvoiceServiceTestSuite) TestCreateInvoice_WithRecurringSchedule() {
	start := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	req := s.createRequest()
	req.Recurring = &dto.RecurringScheduleRequest{
		Frequency: domain.Monthly,
		StartDate: start,
	}

	s.mockClientRepo.On("FindClientByID", s.ctx, "client-1").Return(s.client(), nil).Once()
	s.mockInvoiceRepo.On("FindInvoices", s.ctx).Return([]domain.Invoice{}, nil).Once()
	s.mockInvoiceRepo.On("SaveInvoice", s.ctx, mock.AnythingOfType("domain.Invoice")).Return(nil).Once()

	invoice, err := s.service.CreateInvoice(s.ctx, req, s.actor)

	s.NoError(err)
	s.True(invoice.IsRecurring)
	s.Require().NotNil(invoice.Recurring)
	s.Equal(1, invoice.Recurring.Interval)
	s.True(invoice.Recurring.NextInvoiceDate.Equal(start))
	s.True(invoice.Recurring.IsActive)
}

func (s *InvoiceServiceTestSuite) TestCreateInvoice_MissingClientIsValidationError() {
	s.mockClientRepo.On("FindClientByID", s.ctx, "client-1").
		Return(nil, fmt.Errorf("client client-1: %w", apperrors.ErrNotFound)).Once()

	_, err := s.service.CreateInvoice(s.ctx, s.createRequest(), s.actor)

	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockInvoiceRepo.AssertNotCalled(s.T(), "SaveInvoice", mock.Anything, mock.Anything)
}

func (s *InvoiceServiceTestSuite) TestCreateInvoice_DuplicateNumberRejected() {
	s.mockClientRepo.On("FindClientByID", s.ctx, "client-1").Return(s.client(), nil).Once()
	s.mockInvoiceRepo.On("FindInvoices", s.ctx).Return([]domain.Invoice{
		{ID: "inv-existing", InvoiceNumber: "INV-001"},
	}, nil).Once()

	_, err := s.service.CreateInvoice(s.ctx, s.createRequest(), s.actor)

	s.ErrorIs(err, apperrors.ErrDuplicate)
	s.mockInvoiceRepo.AssertNotCalled(s.T(), "SaveInvoice", mock.Anything, mock.Anything)
}

func (s *InvoiceServiceTestSuite) TestCreateInvoice_UniquenessCheckFailureDoesNotBlock() {
	s.mockClientRepo.On("FindClientByID", s.ctx, "client-1").Return(s.client(), nil).Once()
	s.mockInvoiceRepo.On("FindInvoices", s.ctx).Return(nil, fmt.Errorf("read failed")).Once()
	s.mockInvoiceRepo.On("SaveInvoice", s.ctx, mock.AnythingOfType("domain.Invoice")).Return(nil).Once()

	_, err := s.service.CreateInvoice(s.ctx, s.createRequest(), s.actor)

	s.NoError(err)
}

func (s *InvoiceServiceTestSuite) TestUpdateInvoice_MarkingPaidSettlesBalance() {
	stored := &domain.Invoice{
		ID:            "inv-1",
		InvoiceNumber: "INV-001",
		ClientID:      "client-1",
		Status:        domain.InvoiceSent,
		DueDate:       time.Now().UTC().AddDate(0, 0, 10),
		LineItems: []domain.LineItem{
			{ID: "li-1", Description: "Work", Quantity: decimal.NewFromInt(2), Rate: decimal.NewFromInt(100)},
		},
	}
	stored.Recalculate()

	s.mockInvoiceRepo.On("FindInvoiceByID", s.ctx, "inv-1").Return(stored, nil).Once()

	var updated domain.Invoice
	s.mockInvoiceRepo.On("UpdateInvoice", s.ctx, mock.AnythingOfType("domain.Invoice")).
		Run(func(args mock.Arguments) { updated = args.Get(1).(domain.Invoice) }).
		Return(nil).Once()

	paid := domain.InvoicePaid
	invoice, err := s.service.UpdateInvoice(s.ctx, "inv-1", dto.UpdateInvoiceRequest{Status: &paid}, s.actor)

	s.NoError(err)
	s.Equal(domain.InvoicePaid, invoice.Status)
	s.True(updated.PaidAmount.Equal(decimal.NewFromInt(200)))
	s.True(updated.Balance.IsZero())
}

func (s *InvoiceServiceTestSuite) TestUpdateInvoice_LineItemsReplacedWholesale() {
	stored := &domain.Invoice{
		ID:            "inv-1",
		InvoiceNumber: "INV-001",
		Status:        domain.InvoiceDraft,
		LineItems: []domain.LineItem{
			{ID: "li-old-1", Description: "Old line", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(100)},
			{ID: "li-old-2", Description: "Another old line", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(100)},
		},
	}
	stored.Recalculate()

	s.mockInvoiceRepo.On("FindInvoiceByID", s.ctx, "inv-1").Return(stored, nil).Once()

	var updated domain.Invoice
	s.mockInvoiceRepo.On("UpdateInvoice", s.ctx, mock.AnythingOfType("domain.Invoice")).
		Run(func(args mock.Arguments) { updated = args.Get(1).(domain.Invoice) }).
		Return(nil).Once()

	items := []dto.LineItemRequest{
		{Description: "New line", Quantity: decimal.NewFromInt(3), Rate: decimal.NewFromInt(40)},
	}
	_, err := s.service.UpdateInvoice(s.ctx, "inv-1", dto.UpdateInvoiceRequest{LineItems: &items}, s.actor)

	s.NoError(err)
	s.Require().Len(updated.LineItems, 1)
	s.Equal("New line", updated.LineItems[0].Description)
	s.True(updated.Subtotal.Equal(decimal.NewFromInt(120)))
}

func (s *InvoiceServiceTestSuite) TestUpdateInvoice_NumberCollisionRejected() {
	stored := &domain.Invoice{ID: "inv-1", InvoiceNumber: "INV-001", Status: domain.InvoiceDraft}

	s.mockInvoiceRepo.On("FindInvoiceByID", s.ctx, "inv-1").Return(stored, nil).Once()
	s.mockInvoiceRepo.On("FindInvoices", s.ctx).Return([]domain.Invoice{
		{ID: "inv-1", InvoiceNumber: "INV-001"},
		{ID: "inv-2", InvoiceNumber: "INV-002"},
	}, nil).Once()

	taken := "INV-002"
	_, err := s.service.UpdateInvoice(s.ctx, "inv-1", dto.UpdateInvoiceRequest{InvoiceNumber: &taken}, s.actor)

	s.ErrorIs(err, apperrors.ErrDuplicate)
	s.mockInvoiceRepo.AssertNotCalled(s.T(), "UpdateInvoice", mock.Anything, mock.Anything)
}

func (s *InvoiceServiceTestSuite) TestDeleteInvoice_CascadesToPayments() {
	stored := &domain.Invoice{ID: "inv-1", InvoiceNumber: "INV-001"}

	s.mockInvoiceRepo.On("FindInvoiceByID", s.ctx, "inv-1").Return(stored, nil).Once()
	s.mockPaymentRepo.On("FindPaymentsByInvoice", s.ctx, "inv-1").Return([]domain.Payment{
		{ID: "pay-1", InvoiceID: "inv-1"},
		{ID: "pay-2", InvoiceID: "inv-1"},
	}, nil).Once()
	s.mockPaymentRepo.On("DeletePayment", s.ctx, "pay-1").Return(nil).Once()
	s.mockPaymentRepo.On("DeletePayment", s.ctx, "pay-2").Return(nil).Once()
	s.mockInvoiceRepo.On("DeleteInvoice", s.ctx, "inv-1").Return(nil).Once()

	err := s.service.DeleteInvoice(s.ctx, "inv-1", s.actor)

	s.NoError(err)
	s.mockPaymentRepo.AssertExpectations(s.T())
	s.mockInvoiceRepo.AssertExpectations(s.T())
}

func (s *InvoiceServiceTestSuite) TestDeleteInvoice_PaymentDeleteFailureAborts() {
	stored := &domain.Invoice{ID: "inv-1", InvoiceNumber: "INV-001"}
	delErr := fmt.Errorf("sheet write failed")

	s.mockInvoiceRepo.On("FindInvoiceByID", s.ctx, "inv-1").Return(stored, nil).Once()
	s.mockPaymentRepo.On("FindPaymentsByInvoice", s.ctx, "inv-1").Return([]domain.Payment{
		{ID: "pay-1", InvoiceID: "inv-1"},
	}, nil).Once()
	s.mockPaymentRepo.On("DeletePayment", s.ctx, "pay-1").Return(delErr).Once()

	err := s.service.DeleteInvoice(s.ctx, "inv-1", s.actor)

	s.ErrorIs(err, delErr)
	s.mockInvoiceRepo.AssertNotCalled(s.T(), "DeleteInvoice", mock.Anything, mock.Anything)
}

func (s *InvoiceServiceTestSuite) TestListInvoices_CombinedFilter() {
	s.mockInvoiceRepo.On("FindInvoicesByClient", s.ctx, "client-1").Return([]domain.Invoice{
		{ID: "inv-1", ClientID: "client-1", Status: domain.InvoiceDraft},
		{ID: "inv-2", ClientID: "client-1", Status: domain.InvoicePaid},
		{ID: "inv-3", ClientID: "client-1", Status: domain.InvoiceDraft},
	}, nil).Once()

	invoices, err := s.service.ListInvoices(s.ctx, dto.ListInvoicesParams{ClientID: "client-1", Status: "draft"})

	s.NoError(err)
	s.Require().Len(invoices, 2)
	s.Equal("inv-1", invoices[0].ID)
	s.Equal("inv-3", invoices[1].ID)
}

func (s *InvoiceServiceTestSuite) TestListInvoices_RepositoryFailureReturnsEmpty() {
	s.mockInvoiceRepo.On("FindInvoices", s.ctx).Return(nil, fmt.Errorf("read failed")).Once()

	invoices, err := s.service.ListInvoices(s.ctx, dto.ListInvoicesParams{})

	s.NoError(err)
	s.Empty(invoices)
}

func TestInvoiceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}
