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

type TemplateServiceTestSuite struct {
	suite.Suite
	mockTemplateRepo *MockTemplateRepository
	mockInvoiceRepo  *MockInvoiceRepository
	mockClientRepo   *MockClientRepository
	activity         *recordingActivity
	service          portssvc.TemplateSvcFacade
	ctx              context.Context
	actor            domain.Actor
}

func (s *TemplateServiceTestSuite) SetupTest() {
	s.mockTemplateRepo = new(MockTemplateRepository)
	s.mockInvoiceRepo = new(MockInvoiceRepository)
	s.mockClientRepo = new(MockClientRepository)
	s.activity = new(recordingActivity)
	s.service = services.NewTemplateService(s.mockTemplateRepo, s.mockInvoiceRepo, s.mockClientRepo, s.activity)
	s.ctx = context.Background()
	s.actor = domain.Actor{UserID: "user-1", UserEmail: "user@example.com"}
}

func (s *TemplateServiceTestSuite) template(active bool) *domain.Template {
	return &domain.Template{
		ID:   "tpl-1",
		Name: "Monthly Retainer",
		LineItems: []domain.LineItem{
			{ID: "li-tpl-1", Description: "Retainer fee", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(500), Amount: decimal.NewFromInt(500)},
			{ID: "li-tpl-2", Description: "Support hours", Quantity: decimal.NewFromInt(5), Rate: decimal.NewFromInt(80), Amount: decimal.NewFromInt(400)},
		},
		TaxRate:  decimal.NewFromInt(10),
		IsActive: active,
	}
}

func (s *TemplateServiceTestSuite) TestCreateTemplate_DefaultsToActiveAndDerivesAmounts() {
	var saved domain.Template
	s.mockTemplateRepo.On("SaveTemplate", s.ctx, mock.AnythingOfType("domain.Template")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.Template) }).
		Return(nil).Once()

	template, err := s.service.CreateTemplate(s.ctx, dto.CreateTemplateRequest{
		Name: "Monthly Retainer",
		LineItems: []dto.LineItemRequest{
			{Description: "Retainer fee", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(500)},
		},
		TaxRate: decimal.NewFromInt(10),
	}, s.actor)

	s.NoError(err)
	s.True(template.IsActive)
	s.Require().Len(saved.LineItems, 1)
	s.NotEmpty(saved.LineItems[0].ID)
	s.True(saved.LineItems[0].Amount.Equal(decimal.NewFromInt(500)))

	entries := s.activity.recorded()
	s.Require().Len(entries, 1)
	s.Equal("template", entries[0].EntityType)
}

func (s *TemplateServiceTestSuite) TestCreateInvoiceFromTemplate_CopiesLinesWithFreshIDs() {
	issueDate := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)

	s.mockTemplateRepo.On("FindTemplateByID", s.ctx, "tpl-1").Return(s.template(true), nil).Once()
	s.mockClientRepo.On("FindClientByID", s.ctx, "client-1").Return(&domain.Client{ID: "client-1", Name: "Acme Corp"}, nil).Once()

	var saved domain.Invoice
	s.mockInvoiceRepo.On("SaveInvoice", s.ctx, mock.AnythingOfType("domain.Invoice")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.Invoice) }).
		Return(nil).Once()

	invoice, err := s.service.CreateInvoiceFromTemplate(s.ctx, "tpl-1", dto.CreateInvoiceFromTemplateRequest{
		ClientID:      "client-1",
		InvoiceNumber: "INV-042",
		IssueDate:     &issueDate,
	}, s.actor)

	s.NoError(err)
	s.Equal(domain.InvoiceDraft, invoice.Status)
	s.Equal("INV-042", invoice.InvoiceNumber)
	s.True(invoice.IssueDate.Equal(issueDate))
	s.True(invoice.DueDate.Equal(issueDate.AddDate(0, 0, 30)))
	s.Require().Len(saved.LineItems, 2)
	s.NotEqual("li-tpl-1", saved.LineItems[0].ID)
	s.NotEqual("li-tpl-2", saved.LineItems[1].ID)
	s.True(saved.Subtotal.Equal(decimal.NewFromInt(900)))
	s.True(saved.Total.Equal(decimal.NewFromInt(990)))

	entries := s.activity.recorded()
	s.Require().Len(entries, 1)
	s.Equal("tpl-1", entries[0].Metadata["templateID"])
}

func (s *TemplateServiceTestSuite) TestCreateInvoiceFromTemplate_RejectsInactiveTemplate() {
	s.mockTemplateRepo.On("FindTemplateByID", s.ctx, "tpl-1").Return(s.template(false), nil).Once()

	_, err := s.service.CreateInvoiceFromTemplate(s.ctx, "tpl-1", dto.CreateInvoiceFromTemplateRequest{
		ClientID:      "client-1",
		InvoiceNumber: "INV-042",
	}, s.actor)

	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockInvoiceRepo.AssertNotCalled(s.T(), "SaveInvoice", mock.Anything, mock.Anything)
}

func (s *TemplateServiceTestSuite) TestCreateInvoiceFromTemplate_MissingClientIsValidationError() {
	s.mockTemplateRepo.On("FindTemplateByID", s.ctx, "tpl-1").Return(s.template(true), nil).Once()
	s.mockClientRepo.On("FindClientByID", s.ctx, "ghost").
		Return(nil, fmt.Errorf("client ghost: %w", apperrors.ErrNotFound)).Once()

	_, err := s.service.CreateInvoiceFromTemplate(s.ctx, "tpl-1", dto.CreateInvoiceFromTemplateRequest{
		ClientID:      "ghost",
		InvoiceNumber: "INV-042",
	}, s.actor)

	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *TemplateServiceTestSuite) TestUpdateTemplate_DeactivationPersists() {
	s.mockTemplateRepo.On("FindTemplateByID", s.ctx, "tpl-1").Return(s.template(true), nil).Once()

	var updated domain.Template
	s.mockTemplateRepo.On("UpdateTemplate", s.ctx, mock.AnythingOfType("domain.Template")).
		Run(func(args mock.Arguments) { updated = args.Get(1).(domain.Template) }).
		Return(nil).Once()

	inactive := false
	template, err := s.service.UpdateTemplate(s.ctx, "tpl-1", dto.UpdateTemplateRequest{IsActive: &inactive}, s.actor)

	s.NoError(err)
	s.False(template.IsActive)
	s.False(updated.IsActive)
}

func (s *TemplateServiceTestSuite) TestDeleteTemplate_MissingTemplatePropagatesNotFound() {
	s.mockTemplateRepo.On("FindTemplateByID", s.ctx, "ghost").
		Return(nil, fmt.Errorf("template ghost: %w", apperrors.ErrNotFound)).Once()

	err := s.service.DeleteTemplate(s.ctx, "ghost", s.actor)

	s.ErrorIs(err, apperrors.ErrNotFound)
	s.mockTemplateRepo.AssertNotCalled(s.T(), "DeleteTemplate", mock.Anything, mock.Anything)
}

func TestTemplateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TemplateServiceTestSuite))
}
