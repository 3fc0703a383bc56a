package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/devenkhatri/billing-monk-sub000/internal/apperrors"
	"github.com/devenkhatri/billing-monk-sub000/internal/core/domain"
	portsrepo "github.com/devenkhatri/billing-monk-sub000/internal/core/ports/repositories"
	portssvc "github.com/devenkhatri/billing-monk-sub000/internal/core/ports/services"
	"github.com/devenkhatri/billing-monk-sub000/internal/dto"
)

// templateServiceImpl implements the TemplateSvcFacade interface.
type templateServiceImpl struct {
	BaseService
	templateRepo portsrepo.TemplateRepositoryFacade
	invoiceRepo  portsrepo.InvoiceRepositoryFacade
	clientRepo   portsrepo.ClientReader
	activity     portssvc.ActivitySvcFacade

	now func() time.Time
}

// NewTemplateService creates the template service.
func NewTemplateService(
	templateRepo portsrepo.TemplateRepositoryFacade,
	invoiceRepo portsrepo.InvoiceRepositoryFacade,
	clientRepo portsrepo.ClientReader,
	activity portssvc.ActivitySvcFacade,
) portssvc.TemplateSvcFacade {
	return &templateServiceImpl{
		templateRepo: templateRepo,
		invoiceRepo:  invoiceRepo,
		clientRepo:   clientRepo,
		activity:     activity,
		now:          time.Now,
	}
}

var _ portssvc.TemplateSvcFacade = (*templateServiceImpl)(nil)

func (s *templateServiceImpl) CreateTemplate(ctx context.Context, req dto.CreateTemplateRequest, actor domain.Actor) (*domain.Template, error) {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	now := s.now().UTC()
	template := domain.Template{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		LineItems:   lineItemsFromRequest(req.LineItems),
		TaxRate:     req.TaxRate,
		IsActive:    isActive,
		Timestamps: domain.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	for i := range template.LineItems {
		template.LineItems[i].Amount = template.LineItems[i].Quantity.Mul(template.LineItems[i].Rate)
	}

	if err := s.templateRepo.SaveTemplate(ctx, template); err != nil {
		s.LogError(ctx, err, "Failed to save template", slog.String("template_id", template.ID))
		return nil, err
	}

	s.activity.Record(ctx, domain.ActivityLog{
		Type:        domain.ActivityCreated,
		Description: fmt.Sprintf("Template %s created", template.Name),
		EntityType:  "template",
		EntityID:    template.ID,
		EntityName:  template.Name,
		UserID:      actor.UserID,
		UserEmail:   actor.UserEmail,
	})
	return &template, nil
}

func (s *templateServiceImpl) ListTemplates(ctx context.Context) ([]domain.Template, error) {
	templates, err := s.templateRepo.FindTemplates(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list templates, returning empty list")
		return []domain.Template{}, nil
	}
	return templates, nil
}

func (s *templateServiceImpl) GetTemplateByID(ctx context.Context, templateID string) (*domain.Template, error) {
	template, err := s.templateRepo.FindTemplateByID(ctx, templateID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find template", slog.String("template_id", templateID))
		}
		return nil, err
	}
	return template, nil
}

func (s *templateServiceImpl) UpdateTemplate(ctx context.Context, templateID string, req dto.UpdateTemplateRequest, actor domain.Actor) (*domain.Template, error) {
	template, err := s.templateRepo.FindTemplateByID(ctx, templateID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		template.Name = *req.Name
	}
	if req.Description != nil {
		template.Description = *req.Description
	}
	if req.LineItems != nil {
		template.LineItems = lineItemsFromRequest(*req.LineItems)
		for i := range template.LineItems {
			template.LineItems[i].Amount = template.LineItems[i].Quantity.Mul(template.LineItems[i].Rate)
		}
	}
	if req.TaxRate != nil {
		template.TaxRate = *req.TaxRate
	}
	if req.IsActive != nil {
		template.IsActive = *req.IsActive
	}
	template.UpdatedAt = s.now().UTC()

	if err := s.templateRepo.UpdateTemplate(ctx, *template); err != nil {
		s.LogError(ctx, err, "Failed to update template", slog.String("template_id", templateID))
		return nil, err
	}

	s.activity.Record(ctx, domain.ActivityLog{
		Type:        domain.ActivityUpdated,
		Description: fmt.Sprintf("Template %s updated", template.Name),
		EntityType:  "template",
		EntityID:    template.ID,
		EntityName:  template.Name,
		UserID:      actor.UserID,
		UserEmail:   actor.UserEmail,
	})
	return template, nil
}

func (s *templateServiceImpl) DeleteTemplate(ctx context.Context, templateID string, actor domain.Actor) error {
	template, err := s.templateRepo.FindTemplateByID(ctx, templateID)
	if err != nil {
		return err
	}

	if err := s.templateRepo.DeleteTemplate(ctx, templateID); err != nil {
		s.LogError(ctx, err, "Failed to delete template", slog.String("template_id", templateID))
		return err
	}

	s.activity.Record(ctx, domain.ActivityLog{
		Type:        domain.ActivityDeleted,
		Description: fmt.Sprintf("Template %s deleted", template.Name),
		EntityType:  "template",
		EntityID:    templateID,
		EntityName:  template.Name,
		UserID:      actor.UserID,
		UserEmail:   actor.UserEmail,
	})
	return nil
}

// CreateInvoiceFromTemplate instantiates a template into a fresh draft
// invoice for the given client. Line items get new identities so later
// edits to the invoice never touch the template.
func (s *templateServiceImpl) CreateInvoiceFromTemplate(ctx context.Context, templateID string, req dto.CreateInvoiceFromTemplateRequest, actor domain.Actor) (*domain.Invoice, error) {
	template, err := s.templateRepo.FindTemplateByID(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if !template.IsActive {
		return nil, fmt.Errorf("template %s is inactive: %w", template.Name, apperrors.ErrValidation)
	}
	if _, err := s.clientRepo.FindClientByID(ctx, req.ClientID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("client %s does not exist: %w", req.ClientID, apperrors.ErrValidation)
		}
		return nil, err
	}

	now := s.now().UTC()
	issueDate := now
	if req.IssueDate != nil {
		issueDate = *req.IssueDate
	}
	dueDate := issueDate.AddDate(0, 0, 30)
	if req.DueDate != nil {
		dueDate = *req.DueDate
	}

	items := make([]domain.LineItem, len(template.LineItems))
	for i, li := range template.LineItems {
		items[i] = domain.LineItem{
			ID:          uuid.NewString(),
			Description: li.Description,
			Quantity:    li.Quantity,
			Rate:        li.Rate,
		}
	}

	invoice := domain.Invoice{
		ID:            uuid.NewString(),
		InvoiceNumber: req.InvoiceNumber,
		ClientID:      req.ClientID,
		Status:        domain.InvoiceDraft,
		IssueDate:     issueDate,
		DueDate:       dueDate,
		LineItems:     items,
		TaxRate:       template.TaxRate,
		Notes:         req.Notes,
		Timestamps: domain.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	invoice.Recalculate()

	if err := s.invoiceRepo.SaveInvoice(ctx, invoice); err != nil {
		s.LogError(ctx, err, "Failed to save invoice from template",
			slog.String("template_id", templateID),
			slog.String("invoice_id", invoice.ID))
		return nil, err
	}

	s.activity.Record(ctx, domain.ActivityLog{
		Type:        domain.ActivityCreated,
		Description: fmt.Sprintf("Invoice %s created from template %s", invoice.InvoiceNumber, template.Name),
		EntityType:  "invoice",
		EntityID:    invoice.ID,
		EntityName:  invoice.InvoiceNumber,
		UserID:      actor.UserID,
		UserEmail:   actor.UserEmail,
		Amount:      &invoice.Total,
		Metadata:    map[string]string{"templateID": template.ID},
	})
	return &invoice, nil
}
