package repositories

import (
	"context"

	"github.com/devenkhatri/billing-monk-sub000/internal/core/domain"
)

// TemplateReader defines read operations for invoice templates.
type TemplateReader interface {
	// FindTemplates retrieves every template with its line items attached.
	FindTemplates(ctx context.Context) ([]domain.Template, error)

	// FindTemplateByID retrieves a specific template, or apperrors.ErrNotFound.
	FindTemplateByID(ctx context.Context, templateID string) (*domain.Template, error)
}

// TemplateWriter defines write operations for invoice templates.
type TemplateWriter interface {
	// SaveTemplate persists a new template and its line items.
	SaveTemplate(ctx context.Context, template domain.Template) error

	// UpdateTemplate overwrites a template row and replaces its line items.
	UpdateTemplate(ctx context.Context, template domain.Template) error

	// DeleteTemplate removes the template row after cascading its line items.
	DeleteTemplate(ctx context.Context, templateID string) error
}

// TemplateRepositoryFacade combines all template repository interfaces.
type TemplateRepositoryFacade interface {
	TemplateReader
	TemplateWriter
}
