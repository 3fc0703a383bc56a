package dto

import (
	"time"

	"github.com/devenkhatri/billing-monk-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTemplateRequest defines the data needed to create an invoice template.
type CreateTemplateRequest struct {
	Name        string            `json:"name" binding:"required"`
	Description string            `json:"description"`
	LineItems   []LineItemRequest `json:"lineItems" binding:"required,min=1,dive"`
	TaxRate     decimal.Decimal   `json:"taxRate"`
	IsActive    *bool             `json:"isActive"` // Defaults to true
}

// UpdateTemplateRequest defines the data allowed for updating a template.
type UpdateTemplateRequest struct {
	Name        *string            `json:"name"`
	Description *string            `json:"description"`
	LineItems   *[]LineItemRequest `json:"lineItems" binding:"omitempty,min=1,dive"`
	TaxRate     *decimal.Decimal   `json:"taxRate"`
	IsActive    *bool              `json:"isActive"`
}

// CreateInvoiceFromTemplateRequest defines the data needed to instantiate a
// template into a draft invoice.
type CreateInvoiceFromTemplateRequest struct {
	ClientID      string     `json:"clientID" binding:"required"`
	InvoiceNumber string     `json:"invoiceNumber" binding:"required"`
	IssueDate     *time.Time `json:"issueDate"` // Defaults to now
	DueDate       *time.Time `json:"dueDate"`   // Defaults to issue date + 30 days
	Notes         string     `json:"notes"`
}

// TemplateResponse defines the data returned for a template.
type TemplateResponse struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	LineItems   []LineItemResponse `json:"lineItems"`
	TaxRate     decimal.Decimal    `json:"taxRate"`
	IsActive    bool               `json:"isActive"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// ToTemplateResponse converts a domain.Template to a TemplateResponse DTO.
func ToTemplateResponse(t *domain.Template) TemplateResponse {
	items := make([]LineItemResponse, len(t.LineItems))
	for i, li := range t.LineItems {
		items[i] = LineItemResponse{
			ID:          li.ID,
			Description: li.Description,
			Quantity:    li.Quantity,
			Rate:        li.Rate,
			Amount:      li.Amount,
		}
	}
	return TemplateResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		LineItems:   items,
		TaxRate:     t.TaxRate,
		IsActive:    t.IsActive,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// ToListTemplatesResponse converts a slice of domain.Template to response DTOs.
func ToListTemplatesResponse(templates []domain.Template) ListTemplatesResponse {
	res := make([]TemplateResponse, len(templates))
	for i := range templates {
		res[i] = ToTemplateResponse(&templates[i])
	}
	return ListTemplatesResponse{Templates: res}
}

// ListTemplatesResponse wraps the list of templates.
type ListTemplatesResponse struct {
	Templates []TemplateResponse `json:"templates"`
}
