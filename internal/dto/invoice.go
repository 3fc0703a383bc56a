package dto

import (
	"time"

	"github.com/devenkhatri/billing-monk-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LineItemRequest defines one billable line on an invoice or template.
// Amount is intentionally absent: it is always derived from quantity and rate.
type LineItemRequest struct {
	ID          string          `json:"id"` // Optional; assigned when empty
	Description string          `json:"description" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	Rate        decimal.Decimal `json:"rate" binding:"required"`
}

// RecurringScheduleRequest defines the recurrence settings of an invoice.
type RecurringScheduleRequest struct {
	Frequency domain.Frequency `json:"frequency" binding:"required,oneof=weekly monthly quarterly yearly"`
	Interval  int              `json:"interval" binding:"omitempty,min=1"`
	StartDate time.Time        `json:"startDate" binding:"required"`
	EndDate   *time.Time       `json:"endDate"`
}

// CreateInvoiceRequest defines the data needed to create a new invoice.
type CreateInvoiceRequest struct {
	InvoiceNumber string                    `json:"invoiceNumber" binding:"required"`
	ClientID      string                    `json:"clientID" binding:"required"`
	IssueDate     time.Time                 `json:"issueDate" binding:"required"`
	DueDate       time.Time                 `json:"dueDate" binding:"required"`
	LineItems     []LineItemRequest         `json:"lineItems" binding:"required,min=1,dive"`
	TaxRate       decimal.Decimal           `json:"taxRate"`
	Notes         string                    `json:"notes"`
	Recurring     *RecurringScheduleRequest `json:"recurringSchedule"`
}

// UpdateInvoiceRequest defines the data allowed for updating an invoice.
// Omitted fields keep their stored values; line items, when present, replace
// the stored set wholesale.
type UpdateInvoiceRequest struct {
	InvoiceNumber *string                   `json:"invoiceNumber"`
	ClientID      *string                   `json:"clientID"`
	Status        *domain.InvoiceStatus     `json:"status" binding:"omitempty,oneof=draft sent paid overdue cancelled"`
	IssueDate     *time.Time                `json:"issueDate"`
	DueDate       *time.Time                `json:"dueDate"`
	LineItems     *[]LineItemRequest        `json:"lineItems" binding:"omitempty,min=1,dive"`
	TaxRate       *decimal.Decimal          `json:"taxRate"`
	Notes         *string                   `json:"notes"`
	Recurring     *RecurringScheduleRequest `json:"recurringSchedule"`
}

// LineItemResponse defines the data returned for a line item.
type LineItemResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
}

// RecurringScheduleResponse defines the data returned for a schedule.
type RecurringScheduleResponse struct {
	Frequency       domain.Frequency `json:"frequency"`
	Interval        int              `json:"interval"`
	StartDate       time.Time        `json:"startDate"`
	EndDate         *time.Time       `json:"endDate,omitempty"`
	NextInvoiceDate time.Time        `json:"nextInvoiceDate"`
	IsActive        bool             `json:"isActive"`
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	ID            string                     `json:"id"`
	InvoiceNumber string                     `json:"invoiceNumber"`
	ClientID      string                     `json:"clientID"`
	Status        domain.InvoiceStatus       `json:"status"`
	IssueDate     time.Time                  `json:"issueDate"`
	DueDate       time.Time                  `json:"dueDate"`
	LineItems     []LineItemResponse         `json:"lineItems"`
	Subtotal      decimal.Decimal            `json:"subtotal"`
	TaxRate       decimal.Decimal            `json:"taxRate"`
	TaxAmount     decimal.Decimal            `json:"taxAmount"`
	Total         decimal.Decimal            `json:"total"`
	PaidAmount    decimal.Decimal            `json:"paidAmount"`
	Balance       decimal.Decimal            `json:"balance"`
	Notes         string                     `json:"notes"`
	IsRecurring   bool                       `json:"isRecurring"`
	Recurring     *RecurringScheduleResponse `json:"recurringSchedule,omitempty"`
	CreatedAt     time.Time                  `json:"createdAt"`
	UpdatedAt     time.Time                  `json:"updatedAt"`
}

// ToInvoiceResponse converts a domain.Invoice to an InvoiceResponse DTO.
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	items := make([]LineItemResponse, len(inv.LineItems))
	for i, li := range inv.LineItems {
		items[i] = LineItemResponse{
			ID:          li.ID,
			Description: li.Description,
			Quantity:    li.Quantity,
			Rate:        li.Rate,
			Amount:      li.Amount,
		}
	}
	res := InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		ClientID:      inv.ClientID,
		Status:        inv.Status,
		IssueDate:     inv.IssueDate,
		DueDate:       inv.DueDate,
		LineItems:     items,
		Subtotal:      inv.Subtotal,
		TaxRate:       inv.TaxRate,
		TaxAmount:     inv.TaxAmount,
		Total:         inv.Total,
		PaidAmount:    inv.PaidAmount,
		Balance:       inv.Balance,
		Notes:         inv.Notes,
		IsRecurring:   inv.IsRecurring,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
	if inv.Recurring != nil {
		res.Recurring = &RecurringScheduleResponse{
			Frequency:       inv.Recurring.Frequency,
			Interval:        inv.Recurring.Interval,
			StartDate:       inv.Recurring.StartDate,
			EndDate:         inv.Recurring.EndDate,
			NextInvoiceDate: inv.Recurring.NextInvoiceDate,
			IsActive:        inv.Recurring.IsActive,
		}
	}
	return res
}

// ToListInvoicesResponse converts a slice of domain.Invoice to response DTOs.
func ToListInvoicesResponse(invoices []domain.Invoice) ListInvoicesResponse {
	res := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		res[i] = ToInvoiceResponse(&invoices[i])
	}
	return ListInvoicesResponse{Invoices: res}
}

// ListInvoicesResponse wraps the list of invoices.
type ListInvoicesResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
}

// ListInvoicesParams defines query filters for listing invoices.
type ListInvoicesParams struct {
	ClientID string `form:"clientID"`
	Status   string `form:"status" binding:"omitempty,oneof=draft sent paid overdue cancelled"`
}
