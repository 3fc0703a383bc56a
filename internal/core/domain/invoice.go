package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus indicates where an invoice is in its lifecycle.
type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "draft"
	InvoiceSent      InvoiceStatus = "sent"
	InvoicePaid      InvoiceStatus = "paid"
	InvoiceOverdue   InvoiceStatus = "overdue"
	InvoiceCancelled InvoiceStatus = "cancelled"
)

// Frequency is the unit of a recurring schedule.
type Frequency string

const (
	Weekly    Frequency = "weekly"
	Monthly   Frequency = "monthly"
	Quarterly Frequency = "quarterly"
	Yearly    Frequency = "yearly"
)

// LineItem is a single billable line on an invoice or template.
// Amount is always derived from Quantity and Rate, never authoritative
// from storage.
type LineItem struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
}

// RecurringSchedule drives automatic generation of follow-on invoices.
type RecurringSchedule struct {
	Frequency       Frequency  `json:"frequency"`
	Interval        int        `json:"interval"` // every N frequency units, >= 1
	StartDate       time.Time  `json:"startDate"`
	EndDate         *time.Time `json:"endDate,omitempty"`
	NextInvoiceDate time.Time  `json:"nextInvoiceDate"`
	IsActive        bool       `json:"isActive"`
}

// NextOccurrence advances from the current NextInvoiceDate by Interval units
// of Frequency. Advancing from the scheduled date rather than from "now"
// keeps the cadence stable under delayed processing.
func (s RecurringSchedule) NextOccurrence() time.Time {
	interval := s.Interval
	if interval < 1 {
		interval = 1
	}
	switch s.Frequency {
	case Weekly:
		return s.NextInvoiceDate.AddDate(0, 0, 7*interval)
	case Quarterly:
		return s.NextInvoiceDate.AddDate(0, 3*interval, 0)
	case Yearly:
		return s.NextInvoiceDate.AddDate(interval, 0, 0)
	default: // Monthly
		return s.NextInvoiceDate.AddDate(0, interval, 0)
	}
}

// IsDue reports whether the schedule should fire at the given instant.
func (s RecurringSchedule) IsDue(now time.Time) bool {
	if !s.IsActive {
		return false
	}
	if s.EndDate != nil && !s.EndDate.After(now) {
		return false
	}
	return !s.NextInvoiceDate.After(now)
}

// Invoice is a bill issued to a client. Subtotal, TaxAmount, Total and
// Balance are derived fields, recomputed on every write.
type Invoice struct {
	ID            string             `json:"id"` // Primary Key (UUID)
	InvoiceNumber string             `json:"invoiceNumber"`
	ClientID      string             `json:"clientID"`
	Status        InvoiceStatus      `json:"status"`
	IssueDate     time.Time          `json:"issueDate"`
	DueDate       time.Time          `json:"dueDate"`
	LineItems     []LineItem         `json:"lineItems"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	TaxRate       decimal.Decimal    `json:"taxRate"` // percentage, e.g. 10 for 10%
	TaxAmount     decimal.Decimal    `json:"taxAmount"`
	Total         decimal.Decimal    `json:"total"`
	PaidAmount    decimal.Decimal    `json:"paidAmount"`
	Balance       decimal.Decimal    `json:"balance"`
	Notes         string             `json:"notes"`
	IsRecurring   bool               `json:"isRecurring"`
	Recurring     *RecurringSchedule `json:"recurringSchedule,omitempty"`
	Timestamps
}

var oneHundred = decimal.NewFromInt(100)

// Recalculate rederives line amounts, subtotal, tax, total and balance so
// that total == subtotal + taxAmount and balance == total - paidAmount hold.
func (inv *Invoice) Recalculate() {
	subtotal := decimal.Zero
	for i := range inv.LineItems {
		inv.LineItems[i].Amount = inv.LineItems[i].Quantity.Mul(inv.LineItems[i].Rate)
		subtotal = subtotal.Add(inv.LineItems[i].Amount)
	}
	inv.Subtotal = subtotal
	inv.TaxAmount = subtotal.Mul(inv.TaxRate).Div(oneHundred)
	inv.Total = inv.Subtotal.Add(inv.TaxAmount)
	inv.Balance = inv.Total.Sub(inv.PaidAmount)
}

// ApplyPaidAmount sets the paid amount (clamped at zero), rederives the
// balance, and settles the status: paid once the balance reaches zero, sent
// when a draft invoice has received a payment, overdue when an unpaid
// balance is past its due date.
func (inv *Invoice) ApplyPaidAmount(paid decimal.Decimal, now time.Time) {
	if paid.IsNegative() {
		paid = decimal.Zero
	}
	inv.PaidAmount = paid
	inv.Balance = inv.Total.Sub(inv.PaidAmount)

	switch {
	case inv.Balance.LessThanOrEqual(decimal.Zero) && (inv.PaidAmount.IsPositive() || inv.Total.IsPositive()):
		inv.Status = InvoicePaid
	case inv.PaidAmount.IsPositive() && inv.Status == InvoiceDraft:
		inv.Status = InvoiceSent
	case inv.Balance.IsPositive() && now.After(inv.DueDate) && inv.Status != InvoiceDraft && inv.Status != InvoiceCancelled:
		inv.Status = InvoiceOverdue
	case inv.Status == InvoicePaid && inv.Balance.IsPositive():
		// A payment was removed; the invoice is open again.
		inv.Status = InvoiceSent
	}
}
