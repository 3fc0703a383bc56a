package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod indicates how a payment was made.
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "cash"
	PaymentCheck        PaymentMethod = "check"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentCard         PaymentMethod = "card"
	PaymentOther        PaymentMethod = "other"
)

// Payment records money received against an invoice. Creating or deleting a
// payment adjusts the parent invoice's paidAmount, balance and status.
type Payment struct {
	ID          string          `json:"id"` // Primary Key (UUID)
	InvoiceID   string          `json:"invoiceID"`
	Amount      decimal.Decimal `json:"amount"` // must be positive
	PaymentDate time.Time       `json:"paymentDate"`
	Method      PaymentMethod   `json:"method"`
	Reference   string          `json:"reference"`
	Notes       string          `json:"notes"`
	Timestamps
}
