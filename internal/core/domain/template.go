package domain

import "github.com/shopspring/decimal"

// Template is a reusable invoice shape: line items and a tax rate without
// client or date specifics.
type Template struct {
	ID          string          `json:"id"` // Primary Key (UUID)
	Name        string          `json:"name"`
	Description string          `json:"description"`
	LineItems   []LineItem      `json:"lineItems"`
	TaxRate     decimal.Decimal `json:"taxRate"`
	IsActive    bool            `json:"isActive"`
	Timestamps
}
