package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ActivityType categorizes an activity log entry.
type ActivityType string

const (
	ActivityCreated         ActivityType = "created"
	ActivityUpdated         ActivityType = "updated"
	ActivityDeleted         ActivityType = "deleted"
	ActivityPaymentReceived ActivityType = "payment_received"
	ActivityPaymentRemoved  ActivityType = "payment_removed"
	ActivityInvoiceSent     ActivityType = "invoice_sent"
	ActivityRecurringFired  ActivityType = "recurring_generated"
)

// ActivityLog is an append-only audit record. The core never mutates or
// deletes log rows.
type ActivityLog struct {
	ID            string            `json:"id"` // Primary Key (UUID)
	Type          ActivityType      `json:"type"`
	Description   string            `json:"description"`
	EntityType    string            `json:"entityType"`
	EntityID      string            `json:"entityID"`
	EntityName    string            `json:"entityName"`
	UserID        string            `json:"userID"`
	UserEmail     string            `json:"userEmail"`
	Amount        *decimal.Decimal  `json:"amount,omitempty"`
	PreviousValue string            `json:"previousValue,omitempty"`
	NewValue      string            `json:"newValue,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
	Timestamp     time.Time         `json:"timestamp"`
}
