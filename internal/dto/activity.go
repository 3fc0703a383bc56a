package dto

import (
	"time"

	"github.com/devenkhatri/billing-monk-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ListActivityParams defines query filters and pagination for the activity
// log. Filters combine conjunctively.
type ListActivityParams struct {
	Type       string    `form:"type"`
	EntityType string    `form:"entityType"`
	EntityID   string    `form:"entityID"`
	UserID     string    `form:"userID"`
	Search     string    `form:"search"`
	StartDate  time.Time `form:"startDate" time_format:"2006-01-02"`
	EndDate    time.Time `form:"endDate" time_format:"2006-01-02"`
	Page       int       `form:"page,default=1" binding:"omitempty,min=1"`
	Limit      int       `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
}

// ActivityLogResponse defines the data returned for one activity log entry.
type ActivityLogResponse struct {
	ID            string            `json:"id"`
	Type          string            `json:"type"`
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

// ToActivityLogResponse converts a domain.ActivityLog to a response DTO.
func ToActivityLogResponse(a *domain.ActivityLog) ActivityLogResponse {
	return ActivityLogResponse{
		ID:            a.ID,
		Type:          string(a.Type),
		Description:   a.Description,
		EntityType:    a.EntityType,
		EntityID:      a.EntityID,
		EntityName:    a.EntityName,
		UserID:        a.UserID,
		UserEmail:     a.UserEmail,
		Amount:        a.Amount,
		PreviousValue: a.PreviousValue,
		NewValue:      a.NewValue,
		Metadata:      a.Metadata,
		Timestamp:     a.Timestamp,
	}
}

// ListActivityResponse wraps one page of the activity log, newest first.
type ListActivityResponse struct {
	Logs    []ActivityLogResponse `json:"logs"`
	Total   int                   `json:"total"`
	Page    int                   `json:"page"`
	Limit   int                   `json:"limit"`
	HasMore bool                  `json:"hasMore"`
}
