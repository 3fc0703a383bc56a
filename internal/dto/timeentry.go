package dto

import (
	"time"

	"github.com/devenkhatri/billing-monk-sub000/internal/core/domain"
)

// CreateTimeEntryRequest defines the data needed to record time against a
// task. EndTime may be omitted for a running timer; DurationSeconds is
// derived from the start/end pair when both are present.
type CreateTimeEntryRequest struct {
	TaskID          string     `json:"taskID" binding:"required"`
	Description     string     `json:"description"`
	StartTime       time.Time  `json:"startTime" binding:"required"`
	EndTime         *time.Time `json:"endTime"`
	DurationSeconds int64      `json:"durationSeconds" binding:"omitempty,min=0"`
	IsBillable      bool       `json:"isBillable"`
}

// UpdateTimeEntryRequest defines the data allowed for updating a time entry.
type UpdateTimeEntryRequest struct {
	Description     *string    `json:"description"`
	StartTime       *time.Time `json:"startTime"`
	EndTime         *time.Time `json:"endTime"`
	DurationSeconds *int64     `json:"durationSeconds" binding:"omitempty,min=0"`
	IsBillable      *bool      `json:"isBillable"`
}

// TimeEntryResponse defines the data returned for a time entry.
type TimeEntryResponse struct {
	ID              string     `json:"id"`
	TaskID          string     `json:"taskID"`
	ProjectID       string     `json:"projectID"`
	Description     string     `json:"description"`
	StartTime       time.Time  `json:"startTime"`
	EndTime         *time.Time `json:"endTime,omitempty"`
	DurationSeconds int64      `json:"durationSeconds"`
	IsBillable      bool       `json:"isBillable"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// ToTimeEntryResponse converts a domain.TimeEntry to a TimeEntryResponse DTO.
func ToTimeEntryResponse(e *domain.TimeEntry) TimeEntryResponse {
	return TimeEntryResponse{
		ID:              e.ID,
		TaskID:          e.TaskID,
		ProjectID:       e.ProjectID,
		Description:     e.Description,
		StartTime:       e.StartTime,
		EndTime:         e.EndTime,
		DurationSeconds: e.DurationSeconds,
		IsBillable:      e.IsBillable,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

// ToListTimeEntriesResponse converts a slice of domain.TimeEntry to response DTOs.
func ToListTimeEntriesResponse(entries []domain.TimeEntry) ListTimeEntriesResponse {
	res := make([]TimeEntryResponse, len(entries))
	for i := range entries {
		res[i] = ToTimeEntryResponse(&entries[i])
	}
	return ListTimeEntriesResponse{TimeEntries: res}
}

// ListTimeEntriesResponse wraps the list of time entries.
type ListTimeEntriesResponse struct {
	TimeEntries []TimeEntryResponse `json:"timeEntries"`
}

// ListTimeEntriesParams defines query filters for listing time entries.
type ListTimeEntriesParams struct {
	TaskID    string `form:"taskID"`
	ProjectID string `form:"projectID"`
}
