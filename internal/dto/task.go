package dto

import (
	"time"

	"github.com/devenkhatri/billing-monk-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTaskRequest defines the data needed to create a task.
type CreateTaskRequest struct {
	ProjectID      string              `json:"projectID" binding:"required"`
	Title          string              `json:"title" binding:"required"`
	Description    string              `json:"description"`
	Priority       domain.TaskPriority `json:"priority" binding:"omitempty,oneof=low medium high"`
	EstimatedHours *decimal.Decimal    `json:"estimatedHours"`
	DueDate        *time.Time          `json:"dueDate"`
}

// UpdateTaskRequest defines the data allowed for updating a task.
// ActualHours and BillableHours are absent: they are derived from time
// entries and never accepted from callers.
type UpdateTaskRequest struct {
	Title          *string              `json:"title"`
	Description    *string              `json:"description"`
	Status         *domain.TaskStatus   `json:"status" binding:"omitempty,oneof=todo in_progress done"`
	Priority       *domain.TaskPriority `json:"priority" binding:"omitempty,oneof=low medium high"`
	EstimatedHours *decimal.Decimal     `json:"estimatedHours"`
	DueDate        *time.Time           `json:"dueDate"`
}

// TaskResponse defines the data returned for a task.
type TaskResponse struct {
	ID             string              `json:"id"`
	ProjectID      string              `json:"projectID"`
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	Status         domain.TaskStatus   `json:"status"`
	Priority       domain.TaskPriority `json:"priority"`
	EstimatedHours *decimal.Decimal    `json:"estimatedHours,omitempty"`
	ActualHours    decimal.Decimal     `json:"actualHours"`
	BillableHours  decimal.Decimal     `json:"billableHours"`
	DueDate        *time.Time          `json:"dueDate,omitempty"`
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
}

// ToTaskResponse converts a domain.Task to a TaskResponse DTO.
func ToTaskResponse(t *domain.Task) TaskResponse {
	return TaskResponse{
		ID:             t.ID,
		ProjectID:      t.ProjectID,
		Title:          t.Title,
		Description:    t.Description,
		Status:         t.Status,
		Priority:       t.Priority,
		EstimatedHours: t.EstimatedHours,
		ActualHours:    t.ActualHours,
		BillableHours:  t.BillableHours,
		DueDate:        t.DueDate,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

// ToListTasksResponse converts a slice of domain.Task to response DTOs.
func ToListTasksResponse(tasks []domain.Task) ListTasksResponse {
	res := make([]TaskResponse, len(tasks))
	for i := range tasks {
		res[i] = ToTaskResponse(&tasks[i])
	}
	return ListTasksResponse{Tasks: res}
}

// ListTasksResponse wraps the list of tasks.
type ListTasksResponse struct {
	Tasks []TaskResponse `json:"tasks"`
}

// ListTasksParams defines query filters for listing tasks.
type ListTasksParams struct {
	ProjectID string `form:"projectID"`
}
