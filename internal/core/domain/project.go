package domain

import "time"

// ProjectStatus indicates the state of a project.
type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectOnHold    ProjectStatus = "on_hold"
	ProjectCompleted ProjectStatus = "completed"
	ProjectCancelled ProjectStatus = "cancelled"
)

// Project groups tasks for a client. Deleting a project cascades to its
// tasks and their time entries.
type Project struct {
	ID          string        `json:"id"` // Primary Key (UUID)
	Name        string        `json:"name"`
	ClientID    string        `json:"clientID"`
	Description string        `json:"description"`
	Status      ProjectStatus `json:"status"`
	StartDate   time.Time     `json:"startDate"`
	EndDate     *time.Time    `json:"endDate,omitempty"`
	Timestamps
}
