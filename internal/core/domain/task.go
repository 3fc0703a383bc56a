package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaskStatus indicates the state of a task.
type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
)

// TaskPriority ranks a task's urgency.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// Task is a unit of work within a project. ActualHours and BillableHours are
// derived from the task's time entries and recomputed on every time entry
// mutation.
type Task struct {
	ID             string           `json:"id"` // Primary Key (UUID)
	ProjectID      string           `json:"projectID"`
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	Status         TaskStatus       `json:"status"`
	Priority       TaskPriority     `json:"priority"`
	EstimatedHours *decimal.Decimal `json:"estimatedHours,omitempty"`
	ActualHours    decimal.Decimal  `json:"actualHours"`
	BillableHours  decimal.Decimal  `json:"billableHours"`
	DueDate        *time.Time       `json:"dueDate,omitempty"`
	Timestamps
}

var secondsPerHour = decimal.NewFromInt(3600)

// RecomputeHours rederives ActualHours and BillableHours from the full set
// of the task's time entries.
func (t *Task) RecomputeHours(entries []TimeEntry) {
	actual := decimal.Zero
	billable := decimal.Zero
	for _, e := range entries {
		hours := decimal.NewFromInt(e.DurationSeconds).Div(secondsPerHour)
		actual = actual.Add(hours)
		if e.IsBillable {
			billable = billable.Add(hours)
		}
	}
	t.ActualHours = actual
	t.BillableHours = billable
}
