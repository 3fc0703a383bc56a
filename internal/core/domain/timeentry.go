package domain

import "time"

// TimeEntry records a stretch of work on a task. DurationSeconds drives the
// parent task's hour recomputation.
type TimeEntry struct {
	ID              string     `json:"id"` // Primary Key (UUID)
	TaskID          string     `json:"taskID"`
	ProjectID       string     `json:"projectID"`
	Description     string     `json:"description"`
	StartTime       time.Time  `json:"startTime"`
	EndTime         *time.Time `json:"endTime,omitempty"` // nil while the timer is running
	DurationSeconds int64      `json:"durationSeconds"`
	IsBillable      bool       `json:"isBillable"`
	Timestamps
}
