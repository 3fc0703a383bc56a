package repositories

import (
	"context"

	"github.com/devenkhatri/billing-monk-sub000/internal/core/domain"
)

// TimeEntryReader defines read operations for time entries.
type TimeEntryReader interface {
	// FindTimeEntries retrieves every time entry.
	FindTimeEntries(ctx context.Context) ([]domain.TimeEntry, error)

	// FindTimeEntryByID retrieves a specific entry, or apperrors.ErrNotFound.
	FindTimeEntryByID(ctx context.Context, entryID string) (*domain.TimeEntry, error)

	// FindTimeEntriesByTask retrieves all entries recorded against a task.
	FindTimeEntriesByTask(ctx context.Context, taskID string) ([]domain.TimeEntry, error)

	// FindTimeEntriesByProject retrieves all entries recorded against a project.
	FindTimeEntriesByProject(ctx context.Context, projectID string) ([]domain.TimeEntry, error)
}

// TimeEntryWriter defines write operations for time entries.
type TimeEntryWriter interface {
	// SaveTimeEntry persists a new time entry.
	SaveTimeEntry(ctx context.Context, entry domain.TimeEntry) error

	// UpdateTimeEntry overwrites an existing entry's row.
	UpdateTimeEntry(ctx context.Context, entry domain.TimeEntry) error

	// DeleteTimeEntry removes an entry's row.
	DeleteTimeEntry(ctx context.Context, entryID string) error

	// DeleteTimeEntriesByTask removes every entry recorded against a task,
	// returning how many rows were removed.
	DeleteTimeEntriesByTask(ctx context.Context, taskID string) (int, error)
}

// TimeEntryRepositoryFacade combines all time entry repository interfaces.
type TimeEntryRepositoryFacade interface {
	TimeEntryReader
	TimeEntryWriter
}
