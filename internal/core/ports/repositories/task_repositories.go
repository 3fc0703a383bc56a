package repositories

import (
	"context"

	"github.com/devenkhatri/billing-monk-sub000/internal/core/domain"
)

// TaskReader defines read operations for tasks.
type TaskReader interface {
	// FindTasks retrieves every task.
	FindTasks(ctx context.Context) ([]domain.Task, error)

	// FindTaskByID retrieves a specific task, or apperrors.ErrNotFound.
	FindTaskByID(ctx context.Context, taskID string) (*domain.Task, error)

	// FindTasksByProject retrieves all tasks belonging to a project.
	FindTasksByProject(ctx context.Context, projectID string) ([]domain.Task, error)
}

// TaskWriter defines write operations for tasks.
type TaskWriter interface {
	// SaveTask persists a new task.
	SaveTask(ctx context.Context, task domain.Task) error

	// UpdateTask overwrites an existing task's row.
	UpdateTask(ctx context.Context, task domain.Task) error

	// DeleteTask removes a task's row. Cascading to time entries is the
	// service layer's responsibility.
	DeleteTask(ctx context.Context, taskID string) error
}

// TaskRepositoryFacade combines all task repository interfaces.
type TaskRepositoryFacade interface {
	TaskReader
	TaskWriter
}
