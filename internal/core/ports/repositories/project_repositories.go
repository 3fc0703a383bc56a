package repositories

import (
	"context"

	"github.com/devenkhatri/billing-monk-sub000/internal/core/domain"
)

// ProjectReader defines read operations for projects.
type ProjectReader interface {
	// FindProjects retrieves every project.
	FindProjects(ctx context.Context) ([]domain.Project, error)

	// FindProjectByID retrieves a specific project, or apperrors.ErrNotFound.
	FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error)
}

// ProjectWriter defines write operations for projects.
type ProjectWriter interface {
	// SaveProject persists a new project.
	SaveProject(ctx context.Context, project domain.Project) error

	// UpdateProject overwrites an existing project's row.
	UpdateProject(ctx context.Context, project domain.Project) error

	// DeleteProject removes a project's row. Cascading to tasks and time
	// entries is the service layer's responsibility.
	DeleteProject(ctx context.Context, projectID string) error
}

// ProjectRepositoryFacade combines all project repository interfaces.
type ProjectRepositoryFacade interface {
	ProjectReader
	ProjectWriter
}
