package sheets

import (
	"context"
	"fmt"

	"github.com/devenkhatri/billing-monk-sub000/internal/apperrors"
	"github.com/devenkhatri/billing-monk-sub000/internal/core/domain"
	portsrepo "github.com/devenkhatri/billing-monk-sub000/internal/core/ports/repositories"
)

// SheetProjectRepository stores projects one row per project in the Projects
// sheet.
type SheetProjectRepository struct {
	store *Store
	cache *Cache[[]domain.Project]
}

func newSheetProjectRepository(store *Store) *SheetProjectRepository {
	return &SheetProjectRepository{
		store: store,
		cache: NewCache[[]domain.Project](ttlDefault, cacheMaxEntries),
	}
}

var _ portsrepo.ProjectRepositoryFacade = (*SheetProjectRepository)(nil)

func (r *SheetProjectRepository) FindProjects(ctx context.Context) ([]domain.Project, error) {
	if cached, ok := r.cache.Get(cacheKeyAll); ok {
		return cached, nil
	}
	rows, err := r.store.readRows(ctx, tableProjects)
	if err != nil {
		return nil, fmt.Errorf("failed to read projects: %w", err)
	}
	projects := make([]domain.Project, 0, len(rows))
	for _, row := range rows {
		projects = append(projects, rowToProject(row))
	}
	r.cache.Set(cacheKeyAll, projects)
	return projects, nil
}

func (r *SheetProjectRepository) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	projects, err := r.FindProjects(ctx)
	if err != nil {
		return nil, err
	}
	for i := range projects {
		if projects[i].ID == projectID {
			project := projects[i]
			return &project, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *SheetProjectRepository) SaveProject(ctx context.Context, project domain.Project) error {
	if err := r.store.appendRow(ctx, tableProjects, projectToRow(project)); err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}
	r.InvalidateCache()
	return nil
}

func (r *SheetProjectRepository) UpdateProject(ctx context.Context, project domain.Project) error {
	rows, err := r.store.readRows(ctx, tableProjects)
	if err != nil {
		return fmt.Errorf("failed to read projects for update: %w", err)
	}
	idx := findRowIndex(rows, project.ID)
	if idx < 0 {
		return fmt.Errorf("project %s: %w", project.ID, apperrors.ErrNotFound)
	}
	if err := r.store.updateRow(ctx, tableProjects, idx, projectToRow(project)); err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	r.InvalidateCache()
	return nil
}

func (r *SheetProjectRepository) DeleteProject(ctx context.Context, projectID string) error {
	rows, err := r.store.readRows(ctx, tableProjects)
	if err != nil {
		return fmt.Errorf("failed to read projects for delete: %w", err)
	}
	idx := findRowIndex(rows, projectID)
	if idx < 0 {
		return fmt.Errorf("project %s: %w", projectID, apperrors.ErrNotFound)
	}
	if err := r.store.deleteRow(ctx, tableProjects, idx); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	r.InvalidateCache()
	return nil
}

// InvalidateCache drops the cached project listing.
func (r *SheetProjectRepository) InvalidateCache() {
	r.cache.Delete(cacheKeyAll)
}
