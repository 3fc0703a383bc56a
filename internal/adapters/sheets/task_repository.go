package sheets

import (
	"context"
	"fmt"

	"github.com/devenkhatri/billing-monk-sub000/internal/apperrors"
	"github.com/devenkhatri/billing-monk-sub000/internal/core/domain"
	portsrepo "github.com/devenkhatri/billing-monk-sub000/internal/core/ports/repositories"
)

// SheetTaskRepository stores tasks one row per task in the Tasks sheet.
type SheetTaskRepository struct {
	store *Store
	cache *Cache[[]domain.Task]
}

func newSheetTaskRepository(store *Store) *SheetTaskRepository {
	return &SheetTaskRepository{
		store: store,
		cache: NewCache[[]domain.Task](ttlDefault, cacheMaxEntries),
	}
}

var _ portsrepo.TaskRepositoryFacade = (*SheetTaskRepository)(nil)

func (r *SheetTaskRepository) FindTasks(ctx context.Context) ([]domain.Task, error) {
	if cached, ok := r.cache.Get(cacheKeyAll); ok {
		return cached, nil
	}
	rows, err := r.store.readRows(ctx, tableTasks)
	if err != nil {
		return nil, fmt.Errorf("failed to read tasks: %w", err)
	}
	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, rowToTask(row))
	}
	r.cache.Set(cacheKeyAll, tasks)
	return tasks, nil
}

func (r *SheetTaskRepository) FindTaskByID(ctx context.Context, taskID string) (*domain.Task, error) {
	tasks, err := r.FindTasks(ctx)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		if tasks[i].ID == taskID {
			task := tasks[i]
			return &task, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *SheetTaskRepository) FindTasksByProject(ctx context.Context, projectID string) ([]domain.Task, error) {
	tasks, err := r.FindTasks(ctx)
	if err != nil {
		return nil, err
	}
	matched := []domain.Task{}
	for _, t := range tasks {
		if t.ProjectID == projectID {
			matched = append(matched, t)
		}
	}
	return matched, nil
}

func (r *SheetTaskRepository) SaveTask(ctx context.Context, task domain.Task) error {
	if err := r.store.appendRow(ctx, tableTasks, taskToRow(task)); err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}
	r.InvalidateCache()
	return nil
}

func (r *SheetTaskRepository) UpdateTask(ctx context.Context, task domain.Task) error {
	rows, err := r.store.readRows(ctx, tableTasks)
	if err != nil {
		return fmt.Errorf("failed to read tasks for update: %w", err)
	}
	idx := findRowIndex(rows, task.ID)
	if idx < 0 {
		return fmt.Errorf("task %s: %w", task.ID, apperrors.ErrNotFound)
	}
	if err := r.store.updateRow(ctx, tableTasks, idx, taskToRow(task)); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	r.InvalidateCache()
	return nil
}

func (r *SheetTaskRepository) DeleteTask(ctx context.Context, taskID string) error {
	rows, err := r.store.readRows(ctx, tableTasks)
	if err != nil {
		return fmt.Errorf("failed to read tasks for delete: %w", err)
	}
	idx := findRowIndex(rows, taskID)
	if idx < 0 {
		return fmt.Errorf("task %s: %w", taskID, apperrors.ErrNotFound)
	}
	if err := r.store.deleteRow(ctx, tableTasks, idx); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	r.InvalidateCache()
	return nil
}

// InvalidateCache drops the cached task listing.
func (r *SheetTaskRepository) InvalidateCache() {
	r.cache.Delete(cacheKeyAll)
}
