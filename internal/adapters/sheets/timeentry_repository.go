package sheets

import (
	"context"
	"fmt"

	"github.com/devenkhatri/billing-monk-sub000/internal/apperrors"
	"github.com/devenkhatri/billing-monk-sub000/internal/core/domain"
	portsrepo "github.com/devenkhatri/billing-monk-sub000/internal/core/ports/repositories"
)

// SheetTimeEntryRepository stores time entries one row per entry in the
// TimeEntries sheet.
type SheetTimeEntryRepository struct {
	store *Store
	cache *Cache[[]domain.TimeEntry]
}

func newSheetTimeEntryRepository(store *Store) *SheetTimeEntryRepository {
	return &SheetTimeEntryRepository{
		store: store,
		cache: NewCache[[]domain.TimeEntry](ttlDefault, cacheMaxEntries),
	}
}

var _ portsrepo.TimeEntryRepositoryFacade = (*SheetTimeEntryRepository)(nil)

func (r *SheetTimeEntryRepository) FindTimeEntries(ctx context.Context) ([]domain.TimeEntry, error) {
	if cached, ok := r.cache.Get(cacheKeyAll); ok {
		return cached, nil
	}
	rows, err := r.store.readRows(ctx, tableTimeEntries)
	if err != nil {
		return nil, fmt.Errorf("failed to read time entries: %w", err)
	}
	entries := make([]domain.TimeEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, rowToTimeEntry(row))
	}
	r.cache.Set(cacheKeyAll, entries)
	return entries, nil
}

func (r *SheetTimeEntryRepository) FindTimeEntryByID(ctx context.Context, entryID string) (*domain.TimeEntry, error) {
	entries, err := r.FindTimeEntries(ctx)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if entries[i].ID == entryID {
			entry := entries[i]
			return &entry, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *SheetTimeEntryRepository) FindTimeEntriesByTask(ctx context.Context, taskID string) ([]domain.TimeEntry, error) {
	entries, err := r.FindTimeEntries(ctx)
	if err != nil {
		return nil, err
	}
	matched := []domain.TimeEntry{}
	for _, e := range entries {
		if e.TaskID == taskID {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

func (r *SheetTimeEntryRepository) FindTimeEntriesByProject(ctx context.Context, projectID string) ([]domain.TimeEntry, error) {
	entries, err := r.FindTimeEntries(ctx)
	if err != nil {
		return nil, err
	}
	matched := []domain.TimeEntry{}
	for _, e := range entries {
		if e.ProjectID == projectID {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

func (r *SheetTimeEntryRepository) SaveTimeEntry(ctx context.Context, entry domain.TimeEntry) error {
	if err := r.store.appendRow(ctx, tableTimeEntries, timeEntryToRow(entry)); err != nil {
		return fmt.Errorf("failed to save time entry: %w", err)
	}
	r.InvalidateCache()
	return nil
}

func (r *SheetTimeEntryRepository) UpdateTimeEntry(ctx context.Context, entry domain.TimeEntry) error {
	rows, err := r.store.readRows(ctx, tableTimeEntries)
	if err != nil {
		return fmt.Errorf("failed to read time entries for update: %w", err)
	}
	idx := findRowIndex(rows, entry.ID)
	if idx < 0 {
		return fmt.Errorf("time entry %s: %w", entry.ID, apperrors.ErrNotFound)
	}
	if err := r.store.updateRow(ctx, tableTimeEntries, idx, timeEntryToRow(entry)); err != nil {
		return fmt.Errorf("failed to update time entry: %w", err)
	}
	r.InvalidateCache()
	return nil
}

func (r *SheetTimeEntryRepository) DeleteTimeEntry(ctx context.Context, entryID string) error {
	rows, err := r.store.readRows(ctx, tableTimeEntries)
	if err != nil {
		return fmt.Errorf("failed to read time entries for delete: %w", err)
	}
	idx := findRowIndex(rows, entryID)
	if idx < 0 {
		return fmt.Errorf("time entry %s: %w", entryID, apperrors.ErrNotFound)
	}
	if err := r.store.deleteRow(ctx, tableTimeEntries, idx); err != nil {
		return fmt.Errorf("failed to delete time entry: %w", err)
	}
	r.InvalidateCache()
	return nil
}

func (r *SheetTimeEntryRepository) DeleteTimeEntriesByTask(ctx context.Context, taskID string) (int, error) {
	n, err := r.store.deleteMatchingRows(ctx, tableTimeEntries, func(row []string) bool {
		return cellAt(row, 1) == taskID
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete time entries of task %s: %w", taskID, err)
	}
	if n > 0 {
		r.InvalidateCache()
	}
	return n, nil
}

// InvalidateCache drops the cached time entry listing.
func (r *SheetTimeEntryRepository) InvalidateCache() {
	r.cache.Delete(cacheKeyAll)
}
