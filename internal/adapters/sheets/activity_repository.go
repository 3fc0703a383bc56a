package sheets

import (
	"context"
	"fmt"

	"github.com/devenkhatri/billing-monk-sub000/internal/core/domain"
	portsrepo "github.com/devenkhatri/billing-monk-sub000/internal/core/ports/repositories"
)

// SheetActivityRepository stores the append-only activity log in the
// ActivityLogs sheet. Queries read the whole table into memory; writes never
// read before appending. No cache: every query wants the freshest log.
type SheetActivityRepository struct {
	store *Store
}

func newSheetActivityRepository(store *Store) *SheetActivityRepository {
	return &SheetActivityRepository{store: store}
}

var _ portsrepo.ActivityRepositoryFacade = (*SheetActivityRepository)(nil)

func (r *SheetActivityRepository) FindActivityLogs(ctx context.Context) ([]domain.ActivityLog, error) {
	rows, err := r.store.readRows(ctx, tableActivityLogs)
	if err != nil {
		return nil, fmt.Errorf("failed to read activity logs: %w", err)
	}
	logs := make([]domain.ActivityLog, 0, len(rows))
	for _, row := range rows {
		logs = append(logs, rowToActivity(row))
	}
	return logs, nil
}

func (r *SheetActivityRepository) SaveActivityLog(ctx context.Context, log domain.ActivityLog) error {
	if err := r.store.appendRow(ctx, tableActivityLogs, activityToRow(log)); err != nil {
		return fmt.Errorf("failed to append activity log: %w", err)
	}
	return nil
}
