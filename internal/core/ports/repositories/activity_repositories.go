package repositories

import (
	"context"

	"github.com/devenkhatri/billing-monk-sub000/internal/core/domain"
)

// ActivityReader defines read operations for the append-only activity log.
type ActivityReader interface {
	// FindActivityLogs retrieves the entire log; filtering, sorting and
	// pagination happen in memory at the service layer.
	FindActivityLogs(ctx context.Context) ([]domain.ActivityLog, error)
}

// ActivityWriter defines the single write operation for the activity log.
// Log rows are never mutated or deleted by the core.
type ActivityWriter interface {
	// SaveActivityLog appends a log entry. It never reads before writing.
	SaveActivityLog(ctx context.Context, log domain.ActivityLog) error
}

// ActivityRepositoryFacade combines the activity log repository interfaces.
type ActivityRepositoryFacade interface {
	ActivityReader
	ActivityWriter
}
