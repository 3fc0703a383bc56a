package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

// requiredTables maps every table the store needs to its fixed header row.
var requiredTables = map[string][]string{
	tableClients:       clientColumns,
	tableInvoices:      invoiceColumns,
	tableInvoiceItems:  lineItemColumns,
	tablePayments:      paymentColumns,
	tableTemplates:     templateColumns,
	tableTemplateItems: lineItemColumns,
	tableProjects:      projectColumns,
	tableTasks:         taskColumns,
	tableTimeEntries:   timeEntryColumns,
	tableActivityLogs:  activityColumns,
}

// Bootstrapper ensures the required tables and header rows exist before any
// read or write. It is idempotent and additive-only: existing data is never
// touched, and a mismatched header row is repaired, not treated as fatal.
// Concurrent processes may race it harmlessly, at worst rewriting identical
// headers.
type Bootstrapper struct {
	api    API
	exec   *RetryExecutor
	logger *slog.Logger

	mu   sync.Mutex
	done bool
}

// NewBootstrapper builds a schema bootstrapper over the given API.
func NewBootstrapper(api API, exec *RetryExecutor, logger *slog.Logger) *Bootstrapper {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bootstrapper{api: api, exec: exec, logger: logger}
}

// Ensure runs the bootstrap once per process. Concurrent callers block on the
// first in-flight run; a failed run is retried by the next caller.
func (b *Bootstrapper) Ensure(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.done {
		return nil
	}
	if err := b.bootstrap(ctx); err != nil {
		return err
	}
	b.done = true
	return nil
}

func (b *Bootstrapper) bootstrap(ctx context.Context) error {
	var existing []string
	err := b.exec.Do(ctx, "schema.listSheets", func(ctx context.Context) error {
		var err error
		existing, err = b.api.ListSheets(ctx)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to list sheets: %w", err)
	}

	for table := range requiredTables {
		if slices.Contains(existing, table) {
			continue
		}
		b.logger.Info("creating missing sheet", slog.String("table", table))
		err := b.exec.Do(ctx, "schema.addSheet", func(ctx context.Context) error {
			return b.api.AddSheet(ctx, table)
		})
		if err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", table, err)
		}
	}

	for table, headers := range requiredTables {
		if err := b.ensureHeaders(ctx, table, headers); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bootstrapper) ensureHeaders(ctx context.Context, table string, headers []string) error {
	headerRange := fmt.Sprintf("%s!1:1", table)

	var rows [][]string
	err := b.exec.Do(ctx, "schema.readHeaders", func(ctx context.Context) error {
		var err error
		rows, err = b.api.GetRange(ctx, headerRange)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to read headers of %s: %w", table, err)
	}

	if len(rows) > 0 && slices.Equal(rows[0], headers) {
		return nil
	}
	if len(rows) > 0 {
		b.logger.Warn("repairing header row",
			slog.String("table", table),
			slog.Any("found", rows[0]),
		)
		// Overwriting a wider stale header with fewer columns would leave
		// the trailing cells behind, so blank the row first.
		err = b.exec.Do(ctx, "schema.clearHeaders", func(ctx context.Context) error {
			return b.api.ClearRange(ctx, headerRange)
		})
		if err != nil {
			return fmt.Errorf("failed to clear headers of %s: %w", table, err)
		}
	}

	err = b.exec.Do(ctx, "schema.writeHeaders", func(ctx context.Context) error {
		return b.api.UpdateRange(ctx, headerRange, [][]string{headers})
	})
	if err != nil {
		return fmt.Errorf("failed to write headers of %s: %w", table, err)
	}
	return nil
}
