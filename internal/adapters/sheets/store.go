package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"
)

// Default cache TTLs per collection volatility.
const (
	ttlTemplates = 15 * time.Minute
	ttlInvoices  = 5 * time.Minute
	ttlPayments  = 5 * time.Minute
	ttlDefault   = 2 * time.Minute

	cacheMaxEntries = 50
)

// cacheKeyAll is the key under which a collection's full listing is cached.
const cacheKeyAll = "all"

// Store bundles everything the entity repositories need to speak to the
// remote spreadsheet: the raw API, the retry executor that wraps every call,
// and the schema bootstrapper consulted before the first access.
type Store struct {
	api    API
	exec   *RetryExecutor
	boot   *Bootstrapper
	logger *slog.Logger
}

// NewStore composes a Store. A nil logger falls back to slog.Default.
func NewStore(api API, exec *RetryExecutor, boot *Bootstrapper, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{api: api, exec: exec, boot: boot, logger: logger}
}

// readRows returns every data row of the table (header excluded).
func (s *Store) readRows(ctx context.Context, table string) ([][]string, error) {
	if err := s.boot.Ensure(ctx); err != nil {
		return nil, err
	}
	var rows [][]string
	err := s.exec.Do(ctx, table+".read", func(ctx context.Context) error {
		var err error
		rows, err = s.api.GetRange(ctx, fmt.Sprintf("%s!A2:Z", table))
		return err
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// findRowIndex locates the data row whose first cell equals id. Returns -1
// when absent. Lookup is a linear scan; table sizes here are business-scale,
// not web-scale.
func findRowIndex(rows [][]string, id string) int {
	for i, row := range rows {
		if len(row) > 0 && row[0] == id {
			return i
		}
	}
	return -1
}

// appendRow appends a single encoded row to the end of the table.
func (s *Store) appendRow(ctx context.Context, table string, row []string) error {
	return s.appendRows(ctx, table, [][]string{row})
}

// appendRows appends several encoded rows in one remote call.
func (s *Store) appendRows(ctx context.Context, table string, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	if err := s.boot.Ensure(ctx); err != nil {
		return err
	}
	return s.exec.Do(ctx, table+".append", func(ctx context.Context) error {
		return s.api.AppendRange(ctx, fmt.Sprintf("%s!A:Z", table), rows)
	})
}

// updateRow overwrites exactly one data row. rowIdx is the zero-based index
// into the data rows (row 0 lives at spreadsheet row 2, under the header).
func (s *Store) updateRow(ctx context.Context, table string, rowIdx int, row []string) error {
	if err := s.boot.Ensure(ctx); err != nil {
		return err
	}
	sheetRow := rowIdx + 2
	rangeA1 := fmt.Sprintf("%s!A%d:Z%d", table, sheetRow, sheetRow)
	return s.exec.Do(ctx, table+".update", func(ctx context.Context) error {
		return s.api.UpdateRange(ctx, rangeA1, [][]string{row})
	})
}

// deleteRow structurally removes one data row, shifting subsequent rows up.
func (s *Store) deleteRow(ctx context.Context, table string, rowIdx int) error {
	if err := s.boot.Ensure(ctx); err != nil {
		return err
	}
	// +1 for the header row; DeleteRows takes [start, end) zero-based.
	start := int64(rowIdx + 1)
	return s.exec.Do(ctx, table+".deleteRow", func(ctx context.Context) error {
		return s.api.DeleteRows(ctx, table, start, start+1)
	})
}

// deleteMatchingRows removes every data row for which match returns true.
// Deletions are issued in reverse index order: each structural delete shifts
// all subsequent row indices, so ascending order would invalidate the later
// indices within the same batch.
func (s *Store) deleteMatchingRows(ctx context.Context, table string, match func([]string) bool) (int, error) {
	rows, err := s.readRows(ctx, table)
	if err != nil {
		return 0, err
	}
	var indices []int
	for i, row := range rows {
		if match(row) {
			indices = append(indices, i)
		}
	}
	slices.Reverse(indices)
	for _, idx := range indices {
		if err := s.deleteRow(ctx, table, idx); err != nil {
			return 0, err
		}
	}
	return len(indices), nil
}
