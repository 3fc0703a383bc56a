package sheets

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

// fakeAPI is an in-memory spreadsheet implementing API for tests. Each sheet
// holds its rows including the header; structural row deletes shift
// subsequent rows up exactly like the remote service does.
type fakeAPI struct {
	mu     sync.Mutex
	sheets map[string][][]string
	titles []string
	calls  []string

	// failures queues one-shot errors per method name.
	failures map[string][]error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		sheets:   make(map[string][][]string),
		failures: make(map[string][]error),
	}
}

// seed installs a sheet with the given header and data rows, bypassing the API.
func (f *fakeAPI) seed(title string, header []string, rows ...[]string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.sheets[title]; !ok {
		f.titles = append(f.titles, title)
	}
	sheet := [][]string{slices.Clone(header)}
	for _, row := range rows {
		sheet = append(sheet, slices.Clone(row))
	}
	f.sheets[title] = sheet
}

// rows returns a copy of a sheet's rows, header included.
func (f *fakeAPI) rows(title string) [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	sheet := f.sheets[title]
	out := make([][]string, len(sheet))
	for i, row := range sheet {
		out[i] = slices.Clone(row)
	}
	return out
}

// failOnce makes the next call to the named method return err.
func (f *fakeAPI) failOnce(method string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[method] = append(f.failures[method], err)
}

func (f *fakeAPI) callCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == method {
			n++
		}
	}
	return n
}

func (f *fakeAPI) record(method string) error {
	f.calls = append(f.calls, method)
	if q := f.failures[method]; len(q) > 0 {
		err := q[0]
		f.failures[method] = q[1:]
		return err
	}
	return nil
}

// parseRange splits "Title!A2:Z" into the sheet title and the cell part.
func parseFakeRange(rangeA1 string) (title, cells string, err error) {
	title, cells, ok := strings.Cut(rangeA1, "!")
	if !ok {
		return "", "", fmt.Errorf("fake: range %q has no sheet title", rangeA1)
	}
	return title, cells, nil
}

// rowBounds resolves the cell part of a range to [start, end) row indices
// over the sheet's rows (zero-based, header included). An open-ended range
// like "A2:Z" runs to the end of the sheet.
func rowBounds(cells string, sheetLen int) (start, end int, err error) {
	switch {
	case cells == "1:1":
		return 0, min(1, sheetLen), nil
	case cells == "A:Z":
		return 0, sheetLen, nil
	case strings.HasSuffix(cells, ":Z"):
		n, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSuffix(cells, ":Z"), "A"))
		if err != nil {
			return 0, 0, fmt.Errorf("fake: cannot parse range %q", cells)
		}
		return n - 1, sheetLen, nil
	default:
		// Single-row range "A5:Z5".
		parts := strings.SplitN(cells, ":", 2)
		if len(parts) != 2 {
			return 0, 0, fmt.Errorf("fake: cannot parse range %q", cells)
		}
		n, err := strconv.Atoi(strings.TrimPrefix(parts[0], "A"))
		if err != nil {
			return 0, 0, fmt.Errorf("fake: cannot parse range %q", cells)
		}
		return n - 1, n, nil
	}
}

func (f *fakeAPI) GetRange(_ context.Context, rangeA1 string) ([][]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("GetRange"); err != nil {
		return nil, err
	}
	title, cells, err := parseFakeRange(rangeA1)
	if err != nil {
		return nil, err
	}
	sheet, ok := f.sheets[title]
	if !ok {
		return nil, fmt.Errorf("fake: unknown sheet %q", title)
	}
	start, end, err := rowBounds(cells, len(sheet))
	if err != nil {
		return nil, err
	}
	if start >= len(sheet) {
		return nil, nil
	}
	out := make([][]string, 0, end-start)
	for _, row := range sheet[start:end] {
		out = append(out, slices.Clone(row))
	}
	return out, nil
}

func (f *fakeAPI) UpdateRange(_ context.Context, rangeA1 string, values [][]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("UpdateRange"); err != nil {
		return err
	}
	title, cells, err := parseFakeRange(rangeA1)
	if err != nil {
		return err
	}
	sheet, ok := f.sheets[title]
	if !ok {
		return fmt.Errorf("fake: unknown sheet %q", title)
	}
	start, _, err := rowBounds(cells, len(sheet))
	if err != nil {
		return err
	}
	for i, row := range values {
		for len(sheet) <= start+i {
			sheet = append(sheet, nil)
		}
		sheet[start+i] = slices.Clone(row)
	}
	f.sheets[title] = sheet
	return nil
}

func (f *fakeAPI) AppendRange(_ context.Context, rangeA1 string, values [][]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("AppendRange"); err != nil {
		return err
	}
	title, _, err := parseFakeRange(rangeA1)
	if err != nil {
		return err
	}
	sheet, ok := f.sheets[title]
	if !ok {
		return fmt.Errorf("fake: unknown sheet %q", title)
	}
	for _, row := range values {
		sheet = append(sheet, slices.Clone(row))
	}
	f.sheets[title] = sheet
	return nil
}

func (f *fakeAPI) ClearRange(_ context.Context, rangeA1 string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("ClearRange"); err != nil {
		return err
	}
	title, cells, err := parseFakeRange(rangeA1)
	if err != nil {
		return err
	}
	sheet, ok := f.sheets[title]
	if !ok {
		return fmt.Errorf("fake: unknown sheet %q", title)
	}
	start, end, err := rowBounds(cells, len(sheet))
	if err != nil {
		return err
	}
	for i := start; i < end && i < len(sheet); i++ {
		sheet[i] = nil
	}
	return nil
}

func (f *fakeAPI) ListSheets(_ context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("ListSheets"); err != nil {
		return nil, err
	}
	return slices.Clone(f.titles), nil
}

func (f *fakeAPI) AddSheet(_ context.Context, title string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("AddSheet"); err != nil {
		return err
	}
	if _, ok := f.sheets[title]; ok {
		return fmt.Errorf("fake: sheet %q already exists", title)
	}
	f.sheets[title] = [][]string{}
	f.titles = append(f.titles, title)
	return nil
}

func (f *fakeAPI) DeleteRows(_ context.Context, title string, start, end int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("DeleteRows"); err != nil {
		return err
	}
	sheet, ok := f.sheets[title]
	if !ok {
		return fmt.Errorf("fake: unknown sheet %q", title)
	}
	if start < 0 || end > int64(len(sheet)) || start >= end {
		return fmt.Errorf("fake: delete range [%d, %d) out of bounds for %q", start, end, title)
	}
	f.sheets[title] = append(sheet[:start], sheet[end:]...)
	return nil
}

var _ API = (*fakeAPI)(nil)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestExec builds an executor that never actually sleeps.
func newTestExec() *RetryExecutor {
	exec := NewRetryExecutor(RetryConfig{MinInterval: time.Nanosecond}, testLogger())
	exec.sleep = func(context.Context, time.Duration) error { return nil }
	return exec
}

func newTestStore(api API) *Store {
	exec := newTestExec()
	boot := NewBootstrapper(api, exec, testLogger())
	return NewStore(api, exec, boot, testLogger())
}
