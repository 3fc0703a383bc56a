package sheets

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/oauth2/google"
	sheetsv4 "google.golang.org/api/sheets/v4"

	"google.golang.org/api/option"
)

// API is the minimal surface this package needs from the remote spreadsheet.
// All cell values are strings at this boundary; typed encoding/decoding is
// the row codec's job. Row indices are zero-based and include the header row.
type API interface {
	// GetRange reads all rows in an A1-style range, e.g. "Clients!A2:Z".
	GetRange(ctx context.Context, rangeA1 string) ([][]string, error)
	// UpdateRange overwrites the cells in an A1-style range.
	UpdateRange(ctx context.Context, rangeA1 string, values [][]string) error
	// AppendRange appends rows after the last data row of the table.
	AppendRange(ctx context.Context, rangeA1 string, values [][]string) error
	// ClearRange blanks the cells in an A1-style range.
	ClearRange(ctx context.Context, rangeA1 string) error
	// ListSheets returns the titles of all sheets in the spreadsheet.
	ListSheets(ctx context.Context) ([]string, error)
	// AddSheet creates a new, empty sheet with the given title.
	AddSheet(ctx context.Context, title string) error
	// DeleteRows structurally removes rows [start, end) from the named sheet.
	DeleteRows(ctx context.Context, title string, start, end int64) error
}

// googleAPI implements API against the Google Sheets v4 service.
type googleAPI struct {
	svc           *sheetsv4.Service
	spreadsheetID string

	mu       sync.Mutex
	sheetIDs map[string]int64 // title -> sheetId, refreshed on miss
}

// NewGoogleAPI builds an API over a Google Sheets service authenticated with
// a service-account credential.
func NewGoogleAPI(ctx context.Context, spreadsheetID string, credentialsJSON []byte) (API, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet ID cannot be empty")
	}
	conf, err := google.JWTConfigFromJSON(credentialsJSON, sheetsv4.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account credentials: %w", err)
	}
	svc, err := sheetsv4.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &googleAPI{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetIDs:      make(map[string]int64),
	}, nil
}

func (g *googleAPI) GetRange(ctx context.Context, rangeA1 string) ([][]string, error) {
	resp, err := g.svc.Spreadsheets.Values.Get(g.spreadsheetID, rangeA1).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	rows := make([][]string, len(resp.Values))
	for i, raw := range resp.Values {
		row := make([]string, len(raw))
		for j, cell := range raw {
			row[j] = fmt.Sprint(cell)
		}
		rows[i] = row
	}
	return rows, nil
}

func (g *googleAPI) UpdateRange(ctx context.Context, rangeA1 string, values [][]string) error {
	_, err := g.svc.Spreadsheets.Values.
		Update(g.spreadsheetID, rangeA1, toValueRange(values)).
		ValueInputOption("RAW").
		Context(ctx).Do()
	return err
}

func (g *googleAPI) AppendRange(ctx context.Context, rangeA1 string, values [][]string) error {
	_, err := g.svc.Spreadsheets.Values.
		Append(g.spreadsheetID, rangeA1, toValueRange(values)).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	return err
}

func (g *googleAPI) ClearRange(ctx context.Context, rangeA1 string) error {
	_, err := g.svc.Spreadsheets.Values.
		Clear(g.spreadsheetID, rangeA1, &sheetsv4.ClearValuesRequest{}).
		Context(ctx).Do()
	return err
}

func (g *googleAPI) ListSheets(ctx context.Context) ([]string, error) {
	ids, err := g.refreshSheetIDs(ctx)
	if err != nil {
		return nil, err
	}
	titles := make([]string, 0, len(ids))
	for title := range ids {
		titles = append(titles, title)
	}
	return titles, nil
}

func (g *googleAPI) AddSheet(ctx context.Context, title string) error {
	req := &sheetsv4.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsv4.Request{{
			AddSheet: &sheetsv4.AddSheetRequest{
				Properties: &sheetsv4.SheetProperties{Title: title},
			},
		}},
	}
	_, err := g.svc.Spreadsheets.BatchUpdate(g.spreadsheetID, req).Context(ctx).Do()
	if err != nil {
		return err
	}
	// Force a sheetId refresh on next structural operation.
	g.mu.Lock()
	g.sheetIDs = make(map[string]int64)
	g.mu.Unlock()
	return nil
}

func (g *googleAPI) DeleteRows(ctx context.Context, title string, start, end int64) error {
	sheetID, err := g.sheetID(ctx, title)
	if err != nil {
		return err
	}
	req := &sheetsv4.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsv4.Request{{
			DeleteDimension: &sheetsv4.DeleteDimensionRequest{
				Range: &sheetsv4.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: start,
					EndIndex:   end,
				},
			},
		}},
	}
	_, err = g.svc.Spreadsheets.BatchUpdate(g.spreadsheetID, req).Context(ctx).Do()
	return err
}

func (g *googleAPI) sheetID(ctx context.Context, title string) (int64, error) {
	g.mu.Lock()
	id, ok := g.sheetIDs[title]
	g.mu.Unlock()
	if ok {
		return id, nil
	}
	ids, err := g.refreshSheetIDs(ctx)
	if err != nil {
		return 0, err
	}
	id, ok = ids[title]
	if !ok {
		return 0, fmt.Errorf("sheet %q not found in spreadsheet", title)
	}
	return id, nil
}

func (g *googleAPI) refreshSheetIDs(ctx context.Context) (map[string]int64, error) {
	resp, err := g.svc.Spreadsheets.Get(g.spreadsheetID).
		Fields("sheets.properties.sheetId", "sheets.properties.title").
		Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	ids := make(map[string]int64, len(resp.Sheets))
	for _, sh := range resp.Sheets {
		if sh.Properties != nil {
			ids[sh.Properties.Title] = sh.Properties.SheetId
		}
	}
	g.mu.Lock()
	g.sheetIDs = ids
	g.mu.Unlock()
	return ids, nil
}

func toValueRange(values [][]string) *sheetsv4.ValueRange {
	rows := make([][]interface{}, len(values))
	for i, row := range values {
		cells := make([]interface{}, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		rows[i] = cells
	}
	return &sheetsv4.ValueRange{Values: rows}
}
