package sheets

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/devenkhatri/billing-monk-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Sheet (table) names within the spreadsheet.
const (
	tableClients       = "Clients"
	tableInvoices      = "Invoices"
	tableInvoiceItems  = "InvoiceLineItems"
	tablePayments      = "Payments"
	tableTemplates     = "Templates"
	tableTemplateItems = "TemplateLineItems"
	tableProjects      = "Projects"
	tableTasks         = "Tasks"
	tableTimeEntries   = "TimeEntries"
	tableActivityLogs  = "ActivityLogs"
)

// Fixed column orders per table. The codec addresses cells positionally, so
// changing an order here is a schema change and must match the header row
// written by the bootstrapper.
var (
	clientColumns = []string{"ID", "Name", "Email", "Phone", "Street", "City", "State", "ZipCode", "Country", "Notes", "CreatedAt", "UpdatedAt"}

	invoiceColumns = []string{"ID", "InvoiceNumber", "ClientID", "Status", "IssueDate", "DueDate", "Subtotal", "TaxRate", "TaxAmount", "Total", "PaidAmount", "Balance", "Notes", "IsRecurring", "RecurringSchedule", "CreatedAt", "UpdatedAt"}

	lineItemColumns = []string{"ID", "ParentID", "Description", "Quantity", "Rate", "Amount"}

	paymentColumns = []string{"ID", "InvoiceID", "Amount", "PaymentDate", "Method", "Reference", "Notes", "CreatedAt", "UpdatedAt"}

	templateColumns = []string{"ID", "Name", "Description", "TaxRate", "IsActive", "CreatedAt", "UpdatedAt"}

	projectColumns = []string{"ID", "Name", "ClientID", "Description", "Status", "StartDate", "EndDate", "CreatedAt", "UpdatedAt"}

	taskColumns = []string{"ID", "ProjectID", "Title", "Description", "Status", "Priority", "EstimatedHours", "ActualHours", "BillableHours", "DueDate", "CreatedAt", "UpdatedAt"}

	timeEntryColumns = []string{"ID", "TaskID", "ProjectID", "Description", "StartTime", "EndTime", "DurationSeconds", "IsBillable", "CreatedAt", "UpdatedAt"}

	activityColumns = []string{"ID", "Type", "Description", "EntityType", "EntityID", "EntityName", "UserID", "UserEmail", "Amount", "PreviousValue", "NewValue", "Metadata", "Timestamp"}
)

const dateOnly = "2006-01-02"

// --- permissive cell parsing -------------------------------------------------
//
// A single malformed row must never make the whole table unreadable, so
// decoding degrades to type-appropriate defaults instead of failing.

func cellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseDecimal(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return v
}

func parseDecimalPtr(s string) *decimal.Decimal {
	if s == "" {
		return nil
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &v
}

func parseInt64(s string) int64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		// Spreadsheet edits sometimes turn integers into "3600.0".
		if f, ferr := strconv.ParseFloat(s, 64); ferr == nil {
			return int64(f)
		}
		return 0
	}
	return v
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "true", "1", "yes":
		return true
	}
	return false
}

// parseTime accepts RFC3339 or bare dates; anything unparsable falls back to
// "now" rather than failing the row.
func parseTime(s string) time.Time {
	if t, ok := tryParseTime(s); ok {
		return t
	}
	return time.Now().UTC()
}

func parseTimePtr(s string) *time.Time {
	if t, ok := tryParseTime(s); ok {
		return &t
	}
	return nil
}

func tryParseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(dateOnly, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}

func formatBool(b bool) string {
	return strconv.FormatBool(b)
}

// --- clients -----------------------------------------------------------------

func clientToRow(c domain.Client) []string {
	return []string{
		c.ID, c.Name, c.Email, c.Phone,
		c.Street, c.City, c.State, c.ZipCode, c.Country,
		c.Notes,
		formatTime(c.CreatedAt), formatTime(c.UpdatedAt),
	}
}

func rowToClient(row []string) domain.Client {
	return domain.Client{
		ID:      cellAt(row, 0),
		Name:    cellAt(row, 1),
		Email:   cellAt(row, 2),
		Phone:   cellAt(row, 3),
		Street:  cellAt(row, 4),
		City:    cellAt(row, 5),
		State:   cellAt(row, 6),
		ZipCode: cellAt(row, 7),
		Country: cellAt(row, 8),
		Notes:   cellAt(row, 9),
		Timestamps: domain.Timestamps{
			CreatedAt: parseTime(cellAt(row, 10)),
			UpdatedAt: parseTime(cellAt(row, 11)),
		},
	}
}

// --- invoices ----------------------------------------------------------------

func invoiceToRow(inv domain.Invoice) []string {
	schedule := ""
	if inv.Recurring != nil {
		if raw, err := json.Marshal(inv.Recurring); err == nil {
			schedule = string(raw)
		}
	}
	return []string{
		inv.ID, inv.InvoiceNumber, inv.ClientID, string(inv.Status),
		formatTime(inv.IssueDate), formatTime(inv.DueDate),
		inv.Subtotal.String(), inv.TaxRate.String(), inv.TaxAmount.String(),
		inv.Total.String(), inv.PaidAmount.String(), inv.Balance.String(),
		inv.Notes, formatBool(inv.IsRecurring), schedule,
		formatTime(inv.CreatedAt), formatTime(inv.UpdatedAt),
	}
}

func rowToInvoice(row []string) domain.Invoice {
	inv := domain.Invoice{
		ID:            cellAt(row, 0),
		InvoiceNumber: cellAt(row, 1),
		ClientID:      cellAt(row, 2),
		Status:        domain.InvoiceStatus(cellAt(row, 3)),
		IssueDate:     parseTime(cellAt(row, 4)),
		DueDate:       parseTime(cellAt(row, 5)),
		Subtotal:      parseDecimal(cellAt(row, 6)),
		TaxRate:       parseDecimal(cellAt(row, 7)),
		TaxAmount:     parseDecimal(cellAt(row, 8)),
		Total:         parseDecimal(cellAt(row, 9)),
		PaidAmount:    parseDecimal(cellAt(row, 10)),
		Balance:       parseDecimal(cellAt(row, 11)),
		Notes:         cellAt(row, 12),
		IsRecurring:   parseBool(cellAt(row, 13)),
		Timestamps: domain.Timestamps{
			CreatedAt: parseTime(cellAt(row, 15)),
			UpdatedAt: parseTime(cellAt(row, 16)),
		},
	}
	if inv.Status == "" {
		inv.Status = domain.InvoiceDraft
	}
	if raw := cellAt(row, 14); raw != "" {
		var schedule domain.RecurringSchedule
		if err := json.Unmarshal([]byte(raw), &schedule); err == nil {
			inv.Recurring = &schedule
		}
		// Malformed schedule JSON is dropped, not fatal.
	}
	return inv
}

// --- line items (shared by invoices and templates) ---------------------------

func lineItemToRow(parentID string, li domain.LineItem) []string {
	return []string{
		li.ID, parentID, li.Description,
		li.Quantity.String(), li.Rate.String(), li.Amount.String(),
	}
}

func rowToLineItem(row []string) (parentID string, li domain.LineItem) {
	li = domain.LineItem{
		ID:          cellAt(row, 0),
		Description: cellAt(row, 2),
		Quantity:    parseDecimal(cellAt(row, 3)),
		Rate:        parseDecimal(cellAt(row, 4)),
		Amount:      parseDecimal(cellAt(row, 5)),
	}
	return cellAt(row, 1), li
}

// --- payments ----------------------------------------------------------------

func paymentToRow(p domain.Payment) []string {
	return []string{
		p.ID, p.InvoiceID, p.Amount.String(),
		formatTime(p.PaymentDate), string(p.Method), p.Reference, p.Notes,
		formatTime(p.CreatedAt), formatTime(p.UpdatedAt),
	}
}

func rowToPayment(row []string) domain.Payment {
	method := domain.PaymentMethod(cellAt(row, 4))
	if method == "" {
		method = domain.PaymentOther
	}
	return domain.Payment{
		ID:          cellAt(row, 0),
		InvoiceID:   cellAt(row, 1),
		Amount:      parseDecimal(cellAt(row, 2)),
		PaymentDate: parseTime(cellAt(row, 3)),
		Method:      method,
		Reference:   cellAt(row, 5),
		Notes:       cellAt(row, 6),
		Timestamps: domain.Timestamps{
			CreatedAt: parseTime(cellAt(row, 7)),
			UpdatedAt: parseTime(cellAt(row, 8)),
		},
	}
}

// --- templates ---------------------------------------------------------------

func templateToRow(t domain.Template) []string {
	return []string{
		t.ID, t.Name, t.Description,
		t.TaxRate.String(), formatBool(t.IsActive),
		formatTime(t.CreatedAt), formatTime(t.UpdatedAt),
	}
}

func rowToTemplate(row []string) domain.Template {
	return domain.Template{
		ID:          cellAt(row, 0),
		Name:        cellAt(row, 1),
		Description: cellAt(row, 2),
		TaxRate:     parseDecimal(cellAt(row, 3)),
		IsActive:    parseBool(cellAt(row, 4)),
		Timestamps: domain.Timestamps{
			CreatedAt: parseTime(cellAt(row, 5)),
			UpdatedAt: parseTime(cellAt(row, 6)),
		},
	}
}

// --- projects ----------------------------------------------------------------

func projectToRow(p domain.Project) []string {
	return []string{
		p.ID, p.Name, p.ClientID, p.Description, string(p.Status),
		formatTime(p.StartDate), formatTimePtr(p.EndDate),
		formatTime(p.CreatedAt), formatTime(p.UpdatedAt),
	}
}

func rowToProject(row []string) domain.Project {
	status := domain.ProjectStatus(cellAt(row, 4))
	if status == "" {
		status = domain.ProjectActive
	}
	return domain.Project{
		ID:          cellAt(row, 0),
		Name:        cellAt(row, 1),
		ClientID:    cellAt(row, 2),
		Description: cellAt(row, 3),
		Status:      status,
		StartDate:   parseTime(cellAt(row, 5)),
		EndDate:     parseTimePtr(cellAt(row, 6)),
		Timestamps: domain.Timestamps{
			CreatedAt: parseTime(cellAt(row, 7)),
			UpdatedAt: parseTime(cellAt(row, 8)),
		},
	}
}

// --- tasks -------------------------------------------------------------------

func taskToRow(t domain.Task) []string {
	estimated := ""
	if t.EstimatedHours != nil {
		estimated = t.EstimatedHours.String()
	}
	return []string{
		t.ID, t.ProjectID, t.Title, t.Description,
		string(t.Status), string(t.Priority),
		estimated, t.ActualHours.String(), t.BillableHours.String(),
		formatTimePtr(t.DueDate),
		formatTime(t.CreatedAt), formatTime(t.UpdatedAt),
	}
}

func rowToTask(row []string) domain.Task {
	status := domain.TaskStatus(cellAt(row, 4))
	if status == "" {
		status = domain.TaskTodo
	}
	priority := domain.TaskPriority(cellAt(row, 5))
	if priority == "" {
		priority = domain.PriorityMedium
	}
	return domain.Task{
		ID:             cellAt(row, 0),
		ProjectID:      cellAt(row, 1),
		Title:          cellAt(row, 2),
		Description:    cellAt(row, 3),
		Status:         status,
		Priority:       priority,
		EstimatedHours: parseDecimalPtr(cellAt(row, 6)),
		ActualHours:    parseDecimal(cellAt(row, 7)),
		BillableHours:  parseDecimal(cellAt(row, 8)),
		DueDate:        parseTimePtr(cellAt(row, 9)),
		Timestamps: domain.Timestamps{
			CreatedAt: parseTime(cellAt(row, 10)),
			UpdatedAt: parseTime(cellAt(row, 11)),
		},
	}
}

// --- time entries ------------------------------------------------------------

func timeEntryToRow(e domain.TimeEntry) []string {
	return []string{
		e.ID, e.TaskID, e.ProjectID, e.Description,
		formatTime(e.StartTime), formatTimePtr(e.EndTime),
		strconv.FormatInt(e.DurationSeconds, 10), formatBool(e.IsBillable),
		formatTime(e.CreatedAt), formatTime(e.UpdatedAt),
	}
}

func rowToTimeEntry(row []string) domain.TimeEntry {
	return domain.TimeEntry{
		ID:              cellAt(row, 0),
		TaskID:          cellAt(row, 1),
		ProjectID:       cellAt(row, 2),
		Description:     cellAt(row, 3),
		StartTime:       parseTime(cellAt(row, 4)),
		EndTime:         parseTimePtr(cellAt(row, 5)),
		DurationSeconds: parseInt64(cellAt(row, 6)),
		IsBillable:      parseBool(cellAt(row, 7)),
		Timestamps: domain.Timestamps{
			CreatedAt: parseTime(cellAt(row, 8)),
			UpdatedAt: parseTime(cellAt(row, 9)),
		},
	}
}

// --- activity logs -----------------------------------------------------------

func activityToRow(a domain.ActivityLog) []string {
	amount := ""
	if a.Amount != nil {
		amount = a.Amount.String()
	}
	metadata := ""
	if len(a.Metadata) > 0 {
		if raw, err := json.Marshal(a.Metadata); err == nil {
			metadata = string(raw)
		}
	}
	return []string{
		a.ID, string(a.Type), a.Description,
		a.EntityType, a.EntityID, a.EntityName,
		a.UserID, a.UserEmail,
		amount, a.PreviousValue, a.NewValue, metadata,
		formatTime(a.Timestamp),
	}
}

func rowToActivity(row []string) domain.ActivityLog {
	a := domain.ActivityLog{
		ID:            cellAt(row, 0),
		Type:          domain.ActivityType(cellAt(row, 1)),
		Description:   cellAt(row, 2),
		EntityType:    cellAt(row, 3),
		EntityID:      cellAt(row, 4),
		EntityName:    cellAt(row, 5),
		UserID:        cellAt(row, 6),
		UserEmail:     cellAt(row, 7),
		Amount:        parseDecimalPtr(cellAt(row, 8)),
		PreviousValue: cellAt(row, 9),
		NewValue:      cellAt(row, 10),
		Timestamp:     parseTime(cellAt(row, 12)),
	}
	if raw := cellAt(row, 11); raw != "" {
		var metadata map[string]string
		if err := json.Unmarshal([]byte(raw), &metadata); err == nil {
			a.Metadata = metadata
		}
	}
	return a
}
