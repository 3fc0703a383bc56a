package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/devenkhatri/billing-monk-sub000/internal/apperrors"
	"github.com/devenkhatri/billing-monk-sub000/internal/core/domain"
	portsrepo "github.com/devenkhatri/billing-monk-sub000/internal/core/ports/repositories"
	portssvc "github.com/devenkhatri/billing-monk-sub000/internal/core/ports/services"
)

// recurringServiceImpl implements the RecurringSvcFacade interface. It scans
// the recurring invoices, spawns follow-on invoices for due schedules and
// advances each schedule from its own scheduled date so the cadence stays
// stable under delayed runs.
type recurringServiceImpl struct {
	BaseService
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	activity    portssvc.ActivitySvcFacade
}

// NewRecurringService creates the recurring invoice service.
func NewRecurringService(
	invoiceRepo portsrepo.InvoiceRepositoryFacade,
	activity portssvc.ActivitySvcFacade,
) portssvc.RecurringSvcFacade {
	return &recurringServiceImpl{
		invoiceRepo: invoiceRepo,
		activity:    activity,
	}
}

var _ portssvc.RecurringSvcFacade = (*recurringServiceImpl)(nil)

func (s *recurringServiceImpl) ListDueInvoices(ctx context.Context, now time.Time) ([]domain.Invoice, error) {
	invoices, err := s.invoiceRepo.FindInvoices(ctx)
	if err != nil {
		return nil, err
	}
	due := []domain.Invoice{}
	for _, inv := range invoices {
		if inv.IsRecurring && inv.Recurring != nil && inv.Recurring.IsDue(now) {
			due = append(due, inv)
		}
	}
	return due, nil
}

// GenerateDueInvoices creates one new invoice per due schedule. A failure
// on one schedule is logged and skipped; the rest of the run continues.
func (s *recurringServiceImpl) GenerateDueInvoices(ctx context.Context, now time.Time, actor domain.Actor) ([]domain.Invoice, error) {
	due, err := s.ListDueInvoices(ctx, now)
	if err != nil {
		s.LogError(ctx, err, "Failed to scan recurring invoices")
		return nil, err
	}

	generated := []domain.Invoice{}
	for i := range due {
		source := due[i]
		invoice, err := s.generateFrom(ctx, &source, actor)
		if err != nil {
			s.LogError(ctx, err, "Failed to generate recurring invoice",
				slog.String("source_invoice_id", source.ID))
			continue
		}
		generated = append(generated, *invoice)
	}

	if len(generated) > 0 {
		s.LogInfo(ctx, "Recurring generation run finished",
			slog.Int("due", len(due)),
			slog.Int("generated", len(generated)))
	}
	return generated, nil
}

// generateFrom spawns one invoice from a due schedule and advances the
// schedule. The new invoice copies the source's lines with fresh identities
// and is itself non-recurring.
func (s *recurringServiceImpl) generateFrom(ctx context.Context, source *domain.Invoice, actor domain.Actor) (*domain.Invoice, error) {
	schedule := source.Recurring
	issueDate := schedule.NextInvoiceDate
	now := time.Now().UTC()

	items := make([]domain.LineItem, len(source.LineItems))
	for i, li := range source.LineItems {
		items[i] = domain.LineItem{
			ID:          uuid.NewString(),
			Description: li.Description,
			Quantity:    li.Quantity,
			Rate:        li.Rate,
		}
	}

	invoice := domain.Invoice{
		ID:            uuid.NewString(),
		InvoiceNumber: fmt.Sprintf("%s-%s", source.InvoiceNumber, issueDate.Format("2006-01")),
		ClientID:      source.ClientID,
		Status:        domain.InvoiceDraft,
		IssueDate:     issueDate,
		DueDate:       issueDate.AddDate(0, 0, 30),
		LineItems:     items,
		TaxRate:       source.TaxRate,
		Notes:         source.Notes,
		Timestamps: domain.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	invoice.Recalculate()

	if err := s.invoiceRepo.SaveInvoice(ctx, invoice); err != nil {
		return nil, err
	}

	// Advance the schedule only after the new invoice is safely stored, so a
	// failed save is retried on the next run rather than silently skipped.
	schedule.NextInvoiceDate = schedule.NextOccurrence()
	if schedule.EndDate != nil && schedule.NextInvoiceDate.After(*schedule.EndDate) {
		schedule.IsActive = false
	}
	source.UpdatedAt = now
	if err := s.invoiceRepo.UpdateInvoice(ctx, *source); err != nil {
		// The spawned invoice exists but the schedule did not advance; the
		// next run would duplicate it. Surface loudly.
		s.LogError(ctx, err, "Generated invoice but failed to advance schedule",
			slog.String("source_invoice_id", source.ID),
			slog.String("generated_invoice_id", invoice.ID))
		return nil, err
	}

	s.activity.Record(ctx, domain.ActivityLog{
		Type:        domain.ActivityRecurringFired,
		Description: fmt.Sprintf("Invoice %s generated from recurring schedule", invoice.InvoiceNumber),
		EntityType:  "invoice",
		EntityID:    invoice.ID,
		EntityName:  invoice.InvoiceNumber,
		UserID:      actor.UserID,
		UserEmail:   actor.UserEmail,
		Amount:      &invoice.Total,
		Metadata:    map[string]string{"sourceInvoiceID": source.ID},
	})
	return &invoice, nil
}

func (s *recurringServiceImpl) ToggleRecurring(ctx context.Context, invoiceID string, isActive bool, actor domain.Actor) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if !invoice.IsRecurring || invoice.Recurring == nil {
		return nil, fmt.Errorf("invoice %s has no recurring schedule: %w", invoice.InvoiceNumber, apperrors.ErrValidation)
	}

	invoice.Recurring.IsActive = isActive
	invoice.UpdatedAt = time.Now().UTC()
	if err := s.invoiceRepo.UpdateInvoice(ctx, *invoice); err != nil {
		s.LogError(ctx, err, "Failed to toggle recurring schedule", slog.String("invoice_id", invoiceID))
		return nil, err
	}

	state := "paused"
	if isActive {
		state = "resumed"
	}
	s.activity.Record(ctx, domain.ActivityLog{
		Type:        domain.ActivityUpdated,
		Description: fmt.Sprintf("Recurring schedule %s for invoice %s", state, invoice.InvoiceNumber),
		EntityType:  "invoice",
		EntityID:    invoice.ID,
		EntityName:  invoice.InvoiceNumber,
		UserID:      actor.UserID,
		UserEmail:   actor.UserEmail,
	})
	return invoice, nil
}
