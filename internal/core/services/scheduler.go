package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/devenkhatri/billing-monk-sub000/internal/core/domain"
	portssvc "github.com/devenkhatri/billing-monk-sub000/internal/core/ports/services"
)

// schedulerActor marks invoices generated by the background loop rather
// than an interactive user.
var schedulerActor = domain.Actor{UserID: "system", UserEmail: "scheduler@system"}

// RecurringScheduler periodically fires the recurring generation run in the
// background. One instance per process; running two processes against the
// same spreadsheet can double-generate.
type RecurringScheduler struct {
	recurring portssvc.RecurringSvcFacade
	interval  time.Duration
	logger    *slog.Logger
}

// NewRecurringScheduler builds a scheduler that runs every interval.
func NewRecurringScheduler(recurring portssvc.RecurringSvcFacade, interval time.Duration, logger *slog.Logger) *RecurringScheduler {
	if interval <= 0 {
		interval = time.Hour
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RecurringScheduler{recurring: recurring, interval: interval, logger: logger}
}

// Run blocks until ctx is cancelled, generating due invoices on every tick.
// The first run happens immediately so a restarted process catches up
// without waiting a full interval.
func (s *RecurringScheduler) Run(ctx context.Context) {
	s.logger.Info("Recurring invoice scheduler started", slog.Duration("interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Recurring invoice scheduler stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *RecurringScheduler) tick(ctx context.Context) {
	generated, err := s.recurring.GenerateDueInvoices(ctx, time.Now().UTC(), schedulerActor)
	if err != nil {
		s.logger.Error("Recurring generation run failed", slog.String("error", err.Error()))
		return
	}
	if len(generated) > 0 {
		s.logger.Info("Recurring invoices generated", slog.Int("count", len(generated)))
	}
}
