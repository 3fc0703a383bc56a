package services

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/devenkhatri/billing-monk-sub000/internal/core/domain"
	portsrepo "github.com/devenkhatri/billing-monk-sub000/internal/core/ports/repositories"
	portssvc "github.com/devenkhatri/billing-monk-sub000/internal/core/ports/services"
	"github.com/devenkhatri/billing-monk-sub000/internal/dto"
)

// activityServiceImpl implements the ActivitySvcFacade interface.
type activityServiceImpl struct {
	BaseService
	activityRepo portsrepo.ActivityRepositoryFacade

	// now is injectable for tests.
	now func() time.Time
}

// NewActivityService creates the activity log service.
func NewActivityService(repo portsrepo.ActivityRepositoryFacade) portssvc.ActivitySvcFacade {
	return &activityServiceImpl{
		activityRepo: repo,
		now:          time.Now,
	}
}

var _ portssvc.ActivitySvcFacade = (*activityServiceImpl)(nil)

// Record appends an audit entry. A failed audit write is logged and
// swallowed: it must never fail the business operation it describes.
func (s *activityServiceImpl) Record(ctx context.Context, entry domain.ActivityLog) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = s.now().UTC()
	}
	if err := s.activityRepo.SaveActivityLog(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to record activity log",
			slog.String("activity_type", string(entry.Type)),
			slog.String("entity_id", entry.EntityID))
	}
}

// matchesSearch does a case-insensitive substring match across the fields a
// user would plausibly search the log by.
func matchesSearch(entry domain.ActivityLog, search string) bool {
	needle := strings.ToLower(search)
	return strings.Contains(strings.ToLower(entry.Description), needle) ||
		strings.Contains(strings.ToLower(entry.EntityName), needle) ||
		strings.Contains(strings.ToLower(entry.UserEmail), needle)
}

func (s *activityServiceImpl) Query(ctx context.Context, params dto.ListActivityParams) (*dto.ListActivityResponse, error) {
	logs, err := s.activityRepo.FindActivityLogs(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list activity logs")
		return nil, err
	}

	filtered := make([]domain.ActivityLog, 0, len(logs))
	for _, entry := range logs {
		if params.Type != "" && string(entry.Type) != params.Type {
			continue
		}
		if params.EntityType != "" && entry.EntityType != params.EntityType {
			continue
		}
		if params.EntityID != "" && entry.EntityID != params.EntityID {
			continue
		}
		if params.UserID != "" && entry.UserID != params.UserID {
			continue
		}
		if !params.StartDate.IsZero() && entry.Timestamp.Before(params.StartDate) {
			continue
		}
		if !params.EndDate.IsZero() && entry.Timestamp.After(params.EndDate.Add(24*time.Hour)) {
			continue
		}
		if params.Search != "" && !matchesSearch(entry, params.Search) {
			continue
		}
		filtered = append(filtered, entry)
	}

	// Newest first.
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Timestamp.After(filtered[j].Timestamp)
	})

	page := params.Page
	if page < 1 {
		page = 1
	}
	limit := params.Limit
	if limit < 1 {
		limit = 20
	}

	total := len(filtered)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	pageLogs := make([]dto.ActivityLogResponse, 0, end-start)
	for i := start; i < end; i++ {
		pageLogs = append(pageLogs, dto.ToActivityLogResponse(&filtered[i]))
	}

	return &dto.ListActivityResponse{
		Logs:    pageLogs,
		Total:   total,
		Page:    page,
		Limit:   limit,
		HasMore: end < total,
	}, nil
}
