package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/devenkhatri/billing-monk-sub000/internal/apperrors"
	"github.com/devenkhatri/billing-monk-sub000/internal/core/domain"
	portsrepo "github.com/devenkhatri/billing-monk-sub000/internal/core/ports/repositories"
	portssvc "github.com/devenkhatri/billing-monk-sub000/internal/core/ports/services"
	"github.com/devenkhatri/billing-monk-sub000/internal/dto"
)

// timeEntryServiceImpl implements the TimeEntrySvcFacade interface. Every
// mutation recomputes the parent task's actual and billable hours from the
// authoritative set of its entries.
type timeEntryServiceImpl struct {
	BaseService
	timeEntryRepo portsrepo.TimeEntryRepositoryFacade
	taskRepo      portsrepo.TaskRepositoryFacade
	activity      portssvc.ActivitySvcFacade
}

// NewTimeEntryService creates the time entry service.
func NewTimeEntryService(
	timeEntryRepo portsrepo.TimeEntryRepositoryFacade,
	taskRepo portsrepo.TaskRepositoryFacade,
	activity portssvc.ActivitySvcFacade,
) portssvc.TimeEntrySvcFacade {
	return &timeEntryServiceImpl{
		timeEntryRepo: timeEntryRepo,
		taskRepo:      taskRepo,
		activity:      activity,
	}
}

var _ portssvc.TimeEntrySvcFacade = (*timeEntryServiceImpl)(nil)

func (s *timeEntryServiceImpl) CreateTimeEntry(ctx context.Context, req dto.CreateTimeEntryRequest, actor domain.Actor) (*domain.TimeEntry, error) {
	task, err := s.taskRepo.FindTaskByID(ctx, req.TaskID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("task %s does not exist: %w", req.TaskID, apperrors.ErrValidation)
		}
		return nil, err
	}

	duration := req.DurationSeconds
	if req.EndTime != nil {
		if !req.EndTime.After(req.StartTime) {
			return nil, fmt.Errorf("end time must be after start time: %w", apperrors.ErrValidation)
		}
		if duration == 0 {
			duration = int64(req.EndTime.Sub(req.StartTime).Seconds())
		}
	}

	now := time.Now().UTC()
	entry := domain.TimeEntry{
		ID:              uuid.NewString(),
		TaskID:          req.TaskID,
		ProjectID:       task.ProjectID,
		Description:     req.Description,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		DurationSeconds: duration,
		IsBillable:      req.IsBillable,
		Timestamps: domain.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.timeEntryRepo.SaveTimeEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save time entry", slog.String("task_id", req.TaskID))
		return nil, err
	}

	if err := s.recomputeTaskHours(ctx, task); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, domain.ActivityLog{
		Type:        domain.ActivityCreated,
		Description: fmt.Sprintf("Time logged on task %s", task.Title),
		EntityType:  "time_entry",
		EntityID:    entry.ID,
		EntityName:  task.Title,
		UserID:      actor.UserID,
		UserEmail:   actor.UserEmail,
	})
	return &entry, nil
}

func (s *timeEntryServiceImpl) ListTimeEntries(ctx context.Context, params dto.ListTimeEntriesParams) ([]domain.TimeEntry, error) {
	var (
		entries []domain.TimeEntry
		err     error
	)
	switch {
	case params.TaskID != "":
		entries, err = s.timeEntryRepo.FindTimeEntriesByTask(ctx, params.TaskID)
	case params.ProjectID != "":
		entries, err = s.timeEntryRepo.FindTimeEntriesByProject(ctx, params.ProjectID)
	default:
		entries, err = s.timeEntryRepo.FindTimeEntries(ctx)
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to list time entries, returning empty list")
		return []domain.TimeEntry{}, nil
	}
	return entries, nil
}

func (s *timeEntryServiceImpl) GetTimeEntryByID(ctx context.Context, entryID string) (*domain.TimeEntry, error) {
	entry, err := s.timeEntryRepo.FindTimeEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find time entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}
	return entry, nil
}

func (s *timeEntryServiceImpl) UpdateTimeEntry(ctx context.Context, entryID string, req dto.UpdateTimeEntryRequest, actor domain.Actor) (*domain.TimeEntry, error) {
	entry, err := s.timeEntryRepo.FindTimeEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	if req.Description != nil {
		entry.Description = *req.Description
	}
	if req.StartTime != nil {
		entry.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		entry.EndTime = req.EndTime
	}
	if req.IsBillable != nil {
		entry.IsBillable = *req.IsBillable
	}
	switch {
	case req.DurationSeconds != nil:
		entry.DurationSeconds = *req.DurationSeconds
	case req.StartTime != nil || req.EndTime != nil:
		// Rederive the duration when the window moved.
		if entry.EndTime != nil {
			if !entry.EndTime.After(entry.StartTime) {
				return nil, fmt.Errorf("end time must be after start time: %w", apperrors.ErrValidation)
			}
			entry.DurationSeconds = int64(entry.EndTime.Sub(entry.StartTime).Seconds())
		}
	}
	entry.UpdatedAt = time.Now().UTC()

	if err := s.timeEntryRepo.UpdateTimeEntry(ctx, *entry); err != nil {
		s.LogError(ctx, err, "Failed to update time entry", slog.String("entry_id", entryID))
		return nil, err
	}

	if err := s.recomputeTaskHoursByID(ctx, entry.TaskID); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *timeEntryServiceImpl) DeleteTimeEntry(ctx context.Context, entryID string, actor domain.Actor) error {
	entry, err := s.timeEntryRepo.FindTimeEntryByID(ctx, entryID)
	if err != nil {
		return err
	}

	if err := s.timeEntryRepo.DeleteTimeEntry(ctx, entryID); err != nil {
		s.LogError(ctx, err, "Failed to delete time entry", slog.String("entry_id", entryID))
		return err
	}

	if err := s.recomputeTaskHoursByID(ctx, entry.TaskID); err != nil {
		return err
	}

	s.activity.Record(ctx, domain.ActivityLog{
		Type:        domain.ActivityDeleted,
		Description: "Time entry deleted",
		EntityType:  "time_entry",
		EntityID:    entryID,
		UserID:      actor.UserID,
		UserEmail:   actor.UserEmail,
	})
	return nil
}

func (s *timeEntryServiceImpl) recomputeTaskHoursByID(ctx context.Context, taskID string) error {
	task, err := s.taskRepo.FindTaskByID(ctx, taskID)
	if err != nil {
		// The task may have been deleted out from under its entries.
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return err
	}
	return s.recomputeTaskHours(ctx, task)
}

func (s *timeEntryServiceImpl) recomputeTaskHours(ctx context.Context, task *domain.Task) error {
	entries, err := s.timeEntryRepo.FindTimeEntriesByTask(ctx, task.ID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load entries for hour recomputation", slog.String("task_id", task.ID))
		return err
	}
	task.RecomputeHours(entries)
	task.UpdatedAt = time.Now().UTC()
	if err := s.taskRepo.UpdateTask(ctx, *task); err != nil {
		s.LogError(ctx, err, "Failed to update task hours", slog.String("task_id", task.ID))
		return err
	}
	return nil
}
