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

// taskServiceImpl implements the TaskSvcFacade interface.
type taskServiceImpl struct {
	BaseService
	taskRepo      portsrepo.TaskRepositoryFacade
	timeEntryRepo portsrepo.TimeEntryRepositoryFacade
	projectRepo   portsrepo.ProjectReader
	activity      portssvc.ActivitySvcFacade
}

// NewTaskService creates the task service.
func NewTaskService(
	taskRepo portsrepo.TaskRepositoryFacade,
	timeEntryRepo portsrepo.TimeEntryRepositoryFacade,
	projectRepo portsrepo.ProjectReader,
	activity portssvc.ActivitySvcFacade,
) portssvc.TaskSvcFacade {
	return &taskServiceImpl{
		taskRepo:      taskRepo,
		timeEntryRepo: timeEntryRepo,
		projectRepo:   projectRepo,
		activity:      activity,
	}
}

var _ portssvc.TaskSvcFacade = (*taskServiceImpl)(nil)

func (s *taskServiceImpl) CreateTask(ctx context.Context, req dto.CreateTaskRequest, actor domain.Actor) (*domain.Task, error) {
	if _, err := s.projectRepo.FindProjectByID(ctx, req.ProjectID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("project %s does not exist: %w", req.ProjectID, apperrors.ErrValidation)
		}
		return nil, err
	}

	priority := req.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}

	now := time.Now().UTC()
	task := domain.Task{
		ID:             uuid.NewString(),
		ProjectID:      req.ProjectID,
		Title:          req.Title,
		Description:    req.Description,
		Status:         domain.TaskTodo,
		Priority:       priority,
		EstimatedHours: req.EstimatedHours,
		DueDate:        req.DueDate,
		Timestamps: domain.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.taskRepo.SaveTask(ctx, task); err != nil {
		s.LogError(ctx, err, "Failed to save task", slog.String("task_id", task.ID))
		return nil, err
	}

	s.activity.Record(ctx, domain.ActivityLog{
		Type:        domain.ActivityCreated,
		Description: fmt.Sprintf("Task %s created", task.Title),
		EntityType:  "task",
		EntityID:    task.ID,
		EntityName:  task.Title,
		UserID:      actor.UserID,
		UserEmail:   actor.UserEmail,
	})
	return &task, nil
}

func (s *taskServiceImpl) ListTasks(ctx context.Context, params dto.ListTasksParams) ([]domain.Task, error) {
	var (
		tasks []domain.Task
		err   error
	)
	if params.ProjectID != "" {
		tasks, err = s.taskRepo.FindTasksByProject(ctx, params.ProjectID)
	} else {
		tasks, err = s.taskRepo.FindTasks(ctx)
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to list tasks, returning empty list")
		return []domain.Task{}, nil
	}
	return tasks, nil
}

func (s *taskServiceImpl) GetTaskByID(ctx context.Context, taskID string) (*domain.Task, error) {
	task, err := s.taskRepo.FindTaskByID(ctx, taskID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find task", slog.String("task_id", taskID))
		}
		return nil, err
	}
	return task, nil
}

func (s *taskServiceImpl) UpdateTask(ctx context.Context, taskID string, req dto.UpdateTaskRequest, actor domain.Actor) (*domain.Task, error) {
	task, err := s.taskRepo.FindTaskByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.EstimatedHours != nil {
		task.EstimatedHours = req.EstimatedHours
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	task.UpdatedAt = time.Now().UTC()

	if err := s.taskRepo.UpdateTask(ctx, *task); err != nil {
		s.LogError(ctx, err, "Failed to update task", slog.String("task_id", taskID))
		return nil, err
	}

	s.activity.Record(ctx, domain.ActivityLog{
		Type:        domain.ActivityUpdated,
		Description: fmt.Sprintf("Task %s updated", task.Title),
		EntityType:  "task",
		EntityID:    task.ID,
		EntityName:  task.Title,
		UserID:      actor.UserID,
		UserEmail:   actor.UserEmail,
	})
	return task, nil
}

// DeleteTask removes the task and every time entry recorded against it.
func (s *taskServiceImpl) DeleteTask(ctx context.Context, taskID string, actor domain.Actor) error {
	task, err := s.taskRepo.FindTaskByID(ctx, taskID)
	if err != nil {
		return err
	}

	if _, err := s.timeEntryRepo.DeleteTimeEntriesByTask(ctx, taskID); err != nil {
		s.LogError(ctx, err, "Failed to delete time entries during task delete", slog.String("task_id", taskID))
		return err
	}
	if err := s.taskRepo.DeleteTask(ctx, taskID); err != nil {
		s.LogError(ctx, err, "Failed to delete task", slog.String("task_id", taskID))
		return err
	}

	s.activity.Record(ctx, domain.ActivityLog{
		Type:        domain.ActivityDeleted,
		Description: fmt.Sprintf("Task %s deleted", task.Title),
		EntityType:  "task",
		EntityID:    taskID,
		EntityName:  task.Title,
		UserID:      actor.UserID,
		UserEmail:   actor.UserEmail,
	})
	return nil
}
