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

// projectServiceImpl implements the ProjectSvcFacade interface.
type projectServiceImpl struct {
	BaseService
	projectRepo   portsrepo.ProjectRepositoryFacade
	taskRepo      portsrepo.TaskRepositoryFacade
	timeEntryRepo portsrepo.TimeEntryRepositoryFacade
	clientRepo    portsrepo.ClientReader
	activity      portssvc.ActivitySvcFacade
}

// NewProjectService creates the project service.
func NewProjectService(
	projectRepo portsrepo.ProjectRepositoryFacade,
	taskRepo portsrepo.TaskRepositoryFacade,
	timeEntryRepo portsrepo.TimeEntryRepositoryFacade,
	clientRepo portsrepo.ClientReader,
	activity portssvc.ActivitySvcFacade,
) portssvc.ProjectSvcFacade {
	return &projectServiceImpl{
		projectRepo:   projectRepo,
		taskRepo:      taskRepo,
		timeEntryRepo: timeEntryRepo,
		clientRepo:    clientRepo,
		activity:      activity,
	}
}

var _ portssvc.ProjectSvcFacade = (*projectServiceImpl)(nil)

func (s *projectServiceImpl) CreateProject(ctx context.Context, req dto.CreateProjectRequest, actor domain.Actor) (*domain.Project, error) {
	if _, err := s.clientRepo.FindClientByID(ctx, req.ClientID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("client %s does not exist: %w", req.ClientID, apperrors.ErrValidation)
		}
		return nil, err
	}

	now := time.Now().UTC()
	project := domain.Project{
		ID:          uuid.NewString(),
		Name:        req.Name,
		ClientID:    req.ClientID,
		Description: req.Description,
		Status:      domain.ProjectActive,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Timestamps: domain.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.projectRepo.SaveProject(ctx, project); err != nil {
		s.LogError(ctx, err, "Failed to save project", slog.String("project_id", project.ID))
		return nil, err
	}

	s.activity.Record(ctx, domain.ActivityLog{
		Type:        domain.ActivityCreated,
		Description: fmt.Sprintf("Project %s created", project.Name),
		EntityType:  "project",
		EntityID:    project.ID,
		EntityName:  project.Name,
		UserID:      actor.UserID,
		UserEmail:   actor.UserEmail,
	})
	return &project, nil
}

func (s *projectServiceImpl) ListProjects(ctx context.Context) ([]domain.Project, error) {
	projects, err := s.projectRepo.FindProjects(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list projects, returning empty list")
		return []domain.Project{}, nil
	}
	return projects, nil
}

func (s *projectServiceImpl) GetProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	project, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find project", slog.String("project_id", projectID))
		}
		return nil, err
	}
	return project, nil
}

func (s *projectServiceImpl) UpdateProject(ctx context.Context, projectID string, req dto.UpdateProjectRequest, actor domain.Actor) (*domain.Project, error) {
	project, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.ClientID != nil {
		project.ClientID = *req.ClientID
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Status != nil {
		project.Status = *req.Status
	}
	if req.StartDate != nil {
		project.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		project.EndDate = req.EndDate
	}
	project.UpdatedAt = time.Now().UTC()

	if err := s.projectRepo.UpdateProject(ctx, *project); err != nil {
		s.LogError(ctx, err, "Failed to update project", slog.String("project_id", projectID))
		return nil, err
	}

	s.activity.Record(ctx, domain.ActivityLog{
		Type:        domain.ActivityUpdated,
		Description: fmt.Sprintf("Project %s updated", project.Name),
		EntityType:  "project",
		EntityID:    project.ID,
		EntityName:  project.Name,
		UserID:      actor.UserID,
		UserEmail:   actor.UserEmail,
	})
	return project, nil
}

// DeleteProject removes the project along with all of its tasks and their
// time entries. Children go first so a failure partway leaves no orphans
// pointing at a missing project.
func (s *projectServiceImpl) DeleteProject(ctx context.Context, projectID string, actor domain.Actor) error {
	project, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		return err
	}

	tasks, err := s.taskRepo.FindTasksByProject(ctx, projectID)
	if err != nil {
		return err
	}
	for _, task := range tasks {
		if _, err := s.timeEntryRepo.DeleteTimeEntriesByTask(ctx, task.ID); err != nil {
			s.LogError(ctx, err, "Failed to delete time entries during project delete",
				slog.String("project_id", projectID),
				slog.String("task_id", task.ID))
			return err
		}
		if err := s.taskRepo.DeleteTask(ctx, task.ID); err != nil {
			s.LogError(ctx, err, "Failed to delete task during project delete",
				slog.String("project_id", projectID),
				slog.String("task_id", task.ID))
			return err
		}
	}

	if err := s.projectRepo.DeleteProject(ctx, projectID); err != nil {
		s.LogError(ctx, err, "Failed to delete project", slog.String("project_id", projectID))
		return err
	}

	s.activity.Record(ctx, domain.ActivityLog{
		Type:        domain.ActivityDeleted,
		Description: fmt.Sprintf("Project %s deleted", project.Name),
		EntityType:  "project",
		EntityID:    projectID,
		EntityName:  project.Name,
		UserID:      actor.UserID,
		UserEmail:   actor.UserEmail,
		Metadata:    map[string]string{"deletedTasks": fmt.Sprint(len(tasks))},
	})
	return nil
}
