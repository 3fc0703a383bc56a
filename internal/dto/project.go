package dto

import (
	"time"

	"github.com/devenkhatri/billing-monk-sub000/internal/core/domain"
)

// CreateProjectRequest defines the data needed to create a project.
type CreateProjectRequest struct {
	Name        string     `json:"name" binding:"required"`
	ClientID    string     `json:"clientID" binding:"required"`
	Description string     `json:"description"`
	StartDate   time.Time  `json:"startDate" binding:"required"`
	EndDate     *time.Time `json:"endDate"`
}

// UpdateProjectRequest defines the data allowed for updating a project.
type UpdateProjectRequest struct {
	Name        *string               `json:"name"`
	ClientID    *string               `json:"clientID"`
	Description *string               `json:"description"`
	Status      *domain.ProjectStatus `json:"status" binding:"omitempty,oneof=active on_hold completed cancelled"`
	StartDate   *time.Time            `json:"startDate"`
	EndDate     *time.Time            `json:"endDate"`
}

// ProjectResponse defines the data returned for a project.
type ProjectResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	ClientID    string               `json:"clientID"`
	Description string               `json:"description"`
	Status      domain.ProjectStatus `json:"status"`
	StartDate   time.Time            `json:"startDate"`
	EndDate     *time.Time           `json:"endDate,omitempty"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

// ToProjectResponse converts a domain.Project to a ProjectResponse DTO.
func ToProjectResponse(p *domain.Project) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		ClientID:    p.ClientID,
		Description: p.Description,
		Status:      p.Status,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToListProjectsResponse converts a slice of domain.Project to response DTOs.
func ToListProjectsResponse(projects []domain.Project) ListProjectsResponse {
	res := make([]ProjectResponse, len(projects))
	for i := range projects {
		res[i] = ToProjectResponse(&projects[i])
	}
	return ListProjectsResponse{Projects: res}
}

// ListProjectsResponse wraps the list of projects.
type ListProjectsResponse struct {
	Projects []ProjectResponse `json:"projects"`
}
