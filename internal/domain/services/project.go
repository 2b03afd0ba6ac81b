package services

import (
	"context"

	"copydesk/internal/domain/models"
)

// CreateProjectRequest represents a request to create a project
type CreateProjectRequest struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

// UpdateProjectRequest represents a request to rename a project
type UpdateProjectRequest struct {
	Name string `json:"name"`
}

// ProjectService defines business logic operations for projects
type ProjectService interface {
	// CreateProject creates a new project
	CreateProject(ctx context.Context, req *CreateProjectRequest) (*models.Project, error)

	// GetProject retrieves a project with its nested collections
	GetProject(ctx context.Context, id, userID string) (*models.Project, error)

	// ListProjects retrieves all projects for a user
	ListProjects(ctx context.Context, userID string) ([]models.Project, error)

	// UpdateProject renames a project
	UpdateProject(ctx context.Context, id, userID string, req *UpdateProjectRequest) (*models.Project, error)

	// DeleteProject deletes a project and everything in it
	DeleteProject(ctx context.Context, id, userID string) error

	// SetBrandVoice creates or replaces the project's brand voice
	SetBrandVoice(ctx context.Context, projectID, userID string, voice *models.BrandVoice) error

	// GetBrandVoice returns the brand voice, or nil if none is set
	GetBrandVoice(ctx context.Context, projectID, userID string) (*models.BrandVoice, error)

	// ClearBrandVoice removes the project's brand voice
	ClearBrandVoice(ctx context.Context, projectID, userID string) error
}
