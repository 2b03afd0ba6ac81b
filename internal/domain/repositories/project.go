package repositories

import (
	"context"

	"copydesk/internal/domain/models"
)

// ProjectRepository defines data access operations for projects
type ProjectRepository interface {
	// Create creates a new project row (nested collections live in their own tables)
	Create(ctx context.Context, userID string, project *models.Project) error

	// GetByID retrieves a project by ID, scoped to its owner
	GetByID(ctx context.Context, id, userID string) (*models.Project, error)

	// List retrieves all projects owned by a user (rows only, no nested collections)
	List(ctx context.Context, userID string) ([]models.Project, error)

	// Update persists name and updated_at
	Update(ctx context.Context, userID string, project *models.Project) error

	// Delete removes a project and everything in it
	Delete(ctx context.Context, id, userID string) error
}

// BrandVoiceRepository manages the per-project brand voice singleton
type BrandVoiceRepository interface {
	// Upsert creates or replaces the project's brand voice
	Upsert(ctx context.Context, projectID string, voice *models.BrandVoice) error

	// GetByProject returns the brand voice, or nil if none is set
	GetByProject(ctx context.Context, projectID string) (*models.BrandVoice, error)

	// Delete clears the project's brand voice
	Delete(ctx context.Context, projectID string) error
}
