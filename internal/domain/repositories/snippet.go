package repositories

import (
	"context"

	"copydesk/internal/domain/models"
)

// SnippetRepository defines data access operations for snippets
type SnippetRepository interface {
	Create(ctx context.Context, snippet *models.Snippet) error
	GetByID(ctx context.Context, id, projectID string) (*models.Snippet, error)
	Update(ctx context.Context, snippet *models.Snippet) error
	Delete(ctx context.Context, id, projectID string) error
	ListByProject(ctx context.Context, projectID string) ([]models.Snippet, error)

	// IncrementUsage bumps the usage counter and returns the new value
	IncrementUsage(ctx context.Context, id, projectID string) (int, error)
}
