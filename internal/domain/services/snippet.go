package services

import (
	"context"

	"copydesk/internal/domain/models"
)

// SnippetService handles reusable snippet business logic
type SnippetService interface {
	CreateSnippet(ctx context.Context, req *CreateSnippetRequest) (*models.Snippet, error)
	GetSnippet(ctx context.Context, id, projectID string) (*models.Snippet, error)
	UpdateSnippet(ctx context.Context, id string, req *UpdateSnippetRequest) (*models.Snippet, error)
	DeleteSnippet(ctx context.Context, id, projectID string) error
	ListSnippets(ctx context.Context, projectID string) ([]models.Snippet, error)

	// RecordUsage increments the snippet's usage counter and returns the new value
	RecordUsage(ctx context.Context, id, projectID string) (int, error)
}

// CreateSnippetRequest represents a snippet creation request
type CreateSnippetRequest struct {
	ProjectID   string   `json:"project_id"`
	Name        string   `json:"name"`
	Content     string   `json:"content"`
	Description *string  `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// UpdateSnippetRequest represents a snippet update request
type UpdateSnippetRequest struct {
	ProjectID   string    `json:"project_id"`
	Name        *string   `json:"name,omitempty"`
	Content     *string   `json:"content,omitempty"`
	Description *string   `json:"description,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
}
