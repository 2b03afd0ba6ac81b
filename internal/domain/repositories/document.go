package repositories

import (
	"context"

	"copydesk/internal/domain/models"
)

// DocumentRepository defines data access operations for documents
type DocumentRepository interface {
	// Create creates a new document
	Create(ctx context.Context, doc *models.Document) error

	// GetByID retrieves a document by ID
	GetByID(ctx context.Context, id, projectID string) (*models.Document, error)

	// Update updates an existing document
	Update(ctx context.Context, doc *models.Document) error

	// Delete deletes a document
	Delete(ctx context.Context, id, projectID string) error

	// ListByFolder lists documents in a folder (nil folderID = project root)
	ListByFolder(ctx context.Context, folderID *string, projectID string) ([]models.Document, error)

	// ListByProject lists all documents in a project
	ListByProject(ctx context.Context, projectID string) ([]models.Document, error)

	// ListVersions returns the version family for a base title, ascending by version
	ListVersions(ctx context.Context, projectID, baseTitle string) ([]models.Document, error)

	// MaxVersion returns the highest version number in a family (0 if none)
	MaxVersion(ctx context.Context, projectID, baseTitle string) (int, error)

	// CountByFolder counts documents assigned to a folder
	CountByFolder(ctx context.Context, folderID, projectID string) (int, error)
}
