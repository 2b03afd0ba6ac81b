package repositories

import (
	"context"

	"copydesk/internal/domain/models"
)

// FolderRepository defines data access operations for folders
type FolderRepository interface {
	// Create creates a new folder
	Create(ctx context.Context, folder *models.Folder) error

	// GetByID retrieves a folder by ID
	GetByID(ctx context.Context, id, projectID string) (*models.Folder, error)

	// Update updates a folder (rename or move)
	Update(ctx context.Context, folder *models.Folder) error

	// Delete deletes a folder
	Delete(ctx context.Context, id, projectID string) error

	// ListChildren lists immediate child folders, sorted case-insensitively
	// by name (nil parentID = root level)
	ListChildren(ctx context.Context, parentID *string, projectID string) ([]models.Folder, error)

	// ListByProject retrieves all folders in a project (flat list)
	ListByProject(ctx context.Context, projectID string) ([]models.Folder, error)

	// CountChildren counts folders whose parent pointer equals the given id
	CountChildren(ctx context.Context, id, projectID string) (int, error)

	// GetPath computes the root-to-leaf display path for a folder
	GetPath(ctx context.Context, folderID, projectID string) (string, error)
}
