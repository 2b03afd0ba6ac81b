package services

import (
	"context"

	"copydesk/internal/domain/models"
)

// DocumentService handles document and version-family business logic
type DocumentService interface {
	// CreateDocument creates a new document as version 1 of a fresh family
	CreateDocument(ctx context.Context, req *CreateDocumentRequest) (*models.Document, error)

	// GetDocument retrieves a document by ID
	GetDocument(ctx context.Context, id, projectID string) (*models.Document, error)

	// UpdateDocument updates a document in place, recomputing counts on
	// content changes
	UpdateDocument(ctx context.Context, id string, req *UpdateDocumentRequest) (*models.Document, error)

	// DeleteDocument deletes a single version
	DeleteDocument(ctx context.Context, id, projectID string) error

	// CreateVersion creates the next version in the source document's family
	CreateVersion(ctx context.Context, req *CreateVersionRequest) (*models.Document, error)

	// ListVersions returns the version family for a base title, oldest first
	ListVersions(ctx context.Context, projectID, baseTitle string) ([]models.Document, error)

	// GetLatestVersion returns the highest-numbered version in a family
	GetLatestVersion(ctx context.Context, projectID, baseTitle string) (*models.Document, error)

	// ListByProject lists all documents in a project
	ListByProject(ctx context.Context, projectID string) ([]models.Document, error)
}

// CreateDocumentRequest represents a document creation request
type CreateDocumentRequest struct {
	ProjectID  string   `json:"project_id"`
	FolderID   *string  `json:"folder_id,omitempty"`
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Tags       []string `json:"tags,omitempty"`
	TemplateID *string  `json:"template_id,omitempty"`
}

// UpdateDocumentRequest represents a document update request
type UpdateDocumentRequest struct {
	ProjectID  string    `json:"project_id"`
	FolderID   **string  `json:"-"` // double pointer so "move to root" is distinguishable from "leave alone"
	Title      *string   `json:"title,omitempty"`
	Content    *string   `json:"content,omitempty"`
	Tags       *[]string `json:"tags,omitempty"`
	TemplateID **string  `json:"-"` // same null-vs-absent contract as FolderID
}

// CreateVersionRequest represents a request for the next version of a document
type CreateVersionRequest struct {
	ProjectID  string  `json:"project_id"`
	DocumentID string  `json:"document_id"`
	Content    *string `json:"content,omitempty"` // nil copies the source content
}
