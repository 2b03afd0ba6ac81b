package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"copydesk/internal/config"
	"copydesk/internal/domain"
	"copydesk/internal/domain/models"
	"copydesk/internal/domain/repositories"
	"copydesk/internal/domain/services"
)

type documentService struct {
	docRepo    repositories.DocumentRepository
	folderRepo repositories.FolderRepository
	analyzer   services.ContentAnalyzer
	logger     *slog.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(
	docRepo repositories.DocumentRepository,
	folderRepo repositories.FolderRepository,
	analyzer services.ContentAnalyzer,
	logger *slog.Logger,
) services.DocumentService {
	return &documentService{
		docRepo:    docRepo,
		folderRepo: folderRepo,
		analyzer:   analyzer,
		logger:     logger,
	}
}

// CreateDocument creates a new document as version 1 of a fresh family
func (s *documentService) CreateDocument(ctx context.Context, req *services.CreateDocumentRequest) (*models.Document, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.ProjectID, validation.Required),
		validation.Field(&req.Title, validation.Required, validation.Length(1, config.MaxDocumentTitleLength)),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if req.FolderID != nil && *req.FolderID == "" {
		req.FolderID = nil
	}
	if req.FolderID != nil {
		if _, err := s.folderRepo.GetByID(ctx, *req.FolderID, req.ProjectID); err != nil {
			return nil, fmt.Errorf("folder: %w", err)
		}
	}

	now := time.Now()
	doc := &models.Document{
		ID:        uuid.NewString(),
		ProjectID: req.ProjectID,
		FolderID:  req.FolderID,
		BaseTitle: req.Title,
		Title:     models.DisplayTitle(req.Title, 1),
		Version:   1,
		Content:   req.Content,
		Metadata: models.DocumentMetadata{
			WordCount:  s.analyzer.CountWords(req.Content),
			CharCount:  s.analyzer.CountChars(req.Content),
			Tags:       req.Tags,
			TemplateID: req.TemplateID,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info("document created",
		"id", doc.ID,
		"title", doc.Title,
		"project_id", req.ProjectID,
		"word_count", doc.Metadata.WordCount,
	)

	return doc, nil
}

// GetDocument retrieves a document by ID
func (s *documentService) GetDocument(ctx context.Context, id, projectID string) (*models.Document, error) {
	return s.docRepo.GetByID(ctx, id, projectID)
}

// UpdateDocument updates a document in place. Content changes recompute
// word and character counts; version fields never change here.
func (s *documentService) UpdateDocument(ctx context.Context, id string, req *services.UpdateDocumentRequest) (*models.Document, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.ProjectID, validation.Required),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	doc, err := s.docRepo.GetByID(ctx, id, req.ProjectID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if err := validation.Validate(*req.Title, validation.Required, validation.Length(1, config.MaxDocumentTitleLength)); err != nil {
			return nil, fmt.Errorf("%w: title %v", domain.ErrValidation, err)
		}
		doc.BaseTitle = *req.Title
		doc.Title = models.DisplayTitle(doc.BaseTitle, doc.Version)
	}

	if req.Content != nil {
		doc.Content = *req.Content
		doc.Metadata.WordCount = s.analyzer.CountWords(doc.Content)
		doc.Metadata.CharCount = s.analyzer.CountChars(doc.Content)
	}

	if req.Tags != nil {
		doc.Metadata.Tags = *req.Tags
	}

	if req.TemplateID != nil {
		doc.Metadata.TemplateID = *req.TemplateID
	}

	if req.FolderID != nil {
		target := *req.FolderID
		if target != nil && *target == "" {
			target = nil
		}
		if target != nil {
			if _, err := s.folderRepo.GetByID(ctx, *target, req.ProjectID); err != nil {
				return nil, fmt.Errorf("folder: %w", err)
			}
		}
		doc.FolderID = target
	}

	doc.UpdatedAt = time.Now()

	if err := s.docRepo.Update(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info("document updated",
		"id", doc.ID,
		"title", doc.Title,
		"word_count", doc.Metadata.WordCount,
		"char_count", doc.Metadata.CharCount,
	)

	return doc, nil
}

// DeleteDocument deletes a single version. Other versions in the family
// keep their parentVersionId even when it now points at a deleted row.
func (s *documentService) DeleteDocument(ctx context.Context, id, projectID string) error {
	if err := s.docRepo.Delete(ctx, id, projectID); err != nil {
		return err
	}

	s.logger.Info("document deleted", "id", id, "project_id", projectID)

	return nil
}

// CreateVersion creates the next version in the source document's family.
// The new version number is one past the family's current maximum, not
// the source's version plus one, so branching from an old version still
// produces a unique number.
func (s *documentService) CreateVersion(ctx context.Context, req *services.CreateVersionRequest) (*models.Document, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.ProjectID, validation.Required),
		validation.Field(&req.DocumentID, validation.Required),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	source, err := s.docRepo.GetByID(ctx, req.DocumentID, req.ProjectID)
	if err != nil {
		return nil, err
	}

	maxVersion, err := s.docRepo.MaxVersion(ctx, req.ProjectID, source.BaseTitle)
	if err != nil {
		return nil, err
	}

	content := source.Content
	if req.Content != nil {
		content = *req.Content
	}

	now := time.Now()
	doc := &models.Document{
		ID:              uuid.NewString(),
		ProjectID:       req.ProjectID,
		FolderID:        source.FolderID,
		BaseTitle:       source.BaseTitle,
		Title:           models.DisplayTitle(source.BaseTitle, maxVersion+1),
		Version:         maxVersion + 1,
		ParentVersionID: &source.ID,
		Content:         content,
		Metadata: models.DocumentMetadata{
			WordCount:  s.analyzer.CountWords(content),
			CharCount:  s.analyzer.CountChars(content),
			Tags:       source.Metadata.Tags,
			TemplateID: source.Metadata.TemplateID,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info("document version created",
		"id", doc.ID,
		"base_title", doc.BaseTitle,
		"version", doc.Version,
		"parent_version_id", source.ID,
	)

	return doc, nil
}

// ListVersions returns the version family for a base title, oldest first
func (s *documentService) ListVersions(ctx context.Context, projectID, baseTitle string) ([]models.Document, error) {
	docs, err := s.docRepo.ListVersions(ctx, projectID, baseTitle)
	if err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []models.Document{}
	}
	return docs, nil
}

// GetLatestVersion returns the highest-numbered version in a family
func (s *documentService) GetLatestVersion(ctx context.Context, projectID, baseTitle string) (*models.Document, error) {
	docs, err := s.docRepo.ListVersions(ctx, projectID, baseTitle)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("document family %q: %w", baseTitle, domain.ErrNotFound)
	}
	return &docs[len(docs)-1], nil
}

// ListByProject lists all documents in a project
func (s *documentService) ListByProject(ctx context.Context, projectID string) ([]models.Document, error) {
	docs, err := s.docRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []models.Document{}
	}
	return docs, nil
}
