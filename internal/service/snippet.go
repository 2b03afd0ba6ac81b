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

type snippetService struct {
	snippetRepo repositories.SnippetRepository
	logger      *slog.Logger
}

// NewSnippetService creates a new snippet service
func NewSnippetService(snippetRepo repositories.SnippetRepository, logger *slog.Logger) services.SnippetService {
	return &snippetService{
		snippetRepo: snippetRepo,
		logger:      logger,
	}
}

// CreateSnippet creates a new reusable snippet
func (s *snippetService) CreateSnippet(ctx context.Context, req *services.CreateSnippetRequest) (*models.Snippet, error) {
	req.Name = sanitizeName(req.Name)
	if err := validation.ValidateStruct(req,
		validation.Field(&req.ProjectID, validation.Required),
		validation.Field(&req.Name, validation.Required, validation.Length(1, config.MaxSnippetNameLength)),
		validation.Field(&req.Content, validation.Required),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	now := time.Now()
	snippet := &models.Snippet{
		ID:          uuid.NewString(),
		ProjectID:   req.ProjectID,
		Name:        req.Name,
		Content:     req.Content,
		Description: req.Description,
		Tags:        req.Tags,
		UsageCount:  0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.snippetRepo.Create(ctx, snippet); err != nil {
		return nil, err
	}

	s.logger.Info("snippet created",
		"id", snippet.ID,
		"name", snippet.Name,
		"project_id", req.ProjectID,
	)

	return snippet, nil
}

// GetSnippet retrieves a snippet by ID
func (s *snippetService) GetSnippet(ctx context.Context, id, projectID string) (*models.Snippet, error) {
	return s.snippetRepo.GetByID(ctx, id, projectID)
}

// UpdateSnippet updates a snippet's fields. The usage counter is only
// touched by RecordUsage.
func (s *snippetService) UpdateSnippet(ctx context.Context, id string, req *services.UpdateSnippetRequest) (*models.Snippet, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.ProjectID, validation.Required),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	snippet, err := s.snippetRepo.GetByID(ctx, id, req.ProjectID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := sanitizeName(*req.Name)
		if err := validation.Validate(name, validation.Required, validation.Length(1, config.MaxSnippetNameLength)); err != nil {
			return nil, fmt.Errorf("%w: name %v", domain.ErrValidation, err)
		}
		snippet.Name = name
	}
	if req.Content != nil {
		snippet.Content = *req.Content
	}
	if req.Description != nil {
		snippet.Description = req.Description
	}
	if req.Tags != nil {
		snippet.Tags = *req.Tags
	}

	snippet.UpdatedAt = time.Now()

	if err := s.snippetRepo.Update(ctx, snippet); err != nil {
		return nil, err
	}

	s.logger.Info("snippet updated", "id", snippet.ID, "name", snippet.Name)

	return snippet, nil
}

// DeleteSnippet deletes a snippet
func (s *snippetService) DeleteSnippet(ctx context.Context, id, projectID string) error {
	if err := s.snippetRepo.Delete(ctx, id, projectID); err != nil {
		return err
	}

	s.logger.Info("snippet deleted", "id", id, "project_id", projectID)

	return nil
}

// ListSnippets lists all snippets in a project
func (s *snippetService) ListSnippets(ctx context.Context, projectID string) ([]models.Snippet, error) {
	snippets, err := s.snippetRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if snippets == nil {
		snippets = []models.Snippet{}
	}
	return snippets, nil
}

// RecordUsage increments the snippet's usage counter and returns the new value
func (s *snippetService) RecordUsage(ctx context.Context, id, projectID string) (int, error) {
	count, err := s.snippetRepo.IncrementUsage(ctx, id, projectID)
	if err != nil {
		return 0, err
	}

	s.logger.Debug("snippet used", "id", id, "usage_count", count)

	return count, nil
}
