package local

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"copydesk/internal/config"
	"copydesk/internal/domain"
	"copydesk/internal/domain/models"
)

// CreateSnippet creates a reusable snippet in the project
func (s *Store) CreateSnippet(projectID string, snippet models.Snippet) (*models.Snippet, error) {
	snippet.Name = SanitizeName(snippet.Name)
	if err := validation.Validate(snippet.Name, validation.Required, validation.Length(1, config.MaxSnippetNameLength)); err != nil {
		return nil, fmt.Errorf("%w: snippet name %v", domain.ErrValidation, err)
	}
	if snippet.Content == "" {
		return nil, fmt.Errorf("%w: snippet content is required", domain.ErrValidation)
	}

	now := time.Now()
	snippet.ID = uuid.NewString()
	snippet.ProjectID = projectID
	snippet.UsageCount = 0
	snippet.CreatedAt = now
	snippet.UpdatedAt = now

	err := s.mutateProject(projectID, func(project *models.Project) error {
		project.Snippets = append(project.Snippets, snippet)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("snippet created", "id", snippet.ID, "name", snippet.Name, "project_id", projectID)

	return &snippet, nil
}

// SnippetPatch carries the caller-updatable snippet fields. The usage
// counter is only touched by IncrementSnippetUsage.
type SnippetPatch struct {
	Name        *string
	Content     *string
	Description **string
	Tags        *[]string
}

// UpdateSnippet merges the patch into the snippet
func (s *Store) UpdateSnippet(projectID, snippetID string, patch SnippetPatch) (*models.Snippet, error) {
	var out models.Snippet
	err := s.mutateProject(projectID, func(project *models.Project) error {
		idx := findSnippet(project.Snippets, snippetID)
		if idx < 0 {
			return fmt.Errorf("snippet %s: %w", snippetID, domain.ErrNotFound)
		}
		snippet := &project.Snippets[idx]

		if patch.Name != nil {
			name := SanitizeName(*patch.Name)
			if err := validation.Validate(name, validation.Required, validation.Length(1, config.MaxSnippetNameLength)); err != nil {
				return fmt.Errorf("%w: snippet name %v", domain.ErrValidation, err)
			}
			snippet.Name = name
		}
		if patch.Content != nil {
			if *patch.Content == "" {
				return fmt.Errorf("%w: snippet content is required", domain.ErrValidation)
			}
			snippet.Content = *patch.Content
		}
		if patch.Description != nil {
			snippet.Description = *patch.Description
		}
		if patch.Tags != nil {
			snippet.Tags = *patch.Tags
		}

		snippet.UpdatedAt = time.Now()
		out = *snippet
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}

// DeleteSnippet removes a snippet
func (s *Store) DeleteSnippet(projectID, snippetID string) error {
	err := s.mutateProject(projectID, func(project *models.Project) error {
		idx := findSnippet(project.Snippets, snippetID)
		if idx < 0 {
			return fmt.Errorf("snippet %s: %w", snippetID, domain.ErrNotFound)
		}
		project.Snippets = append(project.Snippets[:idx], project.Snippets[idx+1:]...)
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("snippet deleted", "id", snippetID, "project_id", projectID)

	return nil
}

// GetAllSnippets returns every snippet in the project
func (s *Store) GetAllSnippets(projectID string) ([]models.Snippet, error) {
	var out []models.Snippet
	err := s.viewProject(projectID, func(project *models.Project) error {
		out = append([]models.Snippet{}, project.Snippets...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// IncrementSnippetUsage bumps the usage counter and returns the new value
func (s *Store) IncrementSnippetUsage(projectID, snippetID string) (int, error) {
	var count int
	err := s.mutateProject(projectID, func(project *models.Project) error {
		idx := findSnippet(project.Snippets, snippetID)
		if idx < 0 {
			return fmt.Errorf("snippet %s: %w", snippetID, domain.ErrNotFound)
		}
		project.Snippets[idx].UsageCount++
		project.Snippets[idx].UpdatedAt = time.Now()
		count = project.Snippets[idx].UsageCount
		return nil
	})
	if err != nil {
		return 0, err
	}

	return count, nil
}

// UpsertSnippet replaces the stored copy of a snippet wholesale, adding
// it if absent. Used by the unified store's dual write after a
// successful cloud mutation.
func (s *Store) UpsertSnippet(projectID string, snippet models.Snippet) error {
	return s.mutateProject(projectID, func(project *models.Project) error {
		idx := findSnippet(project.Snippets, snippet.ID)
		if idx < 0 {
			project.Snippets = append(project.Snippets, snippet)
		} else {
			project.Snippets[idx] = snippet
		}
		return nil
	})
}

// RemoveSnippet deletes a snippet without treating absence as an error.
// Used by the unified store's dual write after a successful cloud delete.
func (s *Store) RemoveSnippet(projectID, snippetID string) error {
	return s.mutateProject(projectID, func(project *models.Project) error {
		idx := findSnippet(project.Snippets, snippetID)
		if idx >= 0 {
			project.Snippets = append(project.Snippets[:idx], project.Snippets[idx+1:]...)
		}
		return nil
	})
}

func findSnippet(snippets []models.Snippet, id string) int {
	for i := range snippets {
		if snippets[i].ID == id {
			return i
		}
	}
	return -1
}
