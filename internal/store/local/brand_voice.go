package local

import (
	"fmt"

	"copydesk/internal/domain"
	"copydesk/internal/domain/models"
)

// SetBrandVoice creates or replaces the project's brand voice singleton
func (s *Store) SetBrandVoice(projectID string, voice models.BrandVoice) error {
	return s.mutateProject(projectID, func(project *models.Project) error {
		project.BrandVoice = &voice
		return nil
	})
}

// GetBrandVoice returns the project's brand voice, or nil if none is set
func (s *Store) GetBrandVoice(projectID string) (*models.BrandVoice, error) {
	var out *models.BrandVoice
	err := s.viewProject(projectID, func(project *models.Project) error {
		if project.BrandVoice != nil {
			voice := *project.BrandVoice
			out = &voice
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ClearBrandVoice removes the project's brand voice
func (s *Store) ClearBrandVoice(projectID string) error {
	return s.mutateProject(projectID, func(project *models.Project) error {
		if project.BrandVoice == nil {
			return fmt.Errorf("brand voice: %w", domain.ErrNotFound)
		}
		project.BrandVoice = nil
		return nil
	})
}
