package local

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"copydesk/internal/config"
	"copydesk/internal/domain"
	"copydesk/internal/domain/models"
)

// CreatePersona creates an audience persona in the project
func (s *Store) CreatePersona(projectID string, persona models.Persona) (*models.Persona, error) {
	persona.Name = SanitizeName(persona.Name)
	if err := validation.Validate(persona.Name, validation.Required, validation.Length(1, config.MaxPersonaNameLength)); err != nil {
		return nil, fmt.Errorf("%w: persona name %v", domain.ErrValidation, err)
	}
	if err := validatePhoto(persona.Photo); err != nil {
		return nil, err
	}

	now := time.Now()
	persona.ID = uuid.NewString()
	persona.ProjectID = projectID
	persona.CreatedAt = now
	persona.UpdatedAt = now

	err := s.mutateProject(projectID, func(project *models.Project) error {
		project.Personas = append(project.Personas, persona)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("persona created", "id", persona.ID, "name", persona.Name, "project_id", projectID)

	return &persona, nil
}

// PersonaPatch carries the caller-updatable persona fields
type PersonaPatch struct {
	Name           *string
	Photo          *string
	Demographics   *string
	Psychographics *string
	PainPoints     *string
	Goals          *string
}

// UpdatePersona merges the patch into the persona
func (s *Store) UpdatePersona(projectID, personaID string, patch PersonaPatch) (*models.Persona, error) {
	var out models.Persona
	err := s.mutateProject(projectID, func(project *models.Project) error {
		idx := findPersona(project.Personas, personaID)
		if idx < 0 {
			return fmt.Errorf("persona %s: %w", personaID, domain.ErrNotFound)
		}
		persona := &project.Personas[idx]

		if patch.Name != nil {
			name := SanitizeName(*patch.Name)
			if err := validation.Validate(name, validation.Required, validation.Length(1, config.MaxPersonaNameLength)); err != nil {
				return fmt.Errorf("%w: persona name %v", domain.ErrValidation, err)
			}
			persona.Name = name
		}
		if patch.Photo != nil {
			if err := validatePhoto(patch.Photo); err != nil {
				return err
			}
			persona.Photo = patch.Photo
		}
		if patch.Demographics != nil {
			persona.Demographics = *patch.Demographics
		}
		if patch.Psychographics != nil {
			persona.Psychographics = *patch.Psychographics
		}
		if patch.PainPoints != nil {
			persona.PainPoints = *patch.PainPoints
		}
		if patch.Goals != nil {
			persona.Goals = *patch.Goals
		}

		persona.UpdatedAt = time.Now()
		out = *persona
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}

// DeletePersona removes a persona
func (s *Store) DeletePersona(projectID, personaID string) error {
	err := s.mutateProject(projectID, func(project *models.Project) error {
		idx := findPersona(project.Personas, personaID)
		if idx < 0 {
			return fmt.Errorf("persona %s: %w", personaID, domain.ErrNotFound)
		}
		project.Personas = append(project.Personas[:idx], project.Personas[idx+1:]...)
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("persona deleted", "id", personaID, "project_id", projectID)

	return nil
}

// GetAllPersonas returns every persona in the project
func (s *Store) GetAllPersonas(projectID string) ([]models.Persona, error) {
	var out []models.Persona
	err := s.viewProject(projectID, func(project *models.Project) error {
		out = append([]models.Persona{}, project.Personas...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// validatePhoto enforces the image data-URI format and decoded size cap
func validatePhoto(photo *string) error {
	if photo == nil || *photo == "" {
		return nil
	}

	if !strings.HasPrefix(*photo, "data:image/") {
		return fmt.Errorf("%w: photo must be an image data URI", domain.ErrValidation)
	}

	_, payload, found := strings.Cut(*photo, ";base64,")
	if !found {
		return fmt.Errorf("%w: photo must be base64 encoded", domain.ErrValidation)
	}

	if base64.StdEncoding.DecodedLen(len(payload)) > config.MaxPersonaPhotoBytes {
		return fmt.Errorf("%w: photo exceeds %d bytes", domain.ErrValidation, config.MaxPersonaPhotoBytes)
	}

	return nil
}

func findPersona(personas []models.Persona, id string) int {
	for i := range personas {
		if personas[i].ID == id {
			return i
		}
	}
	return -1
}
