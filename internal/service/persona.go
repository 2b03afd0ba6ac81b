package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"copydesk/internal/config"
	"copydesk/internal/domain"
	"copydesk/internal/domain/models"
	"copydesk/internal/domain/repositories"
	"copydesk/internal/domain/services"
)

type personaService struct {
	personaRepo repositories.PersonaRepository
	logger      *slog.Logger
}

// NewPersonaService creates a new persona service
func NewPersonaService(personaRepo repositories.PersonaRepository, logger *slog.Logger) services.PersonaService {
	return &personaService{
		personaRepo: personaRepo,
		logger:      logger,
	}
}

// CreatePersona creates a new audience persona
func (s *personaService) CreatePersona(ctx context.Context, req *services.CreatePersonaRequest) (*models.Persona, error) {
	req.Name = sanitizeName(req.Name)
	if err := validation.ValidateStruct(req,
		validation.Field(&req.ProjectID, validation.Required),
		validation.Field(&req.Name, validation.Required, validation.Length(1, config.MaxPersonaNameLength)),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := validatePersonaPhoto(req.Photo); err != nil {
		return nil, err
	}

	now := time.Now()
	persona := &models.Persona{
		ID:             uuid.NewString(),
		ProjectID:      req.ProjectID,
		Name:           req.Name,
		Photo:          req.Photo,
		Demographics:   req.Demographics,
		Psychographics: req.Psychographics,
		PainPoints:     req.PainPoints,
		Goals:          req.Goals,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.personaRepo.Create(ctx, persona); err != nil {
		return nil, err
	}

	s.logger.Info("persona created",
		"id", persona.ID,
		"name", persona.Name,
		"project_id", req.ProjectID,
	)

	return persona, nil
}

// GetPersona retrieves a persona by ID
func (s *personaService) GetPersona(ctx context.Context, id, projectID string) (*models.Persona, error) {
	return s.personaRepo.GetByID(ctx, id, projectID)
}

// UpdatePersona updates a persona's profile fields
func (s *personaService) UpdatePersona(ctx context.Context, id string, req *services.UpdatePersonaRequest) (*models.Persona, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.ProjectID, validation.Required),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	persona, err := s.personaRepo.GetByID(ctx, id, req.ProjectID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := sanitizeName(*req.Name)
		if err := validation.Validate(name, validation.Required, validation.Length(1, config.MaxPersonaNameLength)); err != nil {
			return nil, fmt.Errorf("%w: name %v", domain.ErrValidation, err)
		}
		persona.Name = name
	}
	if req.Photo != nil {
		if err := validatePersonaPhoto(req.Photo); err != nil {
			return nil, err
		}
		persona.Photo = req.Photo
	}
	if req.Demographics != nil {
		persona.Demographics = *req.Demographics
	}
	if req.Psychographics != nil {
		persona.Psychographics = *req.Psychographics
	}
	if req.PainPoints != nil {
		persona.PainPoints = *req.PainPoints
	}
	if req.Goals != nil {
		persona.Goals = *req.Goals
	}

	persona.UpdatedAt = time.Now()

	if err := s.personaRepo.Update(ctx, persona); err != nil {
		return nil, err
	}

	s.logger.Info("persona updated", "id", persona.ID, "name", persona.Name)

	return persona, nil
}

// DeletePersona deletes a persona
func (s *personaService) DeletePersona(ctx context.Context, id, projectID string) error {
	if err := s.personaRepo.Delete(ctx, id, projectID); err != nil {
		return err
	}

	s.logger.Info("persona deleted", "id", id, "project_id", projectID)

	return nil
}

// ListPersonas lists all personas in a project
func (s *personaService) ListPersonas(ctx context.Context, projectID string) ([]models.Persona, error) {
	personas, err := s.personaRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if personas == nil {
		personas = []models.Persona{}
	}
	return personas, nil
}

// validatePersonaPhoto enforces the data-URI format and the decoded size cap
func validatePersonaPhoto(photo *string) error {
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
