package services

import (
	"context"

	"copydesk/internal/domain/models"
)

// PersonaService handles audience persona business logic
type PersonaService interface {
	CreatePersona(ctx context.Context, req *CreatePersonaRequest) (*models.Persona, error)
	GetPersona(ctx context.Context, id, projectID string) (*models.Persona, error)
	UpdatePersona(ctx context.Context, id string, req *UpdatePersonaRequest) (*models.Persona, error)
	DeletePersona(ctx context.Context, id, projectID string) error
	ListPersonas(ctx context.Context, projectID string) ([]models.Persona, error)
}

// CreatePersonaRequest represents a persona creation request
type CreatePersonaRequest struct {
	ProjectID      string  `json:"project_id"`
	Name           string  `json:"name"`
	Photo          *string `json:"photo,omitempty"`
	Demographics   string  `json:"demographics"`
	Psychographics string  `json:"psychographics"`
	PainPoints     string  `json:"pain_points"`
	Goals          string  `json:"goals"`
}

// UpdatePersonaRequest represents a persona update request
type UpdatePersonaRequest struct {
	ProjectID      string  `json:"project_id"`
	Name           *string `json:"name,omitempty"`
	Photo          *string `json:"photo,omitempty"`
	Demographics   *string `json:"demographics,omitempty"`
	Psychographics *string `json:"psychographics,omitempty"`
	PainPoints     *string `json:"pain_points,omitempty"`
	Goals          *string `json:"goals,omitempty"`
}
