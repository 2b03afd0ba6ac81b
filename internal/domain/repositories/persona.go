package repositories

import (
	"context"

	"copydesk/internal/domain/models"
)

// PersonaRepository defines data access operations for personas
type PersonaRepository interface {
	Create(ctx context.Context, persona *models.Persona) error
	GetByID(ctx context.Context, id, projectID string) (*models.Persona, error)
	Update(ctx context.Context, persona *models.Persona) error
	Delete(ctx context.Context, id, projectID string) error
	ListByProject(ctx context.Context, projectID string) ([]models.Persona, error)
}
