package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"copydesk/internal/domain"
	"copydesk/internal/domain/models"
	"copydesk/internal/domain/repositories"
)

// PostgresPersonaRepository implements the PersonaRepository interface
type PostgresPersonaRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewPersonaRepository creates a new persona repository
func NewPersonaRepository(config *RepositoryConfig) repositories.PersonaRepository {
	return &PostgresPersonaRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

func (r *PostgresPersonaRepository) Create(ctx context.Context, persona *models.Persona) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, project_id, name, photo, demographics, psychographics, pain_points, goals, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, r.tables.Personas)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		persona.ID,
		persona.ProjectID,
		persona.Name,
		persona.Photo,
		persona.Demographics,
		persona.Psychographics,
		persona.PainPoints,
		persona.Goals,
		persona.CreatedAt,
		persona.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("create persona: %w", err)
	}

	return nil
}

func (r *PostgresPersonaRepository) GetByID(ctx context.Context, id, projectID string) (*models.Persona, error) {
	query := fmt.Sprintf(`
		SELECT id, project_id, name, photo, demographics, psychographics, pain_points, goals, created_at, updated_at
		FROM %s
		WHERE id = $1 AND project_id = $2
	`, r.tables.Personas)

	var persona models.Persona
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id, projectID).Scan(
		&persona.ID,
		&persona.ProjectID,
		&persona.Name,
		&persona.Photo,
		&persona.Demographics,
		&persona.Psychographics,
		&persona.PainPoints,
		&persona.Goals,
		&persona.CreatedAt,
		&persona.UpdatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("persona %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get persona: %w", err)
	}

	return &persona, nil
}

func (r *PostgresPersonaRepository) Update(ctx context.Context, persona *models.Persona) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, photo = $2, demographics = $3, psychographics = $4, pain_points = $5, goals = $6, updated_at = $7
		WHERE id = $8 AND project_id = $9
	`, r.tables.Personas)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		persona.Name,
		persona.Photo,
		persona.Demographics,
		persona.Psychographics,
		persona.PainPoints,
		persona.Goals,
		persona.UpdatedAt,
		persona.ID,
		persona.ProjectID,
	)

	if err != nil {
		return fmt.Errorf("update persona: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("persona %s: %w", persona.ID, domain.ErrNotFound)
	}

	return nil
}

func (r *PostgresPersonaRepository) Delete(ctx context.Context, id, projectID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND project_id = $2
	`, r.tables.Personas)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, projectID)
	if err != nil {
		return fmt.Errorf("delete persona: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("persona %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *PostgresPersonaRepository) ListByProject(ctx context.Context, projectID string) ([]models.Persona, error) {
	query := fmt.Sprintf(`
		SELECT id, project_id, name, photo, demographics, psychographics, pain_points, goals, created_at, updated_at
		FROM %s
		WHERE project_id = $1
		ORDER BY created_at ASC
	`, r.tables.Personas)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list personas: %w", err)
	}
	defer rows.Close()

	var personas []models.Persona
	for rows.Next() {
		var persona models.Persona
		err := rows.Scan(
			&persona.ID,
			&persona.ProjectID,
			&persona.Name,
			&persona.Photo,
			&persona.Demographics,
			&persona.Psychographics,
			&persona.PainPoints,
			&persona.Goals,
			&persona.CreatedAt,
			&persona.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan persona: %w", err)
		}
		personas = append(personas, persona)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate personas: %w", err)
	}

	return personas, nil
}
