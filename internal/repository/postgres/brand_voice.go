package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"copydesk/internal/domain/models"
	"copydesk/internal/domain/repositories"
)

// PostgresBrandVoiceRepository implements the BrandVoiceRepository interface
type PostgresBrandVoiceRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewBrandVoiceRepository creates a new brand voice repository
func NewBrandVoiceRepository(config *RepositoryConfig) repositories.BrandVoiceRepository {
	return &PostgresBrandVoiceRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Upsert creates or replaces the project's brand voice
func (r *PostgresBrandVoiceRepository) Upsert(ctx context.Context, projectID string, voice *models.BrandVoice) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (project_id, brand_name, tone, approved_phrases, forbidden_phrases, brand_values, mission, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (project_id) DO UPDATE SET
			brand_name = EXCLUDED.brand_name,
			tone = EXCLUDED.tone,
			approved_phrases = EXCLUDED.approved_phrases,
			forbidden_phrases = EXCLUDED.forbidden_phrases,
			brand_values = EXCLUDED.brand_values,
			mission = EXCLUDED.mission,
			updated_at = EXCLUDED.updated_at
	`, r.tables.BrandVoices)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		projectID,
		voice.BrandName,
		voice.Tone,
		voice.ApprovedPhrases,
		voice.ForbiddenPhrases,
		voice.Values,
		voice.Mission,
		time.Now(),
	)

	if err != nil {
		return fmt.Errorf("upsert brand voice: %w", err)
	}

	return nil
}

// GetByProject returns the brand voice, or nil if none is set
func (r *PostgresBrandVoiceRepository) GetByProject(ctx context.Context, projectID string) (*models.BrandVoice, error) {
	query := fmt.Sprintf(`
		SELECT brand_name, tone, approved_phrases, forbidden_phrases, brand_values, mission
		FROM %s
		WHERE project_id = $1
	`, r.tables.BrandVoices)

	var voice models.BrandVoice
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, projectID).Scan(
		&voice.BrandName,
		&voice.Tone,
		&voice.ApprovedPhrases,
		&voice.ForbiddenPhrases,
		&voice.Values,
		&voice.Mission,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			// No brand voice set - not an error
			return nil, nil
		}
		return nil, fmt.Errorf("get brand voice: %w", err)
	}

	return &voice, nil
}

// Delete clears the project's brand voice
func (r *PostgresBrandVoiceRepository) Delete(ctx context.Context, projectID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE project_id = $1`, r.tables.BrandVoices)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, projectID); err != nil {
		return fmt.Errorf("delete brand voice: %w", err)
	}

	return nil
}
