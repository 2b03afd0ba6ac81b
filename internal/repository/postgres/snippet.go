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

// PostgresSnippetRepository implements the SnippetRepository interface
type PostgresSnippetRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewSnippetRepository creates a new snippet repository
func NewSnippetRepository(config *RepositoryConfig) repositories.SnippetRepository {
	return &PostgresSnippetRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

func (r *PostgresSnippetRepository) Create(ctx context.Context, snippet *models.Snippet) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, project_id, name, content, description, tags, usage_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, r.tables.Snippets)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		snippet.ID,
		snippet.ProjectID,
		snippet.Name,
		snippet.Content,
		snippet.Description,
		snippet.Tags,
		snippet.UsageCount,
		snippet.CreatedAt,
		snippet.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("create snippet: %w", err)
	}

	return nil
}

func (r *PostgresSnippetRepository) GetByID(ctx context.Context, id, projectID string) (*models.Snippet, error) {
	query := fmt.Sprintf(`
		SELECT id, project_id, name, content, description, tags, usage_count, created_at, updated_at
		FROM %s
		WHERE id = $1 AND project_id = $2
	`, r.tables.Snippets)

	var snippet models.Snippet
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id, projectID).Scan(
		&snippet.ID,
		&snippet.ProjectID,
		&snippet.Name,
		&snippet.Content,
		&snippet.Description,
		&snippet.Tags,
		&snippet.UsageCount,
		&snippet.CreatedAt,
		&snippet.UpdatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("snippet %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get snippet: %w", err)
	}

	return &snippet, nil
}

func (r *PostgresSnippetRepository) Update(ctx context.Context, snippet *models.Snippet) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, content = $2, description = $3, tags = $4, updated_at = $5
		WHERE id = $6 AND project_id = $7
	`, r.tables.Snippets)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		snippet.Name,
		snippet.Content,
		snippet.Description,
		snippet.Tags,
		snippet.UpdatedAt,
		snippet.ID,
		snippet.ProjectID,
	)

	if err != nil {
		return fmt.Errorf("update snippet: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("snippet %s: %w", snippet.ID, domain.ErrNotFound)
	}

	return nil
}

func (r *PostgresSnippetRepository) Delete(ctx context.Context, id, projectID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND project_id = $2
	`, r.tables.Snippets)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, projectID)
	if err != nil {
		return fmt.Errorf("delete snippet: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("snippet %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *PostgresSnippetRepository) ListByProject(ctx context.Context, projectID string) ([]models.Snippet, error) {
	query := fmt.Sprintf(`
		SELECT id, project_id, name, content, description, tags, usage_count, created_at, updated_at
		FROM %s
		WHERE project_id = $1
		ORDER BY created_at ASC
	`, r.tables.Snippets)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list snippets: %w", err)
	}
	defer rows.Close()

	var snippets []models.Snippet
	for rows.Next() {
		var snippet models.Snippet
		err := rows.Scan(
			&snippet.ID,
			&snippet.ProjectID,
			&snippet.Name,
			&snippet.Content,
			&snippet.Description,
			&snippet.Tags,
			&snippet.UsageCount,
			&snippet.CreatedAt,
			&snippet.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan snippet: %w", err)
		}
		snippets = append(snippets, snippet)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snippets: %w", err)
	}

	return snippets, nil
}

// IncrementUsage bumps the usage counter and returns the new value
func (r *PostgresSnippetRepository) IncrementUsage(ctx context.Context, id, projectID string) (int, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET usage_count = usage_count + 1, updated_at = NOW()
		WHERE id = $1 AND project_id = $2
		RETURNING usage_count
	`, r.tables.Snippets)

	var count int
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id, projectID).Scan(&count)
	if err != nil {
		if IsPgNoRowsError(err) {
			return 0, fmt.Errorf("snippet %s: %w", id, domain.ErrNotFound)
		}
		return 0, fmt.Errorf("increment snippet usage: %w", err)
	}

	return count, nil
}
