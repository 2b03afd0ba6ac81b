package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"copydesk/internal/domain"
	"copydesk/internal/domain/models"
	"copydesk/internal/domain/repositories"
)

// PostgresDocumentRepository implements the DocumentRepository interface
type PostgresDocumentRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(config *RepositoryConfig) repositories.DocumentRepository {
	return &PostgresDocumentRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

const documentColumns = `id, project_id, folder_id, base_title, title, version, parent_version_id, content, word_count, char_count, tags, template_id, created_at, updated_at`

func scanDocument(row pgx.Row, doc *models.Document) error {
	return row.Scan(
		&doc.ID,
		&doc.ProjectID,
		&doc.FolderID,
		&doc.BaseTitle,
		&doc.Title,
		&doc.Version,
		&doc.ParentVersionID,
		&doc.Content,
		&doc.Metadata.WordCount,
		&doc.Metadata.CharCount,
		&doc.Metadata.Tags,
		&doc.Metadata.TemplateID,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)
}

// Create creates a new document
func (r *PostgresDocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, r.tables.Documents, documentColumns)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		doc.ID,
		doc.ProjectID,
		doc.FolderID,
		doc.BaseTitle,
		doc.Title,
		doc.Version,
		doc.ParentVersionID,
		doc.Content,
		doc.Metadata.WordCount,
		doc.Metadata.CharCount,
		doc.Metadata.Tags,
		doc.Metadata.TemplateID,
		doc.CreatedAt,
		doc.UpdatedAt,
	)

	if err != nil {
		if IsPgDuplicateError(err) {
			// Unique (project_id, base_title, version)
			return &domain.ConflictError{
				Message:      fmt.Sprintf("document %q already has a version %d", doc.BaseTitle, doc.Version),
				ResourceType: "document",
				ResourceID:   doc.ID,
			}
		}
		return fmt.Errorf("create document: %w", err)
	}

	return nil
}

// GetByID retrieves a document by ID
func (r *PostgresDocumentRepository) GetByID(ctx context.Context, id, projectID string) (*models.Document, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND project_id = $2
	`, documentColumns, r.tables.Documents)

	var doc models.Document
	executor := GetExecutor(ctx, r.pool)
	err := scanDocument(executor.QueryRow(ctx, query, id, projectID), &doc)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get document: %w", err)
	}

	return &doc, nil
}

// Update updates an existing document
func (r *PostgresDocumentRepository) Update(ctx context.Context, doc *models.Document) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET folder_id = $1, base_title = $2, title = $3, content = $4,
		    word_count = $5, char_count = $6, tags = $7, template_id = $8, updated_at = $9
		WHERE id = $10 AND project_id = $11
	`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		doc.FolderID,
		doc.BaseTitle,
		doc.Title,
		doc.Content,
		doc.Metadata.WordCount,
		doc.Metadata.CharCount,
		doc.Metadata.Tags,
		doc.Metadata.TemplateID,
		doc.UpdatedAt,
		doc.ID,
		doc.ProjectID,
	)

	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("document %s: %w", doc.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete deletes a document
func (r *PostgresDocumentRepository) Delete(ctx context.Context, id, projectID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND project_id = $2
	`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, projectID)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ListByFolder lists documents in a folder (nil folderID = project root)
func (r *PostgresDocumentRepository) ListByFolder(ctx context.Context, folderID *string, projectID string) ([]models.Document, error) {
	var query string
	var args []interface{}

	if folderID == nil {
		query = fmt.Sprintf(`
			SELECT %s
			FROM %s
			WHERE project_id = $1 AND folder_id IS NULL
			ORDER BY LOWER(title) ASC
		`, documentColumns, r.tables.Documents)
		args = append(args, projectID)
	} else {
		query = fmt.Sprintf(`
			SELECT %s
			FROM %s
			WHERE project_id = $1 AND folder_id = $2
			ORDER BY LOWER(title) ASC
		`, documentColumns, r.tables.Documents)
		args = append(args, projectID, *folderID)
	}

	return r.queryDocuments(ctx, query, args...)
}

// ListByProject lists all documents in a project
func (r *PostgresDocumentRepository) ListByProject(ctx context.Context, projectID string) ([]models.Document, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE project_id = $1
		ORDER BY created_at ASC
	`, documentColumns, r.tables.Documents)

	return r.queryDocuments(ctx, query, projectID)
}

// ListVersions returns the version family for a base title, ascending by version
func (r *PostgresDocumentRepository) ListVersions(ctx context.Context, projectID, baseTitle string) ([]models.Document, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE project_id = $1 AND base_title = $2
		ORDER BY version ASC
	`, documentColumns, r.tables.Documents)

	return r.queryDocuments(ctx, query, projectID, baseTitle)
}

// MaxVersion returns the highest version number in a family (0 if none)
func (r *PostgresDocumentRepository) MaxVersion(ctx context.Context, projectID, baseTitle string) (int, error) {
	query := fmt.Sprintf(`
		SELECT COALESCE(MAX(version), 0)
		FROM %s
		WHERE project_id = $1 AND base_title = $2
	`, r.tables.Documents)

	var max int
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, projectID, baseTitle).Scan(&max); err != nil {
		return 0, fmt.Errorf("max document version: %w", err)
	}

	return max, nil
}

// CountByFolder counts documents assigned to a folder
func (r *PostgresDocumentRepository) CountByFolder(ctx context.Context, folderID, projectID string) (int, error) {
	query := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM %s
		WHERE project_id = $1 AND folder_id = $2
	`, r.tables.Documents)

	var count int
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, projectID, folderID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count documents in folder: %w", err)
	}

	return count, nil
}

func (r *PostgresDocumentRepository) queryDocuments(ctx context.Context, query string, args ...interface{}) ([]models.Document, error) {
	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	var docs []models.Document
	for rows.Next() {
		var doc models.Document
		if err := scanDocument(rows, &doc); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}

	return docs, nil
}
