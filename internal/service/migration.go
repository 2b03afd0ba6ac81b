package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"copydesk/internal/domain"
	"copydesk/internal/domain/models"
	"copydesk/internal/domain/repositories"
)

// MigrationService imports a full set of locally stored projects in one
// transaction. Used by clients promoting their local data to the cloud.
type MigrationService struct {
	txManager   repositories.TransactionManager
	projectRepo repositories.ProjectRepository
	folderRepo  repositories.FolderRepository
	docRepo     repositories.DocumentRepository
	personaRepo repositories.PersonaRepository
	snippetRepo repositories.SnippetRepository
	voiceRepo   repositories.BrandVoiceRepository
	logger      *slog.Logger
}

// NewMigrationService creates a new migration service
func NewMigrationService(
	txManager repositories.TransactionManager,
	projectRepo repositories.ProjectRepository,
	folderRepo repositories.FolderRepository,
	docRepo repositories.DocumentRepository,
	personaRepo repositories.PersonaRepository,
	snippetRepo repositories.SnippetRepository,
	voiceRepo repositories.BrandVoiceRepository,
	logger *slog.Logger,
) *MigrationService {
	return &MigrationService{
		txManager:   txManager,
		projectRepo: projectRepo,
		folderRepo:  folderRepo,
		docRepo:     docRepo,
		personaRepo: personaRepo,
		snippetRepo: snippetRepo,
		voiceRepo:   voiceRepo,
		logger:      logger,
	}
}

// ImportResult summarizes what a migration run wrote
type ImportResult struct {
	Projects  int `json:"projects"`
	Folders   int `json:"folders"`
	Documents int `json:"documents"`
	Personas  int `json:"personas"`
	Snippets  int `json:"snippets"`
	Skipped   int `json:"skipped"`
}

// Import writes the given project aggregates for the user. Projects that
// already exist are skipped rather than overwritten, so re-running a
// migration never clobbers cloud edits. All writes share one transaction.
func (s *MigrationService) Import(ctx context.Context, userID string, projects []models.Project) (*ImportResult, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id required", domain.ErrValidation)
	}

	result := &ImportResult{}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		for i := range projects {
			project := &projects[i]

			_, err := s.projectRepo.GetByID(txCtx, project.ID, userID)
			if err == nil {
				result.Skipped++
				continue
			}
			if !errors.Is(err, domain.ErrNotFound) {
				return err
			}

			if err := s.importProject(txCtx, userID, project, result); err != nil {
				return fmt.Errorf("import project %s: %w", project.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("migration imported",
		"user_id", userID,
		"projects", result.Projects,
		"documents", result.Documents,
		"skipped", result.Skipped,
	)

	return result, nil
}

func (s *MigrationService) importProject(ctx context.Context, userID string, project *models.Project, result *ImportResult) error {
	if err := s.projectRepo.Create(ctx, userID, project); err != nil {
		return err
	}
	result.Projects++

	for i := range project.Folders {
		if err := s.folderRepo.Create(ctx, &project.Folders[i]); err != nil {
			return err
		}
		result.Folders++
	}

	for i := range project.Documents {
		if err := s.docRepo.Create(ctx, &project.Documents[i]); err != nil {
			return err
		}
		result.Documents++
	}

	for i := range project.Personas {
		if err := s.personaRepo.Create(ctx, &project.Personas[i]); err != nil {
			return err
		}
		result.Personas++
	}

	for i := range project.Snippets {
		if err := s.snippetRepo.Create(ctx, &project.Snippets[i]); err != nil {
			return err
		}
		result.Snippets++
	}

	if project.BrandVoice != nil {
		if err := s.voiceRepo.Upsert(ctx, project.ID, project.BrandVoice); err != nil {
			return err
		}
	}

	return nil
}
