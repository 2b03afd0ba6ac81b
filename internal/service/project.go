package service

import (
	"context"
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

type projectService struct {
	projectRepo repositories.ProjectRepository
	folderRepo  repositories.FolderRepository
	docRepo     repositories.DocumentRepository
	personaRepo repositories.PersonaRepository
	snippetRepo repositories.SnippetRepository
	voiceRepo   repositories.BrandVoiceRepository
	logger      *slog.Logger
}

// NewProjectService creates a new project service
func NewProjectService(
	projectRepo repositories.ProjectRepository,
	folderRepo repositories.FolderRepository,
	docRepo repositories.DocumentRepository,
	personaRepo repositories.PersonaRepository,
	snippetRepo repositories.SnippetRepository,
	voiceRepo repositories.BrandVoiceRepository,
	logger *slog.Logger,
) services.ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		folderRepo:  folderRepo,
		docRepo:     docRepo,
		personaRepo: personaRepo,
		snippetRepo: snippetRepo,
		voiceRepo:   voiceRepo,
		logger:      logger,
	}
}

// sanitizeName strips angle brackets so names are safe to echo into markup
func sanitizeName(name string) string {
	name = strings.ReplaceAll(name, "<", "")
	name = strings.ReplaceAll(name, ">", "")
	return strings.TrimSpace(name)
}

// CreateProject creates a new project
func (s *projectService) CreateProject(ctx context.Context, req *services.CreateProjectRequest) (*models.Project, error) {
	req.Name = sanitizeName(req.Name)

	if err := validation.ValidateStruct(req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.Name, validation.Required, validation.Length(1, config.MaxProjectNameLength)),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	now := time.Now()
	project := &models.Project{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Folders:   []models.Folder{},
		Documents: []models.Document{},
		Personas:  []models.Persona{},
		Snippets:  []models.Snippet{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.projectRepo.Create(ctx, req.UserID, project); err != nil {
		return nil, err
	}

	s.logger.Info("project created",
		"id", project.ID,
		"name", project.Name,
		"user_id", req.UserID,
	)

	return project, nil
}

// GetProject retrieves a project with its nested collections
func (s *projectService) GetProject(ctx context.Context, id, userID string) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if err := s.loadCollections(ctx, project); err != nil {
		return nil, err
	}

	return project, nil
}

// ListProjects retrieves all projects for a user, with nested collections
func (s *projectService) ListProjects(ctx context.Context, userID string) ([]models.Project, error) {
	projects, err := s.projectRepo.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i := range projects {
		if err := s.loadCollections(ctx, &projects[i]); err != nil {
			return nil, err
		}
	}

	return projects, nil
}

// UpdateProject renames a project
func (s *projectService) UpdateProject(ctx context.Context, id, userID string, req *services.UpdateProjectRequest) (*models.Project, error) {
	req.Name = sanitizeName(req.Name)

	if err := validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, config.MaxProjectNameLength)),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	project, err := s.projectRepo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	project.Name = req.Name
	project.UpdatedAt = time.Now()

	if err := s.projectRepo.Update(ctx, userID, project); err != nil {
		return nil, err
	}

	if err := s.loadCollections(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("project renamed", "id", id, "name", project.Name)

	return project, nil
}

// DeleteProject deletes a project and everything in it
func (s *projectService) DeleteProject(ctx context.Context, id, userID string) error {
	if err := s.projectRepo.Delete(ctx, id, userID); err != nil {
		return err
	}

	s.logger.Info("project deleted", "id", id, "user_id", userID)

	return nil
}

// SetBrandVoice creates or replaces the project's brand voice
func (s *projectService) SetBrandVoice(ctx context.Context, projectID, userID string, voice *models.BrandVoice) error {
	if err := validation.ValidateStruct(voice,
		validation.Field(&voice.BrandName, validation.Length(0, config.MaxProjectNameLength)),
	); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if _, err := s.projectRepo.GetByID(ctx, projectID, userID); err != nil {
		return err
	}

	if err := s.voiceRepo.Upsert(ctx, projectID, voice); err != nil {
		return err
	}

	s.logger.Info("brand voice set", "project_id", projectID, "brand_name", voice.BrandName)

	return nil
}

// GetBrandVoice returns the brand voice, or nil if none is set
func (s *projectService) GetBrandVoice(ctx context.Context, projectID, userID string) (*models.BrandVoice, error) {
	if _, err := s.projectRepo.GetByID(ctx, projectID, userID); err != nil {
		return nil, err
	}

	return s.voiceRepo.GetByProject(ctx, projectID)
}

// ClearBrandVoice removes the project's brand voice
func (s *projectService) ClearBrandVoice(ctx context.Context, projectID, userID string) error {
	if _, err := s.projectRepo.GetByID(ctx, projectID, userID); err != nil {
		return err
	}

	if err := s.voiceRepo.Delete(ctx, projectID); err != nil {
		return err
	}

	s.logger.Info("brand voice cleared", "project_id", projectID)

	return nil
}

// loadCollections hydrates the project aggregate from its child tables
func (s *projectService) loadCollections(ctx context.Context, project *models.Project) error {
	folders, err := s.folderRepo.ListByProject(ctx, project.ID)
	if err != nil {
		return fmt.Errorf("load folders: %w", err)
	}

	docs, err := s.docRepo.ListByProject(ctx, project.ID)
	if err != nil {
		return fmt.Errorf("load documents: %w", err)
	}

	personas, err := s.personaRepo.ListByProject(ctx, project.ID)
	if err != nil {
		return fmt.Errorf("load personas: %w", err)
	}

	snippets, err := s.snippetRepo.ListByProject(ctx, project.ID)
	if err != nil {
		return fmt.Errorf("load snippets: %w", err)
	}

	voice, err := s.voiceRepo.GetByProject(ctx, project.ID)
	if err != nil {
		return fmt.Errorf("load brand voice: %w", err)
	}

	if folders == nil {
		folders = []models.Folder{}
	}
	if docs == nil {
		docs = []models.Document{}
	}
	if personas == nil {
		personas = []models.Persona{}
	}
	if snippets == nil {
		snippets = []models.Snippet{}
	}

	project.Folders = folders
	project.Documents = docs
	project.Personas = personas
	project.Snippets = snippets
	project.BrandVoice = voice

	return nil
}
