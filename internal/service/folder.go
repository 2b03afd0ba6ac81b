package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"copydesk/internal/config"
	"copydesk/internal/domain"
	"copydesk/internal/domain/models"
	"copydesk/internal/domain/repositories"
	"copydesk/internal/domain/services"
)

type folderService struct {
	folderRepo repositories.FolderRepository
	docRepo    repositories.DocumentRepository
	logger     *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	folderRepo repositories.FolderRepository,
	docRepo repositories.DocumentRepository,
	logger *slog.Logger,
) services.FolderService {
	return &folderService{
		folderRepo: folderRepo,
		docRepo:    docRepo,
		logger:     logger,
	}
}

// CreateFolder creates a new folder
func (s *folderService) CreateFolder(ctx context.Context, req *services.CreateFolderRequest) (*models.Folder, error) {
	req.Name = sanitizeName(req.Name)
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// Normalize empty string to nil for root-level folders
	if req.ParentID != nil && *req.ParentID == "" {
		req.ParentID = nil
	}

	if req.ParentID != nil {
		if _, err := s.folderRepo.GetByID(ctx, *req.ParentID, req.ProjectID); err != nil {
			return nil, fmt.Errorf("parent folder: %w", err)
		}
	}

	now := time.Now()
	folder := &models.Folder{
		ID:             uuid.NewString(),
		ProjectID:      req.ProjectID,
		ParentFolderID: req.ParentID,
		Name:           req.Name,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.folderRepo.Create(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"project_id", req.ProjectID,
		"parent_id", req.ParentID,
	)

	return folder, nil
}

// GetFolder retrieves a folder
func (s *folderService) GetFolder(ctx context.Context, id, projectID string) (*models.Folder, error) {
	return s.folderRepo.GetByID(ctx, id, projectID)
}

// UpdateFolder renames or moves a folder
func (s *folderService) UpdateFolder(ctx context.Context, id string, req *services.UpdateFolderRequest) (*models.Folder, error) {
	if req.Name != nil {
		name := sanitizeName(*req.Name)
		req.Name = &name
	}
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	folder, err := s.folderRepo.GetByID(ctx, id, req.ProjectID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		folder.Name = *req.Name
	}

	if req.ParentID != nil {
		if *req.ParentID != "" {
			parent, err := s.folderRepo.GetByID(ctx, *req.ParentID, req.ProjectID)
			if err != nil {
				return nil, fmt.Errorf("parent folder: %w", err)
			}

			if err := s.validateNoCircularReference(ctx, id, *req.ParentID, req.ProjectID); err != nil {
				return nil, err
			}

			folder.ParentFolderID = &parent.ID
		} else {
			// Move to root
			folder.ParentFolderID = nil
		}
	}

	folder.UpdatedAt = time.Now()

	if err := s.folderRepo.Update(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info("folder updated",
		"id", folder.ID,
		"name", folder.Name,
		"parent_id", folder.ParentFolderID,
	)

	return folder, nil
}

// DeleteFolder deletes a folder. Folders with child folders or documents
// are protected; contents must be moved or deleted first.
func (s *folderService) DeleteFolder(ctx context.Context, id, projectID string) error {
	folder, err := s.folderRepo.GetByID(ctx, id, projectID)
	if err != nil {
		return err
	}

	childCount, err := s.folderRepo.CountChildren(ctx, id, projectID)
	if err != nil {
		return fmt.Errorf("check child folders: %w", err)
	}
	if childCount > 0 {
		return &domain.StructuralError{
			Message: fmt.Sprintf("folder %q contains %d subfolders", folder.Name, childCount),
			Reason:  domain.ErrFolderNotEmpty,
		}
	}

	docCount, err := s.docRepo.CountByFolder(ctx, id, projectID)
	if err != nil {
		return fmt.Errorf("check documents: %w", err)
	}
	if docCount > 0 {
		return &domain.StructuralError{
			Message: fmt.Sprintf("folder %q contains %d documents", folder.Name, docCount),
			Reason:  domain.ErrFolderNotEmpty,
		}
	}

	if err := s.folderRepo.Delete(ctx, id, projectID); err != nil {
		return err
	}

	s.logger.Info("folder deleted",
		"id", id,
		"name", folder.Name,
		"project_id", projectID,
	)

	return nil
}

// ListChildren lists child folders and documents at a level
func (s *folderService) ListChildren(ctx context.Context, folderID *string, projectID string) (*services.FolderContents, error) {
	var folder *models.Folder
	var err error

	if folderID != nil && *folderID != "" {
		folder, err = s.folderRepo.GetByID(ctx, *folderID, projectID)
		if err != nil {
			return nil, err
		}
	} else {
		folderID = nil
	}

	childFolders, err := s.folderRepo.ListChildren(ctx, folderID, projectID)
	if err != nil {
		return nil, fmt.Errorf("list child folders: %w", err)
	}

	docs, err := s.docRepo.ListByFolder(ctx, folderID, projectID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	if childFolders == nil {
		childFolders = []models.Folder{}
	}
	if docs == nil {
		docs = []models.Document{}
	}

	return &services.FolderContents{
		Folder:    folder,
		Folders:   childFolders,
		Documents: docs,
	}, nil
}

// GetPath computes the root-to-leaf display path for a folder
func (s *folderService) GetPath(ctx context.Context, folderID, projectID string) (string, error) {
	return s.folderRepo.GetPath(ctx, folderID, projectID)
}

// ListDescendants returns every folder underneath the given one, breadth
// first. The visited set keeps corrupted cyclic data from looping.
func (s *folderService) ListDescendants(ctx context.Context, folderID, projectID string) ([]models.Folder, error) {
	if _, err := s.folderRepo.GetByID(ctx, folderID, projectID); err != nil {
		return nil, err
	}

	all, err := s.folderRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	byParent := make(map[string][]models.Folder)
	for _, f := range all {
		if f.ParentFolderID != nil {
			byParent[*f.ParentFolderID] = append(byParent[*f.ParentFolderID], f)
		}
	}

	descendants := []models.Folder{}
	visited := map[string]bool{folderID: true}
	queue := []string{folderID}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, child := range byParent[current] {
			if visited[child.ID] {
				continue
			}
			visited[child.ID] = true
			descendants = append(descendants, child)
			queue = append(queue, child.ID)
		}
	}

	return descendants, nil
}

// validateCreateRequest validates a folder creation request
func (s *folderService) validateCreateRequest(req *services.CreateFolderRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.ProjectID, validation.Required),
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxFolderNameLength),
		),
	)
}

// validateUpdateRequest validates a folder update request
func (s *folderService) validateUpdateRequest(req *services.UpdateFolderRequest) error {
	if req.Name == nil && req.ParentID == nil {
		return fmt.Errorf("at least one field must be provided")
	}

	rules := []*validation.FieldRules{
		validation.Field(&req.ProjectID, validation.Required),
	}

	if req.Name != nil {
		rules = append(rules,
			validation.Field(&req.Name,
				validation.Required,
				validation.Length(1, config.MaxFolderNameLength),
			),
		)
	}

	return validation.ValidateStruct(req, rules...)
}

// validateNoCircularReference ensures moving a folder under newParentID
// would not create a cycle. It walks the ancestor chain from the new
// parent upward; a visited set guards against pre-existing cycles in data.
func (s *folderService) validateNoCircularReference(ctx context.Context, folderID, newParentID, projectID string) error {
	if folderID == newParentID {
		return &domain.StructuralError{
			Message: "cannot move a folder into itself",
			Reason:  domain.ErrCircularReference,
		}
	}

	visited := make(map[string]bool)
	currentID := newParentID

	for {
		if visited[currentID] {
			// Cycle already present in stored data
			return &domain.StructuralError{
				Message: "folder hierarchy contains a cycle",
				Reason:  domain.ErrCircularReference,
			}
		}
		visited[currentID] = true

		current, err := s.folderRepo.GetByID(ctx, currentID, projectID)
		if err != nil {
			return err
		}

		if current.ParentFolderID == nil {
			return nil
		}

		if *current.ParentFolderID == folderID {
			return &domain.StructuralError{
				Message: "cannot move a folder under its own descendant",
				Reason:  domain.ErrCircularReference,
			}
		}

		currentID = *current.ParentFolderID
	}
}
