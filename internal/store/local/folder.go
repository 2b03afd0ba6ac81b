package local

import (
	"fmt"
	"sort"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"copydesk/internal/config"
	"copydesk/internal/domain"
	"copydesk/internal/domain/models"
)

// CreateFolder creates a folder in the project, optionally under a parent
func (s *Store) CreateFolder(projectID, name string, parentID *string) (*models.Folder, error) {
	name = SanitizeName(name)
	if err := validation.Validate(name, validation.Required, validation.Length(1, config.MaxFolderNameLength)); err != nil {
		return nil, fmt.Errorf("%w: folder name %v", domain.ErrValidation, err)
	}

	if parentID != nil && *parentID == "" {
		parentID = nil
	}

	now := time.Now()
	folder := models.Folder{
		ID:             uuid.NewString(),
		ProjectID:      projectID,
		ParentFolderID: parentID,
		Name:           name,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err := s.mutateProject(projectID, func(project *models.Project) error {
		if parentID != nil && findFolder(project.Folders, *parentID) < 0 {
			return fmt.Errorf("parent folder %s: %w", *parentID, domain.ErrNotFound)
		}
		project.Folders = append(project.Folders, folder)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder created", "id", folder.ID, "name", folder.Name, "project_id", projectID)

	return &folder, nil
}

// RenameFolder changes a folder's name
func (s *Store) RenameFolder(projectID, folderID, name string) (*models.Folder, error) {
	name = SanitizeName(name)
	if err := validation.Validate(name, validation.Required, validation.Length(1, config.MaxFolderNameLength)); err != nil {
		return nil, fmt.Errorf("%w: folder name %v", domain.ErrValidation, err)
	}

	var out models.Folder
	err := s.mutateProject(projectID, func(project *models.Project) error {
		idx := findFolder(project.Folders, folderID)
		if idx < 0 {
			return fmt.Errorf("folder %s: %w", folderID, domain.ErrNotFound)
		}
		project.Folders[idx].Name = name
		project.Folders[idx].UpdatedAt = time.Now()
		out = project.Folders[idx]
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}

// MoveFolder reparents a folder. nil newParentID moves it to the project
// root. Moves that would make the folder its own ancestor are rejected.
func (s *Store) MoveFolder(projectID, folderID string, newParentID *string) (*models.Folder, error) {
	if newParentID != nil && *newParentID == "" {
		newParentID = nil
	}

	var out models.Folder
	err := s.mutateProject(projectID, func(project *models.Project) error {
		idx := findFolder(project.Folders, folderID)
		if idx < 0 {
			return fmt.Errorf("folder %s: %w", folderID, domain.ErrNotFound)
		}

		if newParentID != nil {
			if findFolder(project.Folders, *newParentID) < 0 {
				return fmt.Errorf("parent folder %s: %w", *newParentID, domain.ErrNotFound)
			}
			if err := checkNoCycle(project.Folders, folderID, *newParentID); err != nil {
				return err
			}
		}

		project.Folders[idx].ParentFolderID = newParentID
		project.Folders[idx].UpdatedAt = time.Now()
		out = project.Folders[idx]
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder moved", "id", folderID, "parent_id", newParentID, "project_id", projectID)

	return &out, nil
}

// DeleteFolder removes an empty folder. Folders still holding child
// folders or documents are protected; nothing cascades.
func (s *Store) DeleteFolder(projectID, folderID string) error {
	err := s.mutateProject(projectID, func(project *models.Project) error {
		idx := findFolder(project.Folders, folderID)
		if idx < 0 {
			return fmt.Errorf("folder %s: %w", folderID, domain.ErrNotFound)
		}

		for i := range project.Folders {
			if project.Folders[i].ParentFolderID != nil && *project.Folders[i].ParentFolderID == folderID {
				return &domain.StructuralError{
					Message: fmt.Sprintf("folder %q still has child folders", project.Folders[idx].Name),
					Reason:  domain.ErrFolderNotEmpty,
				}
			}
		}
		for i := range project.Documents {
			if project.Documents[i].FolderID != nil && *project.Documents[i].FolderID == folderID {
				return &domain.StructuralError{
					Message: fmt.Sprintf("folder %q still has documents", project.Folders[idx].Name),
					Reason:  domain.ErrFolderNotEmpty,
				}
			}
		}

		project.Folders = append(project.Folders[:idx], project.Folders[idx+1:]...)
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("folder deleted", "id", folderID, "project_id", projectID)

	return nil
}

// GetAllFolders returns every folder in the project
func (s *Store) GetAllFolders(projectID string) ([]models.Folder, error) {
	var out []models.Folder
	err := s.viewProject(projectID, func(project *models.Project) error {
		out = append([]models.Folder{}, project.Folders...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetFolderChildren returns the immediate children of a folder (nil
// parentID = project root), sorted case-insensitively by name.
func (s *Store) GetFolderChildren(projectID string, parentID *string) ([]models.Folder, error) {
	children := []models.Folder{}
	err := s.viewProject(projectID, func(project *models.Project) error {
		for i := range project.Folders {
			folder := project.Folders[i]
			if parentID == nil {
				if folder.ParentFolderID == nil {
					children = append(children, folder)
				}
			} else if folder.ParentFolderID != nil && *folder.ParentFolderID == *parentID {
				children = append(children, folder)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(children, func(i, j int) bool {
		return strings.ToLower(children[i].Name) < strings.ToLower(children[j].Name)
	})

	return children, nil
}

// GetFolderPath walks parent pointers from the folder to the root and
// returns names in root-to-leaf order. A cycle or dangling parent stops
// the walk with a warning, returning the partial path collected so far.
func (s *Store) GetFolderPath(projectID, folderID string) (string, error) {
	var names []string
	err := s.viewProject(projectID, func(project *models.Project) error {
		idx := findFolder(project.Folders, folderID)
		if idx < 0 {
			return fmt.Errorf("folder %s: %w", folderID, domain.ErrNotFound)
		}

		visited := make(map[string]bool)
		current := &project.Folders[idx]
		for {
			if visited[current.ID] {
				s.logger.Warn("cycle detected while computing folder path", "folder_id", folderID)
				break
			}
			visited[current.ID] = true
			names = append([]string{current.Name}, names...)

			if current.ParentFolderID == nil {
				break
			}
			parentIdx := findFolder(project.Folders, *current.ParentFolderID)
			if parentIdx < 0 {
				s.logger.Warn("dangling parent reference while computing folder path",
					"folder_id", current.ID,
					"parent_id", *current.ParentFolderID,
				)
				break
			}
			current = &project.Folders[parentIdx]
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return strings.Join(names, "/"), nil
}

// GetAllDescendantIDs returns every folder ID transitively underneath
// the given one, breadth first. The visited guard keeps corrupted cyclic
// data from looping.
func (s *Store) GetAllDescendantIDs(projectID, folderID string) ([]string, error) {
	descendants := []string{}
	err := s.viewProject(projectID, func(project *models.Project) error {
		if findFolder(project.Folders, folderID) < 0 {
			return fmt.Errorf("folder %s: %w", folderID, domain.ErrNotFound)
		}

		byParent := make(map[string][]string)
		for i := range project.Folders {
			if project.Folders[i].ParentFolderID != nil {
				parent := *project.Folders[i].ParentFolderID
				byParent[parent] = append(byParent[parent], project.Folders[i].ID)
			}
		}

		visited := map[string]bool{folderID: true}
		queue := []string{folderID}
		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]

			for _, childID := range byParent[current] {
				if visited[childID] {
					continue
				}
				visited[childID] = true
				descendants = append(descendants, childID)
				queue = append(queue, childID)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return descendants, nil
}

// checkNoCycle rejects a move that would make folderID its own ancestor.
// It walks up from newParentID; the visited set guards against cycles
// already present in stored data.
func checkNoCycle(folders []models.Folder, folderID, newParentID string) error {
	if folderID == newParentID {
		return &domain.StructuralError{
			Message: "cannot move a folder into itself",
			Reason:  domain.ErrCircularReference,
		}
	}

	visited := make(map[string]bool)
	currentID := newParentID
	for {
		if currentID == folderID {
			return &domain.StructuralError{
				Message: "cannot move a folder under its own descendant",
				Reason:  domain.ErrCircularReference,
			}
		}
		if visited[currentID] {
			return &domain.StructuralError{
				Message: "folder hierarchy contains a cycle",
				Reason:  domain.ErrCircularReference,
			}
		}
		visited[currentID] = true

		idx := findFolder(folders, currentID)
		if idx < 0 || folders[idx].ParentFolderID == nil {
			return nil
		}
		currentID = *folders[idx].ParentFolderID
	}
}

func findFolder(folders []models.Folder, id string) int {
	for i := range folders {
		if folders[i].ID == id {
			return i
		}
	}
	return -1
}
