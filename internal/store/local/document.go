package local

import (
	"fmt"
	"sort"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"copydesk/internal/config"
	"copydesk/internal/domain"
	"copydesk/internal/domain/models"
)

// CreateDocument creates version 1 of a fresh document family
func (s *Store) CreateDocument(projectID, baseTitle, content string) (*models.Document, error) {
	if err := validation.Validate(baseTitle, validation.Required, validation.Length(1, config.MaxDocumentTitleLength)); err != nil {
		return nil, fmt.Errorf("%w: document title %v", domain.ErrValidation, err)
	}

	now := time.Now()
	doc := models.Document{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		BaseTitle: baseTitle,
		Title:     models.DisplayTitle(baseTitle, 1),
		Version:   1,
		Content:   content,
		Metadata: models.DocumentMetadata{
			WordCount: s.analyzer.CountWords(content),
			CharCount: s.analyzer.CountChars(content),
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.mutateProject(projectID, func(project *models.Project) error {
		project.Documents = append(project.Documents, doc)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("document created",
		"id", doc.ID,
		"title", doc.Title,
		"project_id", projectID,
	)

	return &doc, nil
}

// CreateDocumentVersion creates the next version in the source document's
// family. The new version number is one past the family's current
// maximum. newContent nil copies the source's content.
func (s *Store) CreateDocumentVersion(projectID, sourceDocID string, newContent *string) (*models.Document, error) {
	var doc models.Document
	err := s.mutateProject(projectID, func(project *models.Project) error {
		srcIdx := findDocument(project.Documents, sourceDocID)
		if srcIdx < 0 {
			return fmt.Errorf("document %s: %w", sourceDocID, domain.ErrNotFound)
		}
		source := project.Documents[srcIdx]

		maxVersion := 0
		for i := range project.Documents {
			if project.Documents[i].BaseTitle == source.BaseTitle && project.Documents[i].Version > maxVersion {
				maxVersion = project.Documents[i].Version
			}
		}

		content := source.Content
		if newContent != nil {
			content = *newContent
		}

		now := time.Now()
		doc = models.Document{
			ID:              uuid.NewString(),
			ProjectID:       projectID,
			FolderID:        source.FolderID,
			BaseTitle:       source.BaseTitle,
			Title:           models.DisplayTitle(source.BaseTitle, maxVersion+1),
			Version:         maxVersion + 1,
			ParentVersionID: &source.ID,
			Content:         content,
			Metadata: models.DocumentMetadata{
				WordCount:  s.analyzer.CountWords(content),
				CharCount:  s.analyzer.CountChars(content),
				Tags:       source.Metadata.Tags,
				TemplateID: source.Metadata.TemplateID,
			},
			CreatedAt: now,
			UpdatedAt: now,
		}

		project.Documents = append(project.Documents, doc)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("document version created",
		"id", doc.ID,
		"base_title", doc.BaseTitle,
		"version", doc.Version,
	)

	return &doc, nil
}

// DocumentPatch carries the caller-updatable document fields. Identity
// and version fields (id, project, version, parentVersionId, baseTitle)
// are never caller-writable.
type DocumentPatch struct {
	FolderID   **string // double pointer: set to &nil to move to root
	Content    *string
	Tags       *[]string
	TemplateID **string
}

// UpdateDocument merges the patch. Content changes recompute word and
// character counts from the stripped text.
func (s *Store) UpdateDocument(projectID, docID string, patch DocumentPatch) (*models.Document, error) {
	var out models.Document
	err := s.mutateProject(projectID, func(project *models.Project) error {
		idx := findDocument(project.Documents, docID)
		if idx < 0 {
			return fmt.Errorf("document %s: %w", docID, domain.ErrNotFound)
		}
		doc := &project.Documents[idx]

		if patch.FolderID != nil {
			target := *patch.FolderID
			if target != nil && findFolder(project.Folders, *target) < 0 {
				return fmt.Errorf("folder %s: %w", *target, domain.ErrNotFound)
			}
			doc.FolderID = target
		}
		if patch.Content != nil {
			doc.Content = *patch.Content
			doc.Metadata.WordCount = s.analyzer.CountWords(doc.Content)
			doc.Metadata.CharCount = s.analyzer.CountChars(doc.Content)
		}
		if patch.Tags != nil {
			doc.Metadata.Tags = *patch.Tags
		}
		if patch.TemplateID != nil {
			doc.Metadata.TemplateID = *patch.TemplateID
		}

		doc.UpdatedAt = time.Now()
		out = *doc
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}

// DeleteDocument removes a single version unconditionally. Versions that
// reference it as their parent keep the dangling pointer.
func (s *Store) DeleteDocument(projectID, docID string) error {
	err := s.mutateProject(projectID, func(project *models.Project) error {
		idx := findDocument(project.Documents, docID)
		if idx < 0 {
			return fmt.Errorf("document %s: %w", docID, domain.ErrNotFound)
		}
		project.Documents = append(project.Documents[:idx], project.Documents[idx+1:]...)
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("document deleted", "id", docID, "project_id", projectID)

	return nil
}

// GetDocument returns a single document by ID
func (s *Store) GetDocument(projectID, docID string) (*models.Document, error) {
	var out models.Document
	err := s.viewProject(projectID, func(project *models.Project) error {
		idx := findDocument(project.Documents, docID)
		if idx < 0 {
			return fmt.Errorf("document %s: %w", docID, domain.ErrNotFound)
		}
		out = project.Documents[idx]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetAllDocuments returns every document in the project
func (s *Store) GetAllDocuments(projectID string) ([]models.Document, error) {
	var out []models.Document
	err := s.viewProject(projectID, func(project *models.Project) error {
		out = append([]models.Document{}, project.Documents...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetDocumentVersions returns the version family for a base title,
// sorted ascending by version
func (s *Store) GetDocumentVersions(projectID, baseTitle string) ([]models.Document, error) {
	versions := []models.Document{}
	err := s.viewProject(projectID, func(project *models.Project) error {
		for i := range project.Documents {
			if project.Documents[i].BaseTitle == baseTitle {
				versions = append(versions, project.Documents[i])
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(versions, func(i, j int) bool {
		return versions[i].Version < versions[j].Version
	})

	return versions, nil
}

// GetLatestVersion returns the highest-numbered version in a family
func (s *Store) GetLatestVersion(projectID, baseTitle string) (*models.Document, error) {
	versions, err := s.GetDocumentVersions(projectID, baseTitle)
	if err != nil {
		return nil, err
	}
	if len(versions) == 0 {
		return nil, fmt.Errorf("document family %q: %w", baseTitle, domain.ErrNotFound)
	}
	return &versions[len(versions)-1], nil
}

func findDocument(docs []models.Document, id string) int {
	for i := range docs {
		if docs[i].ID == id {
			return i
		}
	}
	return -1
}
