// Package unified is the storage façade. Every operation tries the
// cloud mirror first when one is configured, absorbs any cloud failure
// with a logged warning, and falls back to the local store. There is no
// retry and no reconciliation beyond refreshing the local cache after
// successful cloud reads.
package unified

import (
	"context"
	"fmt"
	"log/slog"

	"copydesk/internal/domain"
	"copydesk/internal/domain/models"
	"copydesk/internal/store/cloud"
	"copydesk/internal/store/kv"
	"copydesk/internal/store/local"
)

// Mode selects the storage strategy per call
type Mode int

const (
	// ModeCloudFirst tries the cloud mirror first with local fallback
	ModeCloudFirst Mode = iota
	// ModeLocalOnly never touches the cloud
	ModeLocalOnly
)

// Store is the unified storage façade. Mode is explicit instance state,
// never package state, so parallel tests can hold independent stores.
type Store struct {
	local  *local.Store
	cloud  *cloud.Store
	mode   Mode
	logger *slog.Logger
	kv     kv.Store // owned backend when built by Open, nil otherwise
}

// Options configures a unified store
type Options struct {
	Local  *local.Store
	Cloud  *cloud.Store // nil forces local-only behavior
	Mode   Mode
	Logger *slog.Logger
}

// New creates a unified store
func New(opts Options) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	mode := opts.Mode
	if opts.Cloud == nil {
		mode = ModeLocalOnly
	}
	return &Store{
		local:  opts.Local,
		cloud:  opts.Cloud,
		mode:   mode,
		logger: logger,
	}
}

// SetMode switches the storage strategy at runtime
func (s *Store) SetMode(mode Mode) {
	if s.cloud == nil {
		mode = ModeLocalOnly
	}
	s.mode = mode
}

// Mode reports the current storage strategy
func (s *Store) Mode() Mode {
	return s.mode
}

func (s *Store) cloudEnabled() bool {
	return s.mode == ModeCloudFirst && s.cloud != nil
}

// warnFallback logs an absorbed cloud failure. This is the only visible
// trace of RemoteUnavailable errors.
func (s *Store) warnFallback(op string, err error) {
	s.logger.Warn("cloud call failed, using local store", "op", op, "error", err)
}

// --- projects ---

// GetAllProjects reads cloud-first. A successful cloud read refreshes
// the local cache wholesale; a failed one degrades to the cache.
func (s *Store) GetAllProjects(ctx context.Context) ([]models.Project, error) {
	if s.cloudEnabled() {
		projects, err := s.cloud.GetAllProjects(ctx)
		if err == nil {
			if cacheErr := s.local.ReplaceAllProjects(projects); cacheErr != nil {
				s.logger.Warn("failed to refresh local cache", "error", cacheErr)
			}
			return projects, nil
		}
		s.warnFallback("getAllProjects", err)
	}
	return s.local.GetAllProjects()
}

func (s *Store) CreateProject(ctx context.Context, name string) (*models.Project, error) {
	if s.cloudEnabled() {
		project, err := s.cloud.CreateProject(ctx, name)
		if err == nil {
			return project, nil
		}
		s.warnFallback("createProject", err)
	}
	return s.local.CreateProject(name)
}

func (s *Store) UpdateProject(ctx context.Context, id string, patch local.ProjectPatch) (*models.Project, error) {
	if s.cloudEnabled() && patch.Name != nil {
		project, err := s.cloud.UpdateProject(ctx, id, *patch.Name)
		if err == nil {
			return project, nil
		}
		s.warnFallback("updateProject", err)
	}
	return s.local.UpdateProject(id, patch)
}

func (s *Store) DeleteProject(ctx context.Context, id string) error {
	if s.cloudEnabled() {
		err := s.cloud.DeleteProject(ctx, id)
		if err == nil {
			// Keep the cache in step so the next offline read agrees
			if localErr := s.local.DeleteProject(id); localErr != nil {
				s.logger.Warn("cloud delete succeeded but local cache delete failed", "id", id, "error", localErr)
			}
			return nil
		}
		s.warnFallback("deleteProject", err)
	}
	return s.local.DeleteProject(id)
}

// ActiveProjectID and SetActiveProjectID are purely local state: the
// active pointer tracks this installation's UI selection.
func (s *Store) ActiveProjectID() (string, error) {
	return s.local.ActiveProjectID()
}

func (s *Store) SetActiveProjectID(id string) error {
	return s.local.SetActiveProjectID(id)
}

// --- documents ---

func (s *Store) CreateDocument(ctx context.Context, projectID, baseTitle, content string) (*models.Document, error) {
	if s.cloudEnabled() {
		doc, err := s.cloud.CreateDocument(ctx, projectID, baseTitle, content)
		if err == nil {
			return doc, nil
		}
		s.warnFallback("createDocument", err)
	}
	return s.local.CreateDocument(projectID, baseTitle, content)
}

func (s *Store) CreateDocumentVersion(ctx context.Context, projectID, sourceDocID string, newContent *string) (*models.Document, error) {
	if s.cloudEnabled() {
		doc, err := s.cloud.CreateDocumentVersion(ctx, projectID, sourceDocID, newContent)
		if err == nil {
			return doc, nil
		}
		s.warnFallback("createDocumentVersion", err)
	}
	return s.local.CreateDocumentVersion(projectID, sourceDocID, newContent)
}

func (s *Store) UpdateDocument(ctx context.Context, projectID, docID string, patch local.DocumentPatch) (*models.Document, error) {
	if s.cloudEnabled() {
		doc, err := s.cloud.UpdateDocument(ctx, projectID, docID, documentPatchWire(patch))
		if err == nil {
			return doc, nil
		}
		s.warnFallback("updateDocument", err)
	}
	return s.local.UpdateDocument(projectID, docID, patch)
}

func (s *Store) DeleteDocument(ctx context.Context, projectID, docID string) error {
	if s.cloudEnabled() {
		err := s.cloud.DeleteDocument(ctx, projectID, docID)
		if err == nil {
			return nil
		}
		s.warnFallback("deleteDocument", err)
	}
	return s.local.DeleteDocument(projectID, docID)
}

func (s *Store) GetDocumentVersions(ctx context.Context, projectID, baseTitle string) ([]models.Document, error) {
	if s.cloudEnabled() {
		docs, err := s.cloud.GetDocumentVersions(ctx, projectID, baseTitle)
		if err == nil {
			return docs, nil
		}
		s.warnFallback("getDocumentVersions", err)
	}
	return s.local.GetDocumentVersions(projectID, baseTitle)
}

func (s *Store) GetLatestVersion(ctx context.Context, projectID, baseTitle string) (*models.Document, error) {
	docs, err := s.GetDocumentVersions(ctx, projectID, baseTitle)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("document family %q: %w", baseTitle, domain.ErrNotFound)
	}
	return &docs[len(docs)-1], nil
}

// --- folders ---

// CreateFolder sanitizes the name up front so the cloud mirror never
// receives markup the local store would have stripped.
func (s *Store) CreateFolder(ctx context.Context, projectID, name string, parentID *string) (*models.Folder, error) {
	name = local.SanitizeName(name)
	if s.cloudEnabled() {
		folder, err := s.cloud.CreateFolder(ctx, projectID, name, parentID)
		if err == nil {
			return folder, nil
		}
		s.warnFallback("createFolder", err)
	}
	return s.local.CreateFolder(projectID, name, parentID)
}

func (s *Store) RenameFolder(ctx context.Context, projectID, folderID, name string) (*models.Folder, error) {
	name = local.SanitizeName(name)
	if s.cloudEnabled() {
		folder, err := s.cloud.RenameFolder(ctx, projectID, folderID, name)
		if err == nil {
			return folder, nil
		}
		s.warnFallback("renameFolder", err)
	}
	return s.local.RenameFolder(projectID, folderID, name)
}

func (s *Store) MoveFolder(ctx context.Context, projectID, folderID string, newParentID *string) (*models.Folder, error) {
	if s.cloudEnabled() {
		folder, err := s.cloud.MoveFolder(ctx, projectID, folderID, newParentID)
		if err == nil {
			return folder, nil
		}
		s.warnFallback("moveFolder", err)
	}
	return s.local.MoveFolder(projectID, folderID, newParentID)
}

func (s *Store) DeleteFolder(ctx context.Context, projectID, folderID string) error {
	if s.cloudEnabled() {
		err := s.cloud.DeleteFolder(ctx, projectID, folderID)
		if err == nil {
			return nil
		}
		s.warnFallback("deleteFolder", err)
	}
	return s.local.DeleteFolder(projectID, folderID)
}

func (s *Store) GetFolderChildren(ctx context.Context, projectID string, parentID *string) ([]models.Folder, error) {
	if s.cloudEnabled() {
		folders, err := s.cloud.GetFolderChildren(ctx, projectID, parentID)
		if err == nil {
			return folders, nil
		}
		s.warnFallback("getFolderChildren", err)
	}
	return s.local.GetFolderChildren(projectID, parentID)
}

// GetFolderPath and GetAllDescendantIDs are local computations over the
// cached hierarchy.
func (s *Store) GetFolderPath(projectID, folderID string) (string, error) {
	return s.local.GetFolderPath(projectID, folderID)
}

func (s *Store) GetAllDescendantIDs(projectID, folderID string) ([]string, error) {
	return s.local.GetAllDescendantIDs(projectID, folderID)
}

// --- personas ---

func (s *Store) CreatePersona(ctx context.Context, projectID string, persona models.Persona) (*models.Persona, error) {
	persona.Name = local.SanitizeName(persona.Name)
	if s.cloudEnabled() {
		persona.ProjectID = projectID
		created, err := s.cloud.CreatePersona(ctx, persona)
		if err == nil {
			return created, nil
		}
		s.warnFallback("createPersona", err)
	}
	return s.local.CreatePersona(projectID, persona)
}

func (s *Store) UpdatePersona(ctx context.Context, projectID, personaID string, patch local.PersonaPatch) (*models.Persona, error) {
	if s.cloudEnabled() {
		persona, err := s.cloud.UpdatePersona(ctx, projectID, personaID, personaPatchWire(patch))
		if err == nil {
			return persona, nil
		}
		s.warnFallback("updatePersona", err)
	}
	return s.local.UpdatePersona(projectID, personaID, patch)
}

func (s *Store) DeletePersona(ctx context.Context, projectID, personaID string) error {
	if s.cloudEnabled() {
		err := s.cloud.DeletePersona(ctx, projectID, personaID)
		if err == nil {
			return nil
		}
		s.warnFallback("deletePersona", err)
	}
	return s.local.DeletePersona(projectID, personaID)
}

// --- snippets ---

// CreateSnippet dual-writes: a successful cloud create is mirrored into
// the local cache immediately so a read before the next full sync does
// not miss it.
func (s *Store) CreateSnippet(ctx context.Context, projectID string, snippet models.Snippet) (*models.Snippet, error) {
	snippet.Name = local.SanitizeName(snippet.Name)
	if s.cloudEnabled() {
		snippet.ProjectID = projectID
		created, err := s.cloud.CreateSnippet(ctx, snippet)
		if err == nil {
			if cacheErr := s.local.UpsertSnippet(projectID, *created); cacheErr != nil {
				s.logger.Warn("snippet dual write failed", "id", created.ID, "error", cacheErr)
			}
			return created, nil
		}
		s.warnFallback("createSnippet", err)
	}
	return s.local.CreateSnippet(projectID, snippet)
}

func (s *Store) UpdateSnippet(ctx context.Context, projectID, snippetID string, patch local.SnippetPatch) (*models.Snippet, error) {
	if s.cloudEnabled() {
		snippet, err := s.cloud.UpdateSnippet(ctx, projectID, snippetID, snippetPatchWire(patch))
		if err == nil {
			if cacheErr := s.local.UpsertSnippet(projectID, *snippet); cacheErr != nil {
				s.logger.Warn("snippet dual write failed", "id", snippet.ID, "error", cacheErr)
			}
			return snippet, nil
		}
		s.warnFallback("updateSnippet", err)
	}
	return s.local.UpdateSnippet(projectID, snippetID, patch)
}

func (s *Store) DeleteSnippet(ctx context.Context, projectID, snippetID string) error {
	if s.cloudEnabled() {
		err := s.cloud.DeleteSnippet(ctx, projectID, snippetID)
		if err == nil {
			if cacheErr := s.local.RemoveSnippet(projectID, snippetID); cacheErr != nil {
				s.logger.Warn("snippet dual delete failed", "id", snippetID, "error", cacheErr)
			}
			return nil
		}
		s.warnFallback("deleteSnippet", err)
	}
	return s.local.DeleteSnippet(projectID, snippetID)
}

func (s *Store) IncrementSnippetUsage(ctx context.Context, projectID, snippetID string) (int, error) {
	if s.cloudEnabled() {
		count, err := s.cloud.IncrementSnippetUsage(ctx, projectID, snippetID)
		if err == nil {
			if _, cacheErr := s.local.IncrementSnippetUsage(projectID, snippetID); cacheErr != nil {
				s.logger.Warn("snippet usage dual write failed", "id", snippetID, "error", cacheErr)
			}
			return count, nil
		}
		s.warnFallback("incrementSnippetUsage", err)
	}
	return s.local.IncrementSnippetUsage(projectID, snippetID)
}

// --- brand voice ---

func (s *Store) SetBrandVoice(ctx context.Context, projectID string, voice models.BrandVoice) error {
	if s.cloudEnabled() {
		err := s.cloud.SetBrandVoice(ctx, projectID, voice)
		if err == nil {
			return nil
		}
		s.warnFallback("setBrandVoice", err)
	}
	return s.local.SetBrandVoice(projectID, voice)
}

func (s *Store) GetBrandVoice(projectID string) (*models.BrandVoice, error) {
	return s.local.GetBrandVoice(projectID)
}

func (s *Store) ClearBrandVoice(ctx context.Context, projectID string) error {
	if s.cloudEnabled() {
		err := s.cloud.ClearBrandVoice(ctx, projectID)
		if err == nil {
			return nil
		}
		s.warnFallback("clearBrandVoice", err)
	}
	return s.local.ClearBrandVoice(projectID)
}

// --- patch translation ---

func documentPatchWire(patch local.DocumentPatch) map[string]any {
	out := map[string]any{}
	if patch.FolderID != nil {
		if *patch.FolderID == nil {
			out["folder_id"] = nil
		} else {
			out["folder_id"] = **patch.FolderID
		}
	}
	if patch.Content != nil {
		out["content"] = *patch.Content
	}
	if patch.Tags != nil {
		out["tags"] = *patch.Tags
	}
	if patch.TemplateID != nil {
		if *patch.TemplateID == nil {
			out["template_id"] = nil
		} else {
			out["template_id"] = **patch.TemplateID
		}
	}
	return out
}

func personaPatchWire(patch local.PersonaPatch) map[string]any {
	out := map[string]any{}
	if patch.Name != nil {
		out["name"] = local.SanitizeName(*patch.Name)
	}
	if patch.Photo != nil {
		out["photo"] = *patch.Photo
	}
	if patch.Demographics != nil {
		out["demographics"] = *patch.Demographics
	}
	if patch.Psychographics != nil {
		out["psychographics"] = *patch.Psychographics
	}
	if patch.PainPoints != nil {
		out["pain_points"] = *patch.PainPoints
	}
	if patch.Goals != nil {
		out["goals"] = *patch.Goals
	}
	return out
}

func snippetPatchWire(patch local.SnippetPatch) map[string]any {
	out := map[string]any{}
	if patch.Name != nil {
		out["name"] = local.SanitizeName(*patch.Name)
	}
	if patch.Content != nil {
		out["content"] = *patch.Content
	}
	if patch.Description != nil {
		if *patch.Description == nil {
			out["description"] = nil
		} else {
			out["description"] = **patch.Description
		}
	}
	if patch.Tags != nil {
		out["tags"] = *patch.Tags
	}
	return out
}
