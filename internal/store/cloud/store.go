package cloud

import (
	"context"
	"net/http"
	"net/url"

	"copydesk/internal/domain/models"
	"copydesk/internal/wire"
)

// Store exposes the local store's operation surface against the cloud
// API. Models cross the boundary in the camelCase schema; this layer
// maps them through the snake_case wire schema on every call.
type Store struct {
	client *Client
}

// NewStore creates a cloud-backed store over the given client
func NewStore(client *Client) *Store {
	return &Store{client: client}
}

// --- projects ---

func (s *Store) GetAllProjects(ctx context.Context) ([]models.Project, error) {
	var out []wire.Project
	if err := s.client.do(ctx, http.MethodGet, "/api/db/projects", nil, &out); err != nil {
		return nil, err
	}

	projects := make([]models.Project, 0, len(out))
	for i := range out {
		projects = append(projects, *wire.ToProject(&out[i]))
	}
	return projects, nil
}

func (s *Store) CreateProject(ctx context.Context, name string) (*models.Project, error) {
	req := map[string]string{"name": name}
	var out wire.Project
	if err := s.client.do(ctx, http.MethodPost, "/api/db/projects", req, &out); err != nil {
		return nil, err
	}
	return wire.ToProject(&out), nil
}

func (s *Store) UpdateProject(ctx context.Context, id, name string) (*models.Project, error) {
	req := map[string]string{"name": name}
	var out wire.Project
	if err := s.client.do(ctx, http.MethodPatch, "/api/db/projects/"+url.PathEscape(id), req, &out); err != nil {
		return nil, err
	}
	return wire.ToProject(&out), nil
}

func (s *Store) DeleteProject(ctx context.Context, id string) error {
	return s.client.do(ctx, http.MethodDelete, "/api/db/projects/"+url.PathEscape(id), nil, nil)
}

// --- documents ---

func (s *Store) CreateDocument(ctx context.Context, projectID, baseTitle, content string) (*models.Document, error) {
	req := map[string]string{
		"project_id": projectID,
		"title":      baseTitle,
		"content":    content,
	}
	var out wire.Document
	if err := s.client.do(ctx, http.MethodPost, "/api/db/documents", req, &out); err != nil {
		return nil, err
	}
	return wire.ToDocument(&out), nil
}

func (s *Store) CreateDocumentVersion(ctx context.Context, projectID, sourceDocID string, newContent *string) (*models.Document, error) {
	req := map[string]any{"project_id": projectID}
	if newContent != nil {
		req["content"] = *newContent
	}
	var out wire.Document
	path := "/api/db/documents/" + url.PathEscape(sourceDocID) + "/versions"
	if err := s.client.do(ctx, http.MethodPost, path, req, &out); err != nil {
		return nil, err
	}
	return wire.ToDocument(&out), nil
}

// UpdateDocument sends only the fields present in the patch. The double
// pointer in folder_id distinguishes "move to root" from "leave alone".
func (s *Store) UpdateDocument(ctx context.Context, projectID, docID string, patch map[string]any) (*models.Document, error) {
	body := map[string]any{"project_id": projectID}
	for k, v := range patch {
		body[k] = v
	}
	var out wire.Document
	if err := s.client.do(ctx, http.MethodPatch, "/api/db/documents/"+url.PathEscape(docID), body, &out); err != nil {
		return nil, err
	}
	return wire.ToDocument(&out), nil
}

func (s *Store) DeleteDocument(ctx context.Context, projectID, docID string) error {
	path := "/api/db/documents/" + url.PathEscape(docID) + "?project_id=" + url.QueryEscape(projectID)
	return s.client.do(ctx, http.MethodDelete, path, nil, nil)
}

func (s *Store) GetDocumentVersions(ctx context.Context, projectID, baseTitle string) ([]models.Document, error) {
	path := "/api/db/documents/versions?project_id=" + url.QueryEscape(projectID) + "&base_title=" + url.QueryEscape(baseTitle)
	var out []wire.Document
	if err := s.client.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}

	docs := make([]models.Document, 0, len(out))
	for i := range out {
		docs = append(docs, *wire.ToDocument(&out[i]))
	}
	return docs, nil
}

// --- folders ---

func (s *Store) CreateFolder(ctx context.Context, projectID, name string, parentID *string) (*models.Folder, error) {
	req := map[string]any{
		"project_id": projectID,
		"name":       name,
	}
	if parentID != nil {
		req["parent_id"] = *parentID
	}
	var out wire.Folder
	if err := s.client.do(ctx, http.MethodPost, "/api/db/folders", req, &out); err != nil {
		return nil, err
	}
	return wire.ToFolder(&out), nil
}

func (s *Store) RenameFolder(ctx context.Context, projectID, folderID, name string) (*models.Folder, error) {
	req := map[string]any{
		"project_id": projectID,
		"name":       name,
	}
	var out wire.Folder
	if err := s.client.do(ctx, http.MethodPatch, "/api/db/folders/"+url.PathEscape(folderID), req, &out); err != nil {
		return nil, err
	}
	return wire.ToFolder(&out), nil
}

// MoveFolder reparents a folder; nil sends the empty string, which the
// API reads as "move to root".
func (s *Store) MoveFolder(ctx context.Context, projectID, folderID string, newParentID *string) (*models.Folder, error) {
	parent := ""
	if newParentID != nil {
		parent = *newParentID
	}
	req := map[string]any{
		"project_id": projectID,
		"parent_id":  parent,
	}
	var out wire.Folder
	if err := s.client.do(ctx, http.MethodPatch, "/api/db/folders/"+url.PathEscape(folderID), req, &out); err != nil {
		return nil, err
	}
	return wire.ToFolder(&out), nil
}

func (s *Store) DeleteFolder(ctx context.Context, projectID, folderID string) error {
	path := "/api/db/folders/" + url.PathEscape(folderID) + "?project_id=" + url.QueryEscape(projectID)
	return s.client.do(ctx, http.MethodDelete, path, nil, nil)
}

func (s *Store) GetFolderChildren(ctx context.Context, projectID string, parentID *string) ([]models.Folder, error) {
	path := "/api/db/folders?project_id=" + url.QueryEscape(projectID)
	if parentID != nil {
		path += "&parent_id=" + url.QueryEscape(*parentID)
	}

	var out struct {
		Folders []wire.Folder `json:"folders"`
	}
	if err := s.client.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}

	folders := make([]models.Folder, 0, len(out.Folders))
	for i := range out.Folders {
		folders = append(folders, *wire.ToFolder(&out.Folders[i]))
	}
	return folders, nil
}

// --- personas ---

func (s *Store) CreatePersona(ctx context.Context, persona models.Persona) (*models.Persona, error) {
	var out wire.Persona
	if err := s.client.do(ctx, http.MethodPost, "/api/db/personas", wire.FromPersona(&persona), &out); err != nil {
		return nil, err
	}
	return wire.ToPersona(&out), nil
}

func (s *Store) UpdatePersona(ctx context.Context, projectID, personaID string, patch map[string]any) (*models.Persona, error) {
	body := map[string]any{"project_id": projectID}
	for k, v := range patch {
		body[k] = v
	}
	var out wire.Persona
	if err := s.client.do(ctx, http.MethodPatch, "/api/db/personas/"+url.PathEscape(personaID), body, &out); err != nil {
		return nil, err
	}
	return wire.ToPersona(&out), nil
}

func (s *Store) DeletePersona(ctx context.Context, projectID, personaID string) error {
	path := "/api/db/personas/" + url.PathEscape(personaID) + "?project_id=" + url.QueryEscape(projectID)
	return s.client.do(ctx, http.MethodDelete, path, nil, nil)
}

// --- snippets ---

func (s *Store) CreateSnippet(ctx context.Context, snippet models.Snippet) (*models.Snippet, error) {
	var out wire.Snippet
	if err := s.client.do(ctx, http.MethodPost, "/api/db/snippets", wire.FromSnippet(&snippet), &out); err != nil {
		return nil, err
	}
	return wire.ToSnippet(&out), nil
}

func (s *Store) UpdateSnippet(ctx context.Context, projectID, snippetID string, patch map[string]any) (*models.Snippet, error) {
	body := map[string]any{"project_id": projectID}
	for k, v := range patch {
		body[k] = v
	}
	var out wire.Snippet
	if err := s.client.do(ctx, http.MethodPatch, "/api/db/snippets/"+url.PathEscape(snippetID), body, &out); err != nil {
		return nil, err
	}
	return wire.ToSnippet(&out), nil
}

func (s *Store) DeleteSnippet(ctx context.Context, projectID, snippetID string) error {
	path := "/api/db/snippets/" + url.PathEscape(snippetID) + "?project_id=" + url.QueryEscape(projectID)
	return s.client.do(ctx, http.MethodDelete, path, nil, nil)
}

func (s *Store) IncrementSnippetUsage(ctx context.Context, projectID, snippetID string) (int, error) {
	path := "/api/db/snippets/" + url.PathEscape(snippetID) + "/use?project_id=" + url.QueryEscape(projectID)
	var out struct {
		UsageCount int `json:"usage_count"`
	}
	if err := s.client.do(ctx, http.MethodPost, path, nil, &out); err != nil {
		return 0, err
	}
	return out.UsageCount, nil
}

// --- brand voice ---

func (s *Store) SetBrandVoice(ctx context.Context, projectID string, voice models.BrandVoice) error {
	path := "/api/db/projects/" + url.PathEscape(projectID) + "/brand-voice"
	return s.client.do(ctx, http.MethodPut, path, wire.FromBrandVoice(&voice), nil)
}

func (s *Store) ClearBrandVoice(ctx context.Context, projectID string) error {
	path := "/api/db/projects/" + url.PathEscape(projectID) + "/brand-voice"
	return s.client.do(ctx, http.MethodDelete, path, nil, nil)
}

// --- migration ---

// Migrate submits the full local project list in one request
func (s *Store) Migrate(ctx context.Context, projects []models.Project) error {
	out := make([]wire.Project, 0, len(projects))
	for i := range projects {
		out = append(out, *wire.FromProject(&projects[i]))
	}
	req := map[string]any{"projects": out}
	return s.client.do(ctx, http.MethodPost, "/api/db/migrate", req, nil)
}
