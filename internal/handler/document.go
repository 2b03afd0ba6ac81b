package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"copydesk/internal/domain/models"
	"copydesk/internal/domain/services"
	"copydesk/internal/httputil"
	"copydesk/internal/wire"
)

// DocumentHandler handles document HTTP requests
type DocumentHandler struct {
	docService services.DocumentService
	logger     *slog.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(docService services.DocumentService, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		docService: docService,
		logger:     logger,
	}
}

// updateDocumentBody mirrors UpdateDocumentRequest but keeps folder_id
// and template_id as raw JSON so "set to null" (move to root, clear the
// template) is distinguishable from absent.
type updateDocumentBody struct {
	ProjectID  string           `json:"project_id"`
	FolderID   *json.RawMessage `json:"folder_id,omitempty"`
	Title      *string          `json:"title,omitempty"`
	Content    *string          `json:"content,omitempty"`
	Tags       *[]string        `json:"tags,omitempty"`
	TemplateID *json.RawMessage `json:"template_id,omitempty"`
}

// CreateDocument creates a new document (version 1 of a fresh family)
// POST /api/db/documents
func (h *DocumentHandler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	var req services.CreateDocumentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	doc, err := h.docService.CreateDocument(r.Context(), &req)
	if err != nil {
		HandleCreateConflict(w, err, func() (*wire.Document, error) {
			existing, fetchErr := h.docService.GetLatestVersion(r.Context(), req.ProjectID, req.Title)
			if fetchErr != nil {
				return nil, err
			}
			return wire.FromDocument(existing), nil
		})
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, wire.FromDocument(doc))
}

// GetDocument retrieves a document by ID
// GET /api/db/documents/{id}
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	projectID := r.URL.Query().Get("project_id")
	if id == "" || projectID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "document ID and project_id are required")
		return
	}

	doc, err := h.docService.GetDocument(r.Context(), id, projectID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, wire.FromDocument(doc))
}

// UpdateDocument updates a document in place
// PATCH /api/db/documents/{id}
func (h *DocumentHandler) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "document ID is required")
		return
	}

	var body updateDocumentBody
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req := services.UpdateDocumentRequest{
		ProjectID: body.ProjectID,
		Title:     body.Title,
		Content:   body.Content,
		Tags:      body.Tags,
	}

	if body.FolderID != nil {
		var target *string
		if string(*body.FolderID) != "null" {
			var s string
			if err := json.Unmarshal(*body.FolderID, &s); err != nil {
				httputil.RespondError(w, http.StatusBadRequest, "folder_id must be a string or null")
				return
			}
			target = &s
		}
		req.FolderID = &target
	}

	if body.TemplateID != nil {
		var template *string
		if string(*body.TemplateID) != "null" {
			var s string
			if err := json.Unmarshal(*body.TemplateID, &s); err != nil {
				httputil.RespondError(w, http.StatusBadRequest, "template_id must be a string or null")
				return
			}
			template = &s
		}
		req.TemplateID = &template
	}

	doc, err := h.docService.UpdateDocument(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, wire.FromDocument(doc))
}

// DeleteDocument deletes a single version
// DELETE /api/db/documents/{id}
func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	projectID := r.URL.Query().Get("project_id")
	if id == "" || projectID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "document ID and project_id are required")
		return
	}

	if err := h.docService.DeleteDocument(r.Context(), id, projectID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreateVersion creates the next version in the document's family
// POST /api/db/documents/{id}/versions
func (h *DocumentHandler) CreateVersion(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "document ID is required")
		return
	}

	var req services.CreateVersionRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.DocumentID = id

	doc, err := h.docService.CreateVersion(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, wire.FromDocument(doc))
}

// ListVersions returns the version family for a base title, oldest first
// GET /api/db/documents/versions?project_id=...&base_title=...
func (h *DocumentHandler) ListVersions(w http.ResponseWriter, r *http.Request) {
	projectID := r.URL.Query().Get("project_id")
	baseTitle := r.URL.Query().Get("base_title")
	if projectID == "" || baseTitle == "" {
		httputil.RespondError(w, http.StatusBadRequest, "project_id and base_title are required")
		return
	}

	docs, err := h.docService.ListVersions(r.Context(), projectID, baseTitle)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, wireDocuments(docs))
}

func wireDocuments(docs []models.Document) []wire.Document {
	out := make([]wire.Document, 0, len(docs))
	for i := range docs {
		out = append(out, *wire.FromDocument(&docs[i]))
	}
	return out
}
