package handler

import (
	"log/slog"
	"net/http"

	"copydesk/internal/domain/services"
	"copydesk/internal/httputil"
	"copydesk/internal/wire"
)

// SnippetHandler handles snippet HTTP requests
type SnippetHandler struct {
	snippetService services.SnippetService
	logger         *slog.Logger
}

// NewSnippetHandler creates a new snippet handler
func NewSnippetHandler(snippetService services.SnippetService, logger *slog.Logger) *SnippetHandler {
	return &SnippetHandler{
		snippetService: snippetService,
		logger:         logger,
	}
}

// CreateSnippet creates a new reusable snippet
// POST /api/db/snippets
func (h *SnippetHandler) CreateSnippet(w http.ResponseWriter, r *http.Request) {
	var req services.CreateSnippetRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	snippet, err := h.snippetService.CreateSnippet(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, wire.FromSnippet(snippet))
}

// GetSnippet retrieves a snippet by ID
// GET /api/db/snippets/{id}
func (h *SnippetHandler) GetSnippet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	projectID := r.URL.Query().Get("project_id")
	if id == "" || projectID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "snippet ID and project_id are required")
		return
	}

	snippet, err := h.snippetService.GetSnippet(r.Context(), id, projectID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, wire.FromSnippet(snippet))
}

// UpdateSnippet updates a snippet's fields
// PATCH /api/db/snippets/{id}
func (h *SnippetHandler) UpdateSnippet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "snippet ID is required")
		return
	}

	var req services.UpdateSnippetRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	snippet, err := h.snippetService.UpdateSnippet(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, wire.FromSnippet(snippet))
}

// DeleteSnippet deletes a snippet
// DELETE /api/db/snippets/{id}
func (h *SnippetHandler) DeleteSnippet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	projectID := r.URL.Query().Get("project_id")
	if id == "" || projectID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "snippet ID and project_id are required")
		return
	}

	if err := h.snippetService.DeleteSnippet(r.Context(), id, projectID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListSnippets lists all snippets in a project
// GET /api/db/snippets?project_id=...
func (h *SnippetHandler) ListSnippets(w http.ResponseWriter, r *http.Request) {
	projectID := r.URL.Query().Get("project_id")
	if projectID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "project_id is required")
		return
	}

	snippets, err := h.snippetService.ListSnippets(r.Context(), projectID)
	if err != nil {
		handleError(w, err)
		return
	}

	out := make([]wire.Snippet, 0, len(snippets))
	for i := range snippets {
		out = append(out, *wire.FromSnippet(&snippets[i]))
	}

	httputil.RespondJSON(w, http.StatusOK, out)
}

// RecordUsage increments the snippet's usage counter
// POST /api/db/snippets/{id}/use
func (h *SnippetHandler) RecordUsage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	projectID := r.URL.Query().Get("project_id")
	if id == "" || projectID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "snippet ID and project_id are required")
		return
	}

	count, err := h.snippetService.RecordUsage(r.Context(), id, projectID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]int{"usage_count": count})
}
