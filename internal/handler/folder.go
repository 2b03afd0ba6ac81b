package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"copydesk/internal/domain"
	"copydesk/internal/domain/services"
	"copydesk/internal/httputil"
	"copydesk/internal/wire"
)

// FolderHandler handles folder HTTP requests
type FolderHandler struct {
	folderService services.FolderService
	logger        *slog.Logger
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(folderService services.FolderService, logger *slog.Logger) *FolderHandler {
	return &FolderHandler{
		folderService: folderService,
		logger:        logger,
	}
}

// folderContents is the wire form of a folder listing
type folderContents struct {
	Folder    *wire.Folder    `json:"folder,omitempty"`
	Folders   []wire.Folder   `json:"folders"`
	Documents []wire.Document `json:"documents"`
}

func wireContents(contents *services.FolderContents) *folderContents {
	out := &folderContents{
		Folders:   make([]wire.Folder, 0, len(contents.Folders)),
		Documents: wireDocuments(contents.Documents),
	}
	if contents.Folder != nil {
		out.Folder = wire.FromFolder(contents.Folder)
	}
	for i := range contents.Folders {
		out.Folders = append(out.Folders, *wire.FromFolder(&contents.Folders[i]))
	}
	return out
}

// CreateFolder creates a new folder
// POST /api/db/folders
// Returns 201 if created, 409 with the existing folder on duplicate names
func (h *FolderHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	var req services.CreateFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	folder, err := h.folderService.CreateFolder(r.Context(), &req)
	if err != nil {
		HandleCreateConflict(w, err, func() (*wire.Folder, error) {
			var conflictErr *domain.ConflictError
			if errors.As(err, &conflictErr) {
				existing, fetchErr := h.folderService.GetFolder(r.Context(), conflictErr.ResourceID, req.ProjectID)
				if fetchErr != nil {
					return nil, fetchErr
				}
				return wire.FromFolder(existing), nil
			}
			return nil, err
		})
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, wire.FromFolder(folder))
}

// GetFolder retrieves a folder with its computed path
// GET /api/db/folders/{id}
func (h *FolderHandler) GetFolder(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	projectID := r.URL.Query().Get("project_id")
	if id == "" || projectID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "folder ID and project_id are required")
		return
	}

	folder, err := h.folderService.GetFolder(r.Context(), id, projectID)
	if err != nil {
		handleError(w, err)
		return
	}

	out := wire.FromFolder(folder)

	path, err := h.folderService.GetPath(r.Context(), id, projectID)
	if err != nil {
		h.logger.Warn("failed to compute path", "folder_id", id, "error", err)
		out.Path = folder.Name
	} else {
		out.Path = path
	}

	httputil.RespondJSON(w, http.StatusOK, out)
}

// UpdateFolder renames or moves a folder
// PATCH /api/db/folders/{id}
func (h *FolderHandler) UpdateFolder(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "folder ID is required")
		return
	}

	var req services.UpdateFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	folder, err := h.folderService.UpdateFolder(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, wire.FromFolder(folder))
}

// DeleteFolder deletes a folder (must be empty)
// DELETE /api/db/folders/{id}
func (h *FolderHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	projectID := r.URL.Query().Get("project_id")
	if id == "" || projectID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "folder ID and project_id are required")
		return
	}

	if err := h.folderService.DeleteFolder(r.Context(), id, projectID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListChildren lists child folders and documents at a level
// GET /api/db/folders?project_id=...&parent_id=...
func (h *FolderHandler) ListChildren(w http.ResponseWriter, r *http.Request) {
	projectID := r.URL.Query().Get("project_id")
	if projectID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "project_id is required")
		return
	}

	var folderID *string
	if parent := r.URL.Query().Get("parent_id"); parent != "" {
		folderID = &parent
	}

	contents, err := h.folderService.ListChildren(r.Context(), folderID, projectID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, wireContents(contents))
}

// ListDescendants returns every folder underneath the given one
// GET /api/db/folders/{id}/descendants
func (h *FolderHandler) ListDescendants(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	projectID := r.URL.Query().Get("project_id")
	if id == "" || projectID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "folder ID and project_id are required")
		return
	}

	descendants, err := h.folderService.ListDescendants(r.Context(), id, projectID)
	if err != nil {
		handleError(w, err)
		return
	}

	out := make([]wire.Folder, 0, len(descendants))
	for i := range descendants {
		out = append(out, *wire.FromFolder(&descendants[i]))
	}

	httputil.RespondJSON(w, http.StatusOK, out)
}
