package handler

import (
	"log/slog"
	"net/http"

	"copydesk/internal/domain/models"
	"copydesk/internal/domain/services"
	"copydesk/internal/httputil"
	"copydesk/internal/wire"
)

// ProjectHandler handles project HTTP requests
type ProjectHandler struct {
	projectService services.ProjectService
	logger         *slog.Logger
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectService services.ProjectService, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		logger:         logger,
	}
}

// HealthCheck reports liveness
// GET /health
func (h *ProjectHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListProjects retrieves all projects for the user
// GET /api/db/projects
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	projects, err := h.projectService.ListProjects(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, wireProjects(projects))
}

// CreateProject creates a new project
// POST /api/db/projects
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	var req services.CreateProjectRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.UserID = userID

	project, err := h.projectService.CreateProject(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, wire.FromProject(project))
}

// GetProject retrieves a project by ID
// GET /api/db/projects/{id}
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "project ID is required")
		return
	}

	project, err := h.projectService.GetProject(r.Context(), id, userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, wire.FromProject(project))
}

// UpdateProject renames a project
// PATCH /api/db/projects/{id}
func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "project ID is required")
		return
	}

	var req services.UpdateProjectRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	project, err := h.projectService.UpdateProject(r.Context(), id, userID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, wire.FromProject(project))
}

// DeleteProject deletes a project and everything in it
// DELETE /api/db/projects/{id}
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "project ID is required")
		return
	}

	if err := h.projectService.DeleteProject(r.Context(), id, userID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SetBrandVoice creates or replaces the project's brand voice
// PUT /api/db/projects/{id}/brand-voice
func (h *ProjectHandler) SetBrandVoice(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "project ID is required")
		return
	}

	var req wire.BrandVoice
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	voice := wire.ToBrandVoice(&req)
	if err := h.projectService.SetBrandVoice(r.Context(), id, userID, voice); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, wire.FromBrandVoice(voice))
}

// GetBrandVoice returns the project's brand voice (404 if none set)
// GET /api/db/projects/{id}/brand-voice
func (h *ProjectHandler) GetBrandVoice(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "project ID is required")
		return
	}

	voice, err := h.projectService.GetBrandVoice(r.Context(), id, userID)
	if err != nil {
		handleError(w, err)
		return
	}
	if voice == nil {
		httputil.RespondError(w, http.StatusNotFound, "no brand voice set")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, wire.FromBrandVoice(voice))
}

// ClearBrandVoice removes the project's brand voice
// DELETE /api/db/projects/{id}/brand-voice
func (h *ProjectHandler) ClearBrandVoice(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "project ID is required")
		return
	}

	if err := h.projectService.ClearBrandVoice(r.Context(), id, userID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// wireProjects is a shared helper for handlers that return project lists
func wireProjects(projects []models.Project) []wire.Project {
	out := make([]wire.Project, 0, len(projects))
	for i := range projects {
		out = append(out, *wire.FromProject(&projects[i]))
	}
	return out
}
