package handler

import (
	"log/slog"
	"net/http"

	"copydesk/internal/domain/services"
	"copydesk/internal/httputil"
	"copydesk/internal/wire"
)

// PersonaHandler handles persona HTTP requests
type PersonaHandler struct {
	personaService services.PersonaService
	logger         *slog.Logger
}

// NewPersonaHandler creates a new persona handler
func NewPersonaHandler(personaService services.PersonaService, logger *slog.Logger) *PersonaHandler {
	return &PersonaHandler{
		personaService: personaService,
		logger:         logger,
	}
}

// CreatePersona creates a new audience persona
// POST /api/db/personas
func (h *PersonaHandler) CreatePersona(w http.ResponseWriter, r *http.Request) {
	var req services.CreatePersonaRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	persona, err := h.personaService.CreatePersona(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, wire.FromPersona(persona))
}

// GetPersona retrieves a persona by ID
// GET /api/db/personas/{id}
func (h *PersonaHandler) GetPersona(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	projectID := r.URL.Query().Get("project_id")
	if id == "" || projectID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "persona ID and project_id are required")
		return
	}

	persona, err := h.personaService.GetPersona(r.Context(), id, projectID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, wire.FromPersona(persona))
}

// UpdatePersona updates a persona's profile fields
// PATCH /api/db/personas/{id}
func (h *PersonaHandler) UpdatePersona(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "persona ID is required")
		return
	}

	var req services.UpdatePersonaRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	persona, err := h.personaService.UpdatePersona(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, wire.FromPersona(persona))
}

// DeletePersona deletes a persona
// DELETE /api/db/personas/{id}
func (h *PersonaHandler) DeletePersona(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	projectID := r.URL.Query().Get("project_id")
	if id == "" || projectID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "persona ID and project_id are required")
		return
	}

	if err := h.personaService.DeletePersona(r.Context(), id, projectID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListPersonas lists all personas in a project
// GET /api/db/personas?project_id=...
func (h *PersonaHandler) ListPersonas(w http.ResponseWriter, r *http.Request) {
	projectID := r.URL.Query().Get("project_id")
	if projectID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "project_id is required")
		return
	}

	personas, err := h.personaService.ListPersonas(r.Context(), projectID)
	if err != nil {
		handleError(w, err)
		return
	}

	out := make([]wire.Persona, 0, len(personas))
	for i := range personas {
		out = append(out, *wire.FromPersona(&personas[i]))
	}

	httputil.RespondJSON(w, http.StatusOK, out)
}
