package handler

import (
	"log/slog"
	"net/http"

	"copydesk/internal/domain/models"
	"copydesk/internal/httputil"
	"copydesk/internal/service"
	"copydesk/internal/wire"
)

// MigrateHandler handles one-shot local-to-cloud migration imports
type MigrateHandler struct {
	migrationService *service.MigrationService
	logger           *slog.Logger
}

// NewMigrateHandler creates a new migration handler
func NewMigrateHandler(migrationService *service.MigrationService, logger *slog.Logger) *MigrateHandler {
	return &MigrateHandler{
		migrationService: migrationService,
		logger:           logger,
	}
}

// migrateRequest carries the full local dataset in wire form
type migrateRequest struct {
	Projects []wire.Project `json:"projects"`
}

// Import writes a full set of local projects for the user in one transaction
// POST /api/db/migrate
func (h *MigrateHandler) Import(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	var req migrateRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	projects := make([]models.Project, 0, len(req.Projects))
	for i := range req.Projects {
		projects = append(projects, *wire.ToProject(&req.Projects[i]))
	}

	result, err := h.migrationService.Import(r.Context(), userID, projects)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}
