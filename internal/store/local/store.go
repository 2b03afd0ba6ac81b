// Package local implements the client-side persistent store. The full
// project list is serialized as one JSON blob in a small key-value
// store, mirroring the legacy browser-localStorage layout so existing
// data files load unchanged.
package local

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"copydesk/internal/config"
	"copydesk/internal/domain"
	"copydesk/internal/domain/models"
	"copydesk/internal/domain/services"
	"copydesk/internal/service"
	"copydesk/internal/store/kv"
)

const (
	projectsKey      = "projects"
	activeProjectKey = "activeProjectId"
	migrationFlagKey = "cloudMigrationDone"
)

// Store is the local persistent store. All state is explicit: nothing is
// shared between two Store values, so tests can run isolated instances
// in parallel.
type Store struct {
	mu       sync.Mutex
	kv       kv.Store
	quota    int64
	analyzer services.ContentAnalyzer
	logger   *slog.Logger
}

// Options configures a local store
type Options struct {
	KV       kv.Store
	Quota    int64 // bytes; 0 means DefaultLocalStoreQuota
	Analyzer services.ContentAnalyzer
	Logger   *slog.Logger
}

// New creates a local store over the given key-value backend
func New(opts Options) *Store {
	quota := opts.Quota
	if quota <= 0 {
		quota = config.DefaultLocalStoreQuota
	}
	analyzer := opts.Analyzer
	if analyzer == nil {
		analyzer = service.NewContentAnalyzer()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		kv:       opts.KV,
		quota:    quota,
		analyzer: analyzer,
		logger:   logger,
	}
}

// SanitizeName strips angle brackets so names are safe to echo into
// markup, then trims surrounding whitespace. Every named entity goes
// through it before validation, on the cloud path too.
func SanitizeName(name string) string {
	name = strings.ReplaceAll(name, "<", "")
	name = strings.ReplaceAll(name, ">", "")
	return strings.TrimSpace(name)
}

// GetAllProjects reads and deserializes the stored blob. A missing or
// corrupted blob yields an empty list, and project records with
// malformed nested collections are repaired, never rejected.
func (s *Store) GetAllProjects() ([]models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadProjects()
}

// CreateProject validates the name, initializes all nested collections
// to empty, appends, and persists.
func (s *Store) CreateProject(name string) (*models.Project, error) {
	name = SanitizeName(name)
	if err := validation.Validate(name, validation.Required, validation.Length(1, config.MaxProjectNameLength)); err != nil {
		return nil, fmt.Errorf("%w: project name %v", domain.ErrValidation, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	projects, err := s.loadProjects()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	project := models.Project{
		ID:        uuid.NewString(),
		Name:      name,
		Personas:  []models.Persona{},
		Folders:   []models.Folder{},
		Documents: []models.Document{},
		Snippets:  []models.Snippet{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	projects = append(projects, project)
	if err := s.saveProjects(projects); err != nil {
		return nil, err
	}

	s.logger.Info("project created", "id", project.ID, "name", project.Name)

	return &project, nil
}

// ProjectPatch carries the caller-updatable project fields
type ProjectPatch struct {
	Name *string
}

// UpdateProject merges the patch into the project. The identifier and
// creation timestamp are never caller-writable.
func (s *Store) UpdateProject(id string, patch ProjectPatch) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects, err := s.loadProjects()
	if err != nil {
		return nil, err
	}

	idx := findProject(projects, id)
	if idx < 0 {
		return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}

	project := &projects[idx]

	if patch.Name != nil {
		name := SanitizeName(*patch.Name)
		if err := validation.Validate(name, validation.Required, validation.Length(1, config.MaxProjectNameLength)); err != nil {
			return nil, fmt.Errorf("%w: project name %v", domain.ErrValidation, err)
		}
		project.Name = name
	}

	project.UpdatedAt = time.Now()

	if err := s.saveProjects(projects); err != nil {
		return nil, err
	}

	out := *project
	return &out, nil
}

// DeleteProject removes the project. If it was the active one, the
// pointer moves to the first remaining project; when none remain the
// stale pointer is left for the caller to resolve.
func (s *Store) DeleteProject(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects, err := s.loadProjects()
	if err != nil {
		return err
	}

	idx := findProject(projects, id)
	if idx < 0 {
		return fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}

	projects = append(projects[:idx], projects[idx+1:]...)
	if err := s.saveProjects(projects); err != nil {
		return err
	}

	active, err := s.kv.Get(activeProjectKey)
	if err == nil && string(active) == id && len(projects) > 0 {
		if err := s.kv.Set(activeProjectKey, []byte(projects[0].ID)); err != nil {
			s.logger.Warn("failed to reassign active project", "error", err)
		}
	}

	s.logger.Info("project deleted", "id", id)

	return nil
}

// GetProject returns a single project by ID
func (s *Store) GetProject(id string) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects, err := s.loadProjects()
	if err != nil {
		return nil, err
	}

	idx := findProject(projects, id)
	if idx < 0 {
		return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}

	out := projects[idx]
	return &out, nil
}

// ActiveProjectID returns the active-project pointer, or "" if unset
func (s *Store) ActiveProjectID() (string, error) {
	value, err := s.kv.Get(activeProjectKey)
	if err != nil {
		return "", err
	}
	return string(value), nil
}

// SetActiveProjectID points the active-project key at an existing project
func (s *Store) SetActiveProjectID(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects, err := s.loadProjects()
	if err != nil {
		return err
	}
	if findProject(projects, id) < 0 {
		return fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}

	return s.kv.Set(activeProjectKey, []byte(id))
}

// MigrationDone reports whether the one-time cloud migration has run
func (s *Store) MigrationDone() (bool, error) {
	value, err := s.kv.Get(migrationFlagKey)
	if err != nil {
		return false, err
	}
	return string(value) == "true", nil
}

// MarkMigrationDone records that the one-time cloud migration succeeded
func (s *Store) MarkMigrationDone() error {
	return s.kv.Set(migrationFlagKey, []byte("true"))
}

// ReplaceAllProjects overwrites the stored project list wholesale. The
// unified store uses this to refresh the cache after cloud reads.
func (s *Store) ReplaceAllProjects(projects []models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveProjects(projects)
}

// Usage returns the estimated bytes used and the configured quota
func (s *Store) Usage() (used, quota int64, err error) {
	used, err = s.kv.Usage()
	if err != nil {
		return 0, 0, err
	}
	return used, s.quota, nil
}

// saveProjects persists the project list, enforcing the storage quota.
// Callers must hold s.mu.
func (s *Store) saveProjects(projects []models.Project) error {
	if projects == nil {
		projects = []models.Project{}
	}

	payload, err := json.Marshal(projects)
	if err != nil {
		return fmt.Errorf("serialize projects: %w", err)
	}

	projected := int64(len(projectsKey) + len(payload))
	if projected > s.quota {
		return &domain.QuotaError{
			Message:  fmt.Sprintf("local storage is full (%d of %d bytes)", projected, s.quota),
			Guidance: "delete old projects or document versions to free space, or migrate to cloud storage",
		}
	}
	if float64(projected) > float64(s.quota)*config.QuotaWarnThreshold {
		s.logger.Warn("local storage nearly full",
			"used_bytes", projected,
			"quota_bytes", s.quota,
		)
	}

	if err := s.kv.Set(projectsKey, payload); err != nil {
		return fmt.Errorf("persist projects: %w", err)
	}

	return nil
}

// mutateProject loads the list, applies fn to the addressed project, and
// persists. fn runs under the store lock.
func (s *Store) mutateProject(projectID string, fn func(project *models.Project) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects, err := s.loadProjects()
	if err != nil {
		return err
	}

	idx := findProject(projects, projectID)
	if idx < 0 {
		return fmt.Errorf("project %s: %w", projectID, domain.ErrNotFound)
	}

	if err := fn(&projects[idx]); err != nil {
		return err
	}

	projects[idx].UpdatedAt = time.Now()

	return s.saveProjects(projects)
}

// viewProject loads the list and passes the addressed project to fn
// read-only (mutations made by fn are discarded).
func (s *Store) viewProject(projectID string, fn func(project *models.Project) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects, err := s.loadProjects()
	if err != nil {
		return err
	}

	idx := findProject(projects, projectID)
	if idx < 0 {
		return fmt.Errorf("project %s: %w", projectID, domain.ErrNotFound)
	}

	return fn(&projects[idx])
}

func findProject(projects []models.Project, id string) int {
	for i := range projects {
		if projects[i].ID == id {
			return i
		}
	}
	return -1
}
