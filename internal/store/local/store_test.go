package local

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"copydesk/internal/domain"
	"copydesk/internal/store/kv"
)

func newTestStore(t *testing.T, opts Options) *Store {
	t.Helper()
	if opts.KV == nil {
		opts.KV = kv.NewMemoryStore()
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return New(opts)
}

func TestCreateProject(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantName string
		wantErr  error
	}{
		{
			name:     "valid name",
			input:    "Spring Campaign",
			wantName: "Spring Campaign",
		},
		{
			name:     "name at length limit",
			input:    strings.Repeat("a", 100),
			wantName: strings.Repeat("a", 100),
		},
		{
			name:    "name over length limit",
			input:   strings.Repeat("a", 101),
			wantErr: domain.ErrValidation,
		},
		{
			name:    "empty name",
			input:   "",
			wantErr: domain.ErrValidation,
		},
		{
			name:    "whitespace only",
			input:   "   ",
			wantErr: domain.ErrValidation,
		},
		{
			name:     "angle brackets stripped",
			input:    "<script>Launch</script>",
			wantName: "scriptLaunch/script",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t, Options{})

			project, err := s.CreateProject(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("CreateProject(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("CreateProject(%q) unexpected error: %v", tt.input, err)
			}
			if project.Name != tt.wantName {
				t.Errorf("project.Name = %q, want %q", project.Name, tt.wantName)
			}
			if project.ID == "" {
				t.Error("project.ID is empty")
			}
			if project.Folders == nil || project.Documents == nil || project.Personas == nil || project.Snippets == nil {
				t.Error("nested collections should be initialized to empty, not nil")
			}
		})
	}
}

func TestGetAllProjectsRoundTrip(t *testing.T) {
	s := newTestStore(t, Options{})

	first, err := s.CreateProject("First")
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	second, err := s.CreateProject("Second")
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	projects, err := s.GetAllProjects()
	if err != nil {
		t.Fatalf("GetAllProjects: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("got %d projects, want 2", len(projects))
	}
	if projects[0].ID != first.ID || projects[1].ID != second.ID {
		t.Errorf("projects out of order: got [%s, %s]", projects[0].ID, projects[1].ID)
	}

	// A second read must see the same state
	again, err := s.GetAllProjects()
	if err != nil {
		t.Fatalf("GetAllProjects (second read): %v", err)
	}
	if len(again) != 2 {
		t.Errorf("second read returned %d projects, want 2", len(again))
	}
}

func TestUpdateProject(t *testing.T) {
	s := newTestStore(t, Options{})
	project, err := s.CreateProject("Before")
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	t.Run("rename", func(t *testing.T) {
		name := "After"
		updated, err := s.UpdateProject(project.ID, ProjectPatch{Name: &name})
		if err != nil {
			t.Fatalf("UpdateProject: %v", err)
		}
		if updated.Name != "After" {
			t.Errorf("Name = %q, want %q", updated.Name, "After")
		}
	})

	t.Run("unknown project", func(t *testing.T) {
		name := "X"
		if _, err := s.UpdateProject("missing", ProjectPatch{Name: &name}); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("invalid name", func(t *testing.T) {
		name := strings.Repeat("x", 101)
		if _, err := s.UpdateProject(project.ID, ProjectPatch{Name: &name}); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("error = %v, want ErrValidation", err)
		}
	})
}

func TestDeleteProjectReassignsActivePointer(t *testing.T) {
	s := newTestStore(t, Options{})

	first, err := s.CreateProject("First")
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	second, err := s.CreateProject("Second")
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	if err := s.SetActiveProjectID(second.ID); err != nil {
		t.Fatalf("SetActiveProjectID: %v", err)
	}

	if err := s.DeleteProject(second.ID); err != nil {
		t.Fatalf("DeleteProject: %v", err)
	}

	active, err := s.ActiveProjectID()
	if err != nil {
		t.Fatalf("ActiveProjectID: %v", err)
	}
	if active != first.ID {
		t.Errorf("active project = %q, want first remaining project %q", active, first.ID)
	}
}

func TestDeleteProjectNotFound(t *testing.T) {
	s := newTestStore(t, Options{})
	if err := s.DeleteProject("missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestSetActiveProjectRequiresExistingProject(t *testing.T) {
	s := newTestStore(t, Options{})
	if err := s.SetActiveProjectID("missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestQuotaEnforcement(t *testing.T) {
	s := newTestStore(t, Options{Quota: 512})

	project, err := s.CreateProject("Tiny")
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	// A document large enough to push the blob past 512 bytes
	_, err = s.CreateDocument(project.ID, "Big", strings.Repeat("word ", 500))
	if !errors.Is(err, domain.ErrQuotaExceeded) {
		t.Fatalf("error = %v, want ErrQuotaExceeded", err)
	}

	var quotaErr *domain.QuotaError
	if !errors.As(err, &quotaErr) {
		t.Fatalf("error is not a *domain.QuotaError: %v", err)
	}
	if quotaErr.Guidance == "" {
		t.Error("quota error should carry guidance for the user")
	}

	// The failed write must not have corrupted the stored state
	got, err := s.GetProject(project.ID)
	if err != nil {
		t.Fatalf("GetProject after quota failure: %v", err)
	}
	if len(got.Documents) != 0 {
		t.Errorf("document persisted despite quota failure: %d documents", len(got.Documents))
	}
}

func TestMigrationFlag(t *testing.T) {
	s := newTestStore(t, Options{})

	done, err := s.MigrationDone()
	if err != nil {
		t.Fatalf("MigrationDone: %v", err)
	}
	if done {
		t.Error("migration flag should start unset")
	}

	if err := s.MarkMigrationDone(); err != nil {
		t.Fatalf("MarkMigrationDone: %v", err)
	}

	done, err = s.MigrationDone()
	if err != nil {
		t.Fatalf("MigrationDone: %v", err)
	}
	if !done {
		t.Error("migration flag should be set after MarkMigrationDone")
	}
}

func TestLoadProjectsRepairsCorruption(t *testing.T) {
	tests := []struct {
		name         string
		blob         string
		wantProjects int
		check        func(t *testing.T, s *Store)
	}{
		{
			name:         "blob is not an array",
			blob:         `{"oops": true}`,
			wantProjects: 0,
		},
		{
			name:         "blob is garbage",
			blob:         `{{{{`,
			wantProjects: 0,
		},
		{
			name:         "documents field is an object",
			blob:         `[{"id": "p1", "name": "Damaged", "documents": {"a": 1}, "folders": []}]`,
			wantProjects: 1,
			check: func(t *testing.T, s *Store) {
				project, err := s.GetProject("p1")
				if err != nil {
					t.Fatalf("GetProject: %v", err)
				}
				if len(project.Documents) != 0 {
					t.Errorf("documents should be repaired to empty, got %d", len(project.Documents))
				}
				if project.Name != "Damaged" {
					t.Errorf("intact fields should survive repair, Name = %q", project.Name)
				}
			},
		},
		{
			name:         "record missing id is skipped, rest survive",
			blob:         `[{"name": "No ID"}, {"id": "p2", "name": "Fine"}]`,
			wantProjects: 1,
			check: func(t *testing.T, s *Store) {
				if _, err := s.GetProject("p2"); err != nil {
					t.Errorf("intact record should survive: %v", err)
				}
			},
		},
		{
			name:         "missing collections become empty slices",
			blob:         `[{"id": "p3", "name": "Sparse"}]`,
			wantProjects: 1,
			check: func(t *testing.T, s *Store) {
				project, err := s.GetProject("p3")
				if err != nil {
					t.Fatalf("GetProject: %v", err)
				}
				if project.Folders == nil || project.Documents == nil || project.Personas == nil || project.Snippets == nil {
					t.Error("collections should be normalized to empty slices")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := kv.NewMemoryStore()
			if err := backend.Set("projects", []byte(tt.blob)); err != nil {
				t.Fatalf("seed blob: %v", err)
			}
			s := newTestStore(t, Options{KV: backend})

			projects, err := s.GetAllProjects()
			if err != nil {
				t.Fatalf("GetAllProjects: %v", err)
			}
			if len(projects) != tt.wantProjects {
				t.Fatalf("got %d projects, want %d", len(projects), tt.wantProjects)
			}
			if tt.check != nil {
				tt.check(t, s)
			}
		})
	}
}

func TestReplaceAllProjects(t *testing.T) {
	s := newTestStore(t, Options{})

	if _, err := s.CreateProject("Old"); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	fresh, err := s.CreateProject("Keep")
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	projects, err := s.GetAllProjects()
	if err != nil {
		t.Fatalf("GetAllProjects: %v", err)
	}
	if err := s.ReplaceAllProjects(projects[1:]); err != nil {
		t.Fatalf("ReplaceAllProjects: %v", err)
	}

	got, err := s.GetAllProjects()
	if err != nil {
		t.Fatalf("GetAllProjects: %v", err)
	}
	if len(got) != 1 || got[0].ID != fresh.ID {
		t.Errorf("replacement did not take: got %d projects", len(got))
	}
}
