package unified

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"copydesk/internal/domain"
	"copydesk/internal/domain/models"
	"copydesk/internal/store/cloud"
	"copydesk/internal/store/kv"
	"copydesk/internal/store/local"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newLocalStore(t *testing.T) *local.Store {
	t.Helper()
	return local.New(local.Options{
		KV:     kv.NewMemoryStore(),
		Logger: discardLogger(),
	})
}

// brokenCloud is a cloud store whose every call fails at the transport
// layer (the server is already closed).
func brokenCloud(t *testing.T) *cloud.Store {
	t.Helper()
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()
	return cloud.NewStore(cloud.NewClient(cloud.ClientOptions{BaseURL: server.URL}))
}

func cloudBackedBy(t *testing.T, handler http.Handler) *cloud.Store {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return cloud.NewStore(cloud.NewClient(cloud.ClientOptions{BaseURL: server.URL}))
}

func TestLocalFallbackWhenCloudUnreachable(t *testing.T) {
	ctx := context.Background()
	s := New(Options{
		Local:  newLocalStore(t),
		Cloud:  brokenCloud(t),
		Mode:   ModeCloudFirst,
		Logger: discardLogger(),
	})

	// Every operation must succeed against the local store; the cloud
	// failure is absorbed, never surfaced.
	project, err := s.CreateProject(ctx, "Offline")
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	folder, err := s.CreateFolder(ctx, project.ID, "Drafts", nil)
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}

	doc, err := s.CreateDocument(ctx, project.ID, "Headline", "<p>hi</p>")
	if err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}

	if _, err := s.CreateDocumentVersion(ctx, project.ID, doc.ID, nil); err != nil {
		t.Fatalf("CreateDocumentVersion: %v", err)
	}

	versions, err := s.GetDocumentVersions(ctx, project.ID, "Headline")
	if err != nil {
		t.Fatalf("GetDocumentVersions: %v", err)
	}
	if len(versions) != 2 {
		t.Errorf("got %d versions, want 2", len(versions))
	}

	latest, err := s.GetLatestVersion(ctx, project.ID, "Headline")
	if err != nil {
		t.Fatalf("GetLatestVersion: %v", err)
	}
	if latest == nil || latest.Version != 2 {
		t.Errorf("latest = %+v, want version 2", latest)
	}

	projects, err := s.GetAllProjects(ctx)
	if err != nil {
		t.Fatalf("GetAllProjects: %v", err)
	}
	if len(projects) != 1 {
		t.Errorf("got %d projects, want 1", len(projects))
	}

	if err := s.DeleteFolder(ctx, project.ID, folder.ID); err != nil {
		t.Fatalf("DeleteFolder: %v", err)
	}
}

func TestLocalOnlyModeNeverCallsCloud(t *testing.T) {
	ctx := context.Background()
	calls := 0
	cloudStore := cloudBackedBy(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte("[]"))
	}))

	s := New(Options{
		Local:  newLocalStore(t),
		Cloud:  cloudStore,
		Mode:   ModeLocalOnly,
		Logger: discardLogger(),
	})

	if _, err := s.CreateProject(ctx, "Local"); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if _, err := s.GetAllProjects(ctx); err != nil {
		t.Fatalf("GetAllProjects: %v", err)
	}

	if calls != 0 {
		t.Errorf("cloud received %d calls in local-only mode", calls)
	}
}

func TestNilCloudForcesLocalOnly(t *testing.T) {
	s := New(Options{
		Local:  newLocalStore(t),
		Mode:   ModeCloudFirst,
		Logger: discardLogger(),
	})
	if s.Mode() != ModeLocalOnly {
		t.Errorf("Mode() = %d, want ModeLocalOnly when no cloud is configured", s.Mode())
	}

	s.SetMode(ModeCloudFirst)
	if s.Mode() != ModeLocalOnly {
		t.Errorf("SetMode should not enable cloud-first without a cloud store")
	}
}

func TestCloudReadRefreshesLocalCache(t *testing.T) {
	ctx := context.Background()

	remote := `[{"id": "remote-1", "name": "From Cloud", "personas": [], "folders": [], "documents": [], "snippets": []}]`
	cloudStore := cloudBackedBy(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && r.URL.Path == "/api/db/projects" {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(remote))
			return
		}
		http.NotFound(w, r)
	}))

	localStore := newLocalStore(t)
	s := New(Options{
		Local:  localStore,
		Cloud:  cloudStore,
		Mode:   ModeCloudFirst,
		Logger: discardLogger(),
	})

	projects, err := s.GetAllProjects(ctx)
	if err != nil {
		t.Fatalf("GetAllProjects: %v", err)
	}
	if len(projects) != 1 || projects[0].ID != "remote-1" {
		t.Fatalf("projects = %+v, want the cloud copy", projects)
	}

	// The cache was replaced wholesale, so a direct local read agrees
	cached, err := localStore.GetAllProjects()
	if err != nil {
		t.Fatalf("local GetAllProjects: %v", err)
	}
	if len(cached) != 1 || cached[0].ID != "remote-1" {
		t.Errorf("local cache = %+v, want the cloud copy", cached)
	}
}

func TestSnippetDualWrite(t *testing.T) {
	ctx := context.Background()

	cloudStore := cloudBackedBy(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/db/snippets":
			json.NewEncoder(w).Encode(map[string]any{
				"id":          "snip-1",
				"project_id":  "p1",
				"name":        "CTA",
				"content":     "Buy now",
				"usage_count": 0,
			})
		case r.Method == http.MethodPost && r.URL.Path == "/api/db/snippets/snip-1/use":
			json.NewEncoder(w).Encode(map[string]int{"usage_count": 5})
		case r.Method == http.MethodDelete && r.URL.Path == "/api/db/snippets/snip-1":
			w.WriteHeader(http.StatusNoContent)
		default:
			http.NotFound(w, r)
		}
	}))

	// The project must exist locally for the dual write to land
	seedBlob := `[{"id": "p1", "name": "P", "personas": [], "folders": [], "documents": [], "snippets": []}]`
	backend := kv.NewMemoryStore()
	if err := backend.Set("projects", []byte(seedBlob)); err != nil {
		t.Fatalf("seed blob: %v", err)
	}
	localStore := local.New(local.Options{KV: backend, Logger: discardLogger()})

	s := New(Options{
		Local:  localStore,
		Cloud:  cloudStore,
		Mode:   ModeCloudFirst,
		Logger: discardLogger(),
	})

	created, err := s.CreateSnippet(ctx, "p1", models.Snippet{Name: "CTA", Content: "Buy now"})
	if err != nil {
		t.Fatalf("CreateSnippet: %v", err)
	}
	if created.ID != "snip-1" {
		t.Fatalf("created.ID = %q, want cloud-assigned id", created.ID)
	}

	// The cloud write must be mirrored into the local cache
	cached, err := localStore.GetAllSnippets("p1")
	if err != nil {
		t.Fatalf("GetAllSnippets: %v", err)
	}
	if len(cached) != 1 || cached[0].ID != "snip-1" {
		t.Fatalf("local cache missing dual-written snippet: %+v", cached)
	}

	count, err := s.IncrementSnippetUsage(ctx, "p1", "snip-1")
	if err != nil {
		t.Fatalf("IncrementSnippetUsage: %v", err)
	}
	if count != 5 {
		t.Errorf("count = %d, want the cloud's count 5", count)
	}

	if err := s.DeleteSnippet(ctx, "p1", "snip-1"); err != nil {
		t.Fatalf("DeleteSnippet: %v", err)
	}
	cached, err = localStore.GetAllSnippets("p1")
	if err != nil {
		t.Fatalf("GetAllSnippets: %v", err)
	}
	if len(cached) != 0 {
		t.Errorf("local cache still holds deleted snippet: %+v", cached)
	}
}

func TestMigrateLocalToCloudOnce(t *testing.T) {
	ctx := context.Background()

	migrations := 0
	cloudStore := cloudBackedBy(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.URL.Path == "/api/db/migrate" {
			migrations++
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("{}"))
			return
		}
		http.NotFound(w, r)
	}))

	localStore := newLocalStore(t)
	if _, err := localStore.CreateProject("To Migrate"); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	s := New(Options{
		Local:  localStore,
		Cloud:  cloudStore,
		Mode:   ModeCloudFirst,
		Logger: discardLogger(),
	})

	if err := s.MigrateLocalToCloud(ctx); err != nil {
		t.Fatalf("MigrateLocalToCloud: %v", err)
	}
	if err := s.MigrateLocalToCloud(ctx); err != nil {
		t.Fatalf("second MigrateLocalToCloud: %v", err)
	}

	if migrations != 1 {
		t.Errorf("migration ran %d times, want exactly once", migrations)
	}
}

func TestMigrationRetriesAfterFailure(t *testing.T) {
	ctx := context.Background()

	failures := 0
	succeed := false
	cloudStore := cloudBackedBy(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !succeed {
			failures++
			http.Error(w, `{"error": "down"}`, http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("{}"))
	}))

	localStore := newLocalStore(t)
	if _, err := localStore.CreateProject("To Migrate"); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	s := New(Options{
		Local:  localStore,
		Cloud:  cloudStore,
		Mode:   ModeCloudFirst,
		Logger: discardLogger(),
	})

	// A failed migration must not set the flag
	if err := s.MigrateLocalToCloud(ctx); err == nil {
		t.Fatal("migration should surface the cloud failure")
	}
	done, err := localStore.MigrationDone()
	if err != nil {
		t.Fatalf("MigrationDone: %v", err)
	}
	if done {
		t.Fatal("flag set despite failed migration")
	}

	// The next call retries and succeeds
	succeed = true
	if err := s.MigrateLocalToCloud(ctx); err != nil {
		t.Fatalf("retry: %v", err)
	}
	done, err = localStore.MigrationDone()
	if err != nil {
		t.Fatalf("MigrationDone: %v", err)
	}
	if !done {
		t.Error("flag unset after successful retry")
	}
	if failures != 1 {
		t.Errorf("saw %d failed attempts, want 1", failures)
	}
}

func TestCloudWritesCarrySanitizedNames(t *testing.T) {
	ctx := context.Background()
	received := map[string]string{}

	cloudStore := cloudBackedBy(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode %s body: %v", r.URL.Path, err)
		}
		name, _ := body["name"].(string)
		received[r.URL.Path] = name
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"id": "x-1", "project_id": "p1", "name": name})
	}))

	s := New(Options{
		Local:  newLocalStore(t),
		Cloud:  cloudStore,
		Mode:   ModeCloudFirst,
		Logger: discardLogger(),
	})

	raw := "<script>pwn</script>"
	want := "scriptpwn/script"

	if _, err := s.CreateFolder(ctx, "p1", raw, nil); err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}
	if _, err := s.CreatePersona(ctx, "p1", models.Persona{Name: raw}); err != nil {
		t.Fatalf("CreatePersona: %v", err)
	}
	if _, err := s.CreateSnippet(ctx, "p1", models.Snippet{Name: raw, Content: "body"}); err != nil {
		t.Fatalf("CreateSnippet: %v", err)
	}

	for _, path := range []string{"/api/db/folders", "/api/db/personas", "/api/db/snippets"} {
		if got := received[path]; got != want {
			t.Errorf("%s received name %q, want %q", path, got, want)
		}
	}
}

func TestUpdateDocumentSendsTemplateID(t *testing.T) {
	ctx := context.Background()
	var bodies []map[string]json.RawMessage

	cloudStore := cloudBackedBy(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/api/db/documents/doc-1" {
			http.NotFound(w, r)
			return
		}
		var body map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		bodies = append(bodies, body)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"id": "doc-1", "project_id": "p1"})
	}))

	s := New(Options{
		Local:  newLocalStore(t),
		Cloud:  cloudStore,
		Mode:   ModeCloudFirst,
		Logger: discardLogger(),
	})

	template := "tpl-7"
	ref := &template
	if _, err := s.UpdateDocument(ctx, "p1", "doc-1", local.DocumentPatch{TemplateID: &ref}); err != nil {
		t.Fatalf("UpdateDocument set: %v", err)
	}

	var clear *string
	if _, err := s.UpdateDocument(ctx, "p1", "doc-1", local.DocumentPatch{TemplateID: &clear}); err != nil {
		t.Fatalf("UpdateDocument clear: %v", err)
	}

	if len(bodies) != 2 {
		t.Fatalf("got %d PATCH bodies, want 2", len(bodies))
	}
	if got := string(bodies[0]["template_id"]); got != `"tpl-7"` {
		t.Errorf(`first patch template_id = %s, want "tpl-7"`, got)
	}
	raw, ok := bodies[1]["template_id"]
	if !ok || string(raw) != "null" {
		t.Errorf("second patch template_id = %s (present=%v), want explicit null", raw, ok)
	}
}

func TestGetLatestVersionEmptyFamily(t *testing.T) {
	ctx := context.Background()
	s := New(Options{
		Local:  newLocalStore(t),
		Mode:   ModeLocalOnly,
		Logger: discardLogger(),
	})

	project, err := s.CreateProject(ctx, "P")
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	if _, err := s.GetLatestVersion(ctx, project.ID, "Missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
