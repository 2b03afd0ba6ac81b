package cloud

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"copydesk/internal/domain"
	"copydesk/internal/domain/models"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(ClientOptions{
		BaseURL: server.URL,
		TokenProvider: func(ctx context.Context) (string, error) {
			return "test-token", nil
		},
	})
}

func TestDoWrapsAllFailuresAsRemoteUnavailable(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error with legacy body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"error": "boom", "details": "db down"}`, http.StatusInternalServerError)
			},
		},
		{
			name: "problem document body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"title": "Not Found", "detail": "no such project"}`, http.StatusNotFound)
			},
		},
		{
			name: "non-JSON error body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "gateway timeout", http.StatusGatewayTimeout)
			},
		},
		{
			name: "malformed success body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("{{{"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.handler)
			var out map[string]any
			err := client.do(context.Background(), http.MethodGet, "/api/db/projects", nil, &out)
			if !errors.Is(err, domain.ErrRemoteUnavailable) {
				t.Errorf("error = %v, want ErrRemoteUnavailable", err)
			}
		})
	}

	t.Run("unreachable server", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		server.Close()
		client := NewClient(ClientOptions{BaseURL: server.URL})
		err := client.do(context.Background(), http.MethodGet, "/", nil, nil)
		if !errors.Is(err, domain.ErrRemoteUnavailable) {
			t.Errorf("error = %v, want ErrRemoteUnavailable", err)
		}
	})

	t.Run("token provider failure", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		client.tokenProvider = func(ctx context.Context) (string, error) {
			return "", errors.New("not signed in")
		}
		err := client.do(context.Background(), http.MethodGet, "/", nil, nil)
		if !errors.Is(err, domain.ErrRemoteUnavailable) {
			t.Errorf("error = %v, want ErrRemoteUnavailable", err)
		}
	})
}

func TestDoSendsBearerToken(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte("{}"))
	}))

	if err := client.do(context.Background(), http.MethodGet, "/", nil, nil); err != nil {
		t.Fatalf("do: %v", err)
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}
}

func TestCreateProjectWireMapping(t *testing.T) {
	var gotBody map[string]string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/db/projects" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "p1", "name": "Fresh", "personas": [], "folders": [], "documents": [], "snippets": []}`))
	}))

	project, err := NewStore(client).CreateProject(context.Background(), "Fresh")
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if gotBody["name"] != "Fresh" {
		t.Errorf("request body = %v, want name field", gotBody)
	}
	if project.ID != "p1" || project.Name != "Fresh" {
		t.Errorf("project = %+v", project)
	}
}

func TestUpdateDocumentWireMapping(t *testing.T) {
	var gotBody map[string]any
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/api/db/documents/d1" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "d1", "project_id": "p1", "base_title": "Headline",
			"title": "Headline v1", "version": 1,
			"content": "<p>new</p>", "word_count": 1, "char_count": 3
		}`))
	}))

	doc, err := NewStore(client).UpdateDocument(context.Background(), "p1", "d1", map[string]any{
		"content":   "<p>new</p>",
		"folder_id": nil,
	})
	if err != nil {
		t.Fatalf("UpdateDocument: %v", err)
	}

	if gotBody["project_id"] != "p1" {
		t.Errorf("project_id missing from body: %v", gotBody)
	}
	if gotBody["content"] != "<p>new</p>" {
		t.Errorf("content = %v", gotBody["content"])
	}
	if v, present := gotBody["folder_id"]; !present || v != nil {
		t.Errorf("folder_id should be an explicit JSON null, got %v (present=%v)", v, present)
	}

	// snake_case response decoded into the camelCase model
	if doc.BaseTitle != "Headline" || doc.Metadata.WordCount != 1 {
		t.Errorf("doc = %+v", doc)
	}
}

func TestMoveFolderSendsEmptyStringForRoot(t *testing.T) {
	var gotBody map[string]any
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"id": "f1", "project_id": "p1", "name": "Drafts"}`))
	}))

	folder, err := NewStore(client).MoveFolder(context.Background(), "p1", "f1", nil)
	if err != nil {
		t.Fatalf("MoveFolder: %v", err)
	}
	if gotBody["parent_id"] != "" {
		t.Errorf("parent_id = %v, want empty string for root", gotBody["parent_id"])
	}
	if folder.ParentFolderID != nil {
		t.Errorf("ParentFolderID = %v, want nil", *folder.ParentFolderID)
	}
}

func TestDeleteScopesByProjectQueryParam(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.WriteHeader(http.StatusNoContent)
	}))

	if err := NewStore(client).DeleteSnippet(context.Background(), "p 1", "s1"); err != nil {
		t.Fatalf("DeleteSnippet: %v", err)
	}
	if gotQuery != "project_id=p+1" {
		t.Errorf("query = %q, want escaped project_id", gotQuery)
	}
}

func TestIncrementSnippetUsage(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/db/snippets/s1/use" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"usage_count": 7}`))
	}))

	count, err := NewStore(client).IncrementSnippetUsage(context.Background(), "p1", "s1")
	if err != nil {
		t.Fatalf("IncrementSnippetUsage: %v", err)
	}
	if count != 7 {
		t.Errorf("count = %d, want 7", count)
	}
}

func TestMigrateSendsWireProjects(t *testing.T) {
	var gotBody struct {
		Projects []map[string]any `json:"projects"`
	}
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/db/migrate" {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte("{}"))
	}))

	projects := []models.Project{
		{ID: "p1", Name: "One", Documents: []models.Document{{ID: "d1", BaseTitle: "T", Title: "T v1", Version: 1}}},
	}
	if err := NewStore(client).Migrate(context.Background(), projects); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	if len(gotBody.Projects) != 1 {
		t.Fatalf("sent %d projects, want 1", len(gotBody.Projects))
	}
	sent := gotBody.Projects[0]
	if sent["id"] != "p1" {
		t.Errorf("id = %v", sent["id"])
	}
	// Nested documents cross the boundary in snake_case
	docs, ok := sent["documents"].([]any)
	if !ok || len(docs) != 1 {
		t.Fatalf("documents = %v", sent["documents"])
	}
	doc := docs[0].(map[string]any)
	if doc["base_title"] != "T" {
		t.Errorf("document keys should be snake_case, got %v", doc)
	}
}
