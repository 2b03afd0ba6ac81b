package local

import (
	"errors"
	"strings"
	"testing"

	"copydesk/internal/domain"
)

func TestCreateDocument(t *testing.T) {
	s := newTestStore(t, Options{})
	project, err := s.CreateProject("P")
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	t.Run("first version", func(t *testing.T) {
		doc, err := s.CreateDocument(project.ID, "Launch Email", "<p>Hello world</p>")
		if err != nil {
			t.Fatalf("CreateDocument: %v", err)
		}
		if doc.Version != 1 {
			t.Errorf("Version = %d, want 1", doc.Version)
		}
		if doc.Title != "Launch Email v1" {
			t.Errorf("Title = %q, want %q", doc.Title, "Launch Email v1")
		}
		if doc.BaseTitle != "Launch Email" {
			t.Errorf("BaseTitle = %q, want %q", doc.BaseTitle, "Launch Email")
		}
		if doc.ParentVersionID != nil {
			t.Errorf("ParentVersionID = %v, want nil", *doc.ParentVersionID)
		}
		if doc.Metadata.WordCount != 2 {
			t.Errorf("WordCount = %d, want 2", doc.Metadata.WordCount)
		}
	})

	t.Run("title boundaries", func(t *testing.T) {
		if _, err := s.CreateDocument(project.ID, strings.Repeat("t", 255), ""); err != nil {
			t.Errorf("255-char title should pass: %v", err)
		}
		if _, err := s.CreateDocument(project.ID, strings.Repeat("t", 256), ""); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("256-char title: error = %v, want ErrValidation", err)
		}
		if _, err := s.CreateDocument(project.ID, "", ""); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("empty title: error = %v, want ErrValidation", err)
		}
	})
}

func TestDocumentVersionFamily(t *testing.T) {
	s := newTestStore(t, Options{})
	project, err := s.CreateProject("P")
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	v1, err := s.CreateDocument(project.ID, "Headline", "<p>first draft</p>")
	if err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}

	v2, err := s.CreateDocumentVersion(project.ID, v1.ID, nil)
	if err != nil {
		t.Fatalf("CreateDocumentVersion: %v", err)
	}
	if v2.Version != 2 {
		t.Errorf("v2.Version = %d, want 2", v2.Version)
	}
	if v2.Title != "Headline v2" {
		t.Errorf("v2.Title = %q, want %q", v2.Title, "Headline v2")
	}
	if v2.ParentVersionID == nil || *v2.ParentVersionID != v1.ID {
		t.Errorf("v2.ParentVersionID = %v, want %s", v2.ParentVersionID, v1.ID)
	}
	if v2.Content != v1.Content {
		t.Errorf("nil newContent should copy source content, got %q", v2.Content)
	}

	// Branch off v1, not v2: the number still comes from the family max
	override := "<p>rewrite</p>"
	v3, err := s.CreateDocumentVersion(project.ID, v1.ID, &override)
	if err != nil {
		t.Fatalf("CreateDocumentVersion: %v", err)
	}
	if v3.Version != 3 {
		t.Errorf("v3.Version = %d, want 3 (1 + family max)", v3.Version)
	}
	if v3.ParentVersionID == nil || *v3.ParentVersionID != v1.ID {
		t.Errorf("v3.ParentVersionID = %v, want %s", v3.ParentVersionID, v1.ID)
	}
	if v3.Content != override {
		t.Errorf("v3.Content = %q, want override", v3.Content)
	}

	t.Run("versions sorted ascending", func(t *testing.T) {
		versions, err := s.GetDocumentVersions(project.ID, "Headline")
		if err != nil {
			t.Fatalf("GetDocumentVersions: %v", err)
		}
		if len(versions) != 3 {
			t.Fatalf("got %d versions, want 3", len(versions))
		}
		for i, v := range versions {
			if v.Version != i+1 {
				t.Errorf("versions[%d].Version = %d, want %d", i, v.Version, i+1)
			}
		}
	})

	t.Run("latest version", func(t *testing.T) {
		latest, err := s.GetLatestVersion(project.ID, "Headline")
		if err != nil {
			t.Fatalf("GetLatestVersion: %v", err)
		}
		if latest.ID != v3.ID {
			t.Errorf("latest = %s, want %s", latest.ID, v3.ID)
		}
	})

	t.Run("latest of unknown family", func(t *testing.T) {
		if _, err := s.GetLatestVersion(project.ID, "Nope"); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("version of unknown document", func(t *testing.T) {
		if _, err := s.CreateDocumentVersion(project.ID, "missing", nil); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})
}

func TestUpdateDocumentRecomputesCounts(t *testing.T) {
	s := newTestStore(t, Options{})
	project, err := s.CreateProject("P")
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	doc, err := s.CreateDocument(project.ID, "Copy", "<p>one two three</p>")
	if err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}
	if doc.Metadata.WordCount != 3 {
		t.Fatalf("initial WordCount = %d, want 3", doc.Metadata.WordCount)
	}

	content := "<p>one</p><p>two</p>"
	updated, err := s.UpdateDocument(project.ID, doc.ID, DocumentPatch{Content: &content})
	if err != nil {
		t.Fatalf("UpdateDocument: %v", err)
	}
	if updated.Metadata.WordCount != 2 {
		t.Errorf("WordCount = %d, want 2 (tags are word boundaries)", updated.Metadata.WordCount)
	}
	if updated.Metadata.CharCount != 7 {
		t.Errorf("CharCount = %d, want 7 (%q)", updated.Metadata.CharCount, "one two")
	}

	t.Run("tag-only patch leaves counts alone", func(t *testing.T) {
		tags := []string{"email"}
		after, err := s.UpdateDocument(project.ID, doc.ID, DocumentPatch{Tags: &tags})
		if err != nil {
			t.Fatalf("UpdateDocument: %v", err)
		}
		if after.Metadata.WordCount != 2 {
			t.Errorf("WordCount changed on tag-only patch: %d", after.Metadata.WordCount)
		}
		if len(after.Metadata.Tags) != 1 || after.Metadata.Tags[0] != "email" {
			t.Errorf("Tags = %v, want [email]", after.Metadata.Tags)
		}
	})
}

func TestUpdateDocumentFolderMove(t *testing.T) {
	s := newTestStore(t, Options{})
	project, err := s.CreateProject("P")
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	folder, err := s.CreateFolder(project.ID, "Inbox", nil)
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}
	doc, err := s.CreateDocument(project.ID, "Doc", "")
	if err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}

	t.Run("into folder", func(t *testing.T) {
		target := &folder.ID
		moved, err := s.UpdateDocument(project.ID, doc.ID, DocumentPatch{FolderID: &target})
		if err != nil {
			t.Fatalf("UpdateDocument: %v", err)
		}
		if moved.FolderID == nil || *moved.FolderID != folder.ID {
			t.Errorf("FolderID = %v, want %s", moved.FolderID, folder.ID)
		}
	})

	t.Run("to root", func(t *testing.T) {
		var root *string
		moved, err := s.UpdateDocument(project.ID, doc.ID, DocumentPatch{FolderID: &root})
		if err != nil {
			t.Fatalf("UpdateDocument: %v", err)
		}
		if moved.FolderID != nil {
			t.Errorf("FolderID = %v, want nil", *moved.FolderID)
		}
	})

	t.Run("into unknown folder", func(t *testing.T) {
		missing := "missing"
		target := &missing
		if _, err := s.UpdateDocument(project.ID, doc.ID, DocumentPatch{FolderID: &target}); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})
}

func TestDeleteDocument(t *testing.T) {
	s := newTestStore(t, Options{})
	project, err := s.CreateProject("P")
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	v1, err := s.CreateDocument(project.ID, "Doc", "")
	if err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}
	v2, err := s.CreateDocumentVersion(project.ID, v1.ID, nil)
	if err != nil {
		t.Fatalf("CreateDocumentVersion: %v", err)
	}

	// Deleting the parent version leaves the child in place
	if err := s.DeleteDocument(project.ID, v1.ID); err != nil {
		t.Fatalf("DeleteDocument: %v", err)
	}

	remaining, err := s.GetDocument(project.ID, v2.ID)
	if err != nil {
		t.Fatalf("GetDocument: %v", err)
	}
	if remaining.ParentVersionID == nil || *remaining.ParentVersionID != v1.ID {
		t.Errorf("surviving version should keep its parent pointer")
	}

	if _, err := s.GetDocument(project.ID, v1.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("deleted document still readable: %v", err)
	}
}
