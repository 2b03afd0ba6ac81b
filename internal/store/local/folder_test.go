package local

import (
	"errors"
	"strings"
	"testing"

	"copydesk/internal/domain"
	"copydesk/internal/domain/models"
	"copydesk/internal/store/kv"
)

// buildTree creates a project with the chain root -> A -> B -> C
func buildTree(t *testing.T, s *Store) (projectID string, a, b, c *models.Folder) {
	t.Helper()

	project, err := s.CreateProject("Tree")
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	a, err = s.CreateFolder(project.ID, "A", nil)
	if err != nil {
		t.Fatalf("CreateFolder A: %v", err)
	}
	b, err = s.CreateFolder(project.ID, "B", &a.ID)
	if err != nil {
		t.Fatalf("CreateFolder B: %v", err)
	}
	c, err = s.CreateFolder(project.ID, "C", &b.ID)
	if err != nil {
		t.Fatalf("CreateFolder C: %v", err)
	}

	return project.ID, a, b, c
}

func TestCreateFolder(t *testing.T) {
	s := newTestStore(t, Options{})
	project, err := s.CreateProject("P")
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	t.Run("root folder", func(t *testing.T) {
		folder, err := s.CreateFolder(project.ID, "Drafts", nil)
		if err != nil {
			t.Fatalf("CreateFolder: %v", err)
		}
		if folder.ParentFolderID != nil {
			t.Errorf("ParentFolderID = %v, want nil", *folder.ParentFolderID)
		}
	})

	t.Run("empty string parent means root", func(t *testing.T) {
		empty := ""
		folder, err := s.CreateFolder(project.ID, "AlsoRoot", &empty)
		if err != nil {
			t.Fatalf("CreateFolder: %v", err)
		}
		if folder.ParentFolderID != nil {
			t.Errorf("ParentFolderID = %v, want nil", *folder.ParentFolderID)
		}
	})

	t.Run("unknown parent", func(t *testing.T) {
		missing := "missing"
		if _, err := s.CreateFolder(project.ID, "Orphan", &missing); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("empty name", func(t *testing.T) {
		if _, err := s.CreateFolder(project.ID, "", nil); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("error = %v, want ErrValidation", err)
		}
	})

	t.Run("name length boundary", func(t *testing.T) {
		if _, err := s.CreateFolder(project.ID, strings.Repeat("n", 100), nil); err != nil {
			t.Errorf("100-char name should pass: %v", err)
		}
		if _, err := s.CreateFolder(project.ID, strings.Repeat("n", 101), nil); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("101-char name: error = %v, want ErrValidation", err)
		}
	})
}

func TestMoveFolderCycleRules(t *testing.T) {
	s := newTestStore(t, Options{})
	projectID, a, b, c := buildTree(t, s)

	t.Run("move into itself", func(t *testing.T) {
		_, err := s.MoveFolder(projectID, a.ID, &a.ID)
		if !errors.Is(err, domain.ErrCircularReference) {
			t.Fatalf("error = %v, want ErrCircularReference", err)
		}
	})

	t.Run("move under own child", func(t *testing.T) {
		_, err := s.MoveFolder(projectID, a.ID, &b.ID)
		if !errors.Is(err, domain.ErrCircularReference) {
			t.Fatalf("error = %v, want ErrCircularReference", err)
		}
	})

	t.Run("move under own grandchild", func(t *testing.T) {
		_, err := s.MoveFolder(projectID, a.ID, &c.ID)
		if !errors.Is(err, domain.ErrCircularReference) {
			t.Fatalf("error = %v, want ErrCircularReference", err)
		}
	})

	t.Run("structural error carries a message", func(t *testing.T) {
		_, err := s.MoveFolder(projectID, a.ID, &c.ID)
		var structural *domain.StructuralError
		if !errors.As(err, &structural) {
			t.Fatalf("error is not a *domain.StructuralError: %v", err)
		}
		if structural.Message == "" {
			t.Error("structural error message is empty")
		}
	})

	t.Run("legal sideways move", func(t *testing.T) {
		// C out from under B, directly under A
		moved, err := s.MoveFolder(projectID, c.ID, &a.ID)
		if err != nil {
			t.Fatalf("MoveFolder: %v", err)
		}
		if moved.ParentFolderID == nil || *moved.ParentFolderID != a.ID {
			t.Errorf("ParentFolderID = %v, want %s", moved.ParentFolderID, a.ID)
		}
	})

	t.Run("move to root", func(t *testing.T) {
		moved, err := s.MoveFolder(projectID, b.ID, nil)
		if err != nil {
			t.Fatalf("MoveFolder: %v", err)
		}
		if moved.ParentFolderID != nil {
			t.Errorf("ParentFolderID = %v, want nil", *moved.ParentFolderID)
		}
	})
}

func TestDeleteFolderGuards(t *testing.T) {
	s := newTestStore(t, Options{})
	projectID, a, b, c := buildTree(t, s)

	t.Run("folder with child folders", func(t *testing.T) {
		err := s.DeleteFolder(projectID, a.ID)
		if !errors.Is(err, domain.ErrFolderNotEmpty) {
			t.Fatalf("error = %v, want ErrFolderNotEmpty", err)
		}
	})

	t.Run("folder with documents", func(t *testing.T) {
		doc, err := s.CreateDocument(projectID, "Inside", "<p>x</p>")
		if err != nil {
			t.Fatalf("CreateDocument: %v", err)
		}
		folderRef := &c.ID
		if _, err := s.UpdateDocument(projectID, doc.ID, DocumentPatch{FolderID: &folderRef}); err != nil {
			t.Fatalf("UpdateDocument: %v", err)
		}

		if err := s.DeleteFolder(projectID, c.ID); !errors.Is(err, domain.ErrFolderNotEmpty) {
			t.Fatalf("error = %v, want ErrFolderNotEmpty", err)
		}

		// Empty the folder, then the delete goes through
		var root *string
		if _, err := s.UpdateDocument(projectID, doc.ID, DocumentPatch{FolderID: &root}); err != nil {
			t.Fatalf("UpdateDocument: %v", err)
		}
		if err := s.DeleteFolder(projectID, c.ID); err != nil {
			t.Fatalf("DeleteFolder after emptying: %v", err)
		}
	})

	t.Run("empty leaf folder", func(t *testing.T) {
		if err := s.DeleteFolder(projectID, b.ID); err != nil {
			t.Fatalf("DeleteFolder: %v", err)
		}
		folders, err := s.GetAllFolders(projectID)
		if err != nil {
			t.Fatalf("GetAllFolders: %v", err)
		}
		for _, f := range folders {
			if f.ID == b.ID {
				t.Error("deleted folder still listed")
			}
		}
	})

	t.Run("unknown folder", func(t *testing.T) {
		if err := s.DeleteFolder(projectID, "missing"); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})
}

func TestGetFolderChildrenSorted(t *testing.T) {
	s := newTestStore(t, Options{})
	project, err := s.CreateProject("P")
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	for _, name := range []string{"zebra", "Apple", "mango"} {
		if _, err := s.CreateFolder(project.ID, name, nil); err != nil {
			t.Fatalf("CreateFolder %q: %v", name, err)
		}
	}

	children, err := s.GetFolderChildren(project.ID, nil)
	if err != nil {
		t.Fatalf("GetFolderChildren: %v", err)
	}

	want := []string{"Apple", "mango", "zebra"}
	if len(children) != len(want) {
		t.Fatalf("got %d children, want %d", len(children), len(want))
	}
	for i, name := range want {
		if children[i].Name != name {
			t.Errorf("children[%d].Name = %q, want %q (case-insensitive order)", i, children[i].Name, name)
		}
	}
}

func TestGetFolderPath(t *testing.T) {
	s := newTestStore(t, Options{})
	projectID, _, _, c := buildTree(t, s)

	path, err := s.GetFolderPath(projectID, c.ID)
	if err != nil {
		t.Fatalf("GetFolderPath: %v", err)
	}
	if path != "A/B/C" {
		t.Errorf("path = %q, want %q", path, "A/B/C")
	}
}

func TestGetFolderPathSurvivesCorruptHierarchy(t *testing.T) {
	// Parent pointers forming a cycle can only come from corrupted stored
	// data, so plant them directly in the blob.
	blob := `[{
		"id": "p1", "name": "P",
		"folders": [
			{"id": "f1", "projectId": "p1", "name": "One", "parentFolderId": "f2"},
			{"id": "f2", "projectId": "p1", "name": "Two", "parentFolderId": "f1"}
		]
	}]`

	backend := kv.NewMemoryStore()
	if err := backend.Set("projects", []byte(blob)); err != nil {
		t.Fatalf("seed blob: %v", err)
	}
	s := newTestStore(t, Options{KV: backend})

	path, err := s.GetFolderPath("p1", "f1")
	if err != nil {
		t.Fatalf("GetFolderPath: %v", err)
	}
	// The walk stops at the cycle and returns what it collected
	if path != "Two/One" {
		t.Errorf("path = %q, want partial path %q", path, "Two/One")
	}

	t.Run("dangling parent", func(t *testing.T) {
		dangling := `[{
			"id": "p2", "name": "P2",
			"folders": [
				{"id": "f3", "projectId": "p2", "name": "Leaf", "parentFolderId": "gone"}
			]
		}]`
		if err := backend.Set("projects", []byte(dangling)); err != nil {
			t.Fatalf("seed blob: %v", err)
		}
		path, err := s.GetFolderPath("p2", "f3")
		if err != nil {
			t.Fatalf("GetFolderPath: %v", err)
		}
		if path != "Leaf" {
			t.Errorf("path = %q, want %q", path, "Leaf")
		}
	})
}

func TestGetAllDescendantIDs(t *testing.T) {
	s := newTestStore(t, Options{})
	projectID, a, b, c := buildTree(t, s)

	// A sibling subtree that must not appear under A
	other, err := s.CreateFolder(projectID, "Other", nil)
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}

	ids, err := s.GetAllDescendantIDs(projectID, a.ID)
	if err != nil {
		t.Fatalf("GetAllDescendantIDs: %v", err)
	}

	want := map[string]bool{b.ID: true, c.ID: true}
	if len(ids) != len(want) {
		t.Fatalf("got %d descendants, want %d", len(ids), len(want))
	}
	for _, id := range ids {
		if !want[id] {
			t.Errorf("unexpected descendant %q", id)
		}
		if id == other.ID {
			t.Errorf("sibling subtree leaked into descendants")
		}
	}

	t.Run("leaf has no descendants", func(t *testing.T) {
		ids, err := s.GetAllDescendantIDs(projectID, c.ID)
		if err != nil {
			t.Fatalf("GetAllDescendantIDs: %v", err)
		}
		if len(ids) != 0 {
			t.Errorf("got %d descendants, want 0", len(ids))
		}
	})

	t.Run("unknown folder", func(t *testing.T) {
		if _, err := s.GetAllDescendantIDs(projectID, "missing"); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})
}
