package local

import (
	"errors"
	"testing"

	"copydesk/internal/domain"
	"copydesk/internal/domain/models"
)

func TestCreateSnippet(t *testing.T) {
	s := newTestStore(t, Options{})
	project, err := s.CreateProject("P")
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	t.Run("valid", func(t *testing.T) {
		snippet, err := s.CreateSnippet(project.ID, models.Snippet{
			Name:    "CTA",
			Content: "Buy now",
		})
		if err != nil {
			t.Fatalf("CreateSnippet: %v", err)
		}
		if snippet.UsageCount != 0 {
			t.Errorf("UsageCount = %d, want 0", snippet.UsageCount)
		}
		if snippet.ID == "" {
			t.Error("ID is empty")
		}
	})

	t.Run("missing content", func(t *testing.T) {
		_, err := s.CreateSnippet(project.ID, models.Snippet{Name: "Empty"})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("error = %v, want ErrValidation", err)
		}
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := s.CreateSnippet(project.ID, models.Snippet{Content: "x"})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("error = %v, want ErrValidation", err)
		}
	})
}

func TestIncrementSnippetUsage(t *testing.T) {
	s := newTestStore(t, Options{})
	project, err := s.CreateProject("P")
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	snippet, err := s.CreateSnippet(project.ID, models.Snippet{Name: "CTA", Content: "Buy now"})
	if err != nil {
		t.Fatalf("CreateSnippet: %v", err)
	}

	for want := 1; want <= 3; want++ {
		count, err := s.IncrementSnippetUsage(project.ID, snippet.ID)
		if err != nil {
			t.Fatalf("IncrementSnippetUsage: %v", err)
		}
		if count != want {
			t.Errorf("count = %d, want %d", count, want)
		}
	}

	// The counter persists across reads
	all, err := s.GetAllSnippets(project.ID)
	if err != nil {
		t.Fatalf("GetAllSnippets: %v", err)
	}
	if len(all) != 1 || all[0].UsageCount != 3 {
		t.Errorf("stored UsageCount = %d, want 3", all[0].UsageCount)
	}

	t.Run("unknown snippet", func(t *testing.T) {
		if _, err := s.IncrementSnippetUsage(project.ID, "missing"); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})
}

func TestUpdateSnippetDescriptionClear(t *testing.T) {
	s := newTestStore(t, Options{})
	project, err := s.CreateProject("P")
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	desc := "primary call to action"
	snippet, err := s.CreateSnippet(project.ID, models.Snippet{
		Name:        "CTA",
		Content:     "Buy now",
		Description: &desc,
	})
	if err != nil {
		t.Fatalf("CreateSnippet: %v", err)
	}

	// nil inner pointer clears the description; absent outer pointer leaves it
	var cleared *string
	updated, err := s.UpdateSnippet(project.ID, snippet.ID, SnippetPatch{Description: &cleared})
	if err != nil {
		t.Fatalf("UpdateSnippet: %v", err)
	}
	if updated.Description != nil {
		t.Errorf("Description = %q, want nil", *updated.Description)
	}

	name := "CTA primary"
	updated, err = s.UpdateSnippet(project.ID, snippet.ID, SnippetPatch{Name: &name})
	if err != nil {
		t.Fatalf("UpdateSnippet: %v", err)
	}
	if updated.Description != nil {
		t.Errorf("patch without description field should not touch it")
	}
}

func TestUpsertAndRemoveSnippet(t *testing.T) {
	s := newTestStore(t, Options{})
	project, err := s.CreateProject("P")
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	snippet := models.Snippet{ID: "remote-1", ProjectID: project.ID, Name: "From cloud", Content: "x"}
	if err := s.UpsertSnippet(project.ID, snippet); err != nil {
		t.Fatalf("UpsertSnippet insert: %v", err)
	}

	snippet.Content = "updated"
	if err := s.UpsertSnippet(project.ID, snippet); err != nil {
		t.Fatalf("UpsertSnippet replace: %v", err)
	}

	all, err := s.GetAllSnippets(project.ID)
	if err != nil {
		t.Fatalf("GetAllSnippets: %v", err)
	}
	if len(all) != 1 || all[0].Content != "updated" {
		t.Fatalf("upsert should replace in place, got %d snippets", len(all))
	}

	// Removing twice is not an error
	if err := s.RemoveSnippet(project.ID, "remote-1"); err != nil {
		t.Fatalf("RemoveSnippet: %v", err)
	}
	if err := s.RemoveSnippet(project.ID, "remote-1"); err != nil {
		t.Fatalf("RemoveSnippet of absent snippet: %v", err)
	}
}
