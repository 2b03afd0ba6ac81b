package local

import (
	"errors"
	"strings"
	"testing"

	"copydesk/internal/config"
	"copydesk/internal/domain"
	"copydesk/internal/domain/models"
)

func TestCreatePersonaPhotoValidation(t *testing.T) {
	s := newTestStore(t, Options{})
	project, err := s.CreateProject("P")
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	// Base64 payload just past the decoded-size cap
	oversized := "data:image/png;base64," + strings.Repeat("A", (config.MaxPersonaPhotoBytes/3+1)*4)
	small := "data:image/png;base64,aGVsbG8="
	notAnImage := "data:text/plain;base64,aGVsbG8="
	notBase64 := "data:image/png,rawbytes"

	tests := []struct {
		name    string
		photo   *string
		wantErr bool
	}{
		{name: "no photo", photo: nil},
		{name: "small image", photo: &small},
		{name: "oversized image", photo: &oversized, wantErr: true},
		{name: "non-image data URI", photo: &notAnImage, wantErr: true},
		{name: "missing base64 marker", photo: &notBase64, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.CreatePersona(project.ID, models.Persona{
				Name:  "Reader",
				Photo: tt.photo,
			})
			if tt.wantErr {
				if !errors.Is(err, domain.ErrValidation) {
					t.Errorf("error = %v, want ErrValidation", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestUpdatePersona(t *testing.T) {
	s := newTestStore(t, Options{})
	project, err := s.CreateProject("P")
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	persona, err := s.CreatePersona(project.ID, models.Persona{
		Name:         "Busy founder",
		Demographics: "30-45, urban",
	})
	if err != nil {
		t.Fatalf("CreatePersona: %v", err)
	}

	goals := "grow the newsletter"
	updated, err := s.UpdatePersona(project.ID, persona.ID, PersonaPatch{Goals: &goals})
	if err != nil {
		t.Fatalf("UpdatePersona: %v", err)
	}
	if updated.Goals != goals {
		t.Errorf("Goals = %q, want %q", updated.Goals, goals)
	}
	if updated.Demographics != "30-45, urban" {
		t.Errorf("untouched field changed: %q", updated.Demographics)
	}

	t.Run("unknown persona", func(t *testing.T) {
		if _, err := s.UpdatePersona(project.ID, "missing", PersonaPatch{}); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})
}

func TestDeletePersona(t *testing.T) {
	s := newTestStore(t, Options{})
	project, err := s.CreateProject("P")
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	persona, err := s.CreatePersona(project.ID, models.Persona{Name: "Reader"})
	if err != nil {
		t.Fatalf("CreatePersona: %v", err)
	}

	if err := s.DeletePersona(project.ID, persona.ID); err != nil {
		t.Fatalf("DeletePersona: %v", err)
	}
	if err := s.DeletePersona(project.ID, persona.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second delete: error = %v, want ErrNotFound", err)
	}
}

func TestBrandVoiceLifecycle(t *testing.T) {
	s := newTestStore(t, Options{})
	project, err := s.CreateProject("P")
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	voice, err := s.GetBrandVoice(project.ID)
	if err != nil {
		t.Fatalf("GetBrandVoice: %v", err)
	}
	if voice != nil {
		t.Fatal("new project should have no brand voice")
	}

	if err := s.SetBrandVoice(project.ID, models.BrandVoice{Tone: "friendly"}); err != nil {
		t.Fatalf("SetBrandVoice: %v", err)
	}

	// Set replaces wholesale
	if err := s.SetBrandVoice(project.ID, models.BrandVoice{Tone: "direct"}); err != nil {
		t.Fatalf("SetBrandVoice replace: %v", err)
	}
	voice, err = s.GetBrandVoice(project.ID)
	if err != nil {
		t.Fatalf("GetBrandVoice: %v", err)
	}
	if voice == nil || voice.Tone != "direct" {
		t.Fatalf("voice = %+v, want tone %q", voice, "direct")
	}

	if err := s.ClearBrandVoice(project.ID); err != nil {
		t.Fatalf("ClearBrandVoice: %v", err)
	}
	if err := s.ClearBrandVoice(project.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("clearing an unset voice: error = %v, want ErrNotFound", err)
	}
}
