// Package wire defines the snake_case transport schema used by the
// /api/db endpoints. The in-memory model (and the persisted local blob)
// uses the legacy camelCase schema, so the cloud mirror and the API
// handlers map through this package on every call.
package wire

import (
	"time"
)

type Project struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	BrandVoice *BrandVoice `json:"brand_voice,omitempty"`
	Personas   []Persona   `json:"personas"`
	Folders    []Folder    `json:"folders"`
	Documents  []Document  `json:"documents"`
	Snippets   []Snippet   `json:"snippets"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

type Document struct {
	ID              string    `json:"id"`
	ProjectID       string    `json:"project_id"`
	FolderID        *string   `json:"folder_id,omitempty"`
	BaseTitle       string    `json:"base_title"`
	Title           string    `json:"title"`
	Version         int       `json:"version"`
	ParentVersionID *string   `json:"parent_version_id,omitempty"`
	Content         string    `json:"content"`
	WordCount       int       `json:"word_count"`
	CharCount       int       `json:"char_count"`
	Tags            []string  `json:"tags,omitempty"`
	TemplateID      *string   `json:"template_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type Folder struct {
	ID             string    `json:"id"`
	ProjectID      string    `json:"project_id"`
	ParentFolderID *string   `json:"parent_folder_id,omitempty"`
	Name           string    `json:"name"`
	Path           string    `json:"path,omitempty"` // computed root-to-leaf display path, read only
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type Persona struct {
	ID             string    `json:"id"`
	ProjectID      string    `json:"project_id"`
	Name           string    `json:"name"`
	Photo          *string   `json:"photo,omitempty"`
	Demographics   string    `json:"demographics"`
	Psychographics string    `json:"psychographics"`
	PainPoints     string    `json:"pain_points"`
	Goals          string    `json:"goals"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type Snippet struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	Name        string    `json:"name"`
	Content     string    `json:"content"`
	Description *string   `json:"description,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	UsageCount  int       `json:"usage_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type BrandVoice struct {
	BrandName        string   `json:"brand_name"`
	Tone             string   `json:"tone"`
	ApprovedPhrases  []string `json:"approved_phrases,omitempty"`
	ForbiddenPhrases []string `json:"forbidden_phrases,omitempty"`
	Values           []string `json:"values,omitempty"`
	Mission          string   `json:"mission"`
}
