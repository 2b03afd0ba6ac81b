package models

import (
	"time"
)

// Project is the aggregate root. The nested collections are embedded in the
// persisted blob on the local side and normalized into tables on the cloud
// side. JSON tags are camelCase: this is the legacy browser-era schema that
// the local store still persists verbatim (the cloud wire format is
// snake_case, see internal/wire).
type Project struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	BrandVoice *BrandVoice `json:"brandVoice,omitempty"`
	Personas   []Persona   `json:"personas"`
	Folders    []Folder    `json:"folders"`
	Documents  []Document  `json:"documents"`
	Snippets   []Snippet   `json:"snippets"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}
