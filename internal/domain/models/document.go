package models

import (
	"fmt"
	"time"
)

// Document is one member of a version family. All documents sharing a
// BaseTitle within a project are versions of each other; Version numbers
// within a family are unique and grow by exactly 1 per new version.
type Document struct {
	ID              string           `json:"id"`
	ProjectID       string           `json:"projectId"`
	FolderID        *string          `json:"folderId,omitempty"` // nil = root level
	BaseTitle       string           `json:"baseTitle"`          // version-independent name
	Title           string           `json:"title"`              // derived: "{baseTitle} v{version}"
	Version         int              `json:"version"`            // starts at 1
	ParentVersionID *string          `json:"parentVersionId,omitempty"`
	Content         string           `json:"content"` // HTML
	Metadata        DocumentMetadata `json:"metadata"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// DocumentMetadata is derived from content whenever content changes.
type DocumentMetadata struct {
	WordCount  int      `json:"wordCount"`
	CharCount  int      `json:"charCount"`
	Tags       []string `json:"tags,omitempty"`
	TemplateID *string  `json:"templateId,omitempty"` // prompt template the copy was generated from
}

// DisplayTitle renders the version-suffixed title for a base title.
func DisplayTitle(baseTitle string, version int) string {
	return fmt.Sprintf("%s v%d", baseTitle, version)
}
