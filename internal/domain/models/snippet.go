package models

import (
	"time"
)

// Snippet is a reusable block of copy. Content is raw HTML and is not
// sanitized by the store; rendering paths are responsible for escaping.
type Snippet struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"projectId"`
	Name        string    `json:"name"`
	Content     string    `json:"content"`
	Description *string   `json:"description,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	UsageCount  int       `json:"usageCount"` // incremented each time inserted into a document
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
