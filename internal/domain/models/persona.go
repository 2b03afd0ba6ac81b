package models

import (
	"time"
)

// Persona is a target-audience profile used to steer generated copy.
type Persona struct {
	ID             string    `json:"id"`
	ProjectID      string    `json:"projectId"`
	Name           string    `json:"name"`
	Photo          *string   `json:"photo,omitempty"` // base64 data URI, capped at 2MiB decoded
	Demographics   string    `json:"demographics"`
	Psychographics string    `json:"psychographics"`
	PainPoints     string    `json:"painPoints"`
	Goals          string    `json:"goals"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
