package models

// BrandVoice is the per-project voice profile (at most one per project).
type BrandVoice struct {
	BrandName        string   `json:"brandName"`
	Tone             string   `json:"tone"`
	ApprovedPhrases  []string `json:"approvedPhrases,omitempty"`
	ForbiddenPhrases []string `json:"forbiddenPhrases,omitempty"`
	Values           []string `json:"values,omitempty"`
	Mission          string   `json:"mission"`
}
