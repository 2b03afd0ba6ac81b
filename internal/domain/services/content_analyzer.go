package services

// ContentAnalyzer handles content analysis operations
type ContentAnalyzer interface {
	// PlainText strips HTML markup from editor content
	PlainText(html string) string

	// CountWords counts words in HTML editor content
	CountWords(html string) int

	// CountChars counts characters in HTML editor content
	CountChars(html string) int
}
