package service

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"copydesk/internal/domain/services"
)

type contentAnalyzer struct {
	strip *bluemonday.Policy
}

// NewContentAnalyzer creates a content analyzer for HTML editor content
func NewContentAnalyzer() services.ContentAnalyzer {
	return &contentAnalyzer{
		strip: bluemonday.StrictPolicy(),
	}
}

// PlainText strips HTML markup from editor content. Tags become word
// boundaries so "<p>one</p><p>two</p>" counts as two words.
func (a *contentAnalyzer) PlainText(content string) string {
	// Insert spaces at tag boundaries before stripping, otherwise adjacent
	// block elements glue their text together.
	spaced := strings.ReplaceAll(content, "<", " <")
	text := html.UnescapeString(a.strip.Sanitize(spaced))
	return strings.Join(strings.Fields(text), " ")
}

// CountWords counts whitespace-separated words in HTML editor content
func (a *contentAnalyzer) CountWords(content string) int {
	return len(strings.Fields(a.PlainText(content)))
}

// CountChars counts characters in the stripped text
func (a *contentAnalyzer) CountChars(content string) int {
	return utf8.RuneCountInString(a.PlainText(content))
}
