package service

import (
	"testing"
)

func TestPlainText(t *testing.T) {
	analyzer := NewContentAnalyzer()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "plain text unchanged",
			content: "hello world",
			want:    "hello world",
		},
		{
			name:    "tags stripped",
			content: "<p>hello <strong>world</strong></p>",
			want:    "hello world",
		},
		{
			name:    "adjacent blocks become word boundaries",
			content: "<p>one</p><p>two</p>",
			want:    "one two",
		},
		{
			name:    "entities decoded",
			content: "<p>fish &amp; chips</p>",
			want:    "fish & chips",
		},
		{
			name:    "empty content",
			content: "",
			want:    "",
		},
		{
			name:    "markup only",
			content: "<div><br/></div>",
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := analyzer.PlainText(tt.content)
			if got != tt.want {
				t.Errorf("PlainText(%q) = %q, want %q", tt.content, got, tt.want)
			}
		})
	}
}

func TestCountWords(t *testing.T) {
	analyzer := NewContentAnalyzer()

	tests := []struct {
		name    string
		content string
		want    int
	}{
		{name: "empty", content: "", want: 0},
		{name: "single word", content: "<p>hello</p>", want: 1},
		{name: "split across blocks", content: "<h1>Big</h1><p>sale today</p>", want: 3},
		{name: "extra whitespace collapsed", content: "<p>  a   b  </p>", want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := analyzer.CountWords(tt.content); got != tt.want {
				t.Errorf("CountWords(%q) = %d, want %d", tt.content, got, tt.want)
			}
		})
	}
}

func TestCountChars(t *testing.T) {
	analyzer := NewContentAnalyzer()

	tests := []struct {
		name    string
		content string
		want    int
	}{
		{name: "empty", content: "", want: 0},
		{name: "ascii", content: "<p>abc</p>", want: 3},
		{name: "multibyte runes counted once", content: "<p>héllo</p>", want: 5},
		{name: "tags excluded", content: "<p>one</p><p>two</p>", want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := analyzer.CountChars(tt.content); got != tt.want {
				t.Errorf("CountChars(%q) = %d, want %d", tt.content, got, tt.want)
			}
		})
	}
}
