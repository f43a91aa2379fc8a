// Package knowledge holds the immutable topic registry the assistant answers from.
package knowledge

import (
	"github.com/alexanderramin/coach/internal/domain"
)

// Snippet is the variant-specific part of an entry: source code or a short note.
type Snippet struct {
	Code bool
	Body string `validate:"required"`
}

// Fact is one labelled metadata line, e.g. "Time Complexity: O(log n)".
type Fact struct {
	Label string `validate:"required"`
	Value string `validate:"required"`
}

// Entry is the knowledge record for a single topic.
type Entry struct {
	Topic       domain.Topic `validate:"required"`
	Title       string       `validate:"required"`
	Explanation string       `validate:"required"`
	Facts       []Fact       `validate:"dive"`
	Tip         string
	Closing     string
	Snippets    map[domain.Variant]Snippet `validate:"required,dive"`
}

// Snippet returns the snippet for v, falling back to the default-variant
// snippet when v has none. fellBack reports whether the fallback was used.
func (e *Entry) Snippet(v domain.Variant) (s Snippet, fellBack bool) {
	if s, ok := e.Snippets[v]; ok {
		return s, false
	}
	return e.Snippets[domain.DefaultVariant], true
}

// HasSnippet reports whether the entry carries its own snippet for v.
func (e *Entry) HasSnippet(v domain.Variant) bool {
	_, ok := e.Snippets[v]
	return ok
}
