package knowledge

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/coach/internal/domain"
	"github.com/go-playground/validator/v10"
)

// ValidationError reports why an entry was rejected at registry construction.
type ValidationError struct {
	Topic  domain.Topic
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Topic == "" {
		return fmt.Sprintf("knowledge entry: %s", e.Reason)
	}
	return fmt.Sprintf("knowledge entry %s: %s", e.Topic, e.Reason)
}

// Registry is the validated, read-only set of knowledge entries.
type Registry struct {
	order   []domain.Topic
	entries map[domain.Topic]*Entry
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// NewRegistry validates entries and builds a registry. Every entry must pass
// struct validation, name a known topic exactly once, use only known variant
// keys, and carry a snippet for domain.DefaultVariant.
func NewRegistry(entries []Entry) (*Registry, error) {
	r := &Registry{entries: make(map[domain.Topic]*Entry, len(entries))}

	for i := range entries {
		e := entries[i]
		if err := validate.Struct(e); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) && len(verrs) > 0 {
				return nil, &ValidationError{Topic: e.Topic, Reason: fmt.Sprintf("field %s failed %q", verrs[0].Namespace(), verrs[0].Tag())}
			}
			return nil, &ValidationError{Topic: e.Topic, Reason: err.Error()}
		}
		if !e.Topic.Valid() {
			return nil, &ValidationError{Topic: e.Topic, Reason: "unknown topic"}
		}
		if _, dup := r.entries[e.Topic]; dup {
			return nil, &ValidationError{Topic: e.Topic, Reason: "duplicate topic"}
		}
		for v := range e.Snippets {
			if !v.Valid() {
				return nil, &ValidationError{Topic: e.Topic, Reason: fmt.Sprintf("unknown variant %q", v)}
			}
		}
		if !e.HasSnippet(domain.DefaultVariant) {
			return nil, &ValidationError{Topic: e.Topic, Reason: fmt.Sprintf("missing default %s snippet", domain.DefaultVariant)}
		}

		e.Facts = append([]Fact(nil), e.Facts...)
		snippets := make(map[domain.Variant]Snippet, len(e.Snippets))
		for v, s := range e.Snippets {
			snippets[v] = s
		}
		e.Snippets = snippets

		r.entries[e.Topic] = &e
		r.order = append(r.order, e.Topic)
	}

	return r, nil
}

// MustRegistry is NewRegistry for literal data; it panics on invalid entries.
func MustRegistry(entries []Entry) *Registry {
	r, err := NewRegistry(entries)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the entry for topic.
func (r *Registry) Lookup(topic domain.Topic) (*Entry, bool) {
	e, ok := r.entries[topic]
	return e, ok
}

// Topics returns topics in registration order.
func (r *Registry) Topics() []domain.Topic {
	out := make([]domain.Topic, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	return len(r.order)
}
