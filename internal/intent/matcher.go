package intent

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/coach/internal/domain"
	"github.com/alexanderramin/coach/internal/knowledge"
)

// VariantState is the slice of session state the matcher reads and writes.
type VariantState interface {
	CurrentVariant() domain.Variant
	SetCurrentVariant(v domain.Variant)
}

// Match is a classified message: the winning rule and its knowledge entry.
type Match struct {
	Rule  *Rule
	Entry *knowledge.Entry
}

// Matcher classifies normalized input first-match-wins over its rules.
type Matcher struct {
	kb        *knowledge.Registry
	rules     []Rule
	inference []InferenceRule
	infer     bool
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithInference toggles implicit variant switching from keywords.
func WithInference(enabled bool) Option {
	return func(m *Matcher) { m.infer = enabled }
}

// WithInferenceRules replaces the variant inference table.
func WithInferenceRules(rules []InferenceRule) Option {
	return func(m *Matcher) { m.inference = rules }
}

// NewMatcher builds a matcher. Every rule must name a topic present in kb
// and carry a handler and at least one trigger.
func NewMatcher(kb *knowledge.Registry, rules []Rule, opts ...Option) (*Matcher, error) {
	m := &Matcher{
		kb:        kb,
		rules:     make([]Rule, len(rules)),
		inference: DefaultInferenceRules(),
		infer:     true,
	}
	copy(m.rules, rules)

	for i, r := range m.rules {
		if _, ok := kb.Lookup(r.Topic); !ok {
			return nil, fmt.Errorf("rule %q: topic %s not in knowledge base", r.Name, r.Topic)
		}
		if r.Handler == nil {
			return nil, fmt.Errorf("rule %q: handler is required", r.Name)
		}
		if len(r.Triggers) == 0 {
			return nil, fmt.Errorf("rule %q: at least one trigger is required", r.Name)
		}
		triggers := make([]string, len(r.Triggers))
		for j, t := range r.Triggers {
			triggers[j] = strings.ToLower(t)
		}
		m.rules[i].Triggers = triggers
	}

	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Normalize trims and lowercases raw input.
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Classify normalizes raw, applies variant inference to st (when enabled),
// then returns the first topic rule whose triggers occur in the input.
// Inference happens whether or not a topic rule matches.
func (m *Matcher) Classify(raw string, st VariantState) (*Match, bool) {
	text := Normalize(raw)

	if m.infer && st != nil {
		if v, ok := m.InferVariant(text); ok && v != st.CurrentVariant() {
			st.SetCurrentVariant(v)
		}
	}

	for i := range m.rules {
		r := &m.rules[i]
		if !containsAny(text, r.Triggers) {
			continue
		}
		entry, _ := m.kb.Lookup(r.Topic)
		return &Match{Rule: r, Entry: entry}, true
	}
	return nil, false
}

// InferVariant returns the first variant whose keyword occurs in normalized text.
func (m *Matcher) InferVariant(text string) (domain.Variant, bool) {
	for _, r := range m.inference {
		if containsAny(text, r.Keywords) {
			return r.Variant, true
		}
	}
	return "", false
}

// InferenceEnabled reports the current inference policy.
func (m *Matcher) InferenceEnabled() bool {
	return m.infer
}

// Rules returns a copy of the rule list in priority order.
func (m *Matcher) Rules() []Rule {
	out := make([]Rule, len(m.rules))
	copy(out, m.rules)
	return out
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if n != "" && strings.Contains(text, n) {
			return true
		}
	}
	return false
}
