package render

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/alexanderramin/coach/internal/domain"
	"github.com/alexanderramin/coach/internal/intent"
)

// DefaultEncouragements is the pool used for unmatched questions. Entries
// containing %s receive the current variant's display name.
var DefaultEncouragements = []string{
	"Great question! Let me help you with that. Could you be more specific about what aspect you'd like to focus on?",
	"I'd love to help! Can you provide more details about the specific problem or concept you're working on?",
	"That's a good topic to explore! What specific part would you like me to explain or help you with?",
	"Excellent! I can definitely assist with that. Could you share more context about your current understanding or where you're stuck?",
	"I'm here to help you master that concept! What would be most helpful - an explanation, examples, or practice problems? I'll write any code in %s.",
}

// Reply is a rendered assistant answer.
type Reply struct {
	Kind    domain.MessageKind
	Topic   domain.Topic
	Content string
}

// Renderer turns classification results into reply text.
type Renderer struct {
	mu   sync.Mutex
	rng  *rand.Rand
	pool []string
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithEncouragements replaces the encouragement pool. An empty pool is ignored.
func WithEncouragements(pool []string) RendererOption {
	return func(r *Renderer) {
		if len(pool) > 0 {
			r.pool = append([]string(nil), pool...)
		}
	}
}

// NewRenderer returns a Renderer drawing randomness from src. A nil src
// uses a randomly seeded PCG source.
func NewRenderer(src rand.Source, opts ...RendererOption) *Renderer {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	r := &Renderer{
		rng:  rand.New(src),
		pool: DefaultEncouragements,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render produces the reply for m in variant v. A nil match yields an
// encouragement drawn uniformly from the pool.
func (r *Renderer) Render(m *intent.Match, v domain.Variant) Reply {
	if m != nil {
		return Reply{
			Kind:    domain.KindReply,
			Topic:   m.Rule.Topic,
			Content: m.Rule.Handler(m.Entry, v),
		}
	}
	return Reply{
		Kind:    domain.KindEncouragement,
		Content: r.Encouragement(v),
	}
}

// Encouragement picks one pool entry.
func (r *Renderer) Encouragement(v domain.Variant) string {
	r.mu.Lock()
	tmpl := r.pool[r.rng.IntN(len(r.pool))]
	r.mu.Unlock()
	if strings.Contains(tmpl, "%s") {
		return fmt.Sprintf(tmpl, v.DisplayName())
	}
	return tmpl
}

// Pool returns a copy of the encouragement pool.
func (r *Renderer) Pool() []string {
	return append([]string(nil), r.pool...)
}
