package assistant

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/alexanderramin/coach/internal/config"
	"github.com/alexanderramin/coach/internal/domain"
	"github.com/alexanderramin/coach/internal/intent"
	"github.com/alexanderramin/coach/internal/knowledge"
	"github.com/alexanderramin/coach/internal/render"
	"github.com/alexanderramin/coach/internal/repository"
	"github.com/alexanderramin/coach/internal/scheduler"
)

// Factory builds sessions that share a matcher, store and publisher. Each
// session gets its own renderer and jitter source.
type Factory struct {
	matcher      *intent.Matcher
	store        repository.SettingsStore
	events       Publisher
	logger       *zap.Logger
	replyDelay   scheduler.DelayPolicy
	welcomeDelay scheduler.DelayPolicy
	fallback     domain.Variant
	seed         uint64
	count        atomic.Uint64
}

// NewFactory wires the default rule set against kb. A non-zero cfg.Seed makes
// each session's randomness reproducible.
func NewFactory(cfg config.AssistantConfig, kb *knowledge.Registry, store repository.SettingsStore, pub Publisher, logger *zap.Logger) (*Factory, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	matcher, err := intent.NewMatcher(kb, intent.DefaultRules(render.Compose), intent.WithInference(cfg.Inference))
	if err != nil {
		return nil, fmt.Errorf("building matcher: %w", err)
	}
	fallback := domain.DefaultVariant
	if cfg.DefaultVariant != "" {
		v, err := domain.ParseVariant(cfg.DefaultVariant)
		if err != nil {
			return nil, fmt.Errorf("default variant: %w", err)
		}
		fallback = v
	}
	return &Factory{
		matcher:      matcher,
		store:        store,
		events:       pub,
		logger:       logger,
		replyDelay:   scheduler.DelayPolicy{Min: cfg.ReplyDelayMin, Max: cfg.ReplyDelayMax},
		welcomeDelay: scheduler.Fixed(cfg.WelcomeDelay),
		fallback:     fallback,
		seed:         cfg.Seed,
	}, nil
}

// New creates a session driven by sched. Extra options override the
// factory's settings.
func (f *Factory) New(ctx context.Context, sched scheduler.Scheduler, opts ...Option) (*Session, error) {
	n := f.count.Add(1)
	var rendererSrc, jitterSrc rand.Source
	if f.seed != 0 {
		rendererSrc = rand.NewPCG(f.seed, n)
		jitterSrc = rand.NewPCG(f.seed, n<<32|1)
	} else {
		jitterSrc = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}

	base := []Option{
		WithReplyDelay(f.replyDelay),
		WithWelcomeDelay(f.welcomeDelay),
		WithDefaultVariant(f.fallback),
		WithRand(rand.New(jitterSrc)),
	}
	return New(ctx, Deps{
		Matcher:   f.matcher,
		Renderer:  render.NewRenderer(rendererSrc),
		Scheduler: sched,
		Store:     f.store,
		Events:    f.events,
		Logger:    f.logger,
	}, append(base, opts...)...)
}

func (f *Factory) Matcher() *intent.Matcher { return f.matcher }

func (f *Factory) Store() repository.SettingsStore { return f.store }
