// Package assistant runs one conversation: it accepts user input, defers
// replies through a scheduler and propagates variant changes to the store
// and the event bus.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alexanderramin/coach/internal/domain"
	"github.com/alexanderramin/coach/internal/events"
	"github.com/alexanderramin/coach/internal/intent"
	"github.com/alexanderramin/coach/internal/render"
	"github.com/alexanderramin/coach/internal/repository"
	"github.com/alexanderramin/coach/internal/scheduler"
	"github.com/alexanderramin/coach/internal/session"
)

// ErrEmptyMessage is returned by Submit for empty or whitespace-only input.
var ErrEmptyMessage = errors.New("message is empty")

// WelcomeMessage is shown once, shortly after the first open.
const WelcomeMessage = "Hello! 👋 I'm your LeetCode AI assistant. I can help you with algorithms, data structures, problem-solving strategies, and interview preparation. What would you like to know?"

// Publisher receives preference changes.
type Publisher interface {
	PublishPreferenceChanged(ctx context.Context, evt events.PreferenceChanged) error
}

// Deps are the collaborators of a Session. Store and Events are optional.
type Deps struct {
	Matcher   *intent.Matcher
	Renderer  *render.Renderer
	Scheduler scheduler.Scheduler
	Store     repository.SettingsStore
	Events    Publisher
	Logger    *zap.Logger
}

// Session is one conversation. It is not safe for concurrent use: callers
// serialize every method call together with the scheduler's task execution.
type Session struct {
	id       string
	state    *session.State
	matcher  *intent.Matcher
	renderer *render.Renderer
	sched    *scheduler.Sequencer
	store    repository.SettingsStore
	events   Publisher
	logger   *zap.Logger

	rng          *rand.Rand
	replyDelay   scheduler.DelayPolicy
	welcomeDelay scheduler.DelayPolicy
	fallback     domain.Variant
	pending      int
}

type Option func(*Session)

// WithID sets the session id used in events and logs.
func WithID(id string) Option {
	return func(s *Session) { s.id = id }
}

func WithReplyDelay(p scheduler.DelayPolicy) Option {
	return func(s *Session) { s.replyDelay = p }
}

func WithWelcomeDelay(p scheduler.DelayPolicy) Option {
	return func(s *Session) { s.welcomeDelay = p }
}

// WithRand sets the source of delay jitter.
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) { s.rng = rng }
}

// WithDefaultVariant sets the variant used when the store has none.
func WithDefaultVariant(v domain.Variant) Option {
	return func(s *Session) {
		if v.Valid() {
			s.fallback = v
		}
	}
}

// New creates a closed session. The stored variant is read once here; a
// missing, invalid or unreadable value falls back to the default variant.
func New(ctx context.Context, deps Deps, opts ...Option) (*Session, error) {
	if deps.Matcher == nil || deps.Renderer == nil || deps.Scheduler == nil {
		return nil, errors.New("assistant: matcher, renderer and scheduler are required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Session{
		id:           uuid.NewString(),
		matcher:      deps.Matcher,
		renderer:     deps.Renderer,
		sched:        scheduler.NewSequencer(deps.Scheduler),
		store:        deps.Store,
		events:       deps.Events,
		rng:          rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		replyDelay:   scheduler.DefaultReplyDelay,
		welcomeDelay: scheduler.DefaultWelcomeDelay,
		fallback:     domain.DefaultVariant,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logger.With(zap.String("session_id", s.id))
	s.state = session.New(s.loadVariant(ctx))
	return s, nil
}

func (s *Session) loadVariant(ctx context.Context) domain.Variant {
	if s.store == nil {
		return s.fallback
	}
	raw, found, err := s.store.Get(ctx, repository.KeyVariant)
	if err != nil {
		s.logger.Warn("reading stored variant", zap.Error(err))
		return s.fallback
	}
	if !found {
		return s.fallback
	}
	v, err := domain.ParseVariant(raw)
	if err != nil {
		s.logger.Warn("ignoring stored variant", zap.String("value", raw), zap.Error(err))
		return s.fallback
	}
	return v
}

func (s *Session) ID() string { return s.id }

func (s *Session) Variant() domain.Variant { return s.state.CurrentVariant() }

func (s *Session) Surface() domain.SurfaceState { return s.state.Surface() }

func (s *Session) History() []domain.Message { return s.state.History() }

// Pending returns the number of replies scheduled but not yet delivered.
func (s *Session) Pending() int { return s.pending }

// Composing reports whether the composing indicator should show.
func (s *Session) Composing() bool { return s.pending > 0 }

func (s *Session) InferenceEnabled() bool { return s.matcher.InferenceEnabled() }

// Open shows the surface and schedules the welcome on the first open.
func (s *Session) Open() bool {
	changed, welcome := s.state.Open()
	s.afterOpen(welcome)
	return changed
}

func (s *Session) Close() bool { return s.state.Close() }

func (s *Session) Minimize() bool { return s.state.Minimize() }

func (s *Session) Restore() bool { return s.state.Restore() }

func (s *Session) Toggle() bool {
	changed, welcome := s.state.Toggle()
	s.afterOpen(welcome)
	return changed
}

// Apply dispatches a UI surface action.
func (s *Session) Apply(a domain.SurfaceAction) bool {
	changed, welcome := s.state.Apply(a)
	s.afterOpen(welcome)
	return changed
}

func (s *Session) afterOpen(welcome bool) {
	if !welcome {
		return
	}
	s.sched.Schedule(s.welcomeDelay.Draw(s.rng), func() {
		s.state.Append(s.newMessage(domain.SenderAssistant, domain.KindWelcome, WelcomeMessage, ""))
	})
}

// CanSubmit reports whether draft would be accepted by Submit.
func CanSubmit(draft string) bool {
	return strings.TrimSpace(draft) != ""
}

// Submit appends the user message and schedules its reply. Empty input is
// rejected with ErrEmptyMessage and changes nothing.
func (s *Session) Submit(raw string) error {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ErrEmptyMessage
	}
	s.state.Append(s.newMessage(domain.SenderUser, domain.KindUser, text, ""))
	s.pending++
	s.sched.Schedule(s.replyDelay.Draw(s.rng), func() { s.deliver(text) })
	return nil
}

// Ask submits a quick question.
func (s *Session) Ask(q QuickQuestion) error {
	return s.Submit(q.Question)
}

// AskIndex submits the quick question at index i.
func (s *Session) AskIndex(i int) error {
	qs := QuickQuestions()
	if i < 0 || i >= len(qs) {
		return fmt.Errorf("quick question %d out of range 0-%d", i, len(qs)-1)
	}
	return s.Ask(qs[i])
}

func (s *Session) deliver(text string) {
	before := s.state.CurrentVariant()
	match, _ := s.matcher.Classify(text, s.state)
	current := s.state.CurrentVariant()

	reply := s.renderer.Render(match, current)
	s.state.Append(s.newMessage(domain.SenderAssistant, reply.Kind, reply.Content, reply.Topic))
	s.pending--

	ctx := context.Background()
	if match != nil {
		s.recordTopic(ctx, match.Rule.Topic)
	}
	if current != before {
		s.logger.Info("variant inferred", zap.String("from", string(before)), zap.String("to", string(current)))
		s.publish(ctx, current, events.SourceInferred)
	}
}

// SetVariant switches the variant, appends an acknowledgement, publishes
// exactly one preference event and persists the choice.
func (s *Session) SetVariant(ctx context.Context, v domain.Variant) error {
	if !v.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownVariant, v)
	}
	s.state.SetCurrentVariant(v)
	s.state.Append(s.newMessage(domain.SenderAssistant, domain.KindAck, AckMessage(v), ""))
	s.publish(ctx, v, events.SourceExplicit)

	if s.store != nil {
		if err := s.store.Set(ctx, repository.KeyVariant, string(v)); err != nil {
			s.logger.Warn("persisting variant", zap.String("variant", string(v)), zap.Error(err))
		}
	}
	return nil
}

// AckMessage is the acknowledgement appended by SetVariant.
func AckMessage(v domain.Variant) string {
	return fmt.Sprintf("Got it! I'll show code examples in **%s** from now on.", v.DisplayName())
}

// RecentTopics returns recently answered topics, newest first.
func (s *Session) RecentTopics(ctx context.Context) ([]domain.Topic, error) {
	if s.store == nil {
		return []domain.Topic{}, nil
	}
	raw, err := repository.LoadRecent(ctx, s.store, repository.KeyRecentTopics)
	if err != nil {
		return nil, fmt.Errorf("loading recent topics: %w", err)
	}
	topics := make([]domain.Topic, 0, len(raw))
	for _, r := range raw {
		if t, err := domain.ParseTopic(r); err == nil {
			topics = append(topics, t)
		}
	}
	return topics, nil
}

func (s *Session) recordTopic(ctx context.Context, t domain.Topic) {
	if s.store == nil {
		return
	}
	if _, err := repository.PushRecent(ctx, s.store, repository.KeyRecentTopics, string(t), repository.RecentLimit); err != nil {
		s.logger.Warn("recording recent topic", zap.String("topic", string(t)), zap.Error(err))
	}
}

func (s *Session) publish(ctx context.Context, v domain.Variant, src events.Source) {
	if s.events == nil {
		return
	}
	evt := events.PreferenceChanged{SessionID: s.id, Variant: v, Source: src, At: s.sched.Now()}
	if err := s.events.PublishPreferenceChanged(ctx, evt); err != nil {
		s.logger.Warn("publishing preference change", zap.Error(err))
	}
}

func (s *Session) newMessage(sender domain.Sender, kind domain.MessageKind, content string, topic domain.Topic) domain.Message {
	return domain.Message{
		ID:        uuid.NewString(),
		Sender:    sender,
		Kind:      kind,
		Content:   content,
		Topic:     topic,
		CreatedAt: s.sched.Now(),
	}
}
