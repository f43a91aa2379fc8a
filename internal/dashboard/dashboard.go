// Package dashboard derives statistics display data and keeps it in step
// with the assistant's preferred variant.
package dashboard

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"

	"go.uber.org/zap"

	"github.com/alexanderramin/coach/internal/domain"
	"github.com/alexanderramin/coach/internal/events"
	"github.com/alexanderramin/coach/internal/repository"
	"github.com/alexanderramin/coach/internal/stats"
)

// Subscriber delivers preference changes.
type Subscriber interface {
	SubscribePreferenceChanged(ctx context.Context) (<-chan events.PreferenceChanged, error)
}

// Dashboard is safe for concurrent use.
type Dashboard struct {
	mu        sync.Mutex
	fetcher   stats.Fetcher
	store     repository.SettingsStore
	logger    *zap.Logger
	rng       *rand.Rand
	preferred domain.Variant
	record    *domain.StatsRecord
	languages []Language
	contest   *Contest
	updates   int
}

type Option func(*Dashboard)

// WithRand sets the source used for sampled panels.
func WithRand(rng *rand.Rand) Option {
	return func(d *Dashboard) { d.rng = rng }
}

// WithPreferred sets the initial preferred variant.
func WithPreferred(v domain.Variant) Option {
	return func(d *Dashboard) {
		if v.Valid() {
			d.preferred = v
		}
	}
}

// New creates an empty dashboard. Store may be nil, in which case recent
// searches are not recorded.
func New(fetcher stats.Fetcher, store repository.SettingsStore, logger *zap.Logger, opts ...Option) *Dashboard {
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &Dashboard{
		fetcher:   fetcher,
		store:     store,
		logger:    logger.Named("dashboard"),
		rng:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		preferred: domain.DefaultVariant,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.languages = drawLanguages(d.rng)
	return d
}

// Load fetches statistics for username, records it in recent searches and
// resamples the language and contest panels.
func (d *Dashboard) Load(ctx context.Context, username string) (View, error) {
	if d.fetcher == nil {
		return View{}, fmt.Errorf("loading %s: no stats source configured", username)
	}
	rec, err := d.fetcher.Fetch(ctx, username)
	if err != nil {
		return View{}, fmt.Errorf("loading %s: %w", username, err)
	}
	if d.store != nil {
		if _, err := repository.PushRecent(ctx, d.store, repository.KeyRecentSearches, rec.Username, repository.RecentLimit); err != nil {
			d.logger.Warn("recording recent search", zap.String("username", rec.Username), zap.Error(err))
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.record = rec
	d.languages = drawLanguages(d.rng)
	d.contest = drawContest(d.rng)
	return d.viewLocked(), nil
}

// OnPreferenceChanged re-derives the display for a new preferred variant.
// Invalid variants are ignored.
func (d *Dashboard) OnPreferenceChanged(v domain.Variant) View {
	d.mu.Lock()
	defer d.mu.Unlock()
	if v.Valid() {
		d.preferred = v
		d.updates++
	}
	return d.viewLocked()
}

// View returns the current display state.
func (d *Dashboard) View() View {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.viewLocked()
}

// Updates counts the preference changes applied so far.
func (d *Dashboard) Updates() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.updates
}

func (d *Dashboard) viewLocked() View {
	return View{
		Preferred: d.preferred,
		Summary:   summarize(d.record),
		Languages: orderLanguages(d.languages, d.preferred),
		Contest:   d.contest,
	}
}

// RecentSearches returns recently loaded usernames, newest first.
func (d *Dashboard) RecentSearches(ctx context.Context) ([]string, error) {
	if d.store == nil {
		return []string{}, nil
	}
	list, err := repository.LoadRecent(ctx, d.store, repository.KeyRecentSearches)
	if err != nil {
		return nil, fmt.Errorf("loading recent searches: %w", err)
	}
	return list, nil
}

// Run applies preference events from sub until ctx is done or the
// subscription closes.
func (d *Dashboard) Run(ctx context.Context, sub Subscriber) error {
	ch, err := sub.SubscribePreferenceChanged(ctx)
	if err != nil {
		return fmt.Errorf("subscribing to preference changes: %w", err)
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case evt, ok := <-ch:
			if !ok {
				return nil
			}
			d.OnPreferenceChanged(evt.Variant)
			d.logger.Debug("preference applied",
				zap.String("session_id", evt.SessionID),
				zap.String("variant", string(evt.Variant)),
				zap.String("source", string(evt.Source)))
		}
	}
}
