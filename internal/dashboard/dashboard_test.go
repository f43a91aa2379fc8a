package dashboard

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/coach/internal/domain"
	"github.com/alexanderramin/coach/internal/events"
	"github.com/alexanderramin/coach/internal/repository"
)

type fakeFetcher struct {
	records map[string]*domain.StatsRecord
	err     error
}

func (f *fakeFetcher) Fetch(_ context.Context, username string) (*domain.StatsRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	rec, ok := f.records[username]
	if !ok {
		return nil, errors.New("user not found")
	}
	return rec, nil
}

func sampleFetcher() *fakeFetcher {
	return &fakeFetcher{records: map[string]*domain.StatsRecord{
		"alice": {Username: "alice", EasySolved: 50, TotalEasy: 100, MediumSolved: 30, TotalMedium: 200, HardSolved: 5, TotalHard: 100, Ranking: 1234, Streak: 3},
		"bob":   {Username: "bob"},
	}}
}

func seeded() Option { return WithRand(rand.New(rand.NewPCG(7, 7))) }

func TestContestRank(t *testing.T) {
	tests := []struct {
		rating int
		want   string
	}{
		{0, "Newbie"},
		{1199, "Newbie"},
		{1200, "Pupil"},
		{1399, "Pupil"},
		{1400, "Specialist"},
		{1600, "Expert"},
		{1899, "Expert"},
		{1900, "Candidate Master"},
		{2100, "Master"},
		{2300, "International Master"},
		{2399, "International Master"},
		{2400, "Grandmaster"},
		{3500, "Grandmaster"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ContestRank(tt.rating), "rating %d", tt.rating)
	}
}

func TestOnPreferenceChanged_PreferredLanguageFirst(t *testing.T) {
	d := New(nil, nil, nil, seeded())
	assert.Equal(t, domain.VariantPython, d.View().Languages[0].Variant)

	view := d.OnPreferenceChanged(domain.VariantCpp)
	assert.Equal(t, domain.VariantCpp, view.Preferred)
	require.Len(t, view.Languages, 5)

	var names []string
	for _, l := range view.Languages {
		names = append(names, l.Name)
	}
	assert.Equal(t, []string{"C++", "Python", "JavaScript", "Java", "Go"}, names)
	assert.Equal(t, 1, d.Updates())
}

func TestOnPreferenceChanged_CountsStable(t *testing.T) {
	d := New(nil, nil, nil, seeded())
	counts := map[string]int{}
	for _, l := range d.View().Languages {
		counts[l.Name] = l.Count
	}
	for _, l := range d.OnPreferenceChanged(domain.VariantJava).Languages {
		assert.Equal(t, counts[l.Name], l.Count, l.Name)
	}
}

func TestOnPreferenceChanged_InvalidIgnored(t *testing.T) {
	d := New(nil, nil, nil, WithPreferred(domain.VariantJava))
	view := d.OnPreferenceChanged(domain.Variant("rust"))
	assert.Equal(t, domain.VariantJava, view.Preferred)
	assert.Zero(t, d.Updates())
}

func TestDrawLanguages_Ranges(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for range 200 {
		for i, l := range drawLanguages(rng) {
			seed := languageSeeds[i]
			assert.GreaterOrEqual(t, l.Count, seed.base)
			assert.Less(t, l.Count, seed.base+seed.spread)
			assert.Equal(t, seed.color, l.Color)
		}
		c := drawContest(rng)
		assert.GreaterOrEqual(t, c.Rating, 1500)
		assert.Less(t, c.Rating, 2000)
		assert.Equal(t, ContestRank(c.Rating), c.Rank)
		assert.GreaterOrEqual(t, c.Attended, 10)
	}
}

func TestLoad_SummaryAndRecent(t *testing.T) {
	store := repository.NewMemorySettingsStore()
	d := New(sampleFetcher(), store, nil, seeded())
	ctx := context.Background()

	view, err := d.Load(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, view.Summary)
	assert.Equal(t, 85, view.Summary.TotalSolved)
	assert.Equal(t, 400, view.Summary.TotalQuestions)
	assert.InDelta(t, 21.25, view.Summary.SuccessRate, 0.001)
	require.Len(t, view.Summary.Difficulties, 3)
	assert.InDelta(t, 50.0, view.Summary.Difficulties[0].Percent, 0.001)
	require.NotNil(t, view.Contest)

	_, err = d.Load(ctx, "bob")
	require.NoError(t, err)
	_, err = d.Load(ctx, "alice")
	require.NoError(t, err)

	recent, err := d.RecentSearches(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, recent)
}

func TestLoad_EmptyTotals(t *testing.T) {
	d := New(sampleFetcher(), nil, nil, seeded())
	view, err := d.Load(context.Background(), "bob")
	require.NoError(t, err)
	assert.Zero(t, view.Summary.SuccessRate)
}

func TestLoad_FetchError(t *testing.T) {
	store := repository.NewMemorySettingsStore()
	d := New(&fakeFetcher{err: errors.New("boom")}, store, nil)

	_, err := d.Load(context.Background(), "alice")
	assert.ErrorContains(t, err, "boom")
	assert.Nil(t, d.View().Summary)

	recent, err := d.RecentSearches(context.Background())
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestLoad_NoFetcher(t *testing.T) {
	_, err := New(nil, nil, nil).Load(context.Background(), "alice")
	assert.Error(t, err)
}

type chanSubscriber struct {
	ch  chan events.PreferenceChanged
	err error
}

func (s *chanSubscriber) SubscribePreferenceChanged(context.Context) (<-chan events.PreferenceChanged, error) {
	return s.ch, s.err
}

func TestRun_AppliesEventsUntilClosed(t *testing.T) {
	sub := &chanSubscriber{ch: make(chan events.PreferenceChanged, 2)}
	d := New(nil, nil, nil)

	sub.ch <- events.PreferenceChanged{Variant: domain.VariantJava}
	sub.ch <- events.PreferenceChanged{Variant: domain.VariantJavaScript}
	close(sub.ch)

	require.NoError(t, d.Run(context.Background(), sub))
	assert.Equal(t, domain.VariantJavaScript, d.View().Preferred)
	assert.Equal(t, 2, d.Updates())
}

func TestRun_SubscribeError(t *testing.T) {
	d := New(nil, nil, nil)
	err := d.Run(context.Background(), &chanSubscriber{err: errors.New("closed")})
	assert.ErrorContains(t, err, "subscribing")
}

func TestRun_WithBus(t *testing.T) {
	bus := events.NewBus(nil)
	defer bus.Close()
	d := New(nil, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ready := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- d.Run(ctx, &readySubscriber{bus: bus, ready: ready})
	}()
	<-ready

	require.NoError(t, bus.PublishPreferenceChanged(ctx, events.PreferenceChanged{
		SessionID: "s1",
		Variant:   domain.VariantCpp,
		Source:    events.SourceExplicit,
	}))
	assert.Eventually(t, func() bool {
		return d.View().Preferred == domain.VariantCpp
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRun_WithBus_LastPublishedWins(t *testing.T) {
	bus := events.NewBus(nil)
	defer bus.Close()
	d := New(nil, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ready := make(chan struct{})
	go func() { _ = d.Run(ctx, &readySubscriber{bus: bus, ready: ready}) }()
	<-ready

	const n = 50
	var last domain.Variant
	for i := range n {
		last = domain.Variants[i%len(domain.Variants)]
		require.NoError(t, bus.PublishPreferenceChanged(ctx, events.PreferenceChanged{
			SessionID: "s1",
			Variant:   last,
			Source:    events.SourceExplicit,
		}))
	}

	require.Eventually(t, func() bool { return d.Updates() == n }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, last, d.View().Preferred)
}

type readySubscriber struct {
	bus   *events.Bus
	ready chan struct{}
}

func (s *readySubscriber) SubscribePreferenceChanged(ctx context.Context) (<-chan events.PreferenceChanged, error) {
	ch, err := s.bus.SubscribePreferenceChanged(ctx)
	close(s.ready)
	return ch, err
}
