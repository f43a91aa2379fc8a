package cli

import (
	"bytes"
	"context"
	"errors"
	"net"
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/coach/internal/assistant"
	"github.com/alexanderramin/coach/internal/config"
	"github.com/alexanderramin/coach/internal/domain"
	"github.com/alexanderramin/coach/internal/events"
	"github.com/alexanderramin/coach/internal/knowledge"
	"github.com/alexanderramin/coach/internal/repository"
	"github.com/alexanderramin/coach/internal/server"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

type fakeFetcher struct {
	records map[string]*domain.StatsRecord
	calls   []string
}

func (f *fakeFetcher) Fetch(_ context.Context, username string) (*domain.StatsRecord, error) {
	f.calls = append(f.calls, username)
	rec, ok := f.records[username]
	if !ok {
		return nil, errors.New("user not found")
	}
	return rec, nil
}

type appOption func(*config.Config)

func withFastReplies(cfg *config.Config) {
	cfg.Assistant.ReplyDelayMin = time.Millisecond
	cfg.Assistant.ReplyDelayMax = 2 * time.Millisecond
	cfg.Assistant.WelcomeDelay = time.Millisecond
}

// testApp wires an App backed by an in-memory store with seeded sessions.
func testApp(t *testing.T, opts ...appOption) *App {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Assistant.Seed = 1
	for _, opt := range opts {
		opt(&cfg)
	}

	store := repository.NewMemorySettingsStore()
	bus := events.NewBus(nil)
	t.Cleanup(func() { _ = bus.Close() })

	kb := knowledge.Default()
	factory, err := assistant.NewFactory(cfg.Assistant, kb, store, bus, nil)
	require.NoError(t, err)

	return &App{
		Config:    cfg,
		Knowledge: kb,
		Factory:   factory,
		Store:     store,
		Bus:       bus,
		Stats: &fakeFetcher{records: map[string]*domain.StatsRecord{
			"alice": {Username: "alice", EasySolved: 50, TotalEasy: 100, MediumSolved: 20, TotalMedium: 200, HardSolved: 5, TotalHard: 100, Ranking: 4242, Streak: 7},
			"bob":   {Username: "bob", TotalEasy: 10},
		}},
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return stripANSI(buf.String()), err
}

// --- root ---

func TestRootCmd_NonInteractiveShowsHelp(t *testing.T) {
	out, err := executeCmd(t, testApp(t))
	require.NoError(t, err)
	assert.Contains(t, out, "Algorithm study assistant")
	assert.Contains(t, out, "Available Commands:")
	for _, name := range []string{"ask", "chat", "serve", "stats", "topics", "variant"} {
		assert.Contains(t, out, name)
	}
}

// --- ask ---

func TestAskCmd_NoDelayRendersReply(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "ask", "--no-delay", "explain", "binary", "search")
	require.NoError(t, err)
	assert.Contains(t, out, "Binary Search Algorithm")
	assert.Contains(t, out, "def binary_search")
	assert.NotContains(t, out, "**")
	assert.NotContains(t, out, "```")
}

func TestAskCmd_RawKeepsMarkup(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "ask", "--no-delay", "--raw", "explain binary search in java")
	require.NoError(t, err)
	assert.Contains(t, out, "**Binary Search Algorithm**")
	assert.Contains(t, out, "```java")
}

func TestAskCmd_QuickQuestion(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "ask", "--no-delay", "--quick", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Binary Search Algorithm")
}

func TestAskCmd_QuickOutOfRange(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "ask", "--no-delay", "--quick", "9")
	require.Error(t, err)
	assert.ErrorIs(t, err, errQuickRange)
	assert.Contains(t, err.Error(), "between 1 and 6")
}

func TestAskCmd_RequiresQuestion(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "ask", "   ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a question or --quick is required")
}

func TestAskCmd_RealtimeWaitsForReply(t *testing.T) {
	out, err := executeCmd(t, testApp(t, withFastReplies), "ask", "--raw", "what is dynamic programming")
	require.NoError(t, err)
	assert.Contains(t, out, "**Dynamic Programming")
}

func TestAskCmd_RecordsRecentTopic(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "ask", "--no-delay", "explain two pointers")
	require.NoError(t, err)

	recent, err := repository.LoadRecent(context.Background(), app.Store, repository.KeyRecentTopics)
	require.NoError(t, err)
	assert.Equal(t, []string{string(domain.TopicTwoPointers)}, recent)
}

// --- variant ---

func TestVariantCmd_SetPersistsAndAcks(t *testing.T) {
	app := testApp(t)
	out, err := executeCmd(t, app, "variant", "cpp")
	require.NoError(t, err)
	assert.Contains(t, out, "Got it! I'll show code examples in C++ from now on.")

	stored, found, err := app.Store.Get(context.Background(), repository.KeyVariant)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "cpp", stored)

	out, err = executeCmd(t, app, "variant")
	require.NoError(t, err)
	assert.Contains(t, out, "Current variant: ● C++")
}

func TestVariantCmd_DefaultIsPython(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "variant")
	require.NoError(t, err)
	assert.Contains(t, out, "Current variant: ● Python")
}

func TestVariantCmd_Unknown(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "variant", "ruby")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownVariant)

	_, found, err := app.Store.Get(context.Background(), repository.KeyVariant)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestVariantCmd_ChangesLaterReplies(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "variant", "javascript")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "ask", "--no-delay", "--raw", "explain binary search")
	require.NoError(t, err)
	assert.Contains(t, out, "```javascript")
}

// --- topics ---

func TestTopicsCmd_ListsTopicsAndQuickQuestions(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "topics")
	require.NoError(t, err)
	assert.Contains(t, out, "TOPICS")
	assert.Contains(t, out, "binary_search")
	assert.Contains(t, out, "Binary Search Algorithm")
	assert.Contains(t, out, "QUICK QUESTIONS")
	assert.Contains(t, out, "1. Binary Search")
	assert.NotContains(t, out, "Recently asked")
}

func TestTopicsCmd_ShowsRecent(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "ask", "--no-delay", "explain binary search")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "topics")
	require.NoError(t, err)
	assert.Contains(t, out, "Recently asked: binary_search")
}

func TestTopicsShowCmd_Raw(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "topics", "show", "binary-search", "--raw", "--variant", "java")
	require.NoError(t, err)
	assert.Contains(t, out, "**Java Implementation:**")
	assert.Contains(t, out, "```java")
}

func TestTopicsShowCmd_FallsBackToPythonSnippet(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "topics", "show", "dynamic programming", "--raw", "--variant", "cpp")
	require.NoError(t, err)
	assert.Contains(t, out, "**Python Implementation:**")
}

func TestTopicsShowCmd_RendersMarkdown(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "topics", "show", "binary_search")
	require.NoError(t, err)
	assert.Contains(t, out, "Binary Search Algorithm")
	assert.Contains(t, out, "def binary_search")
	assert.NotContains(t, out, "```")
}

func TestTopicsShowCmd_UnknownTopic(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "topics", "show", "graphs")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownTopic)
}

// --- stats ---

func TestStatsCmd_RendersDashboard(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "stats", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "rank #4242")
	assert.Contains(t, out, "Solved 75 of 400")
	assert.Contains(t, out, "LANGUAGES")
	assert.Contains(t, out, "Python ★")
	assert.Contains(t, out, "CONTESTS")
}

func TestStatsCmd_PreferredFollowsVariant(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "variant", "java")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "stats", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, "Java ★")
	assert.NotContains(t, out, "Python ★")
}

func TestStatsCmd_Recent(t *testing.T) {
	app := testApp(t)
	out, err := executeCmd(t, app, "stats", "--recent")
	require.NoError(t, err)
	assert.Contains(t, out, "No recent searches.")

	for _, name := range []string{"alice", "bob"} {
		_, err := executeCmd(t, app, "stats", name)
		require.NoError(t, err)
	}
	out, err = executeCmd(t, app, "stats", "--recent")
	require.NoError(t, err)
	assert.Contains(t, out, "Recent: bob, alice")
}

func TestStatsCmd_Errors(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "stats")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "username is required")

	_, err = executeCmd(t, app, "stats", "carol")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user not found")

	app.Stats = nil
	_, err = executeCmd(t, app, "stats", "alice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

// --- serve ---

func freeAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())
	return addr
}

func TestRunServer_ServesUntilCancelled(t *testing.T) {
	app := testApp(t)
	cfg := app.Config.Server
	cfg.Addr = freeAddr(t)
	srv, err := server.New(cfg, server.Deps{Factory: app.Factory, Knowledge: app.Knowledge, Bus: app.Bus})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runServer(ctx, app, srv, cfg.Addr) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + cfg.Addr + "/healthz")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}
}
