package cli

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/alexanderramin/coach/internal/assistant"
	"github.com/alexanderramin/coach/internal/config"
	"github.com/alexanderramin/coach/internal/events"
	"github.com/alexanderramin/coach/internal/knowledge"
	"github.com/alexanderramin/coach/internal/repository"
	"github.com/alexanderramin/coach/internal/scheduler"
	"github.com/alexanderramin/coach/internal/stats"
)

// App holds everything CLI commands need. Bus and Stats may be nil.
type App struct {
	Config    config.Config
	Knowledge *knowledge.Registry
	Factory   *assistant.Factory
	Store     repository.SettingsStore
	Bus       *events.Bus
	Stats     stats.Fetcher
	Logger    *zap.Logger

	// HistoryPath persists chat input history. Empty keeps it in memory.
	HistoryPath string

	// IsInteractive reports whether stdin is a terminal. Nil means false.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) logger() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}

// instantSession returns a session whose replies are delivered on RunAll.
func (a *App) instantSession(ctx context.Context) (*assistant.Session, *scheduler.Virtual, error) {
	clock := scheduler.NewVirtual()
	sess, err := a.Factory.New(ctx, clock)
	if err != nil {
		return nil, nil, fmt.Errorf("starting session: %w", err)
	}
	return sess, clock, nil
}
