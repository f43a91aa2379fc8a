package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/alexanderramin/coach/internal/assistant"
	"github.com/alexanderramin/coach/internal/cli"
	"github.com/alexanderramin/coach/internal/config"
	"github.com/alexanderramin/coach/internal/events"
	"github.com/alexanderramin/coach/internal/knowledge"
	"github.com/alexanderramin/coach/internal/logging"
	"github.com/alexanderramin/coach/internal/repository"
	"github.com/alexanderramin/coach/internal/stats"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// preflight reads the flags needed before the command tree exists. Every
// other flag is left for cobra.
func preflight(args []string) (cfgPath string, command string) {
	fs := pflag.NewFlagSet("coach", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	path := fs.String("config", config.Path(), "")
	_ = fs.Parse(args)
	if fs.NArg() > 0 {
		command = fs.Arg(0)
	}
	return *path, command
}

func run(args []string) error {
	cfgPath, command := preflight(args)
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	// Only the server may log to the console; other commands own the terminal.
	logger, err := logging.New(cfg.Logging, logging.Options{ForceNoConsole: command != "serve"})
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	backend, err := repository.ParseBackend(cfg.Store.Backend)
	if err != nil {
		return err
	}
	store, closer, err := repository.Open(ctx, repository.Options{
		Backend:     backend,
		DBPath:      cfg.Store.DBPath,
		BadgerDir:   cfg.Store.BadgerDir,
		RedisURL:    cfg.Store.RedisURL,
		RedisPrefix: cfg.Store.RedisPrefix,
	}, logger)
	if err != nil {
		return fmt.Errorf("opening %s store: %w", backend, err)
	}
	defer closer.Close()

	bus := events.NewBus(logger)
	defer bus.Close()

	kb := knowledge.Default()
	factory, err := assistant.NewFactory(cfg.Assistant, kb, store, bus, logger)
	if err != nil {
		return err
	}

	app := &cli.App{
		Config:      cfg,
		Knowledge:   kb,
		Factory:     factory,
		Store:       store,
		Bus:         bus,
		Logger:      logger,
		HistoryPath: filepath.Join(config.DataDir(), "chat_history"),
	}
	if cfg.Stats.Endpoint != "" {
		app.Stats = stats.NewClient(cfg.Stats, logger)
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	logger.Debug("starting", zap.String("command", command), zap.String("store", string(backend)))

	root := cli.NewRootCmd(app)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}
