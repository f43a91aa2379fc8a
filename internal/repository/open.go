package repository

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/alexanderramin/coach/internal/db"
)

// Backend names a SettingsStore implementation.
type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendBadger Backend = "badger"
	BackendRedis  Backend = "redis"
	BackendMemory Backend = "memory"
)

// ParseBackend accepts a backend name case-insensitively.
func ParseBackend(s string) (Backend, error) {
	b := Backend(strings.ToLower(strings.TrimSpace(s)))
	switch b {
	case BackendSQLite, BackendBadger, BackendRedis, BackendMemory:
		return b, nil
	}
	return "", fmt.Errorf("unknown store backend %q", s)
}

// Options selects and locates a backend.
type Options struct {
	Backend     Backend
	DBPath      string
	BadgerDir   string
	RedisURL    string
	RedisPrefix string
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open returns the configured store and a closer releasing its resources.
func Open(ctx context.Context, opts Options, logger *zap.Logger) (SettingsStore, io.Closer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch opts.Backend {
	case BackendSQLite, "":
		database, err := db.OpenDB(opts.DBPath)
		if err != nil {
			return nil, nil, err
		}
		return NewSQLiteSettingsStore(database, db.NewSQLiteUnitOfWork(database)), database, nil
	case BackendBadger:
		store, err := OpenBadgerSettingsStore(opts.BadgerDir)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	case BackendRedis:
		store := OpenRedisSettingsStore(ctx, opts.RedisURL, opts.RedisPrefix, logger)
		return store, store, nil
	case BackendMemory:
		return NewMemorySettingsStore(), nopCloser{}, nil
	}
	return nil, nil, fmt.Errorf("unknown store backend %q", opts.Backend)
}
