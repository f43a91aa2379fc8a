// Package repository persists small string settings across process restarts.
package repository

import (
	"context"
	"errors"
)

// ErrNotFound is returned when deleting a key that does not exist.
var ErrNotFound = errors.New("not found")

// UpdateFunc computes a new value from the current one. found is false when
// the key is absent.
type UpdateFunc func(current string, found bool) (string, error)

// SettingsStore is a persistent string key-value store.
type SettingsStore interface {
	// Get returns the stored value; found is false when the key is absent.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	// Update performs an atomic read-modify-write of key.
	Update(ctx context.Context, key string, fn UpdateFunc) error
}
