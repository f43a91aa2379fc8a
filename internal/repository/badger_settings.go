package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

const badgerConflictRetries = 5

// BadgerSettingsStore implements SettingsStore on an embedded badger database.
type BadgerSettingsStore struct {
	db *badger.DB
}

// OpenBadgerSettingsStore opens (or creates) a badger database in dir. An
// empty dir opens an in-memory database.
func OpenBadgerSettingsStore(dir string) (*BadgerSettingsStore, error) {
	opts := badger.DefaultOptions(dir).
		WithLoggingLevel(badger.ERROR)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening badger store: %w", err)
	}
	return &BadgerSettingsStore{db: db}, nil
}

func (s *BadgerSettingsStore) Get(_ context.Context, key string) (string, bool, error) {
	var value string
	found := false
	err := s.db.View(func(txn *badger.Txn) error {
		v, ok, err := badgerGet(txn, key)
		value, found = v, ok
		return err
	})
	if err != nil {
		return "", false, fmt.Errorf("reading setting %s: %w", key, err)
	}
	return value, found, nil
}

func (s *BadgerSettingsStore) Set(_ context.Context, key, value string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("writing setting %s: %w", key, err)
	}
	return nil
}

func (s *BadgerSettingsStore) Delete(_ context.Context, key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get([]byte(key)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			return err
		}
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("deleting setting %s: %w", key, err)
	}
	return nil
}

// Update retries on transaction conflicts.
func (s *BadgerSettingsStore) Update(ctx context.Context, key string, fn UpdateFunc) error {
	var err error
	for range badgerConflictRetries {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		err = s.db.Update(func(txn *badger.Txn) error {
			current, found, err := badgerGet(txn, key)
			if err != nil {
				return err
			}
			next, err := fn(current, found)
			if err != nil {
				return err
			}
			return txn.Set([]byte(key), []byte(next))
		})
		if !errors.Is(err, badger.ErrConflict) {
			break
		}
	}
	if err != nil {
		return fmt.Errorf("updating setting %s: %w", key, err)
	}
	return nil
}

func (s *BadgerSettingsStore) Close() error {
	return s.db.Close()
}

func badgerGet(txn *badger.Txn, key string) (string, bool, error) {
	item, err := txn.Get([]byte(key))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	data, err := item.ValueCopy(nil)
	if err != nil {
		return "", false, err
	}
	return string(data), true, nil
}
