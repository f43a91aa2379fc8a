package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/coach/internal/db"
)

// SQLiteSettingsStore implements SettingsStore on the settings table.
type SQLiteSettingsStore struct {
	db  db.DBTX
	uow db.UnitOfWork
}

// NewSQLiteSettingsStore creates a store. uow may be nil when conn is already
// a transaction; Update then runs directly on conn.
func NewSQLiteSettingsStore(conn db.DBTX, uow db.UnitOfWork) *SQLiteSettingsStore {
	return &SQLiteSettingsStore{db: conn, uow: uow}
}

func (r *SQLiteSettingsStore) Get(ctx context.Context, key string) (string, bool, error) {
	return getSetting(ctx, r.db, key)
}

func (r *SQLiteSettingsStore) Set(ctx context.Context, key, value string) error {
	return setSetting(ctx, r.db, key, value)
}

func (r *SQLiteSettingsStore) Delete(ctx context.Context, key string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM settings WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("deleting setting %s: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting setting %s: %w", key, err)
	}
	if n == 0 {
		return fmt.Errorf("setting %s: %w", key, ErrNotFound)
	}
	return nil
}

func (r *SQLiteSettingsStore) Update(ctx context.Context, key string, fn UpdateFunc) error {
	apply := func(ctx context.Context, tx db.DBTX) error {
		current, found, err := getSetting(ctx, tx, key)
		if err != nil {
			return err
		}
		next, err := fn(current, found)
		if err != nil {
			return err
		}
		return setSetting(ctx, tx, key, next)
	}
	if r.uow == nil {
		return apply(ctx, r.db)
	}
	return r.uow.WithinTx(ctx, apply)
}

func getSetting(ctx context.Context, conn db.DBTX, key string) (string, bool, error) {
	var value string
	err := conn.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("reading setting %s: %w", key, err)
	}
	return value, true, nil
}

func setSetting(ctx context.Context, conn db.DBTX, key, value string) error {
	_, err := conn.ExecContext(ctx,
		`INSERT OR REPLACE INTO settings (key, value, updated_at) VALUES (?, ?, ?)`,
		key, value, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("writing setting %s: %w", key, err)
	}
	return nil
}
