package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// SQLiteBridge stores values in the kv table created by the shared migrations.
type SQLiteBridge struct {
	db    *sql.DB
	owned bool
}

// NewSQLiteBridge wraps db. When owned is true, Close also closes db.
func NewSQLiteBridge(db *sql.DB, owned bool) *SQLiteBridge {
	return &SQLiteBridge{db: db, owned: owned}
}

// Get returns the value stored under key.
func (b *SQLiteBridge) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := b.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, storageErr("get", key, err)
	}
	return value, true, nil
}

// Set inserts or replaces the value stored under key.
func (b *SQLiteBridge) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	if _, err := b.db.ExecContext(ctx, query, key, value, time.Now().UTC()); err != nil {
		return storageErr("set", key, err)
	}
	return nil
}

// Remove deletes the row for key.
func (b *SQLiteBridge) Remove(ctx context.Context, key string) error {
	if _, err := b.db.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", key); err != nil {
		return storageErr("remove", key, err)
	}
	return nil
}

func (b *SQLiteBridge) Close() error {
	if !b.owned {
		return nil
	}
	return b.db.Close()
}
