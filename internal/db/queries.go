package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/hpungsan/noten/internal/errors"
	"github.com/hpungsan/noten/internal/kv"
)

// KV is a kv.Store backed by the kv_entries table.
type KV struct {
	db *sql.DB
}

var _ kv.Store = (*KV)(nil)

// NewKV wraps an initialized database.
func NewKV(db *sql.DB) *KV {
	return &KV{db: db}
}

// Get returns the value stored under key.
func (s *KV) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_entries WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.NewPersistenceUnavailable(err)
	}
	return value, true, nil
}

// Set upserts value under key and stamps updated_at.
func (s *KV) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO kv_entries (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := s.db.ExecContext(ctx, query, key, value, time.Now().Unix()); err != nil {
		return errors.NewPersistenceUnavailable(err)
	}
	return nil
}
