package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jonathan/course-progress/internal/store"
)

// KVStore implements store.Store on the progress_kv table.
// Expired rows are ignored on read and removed by PurgeExpired.
type KVStore struct {
	db *DB
}

// NewKVStore returns a store backed by db. Call EnsureSchema first.
func NewKVStore(db *DB) *KVStore {
	return &KVStore{db: db}
}

var _ store.Store = (*KVStore)(nil)

// Get returns the value for key if it exists and has not expired
func (s *KVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.pool.QueryRow(ctx,
		`SELECT value FROM progress_kv WHERE key = $1 AND expires_at > NOW()`,
		key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, &store.Error{Key: key, Message: "failed to read value", Cause: err}
	}
	return value, true, nil
}

// Set upserts the value for key, replacing any previous value whole
func (s *KVStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = store.DefaultRetention
	}
	expiresAt := time.Now().Add(ttl)

	_, err := s.db.pool.Exec(ctx,
		`INSERT INTO progress_kv (key, value, expires_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (key) DO UPDATE SET value = $2, expires_at = $3, updated_at = NOW()`,
		key, value, expiresAt,
	)
	if err != nil {
		return &store.Error{Key: key, Message: "failed to write value", Cause: err}
	}
	return nil
}

// Delete removes key
func (s *KVStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.pool.Exec(ctx, `DELETE FROM progress_kv WHERE key = $1`, key); err != nil {
		return &store.Error{Key: key, Message: "failed to delete value", Cause: err}
	}
	return nil
}

// PurgeExpired deletes rows past their expiry and returns how many were removed
func (s *KVStore) PurgeExpired(ctx context.Context) (int64, error) {
	tag, err := s.db.pool.Exec(ctx, `DELETE FROM progress_kv WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired values: %w", err)
	}
	return tag.RowsAffected(), nil
}
