// Package store provides the key/value persistence adapters used for progress
// and preference state. Every value is a JSON document kept under a
// namespaced key and expires after a retention window.
package store

import (
	"context"
	"encoding/json"
	"time"
)

// DefaultRetention is how long persisted values live after their last write.
const DefaultRetention = 365 * 24 * time.Hour

// Store is a key/value store with per-key expiry.
// Writes replace the whole value; a reader never observes a partial write.
type Store interface {
	// Get returns the raw value for key. found is false when the key is
	// missing or expired.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	// Set stores value under key for ttl. A ttl of zero means DefaultRetention.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// Load reads the JSON value stored under key into a T.
// A missing key or a value that does not decode as T yields the zero T and
// found=false; only backend failures are returned as errors.
func Load[T any](ctx context.Context, s Store, key string) (value T, found bool, err error) {
	var zero T
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		return zero, false, err
	}
	if !ok {
		return zero, false, nil
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		return zero, false, nil
	}
	return value, true, nil
}

// Save encodes value as JSON and stores it under key with DefaultRetention.
func Save(ctx context.Context, s Store, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return &Error{Key: key, Message: "failed to encode value", Cause: err}
	}
	return s.Set(ctx, key, data, DefaultRetention)
}

func effectiveTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return DefaultRetention
	}
	return ttl
}
