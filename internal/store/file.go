package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type fileEntry struct {
	Value     json.RawMessage `json:"value"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// File persists all keys in a single JSON document on disk. Each write
// rewrites the document through a temp file and rename.
type File struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// NewFile creates a file-backed store at path. The file and its parent
// directory are created on first write.
func NewFile(path string) *File {
	return &File{path: path, now: time.Now}
}

// Path returns the location of the backing document.
func (f *File) Path() string {
	return f.path
}

func (f *File) Get(_ context.Context, key string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := f.read()
	if err != nil {
		return nil, false, err
	}
	entry, ok := entries[key]
	if !ok || !f.now().Before(entry.ExpiresAt) {
		return nil, false, nil
	}
	return []byte(entry.Value), true, nil
}

func (f *File) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := f.read()
	if err != nil {
		return err
	}
	if !json.Valid(value) {
		return &Error{Key: key, Message: "value is not valid JSON"}
	}
	entries[key] = fileEntry{Value: json.RawMessage(value), ExpiresAt: f.now().Add(effectiveTTL(ttl))}
	return f.write(entries)
}

func (f *File) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := f.read()
	if err != nil {
		return err
	}
	if _, ok := entries[key]; !ok {
		return nil
	}
	delete(entries, key)
	return f.write(entries)
}

// read loads the document. A missing or unparseable document reads as empty.
func (f *File) read() (map[string]fileEntry, error) {
	entries := make(map[string]fileEntry)

	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return entries, nil
		}
		return nil, &Error{Key: f.path, Message: "failed to read store file", Cause: err}
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return make(map[string]fileEntry), nil
	}

	now := f.now()
	for key, entry := range entries {
		if !now.Before(entry.ExpiresAt) {
			delete(entries, key)
		}
	}
	return entries, nil
}

func (f *File) write(entries map[string]fileEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return &Error{Key: f.path, Message: "failed to encode store file", Cause: err}
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &Error{Key: f.path, Message: "failed to create store directory", Cause: err}
	}

	tmp, err := os.CreateTemp(dir, ".progress-*.tmp")
	if err != nil {
		return &Error{Key: f.path, Message: "failed to create temp file", Cause: err}
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return &Error{Key: f.path, Message: "failed to write temp file", Cause: err}
	}
	if err := tmp.Close(); err != nil {
		return &Error{Key: f.path, Message: "failed to close temp file", Cause: err}
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return &Error{Key: f.path, Message: "failed to replace store file", Cause: err}
	}
	return nil
}
