// Package progress persists which assignments the user has completed, per
// category, along with the selected category and theme preferences.
package progress

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonathan/course-progress/internal/store"
	"github.com/jonathan/course-progress/internal/types"
)

// Persistence keys.
const (
	recordKeyPrefix     = "progress:"
	SelectedCategoryKey = "selected_category"
	ThemeKey            = "theme"
)

// Theme is the display theme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ErrInvalidTheme is returned for a theme other than light or dark.
var ErrInvalidTheme = errors.New("theme must be \"dark\" or \"light\"")

// ParseTheme validates a theme name.
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s), nil
	}
	return "", fmt.Errorf("%w: got %q", ErrInvalidTheme, s)
}

// RecordKey returns the persistence key of a category's completion record.
func RecordKey(categoryID string) string {
	return recordKeyPrefix + categoryID
}

// Store keeps one CompletionRecord per category. Records are independent:
// nothing written for one category is visible from another.
type Store struct {
	store store.Store
}

// New creates a progress store on top of a persistence adapter.
func New(s store.Store) *Store {
	return &Store{store: s}
}

// Record returns the category's completion record. A missing or corrupt
// record reads as empty.
func (p *Store) Record(ctx context.Context, categoryID string) (types.CompletionRecord, error) {
	record, found, err := store.Load[types.CompletionRecord](ctx, p.store, RecordKey(categoryID))
	if err != nil {
		return nil, fmt.Errorf("failed to load progress for %s: %w", categoryID, err)
	}
	if !found || record == nil {
		return types.CompletionRecord{}, nil
	}
	return record, nil
}

// Toggle flips whether href is complete for the course and persists the
// record. It returns the new completion state.
func (p *Store) Toggle(ctx context.Context, categoryID, courseURL, href string) (bool, error) {
	record, err := p.Record(ctx, categoryID)
	if err != nil {
		return false, err
	}
	completed := record.Toggle(courseURL, href)
	if err := store.Save(ctx, p.store, RecordKey(categoryID), record); err != nil {
		return false, fmt.Errorf("failed to save progress for %s: %w", categoryID, err)
	}
	return completed, nil
}

// IsCompleted reports whether href is marked complete for the course.
func (p *Store) IsCompleted(ctx context.Context, categoryID, courseURL, href string) (bool, error) {
	record, err := p.Record(ctx, categoryID)
	if err != nil {
		return false, err
	}
	return record.Contains(courseURL, href), nil
}

// Clear replaces the category's record with an empty one. Callers are
// expected to have confirmed with the user.
func (p *Store) Clear(ctx context.Context, categoryID string) error {
	if err := store.Save(ctx, p.store, RecordKey(categoryID), types.CompletionRecord{}); err != nil {
		return fmt.Errorf("failed to clear progress for %s: %w", categoryID, err)
	}
	return nil
}

// SelectedCategory returns the remembered category id, or "" if none.
func (p *Store) SelectedCategory(ctx context.Context) (string, error) {
	id, _, err := store.Load[string](ctx, p.store, SelectedCategoryKey)
	if err != nil {
		return "", fmt.Errorf("failed to load selected category: %w", err)
	}
	return id, nil
}

// SetSelectedCategory remembers the category id.
func (p *Store) SetSelectedCategory(ctx context.Context, categoryID string) error {
	if err := store.Save(ctx, p.store, SelectedCategoryKey, categoryID); err != nil {
		return fmt.Errorf("failed to save selected category: %w", err)
	}
	return nil
}

// Theme returns the stored theme, ThemeLight when unset or unrecognized.
func (p *Store) Theme(ctx context.Context) (Theme, error) {
	raw, _, err := store.Load[string](ctx, p.store, ThemeKey)
	if err != nil {
		return ThemeLight, fmt.Errorf("failed to load theme: %w", err)
	}
	theme, err := ParseTheme(raw)
	if err != nil {
		return ThemeLight, nil
	}
	return theme, nil
}

// SetTheme stores the theme preference.
func (p *Store) SetTheme(ctx context.Context, theme Theme) error {
	if _, err := ParseTheme(string(theme)); err != nil {
		return err
	}
	if err := store.Save(ctx, p.store, ThemeKey, string(theme)); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}
	return nil
}
