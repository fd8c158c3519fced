// Package session holds the state a presentation layer works against: the
// selected category, its latest load result and the progress store. It
// replaces ambient "current category" globals with one explicit object.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/course-progress/internal/catalog"
	"github.com/jonathan/course-progress/internal/logger"
	"github.com/jonathan/course-progress/internal/progress"
	"github.com/jonathan/course-progress/internal/types"
	"golang.org/x/sync/singleflight"
)

var (
	// ErrLoadInProgress is returned when a different category is requested
	// while a load is still running.
	ErrLoadInProgress = errors.New("another category load is in progress")
	// ErrNotLoaded is returned when statistics are requested before any load.
	ErrNotLoaded = errors.New("no category has been loaded")
	// ErrUnknownCourse is returned when a course is not part of the current category.
	ErrUnknownCourse = errors.New("course is not part of the category")
)

// Loader loads every course of a category.
type Loader interface {
	LoadCategory(ctx context.Context, category types.Category) (*types.CategoryResult, error)
}

// Session is safe for concurrent use, but only one category load runs at a
// time. Concurrent requests for the category already loading share its result.
type Session struct {
	ID uuid.UUID

	catalog  *catalog.Catalog
	loader   Loader
	progress *progress.Store
	logger   logger.Logger
	now      func() time.Time
	deadline time.Time

	group   singleflight.Group
	mu      sync.Mutex
	loading string
	current types.Category
	result  *types.CategoryResult
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger.
func WithLogger(log logger.Logger) Option {
	return func(s *Session) { s.logger = log }
}

// WithDeadline sets the deadline used for countdown and pacing.
func WithDeadline(deadline time.Time) Option {
	return func(s *Session) { s.deadline = deadline }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// New creates a session with no category selected.
func New(cat *catalog.Catalog, loader Loader, store *progress.Store, opts ...Option) *Session {
	s := &Session{
		ID:       uuid.New(),
		catalog:  cat,
		loader:   loader,
		progress: store,
		logger:   logger.NewNop(),
		now:      time.Now,
		deadline: progress.DefaultDeadline,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logger.String("session", s.ID.String()))
	return s
}

// Restore selects the remembered category, falling back to the first one
// in the catalog when nothing valid is stored. It does not load pages.
func (s *Session) Restore(ctx context.Context) (types.Category, error) {
	id, err := s.progress.SelectedCategory(ctx)
	if err != nil {
		return types.Category{}, err
	}

	category, err := s.catalog.Get(id)
	if err != nil {
		first, ok := s.catalog.First()
		if !ok {
			return types.Category{}, fmt.Errorf("catalog is empty: %w", catalog.ErrUnknownCategory)
		}
		category = first
	}

	s.setCurrent(category)
	return category, nil
}

// setCurrent drops a result that belongs to another category.
func (s *Session) setCurrent(category types.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current.ID != category.ID {
		s.result = nil
	}
	s.current = category
}

// Use makes id the current category and remembers it without loading pages.
func (s *Session) Use(ctx context.Context, id string) (types.Category, error) {
	category, err := s.catalog.Get(id)
	if err != nil {
		return types.Category{}, err
	}
	if err := s.busy(id); err != nil {
		return types.Category{}, err
	}
	if err := s.progress.SetSelectedCategory(ctx, id); err != nil {
		return types.Category{}, err
	}

	s.setCurrent(category)
	return category, nil
}

// Select makes id the current category, remembers it, and loads it.
func (s *Session) Select(ctx context.Context, id string) (*types.CategoryResult, error) {
	category, err := s.Use(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.load(ctx, category)
}

// Reload loads the current category again.
func (s *Session) Reload(ctx context.Context) (*types.CategoryResult, error) {
	category := s.Current()
	if category.ID == "" {
		return nil, fmt.Errorf("no category selected: %w", ErrNotLoaded)
	}
	return s.load(ctx, category)
}

// busy reports ErrLoadInProgress when a category other than id is loading.
func (s *Session) busy(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busyLocked(id)
}

func (s *Session) busyLocked(id string) error {
	if s.loading != "" && s.loading != id {
		return fmt.Errorf("%w: %s", ErrLoadInProgress, s.loading)
	}
	return nil
}

// claim marks id as the loading category for the life of one run.
func (s *Session) claim(id string) (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.busyLocked(id); err != nil {
		return nil, err
	}
	s.loading = id
	return func() {
		s.mu.Lock()
		s.loading = ""
		s.mu.Unlock()
	}, nil
}

func (s *Session) load(ctx context.Context, category types.Category) (*types.CategoryResult, error) {
	// Fail fast; callers of the same category share the run in flight.
	if err := s.busy(category.ID); err != nil {
		return nil, err
	}

	v, err, shared := s.group.Do(category.ID, func() (any, error) {
		done, err := s.claim(category.ID)
		if err != nil {
			return nil, err
		}
		defer done()
		return s.loader.LoadCategory(ctx, category)
	})
	if err != nil {
		s.logger.Error("Category load failed", logger.String("category", category.ID), logger.Err(err))
		return nil, err
	}
	result := v.(*types.CategoryResult)

	s.mu.Lock()
	if s.current.ID == category.ID {
		s.result = result
	}
	s.mu.Unlock()

	s.logger.Debug("Category load finished", logger.String("category", category.ID), logger.Bool("shared", shared))
	return result, nil
}

// Current returns the selected category.
func (s *Session) Current() types.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Result returns the latest load result of the current category, or nil.
func (s *Session) Result() *types.CategoryResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Toggle flips completion of href for a course in the current category.
func (s *Session) Toggle(ctx context.Context, courseURL, href string) (bool, error) {
	category, err := s.courseCategory(courseURL)
	if err != nil {
		return false, err
	}
	return s.progress.Toggle(ctx, category.ID, courseURL, href)
}

// IsCompleted reports completion of href for a course in the current category.
func (s *Session) IsCompleted(ctx context.Context, courseURL, href string) (bool, error) {
	category, err := s.courseCategory(courseURL)
	if err != nil {
		return false, err
	}
	return s.progress.IsCompleted(ctx, category.ID, courseURL, href)
}

// Clear empties the current category's record. The caller confirms first.
func (s *Session) Clear(ctx context.Context) error {
	category := s.Current()
	if category.ID == "" {
		return fmt.Errorf("no category selected: %w", ErrNotLoaded)
	}
	if err := s.progress.Clear(ctx, category.ID); err != nil {
		return err
	}
	s.logger.Info("Progress cleared", logger.String("category", category.ID))
	return nil
}

// Summary cross-references the latest load with the stored record.
func (s *Session) Summary(ctx context.Context) (progress.Summary, error) {
	s.mu.Lock()
	category, result := s.current, s.result
	s.mu.Unlock()

	if result == nil {
		return progress.Summary{}, ErrNotLoaded
	}
	record, err := s.progress.Record(ctx, category.ID)
	if err != nil {
		return progress.Summary{}, err
	}
	return progress.Summarize(result, record, s.now(), s.deadline), nil
}

// Record returns the current category's completion record.
func (s *Session) Record(ctx context.Context) (types.CompletionRecord, error) {
	category := s.Current()
	if category.ID == "" {
		return nil, fmt.Errorf("no category selected: %w", ErrNotLoaded)
	}
	return s.progress.Record(ctx, category.ID)
}

func (s *Session) courseCategory(courseURL string) (types.Category, error) {
	category := s.Current()
	if category.ID == "" {
		return types.Category{}, fmt.Errorf("no category selected: %w", ErrNotLoaded)
	}
	if !category.HasCourse(courseURL) {
		return types.Category{}, fmt.Errorf("%w: %s not in %s", ErrUnknownCourse, courseURL, category.ID)
	}
	return category, nil
}
