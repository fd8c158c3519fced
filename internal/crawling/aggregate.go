package crawling

import (
	"context"
	"time"

	"github.com/jonathan/course-progress/internal/fetch"
	"github.com/jonathan/course-progress/internal/logger"
	"github.com/jonathan/course-progress/internal/types"
)

// PageFetcher is what the aggregator needs from the fetch layer.
type PageFetcher interface {
	FetchHTML(ctx context.Context, url string) (string, error)
	ExistenceChecker
}

// Aggregator loads every course page of a category and attributes each
// assignment href to the first course that introduces it.
type Aggregator struct {
	fetcher  PageFetcher
	inferrer *Inferrer
	rules    ExclusionRules
	familyOf func(url string) fetch.PageFamily
	logger   logger.Logger
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithExclusionRules overrides the anchor exclusion rules.
func WithExclusionRules(rules ExclusionRules) Option {
	return func(a *Aggregator) { a.rules = rules }
}

// WithInferrer overrides the pattern inferrer, e.g. to inject a stub verifier.
func WithInferrer(inferrer *Inferrer) Option {
	return func(a *Aggregator) { a.inferrer = inferrer }
}

// WithFamilyDetector overrides how course URLs map to page families.
func WithFamilyDetector(detect func(url string) fetch.PageFamily) Option {
	return func(a *Aggregator) { a.familyOf = detect }
}

// WithLogger sets the logger.
func WithLogger(log logger.Logger) Option {
	return func(a *Aggregator) { a.logger = log }
}

// NewAggregator creates an aggregator. Unless overridden, pattern inference
// uses DefaultCodePrefix and verifies candidates through fetcher.
func NewAggregator(fetcher PageFetcher, opts ...Option) *Aggregator {
	a := &Aggregator{
		fetcher:  fetcher,
		rules:    DefaultExclusionRules(),
		familyOf: fetch.DetectPageFamily,
		logger:   logger.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.inferrer == nil {
		// DefaultCodePrefix is valid and fetcher is non-nil, so this cannot fail.
		a.inferrer, _ = NewInferrer(DefaultCodePrefix, fetcher, a.logger)
	}
	return a
}

// LoadCategory fetches the category's courses strictly in order, sharing one
// SeenSet across them. A course that fails to fetch or parse is recorded
// with Error set and an empty list; the remaining courses still load.
// An error is returned only when the category cannot be loaded at all.
func (a *Aggregator) LoadCategory(ctx context.Context, category types.Category) (*types.CategoryResult, error) {
	if len(category.Courses) == 0 {
		return nil, &LoadError{CategoryID: category.ID, Message: "nothing to load", Cause: ErrNoCourses}
	}

	log := a.logger.With(logger.String("category", category.ID))
	start := time.Now()
	seen := NewSeenSet()
	result := types.NewCategoryResult(category.ID)

	for _, course := range category.Courses {
		if err := ctx.Err(); err != nil {
			return nil, &LoadError{CategoryID: category.ID, Message: "load cancelled", Cause: err}
		}
		result.Add(course.URL, a.loadCourse(ctx, course, seen, log))
	}

	log.Info("Category loaded",
		logger.Int("courses", len(category.Courses)),
		logger.Int("assignments", seen.Len()),
		logger.Int("failed", len(result.FailedCourses())),
		logger.Duration("elapsed", time.Since(start)),
	)
	return result, nil
}

func (a *Aggregator) loadCourse(ctx context.Context, course types.Course, seen *SeenSet, log logger.Logger) *types.CourseResult {
	log = log.With(logger.String("course", course.Name), logger.String("url", course.URL))

	html, err := a.fetcher.FetchHTML(ctx, course.URL)
	if err != nil {
		log.Warn("Could not load course page", logger.Err(err))
		return failedCourse(course, err)
	}

	doc, err := ParseDocument(html)
	if err != nil {
		log.Warn("Could not parse course page", logger.Err(err))
		return failedCourse(course, err)
	}

	assignments := ExtractAnchorsFromDocument(doc, seen, a.rules)
	linked := len(assignments)

	if a.familyOf(course.URL).InfersFromText() {
		inferred := a.inferrer.Infer(ctx, doc, html, fetch.BaseURL(course.URL), seen)
		assignments = append(assignments, inferred...)
	}

	log.Debug("Course loaded",
		logger.Int("linked", linked),
		logger.Int("inferred", len(assignments)-linked),
	)
	return &types.CourseResult{Name: course.Name, Assignments: assignments}
}

func failedCourse(course types.Course, err error) *types.CourseResult {
	return &types.CourseResult{
		Name:        course.Name,
		Assignments: []types.AssignmentEntry{},
		Error:       true,
		Err:         err,
	}
}
