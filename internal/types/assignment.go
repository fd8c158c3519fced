// Package types provides type definitions for structured data used throughout the course-progress system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// AssignmentEntry is a single trackable unit. Identity is the Href alone;
// Name is the label captured at the first place the href was seen.
type AssignmentEntry struct {
	Href string `json:"href"`
	Name string `json:"name"`
}

// CourseResult is the outcome of loading one course page.
type CourseResult struct {
	Name        string            `json:"name"`
	Assignments []AssignmentEntry `json:"assignments"`
	Error       bool              `json:"error,omitempty"`
	Err         error             `json:"-"` // underlying cause when Error is set
}

// HasAssignment reports whether href is one of the course's assignments.
func (r *CourseResult) HasAssignment(href string) bool {
	for _, a := range r.Assignments {
		if a.Href == href {
			return true
		}
	}
	return false
}

// CategoryResult holds the per-course results of one category load.
// Order preserves the category's course order since Courses is a map.
type CategoryResult struct {
	CategoryID string                   `json:"category_id"`
	Order      []string                 `json:"order"`
	Courses    map[string]*CourseResult `json:"courses"`
}

// NewCategoryResult creates an empty result for the given category.
func NewCategoryResult(categoryID string) *CategoryResult {
	return &CategoryResult{
		CategoryID: categoryID,
		Order:      make([]string, 0),
		Courses:    make(map[string]*CourseResult),
	}
}

// Add records the result for a course, keeping first-insertion order.
func (r *CategoryResult) Add(courseURL string, result *CourseResult) {
	if _, exists := r.Courses[courseURL]; !exists {
		r.Order = append(r.Order, courseURL)
	}
	r.Courses[courseURL] = result
}

// TotalAssignments counts assignments across every course, errored ones contribute zero.
func (r *CategoryResult) TotalAssignments() int {
	total := 0
	for _, course := range r.Courses {
		total += len(course.Assignments)
	}
	return total
}

// FailedCourses returns the URLs of courses that could not be loaded, in order.
func (r *CategoryResult) FailedCourses() []string {
	var failed []string
	for _, url := range r.Order {
		if r.Courses[url].Error {
			failed = append(failed, url)
		}
	}
	return failed
}
