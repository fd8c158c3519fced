// Package types provides type definitions for structured data used throughout the course-progress system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Course is one fetched page listing a sequence of assignments.
// The URL doubles as the course identifier.
type Course struct {
	URL  string `json:"url" yaml:"url" validate:"required,url"`
	Name string `json:"name" yaml:"name" validate:"required"`
}

// Category groups related courses. Courses are ordered; the order decides
// which course an assignment is attributed to when several pages link it.
type Category struct {
	ID      string   `json:"id" yaml:"id" validate:"required"`
	Name    string   `json:"name" yaml:"name" validate:"required"`
	Courses []Course `json:"courses" yaml:"courses" validate:"required,min=1,dive"`
}

// CourseURLs returns the course identifiers in category order.
func (c Category) CourseURLs() []string {
	urls := make([]string, 0, len(c.Courses))
	for _, course := range c.Courses {
		urls = append(urls, course.URL)
	}
	return urls
}

// HasCourse reports whether courseURL belongs to the category.
func (c Category) HasCourse(courseURL string) bool {
	for _, course := range c.Courses {
		if course.URL == courseURL {
			return true
		}
	}
	return false
}
