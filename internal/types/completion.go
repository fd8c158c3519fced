// Package types provides type definitions for structured data used throughout the course-progress system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// CompletionRecord maps a course URL to the hrefs the user marked complete.
// One record exists per category.
type CompletionRecord map[string][]string

// Contains reports whether href is marked complete for courseURL.
func (r CompletionRecord) Contains(courseURL, href string) bool {
	for _, h := range r[courseURL] {
		if h == href {
			return true
		}
	}
	return false
}

// Hrefs returns the course's completed hrefs in stored order with repeats
// dropped. Records edited by hand can list an href more than once.
func (r CompletionRecord) Hrefs(courseURL string) []string {
	stored := r[courseURL]
	seen := make(map[string]struct{}, len(stored))
	hrefs := make([]string, 0, len(stored))
	for _, h := range stored {
		if _, dup := seen[h]; dup {
			continue
		}
		seen[h] = struct{}{}
		hrefs = append(hrefs, h)
	}
	return hrefs
}

// Toggle flips membership of href in the course's set, removing every copy
// when it was present. A course whose set becomes empty is removed so a
// double toggle restores the original record. It returns true when href is
// complete after the call.
func (r CompletionRecord) Toggle(courseURL, href string) bool {
	if !r.Contains(courseURL, href) {
		r[courseURL] = append(r[courseURL], href)
		return true
	}

	remaining := make([]string, 0, len(r[courseURL]))
	for _, h := range r[courseURL] {
		if h != href {
			remaining = append(remaining, h)
		}
	}
	if len(remaining) == 0 {
		delete(r, courseURL)
	} else {
		r[courseURL] = remaining
	}
	return false
}

// Total counts every distinct completed href, including ones no longer
// present on any page.
func (r CompletionRecord) Total() int {
	total := 0
	for url := range r {
		total += len(r.Hrefs(url))
	}
	return total
}
