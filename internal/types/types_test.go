//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletionRecord_ToggleTwiceRestores(t *testing.T) {
	record := CompletionRecord{"https://example.com/cs10.html": {"/a1"}}

	assert.True(t, record.Toggle("https://example.com/cs10.html", "/a2"))
	assert.True(t, record.Contains("https://example.com/cs10.html", "/a2"))
	assert.False(t, record.Toggle("https://example.com/cs10.html", "/a2"))

	assert.Equal(t, CompletionRecord{"https://example.com/cs10.html": {"/a1"}}, record)
}

func TestCompletionRecord_ToggleOnEmptyRecord(t *testing.T) {
	record := CompletionRecord{}

	record.Toggle("course", "/a1")
	record.Toggle("course", "/a1")

	assert.Equal(t, CompletionRecord{}, record)
}

func TestCompletionRecord_ToggleDoesNotAliasRemovedSlot(t *testing.T) {
	record := CompletionRecord{"course": {"/a1", "/a2", "/a3"}}
	before := record["course"]

	record.Toggle("course", "/a2")

	assert.Equal(t, []string{"/a1", "/a3"}, record["course"])
	assert.Equal(t, []string{"/a1", "/a2", "/a3"}, before)
}

func TestCompletionRecord_Total(t *testing.T) {
	record := CompletionRecord{
		"a": {"/1", "/2"},
		"b": {"/3"},
	}
	assert.Equal(t, 3, record.Total())
}

func TestCompletionRecord_RepeatedHref(t *testing.T) {
	record := CompletionRecord{"course": {"/a1", "/a2", "/a1"}}

	assert.Equal(t, []string{"/a1", "/a2"}, record.Hrefs("course"))
	assert.Equal(t, 2, record.Total())

	assert.False(t, record.Toggle("course", "/a1"), "toggling a repeated href removes every copy")
	assert.False(t, record.Contains("course", "/a1"))
	assert.Equal(t, []string{"/a2"}, record["course"])
}

func TestCompletionRecord_HrefsMissingCourse(t *testing.T) {
	assert.Empty(t, CompletionRecord{}.Hrefs("course"))
}

func TestCompletionRecord_JSONShape(t *testing.T) {
	record := CompletionRecord{"https://example.com/cs10.html": {"/a1"}}

	data, err := json.Marshal(record)
	require.NoError(t, err)
	assert.JSONEq(t, `{"https://example.com/cs10.html":["/a1"]}`, string(data))
}

func TestCategoryResult_AddKeepsOrder(t *testing.T) {
	result := NewCategoryResult("cs")
	result.Add("b", &CourseResult{Name: "B"})
	result.Add("a", &CourseResult{Name: "A", Error: true})
	result.Add("b", &CourseResult{Name: "B2"})

	assert.Equal(t, []string{"b", "a"}, result.Order)
	assert.Equal(t, "B2", result.Courses["b"].Name)
	assert.Equal(t, []string{"a"}, result.FailedCourses())
}

func TestCategoryResult_TotalAssignments(t *testing.T) {
	result := NewCategoryResult("cs")
	result.Add("a", &CourseResult{Assignments: []AssignmentEntry{{Href: "/1"}, {Href: "/2"}}})
	result.Add("b", &CourseResult{Error: true, Assignments: []AssignmentEntry{}})

	assert.Equal(t, 2, result.TotalAssignments())
	assert.True(t, result.Courses["a"].HasAssignment("/2"))
	assert.False(t, result.Courses["b"].HasAssignment("/2"))
}

func TestCategory_CourseURLs(t *testing.T) {
	category := Category{
		ID:   "cs",
		Name: "Computer Science",
		Courses: []Course{
			{URL: "https://example.com/cs10.html", Name: "CS 10"},
			{URL: "https://example.com/cs20.html", Name: "CS 20"},
		},
	}

	assert.Equal(t, []string{"https://example.com/cs10.html", "https://example.com/cs20.html"}, category.CourseURLs())
	assert.True(t, category.HasCourse("https://example.com/cs20.html"))
	assert.False(t, category.HasCourse("https://example.com/cs30.html"))
}
