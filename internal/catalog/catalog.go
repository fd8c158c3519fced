// Package catalog defines the categories and course pages the tracker knows
// about. The catalog is static configuration: built in, or loaded once from
// a JSON or YAML file at startup.
package catalog

import (
	"fmt"

	"github.com/jonathan/course-progress/internal/types"
)

// Catalog is an ordered set of categories.
type Catalog struct {
	Categories []types.Category `json:"categories" yaml:"categories" validate:"required,min=1,dive"`
}

// Default returns the built-in catalog. The it and cte course URLs are
// placeholders for those page families; load a real catalog with --catalog.
func Default() *Catalog {
	return &Catalog{
		Categories: []types.Category{
			{
				ID:   "cs",
				Name: "Computer Science",
				Courses: []types.Course{
					{URL: "https://bev.facey.rocks/cs10.html", Name: "CS 10"},
					{URL: "https://bev.facey.rocks/cs20.html", Name: "CS 20"},
					{URL: "https://bev.facey.rocks/cs30.html", Name: "CS 30"},
				},
			},
			{
				ID:   "it",
				Name: "Information Technology",
				Courses: []types.Course{
					{URL: "https://bev.facey.rocks/IT/networking1.html", Name: "Networking 1"},
					{URL: "https://bev.facey.rocks/IT/networking2.html", Name: "Networking 2"},
					{URL: "https://bev.facey.rocks/IT/networking3.html", Name: "Networking 3"},
				},
			},
			{
				ID:   "cte",
				Name: "Career & Technology",
				Courses: []types.Course{
					{URL: "https://bev.facey.rocks/CTE/cte10.html", Name: "CTE 10"},
					{URL: "https://bev.facey.rocks/CTE/cte20.html", Name: "CTE 20"},
				},
			},
		},
	}
}

// Get returns the category with the given id.
func (c *Catalog) Get(id string) (types.Category, error) {
	for _, category := range c.Categories {
		if category.ID == id {
			return category, nil
		}
	}
	return types.Category{}, &Error{Message: fmt.Sprintf("no category %q", id), Cause: ErrUnknownCategory}
}

// IDs returns the category ids in catalog order.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.Categories))
	for _, category := range c.Categories {
		ids = append(ids, category.ID)
	}
	return ids
}

// First returns the first category, the default selection.
func (c *Catalog) First() (types.Category, bool) {
	if len(c.Categories) == 0 {
		return types.Category{}, false
	}
	return c.Categories[0], true
}
