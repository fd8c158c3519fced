package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/course-progress/internal/schemas"
	rootschemas "github.com/jonathan/course-progress/schemas"
	"gopkg.in/yaml.v3"
)

// Load reads a catalog from a .json, .yaml or .yml file, checks it against
// the catalog JSON Schema and validates it.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return nil, &Error{Message: "catalog path is empty"}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Path: path, Message: "failed to read catalog file", Cause: err}
	}

	var cat *Catalog
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		cat, err = decodeYAML(path, data)
	case ".json":
		cat, err = decodeJSON(path, data)
	default:
		return nil, &Error{Path: path, Message: fmt.Sprintf("unsupported catalog format %q", filepath.Ext(path))}
	}
	if err != nil {
		return nil, err
	}

	if err := cat.Validate(); err != nil {
		return nil, &Error{Path: path, Message: "invalid catalog", Cause: err}
	}
	return cat, nil
}

func decodeJSON(path string, data []byte) (*Catalog, error) {
	var cat Catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		return nil, &Error{Path: path, Message: "failed to parse catalog", Cause: err}
	}
	if err := schemas.ValidateJSON(rootschemas.CatalogName, rootschemas.Catalog, data); err != nil {
		return nil, &Error{Path: path, Message: "catalog does not match schema", Cause: err}
	}
	return &cat, nil
}

// decodeYAML checks the generic document against the schema, then
// round-trips it through JSON so both formats decode with the same tags.
func decodeYAML(path string, data []byte) (*Catalog, error) {
	var document any
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, &Error{Path: path, Message: "failed to parse catalog", Cause: err}
	}
	if err := schemas.ValidateDocument(rootschemas.CatalogName, rootschemas.Catalog, document); err != nil {
		return nil, &Error{Path: path, Message: "catalog does not match schema", Cause: err}
	}

	normalized, err := json.Marshal(document)
	if err != nil {
		return nil, &Error{Path: path, Message: "failed to normalize catalog", Cause: err}
	}
	var cat Catalog
	if err := json.Unmarshal(normalized, &cat); err != nil {
		return nil, &Error{Path: path, Message: "failed to decode catalog", Cause: err}
	}
	return &cat, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and that category ids and course URLs
// are unique within the catalog and category respectively.
func (c *Catalog) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}

	ids := make(map[string]bool)
	for _, category := range c.Categories {
		if ids[category.ID] {
			return fmt.Errorf("duplicate category id %q", category.ID)
		}
		ids[category.ID] = true

		urls := make(map[string]bool)
		for _, course := range category.Courses {
			if urls[course.URL] {
				return fmt.Errorf("duplicate course %q in category %q", course.URL, category.ID)
			}
			urls[course.URL] = true
		}
	}
	return nil
}
