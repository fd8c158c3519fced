// Package schemas holds the JSON Schemas for the tool's input documents.
package schemas

import _ "embed"

// Catalog is the JSON Schema for course catalog files.
//
//go:embed catalog.schema.json
var Catalog string

// CatalogName names the catalog schema in validation errors.
const CatalogName = "catalog.schema.json"
