package gateways

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// schemaValidator implements JSON-schema conformance checks for registry artifacts
type schemaValidator struct {
	schemas map[string]*gojsonschema.Schema
}

// NewSchemaValidator compiles every embedded schema; schemas are keyed by artifact type
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewSchemaValidator() (*schemaValidator, error) {
	entries, err := schemaFS.ReadDir("schemas")
	if err != nil {
		return nil, fmt.Errorf("failed to list schemas: %w", err)
	}

	v := &schemaValidator{schemas: make(map[string]*gojsonschema.Schema, len(entries))}
	for _, entry := range entries {
		data, err := schemaFS.ReadFile(path.Join("schemas", entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read schema %s: %w", entry.Name(), err)
		}

		schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to compile schema %s: %w", entry.Name(), err)
		}
		v.schemas[strings.TrimSuffix(entry.Name(), ".json")] = schema
	}

	return v, nil
}

// Has returns true if a schema is registered under the name
func (v *schemaValidator) Has(name string) bool {
	_, ok := v.schemas[name]
	return ok
}

// Validate checks the decoded document and returns sorted violation messages
func (v *schemaValidator) Validate(name string, document interface{}) ([]string, error) {
	schema, ok := v.schemas[name]
	if !ok {
		return nil, fmt.Errorf("no schema registered for %s", name)
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(document))
	if err != nil {
		return nil, fmt.Errorf("failed to validate against schema %s: %w", name, err)
	}

	violations := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		violations = append(violations, e.String())
	}
	sort.Strings(violations)
	return violations, nil
}
