// Package json parses JSON registry artifacts.
package json

import (
	"fmt"
	"os"

	gojson "github.com/goccy/go-json"

	"github.com/ochairo/regguard/internal/domain/entities"
)

type jsonForm struct {
	Name       string          `json:"name"`
	Title      string          `json:"title"`
	Roles      []string        `json:"roles"`
	Components []jsonComponent `json:"components"`
}

type jsonComponent struct {
	Key        string          `json:"key"`
	Type       string          `json:"type"`
	Label      string          `json:"label"`
	Components []jsonComponent `json:"components"`
}

// FormParser parses UI form definitions
type FormParser struct{}

// NewFormParser creates a new form parser
func NewFormParser() *FormParser {
	return &FormParser{}
}

func (p *FormParser) readFile(filePath string) ([]byte, error) {
	//nolint:gosec // G304: filePath is a registry artifact selected by the user
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}
	return data, nil
}

// Decode parses a JSON file into a generic document suitable for schema checks
func (p *FormParser) Decode(filePath string) (interface{}, error) {
	data, err := p.readFile(filePath)
	if err != nil {
		return nil, err
	}
	var doc interface{}
	if err := gojson.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return doc, nil
}

// ParseForm parses a form definition; nested component containers are flattened
func (p *FormParser) ParseForm(filePath string) (*entities.FormDefinition, error) {
	data, err := p.readFile(filePath)
	if err != nil {
		return nil, err
	}

	var raw jsonForm
	if err := gojson.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	form := &entities.FormDefinition{
		Source: filePath,
		Name:   raw.Name,
		Title:  raw.Title,
		Roles:  raw.Roles,
	}
	form.Components = flatten(raw.Components, form.Components)
	return form, nil
}

func flatten(components []jsonComponent, out []entities.FormComponent) []entities.FormComponent {
	for _, c := range components {
		if c.Key != "" {
			out = append(out, entities.FormComponent{Key: c.Key, Type: c.Type, Label: c.Label})
		}
		out = flatten(c.Components, out)
	}
	return out
}
