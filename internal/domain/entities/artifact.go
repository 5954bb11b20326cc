// Package entities defines core domain models and data structures.
package entities

import (
	"path/filepath"
	"slices"
	"strings"
)

// ArtifactType identifies a kind of regulated registry file
type ArtifactType string

// Registry artifact types, in the order the dispatcher processes them
const (
	TypeProcessDefinition ArtifactType = "bpmn"
	TypeAuthorization     ArtifactType = "bp-auth"
	TypeIntegration       ArtifactType = "bp-trembita"
	TypeProcessGroups     ArtifactType = "bp-groups"
	TypeRoles             ArtifactType = "roles"
	TypeForm              ArtifactType = "forms"
	TypeSettings          ArtifactType = "settings"
	TypeChangelog         ArtifactType = "data-model"
	TypeExcerpt           ArtifactType = "excerpts"
)

// ArtifactSpec describes the file shape accepted for an artifact type
type ArtifactSpec struct {
	Type        ArtifactType
	Description string
	Extensions  []string
	Directory   bool   // artifacts of this type are directories, not files
	DefaultDir  string // sub-directory of the registry root holding the artifacts
}

var catalog = []ArtifactSpec{
	{Type: TypeProcessDefinition, Description: "business process definitions", Extensions: []string{".bpmn"}, DefaultDir: "bpmn"},
	{Type: TypeAuthorization, Description: "business process authorization", Extensions: []string{".yml", ".yaml"}, DefaultDir: "bp-auth"},
	{Type: TypeIntegration, Description: "external system integration", Extensions: []string{".yml", ".yaml"}, DefaultDir: "bp-trembita"},
	{Type: TypeProcessGroups, Description: "business process groups", Extensions: []string{".yml", ".yaml"}, DefaultDir: "bp-grouping"},
	{Type: TypeRoles, Description: "role catalogs", Extensions: []string{".yml", ".yaml"}, DefaultDir: "roles"},
	{Type: TypeForm, Description: "UI form definitions", Extensions: []string{".json"}, DefaultDir: "forms"},
	{Type: TypeSettings, Description: "registry settings", Extensions: []string{".yml", ".yaml"}, DefaultDir: "settings"},
	{Type: TypeChangelog, Description: "database changelogs", Extensions: []string{".xml"}, DefaultDir: "data-model"},
	{Type: TypeExcerpt, Description: "excerpt templates", Directory: true, DefaultDir: "excerpts"},
}

// ArtifactTypes returns every known artifact type in processing order
func ArtifactTypes() []ArtifactType {
	types := make([]ArtifactType, len(catalog))
	for i, spec := range catalog {
		types[i] = spec.Type
	}
	return types
}

// Spec returns the catalog entry for the type
func (t ArtifactType) Spec() (ArtifactSpec, bool) {
	for _, spec := range catalog {
		if spec.Type == t {
			return spec, true
		}
	}
	return ArtifactSpec{}, false
}

// IsValid returns true if the type is part of the catalog
func (t ArtifactType) IsValid() bool {
	_, ok := t.Spec()
	return ok
}

// Extensions returns the accepted file name extensions (empty for directory types)
func (t ArtifactType) Extensions() []string {
	spec, _ := t.Spec()
	return spec.Extensions
}

// Accepts reports whether the file name carries one of the accepted extensions
func (t ArtifactType) Accepts(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.Contains(t.Extensions(), ext)
}

func (t ArtifactType) String() string {
	return string(t)
}

// ParseArtifactType converts a string into a known artifact type
func ParseArtifactType(s string) (ArtifactType, bool) {
	t := ArtifactType(strings.TrimSpace(s))
	return t, t.IsValid()
}
