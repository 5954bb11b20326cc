// Package services contains the registry validation and change detection logic.
package services

import (
	"github.com/ochairo/regguard/internal/domain/entities"
	"github.com/ochairo/regguard/internal/domain/interfaces/gateways"
	"github.com/ochairo/regguard/internal/domain/validation"
)

// Loaders bundles the parse functions the validators read artifacts through.
// The composition root decides whether they are cached.
type Loaders struct {
	ProcessDefinition validation.Loader[*entities.ProcessDefinitionFile]
	Authorization     validation.Loader[*entities.Authorization]
	Integration       validation.Loader[*entities.Integration]
	ProcessGroups     validation.Loader[*entities.ProcessGroups]
	Roles             validation.Loader[*entities.RoleCatalog]
	Form              validation.Loader[*entities.FormDefinition]
	Settings          validation.Loader[*entities.RegistrySettings]
	Changelog         validation.Loader[*entities.Changelog]

	// YAMLDocument and JSONDocument decode raw artifacts for schema checks
	YAMLDocument validation.Loader[interface{}]
	JSONDocument validation.Loader[interface{}]
}

// SchemaConformance decodes an artifact and checks it against the schema
// registered for its artifact type
func SchemaConformance(decode validation.Loader[interface{}], schemas gateways.SchemaValidator) validation.Validator {
	return validation.ValidatorFunc(func(path string, vctx entities.ValidationContext) entities.ErrorSet {
		doc, err := decode(path)
		if err != nil {
			return entities.NewErrorSet(entities.NewValidationErrorWithCause(vctx, path, "failed to parse file", err))
		}

		violations, err := schemas.Validate(vctx.Type.String(), doc)
		if err != nil {
			return entities.NewErrorSet(entities.NewValidationErrorWithCause(vctx, path, "failed to check schema", err))
		}

		result := entities.NewErrorSet()
		for _, v := range violations {
			result.Add(entities.NewValidationError(vctx, path, "does not conform to schema: "+v))
		}
		return result
	})
}

// duplicates returns the values occurring more than once, sorted and unique
func duplicates(values []string) []string {
	seen := make(map[string]int, len(values))
	var dups []string
	for _, v := range values {
		seen[v]++
		if seen[v] == 2 {
			dups = append(dups, v)
		}
	}
	return dups
}
