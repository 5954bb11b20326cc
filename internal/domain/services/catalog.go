package services

import (
	"fmt"

	"github.com/ochairo/regguard/internal/domain/entities"
	"github.com/ochairo/regguard/internal/domain/interfaces"
	"github.com/ochairo/regguard/internal/domain/interfaces/gateways"
	"github.com/ochairo/regguard/internal/domain/validation"
)

// ExcerptTemplate is the file every excerpt directory must provide
const ExcerptTemplate = "index.html.ftl"

// TypeValidators holds the validators registered for one artifact type.
// Either field may be nil.
type TypeValidators struct {
	PerFile    validation.Validator
	Collection validation.CollectionValidator
}

// Catalog is the complete set of validators the dispatcher runs
type Catalog struct {
	Types map[entities.ArtifactType]TypeValidators
	Cross []validation.CrossValidator
}

// CatalogOptions carries the tunables the catalog is built from
type CatalogOptions struct {
	DefaultRoles     []string
	RetentionMinDays int
}

// NewCatalog assembles the validator chains for every known artifact type
func NewCatalog(l Loaders, schemas gateways.SchemaValidator, opts CatalogOptions, logger interfaces.Logger) (*Catalog, error) {
	settingsEngine, err := NewSettingsEngine()
	if err != nil {
		return nil, fmt.Errorf("failed to build settings rules: %w", err)
	}

	chain := func(t entities.ArtifactType, steps ...validation.Validator) validation.Validator {
		all := append(validation.StructuralChecks(), steps...)
		return validation.Logged(t.String(), validation.Sequence(all...), logger)
	}
	yamlSchema := SchemaConformance(l.YAMLDocument, schemas)

	types := map[entities.ArtifactType]TypeValidators{
		entities.TypeProcessDefinition: {
			PerFile:    chain(entities.TypeProcessDefinition, validation.Typed(l.ProcessDefinition, ProcessDefinitionChecks()...)),
			Collection: validation.NewUniqueKeys("process id", ProcessIDs(l.ProcessDefinition)),
		},
		entities.TypeAuthorization: {
			PerFile: chain(entities.TypeAuthorization, yamlSchema, validation.Typed(l.Authorization, AuthorizationChecks()...)),
		},
		entities.TypeIntegration: {
			PerFile: chain(entities.TypeIntegration, yamlSchema, validation.Typed(l.Integration, IntegrationChecks()...)),
		},
		entities.TypeProcessGroups: {
			PerFile: chain(entities.TypeProcessGroups, yamlSchema, validation.Typed(l.ProcessGroups, ProcessGroupChecks()...)),
		},
		entities.TypeRoles: {
			PerFile:    chain(entities.TypeRoles, yamlSchema, validation.Typed(l.Roles, RoleChecks()...)),
			Collection: validation.NewUniqueKeys("role", DeclaredRoles(l.Roles)),
		},
		entities.TypeForm: {
			PerFile: chain(entities.TypeForm,
				SchemaConformance(l.JSONDocument, schemas),
				validation.Typed(l.Form, FormChecks()...)),
			Collection: validation.NewUniqueKeys("form name", FormNames(l.Form)),
		},
		entities.TypeSettings: {
			PerFile: chain(entities.TypeSettings, yamlSchema,
				validation.Typed(l.Settings, SettingsRules(settingsEngine, opts.RetentionMinDays, logger))),
		},
		entities.TypeChangelog: {
			PerFile: chain(entities.TypeChangelog, validation.Typed(l.Changelog, ChangelogChecks()...)),
		},
		entities.TypeExcerpt: {
			PerFile: validation.Logged(entities.TypeExcerpt.String(),
				validation.Sequence(validation.DirectoryExists(), validation.ContainsFile(ExcerptTemplate)), logger),
		},
	}

	return &Catalog{
		Types: types,
		Cross: []validation.CrossValidator{
			ProcessReferences(l),
			RoleReferences(l, opts.DefaultRoles),
		},
	}, nil
}
