// Package repositories defines interfaces for data access layers.
package repositories

import (
	"github.com/ochairo/regguard/internal/domain/entities"
)

// ProcessDefinitionParser reads BPMN process definitions
type ProcessDefinitionParser interface {
	ParseProcessDefinition(path string) (*entities.ProcessDefinitionFile, error)
}

// ChangelogParser reads database changelogs
type ChangelogParser interface {
	ParseChangelog(path string) (*entities.Changelog, error)
}

// FormParser reads UI form definitions
type FormParser interface {
	ParseForm(path string) (*entities.FormDefinition, error)
}

// ConfigParser reads the YAML configuration artifacts
type ConfigParser interface {
	ParseAuthorization(path string) (*entities.Authorization, error)
	ParseIntegration(path string) (*entities.Integration, error)
	ParseProcessGroups(path string) (*entities.ProcessGroups, error)
	ParseRoles(path string) (*entities.RoleCatalog, error)
	ParseSettings(path string) (*entities.RegistrySettings, error)
}

// DocumentDecoder decodes a raw artifact into a generic document for schema checks
type DocumentDecoder interface {
	Decode(path string) (interface{}, error)
}
