// Package yaml provides YAML-based parsing of registry configuration artifacts.
package yaml

import (
	"fmt"
	"os"

	"github.com/ochairo/regguard/internal/domain/entities"
	"gopkg.in/yaml.v3"
)

// yamlAuthorization represents the raw bp-auth structure
type yamlAuthorization struct {
	Authorization struct {
		Realm              string `yaml:"realm"`
		ProcessDefinitions []struct {
			ProcessDefinitionID string   `yaml:"process_definition_id"`
			ProcessName         string   `yaml:"process_name"`
			Roles               []string `yaml:"roles"`
		} `yaml:"process_definitions"`
	} `yaml:"authorization"`
}

type yamlIntegration struct {
	Trembita struct {
		ProcessDefinitions []struct {
			ProcessDefinitionID string   `yaml:"process_definition_id"`
			StartVars           []string `yaml:"start_vars"`
		} `yaml:"process_definitions"`
	} `yaml:"trembita"`
}

type yamlProcessGroups struct {
	Groups []struct {
		Name               string   `yaml:"name"`
		ProcessDefinitions []string `yaml:"process_definitions"`
	} `yaml:"groups"`
	Ungrouped []string `yaml:"ungrouped"`
}

type yamlRoles struct {
	Roles []struct {
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
	} `yaml:"roles"`
}

type yamlSettings struct {
	Settings *struct {
		General struct {
			Package  string `yaml:"package"`
			Register string `yaml:"register"`
			Version  string `yaml:"version"`
			Title    string `yaml:"title"`
		} `yaml:"general"`
		Retention struct {
			AuditDays    int `yaml:"audit_days"`
			RequestsDays int `yaml:"requests_days"`
		} `yaml:"retention"`
	} `yaml:"settings"`
}

// ConfigParser parses YAML registry configuration files
type ConfigParser struct{}

// NewConfigParser creates a new YAML parser
func NewConfigParser() *ConfigParser {
	return &ConfigParser{}
}

func (p *ConfigParser) readFile(filePath string) ([]byte, error) {
	//nolint:gosec // G304: filePath is a registry artifact selected by the user
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}
	return data, nil
}

func (p *ConfigParser) unmarshalFile(filePath string, out interface{}) error {
	data, err := p.readFile(filePath)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	return nil
}

// Decode parses a YAML file into a generic document suitable for schema checks
func (p *ConfigParser) Decode(filePath string) (interface{}, error) {
	data, err := p.readFile(filePath)
	if err != nil {
		return nil, err
	}
	return DecodeDocument(data)
}

// DecodeDocument parses YAML bytes into maps with string keys
func DecodeDocument(data []byte) (interface{}, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return normalize(doc), nil
}

// normalize converts map[interface{}]interface{} nodes produced for
// non-string keys so the document can be serialized as JSON
func normalize(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		for k, val := range t {
			t[k] = normalize(val)
		}
		return t
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalize(val)
		}
		return out
	case []interface{}:
		for i, val := range t {
			t[i] = normalize(val)
		}
		return t
	default:
		return v
	}
}

// ParseAuthorization parses a bp-auth file
func (p *ConfigParser) ParseAuthorization(filePath string) (*entities.Authorization, error) {
	var raw yamlAuthorization
	if err := p.unmarshalFile(filePath, &raw); err != nil {
		return nil, err
	}

	auth := &entities.Authorization{Source: filePath, Realm: raw.Authorization.Realm}
	for _, pd := range raw.Authorization.ProcessDefinitions {
		auth.ProcessDefinitions = append(auth.ProcessDefinitions, entities.ProcessGrant{
			ProcessDefinitionID: pd.ProcessDefinitionID,
			ProcessName:         pd.ProcessName,
			Roles:               pd.Roles,
		})
	}
	return auth, nil
}

// ParseIntegration parses a bp-trembita file
func (p *ConfigParser) ParseIntegration(filePath string) (*entities.Integration, error) {
	var raw yamlIntegration
	if err := p.unmarshalFile(filePath, &raw); err != nil {
		return nil, err
	}

	integration := &entities.Integration{Source: filePath}
	for _, pd := range raw.Trembita.ProcessDefinitions {
		integration.ProcessDefinitions = append(integration.ProcessDefinitions, entities.IntegratedProcess{
			ProcessDefinitionID: pd.ProcessDefinitionID,
			StartVars:           pd.StartVars,
		})
	}
	return integration, nil
}

// ParseProcessGroups parses a bp-grouping file
func (p *ConfigParser) ParseProcessGroups(filePath string) (*entities.ProcessGroups, error) {
	var raw yamlProcessGroups
	if err := p.unmarshalFile(filePath, &raw); err != nil {
		return nil, err
	}

	groups := &entities.ProcessGroups{Source: filePath, Ungrouped: raw.Ungrouped}
	for _, g := range raw.Groups {
		groups.Groups = append(groups.Groups, entities.ProcessGroup{
			Name:               g.Name,
			ProcessDefinitions: g.ProcessDefinitions,
		})
	}
	return groups, nil
}

// ParseRoles parses a role catalog file
func (p *ConfigParser) ParseRoles(filePath string) (*entities.RoleCatalog, error) {
	var raw yamlRoles
	if err := p.unmarshalFile(filePath, &raw); err != nil {
		return nil, err
	}

	catalog := &entities.RoleCatalog{Source: filePath}
	for _, r := range raw.Roles {
		catalog.Roles = append(catalog.Roles, entities.Role{Name: r.Name, Description: r.Description})
	}
	return catalog, nil
}

// ParseSettings parses the registry settings file
func (p *ConfigParser) ParseSettings(filePath string) (*entities.RegistrySettings, error) {
	data, err := p.readFile(filePath)
	if err != nil {
		return nil, err
	}
	return ParseSettingsBytes(filePath, data)
}

// ParseSettingsBytes parses settings YAML bytes
func ParseSettingsBytes(source string, data []byte) (*entities.RegistrySettings, error) {
	var raw yamlSettings
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	settings := &entities.RegistrySettings{Source: source}
	if raw.Settings == nil {
		return settings, nil
	}

	settings.Present = true
	settings.Package = raw.Settings.General.Package
	settings.Register = raw.Settings.General.Register
	settings.Version = raw.Settings.General.Version
	settings.Title = raw.Settings.General.Title
	settings.Retention = entities.RetentionPolicy{
		AuditDays:    raw.Settings.Retention.AuditDays,
		RequestsDays: raw.Settings.Retention.RequestsDays,
	}
	return settings, nil
}
