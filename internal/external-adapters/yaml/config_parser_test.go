package yaml

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestConfigParser_ParseAuthorization(t *testing.T) {
	path := writeFile(t, "auth.yml", `authorization:
  realm: officer
  process_definitions:
    - process_definition_id: add-lab
      process_name: Add lab
      roles:
        - officer
        - auditor
    - process_definition_id: update-lab
`)

	auth, err := NewConfigParser().ParseAuthorization(path)
	require.NoError(t, err)

	assert.Equal(t, path, auth.Source)
	assert.Equal(t, "officer", auth.Realm)
	require.Len(t, auth.ProcessDefinitions, 2)
	assert.Equal(t, "add-lab", auth.ProcessDefinitions[0].ProcessDefinitionID)
	assert.Equal(t, []string{"officer", "auditor"}, auth.ProcessDefinitions[0].Roles)
	assert.Empty(t, auth.ProcessDefinitions[1].Roles)
}

func TestConfigParser_ParseIntegration(t *testing.T) {
	path := writeFile(t, "trembita.yml", `trembita:
  process_definitions:
    - process_definition_id: add-lab
      start_vars: [edrpou, name]
`)

	integration, err := NewConfigParser().ParseIntegration(path)
	require.NoError(t, err)
	require.Len(t, integration.ProcessDefinitions, 1)
	assert.Equal(t, []string{"edrpou", "name"}, integration.ProcessDefinitions[0].StartVars)
}

func TestConfigParser_ParseProcessGroups(t *testing.T) {
	path := writeFile(t, "groups.yml", `groups:
  - name: Labs
    process_definitions: [add-lab, update-lab]
ungrouped: [search]
`)

	groups, err := NewConfigParser().ParseProcessGroups(path)
	require.NoError(t, err)
	require.Len(t, groups.Groups, 1)
	assert.Equal(t, "Labs", groups.Groups[0].Name)
	assert.Equal(t, []string{"search"}, groups.Ungrouped)
}

func TestConfigParser_ParseRoles(t *testing.T) {
	path := writeFile(t, "officer.yml", `roles:
  - name: head-officer
    description: Head of department
`)

	catalog, err := NewConfigParser().ParseRoles(path)
	require.NoError(t, err)
	require.Len(t, catalog.Roles, 1)
	assert.Equal(t, "head-officer", catalog.Roles[0].Name)
}

func TestConfigParser_ParseSettings(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		wantPresent bool
		wantVersion string
		wantAudit   int
	}{
		{
			name: "full settings",
			content: `settings:
  general:
    package: ua.gov.registry
    register: registry
    version: 1.2.0
  retention:
    audit_days: 30
`,
			wantPresent: true,
			wantVersion: "1.2.0",
			wantAudit:   30,
		},
		{
			name:        "missing settings block",
			content:     "other: true\n",
			wantPresent: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "settings.yaml", tt.content)
			settings, err := NewConfigParser().ParseSettings(path)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPresent, settings.Present)
			assert.Equal(t, tt.wantVersion, settings.Version)
			assert.Equal(t, tt.wantAudit, settings.Retention.AuditDays)
		})
	}
}

func TestConfigParser_InvalidYAML(t *testing.T) {
	path := writeFile(t, "broken.yml", "roles: [\n")

	_, err := NewConfigParser().ParseRoles(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestConfigParser_MissingFile(t *testing.T) {
	_, err := NewConfigParser().ParseRoles(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestDecodeDocument_NormalizesKeys(t *testing.T) {
	doc, err := DecodeDocument([]byte("1: one\nnested:\n  2: two\n"))
	require.NoError(t, err)

	m, ok := doc.(map[string]interface{})
	require.True(t, ok, "document should be a string-keyed map")
	assert.Equal(t, "one", m["1"])
	nested, ok := m["nested"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "two", nested["2"])
}
