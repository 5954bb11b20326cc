package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bpmnFixture = `<?xml version="1.0" encoding="UTF-8"?>
<bpmn:definitions xmlns:bpmn="http://www.omg.org/spec/BPMN/20100524/MODEL" id="defs">
  <bpmn:process id="add-lab" name="Add lab" isExecutable="true"/>
</bpmn:definitions>
`

const settingsFixture = `settings:
  general:
    package: ua.gov.lab
    register: lab-registry
    version: 1.0.0
  retention:
    audit_days: 365
`

// writeRegistry creates a valid registry under a temp dir
func writeRegistry(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"bpmn/add-lab.bpmn":          bpmnFixture,
		"bp-auth/officer.yml":        "authorization:\n  realm: officer\n  process_definitions:\n    - process_definition_id: add-lab\n      roles: [officer, lab-head]\n",
		"bp-grouping/groups.yml":     "groups:\n  - name: labs\n    process_definitions: [add-lab]\n",
		"roles/officer.yml":          "roles:\n  - name: lab-head\n",
		"forms/add-lab.json":         `{"name": "add-lab", "roles": ["officer"], "components": [{"key": "name", "type": "textfield"}]}`,
		"settings/settings.yml":      settingsFixture,
		"data-model/changelog.xml":   `<databaseChangeLog><changeSet id="1" author="dev"/></databaseChangeLog>`,
		"excerpts/lab/index.html.ftl": "<html>${name}</html>",
	}
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	return root
}

// isolate keeps tests away from user config and points the store at a temp file
func isolate(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("REGGUARD_STORE_BACKEND", "sqlite")
	t.Setenv("REGGUARD_STORE_SQLITE_PATH", filepath.Join(t.TempDir(), "baselines.db"))
	t.Setenv("REGGUARD_LOG_LEVEL", "error")
}

func execute(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestValidate_ValidRegistry(t *testing.T) {
	isolate(t)
	root := writeRegistry(t)

	code, stdout, stderr := execute("validate", root)

	assert.Equal(t, exitOK, code, stderr)
	assert.Contains(t, stdout, "Registry is valid")
}

func TestValidate_Findings(t *testing.T) {
	isolate(t)
	root := writeRegistry(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "roles", "extra.yml"), []byte("roles:\n  - name: lab-head\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "bp-auth", "citizen.yml"),
		[]byte("authorization:\n  realm: citizen\n  process_definitions:\n    - process_definition_id: missing\n      roles: [auditor]\n"), 0o600))

	code, stdout, _ := execute("validate", root)

	assert.Equal(t, exitValidationFailed, code)
	assert.Contains(t, stdout, "duplicate role 'lab-head' declared in:")
	assert.Contains(t, stdout, "references unknown process definitions: missing")
	assert.Contains(t, stdout, "references unknown roles: auditor")
}

func TestValidate_TypeOverride(t *testing.T) {
	isolate(t)
	root := writeRegistry(t)
	bad := filepath.Join(root, "elsewhere.yml")
	require.NoError(t, os.WriteFile(bad, []byte("roles:\n  - name: Bad_Name\n"), 0o600))

	code, stdout, _ := execute("validate", "--roles", bad)

	assert.Equal(t, exitValidationFailed, code)
	assert.Contains(t, stdout, "role name 'Bad_Name' must match")
	assert.NotContains(t, stdout, "bp-auth")
}

func TestValidate_MissingRegistry(t *testing.T) {
	isolate(t)

	code, _, stderr := execute("validate", filepath.Join(t.TempDir(), "nope"))

	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, "registry directory does not exist")
}

func TestPlanAndSave(t *testing.T) {
	isolate(t)
	root := writeRegistry(t)
	forms := filepath.Join(root, "forms")

	code, stdout, stderr := execute("plan", "deploy-forms", "--file="+forms)
	require.Equal(t, exitOK, code, stderr)
	assert.Equal(t, "PlanCommandExecutionStart true PlanCommandExecutionEnd\n", stdout)

	code, stdout, _ = execute("save", "deploy-forms", "--file-detailed="+forms)
	require.Equal(t, exitOK, code)
	assert.Equal(t, "PlanCommandExecutionStart forms/add-lab.json PlanCommandExecutionEnd\n", stdout)

	code, stdout, _ = execute("plan", "deploy-forms", "--file-detailed="+forms)
	require.Equal(t, exitOK, code)
	assert.Equal(t, "PlanCommandExecutionStart  PlanCommandExecutionEnd\n", stdout)

	require.NoError(t, os.WriteFile(filepath.Join(forms, "new.json"), []byte(`{"name": "new", "components": []}`), 0o600))
	code, stdout, _ = execute("plan", "deploy-forms", "--file-detailed="+forms)
	require.Equal(t, exitOK, code)
	assert.Equal(t, "PlanCommandExecutionStart forms/new.json PlanCommandExecutionEnd\n", stdout)
}

func TestPlan_InvocationErrors(t *testing.T) {
	isolate(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing operation", []string{"plan", "--file=a"}, "accepts 1 arg"},
		{"no inputs", []string{"plan", "op"}, "at least one input path"},
		{"both modes", []string{"save", "op", "--file=a", "--file-detailed=b"}, "mutually exclusive"},
		{"unknown command", []string{"promote"}, "unknown command"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := execute(tt.args...)
			assert.Equal(t, exitError, code)
			assert.True(t, strings.Contains(stderr, tt.want), stderr)
		})
	}
}

func TestInvalidConfiguration(t *testing.T) {
	isolate(t)
	t.Setenv("REGGUARD_STORE_BACKEND", "s3")

	code, _, stderr := execute("plan", "op", "--file=a")

	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, "invalid configuration")
}
