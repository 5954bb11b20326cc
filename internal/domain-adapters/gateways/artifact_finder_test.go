package gateways

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ochairo/regguard/internal/domain/entities"
)

func touch(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestArtifactFinder_FindBundle(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "bpmn", "b.bpmn"), "x")
	touch(t, filepath.Join(root, "bpmn", "a.bpmn"), "x")
	touch(t, filepath.Join(root, "bpmn", ".hidden"), "x")
	touch(t, filepath.Join(root, "roles", "officer.yml"), "x")
	touch(t, filepath.Join(root, "excerpts", "certificate", "index.html.ftl"), "x")
	touch(t, filepath.Join(root, "unrelated", "file.txt"), "x")

	bundle, err := NewArtifactFinder(nil).FindBundle(root)
	require.NoError(t, err)

	assert.Equal(t, []entities.ArtifactType{
		entities.TypeProcessDefinition, entities.TypeRoles, entities.TypeExcerpt,
	}, bundle.Types())
	assert.Equal(t, []string{
		filepath.Join(root, "bpmn", "a.bpmn"),
		filepath.Join(root, "bpmn", "b.bpmn"),
	}, bundle.Files(entities.TypeProcessDefinition))
	assert.Equal(t, []string{filepath.Join(root, "excerpts", "certificate")}, bundle.Files(entities.TypeExcerpt))
	assert.Equal(t, 4, bundle.Count())
}

func TestArtifactFinder_LayoutOverride(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "processes", "a.bpmn"), "x")

	finder := NewArtifactFinder(map[entities.ArtifactType]string{entities.TypeProcessDefinition: "processes"})
	bundle, err := finder.FindBundle(root)
	require.NoError(t, err)

	assert.Equal(t, "processes", finder.Dir(entities.TypeProcessDefinition))
	assert.Equal(t, "roles", finder.Dir(entities.TypeRoles))
	assert.Len(t, bundle.Files(entities.TypeProcessDefinition), 1)
}

func TestArtifactFinder_MissingRoot(t *testing.T) {
	_, err := NewArtifactFinder(nil).FindBundle(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}
