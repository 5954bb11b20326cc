package gateways

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/ochairo/regguard/internal/domain/entities"
)

// ArtifactFinder classifies the files of a registry directory into a bundle
type ArtifactFinder struct {
	layout map[entities.ArtifactType]string
}

// NewArtifactFinder creates a finder; layout overrides the default
// sub-directory of each artifact type
func NewArtifactFinder(layout map[entities.ArtifactType]string) *ArtifactFinder {
	resolved := make(map[entities.ArtifactType]string)
	for _, t := range entities.ArtifactTypes() {
		spec, _ := t.Spec()
		resolved[t] = spec.DefaultDir
	}
	for t, dir := range layout {
		if dir != "" {
			resolved[t] = dir
		}
	}
	return &ArtifactFinder{layout: resolved}
}

// Dir returns the sub-directory holding artifacts of the type
func (f *ArtifactFinder) Dir(t entities.ArtifactType) string {
	return f.layout[t]
}

// FindBundle walks the registry root and groups artifacts by type.
// Types whose directory is absent are left out of the bundle.
func (f *ArtifactFinder) FindBundle(registryDir string) (entities.Bundle, error) {
	info, err := os.Stat(registryDir)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("registry directory does not exist: %s", registryDir)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat registry directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("registry path is not a directory: %s", registryDir)
	}

	bundle := entities.NewBundle()
	for _, t := range entities.ArtifactTypes() {
		dir := filepath.Join(registryDir, f.layout[t])
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			continue
		}

		spec, _ := t.Spec()
		var paths []string
		if spec.Directory {
			paths, err = f.findDirectories(dir)
		} else {
			paths, err = f.FindRecursive(dir)
		}
		if err != nil {
			return nil, err
		}
		bundle.Add(t, paths...)
	}

	return bundle, nil
}

// FindRecursive returns every regular file beneath dir, sorted. Files with
// unexpected extensions are kept so the extension check can report them.
func (f *ArtifactFinder) FindRecursive(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if info.Mode().IsRegular() && filepath.Base(path)[0] != '.' {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}

	sort.Strings(files)
	return files, nil
}

// findDirectories returns the immediate sub-directories of dir, sorted
func (f *ArtifactFinder) findDirectories(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, filepath.Join(dir, entry.Name()))
		}
	}
	return dirs, nil
}
