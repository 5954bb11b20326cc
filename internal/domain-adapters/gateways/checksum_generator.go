package gateways

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"

	"github.com/ochairo/regguard/internal/domain/entities"
)

// checksumGenerator computes SHA-256 digests for registry files and directories
type checksumGenerator struct {
	fs afero.Fs
}

// NewChecksumGenerator creates a generator over the OS filesystem
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewChecksumGenerator() *checksumGenerator {
	return NewChecksumGeneratorWithFs(afero.NewOsFs())
}

// NewChecksumGeneratorWithFs creates a generator over the given filesystem
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewChecksumGeneratorWithFs(fsys afero.Fs) *checksumGenerator {
	return &checksumGenerator{fs: fsys}
}

// Generate digests every input and merges the results. Inputs that do not
// exist contribute nothing. Files are keyed by their path relative to the
// parent of the input they were found under.
func (g *checksumGenerator) Generate(paths []string, mode entities.ChecksumMode) (entities.Checksums, error) {
	result := make(entities.Checksums)
	for _, p := range paths {
		entries, err := g.generateOne(p, mode)
		if err != nil {
			return nil, err
		}
		result.Merge(entries)
	}
	return result, nil
}

func (g *checksumGenerator) generateOne(input string, mode entities.ChecksumMode) (entities.Checksums, error) {
	root := filepath.Clean(input)
	info, err := g.fs.Stat(root)
	if errors.Is(err, fs.ErrNotExist) || os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", input, err)
	}

	parent := filepath.Dir(root)
	rootKey, err := relativeKey(parent, root)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		sum, err := g.CalculateChecksum(root)
		if err != nil {
			return nil, err
		}
		return entities.Checksums{rootKey: sum}, nil
	}

	files, err := g.listFiles(root)
	if err != nil {
		return nil, err
	}

	switch mode {
	case entities.ModeDetailed:
		entries := make(entities.Checksums, len(files))
		for _, f := range files {
			rel, err := filepath.Rel(root, f)
			if err != nil {
				return nil, fmt.Errorf("failed to relativize %s: %w", f, err)
			}
			key := path.Join(rootKey, filepath.ToSlash(rel))
			sum, err := g.CalculateChecksum(f)
			if err != nil {
				return nil, err
			}
			entries[key] = sum
		}
		return entries, nil
	case entities.ModeAggregate:
		h := sha256.New()
		for _, f := range files {
			if err := g.hashInto(h, f); err != nil {
				return nil, err
			}
		}
		return entities.Checksums{rootKey: hex.EncodeToString(h.Sum(nil))}, nil
	default:
		return nil, fmt.Errorf("unknown checksum mode: %s", mode)
	}
}

// listFiles returns every regular file beneath root, sorted by path
func (g *checksumGenerator) listFiles(root string) ([]string, error) {
	var files []string
	err := afero.Walk(g.fs, root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.Mode().IsRegular() {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	sort.Slice(files, func(i, j int) bool {
		return filepath.ToSlash(files[i]) < filepath.ToSlash(files[j])
	})
	return files, nil
}

// CalculateChecksum calculates the SHA256 checksum of a file
func (g *checksumGenerator) CalculateChecksum(filePath string) (string, error) {
	h := sha256.New()
	if err := g.hashInto(h, filePath); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func (g *checksumGenerator) hashInto(h hash.Hash, filePath string) error {
	f, err := g.fs.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	if _, err := io.Copy(h, f); err != nil {
		return fmt.Errorf("failed to hash file %s: %w", filePath, err)
	}
	return nil
}

func relativeKey(parent, p string) (string, error) {
	rel, err := filepath.Rel(parent, p)
	if err != nil {
		return "", fmt.Errorf("failed to relativize %s: %w", p, err)
	}
	if rel == "." {
		abs, err := filepath.Abs(p)
		if err != nil {
			return "", fmt.Errorf("failed to resolve %s: %w", p, err)
		}
		rel = filepath.Base(abs)
	}
	return filepath.ToSlash(rel), nil
}
