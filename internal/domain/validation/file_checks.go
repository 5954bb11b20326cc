package validation

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ochairo/regguard/internal/domain/entities"
)

// FileExists reports artifacts that are missing or are not regular files
func FileExists() Validator {
	return ValidatorFunc(func(path string, vctx entities.ValidationContext) entities.ErrorSet {
		info, err := os.Stat(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return entities.NewErrorSet(entities.NewValidationError(vctx, path, "file does not exist"))
		case err != nil:
			return entities.NewErrorSet(entities.NewValidationErrorWithCause(vctx, path, "failed to stat file", err))
		case info.IsDir():
			return entities.NewErrorSet(entities.NewValidationError(vctx, path, "expected a file, found a directory"))
		}
		return entities.NewErrorSet()
	})
}

// HasExtension reports artifacts whose extension is not accepted for the type
func HasExtension() Validator {
	return ValidatorFunc(func(path string, vctx entities.ValidationContext) entities.ErrorSet {
		if vctx.Type.Accepts(path) {
			return entities.NewErrorSet()
		}
		return entities.NewErrorSet(entities.NewValidationError(vctx, path,
			fmt.Sprintf("unexpected file extension '%s', expected one of: %s",
				filepath.Ext(path), strings.Join(vctx.Type.Extensions(), ", "))))
	})
}

// NotEmpty reports artifacts with no content other than whitespace
func NotEmpty() Validator {
	return ValidatorFunc(func(path string, vctx entities.ValidationContext) entities.ErrorSet {
		//nolint:gosec // G304: path is a registry artifact selected by the user
		data, err := os.ReadFile(path)
		if err != nil {
			return entities.NewErrorSet(entities.NewValidationErrorWithCause(vctx, path, "failed to read file", err))
		}
		if len(strings.TrimSpace(string(data))) == 0 {
			return entities.NewErrorSet(entities.NewValidationError(vctx, path, "file is empty"))
		}
		return entities.NewErrorSet()
	})
}

// DirectoryExists reports directory artifacts that are missing or are files
func DirectoryExists() Validator {
	return ValidatorFunc(func(path string, vctx entities.ValidationContext) entities.ErrorSet {
		info, err := os.Stat(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return entities.NewErrorSet(entities.NewValidationError(vctx, path, "directory does not exist"))
		case err != nil:
			return entities.NewErrorSet(entities.NewValidationErrorWithCause(vctx, path, "failed to stat directory", err))
		case !info.IsDir():
			return entities.NewErrorSet(entities.NewValidationError(vctx, path, "expected a directory, found a file"))
		}
		return entities.NewErrorSet()
	})
}

// ContainsFile reports directory artifacts lacking a non-empty file with the given name
func ContainsFile(name string) Validator {
	return ValidatorFunc(func(path string, vctx entities.ValidationContext) entities.ErrorSet {
		target := filepath.Join(path, name)
		info, err := os.Stat(target)
		if err != nil || info.IsDir() {
			return entities.NewErrorSet(entities.NewValidationError(vctx, path, "missing "+name))
		}
		if info.Size() == 0 {
			return entities.NewErrorSet(entities.NewValidationError(vctx, path, name+" is empty"))
		}
		return entities.NewErrorSet()
	})
}

// StructuralChecks is the standard prefix of every file chain
func StructuralChecks() []Validator {
	return []Validator{FileExists(), HasExtension(), NotEmpty()}
}
