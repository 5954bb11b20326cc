package validation

import (
	"github.com/ochairo/regguard/internal/domain/entities"
)

// Loader deserializes an artifact into a typed configuration object
type Loader[T any] func(path string) (T, error)

// Check is a semantic check over an already loaded configuration object
type Check[T any] interface {
	Check(cfg T, path string, vctx entities.ValidationContext) entities.ErrorSet
}

// CheckFunc adapts a function to the Check interface
type CheckFunc[T any] func(cfg T, path string, vctx entities.ValidationContext) entities.ErrorSet

// Check calls f(cfg, path, vctx)
func (f CheckFunc[T]) Check(cfg T, path string, vctx entities.ValidationContext) entities.ErrorSet {
	return f(cfg, path, vctx)
}

// TypedValidator loads an artifact once and runs every semantic check
// against the result, reporting all violations together.
type TypedValidator[T any] struct {
	load   Loader[T]
	checks []Check[T]
}

// Typed creates an accumulating validator over a typed configuration
func Typed[T any](load Loader[T], checks ...Check[T]) *TypedValidator[T] {
	return &TypedValidator[T]{load: load, checks: checks}
}

// Validate loads the artifact and unions the findings of every check
func (v *TypedValidator[T]) Validate(path string, vctx entities.ValidationContext) entities.ErrorSet {
	cfg, err := v.load(path)
	if err != nil {
		return entities.NewErrorSet(
			entities.NewValidationErrorWithCause(vctx, path, "failed to load "+vctx.Type.String()+" file", err),
		)
	}

	result := entities.NewErrorSet()
	for _, c := range v.checks {
		result.Union(c.Check(cfg, path, vctx))
	}
	return result
}
