// Package validation provides the composable building blocks every registry
// artifact check is assembled from.
package validation

import (
	"github.com/ochairo/regguard/internal/domain/entities"
)

// Validator checks one artifact. Domain problems are returned as findings;
// an empty set means the artifact passed.
type Validator interface {
	Validate(path string, vctx entities.ValidationContext) entities.ErrorSet
}

// ValidatorFunc adapts a function to the Validator interface
type ValidatorFunc func(path string, vctx entities.ValidationContext) entities.ErrorSet

// Validate calls f(path, vctx)
func (f ValidatorFunc) Validate(path string, vctx entities.ValidationContext) entities.ErrorSet {
	return f(path, vctx)
}

// CollectionValidator checks an invariant across every artifact of one type
type CollectionValidator interface {
	ValidateAll(paths []string, vctx entities.ValidationContext) entities.ErrorSet
}

// CollectionValidatorFunc adapts a function to the CollectionValidator interface
type CollectionValidatorFunc func(paths []string, vctx entities.ValidationContext) entities.ErrorSet

// ValidateAll calls f(paths, vctx)
func (f CollectionValidatorFunc) ValidateAll(paths []string, vctx entities.ValidationContext) entities.ErrorSet {
	return f(paths, vctx)
}

// CrossValidator checks referential integrity between artifact types
type CrossValidator interface {
	ValidateBundle(bundle entities.Bundle) entities.ErrorSet
}

// CrossValidatorFunc adapts a function to the CrossValidator interface
type CrossValidatorFunc func(bundle entities.Bundle) entities.ErrorSet

// ValidateBundle calls f(bundle)
func (f CrossValidatorFunc) ValidateBundle(bundle entities.Bundle) entities.ErrorSet {
	return f(bundle)
}
