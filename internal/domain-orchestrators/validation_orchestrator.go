// Package orchestrators coordinates complex workflows across multiple domain services.
package orchestrators

import (
	"fmt"
	"time"

	"github.com/ochairo/regguard/internal/domain/entities"
	"github.com/ochairo/regguard/internal/domain/interfaces"
	"github.com/ochairo/regguard/internal/domain/services"
)

// BundleFinder discovers the artifacts of a registry directory
type BundleFinder interface {
	FindBundle(registryDir string) (entities.Bundle, error)
}

// ValidationOrchestrator dispatches every artifact of a bundle to the
// validators registered for its type and aggregates all findings
type ValidationOrchestrator struct {
	catalog *services.Catalog
	finder  BundleFinder
	logger  interfaces.Logger
}

// NewValidationOrchestrator creates a new validation orchestrator
func NewValidationOrchestrator(catalog *services.Catalog, finder BundleFinder, logger interfaces.Logger) *ValidationOrchestrator {
	return &ValidationOrchestrator{
		catalog: catalog,
		finder:  finder,
		logger:  logger.Named("dispatcher"),
	}
}

// ValidationResult contains the result of validating a bundle
type ValidationResult struct {
	Bundle   entities.Bundle
	Errors   entities.ErrorSet
	Skipped  []entities.ArtifactType
	Duration time.Duration
}

// Valid returns true if no finding was reported
func (r *ValidationResult) Valid() bool {
	return r.Errors.Empty()
}

// ValidateRegistry discovers the bundle under registryDir, applies overrides
// and validates it. Overrides replace discovery for their type.
func (o *ValidationOrchestrator) ValidateRegistry(registryDir string, overrides entities.Bundle) (*ValidationResult, error) {
	bundle := entities.NewBundle()
	if registryDir != "" {
		found, err := o.finder.FindBundle(registryDir)
		if err != nil {
			return nil, fmt.Errorf("failed to discover registry artifacts: %w", err)
		}
		bundle = found
	}
	for t, paths := range overrides {
		bundle[t] = paths
	}

	return o.Validate(bundle), nil
}

// Validate runs per-file, collection and cross-type validators over the
// bundle. No stage short-circuits another.
func (o *ValidationOrchestrator) Validate(bundle entities.Bundle) *ValidationResult {
	startTime := time.Now()
	result := &ValidationResult{Bundle: bundle, Errors: entities.NewErrorSet()}

	for _, t := range bundle.Types() {
		paths := bundle.Files(t)
		validators, ok := o.catalog.Types[t]
		if !ok {
			o.logger.Warn("no validators registered for artifact type",
				interfaces.F("type", t),
				interfaces.F("files", len(paths)))
			result.Skipped = append(result.Skipped, t)
			continue
		}

		vctx := entities.NewValidationContext(t)
		if validators.PerFile != nil {
			for _, path := range paths {
				result.Errors.Union(validators.PerFile.Validate(path, vctx))
			}
		}
		if validators.Collection != nil {
			result.Errors.Union(validators.Collection.ValidateAll(paths, vctx))
		}
	}

	for _, cross := range o.catalog.Cross {
		result.Errors.Union(cross.ValidateBundle(bundle))
	}

	result.Duration = time.Since(startTime)
	o.logger.Info("validation finished",
		interfaces.F("artifacts", bundle.Count()),
		interfaces.F("errors", result.Errors.Len()),
		interfaces.F("duration", result.Duration))
	return result
}

// GetValidationSummary returns a human-readable summary of the validation
func (r *ValidationResult) GetValidationSummary() string {
	if r.Valid() {
		return fmt.Sprintf("Registry is valid (%d artifacts checked in %v)", r.Bundle.Count(), r.Duration)
	}
	return fmt.Sprintf("Registry is invalid: %d errors across %d artifacts", r.Errors.Len(), r.Bundle.Count())
}
