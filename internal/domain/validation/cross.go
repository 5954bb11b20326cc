package validation

import (
	"fmt"

	"github.com/ochairo/regguard/internal/domain/entities"
)

// ReferenceSource names an artifact type whose files reference identifiers
type ReferenceSource struct {
	Type    entities.ArtifactType
	Extract KeyExtractor
}

// ReferenceProvider builds the lookup of identifiers that exist in a bundle
type ReferenceProvider func(bundle entities.Bundle) map[string]bool

// References checks that every identifier referenced by the source types
// exists in the lookup built by the provider.
type References struct {
	label    string
	provider ReferenceProvider
	sources  []ReferenceSource
}

// NewReferences creates a cross-type validator
func NewReferences(label string, provider ReferenceProvider, sources ...ReferenceSource) *References {
	return &References{label: label, provider: provider, sources: sources}
}

// ValidateBundle builds the lookup once and streams the referencing files against it
func (r *References) ValidateBundle(bundle entities.Bundle) entities.ErrorSet {
	known := r.provider(bundle)
	result := entities.NewErrorSet()

	for _, src := range r.sources {
		vctx := entities.NewValidationContext(src.Type)
		for _, path := range bundle.Files(src.Type) {
			refs, err := src.Extract(path)
			if err != nil {
				continue
			}

			missing := make(map[string]bool)
			for _, ref := range refs {
				if ref != "" && !known[ref] {
					missing[ref] = true
				}
			}
			if len(missing) == 0 {
				continue
			}

			names := make([]string, 0, len(missing))
			for name := range missing {
				names = append(names, name)
			}
			result.Add(entities.NewValidationError(vctx, path,
				fmt.Sprintf("references unknown %s: %s", r.label, entities.JoinSorted(names))))
		}
	}
	return result
}

// KeysFrom builds a provider from the identifiers declared by files of one type,
// seeded with a static allow-list that always counts as existing.
func KeysFrom(t entities.ArtifactType, extract KeyExtractor, always ...string) ReferenceProvider {
	return func(bundle entities.Bundle) map[string]bool {
		known := make(map[string]bool, len(always))
		for _, k := range always {
			known[k] = true
		}
		for _, path := range bundle.Files(t) {
			keys, err := extract(path)
			if err != nil {
				continue
			}
			for _, k := range keys {
				known[k] = true
			}
		}
		return known
	}
}
