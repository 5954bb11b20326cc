package validation

import (
	"fmt"
	"sort"

	"github.com/ochairo/regguard/internal/domain/entities"
)

// KeyExtractor returns the identifiers an artifact declares. Artifacts that
// fail to parse are skipped; the per-file chain reports them.
type KeyExtractor func(path string) ([]string, error)

// UniqueKeys reports every identifier declared more than once across all
// artifacts of one type. Each duplicated identifier yields one finding.
type UniqueKeys struct {
	label   string
	extract KeyExtractor
}

// NewUniqueKeys creates a collection validator; label names the identifier in messages
func NewUniqueKeys(label string, extract KeyExtractor) *UniqueKeys {
	return &UniqueKeys{label: label, extract: extract}
}

// ValidateAll indexes identifiers across paths and reports duplicates
func (u *UniqueKeys) ValidateAll(paths []string, vctx entities.ValidationContext) entities.ErrorSet {
	occurrences := make(map[string]int)
	files := make(map[string]map[string]bool)

	for _, path := range paths {
		keys, err := u.extract(path)
		if err != nil {
			continue
		}
		for _, key := range keys {
			if key == "" {
				continue
			}
			occurrences[key]++
			if files[key] == nil {
				files[key] = make(map[string]bool)
			}
			files[key][path] = true
		}
	}

	result := entities.NewErrorSet()
	for key, n := range occurrences {
		if n < 2 {
			continue
		}
		declaredIn := make([]string, 0, len(files[key]))
		for f := range files[key] {
			declaredIn = append(declaredIn, f)
		}
		sort.Strings(declaredIn)
		result.Add(entities.NewValidationError(vctx, declaredIn[0],
			fmt.Sprintf("duplicate %s '%s' declared in: %s", u.label, key, entities.JoinSorted(declaredIn))))
	}
	return result
}
