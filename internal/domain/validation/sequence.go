package validation

import (
	"github.com/ochairo/regguard/internal/domain/entities"
)

// FailFast runs validators in order and stops at the first one that
// reports anything. Later checks assume earlier structural checks passed.
type FailFast struct {
	validators []Validator
}

// Sequence creates a fail-fast validator
func Sequence(validators ...Validator) *FailFast {
	return &FailFast{validators: validators}
}

// Then returns a new sequence with v appended
func (s *FailFast) Then(v Validator) *FailFast {
	next := make([]Validator, 0, len(s.validators)+1)
	next = append(next, s.validators...)
	return &FailFast{validators: append(next, v)}
}

// Validate returns the findings of the first failing validator, or an empty set
func (s *FailFast) Validate(path string, vctx entities.ValidationContext) entities.ErrorSet {
	for _, v := range s.validators {
		if errs := v.Validate(path, vctx); !errs.Empty() {
			return errs
		}
	}
	return entities.NewErrorSet()
}
