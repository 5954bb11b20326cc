package entities

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError is a single finding produced by a validator.
// It is comparable: two findings with identical fields are the same finding.
type ValidationError struct {
	Type    ArtifactType
	File    string
	Message string
	Cause   string
}

// NewValidationError creates a finding for the file in the given context
func NewValidationError(vctx ValidationContext, file, message string) ValidationError {
	return ValidationError{Type: vctx.Type, File: file, Message: message}
}

// NewValidationErrorWithCause creates a finding that carries an underlying cause
func NewValidationErrorWithCause(vctx ValidationContext, file, message string, cause error) ValidationError {
	ve := NewValidationError(vctx, file, message)
	if cause != nil {
		ve.Cause = cause.Error()
	}
	return ve
}

func (e ValidationError) String() string {
	msg := fmt.Sprintf("[%s] %s: %s", e.Type, e.File, e.Message)
	if e.Cause != "" {
		msg += " (" + e.Cause + ")"
	}
	return msg
}

// ValidationContext carries the artifact type through a validation call
type ValidationContext struct {
	Type ArtifactType
}

// NewValidationContext creates a context for the artifact type
func NewValidationContext(t ArtifactType) ValidationContext {
	return ValidationContext{Type: t}
}

// ErrorSet is a set of findings
type ErrorSet map[ValidationError]struct{}

// NewErrorSet creates a set holding the given findings
func NewErrorSet(errs ...ValidationError) ErrorSet {
	set := make(ErrorSet, len(errs))
	for _, e := range errs {
		set[e] = struct{}{}
	}
	return set
}

// Add inserts findings into the set
func (s ErrorSet) Add(errs ...ValidationError) {
	for _, e := range errs {
		s[e] = struct{}{}
	}
}

// Union inserts every finding of other into the set
func (s ErrorSet) Union(other ErrorSet) {
	for e := range other {
		s[e] = struct{}{}
	}
}

// Contains returns true if the finding is in the set
func (s ErrorSet) Contains(e ValidationError) bool {
	_, ok := s[e]
	return ok
}

// Len returns the number of findings
func (s ErrorSet) Len() int {
	return len(s)
}

// Empty returns true if the set has no findings
func (s ErrorSet) Empty() bool {
	return len(s) == 0
}

// Sorted returns the findings ordered by type, file, message and cause
func (s ErrorSet) Sorted() []ValidationError {
	out := make([]ValidationError, 0, len(s))
	for e := range s {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Message != b.Message {
			return a.Message < b.Message
		}
		return a.Cause < b.Cause
	})
	return out
}

// JoinSorted renders names as a sorted, comma-separated list so that
// messages built from the same names compare equal.
func JoinSorted(names []string) string {
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)
	return strings.Join(sorted, ", ")
}
