// Package rules implements a small forward-chaining rule engine. Rules are
// evaluated in ascending priority against one fact value and write their
// findings into a shared outcome.
package rules

import (
	"fmt"
	"sort"

	"github.com/ochairo/regguard/internal/domain/entities"
)

// Signal tells the engine whether to keep evaluating rules
type Signal int

// Rule signals
const (
	Continue Signal = iota
	Stop
)

// Outcome is the accumulator shared by every rule of one run
type Outcome struct {
	Errors   entities.ErrorSet
	Warnings []string
}

// Fail records a finding
func (o *Outcome) Fail(e entities.ValidationError) {
	o.Errors.Add(e)
}

// Warn records a warning
func (o *Outcome) Warn(msg string) {
	o.Warnings = append(o.Warnings, msg)
}

// Rule is a guard/action pair with a fixed priority
type Rule[F any] struct {
	Name     string
	Priority int
	When     func(facts F) bool
	Then     func(facts F, out *Outcome) Signal
}

// Engine evaluates an ordered rule set
type Engine[F any] struct {
	rules []Rule[F]
}

// NewEngine creates an engine. Priorities must be unique.
func NewEngine[F any](rules ...Rule[F]) (*Engine[F], error) {
	sorted := append([]Rule[F](nil), rules...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority < sorted[j].Priority
	})

	for i, r := range sorted {
		if r.When == nil || r.Then == nil {
			return nil, fmt.Errorf("rule %q must define both guard and action", r.Name)
		}
		if i > 0 && sorted[i-1].Priority == r.Priority {
			return nil, fmt.Errorf("rules %q and %q share priority %d", sorted[i-1].Name, r.Name, r.Priority)
		}
	}

	return &Engine[F]{rules: sorted}, nil
}

// Run evaluates every rule whose guard holds until one signals Stop
func (e *Engine[F]) Run(facts F) *Outcome {
	out := &Outcome{Errors: entities.NewErrorSet()}
	for _, r := range e.rules {
		if !r.When(facts) {
			continue
		}
		if r.Then(facts, out) == Stop {
			break
		}
	}
	return out
}

// Names returns rule names in evaluation order
func (e *Engine[F]) Names() []string {
	names := make([]string, len(e.rules))
	for i, r := range e.rules {
		names[i] = r.Name
	}
	return names
}
