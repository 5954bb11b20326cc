package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ochairo/regguard/internal/domain/entities"
)

type facts struct {
	value int
}

var ctx = entities.NewValidationContext(entities.TypeSettings)

func failWith(msg string, signal Signal) func(facts, *Outcome) Signal {
	return func(_ facts, out *Outcome) Signal {
		out.Fail(entities.NewValidationError(ctx, "s.yml", msg))
		return signal
	}
}

func always(facts) bool { return true }

func TestEngine_PriorityOrder(t *testing.T) {
	e, err := NewEngine(
		Rule[facts]{Name: "third", Priority: 30, When: always, Then: failWith("c", Continue)},
		Rule[facts]{Name: "first", Priority: 10, When: always, Then: failWith("a", Continue)},
		Rule[facts]{Name: "second", Priority: 20, When: always, Then: failWith("b", Continue)},
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second", "third"}, e.Names())
	assert.Equal(t, 3, e.Run(facts{}).Errors.Len())
}

func TestEngine_StopBlocksLaterRules(t *testing.T) {
	ran := false
	e, err := NewEngine(
		Rule[facts]{Name: "gate", Priority: 1, When: always, Then: failWith("stop", Stop)},
		Rule[facts]{Name: "later", Priority: 2, When: always, Then: func(facts, *Outcome) Signal {
			ran = true
			return Continue
		}},
	)
	require.NoError(t, err)

	out := e.Run(facts{})
	assert.False(t, ran)
	assert.Equal(t, 1, out.Errors.Len())
}

func TestEngine_GuardSkipsAction(t *testing.T) {
	e, err := NewEngine(
		Rule[facts]{Name: "positive", Priority: 1, When: func(f facts) bool { return f.value > 0 }, Then: failWith("pos", Continue)},
		Rule[facts]{Name: "warn", Priority: 2, When: always, Then: func(_ facts, out *Outcome) Signal {
			out.Warn("note")
			return Continue
		}},
	)
	require.NoError(t, err)

	out := e.Run(facts{value: -1})
	assert.True(t, out.Errors.Empty())
	assert.Equal(t, []string{"note"}, out.Warnings)
}

func TestEngine_FreshOutcomePerRun(t *testing.T) {
	e, err := NewEngine(Rule[facts]{Name: "r", Priority: 1, When: always, Then: failWith("x", Continue)})
	require.NoError(t, err)

	first := e.Run(facts{})
	second := e.Run(facts{})
	assert.Equal(t, 1, first.Errors.Len())
	assert.Equal(t, 1, second.Errors.Len())
	assert.NotSame(t, first, second)
}

func TestNewEngine_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		rules []Rule[facts]
	}{
		{
			name: "duplicate priority",
			rules: []Rule[facts]{
				{Name: "a", Priority: 1, When: always, Then: failWith("a", Continue)},
				{Name: "b", Priority: 1, When: always, Then: failWith("b", Continue)},
			},
		},
		{
			name:  "missing guard",
			rules: []Rule[facts]{{Name: "a", Priority: 1, Then: failWith("a", Continue)}},
		},
		{
			name:  "missing action",
			rules: []Rule[facts]{{Name: "a", Priority: 1, When: always}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEngine(tt.rules...)
			assert.Error(t, err)
		})
	}
}
