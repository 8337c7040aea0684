package harness

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

func TestRun_MinimalScenario(t *testing.T) {
	scenario := &Scenario{
		Name:        "minimal",
		Description: "Minimal test scenario",
		Steps: []Step{
			{Op: "add", Args: []string{"1", "2"}, Expect: &Expect{Kind: "integer", Text: "3"}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.True(t, result.Pass)
	assert.Empty(t, result.Errors)

	require.Len(t, result.Trace, 1)
	assert.Equal(t, TraceEvent{Seq: 1, Op: "add", Args: []string{"1", "2"}, Kind: "integer", Text: "3"}, result.Trace[0])
}

func TestRun_References(t *testing.T) {
	scenario := &Scenario{
		Name:        "references",
		Description: "Results feed later steps",
		Steps: []Step{
			{Op: "div", Args: []string{"1", "3"}},
			{Op: "mul", Args: []string{"$1", "3"}},
			{Op: "normalize", Args: []string{"$2"}, Expect: &Expect{Kind: "integer", Text: "1"}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	require.Len(t, result.Trace, 3)
	assert.Equal(t, "1/3", result.Trace[0].Text)
	assert.Equal(t, "rational", result.Trace[1].Kind)
}

func TestRun_FailedStepYieldsUnset(t *testing.T) {
	scenario := &Scenario{
		Name:        "unset_chain",
		Description: "A failed step poisons later references",
		Steps: []Step{
			{Op: "sqrt", Args: []string{"-1"}, Expect: &Expect{Error: "NEGATIVE_EVEN_ROOT"}},
			{Op: "add", Args: []string{"$1", "1"}, Expect: &Expect{Error: "INVALID_REAL"}},
			{Op: "is_whole", Args: []string{"$1"}, Expect: &Expect{Text: "false"}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, "NEGATIVE_EVEN_ROOT", result.Trace[0].Error)
	assert.Empty(t, result.Trace[0].Text)
}

func TestRun_ExpectationFailures(t *testing.T) {
	tests := []struct {
		name   string
		step   Step
		substr string
	}{
		{
			name:   "wrong kind",
			step:   Step{Op: "add", Args: []string{"1", "1/2"}, Expect: &Expect{Kind: "integer"}},
			substr: "kind: expected integer, got rational",
		},
		{
			name:   "wrong text",
			step:   Step{Op: "mul", Args: []string{"2", "3"}, Expect: &Expect{Text: "5"}},
			substr: "text: expected 5, got 6",
		},
		{
			name:   "unexpected success",
			step:   Step{Op: "div", Args: []string{"1", "2"}, Expect: &Expect{Error: "DIVISION_BY_ZERO"}},
			substr: "expected DIVISION_BY_ZERO, got success (1/2)",
		},
		{
			name:   "wrong error code",
			step:   Step{Op: "div", Args: []string{"1", "0"}, Expect: &Expect{Error: "INVALID_REAL"}},
			substr: "expected INVALID_REAL, got DIVISION_BY_ZERO",
		},
		{
			name:   "unexpected failure",
			step:   Step{Op: "sqrt", Args: []string{"-9"}, Expect: &Expect{Kind: "integer"}},
			substr: "result: expected success",
		},
		{
			name:   "approx out of tolerance",
			step:   Step{Op: "sqrt", Args: []string{"2"}, Expect: &Expect{Approx: floatPtr(1.414)}},
			substr: "approx: expected 1.414",
		},
		{
			name:   "approx on predicate",
			step:   Step{Op: "is_negative", Args: []string{"1"}, Expect: &Expect{Approx: floatPtr(1)}},
			substr: "non-numeric result",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scenario := &Scenario{
				Name:        "failing",
				Description: "Expectation mismatch",
				Steps:       []Step{tt.step},
			}

			result, err := Run(scenario)
			require.NoError(t, err)
			assert.False(t, result.Pass)
			require.Len(t, result.Errors, 1)
			assert.Contains(t, result.Errors[0], tt.substr)
			assert.Contains(t, result.Errors[0], "step 1 ("+tt.step.Op+")")
		})
	}
}

func TestRun_ReportsEveryMismatch(t *testing.T) {
	scenario := &Scenario{
		Name:        "two_mismatches",
		Description: "Kind and text both wrong",
		Steps: []Step{
			{Op: "add", Args: []string{"1", "1"}, Expect: &Expect{Kind: "rational", Text: "3"}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.Len(t, result.Errors, 2)
}

func TestRun_Tolerance(t *testing.T) {
	scenario := &Scenario{
		Name:        "tolerance",
		Description: "Loose tolerance accepts a rough approximation",
		Steps: []Step{
			{Op: "sqrt", Args: []string{"2"}, Expect: &Expect{Approx: floatPtr(1.414)}},
			{Op: "approx_equal", Args: []string{"$1", "1.414"}, Expect: &Expect{Text: "true"}},
		},
	}

	result, err := Run(scenario, WithTolerance(1e-3))
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)

	result, err = Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.Len(t, result.Errors, 2)

	scenario.Tolerance = 1e-3
	result, err = Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "scenario tolerance takes precedence")
}

func TestRun_InvalidArgument(t *testing.T) {
	scenario := &Scenario{
		Name:        "bad_literal",
		Description: "Literal that does not parse",
		Steps: []Step{
			{Op: "add", Args: []string{"one", "2"}},
		},
	}

	_, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step 1: args[0]")
}

func TestRun_RejectsInvalidScenario(t *testing.T) {
	_, err := Run(nil)
	require.Error(t, err)

	_, err = Run(&Scenario{Name: "empty", Description: "No steps"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "steps list is required")
}

func TestRun_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	scenario := &Scenario{
		Name:        "logged",
		Description: "Steps are logged",
		Steps: []Step{
			{Op: "neg", Args: []string{"4"}},
			{Op: "div", Args: []string{"1", "0"}},
		},
	}

	_, err := Run(scenario, WithLogger(logger))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "scenario=logged")
	assert.Contains(t, out, "op=neg")
	assert.Contains(t, out, "code=DIVISION_BY_ZERO")
}

func TestHarness_Reuse(t *testing.T) {
	h := New()

	first := &Scenario{
		Name:        "first",
		Description: "First run",
		Steps:       []Step{{Op: "add", Args: []string{"1", "1"}}},
	}
	second := &Scenario{
		Name:        "second",
		Description: "References do not leak between runs",
		Steps:       []Step{{Op: "neg", Args: []string{"7"}}, {Op: "abs", Args: []string{"$1"}, Expect: &Expect{Text: "7"}}},
	}

	_, err := h.Run(first)
	require.NoError(t, err)
	result, err := h.Run(second)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Len(t, result.Trace, 2)
}
