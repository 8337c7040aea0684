package store

import (
	"errors"
	"slices"

	"github.com/roach88/realnum/internal/harness"
)

// ErrRunNotFound is returned when no run matches the requested ID or
// scenario.
var ErrRunNotFound = errors.New("run not found")

// Run is one recorded scenario execution.
type Run struct {
	ID       string               `json:"id"`
	Seq      int64                `json:"seq"`
	Scenario string               `json:"scenario"`
	Pass     bool                 `json:"pass"`
	Errors   []string             `json:"errors"`
	Trace    []harness.TraceEvent `json:"trace,omitempty"`
}

// NewRun builds an unrecorded Run from a harness result.
func NewRun(scenario string, result *harness.Result) Run {
	return Run{
		Scenario: scenario,
		Pass:     result.Pass,
		Errors:   slices.Clone(result.Errors),
		Trace:    slices.Clone(result.Trace),
	}
}

// SameTrace reports whether two runs produced identical traces.
func SameTrace(a, b Run) bool {
	return slices.EqualFunc(a.Trace, b.Trace, func(x, y harness.TraceEvent) bool {
		return x.Seq == y.Seq &&
			x.Op == y.Op &&
			slices.Equal(x.Args, y.Args) &&
			x.Kind == y.Kind &&
			x.Text == y.Text &&
			x.Error == y.Error
	})
}
