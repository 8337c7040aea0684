package harness

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/roach88/realnum/internal/realnum"
)

// Harness is the scenario execution engine.
// A Harness holds the results of the steps run so far; use a fresh one per
// scenario (Run does this).
type Harness struct {
	logger    *slog.Logger
	tolerance float64
	results   []realnum.Real
}

// Option configures a Harness.
type Option func(*Harness)

// WithLogger sets the logger used for step tracing.
// The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Harness) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithTolerance sets the relative tolerance for approx_equal steps and
// approx expectations. A scenario's own tolerance takes precedence.
func WithTolerance(tol float64) Option {
	return func(h *Harness) {
		if tol > 0 {
			h.tolerance = tol
		}
	}
}

// New creates a harness with the given options.
func New(opts ...Option) *Harness {
	h := &Harness{
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		tolerance: realnum.DefaultTolerance,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run executes a scenario in a fresh harness and returns the result.
//
// Execution flow:
// 1. Resolve each step's arguments (literals, "unset", $N references)
// 2. Apply the operation and record a trace event
// 3. Compare the outcome against the step's expect clause
//
// Operation failures are part of the trace, not Run errors. Run only fails
// for scenarios that cannot be executed at all.
func Run(scenario *Scenario, opts ...Option) (*Result, error) {
	return New(opts...).Run(scenario)
}

// Run executes a scenario. Results from a previous Run are discarded.
func (h *Harness) Run(scenario *Scenario) (*Result, error) {
	if scenario == nil {
		return nil, fmt.Errorf("scenario is nil")
	}
	if err := validateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	tolerance := h.tolerance
	if scenario.Tolerance > 0 {
		tolerance = scenario.Tolerance
	}

	h.results = h.results[:0]
	result := NewResult()
	log := h.logger.With("scenario", scenario.Name)

	for i, step := range scenario.Steps {
		seq := i + 1

		args, err := h.resolveArgs(step.Args)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", seq, err)
		}

		out, opErr := Apply(step.Op, args, tolerance)

		event := TraceEvent{
			Seq:  seq,
			Op:   step.Op,
			Args: step.Args,
			Kind: out.Kind,
			Text: out.Text,
		}
		if opErr != nil {
			event.Error = ErrorCode(opErr)
			log.Debug("step failed", "seq", seq, "op", step.Op, "code", event.Error, "error", opErr)
		} else {
			log.Debug("step", "seq", seq, "op", step.Op, "kind", out.Kind, "text", out.Text)
		}
		result.AddTrace(event)

		// A failed step leaves an Unset result; later references see it as such.
		h.results = append(h.results, out.Value)

		for _, mismatch := range checkExpect(seq, step, out, opErr, tolerance) {
			log.Info("expectation failed", "seq", seq, "error", mismatch)
			result.AddError(mismatch.Error())
		}
	}

	return result, nil
}

// resolveArgs converts step arguments to Reals.
func (h *Harness) resolveArgs(raw []string) ([]realnum.Real, error) {
	args := make([]realnum.Real, len(raw))
	for i, arg := range raw {
		v, err := h.resolveArg(arg)
		if err != nil {
			return nil, fmt.Errorf("args[%d]: %w", i, err)
		}
		args[i] = v
	}
	return args, nil
}

func (h *Harness) resolveArg(arg string) (realnum.Real, error) {
	if arg == UnsetArg {
		return realnum.Real{}, nil
	}

	if ref, ok := strings.CutPrefix(arg, "$"); ok {
		n, err := strconv.Atoi(ref)
		if err != nil || n < 1 || n > len(h.results) {
			return realnum.Real{}, fmt.Errorf("reference %q is out of range", arg)
		}
		return h.results[n-1], nil
	}

	return realnum.Parse(arg)
}
