package harness

import (
	"fmt"

	"github.com/roach88/realnum/internal/realnum"
)

// ExpectationError describes one expect clause that did not match.
type ExpectationError struct {
	Step     int    // 1-based step number
	Op       string // operation name
	Field    string // expect field that failed
	Expected string
	Actual   string
}

func (e *ExpectationError) Error() string {
	return fmt.Sprintf("step %d (%s): %s: expected %s, got %s", e.Step, e.Op, e.Field, e.Expected, e.Actual)
}

// checkExpect compares a step's outcome to its expect clause.
// Returns every mismatch, not just the first.
func checkExpect(seq int, step Step, out Outcome, opErr error, tolerance float64) []error {
	e := step.Expect
	if e == nil {
		return nil
	}

	mismatch := func(field, expected, actual string) error {
		return &ExpectationError{Step: seq, Op: step.Op, Field: field, Expected: expected, Actual: actual}
	}

	if e.Error != "" {
		if opErr == nil {
			return []error{mismatch("error", e.Error, "success ("+out.Text+")")}
		}
		if code := ErrorCode(opErr); code != e.Error {
			return []error{mismatch("error", e.Error, code)}
		}
		return nil
	}

	if opErr != nil {
		return []error{mismatch("result", "success", opErr.Error())}
	}

	var errs []error
	if e.Kind != "" && e.Kind != out.Kind {
		errs = append(errs, mismatch("kind", e.Kind, displayKind(out.Kind)))
	}
	if e.Text != "" && e.Text != out.Text {
		errs = append(errs, mismatch("text", e.Text, out.Text))
	}
	if e.Approx != nil {
		if err := checkApprox(out, *e.Approx, tolerance); err != "" {
			errs = append(errs, mismatch("approx", fmt.Sprintf("%v", *e.Approx), err))
		}
	}
	return errs
}

// checkApprox returns a description of the actual value when it is not
// within tolerance of want, or "" when it matches.
func checkApprox(out Outcome, want, tolerance float64) string {
	if out.Kind == "" {
		return "non-numeric result " + out.Text
	}
	ok, err := out.Value.ApproxEqualWithin(realnum.Float(want), tolerance)
	if err != nil {
		return err.Error()
	}
	if ok {
		return ""
	}
	return out.Text
}

func displayKind(kind string) string {
	if kind == "" {
		return "non-numeric result"
	}
	return kind
}
