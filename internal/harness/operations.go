package harness

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/roach88/realnum/internal/realnum"
)

// CodeInvalidArgument is reported for step arguments an operation cannot use,
// such as a non-whole root base. Real operation failures report their
// realnum.ErrorCode instead.
const CodeInvalidArgument = "INVALID_ARGUMENT"

// ErrUnknownOperation is returned by Apply for an unregistered op name.
var ErrUnknownOperation = errors.New("unknown operation")

// Outcome is the result of applying one operation.
type Outcome struct {
	// Value is the Real result. Unset for predicate operations.
	Value realnum.Real

	// Kind is the variant name of Value, or "" for predicate operations.
	Kind string

	// Text is the rendered result: PlainText for a Real, or the boolean or
	// ordering produced by a predicate.
	Text string
}

// ArgumentError reports a step argument an operation cannot use.
type ArgumentError struct {
	Op      string
	Message string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

type operation struct {
	arity int
	apply func(args []realnum.Real, tolerance float64) (Outcome, error)
}

var operations = map[string]operation{
	"add":           binary(realnum.Real.Add),
	"sub":           binary(realnum.Real.Sub),
	"mul":           binary(realnum.Real.Mul),
	"div":           binary(realnum.Real.Div),
	"pow":           binary(realnum.Real.Pow),
	"sqrt":          unary(realnum.Real.Sqrt),
	"neg":           unary(realnum.Real.Neg),
	"abs":           unary(realnum.Real.Abs),
	"normalize":     unary(realnum.Real.Normalize),
	"root":          {arity: 2, apply: applyRoot},
	"compare":       {arity: 2, apply: applyCompare},
	"approx_equal":  {arity: 2, apply: applyApproxEqual},
	"exactly_equal": predicate2(realnum.Real.ExactlyEqual),
	"is_negative":   predicate1(realnum.Real.IsNegative),
	"is_whole":      {arity: 1, apply: applyIsWhole},
}

// Operations returns the registered operation names, sorted.
func Operations() []string {
	names := make([]string, 0, len(operations))
	for name := range operations {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Arity returns the number of arguments op takes.
func Arity(op string) (int, bool) {
	o, ok := operations[op]
	return o.arity, ok
}

// Apply runs the named operation. tolerance is used by approx_equal.
func Apply(op string, args []realnum.Real, tolerance float64) (Outcome, error) {
	o, ok := operations[op]
	if !ok {
		return Outcome{}, fmt.Errorf("%w: %q", ErrUnknownOperation, op)
	}
	if len(args) != o.arity {
		return Outcome{}, &ArgumentError{Op: op, Message: fmt.Sprintf("takes %d argument(s), got %d", o.arity, len(args))}
	}
	return o.apply(args, tolerance)
}

// ErrorCode returns the code reported for an operation error.
func ErrorCode(err error) string {
	if code := realnum.CodeOf(err); code != "" {
		return string(code)
	}
	return CodeInvalidArgument
}

func binary(fn func(a, b realnum.Real) (realnum.Real, error)) operation {
	return operation{arity: 2, apply: func(args []realnum.Real, _ float64) (Outcome, error) {
		return realOutcome(fn(args[0], args[1]))
	}}
}

func unary(fn func(a realnum.Real) (realnum.Real, error)) operation {
	return operation{arity: 1, apply: func(args []realnum.Real, _ float64) (Outcome, error) {
		return realOutcome(fn(args[0]))
	}}
}

func predicate1(fn func(a realnum.Real) (bool, error)) operation {
	return operation{arity: 1, apply: func(args []realnum.Real, _ float64) (Outcome, error) {
		return boolOutcome(fn(args[0]))
	}}
}

func predicate2(fn func(a, b realnum.Real) (bool, error)) operation {
	return operation{arity: 2, apply: func(args []realnum.Real, _ float64) (Outcome, error) {
		return boolOutcome(fn(args[0], args[1]))
	}}
}

func applyRoot(args []realnum.Real, _ float64) (Outcome, error) {
	base, ok, err := args[1].AsWholeNumber()
	if err != nil {
		return Outcome{}, err
	}
	if !ok {
		return Outcome{}, &ArgumentError{Op: "root", Message: fmt.Sprintf("base %s is not a whole number", args[1])}
	}
	return realOutcome(args[0].Root(base))
}

func applyCompare(args []realnum.Real, _ float64) (Outcome, error) {
	c, err := realnum.Compare(args[0], args[1])
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Text: strconv.Itoa(c)}, nil
}

func applyApproxEqual(args []realnum.Real, tolerance float64) (Outcome, error) {
	return boolOutcome(args[0].ApproxEqualWithin(args[1], tolerance))
}

func applyIsWhole(args []realnum.Real, _ float64) (Outcome, error) {
	return Outcome{Text: strconv.FormatBool(args[0].IsWholeNumber())}, nil
}

func realOutcome(r realnum.Real, err error) (Outcome, error) {
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Value: r, Kind: r.Kind().String(), Text: r.PlainText()}, nil
}

func boolOutcome(b bool, err error) (Outcome, error) {
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Text: strconv.FormatBool(b)}, nil
}
