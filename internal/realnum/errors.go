package realnum

import (
	"errors"
	"fmt"
)

// InvalidRealError is the single error type returned by Real operations.
//
// It is raised when:
//   - An operation reads from an Unset value
//   - A per-variant accessor is called on a different variant
//   - An even-base root of a negative radicand is requested
//   - A division (or negative power) by zero is requested
//   - A float result is undefined (NaN or infinite)
type InvalidRealError struct {
	// Code identifies the error category.
	Code ErrorCode

	// Op is the operation that failed (e.g. "add", "pow").
	Op string

	// Operand names the offending operand ("lhs", "rhs", "base", ...).
	Operand string

	// Message is a human-readable description.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

// ErrorCode categorizes InvalidRealError.
type ErrorCode string

const (
	// CodeInvalidReal indicates an operand was Unset.
	CodeInvalidReal ErrorCode = "INVALID_REAL"

	// CodeWrongKind indicates a variant accessor was used on another variant.
	CodeWrongKind ErrorCode = "WRONG_KIND"

	// CodeNegativeEvenRoot indicates an imaginary root was requested.
	CodeNegativeEvenRoot ErrorCode = "NEGATIVE_EVEN_ROOT"

	// CodeDivisionByZero indicates a zero divisor.
	CodeDivisionByZero ErrorCode = "DIVISION_BY_ZERO"

	// CodeUndefined indicates a float result that is NaN or infinite.
	CodeUndefined ErrorCode = "UNDEFINED"
)

// Error implements the error interface.
func (e *InvalidRealError) Error() string {
	if e.Operand != "" {
		return fmt.Sprintf("%s: %s: %s (operand=%s)", e.Code, e.Op, e.Message, e.Operand)
	}
	return fmt.Sprintf("%s: %s: %s", e.Code, e.Op, e.Message)
}

// Unwrap returns the underlying cause.
func (e *InvalidRealError) Unwrap() error {
	return e.Err
}

// IsInvalidReal reports whether err is (or wraps) an InvalidRealError.
func IsInvalidReal(err error) bool {
	var re *InvalidRealError
	return errors.As(err, &re)
}

// CodeOf returns the ErrorCode of err, or "" if err is not an InvalidRealError.
func CodeOf(err error) ErrorCode {
	var re *InvalidRealError
	if errors.As(err, &re) {
		return re.Code
	}
	return ""
}

// IsUnset reports whether err was caused by reading an Unset value.
func IsUnset(err error) bool {
	return CodeOf(err) == CodeInvalidReal
}

// IsDivisionByZero reports whether err was caused by a zero divisor.
func IsDivisionByZero(err error) bool {
	return CodeOf(err) == CodeDivisionByZero
}

// IsNegativeEvenRoot reports whether err was caused by an imaginary root.
func IsNegativeEvenRoot(err error) bool {
	return CodeOf(err) == CodeNegativeEvenRoot
}

func unsetError(op, operand string) *InvalidRealError {
	return &InvalidRealError{
		Code:    CodeInvalidReal,
		Op:      op,
		Operand: operand,
		Message: "value is unset",
	}
}

func wrongKindError(op string, want, got Kind) *InvalidRealError {
	return &InvalidRealError{
		Code:    CodeWrongKind,
		Op:      op,
		Message: fmt.Sprintf("want %s, have %s", want, got),
	}
}

func divisionByZeroError(op, operand string, err error) *InvalidRealError {
	return &InvalidRealError{
		Code:    CodeDivisionByZero,
		Op:      op,
		Operand: operand,
		Message: "division by zero",
		Err:     err,
	}
}

func negativeEvenRootError(op string, base uint64) *InvalidRealError {
	return &InvalidRealError{
		Code:    CodeNegativeEvenRoot,
		Op:      op,
		Message: fmt.Sprintf("root of base %d of a negative radicand is imaginary", base),
	}
}

func undefinedError(op string, v float64) *InvalidRealError {
	return &InvalidRealError{
		Code:    CodeUndefined,
		Op:      op,
		Message: fmt.Sprintf("result %v is not a finite number", v),
	}
}

// unknownVariant is unreachable: value is sealed to the three variants.
func unknownVariant(v value) string {
	return fmt.Sprintf("realnum: unknown variant %T", v)
}
