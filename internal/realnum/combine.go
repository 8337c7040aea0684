package realnum

import (
	"errors"
	"math"

	"github.com/roach88/realnum/internal/fraction"
)

// operator holds the per-representation specializations of one binary
// operator. combine picks which one to call from the operand variants.
type operator struct {
	name string

	// integer combines two Integers. It chooses its own result variant.
	integer func(a, b int64) (Real, error)

	// rational combines two fractions; Integers enter as whole fractions.
	rational func(a, b fraction.Fraction) (fraction.Fraction, error)

	// irrational combines two floats; any Irrational operand lands here.
	irrational func(a, b float64) (float64, error)
}

var (
	addOp = operator{
		name:    "add",
		integer: addIntegers,
		rational: func(a, b fraction.Fraction) (fraction.Fraction, error) {
			return a.Add(b)
		},
		irrational: func(a, b float64) (float64, error) { return a + b, nil },
	}

	subOp = operator{
		name:    "sub",
		integer: subIntegers,
		rational: func(a, b fraction.Fraction) (fraction.Fraction, error) {
			return a.Sub(b)
		},
		irrational: func(a, b float64) (float64, error) { return a - b, nil },
	}

	mulOp = operator{
		name:    "mul",
		integer: mulIntegers,
		rational: func(a, b fraction.Fraction) (fraction.Fraction, error) {
			return a.Mul(b)
		},
		irrational: func(a, b float64) (float64, error) { return a * b, nil },
	}

	divOp = operator{
		name:    "div",
		integer: divIntegers,
		rational: func(a, b fraction.Fraction) (fraction.Fraction, error) {
			return a.Div(b)
		},
		irrational: func(a, b float64) (float64, error) {
			if b == 0 {
				return 0, fraction.ErrDivisionByZero
			}
			return a / b, nil
		},
	}
)

// Add returns r + other.
func (r Real) Add(other Real) (Real, error) {
	return combine(addOp, r, other)
}

// Sub returns r - other.
func (r Real) Sub(other Real) (Real, error) {
	return combine(subOp, r, other)
}

// Mul returns r * other.
func (r Real) Mul(other Real) (Real, error) {
	return combine(mulOp, r, other)
}

// Div returns r / other. A zero divisor fails with CodeDivisionByZero.
func (r Real) Div(other Real) (Real, error) {
	return combine(divOp, r, other)
}

// combine is the promotion matrix. Every binary operator goes through here;
// the nine cells below are the whole cross-variant contract.
func combine(op operator, lhs, rhs Real) (Real, error) {
	if lhs.v == nil {
		return Real{}, unsetError(op.name, "lhs")
	}
	if rhs.v == nil {
		return Real{}, unsetError(op.name, "rhs")
	}

	switch a := lhs.v.(type) {
	case rational:
		switch b := rhs.v.(type) {
		case rational:
			return op.fractions(a.f, b.f)
		case irrational:
			return op.floats(a.f.ToDouble(), float64(b))
		case integer:
			return op.fractions(a.f, fraction.FromWhole(int64(b)))
		}
	case irrational:
		switch b := rhs.v.(type) {
		case rational:
			return op.floats(float64(a), b.f.ToDouble())
		case irrational:
			return op.floats(float64(a), float64(b))
		case integer:
			return op.floats(float64(a), float64(b))
		}
	case integer:
		switch b := rhs.v.(type) {
		case rational:
			return op.fractions(fraction.FromWhole(int64(a)), b.f)
		case irrational:
			return op.floats(float64(a), float64(b))
		case integer:
			return op.integer(int64(a), int64(b))
		}
	}
	panic(unknownVariant(lhs.v) + ", " + unknownVariant(rhs.v))
}

// fractions applies the rational specialization. A result that overflows
// the fraction representation widens to Irrational.
func (op operator) fractions(a, b fraction.Fraction) (Real, error) {
	f, err := op.rational(a, b)
	switch {
	case err == nil:
		return Rat(f), nil
	case errors.Is(err, fraction.ErrOverflow):
		return op.floats(a.ToDouble(), b.ToDouble())
	case errors.Is(err, fraction.ErrDivisionByZero):
		return Real{}, divisionByZeroError(op.name, "rhs", err)
	default:
		return Real{}, &InvalidRealError{Code: CodeUndefined, Op: op.name, Message: err.Error(), Err: err}
	}
}

// floats applies the irrational specialization.
func (op operator) floats(a, b float64) (Real, error) {
	x, err := op.irrational(a, b)
	if err != nil {
		return Real{}, divisionByZeroError(op.name, "rhs", err)
	}
	return finite(op.name, x)
}

func addIntegers(a, b int64) (Real, error) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return Float(float64(a) + float64(b)), nil
	}
	return Int(a + b), nil
}

func subIntegers(a, b int64) (Real, error) {
	if (b < 0 && a > math.MaxInt64+b) || (b > 0 && a < math.MinInt64+b) {
		return Float(float64(a) - float64(b)), nil
	}
	return Int(a - b), nil
}

func mulIntegers(a, b int64) (Real, error) {
	if p, ok := mulInt64(a, b); ok {
		return Int(p), nil
	}
	return Float(float64(a) * float64(b)), nil
}

// divIntegers keeps an exact quotient as Integer and otherwise stores the
// unreduced Rational |a|/|b| with the sign of the quotient.
func divIntegers(a, b int64) (Real, error) {
	if b == 0 {
		return Real{}, divisionByZeroError("div", "rhs", fraction.ErrDivisionByZero)
	}
	if a%b == 0 {
		if a == math.MinInt64 && b == -1 {
			return Float(-float64(a)), nil
		}
		return Int(a / b), nil
	}
	return Rat(fraction.Fraction{
		Negative:    (a < 0) != (b < 0),
		Numerator:   fraction.Magnitude(a),
		Denominator: fraction.Magnitude(b),
	}), nil
}

func mulInt64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	p := a * b
	if p/b != a {
		return 0, false
	}
	return p, true
}

// finite wraps a float result, rejecting NaN and infinities.
func finite(op string, x float64) (Real, error) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return Real{}, undefinedError(op, x)
	}
	return Float(x), nil
}
