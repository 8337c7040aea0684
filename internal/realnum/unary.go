package realnum

import (
	"cmp"
	"math"

	"github.com/roach88/realnum/internal/fraction"
)

// DefaultTolerance is the tolerance used by IsApproximatelyEqualTo and
// IsApproximatelyZero. It is applied as an absolute tolerance for values
// with magnitude up to 1 and as a relative tolerance above that.
const DefaultTolerance = 1e-9

// Neg returns -r in the same variant. Negating math.MinInt64 widens to
// Irrational.
func (r Real) Neg() (Real, error) {
	switch v := r.v.(type) {
	case nil:
		return Real{}, unsetError("neg", "value")
	case integer:
		if v == math.MinInt64 {
			return Float(-float64(v)), nil
		}
		return Int(-int64(v)), nil
	case rational:
		return Rat(v.f.Neg()), nil
	case irrational:
		return Float(-float64(v)), nil
	}
	panic(unknownVariant(r.v))
}

// Abs returns -r when r is negative and r otherwise.
func (r Real) Abs() (Real, error) {
	if r.v == nil {
		return Real{}, unsetError("abs", "value")
	}
	if negative, _ := r.IsNegative(); negative {
		return r.Neg()
	}
	return r, nil
}

// Sign returns -1, 0 or +1.
func (r Real) Sign() (int, error) {
	x, err := r.ToDouble()
	if err != nil {
		return 0, err
	}
	return cmp.Compare(x, 0), nil
}

// Compare orders a and b by their float64 values, returning -1, 0 or +1.
//
// The comparison is only as exact as float64: two Rationals that differ by
// less than float64 resolution compare equal.
func Compare(a, b Real) (int, error) {
	if a.v == nil {
		return 0, unsetError("compare", "lhs")
	}
	if b.v == nil {
		return 0, unsetError("compare", "rhs")
	}
	x, _ := a.ToDouble()
	y, _ := b.ToDouble()
	return cmp.Compare(x, y), nil
}

// IsApproximatelyEqualTo reports whether r and other are within
// DefaultTolerance of each other.
func (r Real) IsApproximatelyEqualTo(other Real) (bool, error) {
	return r.ApproxEqualWithin(other, DefaultTolerance)
}

// IsApproximatelyZero reports whether r is within DefaultTolerance of zero.
func (r Real) IsApproximatelyZero() (bool, error) {
	return r.ApproxEqualWithin(Zero(), DefaultTolerance)
}

// ApproxEqualWithin reports whether |r - other| <= tol * max(1, |r|, |other|).
func (r Real) ApproxEqualWithin(other Real, tol float64) (bool, error) {
	x, err := r.ToDouble()
	if err != nil {
		return false, err
	}
	y, err := other.ToDouble()
	if err != nil {
		return false, err
	}
	return approxEqual(x, y, tol), nil
}

// ExactlyEqual compares values rather than representations. Integers and
// Rationals are compared as fractions, so Int(1), Rational 1/1 and
// Rational 2/2 are all exactly equal. Any comparison involving an
// Irrational falls back to float64 equality.
func (r Real) ExactlyEqual(other Real) (bool, error) {
	a, aExact, err := r.exactFraction("lhs")
	if err != nil {
		return false, err
	}
	b, bExact, err := other.exactFraction("rhs")
	if err != nil {
		return false, err
	}
	if aExact && bExact {
		return a.Equal(b), nil
	}

	x, _ := r.ToDouble()
	y, _ := other.ToDouble()
	return x == y, nil
}

func (r Real) exactFraction(operand string) (fraction.Fraction, bool, error) {
	switch v := r.v.(type) {
	case nil:
		return fraction.Fraction{}, false, unsetError("exactly_equal", operand)
	case integer:
		return fraction.FromWhole(int64(v)), true, nil
	case rational:
		return v.f, true, nil
	default:
		return fraction.Fraction{}, false, nil
	}
}

func approxEqual(x, y, tol float64) bool {
	scale := math.Max(1, math.Max(math.Abs(x), math.Abs(y)))
	return math.Abs(x-y) <= tol*scale
}
