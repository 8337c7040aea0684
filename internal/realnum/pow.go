package realnum

import (
	"errors"
	"math"

	"github.com/roach88/realnum/internal/fraction"
)

// Pow returns r raised to exponent.
//
// Exact bases with exact exponents stay exact where the result allows:
// Integer^Integer is an Integer (a Rational for negative exponents), and a
// fractional exponent p/q is evaluated as the q-th root of base^p, which is
// exact whenever that root is. Any Irrational operand gives an Irrational.
//
// x^0 is 1 for every x, including 0^0.
func (r Real) Pow(exponent Real) (Real, error) {
	if r.v == nil {
		return Real{}, unsetError("pow", "base")
	}
	if exponent.v == nil {
		return Real{}, unsetError("pow", "exponent")
	}

	switch b := r.v.(type) {
	case integer:
		switch e := exponent.v.(type) {
		case integer:
			return powIntegerInteger(int64(b), int64(e))
		case rational:
			return powIntegerRational(int64(b), e.f)
		case irrational:
			return powFloat(float64(b), float64(e))
		}
	case rational:
		switch e := exponent.v.(type) {
		case integer:
			return powRationalInteger(b.f, int64(e))
		case rational:
			return powRationalRational(b.f, e.f)
		case irrational:
			return powFloat(b.f.ToDouble(), float64(e))
		}
	case irrational:
		switch e := exponent.v.(type) {
		case integer:
			return powFloat(float64(b), float64(e))
		case rational:
			return powFloat(float64(b), e.f.ToDouble())
		case irrational:
			return powFloat(float64(b), float64(e))
		}
	}
	panic(unknownVariant(r.v) + ", " + unknownVariant(exponent.v))
}

// Sqrt returns the square root of r. Perfect squares stay exact.
func (r Real) Sqrt() (Real, error) {
	return r.root("sqrt", 2)
}

// Root returns the base-th root of r for base >= 1. Perfect powers stay
// exact; even roots of negative values fail with CodeNegativeEvenRoot.
func (r Real) Root(base int64) (Real, error) {
	if base < 1 {
		if r.v == nil {
			return Real{}, unsetError("root", "value")
		}
		return Real{}, &InvalidRealError{
			Code:    CodeUndefined,
			Op:      "root",
			Operand: "base",
			Message: "root base must be at least 1",
		}
	}
	return r.root("root", uint64(base))
}

func (r Real) root(op string, base uint64) (Real, error) {
	switch v := r.v.(type) {
	case nil:
		return Real{}, unsetError(op, "value")
	case integer:
		return integerRoot(op, int64(v), base)
	case rational:
		return fractionRoot(op, v.f, base, false)
	case irrational:
		return floatRoot(op, float64(v), base)
	}
	panic(unknownVariant(r.v))
}

func powIntegerInteger(x, n int64) (Real, error) {
	switch {
	case n == 0:
		return Int(1), nil
	case n == 1:
		return Int(x), nil
	case n > 1:
		if p, ok := powInt64(x, uint64(n)); ok {
			return Int(p), nil
		}
		return powFloat(float64(x), float64(n))
	}

	// x^-n is (1/x)^n, kept exact as a Rational.
	f, err := fraction.FromWhole(x).Pow(n)
	return powFractionResult(f, err, float64(x), float64(n))
}

// powIntegerRational applies x^(p/q) = root_q(x^p), inverting the result for
// a negative exponent.
func powIntegerRational(x int64, e fraction.Fraction) (Real, error) {
	imp := lowestTerms(e)
	if imp.Numerator > math.MaxInt64 {
		return powFloat(float64(x), e.ToDouble())
	}
	xp, ok := powInt64(x, imp.Numerator)
	if !ok {
		return powFloat(float64(x), e.ToDouble())
	}

	root, err := integerRoot("pow", xp, imp.Denominator)
	if err != nil {
		return Real{}, err
	}
	if imp.Negative {
		return reciprocal("pow", root)
	}
	return root, nil
}

func powRationalInteger(f fraction.Fraction, n int64) (Real, error) {
	p, err := f.Pow(n)
	return powFractionResult(p, err, f.ToDouble(), float64(n))
}

// powRationalRational applies f^(p/q) = root_q(f^p). The q-th root is taken
// of numerator and denominator separately and inverted for a negative
// exponent.
func powRationalRational(f, e fraction.Fraction) (Real, error) {
	imp := lowestTerms(e)
	if imp.Numerator > math.MaxInt64 {
		return powFloat(f.ToDouble(), e.ToDouble())
	}
	fp, err := f.Pow(int64(imp.Numerator))
	if err != nil {
		return powFractionResult(fp, err, f.ToDouble(), e.ToDouble())
	}
	return fractionRoot("pow", fp, imp.Denominator, imp.Negative)
}

// lowestTerms returns e reduced and in improper form. The parity of p and q
// decides the sign of an odd root, so it must be taken in lowest terms.
func lowestTerms(e fraction.Fraction) fraction.Fraction {
	return e.ToProperForm().ToImproperForm()
}

func powFractionResult(f fraction.Fraction, err error, x, y float64) (Real, error) {
	switch {
	case err == nil:
		return Rat(f), nil
	case errors.Is(err, fraction.ErrOverflow):
		return powFloat(x, y)
	default:
		return Real{}, divisionByZeroError("pow", "base", err)
	}
}

func powFloat(x, y float64) (Real, error) {
	if x == 0 && y < 0 {
		return Real{}, divisionByZeroError("pow", "base", fraction.ErrDivisionByZero)
	}
	return finite("pow", math.Pow(x, y))
}

// reciprocal returns 1/r for a root result, keeping exact values exact.
func reciprocal(op string, r Real) (Real, error) {
	switch v := r.v.(type) {
	case integer:
		f, err := fraction.FromWhole(int64(v)).Reciprocal()
		if err != nil {
			return Real{}, divisionByZeroError(op, "base", err)
		}
		return Rat(f), nil
	case irrational:
		if v == 0 {
			return Real{}, divisionByZeroError(op, "base", fraction.ErrDivisionByZero)
		}
		return finite(op, 1/float64(v))
	default:
		return combine(divOp, One(), r)
	}
}

// integerRoot takes the base-th root of n. The root is an Integer when one
// exists and an Irrational approximation otherwise.
func integerRoot(op string, n int64, base uint64) (Real, error) {
	negative := n < 0
	if negative && base%2 == 0 {
		return Real{}, negativeEvenRootError(op, base)
	}

	res := rootMagnitude(fraction.Magnitude(n), base)
	switch {
	case res.exact && negative && res.root == 1<<63:
		return Int(math.MinInt64), nil
	case res.exact && res.root <= math.MaxInt64:
		if negative {
			return Int(-int64(res.root)), nil
		}
		return Int(int64(res.root)), nil
	}
	if negative {
		return Float(-res.approx), nil
	}
	return Float(res.approx), nil
}

// fractionRoot roots numerator and denominator of the improper form of f
// independently. If both roots are exact the result is a Rational in proper
// form; otherwise the quotient of the approximations. invert swaps the
// result for negative exponents.
func fractionRoot(op string, f fraction.Fraction, base uint64, invert bool) (Real, error) {
	imp := f.ToImproperForm()
	negative := imp.Negative && imp.Numerator != 0
	if negative && base%2 == 0 {
		return Real{}, negativeEvenRootError(op, base)
	}

	num := rootMagnitude(imp.Numerator, base)
	den := rootMagnitude(imp.Denominator, base)
	if invert {
		num, den = den, num
	}
	if den.approx == 0 {
		return Real{}, divisionByZeroError(op, "base", fraction.ErrDivisionByZero)
	}

	if num.exact && den.exact {
		root := fraction.Fraction{Negative: negative, Numerator: num.root, Denominator: den.root}
		return Rat(root.ToProperForm()), nil
	}

	x := num.approx / den.approx
	if negative {
		x = -x
	}
	return finite(op, x)
}

func floatRoot(op string, x float64, base uint64) (Real, error) {
	if x < 0 && base%2 == 0 {
		return Real{}, negativeEvenRootError(op, base)
	}
	switch {
	case base == 1:
		return Float(x), nil
	case base == 2:
		return Float(math.Sqrt(x)), nil
	case x < 0:
		return finite(op, -math.Pow(-x, 1/float64(base)))
	default:
		return finite(op, math.Pow(x, 1/float64(base)))
	}
}

// rootResult is the outcome of an integer root search.
// approx is always set; root only when exact.
type rootResult struct {
	exact  bool
	root   uint64
	approx float64
}

// rootMagnitude searches for an integer c with c^base == m.
//
// Candidates are tried in increasing order until c^base >= m, computing each
// power exactly with integer arithmetic. The scan starts just below the float
// estimate of the root, so it runs a handful of steps regardless of m while
// exactness is still decided by integers alone.
func rootMagnitude(m, base uint64) rootResult {
	switch {
	case m == 0 || m == 1:
		return rootResult{exact: true, root: m, approx: float64(m)}
	case base == 1:
		return rootResult{exact: true, root: m, approx: float64(m)}
	}

	approx := rootApprox(m, base)

	c := uint64(2)
	if est := uint64(approx); est > 3 {
		c = est - 1
	}
	for c > 2 {
		if p, ok := fraction.Pow(c, base); ok && p <= m {
			break
		}
		c--
	}

	for {
		p, ok := fraction.Pow(c, base)
		if !ok || p > m {
			return rootResult{approx: approx}
		}
		if p == m {
			return rootResult{exact: true, root: c, approx: float64(c)}
		}
		c++
	}
}

func rootApprox(m, base uint64) float64 {
	if base == 2 {
		return math.Sqrt(float64(m))
	}
	return math.Pow(float64(m), 1/float64(base))
}

// powInt64 returns x^n and false if it overflows int64.
func powInt64(x int64, n uint64) (int64, bool) {
	mag, ok := fraction.Pow(fraction.Magnitude(x), n)
	if !ok {
		return 0, false
	}
	negative := x < 0 && n%2 == 1
	switch {
	case negative && mag == 1<<63:
		return math.MinInt64, true
	case mag > math.MaxInt64:
		return 0, false
	case negative:
		return -int64(mag), true
	default:
		return int64(mag), true
	}
}
