// Package fraction provides the signed mixed-number fraction used by realnum
// for exact rational arithmetic.
//
// A Fraction is a sign flag plus an unsigned magnitude written as a mixed
// number: Whole + Numerator/Denominator. Arithmetic always returns values in
// proper form (reduced, whole part extracted). Values built directly with
// Mixed keep whatever shape they were given until ToProperForm is called.
//
// All arithmetic is bounded by uint64. Intermediate products that do not fit
// are reported as ErrOverflow rather than silently wrapping.
package fraction

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"strconv"
)

var (
	// ErrZeroDenominator is returned when a fraction would be built over zero.
	ErrZeroDenominator = errors.New("fraction: zero denominator")

	// ErrDivisionByZero is returned when dividing by (or inverting) zero.
	ErrDivisionByZero = errors.New("fraction: division by zero")

	// ErrOverflow is returned when a result does not fit in uint64 terms.
	ErrOverflow = errors.New("fraction: overflow")
)

// Fraction is a signed mixed number.
// The zero value is not a valid fraction (its denominator is zero).
type Fraction struct {
	Negative    bool
	Whole       uint64
	Numerator   uint64
	Denominator uint64
}

// New creates the fraction num/den in proper form.
// The sign is taken from the signs of num and den.
func New(num, den int64) (Fraction, error) {
	if den == 0 {
		return Fraction{}, ErrZeroDenominator
	}
	f := Fraction{
		Negative:    (num < 0) != (den < 0),
		Numerator:   Magnitude(num),
		Denominator: Magnitude(den),
	}
	return f.ToProperForm(), nil
}

// MustNew is like New but panics on a zero denominator.
// Intended for constants and tests.
func MustNew(num, den int64) Fraction {
	f, err := New(num, den)
	if err != nil {
		panic(err)
	}
	return f
}

// Mixed creates the fraction ±(whole + num/den) exactly as given, without
// reduction. It fails if den is zero or if the improper numerator
// whole*den+num does not fit in uint64.
func Mixed(negative bool, whole, num, den uint64) (Fraction, error) {
	if den == 0 {
		return Fraction{}, ErrZeroDenominator
	}
	if _, ok := improperNumerator(whole, num, den); !ok {
		return Fraction{}, ErrOverflow
	}
	return Fraction{Negative: negative, Whole: whole, Numerator: num, Denominator: den}, nil
}

// FromWhole creates the whole-number fraction n/1.
func FromWhole(n int64) Fraction {
	return Fraction{Negative: n < 0, Numerator: Magnitude(n), Denominator: 1}
}

// Magnitude returns |n| as a uint64. It is exact for math.MinInt64.
func Magnitude(n int64) uint64 {
	if n < 0 {
		return uint64(-(n + 1)) + 1
	}
	return uint64(n)
}

// Valid reports whether f has a non-zero denominator.
func (f Fraction) Valid() bool {
	return f.Denominator != 0
}

// IsZero reports whether f has value zero, regardless of sign flag.
func (f Fraction) IsZero() bool {
	return f.Whole == 0 && f.Numerator == 0
}

// ToDouble returns the nearest float64 to f.
func (f Fraction) ToDouble() float64 {
	v := float64(f.Whole) + float64(f.Numerator)/float64(f.Denominator)
	if f.Negative {
		return -v
	}
	return v
}

// ToImproperForm folds the whole part into the numerator.
// The result is not reduced.
func (f Fraction) ToImproperForm() Fraction {
	if f.Whole == 0 {
		return f
	}
	// Mixed guarantees this fits; values built by hand are trusted.
	num, _ := improperNumerator(f.Whole, f.Numerator, f.Denominator)
	return Fraction{Negative: f.Negative, Numerator: num, Denominator: f.Denominator}
}

// ToProperForm returns the canonical form of f: reduced to lowest terms with
// the whole part extracted. Zero is always non-negative with denominator 1.
func (f Fraction) ToProperForm() Fraction {
	if !f.Valid() {
		return f
	}
	imp := f.ToImproperForm()
	num, den := imp.Numerator, imp.Denominator
	if g := gcd(num, den); g > 1 {
		num /= g
		den /= g
	}
	p := Fraction{
		Negative:    imp.Negative,
		Whole:       num / den,
		Numerator:   num % den,
		Denominator: den,
	}
	if p.Numerator == 0 {
		p.Denominator = 1
	}
	if p.IsZero() {
		p.Negative = false
	}
	return p
}

// IsOnlyWholeNumber reports whether f has no fractional part.
func (f Fraction) IsOnlyWholeNumber() bool {
	if !f.Valid() {
		return false
	}
	imp := f.ToImproperForm()
	return imp.Numerator%imp.Denominator == 0
}

// ToWholeNumber returns the integer part of f, truncated toward zero.
// It fails with ErrOverflow when the value does not fit in int64.
func (f Fraction) ToWholeNumber() (int64, error) {
	if !f.Valid() {
		return 0, ErrZeroDenominator
	}
	imp := f.ToImproperForm()
	return signedValue(imp.Negative, imp.Numerator/imp.Denominator)
}

// Neg returns -f. Zero stays non-negative.
func (f Fraction) Neg() Fraction {
	if f.IsZero() {
		f.Negative = false
		return f
	}
	f.Negative = !f.Negative
	return f
}

// Reciprocal returns 1/f.
func (f Fraction) Reciprocal() (Fraction, error) {
	imp := f.ToImproperForm()
	if imp.Numerator == 0 {
		return Fraction{}, ErrDivisionByZero
	}
	r := Fraction{Negative: imp.Negative, Numerator: imp.Denominator, Denominator: imp.Numerator}
	return r.ToProperForm(), nil
}

// Equal reports whether f and g have the same value.
func (f Fraction) Equal(g Fraction) bool {
	return f.ToProperForm() == g.ToProperForm()
}

// Add returns f + g.
func (f Fraction) Add(g Fraction) (Fraction, error) {
	return addSigned(f.ToImproperForm(), g.ToImproperForm())
}

// Sub returns f - g.
func (f Fraction) Sub(g Fraction) (Fraction, error) {
	return addSigned(f.ToImproperForm(), g.ToImproperForm().Neg())
}

// Mul returns f * g.
func (f Fraction) Mul(g Fraction) (Fraction, error) {
	a, b := f.ToImproperForm(), g.ToImproperForm()

	// Cross-reduce first so products stay small.
	g1 := gcd(a.Numerator, b.Denominator)
	g2 := gcd(b.Numerator, a.Denominator)
	num, ok := mul(div(a.Numerator, g1), div(b.Numerator, g2))
	if !ok {
		return Fraction{}, ErrOverflow
	}
	den, ok := mul(div(a.Denominator, g2), div(b.Denominator, g1))
	if !ok {
		return Fraction{}, ErrOverflow
	}

	r := Fraction{Negative: a.Negative != b.Negative, Numerator: num, Denominator: den}
	return r.ToProperForm(), nil
}

// Div returns f / g.
func (f Fraction) Div(g Fraction) (Fraction, error) {
	inv, err := g.Reciprocal()
	if err != nil {
		return Fraction{}, err
	}
	return f.Mul(inv)
}

// Pow returns f raised to the integer power n.
// f^0 is 1 for every f. Negative powers invert f first.
func (f Fraction) Pow(n int64) (Fraction, error) {
	base := f.ToProperForm()
	if n < 0 {
		inv, err := base.Reciprocal()
		if err != nil {
			return Fraction{}, err
		}
		base = inv
	}
	e := Magnitude(n)

	imp := base.ToImproperForm()
	num, ok := Pow(imp.Numerator, e)
	if !ok {
		return Fraction{}, ErrOverflow
	}
	den, ok := Pow(imp.Denominator, e)
	if !ok {
		return Fraction{}, ErrOverflow
	}

	r := Fraction{Negative: imp.Negative && e%2 == 1, Numerator: num, Denominator: den}
	return r.ToProperForm(), nil
}

// String renders f as "n/d" when there is no whole part and as "w n/d" (or
// just "w") otherwise, with a leading '-' when negative.
func (f Fraction) String() string {
	sign := ""
	if f.Negative {
		sign = "-"
	}
	if f.Whole == 0 {
		return fmt.Sprintf("%s%d/%d", sign, f.Numerator, f.Denominator)
	}
	if f.Numerator == 0 {
		return sign + strconv.FormatUint(f.Whole, 10)
	}
	return fmt.Sprintf("%s%d %d/%d", sign, f.Whole, f.Numerator, f.Denominator)
}

// Pow returns base^exp by repeated squaring, and false if the result
// overflows uint64.
func Pow(base, exp uint64) (uint64, bool) {
	result := uint64(1)
	for exp > 0 {
		if exp&1 == 1 {
			var ok bool
			if result, ok = mul(result, base); !ok {
				return 0, false
			}
		}
		exp >>= 1
		if exp > 0 {
			var ok bool
			if base, ok = mul(base, base); !ok {
				return 0, false
			}
		}
	}
	return result, true
}

// addSigned adds two improper fractions using sign-magnitude arithmetic.
func addSigned(a, b Fraction) (Fraction, error) {
	g := gcd(a.Denominator, b.Denominator)
	den, ok := mul(a.Denominator/g, b.Denominator)
	if !ok {
		return Fraction{}, ErrOverflow
	}
	an, ok := mul(a.Numerator, b.Denominator/g)
	if !ok {
		return Fraction{}, ErrOverflow
	}
	bn, ok := mul(b.Numerator, a.Denominator/g)
	if !ok {
		return Fraction{}, ErrOverflow
	}

	var r Fraction
	switch {
	case a.Negative == b.Negative:
		sum, carry := bits.Add64(an, bn, 0)
		if carry != 0 {
			return Fraction{}, ErrOverflow
		}
		r = Fraction{Negative: a.Negative, Numerator: sum}
	case an >= bn:
		r = Fraction{Negative: a.Negative, Numerator: an - bn}
	default:
		r = Fraction{Negative: b.Negative, Numerator: bn - an}
	}
	r.Denominator = den
	return r.ToProperForm(), nil
}

func improperNumerator(whole, num, den uint64) (uint64, bool) {
	w, ok := mul(whole, den)
	if !ok {
		return 0, false
	}
	sum, carry := bits.Add64(w, num, 0)
	return sum, carry == 0
}

func signedValue(negative bool, mag uint64) (int64, error) {
	switch {
	case negative && mag == 1<<63:
		return math.MinInt64, nil
	case mag > math.MaxInt64:
		return 0, ErrOverflow
	case negative:
		return -int64(mag), nil
	default:
		return int64(mag), nil
	}
}

func mul(a, b uint64) (uint64, bool) {
	hi, lo := bits.Mul64(a, b)
	return lo, hi == 0
}

// div divides by g, treating a zero gcd (both operands zero) as 1.
func div(a, g uint64) uint64 {
	if g == 0 {
		return a
	}
	return a / g
}

func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
