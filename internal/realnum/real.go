package realnum

import (
	"strconv"

	"github.com/roach88/realnum/internal/fraction"
)

// Kind identifies the active variant of a Real.
type Kind uint8

const (
	// KindUnset is the zero Kind: an uninitialized Real.
	KindUnset Kind = iota
	// KindInteger holds an int64.
	KindInteger
	// KindRational holds a fraction.Fraction.
	KindRational
	// KindIrrational holds a float64 approximation.
	KindIrrational
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindRational:
		return "rational"
	case KindIrrational:
		return "irrational"
	default:
		return "unset"
	}
}

// ParseKind returns the Kind named by s, as produced by Kind.String.
func ParseKind(s string) (Kind, bool) {
	for _, k := range []Kind{KindUnset, KindInteger, KindRational, KindIrrational} {
		if k.String() == s {
			return k, true
		}
	}
	return KindUnset, false
}

// value is a sealed interface: only integer, rational and irrational
// implement it. A nil value is the Unset state.
type value interface {
	realValue()
}

type integer int64

func (integer) realValue() {}

type rational struct {
	f fraction.Fraction
}

func (rational) realValue() {}

type irrational float64

func (irrational) realValue() {}

// Real is an immutable number that is an Integer, a Rational, an Irrational,
// or Unset. The zero value is Unset.
type Real struct {
	v value
}

// Int creates an Integer.
func Int(n int64) Real {
	return Real{v: integer(n)}
}

// Rat creates a Rational. The fraction is stored as given, except that a
// zero is never negative; f must have a non-zero denominator.
func Rat(f fraction.Fraction) Real {
	if f.IsZero() {
		f.Negative = false
	}
	return Real{v: rational{f: f}}
}

// Float creates an Irrational.
func Float(x float64) Real {
	return Real{v: irrational(x)}
}

// Zero returns Integer 0.
func Zero() Real { return Int(0) }

// One returns Integer 1.
func One() Real { return Int(1) }

// Half returns Rational 1/2.
func Half() Real {
	return Rat(fraction.Fraction{Numerator: 1, Denominator: 2})
}

// Kind returns the active variant.
func (r Real) Kind() Kind {
	switch r.v.(type) {
	case integer:
		return KindInteger
	case rational:
		return KindRational
	case irrational:
		return KindIrrational
	default:
		return KindUnset
	}
}

// IsInteger reports whether r is an Integer.
func (r Real) IsInteger() bool { return r.Kind() == KindInteger }

// IsRational reports whether r is a Rational.
func (r Real) IsRational() bool { return r.Kind() == KindRational }

// IsIrrational reports whether r is an Irrational.
func (r Real) IsIrrational() bool { return r.Kind() == KindIrrational }

// IsUnset reports whether r is Unset.
func (r Real) IsUnset() bool { return r.v == nil }

// Integer returns the value of an Integer.
func (r Real) Integer() (int64, error) {
	if v, ok := r.v.(integer); ok {
		return int64(v), nil
	}
	if r.v == nil {
		return 0, unsetError("integer", "value")
	}
	return 0, wrongKindError("integer", KindInteger, r.Kind())
}

// Rational returns the fraction of a Rational.
func (r Real) Rational() (fraction.Fraction, error) {
	if v, ok := r.v.(rational); ok {
		return v.f, nil
	}
	if r.v == nil {
		return fraction.Fraction{}, unsetError("rational", "value")
	}
	return fraction.Fraction{}, wrongKindError("rational", KindRational, r.Kind())
}

// Irrational returns the float of an Irrational.
func (r Real) Irrational() (float64, error) {
	if v, ok := r.v.(irrational); ok {
		return float64(v), nil
	}
	if r.v == nil {
		return 0, unsetError("irrational", "value")
	}
	return 0, wrongKindError("irrational", KindIrrational, r.Kind())
}

// IsWholeNumber reports whether r is an Integer or a Rational with no
// fractional part. Unlike other reads it is total: Unset reports false.
func (r Real) IsWholeNumber() bool {
	switch v := r.v.(type) {
	case integer:
		return true
	case rational:
		return v.f.IsOnlyWholeNumber()
	default:
		return false
	}
}

// IsNegative reports whether r is below zero.
func (r Real) IsNegative() (bool, error) {
	switch v := r.v.(type) {
	case nil:
		return false, unsetError("is_negative", "value")
	case integer:
		return v < 0, nil
	case rational:
		return v.f.Negative && !v.f.IsZero(), nil
	case irrational:
		return v < 0, nil
	}
	panic(unknownVariant(r.v))
}

// ToDouble converts r to a float64.
func (r Real) ToDouble() (float64, error) {
	switch v := r.v.(type) {
	case nil:
		return 0, unsetError("to_double", "value")
	case integer:
		return float64(v), nil
	case rational:
		return v.f.ToDouble(), nil
	case irrational:
		return float64(v), nil
	}
	panic(unknownVariant(r.v))
}

// AsWholeNumber returns the integer value of r when it has one: the value of
// an Integer, or of a Rational with no fractional part that fits in int64.
// Irrationals never have one.
func (r Real) AsWholeNumber() (int64, bool, error) {
	switch v := r.v.(type) {
	case nil:
		return 0, false, unsetError("as_whole_number", "value")
	case integer:
		return int64(v), true, nil
	case rational:
		if !v.f.IsOnlyWholeNumber() {
			return 0, false, nil
		}
		n, err := v.f.ToWholeNumber()
		if err != nil {
			return 0, false, nil
		}
		return n, true, nil
	case irrational:
		return 0, false, nil
	}
	panic(unknownVariant(r.v))
}

// PlainText renders r as standalone numeric text. Rationals are written in
// improper form ("7/2", never "3 1/2"), Irrationals without exponent
// notation. Unset renders as "".
func (r Real) PlainText() string {
	switch v := r.v.(type) {
	case integer:
		return strconv.FormatInt(int64(v), 10)
	case rational:
		return v.f.ToImproperForm().String()
	case irrational:
		return strconv.FormatFloat(float64(v), 'f', -1, 64)
	default:
		return ""
	}
}

// String implements fmt.Stringer using PlainText.
func (r Real) String() string {
	return r.PlainText()
}

// Equal reports structural equality: same variant and same stored value.
// Rational 6/4 is not Equal to Rational 3/2; see ExactlyEqual.
func (r Real) Equal(other Real) bool {
	return r.v == other.v
}

// Normalize demotes a whole-valued Rational that fits in int64 to Integer
// and reduces any other Rational to proper form. Integers and Irrationals
// are returned unchanged.
func (r Real) Normalize() (Real, error) {
	switch v := r.v.(type) {
	case nil:
		return Real{}, unsetError("normalize", "value")
	case rational:
		if n, ok, _ := r.AsWholeNumber(); ok {
			return Int(n), nil
		}
		return Rat(v.f.ToProperForm()), nil
	default:
		return r, nil
	}
}
