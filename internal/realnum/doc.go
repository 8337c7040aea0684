// Package realnum provides Real, the exact-where-possible number used to
// evaluate and compare numeric answers.
//
// A Real is exactly one of:
//   - Integer: an int64
//   - Rational: a fraction.Fraction
//   - Irrational: a float64 approximation
//
// The zero Real is Unset. Every read of an Unset value fails with an
// *InvalidRealError, except PlainText (renders "") and IsWholeNumber
// (reports false) so callers can probe uninitialized optional fields.
//
// PROMOTION:
//
// Binary operators dispatch on the pair of operand variants. The result takes
// the widest operand's variant, where Irrational > Rational > Integer:
//
//	lhs \ rhs    Rational          Irrational        Integer
//	Rational     frac∘frac  → Rat  frac∘float → Irr  frac∘whole  → Rat
//	Irrational   float∘frac → Irr  float∘float → Irr float∘float → Irr
//	Integer      whole∘frac → Rat  float∘float → Irr int∘int     → Int
//
// Integer∘Integer is the only cell that stays Integer. Integer division that
// does not divide evenly yields an unreduced Rational |lhs|/|rhs|. Results
// that overflow their exact representation widen to Irrational.
//
// ROOTS:
//
// Exact roots are found by integer search, so Root(Int(8), 3) is exactly
// Int(2) with no float drift. Only when no integer root exists does the
// engine fall back to a float approximation. A fractional exponent p/q is
// evaluated as the q-th root of base^p.
//
// ORDERING:
//
// Compare orders values by their float64 conversions. Distinct Rationals
// closer than float64 resolution compare equal; use ExactlyEqual for exact
// comparison between Integer and Rational values.
//
// Real values are immutable and safe for concurrent use.
package realnum
