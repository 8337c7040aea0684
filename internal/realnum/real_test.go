package realnum

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/realnum/internal/fraction"
)

func TestZeroValueIsUnset(t *testing.T) {
	var r Real
	assert.True(t, r.IsUnset())
	assert.Equal(t, KindUnset, r.Kind())
	assert.False(t, r.IsInteger())
	assert.False(t, r.IsRational())
	assert.False(t, r.IsIrrational())
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindUnset, "unset"},
		{KindInteger, "integer"},
		{KindRational, "rational"},
		{KindIrrational, "irrational"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.String())
		got, ok := ParseKind(tt.want)
		assert.True(t, ok)
		assert.Equal(t, tt.kind, got)
	}

	_, ok := ParseKind("complex")
	assert.False(t, ok)
}

func TestConstants(t *testing.T) {
	assert.True(t, Zero().Equal(Int(0)))
	assert.True(t, One().Equal(Int(1)))

	half := Half()
	require.True(t, half.IsRational())
	f, err := half.Rational()
	require.NoError(t, err)
	assert.Equal(t, fraction.MustNew(1, 2), f)
}

func TestAccessors(t *testing.T) {
	n, err := Int(7).Integer()
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)

	x, err := Float(1.5).Irrational()
	require.NoError(t, err)
	assert.Equal(t, 1.5, x)

	_, err = Float(1.5).Integer()
	assert.Equal(t, CodeWrongKind, CodeOf(err))

	_, err = Int(1).Rational()
	assert.Equal(t, CodeWrongKind, CodeOf(err))

	_, err = Int(1).Irrational()
	assert.Equal(t, CodeWrongKind, CodeOf(err))

	_, err = Real{}.Integer()
	assert.True(t, IsUnset(err))
}

func TestIsWholeNumber(t *testing.T) {
	wholeRat, err := fraction.Mixed(false, 0, 6, 3)
	require.NoError(t, err)

	tests := []struct {
		name string
		r    Real
		want bool
	}{
		{"integer", Int(-4), true},
		{"whole rational", Rat(wholeRat), true},
		{"proper rational", Half(), false},
		{"irrational", Float(2), false},
		{"unset", Real{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.r.IsWholeNumber())
		})
	}
}

func TestIsNegative(t *testing.T) {
	negZero, err := fraction.Mixed(true, 0, 0, 3)
	require.NoError(t, err)

	tests := []struct {
		name string
		r    Real
		want bool
	}{
		{"negative integer", Int(-1), true},
		{"zero integer", Int(0), false},
		{"negative rational", Rat(fraction.MustNew(-1, 2)), true},
		{"positive rational", Half(), false},
		{"negative zero rational", Rat(negZero), false},
		{"negative irrational", Float(-0.5), true},
		{"positive irrational", Float(0.5), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.r.IsNegative()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToDouble(t *testing.T) {
	tests := []struct {
		r    Real
		want float64
	}{
		{Int(-3), -3},
		{Rat(fraction.MustNew(-7, 2)), -3.5},
		{Float(math.Pi), math.Pi},
	}

	for _, tt := range tests {
		got, err := tt.r.ToDouble()
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestAsWholeNumber(t *testing.T) {
	n, ok, err := Int(9).AsWholeNumber()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(9), n)

	n, ok, err = Rat(fraction.MustNew(-8, 4)).AsWholeNumber()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(-2), n)

	_, ok, err = Half().AsWholeNumber()
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = Float(2).AsWholeNumber()
	require.NoError(t, err)
	assert.False(t, ok)

	huge, err := fraction.Mixed(false, 0, math.MaxUint64, 1)
	require.NoError(t, err)
	_, ok, err = Rat(huge).AsWholeNumber()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPlainText(t *testing.T) {
	tests := []struct {
		name string
		r    Real
		want string
	}{
		{"integer", Int(-12), "-12"},
		{"rational improper", Rat(fraction.MustNew(7, 2)), "7/2"},
		{"negative rational", Rat(fraction.MustNew(-1, 3)), "-1/3"},
		{"irrational", Float(0.1), "0.1"},
		{"irrational no exponent", Float(1e21), "1000000000000000000000"},
		{"irrational shortest digits", Float(1 << 63), "9223372036854776000"},
		{"negative zero rational", Rat(fraction.Fraction{Negative: true, Denominator: 5}), "0/5"},
		{"unset", Real{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.r.PlainText())
			assert.Equal(t, tt.want, tt.r.String())
		})
	}
}

func TestEqualIsStructural(t *testing.T) {
	unreduced, err := fraction.Mixed(false, 0, 6, 4)
	require.NoError(t, err)

	assert.True(t, Int(1).Equal(Int(1)))
	assert.True(t, Real{}.Equal(Real{}))
	assert.False(t, Int(1).Equal(Float(1)))
	assert.False(t, Rat(unreduced).Equal(Rat(fraction.MustNew(3, 2))))
}

func TestNormalize(t *testing.T) {
	whole, err := Rat(fraction.MustNew(4, 2)).Normalize()
	require.NoError(t, err)
	assert.True(t, whole.Equal(Int(2)))

	unreduced, err := fraction.Mixed(false, 0, 6, 4)
	require.NoError(t, err)
	reduced, err := Rat(unreduced).Normalize()
	require.NoError(t, err)
	assert.True(t, reduced.Equal(Rat(fraction.MustNew(3, 2))))

	same, err := Float(0.5).Normalize()
	require.NoError(t, err)
	assert.True(t, same.Equal(Float(0.5)))

	_, err = Real{}.Normalize()
	assert.True(t, IsUnset(err))
}

func TestUnsetReadsFail(t *testing.T) {
	var unset Real

	reads := map[string]func() error{
		"is_negative": func() error { _, err := unset.IsNegative(); return err },
		"to_double":   func() error { _, err := unset.ToDouble(); return err },
		"as_whole":    func() error { _, _, err := unset.AsWholeNumber(); return err },
		"neg":         func() error { _, err := unset.Neg(); return err },
		"abs":         func() error { _, err := unset.Abs(); return err },
		"sign":        func() error { _, err := unset.Sign(); return err },
		"sqrt":        func() error { _, err := unset.Sqrt(); return err },
		"root":        func() error { _, err := unset.Root(3); return err },
		"pow base":    func() error { _, err := unset.Pow(One()); return err },
		"pow exp":     func() error { _, err := One().Pow(unset); return err },
		"add":         func() error { _, err := unset.Add(One()); return err },
		"sub":         func() error { _, err := One().Sub(unset); return err },
		"mul":         func() error { _, err := unset.Mul(One()); return err },
		"div":         func() error { _, err := One().Div(unset); return err },
		"compare":     func() error { _, err := Compare(unset, One()); return err },
		"approx":      func() error { _, err := unset.IsApproximatelyEqualTo(One()); return err },
		"approx zero": func() error { _, err := unset.IsApproximatelyZero(); return err },
		"exactly":     func() error { _, err := One().ExactlyEqual(unset); return err },
		"normalize":   func() error { _, err := unset.Normalize(); return err },
	}

	for name, read := range reads {
		t.Run(name, func(t *testing.T) {
			err := read()
			require.Error(t, err)
			assert.True(t, IsInvalidReal(err))
			assert.True(t, IsUnset(err))
		})
	}

	// The two total reads.
	assert.Equal(t, "", unset.PlainText())
	assert.False(t, unset.IsWholeNumber())
}

func TestErrorMessage(t *testing.T) {
	_, err := One().Add(Real{})
	require.Error(t, err)
	assert.Equal(t, "INVALID_REAL: add: value is unset (operand=rhs)", err.Error())

	var re *InvalidRealError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "add", re.Op)
	assert.Equal(t, "rhs", re.Operand)
}
