package realnum

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/realnum/internal/fraction"
)

// ErrSyntax is returned by Parse for text that is not a number literal.
var ErrSyntax = errors.New("realnum: invalid number literal")

// Parse reads a single number literal. It does not evaluate expressions.
//
// Accepted forms:
//
//	-12        Integer
//	7/2        Rational, stored as written (not reduced)
//	-1 1/2     Rational mixed number
//	1.25, 1e3  Irrational
//
// Input is NFKC-normalized first, so full-width digits, vulgar fractions
// ("1½"), the fraction slash U+2044 and the minus sign U+2212 are accepted.
func Parse(s string) (Real, error) {
	text := normalizeLiteral(s)
	if text == "" {
		return Real{}, fmt.Errorf("%w: empty input", ErrSyntax)
	}

	if strings.Contains(text, "/") {
		return parseFraction(s, text)
	}
	if strings.ContainsAny(text, ".eE") {
		return parseFloat(s, text)
	}

	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return parseFloat(s, text)
		}
		return Real{}, fmt.Errorf("%w: %q", ErrSyntax, s)
	}
	return Int(n), nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// constants.
func MustParse(s string) Real {
	r, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return r
}

func parseFraction(orig, text string) (Real, error) {
	negative := false
	if strings.HasPrefix(text, "-") {
		negative = true
		text = strings.TrimSpace(text[1:])
	}

	var whole uint64
	fields := strings.Fields(text)
	switch len(fields) {
	case 1:
	case 2:
		w, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			return Real{}, fmt.Errorf("%w: %q: whole part", ErrSyntax, orig)
		}
		whole = w
		text = fields[1]
	default:
		return Real{}, fmt.Errorf("%w: %q", ErrSyntax, orig)
	}

	numText, denText, _ := strings.Cut(text, "/")
	num, err := strconv.ParseUint(strings.TrimSpace(numText), 10, 64)
	if err != nil {
		return Real{}, fmt.Errorf("%w: %q: numerator", ErrSyntax, orig)
	}
	den, err := strconv.ParseUint(strings.TrimSpace(denText), 10, 64)
	if err != nil {
		return Real{}, fmt.Errorf("%w: %q: denominator", ErrSyntax, orig)
	}

	f, err := fraction.Mixed(negative, whole, num, den)
	if err != nil {
		return Real{}, fmt.Errorf("%w: %q: %w", ErrSyntax, orig, err)
	}
	return Rat(f), nil
}

func parseFloat(orig, text string) (Real, error) {
	x, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
		return Real{}, fmt.Errorf("%w: %q", ErrSyntax, orig)
	}
	return Float(x), nil
}

// normalizeLiteral maps Unicode number forms onto ASCII literal syntax.
func normalizeLiteral(s string) string {
	var b strings.Builder
	prevDigit := false
	for _, r := range strings.TrimSpace(s) {
		folded := norm.NFKC.String(string(r))
		// "1½" folds to "11⁄2"; keep the whole part separate.
		if prevDigit && r != '⁄' && strings.ContainsRune(folded, '⁄') {
			b.WriteByte(' ')
		}
		b.WriteString(folded)
		prevDigit = unicode.IsDigit(r)
	}

	return strings.NewReplacer(
		"⁄", "/",
		"∕", "/",
		"−", "-",
	).Replace(b.String())
}
