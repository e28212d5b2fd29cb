package ujson

import (
	"math"
	"strconv"
)

// Number holds a JSON number. It retains the original decimal text when the
// value came from the parser (so describe() can round-trip it exactly) and
// caches a float64 for ordinary arithmetic and comparisons. The schema
// package's numeric keywords (multipleOf and the minimum/maximum bounds)
// parse Text() into a *big.Rat rather than relying on the cached float;
// enum, const and uniqueItems compare numbers by the cached float64 (see
// EqualForSchema).
type Number struct {
	text string
	f    float64
	// hasText is set when the Number was built from parser text or from an
	// integer; for a Number built from a float64 it is false and Text()
	// falls back to a canonical float formatting.
	hasText bool
}

func numberFromFloat64(f float64) Number {
	return Number{f: f}
}

func numberFromInt64(i int64) Number {
	return Number{f: float64(i), text: strconv.FormatInt(i, 10), hasText: true}
}

// NewNumberFromText constructs a Number from a decimal text produced by the
// tokenizer, caching its float64 approximation. The text is trusted to be a
// syntactically valid JSON number; invalid text yields a zero cached float.
func NewNumberFromText(text string) Number {
	f, _ := strconv.ParseFloat(text, 64)
	return Number{text: text, f: f, hasText: true}
}

// Float64 returns the number's float64 approximation.
func (n Number) Float64() float64 { return n.f }

// Text returns the original decimal text if the Number was parsed or built
// from an integer, or a shortest round-trip float formatting otherwise.
func (n Number) Text() string {
	if n.hasText {
		return n.text
	}
	return strconv.FormatFloat(n.f, 'g', -1, 64)
}

// Int64 reports whether n represents an integral value exactly representable
// as int64, returning it if so.
func (n Number) Int64() (int64, bool) {
	if n.f < math.MinInt64 || n.f >= math.MaxInt64 {
		return 0, false
	}
	i := int64(n.f)
	if float64(i) != n.f {
		return 0, false
	}
	return i, true
}

// IsInteger reports whether n has a zero fractional part, matching the
// schema "integer" type contract. Magnitudes beyond the int64 range still
// count as integral when they have no fraction (e.g. 1e30).
func (n Number) IsInteger() bool {
	return math.Trunc(n.f) == n.f
}
