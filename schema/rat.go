package schema

import (
	"fmt"
	"math/big"
	"strings"

	ujson "github.com/alfmep/libujson"
)

// Rat wraps a big.Rat to give numeric keywords (multipleOf, maximum, ...)
// exact-precision comparison instead of float64 rounding.
type Rat struct {
	*big.Rat
}

// convertToBigRat converts various Go scalar types to big.Rat.
func convertToBigRat(data interface{}) (*big.Rat, error) {
	var str string
	switch v := data.(type) {
	case float64, float32, int, int64, int32, int16, int8, uint, uint64, uint32, uint16, uint8:
		str = fmt.Sprint(v)
	case string:
		str = v
	default:
		return nil, ErrUnsupportedRatType
	}

	numRat := new(big.Rat)
	if _, ok := numRat.SetString(str); !ok {
		return nil, ErrRatConversion
	}
	return numRat, nil
}

// NewRat creates a new Rat instance from a given Go value. Used by the
// fluent keyword builders (keywords.go) where schema authors supply plain
// float64/int literals.
func NewRat(value interface{}) *Rat {
	converted, err := convertToBigRat(value)
	if err != nil {
		return nil
	}
	return &Rat{converted}
}

// NewRatFromValue builds a Rat from a decoded schema number, preserving
// the original decimal text rather than round-tripping through float64.
func NewRatFromValue(v ujson.Value) (*Rat, error) {
	n, err := v.Num()
	if err != nil {
		return nil, err
	}
	r := new(big.Rat)
	if _, ok := r.SetString(n.Text()); !ok {
		return nil, ErrRatConversion
	}
	return &Rat{r}, nil
}

// FormatRat formats a Rat as a string.
func FormatRat(r *Rat) string {
	if r == nil {
		return "null"
	}

	// Check if the Rat is an integer
	if r.IsInt() {
		return r.Num().String() // Output as a plain integer string
	}

	// Format as a decimal maintaining precision
	dec := r.FloatString(10) // You might adjust precision as needed

	// Trim unnecessary trailing zeros and decimal point if no fractional part
	trimmedDec := strings.TrimRight(dec, "0")
	trimmedDec = strings.TrimRight(trimmedDec, ".")

	if trimmedDec == "" {
		return "0" // correct trimming edge case of "0.0000"
	}

	return trimmedDec
}
