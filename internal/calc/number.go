// Package calc holds the line-item arithmetic shared by document forms,
// persistence, exports and imports. All amounts are kept at full decimal
// precision and rounded only when presented or stored.
package calc

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Inputs are limited to |n| <= 1e15 with at most 20 decimal places.
const (
	maxExponent = 15
	minExponent = -20
)

var maxMagnitude = decimal.New(1, maxExponent)

// ErrOutOfRange is returned by ParseStrict for numbers outside the
// accepted magnitude or precision.
var ErrOutOfRange = errors.New("number out of range")

// inRange reports whether d can be used as an input amount. The exponent is
// checked before the magnitude so huge exponents are never expanded.
func inRange(d decimal.Decimal) bool {
	if d.Coefficient().Sign() == 0 {
		return true
	}
	exp := d.Exponent()
	if exp > maxExponent || exp < minExponent {
		return false
	}
	return d.Abs().LessThanOrEqual(maxMagnitude)
}

// bounded returns d as a Number, or zero when it is out of range.
func bounded(d decimal.Decimal) Number {
	if !inRange(d) {
		return Zero
	}
	return Number{d}
}

// Number is a decimal quantity that decodes leniently: JSON numbers, numeric
// strings, empty strings, null and unparseable values are all accepted, with
// anything that is not a number becoming zero.
type Number struct {
	decimal.Decimal
}

// Zero is the zero Number.
var Zero = Number{}

// NewNumber returns a Number from a float. NaN and infinities become zero.
func NewNumber(f float64) Number {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Zero
	}
	return bounded(decimal.NewFromFloat(f))
}

// NumberFromDecimal wraps a decimal.
func NumberFromDecimal(d decimal.Decimal) Number {
	return Number{d}
}

// ToNumber coerces an arbitrary value into a Number. It never fails.
func ToNumber(v any) Number {
	switch x := v.(type) {
	case nil:
		return Zero
	case Number:
		return x
	case *Number:
		if x == nil {
			return Zero
		}
		return *x
	case decimal.Decimal:
		return Number{x}
	case float64:
		return NewNumber(x)
	case float32:
		return NewNumber(float64(x))
	case int:
		return bounded(decimal.NewFromInt(int64(x)))
	case int32:
		return bounded(decimal.NewFromInt(int64(x)))
	case int64:
		return bounded(decimal.NewFromInt(x))
	case uint:
		return bounded(decimal.NewFromUint64(uint64(x)))
	case uint64:
		return bounded(decimal.NewFromUint64(x))
	case json.Number:
		return parseNumber(string(x))
	case string:
		return parseNumber(x)
	default:
		return Zero
	}
}

func parseNumber(s string) Number {
	n, err := ParseStrict(s)
	if err != nil {
		return Zero
	}
	return n
}

// ParseStrict parses a numeric string, ignoring surrounding space and
// thousands separators. Unlike ToNumber it reports malformed input,
// including values beyond 1e15 or with more than 20 decimal places.
func ParseStrict(s string) (Number, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, err
	}
	if !inRange(d) {
		return Zero, fmt.Errorf("%w: %q", ErrOutOfRange, s)
	}
	return Number{d}, nil
}

// UnmarshalJSON implements json.Unmarshaler. Malformed input decodes to zero.
func (n *Number) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "" || raw == "null" {
		*n = Zero
		return nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			*n = Zero
			return nil
		}
		*n = parseNumber(s)
		return nil
	}
	*n = parseNumber(raw)
	return nil
}

// MarshalJSON encodes the number as an unquoted JSON number.
func (n Number) MarshalJSON() ([]byte, error) {
	return []byte(n.Decimal.String()), nil
}

// Round2 rounds half away from zero to two decimal places.
func (n Number) Round2() Number {
	return Number{n.Decimal.Round(2)}
}

// Fixed2 formats the number rounded to two decimal places.
func (n Number) Fixed2() string {
	return n.Decimal.StringFixed(2)
}

// NonNegative returns zero for negative numbers and n otherwise.
func (n Number) NonNegative() Number {
	if n.Decimal.IsNegative() {
		return Zero
	}
	return n
}
