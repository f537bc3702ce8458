// money implements the exact-decimal currency type used for every amount
// in the system. Amounts are immutable; all arithmetic is exact decimal,
// never binary float.
package money

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// QuantityScale is the fixed scale applied when multiplying an amount by a
// fractional recipe quantity. Rounding is half-even and happens once at the
// point of use, never accumulated across steps.
const QuantityScale = 6

// ErrInvalidDecimal is returned by Parse for anything that is not a finite
// exact decimal: malformed strings, NaN, Infinity.
var ErrInvalidDecimal = errors.New("invalid decimal")

// Amount is an exact-decimal currency value. The zero value is 0.
type Amount struct {
	dec decimal.Decimal
}

// Parts is the structured decimal input form: Digits is the unsigned digit
// string, the value is sign * digits * 10^exponent.
type Parts struct {
	Digits   string `json:"digits"`
	Exponent int32  `json:"exponent"`
	Sign     int    `json:"sign"`
}

// Parse normalizes the accepted input forms (number, canonical decimal
// string, Parts) into an Amount. Anything else fails with ErrInvalidDecimal.
func Parse(v interface{}) (Amount, error) {
	switch x := v.(type) {
	case Amount:
		return x, nil
	case string:
		return parseString(x)
	case json.Number:
		return parseString(x.String())
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return Amount{}, fmt.Errorf("%w: non-finite number", ErrInvalidDecimal)
		}
		return Amount{decimal.NewFromFloat(x)}, nil
	case float32:
		return Parse(float64(x))
	case int:
		return Amount{decimal.NewFromInt(int64(x))}, nil
	case int64:
		return Amount{decimal.NewFromInt(x)}, nil
	case uint:
		return Amount{decimal.NewFromUint64(uint64(x))}, nil
	case Parts:
		return fromParts(x)
	case *Parts:
		if x == nil {
			return Amount{}, fmt.Errorf("%w: nil parts", ErrInvalidDecimal)
		}
		return fromParts(*x)
	case map[string]interface{}:
		return partsFromMap(x)
	case nil:
		return Amount{}, fmt.Errorf("%w: nil input", ErrInvalidDecimal)
	default:
		return Amount{}, fmt.Errorf("%w: unsupported input type %T", ErrInvalidDecimal, v)
	}
}

// MustParse is Parse for trusted literals (seeds, tests). Panics on error.
func MustParse(v interface{}) Amount {
	a, err := Parse(v)
	if err != nil {
		panic(err)
	}
	return a
}

func parseString(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Amount{}, fmt.Errorf("%w: empty string", ErrInvalidDecimal)
	}
	switch strings.ToLower(strings.TrimLeft(s, "+-")) {
	case "nan", "inf", "infinity":
		return Amount{}, fmt.Errorf("%w: %q", ErrInvalidDecimal, s)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("%w: %q", ErrInvalidDecimal, s)
	}
	return Amount{d}, nil
}

func fromParts(p Parts) (Amount, error) {
	digits := strings.TrimSpace(p.Digits)
	if digits == "" {
		return Amount{}, fmt.Errorf("%w: empty digits", ErrInvalidDecimal)
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return Amount{}, fmt.Errorf("%w: digits %q", ErrInvalidDecimal, p.Digits)
		}
	}
	bi, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return Amount{}, fmt.Errorf("%w: digits %q", ErrInvalidDecimal, p.Digits)
	}
	if p.Sign < 0 {
		bi.Neg(bi)
	}
	return Amount{decimal.NewFromBigInt(bi, p.Exponent)}, nil
}

func partsFromMap(m map[string]interface{}) (Amount, error) {
	raw, err := json.Marshal(m)
	if err != nil {
		return Amount{}, fmt.Errorf("%w: %v", ErrInvalidDecimal, err)
	}
	var p Parts
	if err := json.Unmarshal(raw, &p); err != nil {
		return Amount{}, fmt.Errorf("%w: %v", ErrInvalidDecimal, err)
	}
	return fromParts(p)
}

func (a Amount) Add(b Amount) Amount { return Amount{a.dec.Add(b.dec)} }
func (a Amount) Sub(b Amount) Amount { return Amount{a.dec.Sub(b.dec)} }

// MulInt multiplies by an integer quantity. Exact, no rounding.
func (a Amount) MulInt(n int64) Amount {
	return Amount{a.dec.Mul(decimal.NewFromInt(n))}
}

// MulQuantity multiplies by a fractional quantity and rounds half-even to
// QuantityScale.
func (a Amount) MulQuantity(q Amount) Amount {
	return Amount{a.dec.Mul(q.dec).RoundBank(QuantityScale)}
}

// Cmp returns -1, 0 or 1.
func (a Amount) Cmp(b Amount) int { return a.dec.Cmp(b.dec) }

// Equal reports exact value equality, independent of how either amount was
// constructed ("1.50", 1.5 and {digits:"15", exponent:-1} are all equal).
func (a Amount) Equal(b Amount) bool { return a.dec.Equal(b.dec) }

func (a Amount) IsZero() bool     { return a.dec.IsZero() }
func (a Amount) IsNegative() bool { return a.dec.IsNegative() }
func (a Amount) IsPositive() bool { return a.dec.IsPositive() }

// CeilInt64 rounds up to the nearest integer. Used when a fractional recipe
// quantity bottoms out on stock that is held in whole units.
func (a Amount) CeilInt64() int64 { return a.dec.Ceil().IntPart() }

// String returns the canonical decimal representation.
func (a Amount) String() string { return a.dec.String() }

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.dec.String())
}

// UnmarshalJSON accepts the three inbound forms: JSON number, decimal
// string, or a {digits, exponent, sign} object.
func (a *Amount) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		return fmt.Errorf("%w: empty input", ErrInvalidDecimal)
	}
	switch trimmed[0] {
	case '{':
		var p Parts
		if err := json.Unmarshal(data, &p); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidDecimal, err)
		}
		parsed, err := fromParts(p)
		if err != nil {
			return err
		}
		*a = parsed
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidDecimal, err)
		}
		parsed, err := parseString(s)
		if err != nil {
			return err
		}
		*a = parsed
		return nil
	default:
		parsed, err := parseString(trimmed)
		if err != nil {
			return err
		}
		*a = parsed
		return nil
	}
}

// Value stores the canonical string so MySQL DECIMAL columns hold the exact
// value.
func (a Amount) Value() (driver.Value, error) {
	return a.dec.String(), nil
}

func (a *Amount) Scan(src interface{}) error {
	if src == nil {
		*a = Amount{}
		return nil
	}
	var d decimal.Decimal
	if err := d.Scan(src); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDecimal, err)
	}
	*a = Amount{d}
	return nil
}

// Zero is the 0 amount.
func Zero() Amount { return Amount{} }
