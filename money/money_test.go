package money

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
)

func TestParseAcceptedForms(t *testing.T) {
	cases := []struct {
		name  string
		input interface{}
		want  string
	}{
		{"canonical string", "10.50", "10.5"},
		{"negative string", "-3.25", "-3.25"},
		{"integer", 42, "42"},
		{"int64", int64(-7), "-7"},
		{"float", 19.99, "19.99"},
		{"json number", json.Number("0.000001"), "0.000001"},
		{"parts positive", Parts{Digits: "1050", Exponent: -2, Sign: 1}, "10.5"},
		{"parts negative", Parts{Digits: "15", Exponent: -1, Sign: -1}, "-1.5"},
		{"parts scaled up", Parts{Digits: "3", Exponent: 2, Sign: 1}, "300"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.input)
			if err != nil {
				t.Fatalf("Parse(%v): %v", tc.input, err)
			}
			if got.String() != tc.want {
				t.Fatalf("Parse(%v) = %s, want %s", tc.input, got.String(), tc.want)
			}
		})
	}
}

func TestParseRejectsNonDecimals(t *testing.T) {
	inputs := []interface{}{
		"", "  ", "abc", "12.3.4", "NaN", "nan", "Inf", "-Infinity",
		math.NaN(), math.Inf(1), math.Inf(-1),
		Parts{Digits: "", Exponent: 0, Sign: 1},
		Parts{Digits: "12a", Exponent: 0, Sign: 1},
		nil,
		[]string{"10"},
	}

	for _, in := range inputs {
		if _, err := Parse(in); !errors.Is(err, ErrInvalidDecimal) {
			t.Errorf("Parse(%v) = %v, want ErrInvalidDecimal", in, err)
		}
	}
}

func TestEqualityIndependentOfRepresentation(t *testing.T) {
	fromString := MustParse("1.50")
	fromFloat := MustParse(1.5)
	fromParts := MustParse(Parts{Digits: "150", Exponent: -2, Sign: 1})

	if !fromString.Equal(fromFloat) || !fromString.Equal(fromParts) {
		t.Fatalf("representations of 1.5 not equal: %s %s %s",
			fromString, fromFloat, fromParts)
	}
}

// Add then Sub must round-trip exactly, including values past float64
// precision.
func TestAddSubExact(t *testing.T) {
	pairs := [][2]string{
		{"0.1", "0.2"},
		{"10.50", "0.000001"},
		{"-4.35", "2.17"},
		{"123456789012345678901234567890.123456789", "0.000000001"},
		{"0.30000000000000000000000004", "1"},
	}

	for _, p := range pairs {
		a := MustParse(p[0])
		b := MustParse(p[1])
		if got := a.Add(b).Sub(b); !got.Equal(a) {
			t.Errorf("(%s + %s) - %s = %s, want %s", a, b, b, got, a)
		}
	}
}

func TestFloatDriftAvoided(t *testing.T) {
	sum := MustParse("0.1").Add(MustParse("0.2"))
	if !sum.Equal(MustParse("0.3")) {
		t.Fatalf("0.1 + 0.2 = %s, want 0.3", sum)
	}
}

func TestMulInt(t *testing.T) {
	if got := MustParse("19.99").MulInt(3); !got.Equal(MustParse("59.97")) {
		t.Fatalf("19.99 * 3 = %s", got)
	}
	if got := MustParse("100").MulInt(0); !got.IsZero() {
		t.Fatalf("100 * 0 = %s", got)
	}
}

func TestMulQuantityRoundsHalfEvenAtScale6(t *testing.T) {
	cases := []struct {
		price, qty, want string
	}{
		{"10", "0.25", "2.5"},
		// 0.0000015: half-even at scale 6 rounds to the even digit
		{"1", "0.0000015", "0.000002"},
		{"1", "0.0000025", "0.000002"},
		{"3.333333", "3", "9.999999"},
	}

	for _, tc := range cases {
		got := MustParse(tc.price).MulQuantity(MustParse(tc.qty))
		if !got.Equal(MustParse(tc.want)) {
			t.Errorf("%s * %s = %s, want %s", tc.price, tc.qty, got, tc.want)
		}
	}
}

func TestCeilInt64(t *testing.T) {
	if got := MustParse("2.01").CeilInt64(); got != 3 {
		t.Fatalf("ceil(2.01) = %d", got)
	}
	if got := MustParse("5").CeilInt64(); got != 5 {
		t.Fatalf("ceil(5) = %d", got)
	}
}

func TestUnmarshalJSONTriForm(t *testing.T) {
	var payload struct {
		A Amount `json:"a"`
		B Amount `json:"b"`
		C Amount `json:"c"`
	}
	raw := `{"a": 12.5, "b": "12.50", "c": {"digits": "125", "exponent": -1, "sign": 1}}`
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !payload.A.Equal(payload.B) || !payload.B.Equal(payload.C) {
		t.Fatalf("tri-form mismatch: %s %s %s", payload.A, payload.B, payload.C)
	}

	var bad Amount
	if err := json.Unmarshal([]byte(`"not-money"`), &bad); !errors.Is(err, ErrInvalidDecimal) {
		t.Fatalf("expected ErrInvalidDecimal, got %v", err)
	}
}

func TestScanValueRoundTrip(t *testing.T) {
	orig := MustParse("1234.567890")
	v, err := orig.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}

	var scanned Amount
	if err := scanned.Scan(v); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if !scanned.Equal(orig) {
		t.Fatalf("round trip %s -> %s", orig, scanned)
	}
}
