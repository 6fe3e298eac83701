// Package money implements exact fixed-point arithmetic for monetary values.
//
// Every amount is held as a decimal rounded to a fixed scale of two, so the
// value is equivalent to an integer count of minor units (cents). All
// arithmetic is performed on that exact representation; binary floating
// point never enters an amount. Two values are equal iff their minor-unit
// integers are equal.
//
// The package also owns pay-frequency conversion. The multipliers are fixed
// (Weekly 52, Bi-weekly 26, Monthly 12, Yearly 1) in both directions, so a
// monthly figure derived from a yearly one is always exactly yearly/12.
// Weeks-per-month approximations such as 4.33 are not used anywhere.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Scale is the number of decimal places carried by every amount.
const Scale = 2

// Money is an exact monetary amount at the fixed scale.
// The zero value is a valid zero amount.
type Money struct {
	d decimal.Decimal
}

// Zero returns the zero amount.
func Zero() Money {
	return Money{}
}

// FromUnits builds an amount from a count of minor units (cents).
func FromUnits(units int64) Money {
	return Money{d: decimal.New(units, -Scale)}
}

// FromDecimal builds an amount from an arbitrary decimal, rounding
// half-away-from-zero to the fixed scale.
func FromDecimal(d decimal.Decimal) Money {
	return Money{d: d.Round(Scale)}
}

// FromFloat builds an amount from a float64, rounding to the fixed scale.
// Intended for test fixtures and literals; parsing user input should go
// through ParseInput.
func FromFloat(f float64) Money {
	return FromDecimal(decimal.NewFromFloat(f))
}

// MustParse parses s and panics on failure. For constants and fixtures.
func MustParse(s string) Money {
	m, err := ParseInput(s)
	if err != nil {
		panic(fmt.Sprintf("money: cannot parse %q: %v", s, err))
	}
	return m
}

// Units returns the amount as an integer number of minor units.
func (m Money) Units() int64 {
	return m.d.Shift(Scale).IntPart()
}

// Decimal returns the underlying decimal value.
func (m Money) Decimal() decimal.Decimal {
	return m.d
}

// Add returns m + o.
func (m Money) Add(o Money) Money {
	return Money{d: m.d.Add(o.d)}
}

// Sub returns m - o.
func (m Money) Sub(o Money) Money {
	return Money{d: m.d.Sub(o.d)}
}

// MulInt returns m scaled by an integer factor.
func (m Money) MulInt(n int64) Money {
	return Money{d: m.d.Mul(decimal.NewFromInt(n))}
}

// MulFloat returns m scaled by an arbitrary factor, rounded back to cents.
func (m Money) MulFloat(f float64) Money {
	return FromDecimal(m.d.Mul(decimal.NewFromFloat(f)))
}

// Div returns m divided by an integer divisor, rounded half-away-from-zero
// to cents. Division by zero returns the zero amount.
func (m Money) Div(n int64) Money {
	if n == 0 {
		return Zero()
	}
	return FromDecimal(m.d.Div(decimal.NewFromInt(n)))
}

// Abs returns the absolute value.
func (m Money) Abs() Money {
	return Money{d: m.d.Abs()}
}

// Neg returns the negated amount.
func (m Money) Neg() Money {
	return Money{d: m.d.Neg()}
}

// Cmp compares two amounts: -1 if m < o, 0 if equal, 1 if m > o.
func (m Money) Cmp(o Money) int {
	return m.d.Cmp(o.d)
}

// Equal reports whether the minor-unit integers are equal.
func (m Money) Equal(o Money) bool {
	return m.d.Equal(o.d)
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.d.IsZero()
}

// IsPositive reports whether the amount is an inflow.
func (m Money) IsPositive() bool {
	return m.d.IsPositive()
}

// IsNegative reports whether the amount is an outflow.
func (m Money) IsNegative() bool {
	return m.d.IsNegative()
}

// String returns the canonical fixed-scale form, e.g. "-1234.56".
func (m Money) String() string {
	return m.d.StringFixed(Scale)
}

// MarshalJSON encodes the amount as its canonical string form.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON decodes an amount from either a JSON string or number.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", s, err)
	}
	m.d = d.Round(Scale)
	return nil
}

// FormatOptions controls display formatting. The currency symbol and
// grouping are injected by the caller; the engine never hardcodes a locale.
type FormatOptions struct {
	ShowCents bool
	Symbol    string
}

// Format renders the amount for display with thousands grouping.
// With ShowCents false the amount is rounded to whole units.
func (m Money) Format(opts FormatOptions) string {
	d := m.d
	places := int32(Scale)
	if !opts.ShowCents {
		d = d.Round(0)
		places = 0
	}

	neg := d.IsNegative()
	s := d.Abs().StringFixed(places)

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i:]
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(opts.Symbol)
	b.WriteString(groupThousands(intPart))
	b.WriteString(fracPart)
	return b.String()
}

func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}

	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// ParseInput parses free-form user or CSV input into an amount. Currency
// symbols, thousands separators and surrounding noise are stripped; only
// the first decimal point is honored; the result is rounded
// half-away-from-zero to cents. Input with no digits is an error.
func ParseInput(input string) (Money, error) {
	cleaned := cleanAmountString(input)
	if cleaned == "" || cleaned == "-" {
		return Zero(), fmt.Errorf("no numeric value in %q", input)
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return Zero(), fmt.Errorf("invalid amount %q: %w", input, err)
	}

	return FromDecimal(d), nil
}

// cleanAmountString keeps digits, the sign, and the first decimal point.
// Parenthesized amounts are treated as negative (bank-export convention).
func cleanAmountString(input string) string {
	input = strings.TrimSpace(input)

	negative := strings.HasPrefix(input, "-")
	if strings.HasPrefix(input, "(") && strings.HasSuffix(input, ")") {
		negative = true
	}

	var b strings.Builder
	seenDot := false
	for _, r := range input {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' && !seenDot:
			seenDot = true
			b.WriteRune(r)
		}
	}

	if b.Len() == 0 {
		return ""
	}
	if negative {
		return "-" + b.String()
	}
	return b.String()
}
