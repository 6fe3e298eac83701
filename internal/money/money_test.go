package money

import (
	"encoding/json"
	"testing"
)

func TestFromUnitsRoundTrip(t *testing.T) {
	tests := []int64{0, 1, -1, 100, -100, 123456789, -123456789}

	for _, units := range tests {
		m := FromUnits(units)
		if got := m.Units(); got != units {
			t.Errorf("FromUnits(%d).Units() = %d", units, got)
		}
	}
}

func TestArithmeticIsExact(t *testing.T) {
	// 0.1 + 0.2 must be exactly 0.3, which float64 cannot do.
	sum := FromUnits(10).Add(FromUnits(20))
	if !sum.Equal(FromUnits(30)) {
		t.Errorf("0.10 + 0.20 = %s, expected 0.30", sum)
	}

	// Summing a cent a thousand times must be exactly ten dollars.
	total := Zero()
	for i := 0; i < 1000; i++ {
		total = total.Add(FromUnits(1))
	}
	if !total.Equal(FromUnits(1000)) {
		t.Errorf("1000 * 0.01 = %s, expected 10.00", total)
	}
}

func TestDivRoundsHalfAwayFromZero(t *testing.T) {
	tests := []struct {
		units   int64
		divisor int64
		want    int64
	}{
		{100, 3, 33},   // 0.333... -> 0.33
		{101, 2, 51},   // 0.505 -> 0.51
		{-101, 2, -51}, // -0.505 -> -0.51
		{100, 0, 0},    // zero divisor yields zero
	}

	for _, tt := range tests {
		got := FromUnits(tt.units).Div(tt.divisor)
		if got.Units() != tt.want {
			t.Errorf("FromUnits(%d).Div(%d) = %s, expected %d units",
				tt.units, tt.divisor, got, tt.want)
		}
	}
}

func TestSignHelpers(t *testing.T) {
	pos := FromUnits(500)
	neg := FromUnits(-500)

	if !pos.IsPositive() || pos.IsNegative() {
		t.Error("Expected 5.00 to be positive")
	}
	if !neg.IsNegative() || neg.IsPositive() {
		t.Error("Expected -5.00 to be negative")
	}
	if !Zero().IsZero() {
		t.Error("Expected zero amount to report IsZero")
	}
	if !neg.Abs().Equal(pos) {
		t.Errorf("Abs(-5.00) = %s", neg.Abs())
	}
	if !pos.Neg().Equal(neg) {
		t.Errorf("Neg(5.00) = %s", pos.Neg())
	}
}

func TestParseInput(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{"12.34", 1234, false},
		{"$1,234.56", 123456, false},
		{"-82.40", -8240, false},
		{"(82.40)", -8240, false},
		{"  $ 99 ", 9900, false},
		{"0.005", 1, false}, // half rounds away from zero
		{"-0.005", -1, false},
		{"1.2.3", 123, false}, // only first dot honored
		{"", 0, true},
		{"abc", 0, true},
		{"-", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseInput(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseInput(%q): expected error, got %s", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseInput(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if got.Units() != tt.want {
			t.Errorf("ParseInput(%q) = %s, expected %d units", tt.input, got, tt.want)
		}
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		units int64
		opts  FormatOptions
		want  string
	}{
		{123456, FormatOptions{ShowCents: true, Symbol: "$"}, "$1,234.56"},
		{123456, FormatOptions{ShowCents: false, Symbol: "$"}, "$1,235"},
		{-123456, FormatOptions{ShowCents: true, Symbol: "$"}, "-$1,234.56"},
		{100000000, FormatOptions{ShowCents: true, Symbol: ""}, "1,000,000.00"},
		{99, FormatOptions{ShowCents: true, Symbol: "$"}, "$0.99"},
		{0, FormatOptions{ShowCents: true, Symbol: "$"}, "$0.00"},
	}

	for _, tt := range tests {
		if got := FromUnits(tt.units).Format(tt.opts); got != tt.want {
			t.Errorf("Format(%d units) = %q, expected %q", tt.units, got, tt.want)
		}
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	orig := FromUnits(123456)
	formatted := orig.Format(FormatOptions{ShowCents: true, Symbol: "$"})

	parsed, err := ParseInput(formatted)
	if err != nil {
		t.Fatalf("ParseInput(%q): %v", formatted, err)
	}
	if !parsed.Equal(orig) {
		t.Errorf("Round trip changed value: %s -> %q -> %s", orig, formatted, parsed)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	orig := FromUnits(-8240)

	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `"-82.40"` {
		t.Errorf("Marshal = %s, expected \"-82.40\"", data)
	}

	var back Money
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !back.Equal(orig) {
		t.Errorf("Round trip changed value: %s -> %s", orig, back)
	}

	// Bare JSON numbers from older data files still decode.
	var fromNumber Money
	if err := json.Unmarshal([]byte(`-82.4`), &fromNumber); err != nil {
		t.Fatalf("Unmarshal number: %v", err)
	}
	if !fromNumber.Equal(orig) {
		t.Errorf("Number decode = %s, expected %s", fromNumber, orig)
	}
}

func TestPeriodsPerYear(t *testing.T) {
	tests := []struct {
		freq Frequency
		want int64
	}{
		{Weekly, 52},
		{BiWeekly, 26},
		{Monthly, 12},
		{Yearly, 1},
		{OneTime, 0},
	}

	for _, tt := range tests {
		if got := tt.freq.PeriodsPerYear(); got != tt.want {
			t.Errorf("%s: expected %d periods, got %d", tt.freq, tt.want, got)
		}
	}
}

func TestFrequencyConversions(t *testing.T) {
	weekly := FromUnits(10000) // 100.00 per week

	yearly := weekly.ToYearly(Weekly)
	if !yearly.Equal(FromUnits(520000)) {
		t.Errorf("100.00 weekly -> %s yearly, expected 5200.00", yearly)
	}

	monthly := weekly.ToMonthly(Weekly)
	if !monthly.Equal(FromUnits(43333)) {
		t.Errorf("100.00 weekly -> %s monthly, expected 433.33", monthly)
	}

	biweekly := FromUnits(200000).ToYearly(BiWeekly)
	if !biweekly.Equal(FromUnits(5200000)) {
		t.Errorf("2000.00 bi-weekly -> %s yearly, expected 52000.00", biweekly)
	}

	if !FromUnits(5000).ToYearly(OneTime).IsZero() {
		t.Error("One-time amounts must not contribute to yearly totals")
	}

	perWeek := FromUnits(520000).FromYearly(Weekly)
	if !perWeek.Equal(FromUnits(10000)) {
		t.Errorf("5200.00 yearly -> %s weekly, expected 100.00", perWeek)
	}
}

func TestParseFrequency(t *testing.T) {
	if _, err := ParseFrequency("Bi-weekly"); err != nil {
		t.Errorf("ParseFrequency(Bi-weekly): %v", err)
	}
	if _, err := ParseFrequency("fortnightly"); err == nil {
		t.Error("Expected error for unknown frequency")
	}
}
