package money

import "fmt"

// Frequency describes how often a planned figure recurs.
type Frequency string

const (
	Weekly   Frequency = "Weekly"
	BiWeekly Frequency = "Bi-weekly"
	Monthly  Frequency = "Monthly"
	Yearly   Frequency = "Yearly"
	OneTime  Frequency = "One-time"
)

// PeriodsPerYear returns the number of occurrences per year for the
// frequency. One-time figures contribute zero to recurring totals.
func (f Frequency) PeriodsPerYear() int64 {
	switch f {
	case Weekly:
		return 52
	case BiWeekly:
		return 26
	case Monthly:
		return 12
	case Yearly:
		return 1
	case OneTime:
		return 0
	default:
		return 0
	}
}

// Valid reports whether f is a known frequency.
func (f Frequency) Valid() bool {
	switch f {
	case Weekly, BiWeekly, Monthly, Yearly, OneTime:
		return true
	}
	return false
}

// ParseFrequency converts a stored string into a Frequency.
func ParseFrequency(s string) (Frequency, error) {
	f := Frequency(s)
	if !f.Valid() {
		return "", fmt.Errorf("unknown frequency %q", s)
	}
	return f, nil
}

// ToYearly converts a per-occurrence amount at the given frequency into a
// yearly total. One-time amounts yield zero.
func (m Money) ToYearly(f Frequency) Money {
	return m.MulInt(f.PeriodsPerYear())
}

// ToMonthly converts a per-occurrence amount at the given frequency into a
// monthly figure: the yearly total divided by twelve, rounded to cents.
func (m Money) ToMonthly(f Frequency) Money {
	if f == Monthly {
		return m
	}
	return m.ToYearly(f).Div(12)
}

// FromYearly converts a yearly total into a per-occurrence amount at the
// given frequency. A one-time frequency returns zero.
func (m Money) FromYearly(f Frequency) Money {
	periods := f.PeriodsPerYear()
	if periods == 0 {
		return Zero()
	}
	return m.Div(periods)
}
