package student

import (
	"fmt"
	"time"
)

// ══════════════════════════════════════════════════════════════════════════════
// PERIOD RESOLVER
// ══════════════════════════════════════════════════════════════════════════════

// Period identifies a calendar year-month bucket. Two timestamps resolve to
// the same Period iff they fall in the same calendar month of the same year.
// Period is comparable and safe to use as a map key.
type Period struct {
	Year  int
	Month time.Month
}

// ResolvePeriod derives the Period a timestamp falls into.
func ResolvePeriod(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

// Before reports whether p is strictly earlier than other.
func (p Period) Before(other Period) bool {
	if p.Year != other.Year {
		return p.Year < other.Year
	}
	return p.Month < other.Month
}

// IsZero reports whether p is the zero Period.
func (p Period) IsZero() bool {
	return p.Year == 0 && p.Month == 0
}

// String returns the canonical "YYYY-MM" form, matching the storage format.
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// ParsePeriod parses the canonical "YYYY-MM" form produced by String.
func ParsePeriod(s string) (Period, error) {
	var year, month int
	if _, err := fmt.Sscanf(s, "%4d-%2d", &year, &month); err != nil {
		return Period{}, fmt.Errorf("invalid period %q: %w", s, err)
	}
	if month < 1 || month > 12 {
		return Period{}, fmt.Errorf("invalid period %q: month out of range", s)
	}
	return Period{Year: year, Month: time.Month(month)}, nil
}
