package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Period is an accounting period key (year + month). The zero Period means
// the unbounded all-time scope.
type Period struct {
	Year  int
	Month int
}

// PeriodOf returns the period containing t.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: int(t.Month())}
}

// ParsePeriod parses "2025-01" into a Period.
func ParsePeriod(s string) (Period, error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return Period{}, fmt.Errorf("invalid period format %q, want YYYY-MM", s)
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return Period{}, fmt.Errorf("invalid year in period %q: %w", s, err)
	}

	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return Period{}, fmt.Errorf("invalid month in period %q: %w", s, err)
	}
	if month < 1 || month > 12 {
		return Period{}, fmt.Errorf("invalid month %d in period %q", month, s)
	}

	return Period{Year: year, Month: month}, nil
}

// IsZero reports whether p is the all-time scope.
func (p Period) IsZero() bool {
	return p.Year == 0 && p.Month == 0
}

// String formats p as "2025-01", or "all-time" for the zero Period.
func (p Period) String() string {
	if p.IsZero() {
		return "all-time"
	}
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// Key returns the storage key for p ("2025-01"); empty for the zero Period.
func (p Period) Key() string {
	if p.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}
