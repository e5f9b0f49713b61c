// Package report holds the calendar arithmetic and value types behind the
// weekly and income reports.
package report

import (
	"fmt"
	"regexp"
	"time"
)

// WeeksPerMonth is the fixed number of weekly buckets in a month report.
// Days 29-31 all fall into week 5.
const WeeksPerMonth = 5

var monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// MonthKey identifies a UTC calendar month, rendered as "YYYY-MM".
type MonthKey struct {
	Year  int
	Month time.Month
}

// ParseMonth parses a "YYYY-MM" key. The month must be 01-12.
func ParseMonth(s string) (MonthKey, error) {
	if !monthPattern.MatchString(s) {
		return MonthKey{}, fmt.Errorf("invalid month %q: want YYYY-MM", s)
	}
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return MonthKey{}, fmt.Errorf("invalid month %q: %w", s, err)
	}
	return MonthOf(t), nil
}

// MonthOrCurrent parses s, falling back to the month containing now when s
// is empty or malformed.
func MonthOrCurrent(s string, now time.Time) MonthKey {
	if m, err := ParseMonth(s); err == nil {
		return m
	}
	return MonthOf(now)
}

// MonthOf returns the UTC month containing t.
func MonthOf(t time.Time) MonthKey {
	u := t.UTC()
	return MonthKey{Year: u.Year(), Month: u.Month()}
}

// String renders the key as "YYYY-MM".
func (m MonthKey) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Start returns midnight UTC on the first day of the month.
func (m MonthKey) Start() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End returns the exclusive upper bound: the start of the next month.
func (m MonthKey) End() time.Time {
	return m.Start().AddDate(0, 1, 0)
}

// Contains reports whether t falls in the month, judged by its UTC date.
func (m MonthKey) Contains(t time.Time) bool {
	return MonthOf(t) == m
}

// Add returns the key n months away (negative n goes back).
func (m MonthKey) Add(n int) MonthKey {
	return MonthOf(m.Start().AddDate(0, n, 0))
}

// Before reports whether m is earlier than o.
func (m MonthKey) Before(o MonthKey) bool {
	if m.Year != o.Year {
		return m.Year < o.Year
	}
	return m.Month < o.Month
}

// LastMonths returns n consecutive keys ending with the month of now,
// oldest first.
func LastMonths(n int, now time.Time) []MonthKey {
	if n <= 0 {
		return nil
	}
	cur := MonthOf(now)
	out := make([]MonthKey, n)
	for i := range n {
		out[i] = cur.Add(i - (n - 1))
	}
	return out
}

// WeekOf returns the 1-based week bucket of t's UTC day of month.
func WeekOf(t time.Time) int {
	return (t.UTC().Day()-1)/7 + 1
}

// WeekCounts holds per-week tallies; index 0 is week 1.
type WeekCounts [WeeksPerMonth]int

// Inc adds one to the bucket containing t.
func (w *WeekCounts) Inc(t time.Time) {
	w[WeekOf(t)-1]++
}

// Total sums all buckets.
func (w WeekCounts) Total() int {
	var n int
	for _, c := range w {
		n += c
	}
	return n
}
