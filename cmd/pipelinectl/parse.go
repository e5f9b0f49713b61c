package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"github.com/shopspring/decimal"

	"github.com/jsamuelsen11/referral-pipeline/internal/domain/pipeline"
)

var naturalDates = newNaturalDates()

func newNaturalDates() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}

// parseDateArg reads a calendar date. YYYY-MM-DD and RFC 3339 are tried
// first, then English phrases relative to now ("tomorrow", "next friday").
func parseDateArg(s string, now time.Time) (time.Time, error) {
	if d, err := pipeline.ParseDate(s); err == nil {
		return d, nil
	}
	t, err := parseNatural(s, now)
	if err != nil {
		return time.Time{}, err
	}
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC), nil
}

// parseTimeArg reads an instant: RFC 3339 first, then English phrases.
func parseTimeArg(s string, now time.Time) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, strings.TrimSpace(s)); err == nil {
		return t.UTC(), nil
	}
	t, err := parseNatural(s, now)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func parseNatural(s string, now time.Time) (time.Time, error) {
	r, err := naturalDates.Parse(s, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %q: %w", s, err)
	}
	if r == nil {
		return time.Time{}, fmt.Errorf("could not understand date %q", s)
	}
	return r.Time, nil
}

// parseMoney converts a dollar amount such as "2500" or "1,250.50" to whole
// cents. Fractions of a cent and negative amounts are rejected.
func parseMoney(s string) (int64, error) {
	clean := strings.NewReplacer(",", "", "$", "", " ", "").Replace(s)
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("amount %q must not be negative", s)
	}
	cents := d.Shift(2)
	if !cents.Equal(cents.Truncate(0)) {
		return 0, fmt.Errorf("amount %q has fractions of a cent", s)
	}
	return cents.IntPart(), nil
}
