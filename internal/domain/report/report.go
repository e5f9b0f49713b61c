package report

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultIncomeRate is the commission fraction applied to deal sizes when
// none is configured.
const DefaultIncomeRate = "0.01265"

// IncomeRate is the expected commission as a fraction of deal size.
type IncomeRate struct {
	rate decimal.Decimal
}

// ParseIncomeRate parses a decimal string such as "0.01265". The rate must
// be non-negative.
func ParseIncomeRate(s string) (IncomeRate, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return IncomeRate{}, fmt.Errorf("invalid income rate %q: %w", s, err)
	}
	if d.IsNegative() {
		return IncomeRate{}, fmt.Errorf("invalid income rate %q: must not be negative", s)
	}
	return IncomeRate{rate: d}, nil
}

// MustIncomeRate is ParseIncomeRate for constants; it panics on error.
func MustIncomeRate(s string) IncomeRate {
	r, err := ParseIncomeRate(s)
	if err != nil {
		panic(err)
	}
	return r
}

// Project returns sumCents * rate rounded half away from zero to whole cents.
// The rate is applied to the sum, not to each deal.
func (r IncomeRate) Project(sumCents int64) int64 {
	return decimal.NewFromInt(sumCents).Mul(r.rate).Round(0).IntPart()
}

// String returns the rate in its decimal form.
func (r IncomeRate) String() string {
	return r.rate.String()
}

// WeeklyBucket is one row of the weekly report.
type WeeklyBucket struct {
	Label             string
	SignedCount       int
	ClientsAddedCount int
}

// WeeklyBuckets zips the signed and client-creation tallies into exactly
// WeeksPerMonth labeled buckets.
func WeeklyBuckets(signed, added WeekCounts) []WeeklyBucket {
	out := make([]WeeklyBucket, WeeksPerMonth)
	for i := range out {
		out[i] = WeeklyBucket{
			Label:             fmt.Sprintf("Week %d", i+1),
			SignedCount:       signed[i],
			ClientsAddedCount: added[i],
		}
	}
	return out
}

// IncomePoint is the projected income for one month.
type IncomePoint struct {
	Month               MonthKey
	ExpectedIncomeCents int64
}

// IncomeSeries projects income for each month in months, in order. Months
// absent from sums report zero.
func IncomeSeries(months []MonthKey, sums map[MonthKey]int64, rate IncomeRate) []IncomePoint {
	out := make([]IncomePoint, len(months))
	for i, m := range months {
		out[i] = IncomePoint{Month: m, ExpectedIncomeCents: rate.Project(sums[m])}
	}
	return out
}

// Summary is the headline count view.
type Summary struct {
	ReferralSourceCount  int
	ClientCount          int
	OpenClientValueCents int64
}

// Dashboard combines the weekly and income reports for one month.
type Dashboard struct {
	Month  MonthKey
	Weekly []WeeklyBucket
	Income []IncomePoint
}
