package leave

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/geko-hr/leave-backend-go/internal/domain/calendar"
	"github.com/geko-hr/leave-backend-go/internal/domain/leave"
)

var one = decimal.NewFromInt(1)

// ChargeableDays computes the fractional chargeable days in [start, end]
// inclusive. Saturdays, Sundays and the employee's birthday contribute
// nothing; every other day contributes 1 minus its holiday proportion.
func ChargeableDays(start, end time.Time, cal *calendar.Calendar, birthDate *time.Time) decimal.Decimal {
	total := decimal.Zero

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		if birthDate != nil && birthDate.Month() == d.Month() && birthDate.Day() == d.Day() {
			continue
		}

		contribution := one.Sub(cal.ProportionFor(d))
		if contribution.IsNegative() {
			continue
		}
		total = total.Add(contribution)
	}

	return total
}

// ChargeRanges computes per-range chargeable days and the request total.
// Ranges are charged independently; overlap is rejected at validation
// time, not deduplicated here.
func ChargeRanges(ranges []leave.ParsedRange, cal *calendar.Calendar, birthDate *time.Time) ([]leave.RequestDetail, decimal.Decimal) {
	details := make([]leave.RequestDetail, 0, len(ranges))
	total := decimal.Zero

	for _, r := range ranges {
		days := ChargeableDays(r.Start, r.End, cal, birthDate)
		details = append(details, leave.RequestDetail{
			StartDate: r.Start,
			EndDate:   r.End,
			Days:      days,
		})
		total = total.Add(days)
	}

	return details, total
}

// IsBirthdayOnly reports whether a zero-day outcome is the legitimate
// birthday case: a single one-day range falling on the employee's birth
// month and day. Every other zero-day request is invalid.
func IsBirthdayOnly(ranges []leave.ParsedRange, birthDate *time.Time) bool {
	if len(ranges) != 1 || birthDate == nil {
		return false
	}
	r := ranges[0]
	if !r.Start.Equal(r.End) {
		return false
	}
	return r.Start.Month() == birthDate.Month() && r.Start.Day() == birthDate.Day()
}
