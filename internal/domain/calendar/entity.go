package calendar

import (
	"time"

	"github.com/shopspring/decimal"
)

// HolidayFixed recurs every year on the same month and day.
type HolidayFixed struct {
	ID         string
	Name       string
	Month      time.Month
	Day        int
	Proportion decimal.Decimal // discount in [0,1]; 1 = fully exempt day
}

// HolidayVariable applies to one exact date only.
type HolidayVariable struct {
	ID         string
	Name       string
	Date       time.Time
	Proportion decimal.Decimal
}

const dateKeyLayout = "2006-01-02"

// Calendar resolves a date to its holiday discount proportion. The zero
// proportion means a full business day.
type Calendar struct {
	proportions map[string]decimal.Decimal
}

// New builds a calendar from fixed and variable holiday records. Fixed
// holidays are projected onto the given year and the next one; month/day
// combinations that do not exist in a projected year (Feb 29 outside leap
// years) are skipped. Variable entries are applied after fixed ones, so on
// a collision the variable proportion wins.
func New(year int, fixed []HolidayFixed, variable []HolidayVariable) *Calendar {
	proportions := make(map[string]decimal.Decimal)

	for _, h := range fixed {
		for _, y := range []int{year, year + 1} {
			d := time.Date(y, h.Month, h.Day, 0, 0, 0, 0, time.UTC)
			if d.Month() != h.Month || d.Day() != h.Day {
				continue
			}
			proportions[d.Format(dateKeyLayout)] = h.Proportion
		}
	}

	for _, h := range variable {
		proportions[h.Date.Format(dateKeyLayout)] = h.Proportion
	}

	return &Calendar{proportions: proportions}
}

// ProportionFor returns the discount proportion for a date, zero when the
// date is not a holiday.
func (c *Calendar) ProportionFor(date time.Time) decimal.Decimal {
	if p, ok := c.proportions[date.Format(dateKeyLayout)]; ok {
		return p
	}
	return decimal.Zero
}
