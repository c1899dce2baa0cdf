package calendar

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCalendar_FixedHolidayProjectedTwoYears(t *testing.T) {
	fixed := []HolidayFixed{
		{Name: "New Year", Month: time.January, Day: 1, Proportion: decimal.NewFromInt(1)},
	}

	cal := New(2025, fixed, nil)

	assert.True(t, cal.ProportionFor(date(2025, time.January, 1)).Equal(decimal.NewFromInt(1)))
	assert.True(t, cal.ProportionFor(date(2026, time.January, 1)).Equal(decimal.NewFromInt(1)))
	// Outside the projection window
	assert.True(t, cal.ProportionFor(date(2027, time.January, 1)).IsZero())
}

func TestCalendar_UnmatchedDateDefaultsToZero(t *testing.T) {
	cal := New(2025, nil, nil)
	assert.True(t, cal.ProportionFor(date(2025, time.June, 10)).IsZero())
}

func TestCalendar_VariableWinsOverFixed(t *testing.T) {
	fixed := []HolidayFixed{
		{Name: "Company Day", Month: time.March, Day: 10, Proportion: decimal.NewFromInt(1)},
	}
	variable := []HolidayVariable{
		{Name: "Company Half Day", Date: date(2025, time.March, 10), Proportion: decimal.RequireFromString("0.5")},
	}

	cal := New(2025, fixed, variable)

	assert.True(t, cal.ProportionFor(date(2025, time.March, 10)).Equal(decimal.RequireFromString("0.5")))
	// The projection onto the next year keeps the fixed proportion
	assert.True(t, cal.ProportionFor(date(2026, time.March, 10)).Equal(decimal.NewFromInt(1)))
}

func TestCalendar_SkipsFeb29InNonLeapYears(t *testing.T) {
	fixed := []HolidayFixed{
		{Name: "Leap Day", Month: time.February, Day: 29, Proportion: decimal.NewFromInt(1)},
	}

	// 2025 and 2026 are both non-leap: no projection at all.
	cal := New(2025, fixed, nil)
	assert.True(t, cal.ProportionFor(date(2025, time.March, 1)).IsZero())
	assert.True(t, cal.ProportionFor(date(2026, time.March, 1)).IsZero())

	// 2027 projects onto 2028, which is a leap year.
	cal = New(2027, fixed, nil)
	assert.True(t, cal.ProportionFor(date(2028, time.February, 29)).Equal(decimal.NewFromInt(1)))
}

func TestCalendar_VariableExactDateOnly(t *testing.T) {
	variable := []HolidayVariable{
		{Name: "One-off", Date: date(2025, time.August, 14), Proportion: decimal.NewFromInt(1)},
	}

	cal := New(2025, nil, variable)

	assert.True(t, cal.ProportionFor(date(2025, time.August, 14)).Equal(decimal.NewFromInt(1)))
	assert.True(t, cal.ProportionFor(date(2026, time.August, 14)).IsZero())
}
