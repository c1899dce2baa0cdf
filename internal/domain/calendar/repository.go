package calendar

import "context"

// Repository - interface for the holiday reference tables. Holiday data is
// read-only from the request flow's point of view.
type Repository interface {
	GetFixedHolidays(ctx context.Context) ([]HolidayFixed, error)
	GetVariableHolidays(ctx context.Context) ([]HolidayVariable, error)
}
