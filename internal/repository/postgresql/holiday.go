package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/geko-hr/leave-backend-go/internal/domain/calendar"
	"github.com/geko-hr/leave-backend-go/internal/pkg/database"
)

type HolidayRepository struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) *HolidayRepository {
	return &HolidayRepository{db: db}
}

func (r *HolidayRepository) GetFixedHolidays(ctx context.Context) ([]calendar.HolidayFixed, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, name, month, day, proportion
		FROM holidays_fixed
		ORDER BY month, day
	`)
	if err != nil {
		return nil, fmt.Errorf("get fixed holidays: %w", err)
	}
	defer rows.Close()

	var holidays []calendar.HolidayFixed
	for rows.Next() {
		var h calendar.HolidayFixed
		var month int
		if err := rows.Scan(&h.ID, &h.Name, &month, &h.Day, &h.Proportion); err != nil {
			return nil, fmt.Errorf("scan fixed holiday: %w", err)
		}
		h.Month = time.Month(month)
		holidays = append(holidays, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate fixed holidays: %w", err)
	}

	return holidays, nil
}

func (r *HolidayRepository) GetVariableHolidays(ctx context.Context) ([]calendar.HolidayVariable, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, name, date, proportion
		FROM holidays_variable
		ORDER BY date
	`)
	if err != nil {
		return nil, fmt.Errorf("get variable holidays: %w", err)
	}
	defer rows.Close()

	var holidays []calendar.HolidayVariable
	for rows.Next() {
		var h calendar.HolidayVariable
		if err := rows.Scan(&h.ID, &h.Name, &h.Date, &h.Proportion); err != nil {
			return nil, fmt.Errorf("scan variable holiday: %w", err)
		}
		holidays = append(holidays, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate variable holidays: %w", err)
	}

	return holidays, nil
}
