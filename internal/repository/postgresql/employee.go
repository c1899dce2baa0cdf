package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/geko-hr/leave-backend-go/internal/domain/employee"
	"github.com/geko-hr/leave-backend-go/internal/pkg/database"
)

type EmployeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	var e employee.Employee
	err := q.QueryRow(ctx, `
		SELECT id, full_name, position, contract_type, date_of_birth, hire_date,
		       team_id, accrued_days, historical_taken_days, created_at, updated_at
		FROM employees
		WHERE id = $1
	`, id).Scan(
		&e.ID,
		&e.FullName,
		&e.Position,
		&e.ContractType,
		&e.DateOfBirth,
		&e.HireDate,
		&e.TeamID,
		&e.AccruedDays,
		&e.HistoricalTakenDays,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("get employee: %w", err)
	}

	return e, nil
}

// GetTeamMembers returns every member of a team ordered by role weight, so
// authorizer resolution sees team leads before sub-team leads.
func (r *EmployeeRepository) GetTeamMembers(ctx context.Context, teamID string) ([]employee.TeamMember, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, full_name, team_id, team_role
		FROM employees
		WHERE team_id = $1
		ORDER BY CASE team_role
			WHEN 'team_lead' THEN 0
			WHEN 'sub_team_lead' THEN 1
			ELSE 2
		END, full_name
	`, teamID)
	if err != nil {
		return nil, fmt.Errorf("get team members: %w", err)
	}
	defer rows.Close()

	var members []employee.TeamMember
	for rows.Next() {
		var m employee.TeamMember
		if err := rows.Scan(&m.EmployeeID, &m.FullName, &m.TeamID, &m.Role); err != nil {
			return nil, fmt.Errorf("scan team member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate team members: %w", err)
	}

	return members, nil
}

func (r *EmployeeRepository) UpdateAvailableDays(ctx context.Context, employeeID string, available decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE employees
		SET available_days = $2, updated_at = NOW()
		WHERE id = $1
	`, employeeID, available)
	if err != nil {
		return fmt.Errorf("update available days: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}
