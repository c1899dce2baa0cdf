package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// TeamRole is the role an employee holds inside a team. Team leads (and
// sub-team leads as fallback) are picked as default authorizers for the
// team's leave requests.
type TeamRole string

const (
	TeamRoleLead    TeamRole = "team_lead"
	TeamRoleSubLead TeamRole = "sub_team_lead"
	TeamRoleMember  TeamRole = "member"
)

type Employee struct {
	ID           string
	FullName     string
	Position     *string
	ContractType *string
	DateOfBirth  *time.Time
	HireDate     time.Time
	TeamID       *string

	// Entitlement days credited to date. Never decremented by a request;
	// availability is always derived through the balance formula.
	AccruedDays decimal.Decimal

	// Days consumed before this system existed, a fixed offset.
	HistoricalTakenDays decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TeamMember is an employee's membership row joined with identity fields
// needed by authorizer resolution.
type TeamMember struct {
	EmployeeID string
	FullName   string
	TeamID     string
	Role       TeamRole
}

// BornOn reports whether the given date falls on the employee's birthday
// (month and day match, year ignored).
func (e *Employee) BornOn(date time.Time) bool {
	if e.DateOfBirth == nil {
		return false
	}
	return e.DateOfBirth.Month() == date.Month() && e.DateOfBirth.Day() == date.Day()
}
