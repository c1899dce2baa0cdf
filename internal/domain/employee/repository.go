package employee

import (
	"context"

	"github.com/shopspring/decimal"
)

// Repository - interface for employees and team membership tables
type Repository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetTeamMembers(ctx context.Context, teamID string) ([]TeamMember, error)

	// UpdateAvailableDays persists the recomputed available balance on the
	// employee row. Callers must hold the per-employee advisory lock.
	UpdateAvailableDays(ctx context.Context, employeeID string, available decimal.Decimal) error
}
