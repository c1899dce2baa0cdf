package leave

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/geko-hr/leave-backend-go/internal/domain/employee"
	"github.com/geko-hr/leave-backend-go/internal/domain/leave"
)

// Ledger derives an employee's available balance. Availability is never
// patched incrementally: it is always recomputed from the accrued total,
// the historical offset and the sum of days reserved by requests still in
// an active state.
type Ledger struct {
	employees employee.Repository
	requests  leave.RequestRepository
}

func NewLedger(employees employee.Repository, requests leave.RequestRepository) *Ledger {
	return &Ledger{employees: employees, requests: requests}
}

// Breakdown computes the current balance view for an employee.
func (l *Ledger) Breakdown(ctx context.Context, emp employee.Employee) (leave.BalanceBreakdown, error) {
	reserved, err := l.requests.SumActiveDays(ctx, emp.ID)
	if err != nil {
		return leave.BalanceBreakdown{}, err
	}

	available := emp.AccruedDays.Sub(emp.HistoricalTakenDays).Sub(reserved)
	if available.IsNegative() {
		available = decimal.Zero
	}

	return leave.BalanceBreakdown{
		EmployeeID:     emp.ID,
		AccruedDays:    emp.AccruedDays,
		HistoricalDays: emp.HistoricalTakenDays,
		ReservedDays:   reserved,
		AvailableDays:  available,
	}, nil
}

// Recompute refreshes the persisted available balance after a state
// transition changed active membership. Callers must run it inside a
// transaction holding the per-employee advisory lock.
func (l *Ledger) Recompute(ctx context.Context, emp employee.Employee) (decimal.Decimal, error) {
	breakdown, err := l.Breakdown(ctx, emp)
	if err != nil {
		return decimal.Zero, err
	}
	if err := l.employees.UpdateAvailableDays(ctx, emp.ID, breakdown.AvailableDays); err != nil {
		return decimal.Zero, err
	}
	return breakdown.AvailableDays, nil
}
