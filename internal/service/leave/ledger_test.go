package leave

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geko-hr/leave-backend-go/internal/domain/employee"
	"github.com/geko-hr/leave-backend-go/internal/domain/leave"
)

func ledgerFixture(t *testing.T, accrued, historical string) (*Ledger, *fakeEmployeeRepo, *fakeRequestRepo, employee.Employee) {
	t.Helper()

	emp := employee.Employee{
		ID:                  "emp-1",
		FullName:            "Maria Lopez",
		AccruedDays:         decimal.RequireFromString(accrued),
		HistoricalTakenDays: decimal.RequireFromString(historical),
	}

	employees := newFakeEmployeeRepo()
	employees.employees[emp.ID] = emp
	requests := newFakeRequestRepo()

	return NewLedger(employees, requests), employees, requests, emp
}

func TestLedger_BreakdownFormula(t *testing.T) {
	ledger, _, requests, emp := ledgerFixture(t, "15", "3")

	_, err := requests.Create(context.Background(), leave.LeaveRequest{
		EmployeeID: emp.ID,
		Status:     leave.StatusPending,
		TotalDays:  decimal.NewFromInt(4),
	})
	require.NoError(t, err)

	breakdown, err := ledger.Breakdown(context.Background(), emp)
	require.NoError(t, err)

	assert.True(t, breakdown.ReservedDays.Equal(decimal.NewFromInt(4)))
	assert.True(t, breakdown.AvailableDays.Equal(decimal.NewFromInt(8)), "got %s", breakdown.AvailableDays)
}

func TestLedger_AvailableNeverNegative(t *testing.T) {
	ledger, _, requests, emp := ledgerFixture(t, "5", "0")

	_, err := requests.Create(context.Background(), leave.LeaveRequest{
		EmployeeID: emp.ID,
		Status:     leave.StatusActive,
		TotalDays:  decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	breakdown, err := ledger.Breakdown(context.Background(), emp)
	require.NoError(t, err)

	assert.True(t, breakdown.AvailableDays.IsZero())
}

func TestLedger_RejectionReleasesReservedDays(t *testing.T) {
	ledger, _, requests, emp := ledgerFixture(t, "15", "0")

	created, err := requests.Create(context.Background(), leave.LeaveRequest{
		EmployeeID: emp.ID,
		Status:     leave.StatusPending,
		TotalDays:  decimal.NewFromInt(5),
	})
	require.NoError(t, err)

	before, err := ledger.Breakdown(context.Background(), emp)
	require.NoError(t, err)
	assert.True(t, before.AvailableDays.Equal(decimal.NewFromInt(10)))

	moved, err := requests.UpdateStatus(context.Background(), created.ID, leave.StatusPending, leave.StatusRejected, nil)
	require.NoError(t, err)
	require.True(t, moved)

	after, err := ledger.Breakdown(context.Background(), emp)
	require.NoError(t, err)
	assert.True(t, after.ReservedDays.IsZero())
	assert.True(t, after.AvailableDays.Equal(decimal.NewFromInt(15)))
}

func TestLedger_RecomputePersistsAvailable(t *testing.T) {
	ledger, employees, requests, emp := ledgerFixture(t, "12", "2")

	_, err := requests.Create(context.Background(), leave.LeaveRequest{
		EmployeeID: emp.ID,
		Status:     leave.StatusAuthorized,
		TotalDays:  decimal.NewFromInt(3),
	})
	require.NoError(t, err)

	available, err := ledger.Recompute(context.Background(), emp)
	require.NoError(t, err)

	assert.True(t, available.Equal(decimal.NewFromInt(7)))
	assert.True(t, employees.available[emp.ID].Equal(decimal.NewFromInt(7)))
}
