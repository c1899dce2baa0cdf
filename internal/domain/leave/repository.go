package leave

import (
	"context"

	"github.com/shopspring/decimal"
)

// RequestRepository - interface for leave_requests and leave_request_details
type RequestRepository interface {
	// Create persists the header and its details atomically.
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	List(ctx context.Context, filter ListFilter) ([]LeaveRequest, int64, error)

	// UpdateStatus moves a request from one state to another with
	// compare-and-set semantics: it reports false when the request was not
	// in the expected state, so a concurrent transition loses cleanly.
	UpdateStatus(ctx context.Context, id string, from, to Status, rejectionReason *string) (bool, error)

	// ReplaceDetails swaps the detail ranges, remarks and total of a
	// pending request in one atomic write.
	ReplaceDetails(ctx context.Context, requestID string, remarks string, total decimal.Decimal, details []RequestDetail) error

	// SumActiveDays totals the chargeable days of every request of the
	// employee in a state that still counts against the balance.
	SumActiveDays(ctx context.Context, employeeID string) (decimal.Decimal, error)

	// LockEmployee takes the per-employee advisory lock for the duration
	// of the surrounding transaction, serializing ledger recomputation
	// against concurrent admission checks.
	LockEmployee(ctx context.Context, employeeID string) error
}
