package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the closed set of leave-request lifecycle states. All state
// changes go through the transition predicates below; raw writes of other
// values are a bug.
type Status string

const (
	StatusPending    Status = "pending"
	StatusAuthorized Status = "authorized"
	StatusActive     Status = "active"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusRejected   Status = "rejected"
)

// CountsAgainstBalance reports whether a request in this state still
// reserves its days. Every state except rejected and cancelled does.
func (s Status) CountsAgainstBalance() bool {
	return s != StatusRejected && s != StatusCancelled
}

// IsTerminal reports whether no further transition is permitted.
func (s Status) IsTerminal() bool {
	return s == StatusRejected || s == StatusCancelled || s == StatusCompleted
}

// CanAuthorize reports whether the request may be authorized or rejected.
func (s Status) CanAuthorize() bool {
	return s == StatusPending
}

// CanCancel reports whether the owner may still withdraw the request.
func (s Status) CanCancel() bool {
	return s == StatusPending || s == StatusAuthorized
}

// CanEdit reports whether the date ranges may still be changed.
func (s Status) CanEdit() bool {
	return s == StatusPending
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAuthorized, StatusActive, StatusCompleted, StatusCancelled, StatusRejected:
		return true
	}
	return false
}

// DocumentFormat selects the layout variant of the generated request
// letter.
type DocumentFormat int

const (
	FormatStandard  DocumentFormat = 1
	FormatCorporate DocumentFormat = 2
)

func (f DocumentFormat) IsValid() bool {
	return f == FormatStandard || f == FormatCorporate
}

// LeaveRequest is the request header. Requests are never hard-deleted;
// cancellation and rejection are states.
type LeaveRequest struct {
	ID               string
	EmployeeID       string
	AuthorizerUserID string
	TotalDays        decimal.Decimal // computed, never user-supplied
	Remarks          string
	Status           Status
	RejectionReason  *string
	Format           DocumentFormat
	SubmittedAt      time.Time
	UpdatedAt        time.Time

	Details []RequestDetail

	// DTO / Join
	EmployeeName   *string
	AuthorizerName *string
}

// RequestDetail is one contiguous date range of the request with its
// precomputed chargeable-day count.
type RequestDetail struct {
	ID        string
	RequestID string
	StartDate time.Time
	EndDate   time.Time
	Days      decimal.Decimal
}

// DetailsTotal sums the per-range day counts. It must always equal
// TotalDays on a persisted header.
func (r *LeaveRequest) DetailsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, d := range r.Details {
		total = total.Add(d.Days)
	}
	return total
}

// OwnedBy reports whether the request belongs to the given employee.
func (r *LeaveRequest) OwnedBy(employeeID string) bool {
	return r.EmployeeID == employeeID
}
