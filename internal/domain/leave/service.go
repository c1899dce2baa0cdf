package leave

import (
	"context"

	"github.com/geko-hr/leave-backend-go/internal/domain/user"
)

// Document is a rendered request letter ready to serve.
type Document struct {
	FileName    string
	ContentType string
	Data        []byte
}

// RequestService drives the request lifecycle. Operations return the
// mutated request plus any non-fatal warnings (artifact or email failures
// that did not roll back the primary change).
type RequestService interface {
	Submit(ctx context.Context, actor user.Actor, req SubmitRequest) (LeaveRequest, []string, error)
	Authorize(ctx context.Context, actor user.Actor, requestID string) (LeaveRequest, []string, error)
	Reject(ctx context.Context, actor user.Actor, requestID string, reason string) (LeaveRequest, []string, error)
	Cancel(ctx context.Context, actor user.Actor, requestID string) (LeaveRequest, error)
	Edit(ctx context.Context, actor user.Actor, requestID string, req EditRequest) (LeaveRequest, []string, error)

	GetByID(ctx context.Context, actor user.Actor, requestID string) (LeaveRequest, error)
	List(ctx context.Context, actor user.Actor, status *Status, page, limit int) ([]LeaveRequest, int64, error)
	Balance(ctx context.Context, actor user.Actor, employeeID string) (BalanceBreakdown, error)

	// FetchDocument returns the stored request letter, enforcing the
	// download restriction set on authorization.
	FetchDocument(ctx context.Context, actor user.Actor, requestID string) (Document, error)
}
