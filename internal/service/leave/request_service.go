package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/geko-hr/leave-backend-go/internal/domain/calendar"
	"github.com/geko-hr/leave-backend-go/internal/domain/employee"
	"github.com/geko-hr/leave-backend-go/internal/domain/leave"
	"github.com/geko-hr/leave-backend-go/internal/domain/user"
	"github.com/geko-hr/leave-backend-go/internal/pkg/database"
	"github.com/geko-hr/leave-backend-go/internal/pkg/email"
	"github.com/geko-hr/leave-backend-go/internal/repository/postgresql"
)

const birthdayRemark = "Birthday leave, no days charged."

// RequestService implements leave.RequestService on PostgreSQL storage.
type RequestService struct {
	transact  func(ctx context.Context, fn func(tx pgx.Tx) error) error
	requests  leave.RequestRepository
	employees employee.Repository
	users     user.Repository
	holidays  calendar.Repository
	ledger    *Ledger
	resolver  *Resolver
	artifacts *ArtifactManager
	email     email.EmailService
	baseURL   string
}

func NewRequestService(
	db *database.DB,
	requests leave.RequestRepository,
	employees employee.Repository,
	users user.Repository,
	holidays calendar.Repository,
	ledger *Ledger,
	resolver *Resolver,
	artifacts *ArtifactManager,
	emailService email.EmailService,
	baseURL string,
) *RequestService {
	return &RequestService{
		transact: func(ctx context.Context, fn func(tx pgx.Tx) error) error {
			return postgresql.WithTransaction(ctx, db, fn)
		},
		requests:  requests,
		employees: employees,
		users:     users,
		holidays:  holidays,
		ledger:    ledger,
		resolver:  resolver,
		artifacts: artifacts,
		email:     emailService,
		baseURL:   baseURL,
	}
}

func (s *RequestService) buildCalendar(ctx context.Context) (*calendar.Calendar, error) {
	fixed, err := s.holidays.GetFixedHolidays(ctx)
	if err != nil {
		return nil, err
	}
	variable, err := s.holidays.GetVariableHolidays(ctx)
	if err != nil {
		return nil, err
	}
	return calendar.New(time.Now().Year(), fixed, variable), nil
}

func (s *RequestService) Submit(ctx context.Context, actor user.Actor, req leave.SubmitRequest) (leave.LeaveRequest, []string, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, nil, err
	}
	if actor.EmployeeID == nil {
		return leave.LeaveRequest{}, nil, leave.ErrEmployeeIdentityRequired
	}

	emp, err := s.employees.GetByID(ctx, *actor.EmployeeID)
	if err != nil {
		return leave.LeaveRequest{}, nil, err
	}

	ranges, err := leave.ParseRanges(req.Ranges)
	if err != nil {
		return leave.LeaveRequest{}, nil, err
	}

	cal, err := s.buildCalendar(ctx)
	if err != nil {
		return leave.LeaveRequest{}, nil, err
	}

	details, total := ChargeRanges(ranges, cal, emp.DateOfBirth)
	remarks := req.Remarks
	if total.IsZero() {
		if !IsBirthdayOnly(ranges, emp.DateOfBirth) {
			return leave.LeaveRequest{}, nil, leave.ErrZeroDayNotBirthday
		}
		if remarks != "" {
			remarks += " "
		}
		remarks += birthdayRemark
	}

	authorizer, err := s.resolver.Resolve(ctx, emp, req.AuthorizerUserID)
	if err != nil {
		return leave.LeaveRequest{}, nil, err
	}

	created := leave.LeaveRequest{
		EmployeeID:       emp.ID,
		AuthorizerUserID: authorizer.ID,
		TotalDays:        total,
		Remarks:          remarks,
		Status:           leave.StatusPending,
		Format:           leave.DocumentFormat(req.Format),
		Details:          details,
		EmployeeName:     &emp.FullName,
		AuthorizerName:   &authorizer.FullName,
	}

	err = s.transact(ctx, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.requests.LockEmployee(txCtx, emp.ID); err != nil {
			return err
		}

		breakdown, err := s.ledger.Breakdown(txCtx, emp)
		if err != nil {
			return err
		}
		if total.GreaterThan(breakdown.AvailableDays) {
			return fmt.Errorf("%w: requested %s, available %s",
				leave.ErrInsufficientBalance, total.String(), breakdown.AvailableDays.String())
		}

		created, err = s.requests.Create(txCtx, created)
		if err != nil {
			return err
		}

		// The new pending request reserves its days immediately.
		if _, err := s.ledger.Recompute(txCtx, emp); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return leave.LeaveRequest{}, nil, err
	}

	var warnings []string
	if err := s.artifacts.Generate(ctx, created, emp, false); err != nil {
		slog.Warn("Failed to generate request letter", "request_id", created.ID, "error", err)
		warnings = append(warnings, "request letter could not be generated")
	}

	s.notifySubmitted(created, emp, authorizer)

	return created, warnings, nil
}

func (s *RequestService) Authorize(ctx context.Context, actor user.Actor, requestID string) (leave.LeaveRequest, []string, error) {
	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequest{}, nil, err
	}
	if err := s.checkDecisionCapability(actor, req); err != nil {
		return leave.LeaveRequest{}, nil, err
	}
	if !req.Status.CanAuthorize() {
		return leave.LeaveRequest{}, nil, leave.ErrAlreadyProcessed
	}

	emp, err := s.employees.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return leave.LeaveRequest{}, nil, err
	}

	err = s.transact(ctx, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.requests.LockEmployee(txCtx, emp.ID); err != nil {
			return err
		}

		moved, err := s.requests.UpdateStatus(txCtx, req.ID, leave.StatusPending, leave.StatusAuthorized, nil)
		if err != nil {
			return err
		}
		if !moved {
			return leave.ErrAlreadyProcessed
		}

		if _, err := s.ledger.Recompute(txCtx, emp); err != nil {
			return err
		}

		return s.artifacts.Restrict(txCtx, req.ID)
	})
	if err != nil {
		return leave.LeaveRequest{}, nil, err
	}
	req.Status = leave.StatusAuthorized

	var warnings []string
	if err := s.artifacts.Generate(ctx, req, emp, true); err != nil {
		slog.Warn("Failed to regenerate request letter", "request_id", req.ID, "error", err)
		warnings = append(warnings, "request letter could not be regenerated")
	}

	s.notifyDecided(req, emp, "authorized", nil)

	return req, warnings, nil
}

func (s *RequestService) Reject(ctx context.Context, actor user.Actor, requestID string, reason string) (leave.LeaveRequest, []string, error) {
	if err := (leave.RejectRequest{Reason: reason}).Validate(); err != nil {
		return leave.LeaveRequest{}, nil, err
	}

	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequest{}, nil, err
	}
	if err := s.checkDecisionCapability(actor, req); err != nil {
		return leave.LeaveRequest{}, nil, err
	}
	if !req.Status.CanAuthorize() {
		return leave.LeaveRequest{}, nil, leave.ErrAlreadyProcessed
	}

	emp, err := s.employees.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return leave.LeaveRequest{}, nil, err
	}

	err = s.transact(ctx, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.requests.LockEmployee(txCtx, emp.ID); err != nil {
			return err
		}

		moved, err := s.requests.UpdateStatus(txCtx, req.ID, leave.StatusPending, leave.StatusRejected, &reason)
		if err != nil {
			return err
		}
		if !moved {
			return leave.ErrAlreadyProcessed
		}

		// Rejected requests release their reserved days.
		_, err = s.ledger.Recompute(txCtx, emp)
		return err
	})
	if err != nil {
		return leave.LeaveRequest{}, nil, err
	}
	req.Status = leave.StatusRejected
	req.RejectionReason = &reason

	s.notifyDecided(req, emp, "rejected", &reason)

	return req, nil, nil
}

func (s *RequestService) Cancel(ctx context.Context, actor user.Actor, requestID string) (leave.LeaveRequest, error) {
	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if !actor.IsPrivileged() && !actor.SameEmployee(req.EmployeeID) {
		return leave.LeaveRequest{}, leave.ErrNotRequestOwner
	}
	if !req.Status.CanCancel() {
		return leave.LeaveRequest{}, leave.ErrNotCancellable
	}

	emp, err := s.employees.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	err = s.transact(ctx, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.requests.LockEmployee(txCtx, emp.ID); err != nil {
			return err
		}

		moved, err := s.requests.UpdateStatus(txCtx, req.ID, req.Status, leave.StatusCancelled, nil)
		if err != nil {
			return err
		}
		if !moved {
			return leave.ErrNotCancellable
		}

		_, err = s.ledger.Recompute(txCtx, emp)
		return err
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	req.Status = leave.StatusCancelled

	return req, nil
}

func (s *RequestService) Edit(ctx context.Context, actor user.Actor, requestID string, edit leave.EditRequest) (leave.LeaveRequest, []string, error) {
	if err := edit.Validate(); err != nil {
		return leave.LeaveRequest{}, nil, err
	}

	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequest{}, nil, err
	}
	if !actor.IsPrivileged() && !actor.SameEmployee(req.EmployeeID) {
		return leave.LeaveRequest{}, nil, leave.ErrNotRequestOwner
	}
	if !req.Status.CanEdit() {
		return leave.LeaveRequest{}, nil, leave.ErrNotEditable
	}

	emp, err := s.employees.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return leave.LeaveRequest{}, nil, err
	}

	ranges, err := leave.ParseRanges(edit.Ranges)
	if err != nil {
		return leave.LeaveRequest{}, nil, err
	}

	cal, err := s.buildCalendar(ctx)
	if err != nil {
		return leave.LeaveRequest{}, nil, err
	}

	details, total := ChargeRanges(ranges, cal, emp.DateOfBirth)
	remarks := edit.Remarks
	if total.IsZero() {
		if !IsBirthdayOnly(ranges, emp.DateOfBirth) {
			return leave.LeaveRequest{}, nil, leave.ErrZeroDayNotBirthday
		}
		if remarks != "" {
			remarks += " "
		}
		remarks += birthdayRemark
	}

	err = s.transact(ctx, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.requests.LockEmployee(txCtx, emp.ID); err != nil {
			return err
		}

		// The old reservation is replaced, so admission compares against
		// the balance with this request's current days released.
		breakdown, err := s.ledger.Breakdown(txCtx, emp)
		if err != nil {
			return err
		}
		if total.GreaterThan(breakdown.AvailableDays.Add(req.TotalDays)) {
			return fmt.Errorf("%w: requested %s, available %s",
				leave.ErrInsufficientBalance, total.String(), breakdown.AvailableDays.Add(req.TotalDays).String())
		}

		if err := s.requests.ReplaceDetails(txCtx, req.ID, remarks, total, details); err != nil {
			return err
		}

		_, err = s.ledger.Recompute(txCtx, emp)
		return err
	})
	if err != nil {
		return leave.LeaveRequest{}, nil, err
	}

	req.Remarks = remarks
	req.TotalDays = total
	req.Details = details

	var warnings []string
	if err := s.artifacts.Generate(ctx, req, emp, false); err != nil {
		slog.Warn("Failed to regenerate request letter", "request_id", req.ID, "error", err)
		warnings = append(warnings, "request letter could not be regenerated")
	}

	return req, warnings, nil
}

func (s *RequestService) GetByID(ctx context.Context, actor user.Actor, requestID string) (leave.LeaveRequest, error) {
	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if !s.canView(actor, req) {
		// Invisible requests read as absent, so existence never leaks.
		return leave.LeaveRequest{}, leave.ErrRequestNotFound
	}
	return req, nil
}

func (s *RequestService) List(ctx context.Context, actor user.Actor, status *leave.Status, page, limit int) ([]leave.LeaveRequest, int64, error) {
	filter := leave.ListFilter{Status: status, Page: page, Limit: limit}

	switch {
	case actor.IsPrivileged():
		// Unscoped.
	case actor.Role == user.RoleApprover:
		filter.AuthorizerUserID = &actor.UserID
	default:
		if actor.EmployeeID == nil {
			return nil, 0, leave.ErrEmployeeIdentityRequired
		}
		filter.EmployeeID = actor.EmployeeID
	}

	return s.requests.List(ctx, filter)
}

func (s *RequestService) Balance(ctx context.Context, actor user.Actor, employeeID string) (leave.BalanceBreakdown, error) {
	if !actor.IsPrivileged() && !actor.SameEmployee(employeeID) {
		return leave.BalanceBreakdown{}, user.ErrInsufficientPermissions
	}

	emp, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return leave.BalanceBreakdown{}, err
	}

	return s.ledger.Breakdown(ctx, emp)
}

func (s *RequestService) FetchDocument(ctx context.Context, actor user.Actor, requestID string) (leave.Document, error) {
	req, err := s.GetByID(ctx, actor, requestID)
	if err != nil {
		return leave.Document{}, err
	}
	return s.artifacts.Fetch(ctx, req, actor)
}

func (s *RequestService) checkDecisionCapability(actor user.Actor, req leave.LeaveRequest) error {
	if actor.IsPrivileged() {
		return nil
	}
	if !actor.CanAuthorize() {
		return user.ErrApproverAccessRequired
	}
	if req.AuthorizerUserID != actor.UserID {
		return leave.ErrNotAuthorizer
	}
	return nil
}

func (s *RequestService) canView(actor user.Actor, req leave.LeaveRequest) bool {
	if actor.IsPrivileged() {
		return true
	}
	if req.AuthorizerUserID == actor.UserID {
		return true
	}
	return actor.SameEmployee(req.EmployeeID)
}

// Notifications are fire and forget: delivery problems are logged by the
// email service and never fail the triggering operation.
func (s *RequestService) notifySubmitted(req leave.LeaveRequest, emp employee.Employee, authorizer user.User) {
	go func() {
		link := fmt.Sprintf("%s/api/v1/leave-requests/%s", s.baseURL, req.ID)
		if err := s.email.SendRequestSubmitted(authorizer.Email, authorizer.FullName, emp.FullName, req.TotalDays.String(), link); err != nil {
			slog.Warn("Failed to notify authorizer", "request_id", req.ID, "error", err)
		}
	}()
}

func (s *RequestService) notifyDecided(req leave.LeaveRequest, emp employee.Employee, decision string, reason *string) {
	go func() {
		owner, err := s.users.GetByEmployeeID(context.Background(), emp.ID)
		if err != nil {
			slog.Warn("Failed to resolve request owner for notification", "request_id", req.ID, "error", err)
			return
		}
		if err := s.email.SendRequestDecided(owner.Email, emp.FullName, req.ID, decision, reason); err != nil {
			slog.Warn("Failed to notify employee", "request_id", req.ID, "error", err)
		}
	}()
}
