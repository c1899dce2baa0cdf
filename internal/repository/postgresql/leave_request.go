package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/geko-hr/leave-backend-go/internal/domain/leave"
	"github.com/geko-hr/leave-backend-go/internal/pkg/database"
)

type LeaveRequestRepository struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) *LeaveRequestRepository {
	return &LeaveRequestRepository{db: db}
}

func (r *LeaveRequestRepository) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	request.ID = uuid.NewString()
	err := q.QueryRow(ctx, `
		INSERT INTO leave_requests
			(id, employee_id, authorizer_user_id, total_days, remarks, status,
			 rejection_reason, format, submitted_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING submitted_at, updated_at
	`,
		request.ID,
		request.EmployeeID,
		request.AuthorizerUserID,
		request.TotalDays,
		request.Remarks,
		request.Status,
		request.RejectionReason,
		int(request.Format),
	).Scan(&request.SubmittedAt, &request.UpdatedAt)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("insert leave request: %w", err)
	}

	for i := range request.Details {
		request.Details[i].ID = uuid.NewString()
		request.Details[i].RequestID = request.ID
		_, err := q.Exec(ctx, `
			INSERT INTO leave_request_details (id, request_id, start_date, end_date, days)
			VALUES ($1, $2, $3, $4, $5)
		`,
			request.Details[i].ID,
			request.ID,
			request.Details[i].StartDate,
			request.Details[i].EndDate,
			request.Details[i].Days,
		)
		if err != nil {
			return leave.LeaveRequest{}, fmt.Errorf("insert leave request detail: %w", err)
		}
	}

	return request, nil
}

func (r *LeaveRequestRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	var req leave.LeaveRequest
	var format int
	err := q.QueryRow(ctx, `
		SELECT lr.id, lr.employee_id, lr.authorizer_user_id, lr.total_days,
		       lr.remarks, lr.status, lr.rejection_reason, lr.format,
		       lr.submitted_at, lr.updated_at,
		       e.full_name, u.full_name
		FROM leave_requests lr
		JOIN employees e ON e.id = lr.employee_id
		LEFT JOIN users u ON u.id = lr.authorizer_user_id
		WHERE lr.id = $1
	`, id).Scan(
		&req.ID,
		&req.EmployeeID,
		&req.AuthorizerUserID,
		&req.TotalDays,
		&req.Remarks,
		&req.Status,
		&req.RejectionReason,
		&format,
		&req.SubmittedAt,
		&req.UpdatedAt,
		&req.EmployeeName,
		&req.AuthorizerName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("get leave request: %w", err)
	}
	req.Format = leave.DocumentFormat(format)

	details, err := r.getDetails(ctx, q, id)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	req.Details = details

	return req, nil
}

func (r *LeaveRequestRepository) getDetails(ctx context.Context, q database.Querier, requestID string) ([]leave.RequestDetail, error) {
	rows, err := q.Query(ctx, `
		SELECT id, request_id, start_date, end_date, days
		FROM leave_request_details
		WHERE request_id = $1
		ORDER BY start_date
	`, requestID)
	if err != nil {
		return nil, fmt.Errorf("get leave request details: %w", err)
	}
	defer rows.Close()

	var details []leave.RequestDetail
	for rows.Next() {
		var d leave.RequestDetail
		if err := rows.Scan(&d.ID, &d.RequestID, &d.StartDate, &d.EndDate, &d.Days); err != nil {
			return nil, fmt.Errorf("scan leave request detail: %w", err)
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leave request details: %w", err)
	}

	return details, nil
}

func (r *LeaveRequestRepository) List(ctx context.Context, filter leave.ListFilter) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "WHERE 1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil {
		where += fmt.Sprintf(" AND lr.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.AuthorizerUserID != nil {
		where += fmt.Sprintf(" AND lr.authorizer_user_id = $%d", argIdx)
		args = append(args, *filter.AuthorizerUserID)
		argIdx++
	}
	if filter.Status != nil {
		where += fmt.Sprintf(" AND lr.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM leave_requests lr " + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count leave requests: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := fmt.Sprintf(`
		SELECT lr.id, lr.employee_id, lr.authorizer_user_id, lr.total_days,
		       lr.remarks, lr.status, lr.rejection_reason, lr.format,
		       lr.submitted_at, lr.updated_at,
		       e.full_name, u.full_name
		FROM leave_requests lr
		JOIN employees e ON e.id = lr.employee_id
		LEFT JOIN users u ON u.id = lr.authorizer_user_id
		%s
		ORDER BY lr.submitted_at DESC
		LIMIT $%d OFFSET $%d
	`, where, argIdx, argIdx+1)
	args = append(args, limit, (page-1)*limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		var req leave.LeaveRequest
		var format int
		err := rows.Scan(
			&req.ID,
			&req.EmployeeID,
			&req.AuthorizerUserID,
			&req.TotalDays,
			&req.Remarks,
			&req.Status,
			&req.RejectionReason,
			&format,
			&req.SubmittedAt,
			&req.UpdatedAt,
			&req.EmployeeName,
			&req.AuthorizerName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan leave request: %w", err)
		}
		req.Format = leave.DocumentFormat(format)
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate leave requests: %w", err)
	}

	return requests, total, nil
}

// UpdateStatus performs the compare-and-set transition. A false return
// means the request was not in the expected state (concurrent transition
// won, or the caller read stale data).
func (r *LeaveRequestRepository) UpdateStatus(ctx context.Context, id string, from, to leave.Status, rejectionReason *string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE leave_requests
		SET status = $3, rejection_reason = COALESCE($4, rejection_reason), updated_at = NOW()
		WHERE id = $1 AND status = $2
	`, id, from, to, rejectionReason)
	if err != nil {
		return false, fmt.Errorf("update leave request status: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *LeaveRequestRepository) ReplaceDetails(ctx context.Context, requestID string, remarks string, total decimal.Decimal, details []leave.RequestDetail) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM leave_request_details WHERE request_id = $1`, requestID); err != nil {
		return fmt.Errorf("delete leave request details: %w", err)
	}

	for i := range details {
		details[i].ID = uuid.NewString()
		details[i].RequestID = requestID
		_, err := q.Exec(ctx, `
			INSERT INTO leave_request_details (id, request_id, start_date, end_date, days)
			VALUES ($1, $2, $3, $4, $5)
		`, details[i].ID, requestID, details[i].StartDate, details[i].EndDate, details[i].Days)
		if err != nil {
			return fmt.Errorf("insert leave request detail: %w", err)
		}
	}

	tag, err := q.Exec(ctx, `
		UPDATE leave_requests
		SET remarks = $2, total_days = $3, updated_at = NOW()
		WHERE id = $1
	`, requestID, remarks, total)
	if err != nil {
		return fmt.Errorf("update leave request totals: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrRequestNotFound
	}

	return nil
}

func (r *LeaveRequestRepository) SumActiveDays(ctx context.Context, employeeID string) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	var sum decimal.Decimal
	err := q.QueryRow(ctx, `
		SELECT COALESCE(SUM(total_days), 0)
		FROM leave_requests
		WHERE employee_id = $1 AND status NOT IN ($2, $3)
	`, employeeID, leave.StatusRejected, leave.StatusCancelled).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum active days: %w", err)
	}

	return sum, nil
}

// LockEmployee serializes ledger work per employee. The lock is released
// when the surrounding transaction commits or rolls back.
func (r *LeaveRequestRepository) LockEmployee(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, employeeID); err != nil {
		return fmt.Errorf("lock employee: %w", err)
	}
	return nil
}
