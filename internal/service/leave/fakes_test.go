package leave

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/geko-hr/leave-backend-go/internal/domain/artifact"
	"github.com/geko-hr/leave-backend-go/internal/domain/employee"
	"github.com/geko-hr/leave-backend-go/internal/domain/leave"
	"github.com/geko-hr/leave-backend-go/internal/domain/signature"
	"github.com/geko-hr/leave-backend-go/internal/domain/user"
	"github.com/geko-hr/leave-backend-go/internal/pkg/pdf"
)

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
	teams     map[string][]employee.TeamMember
	available map[string]decimal.Decimal
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{
		employees: map[string]employee.Employee{},
		teams:     map[string][]employee.TeamMember{},
		available: map[string]decimal.Decimal{},
	}
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) GetTeamMembers(_ context.Context, teamID string) ([]employee.TeamMember, error) {
	return f.teams[teamID], nil
}

func (f *fakeEmployeeRepo) UpdateAvailableDays(_ context.Context, employeeID string, available decimal.Decimal) error {
	if _, ok := f.employees[employeeID]; !ok {
		return employee.ErrEmployeeNotFound
	}
	f.available[employeeID] = available
	return nil
}

type fakeRequestRepo struct {
	requests map[string]leave.LeaveRequest
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: map[string]leave.LeaveRequest{}}
}

func (f *fakeRequestRepo) Create(_ context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	if request.ID == "" {
		request.ID = fmt.Sprintf("req-%d", len(f.requests)+1)
	}
	f.requests[request.ID] = request
	return request, nil
}

func (f *fakeRequestRepo) GetByID(_ context.Context, id string) (leave.LeaveRequest, error) {
	req, ok := f.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrRequestNotFound
	}
	return req, nil
}

func (f *fakeRequestRepo) List(_ context.Context, _ leave.ListFilter) ([]leave.LeaveRequest, int64, error) {
	out := make([]leave.LeaveRequest, 0, len(f.requests))
	for _, req := range f.requests {
		out = append(out, req)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRequestRepo) UpdateStatus(_ context.Context, id string, from, to leave.Status, rejectionReason *string) (bool, error) {
	req, ok := f.requests[id]
	if !ok || req.Status != from {
		return false, nil
	}
	req.Status = to
	if rejectionReason != nil {
		req.RejectionReason = rejectionReason
	}
	f.requests[id] = req
	return true, nil
}

func (f *fakeRequestRepo) ReplaceDetails(_ context.Context, requestID string, remarks string, total decimal.Decimal, details []leave.RequestDetail) error {
	req, ok := f.requests[requestID]
	if !ok {
		return leave.ErrRequestNotFound
	}
	req.Remarks = remarks
	req.TotalDays = total
	req.Details = details
	f.requests[requestID] = req
	return nil
}

func (f *fakeRequestRepo) SumActiveDays(_ context.Context, employeeID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, req := range f.requests {
		if req.EmployeeID == employeeID && req.Status.CountsAgainstBalance() {
			total = total.Add(req.TotalDays)
		}
	}
	return total, nil
}

func (f *fakeRequestRepo) LockEmployee(_ context.Context, _ string) error {
	return nil
}

type fakeUserRepo struct {
	byID         map[string]user.User
	byEmployeeID map[string]user.User
}

func newFakeUserRepo(users ...user.User) *fakeUserRepo {
	f := &fakeUserRepo{byID: map[string]user.User{}, byEmployeeID: map[string]user.User{}}
	for _, u := range users {
		f.byID[u.ID] = u
		if u.EmployeeID != nil {
			f.byEmployeeID[*u.EmployeeID] = u
		}
	}
	return f
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmployeeID(_ context.Context, employeeID string) (user.User, error) {
	u, ok := f.byEmployeeID[employeeID]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

type fakeArtifactRepo struct {
	artifacts map[string]artifact.PdfArtifact
}

func newFakeArtifactRepo() *fakeArtifactRepo {
	return &fakeArtifactRepo{artifacts: map[string]artifact.PdfArtifact{}}
}

func (f *fakeArtifactRepo) Upsert(_ context.Context, a artifact.PdfArtifact) error {
	if existing, ok := f.artifacts[a.RequestID]; ok {
		a.DownloadState = existing.DownloadState
	}
	f.artifacts[a.RequestID] = a
	return nil
}

func (f *fakeArtifactRepo) GetByRequestID(_ context.Context, requestID string) (artifact.PdfArtifact, error) {
	a, ok := f.artifacts[requestID]
	if !ok {
		return artifact.PdfArtifact{}, artifact.ErrArtifactNotFound
	}
	return a, nil
}

func (f *fakeArtifactRepo) SetDownloadState(_ context.Context, requestID string, state artifact.DownloadState) error {
	a, ok := f.artifacts[requestID]
	if !ok {
		return artifact.ErrArtifactNotFound
	}
	a.DownloadState = state
	f.artifacts[requestID] = a
	return nil
}

type fakeSignatureRepo struct {
	signatures map[string]signature.Signature
}

func newFakeSignatureRepo() *fakeSignatureRepo {
	return &fakeSignatureRepo{signatures: map[string]signature.Signature{}}
}

func (f *fakeSignatureRepo) Upsert(_ context.Context, s signature.Signature) error {
	f.signatures[s.UserID] = s
	return nil
}

func (f *fakeSignatureRepo) GetByUserID(_ context.Context, userID string) (signature.Signature, error) {
	s, ok := f.signatures[userID]
	if !ok {
		return signature.Signature{}, signature.ErrSignatureNotFound
	}
	return s, nil
}

func (f *fakeSignatureRepo) Delete(_ context.Context, userID string) error {
	if _, ok := f.signatures[userID]; !ok {
		return signature.ErrSignatureNotFound
	}
	delete(f.signatures, userID)
	return nil
}

type fakeRenderer struct {
	output   []byte
	last     pdf.DocumentData
	failures int
}

func (f *fakeRenderer) Render(data pdf.DocumentData) ([]byte, error) {
	f.last = data
	if f.failures > 0 {
		f.failures--
		return nil, errors.New("render failed")
	}
	return f.output, nil
}
