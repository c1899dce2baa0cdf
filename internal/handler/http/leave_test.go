package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geko-hr/leave-backend-go/internal/domain/leave"
	"github.com/geko-hr/leave-backend-go/internal/domain/user"
	"github.com/geko-hr/leave-backend-go/internal/handler/http/response"
)

type stubRequestService struct {
	listPage  int
	listLimit int
	requests  []leave.LeaveRequest
	total     int64
}

func (s *stubRequestService) Submit(_ context.Context, _ user.Actor, _ leave.SubmitRequest) (leave.LeaveRequest, []string, error) {
	return leave.LeaveRequest{}, nil, nil
}

func (s *stubRequestService) Authorize(_ context.Context, _ user.Actor, _ string) (leave.LeaveRequest, []string, error) {
	return leave.LeaveRequest{}, nil, nil
}

func (s *stubRequestService) Reject(_ context.Context, _ user.Actor, _ string, _ string) (leave.LeaveRequest, []string, error) {
	return leave.LeaveRequest{}, nil, nil
}

func (s *stubRequestService) Cancel(_ context.Context, _ user.Actor, _ string) (leave.LeaveRequest, error) {
	return leave.LeaveRequest{}, nil
}

func (s *stubRequestService) Edit(_ context.Context, _ user.Actor, _ string, _ leave.EditRequest) (leave.LeaveRequest, []string, error) {
	return leave.LeaveRequest{}, nil, nil
}

func (s *stubRequestService) GetByID(_ context.Context, _ user.Actor, _ string) (leave.LeaveRequest, error) {
	return leave.LeaveRequest{}, nil
}

func (s *stubRequestService) List(_ context.Context, _ user.Actor, _ *leave.Status, page, limit int) ([]leave.LeaveRequest, int64, error) {
	s.listPage = page
	s.listLimit = limit
	return s.requests, s.total, nil
}

func (s *stubRequestService) Balance(_ context.Context, _ user.Actor, _ string) (leave.BalanceBreakdown, error) {
	return leave.BalanceBreakdown{}, nil
}

func (s *stubRequestService) FetchDocument(_ context.Context, _ user.Actor, _ string) (leave.Document, error) {
	return leave.Document{}, nil
}

func authedRequest(t *testing.T, target string) *http.Request {
	t.Helper()

	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"user_id": "user-hr",
		"role":    "hr",
		"type":    "access",
	})
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, target, nil)
	return r.WithContext(jwtauth.NewContext(r.Context(), token, nil))
}

func decodeMeta(t *testing.T, body []byte) *response.Meta {
	t.Helper()

	var resp struct {
		Meta *response.Meta `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(body, &resp))
	require.NotNil(t, resp.Meta)
	return resp.Meta
}

func TestLeaveList_OversizedLimitClampedInMeta(t *testing.T) {
	stub := &stubRequestService{total: 101}
	h := NewLeaveHandler(stub)

	w := httptest.NewRecorder()
	h.List(w, authedRequest(t, "/api/v1/leave-requests?limit=500"))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 20, stub.listLimit)

	meta := decodeMeta(t, w.Body.Bytes())
	assert.Equal(t, 20, meta.Limit)
	assert.Equal(t, 6, meta.TotalPages)
}

func TestLeaveList_InRangeLimitPassedThrough(t *testing.T) {
	stub := &stubRequestService{total: 101}
	h := NewLeaveHandler(stub)

	w := httptest.NewRecorder()
	h.List(w, authedRequest(t, "/api/v1/leave-requests?limit=50&page=2"))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 50, stub.listLimit)
	assert.Equal(t, 2, stub.listPage)

	meta := decodeMeta(t, w.Body.Bytes())
	assert.Equal(t, 50, meta.Limit)
	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 3, meta.TotalPages)
}

func TestLeaveList_MissingLimitDefaults(t *testing.T) {
	stub := &stubRequestService{total: 5}
	h := NewLeaveHandler(stub)

	w := httptest.NewRecorder()
	h.List(w, authedRequest(t, "/api/v1/leave-requests"))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 20, stub.listLimit)
	assert.Equal(t, 1, stub.listPage)
}
