package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/geko-hr/leave-backend-go/internal/domain/leave"
	"github.com/geko-hr/leave-backend-go/internal/handler/http/middleware"
	"github.com/geko-hr/leave-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	Edit(w http.ResponseWriter, r *http.Request)
	Authorize(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	Document(w http.ResponseWriter, r *http.Request)
	Balance(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	service leave.RequestService
}

func NewLeaveHandler(service leave.RequestService) LeaveHandler {
	return &LeaveHandlerImpl{service: service}
}

type leaveDetailResponse struct {
	StartDate string          `json:"start_date"`
	EndDate   string          `json:"end_date"`
	Days      decimal.Decimal `json:"days"`
}

type leaveRequestResponse struct {
	ID               string                `json:"id"`
	EmployeeID       string                `json:"employee_id"`
	EmployeeName     *string               `json:"employee_name,omitempty"`
	AuthorizerUserID string                `json:"authorizer_user_id"`
	AuthorizerName   *string               `json:"authorizer_name,omitempty"`
	TotalDays        decimal.Decimal       `json:"total_days"`
	Remarks          string                `json:"remarks,omitempty"`
	Status           leave.Status          `json:"status"`
	RejectionReason  *string               `json:"rejection_reason,omitempty"`
	Format           int                   `json:"format"`
	SubmittedAt      string                `json:"submitted_at"`
	Details          []leaveDetailResponse `json:"details,omitempty"`
}

func toLeaveRequestResponse(req leave.LeaveRequest) leaveRequestResponse {
	resp := leaveRequestResponse{
		ID:               req.ID,
		EmployeeID:       req.EmployeeID,
		EmployeeName:     req.EmployeeName,
		AuthorizerUserID: req.AuthorizerUserID,
		AuthorizerName:   req.AuthorizerName,
		TotalDays:        req.TotalDays,
		Remarks:          req.Remarks,
		Status:           req.Status,
		RejectionReason:  req.RejectionReason,
		Format:           int(req.Format),
		SubmittedAt:      req.SubmittedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	for _, d := range req.Details {
		resp.Details = append(resp.Details, leaveDetailResponse{
			StartDate: d.StartDate.Format("2006-01-02"),
			EndDate:   d.EndDate.Format("2006-01-02"),
			Days:      d.Days,
		})
	}
	return resp
}

func (h *LeaveHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req leave.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode submit request", "error", err)
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	created, warnings, err := h.service.Submit(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.CreatedWithWarnings(w, "Leave request submitted", toLeaveRequestResponse(created), warnings)
}

func (h *LeaveHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var status *leave.Status
	if s := r.URL.Query().Get("status"); s != "" {
		st := leave.Status(s)
		if !st.IsValid() {
			response.BadRequest(w, "Invalid status filter", nil)
			return
		}
		status = &st
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if page < 1 {
		page = 1
	}
	// Same clamp the repository applies, so Meta reflects the page size
	// actually served.
	if limit < 1 || limit > 100 {
		limit = 20
	}

	requests, total, err := h.service.List(r.Context(), actor, status, page, limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	items := make([]leaveRequestResponse, 0, len(requests))
	for _, req := range requests {
		items = append(items, toLeaveRequestResponse(req))
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	response.SuccessWithMeta(w, items, &response.Meta{
		Page:       page,
		Limit:      limit,
		TotalItems: total,
		TotalPages: totalPages,
	})
}

func (h *LeaveHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	req, err := h.service.GetByID(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, toLeaveRequestResponse(req))
}

func (h *LeaveHandlerImpl) Edit(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req leave.EditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode edit request", "error", err)
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	updated, warnings, err := h.service.Edit(r.Context(), actor, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithWarnings(w, toLeaveRequestResponse(updated), warnings)
}

func (h *LeaveHandlerImpl) Authorize(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	req, warnings, err := h.service.Authorize(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithWarnings(w, toLeaveRequestResponse(req), warnings)
}

func (h *LeaveHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var body leave.RejectRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		slog.Error("Failed to decode reject request", "error", err)
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	req, warnings, err := h.service.Reject(r.Context(), actor, chi.URLParam(r, "id"), body.Reason)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithWarnings(w, toLeaveRequestResponse(req), warnings)
}

func (h *LeaveHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	req, err := h.service.Cancel(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request cancelled", toLeaveRequestResponse(req))
}

func (h *LeaveHandlerImpl) Document(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	doc, err := h.service.FetchDocument(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+doc.FileName+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc.Data); err != nil {
		slog.Error("Failed to write document response", "error", err)
	}
}

func (h *LeaveHandlerImpl) Balance(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	breakdown, err := h.service.Balance(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, breakdown)
}
