package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/geko-hr/leave-backend-go/internal/domain/auth"
	"github.com/geko-hr/leave-backend-go/internal/handler/http/response"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	service auth.Service
}

func NewAuthHandler(service auth.Service) AuthHandler {
	return &AuthHandlerImpl{service: service}
}

func (h *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode login request", "error", err)
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}
