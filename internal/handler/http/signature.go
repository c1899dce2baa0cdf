package http

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/geko-hr/leave-backend-go/internal/domain/signature"
	"github.com/geko-hr/leave-backend-go/internal/handler/http/middleware"
	"github.com/geko-hr/leave-backend-go/internal/handler/http/response"
)

type SignatureHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Upload(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Image(w http.ResponseWriter, r *http.Request)
}

type SignatureHandlerImpl struct {
	service signature.Service
}

func NewSignatureHandler(service signature.Service) SignatureHandler {
	return &SignatureHandlerImpl{service: service}
}

func (h *SignatureHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	info, err := h.service.Get(r.Context(), actor.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, info)
}

func (h *SignatureHandlerImpl) Upload(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	if err := r.ParseMultipartForm(signature.MaxImageSize); err != nil {
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		response.BadRequest(w, "Signature image file is required", nil)
		return
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, signature.MaxImageSize+1))
	if err != nil {
		slog.Error("Failed to read signature upload", "error", err)
		response.BadRequest(w, "Failed to read signature image", nil)
		return
	}

	info, err := h.service.Upload(r.Context(), actor.UserID, header.Filename, header.Header.Get("Content-Type"), image)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Signature saved", info)
}

func (h *SignatureHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	if err := h.service.Delete(r.Context(), actor.UserID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Signature deleted", nil)
}

func (h *SignatureHandlerImpl) Image(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	sig, err := h.service.Image(r.Context(), actor.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", sig.ContentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(sig.Image); err != nil {
		slog.Error("Failed to write signature image response", "error", err)
	}
}
