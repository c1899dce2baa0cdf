package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/geko-hr/leave-backend-go/internal/handler/http/middleware"
	"github.com/geko-hr/leave-backend-go/internal/pkg/jwt"
)

func NewRouter(JWTService jwt.Service, authHandler AuthHandler, leaveHandler LeaveHandler, signatureHandler SignatureHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "leave-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/leave-requests", func(r chi.Router) {
				r.Post("/", leaveHandler.Submit)
				r.Get("/", leaveHandler.List)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", leaveHandler.GetByID)
					r.Patch("/", leaveHandler.Edit)
					r.Post("/cancel", leaveHandler.Cancel)
					r.Get("/document", leaveHandler.Document)

					// Approver or privileged only
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireApprover)
						r.Post("/authorize", leaveHandler.Authorize)
						r.Post("/reject", leaveHandler.Reject)
					})
				})
			})

			r.Get("/employees/{id}/balance", leaveHandler.Balance)

			r.Route("/signatures/me", func(r chi.Router) {
				r.Get("/", signatureHandler.Get)
				r.Put("/", signatureHandler.Upload)
				r.Delete("/", signatureHandler.Delete)
				r.Get("/image", signatureHandler.Image)
			})
		})
	})

	return r
}
