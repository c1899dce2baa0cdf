package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/geko-hr/leave-backend-go/internal/domain/user"
	"github.com/geko-hr/leave-backend-go/internal/handler/http/response"
)

// RequirePrivileged requires the admin or HR role
func RequirePrivileged(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, user.ErrInsufficientPermissions)
			return
		}

		roleStr, ok := claims["role"].(string)
		if !ok {
			response.HandleError(w, user.ErrInsufficientPermissions)
			return
		}

		role := user.Role(roleStr)
		if role != user.RoleAdmin && role != user.RoleHR {
			response.HandleError(w, user.ErrInsufficientPermissions)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireApprover requires a role that can authorize requests
func RequireApprover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, user.ErrApproverAccessRequired)
			return
		}

		roleStr, ok := claims["role"].(string)
		if !ok {
			response.HandleError(w, user.ErrApproverAccessRequired)
			return
		}

		role := user.Role(roleStr)
		if role != user.RoleApprover && role != user.RoleAdmin && role != user.RoleHR {
			response.HandleError(w, user.ErrApproverAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
