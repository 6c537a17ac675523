package middleware

import (
	"net/http"

	"forpharma-console/internal/domain/entity"
	"forpharma-console/pkg/response"
)

// RequireRole creates a middleware that checks if the user has any of the required roles
// Role is read from the session set by AuthMiddleware
func RequireRole(allowedRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := GetSessionFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Role information not found")
				return
			}

			allowed := false
			for _, role := range allowedRoles {
				if session.Role == role {
					allowed = true
					break
				}
			}

			if !allowed {
				response.Forbidden(w, "You don't have permission to access this resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin is a convenience middleware for admin-only endpoints
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(entity.RoleAdmin)(next)
}

// RequireStaff lets admins and managers through
func RequireStaff(next http.Handler) http.Handler {
	return RequireRole(entity.RoleAdmin, entity.RoleManager)(next)
}
