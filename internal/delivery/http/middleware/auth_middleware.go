package middleware

import (
	"context"
	"net/http"
	"strings"

	"forpharma-console/internal/domain/entity"
	"forpharma-console/internal/domain/repository"
	"forpharma-console/pkg/jwt"
	"forpharma-console/pkg/response"

	"github.com/sirupsen/logrus"
)

type contextKey string

const (
	SessionKey contextKey = "session"
)

type AuthMiddleware struct {
	jwtService  *jwt.JWTService
	sessionRepo repository.SessionRepository
	log         *logrus.Logger
}

func NewAuthMiddleware(jwtService *jwt.JWTService, sessionRepo repository.SessionRepository, log *logrus.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:  jwtService,
		sessionRepo: sessionRepo,
		log:         log,
	}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		if claims.TokenType != jwt.AccessToken {
			response.Unauthorized(w, "Invalid token type")
			return
		}

		// The registry entry carries the upstream token; no entry means revoked.
		session, err := m.sessionRepo.Find(r.Context(), repository.SessionAccessToken, claims.UserID, claims.TokenID)
		if err != nil {
			m.log.Warnf("Failed to load session: %+v", err)
			response.InternalServerError(w, "Failed to validate token")
			return
		}
		if session == nil {
			response.Unauthorized(w, "Token has been revoked")
			return
		}

		ctx := context.WithValue(r.Context(), SessionKey, *session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetSessionFromContext extracts the signed-in session from context
func GetSessionFromContext(ctx context.Context) (entity.Session, bool) {
	session, ok := ctx.Value(SessionKey).(entity.Session)
	return session, ok
}

