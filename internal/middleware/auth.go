package middleware

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// SessionValidator checks an admin session token. Satisfied by the auth
// service.
type SessionValidator interface {
	Validate(token string) error
}

// SessionMiddleware guards the admin surface: it requires a valid Bearer
// session token issued by the login endpoint. There are no users or roles
// behind the gate, only the one shared-secret session.
func SessionMiddleware(sessions SessionValidator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Debug("Missing authorization header")
				RespondWithError(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				logger.Debug("Invalid authorization header format")
				RespondWithError(w, http.StatusUnauthorized, "invalid authorization header format")
				return
			}

			if err := sessions.Validate(parts[1]); err != nil {
				logger.Debug("Session validation failed", zap.Error(err))
				RespondWithError(w, http.StatusUnauthorized, "invalid or expired session")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// BearerToken extracts the Bearer token from a request, if present.
func BearerToken(r *http.Request) (string, bool) {
	parts := strings.Split(r.Header.Get("Authorization"), " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}
