// Package middleware contains the HTTP middleware of the sync server.
package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/iudanet/gophsync/internal/server/handlers"
	"github.com/iudanet/gophsync/internal/server/jwt"
)

// TokenValidator validates access tokens
type TokenValidator interface {
	ValidateAccessToken(token string) (*jwt.Claims, error)
}

// AuthMiddleware создает middleware для проверки JWT токена.
// Идентификатор клиента из токена кладется в контекст запроса.
func AuthMiddleware(logger *slog.Logger, validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("Missing Authorization header", "path", r.URL.Path)
				handlers.WriteError(logger, w, "missing token", http.StatusUnauthorized)
				return
			}

			// Ожидаем формат: "Bearer <token>"
			scheme, token, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
				logger.Warn("Invalid Authorization header format")
				handlers.WriteError(logger, w, "invalid token format", http.StatusUnauthorized)
				return
			}

			claims, err := validator.ValidateAccessToken(strings.TrimSpace(token))
			if err != nil {
				logger.Warn("Invalid access token", "error", err)
				handlers.WriteError(logger, w, "invalid token", http.StatusUnauthorized)
				return
			}

			logger.Debug("Client authenticated", "client_id", claims.ClientID())

			next.ServeHTTP(w, r.WithContext(handlers.WithClientID(r.Context(), claims.ClientID())))
		})
	}
}
