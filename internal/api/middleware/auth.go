package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"crm-admin/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

type subjectKey struct{}

// anonymousSubject is reported when auth is disabled.
const anonymousSubject = "admin"

// Subject returns the username the request was authenticated as.
func Subject(ctx context.Context) string {
	if s, ok := ctx.Value(subjectKey{}).(string); ok && s != "" {
		return s
	}
	return anonymousSubject
}

func WithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, subjectKey{}, subject)
}

func AuthMiddleware(cfg config.AuthConfig, logger *slog.Logger) func(http.Handler) http.Handler {
	if !cfg.Enabled {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject, ok := validateJWT(r, cfg.JWTSecret, logger)
			if !ok {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("WWW-Authenticate", `Bearer realm="crm-admin"`)
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":{"message":"Unauthorized"}}`))
				return
			}
			next.ServeHTTP(w, r.WithContext(WithSubject(r.Context(), subject)))
		})
	}
}

func validateJWT(r *http.Request, secret string, logger *slog.Logger) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		logger.WarnContext(r.Context(), "AuthMiddleware: Missing Authorization header")
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		logger.WarnContext(r.Context(), "AuthMiddleware: Invalid Authorization header format")
		return "", false
	}
	tokenString := parts[1]

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())

	if err != nil || !token.Valid {
		logger.WarnContext(r.Context(), "AuthMiddleware: Invalid token", "error", err)
		return "", false
	}

	logger.DebugContext(r.Context(), "AuthMiddleware: Authenticated request", "subject", claims.Subject)
	return claims.Subject, true
}
