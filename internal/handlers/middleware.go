package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"wordrush/internal/security"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const SessionContextKey ContextKey = "session_uid"

// TokenVerifier verifies session tokens. Satisfied by *security.TokenIssuer.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Middleware holds dependencies for middleware functions
type Middleware struct {
	tokens  TokenVerifier
	limiter *security.RateLimiter
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(tokens TokenVerifier, limiter *security.RateLimiter) *Middleware {
	return &Middleware{tokens: tokens, limiter: limiter}
}

// RequireSession verifies the bearer token and puts the session UID it
// was issued for on the request context.
func (m *Middleware) RequireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			respondWithError(w, http.StatusUnauthorized, "missing session token", nil)
			return
		}

		sessionUID, err := m.tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, "invalid session token", err)
			return
		}

		ctx := context.WithValue(r.Context(), SessionContextKey, sessionUID)
		next(w, r.WithContext(ctx))
	}
}

// RateLimit rejects clients that start sessions too fast.
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if m.limiter != nil && !m.limiter.Allow(security.GetClientIP(r)) {
			respondWithError(w, http.StatusTooManyRequests, "too many requests", nil)
			return
		}
		next(w, r)
	}
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// SessionFromContext retrieves the session UID from the request context
func SessionFromContext(ctx context.Context) string {
	uid, _ := ctx.Value(SessionContextKey).(string)
	return uid
}
