package http

import (
	"context"
	"net"
	"net/http"
	"strings"

	"fintrack/internal/log"
)

type contextKey string

const userIDContextKey contextKey = "user_id"

// userIDFromContext returns the authenticated caller's ID. Only valid
// inside handlers wrapped by requireAuth.
func userIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDContextKey).(int64)
	return id, ok
}

// requireAuth verifies the bearer credential before the handler runs. A
// missing or bad credential stops the request here; the store is never
// touched.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			respondError(w, r, http.StatusUnauthorized, "authorization required")
			return
		}

		credential, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || credential == "" {
			respondError(w, r, http.StatusUnauthorized, "invalid authorization header")
			return
		}

		userID, err := s.verifier.Verify(credential)
		if err != nil {
			logger := log.FromContext(r.Context())
			logger.WarnContext(r.Context(), "token verification failed",
				log.FieldError, err.Error(),
			)
			respondError(w, r, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), userIDContextKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.rateLimiter.allow(requestClientIP(r)) {
			respondError(w, r, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requestClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
