package rest

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/phonomarket/phono/internal/common"
)

type ctxKey int

const userIDKey ctxKey = iota

// userID extracts the authenticated user from the request context. The zero
// value means the request did not pass the authenticate middleware.
func userID(ctx context.Context) int64 {
	id, _ := ctx.Value(userIDKey).(int64)
	return id
}

// authenticate validates the bearer token and stores the user id in the
// request context.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(common.AuthHeaderName)
		if !strings.HasPrefix(header, common.BearerPrefix) {
			writeError(w, common.ErrorUnauthorized)
			return
		}
		id, err := s.auth.UserIDFromToken(strings.TrimPrefix(header, common.BearerPrefix))
		if err != nil {
			writeError(w, common.ErrorUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, id)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// logRequests logs one line per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
