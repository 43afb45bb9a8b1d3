// Package middleware provides HTTP middleware for the planner API server.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewSlogLogger returns a middleware that logs each request as a structured
// JSON line via the provided slog.Logger. It captures method, path, HTTP
// status, duration, the request ID set by chi's RequestID middleware, and any
// attributes added further down the chain (the session subject set by
// NewAuth).
//
// Wire it after chimiddleware.RequestID so the request ID is available.
func NewSlogLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// WrapResponseWriter intercepts WriteHeader so we can read the
			// status code after the downstream handler has run.
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			extra := &requestAttrs{}
			ctx := context.WithValue(r.Context(), requestAttrsKey{}, extra)

			next.ServeHTTP(ww, r.WithContext(ctx))

			args := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", chimiddleware.GetReqID(r.Context()),
			}
			log.InfoContext(r.Context(), "request", append(args, extra.list()...)...)
		})
	}
}

type requestAttrsKey struct{}

// requestAttrs collects key/value pairs for the request log line.
type requestAttrs struct {
	mu   sync.Mutex
	args []any
}

func (a *requestAttrs) add(args ...any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.args = append(a.args, args...)
}

func (a *requestAttrs) list() []any {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.args
}

// annotate adds key/value pairs to the request log line, if the request is
// being logged by NewSlogLogger.
func annotate(ctx context.Context, args ...any) {
	if a, ok := ctx.Value(requestAttrsKey{}).(*requestAttrs); ok {
		a.add(args...)
	}
}
