package slogx

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/applybureau/bureau/pkg/idx"
)

type middlewareConfig struct {
	redact func(path string) string
}

type MiddlewareOption func(*middlewareConfig)

// WithPathRedactor rewrites request paths before they are logged, for routes
// that carry credentials in the path.
func WithPathRedactor(redact func(path string) string) MiddlewareOption {
	return func(c *middlewareConfig) { c.redact = redact }
}

// HTTPMiddleware attaches a request logger to the context, echoes the
// request id in X-Request-ID and logs one line per request.
func HTTPMiddleware(base *slog.Logger, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := middlewareConfig{redact: func(p string) string { return p }}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}

			reqID := r.Header.Get("X-Request-ID")
			if reqID == "" || len(reqID) > 128 {
				reqID = idx.New().String()
			}
			rw.Header().Set("X-Request-ID", reqID)

			logger := base.With(
				"req_id", reqID,
				"method", r.Method,
				"path", cfg.redact(r.URL.Path),
			)

			ctx := WithContext(r.Context(), logger)
			ctx = context.WithValue(ctx, reqIDKey{}, reqID)
			next.ServeHTTP(rw, r.WithContext(ctx))

			logger.Info("http_request",
				"status", rw.status,
				"duration_ms", time.Since(start).Milliseconds(),
				"remote_addr", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		})
	}
}

type responseWriter struct {
	http.ResponseWriter

	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}
