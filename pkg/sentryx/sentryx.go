// Package sentryx wires error reporting to Sentry. With an empty DSN every
// call is a no-op.
package sentryx

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/applybureau/bureau/pkg/slogx"
)

type Config struct {
	DSN              string
	Environment      string
	Release          string
	TracesSampleRate float64

	// ScrubURL rewrites request URLs on reported events. Optional.
	ScrubURL func(url string) string
}

// Init configures the global Sentry client and returns a flush function to
// call on shutdown.
func Init(cfg Config) (func(time.Duration), error) {
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      cfg.Environment,
		Release:          cfg.Release,
		TracesSampleRate: cfg.TracesSampleRate,
		BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
			return ScrubEvent(event, cfg.ScrubURL)
		},
	})
	if err != nil {
		return func(time.Duration) {}, fmt.Errorf("sentry init: %w", err)
	}
	return func(d time.Duration) { sentry.Flush(d) }, nil
}

// CaptureError reports err with the request id from ctx and extras attached.
// ScrubEvent strips credentials and query strings from the event's request
// and rewrites its URL with scrubURL when given.
func ScrubEvent(event *sentry.Event, scrubURL func(string) string) *sentry.Event {
	if event == nil || event.Request == nil {
		return event
	}
	event.Request.Headers = ScrubHeaders(event.Request.Headers)
	event.Request.Cookies = ""
	event.Request.QueryString = ""
	if scrubURL != nil {
		event.Request.URL = scrubURL(event.Request.URL)
	}
	return event
}

func CaptureError(ctx context.Context, err error, extras map[string]any) {
	hub := sentry.CurrentHub().Clone()
	hub.WithScope(func(scope *sentry.Scope) {
		if id := slogx.RequestID(ctx); id != "" {
			scope.SetTag("req_id", id)
		}
		for k, v := range extras {
			scope.SetExtra(k, v)
		}
		hub.CaptureException(err)
	})
}

// ScrubHeaders masks credentials in a header map.
func ScrubHeaders(h map[string]string) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		switch strings.ToLower(k) {
		case "authorization", "proxy-authorization", "cookie":
			out[k] = "[FILTERED]"
		default:
			out[k] = v
		}
	}
	return out
}

// Middleware recovers panics, reports them and answers 500.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				err := fmt.Errorf("panic: %v", rec)
				slogx.FromContext(r.Context()).Error("panic recovered", "err", err, "pattern", r.Pattern)
				CaptureError(r.Context(), err, map[string]any{"method": r.Method, "pattern": r.Pattern})
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"error":"server_error"}` + "\n"))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
