package sentryx_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/require"

	"github.com/applybureau/bureau/pkg/sentryx"
)

func TestScrubHeaders(t *testing.T) {
	got := sentryx.ScrubHeaders(map[string]string{
		"Authorization": "Bearer secret",
		"Cookie":        "sid=1",
		"Content-Type":  "application/json",
	})
	require.Equal(t, "[FILTERED]", got["Authorization"])
	require.Equal(t, "[FILTERED]", got["Cookie"])
	require.Equal(t, "application/json", got["Content-Type"])
}

func TestScrubEvent(t *testing.T) {
	event := &sentry.Event{Request: &sentry.Request{
		URL:         "https://api.example.com/v1/consultations/validate-token/abc",
		QueryString: "token=abc",
		Cookies:     "sid=1",
		Headers:     map[string]string{"Authorization": "Bearer secret"},
	}}

	got := sentryx.ScrubEvent(event, func(string) string { return "redacted" })
	require.Equal(t, "redacted", got.Request.URL)
	require.Empty(t, got.Request.QueryString)
	require.Empty(t, got.Request.Cookies)
	require.Equal(t, "[FILTERED]", got.Request.Headers["Authorization"])

	require.NotPanics(t, func() { sentryx.ScrubEvent(&sentry.Event{}, nil) })
}

func TestInitWithoutDSN(t *testing.T) {
	flush, err := sentryx.Init(sentryx.Config{Environment: "test"})
	require.NoError(t, err)
	sentryx.CaptureError(context.Background(), errors.New("boom"), map[string]any{"k": "v"})
	flush(10 * time.Millisecond)
}

func TestMiddlewareRecovers(t *testing.T) {
	h := sentryx.Middleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"error":"server_error"}`, rec.Body.String())
}
