package http_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	bureauhttp "github.com/applybureau/bureau/internal/bureau/http"
	"github.com/applybureau/bureau/internal/bureau/metrics"
)

// newBareRouter registers every route without any services behind them.
func newBareRouter(t *testing.T) *bureauhttp.Router {
	t.Helper()
	r := bureauhttp.NewRouter(nil, nil, "test", nil, metrics.New(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NotPanics(t, r.ApplyRoutes, "route patterns must not conflict")
	return r
}

func TestRoutePatterns(t *testing.T) {
	r := newBareRouter(t)

	tests := []struct {
		method  string
		path    string
		pattern string
	}{
		{http.MethodPost, "/v1/consultations", "POST /v1/consultations"},
		{http.MethodGet, "/v1/consultations", "GET /v1/consultations"},
		{http.MethodGet, "/v1/consultations/stats", "GET /v1/consultations/stats"},
		{http.MethodGet, "/v1/consultations/6ba7b810-9dad-11d1-80b4-00c04fd430c8", "GET /v1/consultations/{id}"},
		{http.MethodPatch, "/v1/consultations/6ba7b810-9dad-11d1-80b4-00c04fd430c8", "PATCH /v1/consultations/{id}"},
		{http.MethodGet, "/v1/consultations/validate-token/abc.def.ghi", "GET /v1/consultations/validate-token/{token}"},
		{http.MethodGet, "/v1/consultations/validate-token/transitions", "GET /v1/consultations/validate-token/{token}"},
		{http.MethodPost, "/v1/consultations/register", "POST /v1/consultations/register"},
		{http.MethodPost, "/v1/contact", "POST /v1/contact"},
		{http.MethodGet, "/v1/contact", "GET /v1/contact"},
		{http.MethodPost, "/v1/auth/login", "POST /v1/auth/login"},
		{http.MethodPost, "/v1/auth/client/login", "POST /v1/auth/client/login"},
		{http.MethodPost, "/v1/staff/mfa/totp/enroll", "POST /v1/staff/mfa/totp/enroll"},
		{http.MethodPost, "/v1/staff/mfa/totp/verify", "POST /v1/staff/mfa/totp/verify"},
		{http.MethodGet, "/v1/me", "GET /v1/me"},
		{http.MethodGet, "/livez", "GET /livez"},
		{http.MethodGet, "/readyz", "GET /readyz"},
		{http.MethodGet, "/metrics", "GET /metrics"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			_, pattern := r.Mux.Handler(httptest.NewRequest(tt.method, tt.path, nil))
			require.Equal(t, tt.pattern, pattern)
		})
	}
}

func TestRemovedTransitionsRoute(t *testing.T) {
	r := newBareRouter(t)

	_, pattern := r.Mux.Handler(httptest.NewRequest(http.MethodGet, "/v1/consultations/6ba7b810-9dad-11d1-80b4-00c04fd430c8/transitions", nil))
	require.Empty(t, pattern)
}
