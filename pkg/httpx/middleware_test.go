package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/applybureau/bureau/pkg/httpx"
	"github.com/applybureau/bureau/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(okHandler(), mark("a"), mark("b"), mark("c"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"a", "b", "c"}, order)
}

func TestAuthnAndScopes(t *testing.T) {
	key, err := jwtx.KeyFromSecret(strings.Repeat("k", 40))
	require.NoError(t, err)
	ks, err := jwtx.NewKeySet(key)
	require.NoError(t, err)
	signer := jwtx.NewSignerHS256(ks)
	verifier := jwtx.NewVerifierHS256(ks, "bureau", []string{jwtx.AudienceAPI})

	token := func(scopes ...string) string {
		tok, err := signer.Sign(jwtx.NewAccessClaims("staff-1", "s@example.com", "staff",
			scopes, []string{"pwd"}, "bureau", time.Hour, time.Now()))
		require.NoError(t, err)
		return tok
	}

	var seenSubject string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenSubject = httpx.SubjectFromContext(r.Context())
		c, ok := httpx.ClaimsFromContext(r.Context())
		require.True(t, ok)
		require.Equal(t, "staff", c.Role)
		w.WriteHeader(http.StatusNoContent)
	})
	h := httpx.Chain(inner, httpx.AuthnMiddleware(verifier), httpx.RequireAnyScope("consultations:write"))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage", "Bearer nope", http.StatusUnauthorized},
		{"wrong scope", "Bearer " + token("consultations:read"), http.StatusForbidden},
		{"ok", "Bearer " + token("consultations:read", "consultations:write"), http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			require.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusUnauthorized {
				require.Contains(t, rec.Header().Get("WWW-Authenticate"), "invalid_token")
			}
		})
	}
	require.Equal(t, "staff-1", seenSubject)
}

func TestRequireAllScopes(t *testing.T) {
	h := httpx.RequireAllScopes("a", "b")(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Contains(t, rec.Header().Get("WWW-Authenticate"), `scope="a b"`)
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Ada"}`))
	require.NoError(t, httpx.DecodeJSON(httptest.NewRecorder(), req, &dst))
	require.Equal(t, "Ada", dst.Name)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Ada"}{}`))
	require.Error(t, httpx.DecodeJSON(httptest.NewRecorder(), req, &dst))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`not json`))
	require.Error(t, httpx.DecodeJSON(httptest.NewRecorder(), req, &dst))
}
