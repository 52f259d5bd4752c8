//go:build e2e

package bureau_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/applybureau/bureau/pkg/bureausdk"
)

// TestRateLimitSharedAcrossReplicas runs two instances against one Redis. The
// strict login limit (5 req/min) is counted across both.
func TestRateLimitSharedAcrossReplicas(t *testing.T) {
	baseURL, cfg := setupBureau(t)
	replica := startApp(t, cfg)

	clients := []*bureausdk.Client{bureausdk.NewClient(baseURL), bureausdk.NewClient(replica)}
	wrong := bureausdk.LoginRequest{Email: staffEmail, Password: "wrong-password"}

	for i := range 5 {
		_, err := clients[i%2].Login(t.Context(), wrong)
		assertCode(t, err, http.StatusUnauthorized, bureausdk.ErrorCodeInvalidCredentials)
	}

	_, err := clients[1].Login(t.Context(), wrong)
	assertCode(t, err, http.StatusTooManyRequests, bureausdk.ErrorCodeRateLimited)

	// The limit applies to correct credentials too.
	_, err = clients[0].Login(t.Context(), bureausdk.LoginRequest{Email: staffEmail, Password: staffPassword})
	require.True(t, bureausdk.IsCode(err, bureausdk.ErrorCodeRateLimited))
}
