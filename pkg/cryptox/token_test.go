package cryptox

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantLen int
	}{
		{"128 bit", TokenSize128, 22},
		{"256 bit", TokenSize256, 43},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, err := GenerateToken(tt.size)
			require.NoError(t, err)
			require.Len(t, tok, tt.wantLen)

			raw, err := base64.RawURLEncoding.DecodeString(tok)
			require.NoError(t, err)
			require.Len(t, raw, tt.size)
		})
	}

	_, err := GenerateToken(0)
	require.Error(t, err)
}

func TestFingerprintToken(t *testing.T) {
	tok, err := GenerateToken(TokenSize256)
	require.NoError(t, err)

	fp := FingerprintToken(tok)
	require.Len(t, fp, 43)
	require.Equal(t, fp, FingerprintToken(tok))
	require.NotEqual(t, fp, FingerprintToken(tok+"x"))

	require.True(t, FingerprintMatches(tok, fp))
	require.False(t, FingerprintMatches(tok+"x", fp))
	require.False(t, FingerprintMatches(tok, ""))
}
