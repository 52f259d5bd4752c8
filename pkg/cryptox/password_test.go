package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHasher_HashFormat(t *testing.T) {
	h := NewHasher("pepper")

	tests := []struct {
		name     string
		password string
	}{
		{"simple", "password123"},
		{"symbols", "P@ssw0rd!#$%^&*()"},
		{"long", strings.Repeat("a", 128)},
		{"unicode", "пароль🔒密码"},
		{"whitespace", "   spaces   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hash, err := h.Hash(tt.password)
			require.NoError(t, err)
			require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=19456,t=2,p=1$"))
			require.Len(t, strings.Split(hash, "$"), 6)
			require.NoError(t, h.Verify(tt.password, hash))
		})
	}
}

func TestHasher_UniqueSalts(t *testing.T) {
	h := NewHasher("")

	a, err := h.Hash("samepassword")
	require.NoError(t, err)
	b, err := h.Hash("samepassword")
	require.NoError(t, err)

	require.NotEqual(t, a, b)
	require.NoError(t, h.Verify("samepassword", a))
	require.NoError(t, h.Verify("samepassword", b))
}

func TestHasher_Mismatch(t *testing.T) {
	h := NewHasher("pepper")
	hash, err := h.Hash("correct-password")
	require.NoError(t, err)

	for _, wrong := range []string{"", "correct-passwor", "Correct-password", "correct-password "} {
		require.ErrorIs(t, h.Verify(wrong, hash), ErrMismatch, wrong)
	}
}

func TestHasher_PepperIsPartOfHash(t *testing.T) {
	hash, err := NewHasher("pepper-a").Hash("Secr3t!")
	require.NoError(t, err)

	require.ErrorIs(t, NewHasher("pepper-b").Verify("Secr3t!", hash), ErrMismatch)
	require.NoError(t, NewHasher("pepper-a").Verify("Secr3t!", hash))
}

func TestHasher_InvalidFormat(t *testing.T) {
	h := NewHasher("")

	tests := []string{
		"",
		"plaintext",
		"$bcrypt$v=19$m=1,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=1,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$garbage$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=1,t=1,p=1$!!!$aGFzaA",
		"$argon2id$v=19$m=1,t=1,p=1$c2FsdA$!!!",
	}
	for _, encoded := range tests {
		require.ErrorIs(t, h.Verify("x", encoded), ErrInvalidFormat, encoded)
	}
}

func TestGeneratePassword(t *testing.T) {
	a, err := GeneratePassword()
	require.NoError(t, err)
	b, err := GeneratePassword()
	require.NoError(t, err)

	require.Len(t, a, 16)
	require.NotEqual(t, a, b)
}
