package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
)

// ErrUnseal reports a value that was not produced by this Sealer's key or
// has been modified.
var ErrUnseal = errors.New("cryptox: unable to unseal value")

// Sealer encrypts small secrets for storage using AES-256-GCM.
// Sealed values are base64url: [12-byte nonce][ciphertext][16-byte tag].
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer derives a 32-byte key from secret with SHA-256.
func NewSealer(secret string) (*Sealer, error) {
	if secret == "" {
		return nil, errors.New("cryptox: sealer secret is empty")
	}
	key := sha256.Sum256([]byte(secret))

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return &Sealer{aead: gcm}, nil
}

// Seal encrypts plaintext with a fresh random nonce, so sealing the same
// value twice gives different output.
func (s *Sealer) Seal(plaintext string) (string, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	// Seal appends ciphertext and tag to the nonce
	out := s.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.RawURLEncoding.EncodeToString(out), nil
}

func (s *Sealer) Open(sealed string) (string, error) {
	data, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil {
		return "", ErrUnseal
	}

	n := s.aead.NonceSize()
	if len(data) < n+s.aead.Overhead() {
		return "", ErrUnseal
	}

	plaintext, err := s.aead.Open(nil, data[:n], data[n:], nil)
	if err != nil {
		return "", ErrUnseal
	}
	return string(plaintext), nil
}
