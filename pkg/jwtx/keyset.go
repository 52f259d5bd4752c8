package jwtx

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"
)

// MinSecretLength is the minimum HMAC secret size in bytes.
const MinSecretLength = 32

var (
	ErrNoKey       = errors.New("jwtx: key not found")
	ErrShortSecret = fmt.Errorf("jwtx: secret must be at least %d bytes", MinSecretLength)
)

// Key is an HMAC secret identified by a kid.
type Key struct {
	ID     string
	Secret []byte
}

// KeyFromSecret derives a stable kid from the secret so rotating the
// configured secret also rotates the kid.
func KeyFromSecret(secret string) (Key, error) {
	if len(secret) < MinSecretLength {
		return Key{}, ErrShortSecret
	}
	sum := sha256.Sum256([]byte(secret))
	return Key{
		ID:     base64.RawURLEncoding.EncodeToString(sum[:6]),
		Secret: []byte(secret),
	}, nil
}

// NewEphemeralKey returns a random key. Tokens signed with it do not survive
// a restart.
func NewEphemeralKey() (Key, error) {
	buf := make([]byte, 48)
	if _, err := rand.Read(buf); err != nil {
		return Key{}, fmt.Errorf("jwtx: generate secret: %w", err)
	}
	return KeyFromSecret(base64.RawURLEncoding.EncodeToString(buf))
}

// KeySet holds the current signing key and any retired keys still accepted
// for verification. It is safe for concurrent use.
type KeySet struct {
	mu      sync.RWMutex
	current Key
	keys    map[string]Key
}

func NewKeySet(current Key, retired ...Key) (*KeySet, error) {
	ks := &KeySet{keys: make(map[string]Key)}
	if err := ks.Rotate(current); err != nil {
		return nil, err
	}
	for _, k := range retired {
		if len(k.Secret) < MinSecretLength {
			return nil, ErrShortSecret
		}
		ks.keys[k.ID] = k
	}
	return ks, nil
}

// Rotate makes k the signing key. The previous key remains valid for
// verification.
func (ks *KeySet) Rotate(k Key) error {
	if len(k.Secret) < MinSecretLength {
		return ErrShortSecret
	}
	if k.ID == "" {
		return errors.New("jwtx: key id required")
	}

	ks.mu.Lock()
	defer ks.mu.Unlock()
	ks.current = k
	ks.keys[k.ID] = k
	return nil
}

func (ks *KeySet) Current() Key {
	ks.mu.RLock()
	defer ks.mu.RUnlock()
	return ks.current
}

func (ks *KeySet) Get(kid string) (Key, error) {
	ks.mu.RLock()
	defer ks.mu.RUnlock()

	k, ok := ks.keys[kid]
	if !ok {
		return Key{}, ErrNoKey
	}
	return k, nil
}
