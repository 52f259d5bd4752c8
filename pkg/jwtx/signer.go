package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Signer is anything that can sign JWTs.
type Signer interface {
	Sign(Claims) (string, error)
	Validate() error
}

// HS256Signer signs with the current key of a KeySet.
type HS256Signer struct {
	keys *KeySet
}

func NewSignerHS256(keys *KeySet) *HS256Signer {
	return &HS256Signer{keys: keys}
}

func (s *HS256Signer) Sign(claims Claims) (string, error) {
	k := s.keys.Current()

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	t.Header["kid"] = k.ID
	return t.SignedString(k.Secret)
}

// Validate reports whether the signer has a usable key.
func (s *HS256Signer) Validate() error {
	if s.keys == nil || len(s.keys.Current().Secret) < MinSecretLength {
		return errors.New("jwtx: no signing key")
	}
	return nil
}
