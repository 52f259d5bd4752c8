package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates a JWT and returns its claims.
type Verifier interface {
	Verify(token string) (Claims, error)
}

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrUnknownKID  = errors.New("jwtx: unknown kid")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")
	ErrIssuer      = errors.New("jwtx: issuer mismatch")
	ErrAudience    = errors.New("jwtx: audience mismatch")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
)

// HS256Verifier checks signature, issuer, audience and expiry.
type HS256Verifier struct {
	keys   *KeySet
	issuer string
	aud    []string
	leeway time.Duration
	now    func() time.Time
}

// VerifierOption customises an HS256Verifier.
type VerifierOption func(*HS256Verifier)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) VerifierOption {
	return func(v *HS256Verifier) { v.now = now }
}

func WithLeeway(d time.Duration) VerifierOption {
	return func(v *HS256Verifier) { v.leeway = d }
}

func NewVerifierHS256(keys *KeySet, issuer string, aud []string, opts ...VerifierOption) *HS256Verifier {
	v := &HS256Verifier{keys: keys, issuer: issuer, aud: aud, now: time.Now}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify returns ErrExpired only for tokens whose signature is valid.
// Every other failure is one of ErrMalformed, ErrUnknownKID, ErrInvalidSig,
// ErrIssuer, ErrAudience or ErrNotYetValid.
func (v *HS256Verifier) Verify(tokenStr string) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	var claims Claims
	_, err := parser.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		k, err := v.keys.Get(kid)
		if err != nil {
			return nil, ErrUnknownKID
		}
		return k.Secret, nil
	})
	switch {
	case err == nil:
	case errors.Is(err, ErrUnknownKID):
		return Claims{}, ErrUnknownKID
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return Claims{}, ErrInvalidSig
	default:
		return Claims{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if err := claims.ValidateIssuer(v.issuer); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateAudience(v.aud); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateExpiry(v.now().UTC(), v.leeway); err != nil {
		return Claims{}, err
	}
	return claims, nil
}
