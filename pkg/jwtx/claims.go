package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Audiences separate the two kinds of tokens the service mints so a
// registration token can never be presented as a session and vice versa.
const (
	AudienceAPI          = "api"
	AudienceRegistration = "registration"
)

// Authentication method references for the "amr" claim.
const (
	AMRPassword = "pwd"
	AMROTP      = "otp"
)

const (
	DefaultAccessTokenTTL       = 12 * time.Hour
	DefaultRegistrationTokenTTL = 7 * 24 * time.Hour
)

// Claims are shared by access and registration tokens.
type Claims struct {
	jwt.RegisteredClaims

	// Email of the subject. Registration tokens bind it to the consultation.
	Email string `json:"email,omitempty"`

	// Role is "admin", "staff" or "client".
	Role string `json:"role,omitempty"`

	// Scopes granted to an access token, e.g. "consultations:write".
	Scopes []string `json:"scopes,omitempty"`

	// Authentication methods used: "pwd", "otp", "mfa".
	AMR []string `json:"amr,omitempty"`
}

// NewAccessClaims builds session claims for a staff member or client.
func NewAccessClaims(subject, email, role string, scopes, amr []string, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			Audience:  jwt.ClaimStrings{AudienceAPI},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Email:  email,
		Role:   role,
		Scopes: scopes,
		AMR:    amr,
	}
}

// NewRegistrationClaims binds a consultation id and the submitter's email
// to an expiry.
func NewRegistrationClaims(consultationID, email, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   consultationID,
			Audience:  jwt.ClaimStrings{AudienceRegistration},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Email: email,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateAudience passes if any expected audience is present.
func (c *Claims) ValidateAudience(expected []string) error {
	if len(expected) == 0 {
		return nil
	}
	for _, want := range expected {
		if slices.Contains(c.Audience, want) {
			return nil
		}
	}
	return ErrAudience
}

// ValidateExpiry checks exp and nbf against now with a leeway for clock skew.
func (c *Claims) ValidateExpiry(now time.Time, leeway time.Duration) error {
	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}
	return nil
}

// HasScope reports whether the claims grant scope.
func (c *Claims) HasScope(scope string) bool {
	return slices.Contains(c.Scopes, scope)
}

// ExpiresAtTime returns the expiry or the zero time.
func (c *Claims) ExpiresAtTime() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}
