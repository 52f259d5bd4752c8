// Package service holds the consultation lifecycle: intake, the status
// transition engine, registration token issuance and redemption, and the
// staff and client accounts around them.
package service

import (
	"context"
	"time"

	"github.com/applybureau/bureau/internal/bureau/domain"
	"github.com/applybureau/bureau/internal/bureau/events"
	"github.com/applybureau/bureau/internal/bureau/mail"
	"github.com/applybureau/bureau/pkg/jwtx"
)

// Notifier runs best-effort side effects after a write has committed. Calls
// never block on delivery and never report failure.
type Notifier interface {
	SendEmail(ctx context.Context, to []string, template string, vars mail.Vars)
	Publish(ctx context.Context, evt events.Event)
}

// Actor is the authenticated staff member performing an operation.
type Actor struct {
	ID    string
	Email string
	Role  domain.Role
}

// ActorFromClaims builds an Actor from access token claims.
func ActorFromClaims(c jwtx.Claims) Actor {
	return Actor{ID: c.Subject, Email: c.Email, Role: domain.Role(c.Role)}
}

func (a Actor) String() string {
	if a.Email != "" {
		return a.Email
	}
	return a.ID
}

// Session is a signed access token.
type Session struct {
	AccessToken string
	ExpiresAt   time.Time
	TTL         time.Duration
}

func clock(now func() time.Time) time.Time {
	if now == nil {
		return time.Now().UTC()
	}
	return now().UTC()
}

func issueSession(signer jwtx.Signer, issuer string, ttl time.Duration, subject, email string, role domain.Role, amr []string, now time.Time) (Session, error) {
	if ttl <= 0 {
		ttl = jwtx.DefaultAccessTokenTTL
	}
	claims := jwtx.NewAccessClaims(subject, email, string(role), role.Scopes(), amr, issuer, ttl, now)
	token, err := signer.Sign(claims)
	if err != nil {
		return Session{}, dependency("sign access token", err)
	}
	return Session{AccessToken: token, ExpiresAt: claims.ExpiresAtTime(), TTL: ttl}, nil
}
