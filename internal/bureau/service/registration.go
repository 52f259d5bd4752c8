package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/applybureau/bureau/internal/bureau/domain"
	"github.com/applybureau/bureau/internal/bureau/events"
	"github.com/applybureau/bureau/internal/bureau/metrics"
	"github.com/applybureau/bureau/internal/bureau/store"
	"github.com/applybureau/bureau/pkg/cryptox"
	"github.com/applybureau/bureau/pkg/idx"
	"github.com/applybureau/bureau/pkg/jwtx"
	"github.com/applybureau/bureau/pkg/slogx"
)

// RegistrationService mints the single-use registration token of a paid
// consultation and turns it into a client account.
type RegistrationService struct {
	Store    store.Store
	Signer   jwtx.Signer
	Verifier jwtx.Verifier // audience "registration"
	Hasher   *cryptox.Hasher
	Notifier Notifier
	Metrics  *metrics.Metrics

	Issuer     string
	TTL        time.Duration
	SessionTTL time.Duration

	Now func() time.Time
}

// TokenStatus describes a redeemable token.
type TokenStatus struct {
	ConsultationID string
	Email          string
	FullName       string
	ExpiresAt      time.Time
}

// RedeemResult carries the new client. Session is empty when signing failed
// after the account was committed; the client then uses ClientService.Login.
type RedeemResult struct {
	Client  domain.Client
	Session Session
}

// Issue signs a registration token for c. Only the fingerprint and expiry
// are kept; the raw token goes to the prospect and the caller.
func (s *RegistrationService) Issue(c domain.Consultation, now time.Time) (string, domain.Registration, error) {
	ttl := s.TTL
	if ttl <= 0 {
		ttl = jwtx.DefaultRegistrationTokenTTL
	}

	claims := jwtx.NewRegistrationClaims(c.ID, c.Email, s.Issuer, ttl, now)
	token, err := s.Signer.Sign(claims)
	if err != nil {
		return "", domain.Registration{}, dependency("sign registration token", err)
	}

	expires := claims.ExpiresAtTime()
	return token, domain.Registration{
		TokenHash: cryptox.FingerprintToken(token),
		ExpiresAt: &expires,
	}, nil
}

// Validate checks a token without consuming it.
func (s *RegistrationService) Validate(ctx context.Context, token string) (TokenStatus, error) {
	c, claims, err := s.check(ctx, token)
	if err != nil {
		return TokenStatus{}, err
	}
	return TokenStatus{
		ConsultationID: c.ID,
		Email:          c.Email,
		FullName:       c.FullName,
		ExpiresAt:      claims.ExpiresAtTime(),
	}, nil
}

// Redeem consumes the token and creates the client account. The used flag
// is flipped by a conditional update in the same transaction as the account
// insert, so of any number of concurrent redemptions exactly one succeeds
// and the others get ErrTokenAlreadyUsed.
func (s *RegistrationService) Redeem(ctx context.Context, token, password string) (RedeemResult, error) {
	log := slogx.FromContext(ctx)

	var v ValidationError
	validatePassword(&v, password)
	if err := v.err(); err != nil {
		return RedeemResult{}, err
	}

	c, _, err := s.check(ctx, token)
	if err != nil {
		s.observe(err)
		return RedeemResult{}, err
	}

	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return RedeemResult{}, dependency("hash password", err)
	}

	now := clock(s.Now)
	client := domain.Client{
		ID:             idx.New().String(),
		ConsultationID: c.ID,
		Email:          c.Email,
		FullName:       c.FullName,
		PasswordHash:   hash,
		CreatedAt:      now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		err := tx.Consultations().MarkRegistrationUsed(ctx, c.ID, c.Registration.TokenHash, now)
		if errors.Is(err, store.ErrConflict) {
			return ErrTokenAlreadyUsed
		}
		if err != nil {
			return dependency("mark registration used", err)
		}

		err = tx.Clients().CreateClient(ctx, client)
		if errors.Is(err, store.ErrAlreadyExists) {
			return ErrAccountExists
		}
		if err != nil {
			return dependency("create client", err)
		}
		return nil
	})
	if err != nil {
		s.observe(err)
		if errors.Is(err, ErrDependency) {
			log.Error("registration redemption failed",
				slog.String("consultation_id", c.ID),
				slog.Any("error", err),
			)
		} else {
			log.Info("registration redemption refused",
				slog.String("consultation_id", c.ID),
				slog.Any("error", err),
			)
		}
		return RedeemResult{}, err
	}

	session, err := issueSession(s.Signer, s.Issuer, s.SessionTTL, client.ID, client.Email, domain.RoleClient, []string{jwtx.AMRPassword}, now)
	if err != nil {
		log.Error("failed to sign client session", slog.String("client_id", client.ID), slog.Any("error", err))
	}

	log.Info("registration token redeemed",
		slog.String("consultation_id", c.ID),
		slog.String("client_id", client.ID),
	)
	s.observe(nil)
	if s.Notifier != nil {
		s.Notifier.Publish(ctx, events.ConsultationRegistered(c.ID, client.ID, now))
	}

	return RedeemResult{Client: client, Session: session}, nil
}

// check verifies the token and the consultation it names. Every failure
// other than expiry and reuse is reported as ErrTokenInvalid.
func (s *RegistrationService) check(ctx context.Context, token string) (domain.Consultation, jwtx.Claims, error) {
	log := slogx.FromContext(ctx)

	if token == "" {
		return domain.Consultation{}, jwtx.Claims{}, ErrTokenInvalid
	}

	claims, err := s.Verifier.Verify(token)
	if err != nil {
		log.Info("registration token rejected", slog.Any("error", err))
		if errors.Is(err, jwtx.ErrExpired) {
			return domain.Consultation{}, claims, ErrTokenExpired
		}
		return domain.Consultation{}, claims, ErrTokenInvalid
	}

	c, err := s.Store.Consultations().GetConsultation(ctx, claims.Subject)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Consultation{}, claims, ErrTokenInvalid
	}
	if err != nil {
		return domain.Consultation{}, claims, dependency("get consultation", err)
	}

	switch {
	case !c.Registration.Issued(),
		!cryptox.FingerprintMatches(token, c.Registration.TokenHash),
		claims.Email != c.Email,
		!c.Status.Redeemable():
		log.Warn("registration token does not match consultation",
			slog.String("consultation_id", c.ID),
			slog.String("status", string(c.Status)),
		)
		return domain.Consultation{}, claims, ErrTokenInvalid
	case c.Registration.Used:
		return domain.Consultation{}, claims, ErrTokenAlreadyUsed
	case c.Registration.ExpiresAt != nil && clock(s.Now).After(*c.Registration.ExpiresAt):
		return domain.Consultation{}, claims, ErrTokenExpired
	}

	return c, claims, nil
}

func (s *RegistrationService) observe(err error) {
	if s.Metrics == nil {
		return
	}
	switch {
	case err == nil:
		s.Metrics.ObserveRedemption("success")
	case errors.Is(err, ErrTokenAlreadyUsed):
		s.Metrics.ObserveRedemption("token_already_used")
	case errors.Is(err, ErrTokenExpired):
		s.Metrics.ObserveRedemption("token_expired")
	case errors.Is(err, ErrTokenInvalid):
		s.Metrics.ObserveRedemption("token_invalid")
	case errors.Is(err, ErrAccountExists):
		s.Metrics.ObserveRedemption("account_exists")
	default:
		s.Metrics.ObserveRedemption("error")
	}
}
