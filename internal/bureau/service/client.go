package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/applybureau/bureau/internal/bureau/domain"
	"github.com/applybureau/bureau/internal/bureau/store"
	"github.com/applybureau/bureau/pkg/cryptox"
	"github.com/applybureau/bureau/pkg/jwtx"
	"github.com/applybureau/bureau/pkg/slogx"
)

// ClientProfile is what a client sees about their own account.
type ClientProfile struct {
	Client       domain.Client
	Consultation domain.Consultation
}

type ClientSession struct {
	Client  domain.Client
	Session Session
}

type ClientService struct {
	Store      store.Store
	Hasher     *cryptox.Hasher
	Signer     jwtx.Signer
	Issuer     string
	SessionTTL time.Duration
	Now        func() time.Time
}

func (s *ClientService) Profile(ctx context.Context, clientID string) (ClientProfile, error) {
	c, err := s.Store.Clients().GetClientByID(ctx, clientID)
	if errors.Is(err, store.ErrNotFound) {
		return ClientProfile{}, ErrClientNotFound
	}
	if err != nil {
		return ClientProfile{}, dependency("get client", err)
	}

	cons, err := s.Store.Consultations().GetConsultation(ctx, c.ConsultationID)
	if err != nil {
		return ClientProfile{}, dependency("get consultation", err)
	}
	return ClientProfile{Client: c, Consultation: cons}, nil
}

// Login exchanges the password chosen at registration for a client session.
func (s *ClientService) Login(ctx context.Context, email, password string) (ClientSession, error) {
	log := slogx.FromContext(ctx)

	email, ok := normalizeEmail(email)
	if !ok || password == "" {
		return ClientSession{}, ErrInvalidCredentials
	}

	c, err := s.Store.Clients().GetClientByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		log.Info("client login failed: unknown email")
		return ClientSession{}, ErrInvalidCredentials
	}
	if err != nil {
		return ClientSession{}, dependency("get client", err)
	}

	if err := s.Hasher.Verify(password, c.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrMismatch) {
			log.Error("stored password hash unreadable", slog.String("client_id", c.ID), slog.Any("error", err))
		}
		log.Info("client login failed: bad password", slog.String("client_id", c.ID))
		return ClientSession{}, ErrInvalidCredentials
	}

	session, err := issueSession(s.Signer, s.Issuer, s.SessionTTL, c.ID, c.Email, domain.RoleClient, []string{jwtx.AMRPassword}, clock(s.Now))
	if err != nil {
		log.Error("failed to sign client session", slog.String("client_id", c.ID), slog.Any("error", err))
		return ClientSession{}, err
	}
	return ClientSession{Client: c, Session: session}, nil
}
