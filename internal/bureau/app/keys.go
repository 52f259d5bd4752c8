package app

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/applybureau/bureau/pkg/cryptox"
	"github.com/applybureau/bureau/pkg/jwtx"
)

var ErrMissingSecret = errors.New("TOKEN_SECRET is required outside dev")

// InitKeys builds the HMAC key set from TOKEN_SECRET and, during a rotation,
// TOKEN_SECRET_PREVIOUS.
//
// In dev an unset secret falls back to a random key. Every token, including
// emailed registration links, becomes invalid when the process restarts.
func InitKeys(cfg Config, logger *slog.Logger) (*jwtx.KeySet, error) {
	if cfg.TokenSecret == "" {
		if cfg.Env != "dev" {
			return nil, ErrMissingSecret
		}
		key, err := jwtx.NewEphemeralKey()
		if err != nil {
			return nil, err
		}
		logger.Warn("TOKEN_SECRET not set, using an ephemeral signing key")
		return jwtx.NewKeySet(key)
	}

	current, err := jwtx.KeyFromSecret(cfg.TokenSecret)
	if err != nil {
		return nil, fmt.Errorf("TOKEN_SECRET: %w", err)
	}

	var retired []jwtx.Key
	if cfg.TokenSecretPrevious != "" {
		prev, err := jwtx.KeyFromSecret(cfg.TokenSecretPrevious)
		if err != nil {
			return nil, fmt.Errorf("TOKEN_SECRET_PREVIOUS: %w", err)
		}
		retired = append(retired, prev)
	}

	keys, err := jwtx.NewKeySet(current, retired...)
	if err != nil {
		return nil, err
	}

	logger.Info("signing keys loaded", "kid", current.ID, "retired", len(retired))
	return keys, nil
}

// newSealer keys TOTP secret encryption from MFA_KEY, falling back to
// TOKEN_SECRET. Changing the key locks out staff with MFA enabled.
func newSealer(cfg Config) (*cryptox.Sealer, error) {
	secret := cfg.MFAKey
	if secret == "" {
		secret = cfg.TokenSecret
	}
	if secret == "" {
		if cfg.Env != "dev" {
			return nil, ErrMissingSecret
		}
		var err error
		if secret, err = cryptox.GenerateToken(cryptox.TokenSize256); err != nil {
			return nil, err
		}
	}
	return cryptox.NewSealer(secret)
}
