package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/applybureau/bureau/pkg/slogx"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"DATABASE_DRIVER", "DATABASE_FILE", "TOKEN_ISSUER", "REGISTRATION_TOKEN_TTL", "STAFF_INBOX", "KAFKA_BROKERS", "APP_BASE_URL", "PORT"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	require.Equal(t, "sqlite", cfg.DatabaseDriver)
	require.Equal(t, "bureau.db", cfg.DatabaseFile)
	require.Equal(t, "apply-bureau", cfg.TokenIssuer)
	require.Equal(t, 7*24*time.Hour, cfg.RegistrationTTL)
	require.Equal(t, "http://localhost:3000", cfg.AppBaseURL)
	require.Equal(t, 8080, cfg.Port)
	require.Empty(t, cfg.StaffInbox)
	require.Empty(t, cfg.KafkaBrokers)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "Postgres")
	t.Setenv("REGISTRATION_TOKEN_TTL", "90")
	t.Setenv("ACCESS_TOKEN_TTL", "1h30m")
	t.Setenv("STAFF_INBOX", "team@applybureau.com, ,ops@applybureau.com")
	t.Setenv("APP_BASE_URL", "https://applybureau.com/")
	t.Setenv("PORT", "not-a-port")

	cfg := LoadConfig()
	require.Equal(t, "postgres", cfg.DatabaseDriver)
	require.Equal(t, 90*time.Minute, cfg.RegistrationTTL)
	require.Equal(t, 90*time.Minute, cfg.AccessTTL)
	require.Equal(t, []string{"team@applybureau.com", "ops@applybureau.com"}, cfg.StaffInbox)
	require.Equal(t, "https://applybureau.com", cfg.AppBaseURL)
	require.Equal(t, 8080, cfg.Port)
}

func TestInitKeys(t *testing.T) {
	logger := slogx.Discard()

	_, err := InitKeys(Config{Env: "prod"}, logger)
	require.ErrorIs(t, err, ErrMissingSecret)

	keys, err := InitKeys(Config{Env: "dev"}, logger)
	require.NoError(t, err)
	require.NotEmpty(t, keys.Current().ID)

	current := "0123456789abcdef0123456789abcdef"
	previous := "fedcba9876543210fedcba9876543210"
	keys, err = InitKeys(Config{Env: "prod", TokenSecret: current, TokenSecretPrevious: previous}, logger)
	require.NoError(t, err)
	require.Equal(t, current, string(keys.Current().Secret))

	old, err := InitKeys(Config{Env: "prod", TokenSecret: previous}, logger)
	require.NoError(t, err)
	got, err := keys.Get(old.Current().ID)
	require.NoError(t, err)
	require.Equal(t, previous, string(got.Secret))

	_, err = InitKeys(Config{Env: "prod", TokenSecret: "short"}, logger)
	require.Error(t, err)
}
