package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	DatabaseDriver string // Optional: postgres or sqlite (default: sqlite)
	DatabaseURL    string // Required for postgres: connection URL
	DatabaseFile   string // Optional: path to SQLite database file (default: ./bureau.db)

	TokenSecret         string        // Required in prod: HMAC secret, at least 32 bytes
	TokenSecretPrevious string        // Optional: retired secret still accepted for verification
	TokenIssuer         string        // Optional: issuer claim (default: apply-bureau)
	RegistrationTTL     time.Duration // Optional: registration link lifetime (default: 7 days)
	AccessTTL           time.Duration // Optional: access token lifetime (default: 12h)
	Pepper              string        // Optional: extra secret mixed into password hashes
	MFAKey              string        // Optional: seals TOTP secrets at rest (default: TOKEN_SECRET)

	ResendAPIKey string   // Optional: without it emails are logged, not sent
	MailFrom     string   // Optional: sender address (default: Apply Bureau <hello@applybureau.com>)
	StaffInbox   []string // Optional: comma separated staff addresses for new-lead alerts
	AppBaseURL   string   // Optional: frontend origin used in emailed links (default: http://localhost:3000)

	KafkaBrokers []string // Optional: comma separated; enables event publishing
	KafkaTopic   string   // Optional: (default: consultation-events)

	RedisAddr     string // Optional: enables the shared rate limiter
	RedisPassword string // Optional

	SentryDSN string // Optional: enables error reporting

	NotifyWorkers   int // Optional: notification workers (default: 2)
	NotifyQueueSize int // Optional: notification queue length (default: 256)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		DatabaseDriver: strings.ToLower(getEnvOrDefault("DATABASE_DRIVER", "sqlite")),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		DatabaseFile:   getEnvOrDefault("DATABASE_FILE", "bureau.db"),

		TokenSecret:         os.Getenv("TOKEN_SECRET"),
		TokenSecretPrevious: os.Getenv("TOKEN_SECRET_PREVIOUS"),
		TokenIssuer:         getEnvOrDefault("TOKEN_ISSUER", "apply-bureau"),
		RegistrationTTL:     getEnvDurationOrDefault("REGISTRATION_TOKEN_TTL", 7*24*time.Hour),
		AccessTTL:           getEnvDurationOrDefault("ACCESS_TOKEN_TTL", 12*time.Hour),
		Pepper:              os.Getenv("PEPPER"),
		MFAKey:              os.Getenv("MFA_KEY"),

		ResendAPIKey: os.Getenv("RESEND_API_KEY"),
		MailFrom:     getEnvOrDefault("MAIL_FROM", "Apply Bureau <hello@applybureau.com>"),
		StaffInbox:   getEnvList("STAFF_INBOX"),
		AppBaseURL:   strings.TrimRight(getEnvOrDefault("APP_BASE_URL", "http://localhost:3000"), "/"),

		KafkaBrokers: getEnvList("KAFKA_BROKERS"),
		KafkaTopic:   getEnvOrDefault("KAFKA_TOPIC", "consultation-events"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		SentryDSN: os.Getenv("SENTRY_DSN"),

		NotifyWorkers:   getEnvIntOrDefault("NOTIFY_WORKERS", 2),
		NotifyQueueSize: getEnvIntOrDefault("NOTIFY_QUEUE_SIZE", 256),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}

// getEnvList splits a comma separated variable, dropping empty entries.
func getEnvList(key string) []string {
	var out []string
	for part := range strings.SplitSeq(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
