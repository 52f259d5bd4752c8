package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/applybureau/bureau/internal/bureau/events"
	httpapi "github.com/applybureau/bureau/internal/bureau/http"
	"github.com/applybureau/bureau/internal/bureau/mail"
	"github.com/applybureau/bureau/internal/bureau/metrics"
	"github.com/applybureau/bureau/internal/bureau/notify"
	"github.com/applybureau/bureau/internal/bureau/service"
	"github.com/applybureau/bureau/internal/bureau/store"
	"github.com/applybureau/bureau/pkg/cryptox"
	"github.com/applybureau/bureau/pkg/httpx"
	"github.com/applybureau/bureau/pkg/jwtx"
	"github.com/applybureau/bureau/pkg/sentryx"
	"github.com/applybureau/bureau/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags.
var BuildVersion = "v0.1.0"

// clockSkew is tolerated on token expiry across replicas.
const clockSkew = 30 * time.Second

// Application encapsulates the bureau service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db          store.Store
	keys        *jwtx.KeySet
	metrics     *metrics.Metrics
	dispatcher  *notify.Dispatcher
	publisher   events.Publisher
	redis       *redis.Client
	sentryFlush func(time.Duration)

	// Services
	intakeService       *service.IntakeService
	consultationService *service.ConsultationService
	transitionService   *service.TransitionService
	registrationService *service.RegistrationService
	staffService        *service.StaffService
	contactService      *service.ContactService
	clientService       *service.ClientService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// NewLogger builds the process logger from cfg.
func NewLogger(cfg Config) *slog.Logger {
	return slogx.New(slogx.Config{
		Service: "bureau",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg:         cfg,
		logger:      NewLogger(cfg),
		sentryFlush: func(time.Duration) {},
	}

	if cfg.SentryDSN != "" {
		flush, err := sentryx.Init(sentryx.Config{
			DSN:              cfg.SentryDSN,
			Environment:      cfg.Env,
			Release:          BuildVersion,
			TracesSampleRate: 0,
			ScrubURL:         httpapi.RedactPath,
		})
		if err != nil {
			return nil, err
		}
		app.sentryFlush = flush
		app.logger.Info("sentry error reporting enabled")
	}

	keys, err := InitKeys(cfg, app.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize signing keys: %w", err)
	}
	app.keys = keys

	db, err := OpenStore(context.Background(), cfg, app.logger)
	if err != nil {
		return nil, err
	}
	app.db = db

	if err := app.initNotifications(); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := app.initServices(); err != nil {
		_ = db.Close()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.Start()

	app.logger.Info("bureau service starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			_ = app.Shutdown()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		// Perform graceful shutdown
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Start launches the background notification workers. Run calls it.
func (app *Application) Start() {
	app.dispatcher.Start()
}

// Handler returns the fully wired HTTP handler with global middleware.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Shutdown stops accepting requests, drains queued notifications and closes
// external connections.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down bureau service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	// Handlers are done, so nothing enqueues after this.
	if err := app.dispatcher.Stop(ctx); err != nil {
		app.logger.Error("notification queue not drained", "error", err)
	}
	if err := app.publisher.Close(); err != nil {
		app.logger.Error("error closing event publisher", "error", err)
	}
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis client", "error", err)
		}
	}

	app.sentryFlush(2 * time.Second)

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("bureau service stopped")
	return nil
}

// initNotifications wires the mail catalogue, delivery provider and event
// publisher behind the asynchronous dispatcher.
func (app *Application) initNotifications() error {
	catalog, err := mail.LoadCatalog()
	if err != nil {
		return fmt.Errorf("failed to load email templates: %w", err)
	}

	var mailer mail.Mailer = mail.LogMailer{Logger: app.logger}
	if app.cfg.ResendAPIKey != "" {
		mailer = mail.NewResendMailer(app.cfg.ResendAPIKey, app.cfg.MailFrom)
		app.logger.Info("email delivery via resend", "from", app.cfg.MailFrom)
	} else {
		app.logger.Warn("RESEND_API_KEY not set, emails will only be logged")
	}

	app.publisher = events.NopPublisher{}
	if len(app.cfg.KafkaBrokers) > 0 {
		app.publisher = events.NewKafkaPublisher(app.cfg.KafkaBrokers, app.cfg.KafkaTopic)
		app.logger.Info("publishing events to kafka", "topic", app.cfg.KafkaTopic, "brokers", app.cfg.KafkaBrokers)
	}

	if len(app.cfg.StaffInbox) == 0 {
		app.logger.Warn("STAFF_INBOX not set, staff will not be alerted to new consultations")
	}

	app.metrics = metrics.New()
	app.dispatcher = notify.NewDispatcher(catalog, mailer, app.publisher, app.metrics, app.logger, notify.Config{
		Workers:   app.cfg.NotifyWorkers,
		QueueSize: app.cfg.NotifyQueueSize,
	})
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() error {
	signer := jwtx.NewSignerHS256(app.keys)
	hasher := cryptox.NewHasher(app.cfg.Pepper)

	app.registrationService = &service.RegistrationService{
		Store:      app.db,
		Signer:     signer,
		Verifier:   jwtx.NewVerifierHS256(app.keys, app.cfg.TokenIssuer, []string{jwtx.AudienceRegistration}, jwtx.WithLeeway(clockSkew)),
		Hasher:     hasher,
		Notifier:   app.dispatcher,
		Metrics:    app.metrics,
		Issuer:     app.cfg.TokenIssuer,
		TTL:        app.cfg.RegistrationTTL,
		SessionTTL: app.cfg.AccessTTL,
	}
	app.intakeService = &service.IntakeService{
		Store:      app.db,
		Notifier:   app.dispatcher,
		StaffInbox: app.cfg.StaffInbox,
		AppBaseURL: app.cfg.AppBaseURL,
	}
	app.consultationService = &service.ConsultationService{Store: app.db}
	app.transitionService = &service.TransitionService{
		Store:        app.db,
		Registration: app.registrationService,
		Notifier:     app.dispatcher,
		Metrics:      app.metrics,
		AppBaseURL:   app.cfg.AppBaseURL,
	}
	staff, err := NewStaffService(app.cfg, app.db, signer)
	if err != nil {
		return err
	}
	app.staffService = staff
	app.contactService = &service.ContactService{
		Store:      app.db,
		Notifier:   app.dispatcher,
		StaffInbox: app.cfg.StaffInbox,
	}
	app.clientService = &service.ClientService{
		Store:      app.db,
		Hasher:     hasher,
		Signer:     signer,
		Issuer:     app.cfg.TokenIssuer,
		SessionTTL: app.cfg.AccessTTL,
	}
	return nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		jwtx.NewVerifierHS256(app.keys, app.cfg.TokenIssuer, []string{jwtx.AudienceAPI}, jwtx.WithLeeway(clockSkew)),
		jwtx.NewSignerHS256(app.keys),
		BuildVersion,
		app.db,
		app.metrics,
		app.logger,
	)
	router.AppBaseURL = app.cfg.AppBaseURL

	if app.cfg.RedisAddr != "" {
		app.redis = redis.NewClient(&redis.Options{
			Addr:     app.cfg.RedisAddr,
			Password: app.cfg.RedisPassword,
		})
		router.NewLimiter = redisLimiters(app.redis)
		router.CachePing = func(ctx context.Context) error { return app.redis.Ping(ctx).Err() }
		app.logger.Info("rate limits shared via redis", "addr", app.cfg.RedisAddr)
	}

	// Wire services to router
	router.IntakeService = app.intakeService
	router.ConsultationService = app.consultationService
	router.TransitionService = app.transitionService
	router.RegistrationService = app.registrationService
	router.StaffService = app.staffService
	router.ContactService = app.contactService
	router.ClientService = app.clientService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}

// NewStaffService builds the staff account service. signer may be nil for
// callers that never log in, such as the CLI.
func NewStaffService(cfg Config, db store.Store, signer jwtx.Signer) (*service.StaffService, error) {
	sealer, err := newSealer(cfg)
	if err != nil {
		return nil, err
	}
	return &service.StaffService{
		Store:     db,
		Hasher:    cryptox.NewHasher(cfg.Pepper),
		Sealer:    sealer,
		Signer:    signer,
		Issuer:    cfg.TokenIssuer,
		AccessTTL: cfg.AccessTTL,
	}, nil
}

func redisLimiters(client *redis.Client) httpapi.LimiterFactory {
	return func(name string, cfg httpx.RateLimitConfig) httpx.Limiter {
		return httpx.NewRedisLimiter(client, "bureau:ratelimit:"+name, cfg)
	}
}
