package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/applybureau/bureau/api/bureau" // Swagger docs
	"github.com/applybureau/bureau/internal/bureau/domain"
	"github.com/applybureau/bureau/internal/bureau/metrics"
	"github.com/applybureau/bureau/internal/bureau/service"
	"github.com/applybureau/bureau/internal/bureau/store"
	"github.com/applybureau/bureau/pkg/httpx"
	"github.com/applybureau/bureau/pkg/jwtx"
	"github.com/applybureau/bureau/pkg/sentryx"
	"github.com/applybureau/bureau/pkg/slogx"
)

// LimiterFactory builds the limiter behind one rate limit profile. name is
// unique per route group and suitable as a key prefix.
type LimiterFactory func(name string, cfg httpx.RateLimitConfig) httpx.Limiter

// MemoryLimiters keeps rate limit state in process.
func MemoryLimiters(_ string, cfg httpx.RateLimitConfig) httpx.Limiter {
	return httpx.NewMemoryLimiter(cfg)
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier // audience "api"
	signer       jwtx.Signer
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store
	metrics      *metrics.Metrics

	// NewLimiter defaults to MemoryLimiters.
	NewLimiter LimiterFactory

	// CachePing reports the health of the shared rate limit store, if any.
	CachePing func(ctx context.Context) error

	// AppBaseURL prefixes registration links returned to staff.
	AppBaseURL string

	IntakeService       *service.IntakeService
	ConsultationService *service.ConsultationService
	TransitionService   *service.TransitionService
	RegistrationService *service.RegistrationService
	StaffService        *service.StaffService
	ContactService      *service.ContactService
	ClientService       *service.ClientService
}

func NewRouter(
	verifier jwtx.Verifier,
	signer jwtx.Signer,
	buildVersion string,
	st store.Store,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		signer:       signer,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		metrics:      m,
		logger:       logger,
		NewLimiter:   MemoryLimiters,
	}

	// The metrics middleware must wrap the mux directly so that it sees the
	// matched pattern.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger, slogx.WithPathRedactor(RedactPath)),
		sentryx.Middleware,
	}
	if m != nil {
		r.middlewares = append(r.middlewares, m.Middleware)
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerConsultations()
	r.registerRegistration()
	r.registerContact()
	r.registerAuth()
	r.registerClient()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Apply Bureau API
//	@version		0.1.0
//	@description	Consultation intake, the staff review pipeline and client registration for Apply Bureau.
//	@description
//	@description				Staff and client routes take an HS256 access token from /v1/auth/login or /v1/consultations/register.
//
//	@contact.name				Apply Bureau Engineering
//	@contact.url				https://applybureau.com
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) limitByIP(name string, cfg httpx.RateLimitConfig) httpx.Middleware {
	return httpx.RateLimitByIP(r.NewLimiter(name, cfg), cfg)
}

func (r *Router) limitBySubject(name string, cfg httpx.RateLimitConfig) httpx.Middleware {
	return httpx.RateLimitBySubject(r.NewLimiter(name, cfg), cfg)
}

func (r *Router) registerConsultations() {
	intake := &IntakeHandler{IntakeService: r.IntakeService}
	h := &ConsultationsHandler{
		ConsultationService: r.ConsultationService,
		TransitionService:   r.TransitionService,
		AppBaseURL:          r.AppBaseURL,
	}

	// POST /v1/consultations - public form, moderate limit by IP
	r.Mux.Handle("POST /v1/consultations",
		httpx.Chain(intake,
			r.limitByIP("intake", httpx.ModerateLimit),
		),
	)

	// Reads share one limiter.
	readLimit := r.limitBySubject("consultations-read", httpx.LenientLimit)
	staffRead := func(next http.Handler) http.Handler {
		return httpx.Chain(next,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope(domain.ScopeConsultationsRead),
			readLimit,
		)
	}

	r.Mux.Handle("GET /v1/consultations", staffRead(http.HandlerFunc(h.HandleList)))
	r.Mux.Handle("GET /v1/consultations/stats", staffRead(http.HandlerFunc(h.HandleStats)))
	r.Mux.Handle("GET /v1/consultations/{id}", staffRead(http.HandlerFunc(h.HandleGet)))

	// PATCH /v1/consultations/{id} - status transitions
	r.Mux.Handle("PATCH /v1/consultations/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleTransition),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope(domain.ScopeConsultationsWrite),
			r.limitBySubject("consultations-write", httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerRegistration() {
	h := &RegistrationHandler{RegistrationService: r.RegistrationService}

	// Token guessing is bounded by the strict limit on both routes.
	r.Mux.Handle("GET /v1/consultations/validate-token/{token}",
		httpx.Chain(http.HandlerFunc(h.HandleValidate),
			r.limitByIP("validate-token", httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/consultations/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			r.limitByIP("register", httpx.StrictLimit),
		),
	)
}

func (r *Router) registerContact() {
	h := &ContactHandler{ContactService: r.ContactService}

	r.Mux.Handle("POST /v1/contact",
		httpx.Chain(http.HandlerFunc(h.HandleSubmit),
			r.limitByIP("contact", httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /v1/contact",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope(domain.ScopeConsultationsRead),
			r.limitBySubject("contact-read", httpx.LenientLimit),
		),
	)
}

func (r *Router) registerAuth() {
	login := &LoginHandler{StaffService: r.StaffService}
	mfa := &MFAHandler{StaffService: r.StaffService}

	// POST /v1/auth/login - strict limit by IP (credential guessing)
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(login,
			r.limitByIP("login", httpx.StrictLimit),
		),
	)

	// Client sessions hold none of the staff scopes.
	r.Mux.Handle("POST /v1/staff/mfa/totp/enroll",
		httpx.Chain(http.HandlerFunc(mfa.HandleEnroll),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope(domain.ScopeConsultationsRead),
			r.limitBySubject("mfa-enroll", httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /v1/staff/mfa/totp/verify",
		httpx.Chain(http.HandlerFunc(mfa.HandleVerify),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope(domain.ScopeConsultationsRead),
			r.limitBySubject("mfa-verify", httpx.StrictLimit),
		),
	)
}

func (r *Router) registerClient() {
	h := &MeHandler{ClientService: r.ClientService}
	login := &ClientLoginHandler{ClientService: r.ClientService}

	r.Mux.Handle("POST /v1/auth/client/login",
		httpx.Chain(login,
			r.limitByIP("client-login", httpx.StrictLimit),
		),
	)

	r.Mux.Handle("GET /v1/me",
		httpx.Chain(h,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope(domain.ScopeClientRead),
			r.limitBySubject("me", httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			r.limitByIP("livez", httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.signer, r.CachePing),
			r.limitByIP("readyz", httpx.LenientLimit),
		),
	)
	if r.metrics != nil {
		r.Mux.Handle("GET /metrics", r.metrics.Handler())
	}
}

const tokenPathMarker = "/validate-token/"

// RedactPath hides the registration token in validate-token paths. It also
// accepts full URLs.
func RedactPath(p string) string {
	i := strings.Index(p, tokenPathMarker)
	if i < 0 {
		return p
	}
	return p[:i+len(tokenPathMarker)] + "[FILTERED]"
}
