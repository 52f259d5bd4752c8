package http_test

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/applybureau/bureau/internal/bureau/domain"
	"github.com/applybureau/bureau/internal/bureau/events"
	bureauhttp "github.com/applybureau/bureau/internal/bureau/http"
	"github.com/applybureau/bureau/internal/bureau/mail"
	"github.com/applybureau/bureau/internal/bureau/metrics"
	"github.com/applybureau/bureau/internal/bureau/service"
	"github.com/applybureau/bureau/internal/bureau/store/drivers/sqlite"
	"github.com/applybureau/bureau/pkg/bureausdk"
	"github.com/applybureau/bureau/pkg/cryptox"
	"github.com/applybureau/bureau/pkg/jwtx"
)

const (
	testIssuer    = "bureau-test"
	staffEmail    = "coach@applybureau.com"
	staffPassword = "hunter22"
)

type recorder struct {
	mu        sync.Mutex
	templates []string
}

func (r *recorder) SendEmail(_ context.Context, _ []string, template string, _ mail.Vars) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates = append(r.templates, template)
}

func (r *recorder) Publish(context.Context, events.Event) {}

func (r *recorder) sent() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.templates...)
}

type testServer struct {
	url     string
	client  *bureausdk.Client
	staff   *service.StaffService
	notes   *recorder
	metrics *metrics.Metrics
}

func newTestServer(t *testing.T, opts ...func(*bureauhttp.Router)) *testServer {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	key, err := jwtx.KeyFromSecret(strings.Repeat("k", jwtx.MinSecretLength))
	require.NoError(t, err)
	keys, err := jwtx.NewKeySet(key)
	require.NoError(t, err)

	signer := jwtx.NewSignerHS256(keys)
	hasher := cryptox.NewHasher("pepper")
	sealer, err := cryptox.NewSealer("mfa-key")
	require.NoError(t, err)
	notes := &recorder{}
	m := metrics.New()
	baseURL := "https://applybureau.com"

	registration := &service.RegistrationService{
		Store:    st,
		Signer:   signer,
		Verifier: jwtx.NewVerifierHS256(keys, testIssuer, []string{jwtx.AudienceRegistration}),
		Hasher:   hasher,
		Notifier: notes,
		Metrics:  m,
		Issuer:   testIssuer,
	}
	staff := &service.StaffService{Store: st, Hasher: hasher, Sealer: sealer, Signer: signer, Issuer: testIssuer}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := bureauhttp.NewRouter(
		jwtx.NewVerifierHS256(keys, testIssuer, []string{jwtx.AudienceAPI}),
		signer, "test", st, m, logger,
	)
	router.AppBaseURL = baseURL
	router.IntakeService = &service.IntakeService{Store: st, Notifier: notes, StaffInbox: []string{"team@applybureau.com"}, AppBaseURL: baseURL}
	router.ConsultationService = &service.ConsultationService{Store: st}
	router.TransitionService = &service.TransitionService{Store: st, Registration: registration, Notifier: notes, Metrics: m, AppBaseURL: baseURL}
	router.RegistrationService = registration
	router.StaffService = staff
	router.ContactService = &service.ContactService{Store: st, Notifier: notes}
	router.ClientService = &service.ClientService{Store: st, Hasher: hasher, Signer: signer, Issuer: testIssuer}
	for _, opt := range opts {
		opt(router)
	}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	_, err = staff.Create(context.Background(), service.StaffInput{
		Email:    staffEmail,
		Name:     "Casey Coach",
		Role:     domain.RoleStaff,
		Password: staffPassword,
	})
	require.NoError(t, err)

	return &testServer{url: srv.URL, client: bureausdk.NewClient(srv.URL), staff: staff, notes: notes, metrics: m}
}

// login returns a client authenticated as the seeded staff member.
func (s *testServer) login(t *testing.T) *bureausdk.Client {
	t.Helper()
	res, err := s.client.Login(context.Background(), bureausdk.LoginRequest{Email: staffEmail, Password: staffPassword})
	require.NoError(t, err)
	require.Equal(t, "Bearer", res.TokenType)
	return s.client.WithToken(res.AccessToken)
}

func apiError(t *testing.T, err error) *bureausdk.APIError {
	t.Helper()
	require.Error(t, err)
	apiErr, ok := err.(*bureausdk.APIError)
	require.True(t, ok, "expected *APIError, got %T: %v", err, err)
	return apiErr
}

func ada() bureausdk.ConsultationRequest {
	return bureausdk.ConsultationRequest{
		FullName:      "Ada Lovelace",
		Email:         "ada@example.com",
		Message:       "Looking for help with a staff engineer search.",
		RoleTargets:   []string{"Staff Engineer"},
		ProposedSlots: []bureausdk.TimeSlot{{Date: "2030-06-10", Time: "09:00"}},
	}
}

func amount(v float64) *float64 { return &v }
func index(i int) *int          { return &i }
