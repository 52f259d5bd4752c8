package service_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/applybureau/bureau/internal/bureau/domain"
	"github.com/applybureau/bureau/internal/bureau/events"
	"github.com/applybureau/bureau/internal/bureau/mail"
	"github.com/applybureau/bureau/internal/bureau/metrics"
	"github.com/applybureau/bureau/internal/bureau/service"
	"github.com/applybureau/bureau/internal/bureau/store"
	"github.com/applybureau/bureau/internal/bureau/store/drivers/sqlite"
	"github.com/applybureau/bureau/pkg/cryptox"
	"github.com/applybureau/bureau/pkg/idx"
	"github.com/applybureau/bureau/pkg/jwtx"
)

const testIssuer = "bureau-test"

var baseTime = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type sentEmail struct {
	To       []string
	Template string
	Vars     mail.Vars
}

// recorder is a synchronous Notifier.
type recorder struct {
	mu     sync.Mutex
	emails []sentEmail
	events []events.Event
}

func (r *recorder) SendEmail(_ context.Context, to []string, template string, vars mail.Vars) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.emails = append(r.emails, sentEmail{To: to, Template: template, Vars: vars})
}

func (r *recorder) Publish(_ context.Context, evt events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
}

func (r *recorder) templates() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.emails))
	for _, e := range r.emails {
		out = append(out, e.Template)
	}
	return out
}

func (r *recorder) last() sentEmail {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.emails[len(r.emails)-1]
}

func (r *recorder) eventTypes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

func (r *recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.emails = nil
	r.events = nil
}

type harness struct {
	store   store.Store
	clock   *testClock
	notes   *recorder
	metrics *metrics.Metrics

	apiVerifier jwtx.Verifier

	intake        *service.IntakeService
	consultations *service.ConsultationService
	transitions   *service.TransitionService
	registration  *service.RegistrationService
	staff         *service.StaffService
	contacts      *service.ContactService
	clients       *service.ClientService
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	return newHarnessWithStore(t, st)
}

func newHarnessWithStore(t *testing.T, st store.Store) *harness {
	t.Helper()

	key, err := jwtx.KeyFromSecret(strings.Repeat("s", jwtx.MinSecretLength))
	require.NoError(t, err)
	keys, err := jwtx.NewKeySet(key)
	require.NoError(t, err)

	clk := &testClock{t: baseTime}
	notes := &recorder{}
	m := metrics.New()
	signer := jwtx.NewSignerHS256(keys)
	hasher := cryptox.NewHasher("test-pepper")
	sealer, err := cryptox.NewSealer("test-mfa-key")
	require.NoError(t, err)

	h := &harness{
		store:       st,
		clock:       clk,
		notes:       notes,
		metrics:     m,
		apiVerifier: jwtx.NewVerifierHS256(keys, testIssuer, []string{jwtx.AudienceAPI}, jwtx.WithClock(clk.Now)),
	}

	h.registration = &service.RegistrationService{
		Store:    st,
		Signer:   signer,
		Verifier: jwtx.NewVerifierHS256(keys, testIssuer, []string{jwtx.AudienceRegistration}, jwtx.WithClock(clk.Now)),
		Hasher:   hasher,
		Notifier: notes,
		Metrics:  m,
		Issuer:   testIssuer,
		Now:      clk.Now,
	}
	h.intake = &service.IntakeService{
		Store:      st,
		Notifier:   notes,
		StaffInbox: []string{"team@applybureau.com"},
		AppBaseURL: "https://applybureau.com",
		Now:        clk.Now,
	}
	h.consultations = &service.ConsultationService{Store: st}
	h.transitions = &service.TransitionService{
		Store:        st,
		Registration: h.registration,
		Notifier:     notes,
		Metrics:      m,
		AppBaseURL:   "https://applybureau.com",
		Now:          clk.Now,
	}
	h.staff = &service.StaffService{
		Store:  st,
		Hasher: hasher,
		Sealer: sealer,
		Signer: signer,
		Issuer: testIssuer,
		Now:    clk.Now,
	}
	h.contacts = &service.ContactService{
		Store:      st,
		Notifier:   notes,
		StaffInbox: []string{"team@applybureau.com"},
		Now:        clk.Now,
	}
	h.clients = &service.ClientService{
		Store:  st,
		Hasher: hasher,
		Signer: signer,
		Issuer: testIssuer,
		Now:    clk.Now,
	}

	return h
}

var staffActor = service.Actor{ID: "staff-1", Email: "coach@applybureau.com", Role: domain.RoleStaff}

func adaRequest() service.IntakeRequest {
	return service.IntakeRequest{
		FullName:      "Ada Lovelace",
		Email:         "ada@example.com",
		Message:       "I would like help moving into a staff engineering role.",
		RoleTargets:   []string{"Staff Engineer"},
		ProposedSlots: []domain.TimeSlot{{Date: "2024-06-10", Time: "09:00"}, {Date: "2024-06-11", Time: "14:30"}},
	}
}

// seed stores a consultation directly in the given status.
func (h *harness) seed(t *testing.T, status domain.Status) domain.Consultation {
	t.Helper()
	c := domain.Consultation{
		ID:            idx.NewUUID(),
		FullName:      "Grace Hopper",
		Email:         idx.New().String() + "@example.com",
		Message:       "hello",
		ProposedSlots: []domain.TimeSlot{{Date: "2024-06-10", Time: "09:00"}},
		Status:        status,
		CreatedAt:     h.clock.Now(),
		UpdatedAt:     h.clock.Now(),
	}
	require.NoError(t, h.store.Consultations().CreateConsultation(context.Background(), c))
	return c
}

func (h *harness) move(t *testing.T, id string, target domain.Status, in service.TransitionInput) service.TransitionResult {
	t.Helper()
	res, err := h.transitions.Transition(context.Background(), id, target, staffActor, in)
	require.NoError(t, err, "transition to %s", target)
	return res
}

func payment(method string, amount float64, reference string) service.TransitionInput {
	return service.TransitionInput{PaymentMethod: method, PaymentAmount: &amount, PaymentReference: reference}
}

// toPaymentVerified submits Ada's request and walks it to payment_verified,
// returning the consultation id and the raw registration token.
func (h *harness) toPaymentVerified(t *testing.T) (string, string) {
	t.Helper()
	c, err := h.intake.Submit(context.Background(), adaRequest())
	require.NoError(t, err)

	h.move(t, c.ID, domain.StatusUnderReview, service.TransitionInput{})
	h.move(t, c.ID, domain.StatusApproved, service.TransitionInput{})
	res := h.move(t, c.ID, domain.StatusPaymentVerified, payment("card", 500, "R-1"))
	require.NotEmpty(t, res.RegistrationToken)
	return c.ID, res.RegistrationToken
}
