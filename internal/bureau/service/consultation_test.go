package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/applybureau/bureau/internal/bureau/domain"
	"github.com/applybureau/bureau/internal/bureau/mail"
	"github.com/applybureau/bureau/internal/bureau/service"
	"github.com/applybureau/bureau/pkg/idx"
)

func TestListFilters(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	for _, st := range []domain.Status{domain.StatusLead, domain.StatusLead, domain.StatusApproved, domain.StatusRejected} {
		h.seed(t, st)
		h.clock.Advance(time.Minute)
	}
	ada, err := h.intake.Submit(ctx, adaRequest())
	require.NoError(t, err)

	res, err := h.consultations.List(ctx, service.ListFilter{})
	require.NoError(t, err)
	require.Equal(t, 5, res.Total)
	require.Equal(t, service.DefaultPageSize, res.Limit)
	require.Equal(t, ada.ID, res.Items[0].ID, "newest first")

	res, err = h.consultations.List(ctx, service.ListFilter{Statuses: []string{"lead, approved"}})
	require.NoError(t, err)
	require.Equal(t, 4, res.Total)

	res, err = h.consultations.List(ctx, service.ListFilter{Email: "ADA@example.com"})
	require.NoError(t, err)
	require.Equal(t, 1, res.Total)

	res, err = h.consultations.List(ctx, service.ListFilter{Query: "lovelace"})
	require.NoError(t, err)
	require.Equal(t, 1, res.Total)

	res, err = h.consultations.List(ctx, service.ListFilter{Limit: 2, Offset: 4})
	require.NoError(t, err)
	require.Equal(t, 5, res.Total)
	require.Len(t, res.Items, 1)

	res, err = h.consultations.List(ctx, service.ListFilter{Limit: 1000})
	require.NoError(t, err)
	require.Equal(t, service.MaxPageSize, res.Limit)

	_, err = h.consultations.List(ctx, service.ListFilter{Statuses: []string{"paid"}})
	require.ErrorIs(t, err, service.ErrInvalidInput)

	_, err = h.consultations.List(ctx, service.ListFilter{Offset: -1})
	require.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestGet(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	c := h.seed(t, domain.StatusScheduled)

	got, err := h.consultations.Get(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, c.FullName, got.FullName)

	require.Equal(t, domain.StatusScheduled, got.Status)

	_, err = h.consultations.Get(ctx, idx.NewUUID())
	require.ErrorIs(t, err, service.ErrConsultationNotFound)
	_, err = h.consultations.Get(ctx, "42")
	require.ErrorIs(t, err, service.ErrConsultationNotFound)
}

func TestCounts(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.seed(t, domain.StatusLead)
	h.seed(t, domain.StatusLead)
	h.seed(t, domain.StatusCompleted)

	counts, err := h.consultations.Counts(ctx)
	require.NoError(t, err)
	require.Len(t, counts, len(domain.Statuses))
	require.Equal(t, 2, counts[domain.StatusLead])
	require.Equal(t, 1, counts[domain.StatusCompleted])
	require.Zero(t, counts[domain.StatusWaitlisted])
}

// A message-only request declined straight from lead never gets a token.
func TestDeclineLead(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	c, err := h.intake.Submit(ctx, service.IntakeRequest{
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
		Message:  "Can you help with a career change?",
	})
	require.NoError(t, err)

	res := h.move(t, c.ID, domain.StatusRejected, service.TransitionInput{Reason: "not a fit"})
	require.Empty(t, res.RegistrationToken)

	stored, err := h.consultations.Get(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusRejected, stored.Status)
	require.Equal(t, "not a fit", stored.StatusReason)
	require.False(t, stored.Registration.Issued())
	require.False(t, stored.Payment.Verified)
	require.Equal(t, mail.TemplateDeclined, h.notes.last().Template)

	_, err = h.transitions.Transition(ctx, c.ID, domain.StatusUnderReview, staffActor, service.TransitionInput{})
	require.ErrorIs(t, err, service.ErrInvalidTransition)
}

func TestContactSubmit(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	req, err := h.contacts.Submit(ctx, service.ContactInput{
		Name:    " Ada ",
		Email:   "Ada@Example.com",
		Message: "Do you coach product managers?",
	})
	require.NoError(t, err)
	require.Equal(t, "Ada", req.Name)
	require.Equal(t, "ada@example.com", req.Email)
	require.Equal(t, []string{mail.TemplateContactReceived, mail.TemplateStaffNewContact}, h.notes.templates())
	require.Equal(t, "(no subject)", h.notes.last().Vars["Subject"])

	h.clock.Advance(time.Second)
	_, err = h.contacts.Submit(ctx, service.ContactInput{Name: "Grace", Email: "grace@example.com", Subject: "Hi", Message: "Hello"})
	require.NoError(t, err)

	list, err := h.contacts.List(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	require.Equal(t, service.DefaultPageSize, list.Limit)
	require.Equal(t, "Grace", list.Items[0].Name)

	_, err = h.contacts.Submit(ctx, service.ContactInput{Name: "", Email: "nope", Message: ""})
	var verr *service.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Fields, "name")
	require.Contains(t, verr.Fields, "email")
	require.Contains(t, verr.Fields, "message")
}

func TestClientProfileUnknown(t *testing.T) {
	h := newHarness(t)
	_, err := h.clients.Profile(context.Background(), "01J000000000000000000000ZZ")
	require.ErrorIs(t, err, service.ErrClientNotFound)
}
