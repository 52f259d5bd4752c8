package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/applybureau/bureau/internal/bureau/domain"
	"github.com/applybureau/bureau/internal/bureau/events"
	"github.com/applybureau/bureau/internal/bureau/mail"
	"github.com/applybureau/bureau/internal/bureau/service"
	"github.com/applybureau/bureau/internal/bureau/store"
	"github.com/applybureau/bureau/pkg/idx"
)

// anyEdgeInput satisfies the extra fields of every edge, so that only the
// graph decides whether a transition is allowed.
func anyEdgeInput() service.TransitionInput {
	in := payment("card", 500, "R-1")
	slot := 0
	in.SlotIndex = &slot
	in.Reason = "not a fit"
	return in
}

func TestTransitionRefusesPairsOutsideGraph(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	for _, from := range domain.Statuses {
		for _, to := range domain.Statuses {
			if domain.CanTransition(from, to) {
				continue
			}
			t.Run(fmt.Sprintf("%s->%s", from, to), func(t *testing.T) {
				c := h.seed(t, from)

				_, err := h.transitions.Transition(ctx, c.ID, to, staffActor, anyEdgeInput())
				require.ErrorIs(t, err, service.ErrInvalidTransition)

				var terr *service.TransitionError
				require.ErrorAs(t, err, &terr)
				require.Equal(t, from, terr.From)
				require.Equal(t, to, terr.To)
				require.Equal(t, domain.AllowedTargets(from), terr.Allowed)

				stored, err := h.store.Consultations().GetConsultation(ctx, c.ID)
				require.NoError(t, err)
				require.Equal(t, from, stored.Status)
			})
		}
	}
}

func TestTransitionAllowsGraphEdges(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	for _, from := range domain.Statuses {
		for _, to := range domain.AllowedTargets(from) {
			t.Run(fmt.Sprintf("%s->%s", from, to), func(t *testing.T) {
				c := h.seed(t, from)

				res, err := h.transitions.Transition(ctx, c.ID, to, staffActor, anyEdgeInput())
				require.NoError(t, err)
				require.Equal(t, from, res.From)
				require.Equal(t, to, res.Consultation.Status)

				stored, err := h.store.Consultations().GetConsultation(ctx, c.ID)
				require.NoError(t, err)
				require.Equal(t, to, stored.Status)
			})
		}
	}
}

func TestTransitionNotFound(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.transitions.Transition(ctx, idx.NewUUID(), domain.StatusUnderReview, staffActor, service.TransitionInput{})
	require.ErrorIs(t, err, service.ErrConsultationNotFound)

	_, err = h.transitions.Transition(ctx, "not-a-uuid", domain.StatusUnderReview, staffActor, service.TransitionInput{})
	require.ErrorIs(t, err, service.ErrConsultationNotFound)
}

func TestTransitionUnknownTarget(t *testing.T) {
	h := newHarness(t)
	c := h.seed(t, domain.StatusLead)

	_, err := h.transitions.Transition(context.Background(), c.ID, "paid", staffActor, service.TransitionInput{})
	require.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestPaymentVerifiedRequiresPayment(t *testing.T) {
	amount := func(v float64) *float64 { return &v }

	tests := []struct {
		name   string
		in     service.TransitionInput
		fields []string
	}{
		{"nothing", service.TransitionInput{}, []string{"payment_method", "payment_amount", "payment_reference"}},
		{"no method", service.TransitionInput{PaymentAmount: amount(500), PaymentReference: "R-1"}, []string{"payment_method"}},
		{"no amount", service.TransitionInput{PaymentMethod: "card", PaymentReference: "R-1"}, []string{"payment_amount"}},
		{"zero amount", service.TransitionInput{PaymentMethod: "card", PaymentAmount: amount(0), PaymentReference: "R-1"}, []string{"payment_amount"}},
		{"no reference", service.TransitionInput{PaymentMethod: "card", PaymentAmount: amount(500), PaymentReference: " "}, []string{"payment_reference"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			c := h.seed(t, domain.StatusApproved)

			_, err := h.transitions.Transition(context.Background(), c.ID, domain.StatusPaymentVerified, staffActor, tt.in)
			require.ErrorIs(t, err, service.ErrInvalidInput)

			var verr *service.ValidationError
			require.ErrorAs(t, err, &verr)
			for _, f := range tt.fields {
				require.Contains(t, verr.Fields, f)
			}

			stored, err := h.store.Consultations().GetConsultation(context.Background(), c.ID)
			require.NoError(t, err)
			require.Equal(t, domain.StatusApproved, stored.Status)
			require.False(t, stored.Payment.Verified)
			require.False(t, stored.Registration.Issued())
		})
	}
}

func TestPaymentVerifiedStoresPaymentVerbatim(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	c := h.seed(t, domain.StatusApproved)

	in := payment("card", 500, "R-1")
	in.PackageTier = "Executive"
	res, err := h.transitions.Transition(ctx, c.ID, domain.StatusPaymentVerified, staffActor, in)
	require.NoError(t, err)
	require.NotEmpty(t, res.RegistrationToken)

	stored, err := h.store.Consultations().GetConsultation(ctx, c.ID)
	require.NoError(t, err)
	verifiedAt := baseTime
	want := domain.Payment{
		Method:      "card",
		Amount:      500,
		Reference:   "R-1",
		Verified:    true,
		VerifiedAt:  &verifiedAt,
		VerifiedBy:  staffActor.Email,
		PackageTier: "Executive",
	}
	if diff := cmp.Diff(want, stored.Payment); diff != "" {
		t.Fatalf("payment mismatch (-want +got):\n%s", diff)
	}

	require.True(t, stored.Registration.Issued())
	require.False(t, stored.Registration.Used)
	require.NotEqual(t, res.RegistrationToken, stored.Registration.TokenHash)
	require.True(t, stored.Registration.ExpiresAt.Equal(baseTime.Add(7*24*time.Hour)))

	sent := h.notes.last()
	require.Equal(t, mail.TemplatePaymentVerified, sent.Template)
	require.Contains(t, sent.Vars["RegistrationURL"], "https://applybureau.com/register?token=")
	require.NotEmpty(t, sent.Vars["ExpiresAt"])
}

func TestSchedulingSlots(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	c := h.seed(t, domain.StatusPaymentVerified)

	_, err := h.transitions.Transition(ctx, c.ID, domain.StatusScheduled, staffActor, service.TransitionInput{})
	require.ErrorIs(t, err, service.ErrInvalidInput)

	outOfRange := 3
	_, err = h.transitions.Transition(ctx, c.ID, domain.StatusScheduled, staffActor, service.TransitionInput{SlotIndex: &outOfRange})
	require.ErrorIs(t, err, service.ErrInvalidInput)

	zero := 0
	_, err = h.transitions.Transition(ctx, c.ID, domain.StatusScheduled, staffActor, service.TransitionInput{
		SlotIndex:   &zero,
		MeetingLink: "not a url",
	})
	require.ErrorIs(t, err, service.ErrInvalidInput)

	res := h.move(t, c.ID, domain.StatusScheduled, service.TransitionInput{
		SlotIndex:   &zero,
		MeetingLink: "https://meet.example.com/abc",
	})
	slot, ok := res.Consultation.ConfirmedSlot()
	require.True(t, ok)
	require.Equal(t, "2024-06-10", slot.Date)
	require.Equal(t, mail.TemplateScheduled, h.notes.last().Template)
	require.Equal(t, "09:00", h.notes.last().Vars["SlotTime"])

	// Confirming without an index keeps the scheduled slot.
	res = h.move(t, c.ID, domain.StatusConfirmed, service.TransitionInput{})
	require.Equal(t, 0, *res.Consultation.ConfirmedSlotIndex)
	require.Equal(t, "https://meet.example.com/abc", res.Consultation.MeetingLink)
	require.Equal(t, mail.TemplateConfirmed, h.notes.last().Template)

	// Reschedule from confirmed.
	res = h.move(t, c.ID, domain.StatusScheduled, service.TransitionInput{SlotIndex: &zero})
	require.Equal(t, domain.StatusScheduled, res.Consultation.Status)
	require.Equal(t, mail.TemplateRescheduled, h.notes.last().Template)
}

func TestSchedulingWithoutProposedSlots(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	c, err := h.intake.Submit(ctx, service.IntakeRequest{FullName: "Ada Lovelace", Email: "ada@example.com", Message: "hi"})
	require.NoError(t, err)
	c.Status = domain.StatusPaymentVerified
	require.NoError(t, h.store.Consultations().UpdateConsultationIfStatus(ctx, c, domain.StatusLead))

	zero := 0
	_, err = h.transitions.Transition(ctx, c.ID, domain.StatusScheduled, staffActor, service.TransitionInput{SlotIndex: &zero})
	var verr *service.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "consultation has no proposed slots", verr.Fields["slot_index"])
}

func TestRejectAndWaitlistRequireReason(t *testing.T) {
	for _, target := range []domain.Status{domain.StatusRejected, domain.StatusWaitlisted} {
		t.Run(string(target), func(t *testing.T) {
			h := newHarness(t)
			c := h.seed(t, domain.StatusUnderReview)

			_, err := h.transitions.Transition(context.Background(), c.ID, target, staffActor, service.TransitionInput{Reason: "   "})
			require.ErrorIs(t, err, service.ErrInvalidInput)

			res := h.move(t, c.ID, target, service.TransitionInput{Reason: "not a fit"})
			require.Equal(t, "not a fit", res.Consultation.StatusReason)
			require.Equal(t, "not a fit", h.notes.last().Vars["Reason"])
		})
	}
}

func TestRejectionTemplateDependsOnOrigin(t *testing.T) {
	h := newHarness(t)

	early := h.seed(t, domain.StatusLead)
	h.move(t, early.ID, domain.StatusRejected, service.TransitionInput{Reason: "not a fit"})
	require.Equal(t, mail.TemplateDeclined, h.notes.last().Template)

	late := h.seed(t, domain.StatusScheduled)
	h.move(t, late.ID, domain.StatusRejected, service.TransitionInput{Reason: "no show"})
	require.Equal(t, mail.TemplateCancelled, h.notes.last().Template)
}

func TestEveryTransitionSendsExactlyOneEmail(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	c, err := h.intake.Submit(ctx, adaRequest())
	require.NoError(t, err)
	h.notes.reset()

	zero := 0
	steps := []struct {
		to   domain.Status
		in   service.TransitionInput
		want string
	}{
		{domain.StatusUnderReview, service.TransitionInput{}, mail.TemplateUnderReview},
		{domain.StatusApproved, service.TransitionInput{}, mail.TemplateApproved},
		{domain.StatusPaymentVerified, payment("card", 500, "R-1"), mail.TemplatePaymentVerified},
		{domain.StatusScheduled, service.TransitionInput{SlotIndex: &zero}, mail.TemplateScheduled},
		{domain.StatusConfirmed, service.TransitionInput{}, mail.TemplateConfirmed},
		{domain.StatusCompleted, service.TransitionInput{}, mail.TemplateCompleted},
	}

	var want []string
	for _, step := range steps {
		h.move(t, c.ID, step.to, step.in)
		want = append(want, step.want)
		require.Equal(t, want, h.notes.templates())
	}

	types := h.notes.eventTypes()
	require.Len(t, types, len(steps))
	for _, typ := range types {
		require.Equal(t, events.TypeConsultationStatusChanged, typ)
	}
}

func TestAdminNotes(t *testing.T) {
	h := newHarness(t)
	c := h.seed(t, domain.StatusLead)

	notes := "  called on Monday  "
	res := h.move(t, c.ID, domain.StatusUnderReview, service.TransitionInput{AdminNotes: &notes})
	require.Equal(t, "called on Monday", res.Consultation.AdminNotes)

	res = h.move(t, c.ID, domain.StatusApproved, service.TransitionInput{})
	require.Equal(t, "called on Monday", res.Consultation.AdminNotes)
}

// racingStore lets another writer move the consultation between the
// transition's read and its write.
type racingStore struct {
	store.Store
	race func(id string)
}

func (s *racingStore) Consultations() store.Consultations {
	return &racingConsultations{Consultations: s.Store.Consultations(), race: s.race}
}

type racingConsultations struct {
	store.Consultations
	race func(id string)
}

func (r *racingConsultations) UpdateConsultationIfStatus(ctx context.Context, c domain.Consultation, from domain.Status) error {
	if r.race != nil {
		r.race(c.ID)
	}
	return r.Consultations.UpdateConsultationIfStatus(ctx, c, from)
}

func TestConcurrentTransitionLoses(t *testing.T) {
	base := newHarness(t)
	ctx := context.Background()
	c := base.seed(t, domain.StatusUnderReview)

	raced := false
	rs := &racingStore{Store: base.store}
	rs.race = func(id string) {
		if raced {
			return
		}
		raced = true
		// Another staff member rejects first.
		_, err := base.transitions.Transition(ctx, id, domain.StatusRejected, staffActor, service.TransitionInput{Reason: "duplicate"})
		require.NoError(t, err)
	}
	h := newHarnessWithStore(t, rs)

	_, err := h.transitions.Transition(ctx, c.ID, domain.StatusApproved, staffActor, service.TransitionInput{})
	require.ErrorIs(t, err, service.ErrInvalidTransition)

	var terr *service.TransitionError
	require.ErrorAs(t, err, &terr)
	require.Equal(t, domain.StatusRejected, terr.From)

	stored, err := base.store.Consultations().GetConsultation(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusRejected, stored.Status)
	require.Equal(t, "duplicate", stored.StatusReason)
	require.Empty(t, h.notes.templates())
}
