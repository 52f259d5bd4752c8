package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/applybureau/bureau/internal/bureau/domain"
	"github.com/applybureau/bureau/internal/bureau/events"
	"github.com/applybureau/bureau/internal/bureau/mail"
	"github.com/applybureau/bureau/internal/bureau/metrics"
	"github.com/applybureau/bureau/internal/bureau/store"
	"github.com/applybureau/bureau/pkg/idx"
	"github.com/applybureau/bureau/pkg/slogx"
)

const maxReasonLen = 1000

// TransitionInput carries the fields some edges require. Fields that do not
// apply to the requested edge are ignored.
type TransitionInput struct {
	// approved -> payment_verified
	PaymentMethod    string
	PaymentAmount    *float64
	PaymentReference string
	PackageTier      string

	// -> scheduled, scheduled -> confirmed
	SlotIndex   *int
	MeetingLink string

	// -> waitlisted, -> rejected
	Reason string

	// Any edge. Nil leaves the stored notes alone.
	AdminNotes *string
}

type TransitionResult struct {
	Consultation domain.Consultation
	From         domain.Status

	// RegistrationToken is set only by approved -> payment_verified.
	RegistrationToken string
}

// TransitionService enforces the lifecycle graph. The status write is
// conditional on the status read, so of two concurrent transitions out of
// the same state only one is applied.
type TransitionService struct {
	Store        store.Store
	Registration *RegistrationService
	Notifier     Notifier
	Metrics      *metrics.Metrics

	// AppBaseURL prefixes the registration link.
	AppBaseURL string

	Now func() time.Time
}

func (s *TransitionService) Transition(
	ctx context.Context,
	id string,
	target domain.Status,
	actor Actor,
	in TransitionInput,
) (TransitionResult, error) {
	log := slogx.FromContext(ctx).With(
		slog.String("consultation_id", id),
		slog.String("target", string(target)),
		slog.String("actor", actor.ID),
	)

	if !target.Valid() {
		return TransitionResult{}, invalidField("status", fmt.Sprintf("unknown status %q", target))
	}

	id, err := idx.ParseUUID(id)
	if err != nil {
		return TransitionResult{}, ErrConsultationNotFound
	}

	c, err := s.Store.Consultations().GetConsultation(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return TransitionResult{}, ErrConsultationNotFound
	}
	if err != nil {
		log.Error("failed to load consultation", slog.Any("error", err))
		return TransitionResult{}, dependency("get consultation", err)
	}

	from := c.Status
	if !domain.CanTransition(from, target) {
		log.Info("transition refused", slog.String("from", string(from)))
		return TransitionResult{}, newTransitionError(from, target)
	}

	now := clock(s.Now)
	next, err := s.apply(c, target, actor, in, now)
	if err != nil {
		return TransitionResult{}, err
	}

	var token string
	if target == domain.StatusPaymentVerified && !c.Registration.Issued() {
		token, next.Registration, err = s.Registration.Issue(next, now)
		if err != nil {
			log.Error("failed to issue registration token", slog.Any("error", err))
			return TransitionResult{}, err
		}
	}

	next.Status = target
	next.UpdatedAt = now

	err = s.Store.Consultations().UpdateConsultationIfStatus(ctx, next, from)
	switch {
	case errors.Is(err, store.ErrConflict):
		return TransitionResult{}, s.conflict(ctx, id, from, target)
	case errors.Is(err, store.ErrNotFound):
		return TransitionResult{}, ErrConsultationNotFound
	case errors.Is(err, store.ErrAlreadyExists):
		// Fingerprint collision on the unique token index.
		return TransitionResult{}, dependency("update consultation", err)
	case err != nil:
		log.Error("failed to update consultation", slog.Any("error", err))
		return TransitionResult{}, dependency("update consultation", err)
	}

	log.Info("consultation transitioned", slog.String("from", string(from)))
	if s.Metrics != nil {
		s.Metrics.ObserveTransition(string(from), string(target))
	}
	s.notify(ctx, next, from, actor, token, now)

	return TransitionResult{Consultation: next, From: from, RegistrationToken: token}, nil
}

// conflict reports a write that lost against a concurrent transition.
func (s *TransitionService) conflict(ctx context.Context, id string, from, target domain.Status) error {
	slogx.FromContext(ctx).Warn("concurrent status change",
		slog.String("consultation_id", id),
		slog.String("expected", string(from)),
	)
	current, err := s.Store.Consultations().GetConsultation(ctx, id)
	if err != nil {
		return newTransitionError(from, target)
	}
	return newTransitionError(current.Status, target)
}

// apply validates the edge's extra fields and returns the updated record.
func (s *TransitionService) apply(c domain.Consultation, target domain.Status, actor Actor, in TransitionInput, now time.Time) (domain.Consultation, error) {
	var v ValidationError

	switch target {
	case domain.StatusPaymentVerified:
		method := strings.TrimSpace(in.PaymentMethod)
		reference := strings.TrimSpace(in.PaymentReference)
		if method == "" {
			v.add("payment_method", "is required")
		}
		switch {
		case in.PaymentAmount == nil:
			v.add("payment_amount", "is required")
		case *in.PaymentAmount <= 0:
			v.add("payment_amount", "must be greater than zero")
		}
		if reference == "" {
			v.add("payment_reference", "is required")
		}
		if err := v.err(); err != nil {
			return c, err
		}

		// The graph only reaches payment_verified from approved.
		verifiedAt := now
		c.Payment = domain.Payment{
			Method:      method,
			Amount:      *in.PaymentAmount,
			Reference:   reference,
			Verified:    true,
			VerifiedAt:  &verifiedAt,
			VerifiedBy:  actor.String(),
			PackageTier: strings.TrimSpace(in.PackageTier),
		}

	case domain.StatusScheduled, domain.StatusConfirmed:
		slot, ok := s.slotIndex(&v, c, target, in.SlotIndex)
		link := strings.TrimSpace(in.MeetingLink)
		if link != "" && !validHTTPURL(link) {
			v.add("meeting_link", "must be an absolute http(s) URL")
		}
		if err := v.err(); err != nil {
			return c, err
		}
		if ok {
			c.ConfirmedSlotIndex = &slot
		}
		if link != "" {
			c.MeetingLink = link
		}

	case domain.StatusWaitlisted, domain.StatusRejected:
		reason := strings.TrimSpace(in.Reason)
		switch {
		case reason == "":
			v.add("reason", "is required")
		case tooLong(reason, maxReasonLen):
			v.add("reason", "is too long")
		}
		if err := v.err(); err != nil {
			return c, err
		}
		c.StatusReason = reason
	}

	if in.AdminNotes != nil {
		notes := strings.TrimSpace(*in.AdminNotes)
		if tooLong(notes, maxMessageLen) {
			return c, invalidField("admin_notes", "is too long")
		}
		c.AdminNotes = notes
	}

	return c, nil
}

// slotIndex resolves the slot for a scheduling edge. Scheduling needs an
// explicit index; confirming defaults to the slot already scheduled.
func (s *TransitionService) slotIndex(v *ValidationError, c domain.Consultation, target domain.Status, requested *int) (int, bool) {
	if len(c.ProposedSlots) == 0 {
		v.add("slot_index", "consultation has no proposed slots")
		return 0, false
	}

	var i int
	switch {
	case requested != nil:
		i = *requested
	case target == domain.StatusConfirmed && c.ConfirmedSlotIndex != nil:
		i = *c.ConfirmedSlotIndex
	default:
		v.add("slot_index", "is required")
		return 0, false
	}

	if i < 0 || i >= len(c.ProposedSlots) {
		v.add("slot_index", fmt.Sprintf("must be between 0 and %d", len(c.ProposedSlots)-1))
		return 0, false
	}
	return i, true
}

func (s *TransitionService) notify(ctx context.Context, c domain.Consultation, from domain.Status, actor Actor, token string, now time.Time) {
	if s.Notifier == nil {
		return
	}

	if name, ok := mail.TemplateForTransition(from, c.Status); ok {
		s.Notifier.SendEmail(ctx, []string{c.Email}, name, s.emailVars(c, token))
	}
	s.Notifier.Publish(ctx, events.StatusChanged(c.ID, from, c.Status, actor.ID, now))
}

func (s *TransitionService) emailVars(c domain.Consultation, token string) mail.Vars {
	vars := mail.Vars{"FullName": c.FullName}

	switch c.Status {
	case domain.StatusApproved:
		vars["PackageInterest"] = c.PackageInterest
	case domain.StatusPaymentVerified:
		vars["RegistrationURL"] = RegistrationURL(s.AppBaseURL, token)
		vars["PackageTier"] = c.Payment.PackageTier
		if c.Registration.ExpiresAt != nil {
			vars["ExpiresAt"] = c.Registration.ExpiresAt.Format("2 January 2006 15:04 MST")
		}
	case domain.StatusScheduled, domain.StatusConfirmed:
		if slot, ok := c.ConfirmedSlot(); ok {
			vars["SlotDate"] = slot.Date
			vars["SlotTime"] = slot.Time
		}
		vars["MeetingLink"] = c.MeetingLink
	case domain.StatusWaitlisted, domain.StatusRejected:
		vars["Reason"] = c.StatusReason
	}
	return vars
}

// RegistrationURL is the page where a prospect redeems token.
func RegistrationURL(baseURL, token string) string {
	return strings.TrimRight(baseURL, "/") + "/register?token=" + url.QueryEscape(token)
}
