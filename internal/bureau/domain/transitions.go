package domain

import (
	"fmt"
	"slices"
)

type Status string

const (
	StatusLead            Status = "lead"
	StatusUnderReview     Status = "under_review"
	StatusApproved        Status = "approved"
	StatusPaymentVerified Status = "payment_verified"
	StatusScheduled       Status = "scheduled"
	StatusConfirmed       Status = "confirmed"
	StatusWaitlisted      Status = "waitlisted"
	StatusRejected        Status = "rejected"
	StatusCompleted       Status = "completed"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{
	StatusLead,
	StatusUnderReview,
	StatusApproved,
	StatusPaymentVerified,
	StatusScheduled,
	StatusConfirmed,
	StatusWaitlisted,
	StatusRejected,
	StatusCompleted,
}

// transitions is the complete lifecycle graph. Anything absent is refused.
var transitions = map[Status][]Status{
	StatusLead:            {StatusUnderReview, StatusWaitlisted, StatusRejected},
	StatusUnderReview:     {StatusApproved, StatusWaitlisted, StatusRejected},
	StatusApproved:        {StatusPaymentVerified, StatusWaitlisted, StatusRejected},
	StatusPaymentVerified: {StatusScheduled, StatusWaitlisted, StatusRejected},
	StatusScheduled:       {StatusConfirmed, StatusScheduled, StatusWaitlisted, StatusRejected},
	StatusConfirmed:       {StatusCompleted, StatusScheduled},
	StatusWaitlisted:      {StatusRejected},
	StatusRejected:        nil,
	StatusCompleted:       nil,
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", fmt.Errorf("unknown status %q", s)
	}
	return st, nil
}

func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

func (s Status) Terminal() bool {
	return s.Valid() && len(transitions[s]) == 0
}

// PaymentAllowed reports whether payment may be recorded as verified while
// in status s: approved or anything reached through it.
func (s Status) PaymentAllowed() bool {
	switch s {
	case StatusApproved, StatusPaymentVerified, StatusScheduled, StatusConfirmed, StatusCompleted:
		return true
	}
	return false
}

// Redeemable reports whether a registration token may be redeemed while the
// consultation is in status s.
func (s Status) Redeemable() bool {
	switch s {
	case StatusPaymentVerified, StatusScheduled, StatusConfirmed, StatusCompleted:
		return true
	}
	return false
}

// CanTransition reports whether from -> to is an edge of the graph.
func CanTransition(from, to Status) bool {
	return slices.Contains(transitions[from], to)
}

// AllowedTargets returns the statuses reachable from s in one step.
func AllowedTargets(s Status) []Status {
	return slices.Clone(transitions[s])
}

// IsReschedule reports a move back into scheduled from a scheduled or
// confirmed consultation.
func IsReschedule(from, to Status) bool {
	return to == StatusScheduled && (from == StatusScheduled || from == StatusConfirmed)
}
