package mail

import "github.com/applybureau/bureau/internal/bureau/domain"

const (
	TemplateConsultationReceived = "consultation_received"
	TemplateStaffNewConsultation = "staff_new_consultation"
	TemplateUnderReview          = "consultation_under_review"
	TemplateApproved             = "consultation_approved"
	TemplatePaymentVerified      = "payment_verified"
	TemplateScheduled            = "consultation_scheduled"
	TemplateRescheduled          = "consultation_rescheduled"
	TemplateConfirmed            = "consultation_confirmed"
	TemplateCompleted            = "consultation_completed"
	TemplateWaitlisted           = "consultation_waitlisted"
	TemplateDeclined             = "consultation_declined"
	TemplateCancelled            = "consultation_cancelled"
	TemplateContactReceived      = "contact_received"
	TemplateStaffNewContact      = "staff_new_contact"
)

// TemplateForTransition picks the email sent to the prospect for a status
// change. The choice depends on where the consultation came from as well as
// where it went: a rejection before approval is a decline, after it a
// cancellation.
func TemplateForTransition(from, to domain.Status) (string, bool) {
	if !domain.CanTransition(from, to) {
		return "", false
	}

	switch to {
	case domain.StatusUnderReview:
		return TemplateUnderReview, true
	case domain.StatusApproved:
		return TemplateApproved, true
	case domain.StatusPaymentVerified:
		return TemplatePaymentVerified, true
	case domain.StatusScheduled:
		if domain.IsReschedule(from, to) {
			return TemplateRescheduled, true
		}
		return TemplateScheduled, true
	case domain.StatusConfirmed:
		return TemplateConfirmed, true
	case domain.StatusCompleted:
		return TemplateCompleted, true
	case domain.StatusWaitlisted:
		return TemplateWaitlisted, true
	case domain.StatusRejected:
		switch from {
		case domain.StatusLead, domain.StatusUnderReview, domain.StatusWaitlisted:
			return TemplateDeclined, true
		default:
			return TemplateCancelled, true
		}
	}
	return "", false
}
