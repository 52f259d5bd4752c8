package domain_test

import (
	"testing"

	"github.com/applybureau/bureau/internal/bureau/domain"
	"github.com/stretchr/testify/require"
)

func TestCanTransition_MainPath(t *testing.T) {
	path := []domain.Status{
		domain.StatusLead,
		domain.StatusUnderReview,
		domain.StatusApproved,
		domain.StatusPaymentVerified,
		domain.StatusScheduled,
		domain.StatusConfirmed,
		domain.StatusCompleted,
	}
	for i := 0; i+1 < len(path); i++ {
		require.True(t, domain.CanTransition(path[i], path[i+1]), "%s -> %s", path[i], path[i+1])
		if domain.IsReschedule(path[i+1], path[i]) {
			continue
		}
		require.False(t, domain.CanTransition(path[i+1], path[i]), "%s -> %s", path[i+1], path[i])
	}
}

func TestCanTransition_SideBranches(t *testing.T) {
	preConfirmed := []domain.Status{
		domain.StatusLead,
		domain.StatusUnderReview,
		domain.StatusApproved,
		domain.StatusPaymentVerified,
		domain.StatusScheduled,
	}
	for _, s := range preConfirmed {
		require.True(t, domain.CanTransition(s, domain.StatusRejected), s)
		require.True(t, domain.CanTransition(s, domain.StatusWaitlisted), s)
	}

	require.True(t, domain.CanTransition(domain.StatusWaitlisted, domain.StatusRejected))
	require.False(t, domain.CanTransition(domain.StatusWaitlisted, domain.StatusWaitlisted))
	require.False(t, domain.CanTransition(domain.StatusConfirmed, domain.StatusRejected))
	require.False(t, domain.CanTransition(domain.StatusConfirmed, domain.StatusWaitlisted))
}

func TestCanTransition_Reschedule(t *testing.T) {
	require.True(t, domain.CanTransition(domain.StatusScheduled, domain.StatusScheduled))
	require.True(t, domain.CanTransition(domain.StatusConfirmed, domain.StatusScheduled))
	require.True(t, domain.IsReschedule(domain.StatusConfirmed, domain.StatusScheduled))
	require.False(t, domain.IsReschedule(domain.StatusPaymentVerified, domain.StatusScheduled))

	// Rescheduling is the only way back along the main path.
	require.False(t, domain.CanTransition(domain.StatusConfirmed, domain.StatusPaymentVerified))
	require.False(t, domain.CanTransition(domain.StatusCompleted, domain.StatusConfirmed))
	require.False(t, domain.CanTransition(domain.StatusCompleted, domain.StatusScheduled))
}

func TestCanTransition_Exhaustive(t *testing.T) {
	allowed := 0
	for _, from := range domain.Statuses {
		for _, to := range domain.Statuses {
			if domain.CanTransition(from, to) {
				allowed++
				require.Contains(t, domain.AllowedTargets(from), to)
			}
		}
	}
	// 6 main-path edges, 2 reschedules, 5 waitlist edges, 6 reject edges.
	require.Equal(t, 19, allowed)
}

func TestTerminal(t *testing.T) {
	require.True(t, domain.StatusRejected.Terminal())
	require.True(t, domain.StatusCompleted.Terminal())
	require.False(t, domain.StatusWaitlisted.Terminal())
	require.Empty(t, domain.AllowedTargets(domain.StatusCompleted))
	require.False(t, domain.CanTransition("bogus", domain.StatusLead))
}

func TestParseStatus(t *testing.T) {
	s, err := domain.ParseStatus("payment_verified")
	require.NoError(t, err)
	require.Equal(t, domain.StatusPaymentVerified, s)

	_, err = domain.ParseStatus("paid")
	require.Error(t, err)
}

func TestPaymentAllowed(t *testing.T) {
	require.False(t, domain.StatusLead.PaymentAllowed())
	require.False(t, domain.StatusUnderReview.PaymentAllowed())
	require.True(t, domain.StatusApproved.PaymentAllowed())
	require.False(t, domain.StatusRejected.PaymentAllowed())
}

func TestTimeSlotValidate(t *testing.T) {
	require.NoError(t, domain.TimeSlot{Date: "2024-06-01", Time: "09:30"}.Validate())
	require.ErrorIs(t, domain.TimeSlot{Date: "01/06/2024", Time: "09:30"}.Validate(), domain.ErrInvalidSlot)
	require.ErrorIs(t, domain.TimeSlot{Date: "2024-06-01", Time: "9.30am"}.Validate(), domain.ErrInvalidSlot)
	require.ErrorIs(t, domain.TimeSlot{Date: "2024-06-01", Time: "25:00"}.Validate(), domain.ErrInvalidSlot)
}

func TestConfirmedSlot(t *testing.T) {
	c := domain.Consultation{ProposedSlots: []domain.TimeSlot{{Date: "2024-06-01", Time: "09:00"}}}
	_, ok := c.ConfirmedSlot()
	require.False(t, ok)

	i := 0
	c.ConfirmedSlotIndex = &i
	slot, ok := c.ConfirmedSlot()
	require.True(t, ok)
	require.Equal(t, "2024-06-01 09:00", slot.String())
}
