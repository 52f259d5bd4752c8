package events_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/applybureau/bureau/internal/bureau/domain"
	"github.com/applybureau/bureau/internal/bureau/events"
)

func TestStatusChangedEnvelope(t *testing.T) {
	at := time.Date(2024, 6, 1, 10, 0, 0, 0, time.FixedZone("AEST", 10*3600))
	evt := events.StatusChanged("c-1", domain.StatusApproved, domain.StatusPaymentVerified, "staff-1", at)

	require.Equal(t, events.TypeConsultationStatusChanged, evt.Type)
	require.Equal(t, []byte("c-1"), evt.Key())
	require.Equal(t, time.UTC, evt.OccurredAt.Location())

	raw, err := json.Marshal(evt)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"type": "consultation.status_changed",
		"consultation_id": "c-1",
		"occurred_at": "2024-06-01T00:00:00Z",
		"data": {"from": "approved", "to": "payment_verified", "actor": "staff-1"}
	}`, string(raw))
}

func TestConsultationEvents(t *testing.T) {
	now := time.Now()
	created := events.ConsultationCreated(domain.Consultation{ID: "c-2", Status: domain.StatusLead, CreatedAt: now})
	require.Equal(t, events.TypeConsultationCreated, created.Type)
	require.JSONEq(t, `{"status":"lead"}`, string(created.Data))

	reg := events.ConsultationRegistered("c-2", "client-1", now)
	require.Equal(t, events.TypeConsultationRegistered, reg.Type)
	require.JSONEq(t, `{"client_id":"client-1"}`, string(reg.Data))
}

func TestNopPublisher(t *testing.T) {
	var p events.Publisher = events.NopPublisher{}
	require.NoError(t, p.Publish(context.Background(), events.Event{Type: "x"}))
	require.NoError(t, p.Close())
}
