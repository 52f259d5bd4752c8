// Package events publishes domain events about consultations for
// downstream consumers (CRM sync, analytics).
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/applybureau/bureau/internal/bureau/domain"
)

const (
	TypeConsultationCreated       = "consultation.created"
	TypeConsultationStatusChanged = "consultation.status_changed"
	TypeConsultationRegistered    = "consultation.registered"
)

// Event is the JSON envelope written to the topic. Key partitions events by
// consultation so consumers see them in order.
type Event struct {
	Type           string          `json:"type"`
	ConsultationID string          `json:"consultation_id"`
	OccurredAt     time.Time       `json:"occurred_at"`
	Data           json.RawMessage `json:"data,omitempty"`
}

func (e Event) Key() []byte { return []byte(e.ConsultationID) }

type StatusChange struct {
	From  domain.Status `json:"from"`
	To    domain.Status `json:"to"`
	Actor string        `json:"actor"`
}

type Registered struct {
	ClientID string `json:"client_id"`
}

type Created struct {
	Status domain.Status `json:"status"`
}

func newEvent(typ, consultationID string, at time.Time, data any) Event {
	e := Event{Type: typ, ConsultationID: consultationID, OccurredAt: at.UTC()}
	if data != nil {
		// The payloads above always marshal.
		e.Data, _ = json.Marshal(data)
	}
	return e
}

func ConsultationCreated(c domain.Consultation) Event {
	return newEvent(TypeConsultationCreated, c.ID, c.CreatedAt, Created{Status: c.Status})
}

func StatusChanged(id string, from, to domain.Status, actor string, at time.Time) Event {
	return newEvent(TypeConsultationStatusChanged, id, at, StatusChange{From: from, To: to, Actor: actor})
}

func ConsultationRegistered(id, clientID string, at time.Time) Event {
	return newEvent(TypeConsultationRegistered, id, at, Registered{ClientID: clientID})
}

// Publisher delivers events.
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
	Close() error
}

// NopPublisher discards events. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close() error                         { return nil }
