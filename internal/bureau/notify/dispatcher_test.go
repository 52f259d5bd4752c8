package notify_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/applybureau/bureau/internal/bureau/events"
	"github.com/applybureau/bureau/internal/bureau/mail"
	"github.com/applybureau/bureau/internal/bureau/metrics"
	"github.com/applybureau/bureau/internal/bureau/notify"
	"github.com/applybureau/bureau/pkg/slogx"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []mail.Message
	err  error

	// When gate is set, Send signals entered and then waits for gate.
	gate    chan struct{}
	entered chan struct{}
}

func (r *recordingMailer) Send(ctx context.Context, msg mail.Message) error {
	if r.gate != nil {
		r.entered <- struct{}{}
		<-r.gate
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, msg)
	return nil
}

func (r *recordingMailer) messages() []mail.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]mail.Message(nil), r.sent...)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, evt events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func newDispatcher(t *testing.T, mailer mail.Mailer, pub events.Publisher, cfg notify.Config) (*notify.Dispatcher, *metrics.Metrics) {
	t.Helper()
	catalog, err := mail.LoadCatalog()
	require.NoError(t, err)
	m := metrics.New()
	return notify.NewDispatcher(catalog, mailer, pub, m, slogx.Discard(), cfg), m
}

func TestDispatcherDeliversOnStop(t *testing.T) {
	mailer := &recordingMailer{}
	pub := &recordingPublisher{}
	d, m := newDispatcher(t, mailer, pub, notify.Config{Workers: 2, QueueSize: 8})
	d.Start()

	ctx := context.Background()
	d.SendEmail(ctx, []string{"ada@example.com"}, mail.TemplateUnderReview, mail.Vars{"FullName": "Ada Lovelace"})
	d.Publish(ctx, events.Event{Type: events.TypeConsultationCreated, ConsultationID: "c-1"})

	require.NoError(t, d.Stop(ctx))

	sent := mailer.messages()
	require.Len(t, sent, 1)
	require.Equal(t, []string{"ada@example.com"}, sent[0].To)
	require.Equal(t, "Your consultation request is under review", sent[0].Subject)
	require.Len(t, pub.events, 1)

	require.Equal(t, 1.0, counter(m, "email", "sent"))
	require.Equal(t, 1.0, counter(m, "event", "sent"))
}

func TestDispatcherFailuresAreSwallowed(t *testing.T) {
	mailer := &recordingMailer{err: errors.New("provider down")}
	d, m := newDispatcher(t, mailer, nil, notify.Config{Workers: 1})
	d.Start()

	ctx := context.Background()
	d.SendEmail(ctx, []string{"ada@example.com"}, mail.TemplateUnderReview, mail.Vars{"FullName": "Ada Lovelace"})
	// Missing required variable: fails at render time.
	d.SendEmail(ctx, []string{"ada@example.com"}, mail.TemplateWaitlisted, mail.Vars{"FullName": "Ada Lovelace"})

	require.NoError(t, d.Stop(ctx))
	require.Equal(t, 2.0, counter(m, "email", "failed"))
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	gate := make(chan struct{})
	mailer := &recordingMailer{gate: gate, entered: make(chan struct{}, 8)}
	d, m := newDispatcher(t, mailer, nil, notify.Config{Workers: 1, QueueSize: 1})
	d.Start()

	ctx := context.Background()
	vars := mail.Vars{"FullName": "Ada Lovelace"}

	// The first job occupies the worker, which blocks on the gate.
	d.SendEmail(ctx, []string{"a@example.com"}, mail.TemplateUnderReview, vars)
	select {
	case <-mailer.entered:
	case <-time.After(time.Second):
		t.Fatal("worker never picked up the first job")
	}

	// One fits in the queue, the rest are dropped without blocking.
	d.SendEmail(ctx, []string{"b@example.com"}, mail.TemplateUnderReview, vars)
	for range 3 {
		d.SendEmail(ctx, []string{"c@example.com"}, mail.TemplateUnderReview, vars)
	}

	close(gate)
	require.NoError(t, d.Stop(ctx))

	require.Len(t, mailer.messages(), 2)
	require.Equal(t, 3.0, counter(m, "email", "dropped"))
}

func TestDispatcherAfterStop(t *testing.T) {
	mailer := &recordingMailer{}
	d, m := newDispatcher(t, mailer, nil, notify.Config{})
	d.Start()
	require.NoError(t, d.Stop(context.Background()))
	require.NoError(t, d.Stop(context.Background()))

	d.SendEmail(context.Background(), []string{"ada@example.com"}, mail.TemplateUnderReview, mail.Vars{"FullName": "Ada"})
	require.Empty(t, mailer.messages())
	require.Equal(t, 1.0, counter(m, "email", "dropped"))
}

func counter(m *metrics.Metrics, kind, result string) float64 {
	families, err := m.Registry().Gather()
	if err != nil {
		return -1
	}
	for _, f := range families {
		if f.GetName() != "bureau_notifications_total" {
			continue
		}
		for _, metric := range f.GetMetric() {
			labels := map[string]string{}
			for _, l := range metric.GetLabel() {
				labels[l.GetName()] = l.GetValue()
			}
			if labels["kind"] == kind && labels["result"] == result {
				return metric.GetCounter().GetValue()
			}
		}
	}
	return 0
}
