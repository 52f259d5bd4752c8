// Package notify runs best-effort side effects (emails, domain events)
// after the primary write has committed. Nothing here ever fails a request:
// failures are logged, counted and reported to Sentry.
package notify

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/applybureau/bureau/internal/bureau/events"
	"github.com/applybureau/bureau/internal/bureau/mail"
	"github.com/applybureau/bureau/internal/bureau/metrics"
	"github.com/applybureau/bureau/pkg/sentryx"
	"github.com/applybureau/bureau/pkg/slogx"
)

const (
	DefaultWorkers   = 2
	DefaultQueueSize = 256
	DefaultTimeout   = 15 * time.Second
)

const (
	kindEmail = "email"
	kindEvent = "event"
)

var ErrStopped = errors.New("notify: dispatcher stopped")

type Config struct {
	Workers   int
	QueueSize int

	// Timeout bounds a single delivery attempt.
	Timeout time.Duration
}

type job struct {
	ctx  context.Context
	kind string

	to       []string
	template string
	vars     mail.Vars

	event events.Event
}

// Dispatcher delivers notifications from a bounded queue with a fixed pool
// of workers. Enqueueing never blocks: when the queue is full the job is
// dropped with a warning.
type Dispatcher struct {
	catalog   *mail.Catalog
	mailer    mail.Mailer
	publisher events.Publisher
	metrics   *metrics.Metrics
	logger    *slog.Logger
	cfg       Config

	queue chan job

	mu      sync.RWMutex
	stopped bool
	started bool
	wg      sync.WaitGroup
}

func NewDispatcher(
	catalog *mail.Catalog,
	mailer mail.Mailer,
	publisher events.Publisher,
	m *metrics.Metrics,
	logger *slog.Logger,
	cfg Config,
) *Dispatcher {
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultQueueSize
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Dispatcher{
		catalog:   catalog,
		mailer:    mailer,
		publisher: publisher,
		metrics:   m,
		logger:    logger,
		cfg:       cfg,
		queue:     make(chan job, cfg.QueueSize),
	}
}

// Start launches the workers. It is not safe to call twice.
func (d *Dispatcher) Start() {
	d.mu.Lock()
	d.started = true
	d.mu.Unlock()

	for range d.cfg.Workers {
		d.wg.Add(1)
		go d.worker()
	}
	d.logger.Info("notification dispatcher started",
		"workers", d.cfg.Workers,
		"queue_size", d.cfg.QueueSize,
	)
}

// Stop refuses new jobs, delivers what is already queued and waits for the
// workers to exit or ctx to end.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return nil
	}
	d.stopped = true
	close(d.queue)
	started := d.started
	d.mu.Unlock()

	if !started {
		return nil
	}

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.logger.Info("notification dispatcher stopped")
		return nil
	case <-ctx.Done():
		d.logger.Warn("notification dispatcher stop timed out", "pending", len(d.queue))
		return ctx.Err()
	}
}

// SendEmail queues the named template for the recipients.
func (d *Dispatcher) SendEmail(ctx context.Context, to []string, template string, vars mail.Vars) {
	d.enqueue(job{
		ctx:      slogx.Detach(ctx),
		kind:     kindEmail,
		to:       to,
		template: template,
		vars:     vars,
	})
}

// Publish queues a domain event.
func (d *Dispatcher) Publish(ctx context.Context, evt events.Event) {
	d.enqueue(job{
		ctx:   slogx.Detach(ctx),
		kind:  kindEvent,
		event: evt,
	})
}

func (d *Dispatcher) enqueue(j job) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	log := slogx.FromContext(j.ctx)
	if d.stopped {
		log.Warn("notification dropped", "kind", j.kind, "name", j.name(), "err", ErrStopped)
		d.observe(j.kind, "dropped")
		return
	}

	select {
	case d.queue <- j:
		d.setDepth()
	default:
		log.Warn("notification dropped: queue full", "kind", j.kind, "name", j.name())
		d.observe(j.kind, "dropped")
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for j := range d.queue {
		d.setDepth()
		d.deliver(j)
	}
}

func (d *Dispatcher) deliver(j job) {
	ctx, cancel := context.WithTimeout(j.ctx, d.cfg.Timeout)
	defer cancel()

	log := slogx.FromContext(ctx)

	var err error
	switch j.kind {
	case kindEmail:
		err = d.sendEmail(ctx, j)
	case kindEvent:
		err = d.publisher.Publish(ctx, j.event)
	}

	if err != nil {
		log.Error("notification failed",
			"kind", j.kind,
			"name", j.name(),
			"recipients", len(j.to),
			"err", err,
		)
		sentryx.CaptureError(ctx, err, map[string]any{
			"notification_kind": j.kind,
			"notification_name": j.name(),
		})
		d.observe(j.kind, "failed")
		return
	}

	log.Debug("notification delivered", "kind", j.kind, "name", j.name())
	d.observe(j.kind, "sent")
}

func (d *Dispatcher) sendEmail(ctx context.Context, j job) error {
	email, err := d.catalog.Render(j.template, j.vars)
	if err != nil {
		return err
	}
	return d.mailer.Send(ctx, mail.Message{To: j.to, Email: email})
}

func (d *Dispatcher) observe(kind, result string) {
	if d.metrics != nil {
		d.metrics.ObserveNotification(kind, result)
	}
}

func (d *Dispatcher) setDepth() {
	if d.metrics != nil {
		d.metrics.SetQueueDepth(len(d.queue))
	}
}

func (j job) name() string {
	if j.kind == kindEmail {
		return j.template
	}
	return j.event.Type
}
