package notify

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/asksource/admin-api/internal/api/metrics"
	"github.com/asksource/admin-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

type jobKind string

const (
	kindActivationRequest jobKind = "activation_request"
	kindConfirmation      jobKind = "confirmation"
)

type job struct {
	kind          jobKind
	userEmail     string
	userName      string
	activationURL string
}

// Dispatcher routes notification jobs to a fixed set of workers sharded by
// recipient, keeping per-recipient send order. It implements
// ports.NotificationSender by enqueuing, so the auth workflow returns as soon
// as the job is buffered; actual SMTP failures are logged by the worker and
// never reach the registrant.
type Dispatcher struct {
	workers []chan job
	sender  ports.NotificationSender
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers around
// the given sender. If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sender ports.NotificationSender, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan job, numWorkers),
		sender:  sender,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan job, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

func (d *Dispatcher) SendActivationRequest(_ context.Context, userEmail, userName, activationURL string) error {
	d.enqueue(job{kind: kindActivationRequest, userEmail: userEmail, userName: userName, activationURL: activationURL})
	return nil
}

func (d *Dispatcher) SendRegistrationConfirmation(_ context.Context, userEmail, userName string) error {
	d.enqueue(job{kind: kindConfirmation, userEmail: userEmail, userName: userName})
	return nil
}

func (d *Dispatcher) enqueue(j job) {
	d.workers[d.shardIndex(j.userEmail)] <- j
}

// shardIndex maps a recipient deterministically to a worker index.
func (d *Dispatcher) shardIndex(email string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(email))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan job) {
	for {
		select {
		case <-ctx.Done():
			return
		case j, ok := <-ch:
			if !ok {
				return
			}
			var err error
			switch j.kind {
			case kindActivationRequest:
				err = d.sender.SendActivationRequest(ctx, j.userEmail, j.userName, j.activationURL)
			case kindConfirmation:
				err = d.sender.SendRegistrationConfirmation(ctx, j.userEmail, j.userName)
			}
			if err != nil {
				metrics.NotificationsTotal.WithLabelValues(string(j.kind), "failed").Inc()
				d.log.Error().Err(err).
					Str("kind", string(j.kind)).
					Str("email", j.userEmail).
					Int("worker_id", id).
					Msg("notification send failed")
				continue
			}
			metrics.NotificationsTotal.WithLabelValues(string(j.kind), "sent").Inc()
		}
	}
}
