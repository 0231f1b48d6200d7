package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/hrdesk/feedback-api/internal/api/metrics"
	"github.com/hrdesk/feedback-api/internal/core/ports"
)

const (
	defaultWorkers  = 8
	channelBuffer   = 256
	deliveryTimeout = 10 * time.Second
)

// Dispatcher routes notifications to a fixed set of workers using consistent
// hashing on the recipient, so one recipient's notifications are delivered
// in the order they were queued.
type Dispatcher struct {
	workers  []chan ports.Notification
	notifier ports.Notifier
	log      zerolog.Logger

	// mu orders Enqueue against shutdown: once stopping is set under the
	// write lock, no send can land after the workers' final drain.
	mu       sync.RWMutex
	stopping bool
	stop     chan struct{}
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, notifier ports.Notifier, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:  make([]chan ports.Notification, numWorkers),
		notifier: notifier,
		log:      log,
		stop:     make(chan struct{}),
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.Notification, channelBuffer)
	}
	return d
}

// Run starts all workers and blocks until ctx is cancelled and every worker
// has drained what was already queued.
func (d *Dispatcher) Run(ctx context.Context) error {
	deliverCtx := context.WithoutCancel(ctx)

	var wg sync.WaitGroup
	for i, ch := range d.workers {
		wg.Add(1)
		go func(id int, ch chan ports.Notification) {
			defer wg.Done()
			d.runWorker(deliverCtx, id, ch)
		}(i, ch)
	}

	<-ctx.Done()
	d.mu.Lock()
	d.stopping = true
	d.mu.Unlock()
	close(d.stop)

	wg.Wait()
	return nil
}

// Enqueue hands n to the worker responsible for its recipient without
// blocking. It reports false when the worker's buffer is full or the
// dispatcher is shutting down; the notification is then dropped.
func (d *Dispatcher) Enqueue(n ports.Notification) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopping {
		d.drop(n, "dispatcher stopping")
		return false
	}
	idx := d.shardIndex(n.Recipient)
	select {
	case d.workers[idx] <- n:
		metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
		return true
	default:
		d.drop(n, "queue full")
		return false
	}
}

func (d *Dispatcher) drop(n ports.Notification, reason string) {
	metrics.NotificationsTotal.WithLabelValues(n.Type, "dropped").Inc()
	d.log.Warn().
		Str("type", n.Type).
		Str("reference_id", n.ReferenceID).
		Str("reason", reason).
		Msg("notification dropped")
}

// shardIndex maps a recipient deterministically to a worker index.
func (d *Dispatcher) shardIndex(recipient string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(recipient))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.Notification) {
	depth := metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-d.stop:
			// Enqueue is closed by now; drain what was accepted before shutdown.
			for {
				select {
				case n := <-ch:
					depth.Set(float64(len(ch)))
					d.deliver(ctx, id, n)
				default:
					return
				}
			}
		case n := <-ch:
			depth.Set(float64(len(ch)))
			d.deliver(ctx, id, n)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, workerID int, n ports.Notification) {
	ctx, cancel := context.WithTimeout(ctx, deliveryTimeout)
	defer cancel()

	start := time.Now()
	err := d.notifier.Notify(ctx, n)
	metrics.NotificationDeliveryDuration.WithLabelValues(n.Type).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.NotificationsTotal.WithLabelValues(n.Type, "failed").Inc()
		d.log.Error().Err(err).
			Str("type", n.Type).
			Str("reference_id", n.ReferenceID).
			Int("worker_id", workerID).
			Msg("notification delivery failed")
		return
	}
	metrics.NotificationsTotal.WithLabelValues(n.Type, "delivered").Inc()
}
