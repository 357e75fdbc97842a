package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/pawsreunite/pawsreunite-api/internal/api/metrics"
	"github.com/pawsreunite/pawsreunite-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	defaultBuffer  = 256
	drainTimeout   = 5 * time.Second
)

// Processor persists one queued notification.
type Processor interface {
	Process(ctx context.Context, in ports.NotificationInput) error
}

// Dispatcher routes notifications to a fixed set of workers using consistent
// hashing on the recipient, so each user's notifications are stored in the
// order they were enqueued.
type Dispatcher struct {
	workers   []chan ports.NotificationInput
	processor Processor
	log       zerolog.Logger

	done chan struct{}
	wg   sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers, each
// with a channel of buffer entries. Non-positive values use the defaults.
func NewDispatcher(numWorkers, buffer int, processor Processor, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	d := &Dispatcher{
		workers:   make([]chan ports.NotificationInput, numWorkers),
		processor: processor,
		log:       log,
		done:      make(chan struct{}),
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.NotificationInput, buffer)
	}
	return d
}

// Start launches all worker goroutines. When ctx is cancelled each worker
// stores what is left in its buffer and returns.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
	go func() {
		<-ctx.Done()
		close(d.done)
	}()
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue hands a notification to the worker responsible for its recipient.
// It blocks while that worker's channel is full and drops the notification
// once the dispatcher is stopped.
func (d *Dispatcher) Enqueue(n ports.NotificationInput) {
	select {
	case <-d.done:
		d.log.Warn().Str("user_id", n.UserID).Msg("dispatcher stopped, notification dropped")
		return
	default:
	}

	idx := d.shardIndex(n.UserID)
	select {
	case d.workers[idx] <- n:
		metrics.NotificationsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
	case <-d.done:
		d.log.Warn().Str("user_id", n.UserID).Msg("dispatcher stopped, notification dropped")
	}
}

// shardIndex maps a user id deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.NotificationInput) {
	defer d.wg.Done()
	depth := metrics.NotificationsQueueDepth.WithLabelValues(strconv.Itoa(id))

	for {
		select {
		case <-ctx.Done():
			d.drain(ctx, id, ch, depth)
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			depth.Dec()
			d.process(ctx, id, n)
		}
	}
}

// drain stores what is still buffered once the dispatcher is stopped. The
// parent context is already cancelled, so the stores run on a detached one.
func (d *Dispatcher) drain(parent context.Context, id int, ch <-chan ports.NotificationInput, depth prometheus.Gauge) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), drainTimeout)
	defer cancel()

	drained := 0
	for {
		select {
		case n, ok := <-ch:
			if !ok {
				return
			}
			depth.Dec()
			d.process(ctx, id, n)
			drained++
		default:
			if drained > 0 {
				d.log.Info().Int("worker_id", id).Int("drained", drained).Msg("queued notifications stored on shutdown")
			}
			return
		}
	}
}

func (d *Dispatcher) process(ctx context.Context, id int, n ports.NotificationInput) {
	start := time.Now()
	result := "ok"
	if err := d.processor.Process(ctx, n); err != nil {
		result = "error"
		d.log.Error().Err(err).
			Str("user_id", n.UserID).
			Str("post_id", n.PostID).
			Int("worker_id", id).
			Msg("notification processing failed")
	}
	metrics.NotificationsProcessedTotal.WithLabelValues(result).Inc()
	metrics.NotificationProcessingDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
}
