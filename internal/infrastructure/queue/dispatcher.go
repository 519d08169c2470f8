package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/placequest/explorer-api/internal/core/domain"
	"github.com/placequest/explorer-api/internal/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	// sendTimeout bounds a single delivery. Deliveries do not inherit the
	// worker's cancellation, so buffered events still go out at shutdown.
	sendTimeout = 5 * time.Second
)

// Sink delivers a single activity event to its final destination.
type Sink interface {
	Send(ctx context.Context, event domain.ActivityEvent) error
}

// Dispatcher routes activity events to a fixed set of workers using
// consistent hashing on the user ID, so one user's events reach the sink in
// the order they were published.
type Dispatcher struct {
	workers []chan domain.ActivityEvent
	sink    Sink
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sink Sink, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.ActivityEvent, numWorkers),
		sink:    sink,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.ActivityEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. When ctx is cancelled each worker
// delivers what is left in its buffer and stops; use Wait to block until they
// have returned.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has stopped.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Publish hands event to the worker responsible for its user. It never
// blocks: when the worker's buffer is full the event is dropped and logged.
func (d *Dispatcher) Publish(_ context.Context, event domain.ActivityEvent) {
	idx := d.shardIndex(event.UserID)
	select {
	case d.workers[idx] <- event:
		metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.ActivityEventsTotal.WithLabelValues(string(event.Type), "dropped").Inc()
		d.log.Warn().
			Str("activity_id", event.ID).
			Str("type", string(event.Type)).
			Int("worker_id", idx).
			Msg("activity queue full, event dropped")
	}
}

// shardIndex maps a user ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.ActivityEvent) {
	defer d.wg.Done()
	depth := metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(id))

	for {
		select {
		case <-ctx.Done():
			d.drain(ctx, id, ch)
			depth.Set(0)
			return
		case event := <-ch:
			depth.Set(float64(len(ch)))
			d.deliver(ctx, id, event)
		}
	}
}

// drain delivers what is still buffered once the worker has been stopped.
func (d *Dispatcher) drain(ctx context.Context, id int, ch <-chan domain.ActivityEvent) {
	if len(ch) == 0 {
		return
	}
	d.log.Info().Int("worker_id", id).Int("pending", len(ch)).Msg("draining activity queue")
	for {
		select {
		case event := <-ch:
			d.deliver(ctx, id, event)
		default:
			return
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, id int, event domain.ActivityEvent) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sendTimeout)
	defer cancel()

	if err := d.sink.Send(ctx, event); err != nil {
		metrics.ActivityEventsTotal.WithLabelValues(string(event.Type), "failed").Inc()
		d.log.Error().Err(err).
			Str("activity_id", event.ID).
			Str("user_id", event.UserID).
			Int("worker_id", id).
			Msg("activity delivery failed")
		return
	}
	metrics.ActivityEventsTotal.WithLabelValues(string(event.Type), "sent").Inc()
}
