package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/taskboard/tracker-api/internal/api/metrics"
	"github.com/taskboard/tracker-api/internal/core/domain"
	"github.com/taskboard/tracker-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	drainTimeout   = 5 * time.Second
)

// Dispatcher routes task activity to a fixed set of workers using consistent
// hashing on the task id, guaranteeing per-task ordering.
type Dispatcher struct {
	workers []chan domain.TaskActivity
	service ports.ActivityService
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.ActivityService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.TaskActivity, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.TaskActivity, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. When ctx is cancelled each worker
// drains its buffered records and exits; Wait blocks until they have.
func (d *Dispatcher) Start(ctx context.Context) {
	d.wg.Add(len(d.workers))
	for i, ch := range d.workers {
		go func() {
			defer d.wg.Done()
			d.runWorker(ctx, i, ch)
		}()
	}
}

// Wait blocks until every worker has exited or ctx ends.
func (d *Dispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Publish sends a record to the worker responsible for its task. A full
// worker channel drops the record rather than block the request path.
func (d *Dispatcher) Publish(activity domain.TaskActivity) {
	idx := d.shardIndex(activity.TaskID)
	depth := metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(idx))
	depth.Inc()
	select {
	case d.workers[idx] <- activity:
	default:
		depth.Dec()
		metrics.ActivityErrorsTotal.Inc()
		d.log.Warn().
			Str("task_id", activity.TaskID).
			Str("action", string(activity.Action)).
			Int("worker_id", idx).
			Msg("activity queue full, record dropped")
	}
}

// shardIndex maps a task id deterministically to a worker index.
func (d *Dispatcher) shardIndex(taskID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(taskID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.TaskActivity) {
	depth := metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(id))
	// Records already dequeued finish even if shutdown starts mid-write.
	work := context.WithoutCancel(ctx)
	for {
		select {
		case <-ctx.Done():
			d.drain(id, ch, depth)
			return
		case activity := <-ch:
			depth.Dec()
			d.process(work, id, activity)
		}
	}
}

// drain persists what is still buffered in ch. Records left when
// drainTimeout expires are dropped and counted as errors.
func (d *Dispatcher) drain(id int, ch <-chan domain.TaskActivity, depth prometheus.Gauge) {
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()

	var dropped int
	for {
		select {
		case activity := <-ch:
			depth.Dec()
			if ctx.Err() != nil {
				dropped++
				metrics.ActivityErrorsTotal.Inc()
				continue
			}
			d.process(ctx, id, activity)
		default:
			if dropped > 0 {
				d.log.Warn().Int("worker_id", id).Int("dropped", dropped).Msg("activity drain timed out")
			}
			return
		}
	}
}

func (d *Dispatcher) process(ctx context.Context, id int, activity domain.TaskActivity) {
	start := time.Now()
	err := d.service.Process(ctx, activity)
	metrics.ActivityProcessingDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ActivityErrorsTotal.Inc()
		d.log.Error().Err(err).
			Str("task_id", activity.TaskID).
			Int("worker_id", id).
			Msg("activity processing failed")
		return
	}
	metrics.ActivityProcessedTotal.WithLabelValues(string(activity.Action)).Inc()
}
