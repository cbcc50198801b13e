package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/99minutos/job-board/internal/api/metrics"
	"github.com/99minutos/job-board/internal/core/domain"
	"github.com/99minutos/job-board/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher runs notification fan-outs on a fixed set of workers. Tasks are
// sharded by job id, so tasks for the same job are processed in order.
type Dispatcher struct {
	workers   []chan ports.NotificationTask
	processor ports.NotificationProcessor
	log       zerolog.Logger
	wg        sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, processor ports.NotificationProcessor, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:   make([]chan ports.NotificationTask, numWorkers),
		processor: processor,
		log:       log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.NotificationTask, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// NotifyJobCreated satisfies ports.JobNotifier. The request context is not
// carried over: delivery outlives the HTTP response.
func (d *Dispatcher) NotifyJobCreated(_ context.Context, job *domain.Job) {
	if job == nil {
		return
	}
	if !d.Enqueue(ports.NotificationTask{Job: *job}) {
		metrics.NotificationsDroppedTotal.Inc()
		d.log.Warn().Str("job_id", job.ID).Msg("notification queue full, task dropped")
	}
}

// Enqueue hands a task to the worker responsible for its job id without
// blocking. It reports false when that worker's buffer is full.
func (d *Dispatcher) Enqueue(task ports.NotificationTask) bool {
	idx := d.shardIndex(task.Job.ID)
	select {
	case d.workers[idx] <- task:
		metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
		return true
	default:
		return false
	}
}

// shardIndex maps a job id deterministically to a worker index.
func (d *Dispatcher) shardIndex(jobID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(jobID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.NotificationTask) {
	defer d.wg.Done()
	depth := metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(id))

	for {
		select {
		case <-ctx.Done():
			return
		case task, ok := <-ch:
			if !ok {
				return
			}
			depth.Set(float64(len(ch)))
			if err := d.processor.Process(ctx, task); err != nil {
				d.log.Error().Err(err).
					Str("job_id", task.Job.ID).
					Int("worker_id", id).
					Msg("job notification had failures")
			}
		}
	}
}
