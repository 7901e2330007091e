package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"sync"

	"github.com/rs/zerolog"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// ErrStopped is returned by Enqueue once the dispatcher's context is done.
var ErrStopped = errors.New("dispatcher stopped")

// Job is one unit of work. Jobs that share a Key run on the same worker, in
// the order they were enqueued.
type Job struct {
	Key string
	Run func(ctx context.Context) error
}

// Dispatcher routes jobs to a fixed set of workers by hashing their key.
type Dispatcher struct {
	workers []chan Job
	log     zerolog.Logger
	done    <-chan struct{}

	wg   sync.WaitGroup
	mu   sync.Mutex
	errs []error
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan Job, numWorkers),
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan Job, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled
// or when Drain closes their queues.
func (d *Dispatcher) Start(ctx context.Context) {
	d.done = ctx.Done()
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a job to the worker responsible for its key. It blocks once
// that worker's buffer is full, until the Start context is cancelled, and
// then reports ErrStopped. Enqueue must not be called after Drain.
func (d *Dispatcher) Enqueue(job Job) error {
	select {
	case <-d.done:
		return ErrStopped
	default:
	}
	select {
	case d.workers[d.shardIndex(job.Key)] <- job:
		return nil
	case <-d.done:
		return ErrStopped
	}
}

// Drain stops accepting work, waits for queued jobs to finish and returns
// every job error joined together.
func (d *Dispatcher) Drain() error {
	for _, ch := range d.workers {
		close(ch)
	}
	d.wg.Wait()

	d.mu.Lock()
	defer d.mu.Unlock()
	return errors.Join(d.errs...)
}

// shardIndex maps a key deterministically to a worker index.
func (d *Dispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan Job) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-ch:
			if !ok {
				return
			}
			if err := job.Run(ctx); err != nil {
				d.log.Warn().Err(err).
					Str("key", job.Key).
					Int("worker_id", id).
					Msg("job failed")
				d.mu.Lock()
				d.errs = append(d.errs, err)
				d.mu.Unlock()
			}
		}
	}
}
