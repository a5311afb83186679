package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/myapp/catalog-api/internal/core/domain"
	"github.com/myapp/catalog-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	writeTimeout   = 5 * time.Second
)

var (
	ErrQueueFull = errors.New("audit queue is full")
	ErrStopped   = errors.New("audit dispatcher is stopped")
)

// AuditDispatcher moves audit writes off the request path. Entries are routed
// to a fixed set of workers by resource and id, so entries for the same row
// reach the sink in the order they were recorded.
type AuditDispatcher struct {
	workers []chan domain.AuditEntry
	sink    ports.AuditRecorder
	log     zerolog.Logger

	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup
}

// NewAuditDispatcher creates an AuditDispatcher writing to sink.
// If numWorkers <= 0, defaultWorkers is used.
func NewAuditDispatcher(numWorkers int, sink ports.AuditRecorder, log zerolog.Logger) *AuditDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &AuditDispatcher{
		workers: make([]chan domain.AuditEntry, numWorkers),
		sink:    sink,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditEntry, channelBuffer)
	}
	return d
}

// Start launches the workers. They run until Stop drains the queues or ctx
// is cancelled.
func (d *AuditDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Record enqueues entry without blocking. The caller's context is not used
// for the write itself, since requests usually finish before it happens.
func (d *AuditDispatcher) Record(_ context.Context, entry domain.AuditEntry) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.stopped {
		return ErrStopped
	}
	select {
	case d.workers[d.shardIndex(entry)] <- entry:
		return nil
	default:
		return ErrQueueFull
	}
}

// Stop rejects new entries, lets the workers flush what is queued and waits
// for them to exit.
func (d *AuditDispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	for _, ch := range d.workers {
		close(ch)
	}
	d.mu.Unlock()
	d.wg.Wait()
}

func (d *AuditDispatcher) shardIndex(entry domain.AuditEntry) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(entry.Resource))
	_, _ = h.Write([]byte(strconv.FormatInt(entry.ResourceID, 10)))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *AuditDispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEntry) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case entry, ok := <-ch:
			if !ok {
				return
			}
			d.write(ctx, id, entry)
		}
	}
}

func (d *AuditDispatcher) write(ctx context.Context, worker int, entry domain.AuditEntry) {
	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
	defer cancel()
	if err := d.sink.Record(wctx, entry); err != nil {
		d.log.Error().Err(err).
			Str("resource", entry.Resource).
			Str("action", string(entry.Action)).
			Int64("resource_id", entry.ResourceID).
			Int("worker_id", worker).
			Msg("audit write failed")
	}
}
