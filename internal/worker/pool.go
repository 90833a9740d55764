// Package worker moves usage-log writes off the request path.
package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"contentgen/internal/models"
)

var ErrQueueFull = errors.New("usage queue full")

var ErrStopped = errors.New("usage pool stopped")

// Store is where queued usage entries end up.
type Store interface {
	Record(ctx context.Context, e *models.UsageEntry) error
}

// Pool buffers usage entries and writes them with a fixed set of goroutines.
// Record never blocks the caller; entries are dropped when the queue is full.
type Pool struct {
	store        Store
	queue        chan *models.UsageEntry
	workerCount  int
	writeTimeout time.Duration

	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup
}

func NewPool(store Store, workerCount, queueSize int) *Pool {
	if workerCount < 1 {
		workerCount = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	return &Pool{
		store:        store,
		queue:        make(chan *models.UsageEntry, queueSize),
		workerCount:  workerCount,
		writeTimeout: 5 * time.Second,
	}
}

func (p *Pool) Start() {
	for i := 0; i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	log.Info().Int("workers", p.workerCount).Msg("usage workers started")
}

// Stop closes the queue and waits for pending entries to be written.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.queue)
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *Pool) Record(ctx context.Context, e *models.UsageEntry) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return ErrStopped
	}

	select {
	case p.queue <- e:
		return nil
	default:
		return ErrQueueFull
	}
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	for e := range p.queue {
		ctx, cancel := context.WithTimeout(context.Background(), p.writeTimeout)
		if err := p.store.Record(ctx, e); err != nil {
			log.Error().Err(err).Int("worker", id).Str("kind", e.Kind).Msg("failed to write usage entry")
		}
		cancel()
	}
	log.Debug().Int("worker", id).Msg("usage worker shutting down")
}
