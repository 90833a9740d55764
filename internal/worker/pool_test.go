package worker

import (
	"context"
	"errors"
	"sync"
	"testing"

	"contentgen/internal/models"
)

type memoryStore struct {
	mu      sync.Mutex
	entries []*models.UsageEntry
	block   chan struct{}
}

func (s *memoryStore) Record(ctx context.Context, e *models.UsageEntry) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
	return nil
}

func TestPool_WritesAllEntriesBeforeStop(t *testing.T) {
	store := &memoryStore{}
	p := NewPool(store, 3, 16)
	p.Start()

	for i := 0; i < 10; i++ {
		if err := p.Record(context.Background(), &models.UsageEntry{Kind: models.KindGenerate, TokensUsed: i}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	p.Stop()

	if len(store.entries) != 10 {
		t.Errorf("Expected 10 entries written, got %d", len(store.entries))
	}
}

func TestPool_QueueFull(t *testing.T) {
	store := &memoryStore{block: make(chan struct{})}
	p := NewPool(store, 1, 1)
	p.Start()

	// One entry may be held by the worker, one sits in the queue.
	var full bool
	for i := 0; i < 5; i++ {
		if err := p.Record(context.Background(), &models.UsageEntry{}); errors.Is(err, ErrQueueFull) {
			full = true
			break
		}
	}
	if !full {
		t.Error("Expected ErrQueueFull once the queue is saturated")
	}

	close(store.block)
	p.Stop()
}

func TestPool_RecordAfterStop(t *testing.T) {
	p := NewPool(&memoryStore{}, 1, 1)
	p.Start()
	p.Stop()
	p.Stop()

	if err := p.Record(context.Background(), &models.UsageEntry{}); !errors.Is(err, ErrStopped) {
		t.Errorf("Expected ErrStopped, got %v", err)
	}
}
