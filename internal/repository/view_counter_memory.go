package repository

import (
	"context"
	"sync"

	"marketplace_service/internal/domain"
)

type memoryViewCounter struct {
	mu    sync.Mutex
	count int64
}

// NewMemoryViewCounter starts at zero on every process start.
func NewMemoryViewCounter() domain.ViewCounter {
	return &memoryViewCounter{}
}

func (c *memoryViewCounter) IncrementAndGet(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.count++
	return c.count, nil
}
