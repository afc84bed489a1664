package repository

import (
	"strconv"
	"sync"
	"time"

	"marketplace_service/internal/domain"
)

// timestampIDs issues decimal millisecond timestamps, strictly increasing within the process.
type timestampIDs struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func newTimestampIDs() *timestampIDs {
	return &timestampIDs{now: time.Now}
}

func (g *timestampIDs) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return strconv.FormatInt(id, 10)
}

// Observe raises the floor so ids already in use are never issued again.
func (g *timestampIDs) Observe(products []domain.Product) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, p := range products {
		n, err := strconv.ParseInt(p.ID, 10, 64)
		if err != nil {
			continue
		}
		if n > g.last {
			g.last = n
		}
	}
}
