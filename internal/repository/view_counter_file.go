package repository

import (
	"context"
	"fmt"
	"sync"

	"marketplace_service/internal/domain"

	"github.com/sirupsen/logrus"
)

type fileViewCounter struct {
	mu   sync.Mutex
	path string
	log  *logrus.Logger
}

// NewFileViewCounter keeps {"count":N} at path. The file is re-read on every increment,
// so edits made while the process runs are picked up.
func NewFileViewCounter(path string, logger *logrus.Logger) domain.ViewCounter {
	return &fileViewCounter{
		path: path,
		log:  logger,
	}
}

func (c *fileViewCounter) IncrementAndGet(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var current domain.ViewCount
	if _, err := readJSONFile(c.path, &current); err != nil {
		c.log.Errorf("Error reading %s, counting from zero: %v", c.path, err)
		current.Count = 0
	}
	if current.Count < 0 {
		c.log.Warnf("Negative view count %d in %s, counting from zero", current.Count, c.path)
		current.Count = 0
	}

	next := domain.ViewCount{Count: current.Count + 1}
	if err := writeJSONFile(c.path, next, false); err != nil {
		c.log.Errorf("Failed to persist view count: %v", err)
		return 0, fmt.Errorf("could not update view count: %w", err)
	}
	return next.Count, nil
}
