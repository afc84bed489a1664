package domain

import "context"

type ViewCounter interface {
	IncrementAndGet(ctx context.Context) (int64, error)
}
