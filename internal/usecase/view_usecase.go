package usecase

import (
	"context"
	"fmt"

	"marketplace_service/internal/domain"

	"github.com/sirupsen/logrus"
)

type ViewUseCase interface {
	RecordView(ctx context.Context) (int64, error)
}

type viewUseCase struct {
	counter domain.ViewCounter
	log     *logrus.Logger
}

func NewViewUseCase(counter domain.ViewCounter, logger *logrus.Logger) ViewUseCase {
	return &viewUseCase{
		counter: counter,
		log:     logger,
	}
}

// RecordView counts one page view and returns the new total.
func (uc *viewUseCase) RecordView(ctx context.Context) (int64, error) {
	count, err := uc.counter.IncrementAndGet(ctx)
	if err != nil {
		uc.log.Errorf("Use Case: View counter failed: %v", err)
		return 0, fmt.Errorf("could not record view: %w", err)
	}
	uc.log.Debugf("Use Case: View count is now %d", count)
	return count, nil
}
