package scheduler

import (
	"context"
	"sync"
	"time"

	subscriptionUsecases "boaz/internal/application/subscription/usecases"
	"boaz/internal/shared/logger"
)

// ClosureScheduler periodically closes delivered subscriptions whose
// validity window has elapsed and releases their housing units. The sweep
// is idempotent, so overlapping runs after a missed tick are harmless.
type ClosureScheduler struct {
	closeExpiredUC *subscriptionUsecases.CloseExpiredSubscriptionsUseCase
	logger         logger.Interface
	stopChan       chan struct{}
	stopOnce       sync.Once
	wg             sync.WaitGroup
	interval       time.Duration
}

// NewClosureScheduler builds a stopped scheduler; intervals under one hour
// collapse to the daily default.
func NewClosureScheduler(
	closeExpiredUC *subscriptionUsecases.CloseExpiredSubscriptionsUseCase,
	intervalHours int,
	logger logger.Interface,
) *ClosureScheduler {
	if intervalHours < 1 {
		intervalHours = 24
	}
	return &ClosureScheduler{
		closeExpiredUC: closeExpiredUC,
		logger:         logger,
		stopChan:       make(chan struct{}),
		interval:       time.Duration(intervalHours) * time.Hour,
	}
}

// Start starts the scheduler
func (s *ClosureScheduler) Start(ctx context.Context) {
	s.logger.Infow("starting closure scheduler", "interval", s.interval)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runLoop(ctx)
	}()
}

// Stop stops the scheduler gracefully
func (s *ClosureScheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Infow("stopping closure scheduler")
		close(s.stopChan)
		s.wg.Wait()
		s.logger.Infow("closure scheduler stopped")
	})
}

func (s *ClosureScheduler) runLoop(ctx context.Context) {
	// Run immediately on startup to clear any backlog
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Infow("closure scheduler stopped due to context cancellation")
			return
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *ClosureScheduler) sweep(ctx context.Context) {
	result, err := s.closeExpiredUC.Execute(ctx)
	if err != nil {
		s.logger.Errorw("closure sweep failed", "error", err)
		return
	}

	if result.Closed > 0 || result.Failed > 0 {
		s.logger.Infow("closure sweep completed",
			"closed", result.Closed, "freed_units", result.FreedUnits, "failed", result.Failed)
	} else {
		s.logger.Debugw("closure sweep completed, nothing to close")
	}
}
