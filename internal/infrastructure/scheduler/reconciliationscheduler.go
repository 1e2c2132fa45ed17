package scheduler

import (
	"context"
	"sync"
	"time"

	subscriptionUsecases "github.com/munziralyafie/subscription-billing-api/internal/application/subscription/usecases"
	"github.com/munziralyafie/subscription-billing-api/internal/shared/goroutine"
	"github.com/munziralyafie/subscription-billing-api/internal/shared/logger"
)

// ReconciliationScheduler periodically sweeps subscriptions stuck in
// pending, re-checking them against the billing provider. Webhooks are
// the primary signal; this is the safety net for deliveries that never
// arrived.
type ReconciliationScheduler struct {
	reconcilePendingUC *subscriptionUsecases.ReconcilePendingUseCase
	logger             logger.Interface
	stopChan           chan struct{}
	stopOnce           sync.Once
	wg                 sync.WaitGroup
	interval           time.Duration
}

func NewReconciliationScheduler(
	reconcilePendingUC *subscriptionUsecases.ReconcilePendingUseCase,
	logger logger.Interface,
) *ReconciliationScheduler {
	return &ReconciliationScheduler{
		reconcilePendingUC: reconcilePendingUC,
		logger:             logger,
		stopChan:           make(chan struct{}),
		interval:           10 * time.Minute,
	}
}

// Start starts the scheduler.
func (s *ReconciliationScheduler) Start(ctx context.Context) {
	s.logger.Infow("starting reconciliation scheduler", "interval", s.interval)

	s.wg.Add(1)
	goroutine.SafeGo(s.logger, "reconciliation-sweep", func() {
		defer s.wg.Done()
		s.runLoop(ctx)
	})
}

// Stop stops the scheduler gracefully.
func (s *ReconciliationScheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
		s.logger.Infow("reconciliation scheduler stopped")
	})
}

func (s *ReconciliationScheduler) runLoop(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *ReconciliationScheduler) sweep(ctx context.Context) {
	startTime := time.Now()

	updated, err := s.reconcilePendingUC.Execute(ctx)
	if err != nil {
		s.logger.Errorw("pending reconciliation sweep failed",
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}

	if updated > 0 {
		s.logger.Infow("pending reconciliation sweep completed",
			"updated", updated,
			"duration", time.Since(startTime),
		)
	} else {
		s.logger.Debugw("pending reconciliation sweep found nothing to do",
			"duration", time.Since(startTime),
		)
	}
}
