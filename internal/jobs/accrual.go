// Package jobs holds the background schedulers.
package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	portssvc "github.com/finwallet/wallet_ledger/internal/core/ports/services"
	"github.com/finwallet/wallet_ledger/internal/middleware"
)

// AccrualScheduler runs the referral accrual batch on a fixed interval.
type AccrualScheduler struct {
	referralService portssvc.ReferralSvcFacade
	interval        time.Duration
	logger          *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewAccrualScheduler constructs the accrual batch scheduler.
func NewAccrualScheduler(referral portssvc.ReferralSvcFacade, interval time.Duration, logger *slog.Logger) *AccrualScheduler {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &AccrualScheduler{
		referralService: referral,
		interval:        interval,
		logger:          logger,
	}
}

// Start launches the background loop.
func (s *AccrualScheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.loop(runCtx)
}

// Stop cancels the loop and waits for an in-flight batch to finish.
func (s *AccrualScheduler) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *AccrualScheduler) loop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("Accrual scheduler started", slog.Duration("interval", s.interval))

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Accrual scheduler stopped")
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *AccrualScheduler) runOnce(ctx context.Context) {
	batchLogger := s.logger.With(slog.String("job", "referral_accrual"))
	batchCtx := middleware.WithLogger(ctx, batchLogger)

	result, err := s.referralService.RunAccrualBatch(batchCtx)
	if err != nil {
		batchLogger.Error("Accrual batch failed", slog.String("error", err.Error()))
		return
	}
	batchLogger.Info("Accrual batch completed",
		slog.Int("processed", result.Processed),
		slog.Int("failed", result.Failed),
		slog.String("total_accrued", result.TotalAccrued),
		slog.Bool("aborted", result.Aborted),
	)
}
