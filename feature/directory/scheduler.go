package directory

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Scheduler triggers an unattended sync pass at a fixed interval. Triggers
// are attempt-and-skip: a tick that finds a pass already in flight does
// nothing rather than queueing.
type Scheduler struct {
	syncer   *Syncer
	interval time.Duration
	log      *zap.Logger
}

// NewScheduler creates a scheduler over the given syncer.
func NewScheduler(syncer *Syncer, interval time.Duration, log *zap.Logger) *Scheduler {
	return &Scheduler{syncer: syncer, interval: interval, log: log}
}

// Start launches the ticker loop. It returns immediately; the loop stops
// when the context is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.log.Info("Directory sync scheduler started", zap.Duration("interval", s.interval))

		for {
			select {
			case <-ctx.Done():
				s.log.Info("Directory sync scheduler stopped")
				return
			case <-ticker.C:
				s.syncer.TryRun(context.WithoutCancel(ctx))
			}
		}
	}()
}
