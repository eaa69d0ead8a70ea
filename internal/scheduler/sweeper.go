package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Completer is the lifecycle operation driven by the sweeper
type Completer interface {
	CompletePastBookings(ctx context.Context) (int64, error)
}

// Sweeper completes elapsed bookings once on start and then on every tick.
type Sweeper struct {
	completer Completer
	interval  time.Duration
	timeout   time.Duration
	log       *zap.Logger

	mu sync.Mutex
}

func NewSweeper(completer Completer, interval, timeout time.Duration, log *zap.Logger) *Sweeper {
	return &Sweeper{
		completer: completer,
		interval:  interval,
		timeout:   timeout,
		log:       log.With(zap.String("scheduler", "sweeper")),
	}
}

// Run blocks until ctx is canceled. A failed sweep is logged and retried on the next tick.
func (s *Sweeper) Run(ctx context.Context) error {
	t := time.NewTicker(s.interval)
	defer t.Stop()

	s.log.Info("Sweeper started", zap.Duration("interval", s.interval))

	// kick immediately
	s.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			s.log.Info("Sweeper stopped")
			return ctx.Err()
		case <-t.C:
			s.tick(ctx)
		}
	}
}

func (s *Sweeper) tick(ctx context.Context) {
	if _, err := s.RunOnce(ctx); err != nil {
		s.log.Error("Sweep failed, retrying next tick", zap.Error(err))
	}
}

// RunOnce performs a single sweep under the run timeout. Concurrent calls are serialized.
func (s *Sweeper) RunOnce(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	started := time.Now()
	completed, err := s.completer.CompletePastBookings(ctx)
	if err != nil {
		return 0, err
	}

	s.log.Info("Sweep finished",
		zap.Int64("completed", completed),
		zap.Duration("took", time.Since(started)),
	)
	return completed, nil
}
