package core

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"

	"netspeed-monitor/internal/domain"
	"netspeed-monitor/internal/logger"
	"netspeed-monitor/internal/metrics"
)

// Scheduler runs sample then sink once per interval. Ticks run inline in the
// loop, so two ticks never overlap; ticks missed while one is running are dropped.
type Scheduler struct {
	interval time.Duration
	clock    clockwork.Clock
	log      logger.Logger
	sample   func(context.Context) (domain.RateMeasurement, bool)
	sink     func(domain.RateMeasurement)
}

func NewScheduler(
	interval time.Duration,
	clock clockwork.Clock,
	log logger.Logger,
	sample func(context.Context) (domain.RateMeasurement, bool),
	sink func(domain.RateMeasurement),
) *Scheduler {
	return &Scheduler{interval: interval, clock: clock, log: log, sample: sample, sink: sink}
}

// Start blocks until ctx is done. An in-flight tick always completes first.
func (s *Scheduler) Start(ctx context.Context) {
	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.Chan():
			s.tick(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	if s.sample == nil || s.sink == nil {
		return
	}

	defer func() {
		if rec := recover(); rec != nil {
			s.log.Error("scheduler: tick panicked", "panic", rec)
		}
	}()

	started := s.clock.Now()
	defer func() {
		metrics.TickDuration.Observe(s.clock.Since(started).Seconds())
	}()

	m, ok := s.sample(ctx)
	if !ok {
		return
	}
	s.sink(m)
}
