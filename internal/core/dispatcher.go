package core

import (
	"context"
	"errors"

	"netspeed-monitor/internal/logger"
	"netspeed-monitor/internal/metrics"
)

var ErrDispatcherStopped = errors.New("dispatcher stopped")

// Dispatcher is the execution context that owns presenter state. Producers
// hand work over with Post or Invoke; only Run executes it.
type Dispatcher struct {
	queue chan func()
	done  chan struct{}
	log   logger.Logger
}

func NewDispatcher(size int, log logger.Logger) *Dispatcher {
	if size < 1 {
		size = 1
	}
	return &Dispatcher{
		queue: make(chan func(), size),
		done:  make(chan struct{}),
		log:   log,
	}
}

// Run executes posted work in order until ctx is done. It must be called once.
func (d *Dispatcher) Run(ctx context.Context) error {
	defer close(d.done)

	for {
		select {
		case fn := <-d.queue:
			d.exec(fn)
		case <-ctx.Done():
			return nil
		}
	}
}

// Post enqueues fn without waiting. It reports false when the queue is full
// and the work was dropped.
func (d *Dispatcher) Post(fn func()) bool {
	select {
	case <-d.done:
		return false
	default:
	}

	select {
	case d.queue <- fn:
		return true
	default:
		metrics.DispatchDroppedTotal.Inc()
		d.log.Warn("dispatcher: queue full, update dropped")
		return false
	}
}

// Invoke runs fn on the dispatcher and waits for it to finish.
func (d *Dispatcher) Invoke(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	wrapped := func() {
		defer close(finished)
		fn()
	}

	select {
	case d.queue <- wrapped:
	case <-d.done:
		return ErrDispatcherStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-finished:
		return nil
	case <-d.done:
		return ErrDispatcherStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) exec(fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			d.log.Error("dispatcher: work panicked", "panic", rec)
		}
	}()
	fn()
}
