// Package network reads cumulative byte counters from the OS network adapters.
package network

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonboulle/clockwork"

	"netspeed-monitor/internal/domain"
	"netspeed-monitor/internal/logger"
	"netspeed-monitor/internal/metrics"
)

func NewReader(src Source, filter Filter, clock clockwork.Clock, log logger.Logger) *Reader {
	return &Reader{
		src:    src,
		filter: filter,
		clock:  clock,
		log:    log,
	}
}

// ReadTotals sums rx/tx over eligible adapters. Only a failed enumeration is
// returned as an error; per-adapter failures count as zero.
func (r *Reader) ReadTotals(ctx context.Context) (domain.ByteCounterSnapshot, error) {
	adapters, err := r.src.Adapters(ctx)
	if err != nil {
		return domain.ByteCounterSnapshot{}, fmt.Errorf("enumerate adapters: %w", err)
	}

	var rxTotal uint64
	var txTotal uint64
	var counted int

	for _, a := range adapters {
		if !r.filter.Eligible(a) {
			continue
		}

		stats, err := r.adapterStats(a)
		if err != nil {
			var adapterErr *domain.TransientAdapterError
			if errors.As(err, &adapterErr) {
				metrics.AdapterStatErrorsTotal.WithLabelValues(adapterErr.Adapter).Inc()
			}
			r.log.Debug("network: adapter skipped", "adapter", a.Name, "error", err)
			continue
		}

		rxTotal += stats.RxBytes
		txTotal += stats.TxBytes
		counted++
	}

	metrics.EligibleAdapters.Set(float64(counted))

	return domain.ByteCounterSnapshot{
		ReceivedBytes: rxTotal,
		SentBytes:     txTotal,
		TakenAt:       r.clock.Now(),
	}, nil
}

func (r *Reader) adapterStats(a Adapter) (stats AdapterStats, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = &domain.TransientAdapterError{Adapter: a.Name, Err: fmt.Errorf("panic: %v", rec)}
		}
	}()

	if a.Stats == nil {
		return AdapterStats{}, &domain.TransientAdapterError{Adapter: a.Name, Err: errors.New("no statistics")}
	}

	stats, err = a.Stats()
	if err != nil {
		return AdapterStats{}, &domain.TransientAdapterError{Adapter: a.Name, Err: err}
	}
	return stats, nil
}
