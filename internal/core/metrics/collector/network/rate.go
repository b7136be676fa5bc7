package network

import (
	"context"
	"errors"
	"fmt"

	"netspeed-monitor/internal/domain"
	"netspeed-monitor/internal/logger"
	"netspeed-monitor/internal/metrics"
)

func NewSampler(reader TotalsReader, log logger.Logger) *Sampler {
	return &Sampler{reader: reader, log: log}
}

// Prime records the baseline snapshot without producing a rate.
func (s *Sampler) Prime(ctx context.Context) error {
	current, err := s.reader.ReadTotals(ctx)
	if err != nil {
		return err
	}
	s.prev = current
	s.hasPrev = true
	return nil
}

// OnTick takes one sample. It never fails: anything that prevents a
// measurement is logged and reported as ok == false.
func (s *Sampler) OnTick(ctx context.Context) (m domain.RateMeasurement, ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			metrics.SampleTotal.WithLabelValues(metrics.ResultFailed).Inc()
			s.log.Error("network: sampling panicked", "panic", rec)
			m, ok = domain.RateMeasurement{}, false
		}
	}()

	m, err := s.sample(ctx)
	switch {
	case err == nil:
		metrics.SampleTotal.WithLabelValues(metrics.ResultOK).Inc()
		return m, true
	case errors.Is(err, domain.ErrNotPrimed):
		metrics.SampleTotal.WithLabelValues(metrics.ResultPriming).Inc()
		s.log.Debug("network: baseline recorded")
	case errors.Is(err, domain.ErrClockNonMonotonic):
		metrics.SampleTotal.WithLabelValues(metrics.ResultClockSkew).Inc()
		s.log.Warn("network: sample skipped", "error", err)
	case errors.Is(err, domain.ErrCounterReset):
		metrics.SampleTotal.WithLabelValues(metrics.ResultCounterReset).Inc()
		s.log.Info("network: sample discarded", "error", err)
	default:
		metrics.SampleTotal.WithLabelValues(metrics.ResultFailed).Inc()
		s.log.Error("network: sampling failed", "error", err)
	}

	return domain.RateMeasurement{}, false
}

// Baseline returns the snapshot the next tick will be measured against.
func (s *Sampler) Baseline() (domain.ByteCounterSnapshot, bool) {
	return s.prev, s.hasPrev
}

func (s *Sampler) sample(ctx context.Context) (domain.RateMeasurement, error) {
	current, err := s.reader.ReadTotals(ctx)
	if err != nil {
		return domain.RateMeasurement{}, err
	}

	if !s.hasPrev {
		s.prev = current
		s.hasPrev = true
		return domain.RateMeasurement{}, domain.ErrNotPrimed
	}

	elapsed := current.TakenAt.Sub(s.prev.TakenAt).Seconds()
	if elapsed <= 0 {
		return domain.RateMeasurement{}, fmt.Errorf("%w: dt=%.3fs", domain.ErrClockNonMonotonic, elapsed)
	}

	if current.ReceivedBytes < s.prev.ReceivedBytes || current.SentBytes < s.prev.SentBytes {
		prev := s.prev
		s.prev = current
		return domain.RateMeasurement{}, fmt.Errorf("%w: rx %d -> %d, tx %d -> %d",
			domain.ErrCounterReset,
			prev.ReceivedBytes, current.ReceivedBytes,
			prev.SentBytes, current.SentBytes,
		)
	}

	download := float64(current.ReceivedBytes-s.prev.ReceivedBytes) / elapsed
	upload := float64(current.SentBytes-s.prev.SentBytes) / elapsed

	s.prev = current

	return domain.RateMeasurement{
		DownloadBytesPerSecond: download,
		UploadBytesPerSecond:   upload,
		MeasuredAt:             current.TakenAt,
	}, nil
}
