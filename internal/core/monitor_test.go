package core

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"netspeed-monitor/internal/domain"
	"netspeed-monitor/internal/logger"
)

type stubSampler struct {
	mu       sync.Mutex
	primeErr error
	primed   int
	results  []domain.RateMeasurement
}

func (s *stubSampler) Prime(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.primed++
	return s.primeErr
}

func (s *stubSampler) OnTick(ctx context.Context) (domain.RateMeasurement, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.results) == 0 {
		return domain.RateMeasurement{}, false
	}
	m := s.results[0]
	s.results = s.results[1:]
	return m, true
}

func startMonitor(t *testing.T, m *Monitor, clock *clockwork.FakeClock) <-chan error {
	t.Helper()

	errCh := make(chan error, 1)
	go func() { errCh <- m.Start(context.Background()) }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, clock.BlockUntilContext(ctx, 1))

	t.Cleanup(m.Stop)
	return errCh
}

func TestCore_Monitor_DeliversFormattedReadingToPresenters(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	at := clock.Now().Add(time.Second)
	sampler := &stubSampler{results: []domain.RateMeasurement{
		{DownloadBytesPerSecond: 1_048_000, UploadBytesPerSecond: 0, MeasuredAt: at},
	}}

	store := NewSnapshotStore()
	got := make(chan domain.Reading, 1)
	m := NewMonitor(MonitorOptions{Interval: time.Second, SmoothingWindow: 5 * time.Second}, sampler, clock, logger.Discard(),
		store,
		domain.PresenterFunc(func(r domain.Reading) { got <- r }),
	)
	startMonitor(t, m, clock)

	clock.Advance(time.Second)

	var r domain.Reading
	select {
	case r = <-got:
	case <-time.After(2 * time.Second):
		t.Fatal("no reading delivered")
	}

	require.Equal(t, "1023 KB/s", r.Download)
	require.Equal(t, "0.0 B/s", r.Upload)
	require.Equal(t, 1_048_000.0, r.DownloadBytesPerSecond)
	require.Equal(t, 1_048_000.0, r.DownloadAvg)
	require.Equal(t, at, r.MeasuredAt)

	stored, ok := store.Get()
	require.True(t, ok)
	require.Equal(t, r, stored)

	sampler.mu.Lock()
	require.Equal(t, 1, sampler.primed)
	sampler.mu.Unlock()
}

func TestCore_Monitor_NoReadingWhenSamplerSkips(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	store := NewSnapshotStore()
	m := NewMonitor(MonitorOptions{}, &stubSampler{primeErr: errors.New("no adapters")}, clock, logger.Discard(), store)
	startMonitor(t, m, clock)

	clock.Advance(time.Second)

	// Drain the dispatcher so any delivery would have landed.
	require.NoError(t, m.Dispatcher().Invoke(context.Background(), func() {}))

	_, ok := store.Get()
	require.False(t, ok)
}

func TestCore_Monitor_StopEndsStart(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	m := NewMonitor(MonitorOptions{Interval: time.Second}, &stubSampler{}, clock, logger.Discard())
	errCh := startMonitor(t, m, clock)

	m.Stop()

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("monitor did not stop")
	}

	require.Error(t, m.Start(context.Background()))
}
