package network

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"netspeed-monitor/internal/logger"
)

type staticSource struct {
	adapters []Adapter
	err      error
}

func (s staticSource) Adapters(ctx context.Context) ([]Adapter, error) {
	return s.adapters, s.err
}

func up(name string, rx, tx uint64) Adapter {
	return Adapter{
		Name: name,
		Up:   true,
		Stats: func() (AdapterStats, error) {
			return AdapterStats{RxBytes: rx, TxBytes: tx}, nil
		},
	}
}

func TestNetwork_Reader_SumsEligibleAdapters(t *testing.T) {
	t.Parallel()

	lo := up("lo", 1_000_000, 1_000_000)
	lo.Loopback = true
	down := up("eth1", 500, 500)
	down.Up = false

	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	r := NewReader(staticSource{adapters: []Adapter{
		up("eth0", 100, 10),
		up("wlan0", 200, 20),
		lo,
		down,
		up("docker0", 7_000, 7_000),
	}}, NewFilter(nil), clock, logger.Discard())

	s, err := r.ReadTotals(context.Background())
	require.NoError(t, err)
	require.Equal(t, uint64(300), s.ReceivedBytes)
	require.Equal(t, uint64(30), s.SentBytes)
	require.Equal(t, clock.Now(), s.TakenAt)
}

func TestNetwork_Reader_FailingAdapterCountsAsZero(t *testing.T) {
	t.Parallel()

	broken := up("eth1", 0, 0)
	broken.Stats = func() (AdapterStats, error) { return AdapterStats{}, errors.New("driver quirk") }

	panicky := up("eth3", 0, 0)
	panicky.Stats = func() (AdapterStats, error) { panic("nil deref in driver") }

	noStats := up("eth4", 0, 0)
	noStats.Stats = nil

	r := NewReader(staticSource{adapters: []Adapter{
		up("eth0", 1_000, 100),
		broken,
		up("eth2", 2_000, 200),
		panicky,
		noStats,
	}}, NewFilter(nil), clockwork.NewFakeClock(), logger.Discard())

	var s struct{ rx, tx uint64 }
	require.NotPanics(t, func() {
		snap, err := r.ReadTotals(context.Background())
		require.NoError(t, err)
		s.rx, s.tx = snap.ReceivedBytes, snap.SentBytes
	})
	require.Equal(t, uint64(3_000), s.rx)
	require.Equal(t, uint64(300), s.tx)
}

func TestNetwork_Reader_EnumerationFailureIsReturned(t *testing.T) {
	t.Parallel()

	r := NewReader(staticSource{err: errors.New("no permission")}, NewFilter(nil), clockwork.NewFakeClock(), logger.Discard())

	_, err := r.ReadTotals(context.Background())
	require.ErrorContains(t, err, "enumerate adapters")
}

func TestNetwork_Reader_NoAdaptersYieldsZeroTotals(t *testing.T) {
	t.Parallel()

	r := NewReader(staticSource{}, NewFilter(nil), clockwork.NewFakeClock(), logger.Discard())

	s, err := r.ReadTotals(context.Background())
	require.NoError(t, err)
	require.Zero(t, s.ReceivedBytes)
	require.Zero(t, s.SentBytes)
}
