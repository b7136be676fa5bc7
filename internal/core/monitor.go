package core

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"netspeed-monitor/internal/domain"
	"netspeed-monitor/internal/logger"
	"netspeed-monitor/internal/pkg"
)

type RateSampler interface {
	Prime(ctx context.Context) error
	OnTick(ctx context.Context) (domain.RateMeasurement, bool)
}

type MonitorOptions struct {
	Interval        time.Duration
	SmoothingWindow time.Duration
	QueueSize       int
}

// Monitor owns the sampling schedule and the presenter context. Create one at
// startup and hand it to whatever needs to start or stop it.
type Monitor struct {
	sampler    RateSampler
	scheduler  *Scheduler
	dispatcher *Dispatcher
	presenters []domain.Presenter
	log        logger.Logger

	downloadEMA *pkg.EMA
	uploadEMA   *pkg.EMA

	mu      sync.Mutex
	cancel  context.CancelFunc
	stopped chan struct{}
}

func NewMonitor(opts MonitorOptions, sampler RateSampler, clock clockwork.Clock, log logger.Logger, presenters ...domain.Presenter) *Monitor {
	if opts.Interval <= 0 {
		opts.Interval = time.Second
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = 8
	}

	m := &Monitor{
		sampler:     sampler,
		dispatcher:  NewDispatcher(opts.QueueSize, log),
		presenters:  presenters,
		log:         log,
		downloadEMA: pkg.NewEMA(opts.SmoothingWindow),
		uploadEMA:   pkg.NewEMA(opts.SmoothingWindow),
		stopped:     make(chan struct{}),
	}
	m.scheduler = NewScheduler(opts.Interval, clock, log, sampler.OnTick, m.deliver)

	return m
}

// Start primes the sampler and runs until ctx is done or Stop is called.
func (m *Monitor) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)

	m.mu.Lock()
	if m.cancel != nil {
		m.mu.Unlock()
		cancel()
		return errors.New("monitor already started")
	}
	m.cancel = cancel
	m.mu.Unlock()

	defer close(m.stopped)
	defer cancel()

	if err := m.sampler.Prime(ctx); err != nil {
		// The first tick primes instead.
		m.log.Warn("monitor: initial sample failed", "error", err)
	}

	m.log.Info("monitor: started", "presenters", len(m.presenters))

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return m.dispatcher.Run(gCtx)
	})
	g.Go(func() error {
		m.scheduler.Start(gCtx)
		return nil
	})

	err := g.Wait()
	m.log.Info("monitor: stopped")
	return err
}

// Stop ends the schedule and waits for Start to return.
func (m *Monitor) Stop() {
	m.mu.Lock()
	cancel := m.cancel
	m.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-m.stopped
}

// Dispatcher exposes the presenter context, e.g. for an interactive front end
// that needs to mutate presenter state itself.
func (m *Monitor) Dispatcher() *Dispatcher {
	return m.dispatcher
}

// deliver runs on the scheduler goroutine; presenters only see the reading
// on the dispatcher goroutine.
func (m *Monitor) deliver(rm domain.RateMeasurement) {
	r := domain.Reading{
		Download:               FormatRate(rm.DownloadBytesPerSecond),
		Upload:                 FormatRate(rm.UploadBytesPerSecond),
		DownloadBytesPerSecond: rm.DownloadBytesPerSecond,
		UploadBytesPerSecond:   rm.UploadBytesPerSecond,
		DownloadAvg:            m.downloadEMA.Update(rm.DownloadBytesPerSecond, rm.MeasuredAt),
		UploadAvg:              m.uploadEMA.Update(rm.UploadBytesPerSecond, rm.MeasuredAt),
		MeasuredAt:             rm.MeasuredAt,
	}

	m.dispatcher.Post(func() {
		for _, p := range m.presenters {
			p.Present(r)
		}
	})
}
