// Package metrics
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"netspeed-monitor/internal/domain"
)

const (
	ResultOK           = "ok"
	ResultPriming      = "priming"
	ResultClockSkew    = "clock_skew"
	ResultCounterReset = "counter_reset"
	ResultFailed       = "failed"
)

var (
	SampleTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "netspeed_sample_total",
		Help: "Total number of sampling ticks by outcome",
	}, []string{"result"})

	AdapterStatErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "netspeed_adapter_stat_errors_total",
		Help: "Total number of per-adapter statistics reads that failed",
	}, []string{"adapter"})

	EligibleAdapters = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "netspeed_eligible_adapters",
		Help: "Number of adapters counted in the last read",
	})

	TickDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "netspeed_tick_duration_seconds",
		Help:    "Duration of a sampling tick",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12), // ~0.5ms .. ~1s
	})

	DispatchDroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "netspeed_dispatch_dropped_total",
		Help: "Total number of readings dropped because the dispatcher queue was full",
	})

	DownloadBytesPerSecond = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "netspeed_download_bytes_per_second",
		Help: "Most recent download rate",
	})

	UploadBytesPerSecond = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "netspeed_upload_bytes_per_second",
		Help: "Most recent upload rate",
	})

	LastMeasurementTimestamp = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "netspeed_last_measurement_timestamp_seconds",
		Help: "Unix time of the most recent measurement",
	})
)

// Presenter mirrors readings into the rate gauges.
type Presenter struct{}

func (Presenter) Present(r domain.Reading) {
	DownloadBytesPerSecond.Set(r.DownloadBytesPerSecond)
	UploadBytesPerSecond.Set(r.UploadBytesPerSecond)
	LastMeasurementTimestamp.Set(float64(r.MeasuredAt.UnixNano()) / 1e9)
}
