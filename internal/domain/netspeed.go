// Package domain
package domain

import (
	"errors"
	"fmt"
	"time"
)

// ByteCounterSnapshot is a point-in-time reading of cumulative byte counters
// summed over every eligible adapter.
type ByteCounterSnapshot struct {
	ReceivedBytes uint64    `json:"received_bytes"`
	SentBytes     uint64    `json:"sent_bytes"`
	TakenAt       time.Time `json:"taken_at"`
}

type RateMeasurement struct {
	DownloadBytesPerSecond float64   `json:"download_bps"`
	UploadBytesPerSecond   float64   `json:"upload_bps"`
	MeasuredAt             time.Time `json:"measured_at"`
}

// Reading is what presenters receive: formatted text plus the numbers behind it.
type Reading struct {
	Download string `json:"download"`
	Upload   string `json:"upload"`

	DownloadBytesPerSecond float64 `json:"download_bps"`
	UploadBytesPerSecond   float64 `json:"upload_bps"`
	DownloadAvg            float64 `json:"download_avg_bps"`
	UploadAvg              float64 `json:"upload_avg_bps"`

	MeasuredAt time.Time `json:"measured_at"`
}

// Presenter is only ever called from the dispatcher goroutine.
type Presenter interface {
	Present(r Reading)
}

type PresenterFunc func(r Reading)

func (f PresenterFunc) Present(r Reading) { f(r) }

var (
	ErrNotPrimed         = errors.New("sampler has no baseline yet")
	ErrClockNonMonotonic = errors.New("sample time did not advance")
	ErrCounterReset      = errors.New("byte counters went backwards")
)

// TransientAdapterError means one adapter's statistics could not be read.
type TransientAdapterError struct {
	Adapter string
	Err     error
}

func (e *TransientAdapterError) Error() string {
	return fmt.Sprintf("adapter %s: stats unavailable: %v", e.Adapter, e.Err)
}

func (e *TransientAdapterError) Unwrap() error { return e.Err }
