package network

import (
	"context"

	"github.com/jonboulle/clockwork"

	"netspeed-monitor/internal/domain"
	"netspeed-monitor/internal/logger"
)

type AdapterStats struct {
	RxBytes uint64
	TxBytes uint64
}

// Adapter is one OS-visible interface. Stats is resolved lazily so that a
// single failing adapter does not spoil the enumeration.
type Adapter struct {
	Name         string
	Description  string
	Kind         string
	Up           bool
	Loopback     bool
	PointToPoint bool
	Stats        func() (AdapterStats, error)
}

type Source interface {
	Adapters(ctx context.Context) ([]Adapter, error)
}

type TotalsReader interface {
	ReadTotals(ctx context.Context) (domain.ByteCounterSnapshot, error)
}

type Reader struct {
	src    Source
	filter Filter
	clock  clockwork.Clock
	log    logger.Logger
}

type Sampler struct {
	reader TotalsReader
	log    logger.Logger

	prev    domain.ByteCounterSnapshot
	hasPrev bool
}
