package network

import (
	"context"
	"errors"
	"slices"

	psnet "github.com/shirou/gopsutil/v4/net"
)

type gopsutilSource struct{}

// NewGopsutilSource enumerates interfaces through gopsutil. Counters are
// fetched once per enumeration and looked up per adapter.
func NewGopsutilSource() Source {
	return gopsutilSource{}
}

var errNoCounters = errors.New("no io counters for interface")

func (gopsutilSource) Adapters(ctx context.Context) ([]Adapter, error) {
	ifaces, err := psnet.InterfacesWithContext(ctx)
	if err != nil {
		return nil, err
	}

	counters, err := psnet.IOCountersWithContext(ctx, true)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]psnet.IOCountersStat, len(counters))
	for _, c := range counters {
		byName[c.Name] = c
	}

	adapters := make([]Adapter, 0, len(ifaces))
	for _, iface := range ifaces {
		c, ok := byName[iface.Name]
		adapters = append(adapters, Adapter{
			Name:         iface.Name,
			Up:           slices.Contains(iface.Flags, "up"),
			Loopback:     slices.Contains(iface.Flags, "loopback"),
			PointToPoint: slices.Contains(iface.Flags, "pointtopoint"),
			Stats: func() (AdapterStats, error) {
				if !ok {
					return AdapterStats{}, errNoCounters
				}
				return AdapterStats{RxBytes: c.BytesRecv, TxBytes: c.BytesSent}, nil
			},
		})
	}

	return adapters, nil
}
