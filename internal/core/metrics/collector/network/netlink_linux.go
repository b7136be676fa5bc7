package network

import (
	"context"
	"errors"
	"net"

	"github.com/vishvananda/netlink"
)

type netlinkSource struct{}

// NewNetlinkSource lists links over rtnetlink, which also reports the link
// kind used to spot tunnels and virtual devices.
func NewNetlinkSource() (Source, error) {
	return netlinkSource{}, nil
}

var errNoLinkStats = errors.New("link has no statistics")

func (netlinkSource) Adapters(ctx context.Context) ([]Adapter, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	links, err := netlink.LinkList()
	if err != nil {
		return nil, err
	}

	adapters := make([]Adapter, 0, len(links))
	for _, l := range links {
		attrs := l.Attrs()
		if attrs == nil {
			continue
		}

		stats := attrs.Statistics
		adapters = append(adapters, Adapter{
			Name:         attrs.Name,
			Description:  attrs.Alias,
			Kind:         l.Type(),
			Up:           linkUp(attrs),
			Loopback:     attrs.Flags&net.FlagLoopback != 0,
			PointToPoint: attrs.Flags&net.FlagPointToPoint != 0,
			Stats: func() (AdapterStats, error) {
				if stats == nil {
					return AdapterStats{}, errNoLinkStats
				}
				return AdapterStats{RxBytes: stats.RxBytes, TxBytes: stats.TxBytes}, nil
			},
		})
	}

	return adapters, nil
}

// Some drivers never report an operstate; fall back to the admin and carrier flags.
func linkUp(attrs *netlink.LinkAttrs) bool {
	switch attrs.OperState {
	case netlink.OperUp:
		return true
	case netlink.OperUnknown:
		return attrs.Flags&net.FlagUp != 0 && attrs.RawFlags&uint32(flagLowerUp) != 0
	default:
		return false
	}
}

// IFF_LOWER_UP from linux/if.h.
const flagLowerUp = 1 << 16
