package network

import (
	"strings"

	"netspeed-monitor/pkg"
)

var virtualKinds = map[string]bool{
	"tuntap":    true,
	"tun":       true,
	"tap":       true,
	"wireguard": true,
	"gre":       true,
	"gretap":    true,
	"ip6gre":    true,
	"ipip":      true,
	"ip6tnl":    true,
	"sit":       true,
	"vti":       true,
	"vti6":      true,
	"veth":      true,
	"bridge":    true,
	"dummy":     true,
	"vxlan":     true,
	"geneve":    true,
	"macvlan":   true,
	"macvtap":   true,
	"ipvlan":    true,
	"ifb":       true,
	"vrf":       true,
}

var virtualNames = []string{
	"virtual",
	"docker*", "veth*", "br-*", "virbr*", "vmnet*", "vboxnet*",
	"tun*", "tap*", "wg*", "utun*", "zt*", "tailscale*", "cni*", "flannel*",
}

// Filter decides which adapters count towards the totals. Exclude patterns
// follow pkg.ContainsAny: substring, or prefix with a trailing "*".
type Filter struct {
	exclude []string
}

func NewFilter(exclude []string) Filter {
	cleaned := make([]string, 0, len(exclude))
	for _, e := range exclude {
		if e = strings.TrimSpace(e); e != "" {
			cleaned = append(cleaned, e)
		}
	}
	return Filter{exclude: cleaned}
}

func (f Filter) Eligible(a Adapter) bool {
	if !a.Up || a.Loopback {
		return false
	}
	return !f.isVirtual(a)
}

func (f Filter) isVirtual(a Adapter) bool {
	if a.PointToPoint || virtualKinds[strings.ToLower(a.Kind)] {
		return true
	}

	if pkg.ContainsAny(a.Name, virtualNames) || pkg.ContainsAny(a.Description, []string{"virtual"}) {
		return true
	}

	return pkg.ContainsAny(a.Name, f.exclude) || pkg.ContainsAny(a.Description, f.exclude)
}
