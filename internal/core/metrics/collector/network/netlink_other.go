//go:build !linux

package network

import "errors"

func NewNetlinkSource() (Source, error) {
	return nil, errors.New("netlink adapter source is only available on linux")
}
