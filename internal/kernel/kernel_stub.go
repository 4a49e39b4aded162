//go:build !linux
// +build !linux

package kernel

import (
	"fmt"

	"github.com/vishvananda/netlink"
)

// RealNetlinker is a stub on non-Linux platforms.
type RealNetlinker struct{}

// DefaultNetlinker is the default RealNetlinker instance (stub).
var DefaultNetlinker Netlinker = &RealNetlinker{}

func (r *RealNetlinker) LinkList() ([]netlink.Link, error) {
	return nil, fmt.Errorf("netlink not supported on this platform")
}

func (r *RealNetlinker) LinkByName(name string) (netlink.Link, error) {
	return nil, fmt.Errorf("netlink not supported on this platform")
}

func (r *RealNetlinker) AddrList(link netlink.Link, family int) ([]netlink.Addr, error) {
	return nil, fmt.Errorf("netlink not supported on this platform")
}

// NewEthtool is unavailable off Linux.
func NewEthtool() (Ethtooler, error) {
	return nil, fmt.Errorf("ethtool not supported on this platform")
}

// NewDefaultReader wires a Reader to the stub interfaces; Read will
// fail at the link listing.
func NewDefaultReader() *Reader {
	return NewReader(DefaultNetlinker, nil)
}
