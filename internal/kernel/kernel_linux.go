//go:build linux
// +build linux

package kernel

import (
	"fmt"

	"github.com/safchain/ethtool"
	"github.com/vishvananda/netlink"
)

// RealNetlinker issues real netlink calls.
type RealNetlinker struct{}

// DefaultNetlinker is the default RealNetlinker instance.
var DefaultNetlinker Netlinker = &RealNetlinker{}

func (r *RealNetlinker) LinkList() ([]netlink.Link, error) {
	return netlink.LinkList()
}

func (r *RealNetlinker) LinkByName(name string) (netlink.Link, error) {
	return netlink.LinkByName(name)
}

func (r *RealNetlinker) AddrList(link netlink.Link, family int) ([]netlink.Addr, error) {
	return netlink.AddrList(link, family)
}

type realEthtool struct {
	handle *ethtool.Ethtool
}

// NewEthtool opens an ethtool socket for feature queries.
func NewEthtool() (Ethtooler, error) {
	handle, err := ethtool.NewEthtool()
	if err != nil {
		return nil, fmt.Errorf("failed to open ethtool socket: %w", err)
	}
	return &realEthtool{handle: handle}, nil
}

func (e *realEthtool) Features(iface string) (map[string]bool, error) {
	return e.handle.Features(iface)
}

// NewDefaultReader wires a Reader to the real kernel interfaces.
// Ethtool access is optional: without the capability to open the
// socket the reader still works, minus feature readback.
func NewDefaultReader() *Reader {
	et, _ := NewEthtool()
	return NewReader(DefaultNetlinker, et)
}
