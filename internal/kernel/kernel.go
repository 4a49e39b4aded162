// Package kernel reads the current network state from the kernel via
// netlink. It is the source of the "current" side of a merge or
// verification; it never writes anything.
package kernel

import (
	"github.com/vishvananda/netlink"
)

// Netlinker abstracts the netlink calls the reader needs, so tests can
// mock them.
type Netlinker interface {
	LinkList() ([]netlink.Link, error)
	LinkByName(name string) (netlink.Link, error)
	AddrList(link netlink.Link, family int) ([]netlink.Addr, error)
}

// Ethtooler abstracts per-device ethtool feature queries.
type Ethtooler interface {
	Features(iface string) (map[string]bool, error)
}
