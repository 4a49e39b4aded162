package kernel

import (
	"fmt"
	"net"
	"strings"

	"github.com/vishvananda/netlink"
	"golang.org/x/sys/unix"

	"grimm.is/ifstate/internal/logging"
	"grimm.is/ifstate/internal/state"
)

// Reader assembles a NetworkState from kernel data.
type Reader struct {
	nl  Netlinker
	et  Ethtooler // may be nil; feature readback is then skipped
	log *logging.Logger
}

// NewReader builds a Reader. et may be nil when ethtool queries are
// unavailable (unsupported platform, insufficient privileges).
func NewReader(nl Netlinker, et Ethtooler) *Reader {
	return &Reader{
		nl:  nl,
		et:  et,
		log: logging.WithComponent("kernel"),
	}
}

// Read returns the network state currently in effect. Per-device
// queries that fail (device removed mid-walk, ethtool unsupported on a
// virtual device) are logged and skipped; only the top-level link
// listing is fatal.
func (r *Reader) Read() (*state.NetworkState, error) {
	links, err := r.nl.LinkList()
	if err != nil {
		return nil, fmt.Errorf("failed to list links: %w", err)
	}

	nameByIndex := make(map[int]string, len(links))
	for _, link := range links {
		attrs := link.Attrs()
		nameByIndex[attrs.Index] = attrs.Name
	}

	s := state.New()
	for _, link := range links {
		iface, err := r.readLink(link)
		if err != nil {
			r.log.Debug("skipping link that vanished during read",
				"link", link.Attrs().Name, "error", err)
			continue
		}
		iface.Controller = nameByIndex[link.Attrs().MasterIndex]
		s.Put(iface)
	}
	return s, nil
}

func (r *Reader) readLink(link netlink.Link) (*state.Interface, error) {
	attrs := link.Attrs()
	iface := &state.Interface{
		Name:  attrs.Name,
		Type:  linkType(link),
		State: linkState(attrs),
		MTU:   attrs.MTU,
		MAC:   strings.ToUpper(attrs.HardwareAddr.String()),
	}

	v4, dyn4, err := r.readFamily(link, unix.AF_INET)
	if err != nil {
		return nil, err
	}
	iface.IPv4 = &state.IPv4Config{
		Enabled:   len(v4) > 0,
		DHCP:      state.Bool(len(dyn4) > 0),
		Addresses: v4,
		Declared: state.NewFieldSet(
			state.FieldEnabled, state.FieldDHCP, state.FieldAddresses),
	}

	v6, dyn6, err := r.readFamily(link, unix.AF_INET6)
	if err != nil {
		return nil, err
	}
	cfg6 := &state.IPv6Config{
		Enabled:   len(v6) > 0,
		DHCP:      state.Bool(false),
		Autoconf:  state.Bool(false),
		Addresses: v6,
		Declared: state.NewFieldSet(
			state.FieldEnabled, state.FieldDHCP, state.FieldAutoconf, state.FieldAddresses),
	}
	for _, a := range dyn6 {
		// DHCPv6 leases are host routes; autoconf derives an on-link prefix.
		if a.PrefixLength == 128 {
			cfg6.DHCP = state.Bool(true)
		} else {
			cfg6.Autoconf = state.Bool(true)
		}
	}
	iface.IPv6 = cfg6

	iface.Ethtool = r.readEthtool(attrs.Name)
	return iface, nil
}

// readFamily lists one family's addresses on a link. dynamic holds the
// subset the kernel did not flag IFA_F_PERMANENT, meaning a lease or an
// autoconfigured prefix rather than an address someone configured.
// Link-local addresses are reported as the kernel holds them;
// comparison-time filtering is the verifier's job, not the reader's.
func (r *Reader) readFamily(link netlink.Link, family int) (addrs, dynamic []state.Address, err error) {
	list, err := r.nl.AddrList(link, family)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	addrs = make([]state.Address, 0, len(list))
	for _, a := range list {
		if a.IPNet == nil {
			continue
		}
		ones, _ := a.IPNet.Mask.Size()
		addr := state.Address{IP: a.IPNet.IP, PrefixLength: uint8(ones)}
		addrs = append(addrs, addr)
		if a.Flags&unix.IFA_F_PERMANENT == 0 && !addr.IsIPv6UnicastLinkLocal() {
			dynamic = append(dynamic, addr)
		}
	}
	state.SortAddresses(addrs)
	if len(addrs) == 0 {
		return nil, nil, nil
	}
	return addrs, dynamic, nil
}

// readEthtool queries offload features for a device, best effort.
func (r *Reader) readEthtool(name string) *state.EthtoolConfig {
	if r.et == nil {
		return nil
	}
	features, err := r.et.Features(name)
	if err != nil {
		r.log.Debug("ethtool feature query failed", "link", name, "error", err)
		return nil
	}
	if len(features) == 0 {
		return nil
	}
	feat := &state.EthtoolFeatureConfig{}
	set := func(dst **bool, key string) {
		if v, ok := features[key]; ok {
			*dst = state.Bool(v)
		}
	}
	set(&feat.RxChecksum, "rx-checksum")
	set(&feat.RxGro, "rx-gro")
	set(&feat.RxLro, "rx-lro")
	set(&feat.RxVlanHwParse, "rx-vlan-hw-parse")
	set(&feat.TxVlanHwInsert, "tx-vlan-hw-insert")
	set(&feat.RxNtupleFilter, "rx-ntuple-filter")
	set(&feat.RxHashing, "rx-hashing")
	set(&feat.TxScatterGather, "tx-scatter-gather")
	set(&feat.TxTCPSegmentation, "tx-tcp-segmentation")
	set(&feat.TxGenericSegmentation, "tx-generic-segmentation")
	set(&feat.HighDMA, "highdma")
	return &state.EthtoolConfig{Feature: feat}
}

func linkType(link netlink.Link) state.InterfaceType {
	switch link.Type() {
	case "bridge":
		return state.TypeBridge
	case "bond":
		return state.TypeBond
	case "vlan":
		return state.TypeVLAN
	case "veth":
		return state.TypeVeth
	case "dummy":
		return state.TypeDummy
	case "device":
		if link.Attrs().Flags&net.FlagLoopback != 0 {
			return state.TypeLoopback
		}
		return state.TypeEthernet
	default:
		return state.TypeUnknown
	}
}

func linkState(attrs *netlink.LinkAttrs) state.InterfaceState {
	if attrs.Flags&net.FlagUp != 0 {
		return state.StateUp
	}
	return state.StateDown
}
