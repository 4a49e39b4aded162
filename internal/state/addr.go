package state

import (
	"bytes"
	"fmt"
	"net"
	"sort"
	"strconv"
	"strings"
)

// ErrInvalidArgument is wrapped by errors reporting malformed addresses,
// prefixes or references. Check with errors.Is.
var ErrInvalidArgument = fmt.Errorf("invalid argument")

// Address is an IP address with a prefix length.
type Address struct {
	IP           net.IP
	PrefixLength uint8
}

// ParseAddress parses "ip" or "ip/prefix-length". When the prefix is
// omitted it defaults to the full host prefix (32 for IPv4, 128 for IPv6).
func ParseAddress(s string) (Address, error) {
	ipPart := s
	prefixPart := ""
	if idx := strings.IndexByte(s, '/'); idx >= 0 {
		ipPart = s[:idx]
		prefixPart = s[idx+1:]
	}

	ip := net.ParseIP(ipPart)
	if ip == nil {
		return Address{}, fmt.Errorf("%w: invalid IP address %q", ErrInvalidArgument, ipPart)
	}

	var prefix uint8
	if prefixPart == "" {
		if ip.To4() != nil {
			prefix = 32
		} else {
			prefix = 128
		}
	} else {
		n, err := strconv.ParseUint(prefixPart, 10, 8)
		if err != nil {
			return Address{}, fmt.Errorf("%w: invalid prefix length in %q: %v", ErrInvalidArgument, s, err)
		}
		max := uint64(128)
		if ip.To4() != nil {
			max = 32
		}
		if n > max {
			return Address{}, fmt.Errorf("%w: prefix length %d out of range for %q", ErrInvalidArgument, n, s)
		}
		prefix = uint8(n)
	}

	return Address{IP: canonicalIP(ip), PrefixLength: prefix}, nil
}

// MustParseAddress is ParseAddress for static test fixtures; it panics on error.
func MustParseAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

// String renders the address as "ip/prefix-length".
func (a Address) String() string {
	return fmt.Sprintf("%s/%d", a.IP, a.PrefixLength)
}

// Equal reports whether two addresses have the same IP and prefix length.
func (a Address) Equal(b Address) bool {
	return a.PrefixLength == b.PrefixLength && a.IP.Equal(b.IP)
}

// Less imposes a total order: by IP bytes first, then by prefix length.
// The order itself is arbitrary; it only has to be total and stable so
// that sorted address lists compare as sets.
func (a Address) Less(b Address) bool {
	if c := bytes.Compare(canonicalIP(a.IP), canonicalIP(b.IP)); c != 0 {
		return c < 0
	}
	return a.PrefixLength < b.PrefixLength
}

// IsIPv6 reports whether the address is an IPv6 address.
func (a Address) IsIPv6() bool {
	return a.IP.To4() == nil
}

// IsIPv6UnicastLinkLocal reports whether the address is a kernel-assigned
// IPv6 unicast link-local address (fe80::/10). Such addresses are never
// user-configurable and are excluded from apply and verify address lists.
func (a Address) IsIPv6UnicastLinkLocal() bool {
	if !a.IsIPv6() || a.PrefixLength < 10 {
		return false
	}
	ip := a.IP.To16()
	// First 10 bits must be 1111111010, i.e. fe80::/10 covers fe80-febf.
	return ip[0] == 0xfe && ip[1]&0xc0 == 0x80
}

// SortAddresses sorts in place per the Address total order.
func SortAddresses(addrs []Address) {
	sort.SliceStable(addrs, func(i, j int) bool {
		return addrs[i].Less(addrs[j])
	})
}

// canonicalIP returns the 4-byte form for IPv4 addresses so that byte
// comparison treats 10.0.0.1 and ::ffff:10.0.0.1 representations uniformly.
func canonicalIP(ip net.IP) net.IP {
	if v4 := ip.To4(); v4 != nil {
		return v4
	}
	return ip
}

// MarshalYAML renders the address as a {ip, prefix-length} mapping,
// matching the document schema.
func (a Address) MarshalYAML() (interface{}, error) {
	return addressDoc{IP: a.IP.String(), PrefixLength: int(a.PrefixLength)}, nil
}

// UnmarshalYAML parses a {ip, prefix-length} mapping.
func (a *Address) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var doc addressDoc
	if err := unmarshal(&doc); err != nil {
		return err
	}
	ip := net.ParseIP(doc.IP)
	if ip == nil {
		return fmt.Errorf("%w: invalid IP address %q", ErrInvalidArgument, doc.IP)
	}
	if doc.PrefixLength < 0 || doc.PrefixLength > 128 {
		return fmt.Errorf("%w: prefix length %d out of range", ErrInvalidArgument, doc.PrefixLength)
	}
	a.IP = canonicalIP(ip)
	a.PrefixLength = uint8(doc.PrefixLength)
	return nil
}

type addressDoc struct {
	IP           string `yaml:"ip"`
	PrefixLength int    `yaml:"prefix-length"`
}
