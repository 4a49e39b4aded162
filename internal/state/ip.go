package state

import (
	"grimm.is/ifstate/internal/logging"
)

// Field names a family config field for declared-field tracking.
// A partial config only carries meaning for the fields its producer
// declared; everything else is "not mentioned", not "cleared".
type Field string

const (
	FieldEnabled          Field = "enabled"
	FieldDHCP             Field = "dhcp"
	FieldAutoconf         Field = "autoconf"
	FieldAddresses        Field = "addresses"
	FieldAutoDNS          Field = "auto-dns"
	FieldAutoGateway      Field = "auto-gateway"
	FieldAutoRoutes       Field = "auto-routes"
	FieldAutoRouteTableID Field = "auto-route-table-id"
)

// FieldSet records which fields a config value explicitly declared.
type FieldSet map[Field]struct{}

// NewFieldSet builds a set from the given fields.
func NewFieldSet(fields ...Field) FieldSet {
	s := make(FieldSet, len(fields))
	s.Add(fields...)
	return s
}

// Has reports whether f was declared.
func (s FieldSet) Has(f Field) bool {
	_, ok := s[f]
	return ok
}

// Add declares the given fields.
func (s FieldSet) Add(fields ...Field) {
	for _, f := range fields {
		s[f] = struct{}{}
	}
}

// Union adds every field declared in other.
func (s FieldSet) Union(other FieldSet) {
	for f := range other {
		s[f] = struct{}{}
	}
}

// Clone returns an independent copy.
func (s FieldSet) Clone() FieldSet {
	out := make(FieldSet, len(s))
	out.Union(s)
	return out
}

// Bool returns a pointer to v, for building optional fields in literals.
func Bool(v bool) *bool { return &v }

// Uint32 returns a pointer to v.
func Uint32(v uint32) *uint32 { return &v }

func isTrue(p *bool) bool { return p != nil && *p }

// IPv4Config holds the per-interface IPv4 settings.
// Optional fields are nil when not set; Declared records which fields
// the producer of this value actually specified.
type IPv4Config struct {
	Enabled          bool
	DHCP             *bool
	Addresses        []Address // nil means unset
	AutoDNS          *bool
	AutoGateway      *bool
	AutoRoutes       *bool
	AutoRouteTableID *uint32

	Declared FieldSet
}

// IsAuto reports whether addresses are assigned dynamically (DHCP).
func (c *IPv4Config) IsAuto() bool {
	return c.Enabled && isTrue(c.DHCP)
}

// Update copies every field declared in patch into c, unions the declared
// sets and re-establishes the config invariants. Fields patch does not
// declare are left untouched: this is PATCH, not PUT.
func (c *IPv4Config) Update(patch *IPv4Config) {
	if patch == nil {
		return
	}
	if patch.Declared.Has(FieldEnabled) {
		c.Enabled = patch.Enabled
	}
	if patch.Declared.Has(FieldDHCP) {
		c.DHCP = clonePtr(patch.DHCP)
	}
	if patch.Declared.Has(FieldAddresses) {
		c.Addresses = cloneAddrs(patch.Addresses)
	}
	if patch.Declared.Has(FieldAutoDNS) {
		c.AutoDNS = clonePtr(patch.AutoDNS)
	}
	if patch.Declared.Has(FieldAutoGateway) {
		c.AutoGateway = clonePtr(patch.AutoGateway)
	}
	if patch.Declared.Has(FieldAutoRoutes) {
		c.AutoRoutes = clonePtr(patch.AutoRoutes)
	}
	if patch.Declared.Has(FieldAutoRouteTableID) {
		c.AutoRouteTableID = clonePtr(patch.AutoRouteTableID)
	}
	if c.Declared == nil {
		c.Declared = NewFieldSet()
	}
	c.Declared.Union(patch.Declared)
	c.cleanup()
}

// cleanup enforces the config invariants:
//   - a disabled family carries no dhcp or addresses
//   - auto-* sub-options only exist in automatic mode
//
// Idempotent.
func (c *IPv4Config) cleanup() {
	if !c.Enabled {
		c.DHCP = nil
		c.Addresses = nil
	}
	if !isTrue(c.DHCP) {
		c.AutoDNS = nil
		c.AutoGateway = nil
		c.AutoRoutes = nil
		c.AutoRouteTableID = nil
	}
}

// Cleanup re-establishes the config invariants.
func (c *IPv4Config) Cleanup() { c.cleanup() }

// PreEditCleanup prepares a desired config for sending to the daemon.
// In automatic mode, unset auto-* sub-options default to true and any
// static addresses are dropped with a warning: the daemon assigns
// addresses in automatic mode, so a static list is meaningless there.
func (c *IPv4Config) PreEditCleanup() {
	if c.IsAuto() {
		if c.AutoDNS == nil {
			c.AutoDNS = Bool(true)
		}
		if c.AutoRoutes == nil {
			c.AutoRoutes = Bool(true)
		}
		if c.AutoGateway == nil {
			c.AutoGateway = Bool(true)
		}
		if len(c.Addresses) > 0 {
			logging.Warn("static addresses are ignored when dynamic IP is enabled",
				"addresses", addrStrings(c.Addresses))
			c.Addresses = nil
		}
	}
	c.cleanup()
}

// PreVerifyCleanup prepares a config for comparison against the live
// state. Daemon-assigned addresses are not compared in automatic mode,
// addresses are sorted so list equality is order-independent, and dhcp
// is canonicalized so nil never reaches the comparison.
func (c *IPv4Config) PreVerifyCleanup() {
	c.cleanup()
	if isTrue(c.DHCP) {
		c.Addresses = nil
	}
	SortAddresses(c.Addresses)
	if !isTrue(c.DHCP) {
		c.DHCP = Bool(false)
	}
}

// Clone returns a deep copy.
func (c *IPv4Config) Clone() *IPv4Config {
	if c == nil {
		return nil
	}
	out := &IPv4Config{
		Enabled:          c.Enabled,
		DHCP:             clonePtr(c.DHCP),
		Addresses:        cloneAddrs(c.Addresses),
		AutoDNS:          clonePtr(c.AutoDNS),
		AutoGateway:      clonePtr(c.AutoGateway),
		AutoRoutes:       clonePtr(c.AutoRoutes),
		AutoRouteTableID: clonePtr(c.AutoRouteTableID),
	}
	if c.Declared != nil {
		out.Declared = c.Declared.Clone()
	}
	return out
}

// IPv6Config holds the per-interface IPv6 settings. Unlike IPv4 it has
// two dynamic mechanisms: DHCPv6 and stateless autoconfiguration.
type IPv6Config struct {
	Enabled          bool
	DHCP             *bool
	Autoconf         *bool
	Addresses        []Address // nil means unset
	AutoDNS          *bool
	AutoGateway      *bool
	AutoRoutes       *bool
	AutoRouteTableID *uint32

	Declared FieldSet
}

// IsAuto reports whether addresses are assigned dynamically
// (DHCPv6 or stateless autoconf).
func (c *IPv6Config) IsAuto() bool {
	return c.Enabled && (isTrue(c.DHCP) || isTrue(c.Autoconf))
}

// Update copies every field declared in patch into c. See IPv4Config.Update.
func (c *IPv6Config) Update(patch *IPv6Config) {
	if patch == nil {
		return
	}
	if patch.Declared.Has(FieldEnabled) {
		c.Enabled = patch.Enabled
	}
	if patch.Declared.Has(FieldDHCP) {
		c.DHCP = clonePtr(patch.DHCP)
	}
	if patch.Declared.Has(FieldAutoconf) {
		c.Autoconf = clonePtr(patch.Autoconf)
	}
	if patch.Declared.Has(FieldAddresses) {
		c.Addresses = cloneAddrs(patch.Addresses)
	}
	if patch.Declared.Has(FieldAutoDNS) {
		c.AutoDNS = clonePtr(patch.AutoDNS)
	}
	if patch.Declared.Has(FieldAutoGateway) {
		c.AutoGateway = clonePtr(patch.AutoGateway)
	}
	if patch.Declared.Has(FieldAutoRoutes) {
		c.AutoRoutes = clonePtr(patch.AutoRoutes)
	}
	if patch.Declared.Has(FieldAutoRouteTableID) {
		c.AutoRouteTableID = clonePtr(patch.AutoRouteTableID)
	}
	if c.Declared == nil {
		c.Declared = NewFieldSet()
	}
	c.Declared.Union(patch.Declared)
	c.cleanup()
}

func (c *IPv6Config) cleanup() {
	if !c.Enabled {
		c.DHCP = nil
		c.Autoconf = nil
		c.Addresses = nil
	}
	if !c.IsAuto() {
		c.AutoDNS = nil
		c.AutoGateway = nil
		c.AutoRoutes = nil
		c.AutoRouteTableID = nil
	}
}

// Cleanup re-establishes the config invariants.
func (c *IPv6Config) Cleanup() { c.cleanup() }

// PreEditCleanup prepares a desired config for sending to the daemon.
// Link-local addresses are dropped unconditionally, with a warning per
// address: the kernel assigns them, they cannot be configured.
func (c *IPv6Config) PreEditCleanup() {
	if c.Addresses != nil {
		kept := c.Addresses[:0]
		for _, addr := range c.Addresses {
			if addr.IsIPv6UnicastLinkLocal() {
				logging.Warn("ignoring IPv6 link local address", "address", addr.String())
				continue
			}
			kept = append(kept, addr)
		}
		c.Addresses = kept
	}
	if c.IsAuto() {
		if c.AutoDNS == nil {
			c.AutoDNS = Bool(true)
		}
		if c.AutoRoutes == nil {
			c.AutoRoutes = Bool(true)
		}
		if c.AutoGateway == nil {
			c.AutoGateway = Bool(true)
		}
		if len(c.Addresses) > 0 {
			logging.Warn("static addresses are ignored when dynamic IP is enabled",
				"addresses", addrStrings(c.Addresses))
			c.Addresses = nil
		}
	}
	c.cleanup()
}

// PreVerifyCleanup prepares a config for comparison against the live
// state: automatic-mode addresses are not compared, link-local
// addresses are filtered, the rest sorted, and dhcp/autoconf are
// canonicalized so nil never reaches the comparison.
func (c *IPv6Config) PreVerifyCleanup() {
	c.cleanup()
	if c.IsAuto() {
		c.Addresses = nil
	}
	if c.Addresses != nil {
		kept := c.Addresses[:0]
		for _, addr := range c.Addresses {
			if !addr.IsIPv6UnicastLinkLocal() {
				kept = append(kept, addr)
			}
		}
		c.Addresses = kept
	}
	SortAddresses(c.Addresses)
	if !isTrue(c.DHCP) {
		c.DHCP = Bool(false)
	}
	if !isTrue(c.Autoconf) {
		c.Autoconf = Bool(false)
	}
}

// Clone returns a deep copy.
func (c *IPv6Config) Clone() *IPv6Config {
	if c == nil {
		return nil
	}
	out := &IPv6Config{
		Enabled:          c.Enabled,
		DHCP:             clonePtr(c.DHCP),
		Autoconf:         clonePtr(c.Autoconf),
		Addresses:        cloneAddrs(c.Addresses),
		AutoDNS:          clonePtr(c.AutoDNS),
		AutoGateway:      clonePtr(c.AutoGateway),
		AutoRoutes:       clonePtr(c.AutoRoutes),
		AutoRouteTableID: clonePtr(c.AutoRouteTableID),
	}
	if c.Declared != nil {
		out.Declared = c.Declared.Clone()
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneAddrs(addrs []Address) []Address {
	if addrs == nil {
		return nil
	}
	out := make([]Address, len(addrs))
	copy(out, addrs)
	return out
}

func addrStrings(addrs []Address) []string {
	out := make([]string, len(addrs))
	for i, a := range addrs {
		out[i] = a.String()
	}
	return out
}
