// Package state models desired and current network configuration: the
// per-address-family IP configs with their merge and normalization
// rules, the per-interface records, and the whole-host NetworkState.
//
// A NetworkState is either a partial desired document or a fully resolved
// current snapshot; the same types serve both, with declared-field sets
// making partial updates unambiguous.
package state

import "sort"

// NetworkState maps interface names to their records.
type NetworkState struct {
	Interfaces map[string]*Interface
}

// New returns an empty NetworkState.
func New() *NetworkState {
	return &NetworkState{Interfaces: make(map[string]*Interface)}
}

// Get returns the named interface record, or nil.
func (s *NetworkState) Get(name string) *Interface {
	return s.Interfaces[name]
}

// Put inserts or replaces an interface record, keyed by its name.
func (s *NetworkState) Put(iface *Interface) {
	if s.Interfaces == nil {
		s.Interfaces = make(map[string]*Interface)
	}
	s.Interfaces[iface.Name] = iface
}

// Names returns the interface names in sorted order.
func (s *NetworkState) Names() []string {
	names := make([]string, 0, len(s.Interfaces))
	for name := range s.Interfaces {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a deep copy.
func (s *NetworkState) Clone() *NetworkState {
	out := New()
	for name, iface := range s.Interfaces {
		out.Interfaces[name] = iface.Clone()
	}
	return out
}

// Update merges the partial patch state into s. Only interfaces present
// in patch are touched; within each, family configs merge with
// declared-field semantics.
func (s *NetworkState) Update(patch *NetworkState) {
	for name, pIface := range patch.Interfaces {
		cur, ok := s.Interfaces[name]
		if !ok {
			s.Put(pIface.Clone())
			continue
		}
		cur.Update(pIface)
	}
}

// PreEditCleanup runs the pre-apply cleanup on every interface.
func (s *NetworkState) PreEditCleanup() {
	for _, iface := range s.Interfaces {
		iface.PreEditCleanup()
	}
}

// PreVerifyCleanup runs the pre-comparison cleanup on every interface.
func (s *NetworkState) PreVerifyCleanup() {
	for _, iface := range s.Interfaces {
		iface.PreVerifyCleanup()
	}
}

// RetainAddressesOnAutoToManual preserves dynamically assigned addresses
// when an interface family switches from automatic to manual mode
// without an explicit address list. Without this, the switch would
// silently mean "remove all addresses"; the user expectation is a
// lossless mode change.
//
// For each interface present in both states and each address family:
// when current is automatic with resolved addresses, and desired is
// enabled, not automatic, and declares no addresses, the current
// addresses are copied into the desired config.
func RetainAddressesOnAutoToManual(desired, current *NetworkState) {
	for name, dIface := range desired.Interfaces {
		cIface := current.Get(name)
		if cIface == nil {
			continue
		}
		if c4 := cIface.IPv4; c4 != nil && c4.IsAuto() && c4.Addresses != nil {
			if d4 := dIface.IPv4; d4 != nil && d4.Enabled && !d4.IsAuto() && d4.Addresses == nil {
				d4.Addresses = cloneAddrs(c4.Addresses)
				if d4.Declared == nil {
					d4.Declared = NewFieldSet()
				}
				d4.Declared.Add(FieldAddresses)
			}
		}
		if c6 := cIface.IPv6; c6 != nil && c6.IsAuto() && c6.Addresses != nil {
			if d6 := dIface.IPv6; d6 != nil && d6.Enabled && !d6.IsAuto() && d6.Addresses == nil {
				d6.Addresses = cloneAddrs(c6.Addresses)
				if d6.Declared == nil {
					d6.Declared = NewFieldSet()
				}
				d6.Declared.Add(FieldAddresses)
			}
		}
	}
}
