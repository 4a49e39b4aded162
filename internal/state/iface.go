package state

import "strings"

// InterfaceType classifies an interface by kind.
type InterfaceType string

const (
	TypeEthernet InterfaceType = "ethernet"
	TypeLoopback InterfaceType = "loopback"
	TypeDummy    InterfaceType = "dummy"
	TypeBond     InterfaceType = "bond"
	TypeVLAN     InterfaceType = "vlan"
	TypeBridge   InterfaceType = "linux-bridge"
	TypeVeth     InterfaceType = "veth"
	TypeUnknown  InterfaceType = "unknown"
)

// InterfaceState is the desired or observed administrative state.
type InterfaceState string

const (
	StateUp      InterfaceState = "up"
	StateDown    InterfaceState = "down"
	StateAbsent  InterfaceState = "absent"
	StateIgnore  InterfaceState = "ignore"
	StateUnknown InterfaceState = "unknown"
)

// Interface is the per-interface desired or current record. IPv4 and
// IPv6 are optional: a nil family config means the document does not
// mention that family at all.
type Interface struct {
	Name        string
	Type        InterfaceType
	State       InterfaceState
	Description string
	MTU         int
	MAC         string
	Controller  string
	Ethtool     *EthtoolConfig
	IPv4        *IPv4Config
	IPv6        *IPv6Config
}

// Clone returns a deep copy.
func (i *Interface) Clone() *Interface {
	if i == nil {
		return nil
	}
	out := *i
	out.Ethtool = i.Ethtool.Clone()
	out.IPv4 = i.IPv4.Clone()
	out.IPv6 = i.IPv6.Clone()
	return &out
}

// IsAbsent reports whether the record asks for the interface's removal.
func (i *Interface) IsAbsent() bool {
	return i.State == StateAbsent
}

// PreEditCleanup runs the pre-apply cleanup on both family configs.
func (i *Interface) PreEditCleanup() {
	if i.IPv4 != nil {
		i.IPv4.PreEditCleanup()
	}
	if i.IPv6 != nil {
		i.IPv6.PreEditCleanup()
	}
}

// PreVerifyCleanup runs the pre-comparison cleanup on both family
// configs, canonicalizing a missing IPv6 config to disabled so the
// comparison is total, and uppercasing the MAC.
func (i *Interface) PreVerifyCleanup() {
	if i.IPv4 != nil {
		i.IPv4.PreVerifyCleanup()
	}
	if i.IPv6 == nil {
		i.IPv6 = &IPv6Config{Declared: NewFieldSet(FieldEnabled)}
	}
	i.IPv6.PreVerifyCleanup()
	i.MAC = strings.ToUpper(i.MAC)
}

// Update merges patch into i following declared-field (PATCH) semantics
// for the family configs and overwrite-if-set semantics for the base
// fields.
func (i *Interface) Update(patch *Interface) {
	if patch == nil {
		return
	}
	if patch.Type != "" {
		i.Type = patch.Type
	}
	if patch.State != "" {
		i.State = patch.State
	}
	if patch.Description != "" {
		i.Description = patch.Description
	}
	if patch.MTU != 0 {
		i.MTU = patch.MTU
	}
	if patch.MAC != "" {
		i.MAC = patch.MAC
	}
	if patch.Controller != "" {
		i.Controller = patch.Controller
	}
	if patch.Ethtool != nil {
		i.Ethtool = patch.Ethtool.Clone()
	}
	if patch.IPv4 != nil {
		if i.IPv4 == nil {
			i.IPv4 = &IPv4Config{Declared: NewFieldSet()}
		}
		i.IPv4.Update(patch.IPv4)
	}
	if patch.IPv6 != nil {
		if i.IPv6 == nil {
			i.IPv6 = &IPv6Config{Declared: NewFieldSet()}
		}
		i.IPv6.Update(patch.IPv6)
	}
}

// EthtoolConfig carries hardware offload and queue tuning knobs. The
// core treats it as opaque data: building daemon settings from it is a
// flat field copy, no per-field semantics live here.
type EthtoolConfig struct {
	Pause    *EthtoolPauseConfig    `yaml:"pause,omitempty"`
	Feature  *EthtoolFeatureConfig  `yaml:"feature,omitempty"`
	Coalesce *EthtoolCoalesceConfig `yaml:"coalesce,omitempty"`
	Ring     *EthtoolRingConfig     `yaml:"ring,omitempty"`
}

// Clone returns a deep copy.
func (e *EthtoolConfig) Clone() *EthtoolConfig {
	if e == nil {
		return nil
	}
	out := &EthtoolConfig{}
	if e.Pause != nil {
		p := *e.Pause
		out.Pause = &p
	}
	if e.Feature != nil {
		f := *e.Feature
		out.Feature = &f
	}
	if e.Coalesce != nil {
		c := *e.Coalesce
		out.Coalesce = &c
	}
	if e.Ring != nil {
		r := *e.Ring
		out.Ring = &r
	}
	return out
}

// EthtoolPauseConfig mirrors `ethtool -A`.
type EthtoolPauseConfig struct {
	RX      *bool `yaml:"rx,omitempty"`
	TX      *bool `yaml:"tx,omitempty"`
	Autoneg *bool `yaml:"autoneg,omitempty"`
}

// EthtoolFeatureConfig mirrors `ethtool -K`.
type EthtoolFeatureConfig struct {
	RxChecksum            *bool `yaml:"rx-checksum,omitempty"`
	RxGro                 *bool `yaml:"rx-gro,omitempty"`
	RxLro                 *bool `yaml:"rx-lro,omitempty"`
	RxVlanHwParse         *bool `yaml:"rx-vlan-hw-parse,omitempty"`
	TxVlanHwInsert        *bool `yaml:"tx-vlan-hw-insert,omitempty"`
	RxNtupleFilter        *bool `yaml:"rx-ntuple-filter,omitempty"`
	RxHashing             *bool `yaml:"rx-hashing,omitempty"`
	TxScatterGather       *bool `yaml:"tx-scatter-gather,omitempty"`
	TxTCPSegmentation     *bool `yaml:"tx-tcp-segmentation,omitempty"`
	TxGenericSegmentation *bool `yaml:"tx-generic-segmentation,omitempty"`
	HighDMA               *bool `yaml:"highdma,omitempty"`
}

// EthtoolCoalesceConfig mirrors `ethtool -C`.
type EthtoolCoalesceConfig struct {
	AdaptiveRx      *bool   `yaml:"adaptive-rx,omitempty"`
	AdaptiveTx      *bool   `yaml:"adaptive-tx,omitempty"`
	PktRateHigh     *uint32 `yaml:"pkt-rate-high,omitempty"`
	PktRateLow      *uint32 `yaml:"pkt-rate-low,omitempty"`
	RxFrames        *uint32 `yaml:"rx-frames,omitempty"`
	RxFramesHigh    *uint32 `yaml:"rx-frames-high,omitempty"`
	RxFramesLow     *uint32 `yaml:"rx-frames-low,omitempty"`
	RxFramesIrq     *uint32 `yaml:"rx-frames-irq,omitempty"`
	TxFrames        *uint32 `yaml:"tx-frames,omitempty"`
	TxFramesHigh    *uint32 `yaml:"tx-frames-high,omitempty"`
	TxFramesLow     *uint32 `yaml:"tx-frames-low,omitempty"`
	TxFramesIrq     *uint32 `yaml:"tx-frames-irq,omitempty"`
	RxUsecs         *uint32 `yaml:"rx-usecs,omitempty"`
	RxUsecsHigh     *uint32 `yaml:"rx-usecs-high,omitempty"`
	RxUsecsLow      *uint32 `yaml:"rx-usecs-low,omitempty"`
	RxUsecsIrq      *uint32 `yaml:"rx-usecs-irq,omitempty"`
	SampleInterval  *uint32 `yaml:"sample-interval,omitempty"`
	StatsBlockUsecs *uint32 `yaml:"stats-block-usecs,omitempty"`
}

// EthtoolRingConfig mirrors `ethtool -G`.
type EthtoolRingConfig struct {
	RX      *uint32 `yaml:"rx,omitempty"`
	RxJumbo *uint32 `yaml:"rx-jumbo,omitempty"`
	RxMini  *uint32 `yaml:"rx-mini,omitempty"`
	TX      *uint32 `yaml:"tx,omitempty"`
}
