// Package apply turns a desired network state into daemon connection
// profiles and drives the checkpointed apply transaction.
package apply

import (
	"github.com/google/uuid"

	"grimm.is/ifstate/internal/daemon"
	"grimm.is/ifstate/internal/state"
)

// IP method strings as the daemon understands them.
const (
	MethodAuto     = "auto"
	MethodManual   = "manual"
	MethodDisabled = "disabled"
)

// BuildConnection converts a desired interface into a daemon connection
// profile. existing, when non-nil, is the profile currently stored for
// the interface; its Ref and UUID are carried over so the daemon
// updates in place. A new profile gets a fresh UUID.
func BuildConnection(iface *state.Interface, existing *daemon.Connection) *daemon.Connection {
	conn := &daemon.Connection{
		ID:          iface.Name,
		UUID:        uuid.New().String(),
		Type:        string(iface.Type),
		IfaceName:   iface.Name,
		Controller:  iface.Controller,
		Autoconnect: true,
		MTU:         iface.MTU,
	}
	if existing != nil {
		conn.Ref = existing.Ref
		if existing.UUID != "" {
			conn.UUID = existing.UUID
		}
		if existing.ID != "" {
			conn.ID = existing.ID
		}
	}
	conn.IPv4 = buildIPv4Settings(iface.IPv4)
	conn.IPv6 = buildIPv6Settings(iface.IPv6)
	conn.Ethtool = buildEthtoolSettings(iface.Ethtool)
	return conn
}

func buildIPv4Settings(cfg *state.IPv4Config) *daemon.IPSettings {
	if cfg == nil {
		return nil
	}
	s := &daemon.IPSettings{Method: MethodDisabled}
	if !cfg.Enabled {
		return s
	}
	if cfg.IsAuto() {
		s.Method = MethodAuto
		s.AutoDNS = cfg.AutoDNS
		s.AutoGateway = cfg.AutoGateway
		s.AutoRoutes = cfg.AutoRoutes
		s.RouteTable = cfg.AutoRouteTableID
		return s
	}
	s.Method = MethodManual
	s.Addresses = addressStrings(cfg.Addresses)
	return s
}

func buildIPv6Settings(cfg *state.IPv6Config) *daemon.IPSettings {
	if cfg == nil {
		return nil
	}
	s := &daemon.IPSettings{Method: MethodDisabled}
	if !cfg.Enabled {
		return s
	}
	if cfg.IsAuto() {
		s.Method = MethodAuto
		s.AutoDNS = cfg.AutoDNS
		s.AutoGateway = cfg.AutoGateway
		s.AutoRoutes = cfg.AutoRoutes
		s.RouteTable = cfg.AutoRouteTableID
		return s
	}
	s.Method = MethodManual
	s.Addresses = addressStrings(cfg.Addresses)
	return s
}

func addressStrings(addrs []state.Address) []string {
	if len(addrs) == 0 {
		return nil
	}
	out := make([]string, len(addrs))
	for i, a := range addrs {
		out[i] = a.String()
	}
	return out
}

// buildEthtoolSettings flattens the grouped ethtool config into the
// daemon's single option bag. A plain field copy: option semantics are
// the daemon's business.
func buildEthtoolSettings(cfg *state.EthtoolConfig) *daemon.EthtoolSettings {
	if cfg == nil {
		return nil
	}
	s := &daemon.EthtoolSettings{}
	if p := cfg.Pause; p != nil {
		s.PauseRx = p.RX
		s.PauseTx = p.TX
		s.PauseAutoneg = p.Autoneg
	}
	if f := cfg.Feature; f != nil {
		s.FeatureRx = f.RxChecksum
		s.FeatureGro = f.RxGro
		s.FeatureLro = f.RxLro
		s.FeatureRxvlan = f.RxVlanHwParse
		s.FeatureTxvlan = f.TxVlanHwInsert
		s.FeatureNtuple = f.RxNtupleFilter
		s.FeatureRxhash = f.RxHashing
		s.FeatureSg = f.TxScatterGather
		s.FeatureTso = f.TxTCPSegmentation
		s.FeatureGso = f.TxGenericSegmentation
		s.FeatureHighDMA = f.HighDMA
	}
	if c := cfg.Coalesce; c != nil {
		s.CoalesceAdaptiveRx = c.AdaptiveRx
		s.CoalesceAdaptiveTx = c.AdaptiveTx
		s.CoalescePktRateHigh = c.PktRateHigh
		s.CoalescePktRateLow = c.PktRateLow
		s.CoalesceRxFrames = c.RxFrames
		s.CoalesceRxFramesHigh = c.RxFramesHigh
		s.CoalesceRxFramesLow = c.RxFramesLow
		s.CoalesceRxFramesIrq = c.RxFramesIrq
		s.CoalesceTxFrames = c.TxFrames
		s.CoalesceTxFramesHigh = c.TxFramesHigh
		s.CoalesceTxFramesLow = c.TxFramesLow
		s.CoalesceTxFramesIrq = c.TxFramesIrq
		s.CoalesceRxUsecs = c.RxUsecs
		s.CoalesceRxUsecsHigh = c.RxUsecsHigh
		s.CoalesceRxUsecsLow = c.RxUsecsLow
		s.CoalesceRxUsecsIrq = c.RxUsecsIrq
		s.CoalesceSampleInterval = c.SampleInterval
		s.CoalesceStatsBlockUsecs = c.StatsBlockUsecs
	}
	if r := cfg.Ring; r != nil {
		s.RingRx = r.RX
		s.RingRxJumbo = r.RxJumbo
		s.RingRxMini = r.RxMini
		s.RingTx = r.TX
	}
	return s
}
