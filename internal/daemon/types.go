package daemon

// DeviceState is the daemon's view of a device's activation state.
type DeviceState string

const (
	DeviceStateUnknown      DeviceState = "unknown"
	DeviceStateUnmanaged    DeviceState = "unmanaged"
	DeviceStateUnavailable  DeviceState = "unavailable"
	DeviceStateDisconnected DeviceState = "disconnected"
	DeviceStatePrepare      DeviceState = "prepare"
	DeviceStateConfig       DeviceState = "config"
	DeviceStateNeedAuth     DeviceState = "need-auth"
	DeviceStateIPConfig     DeviceState = "ip-config"
	DeviceStateIPCheck      DeviceState = "ip-check"
	DeviceStateSecondaries  DeviceState = "secondaries"
	DeviceStateActivated    DeviceState = "activated"
	DeviceStateDeactivating DeviceState = "deactivating"
	DeviceStateFailed       DeviceState = "failed"
)

// DeviceStateReason explains the last device state change.
type DeviceStateReason string

const (
	ReasonNone          DeviceStateReason = "none"
	ReasonNewActivation DeviceStateReason = "new-activation"
	ReasonUserRequested DeviceStateReason = "user-requested"
	ReasonCarrier       DeviceStateReason = "carrier"
	ReasonConfigFailed  DeviceStateReason = "config-failed"
)

// Device is a daemon-managed network device.
type Device struct {
	Ref         Ref
	Name        string
	Type        string
	State       DeviceState
	StateReason DeviceStateReason
	Managed     bool
}

// IPSettings is the per-family portion of a connection profile, in the
// daemon's flat representation.
type IPSettings struct {
	// Method is one of "auto", "manual", "disabled", "ignore".
	Method      string
	Addresses   []string // "ip/prefix-length"
	AutoDNS     *bool
	AutoGateway *bool
	AutoRoutes  *bool
	RouteTable  *uint32
}

// EthtoolSettings is the daemon's flat ethtool option bag. Option names
// mirror the daemon schema; the engine only copies values into them.
type EthtoolSettings struct {
	PauseRx      *bool
	PauseTx      *bool
	PauseAutoneg *bool

	FeatureRx      *bool
	FeatureGro     *bool
	FeatureLro     *bool
	FeatureRxvlan  *bool
	FeatureTxvlan  *bool
	FeatureNtuple  *bool
	FeatureRxhash  *bool
	FeatureSg      *bool
	FeatureTso     *bool
	FeatureGso     *bool
	FeatureHighDMA *bool

	CoalesceAdaptiveRx      *bool
	CoalesceAdaptiveTx      *bool
	CoalescePktRateHigh     *uint32
	CoalescePktRateLow      *uint32
	CoalesceRxFrames        *uint32
	CoalesceRxFramesHigh    *uint32
	CoalesceRxFramesLow     *uint32
	CoalesceRxFramesIrq     *uint32
	CoalesceTxFrames        *uint32
	CoalesceTxFramesHigh    *uint32
	CoalesceTxFramesLow     *uint32
	CoalesceTxFramesIrq     *uint32
	CoalesceRxUsecs         *uint32
	CoalesceRxUsecsHigh     *uint32
	CoalesceRxUsecsLow      *uint32
	CoalesceRxUsecsIrq      *uint32
	CoalesceSampleInterval  *uint32
	CoalesceStatsBlockUsecs *uint32

	RingRx      *uint32
	RingRxJumbo *uint32
	RingRxMini  *uint32
	RingTx      *uint32
}

// Connection is a daemon connection profile.
type Connection struct {
	Ref         Ref // empty until the daemon has stored the profile
	ID          string
	UUID        string
	Type        string
	IfaceName   string
	Controller  string
	Autoconnect bool
	MTU         int
	IPv4        *IPSettings
	IPv6        *IPSettings
	Ethtool     *EthtoolSettings
}

// ActiveConnection is a connection currently applied to a device.
type ActiveConnection struct {
	Ref       Ref
	UUID      string
	ID        string
	IfaceName string
	State     string
}

// DnsEntry is one entry of the daemon's effective DNS configuration.
// Read-only: the engine never reconciles DNS entries.
type DnsEntry struct {
	Interface   string
	Priority    int
	NameServers []string
	Domains     []string
}

// LldpNeighbor is a link-layer neighbor record discovered on a device.
// Read-only leaf data, no reconciliation.
type LldpNeighbor struct {
	ChassisID           string
	PortID              string
	SystemName          string
	SystemDesc          string
	ManagementAddresses []string
}
