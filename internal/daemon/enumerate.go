package daemon

import (
	"fmt"

	"grimm.is/ifstate/internal/logging"
	"grimm.is/ifstate/internal/metrics"
)

// Enumerator provides best-effort listings over the daemon's
// reference-based collections. The daemon hands out a list of object
// references and each reference is resolved individually; another
// process (or the daemon itself) may delete an object between the two
// steps. Such per-item races are logged and dropped, never propagated:
// a listing fails only when the top-level reference query fails.
type Enumerator struct {
	client Client
	log    *logging.Logger
}

// NewEnumerator wraps a daemon client.
func NewEnumerator(client Client) *Enumerator {
	return &Enumerator{
		client: client,
		log:    logging.WithComponent("daemon"),
	}
}

// Connections lists all stored connection profiles.
func (e *Enumerator) Connections() ([]*Connection, error) {
	refs, err := e.client.ConnectionList()
	if err != nil {
		return nil, fmt.Errorf("failed to list connections: %w", err)
	}
	conns := make([]*Connection, 0, len(refs))
	for _, ref := range refs {
		conn, err := e.client.ConnectionGet(ref)
		if err != nil {
			// Connection might have just been deleted.
			metrics.Get().EnumerationRaces.WithLabelValues("connection").Inc()
			e.log.Debug("skipping connection that vanished during listing",
				"ref", string(ref), "error", err)
			continue
		}
		conns = append(conns, conn)
	}
	return conns, nil
}

// Devices lists all daemon-managed devices.
func (e *Enumerator) Devices() ([]*Device, error) {
	refs, err := e.client.DeviceList()
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}
	devs := make([]*Device, 0, len(refs))
	for _, ref := range refs {
		dev, err := e.client.DeviceGet(ref)
		if err != nil {
			metrics.Get().EnumerationRaces.WithLabelValues("device").Inc()
			e.log.Debug("skipping device that vanished during listing",
				"ref", string(ref), "error", err)
			continue
		}
		devs = append(devs, dev)
	}
	return devs, nil
}

// ActiveConnections lists the connections currently applied to devices.
func (e *Enumerator) ActiveConnections() ([]*ActiveConnection, error) {
	refs, err := e.client.ActiveConnectionList()
	if err != nil {
		return nil, fmt.Errorf("failed to list active connections: %w", err)
	}
	acs := make([]*ActiveConnection, 0, len(refs))
	for _, ref := range refs {
		ac, err := e.client.ActiveConnectionGet(ref)
		if err != nil {
			metrics.Get().EnumerationRaces.WithLabelValues("active-connection").Inc()
			e.log.Debug("skipping active connection that vanished during listing",
				"ref", string(ref), "error", err)
			continue
		}
		acs = append(acs, ac)
	}
	return acs, nil
}

// LldpNeighbors collects LLDP neighbor records across all devices.
// Per-device failures are dropped like any other enumeration race.
func (e *Enumerator) LldpNeighbors() ([]LldpNeighbor, error) {
	refs, err := e.client.DeviceList()
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}
	var out []LldpNeighbor
	for _, ref := range refs {
		neighbors, err := e.client.DeviceLldpNeighbors(ref)
		if err != nil {
			e.log.Debug("skipping LLDP query for device",
				"ref", string(ref), "error", err)
			continue
		}
		out = append(out, neighbors...)
	}
	return out, nil
}

// DNSConfiguration returns the daemon's effective DNS entries.
func (e *Enumerator) DNSConfiguration() ([]DnsEntry, error) {
	entries, err := e.client.DNSConfiguration()
	if err != nil {
		return nil, NewError("dns configuration get", err)
	}
	return entries, nil
}
