// Package daemon defines the contract with the network management
// daemon: the RPC client interface, the daemon-side value types, the
// error taxonomy, and best-effort enumeration over reference-based
// listings.
//
// The transport itself (D-Bus, gRPC, whatever the deployment uses) is
// provided by the embedding program; everything in this repository is
// written against the Client interface so it can be mocked in tests.
package daemon

// Ref is an opaque daemon-side object reference.
type Ref string

// Client is the RPC surface the configuration engine requires from the
// management daemon. Calls are synchronous and blocking; the daemon
// serializes access on its side.
//
// Checkpoint calls take and return bare handles. An empty handle is
// NOT resolved here; resolution against the daemon's checkpoint list
// is checkpoint.Manager's job.
type Client interface {
	Version() (string, error)

	CheckpointCreate(timeoutSeconds uint32) (string, error)
	CheckpointDestroy(handle string) error
	CheckpointRollback(handle string) error
	CheckpointList() ([]string, error)
	CheckpointExtend(handle string, addedSeconds uint32) error

	ConnectionList() ([]Ref, error)
	ConnectionGet(ref Ref) (*Connection, error)
	ConnectionAdd(conn *Connection, memoryOnly bool) error
	ConnectionUpdate(ref Ref, conn *Connection, memoryOnly bool) error
	ConnectionDelete(ref Ref) error
	ConnectionActivate(ref Ref) error
	ConnectionDeactivate(ref Ref) error
	ConnectionReapply(ref Ref, conn *Connection) error

	DeviceList() ([]Ref, error)
	DeviceGet(ref Ref) (*Device, error)
	DeviceDelete(ref Ref) error
	DeviceLldpNeighbors(ref Ref) ([]LldpNeighbor, error)

	ActiveConnectionList() ([]Ref, error)
	ActiveConnectionGet(ref Ref) (*ActiveConnection, error)

	DNSConfiguration() ([]DnsEntry, error)
	HostnameSet(name string) error
}
