package apply

import (
	"errors"
	"fmt"

	"grimm.is/ifstate/internal/checkpoint"
	"grimm.is/ifstate/internal/daemon"
	"grimm.is/ifstate/internal/logging"
	"grimm.is/ifstate/internal/metrics"
	"grimm.is/ifstate/internal/state"
)

// StateReader reports the network state currently in effect. The apply
// flow uses it to refresh its view before post-apply verification.
type StateReader interface {
	Read() (*state.NetworkState, error)
}

// Options tune a single apply transaction.
type Options struct {
	// CheckpointTimeoutSeconds is the daemon-side autodestroy window;
	// zero selects checkpoint.DefaultTimeoutSeconds.
	CheckpointTimeoutSeconds uint32
	// MemoryOnly keeps the written profiles out of persistent storage.
	MemoryOnly bool
	// NoVerify skips the post-apply readback comparison.
	NoVerify bool
}

// Applier drives the checkpointed apply transaction: desired state in,
// connection profiles written and activated, verified, committed.
type Applier struct {
	client      daemon.Client
	enum        *daemon.Enumerator
	checkpoints *checkpoint.Manager
	reader      StateReader
	log         *logging.Logger
}

// NewApplier builds an Applier over a daemon client. reader may be nil
// when every call will pass Options.NoVerify.
func NewApplier(client daemon.Client, reader StateReader) *Applier {
	return &Applier{
		client:      client,
		enum:        daemon.NewEnumerator(client),
		checkpoints: checkpoint.NewManager(client),
		reader:      reader,
		log:         logging.WithComponent("apply"),
	}
}

// Apply transitions the host toward desired. current is the state in
// effect before the transaction (normally from the same StateReader).
//
// The transaction: propagate retained addresses, merge desired over
// current, run the pre-apply cleanup, open a checkpoint, write and
// activate one connection profile per desired interface, verify the
// result, destroy the checkpoint. Any failure after the checkpoint
// opens is returned as-is; the checkpoint is left active so the caller
// decides between Rollback and retry. Rollback with an empty handle
// resolves to this transaction's checkpoint as long as no newer one
// was created.
func (a *Applier) Apply(desired, current *state.NetworkState, opts Options) error {
	metrics.Get().AppliesTotal.Inc()

	desired = desired.Clone()
	state.RetainAddressesOnAutoToManual(desired, current)

	merged := current.Clone()
	merged.Update(desired)
	merged.PreEditCleanup()

	handle, err := a.checkpoints.Create(opts.CheckpointTimeoutSeconds)
	if err != nil {
		metrics.Get().ApplyFailures.WithLabelValues("checkpoint-create").Inc()
		return err
	}
	a.log.Info("apply transaction started",
		"checkpoint", handle, "interfaces", len(desired.Interfaces))

	if err := a.writeProfiles(desired, merged, opts); err != nil {
		metrics.Get().ApplyFailures.WithLabelValues("write").Inc()
		return err
	}

	if !opts.NoVerify {
		if err := a.verifyApplied(merged, desired); err != nil {
			metrics.Get().ApplyFailures.WithLabelValues("verify").Inc()
			return err
		}
	}

	if err := a.checkpoints.Destroy(handle); err != nil {
		metrics.Get().ApplyFailures.WithLabelValues("checkpoint-destroy").Inc()
		return err
	}
	a.log.Info("apply transaction committed", "checkpoint", handle)
	return nil
}

// writeProfiles stores and activates one connection profile per desired
// interface, deleting profiles for interfaces marked absent.
func (a *Applier) writeProfiles(desired, merged *state.NetworkState, opts Options) error {
	existing, err := a.enum.Connections()
	if err != nil {
		return err
	}
	byIface := make(map[string]*daemon.Connection, len(existing))
	for _, conn := range existing {
		byIface[conn.IfaceName] = conn
	}

	for _, name := range desired.Names() {
		prev := byIface[name]
		if desired.Get(name).IsAbsent() {
			if err := a.removeProfile(name, prev); err != nil {
				return err
			}
			continue
		}

		conn := BuildConnection(merged.Get(name), prev)
		if prev != nil {
			if err := a.client.ConnectionUpdate(prev.Ref, conn, opts.MemoryOnly); err != nil {
				return daemon.NewError(fmt.Sprintf("connection update %s", name), err)
			}
		} else {
			if err := a.client.ConnectionAdd(conn, opts.MemoryOnly); err != nil {
				return daemon.NewError(fmt.Sprintf("connection add %s", name), err)
			}
		}

		ref, err := a.resolveRef(conn)
		if err != nil {
			return err
		}
		if err := a.client.ConnectionActivate(ref); err != nil {
			return daemon.NewError(fmt.Sprintf("connection activate %s", name), err)
		}
		a.log.Debug("activated connection", "interface", name, "uuid", conn.UUID)
	}
	return nil
}

// removeProfile deactivates and deletes the profile behind an interface
// marked absent. Nothing stored for it is not an error.
func (a *Applier) removeProfile(name string, prev *daemon.Connection) error {
	if prev == nil {
		a.log.Debug("no profile to remove for absent interface", "interface", name)
		return nil
	}
	if err := a.client.ConnectionDeactivate(prev.Ref); err != nil {
		return daemon.NewError(fmt.Sprintf("connection deactivate %s", name), err)
	}
	if err := a.client.ConnectionDelete(prev.Ref); err != nil {
		return daemon.NewError(fmt.Sprintf("connection delete %s", name), err)
	}
	a.log.Info("removed connection for absent interface", "interface", name)
	return nil
}

// resolveRef finds the daemon reference for a profile just written.
// Updates keep their ref; a fresh add is located by UUID.
func (a *Applier) resolveRef(conn *daemon.Connection) (daemon.Ref, error) {
	if conn.Ref != "" {
		return conn.Ref, nil
	}
	stored, err := a.enum.Connections()
	if err != nil {
		return "", err
	}
	for _, c := range stored {
		if c.UUID == conn.UUID {
			return c.Ref, nil
		}
	}
	return "", daemon.NewError(
		fmt.Sprintf("connection lookup %s", conn.IfaceName), daemon.ErrNotFound)
}

// verifyApplied re-reads the host state and compares it against the
// merged desired state, restricted to the interfaces the desired
// document names.
func (a *Applier) verifyApplied(merged, desired *state.NetworkState) error {
	if a.reader == nil {
		return fmt.Errorf("verification requested but no state reader configured")
	}
	fresh, err := a.reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read back state for verification: %w", err)
	}

	want := state.New()
	for _, name := range desired.Names() {
		if desired.Get(name).IsAbsent() {
			continue
		}
		want.Put(merged.Get(name).Clone())
	}
	if err := Verify(want, fresh); err != nil {
		var verr *VerificationError
		if errors.As(err, &verr) {
			metrics.Get().VerifyFailures.Inc()
		}
		return err
	}
	return nil
}
