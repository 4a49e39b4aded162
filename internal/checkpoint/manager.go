// Package checkpoint drives the daemon's configuration checkpoints:
// creation before an apply, destruction on success, rollback on
// failure, and the post-rollback settle wait.
package checkpoint

import (
	"fmt"

	"grimm.is/ifstate/internal/daemon"
	"grimm.is/ifstate/internal/logging"
	"grimm.is/ifstate/internal/metrics"
)

// DefaultTimeoutSeconds is the autodestroy window handed to the daemon
// when the caller does not choose one. If the process dies mid-apply
// the daemon rolls the checkpoint back on its own once this expires.
const DefaultTimeoutSeconds uint32 = 60

// Manager creates and resolves checkpoints through a daemon client.
type Manager struct {
	client daemon.Client
	log    *logging.Logger
}

// NewManager returns a Manager talking to the given daemon client.
func NewManager(client daemon.Client) *Manager {
	return &Manager{
		client: client,
		log:    logging.WithComponent("checkpoint"),
	}
}

// Create asks the daemon for a new checkpoint covering all devices.
// timeoutSeconds is the daemon-side autodestroy window; zero selects
// DefaultTimeoutSeconds.
func (m *Manager) Create(timeoutSeconds uint32) (string, error) {
	if timeoutSeconds == 0 {
		timeoutSeconds = DefaultTimeoutSeconds
	}
	handle, err := m.client.CheckpointCreate(timeoutSeconds)
	if err != nil {
		return "", daemon.NewError("checkpoint create", err)
	}
	metrics.Get().CheckpointsCreated.Inc()
	m.log.Debug("created checkpoint", "handle", handle, "timeout", timeoutSeconds)
	return handle, nil
}

// Destroy discards a checkpoint, committing whatever was applied under
// it. An empty handle destroys the daemon's most recent checkpoint.
func (m *Manager) Destroy(handle string) error {
	handle, err := m.resolve(handle)
	if err != nil {
		return err
	}
	if err := m.client.CheckpointDestroy(handle); err != nil {
		return daemon.NewError(fmt.Sprintf("checkpoint destroy %s", handle), err)
	}
	metrics.Get().CheckpointsDestroyed.Inc()
	m.log.Debug("destroyed checkpoint", "handle", handle)
	return nil
}

// Rollback asks the daemon to restore the state captured by a
// checkpoint. An empty handle rolls back the most recent checkpoint.
// The call returns when the daemon accepts the rollback; device state
// converges asynchronously (see Poller.WaitSettle).
func (m *Manager) Rollback(handle string) error {
	handle, err := m.resolve(handle)
	if err != nil {
		return err
	}
	if err := m.client.CheckpointRollback(handle); err != nil {
		return daemon.NewError(fmt.Sprintf("checkpoint rollback %s", handle), err)
	}
	metrics.Get().Rollbacks.Inc()
	m.log.Info("rolled back checkpoint", "handle", handle)
	return nil
}

// Extend pushes out a checkpoint's autodestroy deadline by
// addedSeconds. Used to keep a checkpoint alive through a slow verify.
func (m *Manager) Extend(handle string, addedSeconds uint32) error {
	if err := m.client.CheckpointExtend(handle, addedSeconds); err != nil {
		return daemon.NewError(fmt.Sprintf("checkpoint extend %s", handle), err)
	}
	return nil
}

// resolve maps an empty handle to the daemon's most recent checkpoint.
// The daemon lists checkpoints newest first.
func (m *Manager) resolve(handle string) (string, error) {
	if handle != "" {
		return handle, nil
	}
	handles, err := m.client.CheckpointList()
	if err != nil {
		return "", daemon.NewError("checkpoint list", err)
	}
	if len(handles) == 0 {
		return "", daemon.NewError("checkpoint resolve", daemon.ErrNotFound)
	}
	return handles[0], nil
}
