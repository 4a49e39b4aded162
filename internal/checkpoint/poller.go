package checkpoint

import (
	"time"

	"grimm.is/ifstate/internal/clock"
	"grimm.is/ifstate/internal/daemon"
	"grimm.is/ifstate/internal/logging"
	"grimm.is/ifstate/internal/metrics"
)

// PollInterval is the pause between device-state queries while waiting
// for a rollback to settle.
const PollInterval = 500 * time.Millisecond

// Poller watches daemon device state after a rollback until every
// device has left its transient activation states.
type Poller struct {
	enum  *daemon.Enumerator
	clock clock.Clock
	log   *logging.Logger
}

// NewPoller builds a Poller over a daemon client. The clock is
// injected so tests can drive the wait loop without real delays.
func NewPoller(client daemon.Client, clk clock.Clock) *Poller {
	return &Poller{
		enum:  daemon.NewEnumerator(client),
		clock: clk,
		log:   logging.WithComponent("checkpoint"),
	}
}

// WaitSettle polls the daemon's devices until none of them is still
// converging after a rollback, or until timeoutSeconds elapses. A
// device counts as converging while it reports the new-activation
// state reason or sits in the ip-config or deactivating states.
//
// Returns daemon.ErrTimeout (wrapped) if devices are still settling
// when the deadline passes.
func (p *Poller) WaitSettle(timeoutSeconds uint32) error {
	deadline := time.Duration(timeoutSeconds) * time.Second
	start := p.clock.Now()
	for p.clock.Since(start) <= deadline {
		devs, err := p.enum.Devices()
		if err != nil {
			return daemon.NewError("rollback settle poll", err)
		}
		name, settling := findSettling(devs)
		if !settling {
			elapsed := p.clock.Since(start)
			metrics.Get().RollbackSettleTime.Observe(elapsed.Seconds())
			p.log.Debug("rollback settled", "elapsed", elapsed)
			return nil
		}
		p.log.Debug("waiting for device to settle", "device", name)
		p.clock.Sleep(PollInterval)
	}
	return daemon.NewError("rollback settle wait", daemon.ErrTimeout)
}

// findSettling reports the first device still in a transient rollback
// state, if any.
func findSettling(devs []*daemon.Device) (string, bool) {
	for _, dev := range devs {
		if dev.StateReason == daemon.ReasonNewActivation ||
			dev.State == daemon.DeviceStateIPConfig ||
			dev.State == daemon.DeviceStateDeactivating {
			return dev.Name, true
		}
	}
	return "", false
}
