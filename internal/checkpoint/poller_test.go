package checkpoint

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimm.is/ifstate/internal/clock"
	"grimm.is/ifstate/internal/daemon"
)

func settledDevice(name string) *daemon.Device {
	return &daemon.Device{
		Ref:   daemon.Ref(name),
		Name:  name,
		State: daemon.DeviceStateActivated,
	}
}

func TestPoller_WaitSettle_ImmediatelySettled(t *testing.T) {
	client := &daemon.MockClient{}
	client.On("DeviceList").Return([]daemon.Ref{"d1"}, nil)
	client.On("DeviceGet", daemon.Ref("d1")).Return(settledDevice("eth0"), nil)

	clk := clock.NewMockClock(time.Unix(1000, 0))
	p := NewPoller(client, clk)
	require.NoError(t, p.WaitSettle(5))
	assert.Empty(t, clk.Sleeps())
}

func TestPoller_WaitSettle_ConvergesAfterPolls(t *testing.T) {
	client := &daemon.MockClient{}
	client.On("DeviceList").Return([]daemon.Ref{"d1"}, nil)

	busy := &daemon.Device{
		Ref:         "d1",
		Name:        "eth0",
		State:       daemon.DeviceStateIPConfig,
		StateReason: daemon.ReasonNewActivation,
	}
	client.On("DeviceGet", daemon.Ref("d1")).Return(busy, nil).Twice()
	client.On("DeviceGet", daemon.Ref("d1")).Return(settledDevice("eth0"), nil)

	clk := clock.NewMockClock(time.Unix(1000, 0))
	p := NewPoller(client, clk)
	require.NoError(t, p.WaitSettle(5))

	// Two polls found the device still configuring, each followed by
	// one interval of sleep.
	assert.Equal(t, []time.Duration{PollInterval, PollInterval}, clk.Sleeps())
}

func TestPoller_WaitSettle_Timeout(t *testing.T) {
	client := &daemon.MockClient{}
	client.On("DeviceList").Return([]daemon.Ref{"d1"}, nil)
	client.On("DeviceGet", daemon.Ref("d1")).Return(&daemon.Device{
		Ref:   "d1",
		Name:  "eth0",
		State: daemon.DeviceStateDeactivating,
	}, nil)

	clk := clock.NewMockClock(time.Unix(1000, 0))
	p := NewPoller(client, clk)
	err := p.WaitSettle(2)
	require.Error(t, err)
	assert.ErrorIs(t, err, daemon.ErrTimeout)

	// 2s deadline at 500ms per poll: the loop runs while elapsed is
	// within the deadline, so the final poll lands exactly on it.
	assert.Len(t, clk.Sleeps(), 5)
}

func TestPoller_WaitSettle_ListFailure(t *testing.T) {
	client := &daemon.MockClient{}
	client.On("DeviceList").Return(nil, errors.New("daemon restarting"))

	clk := clock.NewMockClock(time.Unix(1000, 0))
	err := NewPoller(client, clk).WaitSettle(5)
	require.Error(t, err)
	var derr *daemon.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "rollback settle poll", derr.Op)
}
