package daemon

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumerator_Connections(t *testing.T) {
	client := &MockClient{}
	client.On("ConnectionList").Return([]Ref{"c1", "c2", "c3"}, nil)
	client.On("ConnectionGet", Ref("c1")).Return(&Connection{ID: "eth0", IfaceName: "eth0"}, nil)
	client.On("ConnectionGet", Ref("c2")).Return(nil, errors.New("no such object"))
	client.On("ConnectionGet", Ref("c3")).Return(&Connection{ID: "eth1", IfaceName: "eth1"}, nil)

	conns, err := NewEnumerator(client).Connections()
	require.NoError(t, err)

	// The connection that vanished between the list and the get is
	// dropped, not surfaced as an error.
	require.Len(t, conns, 2)
	assert.Equal(t, "eth0", conns[0].ID)
	assert.Equal(t, "eth1", conns[1].ID)
	client.AssertExpectations(t)
}

func TestEnumerator_Connections_ListFails(t *testing.T) {
	client := &MockClient{}
	client.On("ConnectionList").Return(nil, errors.New("daemon unreachable"))

	_, err := NewEnumerator(client).Connections()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list connections")
}

func TestEnumerator_Devices(t *testing.T) {
	client := &MockClient{}
	client.On("DeviceList").Return([]Ref{"d1", "d2"}, nil)
	client.On("DeviceGet", Ref("d1")).Return(&Device{Name: "eth0", State: DeviceStateActivated}, nil)
	client.On("DeviceGet", Ref("d2")).Return(nil, errors.New("no such object"))

	devs, err := NewEnumerator(client).Devices()
	require.NoError(t, err)
	require.Len(t, devs, 1)
	assert.Equal(t, "eth0", devs[0].Name)
}

func TestEnumerator_ActiveConnections(t *testing.T) {
	client := &MockClient{}
	client.On("ActiveConnectionList").Return([]Ref{"a1", "a2"}, nil)
	client.On("ActiveConnectionGet", Ref("a1")).Return(nil, errors.New("gone")).Once()
	client.On("ActiveConnectionGet", Ref("a2")).Return(&ActiveConnection{IfaceName: "eth0"}, nil)

	acs, err := NewEnumerator(client).ActiveConnections()
	require.NoError(t, err)
	require.Len(t, acs, 1)
	assert.Equal(t, "eth0", acs[0].IfaceName)
}

func TestEnumerator_LldpNeighbors(t *testing.T) {
	client := &MockClient{}
	client.On("DeviceList").Return([]Ref{"d1", "d2"}, nil)
	client.On("DeviceLldpNeighbors", Ref("d1")).Return([]LldpNeighbor{
		{SystemName: "sw1", PortID: "ge-0/0/1"},
	}, nil)
	client.On("DeviceLldpNeighbors", Ref("d2")).Return(nil, errors.New("device busy"))

	neighbors, err := NewEnumerator(client).LldpNeighbors()
	require.NoError(t, err)
	require.Len(t, neighbors, 1)
	assert.Equal(t, "sw1", neighbors[0].SystemName)
}

func TestEnumerator_DNSConfiguration_Error(t *testing.T) {
	client := &MockClient{}
	client.On("DNSConfiguration").Return(nil, errors.New("dbus timeout"))

	_, err := NewEnumerator(client).DNSConfiguration()
	require.Error(t, err)
	var derr *Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "dns configuration get", derr.Op)
}
