package state

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v2"
)

const sampleDoc = `
interfaces:
- name: eth0
  type: ethernet
  state: up
  mtu: 1500
  ipv4:
    enabled: true
    dhcp: true
    auto-dns: false
  ipv6:
    enabled: true
    autoconf: true
- name: eth1
  type: ethernet
  ipv4:
    enabled: true
    address:
    - ip: 192.168.1.1
      prefix-length: 24
`

func TestUnmarshalNetworkState(t *testing.T) {
	var s NetworkState
	require.NoError(t, yaml.Unmarshal([]byte(sampleDoc), &s))

	eth0 := s.Get("eth0")
	require.NotNil(t, eth0)
	assert.Equal(t, TypeEthernet, eth0.Type)
	assert.Equal(t, StateUp, eth0.State)
	assert.Equal(t, 1500, eth0.MTU)

	require.NotNil(t, eth0.IPv4)
	assert.True(t, eth0.IPv4.Enabled)
	require.NotNil(t, eth0.IPv4.DHCP)
	assert.True(t, *eth0.IPv4.DHCP)
	require.NotNil(t, eth0.IPv4.AutoDNS)
	assert.False(t, *eth0.IPv4.AutoDNS)

	require.NotNil(t, eth0.IPv6)
	require.NotNil(t, eth0.IPv6.Autoconf)
	assert.True(t, *eth0.IPv6.Autoconf)

	eth1 := s.Get("eth1")
	require.NotNil(t, eth1)
	require.Len(t, eth1.IPv4.Addresses, 1)
	assert.Equal(t, "192.168.1.1/24", eth1.IPv4.Addresses[0].String())
}

func TestUnmarshalRecordsDeclaredFields(t *testing.T) {
	var s NetworkState
	require.NoError(t, yaml.Unmarshal([]byte(sampleDoc), &s))

	v4 := s.Get("eth0").IPv4
	assert.True(t, v4.Declared.Has(FieldEnabled))
	assert.True(t, v4.Declared.Has(FieldDHCP))
	assert.True(t, v4.Declared.Has(FieldAutoDNS))
	// Not mentioned in the document.
	assert.False(t, v4.Declared.Has(FieldAddresses))
	assert.False(t, v4.Declared.Has(FieldAutoGateway))

	v6 := s.Get("eth0").IPv6
	assert.True(t, v6.Declared.Has(FieldAutoconf))
	assert.False(t, v6.Declared.Has(FieldDHCP))

	eth1v4 := s.Get("eth1").IPv4
	assert.True(t, eth1v4.Declared.Has(FieldAddresses))
}

func TestUnmarshalEmptyAddressListIsDeclared(t *testing.T) {
	doc := `
interfaces:
- name: eth0
  ipv4:
    enabled: true
    address: []
`
	var s NetworkState
	require.NoError(t, yaml.Unmarshal([]byte(doc), &s))

	v4 := s.Get("eth0").IPv4
	assert.True(t, v4.Declared.Has(FieldAddresses))
	// Declared-but-empty must stay distinguishable from undeclared.
	require.NotNil(t, v4.Addresses)
	assert.Empty(t, v4.Addresses)
}

func TestUnmarshalNullInterfaceEntryRejected(t *testing.T) {
	doc := `
interfaces:
- name: eth0
- ~
`
	var s NetworkState
	err := yaml.Unmarshal([]byte(doc), &s)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestMarshalRoundTrip(t *testing.T) {
	var s NetworkState
	require.NoError(t, yaml.Unmarshal([]byte(sampleDoc), &s))

	out, err := yaml.Marshal(&s)
	require.NoError(t, err)

	var again NetworkState
	require.NoError(t, yaml.Unmarshal(out, &again))

	assert.Equal(t, s.Names(), again.Names())
	assert.Equal(t, s.Get("eth1").IPv4.Addresses, again.Get("eth1").IPv4.Addresses)
	require.NotNil(t, again.Get("eth0").IPv4.DHCP)
	assert.True(t, *again.Get("eth0").IPv4.DHCP)
}

func TestMarshalOmitsUnsetOptionals(t *testing.T) {
	s := New()
	s.Put(&Interface{
		Name: "eth0",
		IPv4: &IPv4Config{Enabled: true},
	})

	out, err := yaml.Marshal(s)
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "enabled: true")
	assert.NotContains(t, text, "dhcp")
	assert.NotContains(t, text, "auto-dns")
	assert.NotContains(t, text, "ipv6")
}

func TestMarshalSortedByName(t *testing.T) {
	s := New()
	s.Put(&Interface{Name: "eth1"})
	s.Put(&Interface{Name: "br0"})

	out, err := yaml.Marshal(s)
	require.NoError(t, err)

	text := string(out)
	assert.Less(t, strings.Index(text, "br0"), strings.Index(text, "eth1"))
}
