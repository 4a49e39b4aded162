package apply

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimm.is/ifstate/internal/state"
)

func staticV4(addrs ...string) *state.IPv4Config {
	cfg := &state.IPv4Config{
		Enabled:  true,
		DHCP:     state.Bool(false),
		Declared: state.NewFieldSet(state.FieldEnabled, state.FieldDHCP, state.FieldAddresses),
	}
	cfg.Addresses = []state.Address{}
	for _, a := range addrs {
		cfg.Addresses = append(cfg.Addresses, state.MustParseAddress(a))
	}
	return cfg
}

func TestVerify_Match(t *testing.T) {
	desired := state.New()
	desired.Put(&state.Interface{Name: "eth0", Type: state.TypeEthernet, IPv4: staticV4("10.0.0.5/24")})

	current := state.New()
	current.Put(&state.Interface{Name: "eth0", Type: state.TypeEthernet, IPv4: staticV4("10.0.0.5/24")})

	require.NoError(t, Verify(desired, current))
}

func TestVerify_AddressOrderIsIrrelevant(t *testing.T) {
	desired := state.New()
	desired.Put(&state.Interface{Name: "eth0", IPv4: staticV4("10.0.1.5/24", "10.0.0.5/24")})

	current := state.New()
	current.Put(&state.Interface{Name: "eth0", IPv4: staticV4("10.0.0.5/24", "10.0.1.5/24")})

	require.NoError(t, Verify(desired, current))
}

func TestVerify_AutoModeAddressesNotCompared(t *testing.T) {
	auto := func() *state.IPv4Config {
		return &state.IPv4Config{
			Enabled:  true,
			DHCP:     state.Bool(true),
			Declared: state.NewFieldSet(state.FieldEnabled, state.FieldDHCP),
		}
	}

	desired := state.New()
	desired.Put(&state.Interface{Name: "eth0", IPv4: auto()})

	// The daemon assigned an address meanwhile; that is not drift.
	cur := auto()
	cur.Addresses = []state.Address{state.MustParseAddress("192.0.2.10/24")}
	cur.Declared.Add(state.FieldAddresses)
	current := state.New()
	current.Put(&state.Interface{Name: "eth0", IPv4: cur})

	require.NoError(t, Verify(desired, current))
}

func TestVerify_DHCPInterfaceAgainstKernelState(t *testing.T) {
	desired := state.New()
	desired.Put(&state.Interface{Name: "eth0", Type: state.TypeEthernet, IPv4: &state.IPv4Config{
		Enabled:  true,
		DHCP:     state.Bool(true),
		Declared: state.NewFieldSet(state.FieldEnabled, state.FieldDHCP),
	}})

	// Shaped like a Reader.Read result after the lease landed: dhcp
	// inferred from address flags, the leased address still listed.
	current := state.New()
	current.Put(&state.Interface{Name: "eth0", Type: state.TypeEthernet, IPv4: &state.IPv4Config{
		Enabled:   true,
		DHCP:      state.Bool(true),
		Addresses: []state.Address{state.MustParseAddress("10.0.0.5/24")},
		Declared:  state.NewFieldSet(state.FieldEnabled, state.FieldDHCP, state.FieldAddresses),
	}})

	require.NoError(t, Verify(desired, current))
}

func TestVerify_LinkLocalNotCompared(t *testing.T) {
	v6 := func(addrs ...string) *state.IPv6Config {
		cfg := &state.IPv6Config{
			Enabled:   true,
			DHCP:      state.Bool(false),
			Autoconf:  state.Bool(false),
			Addresses: []state.Address{},
			Declared: state.NewFieldSet(state.FieldEnabled, state.FieldDHCP,
				state.FieldAutoconf, state.FieldAddresses),
		}
		for _, a := range addrs {
			cfg.Addresses = append(cfg.Addresses, state.MustParseAddress(a))
		}
		return cfg
	}

	desired := state.New()
	desired.Put(&state.Interface{Name: "eth0", IPv6: v6("2001:db8::1/64")})

	current := state.New()
	current.Put(&state.Interface{Name: "eth0", IPv6: v6("2001:db8::1/64", "fe80::1/64")})

	require.NoError(t, Verify(desired, current))
}

func TestVerify_DriftProducesDiff(t *testing.T) {
	desired := state.New()
	desired.Put(&state.Interface{Name: "eth0", IPv4: staticV4("10.0.0.5/24")})

	current := state.New()
	current.Put(&state.Interface{Name: "eth0", IPv4: staticV4("10.0.0.6/24")})

	err := Verify(desired, current)
	require.Error(t, err)
	var verr *VerificationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Diff, "--- desired")
	assert.Contains(t, verr.Diff, "+++ current")
	assert.Contains(t, verr.Diff, "10.0.0.5")
	assert.Contains(t, verr.Diff, "10.0.0.6")
}

func TestVerify_MissingInterfaceIsDrift(t *testing.T) {
	desired := state.New()
	desired.Put(&state.Interface{Name: "eth0", IPv4: staticV4("10.0.0.5/24")})

	err := Verify(desired, state.New())
	require.Error(t, err)
}

func TestVerify_ExtraCurrentInterfacesIgnored(t *testing.T) {
	desired := state.New()
	desired.Put(&state.Interface{Name: "eth0", IPv4: staticV4("10.0.0.5/24")})

	current := state.New()
	current.Put(&state.Interface{Name: "eth0", IPv4: staticV4("10.0.0.5/24")})
	current.Put(&state.Interface{Name: "eth1", IPv4: staticV4("10.9.0.1/24")})

	require.NoError(t, Verify(desired, current))
}
