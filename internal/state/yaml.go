package state

// YAML document mapping for the state schema. Family
// configs unmarshal through an intermediate doc struct plus a raw map
// so the declared-field set can be populated from the keys actually
// present, which is what makes PATCH-style merges possible later.

import "fmt"

type ipv4Doc struct {
	Enabled          bool      `yaml:"enabled"`
	DHCP             *bool     `yaml:"dhcp,omitempty"`
	Address          []Address `yaml:"address,omitempty"`
	AutoDNS          *bool     `yaml:"auto-dns,omitempty"`
	AutoGateway      *bool     `yaml:"auto-gateway,omitempty"`
	AutoRoutes       *bool     `yaml:"auto-routes,omitempty"`
	AutoRouteTableID *uint32   `yaml:"auto-route-table-id,omitempty"`
}

type ipv6Doc struct {
	Enabled          bool      `yaml:"enabled"`
	DHCP             *bool     `yaml:"dhcp,omitempty"`
	Autoconf         *bool     `yaml:"autoconf,omitempty"`
	Address          []Address `yaml:"address,omitempty"`
	AutoDNS          *bool     `yaml:"auto-dns,omitempty"`
	AutoGateway      *bool     `yaml:"auto-gateway,omitempty"`
	AutoRoutes       *bool     `yaml:"auto-routes,omitempty"`
	AutoRouteTableID *uint32   `yaml:"auto-route-table-id,omitempty"`
}

var yamlKeyToField = map[string]Field{
	"enabled":             FieldEnabled,
	"dhcp":                FieldDHCP,
	"autoconf":            FieldAutoconf,
	"address":             FieldAddresses,
	"auto-dns":            FieldAutoDNS,
	"auto-gateway":        FieldAutoGateway,
	"auto-routes":         FieldAutoRoutes,
	"auto-route-table-id": FieldAutoRouteTableID,
}

func declaredFromKeys(raw map[string]interface{}) FieldSet {
	declared := NewFieldSet()
	for key := range raw {
		if f, ok := yamlKeyToField[key]; ok {
			declared.Add(f)
		}
	}
	return declared
}

// MarshalYAML renders the config with kebab-case keys, omitting unset
// optional fields.
func (c *IPv4Config) MarshalYAML() (interface{}, error) {
	return ipv4Doc{
		Enabled:          c.Enabled,
		DHCP:             c.DHCP,
		Address:          c.Addresses,
		AutoDNS:          c.AutoDNS,
		AutoGateway:      c.AutoGateway,
		AutoRoutes:       c.AutoRoutes,
		AutoRouteTableID: c.AutoRouteTableID,
	}, nil
}

// UnmarshalYAML parses the config and records which keys the document
// actually declared.
func (c *IPv4Config) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var doc ipv4Doc
	if err := unmarshal(&doc); err != nil {
		return err
	}
	var raw map[string]interface{}
	if err := unmarshal(&raw); err != nil {
		return err
	}

	c.Enabled = doc.Enabled
	c.DHCP = doc.DHCP
	c.Addresses = doc.Address
	c.AutoDNS = doc.AutoDNS
	c.AutoGateway = doc.AutoGateway
	c.AutoRoutes = doc.AutoRoutes
	c.AutoRouteTableID = doc.AutoRouteTableID
	c.Declared = declaredFromKeys(raw)
	if c.Declared.Has(FieldAddresses) && c.Addresses == nil {
		c.Addresses = []Address{}
	}
	return nil
}

// MarshalYAML renders the config with kebab-case keys, omitting unset
// optional fields.
func (c *IPv6Config) MarshalYAML() (interface{}, error) {
	return ipv6Doc{
		Enabled:          c.Enabled,
		DHCP:             c.DHCP,
		Autoconf:         c.Autoconf,
		Address:          c.Addresses,
		AutoDNS:          c.AutoDNS,
		AutoGateway:      c.AutoGateway,
		AutoRoutes:       c.AutoRoutes,
		AutoRouteTableID: c.AutoRouteTableID,
	}, nil
}

// UnmarshalYAML parses the config and records which keys the document
// actually declared.
func (c *IPv6Config) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var doc ipv6Doc
	if err := unmarshal(&doc); err != nil {
		return err
	}
	var raw map[string]interface{}
	if err := unmarshal(&raw); err != nil {
		return err
	}

	c.Enabled = doc.Enabled
	c.DHCP = doc.DHCP
	c.Autoconf = doc.Autoconf
	c.Addresses = doc.Address
	c.AutoDNS = doc.AutoDNS
	c.AutoGateway = doc.AutoGateway
	c.AutoRoutes = doc.AutoRoutes
	c.AutoRouteTableID = doc.AutoRouteTableID
	c.Declared = declaredFromKeys(raw)
	if c.Declared.Has(FieldAddresses) && c.Addresses == nil {
		c.Addresses = []Address{}
	}
	return nil
}

type ifaceDoc struct {
	Name        string         `yaml:"name"`
	Type        InterfaceType  `yaml:"type,omitempty"`
	State       InterfaceState `yaml:"state,omitempty"`
	Description string         `yaml:"description,omitempty"`
	MTU         int            `yaml:"mtu,omitempty"`
	MAC         string         `yaml:"mac-address,omitempty"`
	Controller  string         `yaml:"controller,omitempty"`
	Ethtool     *EthtoolConfig `yaml:"ethtool,omitempty"`
	IPv4        *IPv4Config    `yaml:"ipv4,omitempty"`
	IPv6        *IPv6Config    `yaml:"ipv6,omitempty"`
}

// MarshalYAML renders the interface record.
func (i *Interface) MarshalYAML() (interface{}, error) {
	return ifaceDoc{
		Name:        i.Name,
		Type:        i.Type,
		State:       i.State,
		Description: i.Description,
		MTU:         i.MTU,
		MAC:         i.MAC,
		Controller:  i.Controller,
		Ethtool:     i.Ethtool,
		IPv4:        i.IPv4,
		IPv6:        i.IPv6,
	}, nil
}

// UnmarshalYAML parses the interface record.
func (i *Interface) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var doc ifaceDoc
	if err := unmarshal(&doc); err != nil {
		return err
	}
	i.Name = doc.Name
	i.Type = doc.Type
	i.State = doc.State
	i.Description = doc.Description
	i.MTU = doc.MTU
	i.MAC = doc.MAC
	i.Controller = doc.Controller
	i.Ethtool = doc.Ethtool
	i.IPv4 = doc.IPv4
	i.IPv6 = doc.IPv6
	return nil
}

type stateDoc struct {
	Interfaces []*Interface `yaml:"interfaces"`
}

// MarshalYAML renders the interface list sorted by name so output is
// deterministic and diffable.
func (s *NetworkState) MarshalYAML() (interface{}, error) {
	doc := stateDoc{Interfaces: make([]*Interface, 0, len(s.Interfaces))}
	for _, name := range s.Names() {
		doc.Interfaces = append(doc.Interfaces, s.Interfaces[name])
	}
	return doc, nil
}

// UnmarshalYAML parses the interface list into the name-indexed map.
func (s *NetworkState) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var doc stateDoc
	if err := unmarshal(&doc); err != nil {
		return err
	}
	s.Interfaces = make(map[string]*Interface, len(doc.Interfaces))
	for _, iface := range doc.Interfaces {
		if iface == nil {
			return fmt.Errorf("null interface entry: %w", ErrInvalidArgument)
		}
		s.Interfaces[iface.Name] = iface
	}
	return nil
}
