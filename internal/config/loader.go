// Package config loads desired-state documents. YAML is the primary
// format; HCL is accepted for hosts whose other tooling is HCL-based.
// Both loaders record which fields a document actually declares, so
// later merges stay PATCH-shaped.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gopkg.in/yaml.v2"

	"grimm.is/ifstate/internal/state"
)

// LoadFile loads a desired-state document, choosing the parser by file
// extension. Unknown extensions try YAML first, then HCL. "-" reads
// standard input as YAML.
func LoadFile(path string) (*state.NetworkState, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return LoadYAML(data)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return LoadYAML(data)
	case ".hcl":
		return LoadHCL(data, path)
	default:
		s, yerr := LoadYAML(data)
		if yerr == nil {
			return s, nil
		}
		if s, herr := LoadHCL(data, path); herr == nil {
			return s, nil
		}
		return nil, yerr
	}
}

// LoadYAML parses a YAML state document. Non-breaking spaces are
// normalized to plain spaces first; they sneak in when documents are
// pasted from rendered pages and YAML treats them as content.
func LoadYAML(data []byte) (*state.NetworkState, error) {
	clean := strings.ReplaceAll(string(data), " ", " ")
	s := state.New()
	if err := yaml.Unmarshal([]byte(clean), s); err != nil {
		return nil, fmt.Errorf("failed to parse state document: %w", err)
	}
	return s, nil
}

type hclDoc struct {
	Interfaces []hclInterface `hcl:"interface,block"`
}

type hclInterface struct {
	Name        string  `hcl:"name,label"`
	Type        *string `hcl:"type,optional"`
	State       *string `hcl:"state,optional"`
	Description *string `hcl:"description,optional"`
	MTU         *int    `hcl:"mtu,optional"`
	MAC         *string `hcl:"mac,optional"`
	Controller  *string `hcl:"controller,optional"`
	IPv4        *hclIP  `hcl:"ipv4,block"`
	IPv6        *hclIP  `hcl:"ipv6,block"`
}

type hclIP struct {
	Enabled          *bool     `hcl:"enabled,optional"`
	DHCP             *bool     `hcl:"dhcp,optional"`
	Autoconf         *bool     `hcl:"autoconf,optional"`
	Addresses        *[]string `hcl:"addresses,optional"`
	AutoDNS          *bool     `hcl:"auto_dns,optional"`
	AutoGateway      *bool     `hcl:"auto_gateway,optional"`
	AutoRoutes       *bool     `hcl:"auto_routes,optional"`
	AutoRouteTableID *uint32   `hcl:"auto_route_table_id,optional"`
}

// LoadHCL parses an HCL state document. Optional attributes left out
// of the document stay out of the declared-field sets.
func LoadHCL(data []byte, filename string) (*state.NetworkState, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse state document: %s", diags.Error())
	}

	var doc hclDoc
	if diags := gohcl.DecodeBody(file.Body, nil, &doc); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode state document: %s", diags.Error())
	}

	s := state.New()
	for _, h := range doc.Interfaces {
		iface, err := buildInterface(h)
		if err != nil {
			return nil, err
		}
		s.Put(iface)
	}
	return s, nil
}

func buildInterface(h hclInterface) (*state.Interface, error) {
	iface := &state.Interface{Name: h.Name}
	if h.Type != nil {
		iface.Type = state.InterfaceType(*h.Type)
	}
	if h.State != nil {
		iface.State = state.InterfaceState(*h.State)
	}
	if h.Description != nil {
		iface.Description = *h.Description
	}
	if h.MTU != nil {
		iface.MTU = *h.MTU
	}
	if h.MAC != nil {
		iface.MAC = *h.MAC
	}
	if h.Controller != nil {
		iface.Controller = *h.Controller
	}
	if h.IPv4 != nil {
		cfg, err := buildIPv4(h.Name, h.IPv4)
		if err != nil {
			return nil, err
		}
		iface.IPv4 = cfg
	}
	if h.IPv6 != nil {
		cfg, err := buildIPv6(h.Name, h.IPv6)
		if err != nil {
			return nil, err
		}
		iface.IPv6 = cfg
	}
	return iface, nil
}

func buildIPv4(iface string, h *hclIP) (*state.IPv4Config, error) {
	cfg := &state.IPv4Config{Declared: state.NewFieldSet()}
	if h.Enabled != nil {
		cfg.Enabled = *h.Enabled
		cfg.Declared.Add(state.FieldEnabled)
	}
	if h.DHCP != nil {
		cfg.DHCP = h.DHCP
		cfg.Declared.Add(state.FieldDHCP)
	}
	if h.Addresses != nil {
		addrs, err := parseAddresses(iface, *h.Addresses)
		if err != nil {
			return nil, err
		}
		cfg.Addresses = addrs
		cfg.Declared.Add(state.FieldAddresses)
	}
	declareAutoOptions(cfg.Declared, h)
	cfg.AutoDNS = h.AutoDNS
	cfg.AutoGateway = h.AutoGateway
	cfg.AutoRoutes = h.AutoRoutes
	cfg.AutoRouteTableID = h.AutoRouteTableID
	return cfg, nil
}

func buildIPv6(iface string, h *hclIP) (*state.IPv6Config, error) {
	cfg := &state.IPv6Config{Declared: state.NewFieldSet()}
	if h.Enabled != nil {
		cfg.Enabled = *h.Enabled
		cfg.Declared.Add(state.FieldEnabled)
	}
	if h.DHCP != nil {
		cfg.DHCP = h.DHCP
		cfg.Declared.Add(state.FieldDHCP)
	}
	if h.Autoconf != nil {
		cfg.Autoconf = h.Autoconf
		cfg.Declared.Add(state.FieldAutoconf)
	}
	if h.Addresses != nil {
		addrs, err := parseAddresses(iface, *h.Addresses)
		if err != nil {
			return nil, err
		}
		cfg.Addresses = addrs
		cfg.Declared.Add(state.FieldAddresses)
	}
	declareAutoOptions(cfg.Declared, h)
	cfg.AutoDNS = h.AutoDNS
	cfg.AutoGateway = h.AutoGateway
	cfg.AutoRoutes = h.AutoRoutes
	cfg.AutoRouteTableID = h.AutoRouteTableID
	return cfg, nil
}

func declareAutoOptions(declared state.FieldSet, h *hclIP) {
	if h.AutoDNS != nil {
		declared.Add(state.FieldAutoDNS)
	}
	if h.AutoGateway != nil {
		declared.Add(state.FieldAutoGateway)
	}
	if h.AutoRoutes != nil {
		declared.Add(state.FieldAutoRoutes)
	}
	if h.AutoRouteTableID != nil {
		declared.Add(state.FieldAutoRouteTableID)
	}
}

func parseAddresses(iface string, raw []string) ([]state.Address, error) {
	addrs := make([]state.Address, 0, len(raw))
	for _, s := range raw {
		a, err := state.ParseAddress(s)
		if err != nil {
			return nil, fmt.Errorf("interface %s: %w", iface, err)
		}
		addrs = append(addrs, a)
	}
	return addrs, nil
}
