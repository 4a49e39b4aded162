package cmd

import (
	"fmt"

	"grimm.is/ifstate/internal/config"
)

// RunValidate parses a state document and reports what it found.
func RunValidate(path string) error {
	s, err := config.LoadFile(path)
	if err != nil {
		return fmt.Errorf("state document invalid: %w", err)
	}
	fmt.Println("State document valid.")
	fmt.Printf("Interfaces: %d\n", len(s.Interfaces))
	for _, name := range s.Names() {
		iface := s.Get(name)
		families := ""
		if iface.IPv4 != nil {
			families += " ipv4"
		}
		if iface.IPv6 != nil {
			families += " ipv6"
		}
		fmt.Printf("  %s (%s)%s\n", name, iface.Type, families)
	}
	return nil
}
