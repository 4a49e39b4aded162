package cmd

import (
	"fmt"

	"grimm.is/ifstate/internal/kernel"
)

// RunShow reads the current network state from the kernel and prints
// it as a YAML state document.
func RunShow() error {
	s, err := kernel.NewDefaultReader().Read()
	if err != nil {
		return fmt.Errorf("failed to read current state: %w", err)
	}
	return renderState(s)
}
