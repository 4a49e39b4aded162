// Package cmd implements the CLI subcommands. Everything here works
// without the management daemon: document handling, kernel readout,
// diffing. Daemon-facing flows are library surface (internal/apply,
// internal/checkpoint) driven by whatever embeds this tool.
package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"grimm.is/ifstate/internal/config"
	"grimm.is/ifstate/internal/state"
)

// RunFormat parses a state document, normalizes it and re-renders it
// as YAML on stdout. Interfaces come out name-sorted, addresses
// canonical, invariants enforced.
func RunFormat(path string) error {
	s, err := config.LoadFile(path)
	if err != nil {
		return err
	}
	s.PreEditCleanup()
	return renderState(s)
}

func renderState(s *state.NetworkState) error {
	out, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to render state: %w", err)
	}
	_, err = os.Stdout.Write(out)
	return err
}
