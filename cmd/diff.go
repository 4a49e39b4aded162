package cmd

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
	"gopkg.in/yaml.v2"

	"grimm.is/ifstate/internal/config"
	"grimm.is/ifstate/internal/state"
)

// RunDiff compares two state documents after normalization and prints
// a unified diff. Returns an error when the states differ, so the exit
// code is usable from scripts.
func RunDiff(desiredPath, currentPath string) error {
	desired, err := config.LoadFile(desiredPath)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", desiredPath, err)
	}
	current, err := config.LoadFile(currentPath)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", currentPath, err)
	}

	a, err := normalizedYAML(desired)
	if err != nil {
		return err
	}
	b, err := normalizedYAML(current)
	if err != nil {
		return err
	}

	if a == b {
		fmt.Println("No changes detected.")
		return nil
	}

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(a),
		B:        difflib.SplitLines(b),
		FromFile: desiredPath,
		ToFile:   currentPath,
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return fmt.Errorf("failed to render diff: %w", err)
	}
	fmt.Print(text)
	return fmt.Errorf("states differ")
}

func normalizedYAML(s *state.NetworkState) (string, error) {
	n := s.Clone()
	n.PreVerifyCleanup()
	out, err := yaml.Marshal(n)
	if err != nil {
		return "", fmt.Errorf("failed to render state: %w", err)
	}
	return string(out), nil
}
