package apply

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
	"gopkg.in/yaml.v2"

	"grimm.is/ifstate/internal/state"
)

// VerificationError reports that the state read back after an apply
// does not match what was requested. Diff holds a unified diff of the
// two normalized YAML renderings, desired on the left.
type VerificationError struct {
	Diff string
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("applied state does not match desired state:\n%s", e.Diff)
}

// Verify compares a desired state against the state actually observed
// after applying it. Both sides are normalized first: automatic-mode
// address lists are discarded, link-local addresses filtered, address
// lists sorted and optional booleans canonicalized, so only meaningful
// drift is reported. Interfaces present only in current are ignored;
// the desired document configures, it does not inventory.
func Verify(desired, current *state.NetworkState) error {
	want := desired.Clone()
	want.PreVerifyCleanup()

	got := state.New()
	for _, name := range want.Names() {
		cur := current.Get(name)
		if cur == nil {
			continue
		}
		got.Put(cur.Clone())
	}
	got.PreVerifyCleanup()

	wantYAML, err := renderYAML(want)
	if err != nil {
		return err
	}
	gotYAML, err := renderYAML(got)
	if err != nil {
		return err
	}
	if wantYAML == gotYAML {
		return nil
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(wantYAML),
		B:        difflib.SplitLines(gotYAML),
		FromFile: "desired",
		ToFile:   "current",
		Context:  3,
	})
	if err != nil {
		return fmt.Errorf("failed to render state diff: %w", err)
	}
	return &VerificationError{Diff: diff}
}

func renderYAML(s *state.NetworkState) (string, error) {
	out, err := yaml.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("failed to marshal state: %w", err)
	}
	return string(out), nil
}
