package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDoc(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const testDoc = `interfaces:
  - name: eth0
    type: ethernet
    ipv4:
      enabled: true
      dhcp: false
      address:
        - ip: 10.0.0.5
          prefix-length: 24
`

func TestRunValidate(t *testing.T) {
	path := writeDoc(t, "state.yaml", testDoc)
	require.NoError(t, RunValidate(path))
}

func TestRunValidate_BadDocument(t *testing.T) {
	path := writeDoc(t, "state.yaml", "interfaces: [&bad")
	err := RunValidate(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid")
}

func TestRunFormat(t *testing.T) {
	path := writeDoc(t, "state.yaml", testDoc)
	require.NoError(t, RunFormat(path))
}

func TestRunDiff_Identical(t *testing.T) {
	a := writeDoc(t, "a.yaml", testDoc)
	b := writeDoc(t, "b.yaml", testDoc)
	require.NoError(t, RunDiff(a, b))
}

func TestRunDiff_Different(t *testing.T) {
	other := `interfaces:
  - name: eth0
    type: ethernet
    ipv4:
      enabled: true
      dhcp: true
`
	a := writeDoc(t, "a.yaml", testDoc)
	b := writeDoc(t, "b.yaml", other)
	err := RunDiff(a, b)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "differ")
}
