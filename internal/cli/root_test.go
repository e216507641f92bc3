package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCmd(t *testing.T) {
	cmd := NewRootCmd()

	assert.Equal(t, "luamend", cmd.Use)
	for _, flag := range []string{"config", "verbose", "output"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}

	names := make([]string, 0)
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Contains(t, names, "version")
	assert.Contains(t, names, "rules")
	assert.Contains(t, names, "check")
}

func TestRootCmd_VersionFlag(t *testing.T) {
	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--version"})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Equal(t, "luamend "+Version+"\n", buf.String())
}

func TestRootCmd_CheckWithConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "luamend.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
rules:
  - remove_continue
  - remove_redeclared_keys
`), 0o644))

	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--config", path, "check"})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Configuration OK (2 rules)")
}

func TestRootCmd_CheckRejectsBadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "luamend.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
rules:
  - no_such_rule
`), 0o644))

	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--config", path, "check"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown rule 'no_such_rule'")
}
