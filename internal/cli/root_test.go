package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewRootCommand verifies the command tree wiring: every command
// group and subcommand is registered under its documented name.
func TestNewRootCommand(t *testing.T) {
	root := NewRootCommand()
	assert.Equal(t, "lighter", root.Use)

	groups := map[string][]string{
		"lights": {"get", "name", "state"},
		"groups": {"get", "name", "member", "state", "scene"},
		"scenes": {"get", "set", "setmany", "recall"},
		"config": {"get", "push", "apikey"},
	}

	for groupName, subNames := range groups {
		group := findCommand(t, root.Commands(), groupName)
		for _, sub := range subNames {
			findCommand(t, group.Commands(), sub)
		}
	}

	// Global flags are persistent, hence available everywhere.
	assert.NotNil(t, root.PersistentFlags().Lookup("json"))
	assert.NotNil(t, root.PersistentFlags().Lookup("verbose"))
}

func findCommand(t *testing.T, cmds []*cobra.Command, name string) *cobra.Command {
	t.Helper()
	for _, c := range cmds {
		if c.Name() == name {
			return c
		}
	}
	require.Failf(t, "command not registered", "no command named %q", name)
	return nil
}
