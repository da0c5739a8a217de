package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := NewRootCommand()

	for _, name := range []string{"serve", "migrate", "kennels"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}

	add, _, err := cmd.Find([]string{"kennels", "add"})
	require.NoError(t, err)
	assert.NotNil(t, add.Flags().Lookup("count"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
}

func TestMigrateCommand_RequiresDSN(t *testing.T) {
	t.Setenv("DB_DSN", "")

	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs([]string{"--config", "", "migrate"})

	err := cmd.Execute()
	require.ErrorIs(t, err, errNoDSN)
}

func TestKennelsAdd_RequiresDSN(t *testing.T) {
	t.Setenv("DB_DSN", "")

	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", "", "kennels", "add", "--count", "3"})

	require.ErrorIs(t, cmd.Execute(), errNoDSN)
}
