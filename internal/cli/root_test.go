package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "gridview [dataset]", cmd.Use)
	assert.Contains(t, cmd.Long, "interactive table")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"print", "themes"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			require.NotNil(t, sub)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)
	assert.Equal(t, "false", verbose.DefValue)

	config := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, config)
	assert.Equal(t, "", config.DefValue)

	assert.NotNil(t, cmd.Flags().Lookup("prefs"))
}

func TestPrintCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	printCmd, _, err := cmd.Find([]string{"print"})
	require.NoError(t, err)

	format := printCmd.Flags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "text", format.DefValue)

	for _, name := range []string{"filter", "sort", "select", "limit"} {
		assert.NotNil(t, printCmd.Flags().Lookup(name), "flag %s", name)
	}
}

func TestAppOptions(t *testing.T) {
	opts := &RootOptions{ConfigPath: "c.toml", PrefsPath: "p.toml", Verbose: true}

	got := opts.appOptions([]string{"data.csv"})
	assert.Equal(t, "c.toml", got.ConfigPath)
	assert.Equal(t, "p.toml", got.PrefsPath)
	assert.Equal(t, "data.csv", got.DatasetPath)
	assert.True(t, got.Verbose)

	assert.Empty(t, opts.appOptions(nil).DatasetPath)
}

func TestThemesCommand(t *testing.T) {
	out, err := execute(t, "themes")
	require.NoError(t, err)
	assert.Equal(t, "Dracula\nSlate\n", out)
}
