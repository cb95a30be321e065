package cli

import (
	"github.com/spf13/cobra"

	"github.com/five82/gridview/internal/app"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	PrefsPath  string
	Verbose    bool
}

// NewRootCommand creates the gridview command. Without a subcommand it runs
// the interactive table.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "gridview [dataset]",
		Short: "Filter, sort and select rows in a terminal table",
		Long: `gridview shows a JSON, YAML or CSV dataset as an interactive table.

Without a dataset argument it uses the dataset from the config file, or a
generated demo dataset when none is configured.`,
		Args:          commandArgs(cobra.MaximumNArgs(1)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			appOpts := opts.appOptions(args)
			if err := app.Run(cmd.Context(), appOpts); err != nil {
				return WrapExitError(ExitFailure, "gridview failed", err)
			}
			return nil
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return WrapExitError(ExitCommandError, "invalid flags", err)
	})

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.config/gridview/config.toml)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")
	cmd.Flags().StringVar(&opts.PrefsPath, "prefs", "", "preferences file (default ~/.config/gridview/prefs.toml)")

	cmd.AddCommand(NewPrintCommand(opts))
	cmd.AddCommand(NewThemesCommand())

	return cmd
}

func (o *RootOptions) appOptions(args []string) app.Options {
	appOpts := app.Options{
		ConfigPath: o.ConfigPath,
		PrefsPath:  o.PrefsPath,
		Verbose:    o.Verbose,
	}
	if len(args) > 0 {
		appOpts.DatasetPath = args[0]
	}
	return appOpts
}
