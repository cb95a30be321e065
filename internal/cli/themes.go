package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/gridview/internal/ui"
)

// NewThemesCommand lists the available color themes.
func NewThemesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List color themes",
		Args:  commandArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range ui.ThemeNames() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
