package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/baditaflorin/go_shebang/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := applyColor(cmd.Root().PersistentFlags().Lookup("color").Value.String()); err != nil {
			return err
		}
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "shebang %s\n", version.Colored())
		return err
	},
}
