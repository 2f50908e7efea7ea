package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/baditaflorin/go_shebang/internal/server"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print plugin metadata and file matching as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := setupApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(server.InfoResponse{
			Plugin:       a.plugin.Info(),
			FileMatching: a.plugin.FileMatching(),
		})
	},
}
