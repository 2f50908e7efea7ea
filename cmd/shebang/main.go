package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/baditaflorin/go_shebang/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "shebang",
	Short: "Normalize interpreter directive lines of script files",
	Long: `shebang rewrites the "#!" line at the top of script files into a
canonical form: no blanks before the interpreter and exactly one space
between the interpreter and its arguments.`,
	SilenceUsage: true,
}

func main() {
	rootCmd.Version = version.String()

	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("config", "", "path to a .shebang.toml file (default: search upwards)")
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("verbose", false, "write log records to stderr")
	rootCmd.PersistentFlags().Int("jobs", 0, "number of files formatted concurrently (0 = config or NumCPU)")
	rootCmd.PersistentFlags().String("log-file", "", "append log records to this file")
	rootCmd.PersistentFlags().Bool("log-json", false, "write log records as JSON")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
