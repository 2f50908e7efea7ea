package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/baditaflorin/go_shebang/internal/driver"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] <path> [path...]",
	Short: "Normalize the directive line of script files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFmt,
}

var (
	errFmtFailed  = errors.New("fmt: failed to format some files")
	errFmtPending = errors.New("fmt: formatting changes required")
)

func init() {
	fmtCmd.Flags().Bool("check", false, "check if files are properly formatted")
	fmtCmd.Flags().String("format", "text", "output format (text|json)")
	fmtCmd.Flags().Bool("stdout", false, "print formatted content to stdout instead of rewriting files")
	fmtCmd.Flags().Bool("force", false, "format explicitly named files even if their name is not recognized")
}

func runFmt(cmd *cobra.Command, args []string) error {
	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return err
	}
	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	writeToStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return err
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if writeToStdout && check {
		return fmt.Errorf("fmt: --stdout cannot be used with --check")
	}
	if writeToStdout && outputFormat != "text" {
		return fmt.Errorf("fmt: --stdout is only supported with text output")
	}
	if outputFormat != "text" && outputFormat != "json" {
		return fmt.Errorf("fmt: unsupported output format %q", outputFormat)
	}

	a, err := setupApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	results, err := driver.FormatPaths(cmd.Context(), a.plugin, args, driver.FormatOptions{
		Check:   check,
		Stdout:  writeToStdout,
		Force:   force,
		Jobs:    a.jobs,
		Matcher: a.matcher,
		Logger:  a.logger,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	var summary fmtSummary
	switch {
	case writeToStdout:
		summary = renderFmtStdout(out, errOut, results)
	case outputFormat == "json":
		summary = summarize(results)
		if err := renderFmtJSON(out, results, check); err != nil {
			return err
		}
	default:
		summary = renderFmtText(out, errOut, results, check, a.quiet)
	}

	if summary.errors > 0 {
		return errFmtFailed
	}
	if check && summary.changed > 0 {
		return errFmtPending
	}
	return nil
}

type fmtSummary struct {
	changed int
	errors  int
}

func summarize(results []driver.FormatResult) fmtSummary {
	var s fmtSummary
	for _, res := range results {
		if res.Err != nil {
			s.errors++
		} else if res.Changed {
			s.changed++
		}
	}
	return s
}

func renderFmtStdout(out, errOut io.Writer, results []driver.FormatResult) fmtSummary {
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(errOut, "fmt: %s: %v\n", res.Path, res.Err)
			continue
		}
		_, _ = out.Write(res.Formatted)
	}
	return summarize(results)
}

func renderFmtText(out, errOut io.Writer, results []driver.FormatResult, check, quiet bool) fmtSummary {
	errLabel := color.New(color.FgRed, color.Bold).Sprint("error")
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(errOut, "fmt: %s: %s: %v\n", errLabel, res.Path, res.Err)
			continue
		}
		if !res.Changed || quiet {
			continue
		}
		if check {
			fmt.Fprintln(out, res.Path)
			continue
		}
		fmt.Fprintf(out, "%s %s\n", color.GreenString("reformatted"), res.Path)
	}
	return summarize(results)
}

func renderFmtJSON(out io.Writer, results []driver.FormatResult, check bool) error {
	type jsonResult struct {
		Path     string `json:"path"`
		Changed  bool   `json:"changed"`
		Error    string `json:"error,omitempty"`
		CheckRun bool   `json:"check"`
	}

	payload := make([]jsonResult, 0, len(results))
	for _, res := range results {
		jr := jsonResult{Path: res.Path, Changed: res.Changed, CheckRun: check}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		}
		payload = append(payload, jr)
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

