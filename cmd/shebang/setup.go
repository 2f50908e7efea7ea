package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	shebang "github.com/baditaflorin/go_shebang"
	"github.com/baditaflorin/go_shebang/internal/adapters/logger"
	"github.com/baditaflorin/go_shebang/internal/adapters/matcher"
	"github.com/baditaflorin/go_shebang/internal/config"
	"github.com/baditaflorin/go_shebang/internal/ports"
	"github.com/baditaflorin/go_shebang/pkg/plugin"
)

// app bundles everything a subcommand needs.
type app struct {
	cfg     config.Config
	logger  ports.Logger
	matcher *matcher.Matcher
	plugin  *plugin.Plugin
	format  *shebang.Shebang
	quiet   bool
	jobs    int
}

func (a *app) Close() error {
	return a.format.Close()
}

func setupApp(cmd *cobra.Command) (*app, error) {
	flags := cmd.Root().PersistentFlags()

	if err := applyColor(flags.Lookup("color").Value.String()); err != nil {
		return nil, err
	}

	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, err
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Resolve(configPath, wd)
	if err != nil {
		return nil, err
	}

	verbose, _ := flags.GetBool("verbose")
	logFile, _ := flags.GetString("log-file")
	logJSON, _ := flags.GetBool("log-json")
	if logFile == "" {
		logFile = cfg.Log.File
	}
	logJSON = logJSON || cfg.Log.JSON

	var lg ports.Logger
	if verbose || logFile != "" {
		lg, err = logger.New(logger.Options{File: logFile, JSON: logJSON})
		if err != nil {
			return nil, err
		}
	} else {
		lg = logger.NewNop()
	}

	m, err := matcher.New(cfg.MatcherConfig())
	if err != nil {
		_ = lg.Close()
		return nil, err
	}

	formatter, err := shebang.New(shebang.WithPortsLogger(lg), shebang.WithPooledRenderer())
	if err != nil {
		_ = lg.Close()
		return nil, err
	}

	quiet, _ := flags.GetBool("quiet")
	jobs, _ := flags.GetInt("jobs")
	if jobs <= 0 {
		jobs = cfg.Jobs()
	}

	if cfg.Path != "" {
		lg.Debug("Loaded configuration", "path", cfg.Path)
	}

	return &app{
		cfg:     cfg,
		logger:  lg,
		matcher: m,
		plugin:  plugin.New(formatter, m, lg),
		format:  formatter,
		quiet:   quiet,
		jobs:    jobs,
	}, nil
}

func applyColor(mode string) error {
	switch mode {
	case "auto":
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		return fmt.Errorf("invalid --color value %q (want auto|on|off)", mode)
	}
	return nil
}
