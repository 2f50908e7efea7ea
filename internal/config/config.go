// Package config loads the optional .shebang.toml project configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/baditaflorin/go_shebang/internal/adapters/matcher"
)

// FileName is the name of the configuration file searched for.
const FileName = ".shebang.toml"

// Config is the decoded configuration file.
type Config struct {
	Files FilesConfig `toml:"files"`
	Run   RunConfig   `toml:"run"`
	Log   LogConfig   `toml:"log"`

	// Path is the file the configuration was loaded from, empty for defaults.
	Path string `toml:"-"`
}

// FilesConfig extends or restricts the built-in file eligibility tables.
type FilesConfig struct {
	Include         []string `toml:"include"`
	Exclude         []string `toml:"exclude"`
	ExtraExtensions []string `toml:"extra_extensions"`
	ExtraNames      []string `toml:"extra_names"`
}

// RunConfig controls how paths are processed.
type RunConfig struct {
	// Jobs bounds the number of files formatted concurrently. Zero means
	// one per CPU.
	Jobs int `toml:"jobs"`
}

// LogConfig controls log output.
type LogConfig struct {
	JSON bool   `toml:"json"`
	File string `toml:"file"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.Run.Jobs < 0 {
		return errors.New("run.jobs must not be negative")
	}
	for _, name := range c.Files.ExtraNames {
		if strings.TrimSpace(name) == "" || strings.ContainsAny(name, `/\`) {
			return fmt.Errorf("files.extra_names: invalid file name %q", name)
		}
	}
	if err := c.MatcherConfig().Validate(); err != nil {
		return fmt.Errorf("files: %w", err)
	}
	return nil
}

// Jobs returns the effective concurrency.
func (c Config) Jobs() int {
	if c.Run.Jobs > 0 {
		return c.Run.Jobs
	}
	return runtime.NumCPU()
}

// MatcherConfig merges the built-in tables with the configured extras.
func (c Config) MatcherConfig() matcher.Config {
	mc := matcher.DefaultConfig()
	mc.Extensions = append(mc.Extensions, c.Files.ExtraExtensions...)
	mc.FileNames = append(mc.FileNames, c.Files.ExtraNames...)
	mc.Include = append(mc.Include, c.Files.Include...)
	mc.Exclude = append(mc.Exclude, c.Files.Exclude...)
	return mc
}

// Load decodes and validates the configuration file at path. Unknown keys
// are rejected.
func Load(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Find walks up from startDir looking for FileName.
func Find(startDir string) (string, bool, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, err
	}
	for {
		candidate := filepath.Join(dir, FileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, true, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", false, err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// Resolve loads explicit when set, otherwise the nearest FileName above
// startDir, otherwise the defaults.
func Resolve(explicit, startDir string) (Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}
