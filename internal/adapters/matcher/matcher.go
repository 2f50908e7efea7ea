// Package matcher decides which files are eligible for directive
// normalization.
package matcher

import (
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/baditaflorin/go_shebang/internal/ports"
)

// Config holds the matching rules. Patterns use doublestar syntax and are
// matched against slash-separated paths.
type Config struct {
	Extensions []string
	FileNames  []string
	Include    []string
	Exclude    []string
}

// DefaultConfig returns the built-in extension and file name tables.
func DefaultConfig() Config {
	return Config{
		Extensions: append([]string(nil), DefaultExtensions...),
		FileNames:  append([]string(nil), DefaultFileNames...),
	}
}

// Validate checks that every pattern is well formed.
func (c Config) Validate() error {
	for _, p := range c.Include {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid include pattern %q", p)
		}
	}
	for _, p := range c.Exclude {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid exclude pattern %q", p)
		}
	}
	for _, ext := range c.Extensions {
		if ext == "" || strings.ContainsAny(ext, `/\`) {
			return fmt.Errorf("invalid extension %q", ext)
		}
	}
	return nil
}

// Matcher implements ports.FileMatcher.
type Matcher struct {
	extensions map[string]struct{}
	names      map[string]struct{}
	include    []string
	exclude    []string
}

// New creates a matcher from config.
func New(config Config) (*Matcher, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	m := &Matcher{
		extensions: make(map[string]struct{}, len(config.Extensions)),
		names:      make(map[string]struct{}, len(config.FileNames)),
		include:    config.Include,
		exclude:    config.Exclude,
	}
	for _, ext := range config.Extensions {
		m.extensions[strings.TrimPrefix(ext, ".")] = struct{}{}
	}
	for _, name := range config.FileNames {
		m.names[name] = struct{}{}
	}
	return m, nil
}

// NewDefault creates a matcher using only the built-in tables.
func NewDefault() *Matcher {
	m, err := New(DefaultConfig())
	if err != nil {
		panic(err)
	}
	return m
}

// Match reports whether path is eligible. Exclude patterns take precedence
// over everything else.
func (m *Matcher) Match(p string) bool {
	slashed := filepath.ToSlash(p)
	if matchAny(m.exclude, slashed) {
		return false
	}
	base := path.Base(slashed)
	if _, ok := m.names[base]; ok {
		return true
	}
	if ext := path.Ext(base); len(ext) > 1 {
		if _, ok := m.extensions[ext[1:]]; ok {
			return true
		}
	}
	return matchAny(m.include, slashed)
}

// Excluded reports whether path matches an exclude pattern. Directories
// matching one are skipped entirely by callers walking a tree.
func (m *Matcher) Excluded(p string) bool {
	return matchAny(m.exclude, filepath.ToSlash(p))
}

// Extensions returns the configured extensions, sorted.
func (m *Matcher) Extensions() []string {
	out := make([]string, 0, len(m.extensions))
	for ext := range m.extensions {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

// FileNames returns the configured exact file names, sorted.
func (m *Matcher) FileNames() []string {
	out := make([]string, 0, len(m.names))
	for name := range m.names {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func matchAny(patterns []string, p string) bool {
	for _, pattern := range patterns {
		// Patterns were validated in New, so errors cannot occur here.
		if ok, _ := doublestar.Match(pattern, p); ok {
			return true
		}
		// Patterns without a slash also match the base name.
		if !strings.Contains(pattern, "/") {
			if ok, _ := doublestar.Match(pattern, path.Base(p)); ok {
				return true
			}
		}
	}
	return false
}

var _ ports.FileMatcher = (*Matcher)(nil)
