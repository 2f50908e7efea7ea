package matcher

import (
	"path/filepath"
	"testing"
)

func TestDefaultMatcher(t *testing.T) {
	m := NewDefault()

	tests := []struct {
		path string
		want bool
	}{
		{"script.sh", true},
		{"deploy/run.bash", true},
		{"tool.py", true},
		{"Makefile", true},
		{"src/GNUmakefile", true},
		{"pkg.SlackBuild", true},
		{"pkg.slackbuild", false},
		{"debian/foo.postinst", true},
		{"README.md", false},
		{"main.go", false},
		{"noext", false},
		{"makefile", false},
		{".bashrc", false},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			if got := m.Match(filepath.FromSlash(tc.path)); got != tc.want {
				t.Errorf("Match(%q) = %v, want %v", tc.path, got, tc.want)
			}
		})
	}
}

func TestMatcherIncludeExclude(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Extensions = append(cfg.Extensions, ".tcl")
	cfg.FileNames = append(cfg.FileNames, "Justfile")
	cfg.Include = []string{"bin/*", "*.cmd"}
	cfg.Exclude = []string{"vendor/**", "*.generated.sh"}

	m, err := New(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		path string
		want bool
	}{
		{"bin/tool", true},
		{"bin/nested/tool", false},
		{"scripts/run.cmd", true},
		{"lib/x.tcl", true},
		{"Justfile", true},
		{"vendor/dep/install.sh", false},
		{"cfg/out.generated.sh", false},
		{"cfg/out.sh", true},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			if got := m.Match(tc.path); got != tc.want {
				t.Errorf("Match(%q) = %v, want %v", tc.path, got, tc.want)
			}
		})
	}

	if !m.Excluded("vendor/dep") {
		t.Error("expected vendor/dep to be excluded")
	}
}

func TestMatcherInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "bad include", cfg: Config{Include: []string{"[abc"}}},
		{name: "bad exclude", cfg: Config{Exclude: []string{"a/[b"}}},
		{name: "empty extension", cfg: Config{Extensions: []string{""}}},
		{name: "extension with slash", cfg: Config{Extensions: []string{"a/b"}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.cfg); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestMatcherListings(t *testing.T) {
	m := NewDefault()
	if got, want := len(m.Extensions()), len(DefaultExtensions); got != want {
		t.Errorf("expected %d extensions, got %d", want, got)
	}
	names := m.FileNames()
	if len(names) != 2 || names[0] != "GNUmakefile" || names[1] != "Makefile" {
		t.Errorf("unexpected file names %v", names)
	}
}
