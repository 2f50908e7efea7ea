package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
[files]
include = ["bin/*"]
exclude = ["vendor/**"]
extra_extensions = ["tcl"]
extra_names = ["Justfile"]

[run]
jobs = 3

[log]
json = true
file = "shebang.log"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Path != path {
		t.Errorf("expected path %q, got %q", path, cfg.Path)
	}
	if cfg.Jobs() != 3 {
		t.Errorf("expected 3 jobs, got %d", cfg.Jobs())
	}
	if !cfg.Log.JSON || cfg.Log.File != "shebang.log" {
		t.Errorf("unexpected log config %+v", cfg.Log)
	}

	mc := cfg.MatcherConfig()
	if !contains(mc.Extensions, "tcl") || !contains(mc.Extensions, "sh") {
		t.Errorf("expected merged extensions, got %v", mc.Extensions)
	}
	if !contains(mc.FileNames, "Justfile") || !contains(mc.FileNames, "Makefile") {
		t.Errorf("expected merged file names, got %v", mc.FileNames)
	}
	if len(mc.Include) != 1 || len(mc.Exclude) != 1 {
		t.Errorf("unexpected patterns include=%v exclude=%v", mc.Include, mc.Exclude)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "syntax", content: "[files\n", wantErr: "failed to parse TOML"},
		{name: "unknown key", content: "[files]\nextensions = [\"x\"]\n", wantErr: "unknown keys: files.extensions"},
		{name: "negative jobs", content: "[run]\njobs = -1\n", wantErr: "run.jobs"},
		{name: "bad pattern", content: "[files]\ninclude = [\"[x\"]\n", wantErr: "invalid include pattern"},
		{name: "bad name", content: "[files]\nextra_names = [\"a/b\"]\n", wantErr: "extra_names"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tc.content)
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("expected error containing %q, got %q", tc.wantErr, err.Error())
			}
		})
	}
}

func TestFindAndResolve(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	path := writeConfig(t, root, "[run]\njobs = 2\n")

	found, ok, err := Find(nested)
	if err != nil || !ok {
		t.Fatalf("expected to find config, ok=%v err=%v", ok, err)
	}
	if found != path {
		t.Errorf("expected %q, got %q", path, found)
	}

	cfg, err := Resolve("", nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Run.Jobs != 2 {
		t.Errorf("expected jobs from discovered file, got %d", cfg.Run.Jobs)
	}

	explicit := filepath.Join(t.TempDir(), "custom.toml")
	if err := os.WriteFile(explicit, []byte("[run]\njobs = 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Resolve(explicit, nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Run.Jobs != 5 {
		t.Errorf("expected explicit file to win, got jobs %d", cfg.Run.Jobs)
	}
}

func TestDefaultJobs(t *testing.T) {
	if got := Default().Jobs(); got != runtime.NumCPU() {
		t.Errorf("expected %d jobs, got %d", runtime.NumCPU(), got)
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
