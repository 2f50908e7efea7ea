package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	shebang "github.com/baditaflorin/go_shebang"
	"github.com/baditaflorin/go_shebang/internal/adapters/logger"
	"github.com/baditaflorin/go_shebang/internal/adapters/matcher"
	"github.com/baditaflorin/go_shebang/pkg/plugin"
)

func newTestPlugin(t *testing.T) *plugin.Plugin {
	t.Helper()
	formatter, err := shebang.New(shebang.WithPortsLogger(logger.NewNop()), shebang.WithPooledRenderer())
	if err != nil {
		t.Fatalf("failed to create formatter: %v", err)
	}
	return plugin.New(formatter, nil, logger.NewNop())
}

type tree map[string]string

func writeTree(t *testing.T, root string, files tree) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
			t.Fatal(err)
		}
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func byPath(results []FormatResult) map[string]FormatResult {
	out := make(map[string]FormatResult, len(results))
	for _, r := range results {
		out[filepath.Base(r.Path)] = r
	}
	return out
}

var sampleTree = tree{
	"run.sh":           "#!  /bin/sh  -e\necho hi\n",
	"tool.py":          "#!/usr/bin/env python3\nprint(1)\n",
	"notes.txt":        "#!   not a script\n",
	"Makefile":         "all:\n\techo ok\n",
	"sub/deep.bash":    "#!\t/bin/bash\t\n",
	"sub/.git/hook.sh": "#!   /bin/sh\n",
}

func TestFormatPathsWrite(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, sampleTree)

	results, err := FormatPaths(context.Background(), newTestPlugin(t), []string{root}, FormatOptions{Jobs: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 eligible files, got %d: %+v", len(results), results)
	}

	got := byPath(results)
	for name, changed := range map[string]bool{"run.sh": true, "tool.py": false, "Makefile": false, "deep.bash": true} {
		res, ok := got[name]
		if !ok {
			t.Errorf("missing result for %s", name)
			continue
		}
		if res.Err != nil {
			t.Errorf("%s: unexpected error %v", name, res.Err)
		}
		if res.Changed != changed {
			t.Errorf("%s: expected changed=%v, got %v", name, changed, res.Changed)
		}
	}

	if s := readFile(t, filepath.Join(root, "run.sh")); s != "#!/bin/sh -e\necho hi\n" {
		t.Errorf("run.sh not rewritten: %q", s)
	}
	if s := readFile(t, filepath.Join(root, "sub", "deep.bash")); s != "#!/bin/bash\n" {
		t.Errorf("deep.bash not rewritten: %q", s)
	}
	if s := readFile(t, filepath.Join(root, "notes.txt")); s != sampleTree["notes.txt"] {
		t.Errorf("notes.txt must not be touched: %q", s)
	}
	if s := readFile(t, filepath.Join(root, "sub", ".git", "hook.sh")); s != sampleTree["sub/.git/hook.sh"] {
		t.Errorf(".git must be skipped: %q", s)
	}

	info, err := os.Stat(filepath.Join(root, "run.sh"))
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm()&0o100 == 0 {
		t.Errorf("expected executable bit to be preserved, got %v", info.Mode())
	}
}

func TestFormatPathsCheck(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, sampleTree)

	results, err := FormatPaths(context.Background(), newTestPlugin(t), []string{root}, FormatOptions{Check: true, Jobs: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !byPath(results)["run.sh"].Changed {
		t.Error("expected run.sh to need changes")
	}
	if s := readFile(t, filepath.Join(root, "run.sh")); s != sampleTree["run.sh"] {
		t.Errorf("check mode must not write: %q", s)
	}
}

func TestFormatPathsStdout(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, sampleTree)

	files := []string{filepath.Join(root, "run.sh"), filepath.Join(root, "tool.py")}
	results, err := FormatPaths(context.Background(), newTestPlugin(t), files, FormatOptions{Stdout: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := byPath(results)
	if s := string(got["run.sh"].Formatted); s != "#!/bin/sh -e\necho hi\n" {
		t.Errorf("unexpected formatted run.sh: %q", s)
	}
	if s := string(got["tool.py"].Formatted); s != sampleTree["tool.py"] {
		t.Errorf("expected unchanged content for tool.py: %q", s)
	}
	if s := readFile(t, files[0]); s != sampleTree["run.sh"] {
		t.Errorf("stdout mode must not write: %q", s)
	}
}

func TestFormatPathsForceAndErrors(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, tree{
		"notes.txt": "#!   /bin/true\n",
		"bad.sh":    "#!/bin/sh \xff\n",
		"good.sh":   "#! /bin/sh\n",
	})

	paths := []string{
		filepath.Join(root, "notes.txt"),
		filepath.Join(root, "bad.sh"),
		filepath.Join(root, "good.sh"),
		filepath.Join(root, "good.sh"),
	}

	results, err := FormatPaths(context.Background(), newTestPlugin(t), paths, FormatOptions{Force: true, Jobs: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected duplicates to be removed, got %d results", len(results))
	}

	got := byPath(results)
	if !errors.Is(got["bad.sh"].Err, shebang.ErrDecode) {
		t.Errorf("expected decode error for bad.sh, got %v", got["bad.sh"].Err)
	}
	if !got["good.sh"].Changed || !got["notes.txt"].Changed {
		t.Errorf("expected good.sh and forced notes.txt to change: %+v", results)
	}
}

func TestFormatPathsNoFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, tree{"README.md": "# readme\n"})

	_, err := FormatPaths(context.Background(), newTestPlugin(t), []string{root}, FormatOptions{})
	if !errors.Is(err, ErrNoFiles) {
		t.Errorf("expected ErrNoFiles, got %v", err)
	}
}

func TestFormatPathsExclude(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, tree{
		"keep.sh":        "#!  /bin/sh\n",
		"vendor/skip.sh": "#!  /bin/sh\n",
		"gen/out.sh":     "#!  /bin/sh\n",
	})

	cfg := matcher.DefaultConfig()
	cfg.Exclude = []string{"vendor", "gen/**"}
	m, err := matcher.New(cfg)
	if err != nil {
		t.Fatal(err)
	}

	results, err := FormatPaths(context.Background(), newTestPlugin(t), []string{root}, FormatOptions{Matcher: m, Check: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || filepath.Base(results[0].Path) != "keep.sh" {
		t.Errorf("expected only keep.sh, got %+v", results)
	}
}

func TestFormatPathsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := FormatPaths(ctx, newTestPlugin(t), []string{t.TempDir()}, FormatOptions{}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestFormatPathsMissing(t *testing.T) {
	_, err := FormatPaths(context.Background(), newTestPlugin(t), []string{filepath.Join(t.TempDir(), "missing.sh")}, FormatOptions{})
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}
