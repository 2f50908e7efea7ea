// Package driver formats files and directory trees on disk.
package driver

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/baditaflorin/go_shebang/internal/adapters/matcher"
	"github.com/baditaflorin/go_shebang/internal/ports"
	"github.com/baditaflorin/go_shebang/pkg/plugin"
)

// ErrNoFiles is returned when the given paths contain no eligible file.
var ErrNoFiles = errors.New("format: no eligible files found")

// FormatOptions controls FormatPaths.
type FormatOptions struct {
	// Check reports pending changes without writing them.
	Check bool
	// Stdout collects the formatted content instead of rewriting files.
	Stdout bool
	// Force formats explicitly named files even if the matcher rejects them.
	Force bool
	// Jobs bounds concurrency. Values below 1 mean one.
	Jobs int
	// Matcher decides eligibility while walking directories.
	Matcher *matcher.Matcher
	// Logger receives per-file records.
	Logger ports.Logger
}

// FormatResult holds the outcome for one file.
type FormatResult struct {
	Path    string
	Changed bool
	// Formatted is the full file content, set only in Stdout mode.
	Formatted []byte
	Err       error
}

// FormatPaths formats every eligible file under paths. Per-file failures
// are reported in the results and do not stop the run.
func FormatPaths(ctx context.Context, p *plugin.Plugin, paths []string, opts FormatOptions) ([]FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.Matcher == nil {
		opts.Matcher = matcher.NewDefault()
	}

	files, err := collectFiles(ctx, paths, opts.Matcher, opts.Force)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	jobs := opts.Jobs
	if jobs < 1 {
		jobs = 1
	}

	results := make([]FormatResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = formatSingleFile(p, path, opts)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func formatSingleFile(p *plugin.Plugin, path string, opts FormatOptions) FormatResult {
	result := FormatResult{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Err = err
		return result
	}

	formatted, changed, err := p.Format(plugin.Request{Path: path, FileBytes: data})
	if err != nil {
		result.Err = err
		return result
	}
	result.Changed = changed

	if opts.Stdout {
		if changed {
			result.Formatted = formatted
		} else {
			result.Formatted = data
		}
		return result
	}
	if opts.Check || !changed {
		return result
	}

	mode := os.FileMode(0o644)
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode()
	}
	if err := os.WriteFile(path, formatted, mode.Perm()); err != nil {
		result.Err = err
		result.Changed = false
		return result
	}
	if opts.Logger != nil {
		opts.Logger.Info("Reformatted file", "path", path)
	}
	return result
}

// collectFiles expands directories and returns a sorted, deduplicated list.
// Explicitly named files are kept when force is set or the matcher accepts
// them; files found while walking always go through the matcher, which sees
// their path relative to the walked directory.
func collectFiles(ctx context.Context, paths []string, m *matcher.Matcher, force bool) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		clean := filepath.Clean(path)
		if _, ok := seen[clean]; ok {
			return
		}
		seen[clean] = struct{}{}
		files = append(files, clean)
	}

	for _, root := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if force || m.Match(root) {
				add(root)
			}
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && (d.Name() == ".git" || m.Excluded(rel)) {
					return filepath.SkipDir
				}
				return nil
			}
			if d.Type().IsRegular() && m.Match(rel) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}
