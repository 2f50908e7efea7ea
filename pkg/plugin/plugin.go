// Package plugin exposes the directive formatter to a host formatting
// runtime: plugin metadata, file matching, configuration resolution, and
// range-restricted formatting requests.
package plugin

import (
	"errors"
	"fmt"
	"sort"

	shebang "github.com/baditaflorin/go_shebang"
	"github.com/baditaflorin/go_shebang/internal/adapters/matcher"
	"github.com/baditaflorin/go_shebang/internal/ports"
	"github.com/baditaflorin/go_shebang/internal/version"
)

const (
	// Name is the plugin name reported to hosts.
	Name = "shebang"
	// ConfigKey is the key of the plugin section in host configuration.
	ConfigKey = "shebang"
	// HelpURL points at the project page.
	HelpURL = "https://github.com/baditaflorin/go_shebang"
)

// ErrInvalidRange is returned for a range whose end precedes its start.
var ErrInvalidRange = errors.New("invalid format range")

// Info describes the plugin to the host.
type Info struct {
	Name            string `json:"name"`
	Version         string `json:"version"`
	ConfigKey       string `json:"configKey"`
	HelpURL         string `json:"helpUrl"`
	ConfigSchemaURL string `json:"configSchemaUrl"`
	UpdateURL       string `json:"updateUrl,omitempty"`
}

// FileMatchingInfo tells the host which files to route to the plugin.
type FileMatchingInfo struct {
	FileExtensions []string `json:"fileExtensions"`
	FileNames      []string `json:"fileNames"`
}

// Configuration is the resolved plugin configuration. The formatter has no
// options.
type Configuration struct{}

// Diagnostic reports a problem with a configuration property.
type Diagnostic struct {
	PropertyName string `json:"propertyName"`
	Message      string `json:"message"`
}

// ResolveResult is returned by ResolveConfig.
type ResolveResult struct {
	Config       Configuration    `json:"config"`
	Diagnostics  []Diagnostic     `json:"diagnostics"`
	FileMatching FileMatchingInfo `json:"fileMatching"`
}

// Range is a half-open byte range [Start, End) of a file.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Request is a single format request from the host.
type Request struct {
	Path      string
	FileBytes []byte
	// Range optionally restricts formatting to part of the file.
	Range *Range
}

// Plugin implements the host-facing handler.
type Plugin struct {
	formatter *shebang.Shebang
	matcher   *matcher.Matcher
	logger    ports.Logger
}

// New creates a plugin around formatter. A nil fileMatcher uses the
// built-in tables.
func New(formatter *shebang.Shebang, fileMatcher *matcher.Matcher, logger ports.Logger) *Plugin {
	if fileMatcher == nil {
		fileMatcher = matcher.NewDefault()
	}
	return &Plugin{
		formatter: formatter,
		matcher:   fileMatcher,
		logger:    logger,
	}
}

// Info returns the plugin metadata.
func (p *Plugin) Info() Info {
	return Info{
		Name:      Name,
		Version:   version.Version,
		ConfigKey: ConfigKey,
		HelpURL:   HelpURL,
	}
}

// LicenseText returns the plugin license.
func (p *Plugin) LicenseText() string {
	return shebang.LicenseText()
}

// FileMatching returns the extensions and file names handled by the plugin.
func (p *Plugin) FileMatching() FileMatchingInfo {
	return FileMatchingInfo{
		FileExtensions: p.matcher.Extensions(),
		FileNames:      p.matcher.FileNames(),
	}
}

// Matches reports whether path would be routed to the plugin.
func (p *Plugin) Matches(path string) bool {
	return p.matcher.Match(path)
}

// ResolveConfig resolves the plugin section of the host configuration. The
// plugin takes no options, so every key produces a diagnostic.
func (p *Plugin) ResolveConfig(raw map[string]interface{}) ResolveResult {
	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	diagnostics := make([]Diagnostic, 0, len(keys))
	for _, key := range keys {
		diagnostics = append(diagnostics, Diagnostic{
			PropertyName: key,
			Message:      fmt.Sprintf("unknown property in configuration: %s", key),
		})
	}

	return ResolveResult{
		Config:       Configuration{},
		Diagnostics:  diagnostics,
		FileMatching: p.FileMatching(),
	}
}

// Format handles a request. It returns the complete replacement file
// content and true, or nil and false when nothing changes.
//
// A directive can only start at offset 0 of a file, so a range starting
// anywhere else is never parsed. A range starting at 0 restricts scanning
// to the bytes inside it; bytes past the range are carried over untouched.
func (p *Plugin) Format(req Request) ([]byte, bool, error) {
	data := req.FileBytes
	var rest []byte
	if r := req.Range; r != nil {
		if r.End < r.Start {
			return nil, false, fmt.Errorf("%w: [%d, %d)", ErrInvalidRange, r.Start, r.End)
		}
		if r.Start != 0 {
			p.logger.Debug("Skipping range not starting at file start",
				"path", req.Path,
				"start", r.Start,
				"end", r.End,
			)
			return nil, false, nil
		}
		end := r.End
		if end > len(data) {
			end = len(data)
		}
		data, rest = data[:end], data[end:]
	}

	formatted, changed, err := p.formatter.FormatBytes(data)
	if err != nil {
		p.logger.Error("Failed to decode file", "path", req.Path, "error", err)
		if req.Path == "" {
			return nil, false, err
		}
		return nil, false, fmt.Errorf("%s: %w", req.Path, err)
	}
	if !changed {
		return nil, false, nil
	}

	out := make([]byte, 0, len(formatted)+len(rest))
	out = append(out, formatted...)
	out = append(out, rest...)
	p.logger.Debug("Formatted directive", "path", req.Path, "bytes", len(out))
	return out, true, nil
}
