// shebang.go
// Package shebang normalizes the interpreter directive ("#!") at the start
// of script files.
//
// A directive such as
//
//	#! \t /usr/bin/env \t python3 -u \n
//
// is rewritten to
//
//	#!/usr/bin/env python3 -u \n
//
// Blanks between "#!" and the interpreter are dropped, the blanks separating
// the interpreter from its arguments collapse to a single space, and the
// arguments themselves, trailing blanks included, are kept verbatim. Only
// the first ScanLimit bytes are ever scanned and no byte from the line
// terminator onward is touched.
package shebang

import (
	"github.com/baditaflorin/go_shebang/internal/adapters/logger"
	"github.com/baditaflorin/go_shebang/internal/adapters/renderer"
	"github.com/baditaflorin/go_shebang/internal/core/directive"
	"github.com/baditaflorin/go_shebang/internal/core/domain"
	"github.com/baditaflorin/go_shebang/internal/ports"
	"github.com/baditaflorin/l"
)

// ScanLimit is the number of leading bytes inspected for a directive.
const ScanLimit = directive.ScanLimit

// ErrDecode is returned by FormatBytes when the input is not valid UTF-8.
var ErrDecode = domain.ErrDecode

// Shebang formats interpreter directive lines.
type Shebang struct {
	normalizer ports.Normalizer
	logger     ports.Logger
}

// Option defines a functional option for configuring Shebang.
type Option func(*shebangConfig)

type shebangConfig struct {
	Logger     ports.Logger
	Renderer   ports.Renderer
	Normalizer ports.Normalizer
}

// WithLogger sets a custom logger.
func WithLogger(lg l.Logger) Option {
	return func(cfg *shebangConfig) {
		cfg.Logger = logger.FromExisting(lg)
	}
}

// WithPortsLogger sets a logger implementing the internal logging port.
func WithPortsLogger(lg ports.Logger) Option {
	return func(cfg *shebangConfig) {
		cfg.Logger = lg
	}
}

// WithPooledRenderer renders through pooled buffers. It is meant for
// callers formatting many files concurrently.
func WithPooledRenderer() Option {
	return func(cfg *shebangConfig) {
		cfg.Renderer = renderer.New(renderer.PooledType)
	}
}

// WithNormalizer replaces the normalizer entirely.
func WithNormalizer(n ports.Normalizer) Option {
	return func(cfg *shebangConfig) {
		cfg.Normalizer = n
	}
}

// New creates a new Shebang instance.
// If no logger is provided, a default logger is created.
func New(opts ...Option) (*Shebang, error) {
	cfg := &shebangConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.Logger == nil {
		var err error
		cfg.Logger, err = createDefaultLogger()
		if err != nil {
			return nil, err
		}
	}

	if cfg.Normalizer == nil {
		if cfg.Renderer == nil {
			cfg.Renderer = renderer.New(renderer.DefaultType)
		}
		cfg.Normalizer = directive.NewNormalizer(cfg.Logger, cfg.Renderer)
	}

	return &Shebang{
		normalizer: cfg.Normalizer,
		logger:     cfg.Logger,
	}, nil
}

// Format returns the text with its directive line in canonical form. The
// bool is false when nothing has to change, either because text has no
// directive line or because it is already canonical.
func (s *Shebang) Format(text string) (string, bool) {
	res := s.normalizer.Normalize(text)
	if !res.Changed() {
		return "", false
	}
	return res.Text, true
}

// FormatBytes is Format for raw file content. It fails with an error
// wrapping ErrDecode when data is not valid UTF-8.
func (s *Shebang) FormatBytes(data []byte) ([]byte, bool, error) {
	res, err := s.normalizer.NormalizeBytes(data)
	if err != nil {
		return nil, false, err
	}
	if !res.Changed() {
		return nil, false, nil
	}
	return []byte(res.Text), true, nil
}

// Inspect returns the full normalization result, which tells apart a text
// without directive from one that is already canonical.
func (s *Shebang) Inspect(text string) domain.Result {
	return s.normalizer.Normalize(text)
}

// Close releases the logger.
func (s *Shebang) Close() error {
	return s.logger.Close()
}

var defaultShebang = &Shebang{
	normalizer: directive.NewNormalizer(logger.NewNop(), renderer.NewDefaultRenderer()),
	logger:     logger.NewNop(),
}

// FormatWithDefaults formats text with a silent, default-configured instance.
func FormatWithDefaults(text string) (string, bool) {
	return defaultShebang.Format(text)
}
