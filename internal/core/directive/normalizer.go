package directive

import (
	"fmt"
	"unicode/utf8"

	"github.com/baditaflorin/go_shebang/internal/core/domain"
	"github.com/baditaflorin/go_shebang/internal/ports"
)

// Normalizer implements the directive normalization.
type Normalizer struct {
	logger   ports.Logger
	renderer ports.Renderer
}

// NewNormalizer creates a new directive normalizer. A nil renderer falls
// back to Render.
func NewNormalizer(logger ports.Logger, renderer ports.Renderer) *Normalizer {
	if renderer == nil {
		renderer = RendererFunc(Render)
	}
	return &Normalizer{
		logger:   logger,
		renderer: renderer,
	}
}

// Normalize parses the directive of text and renders it in canonical form.
func (n *Normalizer) Normalize(text string) domain.Result {
	d, ok := Parse(text)
	if !ok {
		n.debug("No directive line", "length", len(text))
		return domain.Result{Outcome: domain.NotDirective}
	}

	rendered := n.renderer.Render(d, text)
	if rendered == text {
		n.debug("Directive already canonical",
			"interpreter", d.Interpreter,
			"arguments", d.Arguments,
		)
		return domain.Result{Outcome: domain.Canonical, Directive: d}
	}

	n.debug("Directive rewritten",
		"interpreter", d.Interpreter,
		"arguments", d.Arguments,
		"line_end", d.LineEnd,
	)
	return domain.Result{Outcome: domain.Rewritten, Text: rendered, Directive: d}
}

// NormalizeBytes decodes data as UTF-8 and normalizes it. It fails with an
// error wrapping domain.ErrDecode when data is not valid UTF-8.
func (n *Normalizer) NormalizeBytes(data []byte) (domain.Result, error) {
	if err := Decode(data); err != nil {
		n.debug("Rejecting undecodable input", "error", err)
		return domain.Result{}, err
	}
	return n.Normalize(string(data)), nil
}

func (n *Normalizer) debug(msg string, keysAndValues ...interface{}) {
	if n.logger != nil {
		n.logger.Debug(msg, keysAndValues...)
	}
}

// Decode verifies that data is valid UTF-8 and reports the offset of the
// first invalid sequence otherwise.
func Decode(data []byte) error {
	if utf8.Valid(data) {
		return nil
	}
	offset := 0
	for offset < len(data) {
		r, size := utf8.DecodeRune(data[offset:])
		if r == utf8.RuneError && size <= 1 {
			break
		}
		offset += size
	}
	return fmt.Errorf("%w: invalid byte sequence at offset %d", domain.ErrDecode, offset)
}

// RendererFunc adapts a plain function to ports.Renderer.
type RendererFunc func(d domain.Directive, text string) string

// Render calls f(d, text).
func (f RendererFunc) Render(d domain.Directive, text string) string {
	return f(d, text)
}

var _ ports.Normalizer = (*Normalizer)(nil)
