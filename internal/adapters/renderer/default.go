package renderer

import (
	"github.com/baditaflorin/go_shebang/internal/core/directive"
	"github.com/baditaflorin/go_shebang/internal/core/domain"
	"github.com/baditaflorin/go_shebang/internal/ports"
)

// DefaultRenderer builds the canonical text with a fresh strings.Builder.
type DefaultRenderer struct{}

// NewDefaultRenderer creates a new default renderer.
func NewDefaultRenderer() ports.Renderer {
	return &DefaultRenderer{}
}

// Render writes "#!interpreter[ arguments]" followed by the rest of text.
func (r *DefaultRenderer) Render(d domain.Directive, text string) string {
	return directive.Render(d, text)
}
