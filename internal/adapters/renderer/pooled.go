package renderer

import (
	"github.com/baditaflorin/go_shebang/internal/core/directive"
	"github.com/baditaflorin/go_shebang/internal/core/domain"
	"github.com/baditaflorin/go_shebang/internal/pool"
	"github.com/baditaflorin/go_shebang/internal/ports"
)

// PooledRenderer renders through reusable byte buffers, which pays off when
// many files are formatted concurrently.
type PooledRenderer struct {
	bytePool *pool.BufferPool
}

// NewPooledRenderer creates a new pooled renderer
func NewPooledRenderer() ports.Renderer {
	return &PooledRenderer{
		bytePool: pool.NewBufferPool(directive.ScanLimit + 64),
	}
}

// Render writes "#!interpreter[ arguments]" followed by the rest of text.
func (r *PooledRenderer) Render(d domain.Directive, text string) string {
	bufPtr := r.bytePool.Get()
	defer r.bytePool.Put(bufPtr)

	buf := (*bufPtr)[:0]
	if need := directive.RenderedLen(d, text); cap(buf) < need {
		buf = make([]byte, 0, need)
	}

	buf = append(buf, directive.Marker...)
	buf = append(buf, d.Interpreter...)
	if d.HasArguments() {
		buf = append(buf, directive.Space)
		buf = append(buf, d.Arguments...)
	}
	buf = append(buf, text[d.LineEnd:]...)

	// Keep the grown buffer only if it stays reasonably small.
	if cap(buf) <= r.bytePool.MaxRetained() {
		*bufPtr = buf
	}
	return string(buf)
}

// Type of renderer to create
type Type int

const (
	// DefaultType allocates a builder per call
	DefaultType Type = iota
	// PooledType reuses pooled byte buffers
	PooledType
)

// New creates a renderer of the specified type
func New(t Type) ports.Renderer {
	switch t {
	case PooledType:
		return NewPooledRenderer()
	default:
		return NewDefaultRenderer()
	}
}
