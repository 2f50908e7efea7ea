package ports

import "github.com/baditaflorin/go_shebang/internal/core/domain"

// Renderer turns a parsed directive back into the full text of the file.
type Renderer interface {
	Render(d domain.Directive, text string) string
}

// Normalizer rewrites the directive line of a text into canonical form.
type Normalizer interface {
	Normalize(text string) domain.Result
	NormalizeBytes(data []byte) (domain.Result, error)
}
