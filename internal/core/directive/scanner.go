// Package directive parses and renders the interpreter directive ("#!") that
// may open the first line of a script file.
package directive

import (
	"strings"
	"unicode/utf8"

	"github.com/baditaflorin/go_shebang/internal/core/domain"
)

const (
	// Marker is the two-byte prefix of a directive line.
	Marker = "#!"

	// ScanLimit bounds how many leading bytes of a text are ever scanned.
	// Content beyond it never influences the parse.
	ScanLimit = 1024

	// Blank characters separating directive tokens.
	Space = ' '
	Tab   = '\t'

	// Line terminators.
	CR = '\r'
	LF = '\n'
)

// Window returns the prefix of text that Parse looks at: the first
// ScanLimit bytes, shortened so that no UTF-8 sequence is cut in half.
func Window(text string) string {
	if len(text) <= ScanLimit {
		return text
	}
	n := ScanLimit
	for n > 0 && !utf8.RuneStart(text[n]) {
		n--
	}
	return text[:n]
}

// Parse scans the directive at the very start of text.
//
// The returned bool is false when text does not begin with "#!" followed by
// a non-empty interpreter token within the scanned window.
func Parse(text string) (domain.Directive, bool) {
	window := Window(text)
	if !strings.HasPrefix(window, Marker) {
		return domain.Directive{}, false
	}

	// Interpreter state.
	start := skipBlanks(window, len(Marker))
	i := start
	for i < len(window) && !isBlank(window[i]) && !isLineEnd(window[i]) {
		i++
	}
	if i == start {
		return domain.Directive{}, false
	}
	d := domain.Directive{Interpreter: window[start:i]}

	// Arguments state. Blanks right after the interpreter are a separator;
	// once a non-blank is seen everything up to the terminator is kept.
	argStart := skipBlanks(window, i)
	end := lineEnd(window, argStart)
	if argStart > i && argStart < end {
		d.Arguments = window[argStart:end]
	}
	d.LineEnd = end
	return d, true
}

// Render writes the canonical directive followed by the untouched remainder
// of text, starting at the line terminator.
func Render(d domain.Directive, text string) string {
	var sb strings.Builder
	sb.Grow(RenderedLen(d, text))
	sb.WriteString(Marker)
	sb.WriteString(d.Interpreter)
	if d.HasArguments() {
		sb.WriteByte(Space)
		sb.WriteString(d.Arguments)
	}
	sb.WriteString(text[d.LineEnd:])
	return sb.String()
}

// RenderedLen returns the byte length Render produces for d and text.
func RenderedLen(d domain.Directive, text string) int {
	n := len(Marker) + len(d.Interpreter) + len(text) - d.LineEnd
	if d.HasArguments() {
		n += 1 + len(d.Arguments)
	}
	return n
}

func skipBlanks(s string, i int) int {
	for i < len(s) && isBlank(s[i]) {
		i++
	}
	return i
}

// lineEnd returns the offset of the first CR or LF at or after i, or len(s).
func lineEnd(s string, i int) int {
	if j := strings.IndexAny(s[i:], "\r\n"); j >= 0 {
		return i + j
	}
	return len(s)
}

func isBlank(c byte) bool {
	return c == Space || c == Tab
}

func isLineEnd(c byte) bool {
	return c == CR || c == LF
}
