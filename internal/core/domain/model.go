package domain

// Directive is the parsed form of an interpreter directive line ("#!...").
type Directive struct {
	// Interpreter is the token following "#!" and any leading blanks. It is
	// never empty and never contains a space, tab or line terminator.
	Interpreter string
	// Arguments is everything after the separator up to the line terminator,
	// trailing blanks included. Empty when the directive has no arguments.
	Arguments string
	// LineEnd is the offset in the original text where the line terminator
	// (or the end of the scanned window) begins.
	LineEnd int
}

// HasArguments reports whether the directive carries an argument string.
func (d Directive) HasArguments() bool {
	return d.Arguments != ""
}

// Outcome describes how a normalization call ended.
type Outcome int

const (
	// NotDirective means the text does not start with a directive line.
	NotDirective Outcome = iota
	// Canonical means the directive is already in canonical form.
	Canonical
	// Rewritten means the directive line was rewritten.
	Rewritten
)

// String returns the outcome name used in logs and JSON output.
func (o Outcome) String() string {
	switch o {
	case NotDirective:
		return "not_directive"
	case Canonical:
		return "canonical"
	case Rewritten:
		return "rewritten"
	default:
		return "unknown"
	}
}

// Result holds the outcome of a normalization.
type Result struct {
	Outcome Outcome
	// Text is the full replacement text. Only set when Outcome is Rewritten.
	Text string
	// Directive is the parsed directive. Zero when Outcome is NotDirective.
	Directive Directive
}

// Changed reports whether the caller has to replace its text. It is false
// both for texts without a directive and for canonical directives.
func (r Result) Changed() bool {
	return r.Outcome == Rewritten
}
