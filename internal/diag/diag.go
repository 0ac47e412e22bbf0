// Package diag contains the shared diagnostic accumulator used by every phase
// of compilation. A diagnostic is a user-facing problem with the source being
// compiled, as opposed to a Go error, which indicates a problem with the
// compiler itself or its environment.
package diag

import "fmt"

// Kind classifies a diagnostic by the phase and rule that produced it.
type Kind int

const (
	// InvalidToken is a character sequence that matched no lexer rule.
	InvalidToken Kind = iota

	// UnexpectedToken is a token the parser could not accept.
	UnexpectedToken

	// SymbolRedefinition is a second declaration of an already-declared name.
	SymbolRedefinition

	// SymbolUndefined is a use of a name that was never declared.
	SymbolUndefined

	// Semantic is any other semantic rule violation found during IR synthesis.
	Semantic
)

func (k Kind) String() string {
	switch k {
	case InvalidToken:
		return "invalid-token"
	case UnexpectedToken:
		return "unexpected-token"
	case SymbolRedefinition:
		return "symbol-redefinition"
	case SymbolUndefined:
		return "symbol-undefined"
	case Semantic:
		return "semantic"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Diagnostic is a single line-numbered problem report.
type Diagnostic struct {
	Kind    Kind
	Line    int
	Message string
}

// String formats the diagnostic the way it is shown to the user.
func (d Diagnostic) String() string {
	return fmt.Sprintf("Error in line %d: %s", d.Line, d.Message)
}

// Log accumulates diagnostics in the order they are reported. The zero value
// is an empty log ready for use.
type Log struct {
	entries []Diagnostic
}

// Addf records a diagnostic of kind k at the given source line.
func (l *Log) Addf(k Kind, line int, format string, a ...interface{}) {
	l.entries = append(l.entries, Diagnostic{
		Kind:    k,
		Line:    line,
		Message: fmt.Sprintf(format, a...),
	})
}

// HasErrors returns whether any diagnostic has been recorded.
func (l *Log) HasErrors() bool {
	return len(l.entries) > 0
}

// Len returns the number of recorded diagnostics.
func (l *Log) Len() int {
	return len(l.entries)
}

// Diagnostics returns the recorded diagnostics in report order. The returned
// slice is a copy; mutating it does not affect the log.
func (l *Log) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(l.entries))
	copy(out, l.entries)
	return out
}
