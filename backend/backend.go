// Package backend defines the contract between the literate evaluator and
// the interpreters that compute results.
package backend

import "context"

// SourceKind tells an interpreter where source text came from.
type SourceKind int

const (
	// SourceInternal is text generated by the tool itself, such as the
	// prelude bootstrap statement.
	SourceInternal SourceKind = iota
	// SourceText is text taken from the user's document.
	SourceText
)

func (k SourceKind) String() string {
	switch k {
	case SourceInternal:
		return "internal"
	case SourceText:
		return "text"
	default:
		return "unknown"
	}
}

// Metadata describes an interpreted batch.
type Metadata struct {
	Source     string
	Statements int
	Declared   []string
}

// Value is the result of interpreting a batch.
type Value interface {
	Render() (string, error)
}

// Interpreter evaluates source text in a persistent session. State created
// by one call (bindings, loaded modules) is visible to every later call.
type Interpreter interface {
	Interpret(ctx context.Context, src string, kind SourceKind) (Metadata, Value, error)
}

// Namer is implemented by interpreters that can list the names currently
// in scope.
type Namer interface {
	Names() []string
}
