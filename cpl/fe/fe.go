// Package fe assembles the complete compilation frontend for CPL: the lexer,
// the LALR(1) parser for the CPL grammar, and the syntax-directed translation
// scheme that synthesizes quad IR from parse trees. The heavy lifting is done
// by ictiobus; this package only describes CPL to it.
//
// The compiler driver in the root package runs the frontend's pieces one
// phase at a time so that it can filter invalid tokens, build the symbol
// table between parsing and translation, and stop at the first phase that
// reports diagnostics. Frontend is provided for callers that want the whole
// text-to-IR analysis in one step and do not need phase separation.
package fe

import (
	"github.com/dekarrin/ictiobus"
	"github.com/dekarrin/ictiobus/trans"

	"github.com/dekarrin/cpq/cpl/ir"
	"github.com/dekarrin/cpq/internal/version"
)

// Frontend returns a complete ictiobus frontend for CPL with the given hooks
// attached to its translation scheme. The IR attribute of the returned
// frontend is "ir"; analyzing a program with it produces the root *ir.Node.
func Frontend(hooks trans.HookMap) (ictiobus.Frontend[*ir.Node], error) {
	p, _, err := Parser()
	if err != nil {
		return ictiobus.Frontend[*ir.Node]{}, err
	}

	sdts := SDTS()
	sdts.SetHooks(hooks)

	front := ictiobus.Frontend[*ir.Node]{
		Lexer:       Lexer(false),
		Parser:      p,
		SDTS:        sdts,
		IRAttribute: "ir",
		Language:    "CPL",
		Version:     version.Current,
	}

	return front, nil
}
