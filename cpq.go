// Package cpq compiles CPL source code into quad programs for the quad
// virtual machine. Compilation is a fixed pipeline: lexical analysis, LALR
// parsing, symbol table construction, IR synthesis with symbolic labels, and
// label resolution. The first phase to record diagnostics ends the run; a
// program is produced only from a completely clean pipeline.
package cpq

import (
	"fmt"
	"io"
	"strings"

	"github.com/dekarrin/ictiobus/lex"
	"github.com/dekarrin/ictiobus/parse"

	"github.com/dekarrin/cpq/cpl/fe"
	"github.com/dekarrin/cpq/cpl/fe/cpltoken"
	"github.com/dekarrin/cpq/cpl/ir"
	"github.com/dekarrin/cpq/cpl/symbols"
	"github.com/dekarrin/cpq/internal/diag"
	"github.com/dekarrin/cpq/quad"
)

// Compile reads CPL source from r and compiles it. On success the returned
// diagnostics slice is empty and the program is the fully resolved quad
// sequence ending in HALT. If the source has problems, the program is nil and
// the diagnostics describe them in report order.
//
// The returned error is reserved for failures of the compiler itself (I/O
// problems, violated internal invariants); it is never used for problems with
// the source being compiled.
func Compile(r io.Reader) (quad.Program, []diag.Diagnostic, error) {
	log := &diag.Log{}

	pt, ok, err := parseSource(r, log)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, log.Diagnostics(), nil
	}

	// symbol table construction
	syms := symbols.Build(pt, log)
	if log.HasErrors() {
		return nil, log.Diagnostics(), nil
	}

	// IR synthesis
	tr := ir.NewTranslation(syms, log)
	sdts := fe.SDTS()
	sdts.SetHooks(tr.Hooks())

	vals, _, err := sdts.Evaluate(pt, "ir")
	if err != nil {
		return nil, nil, err
	}
	if log.HasErrors() {
		return nil, log.Diagnostics(), nil
	}
	if len(vals) != 1 {
		return nil, nil, fmt.Errorf("requested IR attribute from root node but got %d values back", len(vals))
	}
	root, ok := vals[0].(*ir.Node)
	if !ok {
		return nil, nil, fmt.Errorf("root IR attribute is not a translation node")
	}

	// label resolution
	prog, err := quad.Resolve(root.Code)
	if err != nil {
		return nil, nil, err
	}

	return prog, nil, nil
}

// CompileString is the same as Compile but accepts the source as a string.
func CompileString(s string) (quad.Program, []diag.Diagnostic, error) {
	return Compile(strings.NewReader(s))
}

// Symbols runs only the front half of the pipeline — lexical analysis,
// parsing and symbol table construction — and returns the declared symbols.
// Diagnostics and errors behave as they do for Compile: a non-empty
// diagnostics slice means no table is returned.
func Symbols(r io.Reader) (*symbols.Table, []diag.Diagnostic, error) {
	log := &diag.Log{}

	pt, ok, err := parseSource(r, log)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, log.Diagnostics(), nil
	}

	syms := symbols.Build(pt, log)
	if log.HasErrors() {
		return nil, log.Diagnostics(), nil
	}

	return syms, nil, nil
}

// SymbolsString is the same as Symbols but accepts the source as a string.
func SymbolsString(s string) (*symbols.Table, []diag.Diagnostic, error) {
	return Symbols(strings.NewReader(s))
}

// parseSource runs lexical and syntactic analysis. It returns ok=false when
// either phase recorded diagnostics on log, in which case the tree must not
// be used.
func parseSource(r io.Reader, log *diag.Log) (pt parse.Tree, ok bool, err error) {
	tokens, err := lexTokens(r, log)
	if err != nil {
		return pt, false, err
	}
	if log.HasErrors() {
		return pt, false, nil
	}

	p, _, err := fe.Parser()
	if err != nil {
		return pt, false, err
	}

	stream := newListStream(tokens)
	pt, parseErr := p.Parse(stream)
	if parseErr != nil {
		line, found := stream.lastPosition()
		log.Addf(diag.UnexpectedToken, line, "Unexpected token %s, should be %s", found, expectationOf(parseErr))
		return pt, false, nil
	}

	return pt, true, nil
}

// lexTokens tokenizes the entire input, recording a diagnostic for every
// invalid token and returning the stream contents with invalid tokens
// filtered out. The parser never sees a token class it has no grammar rule
// for.
func lexTokens(r io.Reader, log *diag.Log) ([]lex.Token, error) {
	stream, err := fe.Lexer(false).Lex(r)
	if err != nil {
		return nil, err
	}

	var tokens []lex.Token
	for stream.HasNext() {
		tok := stream.Next()
		if tok.Class().ID() == cpltoken.TCInvalid.ID() {
			log.Addf(diag.InvalidToken, tok.Line(), "Invalid token %s", tok.Lexeme())
			continue
		}
		tokens = append(tokens, tok)
	}

	return tokens, nil
}

// listStream is a lex.TokenStream over an already-lexed token slice. It
// remembers the last token handed out so syntax errors can be attributed to a
// source line.
type listStream struct {
	tokens []lex.Token
	cur    int
}

func newListStream(tokens []lex.Token) *listStream {
	return &listStream{tokens: tokens}
}

func (ls *listStream) Next() lex.Token {
	tok := ls.Peek()
	if ls.cur < len(ls.tokens) {
		ls.cur++
	}
	return tok
}

func (ls *listStream) Peek() lex.Token {
	if ls.cur >= len(ls.tokens) {
		return ls.tokens[len(ls.tokens)-1]
	}
	return ls.tokens[ls.cur]
}

func (ls *listStream) HasNext() bool {
	return ls.cur < len(ls.tokens)
}

// lastPosition describes where parsing stopped: the line of the most recently
// consumed token and a printable name for it.
func (ls *listStream) lastPosition() (line int, found string) {
	idx := ls.cur
	if idx > 0 {
		idx--
	}
	if len(ls.tokens) == 0 {
		return 1, "end of input"
	}

	tok := ls.tokens[idx]
	found = tok.Lexeme()
	if found == "" {
		found = tok.Class().Human()
	}
	return tok.Line(), found
}

// expectationOf pulls the expected-token description out of a parser error
// message, falling back to a generic phrase when the error does not carry
// one.
func expectationOf(err error) string {
	msg := err.Error()
	if i := strings.LastIndex(msg, "expected "); i >= 0 {
		exp := strings.TrimSpace(msg[i+len("expected "):])
		exp = strings.TrimRight(exp, ".")
		if exp != "" {
			return exp
		}
	}
	return "a different token"
}
