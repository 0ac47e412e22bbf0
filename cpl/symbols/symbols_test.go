package symbols_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/cpq/cpl/fe"
	"github.com/dekarrin/cpq/cpl/symbols"
	"github.com/dekarrin/cpq/internal/diag"
)

func buildFromSource(t *testing.T, src string) (*symbols.Table, *diag.Log) {
	t.Helper()

	tokens, err := fe.Lexer(false).Lex(strings.NewReader(src))
	if err != nil {
		t.Fatalf("lexing: %v", err)
	}

	p, _, err := fe.Parser()
	if err != nil {
		t.Fatalf("constructing parser: %v", err)
	}

	pt, err := p.Parse(tokens)
	if err != nil {
		t.Fatalf("parsing: %v", err)
	}

	log := &diag.Log{}
	return symbols.Build(pt, log), log
}

func Test_Build_declarations(t *testing.T) {
	assert := assert.New(t)

	tbl, log := buildFromSource(t, "int a, b;\nfloat x;\n{ }")

	assert.False(log.HasErrors())

	a, ok := tbl.Lookup("a")
	if assert.True(ok) {
		assert.Equal(symbols.TypeInt, a.Type)
		assert.Equal(1, a.Line)
	}

	b, ok := tbl.Lookup("b")
	if assert.True(ok) {
		assert.Equal(symbols.TypeInt, b.Type)
	}

	x, ok := tbl.Lookup("x")
	if assert.True(ok) {
		assert.Equal(symbols.TypeFloat, x.Type)
		assert.Equal(2, x.Line)
	}

	_, ok = tbl.Lookup("y")
	assert.False(ok)
}

func Test_Build_typeDoesNotLeakBetweenDeclarations(t *testing.T) {
	assert := assert.New(t)

	tbl, log := buildFromSource(t, "float f;\nint i;\nfloat g;\n{ }")

	assert.False(log.HasErrors())

	f, _ := tbl.Lookup("f")
	i, _ := tbl.Lookup("i")
	g, _ := tbl.Lookup("g")

	assert.Equal(symbols.TypeFloat, f.Type)
	assert.Equal(symbols.TypeInt, i.Type)
	assert.Equal(symbols.TypeFloat, g.Type)
}

func Test_Build_redefinition(t *testing.T) {
	assert := assert.New(t)

	tbl, log := buildFromSource(t, "int a;\nfloat a;\n{ }")

	diags := log.Diagnostics()
	if !assert.Len(diags, 1) {
		return
	}
	assert.Equal(diag.SymbolRedefinition, diags[0].Kind)
	assert.Equal(2, diags[0].Line)
	assert.Equal("Error in line 2: Symbol a already defined in line 1", diags[0].String())

	// the first definition stays intact
	a, ok := tbl.Lookup("a")
	if assert.True(ok) {
		assert.Equal(symbols.TypeInt, a.Type)
		assert.Equal(1, a.Line)
	}
}

func Test_Table_All(t *testing.T) {
	assert := assert.New(t)

	tbl := symbols.NewTable()
	tbl.Define("z", symbols.TypeInt, 1)
	tbl.Define("a", symbols.TypeFloat, 2)

	all := tbl.All()
	if assert.Len(all, 2) {
		assert.Equal("a", all[0].Name)
		assert.Equal("z", all[1].Name)
	}
}
