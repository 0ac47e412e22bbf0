package fe

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/cpq/cpl/ir"
	"github.com/dekarrin/cpq/cpl/symbols"
	"github.com/dekarrin/cpq/internal/diag"
	"github.com/dekarrin/cpq/quad"
)

func Test_Lex(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect []string
	}{
		{
			name:   "int num",
			input:  "88",
			expect: []string{"num"},
		},
		{
			name:   "float num",
			input:  "88.3",
			expect: []string{"num"},
		},
		{
			name:   "keyword",
			input:  "while",
			expect: []string{"while"},
		},
		{
			name:   "identifier that starts with a keyword",
			input:  "ifx",
			expect: []string{"id"},
		},
		{
			name:   "keyword followed by punctuation",
			input:  "if(",
			expect: []string{"if", "("},
		},
		{
			name:   "cast operator",
			input:  "static_cast<int>(x)",
			expect: []string{"cast", "(", "id", ")"},
		},
		{
			name:   "relational operators take the longest match",
			input:  ">= > == = != ! <=",
			expect: []string{"relop", "relop", "relop", "=", "relop", "not", "relop"},
		},
		{
			name:   "boolean operators",
			input:  "a || b && c",
			expect: []string{"id", "or", "id", "and", "id"},
		},
		{
			name:   "comment is skipped",
			input:  "a /* ignore: if while 22 */ b",
			expect: []string{"id", "id"},
		},
		{
			name:   "declaration",
			input:  "int a, b;",
			expect: []string{"int", "id", ",", "id", ";"},
		},
		{
			name:   "invalid character becomes an invalid token",
			input:  "a @ b",
			expect: []string{"id", "invalid", "id"},
		},
		{
			name:  "full statement",
			input: "while (a1 > 0) { a1 = a1 - 1; output(a1); }",
			expect: []string{
				"while", "(", "id", "relop", "num", ")", "{", "id", "=", "id",
				"addop", "num", ";", "output", "(", "id", ")", ";", "}",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			r := strings.NewReader(tc.input)
			tokens, err := Lexer(false).Lex(r)
			if !assert.NoError(err) {
				return
			}

			var actual []string
			// lex them all:
			for tokens.HasNext() {
				actual = append(actual, tokens.Next().Class().ID())
			}
			if len(actual) > 0 {
				actual = actual[:len(actual)-1]
			}

			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_Lex_lineNumbers(t *testing.T) {
	assert := assert.New(t)

	input := "int a;\n/* a comment\nspanning lines */\n{ a = 1; }"
	tokens, err := Lexer(false).Lex(strings.NewReader(input))
	if !assert.NoError(err) {
		return
	}

	var lines []int
	for tokens.HasNext() {
		tok := tokens.Next()
		if tok.Class().ID() == "{" {
			lines = append(lines, tok.Line())
		}
	}

	// the brace follows three newlines: one before the comment, one inside it
	// and one after it
	assert.Equal([]int{4}, lines)
}

func Test_Frontend_analyzesToIR(t *testing.T) {
	assert := assert.New(t)

	// literal-only program, so the empty symbol table raises no diagnostics
	log := &diag.Log{}
	tr := ir.NewTranslation(symbols.NewTable(), log)

	front, err := Frontend(tr.Hooks())
	if !assert.NoError(err) {
		return
	}

	node, _, err := front.AnalyzeString("{\noutput(3);\noutput(2.5);\n}")
	if !assert.NoError(err) {
		return
	}

	assert.False(log.HasErrors())
	if !assert.Len(node.Code, 3) {
		return
	}

	assert.Equal(quad.OpOutput, node.Code[0].Op)
	assert.Equal(symbols.TypeInt, node.Code[0].Type)
	assert.Equal("3", node.Code[0].Dest)

	assert.Equal(quad.OpOutput, node.Code[1].Op)
	assert.Equal(symbols.TypeFloat, node.Code[1].Type)
	assert.Equal("2.5", node.Code[1].Dest)

	assert.Equal(quad.OpHalt, node.Code[2].Op)
}

func Test_Parse(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expectErr bool
	}{
		{
			name:  "minimal program",
			input: "{}",
		},
		{
			name:  "declarations and statements",
			input: "int a;\nfloat b;\n{ a = 1; b = 2.5; }",
		},
		{
			name:  "nested control flow",
			input: "int a;\n{ while (a > 0) { if (a > 1) a = a - 1; else break; } }",
		},
		{
			name:  "switch with cases and default",
			input: "int x;\n{ switch (x) { case 1: output(x); break; case 2: break; default: x = 0; } }",
		},
		{
			name:      "missing semicolon",
			input:     "int a\n{ a = 1; }",
			expectErr: true,
		},
		{
			name:      "if without else",
			input:     "int a;\n{ if (a > 0) a = 1; }",
			expectErr: true,
		},
		{
			name:      "statements before block",
			input:     "int a;\na = 1;\n{ }",
			expectErr: true,
		},
		{
			name:      "bare boolexpr as expression",
			input:     "int a;\n{ a = a > 0; }",
			expectErr: true,
		},
	}

	p, _, err := Parser()
	if err != nil {
		t.Fatalf("constructing parser: %v", err)
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			tokens, err := Lexer(false).Lex(strings.NewReader(tc.input))
			if !assert.NoError(err) {
				return
			}

			pt, err := p.Parse(tokens)
			if tc.expectErr {
				assert.Error(err)
				return
			}
			if !assert.NoError(err) {
				return
			}

			assert.Equal("PROGRAM", pt.Value)
		})
	}
}
