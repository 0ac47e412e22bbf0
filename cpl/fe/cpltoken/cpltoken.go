// Package cpltoken holds the token classes lexed from CPL source code. The
// class IDs are the terminal names used by the CPL grammar.
package cpltoken

import (
	"github.com/dekarrin/ictiobus/lex"
)

var (
	// TCBreak is the token class for the "break" keyword.
	TCBreak = lex.NewTokenClass("break", "keyword 'break'")

	// TCCase is the token class for the "case" keyword.
	TCCase = lex.NewTokenClass("case", "keyword 'case'")

	// TCDefault is the token class for the "default" keyword.
	TCDefault = lex.NewTokenClass("default", "keyword 'default'")

	// TCElse is the token class for the "else" keyword.
	TCElse = lex.NewTokenClass("else", "keyword 'else'")

	// TCIf is the token class for the "if" keyword.
	TCIf = lex.NewTokenClass("if", "keyword 'if'")

	// TCInput is the token class for the "input" keyword.
	TCInput = lex.NewTokenClass("input", "keyword 'input'")

	// TCOutput is the token class for the "output" keyword.
	TCOutput = lex.NewTokenClass("output", "keyword 'output'")

	// TCSwitch is the token class for the "switch" keyword.
	TCSwitch = lex.NewTokenClass("switch", "keyword 'switch'")

	// TCWhile is the token class for the "while" keyword.
	TCWhile = lex.NewTokenClass("while", "keyword 'while'")

	// TCInt is the token class for the "int" type keyword.
	TCInt = lex.NewTokenClass("int", "keyword 'int'")

	// TCFloat is the token class for the "float" type keyword.
	TCFloat = lex.NewTokenClass("float", "keyword 'float'")

	// TCLeftParen is the token class for '('.
	TCLeftParen = lex.NewTokenClass("(", "'('")

	// TCRightParen is the token class for ')'.
	TCRightParen = lex.NewTokenClass(")", "')'")

	// TCLeftBrace is the token class for '{'.
	TCLeftBrace = lex.NewTokenClass("{", "'{'")

	// TCRightBrace is the token class for '}'.
	TCRightBrace = lex.NewTokenClass("}", "'}'")

	// TCComma is the token class for ','.
	TCComma = lex.NewTokenClass(",", "','")

	// TCColon is the token class for ':'.
	TCColon = lex.NewTokenClass(":", "':'")

	// TCSemi is the token class for ';'.
	TCSemi = lex.NewTokenClass(";", "';'")

	// TCAssign is the token class for the assignment operator '='.
	TCAssign = lex.NewTokenClass("=", "'='")

	// TCRelOp is the token class for the relational operators ==, !=, <, >,
	// >= and <=. The operator itself is the token's lexeme.
	TCRelOp = lex.NewTokenClass("relop", "relational operator")

	// TCAddOp is the token class for + and -. The operator itself is the
	// token's lexeme.
	TCAddOp = lex.NewTokenClass("addop", "additive operator")

	// TCMulOp is the token class for * and /. The operator itself is the
	// token's lexeme.
	TCMulOp = lex.NewTokenClass("mulop", "multiplicative operator")

	// TCOr is the token class for '||'.
	TCOr = lex.NewTokenClass("or", "'||'")

	// TCAnd is the token class for '&&'.
	TCAnd = lex.NewTokenClass("and", "'&&'")

	// TCNot is the token class for '!'.
	TCNot = lex.NewTokenClass("not", "'!'")

	// TCCast is the token class for the static_cast<int> and
	// static_cast<float> operators. The target type is derived from the
	// lexeme.
	TCCast = lex.NewTokenClass("cast", "cast operator")

	// TCID is the token class for identifiers.
	TCID = lex.NewTokenClass("id", "identifier")

	// TCNum is the token class for integer and floating point number
	// literals. A literal containing '.' is floating point.
	TCNum = lex.NewTokenClass("num", "number literal")

	// TCInvalid is the token class produced for a character that matched no
	// other rule. Invalid tokens are reported as diagnostics and filtered out
	// of the stream handed to the parser; the grammar never sees them.
	TCInvalid = lex.NewTokenClass("invalid", "invalid character")
)
