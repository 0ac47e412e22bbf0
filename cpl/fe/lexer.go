package fe

import (
	"github.com/dekarrin/ictiobus"
	"github.com/dekarrin/ictiobus/lex"

	"github.com/dekarrin/cpq/cpl/fe/cpltoken"
)

// Lexer returns the ictiobus Lexer for CPL. If lazy is true, the returned
// lexer tokenizes input only as tokens are requested from its stream;
// otherwise the entire input is tokenized up front.
//
// Rule order is significant. Matching selects the longest lexeme; on ties the
// rule registered first wins, which is what lets keywords beat the identifier
// rule for exact keyword text while "ifx" still lexes as one identifier. The
// catch-all rule at the end turns any otherwise-unmatchable character into a
// token of class cpltoken.TCInvalid instead of failing the lex.
func Lexer(lazy bool) lex.Lexer {
	var lx lex.Lexer
	if lazy {
		lx = ictiobus.NewLazyLexer()
	} else {
		lx = ictiobus.NewLexer()
	}

	// default state, shared by all
	lx.RegisterClass(cpltoken.TCBreak, "")
	lx.RegisterClass(cpltoken.TCCase, "")
	lx.RegisterClass(cpltoken.TCDefault, "")
	lx.RegisterClass(cpltoken.TCElse, "")
	lx.RegisterClass(cpltoken.TCIf, "")
	lx.RegisterClass(cpltoken.TCInput, "")
	lx.RegisterClass(cpltoken.TCOutput, "")
	lx.RegisterClass(cpltoken.TCSwitch, "")
	lx.RegisterClass(cpltoken.TCWhile, "")
	lx.RegisterClass(cpltoken.TCInt, "")
	lx.RegisterClass(cpltoken.TCFloat, "")
	lx.RegisterClass(cpltoken.TCCast, "")
	lx.RegisterClass(cpltoken.TCRelOp, "")
	lx.RegisterClass(cpltoken.TCOr, "")
	lx.RegisterClass(cpltoken.TCAnd, "")
	lx.RegisterClass(cpltoken.TCNot, "")
	lx.RegisterClass(cpltoken.TCAddOp, "")
	lx.RegisterClass(cpltoken.TCMulOp, "")
	lx.RegisterClass(cpltoken.TCLeftParen, "")
	lx.RegisterClass(cpltoken.TCRightParen, "")
	lx.RegisterClass(cpltoken.TCLeftBrace, "")
	lx.RegisterClass(cpltoken.TCRightBrace, "")
	lx.RegisterClass(cpltoken.TCComma, "")
	lx.RegisterClass(cpltoken.TCColon, "")
	lx.RegisterClass(cpltoken.TCSemi, "")
	lx.RegisterClass(cpltoken.TCAssign, "")
	lx.RegisterClass(cpltoken.TCID, "")
	lx.RegisterClass(cpltoken.TCNum, "")
	lx.RegisterClass(cpltoken.TCInvalid, "")

	lx.AddPattern(`\s+`, lex.Discard(), "", 0)
	lx.AddPattern(`/\*(?:[^*]|\*+[^*/])*\*+/`, lex.Discard(), "", 0)

	lx.AddPattern(`static_cast<(?:int|float)>`, lex.LexAs(cpltoken.TCCast.ID()), "", 0)

	lx.AddPattern(`break\b`, lex.LexAs(cpltoken.TCBreak.ID()), "", 0)
	lx.AddPattern(`case\b`, lex.LexAs(cpltoken.TCCase.ID()), "", 0)
	lx.AddPattern(`default\b`, lex.LexAs(cpltoken.TCDefault.ID()), "", 0)
	lx.AddPattern(`else\b`, lex.LexAs(cpltoken.TCElse.ID()), "", 0)
	lx.AddPattern(`if\b`, lex.LexAs(cpltoken.TCIf.ID()), "", 0)
	lx.AddPattern(`input\b`, lex.LexAs(cpltoken.TCInput.ID()), "", 0)
	lx.AddPattern(`output\b`, lex.LexAs(cpltoken.TCOutput.ID()), "", 0)
	lx.AddPattern(`switch\b`, lex.LexAs(cpltoken.TCSwitch.ID()), "", 0)
	lx.AddPattern(`while\b`, lex.LexAs(cpltoken.TCWhile.ID()), "", 0)
	lx.AddPattern(`int\b`, lex.LexAs(cpltoken.TCInt.ID()), "", 0)
	lx.AddPattern(`float\b`, lex.LexAs(cpltoken.TCFloat.ID()), "", 0)

	lx.AddPattern(`==|!=|>=|<=|<|>`, lex.LexAs(cpltoken.TCRelOp.ID()), "", 0)
	lx.AddPattern(`\|\|`, lex.LexAs(cpltoken.TCOr.ID()), "", 0)
	lx.AddPattern(`&&`, lex.LexAs(cpltoken.TCAnd.ID()), "", 0)
	lx.AddPattern(`!`, lex.LexAs(cpltoken.TCNot.ID()), "", 0)
	lx.AddPattern(`\+|-`, lex.LexAs(cpltoken.TCAddOp.ID()), "", 0)
	lx.AddPattern(`\*|/`, lex.LexAs(cpltoken.TCMulOp.ID()), "", 0)

	lx.AddPattern(`\(`, lex.LexAs(cpltoken.TCLeftParen.ID()), "", 0)
	lx.AddPattern(`\)`, lex.LexAs(cpltoken.TCRightParen.ID()), "", 0)
	lx.AddPattern(`\{`, lex.LexAs(cpltoken.TCLeftBrace.ID()), "", 0)
	lx.AddPattern(`\}`, lex.LexAs(cpltoken.TCRightBrace.ID()), "", 0)
	lx.AddPattern(`,`, lex.LexAs(cpltoken.TCComma.ID()), "", 0)
	lx.AddPattern(`:`, lex.LexAs(cpltoken.TCColon.ID()), "", 0)
	lx.AddPattern(`;`, lex.LexAs(cpltoken.TCSemi.ID()), "", 0)
	lx.AddPattern(`=`, lex.LexAs(cpltoken.TCAssign.ID()), "", 0)

	lx.AddPattern(`[a-zA-Z][a-zA-Z0-9]*`, lex.LexAs(cpltoken.TCID.ID()), "", 0)
	lx.AddPattern(`[0-9]+(?:\.[0-9]+)?`, lex.LexAs(cpltoken.TCNum.ID()), "", 0)

	lx.AddPattern(`.`, lex.LexAs(cpltoken.TCInvalid.ID()), "", 0)

	return lx
}
