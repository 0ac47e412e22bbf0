package fe

import (
	"sync"

	"github.com/dekarrin/ictiobus"
	"github.com/dekarrin/ictiobus/grammar"
	"github.com/dekarrin/ictiobus/parse"

	"github.com/dekarrin/cpq/cpl/fe/cpltoken"
)

// Grammar returns the context-free grammar accepted by the CPL parser. The
// start symbol is PROGRAM, the head of the first rule added.
//
// STMTLIST, CASELIST and DECLARATIONS are left-recursive with an epsilon
// tail, and the if statement always carries an else branch, so the grammar is
// LALR(1) without conflicts.
func Grammar() grammar.CFG {
	g := grammar.CFG{}
	g.Start = "PROGRAM"

	g.AddTerm(cpltoken.TCBreak.ID(), cpltoken.TCBreak)
	g.AddTerm(cpltoken.TCCase.ID(), cpltoken.TCCase)
	g.AddTerm(cpltoken.TCDefault.ID(), cpltoken.TCDefault)
	g.AddTerm(cpltoken.TCElse.ID(), cpltoken.TCElse)
	g.AddTerm(cpltoken.TCIf.ID(), cpltoken.TCIf)
	g.AddTerm(cpltoken.TCInput.ID(), cpltoken.TCInput)
	g.AddTerm(cpltoken.TCOutput.ID(), cpltoken.TCOutput)
	g.AddTerm(cpltoken.TCSwitch.ID(), cpltoken.TCSwitch)
	g.AddTerm(cpltoken.TCWhile.ID(), cpltoken.TCWhile)
	g.AddTerm(cpltoken.TCInt.ID(), cpltoken.TCInt)
	g.AddTerm(cpltoken.TCFloat.ID(), cpltoken.TCFloat)
	g.AddTerm(cpltoken.TCCast.ID(), cpltoken.TCCast)
	g.AddTerm(cpltoken.TCRelOp.ID(), cpltoken.TCRelOp)
	g.AddTerm(cpltoken.TCOr.ID(), cpltoken.TCOr)
	g.AddTerm(cpltoken.TCAnd.ID(), cpltoken.TCAnd)
	g.AddTerm(cpltoken.TCNot.ID(), cpltoken.TCNot)
	g.AddTerm(cpltoken.TCAddOp.ID(), cpltoken.TCAddOp)
	g.AddTerm(cpltoken.TCMulOp.ID(), cpltoken.TCMulOp)
	g.AddTerm(cpltoken.TCLeftParen.ID(), cpltoken.TCLeftParen)
	g.AddTerm(cpltoken.TCRightParen.ID(), cpltoken.TCRightParen)
	g.AddTerm(cpltoken.TCLeftBrace.ID(), cpltoken.TCLeftBrace)
	g.AddTerm(cpltoken.TCRightBrace.ID(), cpltoken.TCRightBrace)
	g.AddTerm(cpltoken.TCComma.ID(), cpltoken.TCComma)
	g.AddTerm(cpltoken.TCColon.ID(), cpltoken.TCColon)
	g.AddTerm(cpltoken.TCSemi.ID(), cpltoken.TCSemi)
	g.AddTerm(cpltoken.TCAssign.ID(), cpltoken.TCAssign)
	g.AddTerm(cpltoken.TCID.ID(), cpltoken.TCID)
	g.AddTerm(cpltoken.TCNum.ID(), cpltoken.TCNum)

	g.AddRule("PROGRAM", []string{"DECLARATIONS", "STMT-BLOCK"})

	g.AddRule("DECLARATIONS", []string{"DECLARATIONS", "DECLARATION"})
	g.AddRule("DECLARATIONS", []string{""})

	g.AddRule("DECLARATION", []string{"TYPE", "IDLIST", ";"})

	g.AddRule("TYPE", []string{"int"})
	g.AddRule("TYPE", []string{"float"})

	g.AddRule("IDLIST", []string{"IDLIST", ",", "id"})
	g.AddRule("IDLIST", []string{"id"})

	g.AddRule("STMT-BLOCK", []string{"{", "STMTLIST", "}"})

	g.AddRule("STMTLIST", []string{"STMTLIST", "STMT"})
	g.AddRule("STMTLIST", []string{""})

	g.AddRule("STMT", []string{"ASSIGNMENT-STMT"})
	g.AddRule("STMT", []string{"INPUT-STMT"})
	g.AddRule("STMT", []string{"OUTPUT-STMT"})
	g.AddRule("STMT", []string{"IF-STMT"})
	g.AddRule("STMT", []string{"WHILE-STMT"})
	g.AddRule("STMT", []string{"SWITCH-STMT"})
	g.AddRule("STMT", []string{"BREAK-STMT"})
	g.AddRule("STMT", []string{"STMT-BLOCK"})

	g.AddRule("ASSIGNMENT-STMT", []string{"id", "=", "EXPRESSION", ";"})

	g.AddRule("INPUT-STMT", []string{"input", "(", "id", ")", ";"})

	g.AddRule("OUTPUT-STMT", []string{"output", "(", "EXPRESSION", ")", ";"})

	g.AddRule("IF-STMT", []string{"if", "(", "BOOLEXPR", ")", "STMT", "else", "STMT"})

	g.AddRule("WHILE-STMT", []string{"while", "(", "BOOLEXPR", ")", "STMT"})

	g.AddRule("SWITCH-STMT", []string{"switch", "(", "EXPRESSION", ")", "{", "CASELIST", "default", ":", "STMTLIST", "}"})

	g.AddRule("CASELIST", []string{"CASELIST", "case", "num", ":", "STMTLIST"})
	g.AddRule("CASELIST", []string{""})

	g.AddRule("BREAK-STMT", []string{"break", ";"})

	g.AddRule("BOOLEXPR", []string{"BOOLEXPR", "or", "BOOLTERM"})
	g.AddRule("BOOLEXPR", []string{"BOOLTERM"})

	g.AddRule("BOOLTERM", []string{"BOOLTERM", "and", "BOOLFACTOR"})
	g.AddRule("BOOLTERM", []string{"BOOLFACTOR"})

	g.AddRule("BOOLFACTOR", []string{"not", "(", "BOOLEXPR", ")"})
	g.AddRule("BOOLFACTOR", []string{"EXPRESSION", "relop", "EXPRESSION"})

	g.AddRule("EXPRESSION", []string{"EXPRESSION", "addop", "TERM"})
	g.AddRule("EXPRESSION", []string{"TERM"})

	g.AddRule("TERM", []string{"TERM", "mulop", "FACTOR"})
	g.AddRule("TERM", []string{"FACTOR"})

	g.AddRule("FACTOR", []string{"(", "EXPRESSION", ")"})
	g.AddRule("FACTOR", []string{"cast", "(", "EXPRESSION", ")"})
	g.AddRule("FACTOR", []string{"id"})
	g.AddRule("FACTOR", []string{"num"})

	return g
}

var (
	parserOnce  sync.Once
	cachedP     parse.Parser
	cachedWarns []string
	cachedErr   error
)

// Parser returns the LALR(1) parser for the CPL grammar, along with any
// ambiguity warnings raised while building its tables. Table construction is
// performed once per process; subsequent calls return the cached parser.
func Parser() (parse.Parser, []string, error) {
	parserOnce.Do(func() {
		cachedP, cachedWarns, cachedErr = ictiobus.NewLALRParser(Grammar(), true)
	})
	return cachedP, cachedWarns, cachedErr
}
