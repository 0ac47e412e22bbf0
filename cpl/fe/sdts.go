package fe

import (
	"fmt"
	"strings"

	"github.com/dekarrin/ictiobus"
	"github.com/dekarrin/ictiobus/trans"
)

// SDTS returns the syntax-directed translation scheme for CPL. Every binding
// synthesizes the "node" attribute from the nodes of its production's
// children, except the root binding, which synthesizes "ir". The hooks
// themselves live in the cpl/ir package; they are attached to a particular
// compilation's state with SetHooks before evaluation.
func SDTS() trans.SDTS {
	sdts := ictiobus.NewSDTS()

	bind(sdts, "PROGRAM", []string{"DECLARATIONS", "STMT-BLOCK"}, "ir", "program",
		nodeRef(1))

	// declarations carry no translation; the symbol phase walks them in the
	// parse tree directly.
	bind(sdts, "DECLARATIONS", []string{"DECLARATIONS", "DECLARATION"}, "node", "discard")
	bind(sdts, "DECLARATIONS", []string{""}, "node", "discard")
	bind(sdts, "DECLARATION", []string{"TYPE", "IDLIST", ";"}, "node", "discard")
	bind(sdts, "TYPE", []string{"int"}, "node", "discard")
	bind(sdts, "TYPE", []string{"float"}, "node", "discard")
	bind(sdts, "IDLIST", []string{"IDLIST", ",", "id"}, "node", "discard")
	bind(sdts, "IDLIST", []string{"id"}, "node", "discard")

	bind(sdts, "STMT-BLOCK", []string{"{", "STMTLIST", "}"}, "node", "identity",
		nodeRef(1))

	bind(sdts, "STMTLIST", []string{"STMTLIST", "STMT"}, "node", "stmt_list",
		nodeRef(0), nodeRef(1))
	bind(sdts, "STMTLIST", []string{""}, "node", "empty_list")

	for _, alt := range []string{
		"ASSIGNMENT-STMT", "INPUT-STMT", "OUTPUT-STMT", "IF-STMT",
		"WHILE-STMT", "SWITCH-STMT", "BREAK-STMT", "STMT-BLOCK",
	} {
		bind(sdts, "STMT", []string{alt}, "node", "identity", nodeRef(0))
	}

	bind(sdts, "ASSIGNMENT-STMT", []string{"id", "=", "EXPRESSION", ";"}, "node", "assign",
		textRef(0), nodeRef(2))

	bind(sdts, "INPUT-STMT", []string{"input", "(", "id", ")", ";"}, "node", "input",
		textRef(2))

	bind(sdts, "OUTPUT-STMT", []string{"output", "(", "EXPRESSION", ")", ";"}, "node", "output",
		nodeRef(2))

	bind(sdts, "IF-STMT", []string{"if", "(", "BOOLEXPR", ")", "STMT", "else", "STMT"}, "node", "if",
		nodeRef(2), nodeRef(4), nodeRef(6))

	bind(sdts, "WHILE-STMT", []string{"while", "(", "BOOLEXPR", ")", "STMT"}, "node", "while",
		nodeRef(2), nodeRef(4))

	bind(sdts, "SWITCH-STMT", []string{"switch", "(", "EXPRESSION", ")", "{", "CASELIST", "default", ":", "STMTLIST", "}"}, "node", "switch",
		nodeRef(2), nodeRef(5), nodeRef(8))

	bind(sdts, "CASELIST", []string{"CASELIST", "case", "num", ":", "STMTLIST"}, "node", "case_list",
		nodeRef(0), textRef(2), nodeRef(4))
	bind(sdts, "CASELIST", []string{""}, "node", "empty_list")

	bind(sdts, "BREAK-STMT", []string{"break", ";"}, "node", "break")

	bind(sdts, "BOOLEXPR", []string{"BOOLEXPR", "or", "BOOLTERM"}, "node", "bool_or",
		nodeRef(0), nodeRef(2))
	bind(sdts, "BOOLEXPR", []string{"BOOLTERM"}, "node", "identity", nodeRef(0))

	bind(sdts, "BOOLTERM", []string{"BOOLTERM", "and", "BOOLFACTOR"}, "node", "bool_and",
		nodeRef(0), nodeRef(2))
	bind(sdts, "BOOLTERM", []string{"BOOLFACTOR"}, "node", "identity", nodeRef(0))

	bind(sdts, "BOOLFACTOR", []string{"not", "(", "BOOLEXPR", ")"}, "node", "bool_not",
		nodeRef(2))
	bind(sdts, "BOOLFACTOR", []string{"EXPRESSION", "relop", "EXPRESSION"}, "node", "relop",
		nodeRef(0), textRef(1), nodeRef(2))

	bind(sdts, "EXPRESSION", []string{"EXPRESSION", "addop", "TERM"}, "node", "binary_op",
		nodeRef(0), textRef(1), nodeRef(2))
	bind(sdts, "EXPRESSION", []string{"TERM"}, "node", "identity", nodeRef(0))

	bind(sdts, "TERM", []string{"TERM", "mulop", "FACTOR"}, "node", "binary_op",
		nodeRef(0), textRef(1), nodeRef(2))
	bind(sdts, "TERM", []string{"FACTOR"}, "node", "identity", nodeRef(0))

	bind(sdts, "FACTOR", []string{"(", "EXPRESSION", ")"}, "node", "identity",
		nodeRef(1))
	bind(sdts, "FACTOR", []string{"cast", "(", "EXPRESSION", ")"}, "node", "cast",
		textRef(0), nodeRef(2))
	bind(sdts, "FACTOR", []string{"id"}, "node", "id_ref", textRef(0))
	bind(sdts, "FACTOR", []string{"num"}, "node", "num_lit", textRef(0))

	return sdts
}

// bind attaches one synthesized-attribute binding and panics on registration
// failure; a failure here is a mismatch between the grammar and the SDTS,
// which cannot be recovered at runtime.
func bind(sdts trans.SDTS, head string, prod []string, attr, hook string, withArgs ...trans.AttrRef) {
	err := sdts.Bind(head, prod, attr, hook, withArgs)
	if err != nil {
		prodStr := strings.Join(prod, " ")
		panic(fmt.Sprintf("binding %s -> [%s]: %s", head, prodStr, err.Error()))
	}
}

// nodeRef refers to the "node" attribute of the production symbol at index i.
func nodeRef(i int) trans.AttrRef {
	return trans.AttrRef{Rel: trans.NodeRelation{Type: trans.RelSymbol, Index: i}, Name: "node"}
}

// textRef refers to the lexed text of the terminal at index i.
func textRef(i int) trans.AttrRef {
	return trans.AttrRef{Rel: trans.NodeRelation{Type: trans.RelSymbol, Index: i}, Name: "$text"}
}
