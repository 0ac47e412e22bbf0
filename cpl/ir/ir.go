// Package ir synthesizes quad intermediate representation from CPL parse
// trees. Each grammar production has a translation hook that reads the
// already-synthesized attributes of its children and produces its own; the
// SDTS in cpl/fe drives the hooks in post-order over the tree.
package ir

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/dekarrin/cpq/cpl/symbols"
	"github.com/dekarrin/cpq/internal/diag"
	"github.com/dekarrin/cpq/quad"
)

// Node holds the synthesized attributes of one parse subtree.
//
// Code is the quad sequence computed for the subtree, in emission order. The
// instructions are shared by pointer so that an enclosing while or switch can
// bind the jump emitted for a break statement after the fact.
//
// Value names the location holding the subtree's result and Type is its CPL
// type; both are meaningful only for expression-like nodes. Breaks carries
// every break marker that has not yet been bound to an enclosing construct.
// Cases is populated only on caselist nodes.
type Node struct {
	Code   []*quad.Instruction
	Value  string
	Type   symbols.Type
	Breaks []*Break
	Cases  []Case
}

// Break marks a break statement whose jump target is not yet known. The
// nearest enclosing while or switch binds it by assigning its end label to
// the Jump instruction's Dest. A marker that reaches the program root with an
// empty Dest is a semantic error.
type Break struct {
	Line int
	Jump *quad.Instruction
}

// Case is a single case arm of a switch statement, in source order.
type Case struct {
	// Value is the canonicalized integer literal text of the case.
	Value string

	Line int
	Code []*quad.Instruction
}

// Translation is the per-compilation state of IR synthesis: the symbol table
// produced by the symbol phase, the shared diagnostic log, and the temporary
// counter. It is not safe for concurrent use, and a fresh Translation must be
// constructed for each compilation so that temporary numbering restarts at
// t0.
type Translation struct {
	syms *symbols.Table
	log  *diag.Log

	tempCount int
}

// NewTranslation returns translation state ready for one compilation.
func NewTranslation(syms *symbols.Table, log *diag.Log) *Translation {
	return &Translation{syms: syms, log: log}
}

// newTemp returns the next temporary name. Temporaries are assigned at one
// site each and numbered in the stable post-order the hooks run in, which is
// what makes compilation reproducible.
func (tr *Translation) newTemp() string {
	name := "t" + strconv.Itoa(tr.tempCount)
	tr.tempCount++
	return name
}

// newLabel returns a fresh symbolic label. Uniqueness is all that matters;
// labels never survive into the final program.
func (tr *Translation) newLabel() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// coerce prepares the operands of a binary operation. If the operand types
// differ, the result type is float and the int-typed operand is converted
// into a fresh temporary with an ITOR; the returned operand names reflect the
// conversion. Otherwise the result type is the common operand type. The
// result temporary is allocated before any conversion temporary.
//
// The returned code holds left's code, then right's, then any conversion. If
// either operand's type is unknown from an earlier diagnostic, no conversion
// is attempted.
func (tr *Translation) coerce(left, right *Node) (code []*quad.Instruction, result string, typ symbols.Type, leftVal, rightVal string) {
	code = make([]*quad.Instruction, 0, len(left.Code)+len(right.Code)+1)
	code = append(code, left.Code...)
	code = append(code, right.Code...)

	result = tr.newTemp()
	leftVal = left.Value
	rightVal = right.Value

	if left.Type == symbols.TypeUnknown || right.Type == symbols.TypeUnknown {
		typ = symbols.TypeUnknown
		return code, result, typ, leftVal, rightVal
	}

	if left.Type != right.Type {
		typ = symbols.TypeFloat
		conv := tr.newTemp()

		if left.Type == symbols.TypeInt {
			code = append(code, &quad.Instruction{Op: quad.OpCast, Type: symbols.TypeFloat, Dest: conv, Src1: leftVal})
			leftVal = conv
		} else {
			code = append(code, &quad.Instruction{Op: quad.OpCast, Type: symbols.TypeFloat, Dest: conv, Src1: rightVal})
			rightVal = conv
		}
	} else {
		typ = left.Type
	}

	return code, result, typ, leftVal, rightVal
}

// binary emits a plain two-operand operation after operand coercion.
func (tr *Translation) binary(op string, left, right *Node) *Node {
	code, result, typ, lv, rv := tr.coerce(left, right)
	code = append(code, &quad.Instruction{Op: op, Type: typ, Dest: result, Src1: lv, Src2: rv})

	return &Node{Code: code, Value: result, Type: typ}
}

// bindBreaks points every given break marker's jump at label.
func bindBreaks(breaks []*Break, label string) {
	for _, b := range breaks {
		b.Jump.Dest = label
	}
}

// mergeBreaks concatenates break marker lists in source order.
func mergeBreaks(lists ...[]*Break) []*Break {
	var out []*Break
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

// canonNum normalizes a number literal's text and reports its type. Integer
// literals lose leading zeros; float literals are rendered from their parsed
// value so that equal values compare equal as text.
func canonNum(text string) (string, symbols.Type) {
	if strings.Contains(text, ".") {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return text, symbols.TypeFloat
		}
		s := strconv.FormatFloat(f, 'g', -1, 64)
		if !strings.Contains(s, ".") && !strings.Contains(s, "e") {
			// keep the decimal point so the literal still reads as float
			s += ".0"
		}
		return s, symbols.TypeFloat
	}
	i, err := strconv.Atoi(text)
	if err != nil {
		return text, symbols.TypeInt
	}
	return strconv.Itoa(i), symbols.TypeInt
}
