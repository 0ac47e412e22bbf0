// Package quad defines the three-address quad instructions emitted by the
// compiler, the opcode table that maps abstract operators and types to typed
// mnemonics, and the label-resolution pass that turns symbolic labels into
// absolute instruction indices.
package quad

import (
	"fmt"
	"strings"

	"github.com/dekarrin/cpq/cpl/symbols"
)

// Abstract operators carried by instructions before mnemonic selection. The
// arithmetic and relational operators are their CPL source text; the rest are
// named operations.
const (
	OpAssign   = "="
	OpInput    = "INPUT"
	OpOutput   = "OUTPUT"
	OpEq       = "=="
	OpNeq      = "!="
	OpLess     = "<"
	OpGreater  = ">"
	OpAdd      = "+"
	OpSub      = "-"
	OpMul      = "*"
	OpDiv      = "/"
	OpCast     = "CAST"
	OpJump     = "jump"
	OpJumpZero = "jump_zero"
	OpHalt     = "halt"

	// OpLabel is a pseudo-op marking a position in the instruction sequence.
	// Labels exist only before resolution; Resolve erases them.
	OpLabel = "label"
)

type opKey struct {
	op  string
	typ symbols.Type
}

// mnemonics maps (abstract operator, type) to the typed opcode emitted in the
// final program. Control-flow ops are untyped in the source language and are
// keyed under TypeInt.
var mnemonics = map[opKey]string{
	{OpAssign, symbols.TypeInt}:    "IASN",
	{OpAssign, symbols.TypeFloat}:  "RASN",
	{OpInput, symbols.TypeInt}:     "IINP",
	{OpInput, symbols.TypeFloat}:   "RINP",
	{OpOutput, symbols.TypeInt}:    "IPRT",
	{OpOutput, symbols.TypeFloat}:  "RPRT",
	{OpEq, symbols.TypeInt}:        "IEQL",
	{OpEq, symbols.TypeFloat}:      "REQL",
	{OpNeq, symbols.TypeInt}:       "INQL",
	{OpNeq, symbols.TypeFloat}:     "RNQL",
	{OpLess, symbols.TypeInt}:      "ILSS",
	{OpLess, symbols.TypeFloat}:    "RLSS",
	{OpGreater, symbols.TypeInt}:   "IGRT",
	{OpGreater, symbols.TypeFloat}: "RGRT",
	{OpAdd, symbols.TypeInt}:       "IADD",
	{OpAdd, symbols.TypeFloat}:     "RADD",
	{OpSub, symbols.TypeInt}:       "ISUB",
	{OpSub, symbols.TypeFloat}:     "RSUB",
	{OpMul, symbols.TypeInt}:       "IMLT",
	{OpMul, symbols.TypeFloat}:     "RMLT",
	{OpDiv, symbols.TypeInt}:       "IDIV",
	{OpDiv, symbols.TypeFloat}:     "RDIV",
	{OpCast, symbols.TypeInt}:      "RTOI",
	{OpCast, symbols.TypeFloat}:    "ITOR",
	{OpJump, symbols.TypeInt}:      "JUMP",
	{OpJumpZero, symbols.TypeInt}:  "JMPZ",
	{OpHalt, symbols.TypeInt}:      "HALT",
}

// Instruction is a single three-address quad. Dest, Src1 and Src2 hold
// variable names, temporaries, literals, or (for jumps) a label before
// resolution and a 1-based instruction index after. Unused operand slots are
// empty strings.
type Instruction struct {
	Op   string
	Type symbols.Type
	Dest string
	Src1 string
	Src2 string
}

// Mnemonic returns the typed opcode for the instruction. A missing table
// entry is an internal compiler error, never a problem with user source.
func (inst Instruction) Mnemonic() (string, error) {
	m, ok := mnemonics[opKey{inst.Op, inst.Type}]
	if !ok {
		return "", fmt.Errorf("no opcode for operator %q with type %s", inst.Op, inst.Type)
	}
	return m, nil
}

// Code renders the instruction as one line of quad output, with trailing
// blanks from unused operand slots trimmed.
func (inst Instruction) Code() (string, error) {
	m, err := inst.Mnemonic()
	if err != nil {
		return "", err
	}
	line := fmt.Sprintf("%s %s %s %s", m, inst.Dest, inst.Src1, inst.Src2)
	return strings.TrimRight(line, " "), nil
}

// String returns the rendered instruction, or a diagnostic placeholder if the
// instruction has no opcode.
func (inst Instruction) String() string {
	s, err := inst.Code()
	if err != nil {
		return fmt.Sprintf("<bad instruction %q %s>", inst.Op, inst.Type)
	}
	return s
}

// Program is a fully resolved sequence of quad instructions. Jump operands
// are 1-based indices into the program itself.
type Program []Instruction

// Listing renders the program one instruction per line, terminated by the
// given signature line. This is the exact content of a .qud file.
func (p Program) Listing(signature string) (string, error) {
	var sb strings.Builder
	for i := range p {
		line, err := p[i].Code()
		if err != nil {
			return "", fmt.Errorf("instruction %d: %w", i+1, err)
		}
		sb.WriteString(line)
		sb.WriteRune('\n')
	}
	sb.WriteString(signature)
	return sb.String(), nil
}

// Lines renders each instruction of the program on its own line, without a
// signature.
func (p Program) Lines() ([]string, error) {
	out := make([]string, len(p))
	for i := range p {
		line, err := p[i].Code()
		if err != nil {
			return nil, fmt.Errorf("instruction %d: %w", i+1, err)
		}
		out[i] = line
	}
	return out, nil
}
