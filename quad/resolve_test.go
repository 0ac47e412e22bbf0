package quad

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/cpq/cpl/symbols"
)

func Test_Resolve_labelsBecomeIndices(t *testing.T) {
	assert := assert.New(t)

	// label Lc; IGRT t0 a 0; JMPZ Le t0; ISUB t1 a 1; IASN a t1; JUMP Lc;
	// label Le; HALT
	in := []*Instruction{
		{Op: OpLabel, Type: symbols.TypeInt, Dest: "Lc"},
		{Op: OpGreater, Type: symbols.TypeInt, Dest: "t0", Src1: "a", Src2: "0"},
		{Op: OpJumpZero, Type: symbols.TypeInt, Dest: "Le", Src1: "t0"},
		{Op: OpSub, Type: symbols.TypeInt, Dest: "t1", Src1: "a", Src2: "1"},
		{Op: OpAssign, Type: symbols.TypeInt, Dest: "a", Src1: "t1"},
		{Op: OpJump, Type: symbols.TypeInt, Dest: "Lc"},
		{Op: OpLabel, Type: symbols.TypeInt, Dest: "Le"},
		{Op: OpHalt, Type: symbols.TypeInt},
	}

	prog, err := Resolve(in)
	if !assert.NoError(err) {
		return
	}

	if !assert.Len(prog, 6) {
		return
	}

	assert.Equal("6", prog[1].Dest, "JMPZ should target the HALT instruction")
	assert.Equal("1", prog[4].Dest, "JUMP should target the first instruction")

	// no label pseudo-ops survive
	for i := range prog {
		assert.NotEqual(OpLabel, prog[i].Op)
	}

	// every jump target lands inside the program
	for i := range prog {
		if prog[i].Op == OpJump || prog[i].Op == OpJumpZero {
			n, convErr := strconv.Atoi(prog[i].Dest)
			assert.NoError(convErr)
			assert.GreaterOrEqual(n, 1)
			assert.LessOrEqual(n, len(prog))
		}
	}
}

func Test_Resolve_duplicateLabel(t *testing.T) {
	assert := assert.New(t)

	in := []*Instruction{
		{Op: OpLabel, Type: symbols.TypeInt, Dest: "L"},
		{Op: OpLabel, Type: symbols.TypeInt, Dest: "L"},
		{Op: OpHalt, Type: symbols.TypeInt},
	}

	_, err := Resolve(in)
	assert.Error(err)
}

func Test_Resolve_undefinedLabel(t *testing.T) {
	assert := assert.New(t)

	in := []*Instruction{
		{Op: OpJump, Type: symbols.TypeInt, Dest: "nowhere"},
		{Op: OpHalt, Type: symbols.TypeInt},
	}

	_, err := Resolve(in)
	assert.Error(err)
}

func Test_Resolve_unboundBreak(t *testing.T) {
	assert := assert.New(t)

	// a jump with an empty target is a break that no while or switch bound;
	// it must be trapped, not emitted
	in := []*Instruction{
		{Op: OpJump, Type: symbols.TypeInt},
		{Op: OpHalt, Type: symbols.TypeInt},
	}

	_, err := Resolve(in)
	assert.Error(err)
}

func Test_Program_binaryRoundTrip(t *testing.T) {
	assert := assert.New(t)

	p := Program{
		{Op: OpGreater, Type: symbols.TypeInt, Dest: "t0", Src1: "a", Src2: "0"},
		{Op: OpJumpZero, Type: symbols.TypeInt, Dest: "4", Src1: "t0"},
		{Op: OpAssign, Type: symbols.TypeFloat, Dest: "b", Src1: "1.5"},
		{Op: OpHalt, Type: symbols.TypeInt},
	}

	data, err := p.MarshalBinary()
	if !assert.NoError(err) {
		return
	}

	var decoded Program
	if !assert.NoError(decoded.UnmarshalBinary(data)) {
		return
	}

	assert.Equal(p, decoded)
}
