package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/cpq/cpl/symbols"
	"github.com/dekarrin/cpq/internal/diag"
	"github.com/dekarrin/cpq/quad"
)

func Test_canonNum(t *testing.T) {
	testCases := []struct {
		name       string
		input      string
		expect     string
		expectType symbols.Type
	}{
		{"plain int", "42", "42", symbols.TypeInt},
		{"leading zeros dropped", "007", "7", symbols.TypeInt},
		{"plain float", "1.5", "1.5", symbols.TypeFloat},
		{"trailing zeros dropped", "2.50", "2.5", symbols.TypeFloat},
		{"whole-value float keeps its point", "3.0", "3.0", symbols.TypeFloat},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual, typ := canonNum(tc.input)
			assert.Equal(tc.expect, actual)
			assert.Equal(tc.expectType, typ)
		})
	}
}

func Test_newTemp_numbersFromZero(t *testing.T) {
	assert := assert.New(t)

	tr := NewTranslation(symbols.NewTable(), &diag.Log{})

	assert.Equal("t0", tr.newTemp())
	assert.Equal("t1", tr.newTemp())
	assert.Equal("t2", tr.newTemp())

	// a fresh translation restarts the numbering
	tr2 := NewTranslation(symbols.NewTable(), &diag.Log{})
	assert.Equal("t0", tr2.newTemp())
}

func Test_newLabel_unique(t *testing.T) {
	assert := assert.New(t)

	tr := NewTranslation(symbols.NewTable(), &diag.Log{})

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		l := tr.newLabel()
		assert.False(seen[l], "label %q repeated", l)
		seen[l] = true
	}
}

func Test_coerce(t *testing.T) {
	assert := assert.New(t)

	tr := NewTranslation(symbols.NewTable(), &diag.Log{})

	t.Run("same types need no conversion", func(t *testing.T) {
		left := &Node{Value: "a", Type: symbols.TypeInt}
		right := &Node{Value: "1", Type: symbols.TypeInt}

		code, result, typ, lv, rv := tr.coerce(left, right)

		assert.Empty(code)
		assert.Equal("t0", result)
		assert.Equal(symbols.TypeInt, typ)
		assert.Equal("a", lv)
		assert.Equal("1", rv)
	})

	t.Run("int operand converts to float", func(t *testing.T) {
		left := &Node{Value: "a", Type: symbols.TypeInt}
		right := &Node{Value: "b", Type: symbols.TypeFloat}

		code, result, typ, lv, rv := tr.coerce(left, right)

		if !assert.Len(code, 1) {
			return
		}
		assert.Equal(quad.OpCast, code[0].Op)
		assert.Equal(symbols.TypeFloat, code[0].Type)
		assert.Equal("t2", code[0].Dest, "conversion temp allocated after result temp")
		assert.Equal("a", code[0].Src1)

		assert.Equal("t1", result)
		assert.Equal(symbols.TypeFloat, typ)
		assert.Equal("t2", lv, "left operand is rewritten to the conversion temp")
		assert.Equal("b", rv)
	})
}

func Test_bindBreaks(t *testing.T) {
	assert := assert.New(t)

	j1 := &quad.Instruction{Op: quad.OpJump, Type: symbols.TypeInt}
	j2 := &quad.Instruction{Op: quad.OpJump, Type: symbols.TypeInt}
	breaks := []*Break{{Line: 3, Jump: j1}, {Line: 8, Jump: j2}}

	bindBreaks(breaks, "Lend")

	assert.Equal("Lend", j1.Dest)
	assert.Equal("Lend", j2.Dest)
}
