package vm_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/cpq"
	"github.com/dekarrin/cpq/vm"
)

// compile builds a program for execution, failing the test on any diagnostic.
func compile(t *testing.T, src string) vm.Program {
	t.Helper()

	prog, diags, err := cpq.CompileString(src)
	if err != nil {
		t.Fatalf("internal error: %v", err)
	}
	if len(diags) > 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	return prog
}

func Test_Run_assignmentAndOutput(t *testing.T) {
	assert := assert.New(t)

	prog := compile(t, "int a;\n{\na = 3;\noutput(a * 2 + 1);\n}")

	var out strings.Builder
	m := vm.New(strings.NewReader(""), &out)

	if !assert.NoError(m.Run(prog)) {
		return
	}
	assert.Equal("7\n", out.String())
}

func Test_Run_inputLoop(t *testing.T) {
	assert := assert.New(t)

	// read a count and print a countdown
	prog := compile(t, "int n;\n{\ninput(n);\nwhile (n > 0) {\noutput(n);\nn = n - 1;\n}\n}")

	var out strings.Builder
	m := vm.New(strings.NewReader("3\n"), &out)

	if !assert.NoError(m.Run(prog)) {
		return
	}
	assert.Equal("3\n2\n1\n", out.String())
}

func Test_Run_floatCoercion(t *testing.T) {
	assert := assert.New(t)

	prog := compile(t, "int a;\nfloat b;\n{\na = 3;\nb = a + 1.5;\noutput(b);\n}")

	var out strings.Builder
	m := vm.New(strings.NewReader(""), &out)

	if !assert.NoError(m.Run(prog)) {
		return
	}
	assert.Equal("4.5\n", out.String())
}

func Test_Run_switchSelectsCase(t *testing.T) {
	assert := assert.New(t)

	src := "int x;\n{\ninput(x);\nswitch (x) {\ncase 1:\noutput(10);\nbreak;\ncase 2:\noutput(20);\nbreak;\ndefault:\noutput(99);\n}\n}"
	prog := compile(t, src)

	for _, tc := range []struct {
		input  string
		expect string
	}{
		{"1", "10\n"},
		{"2", "20\n"},
		{"7", "99\n"},
	} {
		var out strings.Builder
		m := vm.New(strings.NewReader(tc.input), &out)

		if !assert.NoError(m.Run(prog)) {
			return
		}
		assert.Equal(tc.expect, out.String(), "input %s", tc.input)
	}
}

func Test_Run_breakLeavesLoop(t *testing.T) {
	assert := assert.New(t)

	src := "int a;\n{\na = 10;\nwhile (a > 0) {\nif (a == 7)\nbreak;\nelse\na = a - 1;\n}\noutput(a);\n}"
	prog := compile(t, src)

	var out strings.Builder
	m := vm.New(strings.NewReader(""), &out)

	if !assert.NoError(m.Run(prog)) {
		return
	}
	assert.Equal("7\n", out.String())
}

func Test_Run_stepLimitStopsRunawayProgram(t *testing.T) {
	assert := assert.New(t)

	prog := compile(t, "int a;\n{\nwhile (0 < 1) {\na = a + 1;\n}\n}")

	var out strings.Builder
	m := vm.New(strings.NewReader(""), &out)
	m.StepLimit = 1000

	assert.Error(m.Run(prog))
}

func Test_Run_missingInput(t *testing.T) {
	assert := assert.New(t)

	prog := compile(t, "int a;\n{\ninput(a);\n}")

	var out strings.Builder
	m := vm.New(strings.NewReader(""), &out)

	assert.Error(m.Run(prog))
}
