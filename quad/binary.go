package quad

import (
	"fmt"

	"github.com/dekarrin/rezi"

	"github.com/dekarrin/cpq/cpl/symbols"
)

// This file contains the binary encoding of resolved programs, used for .qbc
// files. Only resolved programs are encodable; label pseudo-ops are rejected.

// MarshalBinary converts the instruction to a slice of bytes that can be
// decoded with UnmarshalBinary.
func (inst Instruction) MarshalBinary() ([]byte, error) {
	if inst.Op == OpLabel {
		return nil, fmt.Errorf("cannot encode unresolved label pseudo-op")
	}

	var data []byte
	data = append(data, rezi.EncString(inst.Op)...)
	data = append(data, rezi.EncInt(int(inst.Type))...)
	data = append(data, rezi.EncString(inst.Dest)...)
	data = append(data, rezi.EncString(inst.Src1)...)
	data = append(data, rezi.EncString(inst.Src2)...)
	return data, nil
}

// UnmarshalBinary decodes a slice of bytes encoded by MarshalBinary into the
// instruction.
func (inst *Instruction) UnmarshalBinary(data []byte) error {
	var n int
	var err error
	var offset int

	inst.Op, n, err = rezi.DecString(data[offset:])
	if err != nil {
		return fmt.Errorf("op: %w", err)
	}
	offset += n

	var iVal int
	iVal, n, err = rezi.DecInt(data[offset:])
	if err != nil {
		return fmt.Errorf("type: %w", err)
	}
	inst.Type = symbols.Type(iVal)
	offset += n

	inst.Dest, n, err = rezi.DecString(data[offset:])
	if err != nil {
		return fmt.Errorf("dest: %w", err)
	}
	offset += n

	inst.Src1, n, err = rezi.DecString(data[offset:])
	if err != nil {
		return fmt.Errorf("src1: %w", err)
	}
	offset += n

	inst.Src2, _, err = rezi.DecString(data[offset:])
	if err != nil {
		return fmt.Errorf("src2: %w", err)
	}

	return nil
}

// MarshalBinary converts the program to a slice of bytes that can be decoded
// with UnmarshalBinary.
func (p Program) MarshalBinary() ([]byte, error) {
	var data []byte
	data = append(data, rezi.EncInt(len(p))...)
	for i := range p {
		instData, err := p[i].MarshalBinary()
		if err != nil {
			return nil, fmt.Errorf("instruction %d: %w", i+1, err)
		}
		data = append(data, rezi.EncInt(len(instData))...)
		data = append(data, instData...)
	}
	return data, nil
}

// UnmarshalBinary decodes a slice of bytes encoded by MarshalBinary into the
// program, replacing its current contents.
func (p *Program) UnmarshalBinary(data []byte) error {
	count, n, err := rezi.DecInt(data)
	if err != nil {
		return fmt.Errorf("count: %w", err)
	}
	offset := n

	prog := make(Program, count)
	for i := 0; i < count; i++ {
		var instLen int
		instLen, n, err = rezi.DecInt(data[offset:])
		if err != nil {
			return fmt.Errorf("instruction %d length: %w", i+1, err)
		}
		offset += n

		if offset+instLen > len(data) {
			return fmt.Errorf("instruction %d: unexpected end of data", i+1)
		}
		if err := prog[i].UnmarshalBinary(data[offset : offset+instLen]); err != nil {
			return fmt.Errorf("instruction %d: %w", i+1, err)
		}
		offset += instLen
	}

	*p = prog
	return nil
}
