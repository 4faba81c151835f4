// Package chunk holds the in-memory bytecode representation produced by
// the compiler and executed by the VM: an append-only instruction
// sequence, the source line of every instruction, and the constant pool.
package chunk

import (
	"fmt"
	"strings"

	"calyx/value"
)

// Instruction is a single decoded VM operation. Operand is meaningful only
// for opcodes whose HasOperand reports true; Line is the source line of
// the token the instruction was emitted for.
type Instruction struct {
	Op      Opcode
	Operand int
	Line    int
}

func (i Instruction) String() string {
	operand := ""
	if i.Op.HasOperand() {
		operand = fmt.Sprintf("%d", i.Operand)
	}
	return fmt.Sprintf("%-16s %-6s L%d", i.Op, operand, i.Line)
}

// Chunk is the unit of compiled code handed from the compiler to the VM.
// It is filled during compilation and treated as read-only during
// execution; constant indices never change once assigned.
type Chunk struct {
	code      []Instruction
	constants []value.Value
}

// New creates an empty chunk.
func New() *Chunk {
	return &Chunk{}
}

// Write appends an instruction tagged with its source line.
func (c *Chunk) Write(op Opcode, operand, line int) {
	c.code = append(c.code, Instruction{Op: op, Operand: operand, Line: line})
}

// AddConstant appends a value to the constant pool and returns its index.
func (c *Chunk) AddConstant(v value.Value) int {
	c.constants = append(c.constants, v)
	return len(c.constants) - 1
}

// Get returns the instruction at the given offset, reporting false when
// the offset is past the end of the code.
func (c *Chunk) Get(offset int) (Instruction, bool) {
	if offset < 0 || offset >= len(c.code) {
		return Instruction{}, false
	}
	return c.code[offset], true
}

// GetConstant returns the constant-pool entry at the given index.
func (c *Chunk) GetConstant(index int) (value.Value, bool) {
	if index < 0 || index >= len(c.constants) {
		return nil, false
	}
	return c.constants[index], true
}

// Len is the number of instructions in the chunk.
func (c *Chunk) Len() int {
	return len(c.code)
}

// ConstantsLen is the number of entries in the constant pool.
func (c *Chunk) ConstantsLen() int {
	return len(c.constants)
}

// IsEmpty reports whether the chunk holds no instructions.
func (c *Chunk) IsEmpty() bool {
	return len(c.code) == 0
}

// Truncate discards every instruction at or past the given offset. The
// REPL uses this to roll back the partial bytecode of a line whose
// compilation failed; the constant pool keeps its entries since indices
// must stay stable.
func (c *Chunk) Truncate(offset int) {
	if offset < 0 || offset > len(c.code) {
		return
	}
	c.code = c.code[:offset]
}

// Disassemble renders the whole chunk as a human readable listing, one
// instruction per line:
//
//	0    OP_CONSTANT      0      L1   ; 9
//	1    OP_PRINT                L1
//
// Instructions with a constant-pool operand are annotated with the
// constant's display form.
func (c *Chunk) Disassemble() string {
	var builder strings.Builder
	for offset, instr := range c.code {
		builder.WriteString(fmt.Sprintf("%-4d %s", offset, instr))
		switch instr.Op {
		case OP_CONSTANT, OP_DEFINE_GLOBAL, OP_GET_GLOBAL, OP_SET_GLOBAL:
			if constant, ok := c.GetConstant(instr.Operand); ok {
				builder.WriteString(fmt.Sprintf("   ; %s", constant))
			}
		}
		if offset < len(c.code)-1 {
			builder.WriteString("\n")
		}
	}
	return builder.String()
}
