package chunk

import "fmt"

// Opcode identifies a single VM operation.
type Opcode byte

// iota generates a distinct value for each opcode
const (
	// OP_CONSTANT pushes the constant-pool entry named by its operand.
	OP_CONSTANT Opcode = iota
	OP_NEGATE
	OP_ADD
	OP_SUBTRACT
	OP_MULTIPLY
	OP_DIVIDE
	OP_NULL
	OP_TRUE
	OP_FALSE
	OP_NOT
	OP_EQUALITY
	OP_LARGER
	OP_LESS
	OP_PRINT
	OP_POP

	// globals protocol, operand is a constant-pool index holding the
	// variable name as an Identifier value
	OP_DEFINE_GLOBAL
	OP_GET_GLOBAL
	OP_SET_GLOBAL

	// locals alias the value stack, operand is an absolute stack slot
	OP_GET_LOCAL
	OP_SET_LOCAL

	totalOpcodes
)

// TotalOpcodes is the number of distinct opcodes.
const TotalOpcodes = int(totalOpcodes)

var opcodeNames = [TotalOpcodes]string{
	OP_CONSTANT:      "OP_CONSTANT",
	OP_NEGATE:        "OP_NEGATE",
	OP_ADD:           "OP_ADD",
	OP_SUBTRACT:      "OP_SUBTRACT",
	OP_MULTIPLY:      "OP_MULTIPLY",
	OP_DIVIDE:        "OP_DIVIDE",
	OP_NULL:          "OP_NULL",
	OP_TRUE:          "OP_TRUE",
	OP_FALSE:         "OP_FALSE",
	OP_NOT:           "OP_NOT",
	OP_EQUALITY:      "OP_EQUALITY",
	OP_LARGER:        "OP_LARGER",
	OP_LESS:          "OP_LESS",
	OP_PRINT:         "OP_PRINT",
	OP_POP:           "OP_POP",
	OP_DEFINE_GLOBAL: "OP_DEFINE_GLOBAL",
	OP_GET_GLOBAL:    "OP_GET_GLOBAL",
	OP_SET_GLOBAL:    "OP_SET_GLOBAL",
	OP_GET_LOCAL:     "OP_GET_LOCAL",
	OP_SET_LOCAL:     "OP_SET_LOCAL",
}

func (op Opcode) String() string {
	if int(op) >= TotalOpcodes {
		return fmt.Sprintf("Opcode(%d)", int(op))
	}
	return opcodeNames[op]
}

// HasOperand reports whether instructions with this opcode carry an
// operand (a constant-pool index or a stack slot).
func (op Opcode) HasOperand() bool {
	switch op {
	case OP_CONSTANT, OP_DEFINE_GLOBAL, OP_GET_GLOBAL, OP_SET_GLOBAL, OP_GET_LOCAL, OP_SET_LOCAL:
		return true
	}
	return false
}
