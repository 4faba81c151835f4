// Package vm implements the stack-based virtual machine that executes
// compiled chunks. The VM owns the value stack and the globals table; a
// chunk is sealed by the time it arrives here and is never mutated.
package vm

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"calyx/chunk"
	"calyx/value"
)

// VM is the runtime environment where Calyx bytecode gets executed.
// Strictly single-threaded: compilation and execution never overlap and
// one goroutine owns all of the state below.
type VM struct {
	chunk   *chunk.Chunk
	ip      int
	stack   Stack
	globals map[string]value.Value

	// print statement destination, os.Stdout outside of tests
	out io.Writer

	debug bool
}

// New creates a VM with an empty stack and globals table, printing to
// stdout.
func New() *VM {
	return &VM{
		globals: make(map[string]value.Value),
		out:     os.Stdout,
	}
}

// SetOutput redirects the print statement, used by tests.
func (vm *VM) SetOutput(w io.Writer) {
	vm.out = w
}

// SetDebug toggles per-instruction trace output.
func (vm *VM) SetDebug(debug bool) {
	vm.debug = debug
}

// StackDepth reports how many values are on the stack. For every balanced
// program it is the same before and after Run.
func (vm *VM) StackDepth() int {
	return vm.stack.Len()
}

// Run executes ch from the VM's current instruction pointer until it
// walks past the last instruction. The ip persists across calls so a
// REPL can keep extending one chunk and resume where the previous line
// stopped; globals persist the same way.
//
// On a runtime error the VM aborts, resynchronizes the ip to the end of
// the chunk, clears the value stack, and returns a RuntimeError carrying
// the source line of the offending instruction.
func (vm *VM) Run(ch *chunk.Chunk) error {
	vm.chunk = ch
	for {
		instr, ok := ch.Get(vm.ip)
		if !ok {
			return nil
		}
		vm.ip++

		if vm.debug {
			logrus.Debugf("vm: stack %s", vm.stack.snapshot())
			logrus.Debugf("vm: %04d %s", vm.ip-1, instr)
		}

		if err := vm.exec(instr); err != nil {
			vm.ip = ch.Len()
			vm.stack.Reset()
			return RuntimeError{Err: err, Line: instr.Line}
		}
	}
}

func (vm *VM) exec(instr chunk.Instruction) error {
	switch instr.Op {
	case chunk.OP_CONSTANT:
		constant, ok := vm.chunk.GetConstant(instr.Operand)
		if !ok {
			return TypeError{Expected: "constant", Got: fmt.Sprintf("index %d", instr.Operand)}
		}
		vm.stack.Push(constant)

	case chunk.OP_NULL:
		vm.stack.Push(value.Null{})
	case chunk.OP_TRUE:
		vm.stack.Push(value.Boolean(true))
	case chunk.OP_FALSE:
		vm.stack.Push(value.Boolean(false))

	case chunk.OP_NEGATE:
		v, err := vm.pop()
		if err != nil {
			return err
		}
		f, ok := v.(value.Float)
		if !ok {
			return value.OperationNotSupportedError{Op: "-", Target: "for type " + v.TypeName()}
		}
		vm.stack.Push(-f)

	case chunk.OP_NOT:
		v, err := vm.pop()
		if err != nil {
			return err
		}
		vm.stack.Push(value.Boolean(!v.Truthy()))

	case chunk.OP_ADD, chunk.OP_SUBTRACT, chunk.OP_MULTIPLY, chunk.OP_DIVIDE:
		return vm.binOp(instr.Op)

	case chunk.OP_EQUALITY:
		b, err := vm.pop()
		if err != nil {
			return err
		}
		a, err := vm.pop()
		if err != nil {
			return err
		}
		vm.stack.Push(value.Boolean(value.Equals(a, b)))

	case chunk.OP_LARGER:
		b, err := vm.pop()
		if err != nil {
			return err
		}
		a, err := vm.pop()
		if err != nil {
			return err
		}
		vm.stack.Push(value.Boolean(value.Cmp(a, b) == value.Greater))

	case chunk.OP_LESS:
		b, err := vm.pop()
		if err != nil {
			return err
		}
		a, err := vm.pop()
		if err != nil {
			return err
		}
		vm.stack.Push(value.Boolean(value.Cmp(a, b) == value.Lower))

	case chunk.OP_PRINT:
		v, err := vm.pop()
		if err != nil {
			return err
		}
		fmt.Fprintln(vm.out, v)

	case chunk.OP_POP:
		if _, err := vm.pop(); err != nil {
			return err
		}

	case chunk.OP_DEFINE_GLOBAL:
		name, err := vm.readIdentifierConst(instr.Operand)
		if err != nil {
			return err
		}
		if _, exists := vm.globals[name]; exists {
			return AlreadyDefinedVariableError{Name: name}
		}
		v, err := vm.pop()
		if err != nil {
			return err
		}
		vm.globals[name] = v

	case chunk.OP_GET_GLOBAL:
		name, err := vm.readIdentifierConst(instr.Operand)
		if err != nil {
			return err
		}
		v, exists := vm.globals[name]
		if !exists {
			return UndefinedVariableError{Name: name}
		}
		vm.stack.Push(v)

	case chunk.OP_SET_GLOBAL:
		// assignment is an expression, the value stays on the stack
		name, err := vm.readIdentifierConst(instr.Operand)
		if err != nil {
			return err
		}
		if _, exists := vm.globals[name]; !exists {
			return UndefinedVariableError{Name: name}
		}
		v, ok := vm.stack.Peek()
		if !ok {
			return MissingValueError{}
		}
		vm.globals[name] = v

	case chunk.OP_GET_LOCAL:
		v, ok := vm.stack.Get(instr.Operand)
		if !ok {
			return MissingValueError{}
		}
		vm.stack.Push(v)

	case chunk.OP_SET_LOCAL:
		v, ok := vm.stack.Peek()
		if !ok {
			return MissingValueError{}
		}
		if !vm.stack.Set(instr.Operand, v) {
			return MissingValueError{}
		}

	default:
		return TypeError{Expected: "opcode", Got: instr.Op.String()}
	}
	return nil
}

// binOp pops b then a and dispatches on the operand types. Floats compute
// IEEE-754 arithmetic, division by zero included. Objects handle OP_ADD
// through their Add capability; everything else is unsupported.
func (vm *VM) binOp(op chunk.Opcode) error {
	b, err := vm.pop()
	if err != nil {
		return err
	}
	a, err := vm.pop()
	if err != nil {
		return err
	}

	if af, ok := a.(value.Float); ok {
		if bf, ok := b.(value.Float); ok {
			switch op {
			case chunk.OP_ADD:
				vm.stack.Push(af + bf)
			case chunk.OP_SUBTRACT:
				vm.stack.Push(af - bf)
			case chunk.OP_MULTIPLY:
				vm.stack.Push(af * bf)
			case chunk.OP_DIVIDE:
				vm.stack.Push(af / bf)
			}
			return nil
		}
	}

	if op == chunk.OP_ADD {
		if ao, ok := a.(value.Object); ok {
			if bo, ok := b.(value.Object); ok {
				result, err := ao.Add(bo)
				if err != nil {
					return err
				}
				vm.stack.Push(result)
				return nil
			}
		}
	}

	return value.OperationNotSupportedError{
		Op:     opSymbol(op),
		Target: "between " + a.TypeName() + " and " + b.TypeName(),
	}
}

func opSymbol(op chunk.Opcode) string {
	switch op {
	case chunk.OP_ADD:
		return "+"
	case chunk.OP_SUBTRACT:
		return "-"
	case chunk.OP_MULTIPLY:
		return "*"
	case chunk.OP_DIVIDE:
		return "/"
	}
	return op.String()
}

// readIdentifierConst fetches a constant that the globals protocol
// requires to be an Identifier. Any other variant means the compiler
// emitted garbage.
func (vm *VM) readIdentifierConst(index int) (string, error) {
	constant, ok := vm.chunk.GetConstant(index)
	if !ok {
		return "", TypeError{Expected: "identifier", Got: fmt.Sprintf("missing constant %d", index)}
	}
	identifier, ok := constant.(value.Identifier)
	if !ok {
		return "", TypeError{Expected: "identifier", Got: constant.TypeName()}
	}
	return string(identifier), nil
}

func (vm *VM) pop() (value.Value, error) {
	v, ok := vm.stack.Pop()
	if !ok {
		return nil, MissingValueError{}
	}
	return v, nil
}
