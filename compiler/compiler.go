// Package compiler contains the single-pass Pratt compiler for Calyx. It
// consumes the scanner's token stream and emits bytecode straight into a
// chunk, with no intermediate tree: parsing, scope tracking, constant
// interning and code emission all happen in one pass. Each token maps to a
// parse rule with optional prefix and infix parselets and a precedence
// level.
package compiler

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"

	"calyx/chunk"
	"calyx/scanner"
	"calyx/token"
	"calyx/value"
)

// halt is the panic payload used to unwind to Compile after the first
// parse error has been reported.
type halt struct{}

// local tracks a block-scoped variable during compilation. Its index in
// the locals slice equals the value-stack slot the variable occupies at
// runtime.
type local struct {
	name        token.Token
	depth       int
	initialized bool
}

// Compiler compiles one source string into a chunk. A fresh Compiler is
// created per compile; in REPL mode the chunk it appends to is long-lived
// while the locals always start empty (top-level scope closes at the end
// of every line).
type Compiler struct {
	scanner *scanner.Scanner
	chunk   *chunk.Chunk

	previous token.Token
	current  token.Token

	// 0 is global scope, each `{` increments and each `}` decrements
	scopeDepth int
	locals     []local

	errOut io.Writer
}

// Compile drains the source to EOF, emitting bytecode into ch. Parse
// errors are reported to stderr and compilation halts at the first one,
// returning a ParsingError.
func Compile(source string, ch *chunk.Chunk) error {
	c := &Compiler{
		scanner: scanner.New(source),
		chunk:   ch,
		errOut:  os.Stderr,
	}
	return c.run()
}

func (c *Compiler) run() (err error) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(halt); !ok {
				panic(r)
			}
			err = ParsingError{}
		}
	}()

	c.advance()
	for !c.match(token.EOF) {
		c.declaration()
	}
	return nil
}

// advance consumes one token. Error tokens coming out of the scanner are
// reported immediately and halt compilation.
func (c *Compiler) advance() {
	c.previous = c.current
	c.current = c.scanner.ScanToken()
	if c.current.TokenType == token.ERROR {
		c.errorAtCurrent(c.current.Message)
	}
}

// consume advances past the current token if it matches the expected
// type, otherwise reports the given error message.
func (c *Compiler) consume(tokenType token.TokenType, message string) {
	if c.current.TokenType == tokenType {
		c.advance()
		return
	}
	c.errorAtCurrent(message)
}

// match consumes the current token only if it has the given type.
func (c *Compiler) match(tokenType token.TokenType) bool {
	if c.current.TokenType != tokenType {
		return false
	}
	c.advance()
	return true
}

func (c *Compiler) errorAtCurrent(message string) {
	c.errorAt(c.current, message)
}

func (c *Compiler) error(message string) {
	c.errorAt(c.previous, message)
}

// errorAt reports a parse error against the given token and halts
// compilation. The report format is:
//
//	[line L] Error at '<lexeme>': <message>
//
// with "at end" for EOF tokens and no location for scanner error tokens.
func (c *Compiler) errorAt(tok token.Token, message string) {
	where := ""
	switch tok.TokenType {
	case token.EOF:
		where = " at end"
	case token.ERROR:
	default:
		where = fmt.Sprintf(" at '%s'", c.scanner.Lexeme(tok))
	}
	fmt.Fprintf(c.errOut, "[line %d] Error%s: %s\n", tok.Line, where, message)
	panic(halt{})
}

// declaration is the top-level grammar production. Function and class
// declarations will hang off here once the language grows them.
func (c *Compiler) declaration() {
	logrus.Debugf("compiler: declaration at line %d", c.current.Line)
	if c.match(token.LET) {
		c.varStatement()
		return
	}
	c.statement()
}

func (c *Compiler) statement() {
	switch {
	case c.match(token.PRINT):
		c.printStatement()
	case c.match(token.LCUR):
		c.beginScope()
		c.block()
		c.endScope()
	default:
		c.expressionStatement()
	}
}

func (c *Compiler) printStatement() {
	c.expression()
	c.consume(token.SEMICOLON, "Expected ';' after value")
	c.emit(chunk.OP_PRINT)
}

// expressionStatement compiles a bare expression and discards its value.
// The trailing OP_POP keeps the stack balanced: assignments leave the
// assigned value behind, so every expression statement must pop.
func (c *Compiler) expressionStatement() {
	c.expression()
	c.consume(token.SEMICOLON, "Expected ';' after expression")
	c.emit(chunk.OP_POP)
}

// varStatement compiles `let IDENT (= expression)? ;`. A declaration
// without an initializer binds the variable to null.
func (c *Compiler) varStatement() {
	index := c.parseVariableName("Expected variable name")

	if c.match(token.EQUAL) {
		c.expression()
	} else {
		c.emit(chunk.OP_NULL)
	}
	c.consume(token.SEMICOLON, "Expected ';' after variable declaration")

	c.defineGlobal(index)
}

// parseVariableName consumes the identifier being declared. In global
// scope it interns the name into the constant pool and returns its index;
// in local scope it records the local and returns an unused sentinel,
// since locals are addressed by stack slot instead of by name.
func (c *Compiler) parseVariableName(errorMessage string) int {
	c.consume(token.IDENTIFIER, errorMessage)
	c.declareVariable()
	if c.scopeDepth > 0 {
		return 0
	}
	return c.identifierConstant(c.previous)
}

// declareVariable registers the just-consumed identifier as a local when
// inside a block. The local starts uninitialized so its initializer
// cannot read it.
func (c *Compiler) declareVariable() {
	if c.scopeDepth == 0 {
		return
	}
	c.locals = append(c.locals, local{
		name:  c.previous,
		depth: c.scopeDepth,
	})
}

// defineGlobal finishes a variable declaration. Globals emit the define
// instruction; locals simply become readable, their value already sitting
// in the stack slot the declaration's initializer left it in.
func (c *Compiler) defineGlobal(index int) {
	if c.scopeDepth > 0 {
		c.locals[len(c.locals)-1].initialized = true
		return
	}
	c.emitWithOperand(chunk.OP_DEFINE_GLOBAL, index)
}

// identifierConstant interns the token's name into the constant pool as
// an Identifier value and returns its index.
func (c *Compiler) identifierConstant(tok token.Token) int {
	return c.chunk.AddConstant(value.Identifier(tok.Literal))
}

func (c *Compiler) beginScope() {
	c.scopeDepth++
}

// endScope closes the innermost block, popping exactly the locals it
// added so their stack slots are released.
func (c *Compiler) endScope() {
	c.scopeDepth--
	for len(c.locals) > 0 && c.locals[len(c.locals)-1].depth > c.scopeDepth {
		c.emit(chunk.OP_POP)
		c.locals = c.locals[:len(c.locals)-1]
	}
}

func (c *Compiler) block() {
	for c.current.TokenType != token.RCUR && c.current.TokenType != token.EOF {
		c.declaration()
	}
	c.consume(token.RCUR, "Expected '}' after block")
}

// expression begins parsing at the assignment precedence level.
func (c *Compiler) expression() {
	c.parsePresedence(PREC_ASSIGNMENT)
}

// parsePresedence is the engine of the Pratt parser. It consumes one
// token, applies its prefix rule, then keeps applying infix rules while
// the next token's precedence is at least the requested minimum. A
// trailing `=` that no parselet claimed is an invalid assignment target.
func (c *Compiler) parsePresedence(presedence Precedence) {
	c.advance()

	rule := getParseRule(c.previous.TokenType)
	if rule.prefix == nil {
		c.error("Expected expression")
		return
	}

	canAssign := presedence <= PREC_ASSIGNMENT
	rule.prefix(c, canAssign)

	for presedence <= getParseRule(c.current.TokenType).precedence {
		c.advance()
		getParseRule(c.previous.TokenType).infix(c, canAssign)
	}

	if canAssign && c.match(token.EQUAL) {
		c.error("Invalid assignment target")
	}
}

// grouping handles parenthesized expressions.
func (c *Compiler) grouping(_ bool) {
	c.expression()
	c.consume(token.RPA, "Expected ')'")
}

// number parses the previous token's lexeme as a float and emits it as a
// constant.
func (c *Compiler) number(_ bool) {
	v, err := strconv.ParseFloat(c.previous.Literal, 64)
	if err != nil {
		c.error("Invalid number literal")
		return
	}
	c.emitConstant(value.Float(v))
}

// stringLiteral emits the string contents as a String object constant.
func (c *Compiler) stringLiteral(_ bool) {
	c.emitConstant(value.String(c.previous.Literal))
}

// literal emits the dedicated instruction for true, false and null.
func (c *Compiler) literal(_ bool) {
	switch c.previous.TokenType {
	case token.NULL:
		c.emit(chunk.OP_NULL)
	case token.TRUE:
		c.emit(chunk.OP_TRUE)
	case token.FALSE:
		c.emit(chunk.OP_FALSE)
	}
}

// unary compiles the operand first, then emits the operator instruction.
func (c *Compiler) unary(_ bool) {
	operator := c.previous.TokenType
	c.parsePresedence(PREC_UNARY)

	switch operator {
	case token.MINUS:
		c.emit(chunk.OP_NEGATE)
	case token.BANG:
		c.emit(chunk.OP_NOT)
	}
}

// binary compiles the right-hand operand one precedence level above the
// operator, then emits the operator's instruction sequence. >=, <= and !=
// are compiled as the inverse comparison followed by OP_NOT.
func (c *Compiler) binary(_ bool) {
	operator := c.previous.TokenType
	rule := getParseRule(operator)
	c.parsePresedence(rule.precedence + 1)

	switch operator {
	case token.PLUS:
		c.emit(chunk.OP_ADD)
	case token.MINUS:
		c.emit(chunk.OP_SUBTRACT)
	case token.STAR:
		c.emit(chunk.OP_MULTIPLY)
	case token.SLASH:
		c.emit(chunk.OP_DIVIDE)
	case token.EQUAL_EQUAL:
		c.emit(chunk.OP_EQUALITY)
	case token.BANG_EQUAL:
		c.emit(chunk.OP_EQUALITY)
		c.emit(chunk.OP_NOT)
	case token.GREATER:
		c.emit(chunk.OP_LARGER)
	case token.LESS:
		c.emit(chunk.OP_LESS)
	case token.GREATER_EQUAL:
		c.emit(chunk.OP_LESS)
		c.emit(chunk.OP_NOT)
	case token.LESS_EQUAL:
		c.emit(chunk.OP_LARGER)
		c.emit(chunk.OP_NOT)
	}
}

// variable is the prefix rule for identifiers.
func (c *Compiler) variable(canAssign bool) {
	c.namedVariable(c.previous, canAssign)
}

// namedVariable resolves a name to either a local stack slot or a global
// identifier constant, then emits the matching get or set instruction. A
// set is emitted only when an `=` follows in a context that allows
// assignment.
func (c *Compiler) namedVariable(name token.Token, canAssign bool) {
	var getOp, setOp chunk.Opcode
	index := c.resolveLocal(name)
	if index != -1 {
		getOp, setOp = chunk.OP_GET_LOCAL, chunk.OP_SET_LOCAL
	} else {
		index = c.identifierConstant(name)
		getOp, setOp = chunk.OP_GET_GLOBAL, chunk.OP_SET_GLOBAL
	}

	if canAssign && c.match(token.EQUAL) {
		c.expression()
		c.emitWithOperand(setOp, index)
		return
	}
	c.emitWithOperand(getOp, index)
}

// resolveLocal scans the locals from newest to oldest and returns the
// stack slot of the first name match, or -1 when the name is not a local.
// Reading a local inside its own initializer is an error.
func (c *Compiler) resolveLocal(name token.Token) int {
	for i := len(c.locals) - 1; i >= 0; i-- {
		if c.locals[i].name.Literal == name.Literal {
			if !c.locals[i].initialized {
				c.error("Cannot read local variable in its own initializer")
			}
			return i
		}
	}
	return -1
}

// emit appends an instruction without an operand, tagged with the line of
// the token that produced it.
func (c *Compiler) emit(op chunk.Opcode) {
	c.emitWithOperand(op, 0)
}

func (c *Compiler) emitWithOperand(op chunk.Opcode, operand int) {
	logrus.Debugf("compiler: emit %s %d (line %d)", op, operand, c.previous.Line)
	c.chunk.Write(op, operand, c.previous.Line)
}

// emitConstant interns the value and emits the instruction pushing it.
func (c *Compiler) emitConstant(v value.Value) {
	c.emitWithOperand(chunk.OP_CONSTANT, c.chunk.AddConstant(v))
}
