package compiler

import (
	"fmt"

	"calyx/token"
)

// Precedence levels for the grammar's rules, ordered from lowest to
// highest. A binary operator's right-hand operand is parsed one level
// above the operator's own precedence, which yields left-associative
// semantics.
type Precedence int

const (
	PREC_NONE       Precedence = iota
	PREC_ASSIGNMENT            // =
	PREC_OR                    // or
	PREC_AND                   // and
	PREC_EQ                    // ==, !=
	PREC_CMP                   // <, <=, >, >=
	PREC_TERM                  // +, -
	PREC_FACTOR                // *, /
	PREC_UNARY                 // !, -
	PREC_CALL
	PREC_PRIMARY
)

// ParseFunc is a prefix or infix parselet. canAssign tells the parselet
// whether an `=` following it may begin an assignment.
type ParseFunc func(c *Compiler, canAssign bool)

// parseRule defines the parsing behavior for a specific token type: its
// optional prefix and infix parselets and its precedence level.
type parseRule struct {
	prefix     ParseFunc
	infix      ParseFunc
	precedence Precedence
}

// parsingRules is a dense table indexed by token-kind ordinal. Token kinds
// without an entry have no parselets and PREC_NONE. The precedence slots
// for `and` and `or` exist but no rules are wired up yet; they are
// reserved for future short-circuit operators.
var parsingRules [token.TotalTokenTypes]parseRule

func init() {
	parsingRules = [token.TotalTokenTypes]parseRule{
		token.LPA:           {prefix: (*Compiler).grouping},
		token.MINUS:         {prefix: (*Compiler).unary, infix: (*Compiler).binary, precedence: PREC_TERM},
		token.PLUS:          {infix: (*Compiler).binary, precedence: PREC_TERM},
		token.SLASH:         {infix: (*Compiler).binary, precedence: PREC_FACTOR},
		token.STAR:          {infix: (*Compiler).binary, precedence: PREC_FACTOR},
		token.BANG:          {prefix: (*Compiler).unary},
		token.BANG_EQUAL:    {infix: (*Compiler).binary, precedence: PREC_EQ},
		token.EQUAL_EQUAL:   {infix: (*Compiler).binary, precedence: PREC_EQ},
		token.GREATER:       {infix: (*Compiler).binary, precedence: PREC_CMP},
		token.GREATER_EQUAL: {infix: (*Compiler).binary, precedence: PREC_CMP},
		token.LESS:          {infix: (*Compiler).binary, precedence: PREC_CMP},
		token.LESS_EQUAL:    {infix: (*Compiler).binary, precedence: PREC_CMP},
		token.IDENTIFIER:    {prefix: (*Compiler).variable},
		token.STRING:        {prefix: (*Compiler).stringLiteral},
		token.NUMBER:        {prefix: (*Compiler).number},
		token.TRUE:          {prefix: (*Compiler).literal},
		token.FALSE:         {prefix: (*Compiler).literal},
		token.NULL:          {prefix: (*Compiler).literal},
	}

	// The table must stay in lockstep with the token-kind enumeration.
	if len(parsingRules) != token.TotalTokenTypes {
		panic(fmt.Sprintf("parse-rule table covers %d token kinds, want %d",
			len(parsingRules), token.TotalTokenTypes))
	}
}

// getParseRule retrieves the parsing rule associated with the given token
// type.
func getParseRule(tokenType token.TokenType) parseRule {
	if int(tokenType) < 0 || int(tokenType) >= len(parsingRules) {
		return parseRule{}
	}
	return parsingRules[tokenType]
}
