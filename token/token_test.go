package token

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenTypeString(t *testing.T) {
	for tt := TokenType(0); int(tt) < TotalTokenTypes; tt++ {
		name := tt.String()
		assert.NotEmpty(t, name, "missing string representation of token type %d", int(tt))
		assert.False(t, strings.HasPrefix(name, "TokenType("),
			"invalid string representation of token type %d", int(tt))
	}
}

func TestTokenTypeStringOutOfRange(t *testing.T) {
	assert.Equal(t, "TokenType(-1)", TokenType(-1).String())
	assert.Equal(t, "TokenType(999)", TokenType(999).String())
}

func TestKeyWords(t *testing.T) {
	expected := map[string]TokenType{
		"and":    AND,
		"class":  CLASS,
		"else":   ELSE,
		"false":  FALSE,
		"fn":     FN,
		"for":    FOR,
		"if":     IF,
		"null":   NULL,
		"or":     OR,
		"print":  PRINT,
		"return": RETURN,
		"super":  SUPER,
		"this":   THIS,
		"true":   TRUE,
		"let":    LET,
		"while":  WHILE,
	}
	require.Len(t, KeyWords, len(expected))
	for lexeme, tokenType := range expected {
		got, ok := KeyWords[lexeme]
		require.True(t, ok, "keyword %q missing from table", lexeme)
		assert.Equal(t, tokenType, got, "keyword %q maps to the wrong token type", lexeme)
	}
}

func TestCreate(t *testing.T) {
	tok := Create(PLUS, 3, 10, 1)
	assert.Equal(t, PLUS, tok.TokenType)
	assert.Equal(t, 3, tok.Line)
	assert.Equal(t, 10, tok.Start)
	assert.Equal(t, 1, tok.Length)
	assert.Empty(t, tok.Literal)
	assert.Empty(t, tok.Message)
}

func TestCreateLiteral(t *testing.T) {
	tok := CreateLiteral(NUMBER, "42.5", 1, 0, 4)
	assert.Equal(t, NUMBER, tok.TokenType)
	assert.Equal(t, "42.5", tok.Literal)
	assert.Equal(t, "NUMBER(42.5)", tok.String())
}

func TestCreateError(t *testing.T) {
	tok := CreateError("Unexpected character", 7, 2, 1)
	assert.Equal(t, ERROR, tok.TokenType)
	assert.Equal(t, "Unexpected character", tok.Message)
	assert.Equal(t, 7, tok.Line)
}
