package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calyx/token"
)

// scanAll drains the scanner up to and including the first EOF or ERROR
// token.
func scanAll(source string) []token.Token {
	s := New(source)
	var tokens []token.Token
	for {
		tok := s.ScanToken()
		tokens = append(tokens, tok)
		if tok.TokenType == token.EOF || tok.TokenType == token.ERROR {
			return tokens
		}
	}
}

func kinds(tokens []token.Token) []token.TokenType {
	types := make([]token.TokenType, len(tokens))
	for i, tok := range tokens {
		types[i] = tok.TokenType
	}
	return types
}

func TestScanOperatorsAndPunctuation(t *testing.T) {
	tokens := scanAll("( ) { } , . ; - + / * ! != = == > >= < <=")
	assert.Equal(t, []token.TokenType{
		token.LPA, token.RPA, token.LCUR, token.RCUR, token.COMMA, token.DOT,
		token.SEMICOLON, token.MINUS, token.PLUS, token.SLASH, token.STAR,
		token.BANG, token.BANG_EQUAL, token.EQUAL, token.EQUAL_EQUAL,
		token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL,
		token.EOF,
	}, kinds(tokens))
}

func TestScanNumbers(t *testing.T) {
	tests := []struct {
		source  string
		literal string
	}{
		{"0", "0"},
		{"123", "123"},
		{"5.545", "5.545"},
		{"10.0", "10.0"},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			tokens := scanAll(tt.source)
			require.Len(t, tokens, 2)
			assert.Equal(t, token.NUMBER, tokens[0].TokenType)
			assert.Equal(t, tt.literal, tokens[0].Literal)
		})
	}
}

func TestScanNumberNoTrailingDot(t *testing.T) {
	// `1.` is a number followed by a dot, the fraction needs digits
	tokens := scanAll("1.")
	require.Len(t, tokens, 3)
	assert.Equal(t, token.NUMBER, tokens[0].TokenType)
	assert.Equal(t, "1", tokens[0].Literal)
	assert.Equal(t, token.DOT, tokens[1].TokenType)
}

func TestScanString(t *testing.T) {
	tokens := scanAll(`"hello world"`)
	require.Len(t, tokens, 2)
	assert.Equal(t, token.STRING, tokens[0].TokenType)
	assert.Equal(t, "hello world", tokens[0].Literal)
}

func TestScanMultiLineString(t *testing.T) {
	s := New("\"a\nb\" 1")
	tok := s.ScanToken()
	assert.Equal(t, token.STRING, tok.TokenType)
	assert.Equal(t, "a\nb", tok.Literal)

	// the embedded newline advanced the line counter
	next := s.ScanToken()
	assert.Equal(t, token.NUMBER, next.TokenType)
	assert.Equal(t, 2, next.Line)
}

func TestScanUnterminatedString(t *testing.T) {
	tokens := scanAll(`"oops`)
	require.Len(t, tokens, 1)
	assert.Equal(t, token.ERROR, tokens[0].TokenType)
	assert.Equal(t, "Unterminated string", tokens[0].Message)
}

func TestScanIdentifiersAndKeywords(t *testing.T) {
	tokens := scanAll("let foo = truthy; print true;")
	assert.Equal(t, []token.TokenType{
		token.LET, token.IDENTIFIER, token.EQUAL, token.IDENTIFIER,
		token.SEMICOLON, token.PRINT, token.TRUE, token.SEMICOLON, token.EOF,
	}, kinds(tokens))
	assert.Equal(t, "foo", tokens[1].Literal)
	assert.Equal(t, "truthy", tokens[3].Literal)
}

func TestScanReservedKeywords(t *testing.T) {
	tokens := scanAll("if else while for fn return class this super and or")
	assert.Equal(t, []token.TokenType{
		token.IF, token.ELSE, token.WHILE, token.FOR, token.FN, token.RETURN,
		token.CLASS, token.THIS, token.SUPER, token.AND, token.OR, token.EOF,
	}, kinds(tokens))
}

func TestScanComments(t *testing.T) {
	tokens := scanAll("1 // the rest is ignored\n2")
	require.Len(t, tokens, 3)
	assert.Equal(t, "1", tokens[0].Literal)
	assert.Equal(t, "2", tokens[1].Literal)
	assert.Equal(t, 2, tokens[1].Line)
}

func TestScanLineTracking(t *testing.T) {
	tokens := scanAll("1\n2\n\n3")
	require.Len(t, tokens, 4)
	assert.Equal(t, 1, tokens[0].Line)
	assert.Equal(t, 2, tokens[1].Line)
	assert.Equal(t, 4, tokens[2].Line)
}

func TestScanUnexpectedCharacter(t *testing.T) {
	tokens := scanAll("1 @")
	require.Len(t, tokens, 2)
	assert.Equal(t, token.ERROR, tokens[1].TokenType)
	assert.Equal(t, "Unexpected character", tokens[1].Message)
}

func TestScanEOFForever(t *testing.T) {
	s := New("")
	for i := 0; i < 3; i++ {
		assert.Equal(t, token.EOF, s.ScanToken().TokenType)
	}
}

func TestLexeme(t *testing.T) {
	s := New("let answer = 42;")
	s.ScanToken() // let
	tok := s.ScanToken()
	require.Equal(t, token.IDENTIFIER, tok.TokenType)
	assert.Equal(t, "answer", s.Lexeme(tok))
}
