package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(tokens []Token) []TokenKind {
	result := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		result[i] = tok.Kind
	}
	return result
}

func TestScanSimpleAssignment(t *testing.T) {
	tokens, errors := Scan("test.py", "x = 5\n")
	require.Empty(t, errors)

	assert.Equal(t, []TokenKind{IDENT, OP, NUMBER, NEWLINE, EOF}, kinds(tokens))
	assert.Equal(t, "x", tokens[0].Lexeme)
	assert.Equal(t, "=", tokens[1].Lexeme)
	assert.Equal(t, "5", tokens[2].Lexeme)
	assert.Equal(t, 1, tokens[0].Position.Line)
	assert.Equal(t, 1, tokens[0].Position.Column)
}

func TestScanIndentation(t *testing.T) {
	source := "if x:\n    y = 1\nz = 2\n"
	tokens, errors := Scan("test.py", source)
	require.Empty(t, errors)

	assert.Equal(t, []TokenKind{
		IDENT, IDENT, OP, NEWLINE,
		INDENT, IDENT, OP, NUMBER, NEWLINE,
		DEDENT, IDENT, OP, NUMBER, NEWLINE,
		EOF,
	}, kinds(tokens))
}

func TestScanNestedIndentation(t *testing.T) {
	source := "if a:\n    if b:\n        x = 1\n"
	tokens, errors := Scan("test.py", source)
	require.Empty(t, errors)

	var indents, dedents int
	for _, tok := range tokens {
		switch tok.Kind {
		case INDENT:
			indents++
		case DEDENT:
			dedents++
		}
	}
	assert.Equal(t, 2, indents)
	assert.Equal(t, 2, dedents)
}

func TestScanBlankLinesAndComments(t *testing.T) {
	source := "x = 1\n\n# a comment\n    \ny = 2\n"
	tokens, errors := Scan("test.py", source)
	require.Empty(t, errors)

	// Blank and comment-only lines contribute no NEWLINE or INDENT.
	assert.Equal(t, []TokenKind{
		IDENT, OP, NUMBER, NEWLINE,
		IDENT, OP, NUMBER, NEWLINE,
		EOF,
	}, kinds(tokens))
}

func TestScanStringsAreUnquoted(t *testing.T) {
	tokens, errors := Scan("test.py", `s = "hello"` + "\n")
	require.Empty(t, errors)

	require.Equal(t, STRING, tokens[2].Kind)
	assert.Equal(t, "hello", tokens[2].Lexeme)
}

func TestScanMultiCharOperators(t *testing.T) {
	tokens, errors := Scan("test.py", "a ** b // c == d\n")
	require.Empty(t, errors)

	lexemes := []string{}
	for _, tok := range tokens {
		if tok.Kind == OP {
			lexemes = append(lexemes, tok.Lexeme)
		}
	}
	assert.Equal(t, []string{"**", "//", "=="}, lexemes)
}

func TestScanMissingFinalNewline(t *testing.T) {
	tokens, errors := Scan("test.py", "x = 5")
	require.Empty(t, errors)

	assert.Equal(t, []TokenKind{IDENT, OP, NUMBER, NEWLINE, EOF}, kinds(tokens))
}

func TestScanBadUnindent(t *testing.T) {
	source := "if a:\n        x = 1\n    y = 2\n"
	_, errors := Scan("test.py", source)

	require.Len(t, errors, 1)
	assert.Contains(t, errors[0].Message, "unindent")
}

func TestScanInvalidCharacter(t *testing.T) {
	_, errors := Scan("test.py", "x = 5 @\n")
	assert.NotEmpty(t, errors)
}
