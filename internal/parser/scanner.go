package parser

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/jingwhale/blockpy/internal/ast"
)

type TokenKind int

const (
	EOF TokenKind = iota
	NEWLINE
	INDENT
	DEDENT
	IDENT
	NUMBER
	STRING
	OP
)

type Token struct {
	Kind     TokenKind
	Lexeme   string
	Position ast.Position
}

type ScanError struct {
	Message  string
	Position ast.Position
	Length   int
}

// sourceLexer tokenizes everything except block structure. Indentation is
// reconstructed afterwards from the whitespace runs it emits.
var sourceLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Newline", Pattern: `\r?\n`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
	{Name: "Number", Pattern: `[0-9]+(?:\.[0-9]+)?`},
	{Name: "String", Pattern: `"[^"\n]*"|'[^'\n]*'`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Op", Pattern: `\*\*|//|==|!=|<=|>=|[-+*/%<>=(),:.;\[\]{}]`},
})

// Scan tokenizes source and converts leading whitespace into
// INDENT/DEDENT/NEWLINE tokens the parser can consume like any other.
func Scan(filename, source string) ([]Token, []ScanError) {
	lex, err := sourceLexer.Lex(filename, strings.NewReader(source))
	if err != nil {
		return nil, []ScanError{{Message: err.Error(), Position: ast.Position{Filename: filename, Line: 1, Column: 1}}}
	}
	raw, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil, []ScanError{{Message: err.Error(), Position: ast.Position{Filename: filename, Line: 1, Column: 1}}}
	}

	symbols := sourceLexer.Symbols()
	comment := symbols["Comment"]
	newline := symbols["Newline"]
	whitespace := symbols["Whitespace"]
	number := symbols["Number"]
	str := symbols["String"]
	ident := symbols["Ident"]

	var tokens []Token
	var errors []ScanError
	indents := []int{0}
	atLineStart := true
	lineIndent := 0
	lineHadContent := false

	pos := func(t lexer.Token) ast.Position {
		return ast.Position{
			Filename: t.Pos.Filename,
			Offset:   t.Pos.Offset,
			Line:     t.Pos.Line,
			Column:   t.Pos.Column,
		}
	}

	for _, t := range raw {
		switch {
		case t.EOF():
			if lineHadContent {
				tokens = append(tokens, Token{Kind: NEWLINE, Position: pos(t)})
			}
			for len(indents) > 1 {
				indents = indents[:len(indents)-1]
				tokens = append(tokens, Token{Kind: DEDENT, Position: pos(t)})
			}
			tokens = append(tokens, Token{Kind: EOF, Position: pos(t)})
			return tokens, errors

		case t.Type == comment:
			// Comments never affect block structure.

		case t.Type == newline:
			if lineHadContent {
				tokens = append(tokens, Token{Kind: NEWLINE, Position: pos(t)})
			}
			atLineStart = true
			lineIndent = 0
			lineHadContent = false

		case t.Type == whitespace:
			if atLineStart {
				lineIndent += indentWidth(t.Value)
			}

		default:
			if atLineStart {
				atLineStart = false
				current := indents[len(indents)-1]
				if lineIndent > current {
					indents = append(indents, lineIndent)
					tokens = append(tokens, Token{Kind: INDENT, Position: pos(t)})
				} else {
					for lineIndent < indents[len(indents)-1] {
						indents = indents[:len(indents)-1]
						tokens = append(tokens, Token{Kind: DEDENT, Position: pos(t)})
					}
					if lineIndent != indents[len(indents)-1] {
						errors = append(errors, ScanError{
							Message:  "unindent does not match any outer indentation level",
							Position: pos(t),
						})
					}
				}
			}
			lineHadContent = true

			kind := OP
			value := t.Value
			switch t.Type {
			case number:
				kind = NUMBER
			case str:
				kind = STRING
				value = unquote(value)
			case ident:
				kind = IDENT
			}
			tokens = append(tokens, Token{Kind: kind, Lexeme: value, Position: pos(t)})
		}
	}

	// The raw stream always ends with an EOF token; reaching here means
	// the lexer contract was violated.
	return tokens, append(errors, ScanError{Message: "token stream ended without EOF"})
}

// indentWidth counts a whitespace run with tabs advancing to the next
// 8-column stop.
func indentWidth(ws string) int {
	width := 0
	for _, c := range ws {
		if c == '\t' {
			width += 8 - width%8
		} else {
			width++
		}
	}
	return width
}

func unquote(s string) string {
	if len(s) >= 2 {
		return s[1 : len(s)-1]
	}
	return s
}
