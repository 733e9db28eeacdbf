package parser

import "github.com/jingwhale/blockpy/internal/ast"

// ParseSource tokenizes and parses one source unit. The module is usable
// whenever scanning succeeded, even if parse errors were recorded.
func ParseSource(path string, source string) (*ast.Module, []ParseError, []ScanError) {
	tokens, scanErrors := Scan(path, source)
	if tokens == nil {
		return nil, nil, scanErrors
	}

	parser := NewParser(path, tokens)
	module := parser.ParseModule()
	return module, parser.errors, scanErrors
}
