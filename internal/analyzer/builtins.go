package analyzer

import (
	"github.com/jingwhale/blockpy/internal/ast"
	"github.com/jingwhale/blockpy/internal/issue"
)

// defaultBuiltins returns the built-in functions the subset exposes. Each
// carries a synthetic Function type whose definition ignores its
// arguments unless noted.
func defaultBuiltins() map[string]*Type {
	return map[string]*Type{
		"range": FunctionType(func(a *Analyzer, args []*Type, pos ast.Position) *Type {
			return ListOf(NumType())
		}),
		"set": FunctionType(func(a *Analyzer, args []*Type, pos ast.Position) *Type {
			return SetType()
		}),
		"print": FunctionType(func(a *Analyzer, args []*Type, pos ast.Position) *Type {
			return NoneType()
		}),
		"input": FunctionType(func(a *Analyzer, args []*Type, pos ast.Position) *Type {
			return StrType()
		}),
		"open": FunctionType(func(a *Analyzer, args []*Type, pos ast.Position) *Type {
			return FileType()
		}),
	}
}

// visitAttribute resolves a method against the built-in attribute table.
// A receiver whose type has no matching method yields no type without
// raising, except for the cases the table itself calls out.
func (a *Analyzer) visitAttribute(node *ast.Attribute) *Type {
	valueType := a.visitExpr(node.Value)
	rootName := identifyCallerName(node.Value)

	switch node.Attr {
	case "append":
		if valueType.Kind != KindList {
			if valueType.Kind != KindUnknown {
				a.reportIssue(issue.AppendToNonList, issue.Data{
					Name:     rootName,
					Type:     typeName(valueType),
					Position: node.Pos,
				})
			}
			return UnknownType()
		}
		receiver := valueType
		return FunctionType(func(an *Analyzer, args []*Type, pos ast.Position) *Type {
			if len(args) > 0 && args[0] != nil {
				receiver.Empty = false
				receiver.Subtype = args[0]
				if rootName != "" {
					an.appendStore(rootName, receiver, pos)
				}
			}
			return NoneType()
		})

	case "items":
		if valueType.Kind != KindDict {
			if valueType.Kind != KindUnknown {
				a.reportIssue(issue.MethodNotInType, issue.Data{
					Name:     node.Attr,
					Type:     typeName(valueType),
					Position: node.Pos,
				})
			}
			return UnknownType()
		}
		keys, values := valueType.Keys, valueType.Values
		return FunctionType(func(an *Analyzer, args []*Type, pos ast.Position) *Type {
			return ListOf(TupleOf(keys, values))
		})

	default:
		return UnknownType()
	}
}
