package analyzer

import (
	"github.com/jingwhale/blockpy/internal/ast"
	"github.com/jingwhale/blockpy/internal/issue"
)

// identifyCallerName descends a callee expression to its root name, so a
// chained call like xs[0].append(v) still identifies xs.
func identifyCallerName(expr ast.Expr) string {
	switch node := expr.(type) {
	case *ast.Name:
		return node.Id
	case *ast.Call:
		return identifyCallerName(node.Func)
	case *ast.Attribute:
		return identifyCallerName(node.Value)
	case *ast.Subscript:
		return identifyCallerName(node.Value)
	default:
		return ""
	}
}

// visitCall infers the callee and arguments, then re-enters the analyzer
// through the callee's stored definition.
func (a *Analyzer) visitCall(node *ast.Call) *Type {
	calleeName := identifyCallerName(node.Func)
	funcType := a.visitExpr(node.Func)

	argTypes := make([]*Type, len(node.Args))
	for i, arg := range node.Args {
		argTypes[i] = a.visitExpr(arg)
	}

	if funcType.Kind == KindFunction && funcType.Definition != nil {
		if a.callDepth >= maxCallDepth {
			return UnknownType()
		}
		a.callDepth++
		defer func() { a.callDepth-- }()
		return funcType.Definition(a, argTypes, node.Pos)
	}

	if funcType.Kind == KindUnknown {
		a.reportIssue(issue.UnknownFunctions, issue.Data{Name: calleeName, Position: node.Pos})
	} else {
		a.reportIssue(issue.NotAFunction, issue.Data{
			Name:     calleeName,
			Type:     typeName(funcType),
			Position: node.Pos,
		})
	}
	return UnknownType()
}

// visitFunctionDef stores the function under its name. The body is not
// analyzed here: the stored definition captures the defining scope chain
// and the body nodes, and re-enters the analyzer at each call site.
func (a *Analyzer) visitFunctionDef(node *ast.FunctionDef) {
	definingChain := make([]int, len(a.scopeChain))
	copy(definingChain, a.scopeChain)

	definition := func(an *Analyzer, args []*Type, pos ast.Position) *Type {
		an.scopeID++
		newScope := an.scopeID

		saved := an.scopeChain
		an.scopeChain = append([]int{newScope}, definingChain...)
		defer func() { an.scopeChain = saved }()

		for i, param := range node.Args {
			paramType := UnknownType()
			if i < len(args) && args[i] != nil {
				paramType = copyType(args[i])
			}
			an.storeVariable(param.Name, paramType, param.Pos)
		}

		an.visitBody(node.Body, node.Pos)

		returnType := NoneType()
		if found := an.findInScope(returnName); found.exists && found.inScope {
			returnType = found.state.Type
		}
		an.finishScope()
		return returnType
	}

	a.storeVariable(node.Name, FunctionType(definition), node.Pos)
}
