package analyzer

import (
	"github.com/jingwhale/blockpy/internal/ast"
	"github.com/jingwhale/blockpy/internal/issue"
)

const (
	// unconnectedName is the placeholder identifier a block editor leaves
	// behind when two blocks were never connected.
	unconnectedName = "___"

	// returnName is the synthetic slot a function's return value is
	// stored under within its scope.
	returnName = "*return"
)

// visitExpr infers the type of an expression, recording loads and raising
// diagnostics along the way. It never returns nil: failed inference
// yields the Unknown placeholder.
func (a *Analyzer) visitExpr(expr ast.Expr) *Type {
	if expr == nil {
		return UnknownType()
	}

	switch node := expr.(type) {
	case *ast.BinOp:
		return a.visitBinOp(node)
	case *ast.BoolOp:
		for _, value := range node.Values {
			a.visitExpr(value)
		}
		return BoolType()
	case *ast.UnaryOp:
		operandType := a.visitExpr(node.Operand)
		if node.Op == ast.OpNot {
			return BoolType()
		}
		return operandType
	case *ast.Compare:
		a.visitExpr(node.Left)
		for _, comparator := range node.Comparators {
			a.visitExpr(comparator)
		}
		return BoolType()
	case *ast.Call:
		return a.visitCall(node)
	case *ast.Attribute:
		return a.visitAttribute(node)
	case *ast.Subscript:
		return a.visitSubscript(node)
	case *ast.Name:
		return a.visitName(node)
	case *ast.Num:
		return NumType()
	case *ast.Str:
		return StrType()
	case *ast.List:
		return a.visitList(node)
	case *ast.Tuple:
		return a.visitTuple(node)
	case *ast.Dict:
		return a.visitDict(node)
	case *ast.Set:
		return a.visitSet(node)
	case *ast.ListComp:
		return a.visitListComp(node)
	default:
		return UnknownType()
	}
}

// visitBinOp consults the operator table. An Unknown operand short
// circuits without a diagnostic: the failed inference already raised.
func (a *Analyzer) visitBinOp(node *ast.BinOp) *Type {
	leftType := a.visitExpr(node.Left)
	rightType := a.visitExpr(node.Right)

	if leftType.Kind == KindUnknown || rightType.Kind == KindUnknown {
		return UnknownType()
	}

	result, ok := applyBinaryOp(node.Op, leftType, rightType)
	if !ok {
		a.reportIssue(issue.IncompatibleTypes, issue.Data{
			Position:  node.Pos,
			Operation: string(node.Op),
			Left:      typeName(leftType),
			Right:     typeName(rightType),
		})
		return UnknownType()
	}
	return result
}

func (a *Analyzer) visitSubscript(node *ast.Subscript) *Type {
	valueType := a.visitExpr(node.Value)

	switch slice := node.Slice.(type) {
	case *ast.Index:
		a.visitExpr(slice.Value)
		return indexSequenceType(valueType, 0)
	case *ast.Slice:
		if slice.Lower != nil {
			a.visitExpr(slice.Lower)
		}
		if slice.Upper != nil {
			a.visitExpr(slice.Upper)
		}
		if slice.Step != nil {
			a.visitExpr(slice.Step)
		}
		return valueType
	default:
		return UnknownType()
	}
}

func (a *Analyzer) visitName(node *ast.Name) *Type {
	if node.Id == unconnectedName {
		a.reportIssue(issue.UnconnectedBlocks, issue.Data{Position: node.Pos})
		return UnknownType()
	}

	if node.Ctx != ast.CtxLoad {
		if found := a.findInScope(node.Id); found.exists {
			return found.state.Type
		}
		return UnknownType()
	}

	switch node.Id {
	case "True", "False":
		return BoolType()
	case "None":
		return NoneType()
	}

	if found := a.findInScope(node.Id); found.exists {
		return a.loadVariable(node.Id, node.Pos).Type
	}
	if builtin, ok := a.builtins[node.Id]; ok {
		return builtin
	}
	return a.loadVariable(node.Id, node.Pos).Type
}

// visitList assumes homogeneity: the last visited element wins.
func (a *Analyzer) visitList(node *ast.List) *Type {
	if len(node.Elts) == 0 {
		return EmptyList()
	}
	var elementType *Type
	for _, elt := range node.Elts {
		elementType = a.visitExpr(elt)
	}
	return ListOf(elementType)
}

func (a *Analyzer) visitTuple(node *ast.Tuple) *Type {
	if len(node.Elts) == 0 {
		return EmptyTuple()
	}
	subtypes := make([]*Type, len(node.Elts))
	for i, elt := range node.Elts {
		subtypes[i] = a.visitExpr(elt)
	}
	return TupleOf(subtypes...)
}

// visitDict keeps only the last visited key and value types; a
// heterogeneous literal silently loses precision.
func (a *Analyzer) visitDict(node *ast.Dict) *Type {
	if len(node.Keys) == 0 {
		return EmptyDict()
	}
	var keyType, valueType *Type
	for i := range node.Keys {
		keyType = a.visitExpr(node.Keys[i])
		if i < len(node.Values) {
			valueType = a.visitExpr(node.Values[i])
		}
	}
	return DictOf(keyType, valueType)
}

func (a *Analyzer) visitSet(node *ast.Set) *Type {
	if len(node.Elts) == 0 {
		return SetType()
	}
	var elementType *Type
	for _, elt := range node.Elts {
		elementType = a.visitExpr(elt)
	}
	return SetOf(elementType)
}

// visitListComp applies the same iteration-source rules as a for loop to
// each generator, then infers the element expression in the refined
// environment. Comprehension-local scoping is a known simplification:
// the target leaks into the enclosing scope.
func (a *Analyzer) visitListComp(node *ast.ListComp) *Type {
	for _, gen := range node.Generators {
		iterType, _ := a.visitIterSource(gen.Iter)
		a.walkTarget(gen.Target, indexSequenceType(iterType, 0), true)
		for _, cond := range gen.Ifs {
			a.visitExpr(cond)
		}
	}
	return ListOf(a.visitExpr(node.Elt))
}
