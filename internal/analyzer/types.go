package analyzer

import (
	"github.com/jingwhale/blockpy/internal/ast"
)

type TypeKind int

const (
	KindUnknown TypeKind = iota
	KindNum
	KindStr
	KindBool
	KindNone
	KindList
	KindTuple
	KindDict
	KindSet
	KindFile
	KindFunction
)

func (k TypeKind) String() string {
	switch k {
	case KindNum:
		return "Num"
	case KindStr:
		return "Str"
	case KindBool:
		return "Bool"
	case KindNone:
		return "None"
	case KindList:
		return "List"
	case KindTuple:
		return "Tuple"
	case KindDict:
		return "Dict"
	case KindSet:
		return "Set"
	case KindFile:
		return "File"
	case KindFunction:
		return "Function"
	default:
		return "Unknown"
	}
}

// Definition advances the analyzer when a stored function value is
// invoked at a call site, and yields the call's result type.
type Definition func(a *Analyzer, args []*Type, pos ast.Position) *Type

// Type is the inferred type of a value. Which extra fields are meaningful
// depends on Kind. A list or set is treated as homogeneous: later element
// visits overwrite Subtype rather than unifying with it. A tuple's
// Subtypes length is fixed at construction.
type Type struct {
	Kind       TypeKind
	Empty      bool    // List, Tuple, Dict
	Subtype    *Type   // List, Set element type
	Subtypes   []*Type // Tuple element types
	Keys       *Type   // Dict
	Values     *Type   // Dict
	Definition Definition
}

func UnknownType() *Type { return &Type{Kind: KindUnknown} }
func NumType() *Type     { return &Type{Kind: KindNum} }
func StrType() *Type     { return &Type{Kind: KindStr} }
func BoolType() *Type    { return &Type{Kind: KindBool} }
func NoneType() *Type    { return &Type{Kind: KindNone} }
func FileType() *Type    { return &Type{Kind: KindFile} }

func EmptyList() *Type { return &Type{Kind: KindList, Empty: true} }

func ListOf(subtype *Type) *Type {
	return &Type{Kind: KindList, Subtype: subtype}
}

func EmptyTuple() *Type { return &Type{Kind: KindTuple, Empty: true} }

func TupleOf(subtypes ...*Type) *Type {
	return &Type{Kind: KindTuple, Subtypes: subtypes}
}

func EmptyDict() *Type {
	return &Type{Kind: KindDict, Empty: true, Keys: UnknownType(), Values: UnknownType()}
}

func DictOf(keys, values *Type) *Type {
	return &Type{Kind: KindDict, Keys: keys, Values: values}
}

func SetType() *Type { return &Type{Kind: KindSet} }

func SetOf(subtype *Type) *Type {
	return &Type{Kind: KindSet, Subtype: subtype}
}

func FunctionType(def Definition) *Type {
	return &Type{Kind: KindFunction, Definition: def}
}

// areTypesEqual implements the lattice's loose equality. Unknown is
// incomparable to everything, including itself. An empty list equals any
// list: empty literals are treated as polymorphic until first refined.
func areTypesEqual(left, right *Type) bool {
	if left == nil || right == nil {
		return false
	}
	if left.Kind == KindUnknown || right.Kind == KindUnknown {
		return false
	}
	if left.Kind != right.Kind {
		return false
	}
	if left.Kind == KindList {
		if left.Empty || right.Empty {
			return true
		}
		if left.Subtype == nil || right.Subtype == nil {
			return true
		}
		return areTypesEqual(left.Subtype, right.Subtype)
	}
	return true
}

// indexSequenceType yields the element type obtained by indexing t at
// position i. Non-indexable types yield Unknown.
func indexSequenceType(t *Type, i int) *Type {
	if t == nil {
		return UnknownType()
	}
	switch t.Kind {
	case KindTuple:
		if i >= 0 && i < len(t.Subtypes) {
			return t.Subtypes[i]
		}
		return UnknownType()
	case KindList, KindSet:
		if t.Subtype != nil {
			return t.Subtype
		}
		return UnknownType()
	case KindStr, KindFile:
		return StrType()
	default:
		return UnknownType()
	}
}

func isSequenceType(t *Type) bool {
	if t == nil {
		return false
	}
	switch t.Kind {
	case KindList, KindSet, KindTuple, KindStr, KindFile:
		return true
	default:
		return false
	}
}

func isEmptyList(t *Type) bool {
	return t != nil && t.Kind == KindList && t.Empty
}

// copyType returns a fresh value for immutable kinds and the same
// instance for mutable ones, so a parameter bound inside a function body
// shares the caller's mutable state.
func copyType(t *Type) *Type {
	if t == nil {
		return UnknownType()
	}
	switch t.Kind {
	case KindNum, KindStr:
		return &Type{Kind: t.Kind}
	case KindTuple:
		subtypes := make([]*Type, len(t.Subtypes))
		copy(subtypes, t.Subtypes)
		return &Type{Kind: KindTuple, Empty: t.Empty, Subtypes: subtypes}
	default:
		return t
	}
}

// mergeTypes combines two container types of the same kind. For lists and
// sets the left side wins unless it is still the polymorphic empty
// literal; tuples concatenate their element types in order.
func mergeTypes(left, right *Type) *Type {
	switch left.Kind {
	case KindList, KindSet:
		merged := &Type{Kind: left.Kind}
		if left.Empty || left.Subtype == nil {
			merged.Empty = right.Empty
			merged.Subtype = right.Subtype
		} else {
			merged.Subtype = left.Subtype
		}
		return merged
	case KindTuple:
		subtypes := make([]*Type, 0, len(left.Subtypes)+len(right.Subtypes))
		subtypes = append(subtypes, left.Subtypes...)
		subtypes = append(subtypes, right.Subtypes...)
		return &Type{Kind: KindTuple, Empty: left.Empty && right.Empty, Subtypes: subtypes}
	default:
		return left
	}
}

type opPair struct {
	left, right TypeKind
}

type opRule func(left, right *Type) *Type

func numResult(left, right *Type) *Type  { return NumType() }
func strResult(left, right *Type) *Type  { return StrType() }
func leftResult(left, right *Type) *Type { return left }
func rightResult(left, right *Type) *Type {
	return right
}

// binaryOpRules is the authoritative table of valid operand pairings.
// Pairs absent from an operator's map are incompatible and produce an
// issue plus Unknown.
var binaryOpRules = map[ast.Operator]map[opPair]opRule{
	ast.OpAdd: {
		{KindNum, KindNum}:     numResult,
		{KindStr, KindStr}:     strResult,
		{KindList, KindList}:   mergeTypes,
		{KindTuple, KindTuple}: mergeTypes,
	},
	ast.OpSub: {
		{KindNum, KindNum}: numResult,
		{KindSet, KindSet}: mergeTypes,
	},
	ast.OpMult: {
		{KindNum, KindNum}:   numResult,
		{KindNum, KindStr}:   strResult,
		{KindNum, KindList}:  rightResult,
		{KindNum, KindTuple}: rightResult,
		{KindStr, KindNum}:   strResult,
		{KindList, KindNum}:  leftResult,
		{KindTuple, KindNum}: leftResult,
	},
	ast.OpDiv: {
		{KindNum, KindNum}: numResult,
	},
	ast.OpFloorDiv: {
		{KindNum, KindNum}: numResult,
	},
	ast.OpMod: {
		{KindNum, KindNum}: numResult,
	},
	ast.OpPow: {
		{KindNum, KindNum}: numResult,
	},
}

// applyBinaryOp consults the table; ok is false on an incompatible pair.
func applyBinaryOp(op ast.Operator, left, right *Type) (*Type, bool) {
	rules, known := binaryOpRules[op]
	if !known {
		return UnknownType(), false
	}
	rule, compatible := rules[opPair{left.Kind, right.Kind}]
	if !compatible {
		return UnknownType(), false
	}
	return rule(left, right), true
}

// typeName renders a type tag for diagnostics.
func typeName(t *Type) string {
	if t == nil {
		return KindUnknown.String()
	}
	return t.Kind.String()
}
