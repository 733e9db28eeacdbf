package ast

type BinOp struct {
	Pos   Position
	Left  Expr
	Op    Operator
	Right Expr
}

type BoolOp struct {
	Pos    Position
	Op     BoolOperator
	Values []Expr
}

type UnaryOp struct {
	Pos     Position
	Op      UnaryOperator
	Operand Expr
}

// Compare supports chained comparisons: "a < b <= c" has two ops and two
// comparators against a single left operand
type Compare struct {
	Pos         Position
	Left        Expr
	Ops         []CmpOperator
	Comparators []Expr
}

type Call struct {
	Pos  Position
	Func Expr
	Args []Expr
}

type Attribute struct {
	Pos   Position
	Value Expr
	Attr  string
}

type Subscript struct {
	Pos   Position
	Value Expr
	Slice Slicer
}

// Index is a single-element subscript argument
type Index struct {
	Pos   Position
	Value Expr
}

// Slice is a ranged subscript argument; any bound may be nil
type Slice struct {
	Pos   Position
	Lower Expr
	Upper Expr
	Step  Expr
}

type Name struct {
	Pos Position
	Id  string
	Ctx NameCtx
}

// Num keeps the literal text; IsFloat records whether it carried a dot
type Num struct {
	Pos     Position
	Value   string
	IsFloat bool
}

// Str holds the unquoted string value
type Str struct {
	Pos   Position
	Value string
}

type List struct {
	Pos  Position
	Elts []Expr
	Ctx  NameCtx
}

type Tuple struct {
	Pos  Position
	Elts []Expr
	Ctx  NameCtx
}

type Dict struct {
	Pos    Position
	Keys   []Expr
	Values []Expr
}

type Set struct {
	Pos  Position
	Elts []Expr
}

type ListComp struct {
	Pos        Position
	Elt        Expr
	Generators []Comprehension
}

// Comprehension is one "for target in iter [if cond]*" clause
type Comprehension struct {
	Pos    Position
	Target Expr
	Iter   Expr
	Ifs    []Expr
}
