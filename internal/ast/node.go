package ast

func (m *Module) NodePos() Position { return m.Pos }
func (*Module) NodeType() NodeType  { return MODULE }

func (a *Assign) NodePos() Position { return a.Pos }
func (*Assign) NodeType() NodeType  { return ASSIGN_STMT }

func (e *ExprStmt) NodePos() Position { return e.Pos }
func (*ExprStmt) NodeType() NodeType  { return EXPR_STMT }

func (r *Return) NodePos() Position { return r.Pos }
func (*Return) NodeType() NodeType  { return RETURN_STMT }

func (p *Pass) NodePos() Position { return p.Pos }
func (*Pass) NodeType() NodeType  { return PASS_STMT }

func (i *If) NodePos() Position { return i.Pos }
func (*If) NodeType() NodeType  { return IF_STMT }

func (w *While) NodePos() Position { return w.Pos }
func (*While) NodeType() NodeType  { return WHILE_STMT }

func (f *For) NodePos() Position { return f.Pos }
func (*For) NodeType() NodeType  { return FOR_STMT }

func (f *FunctionDef) NodePos() Position { return f.Pos }
func (*FunctionDef) NodeType() NodeType  { return FUNCTION_DEF }

func (p *Param) NodePos() Position { return p.Pos }
func (*Param) NodeType() NodeType  { return FUNCTION_PARAM }

func (w *With) NodePos() Position { return w.Pos }
func (*With) NodeType() NodeType  { return WITH_STMT }

func (b *BinOp) NodePos() Position { return b.Pos }
func (*BinOp) NodeType() NodeType  { return BINOP_EXPR }

func (b *BoolOp) NodePos() Position { return b.Pos }
func (*BoolOp) NodeType() NodeType  { return BOOLOP_EXPR }

func (u *UnaryOp) NodePos() Position { return u.Pos }
func (*UnaryOp) NodeType() NodeType  { return UNARYOP_EXPR }

func (c *Compare) NodePos() Position { return c.Pos }
func (*Compare) NodeType() NodeType  { return COMPARE_EXPR }

func (c *Call) NodePos() Position { return c.Pos }
func (*Call) NodeType() NodeType  { return CALL_EXPR }

func (a *Attribute) NodePos() Position { return a.Pos }
func (*Attribute) NodeType() NodeType  { return ATTRIBUTE_EXPR }

func (s *Subscript) NodePos() Position { return s.Pos }
func (*Subscript) NodeType() NodeType  { return SUBSCRIPT_EXPR }

func (i *Index) NodePos() Position { return i.Pos }
func (*Index) NodeType() NodeType  { return INDEX }

func (s *Slice) NodePos() Position { return s.Pos }
func (*Slice) NodeType() NodeType  { return SLICE }

func (n *Name) NodePos() Position { return n.Pos }
func (*Name) NodeType() NodeType  { return NAME_EXPR }

func (n *Num) NodePos() Position { return n.Pos }
func (*Num) NodeType() NodeType  { return NUM_LITERAL }

func (s *Str) NodePos() Position { return s.Pos }
func (*Str) NodeType() NodeType  { return STR_LITERAL }

func (l *List) NodePos() Position { return l.Pos }
func (*List) NodeType() NodeType  { return LIST_LITERAL }

func (t *Tuple) NodePos() Position { return t.Pos }
func (*Tuple) NodeType() NodeType  { return TUPLE_LITERAL }

func (d *Dict) NodePos() Position { return d.Pos }
func (*Dict) NodeType() NodeType  { return DICT_LITERAL }

func (s *Set) NodePos() Position { return s.Pos }
func (*Set) NodeType() NodeType  { return SET_LITERAL }

func (l *ListComp) NodePos() Position { return l.Pos }
func (*ListComp) NodeType() NodeType  { return LIST_COMP }

func (c *Comprehension) NodePos() Position { return c.Pos }
func (*Comprehension) NodeType() NodeType  { return COMPREHENSION }

func (*Assign) isStmt()      {}
func (*ExprStmt) isStmt()    {}
func (*Return) isStmt()      {}
func (*Pass) isStmt()        {}
func (*If) isStmt()          {}
func (*While) isStmt()       {}
func (*For) isStmt()         {}
func (*FunctionDef) isStmt() {}
func (*With) isStmt()        {}

func (*BinOp) isExpr()     {}
func (*BoolOp) isExpr()    {}
func (*UnaryOp) isExpr()   {}
func (*Compare) isExpr()   {}
func (*Call) isExpr()      {}
func (*Attribute) isExpr() {}
func (*Subscript) isExpr() {}
func (*Name) isExpr()      {}
func (*Num) isExpr()       {}
func (*Str) isExpr()       {}
func (*List) isExpr()      {}
func (*Tuple) isExpr()     {}
func (*Dict) isExpr()      {}
func (*Set) isExpr()       {}
func (*ListComp) isExpr()  {}

func (*Index) isSlicer() {}
func (*Slice) isSlicer() {}
