package parser

import (
	"fmt"

	"github.com/jingwhale/blockpy/internal/ast"
)

type ParseError struct {
	Message  string
	Position ast.Position
}

type Parser struct {
	filename string
	tokens   []Token
	pos      int
	errors   []ParseError
}

func NewParser(filename string, tokens []Token) *Parser {
	return &Parser{filename: filename, tokens: tokens}
}

func (p *Parser) ParseModule() *ast.Module {
	module := &ast.Module{Pos: p.peek().Position}
	for !p.atEnd() {
		if p.match(NEWLINE) {
			continue
		}
		stmt := p.parseStatement()
		if stmt != nil {
			module.Body = append(module.Body, stmt)
		}
	}
	return module
}

// token access

func (p *Parser) peek() Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	if len(p.tokens) > 0 {
		return p.tokens[len(p.tokens)-1]
	}
	return Token{Kind: EOF}
}

func (p *Parser) advance() Token {
	t := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return t
}

func (p *Parser) atEnd() bool {
	return p.peek().Kind == EOF
}

func (p *Parser) check(kind TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) checkOp(lexeme string) bool {
	t := p.peek()
	return t.Kind == OP && t.Lexeme == lexeme
}

func (p *Parser) checkKeyword(word string) bool {
	t := p.peek()
	return t.Kind == IDENT && t.Lexeme == word
}

func (p *Parser) match(kind TokenKind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) matchOp(lexeme string) bool {
	if p.checkOp(lexeme) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) matchKeyword(word string) bool {
	if p.checkKeyword(word) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expectOp(lexeme string) {
	if !p.matchOp(lexeme) {
		p.addError(fmt.Sprintf("expected '%s'", lexeme), p.peek().Position)
	}
}

func (p *Parser) addError(message string, pos ast.Position) {
	p.errors = append(p.errors, ParseError{Message: message, Position: pos})
}

// synchronize skips ahead to the next statement boundary after an error.
func (p *Parser) synchronize() {
	for !p.atEnd() && !p.check(NEWLINE) && !p.check(DEDENT) {
		p.advance()
	}
	p.match(NEWLINE)
}

// statements

func (p *Parser) parseStatement() ast.Stmt {
	t := p.peek()
	if t.Kind == IDENT {
		switch t.Lexeme {
		case "if":
			return p.parseIf()
		case "while":
			return p.parseWhile()
		case "for":
			return p.parseFor()
		case "def":
			return p.parseFunctionDef()
		case "with":
			return p.parseWith()
		case "return":
			return p.parseReturn()
		case "pass":
			p.advance()
			p.match(NEWLINE)
			return &ast.Pass{Pos: t.Position}
		}
	}
	return p.parseSimpleStatement()
}

// parseSimpleStatement parses an expression statement or an assignment,
// including chained "a = b = 0" forms.
func (p *Parser) parseSimpleStatement() ast.Stmt {
	start := p.peek().Position
	expr := p.parseExprList()
	if expr == nil {
		p.synchronize()
		return nil
	}

	if p.checkOp("=") {
		var targets []ast.Expr
		for p.matchOp("=") {
			targets = append(targets, expr)
			next := p.parseExprList()
			if next == nil {
				p.synchronize()
				return nil
			}
			expr = next
		}
		for _, target := range targets {
			markStoreContext(target)
		}
		p.match(NEWLINE)
		return &ast.Assign{Pos: start, Targets: targets, Value: expr}
	}

	p.match(NEWLINE)
	return &ast.ExprStmt{Pos: start, Value: expr}
}

// markStoreContext flips the context of a target expression after the
// parser discovers it sits left of an assignment.
func markStoreContext(expr ast.Expr) {
	switch node := expr.(type) {
	case *ast.Name:
		node.Ctx = ast.CtxStore
	case *ast.Tuple:
		node.Ctx = ast.CtxStore
		for _, elt := range node.Elts {
			markStoreContext(elt)
		}
	case *ast.List:
		node.Ctx = ast.CtxStore
		for _, elt := range node.Elts {
			markStoreContext(elt)
		}
	}
}

func (p *Parser) parseReturn() ast.Stmt {
	t := p.advance()
	stmt := &ast.Return{Pos: t.Position}
	if !p.check(NEWLINE) && !p.atEnd() && !p.check(DEDENT) {
		stmt.Value = p.parseExprList()
	}
	p.match(NEWLINE)
	return stmt
}

func (p *Parser) parseIf() ast.Stmt {
	t := p.advance()
	test := p.parseExpression()
	body := p.parseBlock()

	stmt := &ast.If{Pos: t.Position, Test: test, Body: body}
	if p.checkKeyword("elif") {
		stmt.Orelse = []ast.Stmt{p.parseIf()}
	} else if p.matchKeyword("else") {
		stmt.Orelse = p.parseBlock()
	}
	return stmt
}

func (p *Parser) parseWhile() ast.Stmt {
	t := p.advance()
	test := p.parseExpression()
	body := p.parseBlock()

	stmt := &ast.While{Pos: t.Position, Test: test, Body: body}
	if p.matchKeyword("else") {
		stmt.Orelse = p.parseBlock()
	}
	return stmt
}

func (p *Parser) parseFor() ast.Stmt {
	t := p.advance()
	target := p.parseTargetList()
	if !p.matchKeyword("in") {
		p.addError("expected 'in' after for loop target", p.peek().Position)
	}
	iter := p.parseExprList()
	body := p.parseBlock()

	stmt := &ast.For{Pos: t.Position, Target: target, Iter: iter, Body: body}
	if p.matchKeyword("else") {
		stmt.Orelse = p.parseBlock()
	}
	return stmt
}

func (p *Parser) parseTargetList() ast.Expr {
	target := p.parseTarget()
	if !p.checkOp(",") {
		return target
	}
	tuple := &ast.Tuple{Pos: target.NodePos(), Elts: []ast.Expr{target}, Ctx: ast.CtxStore}
	for p.matchOp(",") {
		tuple.Elts = append(tuple.Elts, p.parseTarget())
	}
	return tuple
}

func (p *Parser) parseTarget() ast.Expr {
	target := p.parsePostfix()
	markStoreContext(target)
	return target
}

func (p *Parser) parseFunctionDef() ast.Stmt {
	t := p.advance()
	name := p.peek()
	if name.Kind != IDENT {
		p.addError("expected function name after 'def'", name.Position)
		p.synchronize()
		return nil
	}
	p.advance()

	stmt := &ast.FunctionDef{Pos: t.Position, Name: name.Lexeme}
	p.expectOp("(")
	for !p.checkOp(")") && !p.atEnd() {
		param := p.peek()
		if param.Kind != IDENT {
			p.addError("expected parameter name", param.Position)
			break
		}
		p.advance()
		stmt.Args = append(stmt.Args, ast.Param{Pos: param.Position, Name: param.Lexeme})
		if !p.matchOp(",") {
			break
		}
	}
	p.expectOp(")")
	stmt.Body = p.parseBlock()
	return stmt
}

func (p *Parser) parseWith() ast.Stmt {
	t := p.advance()
	contextExpr := p.parseExpression()

	stmt := &ast.With{Pos: t.Position, ContextExpr: contextExpr}
	if p.matchKeyword("as") {
		stmt.OptionalVars = p.parseTargetList()
	}
	stmt.Body = p.parseBlock()
	return stmt
}

// parseBlock consumes ":" and either an indented suite or a same-line
// simple statement.
func (p *Parser) parseBlock() []ast.Stmt {
	p.expectOp(":")

	if !p.match(NEWLINE) {
		stmt := p.parseStatement()
		if stmt == nil {
			return nil
		}
		return []ast.Stmt{stmt}
	}

	if !p.match(INDENT) {
		p.addError("expected an indented block", p.peek().Position)
		return nil
	}

	var body []ast.Stmt
	for !p.check(DEDENT) && !p.atEnd() {
		if p.match(NEWLINE) {
			continue
		}
		stmt := p.parseStatement()
		if stmt != nil {
			body = append(body, stmt)
		}
	}
	p.match(DEDENT)
	return body
}

// expressions

// parseExprList parses a comma-separated expression list into a bare
// tuple when more than one element appears.
func (p *Parser) parseExprList() ast.Expr {
	expr := p.parseExpression()
	if expr == nil || !p.checkOp(",") {
		return expr
	}
	tuple := &ast.Tuple{Pos: expr.NodePos(), Elts: []ast.Expr{expr}}
	for p.matchOp(",") {
		if p.check(NEWLINE) || p.checkOp("=") || p.atEnd() {
			break
		}
		next := p.parseExpression()
		if next == nil {
			break
		}
		tuple.Elts = append(tuple.Elts, next)
	}
	return tuple
}

func (p *Parser) parseExpression() ast.Expr {
	return p.parseOr()
}

func (p *Parser) parseOr() ast.Expr {
	expr := p.parseAnd()
	if expr == nil || !p.checkKeyword("or") {
		return expr
	}
	boolOp := &ast.BoolOp{Pos: expr.NodePos(), Op: ast.OpOr, Values: []ast.Expr{expr}}
	for p.matchKeyword("or") {
		boolOp.Values = append(boolOp.Values, p.parseAnd())
	}
	return boolOp
}

func (p *Parser) parseAnd() ast.Expr {
	expr := p.parseNot()
	if expr == nil || !p.checkKeyword("and") {
		return expr
	}
	boolOp := &ast.BoolOp{Pos: expr.NodePos(), Op: ast.OpAnd, Values: []ast.Expr{expr}}
	for p.matchKeyword("and") {
		boolOp.Values = append(boolOp.Values, p.parseNot())
	}
	return boolOp
}

func (p *Parser) parseNot() ast.Expr {
	if p.checkKeyword("not") {
		t := p.advance()
		return &ast.UnaryOp{Pos: t.Position, Op: ast.OpNot, Operand: p.parseNot()}
	}
	return p.parseComparison()
}

var comparisonOps = map[string]ast.CmpOperator{
	"==": ast.OpEq,
	"!=": ast.OpNotEq,
	"<":  ast.OpLt,
	"<=": ast.OpLtE,
	">":  ast.OpGt,
	">=": ast.OpGtE,
}

func (p *Parser) parseComparison() ast.Expr {
	expr := p.parseArith()
	if expr == nil {
		return nil
	}

	var compare *ast.Compare
	for {
		var op ast.CmpOperator
		t := p.peek()
		if t.Kind == OP {
			if mapped, ok := comparisonOps[t.Lexeme]; ok {
				op = mapped
				p.advance()
			}
		}
		if op == "" && p.checkKeyword("in") {
			op = ast.OpIn
			p.advance()
		}
		if op == "" && p.checkKeyword("not") {
			// "not in" is the only comparison starting with not
			p.advance()
			if !p.matchKeyword("in") {
				p.addError("expected 'in' after 'not' in comparison", p.peek().Position)
			}
			op = ast.OpNotIn
		}
		if op == "" {
			break
		}
		right := p.parseArith()
		if compare == nil {
			compare = &ast.Compare{Pos: expr.NodePos(), Left: expr}
		}
		compare.Ops = append(compare.Ops, op)
		compare.Comparators = append(compare.Comparators, right)
	}

	if compare != nil {
		return compare
	}
	return expr
}

func (p *Parser) parseArith() ast.Expr {
	expr := p.parseTerm()
	for expr != nil {
		var op ast.Operator
		switch {
		case p.checkOp("+"):
			op = ast.OpAdd
		case p.checkOp("-"):
			op = ast.OpSub
		default:
			return expr
		}
		p.advance()
		expr = &ast.BinOp{Pos: expr.NodePos(), Left: expr, Op: op, Right: p.parseTerm()}
	}
	return expr
}

func (p *Parser) parseTerm() ast.Expr {
	expr := p.parseFactor()
	for expr != nil {
		var op ast.Operator
		switch {
		case p.checkOp("*"):
			op = ast.OpMult
		case p.checkOp("/"):
			op = ast.OpDiv
		case p.checkOp("//"):
			op = ast.OpFloorDiv
		case p.checkOp("%"):
			op = ast.OpMod
		default:
			return expr
		}
		p.advance()
		expr = &ast.BinOp{Pos: expr.NodePos(), Left: expr, Op: op, Right: p.parseFactor()}
	}
	return expr
}

func (p *Parser) parseFactor() ast.Expr {
	t := p.peek()
	if p.matchOp("-") {
		return &ast.UnaryOp{Pos: t.Position, Op: ast.OpUSub, Operand: p.parseFactor()}
	}
	if p.matchOp("+") {
		return &ast.UnaryOp{Pos: t.Position, Op: ast.OpUAdd, Operand: p.parseFactor()}
	}
	return p.parsePower()
}

func (p *Parser) parsePower() ast.Expr {
	expr := p.parsePostfix()
	if expr != nil && p.matchOp("**") {
		return &ast.BinOp{Pos: expr.NodePos(), Left: expr, Op: ast.OpPow, Right: p.parseFactor()}
	}
	return expr
}

func (p *Parser) parsePostfix() ast.Expr {
	expr := p.parseAtom()
	for expr != nil {
		switch {
		case p.checkOp("("):
			p.advance()
			call := &ast.Call{Pos: expr.NodePos(), Func: expr}
			for !p.checkOp(")") && !p.atEnd() {
				arg := p.parseExpression()
				if arg == nil {
					break
				}
				call.Args = append(call.Args, arg)
				if !p.matchOp(",") {
					break
				}
			}
			p.expectOp(")")
			expr = call

		case p.checkOp("["):
			p.advance()
			expr = &ast.Subscript{Pos: expr.NodePos(), Value: expr, Slice: p.parseSlicer()}
			p.expectOp("]")

		case p.checkOp("."):
			p.advance()
			attr := p.peek()
			if attr.Kind != IDENT {
				p.addError("expected attribute name after '.'", attr.Position)
				return expr
			}
			p.advance()
			expr = &ast.Attribute{Pos: expr.NodePos(), Value: expr, Attr: attr.Lexeme}

		default:
			return expr
		}
	}
	return expr
}

// parseSlicer parses the inside of a subscript: a plain index or a
// ranged slice with optional bounds.
func (p *Parser) parseSlicer() ast.Slicer {
	start := p.peek().Position

	var lower ast.Expr
	if !p.checkOp(":") {
		lower = p.parseExpression()
	}
	if !p.matchOp(":") {
		return &ast.Index{Pos: start, Value: lower}
	}

	slice := &ast.Slice{Pos: start, Lower: lower}
	if !p.checkOp("]") && !p.checkOp(":") {
		slice.Upper = p.parseExpression()
	}
	if p.matchOp(":") {
		if !p.checkOp("]") {
			slice.Step = p.parseExpression()
		}
	}
	return slice
}

func (p *Parser) parseAtom() ast.Expr {
	t := p.peek()

	switch t.Kind {
	case NUMBER:
		p.advance()
		return &ast.Num{Pos: t.Position, Value: t.Lexeme, IsFloat: containsDot(t.Lexeme)}

	case STRING:
		p.advance()
		return &ast.Str{Pos: t.Position, Value: t.Lexeme}

	case IDENT:
		if isReservedWord(t.Lexeme) {
			p.addError(fmt.Sprintf("unexpected keyword '%s'", t.Lexeme), t.Position)
			p.advance()
			return nil
		}
		p.advance()
		return &ast.Name{Pos: t.Position, Id: t.Lexeme, Ctx: ast.CtxLoad}

	case OP:
		switch t.Lexeme {
		case "(":
			return p.parseParenExpr()
		case "[":
			return p.parseListExpr()
		case "{":
			return p.parseDictOrSetExpr()
		}
	}

	p.addError(fmt.Sprintf("unexpected token '%s'", t.Lexeme), t.Position)
	if t.Kind != NEWLINE && t.Kind != DEDENT && t.Kind != EOF {
		p.advance()
	}
	return nil
}

func (p *Parser) parseParenExpr() ast.Expr {
	t := p.advance()
	if p.matchOp(")") {
		return &ast.Tuple{Pos: t.Position}
	}

	expr := p.parseExpression()
	if p.checkOp(",") {
		tuple := &ast.Tuple{Pos: t.Position, Elts: []ast.Expr{expr}}
		for p.matchOp(",") {
			if p.checkOp(")") {
				break
			}
			tuple.Elts = append(tuple.Elts, p.parseExpression())
		}
		p.expectOp(")")
		return tuple
	}
	p.expectOp(")")
	return expr
}

func (p *Parser) parseListExpr() ast.Expr {
	t := p.advance()
	if p.matchOp("]") {
		return &ast.List{Pos: t.Position}
	}

	first := p.parseExpression()
	if p.checkKeyword("for") {
		comp := &ast.ListComp{Pos: t.Position, Elt: first}
		for p.matchKeyword("for") {
			gen := ast.Comprehension{Pos: p.peek().Position}
			gen.Target = p.parseTargetList()
			if !p.matchKeyword("in") {
				p.addError("expected 'in' in comprehension", p.peek().Position)
			}
			gen.Iter = p.parseExpression()
			for p.matchKeyword("if") {
				gen.Ifs = append(gen.Ifs, p.parseExpression())
			}
			comp.Generators = append(comp.Generators, gen)
		}
		p.expectOp("]")
		return comp
	}

	list := &ast.List{Pos: t.Position, Elts: []ast.Expr{first}}
	for p.matchOp(",") {
		if p.checkOp("]") {
			break
		}
		list.Elts = append(list.Elts, p.parseExpression())
	}
	p.expectOp("]")
	return list
}

func (p *Parser) parseDictOrSetExpr() ast.Expr {
	t := p.advance()
	if p.matchOp("}") {
		return &ast.Dict{Pos: t.Position}
	}

	first := p.parseExpression()
	if p.checkOp(":") {
		dict := &ast.Dict{Pos: t.Position}
		p.advance()
		dict.Keys = append(dict.Keys, first)
		dict.Values = append(dict.Values, p.parseExpression())
		for p.matchOp(",") {
			if p.checkOp("}") {
				break
			}
			dict.Keys = append(dict.Keys, p.parseExpression())
			p.expectOp(":")
			dict.Values = append(dict.Values, p.parseExpression())
		}
		p.expectOp("}")
		return dict
	}

	set := &ast.Set{Pos: t.Position, Elts: []ast.Expr{first}}
	for p.matchOp(",") {
		if p.checkOp("}") {
			break
		}
		set.Elts = append(set.Elts, p.parseExpression())
	}
	p.expectOp("}")
	return set
}

var reservedWords = map[string]bool{
	"if": true, "elif": true, "else": true, "while": true, "for": true,
	"in": true, "def": true, "return": true, "pass": true, "with": true,
	"as": true, "or": true, "and": true, "not": true,
}

func isReservedWord(word string) bool {
	return reservedWords[word]
}

func containsDot(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			return true
		}
	}
	return false
}
