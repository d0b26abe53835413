package mython

import "strconv"

type parser struct {
	cur *tokenCursor

	// classes maps every class name declared so far. Class names resolve at
	// parse time: constructor sites and parent references embed the *Class.
	classes map[string]*Class
}

// parseTokens builds the executable tree for a token stream. The classes map
// seeds (and collects) parse-time class declarations; callers that evaluate
// successive snippets pass the same map each time.
func parseTokens(tokens []Token, classes map[string]*Class) (*Program, error) {
	p := &parser{cur: newTokenCursor(tokens), classes: classes}
	return p.parseProgram()
}

func (p *parser) tok() Token {
	return p.cur.current()
}

func (p *parser) next() Token {
	return p.cur.advance()
}

func (p *parser) parseProgram() (*Program, error) {
	prog := &Program{}
	for p.tok().Type != tokenEOF {
		if p.tok().Type == tokenNewline {
			p.next()
			continue
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, stmt)
	}
	return prog, nil
}

// parseStatement consumes one statement including its terminator: simple
// statements eat their trailing NEWLINE, block statements end having
// consumed their DEDENT.
func (p *parser) parseStatement() (Statement, error) {
	switch p.tok().Type {
	case tokenClass:
		return p.parseClassDefinition()
	case tokenIf:
		return p.parseIfElse()
	case tokenPrint:
		return p.parsePrint()
	case tokenReturn:
		return p.parseReturn()
	case tokenDef:
		return nil, parseErrorf(p.tok().Pos, "method definition outside a class body")
	default:
		return p.parseSimple()
	}
}

func (p *parser) parseClassDefinition() (Statement, error) {
	pos := p.tok().Pos
	p.next()
	name, err := p.expectIdent("class name")
	if err != nil {
		return nil, err
	}

	var parent *Class
	if p.tok().isChar('(') {
		p.next()
		parentName, err := p.expectIdent("parent class name")
		if err != nil {
			return nil, err
		}
		parent = p.classes[parentName]
		if parent == nil {
			return nil, parseErrorf(pos, "unknown parent class %q", parentName)
		}
		if err := p.expectChar(')'); err != nil {
			return nil, err
		}
	}
	if err := p.expectChar(':'); err != nil {
		return nil, err
	}
	if err := p.expectType(tokenNewline); err != nil {
		return nil, err
	}
	if err := p.expectType(tokenIndent); err != nil {
		return nil, err
	}

	// The class is registered before its methods are parsed so that method
	// bodies can construct instances of it; a failed parse withdraws it.
	cls := &Class{Name: name, Parent: parent}
	prev, hadPrev := p.classes[name]
	p.classes[name] = cls
	defer func() {
		if cls.Methods == nil && hadPrev {
			p.classes[name] = prev
		} else if cls.Methods == nil {
			delete(p.classes, name)
		}
	}()

	var methods []*Method
	for p.tok().Type != tokenDedent {
		if p.tok().Type != tokenDef {
			return nil, parseErrorf(p.tok().Pos, "class body may contain only method definitions, got %s", p.tok().describe())
		}
		m, err := p.parseMethod()
		if err != nil {
			return nil, err
		}
		methods = append(methods, m)
	}
	p.next()
	if len(methods) == 0 {
		return nil, parseErrorf(pos, "class %q has an empty body", name)
	}

	cls.Methods = methods
	return &ClassDefinition{Class: cls, position: pos}, nil
}

func (p *parser) parseMethod() (*Method, error) {
	pos := p.tok().Pos
	p.next()
	name, err := p.expectIdent("method name")
	if err != nil {
		return nil, err
	}
	if err := p.expectChar('('); err != nil {
		return nil, err
	}

	// The declared parameter list leads with self; it binds implicitly at
	// call time and is stripped from the stored formals.
	receiver, err := p.expectIdent("parameter name")
	if err != nil {
		return nil, err
	}
	if receiver != "self" {
		return nil, parseErrorf(pos, "first parameter of method %q must be self", name)
	}
	var formals []string
	for p.tok().isChar(',') {
		p.next()
		param, err := p.expectIdent("parameter name")
		if err != nil {
			return nil, err
		}
		formals = append(formals, param)
	}
	if err := p.expectChar(')'); err != nil {
		return nil, err
	}
	if err := p.expectChar(':'); err != nil {
		return nil, err
	}
	body, err := p.parseSuite()
	if err != nil {
		return nil, err
	}
	return &Method{Name: name, FormalParams: formals, Body: &MethodBody{Body: body, position: pos}}, nil
}

// parseSuite parses NEWLINE INDENT statement+ DEDENT.
func (p *parser) parseSuite() (*Compound, error) {
	pos := p.tok().Pos
	if err := p.expectType(tokenNewline); err != nil {
		return nil, err
	}
	if err := p.expectType(tokenIndent); err != nil {
		return nil, err
	}
	block := &Compound{position: pos}
	for p.tok().Type != tokenDedent {
		if p.tok().Type == tokenEOF {
			return nil, parseErrorf(p.tok().Pos, "unexpected end of input inside a block")
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Statements = append(block.Statements, stmt)
	}
	p.next()
	if len(block.Statements) == 0 {
		return nil, parseErrorf(pos, "empty block")
	}
	return block, nil
}

func (p *parser) parseIfElse() (Statement, error) {
	pos := p.tok().Pos
	p.next()
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectChar(':'); err != nil {
		return nil, err
	}
	then, err := p.parseSuite()
	if err != nil {
		return nil, err
	}
	var alt *Compound
	if p.tok().Type == tokenElse {
		p.next()
		if err := p.expectChar(':'); err != nil {
			return nil, err
		}
		alt, err = p.parseSuite()
		if err != nil {
			return nil, err
		}
	}
	return &IfElse{Condition: cond, Then: then, Else: alt, position: pos}, nil
}

func (p *parser) parsePrint() (Statement, error) {
	pos := p.tok().Pos
	p.next()
	stmt := &Print{position: pos}
	if p.tok().Type != tokenNewline {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		stmt.Args = append(stmt.Args, arg)
		for p.tok().isChar(',') {
			p.next()
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			stmt.Args = append(stmt.Args, arg)
		}
	}
	if err := p.expectType(tokenNewline); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *parser) parseReturn() (Statement, error) {
	pos := p.tok().Pos
	p.next()
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectType(tokenNewline); err != nil {
		return nil, err
	}
	return &Return{Value: value, position: pos}, nil
}

// parseSimple handles assignment, field assignment, and expression
// statements, disambiguated after parsing the leading expression.
func (p *parser) parseSimple() (Statement, error) {
	pos := p.tok().Pos
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if lv, ok := expr.(*VariableValue); ok && p.tok().isChar('=') {
		p.next()
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expectType(tokenNewline); err != nil {
			return nil, err
		}
		if len(lv.Names) == 1 {
			return &Assignment{Name: lv.Names[0], Value: value, position: pos}, nil
		}
		target := &VariableValue{Names: lv.Names[:len(lv.Names)-1], position: lv.position}
		return &FieldAssignment{
			Target:   target,
			Field:    lv.Names[len(lv.Names)-1],
			Value:    value,
			position: pos,
		}, nil
	}

	if err := p.expectType(tokenNewline); err != nil {
		return nil, err
	}
	return &ExprStmt{Expr: expr, position: pos}, nil
}

// Expression grammar, loosest binding first: or, and, not, comparison
// (non-chaining), additive, multiplicative, primary.

func (p *parser) parseExpression() (Expression, error) {
	return p.parseOr()
}

func (p *parser) parseOr() (Expression, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.tok().Type == tokenOr {
		pos := p.tok().Pos
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Left: left, Operator: tokenOr, Right: right, position: pos}
	}
	return left, nil
}

func (p *parser) parseAnd() (Expression, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.tok().Type == tokenAnd {
		pos := p.tok().Pos
		p.next()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Left: left, Operator: tokenAnd, Right: right, position: pos}
	}
	return left, nil
}

func (p *parser) parseNot() (Expression, error) {
	if p.tok().Type == tokenNot {
		pos := p.tok().Pos
		p.next()
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &NotExpr{Operand: operand, position: pos}, nil
	}
	return p.parseComparison()
}

// parseComparison accepts at most one comparison operator: a < b < c is not
// a valid expression and surfaces as a parse error at the second operator.
func (p *parser) parseComparison() (Expression, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	op, ok := comparisonOp(p.tok())
	if !ok {
		return left, nil
	}
	pos := p.tok().Pos
	p.next()
	right, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	return &BinaryExpr{Left: left, Operator: op, Right: right, position: pos}, nil
}

func comparisonOp(t Token) (TokenType, bool) {
	switch {
	case t.Type == tokenEQ, t.Type == tokenNotEQ, t.Type == tokenLTE, t.Type == tokenGTE:
		return t.Type, true
	case t.isChar('<'), t.isChar('>'):
		return TokenType(t.Literal), true
	}
	return "", false
}

func (p *parser) parseAdditive() (Expression, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.tok().isChar('+') || p.tok().isChar('-') {
		op := TokenType(p.tok().Literal)
		pos := p.tok().Pos
		p.next()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Left: left, Operator: op, Right: right, position: pos}
	}
	return left, nil
}

func (p *parser) parseMultiplicative() (Expression, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.tok().isChar('*') || p.tok().isChar('/') {
		op := TokenType(p.tok().Literal)
		pos := p.tok().Pos
		p.next()
		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Left: left, Operator: op, Right: right, position: pos}
	}
	return left, nil
}

func (p *parser) parsePrimary() (Expression, error) {
	tok := p.tok()
	switch {
	case tok.Type == tokenNumber:
		n, err := strconv.Atoi(tok.Literal)
		if err != nil {
			return nil, parseErrorf(tok.Pos, "invalid number literal %q", tok.Literal)
		}
		p.next()
		return &NumberLit{Value: n, position: tok.Pos}, nil
	case tok.Type == tokenString:
		p.next()
		return &StringLit{Value: tok.Literal, position: tok.Pos}, nil
	case tok.Type == tokenTrue, tok.Type == tokenFalse:
		p.next()
		return &BoolLit{Value: tok.Type == tokenTrue, position: tok.Pos}, nil
	case tok.Type == tokenNone:
		p.next()
		return &NoneLit{position: tok.Pos}, nil
	case tok.isChar('('):
		p.next()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expectChar(')'); err != nil {
			return nil, err
		}
		return expr, nil
	case tok.Type == tokenIdent:
		return p.parseDottedName()
	case tok.isChar('-'):
		return nil, parseErrorf(tok.Pos, "unary minus is not supported")
	default:
		return nil, parseErrorf(tok.Pos, "unexpected token %s in expression", tok.describe())
	}
}

// parseDottedName parses an identifier-rooted chain of field hops and
// calls: plain dotted access yields a VariableValue; a call resolves the
// chain gathered so far into str(...), a constructor, or a method call; and
// further .name(...) segments chain method calls on the result.
func (p *parser) parseDottedName() (Expression, error) {
	pos := p.tok().Pos
	names := []string{p.tok().Literal}
	p.next()

	var expr Expression
	for {
		switch {
		case p.tok().isChar('.'):
			p.next()
			name, err := p.expectIdent("field name")
			if err != nil {
				return nil, err
			}
			names = append(names, name)

		case p.tok().isChar('('):
			args, err := p.parseArguments()
			if err != nil {
				return nil, err
			}
			expr, err = p.resolveCall(expr, names, args, pos)
			if err != nil {
				return nil, err
			}
			names = nil

		default:
			if expr == nil {
				return &VariableValue{Names: names, position: pos}, nil
			}
			if len(names) > 0 {
				return nil, parseErrorf(pos, "field access on a call result is not supported")
			}
			return expr, nil
		}
	}
}

func (p *parser) resolveCall(expr Expression, names []string, args []Expression, pos Position) (Expression, error) {
	if expr != nil {
		// Postfix call on a previous call's result: exactly one method name.
		switch len(names) {
		case 0:
			return nil, parseErrorf(pos, "a call result is not callable")
		case 1:
			return &MethodCall{Target: expr, Name: names[0], Args: args, position: pos}, nil
		default:
			return nil, parseErrorf(pos, "field access on a call result is not supported")
		}
	}

	if len(names) > 1 {
		target := &VariableValue{Names: names[:len(names)-1], position: pos}
		return &MethodCall{Target: target, Name: names[len(names)-1], Args: args, position: pos}, nil
	}

	if names[0] == "str" {
		if len(args) != 1 {
			return nil, parseErrorf(pos, "str expects exactly one argument, got %d", len(args))
		}
		return &Stringify{Arg: args[0], position: pos}, nil
	}
	cls, ok := p.classes[names[0]]
	if !ok {
		return nil, parseErrorf(pos, "unknown class %q", names[0])
	}
	return &NewInstance{Class: cls, Args: args, position: pos}, nil
}

func (p *parser) parseArguments() ([]Expression, error) {
	p.next()
	var args []Expression
	if p.tok().isChar(')') {
		p.next()
		return args, nil
	}
	arg, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	args = append(args, arg)
	for p.tok().isChar(',') {
		p.next()
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	if err := p.expectChar(')'); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *parser) expectIdent(what string) (string, error) {
	tok := p.tok()
	if tok.Type != tokenIdent {
		return "", parseErrorf(tok.Pos, "expected %s, got %s", what, tok.describe())
	}
	p.next()
	return tok.Literal, nil
}

func (p *parser) expectChar(c byte) error {
	tok := p.tok()
	if !tok.isChar(c) {
		return parseErrorf(tok.Pos, "expected %q, got %s", string(c), tok.describe())
	}
	p.next()
	return nil
}

func (p *parser) expectType(tt TokenType) error {
	tok := p.tok()
	if tok.Type != tt {
		return parseErrorf(tok.Pos, "expected %s, got %s", tt, tok.describe())
	}
	p.next()
	return nil
}
