package parser

import "github.com/dhamidi/javalint/java/ast"

var stmtRecovery = []ast.Kind{ast.Semi, ast.Rcurly, ast.Lcurly}

// parseBlock parses { statements } into an SLIST ending in RCURLY.
func (p *Parser) parseBlock() ast.Node {
	if !p.check(ast.Lcurly) {
		p.errorf("expected \"{\", got %s", p.peek())
		return ast.Node{}
	}
	block := p.leaf(ast.Slist)
	p.parseBlockStatements(block, ast.Rcurly)
	p.add(block, p.expect(ast.Rcurly))
	return block
}

// parseBlockStatements appends statements to parent until one of stop.
func (p *Parser) parseBlockStatements(parent ast.Node, stop ...ast.Kind) {
	for !p.match(stop...) && !p.check(ast.EOF) {
		progress := p.mustProgress()
		p.parseBlockStatement(parent)
		progress()
	}
}

// parseBlockStatement appends one statement to parent. Expression
// statements and local variable declarations append more than one node.
func (p *Parser) parseBlockStatement(parent ast.Node) {
	switch {
	case p.checkWord("yield") && p.isYield():
		p.parseStatementInto(parent)
	case p.isLocalTypeDecl():
		p.add(parent, p.parseTypeDeclWith(p.parseModifiers()))
	case p.isLocalVarDecl(p.pos):
		p.parseLocalVarDecl(parent)
		p.add(parent, p.expect(ast.Semi))
	default:
		p.parseStatementInto(parent)
	}
}

func (p *Parser) isLocalTypeDecl() bool {
	i := p.pos
	for {
		tok := p.tokenAt(i)
		switch tok.Kind {
		case ast.At:
			if p.tokenAt(i+1).Kind == ast.LiteralInterface {
				return true
			}
			next, ok := p.scanAnnotation(i)
			if !ok {
				return false
			}
			i = next
		case ast.Final, ast.Abstract, ast.LiteralStatic, ast.Strictfp, ast.LiteralNonSealed:
			i++
		case ast.LiteralClass, ast.LiteralInterface, ast.Enum:
			return true
		case ast.Ident:
			switch {
			case tok.Literal == "sealed" && p.tokenAt(i+1).Kind != ast.Ident:
				i++
			case tok.Literal == "sealed" && p.tokenAt(i+1).Literal == "record":
				i++
			case tok.Literal == "record":
				next := p.tokenAt(i + 2).Kind
				return p.tokenAt(i+1).Kind == ast.Ident && (next == ast.Lparen || next == ast.Lt)
			default:
				return false
			}
		default:
			return false
		}
	}
}

// parseLocalVarDecl parses the declarators of a local variable. Separating
// commas are appended to parent between the VARIABLE_DEF nodes; the
// terminator is left to the caller.
func (p *Parser) parseLocalVarDecl(parent ast.Node) {
	mods := p.parseModifiers()
	typ := p.parseType()
	for {
		progress := p.mustProgress()
		p.add(parent, p.parseDeclarator(mods, typ))
		if !p.check(ast.Comma) {
			return
		}
		p.add(parent, p.take())
		mods, typ = p.b.Clone(mods), p.b.Clone(typ)
		if !progress() {
			return
		}
	}
}

// parseStatementInto appends one statement to parent. An expression
// statement appends its EXPR and SEMI as two siblings.
func (p *Parser) parseStatementInto(parent ast.Node) {
	tok := p.peek()
	switch tok.Kind {
	case ast.Lcurly:
		p.add(parent, p.parseBlock())
	case ast.Semi:
		p.add(parent, p.leaf(ast.EmptyStat))
	case ast.LiteralIf:
		p.add(parent, p.parseIf())
	case ast.LiteralFor:
		p.add(parent, p.parseFor())
	case ast.LiteralWhile:
		w := p.take()
		p.add(w, p.expect(ast.Lparen), p.parseExpr(), p.expect(ast.Rparen))
		p.parseStatementInto(w)
		p.add(parent, w)
	case ast.LiteralDo:
		p.add(parent, p.parseDo())
	case ast.LiteralTry:
		p.add(parent, p.parseTry())
	case ast.LiteralSwitch:
		p.add(parent, p.parseSwitch())
	case ast.LiteralSynchronized:
		s := p.take()
		p.add(s, p.expect(ast.Lparen), p.parseExpr(), p.expect(ast.Rparen), p.parseBlock())
		p.add(parent, s)
	case ast.LiteralReturn:
		ret := p.take()
		if !p.check(ast.Semi) {
			p.add(ret, p.parseExpr())
		}
		p.add(ret, p.expect(ast.Semi))
		p.add(parent, ret)
	case ast.LiteralThrow:
		thr := p.take()
		p.add(thr, p.parseExpr(), p.expect(ast.Semi))
		p.add(parent, thr)
	case ast.LiteralBreak, ast.LiteralContinue:
		jump := p.take()
		if p.check(ast.Ident) {
			p.add(jump, p.take())
		}
		p.add(jump, p.expect(ast.Semi))
		p.add(parent, jump)
	case ast.LiteralAssert:
		as := p.take()
		p.add(as, p.parseExpr())
		if p.check(ast.Colon) {
			p.add(as, p.take(), p.parseExpr())
		}
		p.add(as, p.expect(ast.Semi))
		p.add(parent, as)
	case ast.LiteralThis, ast.LiteralSuper:
		if p.peekN(1).Kind == ast.Lparen {
			p.add(parent, p.parseCtorCall())
			return
		}
		p.parseExprStatement(parent)
	case ast.Ident:
		switch {
		case p.peekN(1).Kind == ast.Colon:
			ident := p.take()
			label := p.leaf(ast.LabeledStat)
			p.add(label, ident)
			p.parseStatementInto(label)
			p.add(parent, label)
		case tok.Literal == "yield" && p.isYield():
			y := p.leaf(ast.LiteralYield)
			p.add(y, p.parseExpr(), p.expect(ast.Semi))
			p.add(parent, y)
		default:
			p.parseExprStatement(parent)
		}
	default:
		if isExprStart(tok.Kind) {
			p.parseExprStatement(parent)
			return
		}
		p.errorf("expected statement, got %s", tok)
		p.recoverTo(stmtRecovery...)
		if p.check(ast.Semi) {
			p.skip()
		}
	}
}

// isYield reports whether a leading `yield` starts a yield statement
// rather than an expression using a variable named yield.
func (p *Parser) isYield() bool {
	switch p.peekN(1).Kind {
	case ast.Assign, ast.PlusAssign, ast.MinusAssign, ast.StarAssign, ast.DivAssign,
		ast.ModAssign, ast.SrAssign, ast.BsrAssign, ast.SlAssign, ast.BandAssign,
		ast.BxorAssign, ast.BorAssign, ast.Dot, ast.Lbrack, ast.Semi, ast.Inc, ast.Dec,
		ast.Question, ast.Colon, ast.DoubleColon, ast.Lambda, ast.Comma, ast.EOF:
		return false
	}
	return true
}

func (p *Parser) parseExprStatement(parent ast.Node) {
	p.add(parent, p.parseExpr(), p.expect(ast.Semi))
}

// parseCtorCall parses this(...) or super(...) at the start of a
// constructor body.
func (p *Parser) parseCtorCall() ast.Node {
	kind := ast.CtorCall
	if p.check(ast.LiteralSuper) {
		kind = ast.SuperCtorCall
	}
	call := p.leaf(kind)
	p.add(call, p.take(), p.parseArguments(), p.expect(ast.Rparen), p.expect(ast.Semi))
	return call
}

func (p *Parser) parseIf() ast.Node {
	n := p.take()
	p.add(n, p.expect(ast.Lparen), p.parseExpr(), p.expect(ast.Rparen))
	p.parseStatementInto(n)
	if p.check(ast.LiteralElse) {
		els := p.take()
		p.parseStatementInto(els)
		p.add(n, els)
	}
	return n
}

func (p *Parser) parseFor() ast.Node {
	n := p.take()
	p.add(n, p.expect(ast.Lparen))

	init := p.imaginary(ast.ForInit)
	if p.isLocalVarDecl(p.pos) {
		p.parseLocalVarDecl(init)
		if p.check(ast.Colon) {
			clause := p.imaginary(ast.ForEachClause)
			p.add(clause, init.FirstChild(), p.take(), p.parseExpr())
			p.add(n, clause, p.expect(ast.Rparen))
			p.parseStatementInto(n)
			return n
		}
	} else if !p.check(ast.Semi) {
		p.add(init, p.parseExprList())
	}
	p.add(n, init, p.expect(ast.Semi))

	cond := p.imaginary(ast.ForCondition)
	if !p.check(ast.Semi) {
		p.add(cond, p.parseExpr())
	}
	p.add(n, cond, p.expect(ast.Semi))

	iter := p.imaginary(ast.ForIterator)
	if !p.check(ast.Rparen) {
		p.add(iter, p.parseExprList())
	}
	p.add(n, iter, p.expect(ast.Rparen))
	p.parseStatementInto(n)
	return n
}

func (p *Parser) parseDo() ast.Node {
	n := p.take()
	p.parseStatementInto(n)
	if p.check(ast.LiteralWhile) {
		p.add(n, p.leaf(ast.DoWhile))
	} else {
		p.errorf("expected \"while\", got %s", p.peek())
	}
	p.add(n, p.expect(ast.Lparen), p.parseExpr(), p.expect(ast.Rparen), p.expect(ast.Semi))
	return n
}

func (p *Parser) parseTry() ast.Node {
	n := p.take()
	hasResources := p.check(ast.Lparen)
	if hasResources {
		p.add(n, p.parseResourceSpecification())
	}
	p.add(n, p.parseBlock())

	handlers := 0
	for p.check(ast.LiteralCatch) {
		handlers++
		c := p.take()
		p.add(c, p.expect(ast.Lparen), p.parseCatchParameter(), p.expect(ast.Rparen), p.parseBlock())
		p.add(n, c)
	}
	if p.check(ast.LiteralFinally) {
		handlers++
		f := p.take()
		p.add(f, p.parseBlock())
		p.add(n, f)
	}
	if handlers == 0 && !hasResources {
		p.errorf("expected \"catch\" or \"finally\", got %s", p.peek())
	}
	return n
}

func (p *Parser) parseResourceSpecification() ast.Node {
	spec := p.imaginary(ast.ResourceSpecification)
	p.add(spec, p.take())
	resources := p.imaginary(ast.Resources)
	for !p.check(ast.Rparen) && !p.check(ast.EOF) {
		progress := p.mustProgress()
		r := p.imaginary(ast.Resource)
		if p.isLocalVarDecl(p.pos) {
			p.add(r, p.parseModifiers(), p.parseType(), p.expectIdent())
			if p.check(ast.Assign) {
				assign := p.take()
				p.add(assign, p.parseExpr())
				p.add(r, assign)
			}
		} else {
			p.addExpr(r, p.parsePostfix())
		}
		p.add(resources, r)
		if !p.check(ast.Semi) {
			break
		}
		p.add(resources, p.take())
		if !progress() {
			break
		}
	}
	p.add(spec, resources, p.expect(ast.Rparen))
	return spec
}

// parseCatchParameter parses a catch parameter. Alternatives of a
// multi-catch nest left to right under BOR inside the TYPE.
func (p *Parser) parseCatchParameter() ast.Node {
	param := p.imaginary(ast.ParameterDef)
	mods := p.parseModifiers()
	typ := p.imaginary(ast.Type)
	p.parseClassTypeInto(typ)
	for p.check(ast.Bor) {
		bor := p.take()
		p.adopt(bor, typ)
		p.parseClassTypeInto(bor)
		p.add(typ, bor)
	}
	p.add(param, mods, typ, p.expectIdent())
	return param
}

// adopt moves every child of src to the end of dst.
func (p *Parser) adopt(dst, src ast.Node) {
	for c := src.FirstChild(); !c.IsZero(); {
		next := c.NextSibling()
		p.add(dst, c)
		c = next
	}
}

// parseSwitch parses a switch statement or expression.
func (p *Parser) parseSwitch() ast.Node {
	sw := p.take()
	p.add(sw, p.expect(ast.Lparen), p.parseExpr(), p.expect(ast.Rparen), p.expect(ast.Lcurly))
	for !p.check(ast.Rcurly) && !p.check(ast.EOF) {
		progress := p.mustProgress()
		if p.check(ast.LiteralCase) || p.check(ast.LiteralDefault) {
			p.add(sw, p.parseSwitchEntry())
		} else {
			p.errorf("expected \"case\" or \"default\", got %s", p.peek())
			p.recoverTo(ast.LiteralCase, ast.LiteralDefault, ast.Rcurly)
		}
		progress()
	}
	p.add(sw, p.expect(ast.Rcurly))
	return sw
}

// parseSwitchEntry parses a SWITCH_RULE (case ... ->) or a CASE_GROUP of
// one or more case labels followed by statements.
func (p *Parser) parseSwitchEntry() ast.Node {
	label := p.parseSwitchLabel()
	if p.check(ast.Lambda) {
		rule := p.imaginary(ast.SwitchRule)
		p.add(rule, label, p.take())
		switch {
		case p.check(ast.Lcurly):
			p.add(rule, p.parseBlock())
		case p.check(ast.LiteralThrow):
			p.parseStatementInto(rule)
		default:
			p.add(rule, p.parseExpr(), p.expect(ast.Semi))
		}
		return rule
	}

	group := p.imaginary(ast.CaseGroup)
	p.add(label, p.expect(ast.Colon))
	p.add(group, label)
	for p.check(ast.LiteralCase) || (p.check(ast.LiteralDefault) && p.peekN(1).Kind == ast.Colon) {
		progress := p.mustProgress()
		next := p.parseSwitchLabel()
		p.add(next, p.expect(ast.Colon))
		p.add(group, next)
		if !progress() {
			break
		}
	}
	if !p.match(ast.Rcurly, ast.LiteralCase, ast.LiteralDefault, ast.EOF) {
		body := p.imaginary(ast.Slist)
		p.parseBlockStatements(body, ast.Rcurly, ast.LiteralCase, ast.LiteralDefault)
		p.add(group, body)
	}
	return group
}

func (p *Parser) parseSwitchLabel() ast.Node {
	if p.check(ast.LiteralDefault) {
		return p.take()
	}
	c := p.expect(ast.LiteralCase)
	for {
		progress := p.mustProgress()
		switch {
		case p.check(ast.LiteralDefault):
			p.add(c, p.take())
		case p.isPatternStart(p.pos):
			p.add(c, p.parsePattern())
		default:
			e := p.imaginary(ast.Expr)
			p.addExpr(e, p.parseTernary())
			p.add(c, e)
		}
		if !p.check(ast.Comma) {
			break
		}
		p.add(c, p.take())
		if !progress() {
			break
		}
	}
	if p.checkWord("when") {
		guard := p.leaf(ast.LiteralWhen)
		e := p.imaginary(ast.Expr)
		p.addExpr(e, p.parseTernary())
		p.add(guard, e)
		p.add(c, guard)
	}
	return c
}

// isPatternStart reports whether a type pattern or record pattern begins
// at token i.
func (p *Parser) isPatternStart(i int) bool {
	start := i
	for {
		switch p.tokenAt(i).Kind {
		case ast.Final:
			i++
			continue
		case ast.At:
			next, ok := p.scanAnnotation(i)
			if !ok {
				return false
			}
			i = next
			continue
		}
		break
	}
	if tok := p.tokenAt(i); tok.Kind == ast.Ident && tok.Literal == "_" {
		return true
	}
	end, ok := p.scanType(i)
	if !ok {
		return false
	}
	switch after := p.tokenAt(end); after.Kind {
	case ast.Ident:
		return after.Literal != "when" || i > start
	case ast.Lparen:
		return p.tokenAt(i).Kind == ast.Ident && p.tokenAt(end-1).Kind != ast.Rbrack
	}
	return i > start
}

// parsePattern parses a type pattern, a record pattern or the unnamed
// pattern _.
func (p *Parser) parsePattern() ast.Node {
	if tok := p.peek(); tok.Kind == ast.Ident && tok.Literal == "_" {
		return p.leaf(ast.UnnamedPatternDef)
	}
	mods := p.parseModifiers()
	typ := p.parseType()
	if p.check(ast.Lparen) {
		rec := p.imaginary(ast.RecordPatternDef)
		p.add(rec, mods, typ, p.take())
		comps := p.imaginary(ast.RecordPatternComponents)
		for !p.check(ast.Rparen) && !p.check(ast.EOF) {
			progress := p.mustProgress()
			p.add(comps, p.parsePattern())
			if !p.check(ast.Comma) {
				break
			}
			p.add(comps, p.take())
			if !progress() {
				break
			}
		}
		p.add(rec, comps, p.expect(ast.Rparen))
		if p.check(ast.Ident) && !p.checkWord("when") {
			p.add(rec, p.take())
		}
		return rec
	}
	def := p.imaginary(ast.PatternVariableDef)
	p.add(def, mods, typ, p.expectIdent())
	return def
}
