package parser

import (
	"strings"
	"unicode/utf8"

	"github.com/dhamidi/javalint/java/ast"
)

// parseExpr parses an expression and wraps it in an EXPR node.
func (p *Parser) parseExpr() ast.Node {
	e := p.imaginary(ast.Expr)
	p.addExpr(e, p.parseAssignment())
	return e
}

// addExpr appends n to parent together with the parentheses that
// surrounded it in source.
func (p *Parser) addExpr(parent, n ast.Node) {
	g, ok := p.parens[n]
	if !ok {
		p.add(parent, n)
		return
	}
	p.add(parent, g.open...)
	p.add(parent, n)
	p.add(parent, g.close...)
}

func (p *Parser) parseExprList() ast.Node {
	list := p.imaginary(ast.Elist)
	for {
		progress := p.mustProgress()
		p.add(list, p.parseExpr())
		if !p.check(ast.Comma) {
			return list
		}
		p.add(list, p.take())
		if !progress() {
			return list
		}
	}
}

// parseArguments parses the arguments of a call up to, not including, the
// closing parenthesis.
func (p *Parser) parseArguments() ast.Node {
	if p.check(ast.Rparen) {
		return p.imaginary(ast.Elist)
	}
	return p.parseExprList()
}

func (p *Parser) parseAssignment() ast.Node {
	if p.isLambda() {
		return p.parseLambda()
	}
	left := p.parseTernary()
	if !isAssignOp(p.peek().Kind) {
		return left
	}
	op := p.take()
	p.addExpr(op, left)
	p.addExpr(op, p.parseAssignment())
	return op
}

func (p *Parser) parseTernary() ast.Node {
	cond := p.parseBinary(1)
	if !p.check(ast.Question) {
		return cond
	}
	q := p.take()
	p.addExpr(q, cond)
	p.addExpr(q, p.parseAssignment())
	p.add(q, p.expect(ast.Colon))
	if p.isLambda() {
		p.add(q, p.parseLambda())
	} else {
		p.addExpr(q, p.parseTernary())
	}
	return q
}

func binaryPrecedence(k ast.Kind) int {
	switch k {
	case ast.Lor:
		return 1
	case ast.Land:
		return 2
	case ast.Bor:
		return 3
	case ast.Bxor:
		return 4
	case ast.Band:
		return 5
	case ast.Equal, ast.NotEqual:
		return 6
	case ast.Lt, ast.Gt, ast.Le, ast.Ge, ast.LiteralInstanceof:
		return 7
	case ast.Sl, ast.Sr, ast.Bsr:
		return 8
	case ast.Plus, ast.Minus:
		return 9
	case ast.Star, ast.Div, ast.Mod:
		return 10
	}
	return 0
}

func (p *Parser) parseBinary(minPrec int) ast.Node {
	left := p.parseUnary()
	for {
		prec := binaryPrecedence(p.peek().Kind)
		if prec == 0 || prec < minPrec {
			return left
		}
		op := p.take()
		p.addExpr(op, left)
		if op.Kind() == ast.LiteralInstanceof {
			if p.isPatternStart(p.pos) {
				pattern := p.parsePattern()
				if pattern.Kind() == ast.RecordPatternDef {
					def := p.imaginary(ast.PatternDef)
					p.add(def, pattern)
					pattern = def
				}
				p.add(op, pattern)
			} else {
				p.add(op, p.parseType())
			}
		} else {
			p.addExpr(op, p.parseBinary(prec+1))
		}
		left = op
	}
}

func (p *Parser) parseUnary() ast.Node {
	var kind ast.Kind
	switch p.peek().Kind {
	case ast.Plus:
		kind = ast.UnaryPlus
	case ast.Minus:
		kind = ast.UnaryMinus
	case ast.Inc, ast.Dec, ast.Lnot, ast.Bnot:
		kind = p.peek().Kind
	case ast.Lparen:
		if p.isCast() {
			return p.parseCast()
		}
	}
	if kind != 0 {
		op := p.leaf(kind)
		p.addExpr(op, p.parseUnary())
		return op
	}
	return p.parsePostfix()
}

func (p *Parser) parseCast() ast.Node {
	cast := p.leaf(ast.Typecast)
	p.add(cast, p.parseType())
	for p.check(ast.Band) {
		p.add(cast, p.take(), p.parseType())
	}
	p.add(cast, p.expect(ast.Rparen))
	if p.isLambda() {
		p.add(cast, p.parseLambda())
	} else {
		p.addExpr(cast, p.parseUnary())
	}
	return cast
}

func (p *Parser) parsePostfix() ast.Node {
	left := p.parsePrimary()
	for !left.IsZero() {
		switch p.peek().Kind {
		case ast.Dot:
			left = p.parseSelector(left)
		case ast.Lparen:
			if !left.Is(ast.Ident, ast.Dot) {
				return left
			}
			call := p.leaf(ast.MethodCall)
			p.addExpr(call, left)
			p.add(call, p.parseArguments(), p.expect(ast.Rparen))
			left = call
		case ast.Lbrack:
			if p.peekN(1).Kind == ast.Rbrack {
				arr := p.leaf(ast.ArrayDeclarator)
				p.add(arr, left, p.take())
				left = arr
				continue
			}
			idx := p.leaf(ast.IndexOp)
			p.addExpr(idx, left)
			p.add(idx, p.parseExpr(), p.expect(ast.Rbrack))
			left = idx
		case ast.DoubleColon:
			ref := p.leaf(ast.MethodRef)
			p.addExpr(ref, left)
			if p.check(ast.Lt) {
				p.add(ref, p.parseTypeArguments())
			}
			if p.check(ast.LiteralNew) {
				p.add(ref, p.take())
			} else {
				p.add(ref, p.expectIdent())
			}
			left = ref
		case ast.Inc:
			op := p.leaf(ast.PostInc)
			p.addExpr(op, left)
			left = op
		case ast.Dec:
			op := p.leaf(ast.PostDec)
			p.addExpr(op, left)
			left = op
		default:
			return left
		}
	}
	return left
}

// parseSelector parses .name, .this, .class, .new and .<T>name after left.
func (p *Parser) parseSelector(left ast.Node) ast.Node {
	dot := p.take()
	p.addExpr(dot, left)
	if p.check(ast.Lt) {
		p.add(dot, p.parseTypeArguments())
	}
	switch p.peek().Kind {
	case ast.Ident, ast.LiteralThis, ast.LiteralClass, ast.LiteralSuper:
		p.add(dot, p.take())
	case ast.LiteralNew:
		p.add(dot, p.parseNew())
	default:
		p.errorf("expected identifier after \".\", got %s", p.peek())
	}
	return dot
}

func (p *Parser) parsePrimary() ast.Node {
	tok := p.peek()
	switch {
	case tok.Kind == ast.TextBlockLiteralBegin:
		return p.parseTextBlock()
	case isLiteral(tok.Kind), tok.Kind == ast.Ident,
		tok.Kind == ast.LiteralThis, tok.Kind == ast.LiteralSuper:
		if tok.Kind == ast.Ident && p.isGenericTypeRef() {
			return p.parseGenericTypeRef()
		}
		return p.take()
	case isPrimitive(tok.Kind), tok.Kind == ast.LiteralVoid:
		return p.take()
	case tok.Kind == ast.LiteralNew:
		return p.parseNew()
	case tok.Kind == ast.LiteralSwitch:
		return p.parseSwitch()
	case tok.Kind == ast.Lparen:
		open := p.take()
		inner := p.parseAssignment()
		close := p.expect(ast.Rparen)
		if inner.IsZero() {
			return inner
		}
		g := p.parens[inner]
		g.open = append([]ast.Node{open}, g.open...)
		if !close.IsZero() {
			g.close = append(g.close, close)
		}
		p.parens[inner] = g
		return inner
	}
	p.errorf("expected expression, got %s", tok)
	return ast.Node{}
}

// isGenericTypeRef reports whether a parameterized type used as the target
// of a method reference starts here, as in List<String>::new.
func (p *Parser) isGenericTypeRef() bool {
	if p.peekN(1).Kind != ast.Lt {
		return false
	}
	end, ok := p.scanType(p.pos)
	return ok && p.tokenAt(end).Kind == ast.DoubleColon
}

func (p *Parser) parseGenericTypeRef() ast.Node {
	typ := p.parseType()
	if !p.check(ast.DoubleColon) {
		return typ
	}
	ref := p.leaf(ast.MethodRef)
	p.add(ref, typ)
	if p.check(ast.LiteralNew) {
		p.add(ref, p.take())
	} else {
		p.add(ref, p.expectIdent())
	}
	return ref
}

// parseTextBlock splits a text block token into its BEGIN node with
// CONTENT and END children.
func (p *Parser) parseTextBlock() ast.Node {
	tok := p.peek()
	p.pos++
	if tok.Err != "" {
		p.errorAt(tok.Pos, tok.Err)
	}
	line, col := tok.Pos.Line, tok.Pos.Column
	begin := p.b.Token(ast.TextBlockLiteralBegin, `"""`, line, col)
	p.hide(begin, tok)

	content := strings.TrimPrefix(tok.Literal, `"""`)
	closed := tok.Err == "" && strings.HasSuffix(content, `"""`)
	if closed {
		content = strings.TrimSuffix(content, `"""`)
	}
	p.add(begin, p.b.Token(ast.TextBlockContent, content, line, col+3))
	if closed {
		endLine, endCol := line, col+3+utf8.RuneCountInString(content)
		if i := strings.LastIndexByte(content, '\n'); i >= 0 {
			endLine += strings.Count(content, "\n")
			endCol = utf8.RuneCountInString(content[i+1:]) + 1
		}
		p.add(begin, p.b.Token(ast.TextBlockLiteralEnd, `"""`, endLine, endCol))
	}
	return begin
}

// parseNew parses instance creation, anonymous classes and array creation.
func (p *Parser) parseNew() ast.Node {
	n := p.take()
	if p.check(ast.Lt) {
		p.add(n, p.parseTypeArguments())
	}
	p.add(n, p.parseAnnotationsIfAny())
	if isPrimitive(p.peek().Kind) {
		p.add(n, p.take())
	} else {
		p.parseClassTypeInto(n)
	}

	if p.check(ast.Lbrack) {
		var arr ast.Node
		for p.check(ast.Lbrack) {
			progress := p.mustProgress()
			next := p.leaf(ast.ArrayDeclarator)
			p.add(next, arr)
			if !p.check(ast.Rbrack) {
				p.add(next, p.parseExpr())
			}
			p.add(next, p.expect(ast.Rbrack))
			arr = next
			if !progress() {
				break
			}
		}
		p.add(n, arr)
		if p.check(ast.Lcurly) {
			p.add(n, p.parseArrayInit())
		}
		return n
	}

	p.add(n, p.expect(ast.Lparen), p.parseArguments(), p.expect(ast.Rparen))
	if p.check(ast.Lcurly) {
		p.add(n, p.parseClassBody(ast.ClassDef))
	}
	return n
}

// parseLambda parses the parameters and body of a lambda. The LAMBDA node
// comes from the arrow token.
func (p *Parser) parseLambda() ast.Node {
	var params []ast.Node
	if p.check(ast.Ident) {
		params = append(params, p.take())
	} else {
		open := p.expect(ast.Lparen)
		var list ast.Node
		if p.isInferredLambdaParams() {
			list = p.imaginary(ast.Parameters)
			for p.check(ast.Ident) {
				param := p.imaginary(ast.ParameterDef)
				p.add(param, p.imaginary(ast.Modifiers), p.imaginary(ast.Type), p.take())
				p.add(list, param)
				if !p.check(ast.Comma) {
					break
				}
				p.add(list, p.take())
			}
		} else {
			list = p.parseParameters()
		}
		params = append(params, open, list, p.expect(ast.Rparen))
	}

	lambda := p.expect(ast.Lambda)
	if lambda.IsZero() {
		return ast.Node{}
	}
	p.add(lambda, params...)
	if p.check(ast.Lcurly) {
		p.add(lambda, p.parseBlock())
	} else {
		p.add(lambda, p.parseExpr())
	}
	return lambda
}

func (p *Parser) isInferredLambdaParams() bool {
	i := p.pos
	for p.tokenAt(i).Kind == ast.Ident {
		switch p.tokenAt(i + 1).Kind {
		case ast.Comma:
			i += 2
		case ast.Rparen:
			return true
		default:
			return false
		}
	}
	return false
}

func isExprStart(k ast.Kind) bool {
	switch k {
	case ast.Ident, ast.Lparen, ast.LiteralThis, ast.LiteralSuper, ast.LiteralNew,
		ast.Lnot, ast.Bnot, ast.Plus, ast.Minus, ast.Inc, ast.Dec, ast.LiteralSwitch,
		ast.LiteralVoid:
		return true
	}
	return isLiteral(k) || isPrimitive(k)
}
