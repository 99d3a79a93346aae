package parser

import "github.com/dhamidi/javalint/java/ast"

// The scan functions look ahead over the token slice without creating
// nodes. They return the index just past what they matched.

func (p *Parser) scanAnnotation(i int) (int, bool) {
	if p.tokenAt(i).Kind != ast.At || p.tokenAt(i+1).Kind != ast.Ident {
		return i, false
	}
	i += 2
	for p.tokenAt(i).Kind == ast.Dot && p.tokenAt(i+1).Kind == ast.Ident {
		i += 2
	}
	if p.tokenAt(i).Kind != ast.Lparen {
		return i, true
	}
	return p.scanBalanced(i, ast.Lparen, ast.Rparen)
}

// scanBalanced skips from the open token at i to just past its matching
// close token.
func (p *Parser) scanBalanced(i int, open, close ast.Kind) (int, bool) {
	depth := 0
	for ; i < len(p.tokens); i++ {
		switch p.tokens[i].Kind {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i + 1, true
			}
		case ast.EOF:
			return i, false
		}
	}
	return i, false
}

func (p *Parser) scanAnnotations(i int) int {
	for p.tokenAt(i).Kind == ast.At && p.tokenAt(i+1).Kind != ast.LiteralInterface {
		next, ok := p.scanAnnotation(i)
		if !ok {
			return i
		}
		i = next
	}
	return i
}

// scanType matches a primitive, void or class type with optional type
// arguments and array dimensions.
func (p *Parser) scanType(i int) (int, bool) {
	i = p.scanAnnotations(i)
	tok := p.tokenAt(i)
	switch {
	case isPrimitive(tok.Kind) || tok.Kind == ast.LiteralVoid:
		i++
	case tok.Kind == ast.Ident:
		i++
		for {
			if p.tokenAt(i).Kind == ast.Lt {
				next, ok := p.scanTypeArgs(i)
				if !ok {
					return i, false
				}
				i = next
			}
			if p.tokenAt(i).Kind != ast.Dot {
				break
			}
			j := p.scanAnnotations(i + 1)
			if p.tokenAt(j).Kind != ast.Ident {
				break
			}
			i = j + 1
		}
	default:
		return i, false
	}
	for {
		j := p.scanAnnotations(i)
		if p.tokenAt(j).Kind != ast.Lbrack || p.tokenAt(j+1).Kind != ast.Rbrack {
			return i, true
		}
		i = j + 2
	}
}

// scanTypeArgs matches <...> starting at i. Closing tokens such as >> close
// several levels at once.
func (p *Parser) scanTypeArgs(i int) (int, bool) {
	depth := 0
	for ; i < len(p.tokens); i++ {
		switch p.tokens[i].Kind {
		case ast.Lt:
			depth++
		case ast.Gt:
			depth--
		case ast.Sr:
			depth -= 2
		case ast.Bsr:
			depth -= 3
		case ast.Ident, ast.Dot, ast.Comma, ast.Question, ast.ExtendsClause,
			ast.LiteralSuper, ast.Lbrack, ast.Rbrack, ast.Band, ast.At:
		default:
			if !isPrimitive(p.tokens[i].Kind) {
				return i, false
			}
		}
		if depth <= 0 {
			return i + 1, true
		}
	}
	return i, false
}

// isLocalVarDecl reports whether a local variable declaration starts at
// token i.
func (p *Parser) isLocalVarDecl(i int) bool {
	start := i
	for {
		tok := p.tokenAt(i)
		if tok.Kind == ast.Final {
			i++
			continue
		}
		if tok.Kind == ast.At && p.tokenAt(i+1).Kind != ast.LiteralInterface {
			next, ok := p.scanAnnotation(i)
			if !ok {
				return false
			}
			i = next
			continue
		}
		break
	}
	if p.tokenAt(i).Kind == ast.LiteralVoid {
		return false
	}
	end, ok := p.scanType(i)
	if !ok || p.tokenAt(end).Kind != ast.Ident {
		return false
	}
	if i > start {
		return true
	}
	switch p.tokenAt(end + 1).Kind {
	case ast.Assign, ast.Semi, ast.Comma, ast.Colon, ast.Lbrack:
		return true
	}
	return false
}

// isCast reports whether the parenthesis at the current token opens a
// cast.
func (p *Parser) isCast() bool {
	i := p.pos + 1
	i = p.scanAnnotations(i)
	if isPrimitive(p.tokenAt(i).Kind) {
		end, ok := p.scanType(i)
		return ok && p.tokenAt(end).Kind == ast.Rparen
	}
	if p.tokenAt(i).Kind != ast.Ident {
		return false
	}
	end, ok := p.scanType(i)
	for ok && p.tokenAt(end).Kind == ast.Band {
		end, ok = p.scanType(end + 1)
	}
	if !ok || p.tokenAt(end).Kind != ast.Rparen {
		return false
	}
	switch next := p.tokenAt(end + 1).Kind; next {
	case ast.Ident, ast.Lparen, ast.Lnot, ast.Bnot, ast.LiteralThis,
		ast.LiteralSuper, ast.LiteralNew, ast.LiteralSwitch:
		return true
	default:
		return isLiteral(next) || isPrimitive(next)
	}
}

// isLambda reports whether a lambda expression starts at the current
// token.
func (p *Parser) isLambda() bool {
	switch p.peek().Kind {
	case ast.Ident:
		return p.peekN(1).Kind == ast.Lambda
	case ast.Lparen:
		end, ok := p.scanBalanced(p.pos, ast.Lparen, ast.Rparen)
		return ok && p.tokenAt(end).Kind == ast.Lambda
	}
	return false
}
