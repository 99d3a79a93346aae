package parser

import "github.com/dhamidi/javalint/java/ast"

var declRecovery = []ast.Kind{
	ast.At, ast.LiteralPublic, ast.LiteralPrivate, ast.LiteralProtected,
	ast.Abstract, ast.LiteralStatic, ast.Final, ast.Strictfp,
	ast.LiteralClass, ast.LiteralInterface, ast.Enum, ast.Rcurly, ast.Semi,
}

func (p *Parser) parseCompilationUnit() ast.Node {
	root := p.imaginary(ast.CompilationUnit)

	if p.check(ast.PackageDef) || p.isAnnotatedPackage() {
		p.add(root, p.parsePackageDef())
	}

	for p.check(ast.Import) || p.check(ast.Semi) {
		if p.check(ast.Semi) {
			p.add(root, p.take())
			continue
		}
		p.add(root, p.parseImport())
	}

	for !p.check(ast.EOF) {
		progress := p.mustProgress()
		if p.check(ast.Semi) {
			p.add(root, p.take())
			continue
		}
		p.add(root, p.parseTypeDecl())
		progress()
	}
	return root
}

func (p *Parser) isAnnotatedPackage() bool {
	i := p.pos
	for p.tokenAt(i).Kind == ast.At && p.tokenAt(i+1).Kind != ast.LiteralInterface {
		next, ok := p.scanAnnotation(i)
		if !ok {
			return false
		}
		i = next
	}
	return i > p.pos && p.tokenAt(i).Kind == ast.PackageDef
}

func (p *Parser) parsePackageDef() ast.Node {
	anns := p.imaginary(ast.Annotations)
	for p.check(ast.At) {
		p.add(anns, p.parseAnnotation())
	}
	pkg := p.leaf(ast.PackageDef)
	p.add(pkg, anns, p.parseQualifiedName(false), p.expect(ast.Semi))
	return pkg
}

func (p *Parser) parseImport() ast.Node {
	imp := p.leaf(ast.Import)
	if p.check(ast.LiteralStatic) {
		p.b.SetKind(imp, ast.StaticImport)
		p.add(imp, p.take())
	}
	p.add(imp, p.parseQualifiedName(true), p.expect(ast.Semi))
	return imp
}

// parseQualifiedName parses a dotted name into an IDENT or a left-nested
// DOT chain. With wildcard set, a trailing .* is accepted.
func (p *Parser) parseQualifiedName(wildcard bool) ast.Node {
	name := p.expectIdent()
	for p.check(ast.Dot) {
		next := p.peekN(1).Kind
		if next != ast.Ident && !(wildcard && next == ast.Star) {
			break
		}
		dot := p.take()
		p.add(dot, name, p.take())
		name = dot
	}
	return name
}

func (p *Parser) isRecordStart() bool {
	return p.checkWord("record") && p.peekN(1).Kind == ast.Ident &&
		(p.peekN(2).Kind == ast.Lparen || p.peekN(2).Kind == ast.Lt)
}

// isTypeDeclStart reports whether the current token begins a class-like
// declaration after modifiers.
func (p *Parser) isTypeDeclStart() bool {
	switch p.peek().Kind {
	case ast.LiteralClass, ast.LiteralInterface, ast.Enum:
		return true
	case ast.At:
		return p.peekN(1).Kind == ast.LiteralInterface
	}
	return p.isRecordStart()
}

func (p *Parser) parseTypeDecl() ast.Node {
	mods := p.parseModifiers()
	if decl := p.parseTypeDeclWith(mods); !decl.IsZero() {
		return decl
	}
	p.errorf("expected class, interface, enum, record or @interface, got %s", p.peek())
	p.recoverTo(declRecovery...)
	return ast.Node{}
}

func (p *Parser) parseTypeDeclWith(mods ast.Node) ast.Node {
	switch p.peek().Kind {
	case ast.LiteralClass:
		return p.parseClassDef(mods)
	case ast.LiteralInterface:
		return p.parseInterfaceDef(mods)
	case ast.Enum:
		return p.parseEnumDef(mods)
	case ast.At:
		if p.peekN(1).Kind == ast.LiteralInterface {
			return p.parseAnnotationDef(mods)
		}
	}
	if p.isRecordStart() {
		return p.parseRecordDef(mods)
	}
	return ast.Node{}
}

func (p *Parser) isSealedModifier() bool {
	if !p.checkWord("sealed") {
		return false
	}
	next := p.peekN(1)
	return isModifier(next.Kind) || next.Kind == ast.LiteralClass ||
		next.Kind == ast.LiteralInterface || next.Kind == ast.At ||
		(next.Kind == ast.Ident && (next.Literal == "sealed" || next.Literal == "record"))
}

func (p *Parser) parseModifiers() ast.Node {
	mods := p.imaginary(ast.Modifiers)
	for {
		tok := p.peek()
		switch {
		case tok.Kind == ast.At && p.peekN(1).Kind != ast.LiteralInterface:
			p.add(mods, p.parseAnnotation())
		case tok.Kind == ast.LiteralSynchronized && p.peekN(1).Kind == ast.Lparen:
			return mods
		case tok.Kind == ast.LiteralDefault && (p.peekN(1).Kind == ast.Colon || p.peekN(1).Kind == ast.Lambda):
			return mods
		case isModifier(tok.Kind):
			p.add(mods, p.take())
		case p.isSealedModifier():
			p.add(mods, p.leaf(ast.LiteralSealed))
		default:
			return mods
		}
	}
}

func (p *Parser) parseAnnotations() ast.Node {
	anns := p.imaginary(ast.Annotations)
	for p.check(ast.At) && p.peekN(1).Kind != ast.LiteralInterface {
		p.add(anns, p.parseAnnotation())
	}
	return anns
}

func (p *Parser) parseAnnotation() ast.Node {
	ann := p.imaginary(ast.Annotation)
	p.add(ann, p.leaf(ast.At), p.parseQualifiedName(false))

	if !p.check(ast.Lparen) {
		return ann
	}
	p.add(ann, p.take())
	if !p.check(ast.Rparen) {
		if p.check(ast.Ident) && p.peekN(1).Kind == ast.Assign {
			for {
				progress := p.mustProgress()
				pair := p.imaginary(ast.AnnotationMemberValuePair)
				p.add(pair, p.expectIdent(), p.expect(ast.Assign), p.parseAnnotationValue())
				p.add(ann, pair)
				if !p.check(ast.Comma) {
					break
				}
				p.add(ann, p.take())
				if !progress() {
					break
				}
			}
		} else {
			p.add(ann, p.parseAnnotationValue())
		}
	}
	p.add(ann, p.expect(ast.Rparen))
	return ann
}

func (p *Parser) parseAnnotationValue() ast.Node {
	switch p.peek().Kind {
	case ast.At:
		return p.parseAnnotation()
	case ast.Lcurly:
		init := p.leaf(ast.AnnotationArrayInit)
		for !p.check(ast.Rcurly) && !p.check(ast.EOF) {
			progress := p.mustProgress()
			p.add(init, p.parseAnnotationValue())
			if p.check(ast.Comma) {
				p.add(init, p.take())
			}
			if !progress() {
				break
			}
		}
		p.add(init, p.expect(ast.Rcurly))
		return init
	}
	expr := p.imaginary(ast.Expr)
	p.addExpr(expr, p.parseTernary())
	return expr
}

func (p *Parser) parseClassDef(mods ast.Node) ast.Node {
	n := p.imaginary(ast.ClassDef)
	p.add(n, mods, p.take(), p.expectIdent())
	if p.check(ast.Lt) {
		p.add(n, p.parseTypeParameters())
	}
	if p.check(ast.ExtendsClause) {
		ext := p.take()
		p.parseClassTypeInto(ext)
		p.add(n, ext)
	}
	if p.check(ast.ImplementsClause) {
		p.add(n, p.parseTypeList(p.take()))
	}
	if p.checkWord("permits") {
		p.add(n, p.parseTypeList(p.leaf(ast.PermitsClause)))
	}
	p.add(n, p.parseClassBody(ast.ClassDef))
	return n
}

func (p *Parser) parseInterfaceDef(mods ast.Node) ast.Node {
	n := p.imaginary(ast.InterfaceDef)
	p.add(n, mods, p.take(), p.expectIdent())
	if p.check(ast.Lt) {
		p.add(n, p.parseTypeParameters())
	}
	if p.check(ast.ExtendsClause) {
		p.add(n, p.parseTypeList(p.take()))
	}
	if p.checkWord("permits") {
		p.add(n, p.parseTypeList(p.leaf(ast.PermitsClause)))
	}
	p.add(n, p.parseClassBody(ast.InterfaceDef))
	return n
}

func (p *Parser) parseEnumDef(mods ast.Node) ast.Node {
	n := p.imaginary(ast.EnumDef)
	p.add(n, mods, p.take(), p.expectIdent())
	if p.check(ast.ImplementsClause) {
		p.add(n, p.parseTypeList(p.take()))
	}

	body := p.imaginary(ast.ObjBlock)
	p.add(body, p.expect(ast.Lcurly))
	for !p.check(ast.Semi) && !p.check(ast.Rcurly) && !p.check(ast.EOF) {
		progress := p.mustProgress()
		p.add(body, p.parseEnumConstant())
		if p.check(ast.Comma) {
			p.add(body, p.take())
		} else if !p.check(ast.Semi) && !p.check(ast.Rcurly) {
			p.errorf("expected \",\", \";\" or \"}\" after enum constant, got %s", p.peek())
			p.recoverTo(ast.Comma, ast.Semi, ast.Rcurly)
		}
		if !progress() {
			break
		}
	}
	if p.check(ast.Semi) {
		p.add(body, p.take())
	}
	p.parseClassMembers(body, ast.EnumDef)
	p.add(n, body)
	return n
}

func (p *Parser) parseEnumConstant() ast.Node {
	n := p.imaginary(ast.EnumConstantDef)
	p.add(n, p.parseAnnotations(), p.expectIdent())
	if p.check(ast.Lparen) {
		p.add(n, p.take(), p.parseArguments(), p.expect(ast.Rparen))
	}
	if p.check(ast.Lcurly) {
		p.add(n, p.parseClassBody(ast.ClassDef))
	}
	return n
}

func (p *Parser) parseRecordDef(mods ast.Node) ast.Node {
	n := p.imaginary(ast.RecordDef)
	p.add(n, mods, p.leaf(ast.LiteralRecord), p.expectIdent())
	if p.check(ast.Lt) {
		p.add(n, p.parseTypeParameters())
	}
	p.add(n, p.expect(ast.Lparen))

	comps := p.imaginary(ast.RecordComponents)
	for !p.check(ast.Rparen) && !p.check(ast.EOF) {
		progress := p.mustProgress()
		comp := p.imaginary(ast.RecordComponentDef)
		p.add(comp, p.parseAnnotations(), p.parseType())
		if p.check(ast.Ellipsis) {
			p.add(comp, p.take())
		}
		p.add(comp, p.expectIdent())
		p.add(comps, comp)
		if !p.check(ast.Comma) {
			break
		}
		p.add(comps, p.take())
		if !progress() {
			break
		}
	}
	p.add(n, comps, p.expect(ast.Rparen))

	if p.check(ast.ImplementsClause) {
		p.add(n, p.parseTypeList(p.take()))
	}
	p.add(n, p.parseClassBody(ast.RecordDef))
	return n
}

func (p *Parser) parseAnnotationDef(mods ast.Node) ast.Node {
	n := p.imaginary(ast.AnnotationDef)
	p.add(n, mods, p.take(), p.take(), p.expectIdent())
	p.add(n, p.parseClassBody(ast.AnnotationDef))
	return n
}

// parseTypeList appends comma separated class types to clause.
func (p *Parser) parseTypeList(clause ast.Node) ast.Node {
	for {
		progress := p.mustProgress()
		p.parseClassTypeInto(clause)
		if !p.check(ast.Comma) {
			break
		}
		p.add(clause, p.take())
		if !progress() {
			break
		}
	}
	return clause
}

func (p *Parser) parseClassBody(owner ast.Kind) ast.Node {
	body := p.imaginary(ast.ObjBlock)
	p.add(body, p.expect(ast.Lcurly))
	p.parseClassMembers(body, owner)
	return body
}

func (p *Parser) parseClassMembers(body ast.Node, owner ast.Kind) {
	for !p.check(ast.Rcurly) && !p.check(ast.EOF) {
		progress := p.mustProgress()
		p.parseClassMember(body, owner)
		progress()
	}
	p.add(body, p.expect(ast.Rcurly))
}

func (p *Parser) parseClassMember(body ast.Node, owner ast.Kind) {
	switch {
	case p.check(ast.Semi):
		p.add(body, p.take())
		return
	case p.check(ast.Lcurly):
		init := p.imaginary(ast.InstanceInit)
		p.add(init, p.parseBlock())
		p.add(body, init)
		return
	case p.check(ast.LiteralStatic) && p.peekN(1).Kind == ast.Lcurly:
		init := p.leaf(ast.StaticInit)
		p.add(init, p.parseBlock())
		p.add(body, init)
		return
	}

	mods := p.parseModifiers()

	if decl := p.parseTypeDeclWith(mods); !decl.IsZero() {
		p.add(body, decl)
		return
	}

	var typeParams ast.Node
	if p.check(ast.Lt) {
		typeParams = p.parseTypeParameters()
	}

	if p.check(ast.Ident) && p.peekN(1).Kind == ast.Lparen {
		p.add(body, p.parseCtorDef(mods, typeParams))
		return
	}
	if owner == ast.RecordDef && p.check(ast.Ident) && p.peekN(1).Kind == ast.Lcurly {
		ctor := p.imaginary(ast.CompactCtorDef)
		p.add(ctor, mods, p.take(), p.parseBlock())
		p.add(body, ctor)
		return
	}

	if !p.check(ast.Ident) && !p.check(ast.LiteralVoid) && !isPrimitive(p.peek().Kind) {
		p.errorf("expected member declaration, got %s", p.peek())
		p.recoverTo(declRecovery...)
		if p.check(ast.Semi) {
			p.skip()
		}
		return
	}

	typ := p.parseType()
	if p.check(ast.Ident) && p.peekN(1).Kind == ast.Lparen {
		if owner == ast.AnnotationDef {
			p.add(body, p.parseAnnotationFieldDef(mods, typ))
			return
		}
		p.add(body, p.parseMethodDef(mods, typeParams, typ))
		return
	}
	p.parseFieldDefs(body, mods, typ)
}

func (p *Parser) parseMethodDef(mods, typeParams, typ ast.Node) ast.Node {
	m := p.imaginary(ast.MethodDef)
	p.add(m, mods, typeParams, typ, p.expectIdent())
	p.add(m, p.expect(ast.Lparen), p.parseParameters(), p.expect(ast.Rparen))
	for p.check(ast.Lbrack) && p.peekN(1).Kind == ast.Rbrack {
		if typ.IsZero() {
			p.addDimension(m)
		} else {
			p.addDimension(typ)
		}
	}
	if p.check(ast.LiteralThrows) {
		p.add(m, p.parseTypeList(p.take()))
	}
	if p.check(ast.Lcurly) {
		p.add(m, p.parseBlock())
	} else {
		p.add(m, p.expect(ast.Semi))
	}
	return m
}

func (p *Parser) parseCtorDef(mods, typeParams ast.Node) ast.Node {
	c := p.imaginary(ast.CtorDef)
	p.add(c, mods, typeParams, p.take())
	p.add(c, p.expect(ast.Lparen), p.parseParameters(), p.expect(ast.Rparen))
	if p.check(ast.LiteralThrows) {
		p.add(c, p.parseTypeList(p.take()))
	}
	p.add(c, p.parseBlock())
	return c
}

func (p *Parser) parseAnnotationFieldDef(mods, typ ast.Node) ast.Node {
	f := p.imaginary(ast.AnnotationFieldDef)
	p.add(f, mods, typ, p.expectIdent(), p.expect(ast.Lparen), p.expect(ast.Rparen))
	if p.check(ast.LiteralDefault) {
		def := p.take()
		p.add(def, p.parseAnnotationValue())
		p.add(f, def)
	}
	p.add(f, p.expect(ast.Semi))
	return f
}

// parseFieldDefs parses one or more declarators sharing mods and typ. Each
// declarator gets its own VARIABLE_DEF; the separator or the final
// semicolon is its last child.
func (p *Parser) parseFieldDefs(body, mods, typ ast.Node) {
	for {
		progress := p.mustProgress()
		v := p.parseDeclarator(mods, typ)
		p.add(body, v)
		if p.check(ast.Comma) {
			p.add(v, p.take())
			mods, typ = p.b.Clone(mods), p.b.Clone(typ)
			if !progress() {
				break
			}
			continue
		}
		p.add(v, p.expect(ast.Semi))
		return
	}
}

func (p *Parser) parseDeclarator(mods, typ ast.Node) ast.Node {
	v := p.imaginary(ast.VariableDef)
	p.add(v, mods, typ, p.expectIdent())
	for p.check(ast.Lbrack) && p.peekN(1).Kind == ast.Rbrack {
		p.addDimension(typ)
	}
	if p.check(ast.Assign) {
		assign := p.take()
		p.add(assign, p.parseVariableInitializer())
		p.add(v, assign)
	}
	return v
}

func (p *Parser) parseVariableInitializer() ast.Node {
	if p.check(ast.Lcurly) {
		return p.parseArrayInit()
	}
	return p.parseExpr()
}

func (p *Parser) parseArrayInit() ast.Node {
	init := p.leaf(ast.ArrayInit)
	for !p.check(ast.Rcurly) && !p.check(ast.EOF) {
		progress := p.mustProgress()
		p.add(init, p.parseVariableInitializer())
		if p.check(ast.Comma) {
			p.add(init, p.take())
		} else if !p.check(ast.Rcurly) {
			p.errorf("expected \",\" or \"}\" in array initializer, got %s", p.peek())
			break
		}
		if !progress() {
			break
		}
	}
	p.add(init, p.expect(ast.Rcurly))
	return init
}

func (p *Parser) parseParameters() ast.Node {
	params := p.imaginary(ast.Parameters)
	for !p.check(ast.Rparen) && !p.check(ast.EOF) {
		progress := p.mustProgress()
		p.add(params, p.parseParameter())
		if !p.check(ast.Comma) {
			break
		}
		p.add(params, p.take())
		if !progress() {
			break
		}
	}
	return params
}

// parseParameter parses a formal parameter. A receiver parameter has
// LITERAL_THIS (or Outer.this) in place of its IDENT.
func (p *Parser) parseParameter() ast.Node {
	param := p.imaginary(ast.ParameterDef)
	p.add(param, p.parseModifiers(), p.parseType())
	if p.check(ast.Ellipsis) {
		p.add(param, p.take())
	}
	switch {
	case p.check(ast.LiteralThis):
		p.add(param, p.take())
	case p.check(ast.Ident) && p.peekN(1).Kind == ast.Dot && p.peekN(2).Kind == ast.LiteralThis:
		outer := p.take()
		dot := p.take()
		p.add(dot, outer, p.take())
		p.add(param, dot)
	default:
		p.add(param, p.expectIdent())
		typ := param.FindFirstToken(ast.Type)
		for p.check(ast.Lbrack) && p.peekN(1).Kind == ast.Rbrack {
			p.addDimension(typ)
		}
	}
	return param
}

func (p *Parser) parseTypeParameters() ast.Node {
	params := p.imaginary(ast.TypeParameters)
	p.add(params, p.leaf(ast.GenericStart))
	for !p.checkGT() && !p.check(ast.EOF) {
		progress := p.mustProgress()
		tp := p.imaginary(ast.TypeParameter)
		p.add(tp, p.parseAnnotationsIfAny(), p.expectIdent())
		if p.check(ast.ExtendsClause) {
			bounds := p.leaf(ast.TypeUpperBounds)
			p.parseClassTypeInto(bounds)
			for p.check(ast.Band) {
				p.add(bounds, p.leaf(ast.TypeExtensionAnd))
				p.parseClassTypeInto(bounds)
			}
			p.add(tp, bounds)
		}
		p.add(params, tp)
		if !p.check(ast.Comma) {
			break
		}
		p.add(params, p.take())
		if !progress() {
			break
		}
	}
	p.splitGT()
	if p.check(ast.Gt) {
		p.add(params, p.leaf(ast.GenericEnd))
	} else {
		p.errorf("expected \">\", got %s", p.peek())
	}
	return params
}

func (p *Parser) parseTypeArguments() ast.Node {
	args := p.imaginary(ast.TypeArguments)
	p.add(args, p.leaf(ast.GenericStart))
	for !p.checkGT() && !p.check(ast.EOF) {
		progress := p.mustProgress()
		arg := p.imaginary(ast.TypeArgument)
		p.add(arg, p.parseAnnotationsIfAny())
		if p.check(ast.Question) {
			p.add(arg, p.leaf(ast.WildcardType))
			switch {
			case p.check(ast.ExtendsClause):
				bounds := p.leaf(ast.TypeUpperBounds)
				p.parseTypeInto(bounds)
				p.add(arg, bounds)
			case p.check(ast.LiteralSuper):
				bounds := p.leaf(ast.TypeLowerBounds)
				p.parseTypeInto(bounds)
				p.add(arg, bounds)
			}
		} else {
			p.parseTypeInto(arg)
		}
		p.add(args, arg)
		if !p.check(ast.Comma) {
			break
		}
		p.add(args, p.take())
		if !progress() {
			break
		}
	}
	p.splitGT()
	if p.check(ast.Gt) {
		p.add(args, p.leaf(ast.GenericEnd))
	} else {
		p.errorf("expected \">\", got %s", p.peek())
	}
	return args
}

func (p *Parser) parseAnnotationsIfAny() ast.Node {
	if !p.check(ast.At) {
		return ast.Node{}
	}
	return p.parseAnnotations()
}

// parseType parses a type into a TYPE node.
func (p *Parser) parseType() ast.Node {
	typ := p.imaginary(ast.Type)
	p.parseTypeInto(typ)
	return typ
}

// parseTypeInto appends the nodes of one type to parent: an optional
// ANNOTATIONS, the element type and one ARRAY_DECLARATOR per dimension.
func (p *Parser) parseTypeInto(parent ast.Node) {
	p.add(parent, p.parseAnnotationsIfAny())
	switch {
	case isPrimitive(p.peek().Kind) || p.check(ast.LiteralVoid):
		p.add(parent, p.take())
	case p.check(ast.Ident):
		p.parseClassTypeInto(parent)
	default:
		p.errorf("expected type, got %s", p.peek())
		return
	}
	for p.check(ast.Lbrack) && p.peekN(1).Kind == ast.Rbrack {
		p.addDimension(parent)
	}
}

// addDimension consumes [] and appends it to parent as ARRAY_DECLARATOR
// holding the RBRACK. The element type stays a preceding sibling.
func (p *Parser) addDimension(parent ast.Node) {
	arr := p.leaf(ast.ArrayDeclarator)
	p.add(arr, p.expect(ast.Rbrack))
	p.add(parent, arr)
}

// parseClassTypeInto appends a possibly qualified, possibly parameterized
// class type to parent: IDENT or DOT chain followed by TYPE_ARGUMENTS.
func (p *Parser) parseClassTypeInto(parent ast.Node) {
	p.add(parent, p.parseAnnotationsIfAny())
	name := p.expectIdent()
	var args ast.Node
	if p.check(ast.Lt) {
		args = p.parseTypeArguments()
	}
	for p.check(ast.Dot) && (p.peekN(1).Kind == ast.Ident || p.peekN(1).Kind == ast.At) {
		dot := p.take()
		p.add(dot, name, args, p.parseAnnotationsIfAny(), p.expectIdent())
		name, args = dot, ast.Node{}
		if p.check(ast.Lt) {
			args = p.parseTypeArguments()
		}
	}
	p.add(parent, name, args)
}
