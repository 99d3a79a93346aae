package checks

import (
	"github.com/dhamidi/javalint/check"
	"github.com/dhamidi/javalint/java/ast"
	"github.com/dhamidi/javalint/java/astutil"
	"github.com/dhamidi/javalint/java/decl"
	"github.com/dhamidi/javalint/java/scope"
	"github.com/dhamidi/javalint/java/visibility"
)

const (
	msgRequireThisVariable = "Reference to instance variable '%s' needs \"%sthis.\"."
	msgRequireThisMethod   = "Method call to '%s' needs \"%sthis.\"."
)

// RequireThis reports references to instance fields and calls to instance
// methods that are not qualified with this.
//
// With ValidateOnlyOverlapping set, only assignments where a parameter or
// local variable hides the field it was probably meant for are reported,
// as in x = x in a setter taking x.
type RequireThis struct {
	check.Base
	CheckFields             bool
	CheckMethods            bool
	ValidateOnlyOverlapping bool

	stack *scope.Stack
}

func NewRequireThis(props check.Properties) (check.Check, error) {
	c := &RequireThis{}
	var err error
	if c.CheckFields, err = props.Bool("checkFields", true); err != nil {
		return nil, err
	}
	if c.CheckMethods, err = props.Bool("checkMethods", true); err != nil {
		return nil, err
	}
	if c.ValidateOnlyOverlapping, err = props.Bool("validateOnlyOverlapping", true); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *RequireThis) Name() string      { return "RequireThis" }
func (c *RequireThis) Kinds() []ast.Kind { return nil }

func (c *RequireThis) Begin(ctx *check.Context) error {
	c.stack = scope.NewStack(scope.Collect(ctx.File.Tree.Root()))
	return c.Base.Begin(ctx)
}

func (c *RequireThis) Visit(n ast.Node) error {
	c.stack.Enter(n)
	if n.Is(ast.Ident) {
		c.processIdent(n)
	}
	return nil
}

func (c *RequireThis) Leave(n ast.Node) error {
	c.stack.Leave(n)
	return nil
}

func (c *RequireThis) processIdent(ident ast.Node) {
	parent := ident.Parent()
	switch parent.Kind() {
	case ast.Dot, ast.MethodDef, ast.MethodRef:
	case ast.MethodCall:
		if !c.CheckMethods || c.ValidateOnlyOverlapping || parent.FirstChild() != ident {
			return
		}
		frame := scope.FindClassFrame(c.stack.Current(), ident, true)
		if frame != nil && frame.HasInstanceMethod(ident) && !frame.HasStaticMethod(ident) && !inStaticContext(ident) {
			c.log(msgRequireThisMethod, ident, frame)
		}
	default:
		if !c.CheckFields {
			return
		}
		if frame := c.fieldWithoutThis(ident); frame != nil {
			c.log(msgRequireThisVariable, ident, frame)
		}
	}
}

// fieldWithoutThis returns the class frame of the instance field ident
// refers to, or would have referred to in an overlapping assignment, when
// that is worth reporting.
func (c *RequireThis) fieldWithoutThis(ident ast.Node) *scope.Frame {
	if _, ok := visibility.Surrounding(ident); !ok {
		return nil
	}
	if ident.Parent().Is(ast.Type, ast.LiteralNew) || isDeclarationToken(ident.Parent()) || refersToLambdaParameter(ident) {
		return nil
	}
	current := c.stack.Current()
	class := scope.FindClassFrame(current, ident, false)
	if class == nil || !class.HasInstanceMember(ident) {
		return nil
	}
	declared := current.Resolve(ident, false)
	switch {
	case declared.IsClass():
		if !c.ValidateOnlyOverlapping && !inStaticContext(ident) {
			return declared
		}
	case isOverlappingAssignment(ident):
		if canAssignField(ident, current, class) && !inStaticContext(ident) {
			return class
		}
	}
	return nil
}

func (c *RequireThis) log(msg string, ident ast.Node, frame *scope.Frame) {
	nearest := c.stack.Current().EnclosingClass()
	switch {
	case frame == nearest:
		c.Report(ident, msg, ident.Text(), "")
	case frame.Kind != scope.AnonymousClassFrame:
		c.Report(ident, msg, ident.Text(), frame.Name.Text()+".")
	}
}

// isDeclarationToken reports whether n declares the IDENT below it.
func isDeclarationToken(n ast.Node) bool {
	return n.Is(ast.VariableDef, ast.CtorDef, ast.CompactCtorDef, ast.MethodDef,
		ast.ClassDef, ast.EnumDef, ast.AnnotationDef, ast.InterfaceDef, ast.RecordDef,
		ast.ParameterDef, ast.RecordComponentDef, ast.EnumConstantDef, ast.AnnotationFieldDef,
		ast.TypeArgument, ast.TypeParameter, ast.Annotation, ast.AnnotationMemberValuePair,
		ast.LabeledStat, ast.LiteralBreak, ast.LiteralContinue,
		ast.ExtendsClause, ast.ImplementsClause, ast.LiteralThrows)
}

// refersToLambdaParameter reports whether ident is, or names, a parameter
// of the innermost lambda around it.
func refersToLambdaParameter(ident ast.Node) bool {
	lambda := astutil.EnclosingOfKind(ident, ast.Lambda)
	if lambda.IsZero() {
		return false
	}
	if first := lambda.FirstChild(); first.Is(ast.Ident) {
		return first.Text() == ident.Text()
	}
	params := lambda.FindFirstToken(ast.Parameters)
	_, found := astutil.FindFirstChild(params, func(p ast.Node) bool {
		name := p.FindFirstToken(ast.Ident)
		return p.Is(ast.ParameterDef) && !name.IsZero() && name.Text() == ident.Text()
	})
	return found
}

// isOverlappingAssignment reports whether ident is assigned a value
// computed from a variable of the same name, or updated by a compound
// assignment.
func isOverlappingAssignment(ident ast.Node) bool {
	op := ident.Parent()
	if op.FirstChild() != ident || !isAssignOperator(op) {
		return false
	}
	if !op.Is(ast.Assign) {
		return true
	}
	found := false
	for rhs := ident.NextSibling(); !rhs.IsZero() && !found; rhs = rhs.NextSibling() {
		astutil.Inspect(rhs, func(n ast.Node) bool {
			if n.Is(ast.Ident) && n.Text() == ident.Text() {
				found = true
			}
			return !found
		}, nil)
	}
	return found
}

func isAssignOperator(n ast.Node) bool {
	return n.Is(ast.Assign, ast.PlusAssign, ast.MinusAssign, ast.StarAssign, ast.DivAssign,
		ast.ModAssign, ast.SrAssign, ast.BsrAssign, ast.SlAssign, ast.BandAssign,
		ast.BxorAssign, ast.BorAssign)
}

// canAssignField reports whether the field named by ident may be assigned
// where ident is: final fields only in a constructor.
func canAssignField(ident ast.Node, current, class *scope.Frame) bool {
	if !class.HasFinalField(ident) {
		return true
	}
	for f := current; f != nil && f != class; f = f.Parent {
		if f.Kind == scope.CtorFrame {
			return true
		}
	}
	return false
}

// inStaticContext reports whether n is inside a static method, a static
// initializer or the initializer of a static field of its class.
func inStaticContext(n ast.Node) bool {
	for p := n.Parent(); !p.IsZero(); p = p.Parent() {
		switch {
		case astutil.IsTypeDeclaration(p.Kind()), scope.IsAnonymousClass(p):
			return false
		case p.Is(ast.StaticInit):
			return true
		case p.Is(ast.MethodDef):
			return decl.IsStatic(p)
		case p.Is(ast.VariableDef) && p.Parent().Is(ast.ObjBlock):
			return decl.IsStatic(p)
		}
	}
	return false
}
