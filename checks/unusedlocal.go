package checks

import (
	"github.com/dhamidi/javalint/check"
	"github.com/dhamidi/javalint/java/ast"
	"github.com/dhamidi/javalint/java/decl"
	"github.com/dhamidi/javalint/java/scope"
	"github.com/dhamidi/javalint/java/visibility"
)

const msgUnusedLocal = "Unused local variable '%s'."

// UnusedLocalVariable reports local variables that are never read.
// Assigning to a variable or incrementing it in a statement of its own
// does not read it.
type UnusedLocalVariable struct {
	check.Base
	stack *scope.Stack
	vars  map[ast.NodeID]*decl.Variable
	order []*decl.Variable
}

func NewUnusedLocalVariable(check.Properties) (check.Check, error) {
	return &UnusedLocalVariable{}, nil
}

func (c *UnusedLocalVariable) Name() string { return "UnusedLocalVariable" }

func (c *UnusedLocalVariable) Kinds() []ast.Kind { return nil }

func (c *UnusedLocalVariable) Begin(ctx *check.Context) error {
	c.stack = scope.NewStack(scope.Collect(ctx.File.Tree.Root()))
	c.vars = make(map[ast.NodeID]*decl.Variable)
	c.order = nil
	return c.Base.Begin(ctx)
}

func (c *UnusedLocalVariable) Visit(n ast.Node) error {
	c.stack.Enter(n)
	switch n.Kind() {
	case ast.VariableDef:
		if !visibility.IsLocalVariableDef(n) || n.Parent().Is(ast.ForEachClause) {
			return nil
		}
		v, err := decl.NewVariable(n)
		if err != nil {
			return err
		}
		if v.Name == "_" {
			return nil
		}
		c.vars[v.Ident.ID()] = v
		c.order = append(c.order, v)
	case ast.Ident:
		if !isVariableReference(n) || !isRead(n) {
			return nil
		}
		frame := c.stack.Current().Resolve(n, false)
		if frame == nil || frame.IsClass() {
			return nil
		}
		if v, ok := c.vars[frame.Declaration(n).ID()]; ok {
			v.Used = true
		}
	}
	return nil
}

func (c *UnusedLocalVariable) Leave(n ast.Node) error {
	c.stack.Leave(n)
	return nil
}

func (c *UnusedLocalVariable) End() error {
	for _, v := range c.order {
		if !v.Used {
			c.Report(v.Ident, msgUnusedLocal, v.Name)
		}
	}
	return nil
}

// isVariableReference reports whether ident names a variable, as opposed
// to a type, a member selected through a qualifier, a method, a label or
// the name of a declaration.
func isVariableReference(ident ast.Node) bool {
	parent := ident.Parent()
	switch parent.Kind() {
	case ast.Dot, ast.MethodRef:
		if parent.FirstChild() != ident {
			return false
		}
	case ast.MethodCall:
		if parent.FirstChild() == ident {
			return false
		}
	}
	top := parent
	for top.Is(ast.Dot) {
		top = top.Parent()
	}
	switch top.Kind() {
	case ast.Type, ast.TypeArgument, ast.TypeParameter, ast.TypeUpperBounds, ast.TypeLowerBounds,
		ast.LiteralNew, ast.Import, ast.StaticImport, ast.PackageDef,
		ast.Annotation, ast.AnnotationMemberValuePair, ast.AnnotationFieldDef,
		ast.ExtendsClause, ast.ImplementsClause, ast.LiteralThrows,
		ast.VariableDef, ast.ParameterDef, ast.RecordComponentDef, ast.EnumConstantDef,
		ast.MethodDef, ast.CtorDef, ast.CompactCtorDef,
		ast.ClassDef, ast.InterfaceDef, ast.EnumDef, ast.RecordDef, ast.AnnotationDef,
		ast.LabeledStat, ast.LiteralBreak, ast.LiteralContinue, ast.Lambda:
		return false
	}
	return true
}

// isRead reports whether a variable reference reads the variable.
func isRead(ident ast.Node) bool {
	parent := ident.Parent()
	switch parent.Kind() {
	case ast.Assign:
		return parent.FirstChild() != ident
	case ast.PostInc, ast.PostDec, ast.Inc, ast.Dec:
		return !isStatementExpression(parent.Parent())
	}
	return true
}

// isStatementExpression reports whether expr is evaluated only for its
// effect: an expression statement or a for update.
func isStatementExpression(expr ast.Node) bool {
	if !expr.Is(ast.Expr) {
		return false
	}
	if expr.NextSibling().Is(ast.Semi) {
		return !expr.Parent().Is(ast.LiteralReturn, ast.LiteralThrow, ast.LiteralYield, ast.LiteralAssert)
	}
	list := expr.Parent()
	return list.Is(ast.Elist) && list.Parent().Is(ast.ForIterator, ast.ForInit)
}
