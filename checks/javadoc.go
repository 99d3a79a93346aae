package checks

import (
	"regexp"

	"github.com/dhamidi/javalint/check"
	"github.com/dhamidi/javalint/java/annotation"
	"github.com/dhamidi/javalint/java/ast"
	"github.com/dhamidi/javalint/java/decl"
	"github.com/dhamidi/javalint/java/javadoc"
	"github.com/dhamidi/javalint/java/visibility"
)

const (
	msgInvalidJavadocPosition = "Javadoc comment is placed in the wrong location."
	msgMissingJavadocMethod   = "Missing a Javadoc comment."
	msgMissingOverride        = "Must include @java.lang.Override annotation when {@inheritDoc} Javadoc tag exists."
	msgInheritDocNotValid     = "The Javadoc {@inheritDoc} tag is not valid at this location."
)

var overrideAnnotations = []string{"Override", "java.lang.Override"}

// InvalidJavadocPosition reports Javadoc comments that do not document a
// type, a member or a package.
type InvalidJavadocPosition struct{ check.Base }

func NewInvalidJavadocPosition(check.Properties) (check.Check, error) {
	return &InvalidJavadocPosition{}, nil
}

func (c *InvalidJavadocPosition) Name() string        { return "InvalidJavadocPosition" }
func (c *InvalidJavadocPosition) Kinds() []ast.Kind   { return []ast.Kind{ast.BlockCommentBegin} }
func (c *InvalidJavadocPosition) NeedsComments() bool { return true }

func (c *InvalidJavadocPosition) Visit(comment ast.Node) error {
	if javadoc.IsDocComment(comment) && !javadoc.IsCorrectPosition(comment) {
		c.Report(comment, msgInvalidJavadocPosition)
	}
	return nil
}

// MissingJavadocMethod reports methods and constructors visible in Scope
// that have no Javadoc comment.
type MissingJavadocMethod struct {
	check.Base
	Scope visibility.Scope
	// ExcludeScope, when set, exempts declarations visible in it.
	ExcludeScope       *visibility.Scope
	AllowedAnnotations []string
	// MinLineCount exempts bodies of at most that many lines. Negative
	// disables the exemption.
	MinLineCount                int
	IgnoreMethodNames           *regexp.Regexp
	AllowMissingPropertyJavadoc bool
}

func NewMissingJavadocMethod(props check.Properties) (check.Check, error) {
	c := &MissingJavadocMethod{}
	name, err := props.String("scope", "public")
	if err != nil {
		return nil, err
	}
	if c.Scope, err = visibility.ParseScope(name); err != nil {
		return nil, err
	}
	if name, err = props.String("excludeScope", ""); err != nil {
		return nil, err
	}
	if name != "" {
		s, err := visibility.ParseScope(name)
		if err != nil {
			return nil, err
		}
		c.ExcludeScope = &s
	}
	if c.AllowedAnnotations, err = props.Strings("allowedAnnotations", overrideAnnotations); err != nil {
		return nil, err
	}
	if c.MinLineCount, err = props.Int("minLineCount", -1); err != nil {
		return nil, err
	}
	if props.Has("ignoreMethodNamesRegex") {
		if c.IgnoreMethodNames, err = props.Pattern("ignoreMethodNamesRegex", ""); err != nil {
			return nil, err
		}
	}
	if c.AllowMissingPropertyJavadoc, err = props.Bool("allowMissingPropertyJavadoc", false); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *MissingJavadocMethod) Name() string { return "MissingJavadocMethod" }

func (c *MissingJavadocMethod) Kinds() []ast.Kind {
	return []ast.Kind{ast.MethodDef, ast.CtorDef, ast.CompactCtorDef, ast.AnnotationFieldDef}
}

func (c *MissingJavadocMethod) NeedsComments() bool { return true }

func (c *MissingJavadocMethod) Visit(n ast.Node) error {
	if !c.inScope(n) {
		return nil
	}
	if _, ok := javadoc.DocCommentOf(n); ok {
		return nil
	}
	allowed, err := annotation.HasAny(n, c.AllowedAnnotations...)
	if err != nil {
		return err
	}
	if allowed || c.isAllowedMissing(n) {
		return nil
	}
	c.Report(n, msgMissingJavadocMethod)
	return nil
}

func (c *MissingJavadocMethod) inScope(n ast.Node) bool {
	own := visibility.Of(n)
	surrounding, inType := visibility.Surrounding(n)
	if !own.IsIn(c.Scope) || (inType && !surrounding.IsIn(c.Scope)) {
		return false
	}
	if c.ExcludeScope == nil {
		return true
	}
	return !own.IsIn(*c.ExcludeScope) || (inType && !surrounding.IsIn(*c.ExcludeScope))
}

func (c *MissingJavadocMethod) isAllowedMissing(n ast.Node) bool {
	name := n.FindFirstToken(ast.Ident).Text()
	switch {
	case c.IgnoreMethodNames != nil && c.IgnoreMethodNames.MatchString(name):
		return true
	case c.AllowMissingPropertyJavadoc && (isGetter(n) || isSetter(n)):
		return true
	case c.MinLineCount >= 0 && n.Is(ast.MethodDef, ast.CtorDef, ast.CompactCtorDef):
		return bodyLines(n) <= c.MinLineCount
	}
	return false
}

// bodyLines counts the lines strictly between the braces of a method body.
func bodyLines(n ast.Node) int {
	body := n.FindFirstToken(ast.Slist)
	if body.IsZero() {
		return 0
	}
	return body.LastChild().Line() - body.Line() - 1
}

var (
	getterName = regexp.MustCompile(`^(is|get)[A-Z]`)
	setterName = regexp.MustCompile(`^set[A-Z]`)
)

// isGetter reports whether n is a method like T getX() { return x; }.
func isGetter(n ast.Node) bool {
	if !n.Is(ast.MethodDef) || !getterName.MatchString(n.FindFirstToken(ast.Ident).Text()) {
		return false
	}
	if n.FindFirstToken(ast.Parameters).HasChildren() || returnsVoid(n) {
		return false
	}
	stmt, ok := singleStatement(n)
	return ok && stmt.Is(ast.LiteralReturn)
}

// isSetter reports whether n is a method like void setX(T x) { this.x = x; }.
func isSetter(n ast.Node) bool {
	if !n.Is(ast.MethodDef) || !setterName.MatchString(n.FindFirstToken(ast.Ident).Text()) {
		return false
	}
	if n.FindFirstToken(ast.Parameters).ChildCountOf(ast.ParameterDef) != 1 || !returnsVoid(n) {
		return false
	}
	stmt, ok := singleStatement(n)
	return ok && stmt.Is(ast.Expr) && stmt.FirstChild().Is(ast.Assign)
}

func returnsVoid(method ast.Node) bool {
	return method.FindFirstToken(ast.Type).FirstChild().Is(ast.LiteralVoid)
}

// singleStatement returns the only statement of a method body.
func singleStatement(method ast.Node) (ast.Node, bool) {
	body := method.FindFirstToken(ast.Slist)
	var stmts []ast.Node
	for s := range body.Children() {
		if !s.Is(ast.Rcurly, ast.Semi, ast.SingleLineComment, ast.BlockCommentBegin) {
			stmts = append(stmts, s)
		}
	}
	if len(stmts) != 1 {
		return ast.Node{}, false
	}
	return stmts[0], true
}

// MissingOverride reports methods documented with {@inheritDoc} that lack
// the @Override annotation, and {@inheritDoc} on methods that cannot
// override anything.
type MissingOverride struct {
	check.Base
	// JavaFiveCompatibility limits the check to classes that extend a
	// class and implement no interface.
	JavaFiveCompatibility bool
}

func NewMissingOverride(props check.Properties) (check.Check, error) {
	compat, err := props.Bool("javaFiveCompatibility", false)
	if err != nil {
		return nil, err
	}
	return &MissingOverride{JavaFiveCompatibility: compat}, nil
}

func (c *MissingOverride) Name() string        { return "MissingOverride" }
func (c *MissingOverride) Kinds() []ast.Kind   { return []ast.Kind{ast.MethodDef} }
func (c *MissingOverride) NeedsComments() bool { return true }

func (c *MissingOverride) Visit(method ast.Node) error {
	doc, ok := javadoc.DocCommentOf(method)
	if !ok || !javadoc.HasInheritDoc(javadoc.Content(doc)) {
		return nil
	}
	if decl.IsStatic(method) || visibility.Of(method) == visibility.Private {
		c.Report(method, msgInheritDocNotValid)
		return nil
	}
	if c.JavaFiveCompatibility && !extendsOnly(method.Parent().Parent()) {
		return nil
	}
	has, err := annotation.HasAny(method, overrideAnnotations...)
	if err != nil {
		return err
	}
	if !has {
		c.Report(method, msgMissingOverride)
	}
	return nil
}

func extendsOnly(owner ast.Node) bool {
	return !owner.FindFirstToken(ast.ExtendsClause).IsZero() &&
		owner.FindFirstToken(ast.ImplementsClause).IsZero() &&
		!owner.Is(ast.LiteralNew)
}
