package astutil

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/javalint/java/ast"
	"github.com/dhamidi/javalint/java/parser"
)

func parse(t *testing.T, src string, opts ...parser.Option) *ast.Tree {
	t.Helper()
	tree, err := parser.ParseFile("T.java", []byte(src), opts...)
	require.NoError(t, err)
	return tree
}

func find(t *testing.T, root ast.Node, kind ast.Kind, text string) ast.Node {
	t.Helper()
	var found ast.Node
	Inspect(root, func(n ast.Node) bool {
		if found.IsZero() && n.Kind() == kind && (text == "" || n.Text() == text) {
			found = n
		}
		return found.IsZero()
	}, nil)
	require.False(t, found.IsZero(), "no %v %q", kind, text)
	return found
}

func TestFindFirstChild(t *testing.T) {
	class := parse(t, "class A { int x; }").Root().FirstChild()

	ident, ok := FindFirstChild(class, func(n ast.Node) bool { return n.Is(ast.Ident) })
	require.True(t, ok)
	assert.Equal(t, "A", ident.Text())

	calls := 0
	_, ok = FindFirstChild(class, func(n ast.Node) bool {
		calls++
		return n.Is(ast.Modifiers)
	})
	assert.True(t, ok)
	assert.Equal(t, 1, calls, "search stops at the first match")

	_, ok = FindFirstChild(class, func(n ast.Node) bool { return n.Is(ast.MethodDef) })
	assert.False(t, ok)
}

func TestForEachChildOfKind(t *testing.T) {
	body := parse(t, "class A { int a; void m() {} int b; }").Root().FirstChild().FindFirstToken(ast.ObjBlock)

	var names []string
	ForEachChildOfKind(body, ast.VariableDef, func(n ast.Node) {
		names = append(names, n.FindFirstToken(ast.Ident).Text())
	})
	assert.Equal(t, []string{"a", "b"}, names)
}

func TestSiblingSkip(t *testing.T) {
	tree := parse(t, "class A {\n  int x;\n  // one\n  /* two */\n}", parser.WithComments())
	body := tree.Root().FirstChild().FindFirstToken(ast.ObjBlock)
	field := body.FindFirstToken(ast.VariableDef)
	rcurly := body.LastChild()
	require.Equal(t, ast.Rcurly, rcurly.Kind())

	assert.Equal(t, rcurly, NextSiblingSkipComments(field))
	assert.Equal(t, ast.SingleLineComment, field.NextSibling().Kind())
	assert.Equal(t, ast.BlockCommentBegin, NextSiblingSkip(field, ast.SingleLineComment).Kind())
	assert.Equal(t, field, PreviousSiblingSkipComments(rcurly))

	assert.True(t, NextSiblingSkipComments(rcurly).IsZero())
	assert.True(t, PreviousSiblingSkip(body.FirstChild()).IsZero())
}

func TestIsBeforeInSource(t *testing.T) {
	tree := parse(t, "class A {\n  int x = 1, y;\n}")
	root := tree.Root()
	x := find(t, root, ast.Ident, "x")
	y := find(t, root, ast.Ident, "y")
	class := find(t, root, ast.LiteralClass, "")

	assert.True(t, IsBeforeInSource(x, y))
	assert.False(t, IsBeforeInSource(y, x))
	assert.False(t, IsBeforeInSource(x, x))
	assert.True(t, IsBeforeInSource(class, x))
	assert.True(t, IsBeforeInSource(class, y), "ordering is transitive")
	assert.True(t, AreOnSameLine(x, y))
	assert.False(t, AreOnSameLine(class, x))
}

func TestFirstNode(t *testing.T) {
	tree := parse(t, "class A { int f() { return a + b; } }")
	plus := find(t, tree.Root(), ast.Plus, "")

	first := FirstNode(plus)
	assert.Equal(t, ast.Ident, first.Kind())
	assert.Equal(t, "a", first.Text())

	leaf := find(t, tree.Root(), ast.Ident, "b")
	assert.Equal(t, leaf, FirstNode(leaf))
}

func TestInspectOrder(t *testing.T) {
	tree := parse(t, "class A { void m() { x(); } }")

	var entered, left []ast.Node
	Inspect(tree.Root(), func(n ast.Node) bool {
		entered = append(entered, n)
		return true
	}, func(n ast.Node) {
		left = append(left, n)
	})
	require.Len(t, left, len(entered))
	assert.Equal(t, tree.Len(), len(entered))
	assert.Equal(t, tree.Root(), entered[0])
	assert.Equal(t, tree.Root(), left[len(left)-1])

	for i := 1; i < len(entered); i++ {
		assert.Equal(t, entered[i-1].ID()+1, entered[i].ID(), "enter order is preorder")
	}
}

func TestInspectSkipsChildren(t *testing.T) {
	tree := parse(t, "class A { void m() { int x; } int y; }")

	depth, maxDepth := 0, 0
	var idents []string
	Inspect(tree.Root(), func(n ast.Node) bool {
		depth++
		maxDepth = max(maxDepth, depth)
		if n.Is(ast.Ident) {
			idents = append(idents, n.Text())
		}
		return !n.Is(ast.MethodDef)
	}, func(ast.Node) {
		depth--
	})
	assert.Equal(t, 0, depth)
	assert.Equal(t, []string{"A", "y"}, idents)
	assert.Greater(t, maxDepth, 3)
}

func TestFullIdent(t *testing.T) {
	tree := parse(t, "import java.util.Map.*;\nimport a.B;\n@java.lang.Override class A {}")
	root := tree.Root()

	tests := []struct {
		node ast.Node
		want string
	}{
		{root.FirstChild().FindFirstToken(ast.Dot), "java.util.Map.*"},
		{root.FirstChild().NextSibling().FindFirstToken(ast.Dot), "a.B"},
		{find(t, root, ast.Annotation, "").FindFirstToken(ast.Dot), "java.lang.Override"},
		{find(t, root, ast.Ident, "A"), "A"},
	}
	for _, tt := range tests {
		got, err := FullIdent(tt.node)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestFullIdentMalformed(t *testing.T) {
	b := ast.NewBuilder("T.java", false)
	root := b.Imaginary(ast.CompilationUnit)
	dot := b.Token(ast.Dot, ".", 1, 2)
	b.Append(dot, b.Token(ast.Ident, "a", 1, 1))
	b.Append(root, dot)
	tree := b.Finish(root, nil)

	_, err := FullIdent(tree.Root().FirstChild())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ast.ErrMalformedTree))

	var malformed *ast.MalformedTreeError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, ast.Dot, malformed.Node.Kind())
}

func TestParameterClassification(t *testing.T) {
	tree := parse(t, "class A { void m(A this, int x) { Runnable r = () -> {}; F f = (a, b) -> a; G g = c -> c; } }")
	root := tree.Root()

	var params []ast.Node
	Inspect(root, func(n ast.Node) bool {
		if n.Is(ast.ParameterDef) {
			params = append(params, n)
		}
		return true
	}, nil)
	require.Len(t, params, 4)

	assert.True(t, IsReceiverParameter(params[0]))
	assert.False(t, IsReceiverParameter(params[1]))
	assert.False(t, IsLambdaParameter(params[1]))
	assert.True(t, IsLambdaParameter(params[2]))
	assert.True(t, IsLambdaParameter(params[3]))

	c := find(t, root, ast.Ident, "c")
	assert.True(t, IsLambdaParameter(c))
	assert.False(t, IsLambdaParameter(find(t, root, ast.Ident, "x")))
}

func TestEnclosingOfKind(t *testing.T) {
	tree := parse(t, "class A { void m() { int x; } }")
	x := find(t, tree.Root(), ast.Ident, "x")

	assert.Equal(t, ast.MethodDef, EnclosingOfKind(x, ast.MethodDef, ast.CtorDef).Kind())
	assert.Equal(t, ast.ClassDef, EnclosingOfKind(x, ast.ClassDef).Kind())
	assert.True(t, EnclosingOfKind(x, ast.LiteralNew).IsZero())
	assert.True(t, IsTypeDeclaration(ast.RecordDef))
	assert.False(t, IsTypeDeclaration(ast.MethodDef))
	assert.True(t, IsOfType(x, ast.Type, ast.Ident))
}
