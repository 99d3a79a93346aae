package flow

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/javalint/java/ast"
	"github.com/dhamidi/javalint/java/parser"
)

// body parses stmts as the body of a method and returns its SLIST.
func body(t *testing.T, stmts string) ast.Node {
	t.Helper()
	src := "class T { void m() { " + stmts + " } }"
	tree, err := parser.ParseFile("T.java", []byte(src), parser.WithComments())
	require.NoError(t, err, src)
	method := tree.Root().FirstChild().FindFirstToken(ast.ObjBlock).FindFirstToken(ast.MethodDef)
	return method.FindFirstToken(ast.Slist)
}

func TestIsTerminated(t *testing.T) {
	tests := []struct {
		name          string
		stmts         string
		allowBreak    bool
		allowContinue bool
		want          bool
	}{
		{"return", "return;", false, false, true},
		{"throw", "throw new E();", false, false, true},
		{"empty block", "", false, false, false},
		{"expression", "foo();", false, false, false},
		{"return then expression", "return; foo();", false, false, false},
		{"trailing comment", "return; /* done */", false, false, true},
		{"nested block", "{ return; }", false, false, true},
		{"break allowed", "break;", true, false, true},
		{"break not allowed", "break;", false, false, false},
		{"continue allowed", "continue;", false, true, true},
		{"continue not allowed", "continue;", true, false, false},
		{"if else both return", "if (c) { return; } else { return; }", false, false, true},
		{"if without else", "if (c) { return; }", false, false, false},
		{"if else one falls", "if (c) { return; } else { foo(); }", false, false, false},
		{"if else chain", "if (a) return; else if (b) throw e; else return;", false, false, true},
		{"if else chain open", "if (a) return; else if (b) throw e;", false, false, false},
		{"while body ignores break", "while (c) { break; }", true, true, false},
		{"while body returns", "while (c) { return; }", false, false, true},
		{"for body", "for (;;) { throw e; }", false, false, true},
		{"for each body", "for (int x : xs) { continue; }", true, true, false},
		{"do while", "do { return; } while (c);", false, false, true},
		{"do while expression", "do { foo(); } while (c);", false, false, false},
		{"try all branches", "try { return; } catch (A a) { throw a; } catch (B b) { return; }", false, false, true},
		{"try catch falls", "try { return; } catch (A a) { foo(); }", false, false, false},
		{"try finally shortcut", "try { foo(); } finally { return; }", false, false, true},
		{"try finally open", "try { return; } finally { foo(); }", false, false, true},
		{"try with resources", "try (R r = open()) { return; }", false, false, true},
		{"synchronized", "synchronized (this) { return; }", false, false, true},
		{"synchronized break", "synchronized (this) { break; }", true, false, true},
		{"switch all cases", "switch (x) { case 1: return; default: throw e; }", false, false, true},
		{"switch break", "switch (x) { case 1: break; default: return; }", true, false, false},
		{"switch continue", "switch (x) { case 1: continue; default: return; }", false, true, true},
		{"switch fall through", "switch (x) { case 1: case 2: return; default: return; }", false, false, true},
		{"switch no cases", "switch (x) { }", false, false, false},
		{"switch rules", "switch (x) { case 1 -> { return; } default -> throw e; }", false, false, false},
		{"switch missing default body", "switch (x) { case 1: return; default: }", false, false, false},
		{"yield", "int v = switch (x) { default: yield 1; };", false, false, false},
		{"labeled return", "outer: return;", false, false, true},
		{"labeled loop break to own label", "outer: while (c) { break outer; }", false, false, false},
		{"loop body leaves through outer label", "while (c) { if (d) break outer; else return; }", false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IsTerminated(body(t, tt.stmts), tt.allowBreak, tt.allowContinue, Labels{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLabeledJumps(t *testing.T) {
	stmt := body(t, "if (c) break outer; else continue outer;").FirstChild()
	require.Equal(t, ast.LiteralIf, stmt.Kind())

	got, err := IsTerminated(stmt, false, false, Labels{})
	require.NoError(t, err)
	assert.True(t, got, "jumps to a label outside the region terminate")

	got, err = IsTerminated(stmt, false, false, NewLabels("outer"))
	require.NoError(t, err)
	assert.False(t, got, "jumps to an enclosing label do not")

	yield := body(t, "int v = switch (x) { default: yield 1; };")
	var y ast.Node
	for n := yield.FirstChild(); !n.IsZero(); n = n.NextSibling() {
		if n.Is(ast.VariableDef) {
			y = n.FindFirstToken(ast.Assign).FirstChild().FirstChild().FindFirstToken(ast.CaseGroup).FindFirstToken(ast.Slist).FirstChild()
		}
	}
	require.Equal(t, ast.LiteralYield, y.Kind())
	got, err = IsTerminated(y, false, false, Labels{})
	require.NoError(t, err)
	assert.True(t, got)
}

func TestLabelsAreCopiedOnAdd(t *testing.T) {
	base := NewLabels("a")
	extended := base.With("b")

	assert.True(t, extended.Contains("a"))
	assert.True(t, extended.Contains("b"))
	assert.False(t, base.Contains("b"))
	assert.Equal(t, 1, base.Len())
	assert.Equal(t, 2, extended.Len())
	assert.False(t, Labels{}.Contains("a"))
}

func TestEndToEnd(t *testing.T) {
	tree, err := parser.ParseFile("A.java", []byte("class A { void m(){ if(true) return; } }"))
	require.NoError(t, err)
	slist := tree.Root().FirstChild().FindFirstToken(ast.ObjBlock).FindFirstToken(ast.MethodDef).FindFirstToken(ast.Slist)

	got, err := IsTerminated(slist, false, false, Labels{})
	require.NoError(t, err)
	assert.False(t, got)
}

func TestMalformed(t *testing.T) {
	_, err := IsTerminated(ast.Node{}, false, false, Labels{})
	assert.True(t, errors.Is(err, ast.ErrMalformedTree))

	b := ast.NewBuilder("T.java", false)
	loop := b.Token(ast.LiteralWhile, "while", 1, 1)
	b.Append(loop, b.Token(ast.Lparen, "(", 1, 7))
	tree := b.Finish(loop, nil)

	_, err = IsTerminated(tree.Root(), false, false, Labels{})
	require.Error(t, err)
	var malformed *ast.MalformedTreeError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, ast.LiteralWhile, malformed.Node.Kind())

	b = ast.NewBuilder("T.java", false)
	sync := b.Token(ast.LiteralSynchronized, "synchronized", 1, 1)
	tree = b.Finish(sync, nil)
	_, err = IsTerminated(tree.Root(), false, false, Labels{})
	assert.True(t, errors.Is(err, ast.ErrMalformedTree))
}
