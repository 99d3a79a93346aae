package check

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/javalint/java/ast"
	"github.com/dhamidi/javalint/java/parser"
)

// recorder logs the callbacks it receives.
type recorder struct {
	Base
	kinds  []ast.Kind
	events []string
}

func (r *recorder) Name() string      { return "Recorder" }
func (r *recorder) Kinds() []ast.Kind { return r.kinds }

func (r *recorder) Begin(ctx *Context) error {
	r.events = append(r.events, "begin")
	return r.Base.Begin(ctx)
}

func (r *recorder) Visit(n ast.Node) error {
	r.events = append(r.events, "visit "+n.Text())
	return nil
}

func (r *recorder) Leave(n ast.Node) error {
	r.events = append(r.events, "leave "+n.Text())
	return nil
}

func (r *recorder) End() error {
	r.events = append(r.events, "end")
	return nil
}

// identReporter reports every identifier.
type identReporter struct{ Base }

func (c *identReporter) Name() string      { return "Idents" }
func (c *identReporter) Kinds() []ast.Kind { return []ast.Kind{ast.Ident} }
func (c *identReporter) Visit(n ast.Node) error {
	c.Report(n, "ident %s", n.Text())
	return nil
}

// failing fails on the first method it sees, by panicking or returning
// an error.
type failing struct {
	Base
	panics bool
	visits int
}

func (c *failing) Name() string      { return "Failing" }
func (c *failing) Kinds() []ast.Kind { return []ast.Kind{ast.MethodDef} }
func (c *failing) Visit(n ast.Node) error {
	c.visits++
	if c.panics {
		panic("boom")
	}
	return ast.Malformed(n, "something else")
}

func parseFile(t *testing.T, src string) *File {
	t.Helper()
	tree, err := parser.ParseFile("A.java", []byte(src))
	require.NoError(t, err)
	return &File{Name: "A.java", Source: []byte(src), Tree: tree}
}

func TestWalkerOrder(t *testing.T) {
	file := parseFile(t, "class A { int x; void m() {} }")
	r := &recorder{kinds: []ast.Kind{ast.Ident}}

	out := NewWalker(Configured{Check: r, Severity: Warning}).Walk(file)

	assert.Empty(t, out)
	assert.Equal(t, []string{
		"begin",
		"visit A", "leave A",
		"visit x", "leave x",
		"visit m", "leave m",
		"end",
	}, r.events)
	assert.Same(t, file, r.Ctx.File)
}

func TestWalkerReports(t *testing.T) {
	file := parseFile(t, "class A {\n  int x;\n}")
	out := NewWalker(Configured{Check: &identReporter{}, Severity: Warning}).Walk(file)

	require.Len(t, out, 2)
	assert.Equal(t, Violation{File: "A.java", Line: 2, Column: 7, Severity: Warning, Check: "Idents", Message: "ident x"}, out[1])
	assert.Equal(t, "A.java:2:7: [warning] ident x [Idents]", out[1].String())
}

func TestWalkerIsolatesFailures(t *testing.T) {
	file := parseFile(t, "class A {\n  void m() {}\n  void n() {}\n}")
	panicking := &failing{panics: true}
	erroring := &failing{}
	idents := &identReporter{}

	out := NewWalker(
		Configured{Check: panicking, Severity: Warning},
		Configured{Check: erroring, Severity: Warning},
		Configured{Check: idents, Severity: Info},
	).Walk(file)

	assert.Equal(t, 1, panicking.visits, "a failed check gets no more nodes")
	assert.Equal(t, 1, erroring.visits)

	var internal, reported int
	for _, v := range out {
		switch v.Check {
		case "Failing":
			internal++
			assert.Equal(t, Error, v.Severity)
			assert.Equal(t, 2, v.Line)
			assert.Contains(t, v.Message, "internal error")
		case "Idents":
			reported++
		}
	}
	assert.Equal(t, 2, internal)
	assert.Equal(t, 3, reported, "other checks keep running")
}

func TestInternalErrorWithoutNode(t *testing.T) {
	v := InternalError("A.java", "X", ast.Node{}, errors.New("bad"))
	assert.Equal(t, 1, v.Line)
	assert.Equal(t, 1, v.Column)
	assert.Equal(t, "internal error: bad", v.Message)
}

func testRegistry() *Registry {
	reg := NewRegistry()
	reg.Register("Idents", func(Properties) (Check, error) { return &identReporter{}, nil })
	reg.Register("Recorder", func(props Properties) (Check, error) {
		if _, err := props.Bool("strict", false); err != nil {
			return nil, err
		}
		return &recorder{kinds: []ast.Kind{ast.ClassDef}}, nil
	})
	return reg
}

func TestRegistry(t *testing.T) {
	reg := testRegistry()
	assert.Equal(t, []string{"Idents", "Recorder"}, reg.Names())
	assert.True(t, reg.Has("Idents"))

	a, err := reg.New("Idents", nil)
	require.NoError(t, err)
	b, err := reg.New("Idents", nil)
	require.NoError(t, err)
	assert.NotSame(t, a, b, "every call creates a fresh check")

	_, err = reg.New("Nope", nil)
	assert.ErrorIs(t, err, ErrUnknownCheck)

	_, err = reg.New("Recorder", Properties{"strict": "maybe"})
	assert.Error(t, err)
}

func TestRunner(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "Good.java")
	bad := filepath.Join(dir, "Bad.java")
	require.NoError(t, os.WriteFile(good, []byte("class Good { int x; }"), 0o644))
	require.NoError(t, os.WriteFile(bad, []byte("class Bad {"), 0o644))

	r := &Runner{
		Registry: testRegistry(),
		Specs: []Spec{
			{Name: "Idents", Severity: Warning},
			{Name: "Recorder", Severity: Ignore},
		},
		Jobs: 2,
	}
	require.NoError(t, r.Validate())

	out, err := r.Run(context.Background(), []string{good, bad})
	require.NoError(t, err)
	require.NotEmpty(t, out)

	assert.Equal(t, bad, out[0].File, "sorted by file name")
	assert.Equal(t, SyntaxErrorCheck, out[0].Check)
	for _, v := range out {
		if v.File == good {
			assert.Equal(t, "Idents", v.Check)
		}
	}

	_, err = r.Run(context.Background(), []string{filepath.Join(dir, "Missing.java")})
	assert.Error(t, err)

	r.Specs = append(r.Specs, Spec{Name: "Nope", Severity: Error})
	assert.ErrorIs(t, r.Validate(), ErrUnknownCheck)
}

func TestProperties(t *testing.T) {
	props := Properties{
		"scope":  "protected",
		"strict": "true",
		"names":  "a, b,,c",
		"list":   []any{"x", "y"},
		"regex":  "^[a-z]+$",
		"broken": "(",
	}

	s, err := props.String("scope", "public")
	require.NoError(t, err)
	assert.Equal(t, "protected", s)
	s, err = props.String("missing", "public")
	require.NoError(t, err)
	assert.Equal(t, "public", s)

	b, err := props.Bool("strict", false)
	require.NoError(t, err)
	assert.True(t, b)

	names, err := props.Strings("names", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, names)
	n, err := Properties{"count": "3"}.Int("count", -1)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	n, err = props.Int("missing", -1)
	require.NoError(t, err)
	assert.Equal(t, -1, n)

	list, err := props.Strings("list", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, list)

	assert.True(t, props.Has("SCOPE"), "keys match regardless of case")
	s, err = props.String("Scope", "public")
	require.NoError(t, err)
	assert.Equal(t, "protected", s)

	re, err := props.Pattern("regex", "")
	require.NoError(t, err)
	assert.True(t, re.MatchString("abc"))
	_, err = props.Pattern("broken", "")
	assert.Error(t, err)
}

func TestSeverity(t *testing.T) {
	s, err := ParseSeverity(" Warning ")
	require.NoError(t, err)
	assert.Equal(t, Warning, s)

	_, err = ParseSeverity("fatal")
	assert.ErrorIs(t, err, ast.ErrInvalidArgument)

	var parsed Severity
	require.NoError(t, parsed.UnmarshalText([]byte("error")))
	assert.Equal(t, Error, parsed)
	text, err := Info.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "info", string(text))
}
