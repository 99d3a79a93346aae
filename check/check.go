// Package check defines style checks over Java syntax trees and runs them.
//
// A check declares the node kinds it is interested in. The [Walker]
// traverses a tree once and calls Visit and Leave of every check for each
// node of those kinds, bracketed by Begin and End. A check that fails on a
// file, by returning an error or panicking, is dropped for the rest of
// that file and reported as an internal error; the other checks and files
// are not affected.
package check

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dhamidi/javalint/java/ast"
)

// Check is one rule evaluated over a file.
type Check interface {
	Name() string
	// Kinds returns the node kinds passed to Visit and Leave. A nil slice
	// means every kind.
	Kinds() []ast.Kind
	Begin(ctx *Context) error
	Visit(n ast.Node) error
	Leave(n ast.Node) error
	End() error
}

// CommentAware is implemented by checks that need comment nodes in the
// tree they are given.
type CommentAware interface {
	NeedsComments() bool
}

func needsComments(c Check) bool {
	ca, ok := c.(CommentAware)
	return ok && ca.NeedsComments()
}

// Base provides no-op implementations of the Check callbacks and keeps the
// context of the current file. Checks embed it and override what they
// need; an overriding Begin must call Base.Begin.
type Base struct {
	Ctx *Context
}

func (b *Base) Kinds() []ast.Kind        { return nil }
func (b *Base) Begin(ctx *Context) error { b.Ctx = ctx; return nil }
func (b *Base) Visit(ast.Node) error     { return nil }
func (b *Base) Leave(ast.Node) error     { return nil }
func (b *Base) End() error               { return nil }

// Report records a violation at n.
func (b *Base) Report(n ast.Node, format string, args ...any) {
	b.Ctx.Report(n, format, args...)
}

// File is a parsed source file.
type File struct {
	Name   string
	Source []byte
	Tree   *ast.Tree
}

// Context connects one check to the file it is checking.
type Context struct {
	File     *File
	check    string
	severity Severity
	out      *[]Violation
}

// NewContext returns a context that appends the violations of the named
// check to out.
func NewContext(file *File, check string, severity Severity, out *[]Violation) *Context {
	return &Context{File: file, check: check, severity: severity, out: out}
}

// Report records a violation at the position of n.
func (c *Context) Report(n ast.Node, format string, args ...any) {
	c.ReportAt(n.Line(), n.Column(), format, args...)
}

// ReportAt records a violation at line and column.
func (c *Context) ReportAt(line, column int, format string, args ...any) {
	*c.out = append(*c.out, Violation{
		File:     c.File.Name,
		Line:     line,
		Column:   column,
		Severity: c.severity,
		Check:    c.check,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Violation is one reported problem.
type Violation struct {
	File     string   `json:"file" yaml:"file"`
	Line     int      `json:"line" yaml:"line"`
	Column   int      `json:"column" yaml:"column"`
	Severity Severity `json:"severity" yaml:"severity"`
	Check    string   `json:"check" yaml:"check"`
	Message  string   `json:"message" yaml:"message"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s:%d:%d: [%s] %s [%s]", v.File, v.Line, v.Column, v.Severity, v.Message, v.Check)
}

// InternalError returns the violation recorded when check fails on a file.
// at is the node being processed, if any.
func InternalError(file, check string, at ast.Node, err error) Violation {
	line, column := 1, 1
	if !at.IsZero() {
		line, column = at.Line(), at.Column()
	}
	return Violation{
		File:     file,
		Line:     line,
		Column:   column,
		Severity: Error,
		Check:    check,
		Message:  "internal error: " + err.Error(),
	}
}

// SortViolations orders violations by file, position and check name.
func SortViolations(vs []Violation) {
	slices.SortStableFunc(vs, func(a, b Violation) int {
		if c := strings.Compare(a.File, b.File); c != 0 {
			return c
		}
		if a.Line != b.Line {
			return a.Line - b.Line
		}
		if a.Column != b.Column {
			return a.Column - b.Column
		}
		return strings.Compare(a.Check, b.Check)
	})
}

// Severity ranks violations.
type Severity int

const (
	Ignore Severity = iota
	Info
	Warning
	Error
)

var severityNames = [...]string{
	Ignore:  "ignore",
	Info:    "info",
	Warning: "warning",
	Error:   "error",
}

func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return fmt.Sprintf("Severity(%d)", int(s))
	}
	return severityNames[s]
}

// ParseSeverity parses a severity name, ignoring case.
func ParseSeverity(name string) (Severity, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for s, n := range severityNames {
		if n == name {
			return Severity(s), nil
		}
	}
	return 0, ast.InvalidArgument("unknown severity %q", name)
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
