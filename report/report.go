// Package report writes violations for people and for tools.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	"github.com/dhamidi/javalint/check"
	"github.com/dhamidi/javalint/java/ast"
)

// Encoder writes a complete report.
type Encoder interface {
	Encode(violations []check.Violation) error
}

// Names lists the supported formats.
var Names = []string{"plain", "json", "yaml"}

// NewEncoder returns the encoder for the format called name. Colour only
// applies to the plain format.
func NewEncoder(name string, w io.Writer, color bool) (Encoder, error) {
	switch name {
	case "plain", "":
		return &PlainEncoder{w: w, Color: color}, nil
	case "json":
		return &JSONEncoder{w: w}, nil
	case "yaml":
		return &YAMLEncoder{w: w}, nil
	}
	return nil, ast.InvalidArgument("unknown report format %q", name)
}

// ColorEnabled reports whether output to f should be coloured: f is a
// terminal and NO_COLOR is unset.
func ColorEnabled(f *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Summary counts violations by severity.
type Summary struct {
	Files    int `json:"files" yaml:"files"`
	Errors   int `json:"errors" yaml:"errors"`
	Warnings int `json:"warnings" yaml:"warnings"`
	Infos    int `json:"infos" yaml:"infos"`
}

func Summarize(violations []check.Violation) Summary {
	var s Summary
	files := make(map[string]bool)
	for _, v := range violations {
		files[v.File] = true
		switch v.Severity {
		case check.Error:
			s.Errors++
		case check.Warning:
			s.Warnings++
		case check.Info:
			s.Infos++
		}
	}
	s.Files = len(files)
	return s
}

func (s Summary) Total() int { return s.Errors + s.Warnings + s.Infos }

func (s Summary) String() string {
	return fmt.Sprintf("%d violations in %d files (%d errors, %d warnings, %d infos)",
		s.Total(), s.Files, s.Errors, s.Warnings, s.Infos)
}

const (
	ansiReset  = "\x1b[0m"
	ansiBold   = "\x1b[1m"
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiCyan   = "\x1b[36m"
)

// PlainEncoder writes one line per violation followed by a summary.
type PlainEncoder struct {
	w     io.Writer
	Color bool
}

func (e *PlainEncoder) Encode(violations []check.Violation) error {
	for _, v := range violations {
		if _, err := io.WriteString(e.w, e.line(v)+"\n"); err != nil {
			return err
		}
	}
	if len(violations) == 0 {
		return nil
	}
	_, err := fmt.Fprintln(e.w, Summarize(violations))
	return err
}

func (e *PlainEncoder) line(v check.Violation) string {
	if !e.Color {
		return v.String()
	}
	color := ansiCyan
	switch v.Severity {
	case check.Error:
		color = ansiRed
	case check.Warning:
		color = ansiYellow
	}
	return fmt.Sprintf("%s%s:%d:%d:%s %s[%s]%s %s [%s]",
		ansiBold, v.File, v.Line, v.Column, ansiReset,
		color, v.Severity, ansiReset, v.Message, v.Check)
}

// document is the shape of machine-readable reports.
type document struct {
	Violations []check.Violation `json:"violations" yaml:"violations"`
	Summary    Summary           `json:"summary" yaml:"summary"`
}

func newDocument(violations []check.Violation) document {
	if violations == nil {
		violations = []check.Violation{}
	}
	return document{Violations: violations, Summary: Summarize(violations)}
}

type JSONEncoder struct {
	w io.Writer
}

func (e *JSONEncoder) Encode(violations []check.Violation) error {
	enc := json.NewEncoder(e.w)
	enc.SetIndent("", "  ")
	return enc.Encode(newDocument(violations))
}

type YAMLEncoder struct {
	w io.Writer
}

func (e *YAMLEncoder) Encode(violations []check.Violation) error {
	enc := yaml.NewEncoder(e.w)
	enc.SetIndent(2)
	if err := enc.Encode(newDocument(violations)); err != nil {
		return err
	}
	return enc.Close()
}
