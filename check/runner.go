package check

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/javalint/java/parser"
)

// SyntaxErrorCheck is the check name of violations reporting parse
// errors. Files with parse errors are not checked further.
const SyntaxErrorCheck = "SyntaxError"

// Spec selects a registered check and configures it.
type Spec struct {
	Name       string
	Severity   Severity
	Properties Properties
}

// Runner parses files and runs a set of checks over each of them.
type Runner struct {
	Registry *Registry
	Specs    []Spec
	// Jobs bounds the number of files checked concurrently. Zero means
	// GOMAXPROCS.
	Jobs int
}

// Validate reports whether every spec names a registered check that
// accepts its properties.
func (r *Runner) Validate() error {
	var errs []error
	for _, s := range r.Specs {
		if _, err := r.Registry.New(s.Name, s.Properties); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Run checks every file in paths and returns all violations, sorted. Files
// that cannot be read abort the run.
func (r *Runner) Run(ctx context.Context, paths []string) ([]Violation, error) {
	results := make([][]Violation, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	jobs := r.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g.SetLimit(jobs)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			src, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			vs, err := r.CheckSource(path, src)
			if err != nil {
				return err
			}
			results[i] = vs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []Violation
	for _, vs := range results {
		all = append(all, vs...)
	}
	SortViolations(all)
	return all, nil
}

// CheckSource parses src and runs fresh instances of the checks over it.
// The error is non-nil only when a check cannot be created.
func (r *Runner) CheckSource(name string, src []byte) ([]Violation, error) {
	var plain, withComments []Configured
	for _, s := range r.Specs {
		if s.Severity == Ignore {
			continue
		}
		c, err := r.Registry.New(s.Name, s.Properties)
		if err != nil {
			return nil, err
		}
		cfg := Configured{Check: c, Severity: s.Severity}
		if needsComments(c) {
			withComments = append(withComments, cfg)
		} else {
			plain = append(plain, cfg)
		}
	}

	var out []Violation
	for _, group := range []struct {
		checks []Configured
		opts   []parser.Option
	}{
		{plain, nil},
		{withComments, []parser.Option{parser.WithComments()}},
	} {
		if len(group.checks) == 0 {
			continue
		}
		tree, err := parser.ParseFile(name, src, group.opts...)
		if err != nil {
			log.Debugf("skipping %s: %s", name, err)
			return syntaxViolations(name, err), nil
		}
		file := &File{Name: name, Source: src, Tree: tree}
		out = append(out, NewWalker(group.checks...).Walk(file)...)
	}
	SortViolations(out)
	return out, nil
}

func syntaxViolations(file string, err error) []Violation {
	var errs []error
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	} else {
		errs = []error{err}
	}
	out := make([]Violation, 0, len(errs))
	for _, e := range errs {
		v := Violation{File: file, Line: 1, Column: 1, Severity: Error, Check: SyntaxErrorCheck, Message: e.Error()}
		var se *parser.SyntaxError
		if errors.As(e, &se) {
			v.Line, v.Column, v.Message = se.Pos.Line, se.Pos.Column, se.Message
		}
		out = append(out, v)
	}
	return out
}
