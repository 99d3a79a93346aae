package check

import (
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/javalint/java/ast"
	"github.com/dhamidi/javalint/java/astutil"
)

var log = commonlog.GetLogger("javalint.check")

// Configured is a check together with the severity of its violations.
type Configured struct {
	Check    Check
	Severity Severity
}

type entry struct {
	Configured
	kinds  map[ast.Kind]bool
	ctx    *Context
	failed bool
}

func (e *entry) wants(k ast.Kind) bool {
	return !e.failed && (e.kinds == nil || e.kinds[k])
}

// Walker dispatches the nodes of one tree to a set of checks.
type Walker struct {
	entries []*entry
}

func NewWalker(checks ...Configured) *Walker {
	w := &Walker{}
	for _, c := range checks {
		e := &entry{Configured: c}
		if kinds := c.Check.Kinds(); kinds != nil {
			e.kinds = make(map[ast.Kind]bool, len(kinds))
			for _, k := range kinds {
				e.kinds[k] = true
			}
		}
		w.entries = append(w.entries, e)
	}
	return w
}

// Walk runs every check over file and returns the violations found,
// including one internal error per failed check.
func (w *Walker) Walk(file *File) []Violation {
	var out []Violation
	for _, e := range w.entries {
		e.failed = false
		e.ctx = NewContext(file, e.Check.Name(), e.Severity, &out)
		w.call(e, file, ast.Node{}, func() error { return e.Check.Begin(e.ctx) })
	}

	astutil.Inspect(file.Tree.Root(), func(n ast.Node) bool {
		for _, e := range w.entries {
			if e.wants(n.Kind()) {
				w.call(e, file, n, func() error { return e.Check.Visit(n) })
			}
		}
		return true
	}, func(n ast.Node) {
		for _, e := range w.entries {
			if e.wants(n.Kind()) {
				w.call(e, file, n, func() error { return e.Check.Leave(n) })
			}
		}
	})

	for _, e := range w.entries {
		if !e.failed {
			w.call(e, file, ast.Node{}, e.Check.End)
		}
	}
	return out
}

// call runs fn for one check, converting an error or a panic into an
// internal error violation that disables the check for the file.
func (w *Walker) call(e *entry, file *File, at ast.Node, fn func() error) {
	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v", r)
			}
		}()
		return fn()
	}()
	if err == nil {
		return
	}
	e.failed = true
	log.Errorf("%s failed on %s: %s", e.Check.Name(), file.Name, err)
	*e.ctx.out = append(*e.ctx.out, InternalError(file.Name, e.Check.Name(), at, err))
}
