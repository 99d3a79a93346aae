// Package flow decides whether Java statements complete abruptly.
package flow

import (
	"github.com/dhamidi/javalint/java/ast"
	"github.com/dhamidi/javalint/java/astutil"
)

// Labels is a set of statement labels. Adding a label returns a new set,
// so a label introduced while analyzing one statement is not seen by its
// siblings.
type Labels struct {
	names map[string]struct{}
}

func NewLabels(names ...string) Labels {
	var l Labels
	for _, name := range names {
		l = l.With(name)
	}
	return l
}

// With returns a copy of l that also contains name.
func (l Labels) With(name string) Labels {
	names := make(map[string]struct{}, len(l.names)+1)
	for n := range l.names {
		names[n] = struct{}{}
	}
	names[name] = struct{}{}
	return Labels{names: names}
}

func (l Labels) Contains(name string) bool {
	_, ok := l.names[name]
	return ok
}

func (l Labels) Len() int { return len(l.names) }

// IsTerminated reports whether control never falls through past the
// statement n.
//
// allowBreak and allowContinue say whether an unlabeled break or continue
// counts as leaving the analyzed region. A labeled one does whenever its
// label is not in labels, the labels enclosing the region.
func IsTerminated(n ast.Node, allowBreak, allowContinue bool, labels Labels) (bool, error) {
	if n.IsZero() {
		return false, ast.Malformed(n, "statement")
	}
	switch n.Kind() {
	case ast.LiteralReturn, ast.LiteralThrow, ast.LiteralYield:
		return true, nil
	case ast.LiteralBreak:
		return allowBreak || escapes(n, labels), nil
	case ast.LiteralContinue:
		return allowContinue || escapes(n, labels), nil
	case ast.Slist:
		return checkSlist(n, allowBreak, allowContinue, labels)
	case ast.LiteralIf:
		return checkIf(n, allowBreak, allowContinue, labels)
	case ast.LiteralFor, ast.LiteralWhile, ast.LiteralDo:
		return checkLoop(n, labels)
	case ast.LiteralTry:
		return checkTry(n, allowBreak, allowContinue, labels)
	case ast.LiteralSwitch:
		return checkSwitch(n, allowContinue, labels)
	case ast.LiteralSynchronized:
		body := n.FindFirstToken(ast.Slist)
		if body.IsZero() {
			return false, ast.Malformed(n, "synchronized block")
		}
		return IsTerminated(body, allowBreak, allowContinue, labels)
	case ast.LabeledStat:
		label := n.FirstChild()
		stmt := n.LastChild()
		if !label.Is(ast.Ident) || stmt == label {
			return false, ast.Malformed(n, "label and statement")
		}
		return IsTerminated(stmt, allowBreak, allowContinue, labels.With(label.Text()))
	}
	return false, nil
}

// escapes reports whether a break or continue names a label outside the
// analyzed region.
func escapes(jump ast.Node, labels Labels) bool {
	label := jump.FindFirstToken(ast.Ident)
	return !label.IsZero() && !labels.Contains(label.Text())
}

// lastStatement returns the last statement of a block, skipping the
// closing brace and comments.
func lastStatement(slist ast.Node) ast.Node {
	last := slist.LastChild()
	if last.Is(ast.Rcurly) {
		last = last.PreviousSibling()
	}
	for last.Is(ast.SingleLineComment, ast.BlockCommentBegin) {
		last = last.PreviousSibling()
	}
	return last
}

func checkSlist(slist ast.Node, allowBreak, allowContinue bool, labels Labels) (bool, error) {
	last := lastStatement(slist)
	if last.IsZero() {
		return false, nil
	}
	return IsTerminated(last, allowBreak, allowContinue, labels)
}

func checkIf(n ast.Node, allowBreak, allowContinue bool, labels Labels) (bool, error) {
	rparen := n.FindFirstToken(ast.Rparen)
	then := astutil.NextSiblingSkipComments(rparen)
	if rparen.IsZero() || then.IsZero() {
		return false, ast.Malformed(n, "then statement")
	}
	elseNode := n.FindFirstToken(ast.LiteralElse)
	if elseNode.IsZero() {
		return false, nil
	}
	ok, err := IsTerminated(then, allowBreak, allowContinue, labels)
	if err != nil || !ok {
		return false, err
	}
	elseStmt := elseNode.LastChild()
	for elseStmt.Is(ast.SingleLineComment, ast.BlockCommentBegin) {
		elseStmt = elseStmt.PreviousSibling()
	}
	return IsTerminated(elseStmt, allowBreak, allowContinue, labels)
}

// checkLoop analyzes a loop body. A bare break or continue in the body
// only affects the loop, so neither counts as termination.
func checkLoop(n ast.Node, labels Labels) (bool, error) {
	var body ast.Node
	if n.Is(ast.LiteralDo) {
		doWhile := n.FindFirstToken(ast.DoWhile)
		if doWhile.IsZero() {
			return false, ast.Malformed(n, "while of do statement")
		}
		body = astutil.PreviousSiblingSkipComments(doWhile)
	} else {
		rparen := n.FindFirstToken(ast.Rparen)
		if rparen.IsZero() {
			return false, ast.Malformed(n, "')'")
		}
		body = astutil.NextSiblingSkipComments(rparen)
	}
	if body.IsZero() {
		return false, ast.Malformed(n, "loop body")
	}
	return IsTerminated(body, false, false, labels)
}

func checkTry(n ast.Node, allowBreak, allowContinue bool, labels Labels) (bool, error) {
	if finally := n.FindFirstToken(ast.LiteralFinally); !finally.IsZero() {
		body := finally.FindFirstToken(ast.Slist)
		if body.IsZero() {
			return false, ast.Malformed(finally, "finally block")
		}
		ok, err := IsTerminated(body, allowBreak, allowContinue, labels)
		if err != nil || ok {
			return ok, err
		}
	}

	body := n.FindFirstToken(ast.Slist)
	if body.IsZero() {
		return false, ast.Malformed(n, "try block")
	}
	ok, err := IsTerminated(body, allowBreak, allowContinue, labels)
	if err != nil || !ok {
		return false, err
	}
	for c := range n.Children() {
		if !c.Is(ast.LiteralCatch) {
			continue
		}
		catchBody := c.FindFirstToken(ast.Slist)
		if catchBody.IsZero() {
			return false, ast.Malformed(c, "catch block")
		}
		ok, err := IsTerminated(catchBody, allowBreak, allowContinue, labels)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

// checkSwitch requires every case group to end its statements abruptly.
// A break only leaves the switch, so it does not count.
func checkSwitch(n ast.Node, allowContinue bool, labels Labels) (bool, error) {
	if n.FindFirstToken(ast.CaseGroup).IsZero() {
		return false, nil
	}
	for group := range n.Children() {
		if !group.Is(ast.CaseGroup) {
			continue
		}
		body := group.FindFirstToken(ast.Slist)
		if body.IsZero() {
			return false, nil
		}
		ok, err := IsTerminated(body, false, allowContinue, labels)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}
