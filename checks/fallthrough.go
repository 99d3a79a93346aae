package checks

import (
	"regexp"

	"github.com/dhamidi/javalint/check"
	"github.com/dhamidi/javalint/java/ast"
	"github.com/dhamidi/javalint/java/flow"
)

const (
	msgFallThrough     = "Fall through from previous branch of the switch statement."
	msgFallThroughLast = "Fall through from the last branch of the switch statement."
)

// FallThrough reports case groups whose statements can complete normally
// and so run into the next group. A comment matching ReliefPattern at the
// end of the group marks an intended fall through.
type FallThrough struct {
	check.Base
	CheckLastCaseGroup bool
	ReliefPattern      *regexp.Regexp
}

func NewFallThrough(props check.Properties) (check.Check, error) {
	last, err := props.Bool("checkLastCaseGroup", false)
	if err != nil {
		return nil, err
	}
	relief, err := props.Pattern("reliefPattern", "falls?[ -]?thr(u|ough)")
	if err != nil {
		return nil, err
	}
	return &FallThrough{CheckLastCaseGroup: last, ReliefPattern: relief}, nil
}

func (c *FallThrough) Name() string        { return "FallThrough" }
func (c *FallThrough) Kinds() []ast.Kind   { return []ast.Kind{ast.CaseGroup} }
func (c *FallThrough) NeedsComments() bool { return true }

func (c *FallThrough) Visit(group ast.Node) error {
	next := group.NextSibling()
	last := !next.Is(ast.CaseGroup)
	if last && !c.CheckLastCaseGroup {
		return nil
	}
	body := group.FindFirstToken(ast.Slist)
	if body.IsZero() {
		return nil
	}
	terminated, err := flow.IsTerminated(body, true, true, flow.Labels{})
	if err != nil {
		return err
	}
	if terminated || c.hasReliefComment(group, next, last) {
		return nil
	}
	if last {
		c.Report(group, msgFallThroughLast)
	} else {
		label := next.FirstChild()
		for label.Is(ast.SingleLineComment, ast.BlockCommentBegin) {
			label = label.NextSibling()
		}
		c.Report(label, msgFallThrough)
	}
	return nil
}

// hasReliefComment looks for a relief comment after the statements of
// group. Such comments precede the next case label, or the closing brace
// of the switch for the last group.
func (c *FallThrough) hasReliefComment(group, next ast.Node, last bool) bool {
	if last {
		rcurly := group.Parent().LastChild()
		for n := rcurly.PreviousSibling(); n.Is(ast.SingleLineComment, ast.BlockCommentBegin); n = n.PreviousSibling() {
			if c.isRelief(n) {
				return true
			}
		}
		return false
	}
	for n := next.FirstChild(); n.Is(ast.SingleLineComment, ast.BlockCommentBegin); n = n.NextSibling() {
		if c.isRelief(n) {
			return true
		}
	}
	return false
}

func (c *FallThrough) isRelief(comment ast.Node) bool {
	return c.ReliefPattern.MatchString(comment.FindFirstToken(ast.CommentContent).Text())
}
