package javadoc

import (
	"strings"
	"unicode"
)

// Tag is an inline tag such as {@inheritDoc} or a block tag such as
// @param found in doc comment content.
type Tag struct {
	Name   string
	Inline bool
	// Text is the tag argument: the balanced content of an inline tag, or
	// the rest of the line for a block tag.
	Text string
	// Line is the line of the tag, counted from 0 at the line holding
	// the opening "/**".
	Line int
}

// Tags scans the content of a doc comment for inline and block tags, in
// order of appearance. Inline tags nested in the argument of another
// inline tag are not reported.
func Tags(content string) []Tag {
	s := &tagScanner{input: []rune(content)}
	s.end = len(s.input)
	return s.scan()
}

// HasInlineTag reports whether content contains the inline tag name.
func HasInlineTag(content, name string) bool {
	for _, tag := range Tags(content) {
		if tag.Inline && tag.Name == name {
			return true
		}
	}
	return false
}

// HasInheritDoc reports whether a doc comment content contains
// {@inheritDoc}.
func HasInheritDoc(content string) bool {
	return HasInlineTag(content, "inheritDoc")
}

type tagScanner struct {
	input []rune
	pos   int
	end   int
	line  int
}

func (s *tagScanner) scan() []Tag {
	var tags []Tag
	// The first rune is the '*' of "/**".
	if s.peek() == '*' {
		s.advance(1)
	}
	atLineStart := false
	for s.pos < s.end {
		ch := s.peek()
		switch {
		case ch == '\n' || ch == '\r':
			s.newline()
			s.skipLinePrefix()
			atLineStart = true
			continue
		case ch == '{' && s.peekAt(1) == '@':
			if tag, ok := s.inlineTag(); ok {
				tags = append(tags, tag)
			}
		case ch == '@' && atLineStart:
			if tag, ok := s.blockTag(); ok {
				tags = append(tags, tag)
			}
		default:
			s.advance(1)
		}
		atLineStart = false
	}
	return tags
}

func (s *tagScanner) inlineTag() (Tag, bool) {
	line := s.line
	s.advance(2)
	name := s.readTagName()
	if name == "" {
		return Tag{}, false
	}
	s.skipHorizontalWhitespace()
	text := s.readBalancedContent()
	if s.peek() == '}' {
		s.advance(1)
	}
	return Tag{Name: name, Inline: true, Text: text, Line: line}, true
}

func (s *tagScanner) blockTag() (Tag, bool) {
	line := s.line
	s.advance(1)
	name := s.readTagName()
	if name == "" {
		return Tag{}, false
	}
	start := s.pos
	for s.pos < s.end && s.peek() != '\n' && s.peek() != '\r' {
		s.advance(1)
	}
	text := strings.TrimSpace(string(s.input[start:s.pos]))
	// Inline tags in the argument are scanned too.
	s.pos = start
	return Tag{Name: name, Text: text, Line: line}, true
}

// newline consumes one line terminator.
func (s *tagScanner) newline() {
	if s.peek() == '\r' && s.peekAt(1) == '\n' {
		s.advance(1)
	}
	s.advance(1)
	s.line++
}

// skipLinePrefix skips leading whitespace and asterisks at the start of a
// line.
func (s *tagScanner) skipLinePrefix() {
	s.skipHorizontalWhitespace()
	for s.peek() == '*' {
		s.advance(1)
	}
	s.skipHorizontalWhitespace()
}

func (s *tagScanner) peek() rune {
	if s.pos >= s.end {
		return 0
	}
	return s.input[s.pos]
}

func (s *tagScanner) peekAt(offset int) rune {
	pos := s.pos + offset
	if pos >= s.end || pos < 0 {
		return 0
	}
	return s.input[pos]
}

func (s *tagScanner) advance(n int) {
	s.pos += n
	if s.pos > s.end {
		s.pos = s.end
	}
}

func (s *tagScanner) skipHorizontalWhitespace() {
	for s.pos < s.end && (s.peek() == ' ' || s.peek() == '\t') {
		s.advance(1)
	}
}

func (s *tagScanner) readTagName() string {
	start := s.pos
	for s.pos < s.end && isJavaIdentifierPart(s.peek()) {
		s.advance(1)
	}
	return string(s.input[start:s.pos])
}

// readBalancedContent reads up to the '}' closing the current inline
// tag, keeping nested braces. Line prefixes inside the content are
// dropped.
func (s *tagScanner) readBalancedContent() string {
	var sb strings.Builder
	depth := 0
	for s.pos < s.end {
		ch := s.peek()
		switch {
		case ch == '{':
			depth++
		case ch == '}':
			if depth == 0 {
				return strings.TrimSpace(sb.String())
			}
			depth--
		case ch == '\n' || ch == '\r':
			sb.WriteRune('\n')
			s.newline()
			s.skipLinePrefix()
			continue
		}
		sb.WriteRune(ch)
		s.advance(1)
	}
	return strings.TrimSpace(sb.String())
}

func isJavaIdentifierPart(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_' || ch == '$'
}
