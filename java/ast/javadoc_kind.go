package ast

import "fmt"

// JavadocKind identifies a token of the javadoc-comment grammar. It is a
// namespace separate from Kind: equal numbers in the two namespaces are
// unrelated.
type JavadocKind int

const (
	JavadocEOF JavadocKind = iota + 1
	Javadoc
	JavadocTag
	JavadocInlineTag
	JavadocInlineTagStart
	JavadocInlineTagEnd
	JavadocText
	JavadocNewline
	JavadocLeadingAsterisk
	JavadocWS
	ParamLiteral
	ReturnLiteral
	ThrowsLiteral
	ExceptionLiteral
	SeeLiteral
	SinceLiteral
	SerialLiteral
	SerialDataLiteral
	SerialFieldLiteral
	DeprecatedLiteral
	AuthorLiteral
	VersionLiteral
	CodeLiteral
	DocRootLiteral
	InheritDocLiteral
	LinkLiteral
	LinkplainLiteral
	LiteralLiteral
	ValueLiteral
	CustomName
	HTMLElement
	HTMLTag
	Paragraph

	javadocKindCount
)

var javadocKindNames = [javadocKindCount]string{
	JavadocEOF:             "EOF",
	Javadoc:                "JAVADOC",
	JavadocTag:             "JAVADOC_TAG",
	JavadocInlineTag:       "JAVADOC_INLINE_TAG",
	JavadocInlineTagStart:  "JAVADOC_INLINE_TAG_START",
	JavadocInlineTagEnd:    "JAVADOC_INLINE_TAG_END",
	JavadocText:            "TEXT",
	JavadocNewline:         "NEWLINE",
	JavadocLeadingAsterisk: "LEADING_ASTERISK",
	JavadocWS:              "WS",
	ParamLiteral:           "PARAM_LITERAL",
	ReturnLiteral:          "RETURN_LITERAL",
	ThrowsLiteral:          "THROWS_LITERAL",
	ExceptionLiteral:       "EXCEPTION_LITERAL",
	SeeLiteral:             "SEE_LITERAL",
	SinceLiteral:           "SINCE_LITERAL",
	SerialLiteral:          "SERIAL_LITERAL",
	SerialDataLiteral:      "SERIAL_DATA_LITERAL",
	SerialFieldLiteral:     "SERIAL_FIELD_LITERAL",
	DeprecatedLiteral:      "DEPRECATED_LITERAL",
	AuthorLiteral:          "AUTHOR_LITERAL",
	VersionLiteral:         "VERSION_LITERAL",
	CodeLiteral:            "CODE_LITERAL",
	DocRootLiteral:         "DOC_ROOT_LITERAL",
	InheritDocLiteral:      "INHERIT_DOC_LITERAL",
	LinkLiteral:            "LINK_LITERAL",
	LinkplainLiteral:       "LINKPLAIN_LITERAL",
	LiteralLiteral:         "LITERAL_LITERAL",
	ValueLiteral:           "VALUE_LITERAL",
	CustomName:             "CUSTOM_NAME",
	HTMLElement:            "HTML_ELEMENT",
	HTMLTag:                "HTML_TAG",
	Paragraph:              "PARAGRAPH",
}

var javadocKindsByName = make(map[string]JavadocKind, len(javadocKindNames))

func init() {
	for id, name := range javadocKindNames {
		if name == "" {
			continue
		}
		javadocKindsByName[name] = JavadocKind(id)
	}
}

func (k JavadocKind) String() string {
	if name, err := JavadocKindName(k); err == nil {
		return name
	}
	return fmt.Sprintf("JavadocKind(%d)", int(k))
}

// Valid reports whether k is a registered javadoc kind.
func (k JavadocKind) Valid() bool {
	return k > 0 && k < javadocKindCount && javadocKindNames[k] != ""
}

// JavadocKindName returns the registry name for id in the javadoc namespace.
func JavadocKindName(id JavadocKind) (string, error) {
	if !id.Valid() {
		return "", &UnknownKindError{ID: int(id), Javadoc: true, err: ErrUnknownKindID}
	}
	return javadocKindNames[id], nil
}

// JavadocKindByName returns the javadoc id registered under name.
func JavadocKindByName(name string) (JavadocKind, error) {
	if k, ok := javadocKindsByName[name]; ok {
		return k, nil
	}
	return 0, &UnknownKindError{Name: name, Javadoc: true, err: ErrUnknownKindName}
}

// JavadocKinds returns every registered javadoc kind in id order.
func JavadocKinds() []JavadocKind {
	out := make([]JavadocKind, 0, len(javadocKindsByName))
	for id := JavadocKind(1); id < javadocKindCount; id++ {
		if javadocKindNames[id] != "" {
			out = append(out, id)
		}
	}
	return out
}
