// Package parser turns Java source into a token-level syntax tree.
//
// # Overview
//
// Every keyword, identifier, literal and punctuation mark of the source
// becomes a node of an [ast.Tree]. Nodes that have no token of their own,
// such as CLASS_DEF, MODIFIERS or EXPR, are imaginary: their text is their
// kind name and their position is taken from the first child.
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Input     │────▶│   Lexer     │────▶│   Parser    │
//	│  (bytes)    │     │  (tokens)   │     │ (ast.Tree)  │
//	└─────────────┘     └─────────────┘     └─────────────┘
//
// # Shapes
//
// Operators own their operands and keywords own their clauses:
//
//	x = a + b;          EXPR(ASSIGN(IDENT x, PLUS(IDENT a, IDENT b))), SEMI
//	foo(1);             EXPR(METHOD_CALL(IDENT foo, ELIST(EXPR(NUM_INT)), RPAREN)), SEMI
//	if (c) return;      LITERAL_IF(LPAREN, EXPR, RPAREN, LITERAL_RETURN(SEMI))
//	int a = 1, b;       VARIABLE_DEF(MODIFIERS, TYPE, IDENT, ASSIGN), COMMA,
//	                    VARIABLE_DEF(MODIFIERS, TYPE, IDENT), SEMI
//
// Parentheses stay in the tree as LPAREN and RPAREN siblings of the
// expression they enclose.
//
// # Comments
//
// Comments are dropped unless [WithComments] is given. When kept, each
// comment becomes a SINGLE_LINE_COMMENT or BLOCK_COMMENT_BEGIN node placed
// immediately before the node made from the token that follows it. The
// comment text is in a COMMENT_CONTENT child; block comments also end in a
// BLOCK_COMMENT_END child.
//
// # Errors
//
// Syntax errors do not stop the parse. The parser records a
// [SyntaxError], skips ahead to a statement or declaration boundary and
// continues, so [Parser.Finish] always returns a tree. The error it
// returns joins every SyntaxError found.
//
// # Example Usage
//
//	p := parser.ParseCompilationUnit(f, parser.WithFile("Main.java"), parser.WithComments())
//	tree, err := p.Finish()
//
// A Parser is not safe for concurrent use.
package parser
