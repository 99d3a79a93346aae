package parser

import (
	"testing"

	"github.com/dhamidi/javalint/java/ast"
)

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		ident string
		want  ast.Kind
	}{
		{"class", ast.LiteralClass},
		{"static", ast.LiteralStatic},
		{"strictfp", ast.Strictfp},
		{"throws", ast.LiteralThrows},
		{"true", ast.LiteralTrue},
		{"null", ast.LiteralNull},
		{"myVariable", ast.Ident},
		{"when", ast.Ident},
		{"permits", ast.Ident},
		{"", ast.Ident},
	}

	for _, tt := range tests {
		t.Run(tt.ident, func(t *testing.T) {
			if got := LookupKeyword(tt.ident); got != tt.want {
				t.Errorf("LookupKeyword(%q) = %v, want %v", tt.ident, got, tt.want)
			}
		})
	}
}

func TestPositionString(t *testing.T) {
	tests := []struct {
		pos  Position
		want string
	}{
		{Position{File: "Test.java", Line: 5, Column: 10}, "Test.java:5:10"},
		{Position{Line: 1, Column: 1}, "1:1"},
	}
	for _, tt := range tests {
		if got := tt.pos.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestTokenString(t *testing.T) {
	tests := []struct {
		tok  Token
		want string
	}{
		{Token{Kind: ast.LiteralClass, Literal: "class"}, `"class"`},
		{Token{Kind: ast.EOF}, "end of file"},
		{Token{Literal: "#"}, `illegal "#"`},
	}
	for _, tt := range tests {
		if got := tt.tok.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestModifierClassification(t *testing.T) {
	for _, k := range []ast.Kind{ast.LiteralPublic, ast.Final, ast.Abstract, ast.LiteralDefault, ast.LiteralNonSealed} {
		if !isModifier(k) {
			t.Errorf("isModifier(%v) = false", k)
		}
	}
	for _, k := range []ast.Kind{ast.LiteralClass, ast.Ident, ast.LiteralInt} {
		if isModifier(k) {
			t.Errorf("isModifier(%v) = true", k)
		}
	}
}
