// Package checks holds the built-in checks.
package checks

import "github.com/dhamidi/javalint/check"

// Register adds every built-in check to reg.
func Register(reg *check.Registry) {
	reg.Register("FallThrough", NewFallThrough)
	reg.Register("FinalClass", NewFinalClass)
	reg.Register("InvalidJavadocPosition", NewInvalidJavadocPosition)
	reg.Register("MissingJavadocMethod", NewMissingJavadocMethod)
	reg.Register("MissingOverride", NewMissingOverride)
	reg.Register("RequireThis", NewRequireThis)
	reg.Register("UnusedLocalVariable", NewUnusedLocalVariable)
	reg.Register("VisibilityModifier", NewVisibilityModifier)
}

// NewRegistry returns a registry of the built-in checks.
func NewRegistry() *check.Registry {
	reg := check.NewRegistry()
	Register(reg)
	return reg
}
