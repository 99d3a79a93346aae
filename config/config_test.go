package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/javalint/check"
	"github.com/dhamidi/javalint/checks"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func specNamed(specs []check.Spec, name string) (check.Spec, bool) {
	for _, s := range specs {
		if s.Name == name {
			return s, true
		}
	}
	return check.Spec{}, false
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, ".javalint.yaml", `
jobs: 3
severity: info
checks:
  MissingJavadocMethod:
    severity: error
    properties:
      scope: protected
      allowMissingPropertyJavadoc: true
  RequireThis:
    enabled: false
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Jobs)
	assert.Equal(t, path, cfg.Path)

	specs, err := cfg.Specs(checks.NewRegistry())
	require.NoError(t, err)
	assert.Len(t, specs, 7)

	_, ok := specNamed(specs, "RequireThis")
	assert.False(t, ok, "disabled checks are left out")

	javadoc, ok := specNamed(specs, "MissingJavadocMethod")
	require.True(t, ok)
	assert.Equal(t, check.Error, javadoc.Severity)
	scope, err := javadoc.Properties.String("scope", "public")
	require.NoError(t, err)
	assert.Equal(t, "protected", scope)
	allow, err := javadoc.Properties.Bool("allowMissingPropertyJavadoc", false)
	require.NoError(t, err)
	assert.True(t, allow)

	fall, ok := specNamed(specs, "FallThrough")
	require.True(t, ok)
	assert.Equal(t, check.Info, fall.Severity)
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, ".javalint.json", `{"severity": "error", "checks": {"FinalClass": {"enabled": false}}}`)
	cfg, err := Load(path)
	require.NoError(t, err)

	specs, err := cfg.Specs(checks.NewRegistry())
	require.NoError(t, err)
	assert.Len(t, specs, 7)
	for _, s := range specs {
		assert.Equal(t, check.Error, s.Severity)
	}
}

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Jobs)
	assert.Equal(t, "warning", cfg.Severity)
	assert.Equal(t, Default().Severity, cfg.Severity)

	specs, err := cfg.Specs(checks.NewRegistry())
	require.NoError(t, err)
	assert.Len(t, specs, 8)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("JAVALINT_JOBS", "5")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Jobs)
}

func TestFind(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "src", "main")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	want := writeConfig(t, root, ".javalint.yml", "jobs: 1\n")

	got, ok := Find(nested)
	require.True(t, ok)
	assert.Equal(t, want, got)

	cfg, err := LoadDir(nested)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Jobs)
}

func TestInvalidConfig(t *testing.T) {
	reg := checks.NewRegistry()

	tests := []struct {
		name  string
		cfg   Config
		field string
	}{
		{"negative jobs", Config{Jobs: -1, Severity: "warning"}, "jobs"},
		{"bad severity", Config{Severity: "loud"}, "severity"},
		{"unknown check", Config{Severity: "warning", Checks: map[string]CheckConfig{"Nope": {}}}, "checks.Nope"},
		{"bad check severity", Config{Severity: "warning", Checks: map[string]CheckConfig{"FallThrough": {Severity: "loud"}}}, "checks.FallThrough.severity"},
		{"bad property", Config{Severity: "warning", Checks: map[string]CheckConfig{
			"MissingJavadocMethod": {Properties: map[string]any{"scope": "everywhere"}},
		}}, "checks.MissingJavadocMethod.properties"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate(reg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "'"+tt.field+"'")
		})
	}

	err := (&Config{Severity: "warning", Checks: map[string]CheckConfig{"Nope": {}}}).Validate(reg)
	assert.ErrorIs(t, err, check.ErrUnknownCheck)
}

func TestCheckNamesIgnoreCase(t *testing.T) {
	cfg := &Config{Severity: "warning", Checks: map[string]CheckConfig{"requirethis": {Severity: "error"}}}
	specs, err := cfg.Specs(checks.NewRegistry())
	require.NoError(t, err)
	s, ok := specNamed(specs, "RequireThis")
	require.True(t, ok)
	assert.Equal(t, check.Error, s.Severity)
}
