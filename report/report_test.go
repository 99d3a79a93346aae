package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dhamidi/javalint/check"
	"github.com/dhamidi/javalint/java/ast"
)

var sample = []check.Violation{
	{File: "A.java", Line: 3, Column: 5, Severity: check.Error, Check: "FinalClass", Message: "Class A should be declared as final."},
	{File: "A.java", Line: 7, Column: 9, Severity: check.Warning, Check: "FallThrough", Message: "Fall through from previous branch of the switch statement."},
	{File: "B.java", Line: 1, Column: 1, Severity: check.Info, Check: "RequireThis", Message: "Method call to 'm' needs \"this.\"."},
}

func TestPlain(t *testing.T) {
	var buf bytes.Buffer
	enc, err := NewEncoder("plain", &buf, false)
	require.NoError(t, err)
	require.NoError(t, enc.Encode(sample))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "A.java:3:5: [error] Class A should be declared as final. [FinalClass]", lines[0])
	assert.Equal(t, "3 violations in 2 files (1 errors, 1 warnings, 1 infos)", lines[3])
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestPlainColor(t *testing.T) {
	var buf bytes.Buffer
	enc, err := NewEncoder("plain", &buf, true)
	require.NoError(t, err)
	require.NoError(t, enc.Encode(sample[:1]))
	assert.Contains(t, buf.String(), ansiRed+"[error]"+ansiReset)
	assert.Contains(t, buf.String(), "Class A should be declared as final. [FinalClass]")
}

func TestPlainEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&PlainEncoder{w: &buf}).Encode(nil))
	assert.Empty(t, buf.String())
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	enc, err := NewEncoder("json", &buf, true)
	require.NoError(t, err)
	require.NoError(t, enc.Encode(sample))

	var doc document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, sample, doc.Violations)
	assert.Equal(t, Summary{Files: 2, Errors: 1, Warnings: 1, Infos: 1}, doc.Summary)
	assert.Contains(t, buf.String(), `"severity": "warning"`)

	buf.Reset()
	require.NoError(t, enc.Encode(nil))
	assert.Contains(t, buf.String(), `"violations": []`)
}

func TestYAML(t *testing.T) {
	var buf bytes.Buffer
	enc, err := NewEncoder("yaml", &buf, false)
	require.NoError(t, err)
	require.NoError(t, enc.Encode(sample))

	var doc document
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, sample, doc.Violations)
	assert.Equal(t, 3, doc.Summary.Total())
}

func TestUnknownFormat(t *testing.T) {
	_, err := NewEncoder("xml", &bytes.Buffer{}, false)
	assert.ErrorIs(t, err, ast.ErrInvalidArgument)
}
