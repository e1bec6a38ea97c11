package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gitrdm/concolite/pkg/concolic/subject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempSource(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "subject.go")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestParseDecorationsExtractsArgsInOrder(t *testing.T) {
	path := writeTempSource(t, `package demo

//concolic:symbolic(a=0, b=1)
func Compare(a, b int) int { return a - b }
`)

	decs, err := ParseDecorations(path)
	require.NoError(t, err)
	require.Len(t, decs, 1)
	assert.Equal(t, "Compare", decs[0].FuncName)
	assert.Equal(t, []subject.ArgSpec{{Name: "a", Seed: 0}, {Name: "b", Seed: 1}}, decs[0].Args)
}

func TestParseDecorationsIgnoresUndecoratedFunctions(t *testing.T) {
	path := writeTempSource(t, `package demo

func Plain(a int) int { return a }
`)

	decs, err := ParseDecorations(path)
	require.NoError(t, err)
	assert.Empty(t, decs)
}

func TestParseDecorationsHandlesMultipleFunctions(t *testing.T) {
	path := writeTempSource(t, `package demo

//concolic:symbolic(x=5)
func First(x int) int { return x }

func Untouched(y int) int { return y }

//concolic:symbolic(k=-3)
func Second(k int) int { return k }
`)

	decs, err := ParseDecorations(path)
	require.NoError(t, err)
	require.Len(t, decs, 2)
	assert.Equal(t, "First", decs[0].FuncName)
	assert.Equal(t, "Second", decs[1].FuncName)
	assert.Equal(t, []subject.ArgSpec{{Name: "k", Seed: -3}}, decs[1].Args)
}

func TestParseDecorationsRejectsMalformedDirective(t *testing.T) {
	path := writeTempSource(t, `package demo

//concolic:symbolic(a)
func Bad(a int) int { return a }
`)

	_, err := ParseDecorations(path)
	assert.Error(t, err)
}

func TestParseDecorationsReportsSyntaxErrors(t *testing.T) {
	path := writeTempSource(t, `package demo

func broken( {
`)

	_, err := ParseDecorations(path)
	assert.Error(t, err)
}
