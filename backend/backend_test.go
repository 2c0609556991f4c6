package backend

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourceKind_String(t *testing.T) {
	assert.Equal(t, "internal", SourceInternal.String())
	assert.Equal(t, "text", SourceText.String())
	assert.Equal(t, "unknown", SourceKind(9).String())
}

func TestSearchPath(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()
	missing := filepath.Join(first, "missing")

	t.Setenv(PathEnv(), second)

	assert.Equal(t, []string{first, second}, SearchPath(first, missing))
}

func TestSearchPath_Empty(t *testing.T) {
	t.Setenv(PathEnv(), "")

	assert.Empty(t, SearchPath())
}

func TestPathEnv(t *testing.T) {
	assert.Equal(t, "LITCALC_PATH", PathEnv())
}
