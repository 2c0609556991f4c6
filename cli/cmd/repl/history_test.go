package repl

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)

	h, err := OpenHistory(path)
	require.NoError(t, err)

	for _, line := range []string{"1 + 1", "  ", "1 + 1", "let x = 2 m", "1 + 1"} {
		require.NoError(t, h.Add(line))
	}

	assert.Equal(t, 3, h.Len())
	require.NoError(t, h.Close())

	h, err = OpenHistory(path)
	require.NoError(t, err)

	t.Cleanup(func() { _ = h.Close() })

	var got []string

	for i := range h.Len() {
		line, err := h.At(i)
		require.NoError(t, err)

		got = append(got, line)
	}

	assert.Equal(t, []string{"1 + 1", "let x = 2 m", "1 + 1"}, got)
}

func TestHistory_OutOfBounds(t *testing.T) {
	var h History

	_, err := h.At(0)
	require.ErrorIs(t, err, ErrOutOfBounds)

	_, err = h.At(-1)
	require.ErrorIs(t, err, ErrOutOfBounds)
}

func TestHistory_InMemory(t *testing.T) {
	var h History

	require.NoError(t, h.Add("x"))
	require.NoError(t, h.Add("y"))

	line, err := h.At(1)
	require.NoError(t, err)
	assert.Equal(t, "y", line)
	assert.NoError(t, h.Close())
}

func TestOpenHistory_BadPath(t *testing.T) {
	_, err := OpenHistory(filepath.Join(t.TempDir(), "missing", baseHistory))
	require.ErrorIs(t, err, ErrHistory)
}
