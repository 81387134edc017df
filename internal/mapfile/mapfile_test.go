package mapfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, path string) []string {
	t.Helper()
	var got []string
	require.NoError(t, EachLine(path, func(n int, line []byte) {
		assert.Equal(t, len(got)+1, n)
		got = append(got, string(line))
	}))
	return got
}

func TestEachLine(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "words.txt")
	require.NoError(t, os.WriteFile(p, []byte("a|1\r\n\nb|2"), 0o644))
	assert.Equal(t, []string{"a|1", "", "b|2"}, collect(t, p))

	empty := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	assert.Empty(t, collect(t, empty))

	err := EachLine(filepath.Join(dir, "missing.txt"), func(int, []byte) {})
	assert.ErrorIs(t, err, os.ErrNotExist)
}
