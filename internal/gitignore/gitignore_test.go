package gitignore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExcluded(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte("*.log\nbuild/\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "x.log"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "x.txt"), nil, 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(root, "build"), 0o755))

	m, err := New(root, nil)
	require.NoError(t, err)

	assert.True(t, m.Excluded("x.log", false))
	assert.False(t, m.Excluded("x.txt", false))
	assert.True(t, m.Excluded("build", true))
}

func TestExcludedRootAndEmptyPaths(t *testing.T) {
	m, err := New(t.TempDir(), nil)
	require.NoError(t, err)

	assert.False(t, m.Excluded(".", true))
	assert.False(t, m.Excluded("", true))
}

func TestNoGitignoreFiles(t *testing.T) {
	m, err := New(t.TempDir(), nil)
	require.NoError(t, err)

	assert.False(t, m.Excluded("anything.txt", false))
}
