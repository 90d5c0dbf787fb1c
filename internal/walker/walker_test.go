package walker

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTree creates the named entries under a fresh temp dir. Paths ending in
// "/" become directories; everything else becomes an empty file.
func buildTree(t *testing.T, entries ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, entry := range entries {
		path := filepath.Join(root, filepath.FromSlash(strings.TrimSuffix(entry, "/")))
		if strings.HasSuffix(entry, "/") {
			require.NoError(t, os.MkdirAll(path, 0o755))
		} else {
			require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
			require.NoError(t, os.WriteFile(path, nil, 0o644))
		}
	}
	return root
}

// collect runs Walk and returns the reported relative paths in visit order.
func collect(t *testing.T, root string, opts ...Option) ([]string, []SkippedItem) {
	t.Helper()
	var matches []string
	_, skipped, err := Walk(root, func(m Match) {
		matches = append(matches, m.RelPath)
	}, opts...)
	require.NoError(t, err)
	return matches, skipped
}

func TestExcludedDirectoryIsPruned(t *testing.T) {
	root := buildTree(t, "a.txt", "sub/b.txt", "sub/c.log")

	matches, skipped := collect(t, root,
		WithExclude([]string{"sub"}),
		WithMaxDepth(2),
		WithType(MatchFiles),
	)

	assert.Equal(t, []string{"a.txt"}, matches)
	assert.NotContains(t, matches, "sub/b.txt")
	assert.NotContains(t, matches, "sub/c.log")

	// Pruning, not filtering: the descendants were never visited.
	var pruned bool
	for _, item := range skipped {
		assert.NotContains(t, item.Path, "sub/")
		if item.Path == "sub" && item.Reason == ReasonExcludedPruned {
			pruned = true
		}
	}
	assert.True(t, pruned, "sub should be recorded as pruned")
}

func TestExcludeBeatsInclude(t *testing.T) {
	root := buildTree(t, "keep.txt", "drop.txt")

	matches, _ := collect(t, root,
		WithInclude([]string{"*.txt"}),
		WithExclude([]string{"drop.txt"}),
		WithType(MatchFiles),
	)

	assert.Equal(t, []string{"keep.txt"}, matches)
}

func TestExcludeMatchesBaseNameAtAnyDepth(t *testing.T) {
	root := buildTree(t, "dir1/x.txt", "nested/dir1/y.txt", "nested/other/z.txt")

	matches, _ := collect(t, root,
		WithExclude([]string{"dir1"}),
		WithType(MatchFiles),
	)

	assert.Equal(t, []string{"nested/other/z.txt"}, matches)
}

func TestExcludePathQualifiedOnlyHitsThatPath(t *testing.T) {
	root := buildTree(t, "dir1/x.txt", "nested/dir1/y.txt")

	matches, _ := collect(t, root,
		WithExclude([]string{"nested/dir1"}),
		WithType(MatchFiles),
	)

	assert.ElementsMatch(t, []string{"dir1/x.txt"}, matches)
}

func TestIncludeCaseFolding(t *testing.T) {
	root := buildTree(t, "NOTES.TXT")

	matches, _ := collect(t, root,
		WithInclude([]string{"*.txt"}),
		WithType(MatchFiles),
		WithIgnoreCase(true),
	)
	assert.Equal(t, []string{"NOTES.TXT"}, matches)

	matches, _ = collect(t, root,
		WithInclude([]string{"*.txt"}),
		WithType(MatchFiles),
	)
	assert.Empty(t, matches)
}

func TestDirectoryTypeWithExcludes(t *testing.T) {
	root := buildTree(t,
		".hidden/inner/",
		"files/deep/",
		"dir1/sub/",
		"dir1/.cache/",
		"plain.txt",
	)

	matches, _ := collect(t, root,
		WithType(MatchDirs),
		WithExclude([]string{"**/.*", "**/file*"}),
	)

	for _, m := range matches {
		if m == "." {
			continue // the walk root is exempt from exclusion
		}
		base := filepath.Base(m)
		assert.False(t, strings.HasPrefix(base, "."), "unexpected dot entry %q", m)
		assert.False(t, strings.HasPrefix(base, "file"), "unexpected file* entry %q", m)
	}
	assert.NotContains(t, matches, ".hidden/inner")
	assert.NotContains(t, matches, "files/deep")
	assert.Contains(t, matches, "dir1")
	assert.Contains(t, matches, "dir1/sub")
	assert.NotContains(t, matches, "plain.txt")
}

func TestDirectoryAtExactMaxDepth(t *testing.T) {
	root := buildTree(t, "lvl1/lvl2/lvl3/deep.txt")

	matches, _ := collect(t, root, WithMaxDepth(2))

	assert.Contains(t, matches, "lvl1/lvl2")
	for _, m := range matches {
		assert.False(t, strings.HasPrefix(m, "lvl1/lvl2/"), "child of max-depth dir reported: %q", m)
	}
}

func TestRootIsReportedAndNeverPruned(t *testing.T) {
	root := buildTree(t, "a.txt")
	rootBase := filepath.Base(root)

	// Excluding the root's own name must not prune the walk.
	matches, _ := collect(t, root, WithExclude([]string{rootBase}))

	assert.Equal(t, []string{".", "a.txt"}, matches)
}

func TestMatchDepthAndTypeFields(t *testing.T) {
	root := buildTree(t, "sub/b.txt")

	var got []Match
	_, _, err := Walk(root, func(m Match) {
		got = append(got, m)
	})
	require.NoError(t, err)

	byRel := map[string]Match{}
	for _, m := range got {
		byRel[m.RelPath] = m
	}

	require.Contains(t, byRel, ".")
	assert.Equal(t, 0, byRel["."].Depth)
	assert.Equal(t, "directory", byRel["."].Type())

	require.Contains(t, byRel, "sub")
	assert.Equal(t, 1, byRel["sub"].Depth)

	require.Contains(t, byRel, "sub/b.txt")
	assert.Equal(t, 2, byRel["sub/b.txt"].Depth)
	assert.Equal(t, "file", byRel["sub/b.txt"].Type())
	assert.Equal(t, filepath.Join(root, "sub", "b.txt"), byRel["sub/b.txt"].Path)
}

func TestZeroMaxDepthReportsOnlyRoot(t *testing.T) {
	root := buildTree(t, "a.txt", "sub/b.txt")

	matches, _ := collect(t, root, WithMaxDepth(0))

	assert.Equal(t, []string{"."}, matches)
}

func TestDuplicateExcludePatternsAreHarmless(t *testing.T) {
	root := buildTree(t, "a.txt", "skip.log")

	matches, _ := collect(t, root,
		WithExclude([]string{"*.log", "*.log"}),
		WithType(MatchFiles),
	)

	assert.Equal(t, []string{"a.txt"}, matches)
}

func TestInvalidPatternFailsBeforeWalking(t *testing.T) {
	root := buildTree(t, "a.txt")

	count, _, err := Walk(root, func(m Match) {
		t.Errorf("sink called despite invalid pattern: %v", m)
	}, WithInclude([]string{"["}))
	require.Error(t, err)
	assert.Zero(t, count)

	_, _, err = Walk(root, func(Match) {}, WithExclude([]string{"["}))
	require.Error(t, err)
}

func TestMissingRootIsAnError(t *testing.T) {
	_, _, err := Walk(filepath.Join(t.TempDir(), "nope"), func(Match) {})
	require.Error(t, err)
}

func TestFileRootIsAnError(t *testing.T) {
	root := buildTree(t, "a.txt")
	_, _, err := Walk(filepath.Join(root, "a.txt"), func(Match) {})
	require.Error(t, err)
}

func TestUnreadableDirectoryIsRecoverable(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("running as root; permission bits are not enforced")
	}

	root := buildTree(t, "a.txt", "locked/secret.txt")
	locked := filepath.Join(root, "locked")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { os.Chmod(locked, 0o755) })

	matches, skipped := collect(t, root, WithType(MatchFiles))

	// The walk completes; the unreadable directory contributes no children
	// but is recorded as a diagnostic.
	assert.Equal(t, []string{"a.txt"}, matches)

	var recorded bool
	for _, item := range skipped {
		if item.Path == "locked" && item.Reason == ReasonReadDirError {
			recorded = true
		}
	}
	assert.True(t, recorded, "expected a read-error diagnostic for %q", locked)
}

func TestUnreadableDirectoryItselfStillReported(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("running as root; permission bits are not enforced")
	}

	root := buildTree(t, "locked/secret.txt")
	locked := filepath.Join(root, "locked")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { os.Chmod(locked, 0o755) })

	matches, _ := collect(t, root, WithType(MatchDirs))

	assert.Contains(t, matches, "locked")
}

func TestContextCancellationStopsWalk(t *testing.T) {
	root := buildTree(t, "a.txt", "sub/b.txt")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	count, _, err := Walk(root, func(Match) {}, WithContext(ctx))
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, count)
}

func TestPruneFuncFiltersAndPrunes(t *testing.T) {
	root := buildTree(t, "a.txt", "vendor/lib.go", "b.log")

	matches, skipped := collect(t, root,
		WithType(MatchFiles),
		WithPruneFunc(func(relPath string, isDir bool) bool {
			return relPath == "vendor" || strings.HasSuffix(relPath, ".log")
		}),
	)

	assert.ElementsMatch(t, []string{"a.txt"}, matches)

	var reasons []SkippedReason
	for _, item := range skipped {
		if item.Path == "vendor" || item.Path == "b.log" {
			reasons = append(reasons, item.Reason)
		}
	}
	assert.Len(t, reasons, 2)
	for _, r := range reasons {
		assert.Equal(t, ReasonGitignoreRule, r)
	}
}

func TestMatchCountReflectsSinkCalls(t *testing.T) {
	root := buildTree(t, "a.txt", "b.txt", "sub/c.txt")

	var calls int64
	count, _, err := Walk(root, func(Match) { calls++ }, WithType(MatchFiles))
	require.NoError(t, err)
	assert.Equal(t, calls, count)
	assert.EqualValues(t, 3, count)
}
