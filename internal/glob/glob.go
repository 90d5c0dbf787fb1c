// Package glob provides the pattern-matching predicate used by the walker
// and the pattern resolver.
//
// Matching is segment-aware: `*` and `?` never cross a path separator while
// `**` does. Patterns are tried against a candidate's relative path and its
// base name, so a bare pattern like "dir1" hits a directory named dir1 at any
// depth while "sub/dir1" only hits that exact path.
package glob

import (
	"fmt"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Validate reports the first syntactically invalid pattern, if any.
// Invalid patterns are a configuration error and must fail before any I/O.
func Validate(patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("glob: invalid pattern %q: %w", p, doublestar.ErrBadPattern)
		}
	}
	return nil
}

// Matches reports whether candidate matches pattern. Case folding, when
// requested, is applied to both operands so pattern and candidate fold
// consistently.
func Matches(candidate, pattern string, ignoreCase bool) bool {
	if ignoreCase {
		candidate = strings.ToLower(candidate)
		pattern = strings.ToLower(pattern)
	}
	ok, err := doublestar.Match(pattern, candidate)
	return err == nil && ok
}

// MatchesEntry tries pattern against the slash-separated relative path and
// against its base name.
func MatchesEntry(relPath, pattern string, ignoreCase bool) bool {
	if Matches(relPath, pattern, ignoreCase) {
		return true
	}
	return Matches(path.Base(relPath), pattern, ignoreCase)
}

// MatchesAny reports whether any pattern matches the entry.
func MatchesAny(relPath string, patterns []string, ignoreCase bool) bool {
	for _, p := range patterns {
		if MatchesEntry(relPath, p, ignoreCase) {
			return true
		}
	}
	return false
}
