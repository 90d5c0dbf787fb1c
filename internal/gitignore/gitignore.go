// Package gitignore layers repository .gitignore rules onto the walk as an
// optional extra exclusion predicate.
package gitignore

import (
	"fmt"
	"path/filepath"

	"github.com/bethropolis/phind/internal/utils"
	gitignore "github.com/denormal/go-gitignore"
)

// Matcher answers whether the repository's .gitignore rules exclude a path.
type Matcher struct {
	repo   gitignore.GitIgnore
	logger utils.Logger
}

// New loads the .gitignore files under rootDir, mirroring git's recursive
// behavior.
func New(rootDir string, logger utils.Logger) (*Matcher, error) {
	if logger == nil {
		logger = &utils.NoopLogger{}
	}

	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("gitignore: failed to get absolute path for %q: %w", rootDir, err)
	}

	repo, err := gitignore.NewRepository(absRoot)
	if err != nil {
		if repo == nil {
			logger.Warn("gitignore: no .gitignore files loaded for %q: %v", absRoot, err)
			repo = gitignore.New(nil, "", nil)
		} else {
			return nil, fmt.Errorf("gitignore: failed to load repository ignores: %w", err)
		}
	}

	return &Matcher{repo: repo, logger: logger}, nil
}

// Excluded reports whether the repository rules ignore relPath. Negation
// rules (explicit re-includes) win over earlier ignores.
func (m *Matcher) Excluded(relPath string, isDir bool) bool {
	if m == nil || m.repo == nil {
		return false
	}
	if relPath == "" || relPath == "." {
		return false
	}

	unixPath := filepath.ToSlash(relPath)

	ignored := false
	included := false
	// The library has panicked on odd inputs before; a panic here must not
	// take down the walk.
	func() {
		defer func() {
			if r := recover(); r != nil {
				m.logger.Error("gitignore: recovered panic for path %q: %v", relPath, r)
				ignored = false
				included = false
			}
		}()
		ignored = m.repo.Ignore(unixPath)
		if ignored {
			included = m.repo.Include(unixPath)
		}
	}()

	return ignored && !included
}
