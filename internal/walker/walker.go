// Package walker handles directory traversal and match reporting
package walker

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bethropolis/phind/internal/glob"
)

// Walk traverses the directory tree rooted at rootDir depth-first and reports
// matching entries to sink in visit order. It returns the match count and the
// list of skipped items.
//
// Per entry the policy is: exclude, then depth, then type, then include. An
// excluded directory is pruned: none of its descendants are visited. The walk
// root itself is never pruned by its own exclusion. A directory whose
// children cannot be read is treated as empty and recorded as a diagnostic;
// the walk always completes unless the context is cancelled or the patterns
// are invalid.
func Walk(rootDir string, sink MatchFunc, opts ...Option) (int64, []SkippedItem, error) {
	startTime := time.Now()

	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	// Bad patterns are a configuration error: fail before touching the tree.
	if err := glob.Validate(options.Include); err != nil {
		return 0, nil, err
	}
	if err := glob.Validate(options.Exclude); err != nil {
		return 0, nil, err
	}

	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return 0, nil, fmt.Errorf("walker: failed to get absolute path for %q: %w", rootDir, err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return 0, nil, fmt.Errorf("walker: cannot access root %q: %w", absRoot, err)
	}
	if !info.IsDir() {
		return 0, nil, fmt.Errorf("walker: root %q is not a directory", absRoot)
	}

	w := &walk{
		opts:    options,
		sink:    sink,
		tracker: NewSkippedTracker(64),
	}

	options.Logger.Debug("walker.Walk started. Root: %s, MaxDepth: %d, Type: %s, IgnoreCase: %v",
		absRoot, options.MaxDepth, options.Type, options.IgnoreCase)

	err = w.visit(absRoot, ".", 0, true)

	options.Logger.Debug("walker.Walk finished in %s. Matches: %d, Skipped: %d",
		time.Since(startTime).Round(time.Millisecond), w.count, len(w.tracker.Items()))

	return w.count, w.tracker.Items(), err
}

// walk carries the per-call state of one traversal.
type walk struct {
	opts    Options
	sink    MatchFunc
	tracker *SkippedTracker
	count   int64
}

// visit evaluates one entry and, for directories, recurses into its children.
// rel is the slash-separated path relative to the walk root; the root itself
// is visited with rel "." and depth 0.
func (w *walk) visit(path, rel string, depth int, isDir bool) error {
	select {
	case <-w.opts.Context.Done():
		return w.opts.Context.Err()
	default:
	}

	isRoot := depth == 0

	// Exclusion runs first and is both filter and prune. The root is exempt:
	// its own exclusion is never evaluated.
	if !isRoot {
		if glob.MatchesAny(rel, w.opts.Exclude, w.opts.IgnoreCase) {
			if isDir {
				w.opts.Logger.Debug("walker: pruning directory %q", rel)
				w.tracker.Track(rel, ReasonExcludedPruned, true)
			} else {
				w.tracker.Track(rel, ReasonExcludedRule, false)
			}
			return nil
		}
		if w.opts.PruneFn != nil && w.opts.PruneFn(rel, isDir) {
			w.tracker.Track(rel, ReasonGitignoreRule, isDir)
			return nil
		}
	}

	limited := w.opts.MaxDepth != Unbounded

	report := true
	if limited && depth > w.opts.MaxDepth {
		w.tracker.Track(rel, ReasonDepthLimit, isDir)
		report = false
	}
	if report {
		switch {
		case w.opts.Type == MatchFiles && isDir:
			w.tracker.Track(rel, ReasonTypeMismatch, true)
			report = false
		case w.opts.Type == MatchDirs && !isDir:
			w.tracker.Track(rel, ReasonTypeMismatch, false)
			report = false
		}
	}
	if report && !glob.MatchesAny(rel, w.opts.Include, w.opts.IgnoreCase) {
		w.tracker.Track(rel, ReasonNotIncluded, isDir)
		report = false
	}
	if report {
		w.count++
		w.sink(Match{Path: path, RelPath: rel, IsDir: isDir, Depth: depth})
	}

	if !isDir {
		return nil
	}
	// Children sit at depth+1; a directory at exactly MaxDepth may be
	// reported but is not descended into.
	if limited && depth+1 > w.opts.MaxDepth {
		return nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		// Unreadable directories are treated as empty; the walk goes on.
		w.opts.Logger.Error("walker: reading directory %q: %v", rel, err)
		w.tracker.Track(rel, ReasonReadDirError, true)
		return nil
	}

	for _, entry := range entries {
		childRel := entry.Name()
		if !isRoot {
			childRel = rel + "/" + entry.Name()
		}
		if err := w.visit(filepath.Join(path, entry.Name()), childRel, depth+1, entry.IsDir()); err != nil {
			return err
		}
	}
	return nil
}
