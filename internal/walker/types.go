// Package walker handles directory traversal and match reporting
package walker

import (
	"sync"
)

// MatchType selects which entry kinds are reported.
type MatchType string

const (
	MatchFiles MatchType = "f"
	MatchDirs  MatchType = "d"
	MatchAny   MatchType = "any"
)

// Match is one reported filesystem entry.
type Match struct {
	Path    string // absolute path
	RelPath string // slash-separated, relative to the walk root ("." for the root)
	IsDir   bool
	Depth   int // walk root is depth 0
}

// Type returns the entry's type tag for output.
func (m Match) Type() string {
	if m.IsDir {
		return "directory"
	}
	return "file"
}

// MatchFunc receives each match in the order entries are visited.
type MatchFunc func(m Match)

// SkippedReason clarifies why an entry was not reported.
type SkippedReason string

const (
	ReasonExcludedPruned  SkippedReason = "Excluded (Directory Pruned)"
	ReasonExcludedRule    SkippedReason = "Excluded (Pattern Rule)"
	ReasonGitignoreRule   SkippedReason = "Excluded (Gitignore Rule)"
	ReasonDepthLimit      SkippedReason = "Filtered (Depth Limit)"
	ReasonTypeMismatch    SkippedReason = "Filtered (Type Mismatch)"
	ReasonNotIncluded     SkippedReason = "Filtered (No Include Match)"
	ReasonReadDirError    SkippedReason = "Skipped (Directory Read Error)"
)

// SkippedItem holds information about a skipped path.
type SkippedItem struct {
	Path   string        `json:"path"`
	Reason SkippedReason `json:"reason"`
	IsDir  bool          `json:"is_dir"`
}

// SkippedTracker records skipped items during a walk
type SkippedTracker struct {
	items []SkippedItem
	mutex sync.Mutex
}

// NewSkippedTracker creates a new SkippedTracker
func NewSkippedTracker(capacity int) *SkippedTracker {
	return &SkippedTracker{
		items: make([]SkippedItem, 0, capacity),
	}
}

// Track adds a skipped item to the tracker
func (st *SkippedTracker) Track(path string, reason SkippedReason, isDir bool) {
	st.mutex.Lock()
	defer st.mutex.Unlock()
	st.items = append(st.items, SkippedItem{Path: path, Reason: reason, IsDir: isDir})
}

// Items returns the tracked skipped items
func (st *SkippedTracker) Items() []SkippedItem {
	st.mutex.Lock()
	defer st.mutex.Unlock()
	return st.items
}
