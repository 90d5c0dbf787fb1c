// Package pattern manages the exclusion-pattern sources and the memoized
// effective pattern list.
//
// Three ordered sources contribute patterns: hardcoded defaults (fixed at
// construction), the per-user global ignore file, and CLI overrides. The
// effective list is their concatenation in that fixed order, duplicates
// preserved. Any mutation of a source invalidates the memoized list.
package pattern

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/bethropolis/phind/internal/utils"
)

// DefaultExcludes are the patterns every invocation starts with.
var DefaultExcludes = []string{"node_modules", ".git"}

// Resolver holds the three pattern sources and the memoized effective list.
type Resolver struct {
	mu        sync.Mutex
	defaults  []string
	global    []string
	cli       []string
	effective []string // nil until computed, reset to nil on any source change

	ignorePath string
	readFile   func(name string) ([]byte, error)
	logger     utils.Logger
}

// Option is a functional option for configuring the Resolver
type Option func(*Resolver)

// WithLogger sets the diagnostics sink for load warnings
func WithLogger(logger utils.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithIgnoreFile sets the path of the global ignore file
func WithIgnoreFile(path string) Option {
	return func(r *Resolver) {
		r.ignorePath = path
	}
}

// WithReadFile overrides how the global ignore file is read
func WithReadFile(fn func(name string) ([]byte, error)) Option {
	return func(r *Resolver) {
		if fn != nil {
			r.readFile = fn
		}
	}
}

// New creates a Resolver seeded with the given default patterns.
func New(defaults []string, opts ...Option) *Resolver {
	r := &Resolver{
		defaults: append([]string(nil), defaults...),
		readFile: os.ReadFile,
		logger:   &utils.NoopLogger{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetGlobal replaces the global pattern source. The memoized effective list
// is invalidated unconditionally, even if the new value equals the old one.
func (r *Resolver) SetGlobal(patterns []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.global = append([]string(nil), patterns...)
	r.effective = nil
}

// SetCLI replaces the CLI-override pattern source and invalidates the
// memoized effective list.
func (r *Resolver) SetCLI(patterns []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cli = append([]string(nil), patterns...)
	r.effective = nil
}

// LoadGlobal reads the global ignore file into the global source.
//
// When force is false and patterns are already loaded this is a no-op: the
// file is not re-read and the cache is untouched. A missing file yields an
// empty global list silently; any other read failure yields an empty list
// plus one warning carrying the underlying error.
func (r *Resolver) LoadGlobal(force bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !force && len(r.global) > 0 {
		return
	}

	data, err := r.readFile(r.ignorePath)
	if err != nil {
		if !os.IsNotExist(err) {
			r.logger.Warn("pattern: could not read global ignore file %q: %v", r.ignorePath, err)
		}
		r.global = nil
		r.effective = nil
		return
	}

	r.global = ParseIgnoreFile(data)
	r.effective = nil
}

// Effective returns the merged pattern list, computing and memoizing it on
// first use. Repeated calls with no intervening mutation return the same
// slice.
func (r *Resolver) Effective() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.effective == nil {
		merged := make([]string, 0, len(r.defaults)+len(r.global)+len(r.cli))
		merged = append(merged, r.defaults...)
		merged = append(merged, r.global...)
		merged = append(merged, r.cli...)
		r.effective = merged
	}
	return r.effective
}

// DescribeDefaults renders the default patterns as a comma-separated list of
// double-quoted strings, for help and log output.
func (r *Resolver) DescribeDefaults() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.defaults) == 0 {
		return ""
	}
	quoted := make([]string, len(r.defaults))
	for i, p := range r.defaults {
		quoted[i] = strconv.Quote(p)
	}
	return strings.Join(quoted, ", ")
}

// ParseIgnoreFile parses the line-oriented ignore file format: one pattern
// per line, blank lines and #-comments dropped, every other line kept
// verbatim after trimming surrounding whitespace.
func ParseIgnoreFile(data []byte) []string {
	var patterns []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns
}
