package walker

import (
	"context"

	"github.com/bethropolis/phind/internal/utils"
)

// Unbounded disables the depth limit.
const Unbounded = -1

// Options configures the behavior of one Walk call. All fields are read-only
// for the duration of the walk.
type Options struct {
	Include    []string // glob patterns an entry must match to be reported
	Exclude    []string // glob patterns that filter files and prune directories
	Type       MatchType
	MaxDepth   int // Unbounded, or the deepest depth reported
	IgnoreCase bool
	Logger     utils.Logger
	Context    context.Context
	PruneFn    func(relPath string, isDir bool) bool // extra exclusion predicate
}

// defaultOptions returns the default walk options
func defaultOptions() Options {
	return Options{
		Include:    []string{"*"},
		Exclude:    nil,
		Type:       MatchAny,
		MaxDepth:   Unbounded,
		IgnoreCase: false,
		Logger:     &utils.NoopLogger{},
		Context:    context.Background(),
	}
}

// Option is a functional option for configuring Options
type Option func(*Options)

// WithInclude sets the include patterns. An empty list keeps the default
// catch-all ["*"].
func WithInclude(patterns []string) Option {
	return func(opts *Options) {
		if len(patterns) > 0 {
			opts.Include = patterns
		}
	}
}

// WithExclude sets the exclude patterns
func WithExclude(patterns []string) Option {
	return func(opts *Options) {
		opts.Exclude = patterns
	}
}

// WithType restricts which entry kinds are reported
func WithType(t MatchType) Option {
	return func(opts *Options) {
		if t != "" {
			opts.Type = t
		}
	}
}

// WithMaxDepth bounds how deep entries are reported and descended.
// Negative values mean unbounded.
func WithMaxDepth(depth int) Option {
	return func(opts *Options) {
		if depth < 0 {
			opts.MaxDepth = Unbounded
		} else {
			opts.MaxDepth = depth
		}
	}
}

// WithIgnoreCase enables case-insensitive matching
func WithIgnoreCase(enabled bool) Option {
	return func(opts *Options) {
		opts.IgnoreCase = enabled
	}
}

// WithLogger sets a custom logger for the walker
func WithLogger(logger utils.Logger) Option {
	return func(opts *Options) {
		if logger != nil {
			opts.Logger = logger
		}
	}
}

// WithContext sets the context for cancellation
func WithContext(ctx context.Context) Option {
	return func(opts *Options) {
		if ctx != nil {
			opts.Context = ctx
		}
	}
}

// WithPruneFunc adds an extra exclusion predicate evaluated alongside the
// exclude patterns. A true result prunes directories and filters files.
func WithPruneFunc(fn func(relPath string, isDir bool) bool) Option {
	return func(opts *Options) {
		opts.PruneFn = fn
	}
}
