package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bethropolis/phind/internal/walker"
	"github.com/mattn/go-isatty"
)

// Config holds all application configuration settings
type Config struct {
	// Directory settings
	RootDir string

	// Matching settings
	Name       string // comma-separated include patterns
	Exclude    string // comma-separated exclude patterns (added to defaults and global)
	Type       string // f, d or any
	MaxDepth   int    // negative = unbounded
	IgnoreCase bool

	// Ignore sources
	NoGlobalIgnore   bool
	RespectGitignore bool

	// Output settings
	Absolute   bool
	JSONOutput bool
	OutputFile string
	NoColor    bool
	UseColors  bool

	// Logging settings
	Verbose     bool
	Quiet       bool
	LogLevel    string
	ShowSkipped bool

	// Processing settings
	Timeout time.Duration

	// Version info
	ShowVersion bool
	Version     string
}

// New creates a Config from the process arguments, exiting on usage errors.
func New() *Config {
	cfg, err := Parse(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "phind: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Parse builds a Config from the given command-line arguments. The first
// non-flag argument, if any, is the walk root.
func Parse(args []string) (*Config, error) {
	c := &Config{
		Version: "1.0.0", // Update this when releasing new versions
	}

	fs := flag.NewFlagSet("phind", flag.ContinueOnError)
	fs.StringVar(&c.Name, "name", "", "Include patterns (comma-separated globs, default '*')")
	fs.StringVar(&c.Exclude, "exclude", "", "Extra exclude patterns (comma-separated globs)")
	fs.StringVar(&c.Type, "type", "any", "Entry type to report: f (files), d (directories), any")
	fs.IntVar(&c.MaxDepth, "depth", -1, "Maximum depth to report and descend (negative = unbounded)")
	fs.BoolVar(&c.IgnoreCase, "i", false, "Case-insensitive pattern matching")
	fs.BoolVar(&c.NoGlobalIgnore, "no-global-ignore", false, "Skip the per-user global ignore file")
	fs.BoolVar(&c.RespectGitignore, "gitignore", false, "Also exclude entries matched by repository .gitignore rules")
	fs.BoolVar(&c.Absolute, "absolute", false, "Print absolute paths instead of relative ones")
	fs.BoolVar(&c.JSONOutput, "json", false, "Output results in JSON format")
	fs.StringVar(&c.OutputFile, "output", "", "Output to file instead of stdout")
	fs.BoolVar(&c.NoColor, "no-color", false, "Disable color output")
	fs.BoolVar(&c.Verbose, "verbose", false, "Enable verbose logging (DEBUG, WARN, ERROR)")
	fs.BoolVar(&c.Quiet, "quiet", false, "Suppress INFO messages (only show WARN, ERROR)")
	fs.StringVar(&c.LogLevel, "log-level", "", "Set the logging level (DEBUG, INFO, WARN, ERROR)")
	fs.BoolVar(&c.ShowSkipped, "show-skipped", false, "Show a list of skipped entries and reasons at the end")
	fs.DurationVar(&c.Timeout, "timeout", 0, "Maximum execution time (e.g., '30s', '5m')")
	fs.BoolVar(&c.ShowVersion, "version", false, "Show version information")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	c.RootDir = "."
	if fs.NArg() > 0 {
		c.RootDir = fs.Arg(0)
	}

	switch c.Type {
	case "f", "d", "any":
	default:
		return nil, fmt.Errorf("config: invalid -type %q (want f, d or any)", c.Type)
	}

	// Determine if colors should be used
	c.UseColors = !c.NoColor && isatty.IsTerminal(os.Stdout.Fd()) && c.OutputFile == ""

	return c, nil
}

// IncludePatterns returns the parsed include list, defaulting to the
// catch-all pattern.
func (c *Config) IncludePatterns() []string {
	return splitPatterns(c.Name, []string{"*"})
}

// ExcludePatterns returns the parsed CLI exclude list.
func (c *Config) ExcludePatterns() []string {
	return splitPatterns(c.Exclude, nil)
}

// MatchType maps the -type flag to the walker's match type.
func (c *Config) MatchType() walker.MatchType {
	switch c.Type {
	case "f":
		return walker.MatchFiles
	case "d":
		return walker.MatchDirs
	default:
		return walker.MatchAny
	}
}

func splitPatterns(s string, fallback []string) []string {
	if s == "" {
		return fallback
	}
	var patterns []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			patterns = append(patterns, p)
		}
	}
	if len(patterns) == 0 {
		return fallback
	}
	return patterns
}
