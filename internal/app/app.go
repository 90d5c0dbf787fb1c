package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/bethropolis/phind/internal/config"
	"github.com/bethropolis/phind/internal/gitignore"
	"github.com/bethropolis/phind/internal/logger"
	"github.com/bethropolis/phind/internal/pattern"
	"github.com/bethropolis/phind/internal/printer"
	"github.com/bethropolis/phind/internal/summary"
	"github.com/bethropolis/phind/internal/walker"
	"github.com/fatih/color"
)

// App encapsulates the main application functionality
type App struct {
	cfg    *config.Config
	log    *logger.Logger
	Output io.Writer
}

// New creates a new App instance
func New(cfg *config.Config) *App {
	// Configure color globally
	color.NoColor = !cfg.UseColors

	// Set up output destination
	var output io.Writer = os.Stdout
	if cfg.OutputFile != "" {
		file, err := os.Create(cfg.OutputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: Failed to create output file: %v\n", err)
			os.Exit(1)
		}
		// Note: file will be closed by main function
		output = file
	}

	// Set up logger
	log := logger.New(os.Stderr, cfg.Verbose, cfg.UseColors)

	// Apply log level if specified (overrides verbose/quiet flags)
	if cfg.LogLevel != "" {
		log.SetLevel(cfg.LogLevel)
	} else if cfg.Quiet {
		log.WithLevel(logger.LevelWarn)
	}

	return &App{
		cfg:    cfg,
		log:    log,
		Output: output,
	}
}

// Run executes the main application logic
func (a *App) Run() {
	startTime := time.Now()

	// Show version and exit if requested
	if a.cfg.ShowVersion {
		fmt.Printf("phind version %s\n", a.cfg.Version)
		os.Exit(0)
	}

	// Handle timeout if specified
	var ctx context.Context
	var cancel context.CancelFunc

	if a.cfg.Timeout > 0 {
		ctx, cancel = context.WithTimeout(context.Background(), a.cfg.Timeout)
	} else {
		ctx, cancel = context.WithCancel(context.Background())
	}
	defer cancel()

	// Helper for info messages, suppressed by quiet flag
	infoLog := func(format string, args ...interface{}) {
		if !a.cfg.Quiet {
			a.log.Info(format, args...)
		}
	}

	if a.log.Verbose() {
		a.log.Debug("Search root: %s", a.cfg.RootDir)
		a.log.Debug("Type filter: %s, max depth: %d, ignore case: %v",
			a.cfg.Type, a.cfg.MaxDepth, a.cfg.IgnoreCase)
		a.log.Debug("Ignore sources: global=%v, gitignore=%v",
			!a.cfg.NoGlobalIgnore, a.cfg.RespectGitignore)
	}

	// --- Directory validation ---
	absRootDir, err := filepath.Abs(a.cfg.RootDir)
	if err != nil {
		a.log.Error("Invalid root directory path '%s': %v", a.cfg.RootDir, err)
		os.Exit(1)
	}

	dirInfo, err := os.Stat(absRootDir)
	if err != nil {
		if os.IsNotExist(err) {
			a.log.Error("Root directory '%s' not found.", absRootDir)
		} else {
			a.log.Error("Could not access root directory '%s': %v", absRootDir, err)
		}
		os.Exit(1)
	}
	if !dirInfo.IsDir() {
		a.log.Error("Specified path '%s' is not a directory.", absRootDir)
		os.Exit(1)
	}

	// --- Build the exclude-pattern resolver ---
	resolverOpts := []pattern.Option{pattern.WithLogger(a.log)}

	if !a.cfg.NoGlobalIgnore {
		ignorePath, pathErr := pattern.DefaultIgnoreFilePath()
		if pathErr != nil {
			a.log.Warn("Could not resolve global ignore file location: %v", pathErr)
		} else {
			a.log.Debug("Global ignore file: %s", ignorePath)
			resolverOpts = append(resolverOpts, pattern.WithIgnoreFile(ignorePath))
		}
	}

	resolver := pattern.New(pattern.DefaultExcludes, resolverOpts...)
	a.log.Debug("Default excludes: %s", resolver.DescribeDefaults())

	if !a.cfg.NoGlobalIgnore {
		resolver.LoadGlobal(false)
	}
	resolver.SetCLI(a.cfg.ExcludePatterns())

	excludes := resolver.Effective()
	includes := a.cfg.IncludePatterns()

	a.log.Debug("Include patterns: %v", includes)
	a.log.Debug("Effective exclude patterns: %v", excludes)

	// --- Set up walk options ---
	walkOptions := []walker.Option{
		walker.WithLogger(a.log),
		walker.WithInclude(includes),
		walker.WithExclude(excludes),
		walker.WithType(a.cfg.MatchType()),
		walker.WithMaxDepth(a.cfg.MaxDepth),
		walker.WithIgnoreCase(a.cfg.IgnoreCase),
		walker.WithContext(ctx),
	}

	if a.cfg.RespectGitignore {
		matcher, gitErr := gitignore.New(absRootDir, a.log)
		if gitErr != nil {
			a.log.Error("Error loading .gitignore rules: %v", gitErr)
			os.Exit(1)
		}
		walkOptions = append(walkOptions, walker.WithPruneFunc(matcher.Excluded))
		infoLog("Respecting repository .gitignore rules.")
	}

	// --- Create the printer ---
	p := printer.New()
	p.WithOutput(a.Output)
	p.WithColors(a.cfg.UseColors)
	p.WithAbsolute(a.cfg.Absolute)

	if a.cfg.JSONOutput {
		a.log.Debug("JSON output mode enabled")
		p.WithJSON(true)
		// Disable colors in JSON mode regardless of other settings
		p.WithColors(false)
	}

	// --- Start the directory walk ---
	infoLog("Searching in: %s", absRootDir)

	count, skippedItems, err := walker.Walk(absRootDir, p.PrintMatch, walkOptions...)
	if err != nil {
		a.log.Error("Critical error during directory walk: %v", err)
		os.Exit(1)
	}

	// Finalize the printer (important for JSON output to close the array)
	p.Finalize()

	// --- Show results summary ---
	summary.DisplayResults(a.log, count, time.Since(startTime), a.cfg.Quiet)

	if a.cfg.ShowSkipped {
		summary.DisplaySkippedItems(a.log, skippedItems, os.Stderr, a.cfg.Quiet)
	}
}
