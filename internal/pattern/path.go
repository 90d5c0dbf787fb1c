package pattern

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Env reads one environment variable, returning "" when unset.
type Env func(key string) string

// IgnoreFilePath resolves the location of the per-user global ignore file.
//
// Precedence: $XDG_CONFIG_HOME/phind/ignore if the variable is set; on
// Windows %APPDATA%/phind/ignore if APPDATA is set; otherwise
// <home>/.config/phind/ignore. The home lookup only runs when the fallback
// branch is taken.
func IgnoreFilePath(getenv Env, goos string, home func() (string, error)) (string, error) {
	if dir := getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "phind", "ignore"), nil
	}
	if goos == "windows" {
		if dir := getenv("APPDATA"); dir != "" {
			return filepath.Join(dir, "phind", "ignore"), nil
		}
	}
	h, err := home()
	if err != nil {
		return "", fmt.Errorf("pattern: resolving home directory: %w", err)
	}
	return filepath.Join(h, ".config", "phind", "ignore"), nil
}

// DefaultIgnoreFilePath resolves the ignore file against the real process
// environment.
func DefaultIgnoreFilePath() (string, error) {
	return IgnoreFilePath(os.Getenv, runtime.GOOS, os.UserHomeDir)
}
