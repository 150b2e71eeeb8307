// Package paths resolves the configuration and data directories.
//
// Configuration (config.yaml, session.yaml) and data (words.jsonl, the
// SQLite cache, the badger directory) live apart so that the session stays
// per user while data directories can be pointed anywhere.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppName names the per-platform directories.
const AppName = "wordbubble"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "WORDBUBBLE_CONFIG_DIR"
	EnvDataDir   = "WORDBUBBLE_DATA_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	goos          string
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	goos:          runtime.GOOS,
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/wordbubble (fallback ~/.config/wordbubble)
// macOS:   ~/Library/Application Support/wordbubble
// Windows: %APPDATA%/wordbubble
func DefaultConfigDir() (string, error) {
	return platformAppDir("XDG_CONFIG_HOME", ".config")
}

// DefaultDataDir returns the platform default data directory.
//
// Linux:   $XDG_DATA_HOME/wordbubble (fallback ~/.local/share/wordbubble)
// macOS and Windows: same as DefaultConfigDir.
func DefaultDataDir() (string, error) {
	return platformAppDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

// platformAppDir applies the XDG rules on linux and os.UserConfigDir elsewhere.
func platformAppDir(xdgEnv, homeRel string) (string, error) {
	if platformDir.goos != "linux" {
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, AppName), nil
	}
	if xdg := os.Getenv(xdgEnv); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, homeRel, AppName), nil
}

// ResolveConfigDir returns the configuration directory:
// flag > WORDBUBBLE_CONFIG_DIR > DefaultConfigDir(). Explicit values are
// made absolute.
func ResolveConfigDir(flag string) (string, error) {
	if dir := firstSet(flag, os.Getenv(EnvConfigDir)); dir != "" {
		return filepath.Abs(dir)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the data directory:
// flag > data_dir from config.yaml > WORDBUBBLE_DATA_DIR > DefaultDataDir().
// Explicit values are made absolute.
func ResolveDataDir(flag, configYAMLValue string) (string, error) {
	if dir := firstSet(flag, configYAMLValue, os.Getenv(EnvDataDir)); dir != "" {
		return filepath.Abs(dir)
	}
	return DefaultDataDir()
}

func firstSet(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
