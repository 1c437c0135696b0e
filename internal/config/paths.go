package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Paths holds the resolved on-disk locations for persistent state. It is
// built once at startup and threaded into every store constructor, so tests
// can point the stores at temporary directories.
type Paths struct {
	ConfigDir string // config.yaml, subscriptions.txt
	CacheDir  string // scrape cache, one JSON file per key
	DataDir   string // history.json, tube.db, tube.log
}

// DefaultPaths returns the standard state directories for the current OS.
func DefaultPaths() Paths {
	switch runtime.GOOS {
	case "windows":
		return Paths{
			ConfigDir: filepath.Join(os.Getenv("APPDATA"), "tube"),
			CacheDir:  filepath.Join(os.Getenv("LOCALAPPDATA"), "tube", "cache"),
			DataDir:   filepath.Join(os.Getenv("LOCALAPPDATA"), "tube"),
		}
	default:
		home, _ := os.UserHomeDir()
		return Paths{
			ConfigDir: filepath.Join(home, ".config", "tube"),
			CacheDir:  filepath.Join(home, ".local", "share", "tube", "cache"),
			DataDir:   filepath.Join(home, ".local", "share", "tube"),
		}
	}
}

// HistoryFile returns the watch history store path.
func (p Paths) HistoryFile() string {
	return filepath.Join(p.DataDir, "history.json")
}

// SubscriptionsFile returns the subscription store path.
func (p Paths) SubscriptionsFile() string {
	return filepath.Join(p.ConfigDir, "subscriptions.txt")
}

// SeenDBFile returns the feed seen-state database path.
func (p Paths) SeenDBFile() string {
	return filepath.Join(p.DataDir, "tube.db")
}

// ConfigFile returns the config file path.
func (p Paths) ConfigFile() string {
	return filepath.Join(p.ConfigDir, "config.yaml")
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
