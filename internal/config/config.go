package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	DefaultRepoPath = "/workspace/super-agi-telugu-story-engine"
	DefaultLogLevel = "info"
)

// RepoPath returns the repository path from STORYAUDIT_REPO env var,
// falling back to DefaultRepoPath.
func RepoPath() string {
	if env := os.Getenv("STORYAUDIT_REPO"); env != "" {
		return env
	}
	return DefaultRepoPath
}

// HistoryPath returns the run history database path from STORYAUDIT_HISTORY,
// falling back to $XDG_DATA_HOME/storyaudit/history.db.
func HistoryPath() string {
	if env := os.Getenv("STORYAUDIT_HISTORY"); env != "" {
		return ExpandHome(env)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "storyaudit", "history.db")
}

// LogLevel returns the log level from STORYAUDIT_LOG_LEVEL, falling back to DefaultLogLevel
func LogLevel() string {
	if env := strings.TrimSpace(os.Getenv("STORYAUDIT_LOG_LEVEL")); env != "" {
		return strings.ToLower(env)
	}
	return DefaultLogLevel
}

// ExpandHome expands a leading ~ to the user's home directory
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
