// Package config provides configuration utilities for the application.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath expands a leading ~ and any $VAR references in a file path.
// Paths the user types in config files or flags pass through here before
// being opened.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}

	return os.ExpandEnv(path)
}

// DefaultDatabasePath returns the database path from configuration,
// falling back to ~/.local/share/quotelens/quotelens.db.
func DefaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "quotelens.db"
	}
	return filepath.Join(home, ".local", "share", "quotelens", "quotelens.db")
}
