package cli

import (
	"os"
	"path/filepath"
)

// cacheDir returns the directory used for the summary cache.
// It honors XDG_CACHE_HOME and falls back to ~/.cache/datapeek.
func cacheDir() (string, error) {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// dataDir returns the directory used for the local dataset catalog.
// It honors XDG_DATA_HOME and falls back to ~/.local/share/datapeek/catalog.
func dataDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appName, "catalog"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appName, "catalog"), nil
}
