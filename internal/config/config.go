// Package config handles repository and global configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents repository configuration stored in .jatstab/config.json.
type Config struct {
	SourceRoot string `json:"source_root,omitempty"` // Default directory scanned by extract
	CSVDir     string `json:"csv_dir,omitempty"`     // Default output directory for CSV export
}

const (
	JatstabDir   = ".jatstab"
	ConfigFile   = "config.json"
	ArticlesFile = "articles.jsonl"
	CacheDir     = "cache"
	DBFile       = "articles.db"
)

// JatstabPath returns the path to the .jatstab directory from a root path.
func JatstabPath(root string) string {
	return filepath.Join(root, JatstabDir)
}

// ConfigPath returns the path to config.json from a root path.
func ConfigPath(root string) string {
	return filepath.Join(root, JatstabDir, ConfigFile)
}

// ArticlesPath returns the path to articles.jsonl from a root path.
func ArticlesPath(root string) string {
	return filepath.Join(root, JatstabDir, ArticlesFile)
}

// CachePath returns the path to the cache directory from a root path.
func CachePath(root string) string {
	return filepath.Join(root, JatstabDir, CacheDir)
}

// DBPath returns the path to articles.db from a root path.
func DBPath(root string) string {
	return filepath.Join(root, JatstabDir, CacheDir, DBFile)
}

// IsRepository checks if the given path contains a jatstab repository.
func IsRepository(root string) bool {
	info, err := os.Stat(JatstabPath(root))
	return err == nil && info.IsDir()
}

// FindRepository walks up from the given path to find a jatstab repository.
// Returns the repository root path or an error if not found.
func FindRepository(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsRepository(abs) {
			return abs, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("not in a jatstab repository (no .jatstab directory found)")
		}
		abs = parent
	}
}

// Load reads configuration from the repository at the given root.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// Save writes configuration to the repository at the given root.
func (c *Config) Save(root string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}
