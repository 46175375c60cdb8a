package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// fileConfig mirrors Config with pointer fields so we can distinguish
// "not set" from zero values when merging TOML.
type fileConfig struct {
	Output       *string             `toml:"output"`
	Watch        *bool               `toml:"watch"`
	DebounceMS   *int                `toml:"debounce_ms"`
	IndexPath    *string             `toml:"index_path"`
	LogLevel     *string             `toml:"log_level"`
	OutlineWidth *int                `toml:"outline_width"`
	Keys         map[string][]string `toml:"keys,omitempty"`
}

// ConfigDir returns the treemd config directory, respecting XDG_CONFIG_HOME.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "treemd")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "treemd")
}

// ConfigPath returns the full path to config.toml.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// LoadFile reads config.toml and merges non-nil fields into cfg.
// Returns true if the file existed, false otherwise.
func LoadFile(cfg *Config) (bool, error) {
	path := ConfigPath()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read config: %w", err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return true, fmt.Errorf("parse %s: %w", path, err)
	}

	if fc.Output != nil {
		if !ValidOutput(*fc.Output) {
			return true, fmt.Errorf("parse %s: unknown output format %q", path, *fc.Output)
		}
		cfg.Output = *fc.Output
	}
	if fc.Watch != nil {
		cfg.Watch = *fc.Watch
	}
	if fc.DebounceMS != nil && *fc.DebounceMS >= 0 {
		cfg.Debounce = time.Duration(*fc.DebounceMS) * time.Millisecond
	}
	if fc.IndexPath != nil {
		cfg.IndexPath = ExpandHome(*fc.IndexPath)
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}
	if fc.OutlineWidth != nil && *fc.OutlineWidth > 0 {
		cfg.OutlineWidth = *fc.OutlineWidth
	}
	if len(fc.Keys) > 0 {
		cfg.Keybinds = mergeKeybinds(cfg.Keybinds, fc.Keys)
	}

	return true, nil
}

// SaveFile writes cfg to config.toml, creating the directory as needed.
func SaveFile(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	// Store with ~ for readability if under home dir.
	home, _ := os.UserHomeDir()
	indexPath := cfg.IndexPath
	if home != "" && strings.HasPrefix(indexPath, home+string(os.PathSeparator)) {
		indexPath = "~" + indexPath[len(home):]
	}
	debounce := int(cfg.Debounce / time.Millisecond)

	fc := fileConfig{
		Output:       &cfg.Output,
		Watch:        &cfg.Watch,
		DebounceMS:   &debounce,
		IndexPath:    &indexPath,
		LogLevel:     &cfg.LogLevel,
		OutlineWidth: &cfg.OutlineWidth,
	}
	f, err := os.Create(filepath.Join(dir, "config.toml"))
	if err != nil {
		return fmt.Errorf("create config: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(fc)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, _ := os.UserHomeDir()
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}
