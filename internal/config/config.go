package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Output formats accepted by the non-interactive commands.
const (
	OutputPlain = "plain"
	OutputTree  = "tree"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

type Config struct {
	Output       string
	Watch        bool
	Debounce     time.Duration
	IndexPath    string
	LogLevel     string
	OutlineWidth int
	Keybinds     []Keybind
	Debug        bool
}

func Default() Config {
	return Config{
		Output:       OutputPlain,
		Watch:        true,
		Debounce:     200 * time.Millisecond,
		IndexPath:    filepath.Join(xdg.DataHome, "treemd", "index.db"),
		LogLevel:     "warn",
		OutlineWidth: 32,
		Keybinds:     DefaultKeybinds(),
	}
}

// ValidOutput reports whether format names a supported output format.
func ValidOutput(format string) bool {
	switch format {
	case OutputPlain, OutputTree, OutputJSON, OutputYAML:
		return true
	}
	return false
}
