package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Store handles session state persistence.
type Store struct {
	path string
}

// NewStore creates a store that persists to state.json inside dir.
func NewStore(dir string) *Store {
	return &Store{
		path: filepath.Join(dir, "state.json"),
	}
}

// DefaultStore persists under the XDG state directory.
func DefaultStore() *Store {
	return NewStore(filepath.Join(xdg.StateHome, "treemd"))
}

// Path returns the file the store reads and writes.
func (s *Store) Path() string {
	return s.path
}

// Load reads the session state from disk. A missing file yields Default.
func (s *Store) Load() (State, error) {
	state := Default()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return state, nil
		}
		return state, fmt.Errorf("read session: %w", err)
	}

	if err := json.Unmarshal(data, &state); err != nil {
		return Default(), fmt.Errorf("parse session: %w", err)
	}
	if state.Files == nil {
		state.Files = make(map[string]FileState)
	}

	return state, nil
}

// Save writes the session state to disk.
func (s *Store) Save(state State) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}
