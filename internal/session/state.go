package session

import "sort"

// FileState is what the navigator remembers about one document.
type FileState struct {
	LastSlug  string   `json:"last_slug,omitempty"`
	Collapsed []string `json:"collapsed,omitempty"`
}

// State represents persisted session state.
type State struct {
	Files map[string]FileState `json:"files,omitempty"`
}

// Default returns the default session state.
func Default() State {
	return State{
		Files: make(map[string]FileState),
	}
}

// File returns the remembered state for path, or the zero value.
func (s State) File(path string) FileState {
	return s.Files[path]
}

// Remember records where the user was in path and which headings were
// collapsed. Collapsed slugs are stored sorted so saves are stable.
func (s *State) Remember(path, slug string, collapsed map[string]bool) {
	if s.Files == nil {
		s.Files = make(map[string]FileState)
	}
	fs := FileState{LastSlug: slug}
	for k, v := range collapsed {
		if v {
			fs.Collapsed = append(fs.Collapsed, k)
		}
	}
	sort.Strings(fs.Collapsed)
	s.Files[path] = fs
}
