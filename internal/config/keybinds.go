package config

// Keybind binds one or more keys to a navigator action.
type Keybind struct {
	Keys   []string
	Action string
}

// DefaultKeybinds returns the navigator key bindings.
func DefaultKeybinds() []Keybind {
	return []Keybind{
		{Keys: []string{"j", "down"}, Action: "down"},
		{Keys: []string{"k", "up"}, Action: "up"},
		{Keys: []string{"g", "home"}, Action: "top"},
		{Keys: []string{"G", "end"}, Action: "bottom"},
		{Keys: []string{"enter", "l", "right"}, Action: "expand"},
		{Keys: []string{"h", "left"}, Action: "collapse"},
		{Keys: []string{"tab"}, Action: "focus"},
		{Keys: []string{"f"}, Action: "follow"},
		{Keys: []string{"/"}, Action: "filter"},
		{Keys: []string{"r"}, Action: "reload"},
		{Keys: []string{"backspace"}, Action: "back"},
		{Keys: []string{"q", "ctrl+c"}, Action: "quit"},
	}
}

// mergeKeybinds replaces the keys of actions named in overrides and keeps
// the rest. Unknown actions are ignored.
func mergeKeybinds(base []Keybind, overrides map[string][]string) []Keybind {
	out := make([]Keybind, len(base))
	for i, kb := range base {
		out[i] = kb
		if keys, ok := overrides[kb.Action]; ok && len(keys) > 0 {
			out[i].Keys = keys
		}
	}
	return out
}
