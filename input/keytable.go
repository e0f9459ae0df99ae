package input

import (
	"sort"
	"strings"
)

// keyAliases normalizes the different spellings frontends and users produce
var keyAliases = map[string]string{
	" ":          "space",
	"esc":        "escape",
	"return":     "enter",
	"arrowup":    "up",
	"arrowdown":  "down",
	"arrowleft":  "left",
	"arrowright": "right",
	"ctrl-c":     "ctrl+c",
	"ctrl-q":     "ctrl+q",
}

// NormalizeKey returns the canonical lowercase key name
func NormalizeKey(name string) string {
	if name == " " {
		return "space"
	}
	n := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := keyAliases[n]; ok {
		return alias
	}
	return n
}

// KeyTable is the resolved dispatch table: key name → action
// Built once from defaults plus configuration, then only read
type KeyTable struct {
	Keys map[string]Action
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		Keys: map[string]Action{
			"w":     ActionMoveUp,
			"up":    ActionMoveUp,
			"s":     ActionMoveDown,
			"down":  ActionMoveDown,
			"a":     ActionMoveLeft,
			"left":  ActionMoveLeft,
			"d":     ActionMoveRight,
			"right": ActionMoveRight,

			"space": ActionPlaceTile,
			"x":     ActionRemoveTile,
			"e":     ActionGrab,

			"p":      ActionPause,
			"m":      ActionToggleMute,
			"escape": ActionQuit,
			"ctrl+c": ActionQuit,
			"ctrl+q": ActionQuit,
		},
	}
}

// Resolve returns the action bound to a key name
func (kt *KeyTable) Resolve(key string) (Action, bool) {
	a, ok := kt.Keys[NormalizeKey(key)]
	if !ok || a == ActionNone {
		return ActionNone, false
	}
	return a, true
}

// KeysFor lists the keys bound to an action in sorted order
func (kt *KeyTable) KeysFor(a Action) []string {
	var keys []string
	for k, v := range kt.Keys {
		if v == a {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy of the KeyTable with an independent map
func (kt *KeyTable) Clone() *KeyTable {
	c := make(map[string]Action, len(kt.Keys))
	for k, v := range kt.Keys {
		c[k] = v
	}
	return &KeyTable{Keys: c}
}
