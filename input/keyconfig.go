package input

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Bindings is the configuration form: action name → key names
// Listing an action replaces all of its default keys; an empty list unbinds it
type Bindings map[string][]string

// LoadKeyConfig parses a standalone TOML keymap with a [keys] table
func LoadKeyConfig(data []byte) (Bindings, error) {
	var doc struct {
		Keys Bindings `toml:"keys"`
	}
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, fmt.Errorf("keymap parse: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("keymap: unknown entry %q", undecoded[0].String())
	}
	return doc.Keys, nil
}

// MergeKeyTable returns a new KeyTable with base bindings overridden per action
// Returns error on unknown action names or a key claimed by two configured actions
func MergeKeyTable(base *KeyTable, override Bindings) (*KeyTable, error) {
	result := base.Clone()
	if len(override) == 0 {
		return result, nil
	}

	configured := make(map[Action]bool, len(override))
	for name := range override {
		a, ok := ActionByName(name)
		if !ok || a == ActionNone {
			return nil, fmt.Errorf("keymap: unknown action %q", name)
		}
		configured[a] = true
	}

	// Drop defaults of every configured action before rebinding
	for k, a := range result.Keys {
		if configured[a] {
			delete(result.Keys, k)
		}
	}

	claimed := make(map[string]string)
	for name, keys := range override {
		a, _ := ActionByName(name)
		for _, raw := range keys {
			k := NormalizeKey(raw)
			if k == "" {
				return nil, fmt.Errorf("keymap: action %q has an empty key name", name)
			}
			if prev, dup := claimed[k]; dup && prev != name {
				return nil, fmt.Errorf("keymap: key %q bound to both %q and %q", k, prev, name)
			}
			claimed[k] = name
			result.Keys[k] = a
		}
	}

	return result, nil
}
