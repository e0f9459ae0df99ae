package input

// Action is a resolved game command, independent of the physical key that produced it
type Action uint8

const (
	ActionNone Action = iota

	// Movement, held
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight

	// Tile interaction, held
	ActionPlaceTile
	ActionRemoveTile

	// Edge-triggered, consumed on press
	ActionGrab
	ActionPause
	ActionToggleMute
	ActionQuit

	actionCount
)

// actionNames are the canonical names used in keymap configuration
var actionNames = [actionCount]string{
	ActionNone:       "none",
	ActionMoveUp:     "move_up",
	ActionMoveDown:   "move_down",
	ActionMoveLeft:   "move_left",
	ActionMoveRight:  "move_right",
	ActionPlaceTile:  "place_tile",
	ActionRemoveTile: "remove_tile",
	ActionGrab:       "grab",
	ActionPause:      "pause",
	ActionToggleMute: "toggle_mute",
	ActionQuit:       "quit",
}

// actionRegistry maps canonical action names back to actions
// Used by keymap config loader to resolve TOML action strings
var actionRegistry map[string]Action

func init() {
	actionRegistry = make(map[string]Action, actionCount)
	for a := ActionNone; a < actionCount; a++ {
		actionRegistry[actionNames[a]] = a
	}
}

func (a Action) String() string {
	if a >= actionCount {
		return "unknown"
	}
	return actionNames[a]
}

// ActionByName resolves a configuration name
func ActionByName(name string) (Action, bool) {
	a, ok := actionRegistry[name]
	return a, ok
}

// Held reports whether the action has a meaningful release
func (a Action) Held() bool {
	switch a {
	case ActionMoveUp, ActionMoveDown, ActionMoveLeft, ActionMoveRight,
		ActionPlaceTile, ActionRemoveTile:
		return true
	}
	return false
}

// Event is one resolved action transition
type Event struct {
	Action  Action
	Pressed bool
}
