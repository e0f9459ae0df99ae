package input

import (
	"sort"
	"time"
)

// opposite pairs are released immediately when the other side is pressed
var opposite = map[Action]Action{
	ActionMoveUp:    ActionMoveDown,
	ActionMoveDown:  ActionMoveUp,
	ActionMoveLeft:  ActionMoveRight,
	ActionMoveRight: ActionMoveLeft,
}

type holdState struct {
	last     time.Time
	repeated bool
}

// HoldTracker synthesizes key releases for frontends that only report presses
// A held action is released when no repeat arrives within the timeout; the first
// timeout is longer to cover the terminal's key-repeat delay
type HoldTracker struct {
	Initial time.Duration
	Repeat  time.Duration

	held map[Action]holdState
}

// NewHoldTracker creates a tracker with the given first and subsequent hold timeouts
func NewHoldTracker(initial, repeat time.Duration) *HoldTracker {
	return &HoldTracker{
		Initial: initial,
		Repeat:  repeat,
		held:    make(map[Action]holdState),
	}
}

// Press records a press and returns the transitions to emit
func (h *HoldTracker) Press(a Action, now time.Time) []Event {
	if !a.Held() {
		return []Event{{Action: a, Pressed: true}}
	}

	if st, ok := h.held[a]; ok {
		st.last = now
		st.repeated = true
		h.held[a] = st
		return nil
	}

	var out []Event
	if opp, ok := opposite[a]; ok {
		if _, held := h.held[opp]; held {
			delete(h.held, opp)
			out = append(out, Event{Action: opp, Pressed: false})
		}
	}
	h.held[a] = holdState{last: now}
	return append(out, Event{Action: a, Pressed: true})
}

// Expire releases every action whose timeout elapsed, in action order
func (h *HoldTracker) Expire(now time.Time) []Event {
	var out []Event
	for a, st := range h.held {
		timeout := h.Initial
		if st.repeated {
			timeout = h.Repeat
		}
		if now.Sub(st.last) >= timeout {
			delete(h.held, a)
			out = append(out, Event{Action: a, Pressed: false})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Action < out[j].Action })
	return out
}

// ReleaseAll drops every held action, used when focus is lost or the game pauses
func (h *HoldTracker) ReleaseAll() []Event {
	out := make([]Event, 0, len(h.held))
	for a := range h.held {
		out = append(out, Event{Action: a, Pressed: false})
	}
	clear(h.held)
	sort.Slice(out, func(i, j int) bool { return out[i].Action < out[j].Action })
	return out
}

// Held reports whether the tracker considers a currently held
func (h *HoldTracker) Held(a Action) bool {
	_, ok := h.held[a]
	return ok
}
