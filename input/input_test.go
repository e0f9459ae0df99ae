package input

import (
	"testing"
	"time"
)

func TestActionNamesRoundTrip(t *testing.T) {
	for a := ActionNone; a < actionCount; a++ {
		got, ok := ActionByName(a.String())
		if !ok || got != a {
			t.Errorf("Expected %q to resolve to %d, got %d (ok=%v)", a.String(), a, got, ok)
		}
	}
	if _, ok := ActionByName("fire_missile"); ok {
		t.Error("Expected unknown action name to fail")
	}
}

func TestResolveNormalizesKeys(t *testing.T) {
	kt := DefaultKeyTable()

	tests := []struct {
		key  string
		want Action
	}{
		{"W", ActionMoveUp},
		{"ArrowUp", ActionMoveUp},
		{" ", ActionPlaceTile},
		{"Esc", ActionQuit},
		{"ctrl-c", ActionQuit},
	}
	for _, tt := range tests {
		got, ok := kt.Resolve(tt.key)
		if !ok || got != tt.want {
			t.Errorf("Resolve(%q): expected %s, got %s (ok=%v)", tt.key, tt.want, got, ok)
		}
	}
	if _, ok := kt.Resolve("f12"); ok {
		t.Error("Expected unbound key to fail")
	}
}

func TestMergeKeyTableReplacesAndUnbinds(t *testing.T) {
	base := DefaultKeyTable()
	merged, err := MergeKeyTable(base, Bindings{
		"move_up":     {"i"},
		"toggle_mute": {},
	})
	if err != nil {
		t.Fatalf("MergeKeyTable failed: %v", err)
	}

	if a, ok := merged.Resolve("i"); !ok || a != ActionMoveUp {
		t.Errorf("Expected i bound to move_up, got %s", a)
	}
	if _, ok := merged.Resolve("w"); ok {
		t.Error("Expected default w binding replaced")
	}
	if _, ok := merged.Resolve("m"); ok {
		t.Error("Expected toggle_mute unbound")
	}
	if a, _ := merged.Resolve("s"); a != ActionMoveDown {
		t.Errorf("Expected untouched move_down binding, got %s", a)
	}
	if a, _ := base.Resolve("w"); a != ActionMoveUp {
		t.Error("Expected base table unmodified")
	}
}

func TestMergeKeyTableErrors(t *testing.T) {
	if _, err := MergeKeyTable(DefaultKeyTable(), Bindings{"jump": {"j"}}); err == nil {
		t.Error("Expected unknown action error")
	}
	if _, err := MergeKeyTable(DefaultKeyTable(), Bindings{"grab": {"g"}, "pause": {"G"}}); err == nil {
		t.Error("Expected duplicate key error")
	}
}

func TestLoadKeyConfig(t *testing.T) {
	b, err := LoadKeyConfig([]byte(`
[keys]
grab = ["g", "enter"]
`))
	if err != nil {
		t.Fatalf("LoadKeyConfig failed: %v", err)
	}
	if len(b["grab"]) != 2 || b["grab"][1] != "enter" {
		t.Errorf("Expected grab bindings [g enter], got %v", b["grab"])
	}

	if _, err := LoadKeyConfig([]byte("[keys\n")); err == nil {
		t.Error("Expected parse error")
	}
	if _, err := LoadKeyConfig([]byte("[other]\nx = 1\n")); err == nil {
		t.Error("Expected unknown section error")
	}
}

func TestHoldTrackerSynthesizesRelease(t *testing.T) {
	h := NewHoldTracker(500*time.Millisecond, 100*time.Millisecond)
	t0 := time.Unix(0, 0)

	evs := h.Press(ActionMoveLeft, t0)
	if len(evs) != 1 || evs[0] != (Event{ActionMoveLeft, true}) {
		t.Fatalf("Expected single press, got %v", evs)
	}

	// Still inside initial delay
	if evs := h.Expire(t0.Add(400 * time.Millisecond)); len(evs) != 0 {
		t.Errorf("Expected no release before initial timeout, got %v", evs)
	}

	// Repeat switches to short timeout
	if evs := h.Press(ActionMoveLeft, t0.Add(450*time.Millisecond)); len(evs) != 0 {
		t.Errorf("Expected repeat to emit nothing, got %v", evs)
	}
	if evs := h.Expire(t0.Add(520 * time.Millisecond)); len(evs) != 0 {
		t.Errorf("Expected no release within repeat timeout, got %v", evs)
	}
	evs = h.Expire(t0.Add(560 * time.Millisecond))
	if len(evs) != 1 || evs[0] != (Event{ActionMoveLeft, false}) {
		t.Errorf("Expected release after repeat timeout, got %v", evs)
	}
}

func TestHoldTrackerOppositeAndEdges(t *testing.T) {
	h := NewHoldTracker(time.Second, time.Second)
	t0 := time.Unix(0, 0)

	h.Press(ActionMoveLeft, t0)
	evs := h.Press(ActionMoveRight, t0)
	if len(evs) != 2 || evs[0] != (Event{ActionMoveLeft, false}) || evs[1] != (Event{ActionMoveRight, true}) {
		t.Errorf("Expected left release then right press, got %v", evs)
	}

	for i := 0; i < 2; i++ {
		evs := h.Press(ActionGrab, t0)
		if len(evs) != 1 || !evs[0].Pressed {
			t.Errorf("Expected every grab press to emit, got %v", evs)
		}
	}
	if h.Held(ActionGrab) {
		t.Error("Expected edge-triggered action not tracked as held")
	}

	if evs := h.ReleaseAll(); len(evs) != 1 || evs[0].Action != ActionMoveRight {
		t.Errorf("Expected ReleaseAll to release right, got %v", evs)
	}
}
