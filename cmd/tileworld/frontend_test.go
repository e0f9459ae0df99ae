package main

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tileworld/config"
	"github.com/lixenwraith/tileworld/input"
	"github.com/lixenwraith/tileworld/render"
	"github.com/lixenwraith/tileworld/sim"
	"github.com/lixenwraith/tileworld/tilemap"
)

func newTestFrontend(t *testing.T) (*terminalFrontend, chan tcell.Event, *sim.World, tcell.SimulationScreen) {
	t.Helper()
	cfg := config.Default()
	reg, err := cfg.Registry()
	if err != nil {
		t.Fatalf("Registry: %v", err)
	}
	m := tilemap.New(reg, 8, 4, cfg.Map.TileSize)
	w := sim.NewWorld(m, cfg.Settings(), 1)

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init failed: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(8, 5)

	comp := render.NewCompositor(m, render.NewPalette(reg), nil)
	events := make(chan tcell.Event, 8)
	return newTerminalFrontend(render.NewTerminalRenderer(screen, comp), input.DefaultKeyTable(), events), events, w, screen
}

func TestKeyName(t *testing.T) {
	tests := []struct {
		ev   *tcell.EventKey
		want string
	}{
		{tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone), "d"},
		{tcell.NewEventKey(tcell.KeyRune, 'D', tcell.ModShift), "D"},
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), " "},
		{tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), "up"},
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), "escape"},
		{tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), "ctrl+c"},
		{tcell.NewEventKey(tcell.KeyF12, 0, tcell.ModNone), ""},
	}
	for _, tt := range tests {
		if got := keyName(tt.ev); got != tt.want {
			t.Errorf("Expected %q, got %q", tt.want, got)
		}
	}
}

func TestActionsPressAndSyntheticRelease(t *testing.T) {
	fe, events, _, _ := newTestFrontend(t)
	start := time.Unix(100, 0)

	events <- tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone)
	got := fe.Actions(start)
	if len(got) != 1 || got[0] != (input.Event{Action: input.ActionMoveRight, Pressed: true}) {
		t.Fatalf("Expected move_right press, got %v", got)
	}

	// Autorepeat keeps the key held
	events <- tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone)
	if got := fe.Actions(start.Add(holdInitial - time.Millisecond)); len(got) != 0 {
		t.Errorf("Expected repeat to emit nothing, got %v", got)
	}

	got = fe.Actions(start.Add(holdInitial + holdRepeat))
	if len(got) != 1 || got[0] != (input.Event{Action: input.ActionMoveRight, Pressed: false}) {
		t.Errorf("Expected synthesized move_right release, got %v", got)
	}
}

func TestActionsIgnoresUnboundKeys(t *testing.T) {
	fe, events, _, _ := newTestFrontend(t)
	events <- tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone)
	if got := fe.Actions(time.Unix(0, 0)); len(got) != 0 {
		t.Errorf("Expected no actions, got %v", got)
	}
}

func TestActionsFocusLossReleases(t *testing.T) {
	fe, events, _, _ := newTestFrontend(t)
	now := time.Unix(0, 0)

	events <- tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone)
	fe.Actions(now)

	events <- tcell.NewEventFocus(false)
	got := fe.Actions(now)
	if len(got) != 1 || got[0] != (input.Event{Action: input.ActionMoveUp, Pressed: false}) {
		t.Errorf("Expected move_up release on focus loss, got %v", got)
	}
}

func TestActionsClosedChannelQuits(t *testing.T) {
	fe, events, _, _ := newTestFrontend(t)
	close(events)

	got := fe.Actions(time.Unix(0, 0))
	if len(got) == 0 || got[len(got)-1] != (input.Event{Action: input.ActionQuit, Pressed: true}) {
		t.Errorf("Expected trailing quit, got %v", got)
	}
}

func TestActionsResizeRedraws(t *testing.T) {
	fe, events, w, screen := newTestFrontend(t)
	fe.Present(w)

	events <- tcell.NewEventResize(8, 5)
	fe.Actions(time.Unix(0, 0))
	fe.Present(w)

	_, _, style, _ := screen.GetContent(0, 0)
	_, bg, _ := style.Decompose()
	if r, g, b := bg.RGB(); r != 74 || g != 143 || b != 60 {
		t.Errorf("Expected grass background after resize, got (%d, %d, %d)", r, g, b)
	}
}
