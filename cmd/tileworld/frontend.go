package main

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tileworld/core"
	"github.com/lixenwraith/tileworld/input"
	"github.com/lixenwraith/tileworld/render"
	"github.com/lixenwraith/tileworld/sim"
)

// Terminals report key presses and autorepeat only; a held key must repeat within these
const (
	holdInitial = 600 * time.Millisecond
	holdRepeat  = 150 * time.Millisecond
)

// terminalFrontend turns tcell events into action transitions and draws through the renderer
type terminalFrontend struct {
	renderer *render.TerminalRenderer
	keys     *input.KeyTable
	hold     *input.HoldTracker
	events   <-chan tcell.Event
}

func newTerminalFrontend(r *render.TerminalRenderer, keys *input.KeyTable, events <-chan tcell.Event) *terminalFrontend {
	return &terminalFrontend{
		renderer: r,
		keys:     keys,
		hold:     input.NewHoldTracker(holdInitial, holdRepeat),
		events:   events,
	}
}

// pollEvents forwards screen events until the screen is finalized or ctx ends
func pollEvents(ctx context.Context, screen tcell.Screen) <-chan tcell.Event {
	ch := make(chan tcell.Event, 64)
	core.Go(func() {
		defer close(ch)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case ch <- ev:
			case <-ctx.Done():
				return
			}
		}
	})
	return ch
}

// Actions drains pending terminal events without blocking
func (f *terminalFrontend) Actions(now time.Time) []input.Event {
	var out []input.Event
	for {
		select {
		case ev, ok := <-f.events:
			if !ok {
				// Poller gone: the screen is closed
				out = append(out, f.hold.ReleaseAll()...)
				return append(out, input.Event{Action: input.ActionQuit, Pressed: true})
			}
			out = append(out, f.handle(ev, now)...)
		default:
			return append(out, f.hold.Expire(now)...)
		}
	}
}

func (f *terminalFrontend) handle(ev tcell.Event, now time.Time) []input.Event {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		a, ok := f.keys.Resolve(keyName(ev))
		if !ok {
			return nil
		}
		return f.hold.Press(a, now)
	case *tcell.EventResize:
		f.renderer.Resize()
	case *tcell.EventFocus:
		if !ev.Focused {
			return f.hold.ReleaseAll()
		}
	}
	return nil
}

func (f *terminalFrontend) Present(w *sim.World) {
	f.renderer.Present(w)
}

// keyName maps a tcell key to the names KeyTable understands
func keyName(ev *tcell.EventKey) string {
	switch ev.Key() {
	case tcell.KeyRune:
		return string(ev.Rune())
	case tcell.KeyUp:
		return "up"
	case tcell.KeyDown:
		return "down"
	case tcell.KeyLeft:
		return "left"
	case tcell.KeyRight:
		return "right"
	case tcell.KeyEscape:
		return "escape"
	case tcell.KeyEnter:
		return "enter"
	case tcell.KeyTab:
		return "tab"
	case tcell.KeyCtrlC:
		return "ctrl+c"
	case tcell.KeyCtrlQ:
		return "ctrl+q"
	}
	return ""
}
