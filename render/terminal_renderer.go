package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tileworld/core"
	"github.com/lixenwraith/tileworld/sim"
)

// TerminalRenderer flushes the compositor's dirty cells to a tcell screen
type TerminalRenderer struct {
	screen tcell.Screen
	comp   *Compositor
}

func NewTerminalRenderer(screen tcell.Screen, comp *Compositor) *TerminalRenderer {
	return &TerminalRenderer{screen: screen, comp: comp}
}

// Present composes w and shows the changed cells
func (r *TerminalRenderer) Present(w *sim.World) {
	r.comp.Compose(w)
	r.Flush()
}

// Flush writes dirty cells and shows the screen
func (r *TerminalRenderer) Flush() {
	buf := r.comp.Buffer()
	buf.Dirty(func(x, y int, c Cell) {
		r.screen.SetContent(x, y, c.Rune, nil, cellStyle(c))
	})
	buf.ClearDirty()
	r.screen.Show()
}

// Resize forces a full redraw after the terminal changed size
func (r *TerminalRenderer) Resize() {
	r.screen.Clear()
	r.comp.Buffer().MarkAllDirty()
	r.screen.Sync()
}

func cellStyle(c Cell) tcell.Style {
	return tcell.StyleDefault.Foreground(tcellColor(c.Fg)).Background(tcellColor(c.Bg))
}

func tcellColor(c core.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
