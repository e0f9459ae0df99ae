package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/lixenwraith/tileworld/core"
	"github.com/lixenwraith/tileworld/game"
	"github.com/lixenwraith/tileworld/input"
	"github.com/lixenwraith/tileworld/render"
	"github.com/lixenwraith/tileworld/sim"
)

// statusHeight fits one line of the debug font
const statusHeight = 16

// windowGame adapts a Session to ebiten's Update/Draw cycle
// ebiten paces Update, so the loop's idle sleep is ignored
type windowGame struct {
	session *game.Session
	palette *render.Palette

	pressed  []ebiten.Key
	released []ebiten.Key
}

func newWindowGame(s *game.Session) *windowGame {
	return &windowGame{
		session: s,
		palette: render.NewPalette(s.World.Map.Registry()),
	}
}

func (g *windowGame) Update() error {
	g.pressed = inpututil.AppendJustPressedKeys(g.pressed[:0])
	g.released = inpututil.AppendJustReleasedKeys(g.released[:0])

	for _, ev := range transitions(g.session.Keys, g.pressed, g.released) {
		if !g.session.Loop.HandleAction(ev) {
			return ebiten.Termination
		}
	}
	g.session.Loop.Frame()
	return nil
}

func (g *windowGame) Draw(screen *ebiten.Image) {
	w := g.session.World
	m := w.Map
	ts := float32(m.TileSize())

	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			look := g.palette.CellLook(m, x, y)
			vector.DrawFilledRect(screen, float32(x)*ts, float32(y)*ts, ts, ts, rgba(look.Bg), false)
		}
	}

	player, p := w.Player()
	for _, e := range w.Entities() {
		if e != player {
			g.drawEntity(screen, e)
		}
	}
	if player != nil {
		vector.StrokeRect(screen, float32(p.Aim.X)*ts, float32(p.Aim.Y)*ts, ts, ts, 1, rgba(core.RGBWhite), false)
		g.drawEntity(screen, player)
	}

	vector.DrawFilledRect(screen, 0, float32(m.PixelHeight()), float32(m.PixelWidth()), statusHeight, rgba(g.palette.Status.Bg), false)
	ebitenutil.DebugPrintAt(screen, g.session.Stats.Line(), 2, m.PixelHeight())
}

func (g *windowGame) drawEntity(screen *ebiten.Image, e *sim.Entity) {
	look := g.palette.Sprite(e.Sprite)
	vector.DrawFilledRect(screen, float32(e.X), float32(e.Y), float32(e.W), float32(e.H), rgba(look.Fg), false)
}

func (g *windowGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	m := g.session.World.Map
	return m.PixelWidth(), m.PixelHeight() + statusHeight
}

// transitions resolves this frame's key edges, releases first so a same-frame re-press wins
func transitions(keys *input.KeyTable, pressed, released []ebiten.Key) []input.Event {
	var out []input.Event
	for _, k := range released {
		if a, ok := keys.Resolve(keyName(k)); ok && a.Held() {
			out = append(out, input.Event{Action: a, Pressed: false})
		}
	}
	for _, k := range pressed {
		if a, ok := keys.Resolve(keyName(k)); ok {
			out = append(out, input.Event{Action: a, Pressed: true})
		}
	}
	return out
}

// keyName maps ebiten's key names ("A", "ArrowUp") onto KeyTable names
func keyName(k ebiten.Key) string {
	return input.NormalizeKey(k.String())
}

func rgba(c core.RGB) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}
