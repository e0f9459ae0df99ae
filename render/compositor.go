package render

import (
	"github.com/lixenwraith/tileworld/core"
	"github.com/lixenwraith/tileworld/sim"
	"github.com/lixenwraith/tileworld/status"
	"github.com/lixenwraith/tileworld/tilemap"
)

// Compositor draws the world into a Buffer, one terminal cell per map tile,
// with the status line on the row below the map
type Compositor struct {
	buf     *Buffer
	pal     *Palette
	stats   *status.Registry // nil hides the status line
	painted map[sim.EntityID]core.Point
}

// NewCompositor sizes the buffer for m plus one status row
func NewCompositor(m *tilemap.Map, pal *Palette, stats *status.Registry) *Compositor {
	return &Compositor{
		buf:     NewBuffer(m.Width(), m.Height()+1),
		pal:     pal,
		stats:   stats,
		painted: make(map[sim.EntityID]core.Point),
	}
}

func (c *Compositor) Buffer() *Buffer { return c.buf }

// Compose brings the buffer up to date with w
// A map repaint redraws every tile; otherwise only cells entities left or entered are redrawn
func (c *Compositor) Compose(w *sim.World) {
	m := w.Map
	ts := m.TileSize()
	ents := w.Entities()

	if m.NeedsRepaint() {
		for y := 0; y < m.Height(); y++ {
			for x := 0; x < m.Width(); x++ {
				c.drawTile(m, x, y)
			}
		}
		m.ClearRepaint()
		clear(c.painted)
		for _, e := range ents {
			e.HasMoved(true)
		}
		c.drawSprites(m, ents, nil)
		c.drawStatus(m)
		return
	}

	stale := make(map[core.Point]bool)
	live := make(map[sim.EntityID]bool, len(ents))
	for _, e := range ents {
		live[e.ID] = true
		prev, seen := c.painted[e.ID]
		if !e.HasMoved(true) && seen {
			continue
		}
		if cell := e.Cell(ts); !seen || cell != prev {
			if seen {
				stale[prev] = true
			}
			stale[cell] = true
		}
	}
	for id, prev := range c.painted {
		if !live[id] {
			stale[prev] = true
			delete(c.painted, id)
		}
	}

	for p := range stale {
		c.drawTile(m, p.X, p.Y)
	}
	c.drawSprites(m, ents, stale)
	c.drawStatus(m)
}

func (c *Compositor) drawTile(m *tilemap.Map, x, y int) {
	if !m.InBounds(x, y) {
		return
	}
	l := c.pal.CellLook(m, x, y)
	c.buf.Set(x, y, Cell{Rune: l.Rune, Fg: l.Fg, Bg: l.Bg})
}

// drawSprites paints entities over their cells, the player last so it stays on top
// only limits drawing to those cells; nil draws everything
func (c *Compositor) drawSprites(m *tilemap.Map, ents []*sim.Entity, only map[core.Point]bool) {
	ts := m.TileSize()
	var player *sim.Entity
	for _, e := range ents {
		if e.Sprite == sim.SpritePlayer {
			player = e
			continue
		}
		c.drawSprite(m, e, e.Cell(ts), only)
	}
	if player != nil {
		c.drawSprite(m, player, player.Cell(ts), only)
	}
}

func (c *Compositor) drawSprite(m *tilemap.Map, e *sim.Entity, cell core.Point, only map[core.Point]bool) {
	c.painted[e.ID] = cell
	if !m.InBounds(cell.X, cell.Y) || (only != nil && !only[cell]) {
		return
	}
	under := c.pal.CellLook(m, cell.X, cell.Y)
	l := c.pal.Sprite(e.Sprite)
	c.buf.Set(cell.X, cell.Y, Cell{Rune: l.Rune, Fg: l.Fg, Bg: under.Bg})
}

func (c *Compositor) drawStatus(m *tilemap.Map) {
	if c.stats == nil {
		return
	}
	l := c.pal.Status
	c.buf.DrawText(0, m.Height(), c.stats.Line(), l.Fg, l.Bg, c.buf.Width())
}
