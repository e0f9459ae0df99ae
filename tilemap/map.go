package tilemap

import (
	"github.com/lixenwraith/tileworld/core"
)

// Tile is the content of a head or single cell
type Tile struct {
	Kind KindID
	Pos  core.Point
}

// MultiTilePointer marks a non-head cell of a multi-tile footprint
type MultiTilePointer struct {
	Target core.Point
}

// Cell is one grid slot, holding either a Tile or a MultiTilePointer
type Cell struct {
	Tile      Tile
	Pointer   MultiTilePointer
	IsPointer bool
}

// Map is the tile grid; cells are replaced whole, never edited in place
type Map struct {
	reg      *Registry
	width    int
	height   int
	tileSize int
	cells    []Cell

	// Set on every mutation, cleared by the renderer after a full repaint
	repaint bool
}

// New creates a map filled with the registry's default kind
func New(reg *Registry, width, height, tileSize int) *Map {
	m := &Map{
		reg:      reg,
		width:    width,
		height:   height,
		tileSize: tileSize,
		cells:    make([]Cell, width*height),
		repaint:  true,
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			m.cells[y*width+x] = m.defaultCell(x, y)
		}
	}
	return m
}

func (m *Map) Width() int          { return m.width }
func (m *Map) Height() int         { return m.height }
func (m *Map) TileSize() int       { return m.tileSize }
func (m *Map) PixelWidth() int     { return m.width * m.tileSize }
func (m *Map) PixelHeight() int    { return m.height * m.tileSize }
func (m *Map) Registry() *Registry { return m.reg }

// NeedsRepaint reports whether the grid changed since the last ClearRepaint
func (m *Map) NeedsRepaint() bool { return m.repaint }

// MarkRepaint forces a full repaint on the next frame
func (m *Map) MarkRepaint() { m.repaint = true }

// ClearRepaint acknowledges a full repaint
func (m *Map) ClearRepaint() { m.repaint = false }

// InBounds reports whether (x, y) is a grid cell
func (m *Map) InBounds(x, y int) bool {
	return x >= 0 && x < m.width && y >= 0 && y < m.height
}

// At returns the raw cell; ok is false out of bounds
func (m *Map) At(x, y int) (Cell, bool) {
	if !m.InBounds(x, y) {
		return Cell{}, false
	}
	return m.cells[y*m.width+x], true
}

// Resolve returns the tile that owns (x, y), following pointers to their head
func (m *Map) Resolve(x, y int) (Tile, bool) {
	c, ok := m.At(x, y)
	if !ok {
		return Tile{}, false
	}
	if c.IsPointer {
		return m.Resolve(c.Pointer.Target.X, c.Pointer.Target.Y)
	}
	return c.Tile, true
}

// KindAt returns the kind owning (x, y)
func (m *Map) KindAt(x, y int) (KindID, bool) {
	t, ok := m.Resolve(x, y)
	return t.Kind, ok
}

// DestroyTimer returns the ticks needed to remove the tile at (x, y)
// ok is false out of bounds or for indestructible kinds
func (m *Map) DestroyTimer(x, y int) (int, bool) {
	t, ok := m.Resolve(x, y)
	if !ok {
		return 0, false
	}
	k := m.reg.Kind(t.Kind)
	if !k.Destructible() {
		return 0, false
	}
	return k.DestroyTicks, true
}

// AreaIsFree reports whether every cell of the rectangle is in bounds and holds the default kind
func (m *Map) AreaIsFree(x, y, w, h int) bool {
	if w <= 0 || h <= 0 {
		return false
	}
	def := m.reg.Default()
	for cy := y; cy < y+h; cy++ {
		for cx := x; cx < x+w; cx++ {
			c, ok := m.At(cx, cy)
			if !ok || c.IsPointer || c.Tile.Kind != def {
				return false
			}
		}
	}
	return true
}

// Place writes kind at (x, y); multi-tile kinds need a free footprint with (x, y) as head
// Returns the head tile and whether anything was written
func (m *Map) Place(kind KindID, x, y int) (Tile, bool) {
	if !m.InBounds(x, y) {
		return Tile{}, false
	}

	fp := m.reg.Kind(kind).Footprint
	if fp.Multi() {
		if !m.AreaIsFree(x, y, fp.W, fp.H) {
			return Tile{}, false
		}
		head := core.Point{X: x, Y: y}
		for cy := y; cy < y+fp.H; cy++ {
			for cx := x; cx < x+fp.W; cx++ {
				m.cells[cy*m.width+cx] = Cell{IsPointer: true, Pointer: MultiTilePointer{Target: head}}
			}
		}
		t := Tile{Kind: kind, Pos: head}
		m.cells[y*m.width+x] = Cell{Tile: t}
		m.repaint = true
		return t, true
	}

	// Overwriting part of a footprint clears the footprint first so no pointer is orphaned
	if c := m.cells[y*m.width+x]; c.IsPointer || m.reg.Kind(c.Tile.Kind).Footprint.Multi() {
		m.Remove(x, y)
	}

	t := Tile{Kind: kind, Pos: core.Point{X: x, Y: y}}
	m.cells[y*m.width+x] = Cell{Tile: t}
	m.repaint = true
	return t, true
}

// Remove clears the tile owning (x, y) back to the default kind, whole footprint included
// Returns false when nothing changed
func (m *Map) Remove(x, y int) bool {
	head, ok := m.Resolve(x, y)
	if !ok {
		return false
	}
	if head.Kind == m.reg.Default() {
		return false
	}

	fp := m.reg.Kind(head.Kind).Footprint
	for cy := head.Pos.Y; cy < head.Pos.Y+fp.H; cy++ {
		for cx := head.Pos.X; cx < head.Pos.X+fp.W; cx++ {
			if !m.InBounds(cx, cy) {
				continue
			}
			c := m.cells[cy*m.width+cx]
			// Only touch cells that belong to this footprint
			if (c.IsPointer && c.Pointer.Target == head.Pos) || (!c.IsPointer && c.Tile.Pos == head.Pos) {
				m.cells[cy*m.width+cx] = m.defaultCell(cx, cy)
			}
		}
	}
	m.repaint = true
	return true
}

func (m *Map) defaultCell(x, y int) Cell {
	return Cell{Tile: Tile{Kind: m.reg.Default(), Pos: core.Point{X: x, Y: y}}}
}
