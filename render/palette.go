package render

import (
	"github.com/lixenwraith/tileworld/core"
	"github.com/lixenwraith/tileworld/sim"
	"github.com/lixenwraith/tileworld/tilemap"
)

// Look is how a tile or sprite appears in a terminal cell
type Look struct {
	Rune rune
	Fg   core.RGB
	Bg   core.RGB
}

// footprintDim darkens non-head cells of a multi-tile so the footprint reads as one block
const footprintDim = 0.85

// Palette is the pre-rendered lookup from tile kinds and sprites to looks
type Palette struct {
	tiles   []Look
	sprites map[sim.SpriteKind]Look
	Status  Look
}

// NewPalette derives looks from the registry colors and glyphs
func NewPalette(reg *tilemap.Registry) *Palette {
	p := &Palette{
		tiles: make([]Look, reg.Len()),
		sprites: map[sim.SpriteKind]Look{
			sim.SpritePlayer:  {Rune: '@', Fg: core.RGBWhite},
			sim.SpriteBeetle:  {Rune: '*', Fg: core.RGB{R: 40, G: 20, B: 10}},
			sim.SpritePackage: {Rune: '#', Fg: core.RGB{R: 250, G: 200, B: 60}},
		},
		Status: Look{Rune: ' ', Fg: core.RGB{R: 200, G: 200, B: 200}, Bg: core.RGB{R: 20, G: 20, B: 28}},
	}
	for i := range p.tiles {
		k := reg.Kind(tilemap.KindID(i))
		bg := core.RGBGray
		if k.HasColor {
			bg = k.Color
		}
		r := k.Glyph
		if r == 0 {
			r = ' '
		}
		p.tiles[i] = Look{Rune: r, Fg: bg.Contrast(), Bg: bg}
	}
	return p
}

// Tile returns the look of a kind
func (p *Palette) Tile(id tilemap.KindID) Look {
	return p.tiles[id]
}

// CellLook resolves a grid cell, dimming footprint pointer cells and dropping their glyph
func (p *Palette) CellLook(m *tilemap.Map, x, y int) Look {
	c, ok := m.At(x, y)
	if !ok {
		return Look{Rune: ' '}
	}
	if !c.IsPointer {
		return p.tiles[c.Tile.Kind]
	}
	head, _ := m.Resolve(x, y)
	l := p.tiles[head.Kind]
	l.Bg = l.Bg.Scale(footprintDim)
	l.Rune = ' '
	return l
}

// Sprite returns the look of an entity sprite; Bg is unused
func (p *Palette) Sprite(k sim.SpriteKind) Look {
	return p.sprites[k]
}
