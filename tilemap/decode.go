package tilemap

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/lixenwraith/tileworld/core"
)

// ErrEmptyImage is returned when the map source has no pixels
var ErrEmptyImage = errors.New("map image is empty")

// Decoder converts a raster image into a Map, one pixel per cell
type Decoder struct {
	Registry *Registry
	TileSize int
	Logger   *log.Logger // nil uses the standard logger
}

// Decoded is the outcome of a map decode
type Decoded struct {
	Map      *Map
	Spawn    core.Point // pixel coordinates of the start cell
	HasSpawn bool
	Unknown  int // pixels that fell back to the default kind
	Skipped  int // deferred multi-tile placements that did not fit
}

// Decode never fails on pixel content: unmatched colors fall back to the default kind
func (d *Decoder) Decode(img image.Image) (*Decoded, error) {
	if d.Registry == nil {
		return nil, fmt.Errorf("%w: decoder has no registry", ErrInvalidRegistry)
	}
	if d.TileSize <= 0 {
		return nil, fmt.Errorf("decode: tile size must be positive, got %d", d.TileSize)
	}
	if img == nil {
		return nil, ErrEmptyImage
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, ErrEmptyImage
	}

	m := New(d.Registry, b.Dx(), b.Dy(), d.TileSize)
	out := &Decoded{Map: m}
	var deferred []Tile

	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := pixelRGB(img.At(b.Min.X+x, b.Min.Y+y))

			if c == d.Registry.StartColor() {
				if out.HasSpawn {
					d.logf("map: duplicate start tile at (%d, %d) ignored", x, y)
					continue
				}
				out.Spawn = core.Point{X: x, Y: y}.Scale(d.TileSize)
				out.HasSpawn = true
				continue
			}

			kind, ok := d.Registry.MatchColor(c)
			if !ok {
				d.logf("map: unknown color %s (r=%d g=%d b=%d) at (%d, %d), using default", c, c.R, c.G, c.B, x, y)
				out.Unknown++
				continue
			}

			// Multi-tile kinds stay default until the whole grid is known
			if d.Registry.Kind(kind).Footprint.Multi() {
				deferred = append(deferred, Tile{Kind: kind, Pos: core.Point{X: x, Y: y}})
				continue
			}
			m.cells[y*m.width+x] = Cell{Tile: Tile{Kind: kind, Pos: core.Point{X: x, Y: y}}}
		}
	}

	for _, t := range deferred {
		if _, ok := m.Place(t.Kind, t.Pos.X, t.Pos.Y); !ok {
			out.Skipped++
		}
	}

	m.repaint = true
	return out, nil
}

func (d *Decoder) logf(format string, args ...any) {
	if d.Logger != nil {
		d.Logger.Printf(format, args...)
		return
	}
	log.Printf(format, args...)
}

// pixelRGB drops alpha without premultiplying, so translucent pixels keep their code
func pixelRGB(c color.Color) core.RGB {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return core.RGB{R: n.R, G: n.G, B: n.B}
}
