package sim

import (
	"math"

	"github.com/lixenwraith/tileworld/core"
)

// EntityID identifies an entity within its World; 0 is never assigned
type EntityID uint64

// SpriteKind selects how the renderer draws an entity
type SpriteKind uint8

const (
	SpritePlayer SpriteKind = iota
	SpriteBeetle
	SpritePackage
)

func (k SpriteKind) String() string {
	switch k {
	case SpritePlayer:
		return "player"
	case SpriteBeetle:
		return "beetle"
	case SpritePackage:
		return "package"
	}
	return "unknown"
}

// Intent holds the four axis-aligned movement flags
type Intent struct {
	XPlus, XMinus, YPlus, YMinus bool
}

// Axis returns the net direction per axis; opposite flags cancel
func (i Intent) Axis() (dx, dy int) {
	if i.XPlus {
		dx++
	}
	if i.XMinus {
		dx--
	}
	if i.YPlus {
		dy++
	}
	if i.YMinus {
		dy--
	}
	return dx, dy
}

// Stop clears every flag
func (i *Intent) Stop() {
	*i = Intent{}
}

// Entity is a moving sprite; its behavior decides what it does each update and tick
type Entity struct {
	ID     EntityID
	X, Y   float64 // top-left, pixels
	W, H   int
	Intent Intent
	Speed  float64 // pixels per second
	Sprite SpriteKind

	committed core.Point
	behavior  Behavior
}

// Behavior returns the entity's variant
func (e *Entity) Behavior() Behavior { return e.behavior }

// Move integrates position over elapsed seconds in steps of at most one pixel
func (e *Entity) Move(elapsed float64) {
	dx, dy := e.Intent.Axis()
	if (dx == 0 && dy == 0) || e.Speed <= 0 || elapsed <= 0 {
		return
	}

	step := 1 / e.Speed
	for remaining := elapsed; remaining > 0; {
		dt := min(remaining, step)
		e.X += float64(dx) * e.Speed * dt
		e.Y += float64(dy) * e.Speed * dt
		remaining -= dt
	}
}

// Pos returns the rounded pixel position
func (e *Entity) Pos() core.Point {
	return core.Point{X: int(math.Round(e.X)), Y: int(math.Round(e.Y))}
}

// Center returns the rounded pixel center
func (e *Entity) Center() core.Point {
	return core.Point{
		X: int(math.Round(e.X + float64(e.W)/2)),
		Y: int(math.Round(e.Y + float64(e.H)/2)),
	}
}

// Cell returns the grid cell under the entity's center
func (e *Entity) Cell(tileSize int) core.Point {
	return e.Center().Div(tileSize)
}

// Rect returns the collision rectangle as x, y, w, h in pixels
func (e *Entity) Rect() (x, y, w, h int) {
	p := e.Pos()
	return p.X, p.Y, e.W, e.H
}

// HasMoved reports whether the rounded position differs from the committed one
// With commit the current position becomes the committed one
func (e *Entity) HasMoved(commit bool) bool {
	p := e.Pos()
	moved := p != e.committed
	if commit {
		e.committed = p
	}
	return moved
}
