package sim

import (
	"math"

	"github.com/lixenwraith/tileworld/core"
)

// farFactor × pull_max is the distance beyond which a pursuer gives up
const farFactor = 1.5

// Pursuing follows either an attached entity or a fixed target point
// The two modes are exclusive: SetTarget drops the attachment
type Pursuing struct {
	Attached EntityID // 0 when not following an entity
	PullMin  float64
	PullMax  float64

	Target    core.Point // pixels
	HasTarget bool

	// Package pursuers turn into a tile on arrival and report back to Owner
	Package  bool
	Owner    EntityID
	centered bool
}

// SetTarget switches to target mode
func (p *Pursuing) SetTarget(t core.Point) {
	p.Target = t
	p.HasTarget = true
	p.Attached = 0
	p.centered = false
}

func (p *Pursuing) Update(w *World, e *Entity, elapsed float64) Outcome {
	if p.HasTarget {
		return p.updateTarget(w, e, elapsed)
	}

	other := w.Entity(p.Attached)
	if p.Attached == 0 || other == nil {
		e.Intent.Stop()
		return Continue
	}

	c, oc := e.Center(), other.Center()
	dist := math.Hypot(e.X-other.X, e.Y-other.Y)
	e.Intent = steer(float64(c.X-oc.X), float64(c.Y-oc.Y), dist, p.PullMin, p.PullMax)
	e.Move(elapsed)
	return Continue
}

func (p *Pursuing) updateTarget(w *World, e *Entity, elapsed float64) Outcome {
	if p.Package && e.Pos() == p.Target {
		p.deliver(w, e)
		return Remove
	}

	if p.Package && !p.centered {
		ts := w.Map.TileSize()
		e.X += float64(e.W-ts) / 2
		e.Y += float64(e.H-ts) / 2
		e.W, e.H = ts, ts
		p.centered = true
	}

	tx, ty := float64(p.Target.X), float64(p.Target.Y)
	dx, dy := e.X-tx, e.Y-ty
	pullMax := float64(w.Map.PixelWidth() + w.Map.PixelHeight())
	e.Intent = steer(dx, dy, math.Hypot(dx, dy), 0, pullMax)
	e.Move(elapsed)

	// Never pass the target on an axis
	if dx != 0 && (e.X-tx)*dx <= 0 {
		e.X = tx
	}
	if dy != 0 && (e.Y-ty)*dy <= 0 {
		e.Y = ty
	}
	return Continue
}

func (p *Pursuing) deliver(w *World, e *Entity) {
	cell := p.Target.Div(w.Map.TileSize())
	kind := w.Map.Registry().Package()
	if _, ok := w.Map.Place(kind, cell.X, cell.Y); ok {
		w.emit(Event{Kind: EventPackageDelivered, Cell: cell, Tile: kind, Entity: e.ID})
	}
}

func (p *Pursuing) Tick(*World, *Entity) Outcome { return Continue }

// OnDelete releases the owner's reference to this pursuer
func (p *Pursuing) OnDelete(w *World, e *Entity) {
	owner := w.Entity(p.Owner)
	if owner == nil {
		return
	}
	if pl, ok := owner.behavior.(*Player); ok && pl.Following == e.ID {
		pl.Following = 0
	}
}

// steer applies the pull band per axis; d is self minus other
func steer(dx, dy, dist, pullMin, pullMax float64) Intent {
	if dist > farFactor*pullMax {
		return Intent{}
	}
	var in Intent
	in.XMinus, in.XPlus = axisIntent(dx, pullMin, pullMax)
	in.YMinus, in.YPlus = axisIntent(dy, pullMin, pullMax)
	return in
}

func axisIntent(d, pullMin, pullMax float64) (minus, plus bool) {
	switch {
	case d > pullMin && d < pullMax:
		return true, false
	case d < -pullMin && d > -pullMax:
		return false, true
	}
	return false, false
}
