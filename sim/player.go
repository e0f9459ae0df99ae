package sim

import (
	"github.com/lixenwraith/tileworld/core"
)

// Player is the user-controlled variant; its flags are independent, several can be active at once
type Player struct {
	Placing  bool
	Removing bool
	Grab     bool // edge-triggered, consumed by the next update

	RemoveTimer int
	TimerActive bool

	Aim       core.Point // grid cell
	Dir       core.Point // last nonzero movement direction
	Following EntityID   // carried or thrown package, 0 when none

	aimKnown bool
	reaim    bool // re-resolve the countdown even if the aim did not change
}

// NewPlayer returns a player facing down
func NewPlayer() *Player {
	return &Player{Dir: core.Point{X: 0, Y: 1}}
}

func (p *Player) Update(w *World, e *Entity, elapsed float64) Outcome {
	e.Move(elapsed)
	p.updateAim(w, e)

	// Placement wins over removal; Tick skips the countdown while placing
	if p.Placing {
		p.place(w)
	}

	if p.Grab {
		p.Grab = false
		p.grab(w, e)
	}
	return Continue
}

func (p *Player) Tick(w *World, _ *Entity) Outcome {
	if !p.Removing || p.Placing || !p.TimerActive {
		return Continue
	}

	p.RemoveTimer--
	if p.RemoveTimer > 0 {
		return Continue
	}

	kind, _ := w.Map.KindAt(p.Aim.X, p.Aim.Y)
	if w.Map.Remove(p.Aim.X, p.Aim.Y) {
		w.emit(Event{Kind: EventTileRemoved, Cell: p.Aim, Tile: kind})
	}
	p.TimerActive = false
	p.reaim = true
	return Continue
}

// OnDelete has nothing to release; the World removes the player's attachment with it
func (p *Player) OnDelete(*World, *Entity) {}

// RequestReaim forces the next update to re-read the aimed tile's destroy timer
func (p *Player) RequestReaim() { p.reaim = true }

func (p *Player) updateAim(w *World, e *Entity) {
	if dx, dy := e.Intent.Axis(); dx != 0 || dy != 0 {
		p.Dir = core.Point{X: dx, Y: dy}
	}

	aim := e.Cell(w.Map.TileSize()).Add(p.Dir)
	if p.aimKnown && aim == p.Aim && !p.reaim {
		return
	}

	p.Aim = aim
	p.aimKnown = true
	p.reaim = false
	p.RemoveTimer, p.TimerActive = w.Map.DestroyTimer(aim.X, aim.Y)
}

func (p *Player) place(w *World) {
	target, ok := w.Map.KindAt(p.Aim.X, p.Aim.Y)
	if !ok {
		return
	}
	kind, ok := w.Map.Registry().PlacementFor(target)
	if !ok {
		return
	}
	if _, ok := w.Map.Place(kind, p.Aim.X, p.Aim.Y); ok {
		p.reaim = true
		w.emit(Event{Kind: EventTilePlaced, Cell: p.Aim, Tile: kind})
	}
}

func (p *Player) grab(w *World, e *Entity) {
	if p.Following != 0 {
		p.throw(w)
		return
	}

	kind, ok := w.Map.KindAt(p.Aim.X, p.Aim.Y)
	if !ok || kind != w.Map.Registry().Package() {
		return
	}
	w.Map.Remove(p.Aim.X, p.Aim.Y)
	p.reaim = true

	pkg := w.SpawnPackage(e.ID, p.Aim)
	p.Following = pkg.ID
	w.emit(Event{Kind: EventPackageGrabbed, Cell: p.Aim, Tile: kind, Entity: pkg.ID})
}

// throw retargets the carried package to the aim cell if a tile could be placed there
func (p *Player) throw(w *World) {
	pkg := w.Entity(p.Following)
	if pkg == nil {
		p.Following = 0
		return
	}
	pursuer, ok := pkg.behavior.(*Pursuing)
	if !ok {
		return
	}

	kind, ok := w.Map.KindAt(p.Aim.X, p.Aim.Y)
	if !ok || !w.Map.Registry().Kind(kind).Placeable {
		return
	}
	pursuer.SetTarget(p.Aim.Scale(w.Map.TileSize()))
	w.emit(Event{Kind: EventPackageThrown, Cell: p.Aim, Entity: pkg.ID})
}
