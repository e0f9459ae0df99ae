package sim

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/lixenwraith/tileworld/core"
	"github.com/lixenwraith/tileworld/input"
	"github.com/lixenwraith/tileworld/tilemap"
)

// PlayerName is the named-registry key of the controlled entity
const PlayerName = "player"

// Settings are the gameplay constants the behaviors read
type Settings struct {
	TickSeconds float64

	PlayerSpeed float64
	PlayerSize  int

	BeetleSpeed     float64
	BeetleMaxTravel float64
	BeetleSize      int

	PackageSpeed float64
	PackageSize  int
	PullMin      float64
	PullMax      float64
}

// World is the simulation context: the tile map plus every entity registry
// All access happens from the loop goroutine
type World struct {
	Map      *tilemap.Map
	Settings Settings

	rng      *rand.Rand
	nextID   EntityID
	entities map[EntityID]*Entity

	anonymous []EntityID          // spawn order, swept in reverse
	named     map[string]EntityID // addressable singletons
	names     map[EntityID]string

	attachments map[EntityID]EntityID // owner -> attachment, 1:1
	owners      map[EntityID]EntityID // attachment -> owner

	events   []Event
	sweeping bool
	stale    bool // anonymous holds removed ids
}

// NewWorld creates an empty world over m; seed 0 draws a random seed
func NewWorld(m *tilemap.Map, s Settings, seed uint64) *World {
	var rng *rand.Rand
	if seed == 0 {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	} else {
		rng = rand.New(rand.NewPCG(seed, seed))
	}

	return &World{
		Map:         m,
		Settings:    s,
		rng:         rng,
		entities:    make(map[EntityID]*Entity),
		named:       make(map[string]EntityID),
		names:       make(map[EntityID]string),
		attachments: make(map[EntityID]EntityID),
		owners:      make(map[EntityID]EntityID),
	}
}

func (w *World) newEntity(x, y float64, size int, speed float64, sprite SpriteKind, b Behavior) *Entity {
	w.nextID++
	e := &Entity{
		ID:       w.nextID,
		X:        x,
		Y:        y,
		W:        size,
		H:        size,
		Speed:    speed,
		Sprite:   sprite,
		behavior: b,
	}
	e.committed = e.Pos()
	w.entities[e.ID] = e
	return e
}

// SpawnAnonymous adds an entity to the unordered list
func (w *World) SpawnAnonymous(x, y float64, size int, speed float64, sprite SpriteKind, b Behavior) *Entity {
	e := w.newEntity(x, y, size, speed, sprite, b)
	w.anonymous = append(w.anonymous, e.ID)
	return e
}

// SpawnNamed adds an addressable entity; names are unique
func (w *World) SpawnNamed(name string, x, y float64, size int, speed float64, sprite SpriteKind, b Behavior) *Entity {
	if id, dup := w.named[name]; dup {
		panic(fmt.Sprintf("sim: name %q already held by entity %d", name, id))
	}
	e := w.newEntity(x, y, size, speed, sprite, b)
	w.named[name] = e.ID
	w.names[e.ID] = name
	return e
}

// SpawnPlayer places the player centered in the tile whose top-left is at (pixels)
func (w *World) SpawnPlayer(at core.Point) *Entity {
	s := w.Settings
	off := float64(w.Map.TileSize()-s.PlayerSize) / 2
	return w.SpawnNamed(PlayerName, float64(at.X)+off, float64(at.Y)+off, s.PlayerSize, s.PlayerSpeed, SpritePlayer, NewPlayer())
}

// SpawnBeetles puts up to n roaming beetles on random default-kind cells and returns how many fit
func (w *World) SpawnBeetles(n int) int {
	s := w.Settings
	ts := w.Map.TileSize()
	off := float64(ts-s.BeetleSize) / 2
	def := w.Map.Registry().Default()

	spawned := 0
	for attempt := 0; spawned < n && attempt < n*20; attempt++ {
		x, y := w.rng.IntN(w.Map.Width()), w.rng.IntN(w.Map.Height())
		c, _ := w.Map.At(x, y)
		if c.IsPointer || c.Tile.Kind != def {
			continue
		}
		w.SpawnAnonymous(float64(x*ts)+off, float64(y*ts)+off, s.BeetleSize, s.BeetleSpeed, SpriteBeetle,
			&Roaming{MaxTravel: s.BeetleMaxTravel})
		spawned++
	}
	return spawned
}

// SpawnPackage creates a package attached to owner, centered in grid cell
func (w *World) SpawnPackage(owner EntityID, cell core.Point) *Entity {
	s := w.Settings
	ts := w.Map.TileSize()
	off := float64(ts-s.PackageSize) / 2
	p := cell.Scale(ts)

	e := w.newEntity(float64(p.X)+off, float64(p.Y)+off, s.PackageSize, s.PackageSpeed, SpritePackage, &Pursuing{
		Attached: owner,
		PullMin:  s.PullMin,
		PullMax:  s.PullMax,
		Package:  true,
		Owner:    owner,
	})
	w.Attach(owner, e.ID)
	return e
}

// Attach records att as owner's attachment; an owner holds at most one
func (w *World) Attach(owner, att EntityID) {
	if cur, ok := w.attachments[owner]; ok {
		panic(fmt.Sprintf("sim: entity %d already has attachment %d, cannot attach %d", owner, cur, att))
	}
	if cur, ok := w.owners[att]; ok {
		panic(fmt.Sprintf("sim: entity %d already attached to %d, cannot attach to %d", att, cur, owner))
	}
	w.attachments[owner] = att
	w.owners[att] = owner
}

// Detach drops owner's attachment relation, the attached entity stays alive
func (w *World) Detach(owner EntityID) {
	if att, ok := w.attachments[owner]; ok {
		delete(w.owners, att)
		delete(w.attachments, owner)
	}
}

// AttachmentOf returns owner's attachment
func (w *World) AttachmentOf(owner EntityID) (EntityID, bool) {
	id, ok := w.attachments[owner]
	return id, ok
}

// Entity returns the live entity for id or nil
func (w *World) Entity(id EntityID) *Entity {
	return w.entities[id]
}

// Named returns the live entity registered under name or nil
func (w *World) Named(name string) *Entity {
	id, ok := w.named[name]
	if !ok {
		return nil
	}
	return w.entities[id]
}

// Player returns the controlled entity and its behavior, or nils
func (w *World) Player() (*Entity, *Player) {
	e := w.Named(PlayerName)
	if e == nil {
		return nil, nil
	}
	p, _ := e.behavior.(*Player)
	return e, p
}

// Entities returns live entities ordered by id
func (w *World) Entities() []*Entity {
	out := make([]*Entity, 0, len(w.entities))
	for _, e := range w.entities {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b *Entity) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return out
}

// Len returns the number of live entities
func (w *World) Len() int { return len(w.entities) }

// Count returns the number of live entities with the given sprite
func (w *World) Count(sprite SpriteKind) int {
	n := 0
	for _, e := range w.entities {
		if e.Sprite == sprite {
			n++
		}
	}
	return n
}

// Remove deletes an entity from every registry, its own attachment included
// Safe to call during a sweep; removing an absent id does nothing
func (w *World) Remove(id EntityID) {
	e, ok := w.entities[id]
	if !ok {
		return
	}
	delete(w.entities, id)
	e.behavior.OnDelete(w, e)

	if name, ok := w.names[id]; ok {
		delete(w.named, name)
		delete(w.names, id)
	}
	if owner, ok := w.owners[id]; ok {
		w.Detach(owner)
	}
	if att, ok := w.attachments[id]; ok {
		w.Detach(id)
		w.Remove(att)
	}

	w.stale = true
	if !w.sweeping {
		w.compact()
	}
}

func (w *World) compact() {
	if !w.stale {
		return
	}
	w.anonymous = slices.DeleteFunc(w.anonymous, func(id EntityID) bool {
		_, live := w.entities[id]
		return !live
	})
	w.stale = false
}

// UpdateEntity runs one continuous update for id and applies a Remove outcome
func (w *World) UpdateEntity(id EntityID, elapsed float64) Outcome {
	e := w.entities[id]
	if e == nil {
		return Remove
	}
	return w.apply(e, e.behavior.Update(w, e, elapsed))
}

// TickEntity runs one tick for id and applies a Remove outcome
func (w *World) TickEntity(id EntityID) Outcome {
	e := w.entities[id]
	if e == nil {
		return Remove
	}
	return w.apply(e, e.behavior.Tick(w, e))
}

func (w *World) apply(e *Entity, out Outcome) Outcome {
	if out == Remove {
		w.Remove(e.ID)
		return Remove
	}
	w.clamp(e)
	return Continue
}

// clamp keeps entities inside the map's pixel area
func (w *World) clamp(e *Entity) {
	maxX := float64(w.Map.PixelWidth() - e.W)
	maxY := float64(w.Map.PixelHeight() - e.H)
	e.X = max(0, min(e.X, maxX))
	e.Y = max(0, min(e.Y, maxY))
}

// Update advances every entity by elapsed sim seconds
func (w *World) Update(elapsed float64) {
	w.sweep(func(id EntityID) { w.UpdateEntity(id, elapsed) })
}

// Tick runs the fixed-tick hook of every entity
func (w *World) Tick() {
	w.sweep(func(id EntityID) { w.TickEntity(id) })
}

// sweep visits named entities, then attachments, then the anonymous list in reverse
// Entities removed mid-sweep are skipped, entities spawned mid-sweep wait for the next one
func (w *World) sweep(fn func(EntityID)) {
	named := make([]EntityID, 0, len(w.named))
	for _, id := range w.named {
		named = append(named, id)
	}
	attached := make([]EntityID, 0, len(w.attachments))
	for _, id := range w.attachments {
		attached = append(attached, id)
	}
	slices.Sort(named)
	slices.Sort(attached)
	last := len(w.anonymous) - 1

	w.sweeping = true
	defer func() {
		w.sweeping = false
		w.compact()
	}()

	for _, id := range named {
		if w.entities[id] != nil {
			fn(id)
		}
	}
	for _, id := range attached {
		if w.entities[id] != nil {
			fn(id)
		}
	}
	for i := last; i >= 0; i-- {
		if id := w.anonymous[i]; w.entities[id] != nil {
			fn(id)
		}
	}
}

// ApplyAction feeds one resolved input transition to the player
// Actions the simulation does not own are ignored
func (w *World) ApplyAction(a input.Action, pressed bool) {
	e, p := w.Player()
	if p == nil {
		return
	}

	switch a {
	case input.ActionMoveUp:
		e.Intent.YMinus = pressed
	case input.ActionMoveDown:
		e.Intent.YPlus = pressed
	case input.ActionMoveLeft:
		e.Intent.XMinus = pressed
	case input.ActionMoveRight:
		e.Intent.XPlus = pressed
	case input.ActionPlaceTile:
		p.Placing = pressed
	case input.ActionRemoveTile:
		if pressed && !p.Removing {
			p.RequestReaim()
		}
		p.Removing = pressed
	case input.ActionGrab:
		if pressed {
			p.Grab = true
		}
	}
}
