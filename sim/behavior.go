package sim

// Outcome tells the driver whether an entity survives the current update or tick
type Outcome uint8

const (
	Continue Outcome = iota
	Remove
)

func (o Outcome) String() string {
	if o == Remove {
		return "remove"
	}
	return "continue"
}

// Behavior is the per-variant capability set dispatched by the World
// Update runs every frame with the elapsed sim seconds and owns movement
// Tick runs once per fixed simulation tick
// OnDelete runs once when the entity leaves the World
type Behavior interface {
	Update(w *World, e *Entity, elapsed float64) Outcome
	Tick(w *World, e *Entity) Outcome
	OnDelete(w *World, e *Entity)
}

// Static moves only by its intent flags
type Static struct{}

func (Static) Update(_ *World, e *Entity, elapsed float64) Outcome {
	e.Move(elapsed)
	return Continue
}

func (Static) Tick(*World, *Entity) Outcome { return Continue }
func (Static) OnDelete(*World, *Entity)     {}
